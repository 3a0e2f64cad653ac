package dto

import "github.com/google/uuid"

type TableResponse struct {
	ID     uuid.UUID `json:"id"`
	Number int       `json:"number"`
	Status string    `json:"status"`
}
