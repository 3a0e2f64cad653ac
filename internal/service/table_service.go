package service

import (
	"context"
	"errors"
	"fmt"

	"dinepos/internal/dto"
	"dinepos/internal/model"
	"dinepos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TableService exposes the table registry. Occupy/free are not here: they
// only ever happen inside order-ledger and settlement transactions, so they
// live on the repository and are called with the owning tx. Reserve and
// unreserve are the manual operations.
type TableService interface {
	List(ctx context.Context) ([]dto.TableResponse, error)
	Reserve(ctx context.Context, id uuid.UUID) error
	Unreserve(ctx context.Context, id uuid.UUID) error
}

type tableService struct {
	repo repository.TableRepository
}

func NewTableService(repo repository.TableRepository) TableService {
	return &tableService{repo: repo}
}

func (s *tableService) List(ctx context.Context) ([]dto.TableResponse, error) {
	tables, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.TableResponse, 0, len(tables))
	for _, t := range tables {
		result = append(result, dto.TableResponse{ID: t.ID, Number: t.Number, Status: t.Status})
	}
	return result, nil
}

// Reserve moves a free table to reserved. Occupied tables cannot be
// reserved; a reservation never displaces a seated party.
func (s *tableService) Reserve(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("table %s: %w", id, ErrNotFound)
		}
		return err
	}
	rows, err := s.repo.SetStatus(ctx, id, model.TableFree, model.TableReserved)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInvalidTransition
	}
	return nil
}

// Unreserve is idempotent on a free table, mirroring free-on-free.
func (s *tableService) Unreserve(ctx context.Context, id uuid.UUID) error {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("table %s: %w", id, ErrNotFound)
		}
		return err
	}
	if t.Status == model.TableFree {
		return nil
	}
	rows, err := s.repo.SetStatus(ctx, id, model.TableReserved, model.TableFree)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrInvalidTransition
	}
	return nil
}
