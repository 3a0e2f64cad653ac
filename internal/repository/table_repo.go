package repository

import (
	"context"

	"dinepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TableRepository interface {
	Create(ctx context.Context, t *model.DiningTable) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.DiningTable, error)
	List(ctx context.Context) ([]model.DiningTable, error)

	// OccupyTx flips a free (or reserved) table to occupied inside tx.
	// Returns the number of rows updated: 0 means the table was already
	// occupied and the caller must treat the transition as refused.
	OccupyTx(tx *gorm.DB, id uuid.UUID) (int64, error)

	// FreeTx releases an occupied table inside tx. Freeing an already-free
	// table updates zero rows and is not an error (idempotent).
	FreeTx(tx *gorm.DB, id uuid.UUID) error

	// SetStatus is the manual reserve/unreserve path; it never touches
	// occupied tables.
	SetStatus(ctx context.Context, id uuid.UUID, from, to string) (int64, error)
}

type tableRepo struct{ db *gorm.DB }

func NewTableRepository(db *gorm.DB) TableRepository { return &tableRepo{db: db} }

func (r *tableRepo) Create(ctx context.Context, t *model.DiningTable) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *tableRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.DiningTable, error) {
	var t model.DiningTable
	err := r.db.WithContext(ctx).First(&t, id).Error
	return &t, err
}

func (r *tableRepo) List(ctx context.Context) ([]model.DiningTable, error) {
	var tables []model.DiningTable
	err := r.db.WithContext(ctx).Order("number ASC").Find(&tables).Error
	return tables, err
}

// The conditional UPDATE is the check-and-set that keeps two concurrent
// order creations from both claiming the same table: only one of them sees
// a non-occupied row to update.
func (r *tableRepo) OccupyTx(tx *gorm.DB, id uuid.UUID) (int64, error) {
	res := tx.Model(&model.DiningTable{}).
		Where("id = ? AND status IN (?, ?)", id, model.TableFree, model.TableReserved).
		Update("status", model.TableOccupied)
	return res.RowsAffected, res.Error
}

func (r *tableRepo) FreeTx(tx *gorm.DB, id uuid.UUID) error {
	return tx.Model(&model.DiningTable{}).
		Where("id = ? AND status = ?", id, model.TableOccupied).
		Update("status", model.TableFree).Error
}

func (r *tableRepo) SetStatus(ctx context.Context, id uuid.UUID, from, to string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.DiningTable{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}
