package repository

import (
	"context"

	"dinepos/internal/dto"
	"dinepos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderRepository interface {
	CreateTx(tx *gorm.DB, o *model.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error)
	FindActiveByTable(ctx context.Context, tableID uuid.UUID) (*model.Order, error)
	List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error)

	AddLineTx(tx *gorm.DB, line *model.OrderLine) error
	// RemoveLineTx deletes one line scoped to its order; returns rows
	// affected so the caller can distinguish "line not found".
	RemoveLineTx(tx *gorm.DB, orderID, lineID uuid.UUID) (int64, error)
	ClearLinesTx(tx *gorm.DB, orderID uuid.UUID) error

	// RecomputeTotalTx rewrites the order total as the sum of its current
	// line totals. Idempotent; the single source of truth for Total.
	RecomputeTotalTx(tx *gorm.DB, orderID uuid.UUID) error

	// UpdateStatusTx transitions an order out of Active. The status guard in
	// the WHERE clause makes the write safe against a concurrent transition:
	// rows affected is 0 when the order was no longer active.
	UpdateStatusTx(tx *gorm.DB, orderID uuid.UUID, status, paymentStatus string) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepo{db: db} }

func (r *orderRepo) DB() *gorm.DB { return r.db }

func (r *orderRepo) CreateTx(tx *gorm.DB, o *model.Order) error {
	return tx.Create(o).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.created_at ASC") }).
		Preload("Lines.Product").
		Preload("Table").
		Preload("Payment").
		First(&o, id).Error
	return &o, err
}

func (r *orderRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := tx.Preload("Lines").First(&o, id).Error
	return &o, err
}

func (r *orderRepo) FindActiveByTable(ctx context.Context, tableID uuid.UUID) (*model.Order, error) {
	var o model.Order
	err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("order_lines.created_at ASC") }).
		Preload("Lines.Product").
		Preload("Table").
		Where("table_id = ? AND status = ?", tableID, model.OrderActive).
		First(&o).Error
	return &o, err
}

func (r *orderRepo) List(ctx context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Order{})

	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("DATE(created_at) = ?", filter.Date)
	} else {
		// Default: today
		q = q.Where("DATE(created_at) = CURRENT_DATE")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Lines.Product").Preload("Table").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&orders).Error

	return orders, total, err
}

func (r *orderRepo) AddLineTx(tx *gorm.DB, line *model.OrderLine) error {
	return tx.Create(line).Error
}

func (r *orderRepo) RemoveLineTx(tx *gorm.DB, orderID, lineID uuid.UUID) (int64, error) {
	res := tx.Where("id = ? AND order_id = ?", lineID, orderID).Delete(&model.OrderLine{})
	return res.RowsAffected, res.Error
}

func (r *orderRepo) ClearLinesTx(tx *gorm.DB, orderID uuid.UUID) error {
	return tx.Where("order_id = ?", orderID).Delete(&model.OrderLine{}).Error
}

func (r *orderRepo) RecomputeTotalTx(tx *gorm.DB, orderID uuid.UUID) error {
	return tx.Exec(`
		UPDATE orders
		SET total = (
			SELECT COALESCE(SUM(line_total), 0)
			FROM order_lines
			WHERE order_id = ?
		)
		WHERE id = ?`, orderID, orderID).Error
}

func (r *orderRepo) UpdateStatusTx(tx *gorm.DB, orderID uuid.UUID, status, paymentStatus string) (int64, error) {
	res := tx.Model(&model.Order{}).
		Where("id = ? AND status = ?", orderID, model.OrderActive).
		Updates(map[string]interface{}{
			"status":         status,
			"payment_status": paymentStatus,
		})
	return res.RowsAffected, res.Error
}
