package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dinepos/internal/dto"
	"dinepos/internal/model"
	"dinepos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SettlementService closes an order: one transaction records the payment,
// marks the order closed/paid, and frees the table. If any step fails the
// whole settlement rolls back — the order is never closed with its table
// still occupied, or the reverse.
type SettlementService interface {
	Settle(ctx context.Context, orderID uuid.UUID, req dto.SettleRequest) (*dto.SettlementResponse, error)
}

type settlementService struct {
	orderRepo   repository.OrderRepository
	paymentRepo repository.PaymentRepository
	tableRepo   repository.TableRepository
}

func NewSettlementService(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	tableRepo repository.TableRepository,
) SettlementService {
	return &settlementService{orderRepo: orderRepo, paymentRepo: paymentRepo, tableRepo: tableRepo}
}

func (s *settlementService) Settle(ctx context.Context, orderID uuid.UUID, req dto.SettleRequest) (*dto.SettlementResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		return nil, err
	}

	// Preconditions — checked before the transaction so a refused settlement
	// leaves no trace at all.
	if order.Status != model.OrderActive {
		return nil, ErrOrderNotActive
	}
	if !order.Total.IsPositive() {
		return nil, ErrNothingToPay
	}
	if req.AmountTendered.LessThan(order.Total) {
		return nil, ErrInsufficientPayment
	}

	payment := model.Payment{
		ID:             uuid.New(),
		OrderID:        orderID,
		Tender:         req.Tender,
		AmountTendered: req.AmountTendered,
		Note:           req.Note,
	}

	txErr := runTx(ctx, s.orderRepo.DB(), func(tx *gorm.DB) error {
		if err := s.paymentRepo.CreateTx(tx, &payment); err != nil {
			return err
		}
		rows, err := s.orderRepo.UpdateStatusTx(tx, orderID, model.OrderClosed, model.PaymentPaid)
		if err != nil {
			return err
		}
		if rows == 0 {
			// The order was cancelled (or already closed) between the
			// precondition read and this write; roll the payment back.
			return ErrOrderNotActive
		}
		return s.tableRepo.FreeTx(tx, order.TableID)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.SettlementResponse{
		OrderID:   orderID.String(),
		PaymentID: payment.ID.String(),
		Tender:    req.Tender,
		Total:     order.Total,
		Tendered:  req.AmountTendered,
		Change:    req.AmountTendered.Sub(order.Total),
		SettledAt: time.Now().Format(time.RFC3339),
	}
	if order.Table != nil {
		resp.TableNumber = order.Table.Number
	}
	return resp, nil
}
