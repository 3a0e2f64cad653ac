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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService is the order ledger: the state machine that binds a table to
// at most one active order, accumulates priced lines, and keeps the total
// equal to the sum of the lines after every mutation.
type OrderService interface {
	Create(ctx context.Context, tableID uuid.UUID) (*dto.OrderResponse, error)
	Get(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error)
	GetActiveByTable(ctx context.Context, tableID uuid.UUID) (*dto.OrderResponse, error)
	AddLine(ctx context.Context, orderID uuid.UUID, req dto.AddLineRequest) (*dto.OrderResponse, error)
	RemoveLine(ctx context.Context, orderID, lineID uuid.UUID) (*dto.OrderResponse, error)
	Clear(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error)
	Cancel(ctx context.Context, orderID uuid.UUID) error
	List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error)
}

type orderService struct {
	repo      repository.OrderRepository
	tableRepo repository.TableRepository
	prodRepo  repository.ProductRepository
}

func NewOrderService(
	repo repository.OrderRepository,
	tableRepo repository.TableRepository,
	prodRepo repository.ProductRepository,
) OrderService {
	return &orderService{repo: repo, tableRepo: tableRepo, prodRepo: prodRepo}
}

// runTx executes fn inside a GORM transaction when db is available,
// or calls fn(nil) directly when db is nil (unit test mode).
func runTx(ctx context.Context, db *gorm.DB, fn func(tx *gorm.DB) error) error {
	if db == nil {
		return fn(nil)
	}
	return db.WithContext(ctx).Transaction(fn)
}

// Create opens a new active order on the table and marks it occupied, as one
// atomic unit. The occupy step is a conditional UPDATE: when two callers race
// on the same free table, exactly one update succeeds and the loser gets
// ErrTableOccupied.
func (s *orderService) Create(ctx context.Context, tableID uuid.UUID) (*dto.OrderResponse, error) {
	if _, err := s.tableRepo.FindByID(ctx, tableID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("table %s: %w", tableID, ErrNotFound)
		}
		return nil, err
	}

	var order model.Order
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		rows, err := s.tableRepo.OccupyTx(tx, tableID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrTableOccupied
		}

		order = model.Order{
			ID:            uuid.New(),
			TableID:       tableID,
			Total:         decimal.Zero,
			Status:        model.OrderActive,
			PaymentStatus: model.PaymentPending,
		}
		return s.repo.CreateTx(tx, &order)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Get(ctx, order.ID)
}

func (s *orderService) Get(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error) {
	o, err := s.repo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		return nil, err
	}
	return orderToResponse(o), nil
}

func (s *orderService) GetActiveByTable(ctx context.Context, tableID uuid.UUID) (*dto.OrderResponse, error) {
	o, err := s.repo.FindActiveByTable(ctx, tableID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no active order for table %s: %w", tableID, ErrNotFound)
		}
		return nil, err
	}
	return orderToResponse(o), nil
}

// AddLine snapshots the product's current unit price into a new line and
// recomputes the order total. The snapshot means later catalog price edits
// never change this order.
func (s *orderService) AddLine(ctx context.Context, orderID uuid.UUID, req dto.AddLineRequest) (*dto.OrderResponse, error) {
	if req.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid product_id", ErrValidation)
	}
	product, err := s.prodRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %s: %w", productID, ErrUnknownProduct)
		}
		return nil, err
	}
	if !product.Active {
		return nil, fmt.Errorf("product %s is inactive: %w", productID, ErrUnknownProduct)
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		o, err := s.repo.FindByIDTx(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
			}
			return err
		}
		if o.Status != model.OrderActive {
			return ErrOrderNotActive
		}

		line := &model.OrderLine{
			ID:        uuid.New(),
			OrderID:   orderID,
			ProductID: productID,
			Quantity:  req.Quantity,
			UnitPrice: product.UnitPrice,
			LineTotal: product.UnitPrice.Mul(decimal.NewFromInt(int64(req.Quantity))),
			Note:      req.Note,
		}
		if err := s.repo.AddLineTx(tx, line); err != nil {
			return err
		}
		return s.repo.RecomputeTotalTx(tx, orderID)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Get(ctx, orderID)
}

func (s *orderService) RemoveLine(ctx context.Context, orderID, lineID uuid.UUID) (*dto.OrderResponse, error) {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		o, err := s.repo.FindByIDTx(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
			}
			return err
		}
		if o.Status != model.OrderActive {
			return ErrOrderNotActive
		}

		rows, err := s.repo.RemoveLineTx(tx, orderID, lineID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrLineNotFound
		}
		return s.repo.RecomputeTotalTx(tx, orderID)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Get(ctx, orderID)
}

func (s *orderService) Clear(ctx context.Context, orderID uuid.UUID) (*dto.OrderResponse, error) {
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		o, err := s.repo.FindByIDTx(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
			}
			return err
		}
		if o.Status != model.OrderActive {
			return ErrOrderNotActive
		}

		if err := s.repo.ClearLinesTx(tx, orderID); err != nil {
			return err
		}
		return s.repo.RecomputeTotalTx(tx, orderID)
	})
	if txErr != nil {
		return nil, txErr
	}

	return s.Get(ctx, orderID)
}

// Cancel transitions Active → Cancelled and releases the table. No payment
// is recorded; cancelled orders never show up in reports.
func (s *orderService) Cancel(ctx context.Context, orderID uuid.UUID) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		o, err := s.repo.FindByIDTx(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
			}
			return err
		}
		if o.Status != model.OrderActive {
			return ErrOrderNotActive
		}

		rows, err := s.repo.UpdateStatusTx(tx, orderID, model.OrderCancelled, model.PaymentPending)
		if err != nil {
			return err
		}
		if rows == 0 {
			// Lost a race with another transition on the same order.
			return ErrOrderNotActive
		}
		return s.tableRepo.FreeTx(tx, o.TableID)
	})
}

// List returns a paginated list of orders, filtered by date and status.
// Default filter: today's orders, every status.
func (s *orderService) List(ctx context.Context, filter dto.OrderFilter) (*dto.OrderListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	orders, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, *orderToResponse(&orders[i]))
	}
	return &dto.OrderListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func orderToResponse(o *model.Order) *dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		name := ""
		if l.Product != nil {
			name = l.Product.Name
		}
		lines = append(lines, dto.OrderLineResponse{
			ID:        l.ID.String(),
			ProductID: l.ProductID.String(),
			Product:   name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
			Note:      l.Note,
		})
	}
	resp := &dto.OrderResponse{
		ID:            o.ID.String(),
		TableID:       o.TableID.String(),
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Total:         o.Total,
		Lines:         lines,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
	}
	if o.Table != nil {
		resp.TableNumber = o.Table.Number
	}
	return resp
}
