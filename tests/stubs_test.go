package tests

import (
	"context"
	"sort"
	"sync"
	"time"

	"dinepos/internal/dto"
	"dinepos/internal/model"
	"dinepos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. Services open transactions through DB(), which
// returns nil here, so the tx helper runs callbacks directly — the stubs must
// therefore accept a nil *gorm.DB on every Tx method.

// ── Tables ────────────────────────────────────────────────────────────────────

type stubTableRepo struct {
	mu     sync.Mutex
	tables map[uuid.UUID]*model.DiningTable
}

func newStubTableRepo() *stubTableRepo {
	return &stubTableRepo{tables: make(map[uuid.UUID]*model.DiningTable)}
}

func (r *stubTableRepo) Create(_ context.Context, t *model.DiningTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.tables[t.ID] = t
	return nil
}

func (r *stubTableRepo) FindByID(_ context.Context, id uuid.UUID) (*model.DiningTable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tables[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubTableRepo) List(_ context.Context) ([]model.DiningTable, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.DiningTable, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

func (r *stubTableRepo) OccupyTx(_ *gorm.DB, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tables[id]
	if !ok {
		return 0, nil
	}
	if t.Status != model.TableFree && t.Status != model.TableReserved {
		return 0, nil
	}
	t.Status = model.TableOccupied
	return 1, nil
}

func (r *stubTableRepo) FreeTx(_ *gorm.DB, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tables[id]; ok && t.Status == model.TableOccupied {
		t.Status = model.TableFree
	}
	return nil
}

func (r *stubTableRepo) SetStatus(_ context.Context, id uuid.UUID, from, to string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tables[id]
	if !ok || t.Status != from {
		return 0, nil
	}
	t.Status = to
	return 1, nil
}

var _ repository.TableRepository = (*stubTableRepo)(nil)

// ── Products ──────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	findErr  error // forced FindByID failure, simulating a storage outage
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*model.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) List(_ context.Context, filter dto.ProductFilter) ([]model.Product, error) {
	out := make([]model.Product, 0, len(r.products))
	for _, p := range r.products {
		switch filter.Active {
		case "all":
		case "false":
			if p.Active {
				continue
			}
		default:
			if !p.Active {
				continue
			}
		}
		if filter.CategoryID != "" && p.CategoryID.String() != filter.CategoryID {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = false
	}
	return nil
}

func (r *stubProductRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if p, ok := r.products[id]; ok {
		p.Active = true
	}
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)

// ── Categories ────────────────────────────────────────────────────────────────

type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
	prodRepo   *stubProductRepo // for CountProducts
}

func newStubCategoryRepo(prodRepo *stubProductRepo) *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category), prodRepo: prodRepo}
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByName(_ context.Context, name string) (*model.Category, error) {
	for _, c := range r.categories {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	out := make([]model.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if c.Active {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if c, ok := r.categories[id]; ok {
		c.Active = false
	}
	return nil
}

func (r *stubCategoryRepo) CountProducts(_ context.Context, id uuid.UUID) (int64, error) {
	var n int64
	for _, p := range r.prodRepo.products {
		if p.CategoryID == id {
			n++
		}
	}
	return n, nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// ── Orders ────────────────────────────────────────────────────────────────────

type stubOrderRepo struct {
	mu       sync.Mutex
	orders   map[uuid.UUID]*model.Order
	prodRepo *stubProductRepo // to resolve product names on read
}

func newStubOrderRepo(prodRepo *stubProductRepo) *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*model.Order), prodRepo: prodRepo}
}

func (r *stubOrderRepo) CreateTx(_ *gorm.DB, o *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now()
	}
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) find(id uuid.UUID) (*model.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for i := range o.Lines {
		if p, ok := r.prodRepo.products[o.Lines[i].ProductID]; ok {
			o.Lines[i].Product = p
		}
	}
	return o, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(id)
}

func (r *stubOrderRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(id)
}

func (r *stubOrderRepo) FindActiveByTable(_ context.Context, tableID uuid.UUID) (*model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, o := range r.orders {
		if o.TableID == tableID && o.Status == model.OrderActive {
			return r.find(id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubOrderRepo) List(_ context.Context, filter dto.OrderFilter) ([]model.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		if filter.Status != "" && filter.Status != "all" && o.Status != filter.Status {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *stubOrderRepo) AddLineTx(_ *gorm.DB, line *model.OrderLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[line.OrderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if line.ID == uuid.Nil {
		line.ID = uuid.New()
	}
	line.CreatedAt = time.Now()
	o.Lines = append(o.Lines, *line)
	return nil
}

func (r *stubOrderRepo) RemoveLineTx(_ *gorm.DB, orderID, lineID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return 0, gorm.ErrRecordNotFound
	}
	for i, l := range o.Lines {
		if l.ID == lineID {
			o.Lines = append(o.Lines[:i], o.Lines[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubOrderRepo) ClearLinesTx(_ *gorm.DB, orderID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.orders[orderID]; ok {
		o.Lines = nil
	}
	return nil
}

func (r *stubOrderRepo) RecomputeTotalTx(_ *gorm.DB, orderID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.LineTotal)
	}
	o.Total = total
	return nil
}

func (r *stubOrderRepo) UpdateStatusTx(_ *gorm.DB, orderID uuid.UUID, status, paymentStatus string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[orderID]
	if !ok || o.Status != model.OrderActive {
		// Mirrors the status-guarded UPDATE: only active orders transition.
		return 0, nil
	}
	o.Status = status
	o.PaymentStatus = paymentStatus
	return 1, nil
}

func (r *stubOrderRepo) DB() *gorm.DB { return nil }

var _ repository.OrderRepository = (*stubOrderRepo)(nil)

// ── Payments ──────────────────────────────────────────────────────────────────

type stubPaymentRepo struct {
	mu           sync.Mutex
	byOrder      map[uuid.UUID]*model.Payment
	failNext     bool   // simulate an insert failure to exercise rollback paths
	beforeCreate func() // runs before the insert; lets a test interleave a writer
}

func newStubPaymentRepo() *stubPaymentRepo {
	return &stubPaymentRepo{byOrder: make(map[uuid.UUID]*model.Payment)}
}

func (r *stubPaymentRepo) CreateTx(_ *gorm.DB, p *model.Payment) error {
	if r.beforeCreate != nil {
		r.beforeCreate()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failNext {
		r.failNext = false
		return gorm.ErrInvalidData
	}
	if _, exists := r.byOrder[p.OrderID]; exists {
		// Mirrors the unique index on payments.order_id.
		return gorm.ErrDuplicatedKey
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.byOrder[p.OrderID] = p
	return nil
}

func (r *stubPaymentRepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*model.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byOrder[orderID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

var _ repository.PaymentRepository = (*stubPaymentRepo)(nil)

// ── Users ─────────────────────────────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context, includeInactive bool) ([]model.User, error) {
	out := make([]model.User, 0, len(r.users))
	for _, u := range r.users {
		if !includeInactive && !u.Active {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = false
	}
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = true
	}
	return nil
}

var _ repository.UserRepository = (*stubUserRepo)(nil)

// ── Seed helpers ──────────────────────────────────────────────────────────────

func seedTable(repo *stubTableRepo, number int) *model.DiningTable {
	t := &model.DiningTable{ID: uuid.New(), Number: number, Status: model.TableFree}
	repo.tables[t.ID] = t
	return t
}

func seedProduct(repo *stubProductRepo, name, price string) *model.Product {
	p := &model.Product{
		ID:         uuid.New(),
		Name:       name,
		CategoryID: uuid.New(),
		UnitPrice:  decimal.RequireFromString(price),
		Active:     true,
	}
	repo.products[p.ID] = p
	return p
}
