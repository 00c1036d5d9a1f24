package services

import (
	"context"
	"time"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// In-memory fakes mirroring the repository contracts, including the
// conditional semantics of the status swap and the zero clamp on stock.

type fakeOrderRepo struct {
	orders   map[uint]*models.Order
	nextID   uint
	failSwap bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[uint]*models.Order{}}
}

func (r *fakeOrderRepo) put(o *models.Order) *models.Order {
	if o.ID == 0 {
		r.nextID++
		o.ID = r.nextID
	} else if o.ID > r.nextID {
		r.nextID = o.ID
	}
	r.orders[o.ID] = o
	return o
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order) error {
	now := time.Now()
	order.CreatedAt = now
	order.UpdatedAt = now
	r.put(order)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uint) (*models.Order, error) {
	stored, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *stored
	return &copied, nil
}

func (r *fakeOrderRepo) GetByUserID(_ context.Context, userID uint) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if o.OwnerUserID != nil && *o.OwnerUserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetAll(_ context.Context) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		out = append(out, *o)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateFields(_ context.Context, id uint, fields map[string]interface{}) error {
	stored, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["customer_name"]; ok {
		stored.CustomerName = v.(string)
	}
	if v, ok := fields["total"]; ok {
		stored.Total = v.(float64)
	}
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeOrderRepo) UpdateStatusIf(_ context.Context, id uint, from, to models.OrderStatus) (bool, error) {
	if r.failSwap {
		return false, nil
	}
	stored, ok := r.orders[id]
	if !ok || stored.Status != from {
		return false, nil
	}
	stored.Status = to
	stored.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uint) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) FindTerminalOlderThan(_ context.Context, statuses []string, cutoff time.Time) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if !o.UpdatedAt.Before(cutoff) {
			continue
		}
		for _, s := range statuses {
			if string(o.Status) == s {
				out = append(out, *o)
				break
			}
		}
	}
	return out, nil
}

type fakeProductRepo struct {
	products       map[uint]*models.Product
	decrementCalls map[uint]int
}

func newFakeProductRepo(products ...*models.Product) *fakeProductRepo {
	r := &fakeProductRepo{
		products:       map[uint]*models.Product{},
		decrementCalls: map[uint]int{},
	}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) Create(_ context.Context, product *models.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uint) (*models.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) GetAll(_ context.Context) ([]models.Product, error) {
	var out []models.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *models.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uint) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DecrementStock(_ context.Context, id uint, qty int) (bool, error) {
	r.decrementCalls[id]++
	p, ok := r.products[id]
	if !ok {
		return false, nil
	}
	p.Stock -= qty
	if p.Stock < 0 {
		p.Stock = 0
	}
	return true, nil
}

type fakeSaleRepo struct {
	sales  []*models.Sale
	nextID uint
	err    error
}

func (r *fakeSaleRepo) Create(_ context.Context, sale *models.Sale) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	sale.ID = r.nextID
	r.sales = append(r.sales, sale)
	return nil
}

func (r *fakeSaleRepo) GetAll(_ context.Context) ([]models.Sale, error) {
	var out []models.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSaleRepo) GetByOrderID(_ context.Context, orderID uint) ([]models.Sale, error) {
	var out []models.Sale
	for _, s := range r.sales {
		if s.OrderID == orderID {
			out = append(out, *s)
		}
	}
	return out, nil
}

type fakeArchiveRepo struct {
	archived []*models.ArchivedOrder
	nextID   uint
	err      error
}

func (r *fakeArchiveRepo) Create(_ context.Context, a *models.ArchivedOrder) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	a.ID = r.nextID
	r.archived = append(r.archived, a)
	return nil
}

func (r *fakeArchiveRepo) ListRecent(_ context.Context, limit int) ([]models.ArchivedOrder, error) {
	var out []models.ArchivedOrder
	for i := len(r.archived) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, *r.archived[i])
	}
	return out, nil
}

func (r *fakeArchiveRepo) GetByOriginalID(_ context.Context, originalID uint) (*models.ArchivedOrder, error) {
	for _, a := range r.archived {
		if a.OriginalID == originalID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakePublisher struct {
	created []uint
}

func (p *fakePublisher) OrderCreated(order *models.Order) {
	p.created = append(p.created, order.ID)
}

func (p *fakePublisher) Close() error { return nil }

type fakeLocker struct {
	held    bool
	locks   int
	unlocks int
}

func (l *fakeLocker) TryLock(_ context.Context, _ string, _ time.Duration) (bool, error) {
	if l.held {
		return false, nil
	}
	l.held = true
	l.locks++
	return true, nil
}

func (l *fakeLocker) Unlock(_ context.Context, _ string) error {
	l.held = false
	l.unlocks++
	return nil
}
