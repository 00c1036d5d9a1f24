package services

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/auth"
	"storefront/internal/events"
	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrderPatch is a partial order update. Nil fields are left untouched.
// Status changes go through the transition rules, everything else is a
// plain field edit.
type OrderPatch struct {
	CustomerName    *string
	CustomerPhone   *string
	CustomerEmail   *string
	DeliveryAddress *string
	PaymentMethod   *string
	Total           *float64
	Status          *models.OrderStatus
}

type OrderService interface {
	Create(ctx context.Context, draft *models.Order) (uint, error)
	Get(ctx context.Context, actor auth.Principal, id uint) (*models.Order, error)
	List(ctx context.Context, actor auth.Principal) ([]models.Order, error)
	ListByUser(ctx context.Context, actor auth.Principal, userID uint) ([]models.Order, error)
	Update(ctx context.Context, actor auth.Principal, id uint, patch OrderPatch) error
	SetStatus(ctx context.Context, actor auth.Principal, id uint, status models.OrderStatus) error
	Delete(ctx context.Context, actor auth.Principal, id uint) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	sales     SaleRecorder
	stock     StockLedger
	publisher events.Publisher
	log       *zap.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, sales SaleRecorder, stock StockLedger, publisher events.Publisher, log *zap.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		sales:     sales,
		stock:     stock,
		publisher: publisher,
		log:       log,
	}
}

func (s *orderService) Create(ctx context.Context, draft *models.Order) (uint, error) {
	if err := validateDraft(draft); err != nil {
		return 0, err
	}
	draft.ID = 0
	draft.Status = models.OrderPending
	if err := s.orderRepo.Create(ctx, draft); err != nil {
		return 0, err
	}
	metrics.OrdersCreated.Inc()
	// Best effort: the notification collaborator losing this event must not
	// fail order creation.
	s.publisher.OrderCreated(draft)
	return draft.ID, nil
}

func validateDraft(draft *models.Order) error {
	switch {
	case draft.CustomerName == "":
		return fmt.Errorf("%w: customer name is required", ErrInvalidOrder)
	case draft.CustomerPhone == "":
		return fmt.Errorf("%w: customer phone is required", ErrInvalidOrder)
	case draft.DeliveryAddress == "":
		return fmt.Errorf("%w: delivery address is required", ErrInvalidOrder)
	case len(draft.Items) == 0:
		return fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	case draft.Total <= 0:
		return fmt.Errorf("%w: total must be positive", ErrInvalidOrder)
	}
	for _, it := range draft.Items {
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: item quantity must be positive", ErrInvalidOrder)
		}
	}
	return nil
}

func (s *orderService) Get(ctx context.Context, actor auth.Principal, id uint) (*models.Order, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !ownedBy(order, actor.UserID) {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *orderService) List(ctx context.Context, actor auth.Principal) ([]models.Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return s.orderRepo.GetAll(ctx)
}

func (s *orderService) ListByUser(ctx context.Context, actor auth.Principal, userID uint) ([]models.Order, error) {
	if !actor.IsAdmin() && actor.UserID != userID {
		return nil, ErrForbidden
	}
	return s.orderRepo.GetByUserID(ctx, userID)
}

func (s *orderService) Update(ctx context.Context, actor auth.Principal, id uint, patch OrderPatch) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if patch.CustomerName != nil {
		fields["customer_name"] = *patch.CustomerName
	}
	if patch.CustomerPhone != nil {
		fields["customer_phone"] = *patch.CustomerPhone
	}
	if patch.CustomerEmail != nil {
		fields["customer_email"] = *patch.CustomerEmail
	}
	if patch.DeliveryAddress != nil {
		fields["delivery_address"] = *patch.DeliveryAddress
	}
	if patch.PaymentMethod != nil {
		fields["payment_method"] = *patch.PaymentMethod
	}
	if patch.Total != nil {
		fields["total"] = *patch.Total
	}
	if len(fields) > 0 {
		if err := s.orderRepo.UpdateFields(ctx, id, fields); err != nil {
			return err
		}
	}

	if patch.Status != nil {
		return s.transition(ctx, order, *patch.Status)
	}
	return nil
}

func (s *orderService) SetStatus(ctx context.Context, actor auth.Principal, id uint, status models.OrderStatus) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}
	return s.transition(ctx, order, status)
}

// transition applies the status state machine. The write is conditional on
// the previously read status, so of two concurrent identical transitions
// only one can win the swap and run the completion side effects.
func (s *orderService) transition(ctx context.Context, order *models.Order, status models.OrderStatus) error {
	if status == "" {
		return fmt.Errorf("%w: status is required", ErrInvalidOrder)
	}
	if order.Status == status {
		// Re-saving an already applied status repeats no side effects.
		return nil
	}
	if order.Status.IsTerminal() {
		return fmt.Errorf("%w: order is already %s", ErrInvalidTransition, order.Status)
	}
	if status == models.OrderPending {
		return fmt.Errorf("%w: cannot re-enter pending", ErrInvalidTransition)
	}

	swapped, err := s.orderRepo.UpdateStatusIf(ctx, order.ID, order.Status, status)
	if err != nil {
		return err
	}
	if !swapped {
		return ErrConflict
	}

	if status == models.OrderCompleted {
		s.completeOrder(ctx, order)
	}
	return nil
}

// completeOrder runs the side-effect batch for an order that just entered
// the completed status: one sale record, then per-item stock decrements.
// Failures here are logged, never rolled back; the status write already
// committed.
func (s *orderService) completeOrder(ctx context.Context, order *models.Order) {
	metrics.OrdersCompleted.Inc()

	if _, err := s.sales.Record(ctx, order); err != nil {
		s.log.Error("sale record failed for completed order",
			zap.Uint("order_id", order.ID),
			zap.Error(err))
	} else {
		metrics.SalesRecorded.Inc()
	}

	for _, it := range order.Items {
		s.stock.Decrement(ctx, it.ProductID, it.Quantity)
	}
}

func (s *orderService) Delete(ctx context.Context, actor auth.Principal, id uint) error {
	if !actor.IsAdmin() {
		return ErrForbidden
	}
	if _, err := s.getOrder(ctx, id); err != nil {
		return err
	}
	return s.orderRepo.Delete(ctx, id)
}

func (s *orderService) getOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func ownedBy(order *models.Order, userID uint) bool {
	return order.OwnerUserID != nil && *order.OwnerUserID == userID
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
