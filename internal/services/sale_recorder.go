package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repository"
)

// SaleRecorder appends sale records derived from completed orders. It does
// no dedup of its own; the at-most-once guarantee lives in the order
// service's status-transition gate.
type SaleRecorder interface {
	Record(ctx context.Context, order *models.Order) (uint, error)
	List(ctx context.Context) ([]models.Sale, error)
}

type saleRecorder struct {
	saleRepo repository.SaleRepository
}

func NewSaleRecorder(saleRepo repository.SaleRepository) SaleRecorder {
	return &saleRecorder{saleRepo: saleRepo}
}

func (s *saleRecorder) Record(ctx context.Context, order *models.Order) (uint, error) {
	items := make([]models.SaleItem, 0, len(order.Items))
	for _, it := range order.Items {
		items = append(items, models.SaleItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	sale := &models.Sale{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		Items:         items,
		Total:         order.Total,
		PaymentMethod: order.PaymentMethod,
	}
	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return 0, err
	}
	return sale.ID, nil
}

func (s *saleRecorder) List(ctx context.Context) ([]models.Sale, error) {
	return s.saleRepo.GetAll(ctx)
}
