package repository

import (
	"context"

	"storefront/internal/models"

	"gorm.io/gorm"
)

// SaleRepository is append-only from the application's point of view;
// sales are the accounting trail for completed orders.
type SaleRepository interface {
	Create(ctx context.Context, sale *models.Sale) error
	GetAll(ctx context.Context) ([]models.Sale, error)
	GetByOrderID(ctx context.Context, orderID uint) ([]models.Sale, error)
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *models.Sale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *saleRepository) GetAll(ctx context.Context) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).Preload("Items").Order("created_at DESC").Find(&sales).Error
	return sales, err
}

func (r *saleRepository) GetByOrderID(ctx context.Context, orderID uint) ([]models.Sale, error) {
	var sales []models.Sale
	err := r.db.WithContext(ctx).Preload("Items").Where("order_id = ?", orderID).Find(&sales).Error
	return sales, err
}
