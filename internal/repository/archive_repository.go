package repository

import (
	"context"

	"storefront/internal/models"

	"gorm.io/gorm"
)

type ArchiveRepository interface {
	Create(ctx context.Context, archived *models.ArchivedOrder) error
	// ListRecent returns archived orders, most recently archived first.
	ListRecent(ctx context.Context, limit int) ([]models.ArchivedOrder, error)
	GetByOriginalID(ctx context.Context, originalID uint) (*models.ArchivedOrder, error)
}

type archiveRepository struct {
	db *gorm.DB
}

func NewArchiveRepository(db *gorm.DB) ArchiveRepository {
	return &archiveRepository{db: db}
}

func (r *archiveRepository) Create(ctx context.Context, archived *models.ArchivedOrder) error {
	return r.db.WithContext(ctx).Create(archived).Error
}

func (r *archiveRepository) ListRecent(ctx context.Context, limit int) ([]models.ArchivedOrder, error) {
	var archived []models.ArchivedOrder
	err := r.db.WithContext(ctx).Order("archived_at DESC").Limit(limit).Find(&archived).Error
	return archived, err
}

func (r *archiveRepository) GetByOriginalID(ctx context.Context, originalID uint) (*models.ArchivedOrder, error) {
	var archived models.ArchivedOrder
	err := r.db.WithContext(ctx).Where("original_id = ?", originalID).First(&archived).Error
	if err != nil {
		return nil, err
	}
	return &archived, nil
}
