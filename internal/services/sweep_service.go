package services

import (
	"context"
	"time"

	"storefront/internal/metrics"
	"storefront/internal/models"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

const (
	sweepLockKey = "sweep:run"
	sweepLockTTL = 10 * time.Minute

	// HistoryCap bounds the archived-order listing.
	HistoryCap = 100
)

// Locker provides mutual exclusion for jobs that must not overlap.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

type SweepResult struct {
	Deleted  int `json:"deleted"`
	Archived int `json:"archived"`
}

// SweepService purges aged cancelled orders and moves aged completed orders
// into the history store. The two passes are independent; each order is an
// independently retryable unit of work, so a failure mid-pass only skips
// that order.
type SweepService interface {
	Run(ctx context.Context, now time.Time) (SweepResult, error)
	History(ctx context.Context, limit int) ([]models.ArchivedOrder, error)
}

type sweepService struct {
	orderRepo   repository.OrderRepository
	archiveRepo repository.ArchiveRepository
	locker      Locker
	window      time.Duration
	log         *zap.Logger
}

func NewSweepService(orderRepo repository.OrderRepository, archiveRepo repository.ArchiveRepository, locker Locker, window time.Duration, log *zap.Logger) SweepService {
	return &sweepService{
		orderRepo:   orderRepo,
		archiveRepo: archiveRepo,
		locker:      locker,
		window:      window,
		log:         log,
	}
}

func (s *sweepService) Run(ctx context.Context, now time.Time) (SweepResult, error) {
	var result SweepResult

	if s.locker != nil {
		acquired, err := s.locker.TryLock(ctx, sweepLockKey, sweepLockTTL)
		if err != nil {
			return result, err
		}
		if !acquired {
			return result, ErrSweepRunning
		}
		defer func() {
			if err := s.locker.Unlock(context.Background(), sweepLockKey); err != nil {
				s.log.Warn("sweep lock release failed", zap.Error(err))
			}
		}()
	}

	cutoff := now.Add(-s.window)

	cancelled, err := s.orderRepo.FindTerminalOlderThan(ctx, models.CancelledStatuses(), cutoff)
	if err != nil {
		return result, err
	}
	for _, order := range cancelled {
		if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
			s.log.Warn("sweep delete failed", zap.Uint("order_id", order.ID), zap.Error(err))
			continue
		}
		result.Deleted++
	}

	completed, err := s.orderRepo.FindTerminalOlderThan(ctx, []string{string(models.OrderCompleted)}, cutoff)
	if err != nil {
		return result, err
	}
	for i := range completed {
		order := completed[i]
		if err := s.archiveRepo.Create(ctx, models.NewArchivedOrder(&order, now)); err != nil {
			// Keep the live order; the next sweep retries it.
			s.log.Warn("sweep archive failed", zap.Uint("order_id", order.ID), zap.Error(err))
			continue
		}
		if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
			s.log.Warn("sweep delete after archive failed", zap.Uint("order_id", order.ID), zap.Error(err))
			continue
		}
		result.Archived++
	}

	metrics.SweepDeleted.Add(float64(result.Deleted))
	metrics.SweepArchived.Add(float64(result.Archived))
	s.log.Info("sweep finished",
		zap.Int("deleted", result.Deleted),
		zap.Int("archived", result.Archived))
	return result, nil
}

func (s *sweepService) History(ctx context.Context, limit int) ([]models.ArchivedOrder, error) {
	if limit <= 0 || limit > HistoryCap {
		limit = HistoryCap
	}
	return s.archiveRepo.ListRecent(ctx, limit)
}
