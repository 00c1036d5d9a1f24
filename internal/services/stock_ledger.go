package services

import (
	"context"

	"storefront/internal/metrics"
	"storefront/internal/repository"

	"go.uber.org/zap"
)

// StockLedger adjusts the per-product available-quantity counter. Decrements
// are clamped at zero and deliberately best effort: a missing product or a
// failed update is logged and counted, never propagated, so one bad item
// cannot block the rest of an order's stock adjustment.
type StockLedger interface {
	Decrement(ctx context.Context, productID uint, qty int)
}

type stockLedger struct {
	productRepo repository.ProductRepository
	log         *zap.Logger
}

func NewStockLedger(productRepo repository.ProductRepository, log *zap.Logger) StockLedger {
	return &stockLedger{productRepo: productRepo, log: log}
}

func (l *stockLedger) Decrement(ctx context.Context, productID uint, qty int) {
	updated, err := l.productRepo.DecrementStock(ctx, productID, qty)
	if err != nil {
		l.log.Warn("stock decrement failed",
			zap.Uint("product_id", productID),
			zap.Int("quantity", qty),
			zap.Error(err))
		metrics.StockDecrementFailures.Inc()
		return
	}
	if !updated {
		l.log.Warn("stock decrement skipped, product missing",
			zap.Uint("product_id", productID),
			zap.Int("quantity", qty))
		metrics.StockDecrementFailures.Inc()
	}
}
