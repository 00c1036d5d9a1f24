package services

import (
	"context"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const retention = 24 * time.Hour

type sweepFixture struct {
	svc     SweepService
	orders  *fakeOrderRepo
	archive *fakeArchiveRepo
	locker  *fakeLocker
}

func newSweepFixture() *sweepFixture {
	f := &sweepFixture{
		orders:  newFakeOrderRepo(),
		archive: &fakeArchiveRepo{},
		locker:  &fakeLocker{},
	}
	f.svc = NewSweepService(f.orders, f.archive, f.locker, retention, zap.NewNop())
	return f
}

func (f *sweepFixture) seed(id uint, status models.OrderStatus, age time.Duration) {
	f.orders.put(&models.Order{
		ID:              id,
		CustomerName:    "Customer",
		CustomerPhone:   "0600000000",
		DeliveryAddress: "Somewhere",
		Status:          status,
		Total:           10,
		CreatedAt:       time.Now().Add(-age - time.Hour),
		UpdatedAt:       time.Now().Add(-age),
	})
}

func TestSweepPurgesAgedCancelledOrders(t *testing.T) {
	f := newSweepFixture()
	f.seed(1, models.OrderCancelled, 25*time.Hour)

	result, err := f.svc.Run(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, SweepResult{Deleted: 1, Archived: 0}, result)
	assert.NotContains(t, f.orders.orders, uint(1), "purged from the live store")
	_, err = f.archive.GetByOriginalID(context.Background(), 1)
	assert.Error(t, err, "cancelled orders are never archived")
}

func TestSweepPurgesLegacyCancelledSpelling(t *testing.T) {
	f := newSweepFixture()
	f.seed(1, models.OrderStatus("annulee"), 25*time.Hour)

	result, err := f.svc.Run(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Deleted)
	assert.Empty(t, f.orders.orders)
}

func TestSweepArchivesAgedCompletedOrders(t *testing.T) {
	f := newSweepFixture()
	f.seed(1, models.OrderCompleted, 25*time.Hour)

	result, err := f.svc.Run(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, SweepResult{Deleted: 0, Archived: 1}, result)
	assert.NotContains(t, f.orders.orders, uint(1), "removed from the live store")

	archived, err := f.archive.GetByOriginalID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), archived.OriginalID)
	assert.WithinDuration(t, time.Now(), archived.ArchivedAt, time.Minute)
}

func TestSweepLeavesRecentTerminalOrdersAlone(t *testing.T) {
	f := newSweepFixture()
	f.seed(1, models.OrderCancelled, time.Hour)
	f.seed(2, models.OrderCompleted, time.Hour)

	result, err := f.svc.Run(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, SweepResult{}, result)
	assert.Len(t, f.orders.orders, 2)
	assert.Empty(t, f.archive.archived)
}

func TestSweepLeavesPendingOrdersAlone(t *testing.T) {
	f := newSweepFixture()
	f.seed(1, models.OrderPending, 48*time.Hour)

	result, err := f.svc.Run(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, SweepResult{}, result)
	assert.Contains(t, f.orders.orders, uint(1))
}

func TestSweepKeepsLiveOrderWhenArchiveWriteFails(t *testing.T) {
	f := newSweepFixture()
	f.seed(1, models.OrderCompleted, 25*time.Hour)
	f.archive.err = assert.AnError

	result, err := f.svc.Run(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Archived)
	assert.Contains(t, f.orders.orders, uint(1), "next sweep can retry")
}

func TestSweepRefusesToOverlap(t *testing.T) {
	f := newSweepFixture()
	f.locker.held = true

	_, err := f.svc.Run(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrSweepRunning)
}

func TestSweepReleasesLock(t *testing.T) {
	f := newSweepFixture()

	_, err := f.svc.Run(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 1, f.locker.locks)
	assert.Equal(t, 1, f.locker.unlocks)
	assert.False(t, f.locker.held)
}

func TestHistoryCapsLimit(t *testing.T) {
	f := newSweepFixture()
	for i := 0; i < HistoryCap+20; i++ {
		f.archive.Create(context.Background(), &models.ArchivedOrder{
			OriginalID: uint(i + 1),
			ArchivedAt: time.Now(),
		})
	}

	archived, err := f.svc.History(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, archived, HistoryCap)

	archived, err = f.svc.History(context.Background(), HistoryCap+50)
	require.NoError(t, err)
	assert.Len(t, archived, HistoryCap)
}
