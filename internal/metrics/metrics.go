package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_created_total",
		Help: "Orders accepted by the order service.",
	})
	OrdersCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_orders_completed_total",
		Help: "Orders that transitioned into the completed status.",
	})
	SalesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_sales_recorded_total",
		Help: "Sale records written on order completion.",
	})
	StockDecrementFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_stock_decrement_failures_total",
		Help: "Per-item stock adjustments skipped because the product was missing or the update failed.",
	})
	SweepArchived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_sweep_archived_total",
		Help: "Completed orders moved to the history store by the sweep.",
	})
	SweepDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_sweep_deleted_total",
		Help: "Cancelled orders purged by the sweep.",
	})
	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_events_dropped_total",
		Help: "Best-effort notification events that could not be published.",
	})
)
