package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reconciliation loop metrics.
var (
	CyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_cycles_total",
		Help: "Completed reconciliation cycles.",
	})
	CyclesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_cycles_skipped_total",
		Help: "Ticks skipped because the previous cycle was still running.",
	})
	ChannelsEvaluated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_channels_evaluated_total",
		Help: "Channels evaluated across all cycles.",
	})
	ChannelsIgnored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "reconcile_channels_ignored_total",
		Help: "Channels permanently ignored after a failed mapping resolution.",
	})
	StatusPushes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reconcile_status_pushes_total",
		Help: "Status updates pushed to the product-status endpoint.",
	}, []string{"result"})
)

// Checkout service metrics.
var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_created_total",
		Help: "Orders persisted from completed checkout sessions.",
	})
	OrdersDuplicate = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_orders_duplicate_total",
		Help: "Duplicate webhook deliveries resolved as benign.",
	})
	OrdersForwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_orders_forwarded_total",
		Help: "Orders forwarded to the automation webhook.",
	}, []string{"result"})
)
