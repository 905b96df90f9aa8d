// Package metrics holds the business counters exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sweetshop"

// UnitsPurchasedTotal counts units removed from stock by purchases.
var UnitsPurchasedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "units_purchased_total",
		Help:      "Total number of sweet units sold.",
	},
)

// UnitsRestockedTotal counts units added to stock by restocks.
var UnitsRestockedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "units_restocked_total",
		Help:      "Total number of sweet units restocked.",
	},
)

// StockRejectionsTotal counts purchase/restock calls that did not change stock.
// Labels:
//   - op: "purchase" or "restock"
//   - reason: "invalid_quantity", "not_found", "insufficient_stock"
var StockRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_rejections_total",
		Help:      "Total number of rejected stock mutations.",
	},
	[]string{"op", "reason"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts by result.",
	},
	[]string{"result"},
)

// EventPublishErrorsTotal counts catalog events that could not be delivered.
var EventPublishErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_publish_errors_total",
		Help:      "Total number of catalog events that failed to publish.",
	},
)
