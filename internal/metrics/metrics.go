package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ShipmentsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logistics_shipments_created_total",
		Help: "Total number of shipments successfully created.",
	})

	LocationUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logistics_location_updates_total",
		Help: "Total number of shipment location updates applied.",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logistics_orders_created_total",
		Help: "Total number of orders successfully created.",
	})

	InventoryItemsAddedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logistics_inventory_items_added_total",
		Help: "Total number of inventory items added.",
	})

	StockUpdatesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logistics_stock_updates_total",
		Help: "Total number of inventory stock updates applied.",
	})

	RoutesOptimizedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logistics_routes_optimized_total",
		Help: "Total number of route optimization requests served.",
	})

	OperationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logistics_operation_errors_total",
		Help: "Total number of errors encountered during specific operations.",
	},
		[]string{"operation"},
	)

	CollectionItems = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "logistics_collection_items",
		Help: "Current number of records held per in-memory collection.",
	},
		[]string{"collection"},
	)
)
