package storage

import "time"

// Shipment statuses used by the service itself. Callers may submit other
// strings on location updates; they are stored as-is.
const (
	StatusPending   = "pending"
	StatusInTransit = "in_transit"
	StatusDelivered = "delivered"
)

const OrderStatusCreated = "created"

// LowStockThreshold marks inventory items that need restocking.
const LowStockThreshold = 10

const (
	DefaultItemLocation = "Warehouse"
	DefaultItemCategory = "General"
)

type Shipment struct {
	ID                string          `json:"shipment_id"`
	Origin            string          `json:"origin"`
	Destination       string          `json:"destination"`
	Status            string          `json:"status"`
	CurrentLocation   string          `json:"current_location"`
	EstimatedDelivery string          `json:"estimated_delivery,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	TrackingHistory   []TrackingEvent `json:"tracking_history"`
}

type TrackingEvent struct {
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Notes     string    `json:"notes,omitempty"`
}

type Order struct {
	ID        string    `json:"order_id"`
	Customer  string    `json:"customer"`
	Items     []string  `json:"items"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type InventoryItem struct {
	ID          string    `json:"item_id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	LowStock    bool      `json:"low_stock"`
	LastUpdated time.Time `json:"last_updated"`
}

func (s *Shipment) clone() *Shipment {
	cp := *s
	cp.TrackingHistory = make([]TrackingEvent, len(s.TrackingHistory))
	copy(cp.TrackingHistory, s.TrackingHistory)
	return &cp
}

func (o *Order) clone() *Order {
	cp := *o
	cp.Items = make([]string, len(o.Items))
	copy(cp.Items, o.Items)
	return &cp
}

// clone computes LowStock on the way out; the flag is never stored.
func (i *InventoryItem) clone() *InventoryItem {
	cp := *i
	cp.LowStock = i.Quantity < LowStockThreshold
	return &cp
}
