package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pupkingeorgij/logistics-service/internal/metrics"
)

// MemoryStorage holds the three service collections. One instance is shared
// by all requests; each collection has its own lock. All reads return copies
// so callers never alias store-owned memory. Listings preserve insertion
// order. Nothing survives a restart.
type MemoryStorage struct {
	shipmentsMu sync.RWMutex
	shipments   map[string]*Shipment
	shipmentIDs []string

	ordersMu sync.RWMutex
	orders   map[string]*Order
	orderIDs []string

	inventoryMu sync.RWMutex
	inventory   map[string]*InventoryItem
	itemIDs     []string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		shipments: make(map[string]*Shipment),
		orders:    make(map[string]*Order),
		inventory: make(map[string]*InventoryItem),
	}
}

func (s *MemoryStorage) CreateShipment(_ context.Context, shipment Shipment) (*Shipment, error) {
	if shipment.ID == "" {
		return nil, fmt.Errorf("shipment id is required: %w", ErrInvalidInput)
	}

	s.shipmentsMu.Lock()
	defer s.shipmentsMu.Unlock()

	if _, exists := s.shipments[shipment.ID]; exists {
		return nil, fmt.Errorf("shipment %s: %w", shipment.ID, ErrAlreadyExists)
	}

	shipment.Status = StatusPending
	shipment.CurrentLocation = shipment.Origin
	shipment.CreatedAt = time.Now().UTC()
	shipment.TrackingHistory = []TrackingEvent{}

	s.shipments[shipment.ID] = &shipment
	s.shipmentIDs = append(s.shipmentIDs, shipment.ID)
	metrics.CollectionItems.WithLabelValues("shipments").Set(float64(len(s.shipments)))

	return shipment.clone(), nil
}

func (s *MemoryStorage) GetShipment(_ context.Context, shipmentID string) (*Shipment, error) {
	s.shipmentsMu.RLock()
	defer s.shipmentsMu.RUnlock()

	shipment, found := s.shipments[shipmentID]
	if !found {
		return nil, fmt.Errorf("shipment %s: %w", shipmentID, ErrNotFound)
	}
	return shipment.clone(), nil
}

func (s *MemoryStorage) UpdateShipmentLocation(_ context.Context, shipmentID, location, status, notes string) (*Shipment, error) {
	if location == "" {
		return nil, fmt.Errorf("location is required: %w", ErrInvalidInput)
	}
	if status == "" {
		status = StatusInTransit
	}

	s.shipmentsMu.Lock()
	defer s.shipmentsMu.Unlock()

	shipment, found := s.shipments[shipmentID]
	if !found {
		return nil, fmt.Errorf("shipment %s: %w", shipmentID, ErrNotFound)
	}

	shipment.CurrentLocation = location
	shipment.Status = status
	shipment.TrackingHistory = append(shipment.TrackingHistory, TrackingEvent{
		Location:  location,
		Status:    status,
		Timestamp: time.Now().UTC(),
		Notes:     notes,
	})

	return shipment.clone(), nil
}

func (s *MemoryStorage) ListShipments(_ context.Context, statusFilter string) ([]*Shipment, error) {
	s.shipmentsMu.RLock()
	defer s.shipmentsMu.RUnlock()

	shipments := make([]*Shipment, 0, len(s.shipmentIDs))
	for _, id := range s.shipmentIDs {
		shipment := s.shipments[id]
		if statusFilter != "" && shipment.Status != statusFilter {
			continue
		}
		shipments = append(shipments, shipment.clone())
	}
	return shipments, nil
}

func (s *MemoryStorage) CreateOrder(_ context.Context, order Order) (*Order, error) {
	if order.ID == "" {
		return nil, fmt.Errorf("order id is required: %w", ErrInvalidInput)
	}

	s.ordersMu.Lock()
	defer s.ordersMu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return nil, fmt.Errorf("order %s: %w", order.ID, ErrAlreadyExists)
	}

	order.Status = OrderStatusCreated
	order.CreatedAt = time.Now().UTC()

	s.orders[order.ID] = &order
	s.orderIDs = append(s.orderIDs, order.ID)
	metrics.CollectionItems.WithLabelValues("orders").Set(float64(len(s.orders)))

	return order.clone(), nil
}

func (s *MemoryStorage) GetOrder(_ context.Context, orderID string) (*Order, error) {
	s.ordersMu.RLock()
	defer s.ordersMu.RUnlock()

	order, found := s.orders[orderID]
	if !found {
		return nil, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
	}
	return order.clone(), nil
}

func (s *MemoryStorage) AddInventoryItem(_ context.Context, item InventoryItem) (*InventoryItem, error) {
	if item.ID == "" {
		return nil, fmt.Errorf("item id is required: %w", ErrInvalidInput)
	}
	if item.Quantity < 0 {
		return nil, fmt.Errorf("quantity must be non-negative: %w", ErrInvalidInput)
	}

	s.inventoryMu.Lock()
	defer s.inventoryMu.Unlock()

	if _, exists := s.inventory[item.ID]; exists {
		return nil, fmt.Errorf("item %s: %w", item.ID, ErrAlreadyExists)
	}

	if item.Location == "" {
		item.Location = DefaultItemLocation
	}
	if item.Category == "" {
		item.Category = DefaultItemCategory
	}
	item.LastUpdated = time.Now().UTC()

	s.inventory[item.ID] = &item
	s.itemIDs = append(s.itemIDs, item.ID)
	metrics.CollectionItems.WithLabelValues("inventory").Set(float64(len(s.inventory)))

	return item.clone(), nil
}

func (s *MemoryStorage) GetInventoryItem(_ context.Context, itemID string) (*InventoryItem, error) {
	s.inventoryMu.RLock()
	defer s.inventoryMu.RUnlock()

	item, found := s.inventory[itemID]
	if !found {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}
	return item.clone(), nil
}

func (s *MemoryStorage) ListInventory(_ context.Context) ([]*InventoryItem, error) {
	s.inventoryMu.RLock()
	defer s.inventoryMu.RUnlock()

	items := make([]*InventoryItem, 0, len(s.itemIDs))
	for _, id := range s.itemIDs {
		items = append(items, s.inventory[id].clone())
	}
	return items, nil
}

func (s *MemoryStorage) UpdateStock(_ context.Context, itemID string, quantity int) (*InventoryItem, error) {
	if quantity < 0 {
		return nil, fmt.Errorf("quantity must be non-negative: %w", ErrInvalidInput)
	}

	s.inventoryMu.Lock()
	defer s.inventoryMu.Unlock()

	item, found := s.inventory[itemID]
	if !found {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}

	item.Quantity = quantity
	item.LastUpdated = time.Now().UTC()

	return item.clone(), nil
}
