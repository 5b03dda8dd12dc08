package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pupkingeorgij/logistics-service/internal/metrics"
	"github.com/pupkingeorgij/logistics-service/internal/route"
	"github.com/pupkingeorgij/logistics-service/internal/storage"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

func (s *Server) handleServiceInfo(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "Logistics Service",
		"status":  "Running",
		"version": "2.0",
		"features": []string{
			"Shipment Tracking",
			"Inventory Management",
			"Route Optimization",
			"Order Management",
		},
	})
}

func (s *Server) handleCreateShipment(w http.ResponseWriter, r *http.Request) {
	var shipmentRequest struct {
		ShipmentID        string `json:"shipment_id"`
		Origin            string `json:"origin"`
		Destination       string `json:"destination"`
		EstimatedDelivery string `json:"estimated_delivery"`
	}

	if err := json.NewDecoder(r.Body).Decode(&shipmentRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if shipmentRequest.ShipmentID == "" || shipmentRequest.Origin == "" || shipmentRequest.Destination == "" {
		respondError(w, http.StatusBadRequest, "Missing required fields: shipment_id, origin, destination")
		return
	}

	shipment, err := s.storage.CreateShipment(r.Context(), storage.Shipment{
		ID:                shipmentRequest.ShipmentID,
		Origin:            shipmentRequest.Origin,
		Destination:       shipmentRequest.Destination,
		EstimatedDelivery: shipmentRequest.EstimatedDelivery,
	})
	if err != nil {
		s.respondStorageError(w, "create_shipment", err, "Shipment not found", "Shipment already exists")
		return
	}

	metrics.ShipmentsCreatedTotal.Inc()
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Shipment created successfully",
		"shipment": shipment,
	})
}

func (s *Server) handleGetShipment(w http.ResponseWriter, r *http.Request) {
	shipmentID := mux.Vars(r)["id"]
	if shipmentID == "" {
		respondError(w, http.StatusBadRequest, "Missing shipment ID")
		return
	}

	shipment, err := s.storage.GetShipment(r.Context(), shipmentID)
	if err != nil {
		s.respondStorageError(w, "get_shipment", err, "Shipment not found", "Shipment already exists")
		return
	}

	respondJSON(w, http.StatusOK, shipment)
}

func (s *Server) handleUpdateShipmentLocation(w http.ResponseWriter, r *http.Request) {
	shipmentID := mux.Vars(r)["id"]
	if shipmentID == "" {
		respondError(w, http.StatusBadRequest, "Missing shipment ID")
		return
	}

	var locationRequest struct {
		Location string `json:"location"`
		Status   string `json:"status"`
		Notes    string `json:"notes"`
	}

	if err := json.NewDecoder(r.Body).Decode(&locationRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if locationRequest.Location == "" {
		respondError(w, http.StatusBadRequest, "Location is required")
		return
	}

	if locationRequest.Status == "" {
		locationRequest.Status = storage.StatusInTransit
	}

	shipment, err := s.storage.UpdateShipmentLocation(r.Context(), shipmentID,
		locationRequest.Location, locationRequest.Status, locationRequest.Notes)
	if err != nil {
		s.respondStorageError(w, "update_shipment_location", err, "Shipment not found", "Shipment already exists")
		return
	}

	metrics.LocationUpdatesTotal.Inc()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Location updated successfully",
		"shipment": shipment,
	})
}

func (s *Server) handleListShipments(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")

	shipments, err := s.storage.ListShipments(r.Context(), statusFilter)
	if err != nil {
		s.respondStorageError(w, "list_shipments", err, "Shipment not found", "Shipment already exists")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(shipments),
		"shipments": shipments,
	})
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var orderRequest struct {
		OrderID  string   `json:"order_id"`
		Customer string   `json:"customer"`
		Items    []string `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&orderRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if orderRequest.OrderID == "" || orderRequest.Customer == "" || len(orderRequest.Items) == 0 {
		respondError(w, http.StatusBadRequest, "Missing required fields: order_id, customer, items")
		return
	}

	order, err := s.storage.CreateOrder(r.Context(), storage.Order{
		ID:       orderRequest.OrderID,
		Customer: orderRequest.Customer,
		Items:    orderRequest.Items,
	})
	if err != nil {
		s.respondStorageError(w, "create_order", err, "Order not found", "Order already exists")
		return
	}

	metrics.OrdersCreatedTotal.Inc()
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order created successfully",
		"order":   order,
	})
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := mux.Vars(r)["id"]
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "Missing order ID")
		return
	}

	order, err := s.storage.GetOrder(r.Context(), orderID)
	if err != nil {
		s.respondStorageError(w, "get_order", err, "Order not found", "Order already exists")
		return
	}

	respondJSON(w, http.StatusOK, order)
}

func (s *Server) handleAddInventoryItem(w http.ResponseWriter, r *http.Request) {
	var itemRequest struct {
		ItemID   string `json:"item_id"`
		Name     string `json:"name"`
		Quantity *int   `json:"quantity"`
		Location string `json:"location"`
		Category string `json:"category"`
	}

	if err := json.NewDecoder(r.Body).Decode(&itemRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if itemRequest.ItemID == "" || itemRequest.Name == "" || itemRequest.Quantity == nil {
		respondError(w, http.StatusBadRequest, "Missing required fields: item_id, name, quantity")
		return
	}

	if *itemRequest.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "Quantity must be non-negative")
		return
	}

	item, err := s.storage.AddInventoryItem(r.Context(), storage.InventoryItem{
		ID:       itemRequest.ItemID,
		Name:     itemRequest.Name,
		Quantity: *itemRequest.Quantity,
		Location: itemRequest.Location,
		Category: itemRequest.Category,
	})
	if err != nil {
		s.respondStorageError(w, "add_inventory_item", err, "Item not found", "Item already exists")
		return
	}

	metrics.InventoryItemsAddedTotal.Inc()
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Inventory item added successfully",
		"item":    item,
	})
}

func (s *Server) handleGetInventoryItem(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "Missing item ID")
		return
	}

	item, err := s.storage.GetInventoryItem(r.Context(), itemID)
	if err != nil {
		s.respondStorageError(w, "get_inventory_item", err, "Item not found", "Item already exists")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

func (s *Server) handleListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := s.storage.ListInventory(r.Context())
	if err != nil {
		s.respondStorageError(w, "list_inventory", err, "Item not found", "Item already exists")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":     len(items),
		"inventory": items,
	})
}

func (s *Server) handleUpdateStock(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]
	if itemID == "" {
		respondError(w, http.StatusBadRequest, "Missing item ID")
		return
	}

	var stockRequest struct {
		Quantity *int `json:"quantity"`
	}

	if err := json.NewDecoder(r.Body).Decode(&stockRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if stockRequest.Quantity == nil {
		respondError(w, http.StatusBadRequest, "Quantity is required")
		return
	}

	if *stockRequest.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "Quantity must be non-negative")
		return
	}

	item, err := s.storage.UpdateStock(r.Context(), itemID, *stockRequest.Quantity)
	if err != nil {
		s.respondStorageError(w, "update_stock", err, "Item not found", "Item already exists")
		return
	}

	metrics.StockUpdatesTotal.Inc()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Stock updated successfully",
		"item":    item,
	})
}

func (s *Server) handleOptimizeRoute(w http.ResponseWriter, r *http.Request) {
	var routeRequest struct {
		Start     string    `json:"start"`
		Waypoints *[]string `json:"waypoints"`
		End       string    `json:"end"`
	}

	if err := json.NewDecoder(r.Body).Decode(&routeRequest); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body: waypoints must be a list")
		return
	}

	if routeRequest.Start == "" || routeRequest.End == "" || routeRequest.Waypoints == nil {
		respondError(w, http.StatusBadRequest, "Missing required fields: start, waypoints, end")
		return
	}

	plan, err := route.Optimize(routeRequest.Start, *routeRequest.Waypoints, routeRequest.End)
	if err != nil {
		metrics.OperationErrorsTotal.WithLabelValues("optimize_route").Inc()
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	metrics.RoutesOptimizedTotal.Inc()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Route optimized successfully",
		"route":   plan,
	})
}
