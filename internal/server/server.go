//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pupkingeorgij/logistics-service/internal/metrics"
	"github.com/pupkingeorgij/logistics-service/internal/storage"
)

type Storage interface {
	CreateShipment(ctx context.Context, shipment storage.Shipment) (*storage.Shipment, error)
	GetShipment(ctx context.Context, shipmentID string) (*storage.Shipment, error)
	UpdateShipmentLocation(ctx context.Context, shipmentID, location, status, notes string) (*storage.Shipment, error)
	ListShipments(ctx context.Context, statusFilter string) ([]*storage.Shipment, error)
	CreateOrder(ctx context.Context, order storage.Order) (*storage.Order, error)
	GetOrder(ctx context.Context, orderID string) (*storage.Order, error)
	AddInventoryItem(ctx context.Context, item storage.InventoryItem) (*storage.InventoryItem, error)
	GetInventoryItem(ctx context.Context, itemID string) (*storage.InventoryItem, error)
	ListInventory(ctx context.Context) ([]*storage.InventoryItem, error)
	UpdateStock(ctx context.Context, itemID string, quantity int) (*storage.InventoryItem, error)
}

type Server struct {
	storage      Storage
	logger       *zap.Logger
	server       *http.Server
	AuditManager *AuditManager
}

func New(stg Storage, auditManager *AuditManager, logger *zap.Logger) *Server {
	return &Server{
		storage:      stg,
		logger:       logger,
		AuditManager: auditManager,
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(ctx)

	s.logger.Info("server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if s.server != nil {
		if err := s.server.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.logger.Info("HTTP server shutdown completed")

	s.AuditManager.Shutdown(ctx)
	s.logger.Info("server shutdown completed")

	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/", s.handleServiceInfo).Methods(http.MethodGet)
	router.HandleFunc("/api", s.handleServiceInfo).Methods(http.MethodGet)

	router.HandleFunc("/shipment", s.handleCreateShipment).Methods(http.MethodPost)
	router.HandleFunc("/shipment/{id}", s.handleGetShipment).Methods(http.MethodGet)
	router.HandleFunc("/shipment/{id}/location", s.handleUpdateShipmentLocation).Methods(http.MethodPut)
	router.HandleFunc("/shipments", s.handleListShipments).Methods(http.MethodGet)

	router.HandleFunc("/order", s.handleCreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/order/{id}", s.handleGetOrder).Methods(http.MethodGet)

	router.HandleFunc("/inventory", s.handleListInventory).Methods(http.MethodGet)
	router.HandleFunc("/inventory", s.handleAddInventoryItem).Methods(http.MethodPost)
	router.HandleFunc("/inventory/{id}", s.handleGetInventoryItem).Methods(http.MethodGet)
	router.HandleFunc("/inventory/{id}/stock", s.handleUpdateStock).Methods(http.MethodPut)

	router.HandleFunc("/route/optimize", s.handleOptimizeRoute).Methods(http.MethodPost)

	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Resource not found")
	})

	return s.recoverMiddleware(s.auditLogMiddleware(router))
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("panic while serving request",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
				respondError(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStorageError maps storage sentinels onto the HTTP error surface.
// Anything unrecognized becomes a generic 500 with no internal detail.
func (s *Server) respondStorageError(w http.ResponseWriter, operation string, err error, notFoundMsg, conflictMsg string) {
	metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()

	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondError(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, storage.ErrAlreadyExists):
		respondError(w, http.StatusConflict, conflictMsg)
	case errors.Is(err, storage.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("storage operation failed",
			zap.String("operation", operation),
			zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
