package server

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		entry := AuditLogEntry{
			ID:         uuid.NewString(),
			Timestamp:  time.Now().UTC(),
			Method:     r.Method,
			Path:       r.URL.Path,
			Handler:    getHandlerName(r.URL.Path, r.Method),
			ResourceID: getResourceID(r.URL.Path),
		}

		if r.Body != nil {
			requestBody, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		entry.Response = string(wrw.GetBody())

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

func getHandlerName(path string, method string) string {
	switch {
	case path == "/" || path == "/api":
		return "handleServiceInfo"
	case path == "/shipments":
		return "handleListShipments"
	case strings.HasPrefix(path, "/shipment"):
		if method == http.MethodPost {
			return "handleCreateShipment"
		}
		if strings.HasSuffix(path, "/location") {
			return "handleUpdateShipmentLocation"
		}
		return "handleGetShipment"
	case strings.HasPrefix(path, "/order"):
		if method == http.MethodPost {
			return "handleCreateOrder"
		}
		return "handleGetOrder"
	case strings.HasPrefix(path, "/inventory"):
		if method == http.MethodPost {
			return "handleAddInventoryItem"
		}
		if strings.HasSuffix(path, "/stock") {
			return "handleUpdateStock"
		}
		if path == "/inventory" {
			return "handleListInventory"
		}
		return "handleGetInventoryItem"
	case strings.HasPrefix(path, "/route"):
		return "handleOptimizeRoute"
	}

	return "unknown"
}

// getResourceID pulls the id segment out of /shipment/{id}[/...],
// /order/{id} and /inventory/{id}[/...] paths.
func getResourceID(path string) string {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 2 {
		return ""
	}
	switch parts[0] {
	case "shipment", "order", "inventory":
		return parts[1]
	}
	return ""
}
