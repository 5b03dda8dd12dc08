package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pupkingeorgij/logistics-service/internal/storage"
)

// startTestAPI wires the full router against a real in-memory store.
func startTestAPI(t *testing.T) *httptest.Server {
	t.Helper()

	srv := newTestServer(storage.NewMemoryStorage())

	ctx, cancel := context.WithCancel(context.Background())
	srv.AuditManager.Start(ctx)
	t.Cleanup(func() {
		cancel()
		srv.AuditManager.Shutdown(context.Background())
	})

	ts := httptest.NewServer(srv.setupRoutes())
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path, body string) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestHealthEndpoint(t *testing.T) {
	ts := startTestAPI(t)

	status, body := doRequest(t, ts, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "UP", body["status"])
}

func TestServiceInfoEndpoints(t *testing.T) {
	ts := startTestAPI(t)

	for _, path := range []string{"/", "/api"} {
		status, body := doRequest(t, ts, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Logistics Service", body["service"])
		assert.Equal(t, "Running", body["status"])
	}
}

func TestShipmentLifecycle(t *testing.T) {
	ts := startTestAPI(t)

	status, body := doRequest(t, ts, http.MethodPost, "/shipment",
		`{"shipment_id":"S1","origin":"NY","destination":"LA","estimated_delivery":"2026-09-15"}`)
	require.Equal(t, http.StatusCreated, status)

	created := body["shipment"].(map[string]interface{})
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "NY", created["current_location"])
	assert.Empty(t, created["tracking_history"])

	status, fetched := doRequest(t, ts, http.MethodGet, "/shipment/S1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, created, fetched)

	// Duplicate id conflicts and leaves the original untouched.
	status, _ = doRequest(t, ts, http.MethodPost, "/shipment",
		`{"shipment_id":"S1","origin":"Boston","destination":"Miami"}`)
	assert.Equal(t, http.StatusConflict, status)

	status, unchanged := doRequest(t, ts, http.MethodGet, "/shipment/S1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, fetched, unchanged)

	status, body = doRequest(t, ts, http.MethodPut, "/shipment/S1/location",
		`{"location":"Chicago","status":"in_transit"}`)
	require.Equal(t, http.StatusOK, status)

	updated := body["shipment"].(map[string]interface{})
	assert.Equal(t, "Chicago", updated["current_location"])
	assert.Equal(t, "in_transit", updated["status"])
	assert.Len(t, updated["tracking_history"], 1)

	status, _ = doRequest(t, ts, http.MethodPut, "/shipment/missing/location",
		`{"location":"Chicago"}`)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListShipmentsStatusFilter(t *testing.T) {
	ts := startTestAPI(t)

	for _, id := range []string{"S1", "S2", "S3"} {
		status, _ := doRequest(t, ts, http.MethodPost, "/shipment",
			`{"shipment_id":"`+id+`","origin":"NY","destination":"LA"}`)
		require.Equal(t, http.StatusCreated, status)
	}
	status, _ := doRequest(t, ts, http.MethodPut, "/shipment/S2/location",
		`{"location":"Chicago","status":"in_transit"}`)
	require.Equal(t, http.StatusOK, status)

	status, body := doRequest(t, ts, http.MethodGet, "/shipments?status=pending", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["count"])
	for _, raw := range body["shipments"].([]interface{}) {
		shipment := raw.(map[string]interface{})
		assert.Equal(t, "pending", shipment["status"])
	}

	status, body = doRequest(t, ts, http.MethodGet, "/shipments", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), body["count"])
}

func TestOrderEndpoints(t *testing.T) {
	ts := startTestAPI(t)

	status, body := doRequest(t, ts, http.MethodPost, "/order",
		`{"order_id":"O1","customer":"Acme Corp","items":["forklift","pallets"]}`)
	require.Equal(t, http.StatusCreated, status)

	order := body["order"].(map[string]interface{})
	assert.Equal(t, "created", order["status"])

	status, fetched := doRequest(t, ts, http.MethodGet, "/order/O1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, order, fetched)

	status, _ = doRequest(t, ts, http.MethodGet, "/order/missing", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doRequest(t, ts, http.MethodPost, "/order",
		`{"order_id":"O1","customer":"Acme Corp","items":["forklift"]}`)
	assert.Equal(t, http.StatusConflict, status)
}

func TestInventoryEndpoints(t *testing.T) {
	ts := startTestAPI(t)

	status, body := doRequest(t, ts, http.MethodPost, "/inventory",
		`{"item_id":"I1","name":"Widget","quantity":5}`)
	require.Equal(t, http.StatusCreated, status)

	item := body["item"].(map[string]interface{})
	assert.Equal(t, true, item["low_stock"])
	assert.Equal(t, "Warehouse", item["location"])
	assert.Equal(t, "General", item["category"])

	status, _ = doRequest(t, ts, http.MethodPost, "/inventory",
		`{"item_id":"I2","name":"Gadget","quantity":50}`)
	require.Equal(t, http.StatusCreated, status)

	status, fetched := doRequest(t, ts, http.MethodGet, "/inventory/I2", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, fetched["low_stock"])

	// Negative stock is rejected and the stored quantity stays put.
	status, _ = doRequest(t, ts, http.MethodPut, "/inventory/I2/stock", `{"quantity":-5}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, fetched = doRequest(t, ts, http.MethodGet, "/inventory/I2", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(50), fetched["quantity"])

	status, body = doRequest(t, ts, http.MethodPut, "/inventory/I2/stock", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["item"].(map[string]interface{})["low_stock"])

	status, body = doRequest(t, ts, http.MethodGet, "/inventory", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["count"])
}

func TestRouteOptimizeEndpointDeterministic(t *testing.T) {
	ts := startTestAPI(t)

	const payload = `{"start":"NY","waypoints":["Philadelphia","Baltimore"],"end":"Atlanta"}`

	status, first := doRequest(t, ts, http.MethodPost, "/route/optimize", payload)
	require.Equal(t, http.StatusOK, status)
	status, second := doRequest(t, ts, http.MethodPost, "/route/optimize", payload)
	require.Equal(t, http.StatusOK, status)

	assert.Equal(t, first, second)

	plan := first["route"].(map[string]interface{})
	assert.Equal(t, "NY", plan["start"])
	assert.Equal(t, "Atlanta", plan["end"])
	assert.ElementsMatch(t, []interface{}{"Philadelphia", "Baltimore"}, plan["waypoints"])
	assert.Equal(t, float64(3), plan["total_stops"])
	assert.Equal(t, float64(90), plan["estimated_time_minutes"])
}

func TestUnknownRouteReturnsJSON404(t *testing.T) {
	ts := startTestAPI(t)

	status, body := doRequest(t, ts, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Resource not found", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	ts := startTestAPI(t)

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
