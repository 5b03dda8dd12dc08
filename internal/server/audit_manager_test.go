package server

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	mock_kafka "github.com/pupkingeorgij/logistics-service/internal/kafka/mocks"
)

func TestAuditManagerPublishesEntries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := mock_kafka.NewMockProducer(ctrl)
	published := make(chan AuditLogEntry, 4)

	producer.EXPECT().
		SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, key, value []byte) error {
			var entry AuditLogEntry
			require.NoError(t, json.Unmarshal(value, &entry))
			assert.Equal(t, entry.ID, string(key))
			published <- entry
			return nil
		}).
		Times(2)
	producer.EXPECT().Close().Return(nil)

	manager := NewAuditManager(1, 2, 50*time.Millisecond, producer, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	manager.LogEntry(ctx, AuditLogEntry{ID: "e1", Handler: "handleCreateShipment", StatusCode: 201})
	manager.LogEntry(ctx, AuditLogEntry{ID: "e2", Handler: "handleGetShipment", StatusCode: 200})

	got := map[string]AuditLogEntry{}
	for i := 0; i < 2; i++ {
		select {
		case entry := <-published:
			got[entry.ID] = entry
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for audit entries")
		}
	}

	assert.Equal(t, "handleCreateShipment", got["e1"].Handler)
	assert.Equal(t, 201, got["e1"].StatusCode)
	assert.Equal(t, "handleGetShipment", got["e2"].Handler)

	manager.Shutdown(context.Background())
}

func TestAuditManagerFlushesPartialBatchOnTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	producer := mock_kafka.NewMockProducer(ctrl)
	published := make(chan struct{}, 1)

	producer.EXPECT().
		SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ []byte) error {
			published <- struct{}{}
			return nil
		})
	producer.EXPECT().Close().Return(nil)

	manager := NewAuditManager(1, 10, 20*time.Millisecond, producer, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	manager.Start(ctx)

	// A single entry never fills the batch; the flush timer must kick in.
	manager.LogEntry(ctx, AuditLogEntry{ID: "solo", Handler: "handleHealth"})

	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for timer-driven flush")
	}

	manager.Shutdown(context.Background())
}

func TestGetHandlerName(t *testing.T) {
	tests := []struct {
		path     string
		method   string
		expected string
	}{
		{"/", "GET", "handleServiceInfo"},
		{"/api", "GET", "handleServiceInfo"},
		{"/shipment", "POST", "handleCreateShipment"},
		{"/shipment/S1", "GET", "handleGetShipment"},
		{"/shipment/S1/location", "PUT", "handleUpdateShipmentLocation"},
		{"/shipments", "GET", "handleListShipments"},
		{"/order", "POST", "handleCreateOrder"},
		{"/order/O1", "GET", "handleGetOrder"},
		{"/inventory", "POST", "handleAddInventoryItem"},
		{"/inventory", "GET", "handleListInventory"},
		{"/inventory/I1", "GET", "handleGetInventoryItem"},
		{"/inventory/I1/stock", "PUT", "handleUpdateStock"},
		{"/route/optimize", "POST", "handleOptimizeRoute"},
		{"/bogus", "GET", "unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, getHandlerName(tc.path, tc.method), "%s %s", tc.method, tc.path)
	}
}

func TestGetResourceID(t *testing.T) {
	assert.Equal(t, "S1", getResourceID("/shipment/S1"))
	assert.Equal(t, "S1", getResourceID("/shipment/S1/location"))
	assert.Equal(t, "O1", getResourceID("/order/O1"))
	assert.Equal(t, "I1", getResourceID("/inventory/I1/stock"))
	assert.Equal(t, "", getResourceID("/shipments"))
	assert.Equal(t, "", getResourceID("/route/optimize"))
}
