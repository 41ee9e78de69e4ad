package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cardapiolabs/cardapio/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSinkAppendsPerTopic(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir)
	defer sink.Close()

	require.NoError(t, sink.WriteMessage("order_events", []byte(`{"id":"a"}`)))
	require.NoError(t, sink.WriteMessage("order_events", []byte(`{"id":"b"}`)))
	require.NoError(t, sink.WriteMessage("other", []byte(`{"id":"c"}`)))

	data, err := os.ReadFile(filepath.Join(dir, "order_events.jsonl"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `{"id":"a"}`, lines[0])
	assert.Equal(t, `{"id":"b"}`, lines[1])

	other, err := os.ReadFile(filepath.Join(dir, "other.jsonl"))
	require.NoError(t, err)
	assert.Equal(t, `{"id":"c"}`, strings.TrimSpace(string(other)))
}

func TestPublishOrder(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir)
	defer sink.Close()

	order := models.OrderRecord{
		ID:           "ord1",
		CustomerName: "Maria",
		DeliveryType: models.DeliveryTypeDelivery,
		Address:      "Rua A, 1",
		Subtotal:     decimal.NewFromFloat(37.5),
		Total:        decimal.NewFromFloat(37.5),
		Status:       models.OrderStatusPlaced,
		PlacedAt:     time.Now(),
	}
	require.NoError(t, PublishOrder(sink, "order_events", order))

	data, err := os.ReadFile(filepath.Join(dir, "order_events.jsonl"))
	require.NoError(t, err)

	var decoded models.OrderRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "ord1", decoded.ID)
	assert.Equal(t, "Maria", decoded.CustomerName)
	assert.True(t, decoded.Total.Equal(order.Total))
}

func TestForConfigDefaultsToConsole(t *testing.T) {
	sink, err := ForConfig(models.OrderLogConfig{})
	require.NoError(t, err)
	assert.IsType(t, &ConsoleSink{}, sink)
}

func TestForConfigFile(t *testing.T) {
	sink, err := ForConfig(models.OrderLogConfig{Output: "file", FilePath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileSink{}, sink)
}
