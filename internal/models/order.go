package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRecord is the finalized order as written to the order event sink. The
// WhatsApp message stays the channel of record for the restaurant; this is
// the machine-readable copy.
type OrderRecord struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	DeliveryType string          `json:"delivery_type"`
	Address      string          `json:"address,omitempty"`
	TableNumber  string          `json:"table_number,omitempty"`
	Items        []CartItem      `json:"items"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	PlacedAt     time.Time       `json:"placed_at"`
}
