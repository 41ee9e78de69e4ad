package checkout

import (
	"github.com/cardapiolabs/cardapio/internal/cart"
	"github.com/cardapiolabs/cardapio/internal/models"
	"github.com/shopspring/decimal"
)

// Step is one stage of the linear order-completion sequence.
type Step string

const (
	StepDeliveryType Step = "delivery_type"
	StepDetails      Step = "details"
	StepReview       Step = "review"
)

// State is the snapshot of answers collected so far.
type State struct {
	DeliveryType string `json:"delivery_type"`
	Address      string `json:"address,omitempty"`
	TableNumber  string `json:"table_number,omitempty"`
	CustomerName string `json:"customer_name"`
}

// Summary holds the order figures shown on the review step. Delivery fee and
// discount are fixed at zero: the neighborhood and coupon sheets are fetched
// but intentionally not wired into totals yet.
type Summary struct {
	Subtotal    decimal.Decimal `json:"subtotal"`
	DeliveryFee decimal.Decimal `json:"delivery_fee"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// Flow is the checkout step machine. Exactly one step is current; answers
// given so far are retained within the session, and advancing performs no
// validation gate. A new Flow is created each time checkout opens.
type Flow struct {
	step  Step
	state State
	cart  *cart.Store
}

func Open(cartStore *cart.Store) *Flow {
	return &Flow{step: StepDeliveryType, cart: cartStore}
}

func (f *Flow) Step() Step {
	return f.step
}

// Next makes the named step the current one.
func (f *Flow) Next(step Step) {
	f.step = step
}

// SetDeliveryType records the delivery type. Switching types clears the
// detail field of the other type; only one of address and table number is
// ever captured.
func (f *Flow) SetDeliveryType(deliveryType string) {
	f.state.DeliveryType = deliveryType
	switch deliveryType {
	case models.DeliveryTypeDelivery:
		f.state.TableNumber = ""
	case models.DeliveryTypeLocal:
		f.state.Address = ""
	}
}

func (f *Flow) SetAddress(address string) {
	f.state.Address = address
}

func (f *Flow) SetTableNumber(table string) {
	f.state.TableNumber = table
}

func (f *Flow) SetCustomerName(name string) {
	f.state.CustomerName = name
}

func (f *Flow) State() State {
	return f.state
}

// Summary recomputes the order figures from the cart, the single source of
// truth for checkout amounts.
func (f *Flow) Summary() Summary {
	subtotal := f.cart.Totals().Price
	fee := decimal.Zero
	discount := decimal.Zero
	return Summary{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Discount:    discount,
		Total:       subtotal.Add(fee).Sub(discount),
	}
}
