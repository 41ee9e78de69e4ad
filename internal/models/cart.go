package models

import "github.com/shopspring/decimal"

type SelectedOption struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CartItem is one configured product instance in the cart. Items are
// immutable once added; editing means remove and re-add.
type CartItem struct {
	ID        string           `json:"id"`
	ProductID string           `json:"product_id"`
	Name      string           `json:"name"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Quantity  int              `json:"quantity"`
	Options   []SelectedOption `json:"options,omitempty"`
}

// LineTotal is (unit price + sum of option deltas) × quantity.
func (it CartItem) LineTotal() decimal.Decimal {
	unit := it.UnitPrice
	for _, opt := range it.Options {
		unit = unit.Add(opt.Price)
	}
	return unit.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// OptionNames lists selected option names in selection order.
func (it CartItem) OptionNames() []string {
	names := make([]string, len(it.Options))
	for i, opt := range it.Options {
		names[i] = opt.Name
	}
	return names
}

// CartTotals is the derived pair shown on the cart badge and checkout summary.
type CartTotals struct {
	Items int             `json:"items"`
	Price decimal.Decimal `json:"price"`
}
