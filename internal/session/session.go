package session

import (
	"context"

	"github.com/cardapiolabs/cardapio/internal/cart"
	"github.com/cardapiolabs/cardapio/internal/models"
	"github.com/lucsky/cuid"
	"github.com/shopspring/decimal"
)

type selection struct {
	group string
	item  models.OptionItem
}

// Session is the transient state of the product currently being configured.
// It carries the base price explicitly; price is never re-derived from
// rendered output. One session is live at a time; it is discarded when the
// detail view closes.
type Session struct {
	product    models.Product
	quantity   int
	selections []selection
}

// Open starts configuring a product: quantity 1, nothing selected.
func Open(product models.Product) *Session {
	return &Session{product: product, quantity: 1}
}

func (s *Session) Product() models.Product {
	return s.product
}

func (s *Session) Quantity() int {
	return s.quantity
}

// AddQuantity adjusts quantity by delta, floored at 1. Attempts to go below
// the floor clamp silently.
func (s *Session) AddQuantity(delta int) {
	s.quantity += delta
	if s.quantity < 1 {
		s.quantity = 1
	}
}

// ToggleOption applies radio semantics for single-select groups (selecting an
// item deselects any other in the group) and checkbox semantics for
// multiple-select groups (the item toggles independently).
func (s *Session) ToggleOption(group models.OptionGroup, item models.OptionItem) {
	if group.Multiple() {
		if s.IsSelected(group.Name, item.Name) {
			s.deselect(group.Name, item.Name)
			return
		}
		s.selections = append(s.selections, selection{group: group.Name, item: item})
		return
	}
	s.deselectGroup(group.Name)
	s.selections = append(s.selections, selection{group: group.Name, item: item})
}

// IsSelected reports whether the named item of a group is currently chosen.
func (s *Session) IsSelected(group, item string) bool {
	for _, sel := range s.selections {
		if sel.group == group && sel.item.Name == item {
			return true
		}
	}
	return false
}

func (s *Session) deselect(group, item string) {
	kept := s.selections[:0]
	for _, sel := range s.selections {
		if sel.group == group && sel.item.Name == item {
			continue
		}
		kept = append(kept, sel)
	}
	s.selections = kept
}

func (s *Session) deselectGroup(group string) {
	kept := s.selections[:0]
	for _, sel := range s.selections {
		if sel.group == group {
			continue
		}
		kept = append(kept, sel)
	}
	s.selections = kept
}

// SelectedOptions lists the chosen options in selection order.
func (s *Session) SelectedOptions() []models.SelectedOption {
	opts := make([]models.SelectedOption, len(s.selections))
	for i, sel := range s.selections {
		opts[i] = models.SelectedOption{Name: sel.item.Name, Price: sel.item.Price}
	}
	return opts
}

// CurrentPrice is (base price + sum of selected deltas) × quantity,
// recomputed on every call so displays never go stale.
func (s *Session) CurrentPrice() decimal.Decimal {
	unit := s.product.Price
	for _, sel := range s.selections {
		unit = unit.Add(sel.item.Price)
	}
	return unit.Mul(decimal.NewFromInt(int64(s.quantity)))
}

// Commit materializes a line item and hands it to the cart store. The caller
// discards the session afterwards. Committing with zero option groups is
// valid.
func (s *Session) Commit(ctx context.Context, store *cart.Store) models.CartItem {
	item := models.CartItem{
		ID:        cuid.New(),
		ProductID: s.product.ID,
		Name:      s.product.Name,
		UnitPrice: s.product.Price,
		Quantity:  s.quantity,
		Options:   s.SelectedOptions(),
	}
	store.Add(ctx, item)
	return item
}
