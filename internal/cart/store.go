package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/cardapiolabs/cardapio/internal/models"
	"github.com/cardapiolabs/cardapio/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Store owns the ordered line-item sequence. All cart mutations go through
// its operations; the total is always derived from the items, never held
// separately. Every mutation synchronously writes the full cart to storage
// and fires the change notification.
type Store struct {
	items    []models.CartItem
	storage  storage.Store
	slot     string
	log      *logrus.Logger
	onChange func(models.CartTotals)
}

func NewStore(st storage.Store, slot string, log *logrus.Logger) *Store {
	return &Store{storage: st, slot: slot, log: log}
}

// OnChange registers the refresh callback fired after every mutation.
func (s *Store) OnChange(fn func(models.CartTotals)) {
	s.onChange = fn
}

// Restore loads a previously saved cart. Absent or corrupt data resets to an
// empty cart; the page still loads.
func (s *Store) Restore(ctx context.Context) {
	data, err := s.storage.Get(ctx, s.slot)
	if errors.Is(err, storage.ErrNotFound) {
		return
	}
	if err != nil {
		s.log.Warnf("failed to load saved cart: %v", err)
		return
	}
	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		s.log.Warnf("saved cart is corrupt, starting empty: %v", err)
		s.items = nil
		return
	}
	s.items = items
	s.log.Infof("cart restored with %d items", len(items))
}

// Add appends a line item. Identical configurations are not merged; two adds
// stay two line items. A quantity below 1 is clamped to 1.
func (s *Store) Add(ctx context.Context, item models.CartItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	s.items = append(s.items, item)
	s.log.Infof("item added to cart: %s (x%d)", item.Name, item.Quantity)
	s.persist(ctx)
	s.notify()
}

// Remove deletes the line item at the given position. Out-of-range indexes
// are ignored.
func (s *Store) Remove(ctx context.Context, index int) {
	if index < 0 || index >= len(s.items) {
		return
	}
	removed := s.items[index]
	s.items = append(s.items[:index], s.items[index+1:]...)
	s.log.Infof("item removed from cart: %s", removed.Name)
	s.persist(ctx)
	s.notify()
}

// Clear empties the cart. Used after a successful order submission and as a
// standalone action.
func (s *Store) Clear(ctx context.Context) {
	s.items = nil
	s.log.Info("cart cleared")
	s.persist(ctx)
	s.notify()
}

// Items returns a copy of the line items in insertion order.
func (s *Store) Items() []models.CartItem {
	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) Len() int {
	return len(s.items)
}

// Totals derives (total item count, total price) from the items.
func (s *Store) Totals() models.CartTotals {
	totals := models.CartTotals{Price: decimal.Zero}
	for _, item := range s.items {
		totals.Items += item.Quantity
		totals.Price = totals.Price.Add(item.LineTotal())
	}
	return totals
}

func (s *Store) persist(ctx context.Context) {
	data, err := json.Marshal(s.items)
	if err != nil {
		s.log.Errorf("failed to serialize cart: %v", err)
		return
	}
	// A failed write only costs reload survival; the session keeps working.
	if err := s.storage.Set(ctx, s.slot, data); err != nil {
		s.log.Warnf("failed to save cart: %v", err)
	}
}

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange(s.Totals())
	}
}
