package storefront

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cardapiolabs/cardapio/internal/cart"
	"github.com/cardapiolabs/cardapio/internal/checkout"
	"github.com/cardapiolabs/cardapio/internal/factories"
	"github.com/cardapiolabs/cardapio/internal/hours"
	"github.com/cardapiolabs/cardapio/internal/models"
	"github.com/cardapiolabs/cardapio/internal/output"
	"github.com/cardapiolabs/cardapio/internal/session"
	"github.com/cardapiolabs/cardapio/internal/sheets"
	"github.com/cardapiolabs/cardapio/internal/storage"
	"github.com/cardapiolabs/cardapio/internal/whatsapp"
	"github.com/lucsky/cuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNotLoaded   = errors.New("catalog is not loaded")
	ErrUnavailable = errors.New("product is not available")
	ErrEmptyCart   = errors.New("cart is empty")
	ErrNoCheckout  = errors.New("checkout is not open")
	ErrNoSession   = errors.New("no product is open")
	ErrUnknownID   = errors.New("unknown product")
)

// RenderState is the snapshot the render layer needs after any state change.
// It carries data only; presentation is the frontend's concern.
type RenderState struct {
	CartItems    []models.CartItem `json:"cart_items"`
	CartTotals   models.CartTotals `json:"cart_totals"`
	SessionPrice string            `json:"session_price,omitempty"`
	CheckoutStep checkout.Step     `json:"checkout_step,omitempty"`
	Summary      *checkout.Summary `json:"summary,omitempty"`
	HoursStatus  hours.Status      `json:"hours_status"`
}

// Storefront owns the page-lifetime state: catalog, cart, the one live
// selection session, the current checkout and the hours evaluator. All
// operations run on a single logical thread of control.
type Storefront struct {
	cfg     *models.Config
	log     *logrus.Logger
	catalog *models.Catalog
	cart    *cart.Store
	session *session.Session
	flow    *checkout.Flow
	hours   *hours.Evaluator
	sink    output.Sink
}

func New(cfg *models.Config, log *logrus.Logger) (*Storefront, error) {
	var store storage.Store
	switch cfg.Storage {
	case "redis":
		redisStore, err := storage.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		store = storage.NewFileStore(cfg.StoragePath)
	}

	sink, err := output.ForConfig(cfg.OrderLog)
	if err != nil {
		return nil, err
	}

	return &Storefront{
		cfg:  cfg,
		log:  log,
		cart: cart.NewStore(store, cfg.CartSlot, log),
		sink: sink,
	}, nil
}

// Load resolves the catalog and restores any saved cart. Any source failing
// abandons the whole load; the caller shows a single error and no partial
// menu is rendered.
func (sf *Storefront) Load(ctx context.Context) error {
	if sf.cfg.Demo {
		sf.catalog = factories.NewCatalogFactory(sf.cfg.DemoSeed).CreateCatalog()
		sf.log.Info("demo catalog generated")
	} else {
		client := sheets.NewClient(sf.cfg.FetchTimeout, sf.log)
		catalog, err := client.Load(ctx, sf.cfg.Sheets)
		if err != nil {
			return fmt.Errorf("não foi possível carregar o cardápio: %w", err)
		}
		sf.catalog = catalog
	}

	sf.hours = hours.NewEvaluator(sf.catalog.Hours, sf.cfg.Location())
	sf.cart.Restore(ctx)
	return nil
}

func (sf *Storefront) Catalog() *models.Catalog {
	return sf.catalog
}

func (sf *Storefront) Cart() *cart.Store {
	return sf.cart
}

// HoursStatus evaluates the open/closed indicator. Before load it reports
// closed today.
func (sf *Storefront) HoursStatus() hours.Status {
	if sf.hours == nil {
		return hours.Status{Label: models.HoursStatusClosedToday}
	}
	return sf.hours.Evaluate()
}

// OpenProduct starts a selection session for the product detail view.
// Unavailable products cannot be opened.
func (sf *Storefront) OpenProduct(id string) error {
	if sf.catalog == nil {
		return ErrNotLoaded
	}
	product := sf.catalog.ProductByID(id)
	if product == nil {
		return ErrUnknownID
	}
	if !product.Available {
		sf.log.Infof("attempt to open unavailable item: %s", product.Name)
		return ErrUnavailable
	}
	sf.session = session.Open(*product)
	return nil
}

// CloseProduct discards the live session without committing.
func (sf *Storefront) CloseProduct() {
	sf.session = nil
}

func (sf *Storefront) Session() *session.Session {
	return sf.session
}

// AddQuantity adjusts the open session's quantity.
func (sf *Storefront) AddQuantity(delta int) error {
	if sf.session == nil {
		return ErrNoSession
	}
	sf.session.AddQuantity(delta)
	return nil
}

// ToggleOption toggles the named item of the named group in the open session.
// Unknown group or item names are ignored, mirroring a click on a control
// that is not rendered.
func (sf *Storefront) ToggleOption(groupName, itemName string) error {
	if sf.session == nil {
		return ErrNoSession
	}
	for _, group := range sf.session.Product().Options {
		if group.Name != groupName {
			continue
		}
		for _, item := range group.Items {
			if item.Name == itemName {
				sf.session.ToggleOption(group, item)
				return nil
			}
		}
	}
	return nil
}

// AddToCart commits the open session into the cart and closes the detail
// view.
func (sf *Storefront) AddToCart(ctx context.Context) error {
	if sf.session == nil {
		return ErrNoSession
	}
	sf.session.Commit(ctx, sf.cart)
	sf.session = nil
	return nil
}

// OpenCheckout starts a fresh checkout flow. Partially filled answers never
// survive across checkout sessions.
func (sf *Storefront) OpenCheckout() error {
	if sf.cart.Len() == 0 {
		return ErrEmptyCart
	}
	sf.flow = checkout.Open(sf.cart)
	return nil
}

// CloseCheckout abandons the current flow.
func (sf *Storefront) CloseCheckout() {
	sf.flow = nil
}

func (sf *Storefront) Checkout() *checkout.Flow {
	return sf.flow
}

// Finalize composes the order message, emits the handoff URL, records the
// order event and clears the cart. Returns the URL to open.
func (sf *Storefront) Finalize(ctx context.Context) (string, error) {
	if sf.flow == nil {
		return "", ErrNoCheckout
	}
	if sf.cart.Len() == 0 {
		return "", ErrEmptyCart
	}

	state := sf.flow.State()
	summary := sf.flow.Summary()
	items := sf.cart.Items()

	message := whatsapp.ComposeMessage(items, state)
	url := whatsapp.HandoffURL(sf.cfg.WhatsAppPhone, message)

	record := models.OrderRecord{
		ID:           cuid.New(),
		CustomerName: state.CustomerName,
		DeliveryType: state.DeliveryType,
		Address:      state.Address,
		TableNumber:  state.TableNumber,
		Items:        items,
		Subtotal:     summary.Subtotal,
		Total:        summary.Total,
		Status:       models.OrderStatusPlaced,
		PlacedAt:     time.Now(),
	}
	if err := output.PublishOrder(sf.sink, sf.cfg.OrderLog.Topic, record); err != nil {
		// The WhatsApp message is the channel of record; the sink is best
		// effort.
		sf.log.Warnf("failed to record order event: %v", err)
	}

	sf.cart.Clear(ctx)
	sf.flow = nil
	sf.log.Info("order handed off to WhatsApp")
	return url, nil
}

// Render produces the snapshot for the frontend.
func (sf *Storefront) Render() RenderState {
	state := RenderState{
		CartItems:   sf.cart.Items(),
		CartTotals:  sf.cart.Totals(),
		HoursStatus: sf.HoursStatus(),
	}
	if sf.session != nil {
		state.SessionPrice = models.FormatPrice(sf.session.CurrentPrice())
	}
	if sf.flow != nil {
		state.CheckoutStep = sf.flow.Step()
		summary := sf.flow.Summary()
		state.Summary = &summary
	}
	return state
}
