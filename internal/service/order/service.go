package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/invoice"
	"storefront/internal/pricing"
	"storefront/internal/sequence"

	"github.com/google/uuid"
)

// ErrEmptyCart is returned when checkout finds nothing priceable in the cart.
var ErrEmptyCart = errors.New("cart is empty")

type orderRepo interface {
	Create(ctx context.Context, order domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error
	MarkPaid(ctx context.Context, id string) error
}

type cartRepo interface {
	Get(ctx context.Context, userID string) (domain.Cart, error)
	Delete(ctx context.Context, userID string) error
}

type catalogSource interface {
	Snapshot(ctx context.Context) (domain.Catalog, error)
}

type Service struct {
	orders   orderRepo
	carts    cartRepo
	catalog  catalogSource
	engine   *pricing.Engine
	invoices *invoice.Calculator
	policy   domain.TransitionPolicy
	logger   *log.Logger

	now   func() time.Time
	newID func() string
}

func New(orders orderRepo, carts cartRepo, catalog catalogSource, engine *pricing.Engine, policy domain.TransitionPolicy, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if policy == nil {
		policy = domain.PermissivePolicy{}
	}
	return &Service{
		orders:   orders,
		carts:    carts,
		catalog:  catalog,
		engine:   engine,
		invoices: invoice.New(engine),
		policy:   policy,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

type PlaceInput struct {
	Address       domain.Address `json:"address"`
	PaymentMethod string         `json:"paymentMethod"`
}

// Place turns the stored cart into an order priced at current catalog
// prices, then empties the cart. A failure to clear the cart is logged
// and does not undo the order.
func (s *Service) Place(ctx context.Context, userID string, in PlaceInput) (*domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id required: %w", domain.ErrInvalidInput)
	}
	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		method = "COD"
	}

	cart, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	lines := cart.Lines(catalog)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := domain.FreezeItems(lines)
	quote := s.engine.Quote(domain.Order{Items: items}.Subtotal())

	created, err := s.orders.Create(ctx, domain.Order{
		ID:            s.newID(),
		UserID:        userID,
		Items:         items,
		Address:       in.Address,
		PaymentMethod: method,
		Status:        domain.StatusPlaced,
		Amount:        quote.Total,
		DeliveryFee:   quote.DeliveryFee,
		Discount:      quote.Discount,
		Date:          s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	if err := s.carts.Delete(ctx, userID); err != nil {
		s.logger.Printf("order service: order=%s placed but cart clear failed user=%s error=%v", created.ID, userID, err)
	}
	s.logger.Printf("order service: placed order=%s user=%s items=%d total=%s", created.ID, userID, len(items), quote.Total.StringFixed(2))
	return created, nil
}

// ListForUser numbers the customer's own orders and returns them newest
// first, optionally filtered by query.
func (s *Service) ListForUser(ctx context.Context, userID, query string) ([]domain.Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("user id required: %w", domain.ErrInvalidInput)
	}
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sequence.Find(sequence.Number(orders), query), nil
}

// ListAll numbers every order across customers.
func (s *Service) ListAll(ctx context.Context, query string) ([]domain.Order, error) {
	orders, err := s.orders.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return sequence.Find(sequence.Number(orders), query), nil
}

// UpdateStatus moves the order to rawStatus under the configured policy.
// Setting the current status again reports changed=false and writes nothing.
func (s *Service) UpdateStatus(ctx context.Context, orderID, rawStatus string) (bool, error) {
	if _, err := uuid.Parse(strings.TrimSpace(orderID)); err != nil {
		return false, fmt.Errorf("order id %q: %w", orderID, domain.ErrInvalidInput)
	}
	target, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return false, err
	}
	current, err := s.orders.GetByID(ctx, strings.TrimSpace(orderID))
	if err != nil {
		return false, err
	}
	changed, err := domain.Transition(s.policy, current.Status, target)
	if err != nil || !changed {
		return false, err
	}
	if err := s.orders.UpdateStatus(ctx, current.ID, target); err != nil {
		return false, err
	}
	s.logger.Printf("order service: order=%s status %q -> %q (policy=%s)", current.ID, current.Status, target, s.policy.Name())
	return true, nil
}

// MarkPaid records payment for an order. Reports false when the order was
// already paid.
func (s *Service) MarkPaid(ctx context.Context, orderID string) (bool, error) {
	if _, err := uuid.Parse(strings.TrimSpace(orderID)); err != nil {
		return false, fmt.Errorf("order id %q: %w", orderID, domain.ErrInvalidInput)
	}
	current, err := s.orders.GetByID(ctx, strings.TrimSpace(orderID))
	if err != nil {
		return false, err
	}
	if current.Payment {
		return false, nil
	}
	if err := s.orders.MarkPaid(ctx, current.ID); err != nil {
		return false, err
	}
	s.logger.Printf("order service: order=%s marked paid (method=%s)", current.ID, current.PaymentMethod)
	return true, nil
}

// Invoice builds the billing view of an order. Customers may only read
// their own orders; the numeric id follows the owner's listing.
func (s *Service) Invoice(ctx context.Context, requesterID string, admin bool, orderID string) (invoice.Invoice, error) {
	if _, err := uuid.Parse(strings.TrimSpace(orderID)); err != nil {
		return invoice.Invoice{}, fmt.Errorf("order id %q: %w", orderID, domain.ErrInvalidInput)
	}
	order, err := s.orders.GetByID(ctx, strings.TrimSpace(orderID))
	if err != nil {
		return invoice.Invoice{}, err
	}
	if !admin && order.UserID != requesterID {
		return invoice.Invoice{}, domain.ErrNotFound
	}

	owned, err := s.orders.ListByUser(ctx, order.UserID)
	if err != nil {
		return invoice.Invoice{}, err
	}
	for _, o := range sequence.Number(owned) {
		if o.ID == order.ID {
			order.NumericID = o.NumericID
			break
		}
	}
	return s.invoices.Build(*order), nil
}
