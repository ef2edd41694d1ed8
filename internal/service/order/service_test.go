package order

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain"
	"storefront/internal/pricing"

	"github.com/shopspring/decimal"
)

type stubOrders struct {
	orders      map[string]domain.Order
	seq         int64
	createErr   error
	updateCalls int
	lastStatus  domain.OrderStatus
	paidCalls   int
}

func newStubOrders() *stubOrders {
	return &stubOrders{orders: map[string]domain.Order{}}
}

func (s *stubOrders) Create(_ context.Context, o domain.Order) (*domain.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.seq++
	o.Seq = s.seq
	s.orders[o.ID] = o
	return &o, nil
}

func (s *stubOrders) GetByID(_ context.Context, id string) (*domain.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &o, nil
}

func (s *stubOrders) ListAll(_ context.Context) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out, nil
}

func (s *stubOrders) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *stubOrders) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) error {
	s.updateCalls++
	s.lastStatus = status
	o := s.orders[id]
	o.Status = status
	s.orders[id] = o
	return nil
}

func (s *stubOrders) MarkPaid(_ context.Context, id string) error {
	s.paidCalls++
	o := s.orders[id]
	o.Payment = true
	s.orders[id] = o
	return nil
}

type stubCarts struct {
	carts     map[string]domain.Cart
	deleteErr error
	deleted   []string
}

func (s *stubCarts) Get(_ context.Context, userID string) (domain.Cart, error) {
	if c, ok := s.carts[userID]; ok {
		return c.Clone(), nil
	}
	return domain.NewCart(), nil
}

func (s *stubCarts) Delete(_ context.Context, userID string) error {
	s.deleted = append(s.deleted, userID)
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.carts, userID)
	return nil
}

type stubCatalog struct {
	catalog domain.Catalog
}

func (s *stubCatalog) Snapshot(_ context.Context) (domain.Catalog, error) {
	return s.catalog, nil
}

const (
	idA = "0f8e2a54-6b7c-4d9e-8a1b-2c4d6e8f0a01"
	idB = "0f8e2a54-6b7c-4d9e-8a1b-2c4d6e8f0a02"
	idC = "0f8e2a54-6b7c-4d9e-8a1b-2c4d6e8f0a03"
)

func newTestService(orders *stubOrders, carts *stubCarts, catalog *stubCatalog, policy domain.TransitionPolicy, logger *log.Logger) *Service {
	svc := New(orders, carts, catalog, pricing.New(pricing.DefaultConfig()), policy, logger)
	ids := []string{idA, idB, idC}
	next := 0
	svc.newID = func() string {
		id := ids[next%len(ids)]
		next++
		return id
	}
	svc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func defaultCatalog() *stubCatalog {
	return &stubCatalog{catalog: domain.NewCatalog([]domain.Product{
		{ID: "p1", Name: "Shirt", PriceCents: 4500},
		{ID: "p2", Name: "Cap", PriceCents: 2000},
	})}
}

func TestService_PlaceFreezesItemsAndClearsCart(t *testing.T) {
	cart := domain.NewCart()
	cart.SetQuantity("p1", "M", 2)
	cart.SetQuantity("p2", "OS", 1)
	cart.SetQuantity("retired", "M", 3)

	orders := newStubOrders()
	carts := &stubCarts{carts: map[string]domain.Cart{"u1": cart}}
	catalog := defaultCatalog()
	svc := newTestService(orders, carts, catalog, nil, nil)

	order, err := svc.Place(context.Background(), "u1", PlaceInput{Address: domain.Address{City: "Pune"}})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if order.ID != idA || order.Status != domain.StatusPlaced || order.Payment {
		t.Fatalf("unexpected order header %+v", order)
	}
	if order.PaymentMethod != "COD" {
		t.Fatalf("expected default COD, got %q", order.PaymentMethod)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 frozen items, got %d", len(order.Items))
	}
	// subtotal 110 + fee 30 + tax 7 = 147
	if !order.Amount.Equal(decimal.NewFromInt(147)) || !order.DeliveryFee.Equal(decimal.NewFromInt(30)) {
		t.Fatalf("unexpected amounts amount=%s fee=%s", order.Amount, order.DeliveryFee)
	}
	if len(carts.deleted) != 1 {
		t.Fatalf("expected cart to be cleared")
	}

	// later catalog changes do not reach the stored order
	catalog.catalog["p1"] = domain.Product{ID: "p1", Name: "Shirt", PriceCents: 9900}
	stored, _ := orders.GetByID(context.Background(), idA)
	if !stored.Items[0].Price.Equal(decimal.NewFromInt(45)) {
		t.Fatalf("expected frozen price 45, got %s", stored.Items[0].Price)
	}
}

func TestService_PlaceEmptyCart(t *testing.T) {
	cart := domain.NewCart()
	cart.SetQuantity("retired", "M", 1)
	svc := newTestService(newStubOrders(), &stubCarts{carts: map[string]domain.Cart{"u1": cart}}, defaultCatalog(), nil, nil)

	if _, err := svc.Place(context.Background(), "u1", PlaceInput{}); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestService_PlaceKeepsOrderWhenCartClearFails(t *testing.T) {
	cart := domain.NewCart()
	cart.SetQuantity("p1", "M", 1)
	var buf bytes.Buffer
	carts := &stubCarts{carts: map[string]domain.Cart{"u1": cart}, deleteErr: errors.New("db gone")}
	orders := newStubOrders()
	svc := newTestService(orders, carts, defaultCatalog(), nil, log.New(&buf, "", 0))

	if _, err := svc.Place(context.Background(), "u1", PlaceInput{PaymentMethod: "Stripe"}); err != nil {
		t.Fatalf("expected order to succeed, got %v", err)
	}
	if len(orders.orders) != 1 {
		t.Fatalf("expected order to be stored")
	}
	if !strings.Contains(buf.String(), "cart clear failed") {
		t.Fatalf("expected clear failure to be logged, got %q", buf.String())
	}
}

func TestService_ListForUserNumbersNewestFirst(t *testing.T) {
	orders := newStubOrders()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orders.orders[idA] = domain.Order{ID: idA, Seq: 1, UserID: "u1", Date: base}
	orders.orders[idB] = domain.Order{ID: idB, Seq: 2, UserID: "u1", Date: base.Add(time.Hour)}
	orders.orders[idC] = domain.Order{ID: idC, Seq: 3, UserID: "u2", Date: base.Add(2 * time.Hour)}
	svc := newTestService(orders, &stubCarts{}, defaultCatalog(), nil, nil)

	list, err := svc.ListForUser(context.Background(), "u1", "")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	if len(list) != 2 || list[0].ID != idB || list[0].NumericID != 2 || list[1].NumericID != 1 {
		t.Fatalf("unexpected listing %+v", list)
	}

	all, err := svc.ListAll(context.Background(), "3")
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 1 || all[0].ID != idC {
		t.Fatalf("expected search to find order #3, got %+v", all)
	}
}

func TestService_UpdateStatus(t *testing.T) {
	orders := newStubOrders()
	orders.orders[idA] = domain.Order{ID: idA, UserID: "u1", Status: domain.StatusShipped}
	svc := newTestService(orders, &stubCarts{}, defaultCatalog(), domain.PermissivePolicy{}, nil)
	ctx := context.Background()

	changed, err := svc.UpdateStatus(ctx, idA, "shipped")
	if err != nil || changed {
		t.Fatalf("expected no-op, got changed=%v err=%v", changed, err)
	}
	if orders.updateCalls != 0 {
		t.Fatalf("expected no write for no-op")
	}

	changed, err = svc.UpdateStatus(ctx, idA, "Packing")
	if err != nil || !changed {
		t.Fatalf("permissive policy should allow backward move, got changed=%v err=%v", changed, err)
	}

	if _, err := svc.UpdateStatus(ctx, idA, "Lost"); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, "not-a-uuid", "Packing"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := svc.UpdateStatus(ctx, idB, "Packing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if orders.orders[idA].Status != domain.StatusPacking {
		t.Fatalf("invalid requests must not mutate, got %q", orders.orders[idA].Status)
	}
}

func TestService_UpdateStatusForwardPolicy(t *testing.T) {
	orders := newStubOrders()
	orders.orders[idA] = domain.Order{ID: idA, Status: domain.StatusShipped}
	svc := newTestService(orders, &stubCarts{}, defaultCatalog(), domain.ForwardPolicy{}, nil)

	if _, err := svc.UpdateStatus(context.Background(), idA, "Packing"); !errors.Is(err, domain.ErrIllegalTransition) {
		t.Fatalf("expected illegal transition, got %v", err)
	}
	if orders.updateCalls != 0 {
		t.Fatalf("rejected transition must not write")
	}
}

func TestService_MarkPaid(t *testing.T) {
	orders := newStubOrders()
	orders.orders[idA] = domain.Order{ID: idA, UserID: "u1", PaymentMethod: "COD"}
	var buf bytes.Buffer
	svc := newTestService(orders, &stubCarts{}, defaultCatalog(), nil, log.New(&buf, "", 0))
	ctx := context.Background()

	changed, err := svc.MarkPaid(ctx, idA)
	if err != nil || !changed {
		t.Fatalf("expected payment recorded, got changed=%v err=%v", changed, err)
	}
	if !orders.orders[idA].Payment {
		t.Fatalf("expected order to be paid")
	}
	if !strings.Contains(buf.String(), "marked paid") {
		t.Fatalf("expected payment to be logged, got %q", buf.String())
	}

	changed, err = svc.MarkPaid(ctx, idA)
	if err != nil || changed {
		t.Fatalf("expected no-op for paid order, got changed=%v err=%v", changed, err)
	}
	if orders.paidCalls != 1 {
		t.Fatalf("expected a single write, got %d", orders.paidCalls)
	}

	if _, err := svc.MarkPaid(ctx, "not-a-uuid"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if _, err := svc.MarkPaid(ctx, idB); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestService_InvoiceOwnership(t *testing.T) {
	orders := newStubOrders()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	orders.orders[idA] = domain.Order{ID: idA, Seq: 1, UserID: "u1", Date: base, Status: domain.StatusPlaced,
		Items: []domain.OrderItem{{ProductID: "p1", Name: "Shirt", Size: "M", Price: decimal.NewFromInt(100), Quantity: 1}}}
	orders.orders[idB] = domain.Order{ID: idB, Seq: 2, UserID: "u1", Date: base.Add(time.Minute), Status: domain.StatusPlaced}
	svc := newTestService(orders, &stubCarts{}, defaultCatalog(), nil, nil)
	ctx := context.Background()

	inv, err := svc.Invoice(ctx, "u1", false, idA)
	if err != nil {
		t.Fatalf("Invoice: %v", err)
	}
	if inv.NumericID != 1 || !inv.Subtotal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected invoice %+v", inv)
	}

	if _, err := svc.Invoice(ctx, "u2", false, idA); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected other customers to get not found, got %v", err)
	}
	if _, err := svc.Invoice(ctx, "admin-1", true, idB); err != nil {
		t.Fatalf("admin invoice: %v", err)
	}
}
