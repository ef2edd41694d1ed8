package httpserver

import (
	"log"
	"net/http"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"

	"github.com/gin-gonic/gin"
)

type handlers struct {
	deps   Deps
	logger *log.Logger
}

type cartItemRequest struct {
	ItemID   string `json:"itemId"`
	Size     string `json:"size"`
	Quantity *int   `json:"quantity"`
}

type listRequest struct {
	Query string `json:"query"`
}

type statusRequest struct {
	OrderID string `json:"orderId"`
	Status  string `json:"status"`
}

type orderRequest struct {
	OrderID string `json:"orderId"`
}

func (h *handlers) listProducts(c *gin.Context) {
	products, err := h.deps.ProductSvc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	succeed(c, gin.H{"products": products})
}

func (h *handlers) addToCart(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	if _, err := h.deps.CartSvc.Add(c.Request.Context(), identityFrom(c).UserID, req.ItemID, req.Size, qty); err != nil {
		writeError(c, h.logger, err)
		return
	}
	succeed(c, gin.H{"message": "Added To Cart"})
}

func (h *handlers) updateCart(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	if req.Quantity == nil {
		fail(c, http.StatusBadRequest, "quantity required")
		return
	}
	if _, err := h.deps.CartSvc.Update(c.Request.Context(), identityFrom(c).UserID, req.ItemID, req.Size, *req.Quantity); err != nil {
		writeError(c, h.logger, err)
		return
	}
	succeed(c, gin.H{"message": "Cart Updated"})
}

func (h *handlers) getCart(c *gin.Context) {
	cart, err := h.deps.CartSvc.Get(c.Request.Context(), identityFrom(c).UserID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	succeed(c, gin.H{"cartData": cart})
}

func (h *handlers) clearCart(c *gin.Context) {
	if err := h.deps.CartSvc.Clear(c.Request.Context(), identityFrom(c).UserID); err != nil {
		writeError(c, h.logger, err)
		return
	}
	succeed(c, gin.H{"message": "Cart Cleared"})
}

func (h *handlers) cartTotal(c *gin.Context) {
	totals, err := h.deps.CartSvc.Totals(c.Request.Context(), identityFrom(c).UserID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	succeed(c, gin.H{"count": totals.Count, "totals": totals.Breakdown})
}

func (h *handlers) placeOrder(c *gin.Context) {
	var req ordersvc.PlaceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	order, err := h.deps.OrderSvc.Place(c.Request.Context(), identityFrom(c).UserID, req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	succeed(c, gin.H{"message": "Order Placed", "order": order})
}

func (h *handlers) userOrders(c *gin.Context) {
	var req listRequest
	_ = c.ShouldBindJSON(&req)
	orders, err := h.deps.OrderSvc.ListForUser(c.Request.Context(), identityFrom(c).UserID, req.Query)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	succeed(c, gin.H{"orders": nonNil(orders)})
}

func (h *handlers) allOrders(c *gin.Context) {
	var req listRequest
	_ = c.ShouldBindJSON(&req)
	orders, err := h.deps.OrderSvc.ListAll(c.Request.Context(), req.Query)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	succeed(c, gin.H{"orders": nonNil(orders)})
}

func (h *handlers) updateStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	changed, err := h.deps.OrderSvc.UpdateStatus(c.Request.Context(), req.OrderID, req.Status)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	msg := "Status Updated"
	if !changed {
		msg = "Status Unchanged"
	}
	succeed(c, gin.H{"message": msg, "changed": changed})
}

func (h *handlers) markPaid(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	changed, err := h.deps.OrderSvc.MarkPaid(c.Request.Context(), req.OrderID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	msg := "Payment Recorded"
	if !changed {
		msg = "Already Paid"
	}
	succeed(c, gin.H{"message": msg, "changed": changed})
}

func (h *handlers) orderInvoice(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}
	id := identityFrom(c)
	inv, err := h.deps.OrderSvc.Invoice(c.Request.Context(), id.UserID, id.Admin, req.OrderID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	succeed(c, gin.H{"invoice": inv})
}

func nonNil(orders []domain.Order) []domain.Order {
	if orders == nil {
		return []domain.Order{}
	}
	return orders
}
