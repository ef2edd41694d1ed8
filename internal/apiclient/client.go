// Package apiclient talks to the storefront API on behalf of a signed-in user.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain"
)

// Error is a structured failure returned by the API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New returns a client for baseURL. An empty token only reaches public routes.
func New(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), token: token, http: httpClient}
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var out struct {
		Products []domain.Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/product/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

func (c *Client) AddToCart(ctx context.Context, productID, size string, qty int) error {
	body := map[string]interface{}{"itemId": productID, "size": size, "quantity": qty}
	return c.do(ctx, http.MethodPost, "/api/cart/add", body, nil)
}

func (c *Client) UpdateCart(ctx context.Context, productID, size string, qty int) error {
	body := map[string]interface{}{"itemId": productID, "size": size, "quantity": qty}
	return c.do(ctx, http.MethodPost, "/api/cart/update", body, nil)
}

func (c *Client) GetCart(ctx context.Context) (domain.Cart, error) {
	var out struct {
		CartData domain.Cart `json:"cartData"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/cart/get", struct{}{}, &out); err != nil {
		return domain.Cart{}, err
	}
	return out.CartData, nil
}

func (c *Client) ClearCart(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/cart/clear", struct{}{}, nil)
}

func (c *Client) UserOrders(ctx context.Context) ([]domain.Order, error) {
	return c.orders(ctx, "/api/order/userorders")
}

// AllOrders needs an admin token.
func (c *Client) AllOrders(ctx context.Context) ([]domain.Order, error) {
	return c.orders(ctx, "/api/order/list")
}

func (c *Client) UpdateStatus(ctx context.Context, orderID, status string) (bool, error) {
	var out struct {
		Changed bool `json:"changed"`
	}
	body := map[string]string{"orderId": orderID, "status": status}
	if err := c.do(ctx, http.MethodPost, "/api/order/status", body, &out); err != nil {
		return false, err
	}
	return out.Changed, nil
}

func (c *Client) orders(ctx context.Context, path string) ([]domain.Order, error) {
	var out struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := c.do(ctx, http.MethodPost, path, struct{}{}, &out); err != nil {
		return nil, err
	}
	return out.Orders, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("token", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		return &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
