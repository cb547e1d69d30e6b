package pay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// Client is a minimal payment gateway API client. Order handles and
// authoritative payment status come from here; everything else about the
// payment happens on the gateway's hosted checkout.
type Client struct {
	httpClient *http.Client
	keyID      string
	keySecret  string
	baseURL    *url.URL
	logger     *slog.Logger
}

// NewClient constructs a gateway client.
func NewClient(httpClient *http.Client, keyID, keySecret, baseURL string, logger *slog.Logger) (*Client, error) {
	if strings.TrimSpace(keyID) == "" || strings.TrimSpace(keySecret) == "" {
		return nil, fmt.Errorf("pay: key_id/key_secret are required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: httpClient,
		keyID:      keyID,
		keySecret:  keySecret,
		baseURL:    u,
		logger:     logger,
	}, nil
}

// Secret returns the configured API secret, shared with signature checks.
func (c *Client) Secret() string { return c.keySecret }

// CreateOrderRequest describes parameters for gateway order creation.
// Amount is in minor currency units.
type CreateOrderRequest struct {
	Amount   int               `json:"amount"`
	Currency string            `json:"currency"`
	Receipt  string            `json:"receipt"`
	Notes    map[string]string `json:"notes,omitempty"`
}

// CreateOrderResponse contains the gateway-assigned order handle.
type CreateOrderResponse struct {
	OrderID     string `json:"id"`
	Amount      int    `json:"amount"`
	Currency    string `json:"currency"`
	Status      string `json:"status"`
	CheckoutRef string `json:"checkout_ref"`
}

// CreateOrder registers an order with the gateway and returns its handle.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (CreateOrderResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return CreateOrderResponse{}, err
	}

	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/orders")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return CreateOrderResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return CreateOrderResponse{}, &GatewayError{Err: err}
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		c.logger.Error("gateway order creation failed", "status", resp.Status)
		return CreateOrderResponse{}, &GatewayError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}

	var out CreateOrderResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return CreateOrderResponse{}, &GatewayError{Err: fmt.Errorf("decode order response: %w", err)}
	}
	if strings.TrimSpace(out.OrderID) == "" {
		return CreateOrderResponse{}, &GatewayError{Err: fmt.Errorf("gateway returned empty order id")}
	}
	c.logger.Info("gateway order created", "orderId", out.OrderID, "amount", out.Amount)
	return out, nil
}

// Payment is a single payment attempt reported by the gateway for an order.
type Payment struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	Status    string `json:"status"`
	Amount    int    `json:"amount"`
	Currency  string `json:"currency"`
	CreatedAt int64  `json:"created_at"`
}

// ListPayments fetches the payment attempts recorded for an order, newest
// last.
func (c *Client) ListPayments(ctx context.Context, orderID string) ([]Payment, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, "/v1/orders", url.PathEscape(orderID), "payments")

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.SetBasicAuth(c.keyID, c.keySecret)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &GatewayError{Err: err}
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		return nil, &GatewayError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(b)}
	}

	var out struct {
		Count int       `json:"count"`
		Items []Payment `json:"items"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, &GatewayError{Err: fmt.Errorf("decode payments response: %w", err)}
	}
	return out.Items, nil
}

// GatewayError means the gateway could not be consulted or answered with an
// API failure. It is distinct from a rejected payment: the caller should
// leave the order pending and let the client retry.
type GatewayError struct {
	StatusCode int
	Status     string
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("gateway error: %v", e.Err)
	}
	bt := strings.TrimSpace(e.Body)
	if bt == "" {
		return fmt.Sprintf("gateway error: %s", e.Status)
	}
	return fmt.Sprintf("gateway error: %s: %s", e.Status, bt)
}

func (e *GatewayError) Unwrap() error { return e.Err }
