package models

import (
	"time"
)

// Customer identifies the buyer on an order and on the resulting redemption.
type Customer struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
}

// PendingOrder is the ephemeral record between order creation and payment
// verification. It is owned exclusively by the order store: created by
// CreateOrder, removed by a successful Consume or by the expiry sweep.
type PendingOrder struct {
	OrderID           string    `json:"orderId"`
	Customer          Customer  `json:"customer"`
	PackageID         string    `json:"packageId"`
	Items             []string  `json:"items"`
	Amount            int       `json:"amount"`
	Currency          string    `json:"currency"`
	CreatedAt         time.Time `json:"createdAt"`
	GatewaySessionRef string    `json:"gatewaySessionRef,omitempty"`
}

type CreateOrderRequest struct {
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	PackageID string `json:"packageId"`
}

type CreateOrderResponse struct {
	OrderID           string `json:"orderId"`
	Amount            int    `json:"amount"`
	Currency          string `json:"currency"`
	GatewaySessionRef string `json:"gatewaySessionRef,omitempty"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId"`
	PaymentID string `json:"paymentId"`
	Signature string `json:"signature"`
}

type VerifyPaymentResponse struct {
	DownloadToken       string   `json:"downloadToken"`
	DownloadURL         string   `json:"downloadUrl"`
	PerItemDownloadURLs []string `json:"perItemDownloadUrls"`
	Customer            Customer `json:"customer"`
}
