package models

import (
	"time"
)

// RedemptionRecord is the durable result of a verified payment. The token is
// the only external handle; once issued it maps to exactly this record for
// the lifetime of the store. Downloaded is monotonic: false to true, never
// back.
type RedemptionRecord struct {
	Token            string     `json:"token"`
	OrderID          string     `json:"orderId"`
	GatewayPaymentID string     `json:"gatewayPaymentId"`
	Customer         Customer   `json:"customer"`
	PackageID        string     `json:"packageId"`
	Items            []string   `json:"items"`
	Amount           int        `json:"amount"`
	Currency         string     `json:"currency"`
	CompletedAt      time.Time  `json:"completedAt"`
	Downloaded       bool       `json:"downloaded"`
	DownloadedAt     *time.Time `json:"downloadedAt,omitempty"`
}

type DownloadPageResponse struct {
	Token         string   `json:"token"`
	PackageID     string   `json:"packageId"`
	Customer      Customer `json:"customer"`
	Items         []string `json:"items"`
	DownloadLinks []string `json:"downloadLinks"`
	Downloaded    bool     `json:"downloaded"`
}
