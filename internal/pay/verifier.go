package pay

import (
	"context"
	"strings"
)

// VerifyRequest carries the gateway-specific fields a client submits after
// completing payment. The status-poll strategy only needs OrderID.
type VerifyRequest struct {
	OrderID   string
	PaymentID string
	Signature string
}

// Result is the outcome of a verification attempt. Verified=false is a final
// rejection; an error return means the outcome could not be determined.
type Result struct {
	Verified  bool
	PaymentID string
}

// Verifier decides whether a payment completed. Implementations are
// interchangeable and selected by configuration at startup.
type Verifier interface {
	Verify(ctx context.Context, req VerifyRequest) (Result, error)
}

// SignatureVerifier recomputes the gateway's HMAC signature over
// orderId|paymentId and compares it in constant time. No network call.
type SignatureVerifier struct {
	secret string
}

func NewSignatureVerifier(secret string) *SignatureVerifier {
	return &SignatureVerifier{secret: secret}
}

func (v *SignatureVerifier) Verify(_ context.Context, req VerifyRequest) (Result, error) {
	if req.OrderID == "" || req.PaymentID == "" || req.Signature == "" {
		return Result{}, nil
	}
	if !VerifyHMAC(req.OrderID, req.PaymentID, req.Signature, v.secret) {
		return Result{}, nil
	}
	return Result{Verified: true, PaymentID: req.PaymentID}, nil
}

// StatusVerifier asks the gateway which payments exist for the order and
// inspects the most recent one. A gateway failure is returned as-is so the
// order stays pending for retry.
type StatusVerifier struct {
	client *Client
}

func NewStatusVerifier(client *Client) *StatusVerifier {
	return &StatusVerifier{client: client}
}

var successStatuses = map[string]struct{}{
	"captured":  {},
	"success":   {},
	"succeeded": {},
	"paid":      {},
}

func (v *StatusVerifier) Verify(ctx context.Context, req VerifyRequest) (Result, error) {
	payments, err := v.client.ListPayments(ctx, req.OrderID)
	if err != nil {
		return Result{}, err
	}
	if len(payments) == 0 {
		return Result{}, nil
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.CreatedAt >= latest.CreatedAt {
			latest = p
		}
	}
	if _, ok := successStatuses[strings.ToLower(strings.TrimSpace(latest.Status))]; !ok {
		return Result{}, nil
	}
	return Result{Verified: true, PaymentID: latest.ID}, nil
}
