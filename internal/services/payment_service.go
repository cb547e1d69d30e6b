package services

import (
	"context"
	"fmt"

	"reelstore/internal/models"
	"reelstore/internal/pay"
	"reelstore/internal/repositories"
)

// RedemptionLedger is the slice of the redemption store the payment flow
// needs.
type RedemptionLedger interface {
	Issue(order models.PendingOrder, gatewayPaymentID string) (models.RedemptionRecord, error)
	Lookup(token string) (models.RedemptionRecord, error)
}

// PaymentService runs the verify-and-redeem step: strategy verification,
// atomic consume of the pending order, token issuance and the best-effort
// delivery email. The verification network call happens before any ledger is
// touched, so no lock is held while the gateway is in flight.
type PaymentService struct {
	Orders      repositories.OrderStore
	Redemptions RedemptionLedger
	Verifier    pay.Verifier
	Mailer      *MailerService
	BaseURL     string
}

// VerifyPayment turns a completed gateway payment into a download token.
// Duplicate deliveries of the same confirmation lose the race on Consume and
// observe ErrOrderNotFound, so at most one token exists per order.
func (s *PaymentService) VerifyPayment(ctx context.Context, req models.VerifyPaymentRequest) (models.VerifyPaymentResponse, error) {
	if req.OrderID == "" {
		return models.VerifyPaymentResponse{}, fmt.Errorf("%w: orderId is required", models.ErrValidation)
	}

	res, err := s.Verifier.Verify(ctx, pay.VerifyRequest{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		// Gateway unreachable: leave the order pending for retry.
		return models.VerifyPaymentResponse{}, err
	}
	if !res.Verified {
		return models.VerifyPaymentResponse{}, models.ErrPaymentRejected
	}
	paymentID := res.PaymentID
	if paymentID == "" {
		paymentID = req.PaymentID
	}

	order, err := s.Orders.Consume(ctx, req.OrderID)
	if err != nil {
		return models.VerifyPaymentResponse{}, err
	}

	rec, err := s.Redemptions.Issue(order, paymentID)
	if err != nil {
		// Put the order back so the verified payment can be retried
		// instead of stranding it with nothing to redeem.
		if putErr := s.Orders.Put(ctx, order); putErr != nil {
			return models.VerifyPaymentResponse{}, fmt.Errorf("issue token: %w (order %s could not be restored: %v)", err, order.OrderID, putErr)
		}
		return models.VerifyPaymentResponse{}, err
	}

	if s.Mailer != nil {
		s.Mailer.EnqueueDelivery(rec, s.BaseURL)
	}

	return models.VerifyPaymentResponse{
		DownloadToken:       rec.Token,
		DownloadURL:         downloadPageURL(s.BaseURL, rec.Token),
		PerItemDownloadURLs: downloadLinks(s.BaseURL, rec.Token, rec.Items),
		Customer:            rec.Customer,
	}, nil
}

// ResendEmail re-enqueues the delivery email for an existing redemption. It
// is idempotent: the record is untouched, only a message goes out.
func (s *PaymentService) ResendEmail(token string) (models.RedemptionRecord, error) {
	rec, err := s.Redemptions.Lookup(token)
	if err != nil {
		return models.RedemptionRecord{}, err
	}
	if s.Mailer != nil {
		s.Mailer.EnqueueDelivery(rec, s.BaseURL)
	}
	return rec, nil
}
