package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"reelstore/internal/models"
	"reelstore/internal/pay"
	"reelstore/internal/services"
)

type OrderHandler struct {
	Orders   *services.OrderService
	Payments *services.PaymentService
}

// CreateOrder handles POST /api/create-order.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Orders.CreateOrder(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			fail(w, http.StatusBadRequest, validationMessage(err))
		default:
			var gwErr *pay.GatewayError
			if errors.As(err, &gwErr) {
				fail(w, http.StatusInternalServerError, "payment gateway unavailable, please try again")
				return
			}
			fail(w, http.StatusInternalServerError, "failed to create order")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"message":           "order created",
		"orderId":           resp.OrderID,
		"amount":            resp.Amount,
		"currency":          resp.Currency,
		"gatewaySessionRef": resp.GatewaySessionRef,
	})
}

// VerifyPayment handles POST /api/verify-payment.
func (h *OrderHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Payments.VerifyPayment(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrValidation):
			fail(w, http.StatusBadRequest, validationMessage(err))
		case errors.Is(err, models.ErrPaymentRejected):
			fail(w, http.StatusBadRequest, "payment verification failed")
		case errors.Is(err, models.ErrOrderNotFound):
			// Already redeemed or expired; either way there is nothing to
			// consume. 400 keeps the historical verify contract.
			fail(w, http.StatusBadRequest, "order not found or expired")
		default:
			var gwErr *pay.GatewayError
			if errors.As(err, &gwErr) {
				fail(w, http.StatusInternalServerError, "could not reach payment gateway, please retry")
				return
			}
			fail(w, http.StatusInternalServerError, "verification failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":             true,
		"message":             "payment verified",
		"downloadToken":       resp.DownloadToken,
		"downloadUrl":         resp.DownloadURL,
		"perItemDownloadUrls": resp.PerItemDownloadURLs,
		"customer":            resp.Customer,
	})
}

// ResendEmail handles POST /api/resend-email.
func (h *OrderHandler) ResendEmail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Token) == "" {
		fail(w, http.StatusBadRequest, "token is required")
		return
	}

	rec, err := h.Payments.ResendEmail(req.Token)
	if err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			fail(w, http.StatusNotFound, "download token not found")
			return
		}
		fail(w, http.StatusInternalServerError, "failed to resend email")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "delivery email queued",
		"email":   rec.Customer.Email,
	})
}

// validationMessage strips the sentinel prefix so the caller sees only the
// field message.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}
