package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"reelstore/internal/models"
	"reelstore/internal/pay"
	"reelstore/internal/repositories"
)

// OrderService creates pending orders against the payment gateway.
type OrderService struct {
	Orders   repositories.OrderStore
	Gateway  *pay.Client
	Catalog  *models.Catalog
	Currency string
}

// CreateOrder validates the request, registers an order with the gateway and
// stores the pending entry. The item list is snapshotted from the catalog at
// this moment so later catalog edits cannot change what was sold.
func (s *OrderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (models.CreateOrderResponse, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Mobile = strings.TrimSpace(req.Mobile)

	if req.FullName == "" {
		return models.CreateOrderResponse{}, fmt.Errorf("%w: fullName is required", models.ErrValidation)
	}
	if req.Email == "" {
		return models.CreateOrderResponse{}, fmt.Errorf("%w: email is required", models.ErrValidation)
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return models.CreateOrderResponse{}, fmt.Errorf("%w: email is malformed", models.ErrValidation)
	}
	if req.Mobile == "" {
		return models.CreateOrderResponse{}, fmt.Errorf("%w: mobile is required", models.ErrValidation)
	}

	pkg, err := s.Catalog.Get(req.PackageID)
	if err != nil {
		return models.CreateOrderResponse{}, fmt.Errorf("%w: unknown package %q", models.ErrValidation, req.PackageID)
	}

	gw, err := s.Gateway.CreateOrder(ctx, pay.CreateOrderRequest{
		Amount:   pkg.Price,
		Currency: s.Currency,
		Receipt:  "rcpt_" + uuid.NewString(),
		Notes: map[string]string{
			"package": pkg.ID,
			"email":   req.Email,
		},
	})
	if err != nil {
		return models.CreateOrderResponse{}, err
	}

	order := models.PendingOrder{
		OrderID: gw.OrderID,
		Customer: models.Customer{
			FullName: req.FullName,
			Email:    req.Email,
			Mobile:   req.Mobile,
		},
		PackageID:         pkg.ID,
		Items:             pkg.Items,
		Amount:            pkg.Price,
		Currency:          s.Currency,
		CreatedAt:         time.Now(),
		GatewaySessionRef: gw.CheckoutRef,
	}
	if err := s.Orders.Put(ctx, order); err != nil {
		return models.CreateOrderResponse{}, err
	}

	return models.CreateOrderResponse{
		OrderID:           order.OrderID,
		Amount:            order.Amount,
		Currency:          order.Currency,
		GatewaySessionRef: order.GatewaySessionRef,
	}, nil
}
