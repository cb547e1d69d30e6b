package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"reelstore/internal/models"
	"reelstore/internal/pay"
	"reelstore/internal/repositories"
)

func testCatalog() *models.Catalog {
	return models.NewCatalog([]models.PackageConfig{
		{
			ID:          "Starter Viral Pack",
			Price:       19900,
			Items:       []string{"Luxury_Reel_Bundle.pdf"},
			Description: "starter",
		},
		{
			ID:    "Creator Pro Pack",
			Price: 49900,
			Items: []string{"Luxury_Reel_Bundle.pdf", "Travel_Reel_Bundle.pdf"},
		},
	})
}

func fakeGateway(t *testing.T, handler http.HandlerFunc) *pay.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client, err := pay.NewClient(srv.Client(), "key", "secret", srv.URL, slog.Default())
	if err != nil {
		t.Fatalf("pay.NewClient: %v", err)
	}
	return client
}

func TestCreateOrder(t *testing.T) {
	orders := repositories.NewMemoryOrderRepo(30 * time.Minute)
	gateway := fakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"order_1","amount":19900,"currency":"INR","status":"created","checkout_ref":"chk_1"}`)
	})
	svc := &OrderService{Orders: orders, Gateway: gateway, Catalog: testCatalog(), Currency: "INR"}

	resp, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{
		FullName:  "A",
		Email:     "a@x.com",
		Mobile:    "111",
		PackageID: "Starter Viral Pack",
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if resp.OrderID != "order_1" {
		t.Fatalf("expected gateway order id, got %q", resp.OrderID)
	}
	if resp.Amount != 19900 {
		t.Fatalf("amount must come from the catalog, got %d", resp.Amount)
	}
	if resp.GatewaySessionRef != "chk_1" {
		t.Fatalf("expected checkout ref, got %q", resp.GatewaySessionRef)
	}

	order, err := orders.Consume(context.Background(), "order_1")
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	if len(order.Items) != 1 || order.Items[0] != "Luxury_Reel_Bundle.pdf" {
		t.Fatalf("items not snapshotted from catalog: %v", order.Items)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	gateway := fakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("gateway must not be called on validation failure")
	})
	svc := &OrderService{
		Orders:   repositories.NewMemoryOrderRepo(30 * time.Minute),
		Gateway:  gateway,
		Catalog:  testCatalog(),
		Currency: "INR",
	}

	cases := []struct {
		name string
		req  models.CreateOrderRequest
	}{
		{"missing name", models.CreateOrderRequest{Email: "a@x.com", Mobile: "111", PackageID: "Starter Viral Pack"}},
		{"missing email", models.CreateOrderRequest{FullName: "A", Mobile: "111", PackageID: "Starter Viral Pack"}},
		{"malformed email", models.CreateOrderRequest{FullName: "A", Email: "not-an-email", Mobile: "111", PackageID: "Starter Viral Pack"}},
		{"missing mobile", models.CreateOrderRequest{FullName: "A", Email: "a@x.com", PackageID: "Starter Viral Pack"}},
		{"unknown package", models.CreateOrderRequest{FullName: "A", Email: "a@x.com", Mobile: "111", PackageID: "Nope"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateOrder(context.Background(), tc.req); !errors.Is(err, models.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	gateway := fakeGateway(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})
	orders := repositories.NewMemoryOrderRepo(30 * time.Minute)
	svc := &OrderService{Orders: orders, Gateway: gateway, Catalog: testCatalog(), Currency: "INR"}

	_, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{
		FullName: "A", Email: "a@x.com", Mobile: "111", PackageID: "Starter Viral Pack",
	})
	var gwErr *pay.GatewayError
	if !errors.As(err, &gwErr) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if orders.Len() != 0 {
		t.Fatal("no pending order may be stored when the gateway call fails")
	}
}
