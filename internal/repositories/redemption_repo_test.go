package repositories

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"reelstore/internal/models"
)

func TestRedemptionRepoIssue(t *testing.T) {
	repo, err := NewRedemptionRepo("")
	if err != nil {
		t.Fatalf("NewRedemptionRepo: %v", err)
	}

	order := testOrder("order_1", time.Now())
	rec, err := repo.Issue(order, "pay_1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if len(rec.Token) != 64 {
		t.Fatalf("expected 64 hex chars of token, got %d", len(rec.Token))
	}
	if rec.Downloaded {
		t.Fatal("new redemption must not be marked downloaded")
	}
	if rec.GatewayPaymentID != "pay_1" || rec.OrderID != "order_1" {
		t.Fatalf("gateway identifiers not copied: %+v", rec)
	}

	got, err := repo.Lookup(rec.Token)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.PackageID != order.PackageID || got.Amount != order.Amount {
		t.Fatalf("record fields not copied from order: %+v", got)
	}
}

func TestTokenUniqueness(t *testing.T) {
	seen := make(map[string]struct{}, 10000)
	for i := 0; i < 10000; i++ {
		token, err := newToken()
		if err != nil {
			t.Fatalf("newToken: %v", err)
		}
		if _, ok := seen[token]; ok {
			t.Fatalf("duplicate token after %d draws", i)
		}
		seen[token] = struct{}{}
	}
}

func TestMarkDownloadedIdempotent(t *testing.T) {
	repo, err := NewRedemptionRepo("")
	if err != nil {
		t.Fatalf("NewRedemptionRepo: %v", err)
	}
	rec, err := repo.Issue(testOrder("order_1", time.Now()), "pay_1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	first, err := repo.MarkDownloaded(rec.Token)
	if err != nil {
		t.Fatalf("MarkDownloaded: %v", err)
	}
	if !first.Downloaded || first.DownloadedAt == nil {
		t.Fatal("first call must set downloaded and its timestamp")
	}

	second, err := repo.MarkDownloaded(rec.Token)
	if err != nil {
		t.Fatalf("MarkDownloaded (second): %v", err)
	}
	if !second.Downloaded {
		t.Fatal("downloaded must stay true")
	}
	if !second.DownloadedAt.Equal(*first.DownloadedAt) {
		t.Fatal("downloadedAt must not move after the first call")
	}

	if _, err := repo.MarkDownloaded("nope"); !errors.Is(err, models.ErrTokenNotFound) {
		t.Fatalf("unknown token must return ErrTokenNotFound, got %v", err)
	}
}

func TestRedemptionSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redemptions.json")

	repo, err := NewRedemptionRepo(path)
	if err != nil {
		t.Fatalf("NewRedemptionRepo: %v", err)
	}
	rec, err := repo.Issue(testOrder("order_1", time.Now()), "pay_1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := repo.MarkDownloaded(rec.Token); err != nil {
		t.Fatalf("MarkDownloaded: %v", err)
	}

	reloaded, err := NewRedemptionRepo(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	got, err := reloaded.Lookup(rec.Token)
	if err != nil {
		t.Fatalf("Lookup after reload: %v", err)
	}
	if !got.Downloaded || got.DownloadedAt == nil {
		t.Fatal("downloaded state lost across restart")
	}
	if got.OrderID != "order_1" || got.GatewayPaymentID != "pay_1" {
		t.Fatalf("identifiers lost across restart: %+v", got)
	}
}
