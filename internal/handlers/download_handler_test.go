package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"reelstore/internal/models"
	"reelstore/internal/repositories"
	"reelstore/internal/services"
)

func newDownloadHandler(t *testing.T) (*DownloadHandler, models.RedemptionRecord) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Luxury_Reel_Bundle.pdf"), []byte("%PDF-1.4 bundle"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	redemptions, err := repositories.NewRedemptionRepo("")
	if err != nil {
		t.Fatalf("NewRedemptionRepo: %v", err)
	}
	rec, err := redemptions.Issue(models.PendingOrder{
		OrderID:   "order_1",
		Customer:  models.Customer{FullName: "A", Email: "a@x.com", Mobile: "111"},
		PackageID: "Starter Viral Pack",
		Items:     []string{"Luxury_Reel_Bundle.pdf"},
		Amount:    19900,
		Currency:  "INR",
	}, "pay_1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	return &DownloadHandler{Delivery: &services.DeliveryService{
		Redemptions: redemptions,
		Content:     &repositories.DirContentRepo{Dir: dir},
		BaseURL:     "http://localhost:4002",
	}}, rec
}

// getWithParams issues a GET with pat-style named parameters in the query.
func getWithParams(target string, params map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	q := url.Values{}
	for k, v := range params {
		q.Set(":"+k, v)
	}
	req.URL.RawQuery = q.Encode()
	return req
}

func TestDownloadPageHandler(t *testing.T) {
	h, rec := newDownloadHandler(t)

	t.Run("known token returns the summary", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.DownloadPage(rr, getWithParams("/api/download-pdf/x", map[string]string{"token": rec.Token}))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
		}
		if env := decodeEnvelope(t, rr); !env.Success {
			t.Fatalf("expected success envelope, got %+v", env)
		}
	})

	t.Run("unknown token is 404", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.DownloadPage(rr, getWithParams("/api/download-pdf/x", map[string]string{"token": "nope"}))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
		if env := decodeEnvelope(t, rr); env.Success {
			t.Fatal("expected success=false")
		}
	})
}

func TestDownloadFileHandler(t *testing.T) {
	h, rec := newDownloadHandler(t)

	t.Run("streams the file", func(t *testing.T) {
		rr := httptest.NewRecorder()
		h.DownloadFile(rr, getWithParams("/api/download-file/x/1", map[string]string{
			"token": rec.Token, "itemIndex": "1",
		}))
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
		}
		if ct := rr.Header().Get("Content-Type"); ct != "application/pdf" {
			t.Fatalf("expected application/pdf, got %q", ct)
		}
		if rr.Body.String() != "%PDF-1.4 bundle" {
			t.Fatalf("unexpected body %q", rr.Body.String())
		}
	})

	cases := []struct {
		name   string
		params map[string]string
	}{
		{"unknown token", map[string]string{"token": "nope", "itemIndex": "1"}},
		{"index out of range", map[string]string{"token": rec.Token, "itemIndex": "2"}},
		{"non-numeric index", map[string]string{"token": rec.Token, "itemIndex": "one"}},
	}
	for _, tc := range cases {
		t.Run(tc.name+" is 404", func(t *testing.T) {
			rr := httptest.NewRecorder()
			h.DownloadFile(rr, getWithParams("/api/download-file/x/1", tc.params))
			if rr.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d", rr.Code)
			}
			if env := decodeEnvelope(t, rr); env.Success {
				t.Fatal("expected success=false")
			}
		})
	}
}
