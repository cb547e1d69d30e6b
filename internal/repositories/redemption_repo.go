package repositories

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"reelstore/internal/models"
)

// RedemptionRepo holds completed purchases keyed by download token. Records
// are never deleted; they double as the purchase history. An optional
// snapshot file is rewritten wholesale after every mutation and loaded back
// at startup.
type RedemptionRepo struct {
	mu      sync.Mutex
	records map[string]models.RedemptionRecord
	path    string
}

type redemptionSnapshot struct {
	LastUpdated time.Time                 `json:"lastUpdated"`
	Records     []models.RedemptionRecord `json:"records"`
}

func NewRedemptionRepo(path string) (*RedemptionRepo, error) {
	r := &RedemptionRepo{
		records: make(map[string]models.RedemptionRecord),
		path:    path,
	}
	if path == "" {
		return r, nil
	}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read redemption snapshot: %w", err)
	}
	var snap redemptionSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("decode redemption snapshot: %w", err)
	}
	for _, rec := range snap.Records {
		r.records[rec.Token] = rec
	}
	return r, nil
}

// newToken draws 32 bytes from the CSPRNG, hex encoded. At 256 bits of
// entropy collisions are negligible and no collision check is kept.
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Issue creates the redemption record for a consumed order. The order fields
// are copied at this moment and never re-read afterwards.
func (r *RedemptionRepo) Issue(order models.PendingOrder, gatewayPaymentID string) (models.RedemptionRecord, error) {
	token, err := newToken()
	if err != nil {
		return models.RedemptionRecord{}, err
	}
	rec := models.RedemptionRecord{
		Token:            token,
		OrderID:          order.OrderID,
		GatewayPaymentID: gatewayPaymentID,
		Customer:         order.Customer,
		PackageID:        order.PackageID,
		Items:            append([]string(nil), order.Items...),
		Amount:           order.Amount,
		Currency:         order.Currency,
		CompletedAt:      time.Now(),
	}

	r.mu.Lock()
	r.records[token] = rec
	r.persistLocked()
	r.mu.Unlock()
	return rec, nil
}

// MarkDownloaded flips the downloaded flag on first call. Later calls return
// the already-marked record unchanged, so repeated downloads stay legal.
func (r *RedemptionRepo) MarkDownloaded(token string) (models.RedemptionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[token]
	if !ok {
		return models.RedemptionRecord{}, models.ErrTokenNotFound
	}
	if !rec.Downloaded {
		now := time.Now()
		rec.Downloaded = true
		rec.DownloadedAt = &now
		r.records[token] = rec
		r.persistLocked()
	}
	return rec, nil
}

func (r *RedemptionRepo) Lookup(token string) (models.RedemptionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[token]
	if !ok {
		return models.RedemptionRecord{}, models.ErrTokenNotFound
	}
	return rec, nil
}

// All returns a copy of every record, for aggregation.
func (r *RedemptionRepo) All() []models.RedemptionRecord {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.RedemptionRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out
}

func (r *RedemptionRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// persistLocked rewrites the snapshot file. Failures are logged, not
// propagated: the purchase is already confirmed in memory and losing the
// snapshot must not fail the request.
func (r *RedemptionRepo) persistLocked() {
	if r.path == "" {
		return
	}
	snap := redemptionSnapshot{
		LastUpdated: time.Now(),
		Records:     make([]models.RedemptionRecord, 0, len(r.records)),
	}
	for _, rec := range r.records {
		snap.Records = append(snap.Records, rec)
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		log.Printf("redemptions: encode snapshot: %v", err)
		return
	}
	tmp := r.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		log.Printf("redemptions: snapshot dir: %v", err)
		return
	}
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		log.Printf("redemptions: write snapshot: %v", err)
		return
	}
	if err := os.Rename(tmp, r.path); err != nil {
		log.Printf("redemptions: replace snapshot: %v", err)
	}
}
