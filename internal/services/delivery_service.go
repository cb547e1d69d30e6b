package services

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"reelstore/internal/models"
	"reelstore/internal/repositories"
)

// DeliveryService resolves download tokens to purchase summaries and file
// bytes.
type DeliveryService struct {
	Redemptions *repositories.RedemptionRepo
	Content     repositories.ContentStore
	BaseURL     string
}

// Page returns the structured summary of a purchase with per-item links.
// It is read-only: the downloaded flag flips only when bytes are served.
func (s *DeliveryService) Page(token string) (models.DownloadPageResponse, error) {
	rec, err := s.Redemptions.Lookup(token)
	if err != nil {
		return models.DownloadPageResponse{}, err
	}
	return models.DownloadPageResponse{
		Token:         rec.Token,
		PackageID:     rec.PackageID,
		Customer:      rec.Customer,
		Items:         rec.Items,
		DownloadLinks: downloadLinks(s.BaseURL, rec.Token, rec.Items),
		Downloaded:    rec.Downloaded,
	}, nil
}

// File resolves a 1-based item index to the underlying content and marks the
// redemption downloaded once the file is known to exist. Repeated downloads
// stay valid and do not move downloadedAt.
func (s *DeliveryService) File(ctx context.Context, token string, itemIndex int) (string, io.ReadCloser, error) {
	rec, err := s.Redemptions.Lookup(token)
	if err != nil {
		return "", nil, err
	}
	if itemIndex < 1 || itemIndex > len(rec.Items) {
		return "", nil, models.ErrItemNotFound
	}
	name := rec.Items[itemIndex-1]

	rc, err := s.Content.Open(ctx, name)
	if err != nil {
		return "", nil, err
	}
	if _, err := s.Redemptions.MarkDownloaded(token); err != nil {
		rc.Close()
		return "", nil, err
	}
	return name, rc, nil
}

func downloadPageURL(baseURL, token string) string {
	return fmt.Sprintf("%s/api/download-pdf/%s", baseURL, url.PathEscape(token))
}

func downloadLinks(baseURL, token string, items []string) []string {
	links := make([]string, 0, len(items))
	for i := range items {
		links = append(links, fmt.Sprintf("%s/api/download-file/%s/%d", baseURL, url.PathEscape(token), i+1))
	}
	return links
}
