package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"reelstore/internal/models"
	"reelstore/internal/services"
)

type DownloadHandler struct {
	Delivery *services.DeliveryService
}

// DownloadPage handles GET /api/download-pdf/:token — the structured summary
// of a purchase with per-item download links.
func (h *DownloadHandler) DownloadPage(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(":token")

	page, err := h.Delivery.Page(token)
	if err != nil {
		if errors.Is(err, models.ErrTokenNotFound) {
			fail(w, http.StatusNotFound, "download token not found")
			return
		}
		fail(w, http.StatusInternalServerError, "failed to load purchase")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"message":       "purchase found",
		"packageId":     page.PackageID,
		"customer":      page.Customer,
		"items":         page.Items,
		"downloadLinks": page.DownloadLinks,
		"downloaded":    page.Downloaded,
	})
}

// DownloadFile handles GET /api/download-file/:token/:itemIndex and streams
// the raw file bytes. An unknown token, an out-of-range index and a missing
// file all surface as 404.
func (h *DownloadHandler) DownloadFile(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get(":token")
	index, err := strconv.Atoi(r.URL.Query().Get(":itemIndex"))
	if err != nil {
		fail(w, http.StatusNotFound, "file not found")
		return
	}

	name, rc, err := h.Delivery.File(r.Context(), token, index)
	if err != nil {
		if errors.Is(err, models.ErrTokenNotFound) || errors.Is(err, models.ErrItemNotFound) {
			fail(w, http.StatusNotFound, "file not found")
			return
		}
		fail(w, http.StatusInternalServerError, "failed to read file")
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if _, err := io.Copy(w, rc); err != nil {
		// Headers are already out; nothing to report to the client.
		return
	}
}
