package handlers

import (
	"net/http"
	"time"

	"reelstore/internal/services"
)

type AdminHandler struct {
	Stats *services.StatsService
}

// GetStats handles GET /api/admin/stats. Authentication happens in the
// admin-key middleware.
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.Stats.Stats(time.Now())
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"message":      "ok",
		"totalCount":   stats.TotalCount,
		"totalRevenue": stats.TotalRevenue,
		"packages":     stats.Packages,
		"last7Days":    stats.Last7Days,
		"recent":       stats.Recent,
	})
}

// GetPaymentCount handles GET /api/private/payment-count.
func (h *AdminHandler) GetPaymentCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "ok",
		"count":   h.Stats.PaymentCount(),
	})
}
