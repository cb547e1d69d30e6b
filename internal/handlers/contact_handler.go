package handlers

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"reelstore/internal/models"
	"reelstore/internal/services"
)

type ContactHandler struct {
	Mailer *services.MailerService
}

// Contact handles POST /contact — relays the form as an admin notice plus a
// customer acknowledgement. Delivery is queued; the response does not wait
// for SMTP.
func (h *ContactHandler) Contact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = strings.TrimSpace(req.Email)
	req.Issue = strings.TrimSpace(req.Issue)

	if req.FullName == "" || req.Email == "" || req.Issue == "" {
		fail(w, http.StatusBadRequest, "fullName, email and issue are required")
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		fail(w, http.StatusBadRequest, "email is malformed")
		return
	}

	h.Mailer.EnqueueContact(req)

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "message received",
	})
}
