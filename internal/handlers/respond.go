package handlers

import (
	"encoding/json"
	"net/http"
)

// writeJSON encodes the payload with the given status. Handlers always attach
// success/message fields so no response goes out as a bare 500.
func writeJSON(w http.ResponseWriter, status int, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"message": message,
	})
}
