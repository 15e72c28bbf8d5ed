package utils

import (
	"encoding/json"
	"net/http"
)

// WriteJSONError answers with a plain JSON error for failures that happen
// before a JSON-RPC envelope could be read.
func WriteJSONError(w http.ResponseWriter, status int, msg string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(map[string]any{
		"status": "error",
		"error":  msg,
		"code":   status,
	})
}
