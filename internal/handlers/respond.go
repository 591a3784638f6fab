// internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"net/http"
)

// apiResponse is the JSON envelope every REST endpoint speaks.
type apiResponse map[string]any

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiResponse{"success": false, "message": message})
}
