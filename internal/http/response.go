package http

import (
	"encoding/json"
	"net/http"
)

// writeJSON encodes v before touching the response so an encoding failure can
// still be reported as an error response.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return errInternalEncodeFailed(err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
	return nil
}
