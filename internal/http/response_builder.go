package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// dataEnvelope wraps successful payloads; every 2xx body is {"data": ...}.
type dataEnvelope struct {
	Data any `json:"data"`
}

type errorEnvelope struct {
	Error string `json:"error"`
}

// writeData sends a JSON response with the payload under the "data" key.
func writeData(w http.ResponseWriter, statusCode int, payload any) {
	writeJSON(w, statusCode, dataEnvelope{Data: payload})
}

// writeError sends a JSON error response with the given status code.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorEnvelope{Error: message})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response body", "error", err)
	}
}
