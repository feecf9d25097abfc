package api

import (
	"encoding/json"
	"log"
	"net/http"
)

// 5xx responses never carry internal detail (file paths, upstream bodies,
// wrapped error chains). The full error is logged server-side and the client
// gets a generic safe message. 4xx messages describe the caller's input and
// are safe to expose.

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[api] JSON encode error: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondSafeError logs the full internal error and sends only the
// public-safe message to the client.
func respondSafeError(w http.ResponseWriter, status int, internalErr error, publicMsg string) {
	if internalErr != nil {
		log.Printf("[api] ERROR [%d]: %s: %v", status, publicMsg, internalErr)
	}
	respondError(w, status, publicMsg)
}
