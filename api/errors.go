package api

import (
	"encoding/json"
	"net/http"
)

var errorMessages = map[int]string{
	http.StatusBadRequest:          "Bad request",
	http.StatusNotFound:            "Not found",
	http.StatusMethodNotAllowed:    "Method not allowed",
	http.StatusUnprocessableEntity: "Unprocessable entity",
	http.StatusInternalServerError: "Internal server error",
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// writeError writes the failure envelope shared by every endpoint.
func writeError(w http.ResponseWriter, code int) {
	msg, ok := errorMessages[code]
	if !ok {
		msg = http.StatusText(code)
	}
	writeJSON(w, errorResponse{Success: false, Error: code, Message: msg}, code)
}

func writeJSON(w http.ResponseWriter, payload any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
