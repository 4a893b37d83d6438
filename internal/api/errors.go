package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// ErrInvalidRequest marks client mistakes that surface as 400.
var ErrInvalidRequest = errors.New("invalid request")

var (
	errNoDocument       = errors.New("no document provided")
	errMethodNotAllowed = errors.New("method not allowed")
	errNotFound         = errors.New("not found")
	errPayloadTooLarge  = errors.New("payload too large")
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool     `json:"success"`
	Error   apiError `json:"error"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorResponse{Success: false, Error: toAPIError(code, err)})
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "LW-API-4000"

	switch {
	case status >= 500:
		return apiError{
			Code:    "LW-API-5000",
			Message: "Internal server error. Please retry or check service logs.",
		}
	case status == http.StatusBadRequest:
		code = "LW-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "LW-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusMethodNotAllowed:
		code = "LW-API-4005"
		msg = "This endpoint does not support the requested method."
	case status == http.StatusRequestEntityTooLarge:
		code = "LW-API-4013"
		msg = "Uploaded document exceeds the size limit."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		low := strings.ToLower(err.Error())
		switch {
		case errors.Is(err, errNoDocument):
			msg = "No document uploaded. Attach a file in the \"document\" field."
		case strings.Contains(low, "creditscore is required"):
			msg = "Credit score is required."
		case strings.Contains(low, "invalid json"):
			msg = "Malformed JSON request body."
		}
	}

	return apiError{Code: code, Message: msg}
}
