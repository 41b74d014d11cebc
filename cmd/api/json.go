package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	// ticketid: a stored document id, at most 64 characters with no
	// whitespace, commas or slashes.
	Validate.RegisterValidation("ticketid", func(fl validator.FieldLevel) bool {
		id := fl.Field().String()
		if id == "" || len(id) > 64 {
			return false
		}
		return !strings.ContainsFunc(id, func(r rune) bool {
			return unicode.IsSpace(r) || r == ',' || r == '/'
		})
	})
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// readJSON decodes a request body of at most 1MB, rejecting unknown fields.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

// errorEnvelope is the body of every non-2xx API response.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func writeJSONError(w http.ResponseWriter, status int, message string) error {
	return writeJSON(w, status, &errorEnvelope{Message: message, Status: status})
}

// jsonResponse wraps data as {"data": ...}. Ticket and dashboard payloads
// carry their own partial flag inside data.
func (app *application) jsonResponse(w http.ResponseWriter, status int, data any) error {
	return writeJSON(w, status, &struct {
		Data any `json:"data"`
	}{Data: data})
}
