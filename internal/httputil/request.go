package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"vocastant/internal/config"
	"vocastant/internal/domain"
)

// ParseJSON decodes JSON from the request body into the given destination.
// It limits the request body size to prevent abuse and provides clear error messages.
// Failures are returned as *domain.ValidationError.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxRequestBodyBytes)

	decoder := json.NewDecoder(r.Body)
	// Tool inputs are free-form maps, so unknown fields are allowed.

	if err := decoder.Decode(dest); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return &domain.ValidationError{Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)}
		case errors.Is(err, io.EOF):
			return &domain.ValidationError{Message: "request body is empty"}
		default:
			return &domain.ValidationError{Message: fmt.Sprintf("invalid JSON: %v", err)}
		}
	}

	return nil
}
