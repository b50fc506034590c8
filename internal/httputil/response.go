package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	"vocastant/internal/domain"
)

// problemTypes maps the statuses this service emits to RFC 7231 section URIs.
var problemTypes = map[int]string{
	http.StatusBadRequest:            "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.1",
	http.StatusNotFound:              "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.4",
	http.StatusRequestEntityTooLarge: "https://datatracker.ietf.org/doc/html/rfc7231#section-6.5.11",
	http.StatusInternalServerError:   "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.1",
	http.StatusBadGateway:            "https://datatracker.ietf.org/doc/html/rfc7231#section-6.6.3",
}

// RespondJSON marshals data before touching the response, so an encoding
// failure still produces a clean 500.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		RespondError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}
	write(w, status, "application/json", payload)
}

// RespondError writes an application/problem+json body.
func RespondError(w http.ResponseWriter, status int, detail string) {
	RespondErrorWithExtras(w, status, detail, nil)
}

// RespondErrorWithExtras writes a problem body with extras merged in at top level.
// Extras never override the standard members.
func RespondErrorWithExtras(w http.ResponseWriter, status int, detail string, extras map[string]interface{}) {
	body := make(map[string]interface{}, len(extras)+4)
	for k, v := range extras {
		body[k] = v
	}

	problemType, ok := problemTypes[status]
	if !ok {
		problemType = "about:blank"
	}
	body["type"] = problemType
	body["title"] = http.StatusText(status)
	body["status"] = status
	if detail != "" {
		body["detail"] = detail
	}

	payload, err := json.Marshal(body)
	if err != nil {
		write(w, http.StatusInternalServerError, "text/plain", []byte("internal server error"))
		return
	}
	write(w, status, "application/problem+json", payload)
}

// RespondDomainError uses the status of a domain.HTTPError. Other errors
// become a 500 without their message.
func RespondDomainError(w http.ResponseWriter, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}
	RespondError(w, http.StatusInternalServerError, "internal server error")
}

func write(w http.ResponseWriter, status int, contentType string, payload []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}
