package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is returned when the gateway answers with a non-2xx status
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a gateway 404
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsClientError reports whether err is a gateway 4xx
func IsClientError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
}

// newAPIError extracts a message from the error body. Both the
// {"detail": ...} and {"error": ...} shapes are understood.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Detail any    `json:"detail"`
		Error  string `json:"error"`
	}

	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		switch d := payload.Detail.(type) {
		case string:
			msg = d
		case nil:
		default:
			if raw, err := json.Marshal(d); err == nil {
				msg = string(raw)
			}
		}
		if msg == "" {
			msg = payload.Error
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(body))
	}

	return &APIError{StatusCode: status, Message: msg}
}
