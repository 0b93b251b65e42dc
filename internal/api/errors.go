package api

import (
	"encoding/json"
	"fmt"
)

// RequestError is a non-2xx answer from the server. Detail carries the
// server-provided explanation when the body had one, so callers can show it
// to the user instead of a generic failure.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server returned %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

func newRequestError(status int, body []byte) *RequestError {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	// Body may be empty or non-JSON; a bare status error is fine then.
	_ = json.Unmarshal(body, &payload)
	detail := payload.Detail
	if detail == "" {
		detail = payload.Message
	}
	return &RequestError{Status: status, Detail: detail}
}
