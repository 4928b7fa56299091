package blogapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/CrestNiraj12/termblog/domain"
)

// codeOK is the only envelope code that means success.
const codeOK = 200

// envelope is the response wrapper every endpoint uses.
type envelope[T any] struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// APIError is a failed request: either a non-2xx HTTP status or an envelope
// code other than 200. All failure codes are treated alike.
type APIError struct {
	Method  string
	Path    string
	Status  int // HTTP status, 0 when the failure came from the envelope
	Code    int
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "request failed"
	}
	if e.Status != 0 {
		return fmt.Sprintf("API %s %s returned %d: %s", e.Method, e.Path, e.Status, msg)
	}
	return fmt.Sprintf("API %s %s failed with code %d: %s", e.Method, e.Path, e.Code, msg)
}

// Is lets callers match missing resources with domain.ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == domain.ErrNotFound && (e.Status == http.StatusNotFound || e.Code == http.StatusNotFound)
}

// IsAPIError reports whether err carries an *APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

func decodeEnvelope[T any](method, path string, data []byte) (T, error) {
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		var zero T
		return zero, fmt.Errorf("parsing %s response: %w", path, err)
	}
	if env.Code != codeOK {
		var zero T
		return zero, &APIError{Method: method, Path: path, Code: env.Code, Message: strings.TrimSpace(env.Message)}
	}
	return env.Data, nil
}

// envelopeMessage pulls a message out of an error body when it is an
// envelope, and falls back to the raw text.
func envelopeMessage(data []byte) string {
	var env envelope[json.RawMessage]
	if err := json.Unmarshal(data, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return strings.TrimSpace(string(data))
}
