package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
)

// Kind is the top-level error taxonomy.
type Kind string

const (
	// KindNetwork means no usable response was received (no connectivity,
	// connection refused/reset, timeout before headers).
	KindNetwork Kind = "network"
	// KindAPIService means the server responded with a failure.
	KindAPIService Kind = "api_service"
)

// Category refines KindAPIService errors.
type Category string

const (
	CategoryServer     Category = "server"
	CategoryValidation Category = "validation"
	CategoryAuth       Category = "auth"
	CategoryUnknown    Category = "unknown"
)

// Error is the typed error every failed operation surfaces. It is created
// once at the point a raw failure is classified and propagated unchanged up
// to the original caller.
type Error struct {
	Kind     Kind
	Category Category
	Status   int
	Code     string
	Message  string

	recoverable bool
	cause       error
}

func (e *Error) Error() string {
	if e.Kind == KindNetwork {
		return fmt.Sprintf("network error: %s", e.Message)
	}
	if e.Status > 0 {
		return fmt.Sprintf("api error (%s, http %d): %s", e.Category, e.Status, e.Message)
	}
	return fmt.Sprintf("api error (%s): %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// NewNetworkError builds a NetworkError without a transport cause, used when
// an operation is refused up front (e.g. offline write fast-fail).
func NewNetworkError(message string) *Error {
	return &Error{Kind: KindNetwork, Message: message, recoverable: true}
}

// Classify maps a raw transport failure into the error taxonomy. A non-nil
// err means no response was received; otherwise status and body describe the
// server's reply. Already-classified errors pass through unchanged.
func Classify(err error, status int, body []byte) *Error {
	if err != nil {
		var ae *Error
		if errors.As(err, &ae) {
			return ae
		}
		return &Error{
			Kind:        KindNetwork,
			Message:     err.Error(),
			recoverable: isTransportRecoverable(err),
			cause:       err,
		}
	}

	msg := apiMessage(body)
	switch {
	case status >= 500 || status == http.StatusTooManyRequests:
		return &Error{
			Kind:        KindAPIService,
			Category:    CategoryServer,
			Status:      status,
			Message:     msg,
			recoverable: true,
		}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &Error{
			Kind:     KindAPIService,
			Category: CategoryAuth,
			Status:   status,
			Message:  msg,
		}
	case status >= 400:
		return &Error{
			Kind:     KindAPIService,
			Category: CategoryValidation,
			Status:   status,
			Message:  msg,
		}
	default:
		return &Error{
			Kind:     KindAPIService,
			Category: CategoryUnknown,
			Status:   status,
			Message:  msg,
		}
	}
}

// ClassifyDecode wraps a response-parsing failure. The server answered, so
// this is not a network error, but the shape was not usable.
func ClassifyDecode(err error) *Error {
	return &Error{
		Kind:     KindAPIService,
		Category: CategoryUnknown,
		Message:  fmt.Sprintf("decode response: %v", err),
		cause:    err,
	}
}

// IsRecoverable reports whether err is a classified failure eligible for
// retry. Recoverability is decided once at classification time, never
// re-derived at call sites.
func IsRecoverable(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.recoverable
	}
	return false
}

// IsNetwork reports whether err is a classified connectivity failure.
func IsNetwork(err error) bool {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind == KindNetwork
	}
	return false
}

func isTransportRecoverable(err error) bool {
	// Cancellation is the caller's decision, not a transient fault. Deadline
	// errors stay retryable: client-side request timeouts surface as
	// context.DeadlineExceeded too.
	if errors.Is(err, context.Canceled) {
		return false
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return true
	}
	var oe *net.OpError
	return errors.As(err, &oe)
}

func apiMessage(body []byte) string {
	msg := parseErrorBody(body)
	if msg == "" {
		msg = "request failed"
	}
	return msg
}

// parseErrorBody extracts the server's error message. The backend wraps
// failures as {"error": "..."}; anything else falls back to the raw body.
func parseErrorBody(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var wrapped struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if wrapped.Error != "" {
			return wrapped.Error
		}
		if wrapped.Message != "" {
			return wrapped.Message
		}
	}
	if len(body) > 256 {
		body = body[:256]
	}
	return string(body)
}
