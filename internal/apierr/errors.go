// Package apierr classifies failures of facade calls so callers can branch
// on the kind of failure while still showing a human readable message.
package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindTimeout
	KindNetwork
	KindHTTPStatus
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindHTTPStatus:
		return "http_status"
	default:
		return "unknown"
	}
}

// Validation reasons.
var (
	ErrMissingField             = errors.New("missing required field")
	ErrInvalidAmount            = errors.New("invalid amount")
	ErrUnsupportedPaymentMethod = errors.New("unsupported payment method")
	ErrInvalidCardNumber        = errors.New("invalid card number")
	ErrInvalidExpiry            = errors.New("invalid expiry date")
	ErrCardExpired              = errors.New("card expired")
	ErrInvalidCVV               = errors.New("invalid CVV")
	ErrInvalidEmail             = errors.New("invalid email address")
)

// Error is returned by every facade operation that fails. Error() is the
// user facing message; Unwrap() gives the original condition.
type Error struct {
	Kind    Kind
	Field   string // validation only
	Status  int    // http status only
	Body    []byte // http status only
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func Validation(field string, reason error) *Error {
	msg := reason.Error()
	if field != "" {
		if errors.Is(reason, ErrMissingField) {
			msg = fmt.Sprintf("%s: %s", reason.Error(), field)
		} else {
			msg = fmt.Sprintf("%s: %s", field, reason.Error())
		}
	}
	return &Error{Kind: KindValidation, Field: field, Message: msg, Err: reason}
}

func Timeout(err error) *Error {
	return &Error{Kind: KindTimeout, Message: "request timed out", Err: err}
}

func Network(err error) *Error {
	return &Error{Kind: KindNetwork, Message: "unable to reach the server, check your connection", Err: err}
}

// HTTPStatus builds the error for a non-2xx response. The original status and
// body stay available to the caller.
func HTTPStatus(code int, body []byte) *Error {
	return &Error{
		Kind:    KindHTTPStatus,
		Status:  code,
		Body:    body,
		Message: StatusMessage(code, body),
		Err:     fmt.Errorf("http status %d", code),
	}
}

// StatusMessage maps well known status codes to fixed messages. Unmapped codes
// surface the server provided message when there is one.
func StatusMessage(code int, body []byte) string {
	detail := ServerMessage(body)
	switch {
	case code == http.StatusBadRequest:
		if detail != "" {
			return "invalid request: " + detail
		}
		return "invalid request"
	case code == http.StatusUnauthorized:
		return "unauthorized"
	case code == http.StatusPaymentRequired:
		return "payment declined"
	case code == http.StatusForbidden:
		return "forbidden or insufficient funds"
	case code == http.StatusNotFound:
		return "resource not found"
	case code == http.StatusConflict:
		return "request conflicts with current resource state"
	case code == http.StatusUnprocessableEntity:
		return "request could not be processed"
	case code >= 500 && code <= 599:
		return "server error, please try again later"
	}
	if detail != "" {
		return detail
	}
	return fmt.Sprintf("request failed with status %d", code)
}

// ServerMessage extracts "message" or "error" from a JSON error body, or the
// trimmed body when it is short plain text.
func ServerMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 || strings.HasPrefix(text, "<") {
		return ""
	}
	return text
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool { return KindOf(err) == KindValidation }

func IsTimeout(err error) bool { return KindOf(err) == KindTimeout }

func IsNetwork(err error) bool { return KindOf(err) == KindNetwork }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return 0
}
