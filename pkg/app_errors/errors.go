package apperrors

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind tells a caller which side of the boundary failed.
type Kind string

const (
	KindPrecondition Kind = "precondition"
	KindInvalidInput Kind = "invalid_input"
	KindRejected     Kind = "rejected"
	KindTransport    Kind = "transport"
)

var (
	ErrNotInitialized = errors.New("gateway not initialized")
	ErrInvalidInput   = errors.New("invalid input")
	ErrRelayRejected  = errors.New("relay rejected notification")
	ErrAuthRejected   = errors.New("auth service rejected request")
	ErrNoSession      = errors.New("no active session")
)

// GatewayError is the only error type the gateway hands back to callers.
type GatewayError struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func NotInitialized(op string) *GatewayError {
	return &GatewayError{Kind: KindPrecondition, Op: op, Message: ErrNotInitialized.Error(), Err: ErrNotInitialized}
}

func InvalidInput(op, message string) *GatewayError {
	return &GatewayError{Kind: KindInvalidInput, Op: op, Message: message, Err: ErrInvalidInput}
}

func Rejected(op string, err error) *GatewayError {
	return &GatewayError{Kind: KindRejected, Op: op, Err: err}
}

func Transport(op string, err error) *GatewayError {
	return &GatewayError{Kind: KindTransport, Op: op, Err: err}
}

// Wrap classifies err. An existing GatewayError keeps its kind and only gains an Op.
func Wrap(op string, err error) *GatewayError {
	if err == nil {
		return nil
	}
	var ge *GatewayError
	if errors.As(err, &ge) {
		if ge.Op == "" {
			ge.Op = op
		}
		return ge
	}
	return &GatewayError{Kind: Classify(err), Op: op, Err: err}
}

// Classify separates service-level rejections from transport failures.
// Anything unrecognised counts as transport.
func Classify(err error) Kind {
	var pgErr *pgconn.PgError
	var apiErr smithy.APIError
	switch {
	case errors.Is(err, ErrNotInitialized):
		return KindPrecondition
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.As(err, &pgErr), errors.As(err, &apiErr):
		return KindRejected
	case errors.Is(err, ErrRelayRejected), errors.Is(err, ErrAuthRejected):
		return KindRejected
	}
	return KindTransport
}

// KindOf returns the kind of a gateway error, or "" for nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var ge *GatewayError
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return Classify(err)
}
