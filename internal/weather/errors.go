package weather

import (
	"errors"
	"fmt"
)

// Kind classifies where an invocation failed. Callers outside the process
// only ever see a generic failure; Kind exists for logs and tests.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNetwork covers transport failures and non-2xx upstream statuses.
	KindNetwork
	// KindParse covers undecodable bodies and payloads missing required fields.
	KindParse
	// KindStorage covers any rejection from the record store.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindParse:
		return "parse"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

var errNilForecast = errors.New("forecast is nil")

// Error is a failure of one fetch or store operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// NewError wraps err with a kind and the operation that failed.
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s failure", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s failure: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// OpOf returns the operation of the first *Error in err's chain, or "".
func OpOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}
