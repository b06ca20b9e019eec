package failure

import (
	"errors"
	"fmt"
)

// Kind classifies a failure once, at the boundary where it is first observed.
type Kind string

const (
	InvalidInput          Kind = "INVALID_INPUT"
	AuthenticationFailure Kind = "AUTHENTICATION_FAILURE"
	QuotaExceeded         Kind = "QUOTA_EXCEEDED"
	SymbolNotFound        Kind = "SYMBOL_NOT_FOUND"
	LocalRateLimited      Kind = "LOCAL_RATE_LIMITED"
	MalformedAnalysis     Kind = "MALFORMED_ANALYSIS"
	TransportFailure      Kind = "TRANSPORT_FAILURE"
)

// Error is the single error shape surfaced to callers of the core.
type Error struct {
	Kind    Kind
	Stage   string
	Message string // display-ready, localized
	Err     error
}

func (e *Error) Error() string {
	prefix := string(e.Kind)
	if e.Stage != "" {
		prefix = e.Stage + ": " + prefix
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match when target is an *Error of the same Kind with no message,
// which lets callers write errors.Is(err, failure.Sentinel(failure.QuotaExceeded)).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Stage == "" && t.Kind == e.Kind
}

// New creates a failure with the default message for kind.
func New(kind Kind) *Error {
	return &Error{Kind: kind, Message: DefaultMessage(kind)}
}

// Newf creates a failure with a custom message.
func Newf(kind Kind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, a...)}
}

// Wrap classifies err under kind. An err that is already a failure keeps its
// own classification.
func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return &Error{Kind: kind, Message: DefaultMessage(kind), Err: err}
}

// WithStage returns a copy of err labeled with stage. Non-failure errors are
// classified as TransportFailure.
func WithStage(err error, stage string) *Error {
	if err == nil {
		return nil
	}
	fe := Wrap(TransportFailure, err)
	cp := *fe
	cp.Stage = stage
	return &cp
}

// Sentinel returns a bare *Error usable as an errors.Is target.
func Sentinel(kind Kind) error {
	return &Error{Kind: kind}
}

// KindOf returns the classification of err, or TransportFailure for
// unclassified non-nil errors.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return TransportFailure
}

// IsQuota reports whether err is the provider quota failure callers branch on
// to offer the override path.
func IsQuota(err error) bool {
	return errors.Is(err, Sentinel(QuotaExceeded))
}

// StageOf returns the stage label attached to err, if any.
func StageOf(err error) string {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Stage
	}
	return ""
}
