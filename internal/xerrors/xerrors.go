// Package xerrors defines the closed set of error kinds the TARS crypto
// engine reports, per the error handling design: verification routines
// stay total and return bool, while setup, issuance, signing and
// combination report exactly one kind on failure.
package xerrors

import "fmt"

// Kind identifies why a fallible TARS operation failed.
type Kind string

const (
	InvalidParams      Kind = "invalid-params"
	DomainError        Kind = "domain-error"
	MalformedProof     Kind = "malformed-proof"
	TraceProofInvalid  Kind = "trace-proof-invalid"
	TooFewShares       Kind = "too-few-shares"
	SignerNotInRing    Kind = "signer-not-in-ring"
)

// Error is the concrete error type returned by fallible TARS operations.
type Error struct {
	kind Kind
	msg  string
	err  error
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around an underlying cause.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), err: cause}
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.kind, e.msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.kind, e.msg)
}

// Kind reports the error's kind.
func (e *Error) Kind() Kind { return e.kind }

// Unwrap exposes the wrapped cause, if any, for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is a *Error with the same Kind, so callers
// can write errors.Is(err, xerrors.New(xerrors.TooFewShares, "")).
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.kind == e.kind
}
