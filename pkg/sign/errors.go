package sign

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a key recovery failure.
type ErrorKind uint8

const (
	KindUnknown ErrorKind = iota
	KindInvalidContext
	KindBadArguments
	KindSignatureParseFailure
	KindSignatureFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidContext:
		return "invalid context"
	case KindBadArguments:
		return "bad arguments"
	case KindSignatureParseFailure:
		return "signature parse failure"
	case KindSignatureFailure:
		return "signature failure"
	default:
		return "unknown error"
	}
}

// Sentinels matched by errors.Is against a *RecoveryError of the same kind.
var (
	ErrInvalidContext        = errors.New("sign: invalid recovery context")
	ErrBadArguments          = errors.New("sign: bad arguments")
	ErrSignatureParseFailure = errors.New("sign: recoverable signature parse failed")
	ErrSignatureFailure      = errors.New("sign: public key recovery failed")
	ErrUnknown               = errors.New("sign: unknown recovery error")
)

// RecoveryError is returned by every Recoverer operation.
type RecoveryError struct {
	Kind ErrorKind
	Err  error
}

func newRecoveryError(kind ErrorKind, format string, args ...any) *RecoveryError {
	return &RecoveryError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *RecoveryError) Error() string {
	if e.Err == nil {
		return "sign: " + e.Kind.String()
	}
	return fmt.Sprintf("sign: %s: %v", e.Kind, e.Err)
}

func (e *RecoveryError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel for e.Kind.
func (e *RecoveryError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindInvalidContext:
		return ErrInvalidContext
	case KindBadArguments:
		return ErrBadArguments
	case KindSignatureParseFailure:
		return ErrSignatureParseFailure
	case KindSignatureFailure:
		return ErrSignatureFailure
	default:
		return ErrUnknown
	}
}
