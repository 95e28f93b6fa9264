package siwe

import (
	"errors"
	"fmt"
)

// ErrGrammar and ErrValidation are matched by every *GrammarError and *ValidationError.
var (
	ErrGrammar    = errors.New("siwe: text is not an EIP-4361 message")
	ErrValidation = errors.New("siwe: invalid message field")
)

// Verification failures returned by Verifier.Verify.
var (
	ErrNotYetActive       = errors.New("siwe: message is not active yet")
	ErrExpired            = errors.New("siwe: message is expired")
	ErrDifferentNetwork   = errors.New("siwe: message is for a different network")
	ErrInvalidMessageData = errors.New("siwe: invalid message data")
	ErrInvalidSignature   = errors.New("siwe: invalid signature")
)

// GrammarError reports text that does not follow the EIP-4361 line layout.
type GrammarError struct {
	// Line is 1-based.
	Line     int
	Expected string
	Got      string
}

func (e *GrammarError) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("siwe: line %d: expected %s", e.Line, e.Expected)
	}
	return fmt.Sprintf("siwe: line %d: expected %s, got %q", e.Line, e.Expected, e.Got)
}

func (e *GrammarError) Is(target error) bool {
	return target == ErrGrammar
}

// ValidationError reports a message field whose content breaks a field rule.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("siwe: invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
