package siwe

import (
	"slices"
	"time"
)

// Version is the only EIP-4361 message version.
const Version = "1"

// Message is a Sign-In with Ethereum challenge. It is immutable: build one with
// NewMessage or ParseMessage and read it through the getters.
type Message struct {
	domain         string
	address        string
	statement      *string
	uri            string
	version        string
	chainID        uint64
	nonce          string
	issuedAt       time.Time
	expirationTime *time.Time
	notBefore      *time.Time
	requestID      *string
	resources      []string
}

// MessageOption sets an optional field in NewMessage.
type MessageOption func(*Message)

func WithStatement(statement string) MessageOption {
	return func(m *Message) { m.statement = &statement }
}

func WithExpirationTime(t time.Time) MessageOption {
	return func(m *Message) {
		t = normalizeTime(t)
		m.expirationTime = &t
	}
}

func WithNotBefore(t time.Time) MessageOption {
	return func(m *Message) {
		t = normalizeTime(t)
		m.notBefore = &t
	}
}

func WithRequestID(id string) MessageOption {
	return func(m *Message) { m.requestID = &id }
}

// WithResources sets the resource URIs; an empty list leaves the field absent.
func WithResources(uris ...string) MessageOption {
	return func(m *Message) {
		if len(uris) == 0 {
			m.resources = nil
			return
		}
		m.resources = slices.Clone(uris)
	}
}

// NewMessage builds and validates a version 1 message. Timestamps are converted to UTC
// and truncated to milliseconds, the precision of the text form.
func NewMessage(domain, address, uri, nonce string, chainID uint64, issuedAt time.Time, opts ...MessageOption) (*Message, error) {
	m := &Message{
		domain:   domain,
		address:  address,
		uri:      uri,
		version:  Version,
		chainID:  chainID,
		nonce:    nonce,
		issuedAt: normalizeTime(issuedAt),
	}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func (m *Message) Domain() string { return m.domain }

// Address returns the claimed account exactly as written in the message.
func (m *Message) Address() string { return m.address }

// Statement reports the statement and whether the message has one. A present statement may be empty.
func (m *Message) Statement() (string, bool) { return derefString(m.statement) }

func (m *Message) URI() string     { return m.uri }
func (m *Message) Version() string { return m.version }
func (m *Message) ChainID() uint64 { return m.chainID }
func (m *Message) Nonce() string   { return m.nonce }

func (m *Message) IssuedAt() time.Time { return m.issuedAt }

func (m *Message) ExpirationTime() (time.Time, bool) { return derefTime(m.expirationTime) }

func (m *Message) NotBefore() (time.Time, bool) { return derefTime(m.notBefore) }

func (m *Message) RequestID() (string, bool) { return derefString(m.requestID) }

// Resources returns a copy of the resource URIs, or nil when the message lists none.
func (m *Message) Resources() []string { return slices.Clone(m.resources) }

// Equal reports whether both messages carry the same fields. Timestamps are compared as instants.
func (m *Message) Equal(other *Message) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.domain == other.domain &&
		m.address == other.address &&
		equalPtr(m.statement, other.statement, func(a, b string) bool { return a == b }) &&
		m.uri == other.uri &&
		m.version == other.version &&
		m.chainID == other.chainID &&
		m.nonce == other.nonce &&
		m.issuedAt.Equal(other.issuedAt) &&
		equalPtr(m.expirationTime, other.expirationTime, time.Time.Equal) &&
		equalPtr(m.notBefore, other.notBefore, time.Time.Equal) &&
		equalPtr(m.requestID, other.requestID, func(a, b string) bool { return a == b }) &&
		slices.Equal(m.resources, other.resources)
}

func equalPtr[T any](a, b *T, eq func(T, T) bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return eq(*a, *b)
}

func derefString(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func derefTime(t *time.Time) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	return *t, true
}
