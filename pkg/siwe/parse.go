package siwe

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ParseMessage decodes canonical EIP-4361 text. Layout problems are reported as
// *GrammarError and field content problems as *ValidationError.
func ParseMessage(text string) (*Message, error) {
	r := &lineReader{lines: strings.Split(text, "\n")}
	m := &Message{}

	header, err := r.next("header line")
	if err != nil {
		return nil, err
	}
	domain, ok := strings.CutSuffix(header, headerSuffix)
	if !ok || domain == "" {
		return nil, r.unexpected(`"<domain>` + headerSuffix + `"`)
	}
	m.domain = domain

	address, err := r.next("address line")
	if err != nil {
		return nil, err
	}
	if !addressPattern.MatchString(address) {
		return nil, r.unexpected("0x followed by 40 hex digits")
	}
	m.address = address

	if err := r.blank(); err != nil {
		return nil, err
	}
	if err := r.statement(m); err != nil {
		return nil, err
	}

	var chainID, issuedAt string
	for _, f := range []struct {
		tag string
		dst *string
	}{
		{uriTag, &m.uri},
		{versionTag, &m.version},
		{chainIDTag, &chainID},
		{nonceTag, &m.nonce},
		{issuedAtTag, &issuedAt},
	} {
		if *f.dst, err = r.field(f.tag); err != nil {
			return nil, err
		}
	}

	expirationTime, hasExpiration := r.optional(expirationTimeTag)
	notBefore, hasNotBefore := r.optional(notBeforeTag)
	if requestID, ok := r.optional(requestIDTag); ok {
		m.requestID = &requestID
	}
	if err := r.resources(m); err != nil {
		return nil, err
	}
	if r.more() {
		r.pos++
		return nil, r.unexpected("end of message")
	}

	if m.chainID, err = strconv.ParseUint(chainID, 10, 64); err != nil {
		return nil, &ValidationError{Field: "chainId", Value: chainID, Reason: "must be a base-10 unsigned integer", Err: err}
	}
	if m.issuedAt, err = parseTime("issuedAt", issuedAt); err != nil {
		return nil, err
	}
	if hasExpiration {
		t, err := parseTime("expirationTime", expirationTime)
		if err != nil {
			return nil, err
		}
		m.expirationTime = &t
	}
	if hasNotBefore {
		t, err := parseTime("notBefore", notBefore)
		if err != nil {
			return nil, err
		}
		m.notBefore = &t
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// parseTime accepts RFC 3339 timestamps with an explicit offset and optional fractional seconds.
// The result is held in UTC at millisecond precision, the same as NewMessage.
func parseTime(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, &ValidationError{
			Field:  field,
			Value:  value,
			Reason: "must be an RFC 3339 timestamp with a time zone",
			Err:    err,
		}
	}
	return normalizeTime(t), nil
}

// lineReader walks the lines of a message; pos is the index of the next unread line.
type lineReader struct {
	lines []string
	pos   int
}

func (r *lineReader) more() bool {
	return r.pos < len(r.lines)
}

func (r *lineReader) next(expected string) (string, error) {
	if !r.more() {
		return "", &GrammarError{Line: r.pos + 1, Expected: expected}
	}
	r.pos++
	return r.lines[r.pos-1], nil
}

// unexpected reports the line most recently read.
func (r *lineReader) unexpected(expected string) error {
	return &GrammarError{Line: r.pos, Expected: expected, Got: r.lines[r.pos-1]}
}

func (r *lineReader) blank() error {
	line, err := r.next("blank line")
	if err != nil {
		return err
	}
	if line != "" {
		return r.unexpected("blank line")
	}
	return nil
}

// statement reads the optional statement and the blank line that closes the block:
// "" alone means no statement, "" "" an empty statement, and "S" "" the statement S.
func (r *lineReader) statement(m *Message) error {
	line, err := r.next("statement or blank line")
	if err != nil {
		return err
	}
	if line != "" {
		m.statement = &line
		return r.blank()
	}
	if r.more() && r.lines[r.pos] == "" {
		r.pos++
		empty := ""
		m.statement = &empty
	}
	return nil
}

func (r *lineReader) field(tag string) (string, error) {
	expected := strconv.Quote(tag + "...")
	line, err := r.next(expected)
	if err != nil {
		return "", err
	}
	value, ok := strings.CutPrefix(line, tag)
	if !ok {
		return "", r.unexpected(expected)
	}
	return value, nil
}

func (r *lineReader) optional(tag string) (string, bool) {
	if !r.more() {
		return "", false
	}
	value, ok := strings.CutPrefix(r.lines[r.pos], tag)
	if ok {
		r.pos++
	}
	return value, ok
}

func (r *lineReader) resources(m *Message) error {
	if !r.more() || r.lines[r.pos] != resourcesTag {
		return nil
	}
	r.pos++

	for r.more() {
		line := r.lines[r.pos]
		uri, ok := strings.CutPrefix(line, resourcePrefix)
		if !ok {
			break
		}
		r.pos++
		m.resources = append(m.resources, uri)
	}
	if len(m.resources) == 0 {
		if !r.more() {
			return &GrammarError{Line: r.pos + 1, Expected: `"- <uri>" resource line`}
		}
		r.pos++
		return r.unexpected(`"- <uri>" resource line`)
	}
	return nil
}
