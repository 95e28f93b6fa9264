package siwe

import (
	"strconv"
	"strings"
	"time"
)

const (
	headerSuffix      = " wants you to sign in with your Ethereum account:"
	uriTag            = "URI: "
	versionTag        = "Version: "
	chainIDTag        = "Chain ID: "
	nonceTag          = "Nonce: "
	issuedAtTag       = "Issued At: "
	expirationTimeTag = "Expiration Time: "
	notBeforeTag      = "Not Before: "
	requestIDTag      = "Request ID: "
	resourcesTag      = "Resources:"
	resourcePrefix    = "- "

	// TimeLayout is the canonical timestamp form. Times must be in UTC.
	TimeLayout = "2006-01-02T15:04:05.000Z"
)

// Format renders the canonical EIP-4361 text of m. Lines are joined with "\n" and there
// is no trailing newline.
func (m *Message) Format() string {
	lines := make([]string, 0, 14+len(m.resources))
	lines = append(lines, m.domain+headerSuffix, m.address, "")
	if m.statement != nil {
		lines = append(lines, *m.statement)
	}
	lines = append(lines,
		"",
		uriTag+m.uri,
		versionTag+m.version,
		chainIDTag+strconv.FormatUint(m.chainID, 10),
		nonceTag+m.nonce,
		issuedAtTag+formatTime(m.issuedAt),
	)

	if m.expirationTime != nil {
		lines = append(lines, expirationTimeTag+formatTime(*m.expirationTime))
	}
	if m.notBefore != nil {
		lines = append(lines, notBeforeTag+formatTime(*m.notBefore))
	}
	if m.requestID != nil {
		lines = append(lines, requestIDTag+*m.requestID)
	}
	if len(m.resources) > 0 {
		lines = append(lines, resourcesTag)
		for _, r := range m.resources {
			lines = append(lines, resourcePrefix+r)
		}
	}

	return strings.Join(lines, "\n")
}

// String is the same as Format.
func (m *Message) String() string {
	return m.Format()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}
