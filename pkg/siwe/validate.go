package siwe

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// messageFields is the validation view of a Message.
type messageFields struct {
	Domain    string   `siwe:"domain" validate:"required,authority"`
	Address   string   `siwe:"address" validate:"required,eth_addr"`
	Statement string   `siwe:"statement" validate:"singleline"`
	URI       string   `siwe:"uri" validate:"required,absuri"`
	Version   string   `siwe:"version" validate:"eq=1"`
	Nonce     string   `siwe:"nonce" validate:"alphanum,min=8"`
	RequestID string   `siwe:"requestId" validate:"singleline"`
	Resources []string `siwe:"resources" validate:"dive,absuri"`
}

var fieldRules = map[string]string{
	"required":   "must not be empty",
	"authority":  "must be an RFC 3986 authority without scheme or path",
	"eth_addr":   "must be 0x followed by 40 hex digits",
	"singleline": "must not contain line breaks",
	"absuri":     "must be an absolute URI",
	"eq":         "must be " + Version,
	"alphanum":   "must be alphanumeric",
	"min":        "must be at least 8 characters",
}

var getValidator = sync.OnceValue(func() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("siwe")
	})

	for tag, fn := range map[string]func(string) bool{
		"authority":  isAuthority,
		"absuri":     isAbsoluteURI,
		"singleline": isSingleLine,
	} {
		if err := validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return fn(fl.Field().String())
		}); err != nil {
			panic(fmt.Sprintf("failed to register %s validation: %v", tag, err))
		}
	}
	return validate
})

func (m *Message) validate() error {
	statement, _ := m.Statement()
	requestID, _ := m.RequestID()
	fields := messageFields{
		Domain:    m.domain,
		Address:   m.address,
		Statement: statement,
		URI:       m.uri,
		Version:   m.version,
		Nonce:     m.nonce,
		RequestID: requestID,
		Resources: m.resources,
	}

	if err := getValidator().Struct(&fields); err != nil {
		return toValidationError(err)
	}

	for _, ts := range []struct {
		field string
		t     *time.Time
	}{
		{"issuedAt", &m.issuedAt},
		{"expirationTime", m.expirationTime},
		{"notBefore", m.notBefore},
	} {
		// TimeLayout has a four-digit year.
		if ts.t != nil && (ts.t.Year() < 0 || ts.t.Year() > 9999) {
			return &ValidationError{
				Field:  ts.field,
				Value:  ts.t.String(),
				Reason: "must fall within years 0000 to 9999 in UTC",
			}
		}
	}

	if m.notBefore != nil && m.expirationTime != nil && !m.notBefore.Before(*m.expirationTime) {
		return &ValidationError{
			Field:  "notBefore",
			Value:  formatTime(*m.notBefore),
			Reason: "must be before expirationTime " + formatTime(*m.expirationTime),
		}
	}
	return nil
}

// toValidationError reports the first failed rule.
func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "message", Reason: err.Error(), Err: err}
	}

	fe := fieldErrs[0]
	reason, ok := fieldRules[fe.Tag()]
	if !ok {
		reason = "failed " + fe.Tag() + " rule"
	}
	return &ValidationError{
		Field:  fe.Field(),
		Value:  fmt.Sprint(fe.Value()),
		Reason: reason,
		Err:    fe,
	}
}

func isAuthority(s string) bool {
	if s == "" || strings.ContainsFunc(s, unicode.IsSpace) || strings.ContainsAny(s, "/?#") {
		return false
	}
	u, err := url.Parse("//" + s)
	return err == nil && u.Host != "" && u.Path == "" && u.Scheme == ""
}

func isAbsoluteURI(s string) bool {
	if strings.ContainsFunc(s, unicode.IsSpace) {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func isSingleLine(s string) bool {
	return !strings.ContainsAny(s, "\r\n")
}
