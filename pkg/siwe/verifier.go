package siwe

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bigvo/siwe-go/pkg/log"
	"github.com/bigvo/siwe-go/pkg/sign"
)

const tracerName = "github.com/bigvo/siwe-go/pkg/siwe"

// Verifier checks SIWE messages against one network. It is safe for concurrent use.
type Verifier struct {
	network   uint64
	now       func() time.Time
	logger    log.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	recoverer *sign.Recoverer
}

type VerifierOption func(*Verifier)

// WithClock sets the time source of the activation and expiry checks.
func WithClock(now func() time.Time) VerifierOption {
	return func(v *Verifier) { v.now = now }
}

func WithLogger(logger log.Logger) VerifierOption {
	return func(v *Verifier) { v.logger = logger }
}

func WithMetrics(metrics *Metrics) VerifierOption {
	return func(v *Verifier) { v.metrics = metrics }
}

// WithTracer replaces the global otel tracer.
func WithTracer(tracer trace.Tracer) VerifierOption {
	return func(v *Verifier) { v.tracer = tracer }
}

// WithRecoverer replaces the recoverer built from the verifier's logger.
func WithRecoverer(recoverer *sign.Recoverer) VerifierOption {
	return func(v *Verifier) { v.recoverer = recoverer }
}

// NewVerifier creates a Verifier that accepts messages for chain id network.
func NewVerifier(network uint64, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		network: network,
		now:     time.Now,
		logger:  log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(v)
	}

	if v.logger == nil {
		v.logger = log.NewNoopLogger()
	}
	if v.now == nil {
		v.now = time.Now
	}
	if v.tracer == nil {
		v.tracer = otel.Tracer(tracerName)
	}
	if v.recoverer == nil {
		v.recoverer = sign.NewRecoverer(v.logger.WithName("sign"))
	}
	return v
}

// Verify checks message with a one-off Verifier for network whose clock is fixed at now.
func Verify(message *Message, signature string, network uint64, now time.Time) (bool, error) {
	v := NewVerifier(network, WithClock(func() time.Time { return now }))
	return v.Verify(context.Background(), message, signature)
}

// Verify reports whether signature is a personal-sign signature of message's canonical
// text by message's address.
//
// A message that is not active yet, expired, for another chain or invalid fails with
// ErrNotYetActive, ErrExpired, ErrDifferentNetwork or ErrInvalidMessageData. A signature
// that cannot be decoded or recovered fails with ErrInvalidSignature; recovery failures
// also match the sign package sentinels. A recovered address other than the claimed one
// is not an error: Verify returns false.
func (v *Verifier) Verify(ctx context.Context, message *Message, signature string) (bool, error) {
	ctx, span := v.tracer.Start(ctx, "siwe.Verify", trace.WithAttributes(
		attribute.String("siwe.network", strconv.FormatUint(v.network, 10)),
	))
	defer span.End()

	ctx = log.SetContextLogger(ctx, v.logger)
	logger := log.FromContext(ctx)

	ok, err := v.verify(ctx, message, signature)
	outcome := outcomeOf(ok, err)
	v.metrics.recordOutcome(outcome)
	span.SetAttributes(attribute.String("siwe.outcome", outcome))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Debug("siwe verification failed", "outcome", outcome, "err", err)
		return false, err
	}
	logger.Debug("siwe verification finished", "outcome", outcome, "address", message.Address())
	return ok, nil
}

// VerifyText parses text and verifies it. Parse failures are returned unchanged.
func (v *Verifier) VerifyText(ctx context.Context, text, signature string) (bool, error) {
	message, err := ParseMessage(text)
	if err != nil {
		return false, err
	}
	return v.Verify(ctx, message, signature)
}

func (v *Verifier) verify(ctx context.Context, message *Message, signature string) (bool, error) {
	if message == nil {
		return false, ErrInvalidMessageData
	}

	now := v.now()
	if notBefore, ok := message.NotBefore(); ok && now.Before(notBefore) {
		return false, ErrNotYetActive
	}
	// A message expires at its expiration time, while it is already active at notBefore.
	if expirationTime, ok := message.ExpirationTime(); ok && !now.Before(expirationTime) {
		return false, ErrExpired
	}
	if message.ChainID() != v.network {
		return false, ErrDifferentNetwork
	}

	if err := message.validate(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidMessageData, err)
	}
	digest := sign.TextHash([]byte(message.Format()))

	sig, err := sign.ParseSignature(signature)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	recovered, err := v.recoverer.RecoverAddressFromHash(digest, sig)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	if recovered.Checksum() != message.Address() {
		log.FromContext(ctx).Debug("recovered address does not match",
			"recovered", recovered.Checksum(), "claimed", message.Address())
		return false, nil
	}
	return true, nil
}

func outcomeOf(ok bool, err error) string {
	switch {
	case err == nil && ok:
		return OutcomeVerified
	case err == nil:
		return OutcomeMismatch
	case errors.Is(err, ErrNotYetActive):
		return OutcomeNotYetActive
	case errors.Is(err, ErrExpired):
		return OutcomeExpired
	case errors.Is(err, ErrDifferentNetwork):
		return OutcomeDifferentNetwork
	case errors.Is(err, ErrInvalidSignature):
		return OutcomeInvalidSignature
	default:
		return OutcomeInvalidMessage
	}
}
