package sign

import (
	"sync"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/bigvo/siwe-go/pkg/log"
)

const (
	// compactMagicOffset is added to the recovery id in the leading byte of a
	// decred compact signature (uncompressed key variant).
	compactMagicOffset = 27
	// uncompressedPubKeyLength is 0x04 followed by the X and Y coordinates.
	uncompressedPubKeyLength = 65
	uncompressedPubKeyPrefix = 0x04
	maxRecoveryID            = 3
)

var defaultRecoverer = NewRecoverer(nil)

// RecoverAddressFromHash recovers the candidate signer of digest using a shared Recoverer.
func RecoverAddressFromHash(digest []byte, sig Signature) (Address, error) {
	return defaultRecoverer.RecoverAddressFromHash(digest, sig)
}

// Recoverer recovers signer addresses. It is safe for concurrent use: every call
// takes its own recovery context from a pool and returns it before exiting.
// The zero value has no context pool and fails with ErrInvalidContext; use NewRecoverer.
type Recoverer struct {
	logger log.Logger
	pool   *sync.Pool
}

// NewRecoverer creates a Recoverer. A nil logger discards the warnings.
func NewRecoverer(logger log.Logger) *Recoverer {
	if logger == nil {
		logger = log.NewNoopLogger()
	}
	return &Recoverer{
		logger: logger,
		pool: &sync.Pool{
			New: func() any {
				return &recoveryContext{hasher: ethcrypto.NewKeccakState()}
			},
		},
	}
}

// recoveryContext is the scratch state of a single recovery.
type recoveryContext struct {
	compact [SignatureLength]byte
	hasher  ethcrypto.KeccakState
	digest  [DigestLength]byte
}

func (r *Recoverer) logOrNoop() log.Logger {
	if r == nil || r.logger == nil {
		return log.NewNoopLogger()
	}
	return r.logger
}

func (r *Recoverer) acquire() (*recoveryContext, error) {
	if r == nil || r.pool == nil {
		return nil, newRecoveryError(KindInvalidContext, "recoverer is not initialised")
	}
	rc, ok := r.pool.Get().(*recoveryContext)
	if !ok || rc == nil || rc.hasher == nil {
		return nil, newRecoveryError(KindInvalidContext, "pool returned an unusable context")
	}
	return rc, nil
}

func (r *Recoverer) release(rc *recoveryContext) {
	clear(rc.compact[:])
	clear(rc.digest[:])
	rc.hasher.Reset()
	r.pool.Put(rc)
}

// RecoverAddress recovers the signer of message under the personal-sign convention.
func (r *Recoverer) RecoverAddress(message []byte, sig Signature) (Address, error) {
	return r.RecoverAddressFromHash(TextHash(message), sig)
}

// RecoverAddressFromHash recovers the candidate address that signed digest.
//
// digest must be DigestLength bytes and sig SignatureLength bytes (r‖s‖v). The v byte
// may use any of the 27, 31 or 35 based encodings or a raw recovery id.
func (r *Recoverer) RecoverAddressFromHash(digest []byte, sig Signature) (Address, error) {
	if len(digest) != DigestLength || len(sig) != SignatureLength {
		return Address{}, newRecoveryError(KindBadArguments,
			"want %d-byte digest and %d-byte signature, got %d and %d",
			DigestLength, SignatureLength, len(digest), len(sig))
	}

	rc, err := r.acquire()
	if err != nil {
		r.logOrNoop().Warn("failed to recover public key: invalid context", "err", err)
		return Address{}, err
	}
	defer r.release(rc)

	if err := rc.parse(sig); err != nil {
		r.logOrNoop().Warn("failed to parse signature: recoverable ECDSA signature parse failed", "err", err)
		return Address{}, err
	}

	pub, _, err := ecdsa.RecoverCompact(rc.compact[:], digest)
	if err != nil {
		return Address{}, &RecoveryError{Kind: KindSignatureFailure, Err: err}
	}

	return rc.address(pub.SerializeUncompressed())
}

// parse validates r, s and the recovery id and lays them out as a compact signature.
func (rc *recoveryContext) parse(sig Signature) error {
	recID := NormalizeRecoveryID(sig.V())
	if recID > maxRecoveryID {
		return newRecoveryError(KindSignatureParseFailure, "recovery id %d out of range", sig.V())
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig.R()); overflow {
		return newRecoveryError(KindSignatureParseFailure, "r is not below the group order")
	}
	if overflow := s.SetByteSlice(sig.S()); overflow {
		return newRecoveryError(KindSignatureParseFailure, "s is not below the group order")
	}

	rc.compact[0] = compactMagicOffset + recID
	copy(rc.compact[1:33], sig.R())
	copy(rc.compact[33:], sig.S())
	return nil
}

// address hashes the X‖Y coordinates of an uncompressed key and keeps the low 20 bytes.
func (rc *recoveryContext) address(pub []byte) (Address, error) {
	if len(pub) != uncompressedPubKeyLength || pub[0] != uncompressedPubKeyPrefix {
		return Address{}, newRecoveryError(KindUnknown, "unexpected public key encoding (%d bytes)", len(pub))
	}

	rc.hasher.Write(pub[1:])
	if _, err := rc.hasher.Read(rc.digest[:]); err != nil {
		return Address{}, &RecoveryError{Kind: KindUnknown, Err: err}
	}
	return NewAddress(rc.digest[DigestLength-AddressLength:]), nil
}

// NormalizeRecoveryID maps the legacy v encodings onto the 0-3 recovery id space:
// [27,30], [31,34] and [35,38] lose 27, 31 and 35 respectively. Other values are
// returned unchanged.
func NormalizeRecoveryID(v byte) byte {
	switch {
	case v >= 27 && v <= 30:
		return v - 27
	case v >= 31 && v <= 34:
		return v - 31
	case v >= 35 && v <= 38:
		return v - 35
	default:
		return v
	}
}
