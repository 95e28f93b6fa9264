package sign

import (
	"bytes"
	"crypto/ecdsa"
	"sync"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigvo/siwe-go/pkg/log"
)

const testPrivateKeyHex = "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318"

// warnRecorder keeps every warning and discards the rest.
type warnRecorder struct {
	log.Logger

	mu       sync.Mutex
	messages []string
}

func newWarnRecorder() *warnRecorder {
	return &warnRecorder{Logger: log.NewNoopLogger()}
}

func (w *warnRecorder) Warn(msg string, _ ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.messages = append(w.messages, msg)
}

func (w *warnRecorder) Messages() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.messages...)
}

func testKey(t *testing.T) (*ecdsa.PrivateKey, Address) {
	t.Helper()
	key, err := ethcrypto.HexToECDSA(testPrivateKeyHex)
	require.NoError(t, err)
	return key, Address{ethcrypto.PubkeyToAddress(key.PublicKey)}
}

// signText returns a personal-sign signature with the raw 0/1 recovery id.
func signText(t *testing.T, key *ecdsa.PrivateKey, message []byte) Signature {
	t.Helper()
	sig, err := ethcrypto.Sign(TextHash(message), key)
	require.NoError(t, err)
	return sig
}

func TestNormalizeRecoveryID(t *testing.T) {
	tests := []struct {
		in, out byte
	}{
		{0, 0}, {1, 1}, {3, 3},
		{4, 4}, {26, 26},
		{27, 0}, {28, 1}, {30, 3},
		{31, 0}, {34, 3},
		{35, 0}, {36, 1}, {38, 3},
		{39, 39}, {255, 255},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, NormalizeRecoveryID(tt.in), "v=%d", tt.in)
	}
}

func TestRecoverer_RecoverAddress(t *testing.T) {
	key, expected := testKey(t)
	message := []byte("service.org wants you to sign in with your Ethereum account")
	raw := signText(t, key, message)
	recoverer := NewRecoverer(nil)

	for _, offset := range []byte{0, 27, 31, 35} {
		sig := bytes.Clone(raw)
		sig[64] += offset

		addr, err := recoverer.RecoverAddress(message, sig)
		require.NoError(t, err, "v offset %d", offset)
		assert.True(t, expected.Equals(addr), "v offset %d", offset)
	}

	t.Run("different message yields different address", func(t *testing.T) {
		addr, err := recoverer.RecoverAddress([]byte("something else"), raw)
		if err == nil {
			assert.False(t, expected.Equals(addr))
		}
	})

	t.Run("package helper", func(t *testing.T) {
		addr, err := RecoverAddressFromHash(TextHash(message), raw)
		require.NoError(t, err)
		assert.Equal(t, expected.Checksum(), addr.Checksum())
	})
}

func TestRecoverer_Errors(t *testing.T) {
	key, _ := testKey(t)
	digest := TextHash([]byte("hello"))
	valid := signText(t, key, []byte("hello"))

	withV := func(v byte) Signature {
		sig := bytes.Clone(valid)
		sig[64] = v
		return sig
	}

	overflowR := bytes.Clone(valid)
	copy(overflowR[:32], bytes.Repeat([]byte{0xff}, 32))

	overflowS := bytes.Clone(valid)
	copy(overflowS[32:64], bytes.Repeat([]byte{0xff}, 32))

	zeroR := bytes.Clone(valid)
	clear(zeroR[:32])

	tests := []struct {
		name     string
		digest   []byte
		sig      Signature
		kind     ErrorKind
		sentinel error
	}{
		{"short digest", digest[:31], valid, KindBadArguments, ErrBadArguments},
		{"short signature", digest, valid[:64], KindBadArguments, ErrBadArguments},
		{"long signature", digest, append(bytes.Clone(valid), 0x00), KindBadArguments, ErrBadArguments},
		{"recovery id 4", digest, withV(4), KindSignatureParseFailure, ErrSignatureParseFailure},
		{"v 26", digest, withV(26), KindSignatureParseFailure, ErrSignatureParseFailure},
		{"v 39", digest, withV(39), KindSignatureParseFailure, ErrSignatureParseFailure},
		{"r overflow", digest, overflowR, KindSignatureParseFailure, ErrSignatureParseFailure},
		{"s overflow", digest, overflowS, KindSignatureParseFailure, ErrSignatureParseFailure},
		{"zero r", digest, zeroR, KindSignatureFailure, ErrSignatureFailure},
	}

	recoverer := NewRecoverer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := recoverer.RecoverAddressFromHash(tt.digest, tt.sig)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.sentinel)

			var recErr *RecoveryError
			require.ErrorAs(t, err, &recErr)
			assert.Equal(t, tt.kind, recErr.Kind)
		})
	}
}

func TestRecoverer_ParseFailureIsLogged(t *testing.T) {
	key, _ := testKey(t)
	sig := signText(t, key, []byte("hello"))
	sig[64] = 99

	logger := newWarnRecorder()
	_, err := NewRecoverer(logger).RecoverAddress([]byte("hello"), sig)
	require.ErrorIs(t, err, ErrSignatureParseFailure)
	assert.Equal(t, []string{"failed to parse signature: recoverable ECDSA signature parse failed"}, logger.Messages())
}

func TestRecoverer_ZeroValue(t *testing.T) {
	key, _ := testKey(t)
	sig := signText(t, key, []byte("hello"))

	logger := newWarnRecorder()
	recoverer := &Recoverer{logger: logger}

	_, err := recoverer.RecoverAddress([]byte("hello"), sig)
	require.ErrorIs(t, err, ErrInvalidContext)
	assert.Equal(t, []string{"failed to recover public key: invalid context"}, logger.Messages())

	t.Run("bad arguments are reported before the context", func(t *testing.T) {
		_, err := (&Recoverer{}).RecoverAddressFromHash(nil, sig)
		assert.ErrorIs(t, err, ErrBadArguments)
	})

	t.Run("nil receiver", func(t *testing.T) {
		var nilRecoverer *Recoverer
		_, err := nilRecoverer.RecoverAddress([]byte("hello"), sig)
		assert.ErrorIs(t, err, ErrInvalidContext)
	})
}

func TestRecoverer_Concurrent(t *testing.T) {
	key, expected := testKey(t)
	recoverer := NewRecoverer(nil)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	mismatches := make(chan Address, workers)

	for i := range workers {
		message := []byte{byte(i), 'm', 's', 'g'}
		sig := signText(t, key, message)

		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				addr, err := recoverer.RecoverAddress(message, sig)
				if err != nil {
					errs <- err
					return
				}
				if !addr.Equals(expected) {
					mismatches <- addr
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	close(mismatches)

	for err := range errs {
		t.Errorf("unexpected error: %v", err)
	}
	for addr := range mismatches {
		t.Errorf("unexpected address: %s", addr.Checksum())
	}
}

func TestRecoveryError(t *testing.T) {
	err := newRecoveryError(KindSignatureFailure, "boom")
	assert.Equal(t, "sign: signature failure: boom", err.Error())
	assert.ErrorIs(t, err, ErrSignatureFailure)
	assert.NotErrorIs(t, err, ErrBadArguments)

	bare := &RecoveryError{Kind: KindUnknown}
	assert.Equal(t, "sign: unknown error", bare.Error())
	assert.ErrorIs(t, bare, ErrUnknown)
}
