package sign

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

const (
	// SignatureLength is the size of an r‖s‖v recoverable signature.
	SignatureLength = 65
	// DigestLength is the size of a keccak-256 digest.
	DigestLength = 32
)

// Signature is a raw r‖s‖v recoverable ECDSA signature.
type Signature []byte

// ParseSignature decodes a 0x-prefixed hex signature. The length is not checked here;
// recovery rejects anything but SignatureLength bytes.
func ParseSignature(s string) (Signature, error) {
	decoded, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("invalid signature hex: %w", err)
	}
	return Signature(decoded), nil
}

// R returns the first 32 bytes, or nil when the signature is too short.
func (s Signature) R() []byte {
	if len(s) != SignatureLength {
		return nil
	}
	return s[:32]
}

// S returns bytes 32 to 64, or nil when the signature is too short.
func (s Signature) S() []byte {
	if len(s) != SignatureLength {
		return nil
	}
	return s[32:64]
}

// V returns the trailing recovery byte, or 0 when the signature is malformed.
func (s Signature) V() byte {
	if len(s) != SignatureLength {
		return 0
	}
	return s[64]
}

// String renders the signature as 0x-prefixed lowercase hex.
func (s Signature) String() string {
	return hexutil.Encode(s)
}

func (s Signature) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Signature) UnmarshalJSON(data []byte) error {
	var hexStr string
	if err := json.Unmarshal(data, &hexStr); err != nil {
		return err
	}
	decoded, err := ParseSignature(hexStr)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
