package sign

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSignature(t *testing.T) {
	t.Run("valid hex", func(t *testing.T) {
		sig, err := ParseSignature("0x010203")
		require.NoError(t, err)
		assert.Equal(t, Signature{0x01, 0x02, 0x03}, sig)
	})

	tests := []struct {
		name  string
		input string
	}{
		{"missing prefix", "010203"},
		{"odd length", "0x123"},
		{"not hex", "0xzz"},
		{"empty", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSignature(tt.input)
			assert.ErrorContains(t, err, "invalid signature hex")
		})
	}
}

func TestSignatureComponents(t *testing.T) {
	sig := make(Signature, SignatureLength)
	sig[0] = 0xaa
	sig[32] = 0xbb
	sig[64] = 28

	assert.Equal(t, byte(0xaa), sig.R()[0])
	assert.Len(t, sig.R(), 32)
	assert.Equal(t, byte(0xbb), sig.S()[0])
	assert.Len(t, sig.S(), 32)
	assert.Equal(t, byte(28), sig.V())

	short := Signature{0x01}
	assert.Nil(t, short.R())
	assert.Nil(t, short.S())
	assert.Equal(t, byte(0), short.V())
}

func TestSignatureJSON(t *testing.T) {
	sig := Signature{0x01, 0x23, 0x45}
	assert.Equal(t, "0x012345", sig.String())

	data, err := json.Marshal(sig)
	require.NoError(t, err)
	assert.Equal(t, `"0x012345"`, string(data))

	var decoded Signature
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, sig, decoded)

	for _, input := range []string{`{invalid}`, `"0xinvalidhex"`, `123`} {
		var s Signature
		assert.Error(t, json.Unmarshal([]byte(input), &s), input)
	}
}
