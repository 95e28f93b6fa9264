package sign

import (
	"strconv"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// personalSignPrefix is the EIP-191 version 0x45 header: 0x19 followed by the literal
// "Ethereum Signed Message:\n". The decimal byte length of the message follows it.
const personalSignPrefix = "\x19Ethereum Signed Message:\n"

// Keccak256 returns the legacy keccak-256 digest of the concatenated inputs.
func Keccak256(data ...[]byte) []byte {
	return ethcrypto.Keccak256(data...)
}

// TextHash returns the personal-sign digest of data:
// keccak256(0x19 "Ethereum Signed Message:\n" len(data) data).
func TextHash(data []byte) []byte {
	header := make([]byte, 0, len(personalSignPrefix)+20)
	header = append(header, personalSignPrefix...)
	header = strconv.AppendInt(header, int64(len(data)), 10)
	return ethcrypto.Keccak256(header, data)
}
