package sign

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// AddressLength is the size of an Ethereum account address.
const AddressLength = common.AddressLength

// Address is a 20-byte Ethereum account address.
type Address struct{ common.Address }

// NewAddress keeps the low-order AddressLength bytes of b.
func NewAddress(b []byte) Address {
	return Address{common.BytesToAddress(b)}
}

// String renders the address as 0x-prefixed lowercase hex.
func (a Address) String() string {
	return hexutil.Encode(a.Address.Bytes())
}

// Checksum renders the address with EIP-55 mixed-case checksum casing.
func (a Address) Checksum() string {
	return a.Address.Hex()
}

// Equals compares the raw address bytes.
func (a Address) Equals(other Address) bool {
	return a.Address == other.Address
}

// ChecksumAddress applies EIP-55 casing to a 0x-prefixed 40-hex-digit address.
// It reports false when s is not such an address.
func ChecksumAddress(s string) (string, bool) {
	if !common.IsHexAddress(s) || len(s) != 2+2*AddressLength || s[:2] != "0x" {
		return "", false
	}
	return common.HexToAddress(s).Hex(), true
}
