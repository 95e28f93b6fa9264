// Package sign recovers Ethereum addresses from recoverable ECDSA signatures.
//
// It covers the cryptographic half of Sign-In with Ethereum verification:
//
//   - TextHash builds the EIP-191 personal-sign digest of a message.
//   - ParseSignature decodes a 0x-prefixed r‖s‖v signature.
//   - Recoverer turns a digest and a signature into a candidate Address.
//
// The curve arithmetic is delegated to github.com/decred/dcrd/dcrec/secp256k1/v4;
// keccak-256 and hex handling come from go-ethereum.
//
// A recovered address is only a candidate: it is the address whose key would have
// produced the signature over the digest. Callers decide whether it is the expected one.
//
// # Usage
//
//	sig, err := sign.ParseSignature("0x...")
//	if err != nil {
//	    return err
//	}
//	addr, err := sign.RecoverAddressFromHash(sign.TextHash([]byte(text)), sig)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(addr.Checksum())
//
// # Errors
//
// Every failure is a *RecoveryError whose Kind tells bad input sizes, unparsable
// signatures and failed recoveries apart. Use errors.Is with ErrBadArguments,
// ErrSignatureParseFailure, ErrSignatureFailure, ErrInvalidContext or ErrUnknown.
package sign
