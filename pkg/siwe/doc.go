// Package siwe implements Sign-In with Ethereum (EIP-4361) messages and their verification.
//
// A Message is built with NewMessage or decoded from its canonical text with ParseMessage,
// and Format renders it back:
//
//	msg, err := siwe.ParseMessage(text)
//	if err != nil {
//	    return err // *GrammarError or *ValidationError
//	}
//	fmt.Println(msg.Format() == text)
//
// A Verifier checks the activation window, the chain id and the personal-sign signature
// of a message:
//
//	verifier := siwe.NewVerifier(1, siwe.WithLogger(logger), siwe.WithMetrics(metrics))
//	ok, err := verifier.Verify(ctx, msg, signature)
//
// ok is false with a nil error when the signature is well formed but was made by another
// account. Nonce tracking, sessions and EIP-1271 contract signatures are left to callers.
package siwe
