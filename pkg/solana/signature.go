package solana

import (
	"crypto/ed25519"
)

// Verify reports whether sig is a valid signature of message by pub.
//
// Unlike ed25519.Verify, malformed keys and signatures are reported as
// invalid rather than causing a panic.
func Verify(pub ed25519.PublicKey, message, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(pub, message, sig)
}

// VerifySignature is a convenience wrapper around Verify for a Signature value.
func VerifySignature(pub ed25519.PublicKey, message []byte, sig Signature) bool {
	return Verify(pub, message, sig[:])
}
