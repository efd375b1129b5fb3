package keypair

import (
	"bytes"
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	ErrInvalidLength     = errors.New("key material must be 32 or 64 bytes")
	ErrByteOutOfRange    = errors.New("value is outside the range 0-255")
	ErrPublicKeyMismatch = errors.New("public key does not match seed")
	ErrMalformedArray    = errors.New("malformed byte array")
)

// DecodeError is returned when text or a byte list cannot be turned into key
// material. Input holds the offending value.
type DecodeError struct {
	Input string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid key material %q: %v", e.Input, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Keypair is an ed25519 signing key. The public key is derived from the seed
// on construction and the value is never mutated afterwards.
type Keypair struct {
	private ed25519.PrivateKey
}

// Generate returns fresh key material from crypto/rand.
func Generate() (*Keypair, error) {
	_, private, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, errors.Wrap(err, "error generating private key")
	}
	return &Keypair{private: private}, nil
}

// FromSeed builds a keypair from a 32-byte seed.
func FromSeed(seed []byte) (*Keypair, error) {
	return fromBytes(base58.Encode(seed), seed)
}

// FromPrivateKey wraps an existing ed25519 private key.
func FromPrivateKey(key ed25519.PrivateKey) (*Keypair, error) {
	return fromBytes(base58.Encode(key), key)
}

// fromBytes accepts either a bare seed or the 64-byte seed || public key
// layout written by the Solana CLI.
func fromBytes(input string, raw []byte) (*Keypair, error) {
	switch len(raw) {
	case ed25519.SeedSize:
		return &Keypair{private: ed25519.NewKeyFromSeed(raw)}, nil
	case ed25519.PrivateKeySize:
		private := ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
		if !bytes.Equal(private[ed25519.SeedSize:], raw[ed25519.SeedSize:]) {
			return nil, &DecodeError{Input: input, Err: ErrPublicKeyMismatch}
		}
		return &Keypair{private: private}, nil
	default:
		return nil, &DecodeError{
			Input: input,
			Err:   errors.Wrapf(ErrInvalidLength, "got %d bytes", len(raw)),
		}
	}
}

func (k *Keypair) Seed() []byte {
	return k.private.Seed()
}

func (k *Keypair) PublicKey() ed25519.PublicKey {
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, k.private[ed25519.SeedSize:])
	return pub
}

func (k *Keypair) PrivateKey() ed25519.PrivateKey {
	private := make([]byte, ed25519.PrivateKeySize)
	copy(private, k.private)
	return private
}

// Address is the base58 encoded public key.
func (k *Keypair) Address() string {
	return base58.Encode(k.private[ed25519.SeedSize:])
}

func (k *Keypair) Sign(message []byte) []byte {
	return ed25519.Sign(k.private, message)
}

func (k *Keypair) Equal(other *Keypair) bool {
	if k == nil || other == nil {
		return k == other
	}
	return k.private.Equal(other.private)
}
