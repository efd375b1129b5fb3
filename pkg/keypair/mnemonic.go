package keypair

import (
	"crypto/ed25519"
	"strings"

	"github.com/cosmos/go-bip39"
	"github.com/pkg/errors"
)

const mnemonicEntropyBits = 256

var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// NewMnemonic returns a fresh 24 word BIP-39 phrase.
func NewMnemonic() (string, error) {
	entropy, err := bip39.NewEntropy(mnemonicEntropyBits)
	if err != nil {
		return "", errors.Wrap(err, "error generating entropy")
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", errors.Wrap(err, "error generating mnemonic")
	}
	return mnemonic, nil
}

// FromMnemonic derives a keypair from the first 32 bytes of the BIP-39 seed,
// matching `solana-keygen recover` without a derivation path.
func FromMnemonic(mnemonic, passphrase string) (*Keypair, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")

	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, &DecodeError{Input: mnemonic, Err: errors.Wrap(ErrInvalidMnemonic, err.Error())}
	}

	return &Keypair{private: ed25519.NewKeyFromSeed(seed[:ed25519.SeedSize])}, nil
}
