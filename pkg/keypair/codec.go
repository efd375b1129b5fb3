package keypair

import (
	"strconv"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// FromBase58 decodes a base58 encoded seed, or a 64-byte wallet secret.
func FromBase58(text string) (*Keypair, error) {
	raw, err := base58.Decode(strings.TrimSpace(text))
	if err != nil {
		return nil, &DecodeError{Input: text, Err: errors.Wrap(err, "error decoding string as base58")}
	}
	return fromBytes(text, raw)
}

// FromByteArray decodes a list of byte values, as found in Solana CLI wallet
// files.
func FromByteArray(values []int) (*Keypair, error) {
	raw := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return nil, &DecodeError{
				Input: strconv.Itoa(v),
				Err:   errors.Wrapf(ErrByteOutOfRange, "element %d", i),
			}
		}
		raw[i] = byte(v)
	}
	return fromBytes(formatInts(values), raw)
}

// ParseByteArray decodes text of the form "[12,34,...]". Whitespace around
// elements is ignored.
func ParseByteArray(text string) (*Keypair, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, &DecodeError{Input: text, Err: errors.Wrap(ErrMalformedArray, "missing brackets")}
	}

	body := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if body == "" {
		return FromByteArray(nil)
	}

	parts := strings.Split(body, ",")
	values := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, &DecodeError{
				Input: part,
				Err:   errors.Wrapf(ErrMalformedArray, "element %d is not an integer", i),
			}
		}
		values[i] = v
	}

	return FromByteArray(values)
}

// ToBase58 encodes the 32-byte seed.
func (k *Keypair) ToBase58() string {
	return base58.Encode(k.Seed())
}

// ToByteArray returns the 32-byte seed as a list of integers.
func (k *Keypair) ToByteArray() []int {
	return toInts(k.Seed())
}

func (k *Keypair) FormatByteArray() string {
	return formatInts(k.ToByteArray())
}

// ToWalletBytes returns seed || public key, the layout of a Solana CLI
// keypair file.
func (k *Keypair) ToWalletBytes() []int {
	return toInts(k.PrivateKey())
}

func (k *Keypair) FormatWallet() string {
	return formatInts(k.ToWalletBytes())
}

// ToWalletBase58 encodes seed || public key, the form accepted by most
// browser wallets for import.
func (k *Keypair) ToWalletBase58() string {
	return base58.Encode(k.private)
}

func toInts(raw []byte) []int {
	values := make([]int, len(raw))
	for i, b := range raw {
		values[i] = int(b)
	}
	return values
}

func formatInts(values []int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	sb.WriteByte(']')
	return sb.String()
}
