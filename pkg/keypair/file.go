package keypair

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// DefaultPath is the Solana CLI default keypair location, or "" when the home
// directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "solana", "id.json")
}

// ExpandPath resolves a leading "~/" against the user's home directory.
func ExpandPath(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// LoadFile reads a JSON byte array wallet file, such as the one written by
// solana-keygen. Files are only ever read.
func LoadFile(path string) (*Keypair, error) {
	if path == "" {
		return nil, errors.New("keypair path required")
	}

	raw, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "error reading keypair file %s", path)
	}

	var values []int
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, &DecodeError{Input: path, Err: errors.Wrap(ErrMalformedArray, err.Error())}
	}

	return FromByteArray(values)
}
