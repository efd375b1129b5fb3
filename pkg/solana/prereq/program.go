// Package prereq builds instructions for the enrollment program that records
// completed prerequisites and mints the enrollment NFT.
package prereq

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

var (
	ErrInvalidProgram         = errors.New("invalid program id")
	ErrInvalidInstructionData = errors.New("unexpected instruction data")
)

var (
	PROGRAM_ADDRESS = mustBase58Decode("TRBZyQHB3m68FGeVsqTK39Wm4xejadjVhP5MAZaKWDM")
	PROGRAM_ID      = ed25519.PublicKey(PROGRAM_ADDRESS)
)

var (
	// DEFAULT_COLLECTION is the core collection enrollment mints belong to.
	DEFAULT_COLLECTION = ed25519.PublicKey(mustBase58Decode("5ebsp5RChCGK7ssRZMVMufgVZhd2kFbNaotcZ5UvytN2"))

	MPL_CORE_PROGRAM_ID = ed25519.PublicKey(mustBase58Decode("CoREENxT6tW1HoK8ypY1SxRMZTcVPm7R94rH4PZNhX7d"))
	SYSTEM_PROGRAM_ID   = ed25519.PublicKey(mustBase58Decode("11111111111111111111111111111111"))
)

func mustBase58Decode(value string) []byte {
	decoded, err := base58.Decode(value)
	if err != nil {
		panic(err)
	}
	return decoded
}
