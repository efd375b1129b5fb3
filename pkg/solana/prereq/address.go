package prereq

import (
	"crypto/ed25519"

	"github.com/code-payments/wallet-toolkit/pkg/solana"
)

var (
	prereqPrefix     = []byte("prereqs")
	collectionPrefix = []byte("collection")
)

type GetPrereqAddressArgs struct {
	User ed25519.PublicKey
}

type GetCollectionAuthorityAddressArgs struct {
	Collection ed25519.PublicKey
}

// GetPrereqAddress returns the account holding a user's enrollment record.
func GetPrereqAddress(args *GetPrereqAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		prereqPrefix,
		args.User,
	)
}

// GetCollectionAuthorityAddress returns the program's signing authority over
// a collection.
func GetCollectionAuthorityAddress(args *GetCollectionAuthorityAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		collectionPrefix,
		args.Collection,
	)
}
