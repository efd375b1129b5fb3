package prereq

import (
	"bytes"
	"crypto/ed25519"

	"github.com/pkg/errors"

	"github.com/code-payments/wallet-toolkit/pkg/solana"
)

var submitRsInstructionDiscriminator = []byte{
	77, 124, 82, 163, 21, 133, 181, 206,
}

const SubmitRsInstructionAccountsCount = 7

type SubmitRsInstructionAccounts struct {
	User       ed25519.PublicKey
	Account    ed25519.PublicKey
	Mint       ed25519.PublicKey
	Collection ed25519.PublicKey
	Authority  ed25519.PublicKey
}

// NewSubmitRsInstruction records the user's completion of the Rust
// prerequisites and mints into the collection. Both User and Mint sign.
func NewSubmitRsInstruction(accounts *SubmitRsInstructionAccounts) solana.Instruction {
	data := make([]byte, len(submitRsInstructionDiscriminator))
	copy(data, submitRsInstructionDiscriminator)

	return solana.NewInstruction(
		PROGRAM_ID,
		data,
		solana.NewAccountMeta(accounts.User, true),
		solana.NewAccountMeta(accounts.Account, false),
		solana.NewAccountMeta(accounts.Mint, true),
		solana.NewAccountMeta(accounts.Collection, false),
		solana.NewReadonlyAccountMeta(accounts.Authority, false),
		solana.NewReadonlyAccountMeta(MPL_CORE_PROGRAM_ID, false),
		solana.NewReadonlyAccountMeta(SYSTEM_PROGRAM_ID, false),
	)
}

// NewEnrollInstruction derives the enrollment record and collection authority
// addresses for user and builds the SubmitRs instruction.
func NewEnrollInstruction(user, mint, collection ed25519.PublicKey) (solana.Instruction, error) {
	account, _, err := GetPrereqAddress(&GetPrereqAddressArgs{User: user})
	if err != nil {
		return solana.Instruction{}, errors.Wrap(err, "failed to derive prereq address")
	}

	authority, _, err := GetCollectionAuthorityAddress(&GetCollectionAuthorityAddressArgs{Collection: collection})
	if err != nil {
		return solana.Instruction{}, errors.Wrap(err, "failed to derive collection authority")
	}

	return NewSubmitRsInstruction(&SubmitRsInstructionAccounts{
		User:       user,
		Account:    account,
		Mint:       mint,
		Collection: collection,
		Authority:  authority,
	}), nil
}

// SubmitRsInstructionFromCompiled recovers the accounts of a compiled SubmitRs
// instruction.
func SubmitRsInstructionFromCompiled(m solana.Message, index int) (*SubmitRsInstructionAccounts, error) {
	if index < 0 || index >= len(m.Instructions) {
		return nil, errors.Errorf("instruction doesn't exist at %d", index)
	}

	i := m.Instructions[index]
	if int(i.ProgramIndex) >= len(m.Accounts) || !bytes.Equal(m.Accounts[i.ProgramIndex], PROGRAM_ID) {
		return nil, ErrInvalidProgram
	}
	if !bytes.Equal(i.Data, submitRsInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}
	if len(i.Accounts) != SubmitRsInstructionAccountsCount {
		return nil, errors.Errorf("invalid number of accounts: %d", len(i.Accounts))
	}
	for _, account := range i.Accounts {
		if int(account) >= len(m.Accounts) {
			return nil, errors.Errorf("account index %d out of range", account)
		}
	}

	return &SubmitRsInstructionAccounts{
		User:       m.Accounts[i.Accounts[0]],
		Account:    m.Accounts[i.Accounts[1]],
		Mint:       m.Accounts[i.Accounts[2]],
		Collection: m.Accounts[i.Accounts[3]],
		Authority:  m.Accounts[i.Accounts[4]],
	}, nil
}
