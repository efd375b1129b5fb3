package solana

import (
	"bytes"
	"crypto/ed25519"
	"crypto/sha256"
	"fmt"
	"sort"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

const (
	// MaxTransactionSize taken from: https://github.com/solana-labs/solana/blob/39b3ac6a8d29e14faa1de73d8b46d390ad41797b/sdk/src/packet.rs#L9-L13
	MaxTransactionSize = 1232
)

type Signature [ed25519.SignatureSize]byte
type Blockhash [sha256.Size]byte

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (b Blockhash) String() string {
	return base58.Encode(b[:])
}

// MissingSignerError is returned when a transaction requires a signature from
// an account whose private key was not provided.
type MissingSignerError struct {
	Address ed25519.PublicKey
}

func (e *MissingSignerError) Error() string {
	return fmt.Sprintf("missing signer: %s", base58.Encode(e.Address))
}

type Header struct {
	NumSignatures     byte
	NumReadonlySigned byte
	NumReadOnly       byte
}

// Message is the signed portion of a (legacy) transaction.
type Message struct {
	Header          Header
	Accounts        []ed25519.PublicKey
	RecentBlockhash Blockhash
	Instructions    []CompiledInstruction
}

type Transaction struct {
	Signatures []Signature
	Message    Message
}

// NewTransaction compiles the instructions into an unsigned transaction paid
// for by payer. The blockhash is left empty and must be set before signing.
func NewTransaction(payer ed25519.PublicKey, instructions ...Instruction) Transaction {
	accounts := []AccountMeta{
		{
			PublicKey:  payer,
			IsSigner:   true,
			IsWritable: true,
			isPayer:    true,
		},
	}

	// Extract all of the unique accounts from the instructions.
	for _, i := range instructions {
		accounts = append(accounts, AccountMeta{
			PublicKey: i.Program,
			isProgram: true,
		})
		accounts = append(accounts, i.Accounts...)
	}

	accounts = filterUnique(accounts)
	sort.Sort(accountMetaOrder(accounts))

	var m Message
	for _, account := range accounts {
		m.Accounts = append(m.Accounts, account.PublicKey)

		if account.IsSigner {
			m.Header.NumSignatures++

			if !account.IsWritable {
				m.Header.NumReadonlySigned++
			}
		} else if !account.IsWritable {
			m.Header.NumReadOnly++
		}
	}

	// Generate the compiled instruction, which uses indices instead
	// of raw account keys.
	for _, i := range instructions {
		c := CompiledInstruction{
			ProgramIndex: byte(indexOf(m.Accounts, i.Program)),
			Data:         i.Data,
		}

		for _, a := range i.Accounts {
			c.Accounts = append(c.Accounts, byte(indexOf(m.Accounts, a.PublicKey)))
		}

		m.Instructions = append(m.Instructions, c)
	}

	for i := range m.Accounts {
		if len(m.Accounts[i]) == 0 {
			m.Accounts[i] = make([]byte, ed25519.PublicKeySize)
		}
	}

	return Transaction{
		Signatures: make([]Signature, m.Header.NumSignatures),
		Message:    m,
	}
}

// NewSignedTransaction compiles the instructions, binds the transaction to
// the recent blockhash and signs it with every required signer.
//
// Every account marked as a signer, as well as the payer, must have its
// private key in signers, otherwise a *MissingSignerError naming the first
// absent account is returned. Keys that aren't required are ignored.
func NewSignedTransaction(payer ed25519.PublicKey, blockhash Blockhash, signers []ed25519.PrivateKey, instructions ...Instruction) (Transaction, error) {
	txn := NewTransaction(payer, instructions...)
	txn.SetBlockhash(blockhash)

	var required []ed25519.PrivateKey
	for _, account := range txn.RequiredSigners() {
		signer := findSigner(signers, account)
		if signer == nil {
			return Transaction{}, &MissingSignerError{Address: account}
		}
		required = append(required, signer)
	}

	if err := txn.Sign(required...); err != nil {
		return Transaction{}, err
	}
	return txn, nil
}

// RequiredSigners returns the accounts that must sign the transaction, in
// signature order. The payer is always first.
func (t *Transaction) RequiredSigners() []ed25519.PublicKey {
	n := int(t.Message.Header.NumSignatures)
	if n > len(t.Message.Accounts) {
		n = len(t.Message.Accounts)
	}
	return t.Message.Accounts[:n]
}

// SignatureFor returns the signature slot belonging to the account, if the
// account is a required signer.
func (t *Transaction) SignatureFor(account ed25519.PublicKey) (Signature, bool) {
	index := indexOf(t.RequiredSigners(), account)
	if index < 0 || index >= len(t.Signatures) {
		return Signature{}, false
	}
	return t.Signatures[index], true
}

// IsSigned reports whether every required signature slot has been filled.
func (t *Transaction) IsSigned() bool {
	if len(t.Signatures) != int(t.Message.Header.NumSignatures) {
		return false
	}
	for _, s := range t.Signatures {
		if s == (Signature{}) {
			return false
		}
	}
	return true
}

// Signature returns the payer signature, which also serves as the
// transaction id.
func (t *Transaction) Signature() []byte {
	return t.Signatures[0][:]
}

func (t *Transaction) String() string {
	var sb strings.Builder
	sb.WriteString("Signatures:\n")
	for i, s := range t.Signatures {
		sb.WriteString(fmt.Sprintf("  %d: %s\n", i, s))
	}
	sb.WriteString("Message:\n")
	sb.WriteString("  Header:\n")
	sb.WriteString(fmt.Sprintf("    NumSignatures: %d\n", t.Message.Header.NumSignatures))
	sb.WriteString(fmt.Sprintf("    NumReadOnly: %d\n", t.Message.Header.NumReadOnly))
	sb.WriteString(fmt.Sprintf("    NumReadOnlySigned: %d\n", t.Message.Header.NumReadonlySigned))
	sb.WriteString(fmt.Sprintf("  RecentBlockhash: %s\n", t.Message.RecentBlockhash))
	sb.WriteString("  Accounts:\n")
	for i, a := range t.Message.Accounts {
		sb.WriteString(fmt.Sprintf("    %d: %s\n", i, base58.Encode(a)))
	}
	sb.WriteString("  Instructions:\n")
	for i := range t.Message.Instructions {
		sb.WriteString(fmt.Sprintf("    %d:\n", i))
		sb.WriteString(fmt.Sprintf("      ProgramIndex: %d\n", t.Message.Instructions[i].ProgramIndex))
		sb.WriteString(fmt.Sprintf("      Accounts: %v\n", t.Message.Instructions[i].Accounts))
		sb.WriteString(fmt.Sprintf("      Data: %v\n", t.Message.Instructions[i].Data))
	}
	return sb.String()
}

func (t *Transaction) SetBlockhash(bh Blockhash) {
	t.Message.RecentBlockhash = bh
}

// Sign signs the message with each of the provided keys, placing each
// signature in the slot of its account. Every key must belong to a required
// signer.
func (t *Transaction) Sign(signers ...ed25519.PrivateKey) error {
	messageBytes := t.Message.Marshal()

	for _, s := range signers {
		pub := s.Public().(ed25519.PublicKey)
		index := indexOf(t.Message.Accounts, pub)
		if index < 0 {
			return errors.Errorf("signing account %s is not in the account list", base58.Encode(pub))
		}
		if index >= len(t.Signatures) {
			return errors.Errorf("signing account %s is not in the list of signers", base58.Encode(pub))
		}

		copy(t.Signatures[index][:], ed25519.Sign(s, messageBytes))
	}

	return nil
}

// VerifySignatures reports whether every required signer has a valid
// signature over the current message.
func (t *Transaction) VerifySignatures() bool {
	if len(t.Signatures) != int(t.Message.Header.NumSignatures) {
		return false
	}

	messageBytes := t.Message.Marshal()
	for i, account := range t.RequiredSigners() {
		if !Verify(account, messageBytes, t.Signatures[i][:]) {
			return false
		}
	}
	return true
}

func findSigner(signers []ed25519.PrivateKey, account ed25519.PublicKey) ed25519.PrivateKey {
	for _, s := range signers {
		if len(s) != ed25519.PrivateKeySize {
			continue
		}
		if bytes.Equal(s.Public().(ed25519.PublicKey), account) {
			return s
		}
	}
	return nil
}

func filterUnique(accounts []AccountMeta) []AccountMeta {
	filtered := make([]AccountMeta, 0, len(accounts))

	for i := range accounts {
		seen := false
		for j := range filtered {
			if !bytes.Equal(accounts[i].PublicKey, filtered[j].PublicKey) {
				continue
			}

			// Repeated accounts can only gain permissions.
			filtered[j].IsSigner = filtered[j].IsSigner || accounts[i].IsSigner
			filtered[j].IsWritable = filtered[j].IsWritable || accounts[i].IsWritable
			filtered[j].isPayer = filtered[j].isPayer || accounts[i].isPayer
			filtered[j].isProgram = filtered[j].isProgram || accounts[i].isProgram
			seen = true
			break
		}

		if !seen {
			filtered = append(filtered, accounts[i])
		}
	}

	return filtered
}

func indexOf(slice []ed25519.PublicKey, item ed25519.PublicKey) int {
	for i, val := range slice {
		if bytes.Equal(val, item) {
			return i
		}
	}

	return -1
}
