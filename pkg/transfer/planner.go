package transfer

import (
	"bytes"
	"crypto/ed25519"
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/code-payments/wallet-toolkit/pkg/keypair"
	"github.com/code-payments/wallet-toolkit/pkg/solana"
	"github.com/code-payments/wallet-toolkit/pkg/solana/computebudget"
	"github.com/code-payments/wallet-toolkit/pkg/solana/memo"
	"github.com/code-payments/wallet-toolkit/pkg/solana/system"
)

var (
	// ErrMessageShapeMismatch indicates the committed message no longer has
	// the layout the fee was estimated for, so the estimate can't be trusted.
	ErrMessageShapeMismatch = errors.New("committed message does not match the estimated message")

	ErrZeroAmount = errors.New("transfer amount must be positive")
)

// FeeEstimator prices a compiled message.
type FeeEstimator interface {
	GetFeeForMessage(m solana.Message) (uint64, error)
}

// InsufficientBalanceError is returned when the balance can't cover the fee,
// or the fee plus the requested amount.
type InsufficientBalanceError struct {
	Balance uint64
	Fee     uint64
	Amount  uint64
}

func (e *InsufficientBalanceError) Error() string {
	if e.Amount == 0 {
		return fmt.Sprintf("insufficient balance: %d lamports cannot cover a fee of %d", e.Balance, e.Fee)
	}
	return fmt.Sprintf("insufficient balance: %d lamports cannot cover %d plus a fee of %d", e.Balance, e.Amount, e.Fee)
}

// Option adds instructions around the transfer. Whatever they cost is part
// of the estimated fee.
type Option func(*options)

type options struct {
	memo             string
	computeUnitLimit uint32
	computeUnitPrice uint64
}

// WithMemo appends a memo instruction after the transfer.
func WithMemo(text string) Option {
	return func(o *options) {
		o.memo = text
	}
}

// WithComputeUnitLimit caps the compute units the transaction may use.
func WithComputeUnitLimit(units uint32) Option {
	return func(o *options) {
		o.computeUnitLimit = units
	}
}

// WithComputeUnitPrice sets a priority fee, in micro-lamports per compute
// unit.
func WithComputeUnitPrice(microLamports uint64) Option {
	return func(o *options) {
		o.computeUnitPrice = microLamports
	}
}

func applyOptions(opts []Option) (options, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.memo != "" {
		if err := memo.Validate(o.memo); err != nil {
			return o, err
		}
	}
	return o, nil
}

func (o options) instructions(from, to ed25519.PublicKey, lamports uint64) []solana.Instruction {
	var instructions []solana.Instruction
	if o.computeUnitLimit > 0 {
		instructions = append(instructions, computebudget.SetComputeUnitLimit(o.computeUnitLimit))
	}
	if o.computeUnitPrice > 0 {
		instructions = append(instructions, computebudget.SetComputeUnitPrice(o.computeUnitPrice))
	}

	instructions = append(instructions, system.Transfer(from, to, lamports))

	if o.memo != "" {
		instructions = append(instructions, memo.Instruction(o.memo))
	}
	return instructions
}

func (o options) transferIndex() int {
	var index int
	if o.computeUnitLimit > 0 {
		index++
	}
	if o.computeUnitPrice > 0 {
		index++
	}
	return index
}

// Plan is a signed transfer ready for submission.
type Plan struct {
	Transaction solana.Transaction
	Balance     uint64
	Amount      uint64
	Fee         uint64

	// TransferIndex is the position of the transfer instruction in the
	// transaction's message.
	TransferIndex int
}

// PlanSweep builds a transfer of the entire balance of sender to destination,
// less the fee for the transfer itself.
//
// The fee is estimated on a draft message that moves the full balance, then
// the transaction is rebuilt for balance - fee and signed. Only the amount
// changes between the two, so both messages must have the same shape.
func PlanSweep(estimator FeeEstimator, sender *keypair.Keypair, destination ed25519.PublicKey, balance uint64, bh solana.Blockhash, opts ...Option) (*Plan, error) {
	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	fee, err := estimate(estimator, o, sender.PublicKey(), destination, balance, bh)
	if err != nil {
		return nil, err
	}

	if fee >= balance {
		return nil, &InsufficientBalanceError{Balance: balance, Fee: fee}
	}

	return commit(o, sender, destination, balance, balance-fee, fee, balance, bh)
}

// PlanSend builds a transfer of a fixed amount, checking that balance covers
// both the amount and the fee.
func PlanSend(estimator FeeEstimator, sender *keypair.Keypair, destination ed25519.PublicKey, amount, balance uint64, bh solana.Blockhash, opts ...Option) (*Plan, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}

	o, err := applyOptions(opts)
	if err != nil {
		return nil, err
	}

	fee, err := estimate(estimator, o, sender.PublicKey(), destination, amount, bh)
	if err != nil {
		return nil, err
	}

	if fee > math.MaxUint64-amount || amount+fee > balance {
		return nil, &InsufficientBalanceError{Balance: balance, Fee: fee, Amount: amount}
	}

	return commit(o, sender, destination, amount, amount, fee, balance, bh)
}

func estimate(estimator FeeEstimator, o options, from, to ed25519.PublicKey, lamports uint64, bh solana.Blockhash) (uint64, error) {
	draft := solana.NewTransaction(from, o.instructions(from, to, lamports)...)
	draft.SetBlockhash(bh)

	fee, err := estimator.GetFeeForMessage(draft.Message)
	if err != nil {
		return 0, errors.Wrap(err, "failed to estimate fee")
	}
	return fee, nil
}

// commit signs the transfer of amount and checks it against a rebuilt draft
// of draftAmount, the message the fee was quoted for.
func commit(o options, sender *keypair.Keypair, to ed25519.PublicKey, draftAmount, amount, fee, balance uint64, bh solana.Blockhash) (*Plan, error) {
	from := sender.PublicKey()

	draft := solana.NewTransaction(from, o.instructions(from, to, draftAmount)...)
	draft.SetBlockhash(bh)

	txn, err := solana.NewSignedTransaction(
		from,
		bh,
		[]ed25519.PrivateKey{sender.PrivateKey()},
		o.instructions(from, to, amount)...,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign transfer")
	}

	if !SameShape(draft.Message, txn.Message) {
		return nil, ErrMessageShapeMismatch
	}

	return &Plan{
		Transaction:   txn,
		Balance:       balance,
		Amount:        amount,
		Fee:           fee,
		TransferIndex: o.transferIndex(),
	}, nil
}

// SameShape reports whether two messages have the same header, account keys,
// blockhash and instruction layout. Instruction data may differ in content
// but not in length.
func SameShape(a, b solana.Message) bool {
	if a.Header != b.Header || a.RecentBlockhash != b.RecentBlockhash {
		return false
	}

	if len(a.Accounts) != len(b.Accounts) {
		return false
	}
	for i := range a.Accounts {
		if !bytes.Equal(a.Accounts[i], b.Accounts[i]) {
			return false
		}
	}

	if len(a.Instructions) != len(b.Instructions) {
		return false
	}
	for i := range a.Instructions {
		x, y := a.Instructions[i], b.Instructions[i]
		if x.ProgramIndex != y.ProgramIndex || len(x.Data) != len(y.Data) {
			return false
		}
		if !bytes.Equal(x.Accounts, y.Accounts) {
			return false
		}
	}

	return true
}
