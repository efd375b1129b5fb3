package transfer

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/wallet-toolkit/pkg/keypair"
	"github.com/code-payments/wallet-toolkit/pkg/solana"
)

var ErrAirdropUnsupported = errors.New("airdrops are only available on devnet, testnet and local validators")

// RPC is the subset of solana.Client the service depends on.
type RPC interface {
	FeeEstimator
	GetBalance(account ed25519.PublicKey) (uint64, error)
	GetLatestBlockhash() (solana.Blockhash, error)
	SendAndConfirmTransaction(txn solana.Transaction, commitment solana.Commitment) (solana.Signature, error)
	RequestAirdrop(account ed25519.PublicKey, lamports uint64, commitment solana.Commitment) (solana.Signature, error)
}

// Result describes a submitted transaction.
type Result struct {
	Signature solana.Signature
	Amount    uint64
	Fee       uint64
}

type Service struct {
	log        *logrus.Entry
	rpc        RPC
	env        solana.Environment
	commitment solana.Commitment
}

func NewService(rpc RPC, env solana.Environment, commitment solana.Commitment) *Service {
	return &Service{
		log:        logrus.StandardLogger().WithField("type", "transfer/service"),
		rpc:        rpc,
		env:        env,
		commitment: commitment,
	}
}

// SweepAll moves the entire balance of from to destination, leaving exactly
// enough behind to pay for the transfer.
func (s *Service) SweepAll(from *keypair.Keypair, destination ed25519.PublicKey, opts ...Option) (*Result, error) {
	log := s.log.WithFields(logrus.Fields{
		"method":      "SweepAll",
		"source":      from.Address(),
		"destination": base58.Encode(destination),
	})

	balance, err := s.rpc.GetBalance(from.PublicKey())
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	bh, err := s.rpc.GetLatestBlockhash()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get recent blockhash")
	}

	plan, err := PlanSweep(s.rpc, from, destination, balance, bh, opts...)
	if err != nil {
		log.WithError(err).WithField("balance", balance).Debug("unable to plan sweep")
		return nil, err
	}

	return s.submit(log, plan)
}

// Send transfers a fixed number of lamports from to destination.
func (s *Service) Send(from *keypair.Keypair, destination ed25519.PublicKey, lamports uint64, opts ...Option) (*Result, error) {
	log := s.log.WithFields(logrus.Fields{
		"method":      "Send",
		"source":      from.Address(),
		"destination": base58.Encode(destination),
		"lamports":    lamports,
	})

	balance, err := s.rpc.GetBalance(from.PublicKey())
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}

	bh, err := s.rpc.GetLatestBlockhash()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get recent blockhash")
	}

	plan, err := PlanSend(s.rpc, from, destination, lamports, balance, bh, opts...)
	if err != nil {
		log.WithError(err).WithField("balance", balance).Debug("unable to plan transfer")
		return nil, err
	}

	return s.submit(log, plan)
}

// Airdrop requests test lamports for account. It returns once the node has
// accepted the request, without waiting for confirmation.
func (s *Service) Airdrop(account ed25519.PublicKey, lamports uint64) (*Result, error) {
	if !s.env.SupportsAirdrop() {
		return nil, ErrAirdropUnsupported
	}

	log := s.log.WithFields(logrus.Fields{
		"method":   "Airdrop",
		"account":  base58.Encode(account),
		"lamports": lamports,
	})

	sig, err := s.rpc.RequestAirdrop(account, lamports, s.commitment)
	if err != nil {
		log.WithError(err).Warn("airdrop failed")
		return nil, errors.Wrap(err, "failed to request airdrop")
	}

	log.WithField("signature", sig.String()).Debug("airdrop requested")
	return &Result{Signature: sig, Amount: lamports}, nil
}

// Prepare signs the instructions with a fresh blockhash. The payer signs
// first; signers supplies any other required keys.
func (s *Service) Prepare(payer *keypair.Keypair, signers []*keypair.Keypair, instructions ...solana.Instruction) (solana.Transaction, error) {
	bh, err := s.rpc.GetLatestBlockhash()
	if err != nil {
		return solana.Transaction{}, errors.Wrap(err, "failed to get recent blockhash")
	}

	keys := []ed25519.PrivateKey{payer.PrivateKey()}
	for _, signer := range signers {
		keys = append(keys, signer.PrivateKey())
	}

	return solana.NewSignedTransaction(payer.PublicKey(), bh, keys, instructions...)
}

// Execute prepares and submits the instructions, returning once the
// configured commitment is reached.
func (s *Service) Execute(payer *keypair.Keypair, signers []*keypair.Keypair, instructions ...solana.Instruction) (*Result, error) {
	log := s.log.WithFields(logrus.Fields{
		"method": "Execute",
		"payer":  payer.Address(),
	})

	txn, err := s.Prepare(payer, signers, instructions...)
	if err != nil {
		return nil, err
	}

	sig, err := s.rpc.SendAndConfirmTransaction(txn, s.commitment)
	if err != nil {
		log.WithError(err).Warn("transaction failed")
		return nil, errors.Wrap(err, "failed to submit transaction")
	}

	log.WithField("signature", sig.String()).Debug("transaction confirmed")
	return &Result{Signature: sig}, nil
}

func (s *Service) submit(log *logrus.Entry, plan *Plan) (*Result, error) {
	log = log.WithFields(logrus.Fields{
		"amount": plan.Amount,
		"fee":    plan.Fee,
	})

	sig, err := s.rpc.SendAndConfirmTransaction(plan.Transaction, s.commitment)
	if err != nil {
		log.WithError(err).Warn("transfer failed")
		return nil, errors.Wrap(err, "failed to submit transfer")
	}

	log.WithField("signature", sig.String()).Debug("transfer confirmed")
	return &Result{
		Signature: sig,
		Amount:    plan.Amount,
		Fee:       plan.Fee,
	}, nil
}
