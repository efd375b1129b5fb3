package main

import (
	"crypto/ed25519"
	"fmt"
	"io"
	"strconv"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/wallet-toolkit/pkg/keypair"
	"github.com/code-payments/wallet-toolkit/pkg/solana"
	"github.com/code-payments/wallet-toolkit/pkg/solana/prereq"
	"github.com/code-payments/wallet-toolkit/pkg/transfer"
)

const (
	lamportsPerSol = 1_000_000_000

	defaultAirdropLamports = 2 * lamportsPerSol
)

func (a *app) balanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "balance [address]",
		Short: "Print the balance, in lamports, of an address or the configured wallet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := a.addressOrWallet(args)
			if err != nil {
				return err
			}

			balance, err := a.newClient(a.config).GetBalance(account)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", balance)
			return nil
		},
	}
}

func (a *app) airdropCommand() *cobra.Command {
	var lamports uint64

	cmd := &cobra.Command{
		Use:   "airdrop [address]",
		Short: "Request test lamports on devnet, testnet or a local validator",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := a.addressOrWallet(args)
			if err != nil {
				return err
			}

			s, err := a.service()
			if err != nil {
				return err
			}

			result, err := s.Airdrop(account, lamports)
			if err != nil {
				return errors.Wrap(err, "airdrop failed")
			}

			a.printSuccess(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().Uint64Var(&lamports, "lamports", defaultAirdropLamports, "Amount to request")
	return cmd
}

// transferFlags are the planner options shared by transfer and sweep.
type transferFlags struct {
	memo             string
	computeUnitLimit uint32
	priorityFee      uint64
}

func (f *transferFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.memo, "memo", "", "Attach a memo to the transfer")
	cmd.Flags().Uint32Var(&f.computeUnitLimit, "compute-unit-limit", 0, "Cap the compute units the transaction may use")
	cmd.Flags().Uint64Var(&f.priorityFee, "priority-fee", 0, "Priority fee, in micro-lamports per compute unit")
}

func (f *transferFlags) options() []transfer.Option {
	var opts []transfer.Option
	if f.memo != "" {
		opts = append(opts, transfer.WithMemo(f.memo))
	}
	if f.computeUnitLimit > 0 {
		opts = append(opts, transfer.WithComputeUnitLimit(f.computeUnitLimit))
	}
	if f.priorityFee > 0 {
		opts = append(opts, transfer.WithComputeUnitPrice(f.priorityFee))
	}
	return opts
}

func (a *app) transferCommand() *cobra.Command {
	var flags transferFlags

	cmd := &cobra.Command{
		Use:   "transfer <destination> <lamports>",
		Short: "Transfer a fixed amount from the configured wallet",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			destination, err := parsePublicKey(args[0])
			if err != nil {
				return err
			}

			lamports, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return errors.Wrapf(err, "invalid amount %q", args[1])
			}

			k, err := a.wallet()
			if err != nil {
				return err
			}

			s, err := a.service()
			if err != nil {
				return err
			}

			result, err := s.Send(k, destination, lamports, flags.options()...)
			if err != nil {
				return describeTransferError(err)
			}

			a.printSuccess(cmd.OutOrStdout(), result)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func (a *app) sweepCommand() *cobra.Command {
	var flags transferFlags

	cmd := &cobra.Command{
		Use:   "sweep <destination>",
		Short: "Transfer the entire balance of the configured wallet, less the fee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			destination, err := parsePublicKey(args[0])
			if err != nil {
				return err
			}

			k, err := a.wallet()
			if err != nil {
				return err
			}

			s, err := a.service()
			if err != nil {
				return err
			}

			result, err := s.SweepAll(k, destination, flags.options()...)
			if err != nil {
				return describeTransferError(err)
			}

			a.printSuccess(cmd.OutOrStdout(), result)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func (a *app) enrollCommand() *cobra.Command {
	var (
		collection string
		dryRun     bool
	)

	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Submit the prerequisite enrollment and mint its NFT",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			collectionKey, err := parsePublicKey(collection)
			if err != nil {
				return err
			}

			user, err := a.wallet()
			if err != nil {
				return err
			}

			mint, err := keypair.Generate()
			if err != nil {
				return err
			}

			instruction, err := prereq.NewEnrollInstruction(user.PublicKey(), mint.PublicKey(), collectionKey)
			if err != nil {
				return err
			}

			s, err := a.service()
			if err != nil {
				return err
			}

			signers := []*keypair.Keypair{mint}

			if dryRun {
				txn, err := s.Prepare(user, signers, instruction)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), txn.String())
				return nil
			}

			result, err := s.Execute(user, signers, instruction)
			if err != nil {
				return errors.Wrap(err, "enrollment failed")
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Mint: %s\n", mint.Address())
			a.printSuccess(cmd.OutOrStdout(), result)
			return nil
		},
	}

	cmd.Flags().StringVar(&collection, "collection", base58.Encode(prereq.DEFAULT_COLLECTION), "Collection the enrollment NFT is minted into")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the signed transaction instead of submitting it")
	return cmd
}

func (a *app) addressOrWallet(args []string) (ed25519.PublicKey, error) {
	if len(args) > 0 {
		return parsePublicKey(args[0])
	}

	k, err := a.wallet()
	if err != nil {
		return nil, err
	}
	return k.PublicKey(), nil
}

func (a *app) printSuccess(out io.Writer, result *transfer.Result) {
	if result.Amount > 0 {
		fmt.Fprintf(out, "Amount: %d lamports\n", result.Amount)
	}
	if result.Fee > 0 {
		fmt.Fprintf(out, "Fee: %d lamports\n", result.Fee)
	}
	fmt.Fprintf(out, "Success! Check out your TX here:\n%s\n", a.explorerURL(result.Signature))
}

func describeTransferError(err error) error {
	var balanceErr *transfer.InsufficientBalanceError
	if errors.As(err, &balanceErr) {
		return err
	}

	var txErr *solana.TransactionError
	if errors.As(err, &txErr) && txErr.IsInsufficientFunds() {
		return errors.Wrap(err, "insufficient funds")
	}

	return errors.Wrap(err, "transfer failed")
}
