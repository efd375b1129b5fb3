package main

import (
	"fmt"
	"strconv"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/wallet-toolkit/pkg/solana"
)

func (a *app) accountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "account [address]",
		Short: "Print the owner, balance and data size of an account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			account, err := a.addressOrWallet(args)
			if err != nil {
				return err
			}

			commitment, err := a.commitment()
			if err != nil {
				return err
			}

			info, err := a.newClient(a.config).GetAccountInfo(account, commitment)
			if err == solana.ErrNoAccountInfo {
				return errors.Errorf("account %s not found", base58.Encode(account))
			} else if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Address: %s\n", base58.Encode(account))
			fmt.Fprintf(out, "Owner: %s\n", base58.Encode(info.Owner))
			fmt.Fprintf(out, "Lamports: %d\n", info.Lamports)
			fmt.Fprintf(out, "Executable: %t\n", info.Executable)
			fmt.Fprintf(out, "Data: %d bytes\n", len(info.Data))
			return nil
		},
	}
}

func (a *app) rentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rent <data-size>",
		Short: "Print the minimum balance, in lamports, for an account of data-size bytes to be rent exempt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			size, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return errors.Wrapf(err, "invalid data size %q", args[0])
			}

			lamports, err := a.newClient(a.config).GetMinimumBalanceForRentExemption(size)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", lamports)
			return nil
		},
	}
}

func (a *app) slotCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slot",
		Short: "Print the current slot at the configured commitment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			commitment, err := a.commitment()
			if err != nil {
				return err
			}

			slot, err := a.newClient(a.config).GetSlot(commitment)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", slot)
			return nil
		},
	}
}
