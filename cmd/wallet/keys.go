package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/code-payments/wallet-toolkit/pkg/keypair"
)

func (a *app) keygenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new wallet and print it as a wallet file byte array",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := keypair.Generate()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "You've generated a new Solana wallet: %s\n\n", k.Address())
			fmt.Fprintln(out, "To save your wallet, copy and paste the following into a JSON file:")
			fmt.Fprintln(out, k.FormatWallet())
			return nil
		},
	}
}

func (a *app) base58ToWalletCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "base58-to-wallet [private-key]",
		Short: "Convert a base58 private key to the wallet file byte array format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := input(cmd, args, "Input your private key as a base58 string:")
			if err != nil {
				return err
			}

			k, err := keypair.FromBase58(text)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), k.FormatWallet())
			return nil
		},
	}
}

func (a *app) walletToBase58Command() *cobra.Command {
	var seedOnly bool

	cmd := &cobra.Command{
		Use:   "wallet-to-base58 [byte-array]",
		Short: "Convert a wallet file byte array to a base58 private key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := input(cmd, args, "Input your private key as a JSON byte array (e.g. [12,34,...]):")
			if err != nil {
				return err
			}

			k, err := keypair.ParseByteArray(text)
			if err != nil {
				return err
			}

			if seedOnly {
				fmt.Fprintln(cmd.OutOrStdout(), k.ToBase58())
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), k.ToWalletBase58())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&seedOnly, "seed", false, "Print only the 32-byte seed")
	return cmd
}

func (a *app) mnemonicCommand() *cobra.Command {
	var (
		phrase     string
		passphrase string
	)

	cmd := &cobra.Command{
		Use:   "mnemonic",
		Short: "Generate a BIP-39 phrase, or recover the wallet for an existing one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if phrase == "" {
				generated, err := keypair.NewMnemonic()
				if err != nil {
					return err
				}
				phrase = generated
				fmt.Fprintf(out, "Mnemonic: %s\n", phrase)
			}

			k, err := keypair.FromMnemonic(phrase, passphrase)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Address: %s\n", k.Address())
			fmt.Fprintf(out, "Wallet: %s\n", k.FormatWallet())
			return nil
		},
	}

	cmd.Flags().StringVar(&phrase, "phrase", "", "Existing phrase to recover")
	cmd.Flags().StringVar(&passphrase, "passphrase", "", "Optional BIP-39 passphrase")
	return cmd
}

func (a *app) addressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the address of the configured wallet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := a.wallet()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), k.Address())
			return nil
		},
	}
}
