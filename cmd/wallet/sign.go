package main

import (
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/wallet-toolkit/pkg/solana"
)

const defaultVerifyMessage = "I verify my Solana Keypair!"

func (a *app) signCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sign [message]",
		Short: "Sign a message with the configured wallet",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := a.wallet()
			if err != nil {
				return err
			}

			message := defaultVerifyMessage
			if len(args) > 0 {
				message = args[0]
			}

			sig := k.Sign([]byte(message))
			fmt.Fprintln(cmd.OutOrStdout(), base58.Encode(sig))

			if !solana.Verify(k.PublicKey(), []byte(message), sig) {
				return errors.New("signature failed to verify")
			}
			return nil
		},
	}
}

func (a *app) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <address> <message> <signature>",
		Short: "Verify a base58 signature of a message",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := parsePublicKey(args[0])
			if err != nil {
				return err
			}

			sig, err := base58.Decode(args[2])
			if err != nil {
				return errors.Wrap(err, "invalid signature")
			}

			if solana.Verify(pub, []byte(args[1]), sig) {
				fmt.Fprintln(cmd.OutOrStdout(), "Signature verified")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Verification failed")
			return errors.New("signature does not match")
		},
	}
}
