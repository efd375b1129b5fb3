package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/code-payments/wallet-toolkit/pkg/solana"
)

func (a *app) pdaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "pda <program-id> [seed...]",
		Short: "Derive a program address",
		Long: `Derive a program address and bump from a program id and seeds.

Seeds are UTF-8 strings by default. Prefix a seed with "key:" to use the
bytes of a base58 address, or "hex:" for raw hex bytes.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			program, err := parsePublicKey(args[0])
			if err != nil {
				return err
			}

			seeds := make([][]byte, len(args)-1)
			for i, arg := range args[1:] {
				if seeds[i], err = parseSeed(arg); err != nil {
					return err
				}
			}

			address, bump, err := solana.FindProgramAddressAndBump(program, seeds...)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", base58.Encode(address), bump)
			return nil
		},
	}
}

func parseSeed(value string) ([]byte, error) {
	switch {
	case strings.HasPrefix(value, "key:"):
		return parsePublicKey(strings.TrimPrefix(value, "key:"))
	case strings.HasPrefix(value, "hex:"):
		raw, err := hex.DecodeString(strings.TrimPrefix(value, "hex:"))
		if err != nil {
			return nil, errors.Wrapf(err, "invalid hex seed %q", value)
		}
		return raw, nil
	default:
		return []byte(value), nil
	}
}
