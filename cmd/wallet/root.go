package main

import (
	"bufio"
	"crypto/ed25519"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/ybbus/jsonrpc"

	"github.com/code-payments/wallet-toolkit/pkg/keypair"
	"github.com/code-payments/wallet-toolkit/pkg/rate"
	"github.com/code-payments/wallet-toolkit/pkg/solana"
	"github.com/code-payments/wallet-toolkit/pkg/transfer"
)

// app carries state shared by every subcommand. Persistent flags are applied
// on top of the loaded config before any command runs.
type app struct {
	log    *logrus.Entry
	config Config

	flagConfig   string
	flagEnvFile  string
	flagURL      string
	flagKeypair  string
	flagLogLevel string

	newClient func(config Config) solana.Client
}

func newRootCommand() *cobra.Command {
	a := &app{
		log:       logrus.StandardLogger().WithField("type", "cmd/wallet"),
		newClient: newRPCClient,
	}

	root := &cobra.Command{
		Use:           "wallet",
		Short:         "Solana key and transaction toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := loadConfig(a.flagEnvFile, a.flagConfig)
			if err != nil {
				return err
			}

			if a.flagURL != "" {
				config.RPCEndpoint = a.flagURL
			}
			if a.flagKeypair != "" {
				config.WalletPath = a.flagKeypair
			}
			if a.flagLogLevel != "" {
				config.LogLevel = a.flagLogLevel
			}

			a.config = config
			configureLogger(config, cmd.ErrOrStderr())
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.flagConfig, "config", "", "Path to a YAML config file")
	root.PersistentFlags().StringVar(&a.flagEnvFile, "env-file", "", "Path to a .env file (default ./.env when present)")
	root.PersistentFlags().StringVarP(&a.flagURL, "url", "u", "", "RPC URL or cluster moniker: devnet, testnet, mainnet-beta, localhost")
	root.PersistentFlags().StringVarP(&a.flagKeypair, "keypair", "k", "", "Path to a wallet file (default ~/.config/solana/id.json)")
	root.PersistentFlags().StringVar(&a.flagLogLevel, "log-level", "", "Log level")

	root.AddCommand(
		a.keygenCommand(),
		a.base58ToWalletCommand(),
		a.walletToBase58Command(),
		a.mnemonicCommand(),
		a.addressCommand(),
		a.pdaCommand(),
		a.signCommand(),
		a.verifyCommand(),
		a.balanceCommand(),
		a.accountCommand(),
		a.rentCommand(),
		a.slotCommand(),
		a.airdropCommand(),
		a.transferCommand(),
		a.sweepCommand(),
		a.enrollCommand(),
	)

	return root
}

func newRPCClient(config Config) solana.Client {
	opts := &jsonrpc.RPCClientOpts{
		HTTPClient: &http.Client{Timeout: config.RPCTimeout},
	}

	if config.RPCRateLimit > 0 {
		return solana.NewRateLimited(string(config.Environment()), opts, rate.NewLocalLimiter(config.RPCRateLimit))
	}
	return solana.NewWithRPCOptions(string(config.Environment()), opts)
}

func (a *app) service() (*transfer.Service, error) {
	commitment, err := a.commitment()
	if err != nil {
		return nil, err
	}
	return transfer.NewService(a.newClient(a.config), a.config.Environment(), commitment), nil
}

func (a *app) commitment() (solana.Commitment, error) {
	return solana.CommitmentFromString(a.config.Commitment)
}

func (a *app) wallet() (*keypair.Keypair, error) {
	k, err := keypair.LoadFile(a.config.WalletPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load wallet")
	}
	return k, nil
}

func (a *app) explorerURL(sig solana.Signature) string {
	return solana.ExplorerURL(sig, a.config.Cluster())
}

// input returns the first argument, or a line read from stdin when there are
// no arguments.
func input(cmd *cobra.Command, args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	fmt.Fprintln(cmd.ErrOrStderr(), prompt)

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", errors.Wrap(err, "failed to read input")
	}
	return strings.TrimSpace(line), nil
}

func parsePublicKey(value string) (ed25519.PublicKey, error) {
	raw, err := base58.Decode(value)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid address %q", value)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, errors.Errorf("invalid address %q: expected %d bytes, got %d", value, ed25519.PublicKeySize, len(raw))
	}
	return raw, nil
}
