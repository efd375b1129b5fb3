package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/code-payments/wallet-toolkit/pkg/keypair"
	"github.com/code-payments/wallet-toolkit/pkg/solana"
)

// Config is the wallet configuration. The environment, including anything a
// .env file adds to it, takes precedence over the optional config file.
type Config struct {
	LogLevel string `mapstructure:"log_level"`

	// RPCEndpoint is an RPC URL or one of devnet, testnet, mainnet-beta and
	// localhost.
	RPCEndpoint string        `mapstructure:"rpc_endpoint"`
	RPCTimeout  time.Duration `mapstructure:"rpc_timeout"`
	Commitment  string        `mapstructure:"commitment"`

	// RPCRateLimit caps requests per second for each RPC method. Zero
	// disables the limit.
	RPCRateLimit float64 `mapstructure:"rpc_rate_limit"`

	WalletPath string `mapstructure:"wallet_path"`

	// ExplorerCluster overrides the cluster used in explorer links. When
	// empty, it's derived from the endpoint.
	ExplorerCluster string `mapstructure:"explorer_cluster"`
}

var defaultConfig = Config{
	LogLevel:    "warn",
	RPCEndpoint: "devnet",
	RPCTimeout:  30 * time.Second,
	Commitment:  "confirmed",
	WalletPath:  keypair.DefaultPath(),
}

var envBindings = map[string]string{
	"log_level":        "LOG_LEVEL",
	"rpc_endpoint":     "RPC_ENDPOINT",
	"rpc_timeout":      "RPC_TIMEOUT",
	"rpc_rate_limit":   "RPC_RATE_LIMIT",
	"commitment":       "COMMITMENT",
	"wallet_path":      "WALLET_PATH",
	"explorer_cluster": "EXPLORER_CLUSTER",
}

// loadConfig reads the configuration. envFile and configPath are optional;
// a missing default .env file is not an error.
func loadConfig(envFile, configPath string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, errors.Wrapf(err, "failed to load %s", envFile)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, errors.Wrap(err, "failed to load .env")
	}

	v := viper.New()
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrap(err, "failed to load config")
		}
	}

	config := defaultConfig
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal config")
	}

	if _, err := solana.CommitmentFromString(config.Commitment); err != nil {
		return Config{}, err
	}

	return config, nil
}

func (c Config) Environment() solana.Environment {
	return solana.ParseEnvironment(c.RPCEndpoint)
}

func (c Config) Cluster() string {
	if c.ExplorerCluster != "" {
		return c.ExplorerCluster
	}
	return c.Environment().Cluster()
}

func configureLogger(config Config, out io.Writer) {
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level, err := logrus.ParseLevel(strings.ToLower(config.LogLevel))
	if err != nil {
		logrus.StandardLogger().WithField("log_level", config.LogLevel).Warn("unknown log level, ignoring")
	} else {
		logrus.SetLevel(level)
	}

	logrus.SetOutput(out)
}
