package solana

import (
	"fmt"
	"net/url"
	"strings"
)

type Environment string

const (
	EnvironmentDev  Environment = "https://api.devnet.solana.com"
	EnvironmentTest Environment = "https://api.testnet.solana.com"
	EnvironmentProd Environment = "https://api.mainnet-beta.solana.com"

	// EnvironmentLocal is the default solana-test-validator endpoint.
	EnvironmentLocal Environment = "http://127.0.0.1:8899"
)

// ParseEnvironment resolves a cluster moniker to its public endpoint. Anything
// else is treated as an RPC URL.
func ParseEnvironment(value string) Environment {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "devnet", "d":
		return EnvironmentDev
	case "testnet", "t":
		return EnvironmentTest
	case "mainnet", "mainnet-beta", "m":
		return EnvironmentProd
	case "localhost", "localnet", "l":
		return EnvironmentLocal
	default:
		return Environment(strings.TrimSpace(value))
	}
}

// Cluster returns the explorer cluster name for the environment, or an empty
// string for mainnet and custom endpoints.
func (e Environment) Cluster() string {
	switch e {
	case EnvironmentDev:
		return "devnet"
	case EnvironmentTest:
		return "testnet"
	default:
		return ""
	}
}

// IsLocal reports whether the endpoint is served from the loopback interface.
func (e Environment) IsLocal() bool {
	u, err := url.Parse(string(e))
	if err != nil {
		return false
	}

	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	default:
		return false
	}
}

// SupportsAirdrop reports whether the environment hands out test lamports.
func (e Environment) SupportsAirdrop() bool {
	return e == EnvironmentDev || e == EnvironmentTest || e.IsLocal()
}

// ExplorerURL returns the Solana Explorer link for a transaction. An empty
// cluster links to mainnet.
func ExplorerURL(sig Signature, cluster string) string {
	u := fmt.Sprintf("https://explorer.solana.com/tx/%s", sig)
	if cluster == "" {
		return u
	}
	return u + "?cluster=" + url.QueryEscape(cluster)
}
