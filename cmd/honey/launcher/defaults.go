package launcher

import (
	"time"

	"github.com/rony4d/go-honey-hive/honey"
)

// Defaults bundles the baseline configuration values the launcher uses
// before the preset, the config file, the environment and the flags
// override them.

type Defaults struct {
	Chain   ChainDefaults
	Wallet  WalletDefaults
	Sim     SimDefaults
	Metrics MetricsDefaults
	Logging LoggingDefaults
}

// ChainDefaults selects the network and paces the refresh loop.

type ChainDefaults struct {
	Network         string        //	honey.RulesByName key; picks the contract address and economy constants.
	RPCURL          string        //	JSON-RPC endpoint. A ws:// URL lets the syncer follow new heads instead of only polling.
	ChainID         uint64        //	Chain id for signing; 0 takes the network rules' id.
	RefreshInterval time.Duration //	Period of the snapshot refresh loop.
	IndexDelay      time.Duration //	Pause between a confirmed action and the refresh that shows its effect; public nodes index with a short lag.
	CallTimeout     time.Duration //	Upper bound of one JSON-RPC call.
}

// WalletDefaults identifies the player.
type WalletDefaults struct {
	Referrer string //	Address passed to initialize(); zero means no referrer.
}

// SimDefaults funds the --sim wallet.
type SimDefaults struct {
	Eth   string //	Decimal ETH, enough for several initialize fees.
	Honey string //	Decimal HONEY to spend on bees and upgrades.
}

type MetricsDefaults struct {
	Enable   bool   //	Toggle for the metrics server; when true Prometheus metrics are served at /metrics.
	HTTPAddr string //	Interface the metrics server binds to (127.0.0.1 keeps it local).
	HTTPPort int    //	TCP port of the metrics server.
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    //	Log level numeric (0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace).
	Format    string //	Log output format (text vs json).
	Color     bool   //	Whether to use ANSI color codes in logs (helpful on terminals, best disabled when piping to files).
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	return Defaults{
		Chain: ChainDefaults{
			Network:         honey.AbstractTestNetRules().Name,
			RPCURL:          "https://api.testnet.abs.xyz",
			ChainID:         0,
			RefreshInterval: 3 * time.Second,
			IndexDelay:      time.Second,
			CallTimeout:     30 * time.Second,
		},
		Wallet: WalletDefaults{},
		Sim: SimDefaults{
			Eth:   "1",
			Honey: "500",
		},
		Metrics: MetricsDefaults{
			Enable:   false,
			HTTPAddr: "127.0.0.1",
			HTTPPort: 6060,
		},
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     true,
		},
	}
}
