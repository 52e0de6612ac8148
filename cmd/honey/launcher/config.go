// This file maps the CLI context, the environment and an optional YAML file
// onto the Config struct.

package launcher

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/rony4d/go-honey-hive/honey"
	"github.com/rony4d/go-honey-hive/integration"
	"github.com/rony4d/go-honey-hive/inter"
)

// Environment variables read after the config file. A .env file in the
// working directory is loaded into the environment first.
const (
	EnvPrivateKey = "HONEY_PRIVATE_KEY"
	EnvRPCURL     = "HONEY_RPC_URL"
	EnvContract   = "HONEY_CONTRACT"
	EnvAccount    = "HONEY_ACCOUNT"
)

// Config aggregates every setting the launcher needs.
type Config struct {
	Preset           string        `yaml:"preset"`
	Sim              bool          `yaml:"sim"`
	SkipCatalogCheck bool          `yaml:"skip_catalog_check"`
	SimWallet        SimConfig     `yaml:"sim_wallet"`
	Chain            ChainConfig   `yaml:"chain"`
	Wallet           WalletConfig  `yaml:"wallet"`
	Logging          LoggingConfig `yaml:"logging"`
	Metrics          MetricsConfig `yaml:"metrics"`
}

type ChainConfig struct {
	Network         string        `yaml:"network" validate:"required,oneof=abstract-testnet testnet local sim"`
	RPCURL          string        `yaml:"rpc_url" validate:"required,url"`
	ContractAddress string        `yaml:"contract" validate:"omitempty,eth_addr"`
	TokenAddress    string        `yaml:"token" validate:"omitempty,eth_addr"`
	ChainID         uint64        `yaml:"chain_id"`
	RefreshInterval time.Duration `yaml:"refresh_interval" validate:"gt=0"`
	IndexDelay      time.Duration `yaml:"index_delay" validate:"gte=0"`
	CallTimeout     time.Duration `yaml:"call_timeout" validate:"gte=0"`
}

// SimConfig holds the starting balances of the --sim wallet, in decimal
// tokens.
type SimConfig struct {
	Eth   string `yaml:"eth"`
	Honey string `yaml:"honey"`
}

type WalletConfig struct {
	Address    string `yaml:"address" validate:"omitempty,eth_addr"`
	PrivateKey string `yaml:"private_key" validate:"omitempty,hexadecimal"`
	Referrer   string `yaml:"referrer" validate:"omitempty,eth_addr"`
}

type LoggingConfig struct {
	Verbosity int    `yaml:"verbosity" validate:"gte=0,lte=5"`
	Format    string `yaml:"format" validate:"oneof=text json"`
	Color     bool   `yaml:"color"`
	SentryDSN string `yaml:"sentry_dsn" validate:"omitempty,url"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr" validate:"required_if=Enabled true"`
	Port    int    `yaml:"port" validate:"gte=0,lte=65535"`
}

// Rules returns the network rules the config selects.
func (c Config) Rules() (honey.Rules, error) {
	rules, ok := honey.RulesByName(c.Chain.Network)
	if !ok {
		return honey.Rules{}, fmt.Errorf("unknown network %q", c.Chain.Network)
	}
	return rules, nil
}

// balances parses the starting ETH and HONEY into wei.
func (c SimConfig) balances() (eth, honeyWei *big.Int, err error) {
	if eth, err = inter.ParseAmount(c.Eth); err != nil {
		return nil, nil, fmt.Errorf("sim wallet eth: %w", err)
	}
	if honeyWei, err = inter.ParseAmount(c.Honey); err != nil {
		return nil, nil, fmt.Errorf("sim wallet honey: %w", err)
	}
	return eth, honeyWei, nil
}

// -----------------------------------------------------------------------------
// Default config + builders
// -----------------------------------------------------------------------------

func defaultConfig() Config {
	def := DefaultConfig()
	return Config{
		Preset: integration.DefaultPreset().Name,
		Chain: ChainConfig{
			Network:         def.Chain.Network,
			RPCURL:          def.Chain.RPCURL,
			ChainID:         def.Chain.ChainID,
			RefreshInterval: def.Chain.RefreshInterval,
			IndexDelay:      def.Chain.IndexDelay,
			CallTimeout:     def.Chain.CallTimeout,
		},
		SimWallet: SimConfig{
			Eth:   def.Sim.Eth,
			Honey: def.Sim.Honey,
		},
		Wallet: WalletConfig{
			Referrer: def.Wallet.Referrer,
		},
		Logging: LoggingConfig{
			Verbosity: def.Logging.Verbosity,
			Format:    def.Logging.Format,
			Color:     def.Logging.Color,
		},
		Metrics: MetricsConfig{
			Enabled: def.Metrics.Enable,
			Addr:    def.Metrics.HTTPAddr,
			Port:    def.Metrics.HTTPPort,
		},
	}
}

// MakeAllConfigs merges, in order: defaults, the --preset profile, the
// --config YAML file, .env and environment variables, and CLI flags. The
// result is validated before it is returned.

func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if ctx.GlobalIsSet("preset") {
		if err := applyPreset(ctx.GlobalString("preset"), &cfg); err != nil {
			return Config{}, err
		}
	}

	if file := ctx.GlobalString("config"); file != "" {
		if err := loadConfigFile(resolvePath(file), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	applyEnv(&cfg)
	applyCLIOverrides(ctx, &cfg)

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// -----------------------------------------------------------------------------
// Preset / config-file / environment / CLI wiring
// -----------------------------------------------------------------------------

func applyPreset(name string, cfg *Config) error {
	preset, err := integration.GetPresetByName(name)
	if err != nil {
		return err
	}
	current := integration.PresetConfig{
		Name:             cfg.Preset,
		Network:          cfg.Chain.Network,
		RefreshInterval:  cfg.Chain.RefreshInterval,
		IndexDelay:       cfg.Chain.IndexDelay,
		CallTimeout:      cfg.Chain.CallTimeout,
		EnableMetrics:    cfg.Metrics.Enabled,
		SkipCatalogCheck: cfg.SkipCatalogCheck,
		Sim:              cfg.Sim,
	}
	integration.ApplyPreset(&current, preset)

	cfg.Preset = current.Name
	cfg.Chain.Network = current.Network
	cfg.Chain.RefreshInterval = current.RefreshInterval
	cfg.Chain.IndexDelay = current.IndexDelay
	cfg.Chain.CallTimeout = current.CallTimeout
	cfg.Metrics.Enabled = current.EnableMetrics
	cfg.SkipCatalogCheck = current.SkipCatalogCheck
	cfg.Sim = current.Sim
	return nil
}

// loadConfigFile decodes YAML over cfg; keys absent from the file keep
// their current values.
func loadConfigFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	// A missing .env is the normal case.
	_ = godotenv.Load()

	if v := os.Getenv(EnvPrivateKey); v != "" {
		cfg.Wallet.PrivateKey = v
	}
	if v := os.Getenv(EnvRPCURL); v != "" {
		cfg.Chain.RPCURL = v
	}
	if v := os.Getenv(EnvContract); v != "" {
		cfg.Chain.ContractAddress = v
	}
	if v := os.Getenv(EnvAccount); v != "" {
		cfg.Wallet.Address = v
	}
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if ctx.GlobalIsSet("network") {
		cfg.Chain.Network = ctx.GlobalString("network")
	}
	if ctx.GlobalIsSet("rpc") {
		cfg.Chain.RPCURL = ctx.GlobalString("rpc")
	}
	if ctx.GlobalIsSet("contract") {
		cfg.Chain.ContractAddress = ctx.GlobalString("contract")
	}
	if ctx.GlobalIsSet("token") {
		cfg.Chain.TokenAddress = ctx.GlobalString("token")
	}
	if ctx.GlobalIsSet("chainid") {
		cfg.Chain.ChainID = ctx.GlobalUint64("chainid")
	}
	if ctx.GlobalIsSet("refresh") {
		cfg.Chain.RefreshInterval = ctx.GlobalDuration("refresh")
	}
	if ctx.GlobalIsSet("index.delay") {
		cfg.Chain.IndexDelay = ctx.GlobalDuration("index.delay")
	}
	if ctx.GlobalIsSet("rpc.timeout") {
		cfg.Chain.CallTimeout = ctx.GlobalDuration("rpc.timeout")
	}
	if ctx.GlobalBool("sim") {
		cfg.Sim = true
		cfg.Chain.Network = honey.SimNetRules().Name
	}
	if ctx.GlobalIsSet("sim.eth") {
		cfg.SimWallet.Eth = ctx.GlobalString("sim.eth")
	}
	if ctx.GlobalIsSet("sim.honey") {
		cfg.SimWallet.Honey = ctx.GlobalString("sim.honey")
	}
	if ctx.GlobalBool("skip-catalog-check") {
		cfg.SkipCatalogCheck = true
	}

	if ctx.GlobalIsSet("key") {
		cfg.Wallet.PrivateKey = ctx.GlobalString("key")
	}
	if ctx.GlobalIsSet("account") {
		cfg.Wallet.Address = ctx.GlobalString("account")
	}
	if ctx.GlobalIsSet("referrer") {
		cfg.Wallet.Referrer = ctx.GlobalString("referrer")
	}

	if ctx.GlobalIsSet("log.format") {
		cfg.Logging.Format = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.color") {
		cfg.Logging.Color = ctx.GlobalBool("log.color")
	}
	if ctx.GlobalIsSet("sentry.dsn") || ctx.GlobalString("sentry.dsn") != "" {
		cfg.Logging.SentryDSN = ctx.GlobalString("sentry.dsn")
	}

	if ctx.GlobalBool("metrics") {
		cfg.Metrics.Enabled = true
	}
	if ctx.GlobalIsSet("metrics.addr") {
		cfg.Metrics.Addr = ctx.GlobalString("metrics.addr")
	}
	if ctx.GlobalIsSet("metrics.port") {
		cfg.Metrics.Port = ctx.GlobalInt("metrics.port")
	}
}

var validate = validator.New()

// validateConfig checks the struct tags, then the rules tags cannot express.
func validateConfig(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q", e.Namespace(), e.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	rules, err := cfg.Rules()
	if err != nil {
		return err
	}
	if cfg.Sim {
		if _, _, err := cfg.SimWallet.balances(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}
	if !cfg.Sim && cfg.Chain.ContractAddress == "" && rules.Contract == (common.Address{}) {
		return fmt.Errorf("invalid config: network %q has no default contract, set --contract", rules.Name)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}

func GuessProjectRoot() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	dir := cwd
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return cwd // hit filesystem root without finding go.mod
		}
		dir = parent
	}
}
