package test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-honey-hive/cmd/honey/launcher"
	"github.com/rony4d/go-honey-hive/flags"
)

// runConfigFromArgs runs MakeAllConfigs inside a synthetic CLI app.
func runConfigFromArgs(t *testing.T, args []string) (launcher.Config, error) {

	t.Helper()
	for _, k := range []string{launcher.EnvPrivateKey, launcher.EnvRPCURL, launcher.EnvContract, launcher.EnvAccount, "HONEY_SENTRY_DSN"} {
		t.Setenv(k, "")
	}

	app := cli.NewApp()
	app.HideHelp = true
	app.HideVersion = true
	app.Flags = flags.AllGlobalFlags()

	var (
		got    launcher.Config
		cfgErr error
	)
	app.Action = func(c *cli.Context) error {
		got, cfgErr = launcher.MakeAllConfigs(c)
		return nil
	}

	if err := app.Run(append([]string{"honey"}, args...)); err != nil {
		t.Fatalf("app.Run failed: %v", err)
	}
	return got, cfgErr
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestMakeAllConfigs_defaults checks the config with no flags at all.
func TestMakeAllConfigs_defaults(t *testing.T) {
	cfg, err := runConfigFromArgs(t, nil)
	if err != nil {
		t.Fatalf("MakeAllConfigs: %v", err)
	}
	def := launcher.DefaultConfig()
	if cfg.Chain.Network != def.Chain.Network {
		t.Fatalf("Network = %q, want %q", cfg.Chain.Network, def.Chain.Network)
	}
	if cfg.Chain.RPCURL != def.Chain.RPCURL {
		t.Fatalf("RPCURL = %q, want %q", cfg.Chain.RPCURL, def.Chain.RPCURL)
	}
	if cfg.Chain.RefreshInterval != 3*time.Second {
		t.Fatalf("RefreshInterval = %s, want 3s", cfg.Chain.RefreshInterval)
	}
	if cfg.Logging.Verbosity != 3 || cfg.Logging.Format != "text" {
		t.Fatalf("Logging = %+v", cfg.Logging)
	}
	if cfg.Sim || cfg.Metrics.Enabled {
		t.Fatal("sim and metrics should be off by default")
	}
}

// TestMakeAllConfigs_flagOverrides verifies that every command-line flag
// overrides the corresponding Config field.
func TestMakeAllConfigs_flagOverrides(t *testing.T) {

	tests := []struct {
		name string                                  // descriptive name for the scenario
		args []string                                // CLI arguments to feed into MakeAllConfigs
		want func(t *testing.T, cfg launcher.Config) // assertion helper examining the final config
	}{
		{
			name: "chain endpoint and contract",
			args: []string{"--network", "local", "--rpc", "ws://127.0.0.1:8545", "--contract", "0x5FbDB2315678afecb367f032d93F642f64180aa3", "--chainid", "31337"},
			want: func(t *testing.T, cfg launcher.Config) {
				if cfg.Chain.Network != "local" {
					t.Fatalf("Network = %q, want local", cfg.Chain.Network)
				}
				if cfg.Chain.RPCURL != "ws://127.0.0.1:8545" {
					t.Fatalf("RPCURL = %q", cfg.Chain.RPCURL)
				}
				if cfg.Chain.ContractAddress != "0x5FbDB2315678afecb367f032d93F642f64180aa3" {
					t.Fatalf("ContractAddress = %q", cfg.Chain.ContractAddress)
				}
				if cfg.Chain.ChainID != 31337 {
					t.Fatalf("ChainID = %d, want 31337", cfg.Chain.ChainID)
				}
			},
		},
		{
			name: "refresh loop timing",
			args: []string{"--refresh", "750ms", "--index.delay", "0s", "--rpc.timeout", "4s"},
			want: func(t *testing.T, cfg launcher.Config) {
				if cfg.Chain.RefreshInterval != 750*time.Millisecond {
					t.Fatalf("RefreshInterval = %s", cfg.Chain.RefreshInterval)
				}
				if cfg.Chain.IndexDelay != 0 {
					t.Fatalf("IndexDelay = %s", cfg.Chain.IndexDelay)
				}
				if cfg.Chain.CallTimeout != 4*time.Second {
					t.Fatalf("CallTimeout = %s", cfg.Chain.CallTimeout)
				}
			},
		},
		{
			name: "wallet",
			args: []string{"--account", "0x00000000000000000000000000000000000000aa", "--referrer", "0x00000000000000000000000000000000000000bb"},
			want: func(t *testing.T, cfg launcher.Config) {
				if cfg.Wallet.Address != "0x00000000000000000000000000000000000000aa" {
					t.Fatalf("Address = %q", cfg.Wallet.Address)
				}
				if cfg.Wallet.Referrer != "0x00000000000000000000000000000000000000bb" {
					t.Fatalf("Referrer = %q", cfg.Wallet.Referrer)
				}
			},
		},
		{
			name: "logging and metrics",
			args: []string{"--log.format", "json", "--log.verbosity", "5", "--metrics", "--metrics.port", "9100"},
			want: func(t *testing.T, cfg launcher.Config) {
				if cfg.Logging.Format != "json" || cfg.Logging.Verbosity != 5 {
					t.Fatalf("Logging = %+v", cfg.Logging)
				}
				if !cfg.Metrics.Enabled || cfg.Metrics.Port != 9100 {
					t.Fatalf("Metrics = %+v", cfg.Metrics)
				}
			},
		},
		{
			name: "sim switches network",
			args: []string{"--sim", "--skip-catalog-check"},
			want: func(t *testing.T, cfg launcher.Config) {
				if !cfg.Sim || cfg.Chain.Network != "sim" || !cfg.SkipCatalogCheck {
					t.Fatalf("Sim = %v, Network = %q, SkipCatalogCheck = %v", cfg.Sim, cfg.Chain.Network, cfg.SkipCatalogCheck)
				}
			},
		},
		{
			name: "preset",
			args: []string{"--preset", "local", "--contract", "0x5FbDB2315678afecb367f032d93F642f64180aa3"},
			want: func(t *testing.T, cfg launcher.Config) {
				if cfg.Preset != "local" || cfg.Chain.Network != "local" {
					t.Fatalf("Preset = %q, Network = %q", cfg.Preset, cfg.Chain.Network)
				}
				if cfg.Chain.IndexDelay != 0 || cfg.Chain.RefreshInterval != time.Second {
					t.Fatalf("Chain = %+v", cfg.Chain)
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg, err := runConfigFromArgs(t, test.args)
			if err != nil {
				t.Fatalf("MakeAllConfigs: %v", err)
			}
			test.want(t, cfg)
			t.Logf("args = %#v", test.args) //	NOTE: this will only be printed if the test fails
		})
	}
}

// TestMakeAllConfigs_layering checks file < environment < flags.
func TestMakeAllConfigs_layering(t *testing.T) {
	file := writeFile(t, "honey.yaml", `
chain:
  network: local
  rpc_url: http://10.0.0.1:8545
  contract: "0x5FbDB2315678afecb367f032d93F642f64180aa3"
  refresh_interval: 5s
logging:
  verbosity: 4
  format: json
wallet:
  address: "0x00000000000000000000000000000000000000aa"
`)

	cfg, err := runConfigFromArgs(t, []string{"--config", file})
	if err != nil {
		t.Fatalf("MakeAllConfigs: %v", err)
	}
	if cfg.Chain.Network != "local" || cfg.Chain.RPCURL != "http://10.0.0.1:8545" {
		t.Fatalf("file not applied: %+v", cfg.Chain)
	}
	if cfg.Chain.RefreshInterval != 5*time.Second {
		t.Fatalf("RefreshInterval = %s, want 5s", cfg.Chain.RefreshInterval)
	}
	if cfg.Chain.IndexDelay != launcher.DefaultConfig().Chain.IndexDelay {
		t.Fatalf("IndexDelay = %s, keys absent from the file keep their default", cfg.Chain.IndexDelay)
	}
	if cfg.Logging.Verbosity != 4 || cfg.Logging.Format != "json" {
		t.Fatalf("Logging = %+v", cfg.Logging)
	}

	// The flag beats the file.
	cfg, err = runConfigFromArgs(t, []string{"--config", file, "--refresh", "2s", "--log.verbosity", "1"})
	if err != nil {
		t.Fatalf("MakeAllConfigs: %v", err)
	}
	if cfg.Chain.RefreshInterval != 2*time.Second || cfg.Logging.Verbosity != 1 {
		t.Fatalf("flags not applied over file: refresh %s, verbosity %d", cfg.Chain.RefreshInterval, cfg.Logging.Verbosity)
	}
}

func TestMakeAllConfigs_environment(t *testing.T) {
	app := cli.NewApp()
	app.HideHelp = true
	app.Flags = flags.AllGlobalFlags()

	t.Setenv(launcher.EnvRPCURL, "http://192.168.1.2:8545")
	t.Setenv(launcher.EnvAccount, "0x00000000000000000000000000000000000000cc")
	t.Setenv(launcher.EnvPrivateKey, "")
	t.Setenv(launcher.EnvContract, "")
	t.Setenv("HONEY_SENTRY_DSN", "")

	var cfg launcher.Config
	var cfgErr error
	app.Action = func(c *cli.Context) error {
		cfg, cfgErr = launcher.MakeAllConfigs(c)
		return nil
	}
	if err := app.Run([]string{"honey"}); err != nil {
		t.Fatal(err)
	}
	if cfgErr != nil {
		t.Fatalf("MakeAllConfigs: %v", cfgErr)
	}
	if cfg.Chain.RPCURL != "http://192.168.1.2:8545" {
		t.Fatalf("RPCURL = %q", cfg.Chain.RPCURL)
	}
	if cfg.Wallet.Address != "0x00000000000000000000000000000000000000cc" {
		t.Fatalf("Address = %q", cfg.Wallet.Address)
	}
}

// TestMakeAllConfigs_invalid verifies validation rejects bad values.
func TestMakeAllConfigs_invalid(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad network", []string{"--network", "mainnet"}, "Network"},
		{"bad rpc", []string{"--rpc", "not a url"}, "RPCURL"},
		{"bad contract", []string{"--contract", "0x1234"}, "ContractAddress"},
		{"bad verbosity", []string{"--log.verbosity", "9"}, "Verbosity"},
		{"bad format", []string{"--log.format", "xml"}, "Format"},
		{"zero refresh", []string{"--refresh", "0s"}, "RefreshInterval"},
		{"local without contract", []string{"--network", "local"}, "--contract"},
		{"unknown preset", []string{"--preset", "turbo"}, "unknown preset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runConfigFromArgs(t, tt.args)
			if err == nil {
				t.Fatalf("MakeAllConfigs(%v) should fail", tt.args)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
