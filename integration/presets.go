package integration

import (
	"fmt"
	"time"
)

// Package integration provides named client profiles. A profile bundles the
// network rules and the refresh/timeout knobs that usually change together,
// so one --preset flag replaces half a dozen individual ones.
//
// Usage:
//   cfg := integration.DefaultPreset()  // public testnet over HTTP
//   cfg := integration.LocalPreset()    // local dev chain, fast polling
//   cfg := integration.SimPreset()      // in-memory contract, no RPC
//   cfg := integration.MonitorPreset()  // long-running watch with metrics
//
// The launcher applies the selected profile on top of its defaults and
// before the config file, so anything set in the file or on the command
// line still wins.

// PresetConfig captures the settings that vary across profiles.
type PresetConfig struct {
	Name             string        // profile identifier (e.g., "local", "sim")
	Network          string        // honey.RulesByName key
	RefreshInterval  time.Duration // snapshot polling period
	IndexDelay       time.Duration // pause between confirmation and refresh
	CallTimeout      time.Duration // per JSON-RPC call
	EnableMetrics    bool          // serve Prometheus metrics
	SkipCatalogCheck bool          // trust the built-in catalog without reading the contract
	Sim              bool          // use the in-memory contract
}

func DefaultPreset() PresetConfig {

	return PresetConfig{
		Name:             "default",
		Network:          "abstract-testnet",
		RefreshInterval:  3 * time.Second,  // matches the web client's polling
		IndexDelay:       time.Second,      // public RPC nodes lag the head slightly
		CallTimeout:      30 * time.Second, // generous for a shared endpoint
		EnableMetrics:    false,
		SkipCatalogCheck: false,
		Sim:              false,
	}
}

// LocalPreset targets a local development chain (hardhat, anvil) where the
// node is next door and blocks are mined on demand.
//
// Trade-offs:
//   - Fast polling is cheap locally but would hammer a public endpoint
//   - No index delay: a local node serves the new state immediately
func LocalPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "local"
	cfg.Network = "local"
	cfg.RefreshInterval = time.Second
	cfg.IndexDelay = 0
	cfg.CallTimeout = 5 * time.Second
	return cfg
}

// SimPreset runs the client against the in-memory contract. Nothing leaves
// the process, so the catalog check and the index delay are pointless.
func SimPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "sim"
	cfg.Network = "sim"
	cfg.RefreshInterval = 500 * time.Millisecond
	cfg.IndexDelay = 0
	cfg.CallTimeout = time.Second
	cfg.SkipCatalogCheck = true
	cfg.Sim = true
	return cfg
}

// MonitorPreset is meant for the watch command left running for hours:
// slower polling, like the web client's token supply refresh, and metrics on.
func MonitorPreset() PresetConfig {
	cfg := DefaultPreset()
	cfg.Name = "monitor"
	cfg.RefreshInterval = 10 * time.Second
	cfg.EnableMetrics = true
	return cfg
}

// GetPresetByName looks up a profile by its identifier.
//
// Example:
//
//	preset, err := integration.GetPresetByName("local")
//	if err != nil {
//	    log.Fatal(err)
//	}
func GetPresetByName(name string) (PresetConfig, error) {
	switch name {
	case "local":
		return LocalPreset(), nil
	case "sim":
		return SimPreset(), nil
	case "monitor":
		return MonitorPreset(), nil
	case "default", "":
		return DefaultPreset(), nil
	default:
		return PresetConfig{}, fmt.Errorf("unknown preset: %q (valid: default, local, sim, monitor)", name)
	}
}

// ApplyPreset merges preset into target. An empty network and zero refresh
// or call timeouts leave the target untouched. IndexDelay and the booleans
// are always copied, zero being a meaningful value for them.
func ApplyPreset(target *PresetConfig, preset PresetConfig) {
	if preset.Network != "" {
		target.Network = preset.Network
	}
	if preset.RefreshInterval > 0 {
		target.RefreshInterval = preset.RefreshInterval
	}
	target.IndexDelay = preset.IndexDelay
	if preset.CallTimeout > 0 {
		target.CallTimeout = preset.CallTimeout
	}
	target.EnableMetrics = preset.EnableMetrics
	target.SkipCatalogCheck = preset.SkipCatalogCheck
	target.Sim = preset.Sim
	if preset.Name != "" {
		target.Name = preset.Name
	}
}
