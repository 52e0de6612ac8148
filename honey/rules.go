// Package honey defines the economy rules and network parameters of the
// HoneyGame contract as seen by the client.
//
// This package provides:
//   - Network identification constants (Abstract testnet, local devnet, simulation)
//   - Emission rules: base reward per block and the halving interval
//   - Spending rules: burn rate, burn address and the hive upgrade cooldown
//   - The ETH fee charged when a player initializes a hive
//   - The blocks-per-second ratio used to turn block counts into wall time
//
// Every value here must match the configuration of the deployed contract.
// The contract stays authoritative; these rules only feed display math and
// local admission checks.

package honey

import (
	"encoding/json"
	"math/big"
	"time"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/params"
)

// Network identification constants
const (
	// AbstractTestNetworkID is the chain ID of the Abstract testnet (11124)
	AbstractTestNetworkID uint64 = 0x2b74

	// LocalNetworkID is the chain ID used by local hardhat/anvil devnets (31337)
	LocalNetworkID uint64 = 0x7a69

	// SimNetworkID identifies the in-process simulated chain
	SimNetworkID uint64 = 0x484e

	// DefaultHalvingInterval is the number of blocks between two emission halvings
	DefaultHalvingInterval idx.Block = 4_200_000

	// DefaultCooldown is the minimum delay between two hive upgrades
	DefaultCooldown = 24 * time.Hour
)

var (
	// BurnAddress receives the burned share of every HONEY payment.
	BurnAddress = common.HexToAddress("0x000000000000000000000000000000000000dEaD")

	// AbstractTestGameContract is the HoneyGame deployment on the Abstract testnet.
	AbstractTestGameContract = common.HexToAddress("0x4a3F1Fe025f35ECE803A341A47Db5627Cb2f2501")
)

// Rules describes the complete configuration of one HoneyGame deployment.
//
// Note: Rules holds *big.Int values. Use Copy() before handing a Rules value
// to code that may mutate it.
type Rules struct {
	Name      string         // Network name identifier (e.g., "abstract-testnet", "local", "sim")
	NetworkID uint64         // Chain ID used for transaction signing
	Contract  common.Address // HoneyGame contract address, zero when unknown

	// Economy options - emission, spending and fees
	Economy EconomyRules
}

// EconomyRules contains the contract constants the client reproduces.
type EconomyRules struct {
	// HalvingInterval is the number of blocks per emission epoch.
	// The reward per block halves every time an epoch ends.
	HalvingInterval idx.Block

	// BaseRewardPerBlock is the epoch-0 emission in HONEY wei.
	// It is used as a display fallback until the first chain read completes.
	BaseRewardPerBlock *big.Int

	// BurnRate is the fraction of every HONEY payment sent to BurnAddress.
	BurnRate float64

	// BurnAddress receives burned HONEY
	BurnAddress common.Address

	// CooldownDuration is the minimum delay between two hive upgrades
	CooldownDuration time.Duration

	// InitEthFee is the native-currency fee (wei) paid by initialize().
	InitEthFee *big.Int

	// BlocksPerSecond converts block counts to wall time for display.
	// It is a display approximation, not a property of the contract.
	BlocksPerSecond float64
}

// AbstractTestNetRules returns the rules of the public testnet deployment.
func AbstractTestNetRules() Rules {
	return Rules{
		Name:      "abstract-testnet",
		NetworkID: AbstractTestNetworkID,
		Contract:  AbstractTestGameContract,
		Economy:   DefaultEconomyRules(),
	}
}

// LocalNetRules returns rules for a locally deployed contract. The contract
// address is supplied by configuration.
func LocalNetRules() Rules {
	return Rules{
		Name:      "local",
		NetworkID: LocalNetworkID,
		Economy:   DefaultEconomyRules(),
	}
}

// SimNetRules returns rules for the in-process simulated chain.
// The simulation produces blocks much faster than a real network:
//   - 10 blocks per second instead of 1
//   - 1 minute upgrade cooldown instead of 24 hours
func SimNetRules() Rules {
	cfg := DefaultEconomyRules()
	cfg.BlocksPerSecond = 10
	cfg.CooldownDuration = time.Minute
	return Rules{
		Name:      "sim",
		NetworkID: SimNetworkID,
		Contract:  common.HexToAddress("0x000000000000000000000000000000000000b33e"),
		Economy:   cfg,
	}
}

// DefaultEconomyRules returns the contract's default economy configuration.
func DefaultEconomyRules() EconomyRules {
	return EconomyRules{
		HalvingInterval:    DefaultHalvingInterval,
		BaseRewardPerBlock: big.NewInt(23 * params.Ether / 10), // 2.3 HONEY
		BurnRate:           0.75,
		BurnAddress:        BurnAddress,
		CooldownDuration:   DefaultCooldown,
		InitEthFee:         big.NewInt(params.Ether / 1000), // 0.001 ETH, owner can change it on-chain
		BlocksPerSecond:    1,
	}
}

// RulesByName resolves a network name to its rules.
func RulesByName(name string) (Rules, bool) {
	switch name {
	case "abstract-testnet", "testnet":
		return AbstractTestNetRules(), true
	case "local":
		return LocalNetRules(), true
	case "sim":
		return SimNetRules(), true
	}
	return Rules{}, false
}

// Copy creates a deep copy of Rules.
func (r Rules) Copy() Rules {
	cp := r
	if r.Economy.BaseRewardPerBlock != nil {
		cp.Economy.BaseRewardPerBlock = new(big.Int).Set(r.Economy.BaseRewardPerBlock)
	}
	if r.Economy.InitEthFee != nil {
		cp.Economy.InitEthFee = new(big.Int).Set(r.Economy.InitEthFee)
	}
	return cp
}

// String returns a JSON representation of Rules for logging.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
