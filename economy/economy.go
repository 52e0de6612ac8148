// Package economy turns raw HoneyGame chain counters into the numbers a
// player sees: network share, emission rate, halving countdown, production
// and hourly rate, and the remaining room in the current hive.
//
// Every function here is pure. Inputs are a published inter.Snapshot, the
// static catalog and the economy rules; nothing is cached between calls and
// no snapshot is ever modified. Rates use float64 division; rounding is left
// to presentation.

package economy

import (
	"fmt"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"

	"github.com/rony4d/go-honey-hive/honey"
	"github.com/rony4d/go-honey-hive/honey/catalog"
	"github.com/rony4d/go-honey-hive/inter"
)

const (
	// SecondsPerDay is used for the halving countdown.
	SecondsPerDay = 24 * 60 * 60

	// SecondsPerHour converts a per-block rate into an hourly rate under the
	// one-block-per-second assumption.
	SecondsPerHour = 60 * 60
)

// Halving is the position of a block inside the emission schedule.
type Halving struct {
	BlocksSinceStart   idx.Block // blocks elapsed since StartBlock, 0 before it
	Epoch              uint64    // completed halving periods
	NextHalvingBlock   idx.Block // first block of the next epoch
	BlocksUntilHalving idx.Block // blocks left in the current epoch
	Days               float64   // BlocksUntilHalving as days at the configured block rate
}

// HiveView describes the player's current hive and what is left of it.
type HiveView struct {
	Current    catalog.HiveLevel
	Next       catalog.HiveLevel
	HasNext    bool  // false at max level
	SlotsLeft  int64 // capacity - bees owned
	NectarLeft int64 // nectar output - nectar used
}

// PlayerShare returns the player's share of total honey power as a
// percentage. It is 0 while the network has no honey power at all.
func PlayerShare(player inter.PlayerState, network inter.NetworkState) float64 {
	if network.TotalHoneyPower == 0 {
		return 0
	}
	return float64(player.HoneyPower) / float64(network.TotalHoneyPower) * 100
}

// CurrentEmissionRate returns the reward per block in HONEY. The
// contract-reported value is used when known; before the first successful
// read it falls back to the configured base reward.
func CurrentEmissionRate(network inter.NetworkState, rules honey.EconomyRules) float64 {
	if network.RewardPerBlock != nil && network.RewardPerBlock.Sign() > 0 {
		return inter.WeiToFloat(network.RewardPerBlock)
	}
	return inter.WeiToFloat(rules.BaseRewardPerBlock)
}

// HalvingSchedule locates currentBlock in the emission schedule that started
// at startBlock. A zero halving interval disables halving and yields a zero
// schedule.
func HalvingSchedule(currentBlock, startBlock idx.Block, rules honey.EconomyRules) Halving {
	interval := rules.HalvingInterval
	if interval == 0 {
		return Halving{}
	}

	var h Halving
	if currentBlock > startBlock {
		h.BlocksSinceStart = currentBlock - startBlock
	}
	h.Epoch = uint64(h.BlocksSinceStart / interval)
	h.NextHalvingBlock = startBlock + idx.Block(h.Epoch+1)*interval
	if h.NextHalvingBlock > currentBlock {
		h.BlocksUntilHalving = h.NextHalvingBlock - currentBlock
	}

	if h.BlocksUntilHalving > 0 && rules.BlocksPerSecond > 0 {
		h.Days = float64(h.BlocksUntilHalving) / (SecondsPerDay * rules.BlocksPerSecond)
	}
	return h
}

// ProductionRate returns the player's share of global emission in HONEY per block.
func ProductionRate(s inter.Snapshot, rules honey.EconomyRules) float64 {
	return CurrentEmissionRate(s.Network, rules) * PlayerShare(s.Player, s.Network) / 100
}

// HourlyRate returns ProductionRate scaled to one hour.
//
// The scale assumes one block per second. That holds in simulation mode
// only; on a live chain the real block time differs and the figure is an
// approximation the contract does not provide.
func HourlyRate(s inter.Snapshot, rules honey.EconomyRules) float64 {
	return ProductionRate(s, rules) * SecondsPerHour
}

// ViewHive returns the player's current hive level with its remaining
// slots and nectar. An unknown hive level is a catalog mismatch and is
// reported as catalog.ErrInvalidHiveLevel.
func ViewHive(player inter.PlayerState, cat *catalog.Catalog) (HiveView, error) {
	current, err := cat.Hive(int(player.HiveLevel))
	if err != nil {
		return HiveView{}, err
	}
	v := HiveView{
		Current:    current,
		SlotsLeft:  int64(current.Capacity) - int64(player.TotalBeesOwned()),
		NectarLeft: int64(current.NectarOutput) - int64(player.NectarUsed),
	}
	v.Next, v.HasNext = cat.NextHive(int(player.HiveLevel))
	return v, nil
}

// FormatCooldown renders a number of seconds as HH:MM:SS. Negative input
// is shown as 00:00:00.
func FormatCooldown(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	sec := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
}
