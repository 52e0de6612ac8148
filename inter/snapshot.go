// Package inter defines the client's view of HoneyGame chain state. A
// Snapshot is a consistent copy of everything the economy and admission
// code needs, taken in one refresh cycle.
//
// Key concepts:
//   - PlayerState: the connected wallet's hive, bees and balances
//   - NetworkState: global counters (total honey power, emission, blocks)
//   - Snapshot: both of the above plus the time they were read
//
// Snapshots are replaced wholesale on every refresh. Nothing outside the
// snapshot store writes to one after it has been published.

package inter

import (
	"math/big"
	"sort"
	"time"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
)

// PlayerState mirrors the contract's players(address) record plus the
// wallet balances the client reads alongside it.
type PlayerState struct {
	// Address is the wallet this state belongs to.
	Address common.Address

	// Initialized is true once initialize() has been confirmed for Address.
	Initialized bool

	// HiveLevel indexes the hive-level catalog.
	HiveLevel uint32

	// BeeCount is the contract-reported number of bee units owned.
	BeeCount uint32

	// BeeBalances maps bee-type id to owned quantity. Missing ids are 0.
	BeeBalances map[int]uint32

	// NectarUsed is the contract-reported nectar consumption of all owned bees.
	NectarUsed uint64

	// HoneyPower is the contract-reported honey power of the player.
	HoneyPower uint64

	// PendingHoney is the unclaimed reward in HONEY wei.
	PendingHoney *big.Int

	// HoneyBalance is the wallet's HONEY token balance in wei.
	HoneyBalance *big.Int

	// EthBalance is the wallet's native-currency balance in wei.
	EthBalance *big.Int

	// NextUpgradeTime is the earliest unix time (seconds) of the next hive upgrade.
	NextUpgradeTime int64

	// Referrer is the address recorded at initialization, zero if none.
	Referrer common.Address
}

// NetworkState holds the global counters shared by every player.
type NetworkState struct {
	// TotalHoneyPower is the sum of honey power across all players.
	TotalHoneyPower uint64

	// TotalHoneyMined is the HONEY total supply in wei.
	TotalHoneyMined *big.Int

	// RewardPerBlock is the contract-reported emission (wei per block) at
	// CurrentBlock. It already reflects halvings.
	RewardPerBlock *big.Int

	// CurrentBlock is the latest block number seen by the client.
	CurrentBlock idx.Block

	// StartBlock is the block at which emission started.
	StartBlock idx.Block

	// TokenAddress is the HONEY token contract, zero until discovered.
	TokenAddress common.Address
}

// Snapshot is one consistent read of player and network state.
type Snapshot struct {
	Player    PlayerState
	Network   NetworkState
	FetchedAt time.Time
}

// Owned returns the quantity of the given bee type the player holds.
func (p PlayerState) Owned(beeTypeID int) uint32 {
	return p.BeeBalances[beeTypeID]
}

// TotalBeesOwned returns the number of bee units occupying hive slots.
// The contract counter is used when present; otherwise the per-type
// balances are summed.
func (p PlayerState) TotalBeesOwned() uint64 {
	if p.BeeCount > 0 {
		return uint64(p.BeeCount)
	}
	var total uint64
	for _, qty := range p.BeeBalances {
		total += uint64(qty)
	}
	return total
}

// OwnedTypes returns the ids of bee types with a non-zero balance, ascending.
func (p PlayerState) OwnedTypes() []int {
	ids := make([]int, 0, len(p.BeeBalances))
	for id, qty := range p.BeeBalances {
		if qty > 0 {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids
}

// Copy creates a deep copy of the player state.
func (p PlayerState) Copy() PlayerState {
	cp := p
	cp.BeeBalances = make(map[int]uint32, len(p.BeeBalances))
	for id, qty := range p.BeeBalances {
		cp.BeeBalances[id] = qty
	}
	cp.PendingHoney = CopyAmount(p.PendingHoney)
	cp.HoneyBalance = CopyAmount(p.HoneyBalance)
	cp.EthBalance = CopyAmount(p.EthBalance)
	return cp
}

// Copy creates a deep copy of the network state.
func (n NetworkState) Copy() NetworkState {
	cp := n
	cp.TotalHoneyMined = CopyAmount(n.TotalHoneyMined)
	cp.RewardPerBlock = CopyAmount(n.RewardPerBlock)
	return cp
}

// Copy creates a deep copy of the snapshot. Amounts that were nil come back
// as zero so readers never need nil checks.
func (s Snapshot) Copy() Snapshot {
	return Snapshot{
		Player:    s.Player.Copy(),
		Network:   s.Network.Copy(),
		FetchedAt: s.FetchedAt,
	}
}

// EmptySnapshot returns the zeroed snapshot of a freshly connected wallet.
func EmptySnapshot(addr common.Address) Snapshot {
	s := Snapshot{}.Copy()
	s.Player.Address = addr
	return s
}
