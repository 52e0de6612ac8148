// Package chain is the client's side of the HoneyGame contract boundary.
// It defines what the rest of the client needs from a chain (typed reads,
// the four player transactions plus token approval, block notifications),
// provides a go-ethereum backed implementation, and keeps the snapshot
// store fed.
//
// Key pieces:
//   - Reader / Writer / Client: the collaborator interfaces
//   - EthClient: ethclient + ABI bindings implementation
//   - FetchSnapshot: one consistent read of everything a snapshot holds
//   - Syncer: interval and new-head driven refresh into gamestate.Store
//   - VerifyCatalog: startup check of the static catalog against the contract
//
// Nothing here retries. Timeouts come from the caller's context.
package chain

import (
	"context"
	"math/big"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-honey-hive/honey/contracts/honeygame"
)

// Reader exposes the contract and token view functions.
type Reader interface {
	// BlockNumber returns the latest block number.
	BlockNumber(ctx context.Context) (idx.Block, error)

	// Player returns the players(address) record.
	Player(ctx context.Context, addr common.Address) (honeygame.PlayerRecord, error)

	// BeeBalance returns beeBalances(address, beeTypeID).
	BeeBalance(ctx context.Context, addr common.Address, beeTypeID int) (uint32, error)

	// RewardPerBlock returns rewardPerBlock(block) in HONEY wei.
	RewardPerBlock(ctx context.Context, block idx.Block) (*big.Int, error)

	// TotalHoneyPower returns totalHoneyPower().
	TotalHoneyPower(ctx context.Context) (*big.Int, error)

	// PendingHoney returns pendingHoney(address) in HONEY wei.
	PendingHoney(ctx context.Context, addr common.Address) (*big.Int, error)

	// StartBlock returns startBlock().
	StartBlock(ctx context.Context) (idx.Block, error)

	// TokenAddress returns the HONEY token address.
	TokenAddress(ctx context.Context) (common.Address, error)

	// TokenBalance returns the HONEY balanceOf(address).
	TokenBalance(ctx context.Context, addr common.Address) (*big.Int, error)

	// TokenSupply returns the HONEY totalSupply().
	TokenSupply(ctx context.Context) (*big.Int, error)

	// Allowance returns the HONEY allowance(owner, spender).
	Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error)

	// EthBalance returns the native-currency balance of addr.
	EthBalance(ctx context.Context, addr common.Address) (*big.Int, error)

	// BeeTypeDef returns the on-chain beeTypes(id) entry.
	BeeTypeDef(ctx context.Context, id int) (honeygame.BeeTypeRecord, error)

	// HiveLevelDef returns the on-chain hiveLevels(level) entry.
	HiveLevelDef(ctx context.Context, level int) (honeygame.HiveLevelRecord, error)
}

// Writer submits transactions from one account. Every method returns as
// soon as the transaction is sent; WaitMined blocks until it is included.
type Writer interface {
	// Account is the sending address.
	Account() common.Address

	// GameAddress is the HoneyGame contract the writer talks to.
	GameAddress() common.Address

	Initialize(ctx context.Context, referrer common.Address, withFreeBee bool, fee *big.Int) (common.Hash, error)
	BuyBee(ctx context.Context, beeTypeID int, qty uint32) (common.Hash, error)
	UpgradeHive(ctx context.Context) (common.Hash, error)
	Claim(ctx context.Context) (common.Hash, error)

	// Approve submits HONEY approve(spender, amount).
	Approve(ctx context.Context, spender common.Address, amount *big.Int) (common.Hash, error)

	// WaitMined blocks until tx is included. A reverted transaction
	// returns an error wrapping ErrReverted.
	WaitMined(ctx context.Context, tx common.Hash) error
}

// Client is a full chain collaborator.
type Client interface {
	Reader
	Writer
}

// HeadNotifier is implemented by clients that can push new block numbers.
// The syncer falls back to polling when the client does not implement it
// or the subscription fails.
type HeadNotifier interface {
	SubscribeHeads(ctx context.Context, ch chan<- idx.Block) (Subscription, error)
}

// Subscription is a live head subscription.
type Subscription interface {
	Unsubscribe()
	Err() <-chan error
}
