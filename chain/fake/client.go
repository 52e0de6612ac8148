package fake

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/rony4d/go-honey-hive/chain"
	"github.com/rony4d/go-honey-hive/honey/contracts/honeygame"
	"github.com/rony4d/go-honey-hive/inter"
)

var (
	_ chain.Client       = (*Client)(nil)
	_ chain.HeadNotifier = (*Client)(nil)
)

// Client is one account's view of a Chain.
type Client struct {
	chain   *Chain
	account common.Address
}

// Chain returns the shared contract state.
func (c *Client) Chain() *Chain { return c.chain }

// read runs fn under the chain lock unless a read failure was injected.
func (c *Client) read(ctx context.Context, op string, fn func()) error {
	if err := ctx.Err(); err != nil {
		return &chain.CallError{Op: op, Err: err}
	}
	c.chain.mu.Lock()
	defer c.chain.mu.Unlock()
	if err := c.chain.takeFailure(OpRead); err != nil {
		return &chain.CallError{Op: op, Err: err}
	}
	fn()
	return nil
}

// BlockNumber implements chain.Reader.
func (c *Client) BlockNumber(ctx context.Context) (idx.Block, error) {
	var b idx.Block
	err := c.read(ctx, "blockNumber", func() { b = c.chain.block })
	return b, err
}

// Player implements chain.Reader.
func (c *Client) Player(ctx context.Context, addr common.Address) (honeygame.PlayerRecord, error) {
	var rec honeygame.PlayerRecord
	err := c.read(ctx, "players", func() {
		p, ok := c.chain.players[addr]
		if !ok {
			rec = honeygame.PlayerRecord{
				NectarUsed:      new(big.Int),
				HoneyPower:      new(big.Int),
				RewardDebt:      new(big.Int),
				PendingCarry:    new(big.Int),
				NextUpgradeTime: new(big.Int),
			}
			return
		}
		rec = honeygame.PlayerRecord{
			Initialized:     p.initialized,
			HiveLevel:       p.hiveLevel,
			BeeCount:        p.beeCount,
			NectarUsed:      new(big.Int).SetUint64(p.nectarUsed),
			HoneyPower:      new(big.Int).SetUint64(p.honeyPower),
			RewardDebt:      new(big.Int),
			PendingCarry:    new(big.Int).Set(p.pending),
			NextUpgradeTime: big.NewInt(p.nextUpgradeTime),
			Referrer:        p.referrer,
		}
	})
	return rec, err
}

// BeeBalance implements chain.Reader.
func (c *Client) BeeBalance(ctx context.Context, addr common.Address, beeTypeID int) (uint32, error) {
	var n uint32
	err := c.read(ctx, "beeBalances", func() {
		if p, ok := c.chain.players[addr]; ok {
			n = p.bees[beeTypeID]
		}
	})
	return n, err
}

// RewardPerBlock implements chain.Reader.
func (c *Client) RewardPerBlock(ctx context.Context, block idx.Block) (*big.Int, error) {
	var v *big.Int
	err := c.read(ctx, "rewardPerBlock", func() { v = c.chain.rewardAt(block) })
	return v, err
}

// TotalHoneyPower implements chain.Reader.
func (c *Client) TotalHoneyPower(ctx context.Context) (*big.Int, error) {
	var v *big.Int
	err := c.read(ctx, "totalHoneyPower", func() { v = new(big.Int).SetUint64(c.chain.totalPower) })
	return v, err
}

// PendingHoney implements chain.Reader.
func (c *Client) PendingHoney(ctx context.Context, addr common.Address) (*big.Int, error) {
	var v *big.Int
	err := c.read(ctx, "pendingHoney", func() {
		v = new(big.Int)
		if p, ok := c.chain.players[addr]; ok {
			v.Set(p.pending)
		}
	})
	return v, err
}

// StartBlock implements chain.Reader.
func (c *Client) StartBlock(ctx context.Context) (idx.Block, error) {
	var b idx.Block
	err := c.read(ctx, "startBlock", func() { b = c.chain.startBlock })
	return b, err
}

// TokenAddress implements chain.Reader.
func (c *Client) TokenAddress(ctx context.Context) (common.Address, error) {
	var a common.Address
	err := c.read(ctx, "HONEY", func() { a = c.chain.token })
	return a, err
}

// TokenBalance implements chain.Reader.
func (c *Client) TokenBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	var v *big.Int
	err := c.read(ctx, "balanceOf", func() { v = inter.CopyAmount(c.chain.honey[addr]) })
	return v, err
}

// TokenSupply implements chain.Reader.
func (c *Client) TokenSupply(ctx context.Context) (*big.Int, error) {
	var v *big.Int
	err := c.read(ctx, "totalSupply", func() { v = inter.CopyAmount(c.chain.supply) })
	return v, err
}

// Allowance implements chain.Reader.
func (c *Client) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	var v *big.Int
	err := c.read(ctx, "allowance", func() { v = inter.CopyAmount(c.chain.allowances[owner][spender]) })
	return v, err
}

// EthBalance implements chain.Reader.
func (c *Client) EthBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	var v *big.Int
	err := c.read(ctx, "getBalance", func() { v = inter.CopyAmount(c.chain.eth[addr]) })
	return v, err
}

// BeeTypeDef implements chain.Reader.
func (c *Client) BeeTypeDef(ctx context.Context, id int) (honeygame.BeeTypeRecord, error) {
	var rec honeygame.BeeTypeRecord
	err := c.read(ctx, "beeTypes", func() {
		bee, err := c.chain.catalog.Bee(id)
		if err != nil {
			rec = honeygame.BeeTypeRecord{HoneyRate: new(big.Int), NectarConsumption: new(big.Int), CostHoney: new(big.Int)}
			return
		}
		rec = honeygame.BeeTypeRecord{
			HoneyRate:         new(big.Int).SetUint64(bee.HoneyPower),
			NectarConsumption: new(big.Int).SetUint64(bee.NectarConsumption),
			CostHoney:         inter.CopyAmount(bee.CostHoney),
			Exists:            true,
		}
	})
	return rec, err
}

// HiveLevelDef implements chain.Reader.
func (c *Client) HiveLevelDef(ctx context.Context, level int) (honeygame.HiveLevelRecord, error) {
	var rec honeygame.HiveLevelRecord
	err := c.read(ctx, "hiveLevels", func() {
		hive, err := c.chain.catalog.Hive(level)
		if err != nil {
			rec = honeygame.HiveLevelRecord{NectarOutput: new(big.Int), CostHoney: new(big.Int)}
			return
		}
		rec = honeygame.HiveLevelRecord{
			TotalBees:    hive.Capacity,
			NectarOutput: new(big.Int).SetUint64(hive.NectarOutput),
			CostHoney:    inter.CopyAmount(hive.CostHoney),
			Exists:       true,
		}
	})
	return rec, err
}

// Account implements chain.Writer.
func (c *Client) Account() common.Address { return c.account }

// GameAddress implements chain.Writer.
func (c *Client) GameAddress() common.Address { return c.chain.game }

func (c *Client) send(ctx context.Context, op string, fn func() error) (common.Hash, error) {
	if err := ctx.Err(); err != nil {
		return common.Hash{}, &chain.CallError{Op: op, Err: err}
	}
	hash, err := c.chain.transact(op, fn)
	if err != nil {
		return common.Hash{}, &chain.CallError{Op: op, Err: err}
	}
	return hash, nil
}

// Initialize implements chain.Writer.
func (c *Client) Initialize(ctx context.Context, referrer common.Address, withFreeBee bool, fee *big.Int) (common.Hash, error) {
	return c.send(ctx, OpInitialize, func() error {
		return c.chain.initialize(c.account, referrer, withFreeBee, fee)
	})
}

// BuyBee implements chain.Writer.
func (c *Client) BuyBee(ctx context.Context, beeTypeID int, qty uint32) (common.Hash, error) {
	return c.send(ctx, OpBuyBee, func() error {
		return c.chain.buyBee(c.account, beeTypeID, qty)
	})
}

// UpgradeHive implements chain.Writer.
func (c *Client) UpgradeHive(ctx context.Context) (common.Hash, error) {
	return c.send(ctx, OpUpgradeHive, func() error {
		return c.chain.upgradeHive(c.account)
	})
}

// Claim implements chain.Writer.
func (c *Client) Claim(ctx context.Context) (common.Hash, error) {
	return c.send(ctx, OpClaim, func() error {
		return c.chain.claim(c.account)
	})
}

// Approve implements chain.Writer.
func (c *Client) Approve(ctx context.Context, spender common.Address, amount *big.Int) (common.Hash, error) {
	return c.send(ctx, OpApprove, func() error {
		c.chain.allowance(c.account, spender).Set(amount)
		return nil
	})
}

// WaitMined implements chain.Writer. Transactions are mined when sent, so
// it only reports the outcome.
func (c *Client) WaitMined(ctx context.Context, hash common.Hash) error {
	if err := ctx.Err(); err != nil {
		return &chain.CallError{Op: "waitMined", Err: err}
	}
	return c.chain.waitMined(hash)
}

// SubscribeHeads implements chain.HeadNotifier. The subscription ends with
// ctx or Unsubscribe.
func (c *Client) SubscribeHeads(ctx context.Context, ch chan<- idx.Block) (chain.Subscription, error) {
	fc := c.chain
	fc.mu.Lock()
	id := fc.nextHead
	fc.nextHead++
	fc.heads[id] = ch
	fc.mu.Unlock()

	sub := &headSub{chain: fc, id: id, errc: make(chan error)}
	go func() {
		select {
		case <-ctx.Done():
			sub.Unsubscribe()
		case <-sub.Err():
		}
	}()
	return sub, nil
}

type headSub struct {
	chain *Chain
	id    int
	errc  chan error
	once  sync.Once
}

func (s *headSub) Unsubscribe() {
	s.once.Do(func() {
		s.chain.mu.Lock()
		delete(s.chain.heads, s.id)
		s.chain.mu.Unlock()
		close(s.errc)
	})
}

func (s *headSub) Err() <-chan error { return s.errc }

// Run mines blocks at the rules' BlocksPerSecond until ctx is done.
func (c *Chain) Run(ctx context.Context) {
	bps := c.rules.Economy.BlocksPerSecond
	if bps <= 0 {
		bps = 1
	}
	ticker := time.NewTicker(time.Duration(float64(time.Second) / bps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Mine(1)
		}
	}
}
