// Package fake is an in-memory HoneyGame contract with its HONEY token.
// It backs the --sim mode of the CLI and the tests of every package that
// talks to a chain.
//
// Key concepts:
//   - Chain: the shared contract state. Every transaction mines one block.
//   - Client: a chain.Client bound to one sending account.
//   - Mine / Run: advance blocks by hand or at Rules.BlocksPerSecond.
//   - FailNext / RevertNext: inject transport failures and reverts.
//
// Rewards are distributed block by block in proportion to honey power, with
// the per-block emission halving every HalvingInterval blocks after the
// start block.
package fake

import (
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/rony4d/go-honey-hive/chain"
	"github.com/rony4d/go-honey-hive/economy"
	"github.com/rony4d/go-honey-hive/honey"
	"github.com/rony4d/go-honey-hive/honey/catalog"
)

// ErrInjected is the transport error returned after FailNext without an
// explicit error.
var ErrInjected = errors.New("injected failure")

// Operation names accepted by FailNext and RevertNext.
const (
	OpInitialize  = "initialize"
	OpBuyBee      = "buyBee"
	OpUpgradeHive = "upgradeHive"
	OpClaim       = "claim"
	OpApprove     = "approve"
	OpRead        = "read" // every view call
)

type player struct {
	initialized     bool
	hiveLevel       uint32
	beeCount        uint32
	nectarUsed      uint64
	honeyPower      uint64
	pending         *big.Int
	nextUpgradeTime int64
	referrer        common.Address
	bees            map[int]uint32
}

type receipt struct {
	failed bool
	reason string
}

// Chain is the shared in-memory contract. All methods are safe for
// concurrent use.
type Chain struct {
	mu sync.Mutex

	rules   honey.Rules
	catalog *catalog.Catalog
	game    common.Address
	token   common.Address
	now     func() time.Time

	block      idx.Block
	startBlock idx.Block
	totalPower uint64
	supply     *big.Int
	players    map[common.Address]*player
	honey      map[common.Address]*big.Int
	eth        map[common.Address]*big.Int
	allowances map[common.Address]map[common.Address]*big.Int
	receipts   map[common.Hash]receipt
	nonce      uint64

	failNext   map[string]error
	revertNext map[string]string
	heads      map[int]chan<- idx.Block
	nextHead   int
}

// New creates a chain at block 1 with emission starting at that block.
func New(rules honey.Rules, cat *catalog.Catalog) *Chain {
	return &Chain{
		rules:      rules.Copy(),
		catalog:    cat,
		game:       rules.Contract,
		token:      crypto.CreateAddress(rules.Contract, 0),
		now:        time.Now,
		block:      1,
		startBlock: 1,
		supply:     new(big.Int),
		players:    make(map[common.Address]*player),
		honey:      make(map[common.Address]*big.Int),
		eth:        make(map[common.Address]*big.Int),
		allowances: make(map[common.Address]map[common.Address]*big.Int),
		receipts:   make(map[common.Hash]receipt),
		failNext:   make(map[string]error),
		revertNext: make(map[string]string),
		heads:      make(map[int]chan<- idx.Block),
	}
}

// SetClock replaces the clock used for upgrade cooldowns.
func (c *Chain) SetClock(now func() time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

// GameAddress is the address the fake contract answers at.
func (c *Chain) GameAddress() common.Address { return c.game }

// TokenAddress is the fake HONEY token address.
func (c *Chain) TokenAddress() common.Address { return c.token }

// Block returns the current block number.
func (c *Chain) Block() idx.Block {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.block
}

// Fund credits addr with native currency and HONEY, both in wei. HONEY is
// minted, so it counts towards the total supply.
func (c *Chain) Fund(addr common.Address, eth, honeyWei *big.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if eth != nil {
		c.balance(c.eth, addr).Add(c.balance(c.eth, addr), eth)
	}
	if honeyWei != nil {
		c.balance(c.honey, addr).Add(c.balance(c.honey, addr), honeyWei)
		c.supply.Add(c.supply, honeyWei)
	}
}

// FailNext makes the next call of op fail with err (ErrInjected when nil)
// before anything is sent.
func (c *Chain) FailNext(op string, err error) {
	if err == nil {
		err = ErrInjected
	}
	c.mu.Lock()
	c.failNext[op] = err
	c.mu.Unlock()
}

// RevertNext makes the next transaction of op get mined as reverted.
func (c *Chain) RevertNext(op, reason string) {
	c.mu.Lock()
	c.revertNext[op] = reason
	c.mu.Unlock()
}

// Mine advances n blocks, distributing rewards for each.
func (c *Chain) Mine(n int) {
	c.mu.Lock()
	for i := 0; i < n; i++ {
		c.mineLocked()
	}
	block, subs := c.block, c.headSubsLocked()
	c.mu.Unlock()
	notify(subs, block)
}

// Client returns a chain.Client sending from account.
func (c *Chain) Client(account common.Address) *Client {
	return &Client{chain: c, account: account}
}

func (c *Chain) balance(m map[common.Address]*big.Int, addr common.Address) *big.Int {
	b, ok := m[addr]
	if !ok {
		b = new(big.Int)
		m[addr] = b
	}
	return b
}

func (c *Chain) allowance(owner, spender common.Address) *big.Int {
	byOwner, ok := c.allowances[owner]
	if !ok {
		byOwner = make(map[common.Address]*big.Int)
		c.allowances[owner] = byOwner
	}
	return c.balance(byOwner, spender)
}

func (c *Chain) player(addr common.Address) *player {
	p, ok := c.players[addr]
	if !ok {
		p = &player{pending: new(big.Int), bees: make(map[int]uint32)}
		c.players[addr] = p
	}
	return p
}

// rewardAt is the emission per block at block b.
func (c *Chain) rewardAt(b idx.Block) *big.Int {
	reward := new(big.Int).Set(c.rules.Economy.BaseRewardPerBlock)
	interval := c.rules.Economy.HalvingInterval
	if interval == 0 || b <= c.startBlock {
		return reward
	}
	epoch := uint64((b - c.startBlock) / interval)
	if epoch > 255 {
		return new(big.Int)
	}
	return reward.Rsh(reward, uint(epoch))
}

func (c *Chain) mineLocked() {
	c.block++
	if c.totalPower == 0 {
		return
	}
	reward := c.rewardAt(c.block)
	total := new(big.Int).SetUint64(c.totalPower)
	for _, p := range c.players {
		if p.honeyPower == 0 {
			continue
		}
		share := new(big.Int).Mul(reward, new(big.Int).SetUint64(p.honeyPower))
		p.pending.Add(p.pending, share.Quo(share, total))
	}
}

func (c *Chain) takeFailure(op string) error {
	if err, ok := c.failNext[op]; ok {
		delete(c.failNext, op)
		return err
	}
	return nil
}

// transact mines a block, then applies fn to the post-block state. A
// revert, injected or returned by fn, leaves state untouched and is
// recorded in the receipt.
func (c *Chain) transact(op string, fn func() error) (common.Hash, error) {
	c.mu.Lock()
	if err := c.takeFailure(op); err != nil {
		c.mu.Unlock()
		return common.Hash{}, err
	}

	c.nonce++
	hash := crypto.Keccak256Hash([]byte(op), new(big.Int).SetUint64(c.nonce).Bytes())
	c.mineLocked()

	rc := receipt{}
	if reason, ok := c.revertNext[op]; ok {
		delete(c.revertNext, op)
		rc = receipt{failed: true, reason: reason}
	} else if err := fn(); err != nil {
		rc = receipt{failed: true, reason: err.Error()}
	}
	c.receipts[hash] = rc
	block, subs := c.block, c.headSubsLocked()
	c.mu.Unlock()
	notify(subs, block)
	return hash, nil
}

func (c *Chain) headSubsLocked() []chan<- idx.Block {
	subs := make([]chan<- idx.Block, 0, len(c.heads))
	for _, ch := range c.heads {
		subs = append(subs, ch)
	}
	return subs
}

// notify never blocks; a slow subscriber misses heads, not the latest state.
func notify(subs []chan<- idx.Block, block idx.Block) {
	for _, ch := range subs {
		select {
		case ch <- block:
		default:
		}
	}
}

// spend moves cost HONEY from owner through the game's allowance. The
// burn share leaves the supply, the rest stays with the game.
func (c *Chain) spend(owner common.Address, cost *big.Int) error {
	if cost.Sign() == 0 {
		return nil
	}
	if c.allowance(owner, c.game).Cmp(cost) < 0 {
		return errors.New("ERC20: insufficient allowance")
	}
	bal := c.balance(c.honey, owner)
	if bal.Cmp(cost) < 0 {
		return errors.New("ERC20: transfer amount exceeds balance")
	}
	bal.Sub(bal, cost)
	allow := c.allowance(owner, c.game)
	allow.Sub(allow, cost)

	burned, kept := economy.SpendSplit(cost, c.rules.Economy)
	c.supply.Sub(c.supply, burned)
	c.balance(c.honey, c.game).Add(c.balance(c.honey, c.game), kept)
	return nil
}

func (c *Chain) initialize(from, referrer common.Address, withFreeBee bool, fee *big.Int) error {
	p := c.player(from)
	if p.initialized {
		return errors.New("already initialized")
	}
	if fee == nil || fee.Cmp(c.rules.Economy.InitEthFee) < 0 {
		return errors.New("fee too low")
	}
	eth := c.balance(c.eth, from)
	if eth.Cmp(fee) < 0 {
		return errors.New("insufficient funds for value")
	}
	eth.Sub(eth, fee)
	c.balance(c.eth, c.game).Add(c.balance(c.eth, c.game), fee)

	p.initialized = true
	p.hiveLevel = 0
	p.referrer = referrer
	if withFreeBee && c.catalog.NumBeeTypes() > 0 {
		c.addBees(p, c.catalog.MustBee(0), 1)
	}
	return nil
}

func (c *Chain) addBees(p *player, bee catalog.BeeType, qty uint32) {
	p.bees[bee.ID] += qty
	p.beeCount += qty
	p.nectarUsed += bee.NectarConsumption * uint64(qty)
	power := bee.HoneyPower * uint64(qty)
	p.honeyPower += power
	c.totalPower += power
}

func (c *Chain) buyBee(from common.Address, id int, qty uint32) error {
	p := c.player(from)
	if !p.initialized {
		return errors.New("not initialized")
	}
	bee, err := c.catalog.Bee(id)
	if err != nil {
		return err
	}
	if qty == 0 {
		return errors.New("zero quantity")
	}
	if bee.IsFree() && (qty != 1 || p.bees[id] > 0) {
		return errors.New("free bee already claimed")
	}
	hive := c.catalog.MustHive(int(p.hiveLevel))
	if uint64(p.beeCount)+uint64(qty) > uint64(hive.Capacity) {
		return errors.New("hive full")
	}
	if p.nectarUsed+bee.NectarConsumption*uint64(qty) > hive.NectarOutput {
		return errors.New("not enough nectar")
	}
	cost := new(big.Int).Mul(bee.CostHoney, new(big.Int).SetUint64(uint64(qty)))
	if err := c.spend(from, cost); err != nil {
		return err
	}
	c.addBees(p, bee, qty)
	return nil
}

func (c *Chain) upgradeHive(from common.Address) error {
	p := c.player(from)
	if !p.initialized {
		return errors.New("not initialized")
	}
	next, ok := c.catalog.NextHive(int(p.hiveLevel))
	if !ok {
		return errors.New("max level")
	}
	now := c.now().Unix()
	if now < p.nextUpgradeTime {
		return fmt.Errorf("cooldown active for %ds", p.nextUpgradeTime-now)
	}
	if err := c.spend(from, next.CostHoney); err != nil {
		return err
	}
	p.hiveLevel = uint32(next.Level)
	p.nextUpgradeTime = now + int64(c.rules.Economy.CooldownDuration/time.Second)
	return nil
}

func (c *Chain) claim(from common.Address) error {
	p := c.player(from)
	if !p.initialized {
		return errors.New("not initialized")
	}
	if p.pending.Sign() <= 0 {
		return errors.New("nothing to claim")
	}
	amount := new(big.Int).Set(p.pending)
	p.pending.SetInt64(0)
	c.balance(c.honey, from).Add(c.balance(c.honey, from), amount)
	c.supply.Add(c.supply, amount)
	return nil
}

func (c *Chain) waitMined(hash common.Hash) error {
	c.mu.Lock()
	rc, ok := c.receipts[hash]
	c.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: unknown transaction %s", chain.ErrChainCall, hash.Hex())
	}
	if rc.failed {
		return fmt.Errorf("%w: %s: %s", chain.ErrReverted, hash.Hex(), rc.reason)
	}
	return nil
}
