package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-honey-hive/honey/contracts/honeygame"
	"github.com/rony4d/go-honey-hive/honey/contracts/honeytoken"
)

// receiptPollInterval is how often WaitMined polls for a receipt of a
// transaction this client did not send itself.
const receiptPollInterval = time.Second

// ClientConfig configures an EthClient.
type ClientConfig struct {
	RPCURL      string         // http(s):// or ws(s):// endpoint
	Game        common.Address // HoneyGame contract
	Token       common.Address // HONEY token, discovered from the game when zero
	PrivateKey  string         // hex secp256k1 key; empty for a read-only client
	Account     common.Address // read-only account when PrivateKey is empty
	ChainID     uint64         // 0 asks the node
	CallTimeout time.Duration  // per-call timeout, 0 for none
}

// EthClient is a Client backed by a JSON-RPC node.
type EthClient struct {
	rpc     *ethclient.Client
	game    *honeygame.HoneyGame
	key     *ecdsa.PrivateKey
	account common.Address
	auth    *bind.TransactOpts
	timeout time.Duration
	log     logrus.FieldLogger

	mu      sync.Mutex
	token   *honeytoken.HoneyToken
	pending map[common.Hash]*types.Transaction
}

// Dial connects to cfg.RPCURL and binds the game contract.
func Dial(ctx context.Context, cfg ClientConfig, log logrus.FieldLogger) (*EthClient, error) {
	rpc, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, callErr("dial", err)
	}
	c := &EthClient{
		rpc:     rpc,
		game:    honeygame.New(cfg.Game, rpc),
		account: cfg.Account,
		timeout: cfg.CallTimeout,
		log:     log.WithField("rpc", cfg.RPCURL),
		pending: make(map[common.Hash]*types.Transaction),
	}
	if cfg.Token != (common.Address{}) {
		c.token = honeytoken.New(cfg.Token, rpc)
	}

	if cfg.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
		if err != nil {
			rpc.Close()
			return nil, fmt.Errorf("parse private key: %w", err)
		}
		chainID := new(big.Int).SetUint64(cfg.ChainID)
		if cfg.ChainID == 0 {
			if chainID, err = rpc.ChainID(ctx); err != nil {
				rpc.Close()
				return nil, callErr("chainId", err)
			}
		}
		auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
		if err != nil {
			rpc.Close()
			return nil, fmt.Errorf("create transactor: %w", err)
		}
		c.key = key
		c.auth = auth
		c.account = auth.From
	}

	c.log.WithFields(logrus.Fields{
		"game":      cfg.Game.Hex(),
		"account":   c.account.Hex(),
		"read_only": c.auth == nil,
	}).Info("Connected to chain")
	return c, nil
}

// Close releases the RPC connection.
func (c *EthClient) Close() {
	c.rpc.Close()
}

func (c *EthClient) callCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

func (c *EthClient) callOpts(ctx context.Context) *bind.CallOpts {
	return &bind.CallOpts{Context: ctx, From: c.account}
}

// Account implements Writer.
func (c *EthClient) Account() common.Address { return c.account }

// GameAddress implements Writer.
func (c *EthClient) GameAddress() common.Address { return c.game.Address() }

// BlockNumber implements Reader.
func (c *EthClient) BlockNumber(ctx context.Context) (idx.Block, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	n, err := c.rpc.BlockNumber(ctx)
	if err != nil {
		return 0, callErr("blockNumber", err)
	}
	return idx.Block(n), nil
}

// Player implements Reader.
func (c *EthClient) Player(ctx context.Context, addr common.Address) (honeygame.PlayerRecord, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	p, err := c.game.Players(c.callOpts(ctx), addr)
	return p, callErr("players", err)
}

// BeeBalance implements Reader.
func (c *EthClient) BeeBalance(ctx context.Context, addr common.Address, beeTypeID int) (uint32, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	n, err := c.game.BeeBalances(c.callOpts(ctx), addr, big.NewInt(int64(beeTypeID)))
	return n, callErr("beeBalances", err)
}

// RewardPerBlock implements Reader.
func (c *EthClient) RewardPerBlock(ctx context.Context, block idx.Block) (*big.Int, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	v, err := c.game.RewardPerBlock(c.callOpts(ctx), new(big.Int).SetUint64(uint64(block)))
	return v, callErr("rewardPerBlock", err)
}

// TotalHoneyPower implements Reader.
func (c *EthClient) TotalHoneyPower(ctx context.Context) (*big.Int, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	v, err := c.game.TotalHoneyPower(c.callOpts(ctx))
	return v, callErr("totalHoneyPower", err)
}

// PendingHoney implements Reader.
func (c *EthClient) PendingHoney(ctx context.Context, addr common.Address) (*big.Int, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	v, err := c.game.PendingHoney(c.callOpts(ctx), addr)
	return v, callErr("pendingHoney", err)
}

// StartBlock implements Reader.
func (c *EthClient) StartBlock(ctx context.Context) (idx.Block, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	v, err := c.game.StartBlock(c.callOpts(ctx))
	if err != nil {
		return 0, callErr("startBlock", err)
	}
	if !v.IsUint64() {
		return 0, callErr("startBlock", fmt.Errorf("value %s out of range", v))
	}
	return idx.Block(v.Uint64()), nil
}

// TokenAddress implements Reader. The address is read from HONEY() once
// and cached.
func (c *EthClient) TokenAddress(ctx context.Context) (common.Address, error) {
	tok, err := c.tokenBinding(ctx)
	if err != nil {
		return common.Address{}, err
	}
	return tok.Address(), nil
}

func (c *EthClient) tokenBinding(ctx context.Context) (*honeytoken.HoneyToken, error) {
	c.mu.Lock()
	tok := c.token
	c.mu.Unlock()
	if tok != nil {
		return tok, nil
	}

	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	addr, err := c.game.Honey(c.callOpts(ctx))
	if err != nil {
		return nil, callErr("HONEY", err)
	}
	tok = honeytoken.New(addr, c.rpc)

	c.mu.Lock()
	c.token = tok
	c.mu.Unlock()
	c.log.WithField("token", addr.Hex()).Debug("Discovered HONEY token")
	return tok, nil
}

// TokenBalance implements Reader.
func (c *EthClient) TokenBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	tok, err := c.tokenBinding(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	v, err := tok.BalanceOf(c.callOpts(ctx), addr)
	return v, callErr("balanceOf", err)
}

// TokenSupply implements Reader.
func (c *EthClient) TokenSupply(ctx context.Context) (*big.Int, error) {
	tok, err := c.tokenBinding(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	v, err := tok.TotalSupply(c.callOpts(ctx))
	return v, callErr("totalSupply", err)
}

// Allowance implements Reader.
func (c *EthClient) Allowance(ctx context.Context, owner, spender common.Address) (*big.Int, error) {
	tok, err := c.tokenBinding(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	v, err := tok.Allowance(c.callOpts(ctx), owner, spender)
	return v, callErr("allowance", err)
}

// EthBalance implements Reader.
func (c *EthClient) EthBalance(ctx context.Context, addr common.Address) (*big.Int, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	v, err := c.rpc.BalanceAt(ctx, addr, nil)
	return v, callErr("getBalance", err)
}

// BeeTypeDef implements Reader.
func (c *EthClient) BeeTypeDef(ctx context.Context, id int) (honeygame.BeeTypeRecord, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	v, err := c.game.BeeTypes(c.callOpts(ctx), big.NewInt(int64(id)))
	return v, callErr("beeTypes", err)
}

// HiveLevelDef implements Reader.
func (c *EthClient) HiveLevelDef(ctx context.Context, level int) (honeygame.HiveLevelRecord, error) {
	ctx, cancel := c.callCtx(ctx)
	defer cancel()
	v, err := c.game.HiveLevels(c.callOpts(ctx), big.NewInt(int64(level)))
	return v, callErr("hiveLevels", err)
}

// transactOpts returns a per-call copy of the keyed transactor.
func (c *EthClient) transactOpts(ctx context.Context, value *big.Int) (*bind.TransactOpts, error) {
	if c.auth == nil {
		return nil, ErrReadOnly
	}
	opts := *c.auth
	opts.Context = ctx
	opts.Value = value
	return &opts, nil
}

func (c *EthClient) sent(op string, tx *types.Transaction, err error) (common.Hash, error) {
	if err != nil {
		return common.Hash{}, callErr(op, err)
	}
	c.mu.Lock()
	c.pending[tx.Hash()] = tx
	c.mu.Unlock()
	c.log.WithFields(logrus.Fields{"op": op, "tx": tx.Hash().Hex()}).Debug("Transaction sent")
	return tx.Hash(), nil
}

// Initialize implements Writer.
func (c *EthClient) Initialize(ctx context.Context, referrer common.Address, withFreeBee bool, fee *big.Int) (common.Hash, error) {
	opts, err := c.transactOpts(ctx, fee)
	if err != nil {
		return common.Hash{}, err
	}
	tx, err := c.game.Initialize(opts, referrer, withFreeBee)
	return c.sent("initialize", tx, err)
}

// BuyBee implements Writer.
func (c *EthClient) BuyBee(ctx context.Context, beeTypeID int, qty uint32) (common.Hash, error) {
	opts, err := c.transactOpts(ctx, nil)
	if err != nil {
		return common.Hash{}, err
	}
	tx, err := c.game.BuyBee(opts, big.NewInt(int64(beeTypeID)), qty)
	return c.sent("buyBee", tx, err)
}

// UpgradeHive implements Writer.
func (c *EthClient) UpgradeHive(ctx context.Context) (common.Hash, error) {
	opts, err := c.transactOpts(ctx, nil)
	if err != nil {
		return common.Hash{}, err
	}
	tx, err := c.game.UpgradeHive(opts)
	return c.sent("upgradeHive", tx, err)
}

// Claim implements Writer.
func (c *EthClient) Claim(ctx context.Context) (common.Hash, error) {
	opts, err := c.transactOpts(ctx, nil)
	if err != nil {
		return common.Hash{}, err
	}
	tx, err := c.game.Claim(opts)
	return c.sent("claim", tx, err)
}

// Approve implements Writer.
func (c *EthClient) Approve(ctx context.Context, spender common.Address, amount *big.Int) (common.Hash, error) {
	opts, err := c.transactOpts(ctx, nil)
	if err != nil {
		return common.Hash{}, err
	}
	tok, err := c.tokenBinding(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	tx, err := tok.Approve(opts, spender, amount)
	return c.sent("approve", tx, err)
}

// WaitMined implements Writer.
func (c *EthClient) WaitMined(ctx context.Context, hash common.Hash) error {
	c.mu.Lock()
	tx := c.pending[hash]
	delete(c.pending, hash)
	c.mu.Unlock()

	var (
		receipt *types.Receipt
		err     error
	)
	if tx != nil {
		receipt, err = bind.WaitMined(ctx, c.rpc, tx)
	} else {
		receipt, err = c.pollReceipt(ctx, hash)
	}
	if err != nil {
		return callErr("waitMined", err)
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return fmt.Errorf("%w: %s", ErrReverted, hash.Hex())
	}
	return nil
}

func (c *EthClient) pollReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(receiptPollInterval)
	defer ticker.Stop()
	for {
		receipt, err := c.rpc.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			c.log.WithError(err).Trace("Receipt retrieval failed")
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// SubscribeHeads implements HeadNotifier. It needs a websocket or IPC
// endpoint; over plain HTTP the node rejects the subscription.
func (c *EthClient) SubscribeHeads(ctx context.Context, ch chan<- idx.Block) (Subscription, error) {
	headers := make(chan *types.Header, 16)
	sub, err := c.rpc.SubscribeNewHead(ctx, headers)
	if err != nil {
		return nil, callErr("subscribeNewHead", err)
	}
	return forwardHeads(ctx, sub, headers, ch), nil
}

// headSubscription forwards node headers as block numbers. The node's error
// channel delivers a single value, which the forwarding loop consumes, so
// the subscription exposes its own channel and passes the error on.
type headSubscription struct {
	inner ethereum.Subscription
	errc  chan error
	quit  chan struct{}
	once  sync.Once
}

func forwardHeads(ctx context.Context, inner ethereum.Subscription, headers <-chan *types.Header, ch chan<- idx.Block) *headSubscription {
	s := &headSubscription{
		inner: inner,
		errc:  make(chan error, 1),
		quit:  make(chan struct{}),
	}
	go s.loop(ctx, headers, ch)
	return s
}

func (s *headSubscription) loop(ctx context.Context, headers <-chan *types.Header, ch chan<- idx.Block) {
	defer close(s.errc)
	for {
		select {
		case h := <-headers:
			select {
			case ch <- idx.Block(h.Number.Uint64()):
			case <-s.quit:
				return
			case <-ctx.Done():
				return
			}
		case err, ok := <-s.inner.Err():
			if !ok {
				return
			}
			if err == nil {
				err = errors.New("subscription closed by node")
			}
			s.errc <- callErr("subscribeNewHead", err)
			return
		case <-s.quit:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Unsubscribe stops forwarding and closes the node subscription.
func (s *headSubscription) Unsubscribe() {
	s.once.Do(func() {
		close(s.quit)
		s.inner.Unsubscribe()
	})
}

// Err yields the node's subscription error once and is closed when
// forwarding stops.
func (s *headSubscription) Err() <-chan error { return s.errc }
