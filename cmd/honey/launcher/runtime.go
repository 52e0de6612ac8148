package launcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-honey-hive/actions"
	"github.com/rony4d/go-honey-hive/chain"
	"github.com/rony4d/go-honey-hive/chain/fake"
	"github.com/rony4d/go-honey-hive/economy"
	"github.com/rony4d/go-honey-hive/gamestate"
	"github.com/rony4d/go-honey-hive/honey"
	"github.com/rony4d/go-honey-hive/honey/catalog"
)

// SimPlayer is the wallet used in --sim mode when none is configured.
var SimPlayer = common.HexToAddress("0x000000000000000000000000000000000000f00d")

// ErrNoAccount is returned when neither a key nor an address is configured.
var ErrNoAccount = errors.New("no wallet: set --key, HONEY_PRIVATE_KEY or --account")

// runtime is the assembled client: one chain collaborator, the snapshot
// store it feeds and the executor acting on it.
type runtime struct {
	cfg     Config
	log     *logrus.Logger
	rules   honey.Rules
	catalog *catalog.Catalog
	calc    *economy.Calculator
	client  chain.Client
	store   *gamestate.Store
	syncer  *chain.Syncer
	exec    *actions.Executor
	sim     *fake.Chain

	closers []func()
}

func newRuntime(ctx context.Context, cfg Config, log *logrus.Logger) (*runtime, error) {
	rules, err := cfg.Rules()
	if err != nil {
		return nil, err
	}
	if cfg.Chain.ContractAddress != "" {
		rules.Contract = common.HexToAddress(cfg.Chain.ContractAddress)
	}

	rt := &runtime{
		cfg:     cfg,
		log:     log,
		rules:   rules,
		catalog: catalog.Default(),
	}
	rt.calc = economy.NewCalculator(rt.catalog, rules.Economy)

	if cfg.Sim {
		err = rt.startSim(ctx)
	} else {
		err = rt.dial(ctx)
	}
	if err != nil {
		return nil, err
	}

	if !cfg.SkipCatalogCheck {
		if err := chain.VerifyCatalog(ctx, rt.client, rt.catalog); err != nil {
			rt.Close()
			return nil, fmt.Errorf("%w (use --skip-catalog-check to ignore)", err)
		}
		log.Debug("Catalog matches contract")
	}

	rt.store = gamestate.New()
	rt.syncer = chain.NewSyncer(rt.client, rt.store, rt.calc, cfg.Chain.RefreshInterval, log)
	rt.exec = actions.NewExecutor(rt.client, rt.store, rt.catalog, rules.Economy, actions.Options{
		Referrer:   common.HexToAddress(cfg.Wallet.Referrer),
		IndexDelay: cfg.Chain.IndexDelay,
	}, log)
	rt.store.Connect(rt.client.Account())

	if cfg.Metrics.Enabled {
		rt.serveMetrics()
	}

	log.WithFields(logrus.Fields{
		"network":  rules.Name,
		"contract": rules.Contract.Hex(),
		"player":   rt.client.Account().Hex(),
		"sim":      cfg.Sim,
	}).Info("Client ready")
	return rt, nil
}

func (rt *runtime) startSim(ctx context.Context) error {
	eth, honeyWei, err := rt.cfg.SimWallet.balances()
	if err != nil {
		return err
	}
	addr := SimPlayer
	if a, err := accountOf(rt.cfg.Wallet); err == nil {
		addr = a
	}
	rt.sim = fake.New(rt.rules, rt.catalog)
	rt.sim.Fund(addr, eth, honeyWei)
	rt.client = rt.sim.Client(addr)

	mineCtx, cancel := context.WithCancel(ctx)
	go rt.sim.Run(mineCtx)
	rt.closers = append(rt.closers, cancel)
	return nil
}

func (rt *runtime) dial(ctx context.Context) error {
	account, err := accountOf(rt.cfg.Wallet)
	if err != nil {
		return err
	}
	chainID := rt.cfg.Chain.ChainID
	if chainID == 0 {
		chainID = rt.rules.NetworkID
	}
	var token common.Address
	if rt.cfg.Chain.TokenAddress != "" {
		token = common.HexToAddress(rt.cfg.Chain.TokenAddress)
	}

	client, err := chain.Dial(ctx, chain.ClientConfig{
		RPCURL:      rt.cfg.Chain.RPCURL,
		Game:        rt.rules.Contract,
		Token:       token,
		PrivateKey:  rt.cfg.Wallet.PrivateKey,
		Account:     account,
		ChainID:     chainID,
		CallTimeout: rt.cfg.Chain.CallTimeout,
	}, rt.log)
	if err != nil {
		return err
	}
	rt.client = client
	rt.closers = append(rt.closers, client.Close)
	return nil
}

// accountOf derives the player address from the key, or takes the
// configured read-only address.
func accountOf(w WalletConfig) (common.Address, error) {
	if w.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(w.PrivateKey, "0x"))
		if err != nil {
			return common.Address{}, fmt.Errorf("parse private key: %w", err)
		}
		return crypto.PubkeyToAddress(key.PublicKey), nil
	}
	if w.Address != "" {
		return common.HexToAddress(w.Address), nil
	}
	return common.Address{}, ErrNoAccount
}

func (rt *runtime) serveMetrics() {
	addr := net.JoinHostPort(rt.cfg.Metrics.Addr, strconv.Itoa(rt.cfg.Metrics.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           newRouter(rt.store, rt.calc),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rt.log.WithError(err).Error("Metrics server stopped")
		}
	}()
	rt.log.WithField("addr", addr).Info("Serving metrics")

	rt.closers = append(rt.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
}

// Close stops everything newRuntime started, last started first.
func (rt *runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}
