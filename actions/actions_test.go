package actions

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-honey-hive/admission"
	"github.com/rony4d/go-honey-hive/chain"
	"github.com/rony4d/go-honey-hive/chain/fake"
	"github.com/rony4d/go-honey-hive/economy"
	"github.com/rony4d/go-honey-hive/gamestate"
	"github.com/rony4d/go-honey-hive/honey"
	"github.com/rony4d/go-honey-hive/honey/catalog"
	"github.com/rony4d/go-honey-hive/inter"
)

var wallet = common.HexToAddress("0x000000000000000000000000000000000000beef")

type env struct {
	chain *fake.Chain
	store *gamestate.Store
	exec  *Executor
}

func newEnv(t *testing.T, eth, honeyWei *big.Int) env {
	t.Helper()
	rules := honey.SimNetRules()
	cat := catalog.Default()
	c := fake.New(rules, cat)
	c.Fund(wallet, eth, honeyWei)

	log, _ := test.NewNullLogger()
	cl := c.Client(wallet)
	store := gamestate.New()
	chain.NewSyncer(cl, store, economy.NewCalculator(cat, rules.Economy), time.Second, log)
	store.Connect(wallet)

	return env{
		chain: c,
		store: store,
		exec:  NewExecutor(cl, store, cat, rules.Economy, Options{}, log),
	}
}

func TestInitialize(t *testing.T) {
	require := require.New(t)
	e := newEnv(t, inter.HoneyToWei(1), nil)
	ctx := context.Background()

	out := e.exec.Initialize(ctx, true)
	require.Equal(Confirmed, out.Status, out.String())
	require.NotEqual(common.Hash{}, out.TxHash)
	require.NoError(out.RefreshErr)
	require.True(e.store.Current().Player.Initialized)
	require.Equal(uint32(1), e.store.Current().Player.Owned(0))

	again := e.exec.Initialize(ctx, true)
	require.Equal(Rejected, again.Status)
	require.True(again.Admission.Has(admission.AlreadyInitialized))
	require.Equal(common.Hash{}, again.TxHash)
	require.NotEqual(out.ID, again.ID)
}

func TestInitialize_insufficientEth(t *testing.T) {
	e := newEnv(t, big.NewInt(1), nil)

	out := e.exec.Initialize(context.Background(), true)
	assert.Equal(t, Rejected, out.Status)
	assert.Equal(t, []admission.Reason{admission.InsufficientEth}, out.Admission.Reasons)
	assert.Contains(t, out.String(), "not enough ETH")
}

func TestBuyBee_approvesThenBuys(t *testing.T) {
	require := require.New(t)
	e := newEnv(t, inter.HoneyToWei(1), inter.HoneyToWei(100))
	ctx := context.Background()
	require.Equal(Confirmed, e.exec.Initialize(ctx, false).Status)

	out := e.exec.BuyBee(ctx, 1, 2)
	require.Equal(Confirmed, out.Status, out.String())
	require.NotEqual(common.Hash{}, out.ApproveTx)
	require.Equal(inter.HoneyToWei(72).String(), out.Admission.Cost.String())
	require.Equal(inter.HoneyToWei(54).String(), out.Burned.String())

	snap := e.store.Current()
	require.Equal(uint32(2), snap.Player.Owned(1))
	require.Equal(inter.HoneyToWei(28).String(), snap.Player.HoneyBalance.String())
}

func TestBuyBee_rejectedLocally(t *testing.T) {
	require := require.New(t)
	e := newEnv(t, inter.HoneyToWei(1), inter.HoneyToWei(10))
	ctx := context.Background()
	require.Equal(Confirmed, e.exec.Initialize(ctx, false).Status)
	block := e.chain.Block()

	// 9 workers: over the 6 slots, the 40 nectar and the 10 HONEY.
	out := e.exec.BuyBee(ctx, 0, 9)
	require.Equal(Rejected, out.Status)
	require.ElementsMatch([]admission.Reason{
		admission.InsufficientHoney,
		admission.HiveFull,
		admission.InsufficientNectar,
	}, out.Admission.Reasons)
	require.Equal(block, e.chain.Block(), "nothing was sent")
}

func TestSpendingNeedsHive(t *testing.T) {
	require := require.New(t)
	e := newEnv(t, inter.HoneyToWei(1), inter.HoneyToWei(1000))
	ctx := context.Background()
	block := e.chain.Block()

	out := e.exec.BuyBee(ctx, 1, 1)
	require.Equal(Rejected, out.Status)
	require.True(out.Admission.Has(admission.NotInitialized))
	require.Equal(common.Hash{}, out.ApproveTx)
	require.Nil(out.Burned)

	out = e.exec.UpgradeHive(ctx)
	require.Equal(Rejected, out.Status)
	require.Equal([]admission.Reason{admission.NotInitialized}, out.Admission.Reasons)

	require.Equal(block, e.chain.Block(), "no approval or purchase was sent")
}

func TestBuyBee_invalidBeeType(t *testing.T) {
	e := newEnv(t, inter.HoneyToWei(1), nil)
	require.Equal(t, Confirmed, e.exec.Initialize(context.Background(), false).Status)

	out := e.exec.BuyBee(context.Background(), 99, 1)
	assert.Equal(t, Failed, out.Status)
	assert.ErrorIs(t, out.Err, catalog.ErrInvalidBeeType)
}

func TestUpgradeHive_cooldown(t *testing.T) {
	require := require.New(t)
	e := newEnv(t, inter.HoneyToWei(1), inter.HoneyToWei(1000))
	now := time.Unix(1_700_000_000, 0)
	e.chain.SetClock(func() time.Time { return now })
	e.exec.now = func() time.Time { return now }
	ctx := context.Background()
	require.Equal(Confirmed, e.exec.Initialize(ctx, false).Status)

	require.Equal(Confirmed, e.exec.UpgradeHive(ctx).Status)
	require.Equal(uint32(1), e.store.Current().Player.HiveLevel)

	out := e.exec.UpgradeHive(ctx)
	require.Equal(Rejected, out.Status)
	require.True(out.Admission.Has(admission.OnCooldown))
	require.Equal(honey.SimNetRules().Economy.CooldownDuration, out.Admission.CooldownRemaining)
}

func TestClaim(t *testing.T) {
	require := require.New(t)
	e := newEnv(t, inter.HoneyToWei(1), nil)
	ctx := context.Background()

	out := e.exec.Claim(ctx)
	require.Equal(Rejected, out.Status)
	require.True(out.Admission.Has(admission.NotInitialized))
	require.True(out.Admission.Has(admission.NothingToClaim))

	require.Equal(Confirmed, e.exec.Initialize(ctx, true).Status)
	e.chain.Mine(10)

	out = e.exec.Claim(ctx)
	require.Equal(Confirmed, out.Status, out.String())
	snap := e.store.Current()
	require.Positive(snap.Player.HoneyBalance.Sign())
}

func TestRevertLeavesSnapshot(t *testing.T) {
	require := require.New(t)
	e := newEnv(t, inter.HoneyToWei(1), nil)
	ctx := context.Background()
	require.Equal(Confirmed, e.exec.Initialize(ctx, true).Status)
	e.chain.Mine(3)
	require.NoError(e.store.RequestRefresh(ctx))

	e.chain.RevertNext(fake.OpClaim, "paused")
	before := e.store.Current().Player.HoneyBalance.String()

	out := e.exec.Claim(ctx)
	require.Equal(Failed, out.Status)
	require.ErrorIs(out.Err, chain.ErrReverted)
	require.NotEqual(common.Hash{}, out.TxHash)
	require.Equal(before, e.store.Current().Player.HoneyBalance.String())
	require.True(e.store.Current().Player.Initialized)
}

func TestChainFailure(t *testing.T) {
	e := newEnv(t, inter.HoneyToWei(1), nil)
	e.chain.FailNext(fake.OpInitialize, nil)

	out := e.exec.Initialize(context.Background(), true)
	assert.Equal(t, Failed, out.Status)
	assert.ErrorIs(t, out.Err, chain.ErrChainCall)
	assert.ErrorIs(t, out.Err, fake.ErrInjected)
	assert.Equal(t, common.Hash{}, out.TxHash)
}

func TestApprovalFailure(t *testing.T) {
	e := newEnv(t, inter.HoneyToWei(1), inter.HoneyToWei(100))
	ctx := context.Background()
	require.Equal(t, Confirmed, e.exec.Initialize(ctx, false).Status)
	e.chain.RevertNext(fake.OpApprove, "nope")

	out := e.exec.BuyBee(ctx, 0, 1)
	assert.Equal(t, Failed, out.Status)
	assert.ErrorIs(t, out.Err, ErrApprovalFailed)
	assert.ErrorIs(t, out.Err, chain.ErrReverted)
	assert.Equal(t, common.Hash{}, out.TxHash)
}

func TestNoWallet(t *testing.T) {
	e := newEnv(t, inter.HoneyToWei(1), nil)
	e.store.Disconnect()

	out := e.exec.Claim(context.Background())
	assert.Equal(t, Failed, out.Status)
	assert.ErrorIs(t, out.Err, ErrNoWallet)
}
