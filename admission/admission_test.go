package admission

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-honey-hive/honey"
	"github.com/rony4d/go-honey-hive/honey/catalog"
	"github.com/rony4d/go-honey-hive/inter"
)

// freeCatalog returns a catalog whose bee 0 is free, as in deployments that
// hand out a starter bee.
func freeCatalog() *catalog.Catalog {
	bees := append([]catalog.BeeType{{Name: "Free Bee", HoneyPower: 5, NectarConsumption: 5}}, catalog.DefaultBeeTypes()...)
	return catalog.MustNew(bees, catalog.DefaultHiveLevels())
}

func snapshot(level uint32, bees uint32, nectar uint64, honeyTokens uint64) inter.Snapshot {
	s := inter.EmptySnapshot([20]byte{1})
	s.Player.Initialized = true
	s.Player.HiveLevel = level
	s.Player.BeeCount = bees
	s.Player.NectarUsed = nectar
	s.Player.HoneyBalance = inter.HoneyToWei(honeyTokens)
	return s
}

// TestCanBuyBee_hiveFull: a full starter hive (6/6) refuses any quantity of any bee.
func TestCanBuyBee_hiveFull(t *testing.T) {
	cat := catalog.Default()
	s := snapshot(0, 6, 0, 1_000_000)

	for id := 0; id < cat.NumBeeTypes(); id++ {
		for _, qty := range []uint32{1, 2, 10} {
			res, err := CanBuyBee(id, qty, s, cat)
			require.NoError(t, err)
			assert.True(t, res.Has(HiveFull), "bee %d qty %d", id, qty)
			assert.False(t, res.OK())
		}
	}
}

// TestCanBuyBee_freeBeeOncePerType claims the free bee, then tries again.
func TestCanBuyBee_freeBeeOncePerType(t *testing.T) {
	cat := freeCatalog()
	s := snapshot(0, 0, 0, 0)

	res, err := CanBuyBee(0, 1, s, cat)
	require.NoError(t, err)
	assert.True(t, res.OK(), res.String())
	assert.Equal(t, 0, res.Cost.Sign())

	s.Player.BeeBalances = map[int]uint32{0: 1}
	s.Player.BeeCount = 1
	s.Player.NectarUsed = 5
	res, err = CanBuyBee(0, 1, s, cat)
	require.NoError(t, err)
	assert.Equal(t, []Reason{FreeBeeAlreadyClaimed}, res.Reasons)
	assert.True(t, FreeBeeAlreadyClaimed.Terminal())
}

func TestCanBuyBee_reasons(t *testing.T) {
	cat := catalog.Default()

	tests := []struct {
		name  string
		bee   int
		qty   uint32
		snap  inter.Snapshot
		want  []Reason
		check func(t *testing.T, res Result)
	}{
		{
			name: "affordable worker",
			bee:  0, qty: 2,
			snap: snapshot(0, 0, 0, 24),
			want: nil,
			check: func(t *testing.T, res Result) {
				assert.Equal(t, inter.HoneyToWei(24).String(), res.Cost.String())
				assert.Equal(t, uint64(10), res.Nectar)
			},
		},
		{
			name: "one wei short",
			bee:  0, qty: 1,
			snap: func() inter.Snapshot {
				s := snapshot(0, 0, 0, 12)
				s.Player.HoneyBalance.Sub(s.Player.HoneyBalance, big.NewInt(1))
				return s
			}(),
			want: []Reason{InsufficientHoney},
		},
		{
			name: "nectar exhausted",
			bee:  1, qty: 1,
			snap: snapshot(0, 2, 30, 100),
			want: []Reason{InsufficientNectar},
		},
		{
			name: "every condition fails",
			bee:  3, qty: 7,
			snap: snapshot(0, 1, 0, 0),
			want: []Reason{InsufficientHoney, HiveFull, InsufficientNectar},
		},
		{
			name: "zero quantity",
			bee:  0, qty: 0,
			snap: snapshot(0, 0, 0, 100),
			want: []Reason{InvalidQuantity},
		},
		{
			name: "exact fit in a bigger hive",
			bee:  0, qty: 4,
			snap: snapshot(1, 6, 60, 48),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := CanBuyBee(tt.bee, tt.qty, tt.snap, cat)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Reasons, res.String())
			if tt.check != nil {
				tt.check(t, res)
			}
		})
	}
}

func TestCanBuyBee_catalogMisuse(t *testing.T) {
	cat := catalog.Default()

	_, err := CanBuyBee(99, 1, snapshot(0, 0, 0, 0), cat)
	assert.True(t, errors.Is(err, catalog.ErrInvalidBeeType))

	_, err = CanBuyBee(0, 1, snapshot(77, 0, 0, 0), cat)
	assert.True(t, errors.Is(err, catalog.ErrInvalidHiveLevel))
}

// TestCanUpgradeHive_maxLevel is terminal regardless of balance or cooldown.
func TestCanUpgradeHive_maxLevel(t *testing.T) {
	cat := catalog.Default()
	now := time.Unix(1_700_000_000, 0)

	for _, s := range []inter.Snapshot{
		snapshot(uint32(cat.MaxLevel()), 0, 0, 0),
		snapshot(uint32(cat.MaxLevel()), 0, 0, 1_000_000),
		func() inter.Snapshot {
			s := snapshot(uint32(cat.MaxLevel()), 0, 0, 1_000_000)
			s.Player.NextUpgradeTime = now.Unix() + 3600
			return s
		}(),
	} {
		res, err := CanUpgradeHive(s, cat, now)
		require.NoError(t, err)
		assert.Equal(t, []Reason{MaxLevelReached}, res.Reasons)
		assert.True(t, MaxLevelReached.Terminal())
	}
}

// TestCanUpgradeHive_cooldown reports the remaining seconds even when affordable.
func TestCanUpgradeHive_cooldown(t *testing.T) {
	cat := catalog.Default()
	now := time.Unix(1_700_000_000, 0)

	s := snapshot(0, 0, 0, 1_000)
	s.Player.NextUpgradeTime = now.Unix() + 5_400

	res, err := CanUpgradeHive(s, cat, now)
	require.NoError(t, err)
	assert.Equal(t, []Reason{OnCooldown}, res.Reasons)
	assert.Equal(t, 5_400*time.Second, res.CooldownRemaining)
	assert.Contains(t, res.String(), "5400s left")

	// Exactly at the boundary the cooldown has elapsed.
	res, err = CanUpgradeHive(s, cat, time.Unix(s.Player.NextUpgradeTime, 0))
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, inter.HoneyToWei(60).String(), res.Cost.String())
}

func TestCanUpgradeHive_insufficientHoney(t *testing.T) {
	cat := catalog.Default()
	now := time.Unix(1_700_000_000, 0)

	res, err := CanUpgradeHive(snapshot(2, 0, 0, 319), cat, now)
	require.NoError(t, err)
	assert.Equal(t, []Reason{InsufficientHoney}, res.Reasons)

	_, err = CanUpgradeHive(snapshot(12, 0, 0, 0), cat, now)
	assert.True(t, errors.Is(err, catalog.ErrInvalidHiveLevel))
}

func TestCanInitialize(t *testing.T) {
	rules := honey.DefaultEconomyRules()

	s := inter.EmptySnapshot([20]byte{2})
	res := CanInitialize(s, rules)
	assert.Equal(t, []Reason{InsufficientEth}, res.Reasons)

	s.Player.EthBalance = rules.InitEthFee
	assert.True(t, CanInitialize(s, rules).OK())

	s.Player.Initialized = true
	assert.Equal(t, []Reason{AlreadyInitialized}, CanInitialize(s, rules).Reasons)
}

func TestCanClaim(t *testing.T) {
	s := inter.EmptySnapshot([20]byte{3})
	assert.Equal(t, []Reason{NotInitialized, NothingToClaim}, CanClaim(s).Reasons)

	s.Player.Initialized = true
	assert.Equal(t, []Reason{NothingToClaim}, CanClaim(s).Reasons)

	s.Player.PendingHoney = inter.HoneyToWei(1)
	assert.True(t, CanClaim(s).OK())
	assert.Equal(t, "ok", CanClaim(s).String())
}
