package economy

import (
	"errors"
	"math/big"
	"testing"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rony4d/go-honey-hive/honey"
	"github.com/rony4d/go-honey-hive/honey/catalog"
	"github.com/rony4d/go-honey-hive/inter"
)

func mustWei(t *testing.T, s string) *big.Int {
	t.Helper()
	w, err := inter.ParseAmount(s)
	require.NoError(t, err)
	return w
}

// TestPlayerShare_coldNetwork verifies the zero-power network never divides by zero.
func TestPlayerShare_coldNetwork(t *testing.T) {
	for _, power := range []uint64{0, 1, 500} {
		got := PlayerShare(inter.PlayerState{HoneyPower: power}, inter.NetworkState{})
		assert.Equal(t, 0.0, got)
	}
}

// TestPlayerShare_bounds checks 0 <= share <= 100 whenever power <= total.
func TestPlayerShare_bounds(t *testing.T) {
	tests := []struct {
		power, total uint64
		want         float64
	}{
		{0, 1000, 0},
		{10, 1000, 1},
		{500, 1000, 50},
		{1000, 1000, 100},
		{1, 3, 100.0 / 3},
	}
	for _, tt := range tests {
		got := PlayerShare(inter.PlayerState{HoneyPower: tt.power}, inter.NetworkState{TotalHoneyPower: tt.total})
		assert.InDelta(t, tt.want, got, 1e-12)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
}

func TestCurrentEmissionRate(t *testing.T) {
	rules := honey.DefaultEconomyRules()

	// Nothing read yet: fall back to the configured base reward.
	assert.Equal(t, 2.3, CurrentEmissionRate(inter.NetworkState{}, rules))
	assert.Equal(t, 2.3, CurrentEmissionRate(inter.NetworkState{RewardPerBlock: new(big.Int)}, rules))

	// A reported rate wins.
	got := CurrentEmissionRate(inter.NetworkState{RewardPerBlock: mustWei(t, "1.15")}, rules)
	assert.Equal(t, 1.15, got)
}

// TestHalvingSchedule_epochBoundary reproduces the documented boundary case.
func TestHalvingSchedule_epochBoundary(t *testing.T) {
	rules := honey.DefaultEconomyRules()

	h := HalvingSchedule(4_200_000, 0, rules)
	assert.Equal(t, uint64(1), h.Epoch)
	assert.Equal(t, idx.Block(8_400_000), h.NextHalvingBlock)
	assert.Equal(t, idx.Block(4_200_000), h.BlocksUntilHalving)
	assert.InDelta(t, 4_200_000.0/86400.0, h.Days, 1e-9)
}

func TestHalvingSchedule_beforeStart(t *testing.T) {
	rules := honey.DefaultEconomyRules()

	h := HalvingSchedule(100, 1_000, rules)
	assert.Equal(t, idx.Block(0), h.BlocksSinceStart)
	assert.Equal(t, uint64(0), h.Epoch)
	assert.Equal(t, idx.Block(1_000+4_200_000), h.NextHalvingBlock)
	assert.Equal(t, idx.Block(4_200_000+900), h.BlocksUntilHalving)
}

// TestHalvingSchedule_monotonic walks across two epoch boundaries and checks the
// countdown strictly decreases inside an epoch and resets exactly at a boundary.
func TestHalvingSchedule_monotonic(t *testing.T) {
	rules := honey.DefaultEconomyRules()
	rules.HalvingInterval = 10
	const start = idx.Block(5)

	prev := HalvingSchedule(start, start, rules)
	for b := start + 1; b < start+30; b++ {
		h := HalvingSchedule(b, start, rules)
		if (b-start)%10 == 0 {
			assert.Greater(t, uint64(h.BlocksUntilHalving), uint64(prev.BlocksUntilHalving), "block %d", b)
			assert.Equal(t, idx.Block(10), h.BlocksUntilHalving)
			assert.Equal(t, prev.Epoch+1, h.Epoch)
		} else {
			assert.Less(t, uint64(h.BlocksUntilHalving), uint64(prev.BlocksUntilHalving), "block %d", b)
			assert.Equal(t, prev.Epoch, h.Epoch)
		}
		prev = h
	}
}

func TestHalvingSchedule_daysUseBlockRate(t *testing.T) {
	rules := honey.DefaultEconomyRules()
	rules.BlocksPerSecond = 2

	h := HalvingSchedule(0, 0, rules)
	assert.InDelta(t, 4_200_000.0/(86400.0*2), h.Days, 1e-9)

	rules.HalvingInterval = 0
	assert.Equal(t, Halving{}, HalvingSchedule(123, 0, rules))
}

// TestRates_endToEnd is the reference scenario: 10 of 1000 power at 2.3 HONEY per block.
func TestRates_endToEnd(t *testing.T) {
	rules := honey.DefaultEconomyRules()
	s := inter.Snapshot{
		Player:  inter.PlayerState{HoneyPower: 10},
		Network: inter.NetworkState{TotalHoneyPower: 1000, RewardPerBlock: mustWei(t, "2.3")},
	}

	assert.InDelta(t, 0.023, ProductionRate(s, rules), 1e-12)
	assert.InDelta(t, 82.8, HourlyRate(s, rules), 1e-9)
}

// TestCalculator_idempotent calls every function twice on the same snapshot
// and expects bit-identical results.
func TestCalculator_idempotent(t *testing.T) {
	calc := NewCalculator(catalog.Default(), honey.DefaultEconomyRules())
	s := inter.Snapshot{
		Player: inter.PlayerState{
			HoneyPower:   37,
			HiveLevel:    1,
			BeeCount:     3,
			NectarUsed:   22,
			BeeBalances:  map[int]uint32{0: 2, 1: 1},
			PendingHoney: mustWei(t, "1.5"),
		},
		Network: inter.NetworkState{
			TotalHoneyPower: 4111,
			RewardPerBlock:  mustWei(t, "2.3"),
			CurrentBlock:    1_234_567,
			StartBlock:      1_000,
		},
	}
	before := s.Copy()

	first := calc.Compute(s)
	second := calc.Compute(s)
	assert.Equal(t, first, second)
	assert.Equal(t, before, s.Copy(), "snapshot must not be modified")

	assert.Equal(t, PlayerShare(s.Player, s.Network), PlayerShare(s.Player, s.Network))
	assert.Equal(t, HourlyRate(s, calc.Rules), HourlyRate(s, calc.Rules))
}

func TestViewHive(t *testing.T) {
	cat := catalog.Default()

	v, err := ViewHive(inter.PlayerState{HiveLevel: 0, BeeCount: 4, NectarUsed: 25}, cat)
	require.NoError(t, err)
	assert.Equal(t, "Starter Hive", v.Current.Name)
	assert.True(t, v.HasNext)
	assert.Equal(t, "Garden Hive", v.Next.Name)
	assert.Equal(t, int64(2), v.SlotsLeft)
	assert.Equal(t, int64(15), v.NectarLeft)

	v, err = ViewHive(inter.PlayerState{HiveLevel: uint32(cat.MaxLevel())}, cat)
	require.NoError(t, err)
	assert.False(t, v.HasNext)

	_, err = ViewHive(inter.PlayerState{HiveLevel: 99}, cat)
	assert.True(t, errors.Is(err, catalog.ErrInvalidHiveLevel))
}

func TestCompute_unknownHive(t *testing.T) {
	calc := NewCalculator(catalog.Default(), honey.DefaultEconomyRules())
	st := calc.Compute(inter.Snapshot{Player: inter.PlayerState{HiveLevel: 42}})
	assert.False(t, st.HiveKnown)
	assert.Equal(t, 2.3, st.EmissionRate)
}

func TestFormatCooldown(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatCooldown(0))
	assert.Equal(t, "00:00:00", FormatCooldown(-5))
	assert.Equal(t, "01:01:01", FormatCooldown(3661))
	assert.Equal(t, "24:00:00", FormatCooldown(86400))
}

func TestSpendSplit(t *testing.T) {
	rules := honey.DefaultEconomyRules()

	burned, kept := SpendSplit(inter.HoneyToWei(100), rules)
	assert.Equal(t, inter.HoneyToWei(75).String(), burned.String())
	assert.Equal(t, inter.HoneyToWei(25).String(), kept.String())

	burned, kept = SpendSplit(nil, rules)
	assert.Equal(t, 0, burned.Sign())
	assert.Equal(t, 0, kept.Sign())
}
