package economy

import (
	"math/big"

	"github.com/rony4d/go-honey-hive/honey"
	"github.com/rony4d/go-honey-hive/honey/catalog"
	"github.com/rony4d/go-honey-hive/inter"
)

// Stats bundles every derived figure shown on the dashboard.
type Stats struct {
	PlayerShare    float64 // percent of total honey power
	EmissionRate   float64 // HONEY per block, network-wide
	ProductionRate float64 // HONEY per block for the player
	HourlyRate     float64 // HONEY per hour for the player, see HourlyRate
	PendingHoney   float64 // unclaimed HONEY
	HoneyBalance   float64 // wallet HONEY
	EthBalance     float64 // wallet ETH
	TotalMined     float64 // HONEY total supply
	Halving        Halving
	Hive           HiveView
	HiveKnown      bool // false when the reported hive level is outside the catalog
}

// Calculator binds the catalog and rules so callers only pass snapshots.
// It holds no state besides its configuration.
type Calculator struct {
	Catalog *catalog.Catalog
	Rules   honey.EconomyRules
}

// NewCalculator returns a calculator over the given catalog and rules.
func NewCalculator(cat *catalog.Catalog, rules honey.EconomyRules) *Calculator {
	return &Calculator{Catalog: cat, Rules: rules}
}

// Compute derives the full Stats of a snapshot.
func (c *Calculator) Compute(s inter.Snapshot) Stats {
	st := Stats{
		PlayerShare:    PlayerShare(s.Player, s.Network),
		EmissionRate:   CurrentEmissionRate(s.Network, c.Rules),
		ProductionRate: ProductionRate(s, c.Rules),
		HourlyRate:     HourlyRate(s, c.Rules),
		PendingHoney:   inter.WeiToFloat(s.Player.PendingHoney),
		HoneyBalance:   inter.WeiToFloat(s.Player.HoneyBalance),
		EthBalance:     inter.WeiToFloat(s.Player.EthBalance),
		TotalMined:     inter.WeiToFloat(s.Network.TotalHoneyMined),
		Halving:        HalvingSchedule(s.Network.CurrentBlock, s.Network.StartBlock, c.Rules),
	}
	if hv, err := ViewHive(s.Player, c.Catalog); err == nil {
		st.Hive = hv
		st.HiveKnown = true
	}
	return st
}

// SpendSplit splits a HONEY payment into the burned part and the part the
// contract keeps, according to the burn rate.
func SpendSplit(cost *big.Int, rules honey.EconomyRules) (burned, kept *big.Int) {
	cost = inter.CopyAmount(cost)
	rate := new(big.Rat)
	if rate.SetFloat64(rules.BurnRate) == nil || rate.Sign() < 0 {
		rate.SetInt64(0)
	}
	b := new(big.Rat).Mul(new(big.Rat).SetInt(cost), rate)
	burned = new(big.Int).Quo(b.Num(), b.Denom())
	if burned.Cmp(cost) > 0 {
		burned.Set(cost)
	}
	kept = new(big.Int).Sub(cost, burned)
	return burned, kept
}
