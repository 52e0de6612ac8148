// Package admission decides whether a state-changing HoneyGame action is
// worth submitting. It mirrors the contract's own checks so the client can
// refuse doomed transactions early and tell the player exactly why.
//
// The contract stays the final arbiter: an approved action can still be
// reverted on-chain when the snapshot it was checked against is stale.
// Callers must therefore check against the latest snapshot immediately
// before every submission and never reuse an earlier Result.
//
// Admission failures are values (Result.Reasons), not errors. Errors are
// reserved for catalog misuse such as an unknown bee type.

package admission

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/rony4d/go-honey-hive/honey"
	"github.com/rony4d/go-honey-hive/honey/catalog"
	"github.com/rony4d/go-honey-hive/inter"
)

// Reason identifies one failed admission condition.
type Reason string

// Admission failure reasons. Every refusal carries at least one of these.
const (
	InsufficientHoney     Reason = "insufficient_honey"
	HiveFull              Reason = "hive_full"
	InsufficientNectar    Reason = "insufficient_nectar"
	FreeBeeAlreadyClaimed Reason = "free_bee_already_claimed"
	InvalidQuantity       Reason = "invalid_quantity"
	MaxLevelReached       Reason = "max_level_reached"
	OnCooldown            Reason = "on_cooldown"
	AlreadyInitialized    Reason = "already_initialized"
	InsufficientEth       Reason = "insufficient_eth"
	NotInitialized        Reason = "not_initialized"
	NothingToClaim        Reason = "nothing_to_claim"
)

var reasonText = map[Reason]string{
	InsufficientHoney:     "not enough HONEY",
	HiveFull:              "hive full",
	InsufficientNectar:    "not enough nectar",
	FreeBeeAlreadyClaimed: "free bee already claimed",
	InvalidQuantity:       "quantity must be at least 1",
	MaxLevelReached:       "max level reached",
	OnCooldown:            "upgrade on cooldown",
	AlreadyInitialized:    "hive already initialized",
	InsufficientEth:       "not enough ETH for the initialization fee",
	NotInitialized:        "hive not initialized",
	NothingToClaim:        "no honey to claim",
}

// Text returns a short human-readable description of the reason.
func (r Reason) Text() string {
	if s, ok := reasonText[r]; ok {
		return s
	}
	return string(r)
}

// Terminal reports whether retrying later can never succeed.
func (r Reason) Terminal() bool {
	return r == MaxLevelReached || r == AlreadyInitialized || r == FreeBeeAlreadyClaimed
}

// Result is the outcome of one admission check.
type Result struct {
	Reasons []Reason // empty when the action is admitted

	// Cost is the HONEY (buy, upgrade) or ETH (initialize) the action spends, in wei.
	Cost *big.Int

	// Nectar is the nectar budget the purchase consumes.
	Nectar uint64

	// CooldownRemaining is set when Reasons contains OnCooldown.
	CooldownRemaining time.Duration
}

// OK reports whether every condition held.
func (r Result) OK() bool {
	return len(r.Reasons) == 0
}

// Has reports whether the given reason is among the failures.
func (r Result) Has(reason Reason) bool {
	for _, got := range r.Reasons {
		if got == reason {
			return true
		}
	}
	return false
}

// String joins the failure texts, or returns "ok".
func (r Result) String() string {
	if r.OK() {
		return "ok"
	}
	parts := make([]string, 0, len(r.Reasons))
	for _, reason := range r.Reasons {
		text := reason.Text()
		if reason == OnCooldown {
			text = fmt.Sprintf("%s (%ds left)", text, int64(r.CooldownRemaining/time.Second))
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, ", ")
}

func (r *Result) fail(reason Reason) {
	r.Reasons = append(r.Reasons, reason)
}

// CanBuyBee checks a purchase of qty units of the given bee type.
// All of the following must hold:
//   - the HONEY balance covers costHoney * qty
//   - qty fits into the hive's remaining slots
//   - nectarConsumption * qty fits into the remaining nectar budget
//   - a free bee type is only claimable while none of it is owned
//
// An unknown bee type or hive level returns an error wrapping
// catalog.ErrInvalidBeeType or catalog.ErrInvalidHiveLevel.
func CanBuyBee(beeTypeID int, qty uint32, s inter.Snapshot, cat *catalog.Catalog) (Result, error) {
	bee, err := cat.Bee(beeTypeID)
	if err != nil {
		return Result{}, err
	}
	hive, err := cat.Hive(int(s.Player.HiveLevel))
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Cost:   new(big.Int).Mul(bee.CostHoney, new(big.Int).SetUint64(uint64(qty))),
		Nectar: bee.NectarConsumption * uint64(qty),
	}
	if qty == 0 {
		res.fail(InvalidQuantity)
		return res, nil
	}

	slotsLeft := int64(hive.Capacity) - int64(s.Player.TotalBeesOwned())
	nectarLeft := int64(hive.NectarOutput) - int64(s.Player.NectarUsed)

	if inter.CopyAmount(s.Player.HoneyBalance).Cmp(res.Cost) < 0 {
		res.fail(InsufficientHoney)
	}
	if int64(qty) > slotsLeft {
		res.fail(HiveFull)
	}
	if nectarLeft < 0 || res.Nectar > uint64(nectarLeft) {
		res.fail(InsufficientNectar)
	}
	if bee.IsFree() && s.Player.Owned(beeTypeID) > 0 {
		res.fail(FreeBeeAlreadyClaimed)
	}
	return res, nil
}

// CanUpgradeHive checks an upgrade to the next hive level at time now.
// At max level the result is MaxLevelReached alone, whatever the balance or
// cooldown. Otherwise the balance must cover the next level's cost and the
// cooldown must have elapsed (now >= NextUpgradeTime, unix seconds).
func CanUpgradeHive(s inter.Snapshot, cat *catalog.Catalog, now time.Time) (Result, error) {
	level := int(s.Player.HiveLevel)
	if _, err := cat.Hive(level); err != nil {
		return Result{}, err
	}
	next, ok := cat.NextHive(level)
	if !ok {
		return Result{Reasons: []Reason{MaxLevelReached}, Cost: new(big.Int)}, nil
	}

	res := Result{Cost: next.CostHoney}
	if inter.CopyAmount(s.Player.HoneyBalance).Cmp(next.CostHoney) < 0 {
		res.fail(InsufficientHoney)
	}
	if nowSec := now.Unix(); nowSec < s.Player.NextUpgradeTime {
		res.fail(OnCooldown)
		res.CooldownRemaining = time.Duration(s.Player.NextUpgradeTime-nowSec) * time.Second
	}
	return res, nil
}

// CanInitialize checks initialize(): the player must not have a hive yet
// and the wallet must cover the ETH fee.
func CanInitialize(s inter.Snapshot, rules honey.EconomyRules) Result {
	res := Result{Cost: inter.CopyAmount(rules.InitEthFee)}
	if s.Player.Initialized {
		res.fail(AlreadyInitialized)
	}
	if inter.CopyAmount(s.Player.EthBalance).Cmp(res.Cost) < 0 {
		res.fail(InsufficientEth)
	}
	return res
}

// CanClaim checks claim(): the player needs a hive and pending honey.
func CanClaim(s inter.Snapshot) Result {
	res := Result{Cost: new(big.Int)}
	if !s.Player.Initialized {
		res.fail(NotInitialized)
	}
	if inter.CopyAmount(s.Player.PendingHoney).Sign() <= 0 {
		res.fail(NothingToClaim)
	}
	return res
}
