// Package actions runs the four state-changing HoneyGame actions
// (initialize, buyBee, upgradeHive, claim) end to end.
//
// Every action follows the same path:
//  1. refresh the snapshot and check admission against it
//  2. approve HONEY spending when the allowance is short
//  3. check admission again against the latest snapshot, then submit
//  4. wait for the transaction to be mined
//  5. request a refresh after the index delay
//
// The result is an Outcome value. Admission refusals and chain failures
// are both reported there; nothing is retried and a failed action leaves
// the published snapshot untouched.
package actions

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/rony4d/go-honey-hive/admission"
	"github.com/rony4d/go-honey-hive/chain"
	"github.com/rony4d/go-honey-hive/economy"
	"github.com/rony4d/go-honey-hive/gamestate"
	"github.com/rony4d/go-honey-hive/honey"
	"github.com/rony4d/go-honey-hive/honey/catalog"
	"github.com/rony4d/go-honey-hive/inter"
	"github.com/rony4d/go-honey-hive/metrics"
)

// DefaultIndexDelay is the pause between confirmation and refresh that
// gives RPC nodes time to index the new block.
const DefaultIndexDelay = time.Second

var (
	// ErrNoWallet is returned when no wallet is connected or the store
	// tracks a different account than the one signing.
	ErrNoWallet = errors.New("no wallet connected for the signing account")

	// ErrApprovalFailed marks a failed HONEY approve transaction.
	ErrApprovalFailed = errors.New("HONEY approval failed")
)

// Kind names an action.
type Kind string

const (
	Initialize  Kind = "initialize"
	BuyBee      Kind = "buyBee"
	UpgradeHive Kind = "upgradeHive"
	Claim       Kind = "claim"
)

// Status is the final state of an action.
type Status string

const (
	// Confirmed: the transaction was mined successfully.
	Confirmed Status = "confirmed"
	// Rejected: admission refused the action; nothing was sent.
	Rejected Status = "rejected"
	// Failed: a chain call failed or the transaction reverted.
	Failed Status = "failed"
)

// Command describes one action request.
type Command struct {
	Kind        Kind
	BeeTypeID   int    // BuyBee
	Qty         uint32 // BuyBee
	WithFreeBee bool   // Initialize
}

// Outcome is the typed result of an action.
type Outcome struct {
	ID        uuid.UUID
	Command   Command
	Status    Status
	Admission admission.Result
	TxHash    common.Hash // zero unless the main transaction was sent
	ApproveTx common.Hash // zero unless an approval was sent
	Err       error       // set when Status is Failed
	Burned    *big.Int    // HONEY wei burned by a confirmed buy or upgrade

	// RefreshErr is a failure of the follow-up refresh. The action itself
	// still counts as confirmed.
	RefreshErr error

	Duration time.Duration
}

// String renders the outcome for logs and the CLI.
func (o Outcome) String() string {
	switch o.Status {
	case Confirmed:
		return fmt.Sprintf("%s confirmed in %s", o.Command.Kind, o.TxHash.Hex())
	case Rejected:
		return fmt.Sprintf("%s rejected: %s", o.Command.Kind, o.Admission)
	default:
		return fmt.Sprintf("%s failed: %v", o.Command.Kind, o.Err)
	}
}

// Options tune an Executor.
type Options struct {
	Referrer   common.Address // passed to initialize
	IndexDelay time.Duration  // pause before the follow-up refresh
}

// Executor runs actions for the account of one chain.Client.
type Executor struct {
	client  chain.Client
	store   *gamestate.Store
	catalog *catalog.Catalog
	rules   honey.EconomyRules
	opts    Options
	log     logrus.FieldLogger
	now     func() time.Time
}

// NewExecutor returns an executor. The store must have a refresher set.
func NewExecutor(client chain.Client, store *gamestate.Store, cat *catalog.Catalog, rules honey.EconomyRules, opts Options, log logrus.FieldLogger) *Executor {
	return &Executor{
		client:  client,
		store:   store,
		catalog: cat,
		rules:   rules,
		opts:    opts,
		log:     log,
		now:     time.Now,
	}
}

// Initialize runs initialize(referrer, withFreeBee) paying the ETH fee.
func (e *Executor) Initialize(ctx context.Context, withFreeBee bool) Outcome {
	return e.Execute(ctx, Command{Kind: Initialize, WithFreeBee: withFreeBee})
}

// BuyBee runs buyBee(beeTypeID, qty).
func (e *Executor) BuyBee(ctx context.Context, beeTypeID int, qty uint32) Outcome {
	return e.Execute(ctx, Command{Kind: BuyBee, BeeTypeID: beeTypeID, Qty: qty})
}

// UpgradeHive runs upgradeHive().
func (e *Executor) UpgradeHive(ctx context.Context) Outcome {
	return e.Execute(ctx, Command{Kind: UpgradeHive})
}

// Claim runs claim().
func (e *Executor) Claim(ctx context.Context) Outcome {
	return e.Execute(ctx, Command{Kind: Claim})
}

// Execute runs one command to completion.
func (e *Executor) Execute(ctx context.Context, cmd Command) Outcome {
	start := time.Now()
	out := Outcome{ID: uuid.New(), Command: cmd}
	log := e.log.WithFields(logrus.Fields{
		"action_id": out.ID.String(),
		"action":    string(cmd.Kind),
		"player":    e.client.Account().Hex(),
	})
	if cmd.Kind == BuyBee {
		log = log.WithFields(logrus.Fields{"bee_type": cmd.BeeTypeID, "qty": cmd.Qty})
	}

	e.run(ctx, &out, log)

	out.Duration = time.Since(start)
	metrics.ActionsTotal.WithLabelValues(string(cmd.Kind), string(out.Status)).Inc()
	metrics.ActionDuration.WithLabelValues(string(cmd.Kind)).Observe(out.Duration.Seconds())

	entry := log.WithField("status", out.Status)
	switch out.Status {
	case Confirmed:
		entry.WithField("tx", out.TxHash.Hex()).Info("Action confirmed")
	case Rejected:
		entry.WithField("reasons", out.Admission.String()).Info("Action rejected")
	default:
		entry.WithError(out.Err).Warn("Action failed")
	}
	return out
}

func (e *Executor) run(ctx context.Context, out *Outcome, log logrus.FieldLogger) {
	fail := func(err error) {
		out.Status = Failed
		out.Err = err
	}

	if !e.store.Connected() || e.store.Address() != e.client.Account() {
		fail(ErrNoWallet)
		return
	}
	if err := e.store.RequestRefresh(ctx); err != nil {
		fail(fmt.Errorf("refresh before %s: %w", out.Command.Kind, err))
		return
	}

	res, err := e.check(out.Command)
	if err != nil {
		fail(err)
		return
	}
	out.Admission = res
	if !res.OK() {
		e.reject(out)
		return
	}

	if e.needsApproval(out.Command.Kind, res.Cost) {
		hash, err := e.approve(ctx, res.Cost, log)
		out.ApproveTx = hash
		if err != nil {
			fail(err)
			return
		}
		// Approval took at least a block: check again against whatever the
		// syncer published meanwhile.
		if res, err = e.check(out.Command); err != nil {
			fail(err)
			return
		}
		out.Admission = res
		if !res.OK() {
			e.reject(out)
			return
		}
	}

	hash, err := e.submit(ctx, out.Command, res)
	if err != nil {
		fail(err)
		return
	}
	out.TxHash = hash
	log.WithField("tx", hash.Hex()).Debug("Transaction submitted")

	if err := e.client.WaitMined(ctx, hash); err != nil {
		fail(err)
		return
	}
	out.Status = Confirmed
	if e.needsApproval(out.Command.Kind, res.Cost) {
		out.Burned, _ = economy.SpendSplit(res.Cost, e.rules)
	}

	if out.Command.Kind == Initialize {
		if err := e.store.MarkInitialized(); err != nil {
			log.WithError(err).Debug("Could not mark hive initialized")
		}
	}
	out.RefreshErr = e.refreshAfter(ctx)
	if out.RefreshErr != nil {
		log.WithError(out.RefreshErr).Warn("Refresh after action failed")
	}
}

// check evaluates admission for cmd against the latest published snapshot.
func (e *Executor) check(cmd Command) (admission.Result, error) {
	snap := e.store.Current()
	switch cmd.Kind {
	case Initialize:
		return admission.CanInitialize(snap, e.rules), nil
	case BuyBee:
		res, err := admission.CanBuyBee(cmd.BeeTypeID, cmd.Qty, snap, e.catalog)
		return requireHive(res, snap), err
	case UpgradeHive:
		res, err := admission.CanUpgradeHive(snap, e.catalog, e.now())
		return requireHive(res, snap), err
	case Claim:
		return admission.CanClaim(snap), nil
	default:
		return admission.Result{}, fmt.Errorf("unknown action %q", cmd.Kind)
	}
}

// requireHive refuses spending actions before initialize, so no approval
// is sent for a transaction the contract would revert.
func requireHive(res admission.Result, snap inter.Snapshot) admission.Result {
	if !snap.Player.Initialized {
		res.Reasons = append([]admission.Reason{admission.NotInitialized}, res.Reasons...)
	}
	return res
}

func (e *Executor) reject(out *Outcome) {
	out.Status = Rejected
	for _, r := range out.Admission.Reasons {
		metrics.AdmissionRejections.WithLabelValues(string(out.Command.Kind), string(r)).Inc()
	}
}

func (e *Executor) needsApproval(kind Kind, cost *big.Int) bool {
	return (kind == BuyBee || kind == UpgradeHive) && cost != nil && cost.Sign() > 0
}

// approve makes sure the game may spend cost HONEY. It returns the zero
// hash when the allowance already covers it.
func (e *Executor) approve(ctx context.Context, cost *big.Int, log logrus.FieldLogger) (common.Hash, error) {
	game := e.client.GameAddress()
	allowance, err := e.client.Allowance(ctx, e.client.Account(), game)
	if err != nil {
		return common.Hash{}, err
	}
	if allowance.Cmp(cost) >= 0 {
		return common.Hash{}, nil
	}

	log.WithFields(logrus.Fields{
		"allowance": inter.FormatAmount(allowance, 4),
		"cost":      inter.FormatAmount(cost, 4),
	}).Info("Approving HONEY spend")
	hash, err := e.client.Approve(ctx, game, cost)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%w: %w", ErrApprovalFailed, err)
	}
	metrics.ApprovalsTotal.Inc()
	if err := e.client.WaitMined(ctx, hash); err != nil {
		return hash, fmt.Errorf("%w: %w", ErrApprovalFailed, err)
	}
	return hash, nil
}

func (e *Executor) submit(ctx context.Context, cmd Command, res admission.Result) (common.Hash, error) {
	switch cmd.Kind {
	case Initialize:
		return e.client.Initialize(ctx, e.opts.Referrer, cmd.WithFreeBee, res.Cost)
	case BuyBee:
		return e.client.BuyBee(ctx, cmd.BeeTypeID, cmd.Qty)
	case UpgradeHive:
		return e.client.UpgradeHive(ctx)
	default:
		return e.client.Claim(ctx)
	}
}

func (e *Executor) refreshAfter(ctx context.Context) error {
	if e.opts.IndexDelay > 0 {
		t := time.NewTimer(e.opts.IndexDelay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return e.store.RequestRefresh(ctx)
}
