package launcher

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-honey-hive/actions"
	"github.com/rony4d/go-honey-hive/admission"
	"github.com/rony4d/go-honey-hive/flags"
	"github.com/rony4d/go-honey-hive/honey/catalog"
	"github.com/rony4d/go-honey-hive/inter"
)

var app = newApp()

func newApp() *cli.App {
	a := flags.NewApp()
	a.Flags = flags.AllGlobalFlags()
	a.Commands = []cli.Command{
		{
			Name:   "status",
			Usage:  "Refresh once and print the hive, balances and derived stats",
			Action: withRuntime(statusCmd),
		},
		{
			Name:   "watch",
			Usage:  "Follow the chain and log stats on every refresh until interrupted",
			Action: withRuntime(watchCmd),
		},
		{
			Name:   "init",
			Usage:  "Initialize the hive, paying the ETH fee",
			Flags:  flags.InitFlags(),
			Action: withRuntime(initCmd),
		},
		{
			Name:   "buy",
			Usage:  "Buy bees: buy --bee <id> --qty <n>",
			Flags:  flags.BuyFlags(),
			Action: withRuntime(buyCmd),
		},
		{
			Name:   "upgrade",
			Usage:  "Upgrade the hive to the next level",
			Action: withRuntime(upgradeCmd),
		},
		{
			Name:   "claim",
			Usage:  "Claim pending HONEY",
			Action: withRuntime(claimCmd),
		},
		{
			Name:   "catalog",
			Usage:  "Print the bee and hive tables",
			Action: catalogCmd,
		},
	}
	return a
}

// Launch parses args and runs the selected command.
func Launch(args []string) error {
	return app.Run(args)
}

type runtimeAction func(ctx context.Context, c *cli.Context, rt *runtime) error

// withRuntime builds config, logger and runtime around a command. The
// context is cancelled on SIGINT or SIGTERM.
func withRuntime(fn runtimeAction) func(*cli.Context) error {
	return func(c *cli.Context) error {
		cfg, err := MakeAllConfigs(c)
		if err != nil {
			return err
		}
		log, err := newLogger(cfg.Logging, c.App.ErrWriter)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := newRuntime(ctx, cfg, log)
		if err != nil {
			log.WithError(err).Error("Startup failed")
			return err
		}
		defer rt.Close()
		return fn(ctx, c, rt)
	}
}

func statusCmd(ctx context.Context, c *cli.Context, rt *runtime) error {
	if err := rt.syncer.Refresh(ctx); err != nil {
		return err
	}
	snap := rt.store.Current()
	return writeStatus(c.App.Writer, snap, rt.calc.Compute(snap), rt.catalog, time.Now())
}

func watchCmd(ctx context.Context, _ *cli.Context, rt *runtime) error {
	updates, cancel := rt.store.Subscribe(4)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- rt.syncer.Run(ctx) }()

	for {
		select {
		case <-ctx.Done():
			return <-done
		case u, ok := <-updates:
			if !ok {
				return <-done
			}
			if !u.Connected {
				continue
			}
			st := rt.calc.Compute(u.Snapshot)
			rt.log.WithFields(logrus.Fields{
				"block":       u.Snapshot.Network.CurrentBlock,
				"share":       fmt.Sprintf("%.4f%%", st.PlayerShare),
				"pending":     fmt.Sprintf("%.4f", st.PendingHoney),
				"honey":       fmt.Sprintf("%.4f", st.HoneyBalance),
				"per_hour":    fmt.Sprintf("%.2f", st.HourlyRate),
				"halving_in":  st.Halving.BlocksUntilHalving,
				"initialized": u.Snapshot.Player.Initialized,
			}).Info("Hive")
		}
	}
}

func initCmd(ctx context.Context, c *cli.Context, rt *runtime) error {
	return report(c, rt.exec.Initialize(ctx, !c.Bool("no-free-bee")))
}

func buyCmd(ctx context.Context, c *cli.Context, rt *runtime) error {
	bee := c.Int("bee")
	if bee < 0 {
		return errors.New("buy: --bee is required (see the catalog command)")
	}
	qty := c.Uint("qty")
	if qty == 0 || uint64(qty) > math.MaxUint32 {
		return fmt.Errorf("buy: --qty must be between 1 and %d, got %d", uint32(math.MaxUint32), qty)
	}
	return report(c, rt.exec.BuyBee(ctx, bee, uint32(qty)))
}

func upgradeCmd(ctx context.Context, c *cli.Context, rt *runtime) error {
	return report(c, rt.exec.UpgradeHive(ctx))
}

func claimCmd(ctx context.Context, c *cli.Context, rt *runtime) error {
	return report(c, rt.exec.Claim(ctx))
}

// report prints the outcome and turns anything but a confirmation into an
// error, so the process exits non-zero.
func report(c *cli.Context, out actions.Outcome) error {
	fmt.Fprintln(c.App.Writer, out.String())
	if out.ApproveTx != (common.Hash{}) {
		fmt.Fprintf(c.App.Writer, "approval: %s\n", out.ApproveTx.Hex())
	}
	if out.Burned != nil {
		fmt.Fprintf(c.App.Writer, "burned: %s HONEY\n", inter.FormatAmount(out.Burned, 4))
	}
	if out.Status == actions.Rejected && final(out.Admission) {
		fmt.Fprintln(c.App.Writer, "retrying will not help")
	}
	if out.RefreshErr != nil {
		fmt.Fprintf(c.App.Writer, "warning: state not refreshed: %v\n", out.RefreshErr)
	}
	if out.Status != actions.Confirmed {
		return errors.New(out.String())
	}
	return nil
}

// final reports whether a refusal carries a reason no later state can lift.
func final(res admission.Result) bool {
	for _, r := range res.Reasons {
		if r.Terminal() {
			return true
		}
	}
	return false
}

func catalogCmd(c *cli.Context) error {
	return writeCatalog(c.App.Writer, catalog.Default())
}
