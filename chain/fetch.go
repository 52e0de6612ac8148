package chain

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/sync/errgroup"

	"github.com/rony4d/go-honey-hive/honey/catalog"
	"github.com/rony4d/go-honey-hive/inter"
)

// maxParallelReads bounds the concurrent view calls of one fetch.
const maxParallelReads = 8

// FetchSnapshot reads everything a snapshot holds for addr. Reads run in
// parallel; the first failure cancels the rest and nothing is returned, so
// a snapshot is never assembled from a partial read.
func FetchSnapshot(ctx context.Context, r Reader, addr common.Address, cat *catalog.Catalog, now time.Time) (inter.Snapshot, error) {
	snap := inter.EmptySnapshot(addr)
	balances := make([]uint32, cat.NumBeeTypes())

	var (
		player   = &snap.Player
		network  = &snap.Network
		power    *big.Int
		netPower *big.Int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelReads)

	// The reward depends on the block, so both are read in one step.
	g.Go(func() error {
		block, err := r.BlockNumber(gctx)
		if err != nil {
			return err
		}
		reward, err := r.RewardPerBlock(gctx, block)
		if err != nil {
			return err
		}
		network.CurrentBlock = block
		network.RewardPerBlock = reward
		return nil
	})
	g.Go(func() error {
		start, err := r.StartBlock(gctx)
		network.StartBlock = start
		return err
	})
	g.Go(func() error {
		v, err := r.TotalHoneyPower(gctx)
		netPower = v
		return err
	})
	g.Go(func() error {
		token, err := r.TokenAddress(gctx)
		if err != nil {
			return err
		}
		supply, err := r.TokenSupply(gctx)
		if err != nil {
			return err
		}
		bal, err := r.TokenBalance(gctx, addr)
		if err != nil {
			return err
		}
		network.TokenAddress = token
		network.TotalHoneyMined = supply
		player.HoneyBalance = bal
		return nil
	})
	g.Go(func() error {
		rec, err := r.Player(gctx, addr)
		if err != nil {
			return err
		}
		if err := checkUint64("players.nectarUsed", rec.NectarUsed); err != nil {
			return err
		}
		if err := checkUint64("players.nextUpgradeTime", rec.NextUpgradeTime); err != nil {
			return err
		}
		player.Initialized = rec.Initialized
		player.HiveLevel = rec.HiveLevel
		player.BeeCount = rec.BeeCount
		player.NectarUsed = uint64Of(rec.NectarUsed)
		player.NextUpgradeTime = int64(uint64Of(rec.NextUpgradeTime))
		player.Referrer = rec.Referrer
		power = rec.HoneyPower
		return nil
	})
	g.Go(func() error {
		v, err := r.PendingHoney(gctx, addr)
		player.PendingHoney = v
		return err
	})
	g.Go(func() error {
		v, err := r.EthBalance(gctx, addr)
		player.EthBalance = v
		return err
	})
	for id := range balances {
		id := id
		g.Go(func() error {
			n, err := r.BeeBalance(gctx, addr, id)
			balances[id] = n
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return inter.Snapshot{}, err
	}

	if err := checkUint64("players.honeyPower", power); err != nil {
		return inter.Snapshot{}, err
	}
	if err := checkUint64("totalHoneyPower", netPower); err != nil {
		return inter.Snapshot{}, err
	}
	player.HoneyPower = uint64Of(power)
	network.TotalHoneyPower = uint64Of(netPower)
	for id, n := range balances {
		if n > 0 {
			player.BeeBalances[id] = n
		}
	}
	snap.FetchedAt = now
	return snap.Copy(), nil
}

func checkUint64(field string, v *big.Int) error {
	if v != nil && (v.Sign() < 0 || !v.IsUint64()) {
		return callErr(field, fmt.Errorf("value %s out of range", v))
	}
	return nil
}

func uint64Of(v *big.Int) uint64 {
	if v == nil {
		return 0
	}
	return v.Uint64()
}
