package chain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/rony4d/go-honey-hive/honey/catalog"
)

// VerifyCatalog compares every static catalog entry with the contract's
// beeTypes(id) and hiveLevels(level). All differences are reported in one
// error wrapping ErrCatalogMismatch; a failed read is returned as is.
func VerifyCatalog(ctx context.Context, r Reader, cat *catalog.Catalog) error {
	var diffs []string

	for _, bee := range cat.BeeTypes() {
		rec, err := r.BeeTypeDef(ctx, bee.ID)
		if err != nil {
			return err
		}
		if !rec.Exists {
			diffs = append(diffs, fmt.Sprintf("bee %d (%s) missing on chain", bee.ID, bee.Name))
			continue
		}
		diffs = appendDiff(diffs, fmt.Sprintf("bee %d honey power", bee.ID), new(big.Int).SetUint64(bee.HoneyPower), rec.HoneyRate)
		diffs = appendDiff(diffs, fmt.Sprintf("bee %d nectar", bee.ID), new(big.Int).SetUint64(bee.NectarConsumption), rec.NectarConsumption)
		diffs = appendDiff(diffs, fmt.Sprintf("bee %d cost", bee.ID), bee.CostHoney, rec.CostHoney)
	}

	for _, hive := range cat.HiveLevels() {
		rec, err := r.HiveLevelDef(ctx, hive.Level)
		if err != nil {
			return err
		}
		if !rec.Exists {
			diffs = append(diffs, fmt.Sprintf("hive level %d (%s) missing on chain", hive.Level, hive.Name))
			continue
		}
		diffs = appendDiff(diffs, fmt.Sprintf("hive %d capacity", hive.Level), big.NewInt(int64(hive.Capacity)), big.NewInt(int64(rec.TotalBees)))
		diffs = appendDiff(diffs, fmt.Sprintf("hive %d nectar", hive.Level), new(big.Int).SetUint64(hive.NectarOutput), rec.NectarOutput)
		diffs = appendDiff(diffs, fmt.Sprintf("hive %d cost", hive.Level), hive.CostHoney, rec.CostHoney)
	}

	if len(diffs) > 0 {
		return fmt.Errorf("%w: %s", ErrCatalogMismatch, strings.Join(diffs, "; "))
	}
	return nil
}

func appendDiff(diffs []string, what string, local, remote *big.Int) []string {
	if local == nil {
		local = new(big.Int)
	}
	if remote == nil {
		remote = new(big.Int)
	}
	if local.Cmp(remote) != 0 {
		return append(diffs, fmt.Sprintf("%s: local %s, contract %s", what, local, remote))
	}
	return diffs
}
