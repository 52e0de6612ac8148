package launcher

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rony4d/go-honey-hive/economy"
	"github.com/rony4d/go-honey-hive/honey/catalog"
	"github.com/rony4d/go-honey-hive/inter"
)

// writeStatus prints one snapshot with its derived stats.
func writeStatus(out io.Writer, snap inter.Snapshot, st economy.Stats, cat *catalog.Catalog, now time.Time) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	p, n := snap.Player, snap.Network

	fmt.Fprintf(w, "Player\t%s\n", p.Address.Hex())
	fmt.Fprintf(w, "Initialized\t%t\n", p.Initialized)
	fmt.Fprintf(w, "Block\t%d (start %d)\n", n.CurrentBlock, n.StartBlock)
	fmt.Fprintf(w, "ETH\t%s\n", inter.FormatAmount(p.EthBalance, 6))
	fmt.Fprintf(w, "HONEY\t%s\n", inter.FormatAmount(p.HoneyBalance, 4))
	fmt.Fprintf(w, "Pending\t%s\n", inter.FormatAmount(p.PendingHoney, 4))

	if st.HiveKnown {
		hv := st.Hive
		fmt.Fprintf(w, "Hive\t%s (level %d)\n", hv.Current.Name, hv.Current.Level)
		fmt.Fprintf(w, "Slots\t%d/%d used\n", p.TotalBeesOwned(), hv.Current.Capacity)
		fmt.Fprintf(w, "Nectar\t%d/%d used\n", p.NectarUsed, hv.Current.NectarOutput)
		if hv.HasNext {
			wait := economy.FormatCooldown(p.NextUpgradeTime - now.Unix())
			fmt.Fprintf(w, "Next hive\t%s for %s HONEY, cooldown %s\n", hv.Next.Name, inter.FormatAmount(hv.Next.CostHoney, 2), wait)
		} else {
			fmt.Fprintf(w, "Next hive\tmax level\n")
		}
	} else {
		fmt.Fprintf(w, "Hive\tunknown level %d\n", p.HiveLevel)
	}

	for _, id := range p.OwnedTypes() {
		name := fmt.Sprintf("bee #%d", id)
		if bee, err := cat.Bee(id); err == nil {
			name = bee.Name
		}
		fmt.Fprintf(w, "  %s\tx%d\n", name, p.Owned(id))
	}

	fmt.Fprintf(w, "Honey power\t%d of %d (%.4f%%)\n", p.HoneyPower, n.TotalHoneyPower, st.PlayerShare)
	fmt.Fprintf(w, "Emission\t%.6f HONEY/block\n", st.EmissionRate)
	fmt.Fprintf(w, "Production\t%.6f HONEY/block, ~%.2f HONEY/hour\n", st.ProductionRate, st.HourlyRate)
	fmt.Fprintf(w, "Total mined\t%.2f HONEY\n", st.TotalMined)
	fmt.Fprintf(w, "Next halving\tblock %d, in %d blocks (~%.1f days)\n",
		st.Halving.NextHalvingBlock, st.Halving.BlocksUntilHalving, st.Halving.Days)
	return w.Flush()
}

// writeCatalog prints the bee and hive tables.
func writeCatalog(out io.Writer, cat *catalog.Catalog) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "ID\tBEE\tPOWER\tNECTAR\tCOST\t")
	for _, b := range cat.BeeTypes() {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t\n", b.ID, b.Name, b.HoneyPower, b.NectarConsumption, inter.FormatAmount(b.CostHoney, 2))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "LEVEL\tHIVE\tCAPACITY\tNECTAR\tCOST\t")
	for _, h := range cat.HiveLevels() {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t\n", h.Level, h.Name, h.Capacity, h.NectarOutput, inter.FormatAmount(h.CostHoney, 2))
	}
	return w.Flush()
}
