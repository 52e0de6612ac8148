package catalog

import (
	"github.com/rony4d/go-honey-hive/inter"
)

// DefaultBeeTypes returns the bee table deployed with HoneyGame.
// Efficiency (honey power per HONEY spent) rises with tier.
func DefaultBeeTypes() []BeeType {
	return []BeeType{
		{Name: "Worker Bee", HoneyPower: 10, NectarConsumption: 5, CostHoney: inter.HoneyToWei(12), Description: "Basic bee. Efficiency: 2.0"},
		{Name: "Forager Bee", HoneyPower: 28, NectarConsumption: 12, CostHoney: inter.HoneyToWei(36), Description: "Better efficiency. Efficiency: 2.33"},
		{Name: "Builder Bee", HoneyPower: 75, NectarConsumption: 30, CostHoney: inter.HoneyToWei(100), Description: "High capacity. Efficiency: 2.5"},
		{Name: "Queen Bee", HoneyPower: 380, NectarConsumption: 140, CostHoney: inter.HoneyToWei(500), Description: "Royalty. Efficiency: 2.71"},
		{Name: "Cyber Bee", HoneyPower: 2000, NectarConsumption: 700, CostHoney: inter.HoneyToWei(2500), Description: "Future tech. Efficiency: 2.85"},
	}
}

// DefaultHiveLevels returns the hive table deployed with HoneyGame.
func DefaultHiveLevels() []HiveLevel {
	return []HiveLevel{
		{Name: "Starter Hive", Capacity: 6, NectarOutput: 40, CostHoney: inter.HoneyToWei(0), Description: "Free starter home."},
		{Name: "Garden Hive", Capacity: 10, NectarOutput: 80, CostHoney: inter.HoneyToWei(60), Description: "Simple garden setup."},
		{Name: "Apiary", Capacity: 16, NectarOutput: 160, CostHoney: inter.HoneyToWei(140), Description: "Dedicated apiary."},
		{Name: "Honey Factory", Capacity: 25, NectarOutput: 300, CostHoney: inter.HoneyToWei(320), Description: "Small production facility."},
		{Name: "Industrial Hive", Capacity: 40, NectarOutput: 550, CostHoney: inter.HoneyToWei(750), Description: "Mass production."},
		{Name: "Mega Hive", Capacity: 65, NectarOutput: 950, CostHoney: inter.HoneyToWei(1600), Description: "Huge capacity."},
		{Name: "Giga Hive", Capacity: 100, NectarOutput: 1600, CostHoney: inter.HoneyToWei(3200), Description: "Massive structure."},
		{Name: "Tera Hive", Capacity: 160, NectarOutput: 2600, CostHoney: inter.HoneyToWei(6500), Description: "Dominating the field."},
		{Name: "Cosmic Hive", Capacity: 250, NectarOutput: 5200, CostHoney: inter.HoneyToWei(13000), Description: "Intergalactic honey operation."},
	}
}

// Default returns the catalog matching the deployed contract.
func Default() *Catalog {
	return MustNew(DefaultBeeTypes(), DefaultHiveLevels())
}
