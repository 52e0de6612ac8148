package catalog

// Package catalog holds the static game-balance tables of HoneyGame: the
// bee types a player can buy and the hive levels a player can upgrade
// through. Both tables are fixed at build time and must match the deployed
// contract's configuration (see chain.VerifyCatalog for the runtime check).
//
// Key concepts:
//   - BeeType: honey power, nectar consumption and price of one bee unit
//   - HiveLevel: slot capacity and nectar budget of a hive, plus the price
//     of reaching that level from the one below
//
// Ids and levels are contiguous from 0 and follow table order.

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/rony4d/go-honey-hive/inter"
)

var (
	// ErrInvalidBeeType is returned for a bee-type id outside the catalog.
	ErrInvalidBeeType = errors.New("invalid bee type")

	// ErrInvalidHiveLevel is returned for a hive level outside the catalog.
	ErrInvalidHiveLevel = errors.New("invalid hive level")
)

// BeeType describes one kind of bee.
type BeeType struct {
	ID                int      // index in the catalog
	Name              string   // display name
	HoneyPower        uint64   // honey power contributed per unit owned
	CostHoney         *big.Int // price per unit in HONEY wei; zero marks a one-time free claim
	NectarConsumption uint64   // nectar budget consumed per unit owned
	Description       string
}

// HiveLevel describes one hive tier.
type HiveLevel struct {
	Level        int      // index in the catalog
	Name         string   // display name
	Capacity     uint32   // max bee units the hive holds
	NectarOutput uint64   // nectar budget available at this level
	CostHoney    *big.Int // HONEY wei paid to upgrade into this level
	Description  string
}

// IsFree reports whether the bee is a one-time free claim.
func (b BeeType) IsFree() bool {
	return b.CostHoney == nil || b.CostHoney.Sign() == 0
}

func (b BeeType) copy() BeeType {
	b.CostHoney = inter.CopyAmount(b.CostHoney)
	return b
}

func (h HiveLevel) copy() HiveLevel {
	h.CostHoney = inter.CopyAmount(h.CostHoney)
	return h
}

// Catalog is an immutable pair of bee-type and hive-level tables.
// Every accessor returns copies, so callers can never mutate the tables.
type Catalog struct {
	beeTypes   []BeeType
	hiveLevels []HiveLevel
}

// New builds a catalog from ordered tables. IDs and levels are assigned from
// slice order. It fails if the hive table is empty, a capacity is zero, or
// capacity, nectar output or cost decrease from one level to the next.
func New(bees []BeeType, hives []HiveLevel) (*Catalog, error) {
	if len(hives) == 0 {
		return nil, errors.New("catalog: at least one hive level is required")
	}
	c := &Catalog{
		beeTypes:   make([]BeeType, len(bees)),
		hiveLevels: make([]HiveLevel, len(hives)),
	}
	for i, b := range bees {
		b = b.copy()
		b.ID = i
		c.beeTypes[i] = b
	}
	for i, h := range hives {
		h = h.copy()
		h.Level = i
		if h.Capacity == 0 {
			return nil, fmt.Errorf("catalog: hive level %d has zero capacity", i)
		}
		if i > 0 {
			prev := c.hiveLevels[i-1]
			if h.Capacity < prev.Capacity || h.NectarOutput < prev.NectarOutput || h.CostHoney.Cmp(prev.CostHoney) < 0 {
				return nil, fmt.Errorf("catalog: hive level %d is smaller than level %d", i, i-1)
			}
		}
		c.hiveLevels[i] = h
	}
	return c, nil
}

// MustNew is New for build-time tables; it panics on an invalid table.
func MustNew(bees []BeeType, hives []HiveLevel) *Catalog {
	c, err := New(bees, hives)
	if err != nil {
		panic(err)
	}
	return c
}

// NumBeeTypes returns the number of bee types.
func (c *Catalog) NumBeeTypes() int { return len(c.beeTypes) }

// NumHiveLevels returns the number of hive levels.
func (c *Catalog) NumHiveLevels() int { return len(c.hiveLevels) }

// MaxLevel returns the highest hive level. It has no successor.
func (c *Catalog) MaxLevel() int { return len(c.hiveLevels) - 1 }

// BeeTypes returns a copy of the bee-type table.
func (c *Catalog) BeeTypes() []BeeType {
	out := make([]BeeType, len(c.beeTypes))
	for i, b := range c.beeTypes {
		out[i] = b.copy()
	}
	return out
}

// HiveLevels returns a copy of the hive-level table.
func (c *Catalog) HiveLevels() []HiveLevel {
	out := make([]HiveLevel, len(c.hiveLevels))
	for i, h := range c.hiveLevels {
		out[i] = h.copy()
	}
	return out
}

// Bee looks up a bee type by id.
func (c *Catalog) Bee(id int) (BeeType, error) {
	if id < 0 || id >= len(c.beeTypes) {
		return BeeType{}, fmt.Errorf("%w: %d (catalog has %d)", ErrInvalidBeeType, id, len(c.beeTypes))
	}
	return c.beeTypes[id].copy(), nil
}

// Hive looks up a hive level.
func (c *Catalog) Hive(level int) (HiveLevel, error) {
	if level < 0 || level >= len(c.hiveLevels) {
		return HiveLevel{}, fmt.Errorf("%w: %d (catalog has %d)", ErrInvalidHiveLevel, level, len(c.hiveLevels))
	}
	return c.hiveLevels[level].copy(), nil
}

// NextHive returns the level above the given one, or false at max level.
func (c *Catalog) NextHive(level int) (HiveLevel, bool) {
	next, err := c.Hive(level + 1)
	if err != nil || level < 0 {
		return HiveLevel{}, false
	}
	return next, true
}

// MustBee is Bee for ids known to be valid. An out-of-range id is a
// programming error and panics.
func (c *Catalog) MustBee(id int) BeeType {
	b, err := c.Bee(id)
	if err != nil {
		panic(err)
	}
	return b
}

// MustHive is Hive for levels known to be valid. It panics when out of range.
func (c *Catalog) MustHive(level int) HiveLevel {
	h, err := c.Hive(level)
	if err != nil {
		panic(err)
	}
	return h
}
