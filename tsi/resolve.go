package tsi

import (
	"strings"

	"github.com/samber/lo"

	"github.com/insightfinder/tsi-agent/pkg/models"
)

// Catalog is an immutable snapshot of the environment's instance records,
// used to resolve human-facing names, descriptions and assets to series ids.
// Lookups are pure functions of the snapshot; callers refetch per query so
// catalog changes between calls are picked up.
type Catalog struct {
	instances []models.Instance
}

func NewCatalog(instances []models.Instance) *Catalog {
	return &Catalog{instances: instances}
}

func (c *Catalog) Instances() []models.Instance {
	return c.instances
}

// Lookup maps are built front to back, so a duplicate key keeps the last
// catalog entry that carries it.
func (c *Catalog) byName() map[string]models.Instance {
	m := make(map[string]models.Instance)
	for _, inst := range c.instances {
		if inst.Name != "" && len(inst.TimeSeriesID) > 0 {
			m[inst.Name] = inst
		}
	}
	return m
}

func (c *Catalog) byDescription() map[string]models.Instance {
	m := make(map[string]models.Instance)
	for _, inst := range c.instances {
		if inst.Description != "" && len(inst.TimeSeriesID) > 0 {
			m[inst.Description] = inst
		}
	}
	return m
}

func (c *Catalog) byID() map[string]models.Instance {
	m := make(map[string]models.Instance)
	for _, inst := range c.instances {
		if len(inst.TimeSeriesID) > 0 {
			m[inst.TimeSeriesID[0]] = inst
		}
	}
	return m
}

// lookup resolves each key through the map, keeping input length and order.
// Unresolved keys produce nil at their position, never an error.
func lookup(m map[string]models.Instance, keys []string, pick func(models.Instance) string) []*string {
	out := make([]*string, len(keys))
	for i, key := range keys {
		inst, ok := m[key]
		if !ok {
			continue
		}
		if value := pick(inst); value != "" {
			out[i] = &value
		}
	}
	return out
}

func pickID(inst models.Instance) string {
	return inst.TimeSeriesID[0]
}

func pickTypeID(inst models.Instance) string {
	return inst.TypeID
}

func pickName(inst models.Instance) string {
	return inst.Name
}

// IDsByName resolves exact instance names to series ids.
func (c *Catalog) IDsByName(names []string) []*string {
	return lookup(c.byName(), names, pickID)
}

// TypeIDsByName resolves exact instance names to type ids.
func (c *Catalog) TypeIDsByName(names []string) []*string {
	return lookup(c.byName(), names, pickTypeID)
}

// IDsByDescription resolves exact instance descriptions to series ids.
func (c *Catalog) IDsByDescription(descriptions []string) []*string {
	return lookup(c.byDescription(), descriptions, pickID)
}

// TypeIDsByDescription resolves exact instance descriptions to type ids.
func (c *Catalog) TypeIDsByDescription(descriptions []string) []*string {
	return lookup(c.byDescription(), descriptions, pickTypeID)
}

// NamesByID resolves series ids back to instance names.
func (c *Catalog) NamesByID(ids []string) []*string {
	return lookup(c.byID(), ids, pickName)
}

// TypeIDsByID resolves series ids to type ids.
func (c *Catalog) TypeIDsByID(ids []string) []*string {
	return lookup(c.byID(), ids, pickTypeID)
}

// IDsByAsset filters the catalog down to instances whose name contains the
// asset string, in catalog order. Unlike the exact lookups this returns only
// matches: a non-matching asset yields an empty list.
func (c *Catalog) IDsByAsset(asset string) []string {
	matches := lo.Filter(c.instances, func(inst models.Instance, _ int) bool {
		return inst.Name != "" && strings.Contains(inst.Name, asset) && len(inst.TimeSeriesID) > 0
	})
	return lo.Map(matches, func(inst models.Instance, _ int) string {
		return inst.TimeSeriesID[0]
	})
}
