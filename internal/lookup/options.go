// Package lookup turns the raw taxonomy and catalog rows into the
// cascading dropdown option lists the wizard consumes. Fetched once per
// session and cached; parent-to-child filtering joins on the exact display
// label, case-sensitive.
package lookup

import (
	"context"
	"sync"

	"github.com/The-Unpaid-Developers/solution-review-service/internal/model"
)

// CapabilityOptions answers the cascading L1 -> L2 -> L3 selects.
type CapabilityOptions struct {
	entries []model.CapabilityTaxonomyEntry
}

func NewCapabilityOptions(entries []model.CapabilityTaxonomyEntry) *CapabilityOptions {
	return &CapabilityOptions{entries: entries}
}

// L1 lists the distinct top-level capability labels in first-seen order.
func (o *CapabilityOptions) L1() []string {
	return dedup(o.entries, func(e model.CapabilityTaxonomyEntry) (string, bool) {
		return e.L1, true
	})
}

// L2 lists the distinct second-level labels under an exact L1 label.
func (o *CapabilityOptions) L2(l1 string) []string {
	return dedup(o.entries, func(e model.CapabilityTaxonomyEntry) (string, bool) {
		return e.L2, e.L1 == l1
	})
}

// L3 lists the distinct leaf labels under an exact L1/L2 pair.
func (o *CapabilityOptions) L3(l1, l2 string) []string {
	return dedup(o.entries, func(e model.CapabilityTaxonomyEntry) (string, bool) {
		return e.L3, e.L1 == l1 && e.L2 == l2
	})
}

// TechOptions answers the product -> version selects for the technology
// component step.
type TechOptions struct {
	entries []model.TechCatalogEntry
}

func NewTechOptions(entries []model.TechCatalogEntry) *TechOptions {
	return &TechOptions{entries: entries}
}

func (o *TechOptions) Products() []string {
	return dedup(o.entries, func(e model.TechCatalogEntry) (string, bool) {
		return e.ProductName, true
	})
}

func (o *TechOptions) Versions(product string) []string {
	return dedup(o.entries, func(e model.TechCatalogEntry) (string, bool) {
		return e.ProductVersion, e.ProductName == product
	})
}

func dedup[T any](entries []T, pick func(T) (string, bool)) []string {
	seen := make(map[string]bool, len(entries))
	var out []string
	for _, e := range entries {
		v, ok := pick(e)
		if !ok || v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Source is anything that can fetch the raw lookup rows — the HTTP client
// in production, a stub in tests.
type Source interface {
	GetBusinessCapabilities(ctx context.Context) ([]model.CapabilityTaxonomyEntry, error)
	GetTechComponents(ctx context.Context) ([]model.TechCatalogEntry, error)
}

// Cache fetches each lookup at most once per session.
type Cache struct {
	src Source

	capOnce sync.Once
	capOpts *CapabilityOptions
	capErr  error

	techOnce sync.Once
	techOpts *TechOptions
	techErr  error
}

func NewCache(src Source) *Cache { return &Cache{src: src} }

func (c *Cache) Capabilities(ctx context.Context) (*CapabilityOptions, error) {
	c.capOnce.Do(func() {
		entries, err := c.src.GetBusinessCapabilities(ctx)
		if err != nil {
			c.capErr = err
			return
		}
		c.capOpts = NewCapabilityOptions(entries)
	})
	return c.capOpts, c.capErr
}

func (c *Cache) Tech(ctx context.Context) (*TechOptions, error) {
	c.techOnce.Do(func() {
		entries, err := c.src.GetTechComponents(ctx)
		if err != nil {
			c.techErr = err
			return
		}
		c.techOpts = NewTechOptions(entries)
	})
	return c.techOpts, c.techErr
}
