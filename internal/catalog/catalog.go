// Package catalog holds the static taxonomy of reconnaissance categories.
// Each category carries display metadata, a default risk tier and an ordered
// list of dork query templates containing a {domain} placeholder. The tables
// are built once at init and never written afterwards; accessors hand out
// copies so callers cannot mutate shared state.
package catalog

import (
	"sort"

	"github.com/dorkx-sec/dorkx-cli/internal/risk"
)

// Category describes one class of exposure and its query templates.
type Category struct {
	Key            string
	Name           string
	Description    string
	RiskTier       risk.Tier
	WhatCanBeFound []string
	WhyItMatters   string
	Templates      []string
}

// DomainPlaceholder is the literal substituted by the query generator.
const DomainPlaceholder = "{domain}"

// CategoryInfo returns the category for the given key. The second return
// value reports whether the key exists in the catalog.
func CategoryInfo(key string) (Category, bool) {
	c, ok := categories[key]
	if !ok {
		return Category{}, false
	}
	return copyCategory(c), true
}

// AllCategories returns every category in the catalog. Order follows the
// canonical numbering of the taxonomy; consumers that need a different
// order sort the result themselves.
func AllCategories() []Category {
	out := make([]Category, 0, len(categoryOrder))
	for _, key := range categoryOrder {
		out = append(out, copyCategory(categories[key]))
	}
	return out
}

// TemplateCount returns the number of query templates for a category key,
// or zero when the key is unknown.
func TemplateCount(key string) int {
	c, ok := categories[key]
	if !ok {
		return 0
	}
	return len(c.Templates)
}

// Keys returns all category keys in canonical order.
func Keys() []string {
	out := make([]string, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// SortedByTier returns all categories ordered by descending risk tier, then
// by canonical position. Used by display surfaces.
func SortedByTier() []Category {
	out := AllCategories()
	pos := make(map[string]int, len(categoryOrder))
	for i, key := range categoryOrder {
		pos[key] = i
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].RiskTier.Rank() != out[j].RiskTier.Rank() {
			return out[i].RiskTier.Rank() > out[j].RiskTier.Rank()
		}
		return pos[out[i].Key] < pos[out[j].Key]
	})
	return out
}

func copyCategory(c Category) Category {
	out := c
	out.WhatCanBeFound = append([]string(nil), c.WhatCanBeFound...)
	out.Templates = append([]string(nil), c.Templates...)
	return out
}
