// internal/catalog/filter.go
package catalog

import (
	"sort"
	"strconv"
	"strings"

	"github.com/nexura/storefront/internal/models"
)

// SaleCategory is reserved: it selects discounted products instead of
// matching a literal category tag.
const SaleCategory = "sale"

type SortKey string

const (
	SortNewest    SortKey = "newest"
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNameAsc   SortKey = "name_asc"
)

// FilterState mirrors the storefront sidebar. Price bounds stay strings so
// empty and unparseable input both read as "no bound".
type FilterState struct {
	PriceMin string   `json:"priceMin" form:"price_min"`
	PriceMax string   `json:"priceMax" form:"price_max"`
	Sort     SortKey  `json:"sort" form:"sort"`
	Colors   []string `json:"colors" form:"colors"`
}

// categoryAliases maps a normalized query token to the set of tags it
// accepts. Kept symmetric: woman matches women and vice versa.
var categoryAliases = map[string][]string{
	"woman": {"woman", "women"},
	"women": {"woman", "women"},
	"man":   {"man", "men"},
	"men":   {"man", "men"},
}

// Apply filters and sorts the collection. An empty result is a valid state,
// not an error. The input slice is never mutated; ties keep their original
// relative order.
func Apply(products []models.Product, category string, state FilterState) []models.Product {
	out := make([]models.Product, 0, len(products))
	out = append(out, products...)

	if category != "" {
		out = filterCategory(out, category)
	}

	if min, ok := parseBound(state.PriceMin); ok {
		out = keep(out, func(p *models.Product) bool { return p.Price >= min })
	}
	if max, ok := parseBound(state.PriceMax); ok {
		out = keep(out, func(p *models.Product) bool { return p.Price <= max })
	}

	if len(state.Colors) > 0 {
		out = keep(out, func(p *models.Product) bool { return matchesColors(p, state.Colors) })
	}

	sortProducts(out, state.Sort)
	return out
}

func filterCategory(products []models.Product, category string) []models.Product {
	normalized := strings.ToLower(strings.TrimSpace(category))

	if normalized == SaleCategory {
		return keep(products, func(p *models.Product) bool {
			d := strings.TrimSpace(p.Discount)
			return d != "" && d != "0" && d != "0%"
		})
	}

	accepted := categoryAliases[normalized]
	if accepted == nil {
		accepted = []string{normalized}
	}

	return keep(products, func(p *models.Product) bool {
		for _, tag := range p.Categories {
			tag = strings.ToLower(strings.TrimSpace(tag))
			for _, want := range accepted {
				if tag == want {
					return true
				}
			}
		}
		return false
	})
}

// matchesColors checks the declared colors plus the imageUrls keys, using
// case-insensitive substring matching against each selected color.
func matchesColors(p *models.Product, selected []string) bool {
	candidates := make([]string, 0, len(p.Colors)+len(p.ImageURLs))
	candidates = append(candidates, p.Colors...)
	for key := range p.ImageURLs {
		candidates = append(candidates, key)
	}

	for _, candidate := range candidates {
		lc := strings.ToLower(candidate)
		for _, want := range selected {
			if strings.Contains(lc, strings.ToLower(want)) {
				return true
			}
		}
	}
	return false
}

func sortProducts(products []models.Product, key SortKey) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortNameAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name < products[j].Name
		})
	case SortNewest:
		fallthrough
	default:
		// Descending on RFC3339 creation time; lexicographic compare is
		// correct because the timestamps are zero-padded.
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

// parseBound reports whether the bound is present and numeric. Anything
// else (empty, "abc") means no bound rather than excluding everything.
func parseBound(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func keep(products []models.Product, pred func(*models.Product) bool) []models.Product {
	filtered := products[:0]
	for i := range products {
		if pred(&products[i]) {
			filtered = append(filtered, products[i])
		}
	}
	return filtered
}
