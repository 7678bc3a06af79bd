// internal/catalog/filter_test.go
package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nexura/storefront/internal/models"
)

func product(name string, price float64, opts ...func(*models.Product)) models.Product {
	p := models.Product{Name: name, Price: price}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func withCategories(tags ...string) func(*models.Product) {
	return func(p *models.Product) { p.Categories = tags }
}

func withDiscount(d string) func(*models.Product) {
	return func(p *models.Product) { p.Discount = d }
}

func withCreatedAt(ts time.Time) func(*models.Product) {
	return func(p *models.Product) { p.CreatedAt = ts }
}

func names(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestCategoryAliasesAreSymmetric(t *testing.T) {
	catalog := []models.Product{
		product("runner", 100, withCategories("Women")),
		product("trail", 120, withCategories("man")),
		product("court", 90, withCategories("kids")),
	}

	assert.Equal(t, []string{"runner"}, names(Apply(catalog, "woman", FilterState{})))
	assert.Equal(t, []string{"runner"}, names(Apply(catalog, "women", FilterState{})))
	assert.Equal(t, []string{"trail"}, names(Apply(catalog, "men", FilterState{})))
	assert.Equal(t, []string{"trail"}, names(Apply(catalog, "man", FilterState{})))
	assert.Equal(t, []string{"court"}, names(Apply(catalog, "kids", FilterState{})))
}

func TestSaleCategorySelectsDiscounted(t *testing.T) {
	catalog := []models.Product{
		product("full-price", 100),
		product("ten-off", 100, withDiscount("10%")),
		product("zero-pct", 100, withDiscount("0%")),
		product("zero", 100, withDiscount("0")),
		product("blank", 100, withDiscount("  ")),
	}

	assert.Equal(t, []string{"ten-off"}, names(Apply(catalog, "sale", FilterState{})))
}

func TestPriceBounds(t *testing.T) {
	catalog := []models.Product{
		product("cheap", 50),
		product("mid", 150),
		product("dear", 500),
	}

	got := Apply(catalog, "", FilterState{PriceMin: "100", PriceMax: "200"})
	assert.Equal(t, []string{"mid"}, names(got))

	// Unparseable bounds read as no bound at all.
	got = Apply(catalog, "", FilterState{PriceMin: "abc", PriceMax: ""})
	assert.Len(t, got, 3)
}

func TestColorMatchingIncludesImageKeys(t *testing.T) {
	withImages := product("imgs", 100)
	withImages.ImageURLs = models.ImageMap{"Ocean Blue": {"a.webp"}}

	withColors := product("cols", 100)
	withColors.Colors = []string{"Crimson Red"}

	plain := product("plain", 100)

	catalog := []models.Product{withImages, withColors, plain}

	got := Apply(catalog, "", FilterState{Colors: []string{"blue"}})
	assert.Equal(t, []string{"imgs"}, names(got))

	got = Apply(catalog, "", FilterState{Colors: []string{"red"}})
	assert.Equal(t, []string{"cols"}, names(got))
}

func TestSortStability(t *testing.T) {
	catalog := []models.Product{
		product("b", 50),
		product("a", 10),
		product("c", 30),
	}

	asc := Apply(catalog, "", FilterState{Sort: SortPriceAsc})
	assert.Equal(t, []string{"a", "c", "b"}, names(asc))

	desc := Apply(catalog, "", FilterState{Sort: SortPriceDesc})
	assert.Equal(t, []string{"b", "c", "a"}, names(desc))

	byName := Apply(catalog, "", FilterState{Sort: SortNameAsc})
	assert.Equal(t, []string{"a", "b", "c"}, names(byName))
}

func TestDefaultSortIsNewestFirst(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	catalog := []models.Product{
		product("old", 10, withCreatedAt(base)),
		product("new", 10, withCreatedAt(base.Add(48*time.Hour))),
		product("mid", 10, withCreatedAt(base.Add(24*time.Hour))),
	}

	got := Apply(catalog, "", FilterState{})
	assert.Equal(t, []string{"new", "mid", "old"}, names(got))
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	catalog := []models.Product{
		product("b", 50),
		product("a", 10),
	}

	Apply(catalog, "", FilterState{Sort: SortPriceAsc})
	assert.Equal(t, []string{"b", "a"}, names(catalog))
}
