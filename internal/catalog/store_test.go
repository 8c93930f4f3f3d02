package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanzeelaayaz69/kashcart/internal/domain"
)

func newTestStore() *Store {
	marts := []domain.Mart{
		{ID: "m1", Name: "Pick N Choose", Tags: []string{"Groceries", "Imported"}, IsOpen: true},
		{ID: "m2", Name: "Local Kandur", Tags: []string{"Bakery"}, IsOpen: true},
	}
	products := []domain.Product{
		{ID: "p1", Name: "Potatoes", Price: 40, CategoryID: "veg", MartID: "m1"},
		{ID: "p2", Name: "Kulcha", Price: 20, CategoryID: "bakery", MartID: "m2"},
		{ID: "p3", Name: "Onions", Price: 30, CategoryID: "veg", MartID: "m2"},
		{ID: "p4", Name: "Fresh Milk", Price: 60, CategoryID: "dairy", MartID: "m1"},
	}
	return NewFromProducts(nil, marts, products, map[string]string{"Vegetables": "veg"})
}

func TestNew_FromDefaultSeed(t *testing.T) {
	seed, err := DefaultSeed()
	require.NoError(t, err)

	s, err := New(seed)
	require.NoError(t, err)
	assert.Len(t, s.Products(), 25)
	assert.Len(t, s.Categories(), 12)

	for _, p := range s.Products() {
		got, ok := s.Product(p.ID)
		require.True(t, ok)
		assert.Equal(t, p, got)
	}
}

func TestProduct_NotFound(t *testing.T) {
	s := newTestStore()
	_, ok := s.Product("missing")
	assert.False(t, ok)
}

func TestProductsByMart(t *testing.T) {
	s := newTestStore()

	all := s.ProductsByMart("m1", "")
	assert.Len(t, all, 2)

	assert.Len(t, s.ProductsByMart("m1", "All"), 2)
	assert.Len(t, s.ProductsByMart("m2", "VEG"), 1)

	aliased := s.ProductsByMart("m1", "Vegetables")
	require.Len(t, aliased, 1)
	assert.Equal(t, "p1", aliased[0].ID)

	assert.Empty(t, s.ProductsByMart("unknown", ""))
}

func TestProductsByCategory(t *testing.T) {
	s := newTestStore()
	assert.Len(t, s.ProductsByCategory("veg"), 2)
	assert.Empty(t, s.ProductsByCategory("meat"))
}

func TestSearch(t *testing.T) {
	s := newTestStore()

	assert.Empty(t, s.Search(""))
	assert.Empty(t, s.Search("   "))

	byName := s.Search("milk")
	require.Len(t, byName, 1)
	assert.Equal(t, "p4", byName[0].ID)

	byCategory := s.Search("Bak")
	require.Len(t, byCategory, 1)
	assert.Equal(t, "p2", byCategory[0].ID)
}

func TestFilterMarts(t *testing.T) {
	s := newTestStore()

	assert.Len(t, s.FilterMarts(""), 2)
	byTag := s.FilterMarts("import")
	require.Len(t, byTag, 1)
	assert.Equal(t, "m1", byTag[0].ID)
	assert.Empty(t, s.FilterMarts("pharmacy"))
}

func TestMarts_ReturnsCopies(t *testing.T) {
	s := newTestStore()

	m, ok := s.Mart("m1")
	require.True(t, ok)
	m.Tags[0] = "changed"
	m.Name = "changed"

	again, _ := s.Mart("m1")
	assert.Equal(t, "Groceries", again.Tags[0])
	assert.Equal(t, "Pick N Choose", again.Name)
	assert.Equal(t, "Unknown Mart", s.MartName("nope"))
}
