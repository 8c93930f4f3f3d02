package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSeed_Loads(t *testing.T) {
	seed, err := DefaultSeed()
	require.NoError(t, err)

	assert.Equal(t, int64(123), seed.RandomSeed)
	assert.Len(t, seed.Categories, 12)
	assert.Len(t, seed.Marts, 4)
	assert.Len(t, seed.Products, 6)
	assert.False(t, seed.Marts[3].IsOpen)
}

func TestGenerate_Deterministic(t *testing.T) {
	seed, err := DefaultSeed()
	require.NoError(t, err)

	first := seed.Generate()
	second := seed.Generate()

	require.Len(t, first, 25)
	assert.Equal(t, first, second)
}

func TestGenerate_RespectsRangesAndFlags(t *testing.T) {
	seed, err := DefaultSeed()
	require.NoError(t, err)

	for _, p := range seed.Generate() {
		assert.GreaterOrEqual(t, p.Price, int64(40), p.Name)
		assert.LessOrEqual(t, p.Price, int64(500), p.Name)
		assert.GreaterOrEqual(t, p.MRP, int64(550), p.Name)
		assert.LessOrEqual(t, p.MRP, int64(800), p.Name)
		assert.NotEmpty(t, p.MartID)

		if p.CategoryID == "bakery" {
			assert.Equal(t, "1 pc", p.Weight)
			assert.NotEmpty(t, p.Image)
		} else {
			assert.Equal(t, "1 kg", p.Weight)
		}
		assert.Equal(t, p.CategoryID != "meat", p.IsVegetarian)
	}
}

func TestLoadSeed_RejectsNegativePrices(t *testing.T) {
	yml := `
random_seed: 1
price_range: {min: -5, max: 10}
mrp_range: {min: 10, max: 20}
marts:
  - {id: m1, name: One, rating: 4}
`
	_, err := LoadSeed(strings.NewReader(yml))
	assert.ErrorIs(t, err, ErrInvalidSeed)
}

func TestLoadSeed_RejectsOversizedPrices(t *testing.T) {
	yml := `
random_seed: 1
price_range: {min: 0, max: 9223372036854775807}
mrp_range: {min: 10, max: 20}
marts:
  - {id: m1, name: One, rating: 4}
`
	_, err := LoadSeed(strings.NewReader(yml))
	assert.ErrorIs(t, err, ErrInvalidSeed)

	seed, err := DefaultSeed()
	require.NoError(t, err)
	seed.MRPRange.Max = MaxPrice + 1
	assert.ErrorIs(t, seed.Validate(), ErrInvalidSeed)
}

func TestLoadSeed_RejectsUnknownFields(t *testing.T) {
	_, err := LoadSeed(strings.NewReader("random_seed: 1\nunexpected: true\n"))
	assert.Error(t, err)
}

func TestLoadSeed_RejectsDuplicateMarts(t *testing.T) {
	yml := `
price_range: {min: 1, max: 2}
mrp_range: {min: 1, max: 2}
marts:
  - {id: m1, name: One}
  - {id: m1, name: Again}
`
	_, err := LoadSeed(strings.NewReader(yml))
	assert.ErrorIs(t, err, ErrInvalidSeed)
}
