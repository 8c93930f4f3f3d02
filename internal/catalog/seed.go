package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/google/uuid"
	"github.com/tanzeelaayaz69/kashcart/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var defaultSeed []byte

var ErrInvalidSeed = errors.New("invalid catalog seed")

// MaxPrice caps seeded prices so line totals and subtotals stay far from
// int64 overflow.
const MaxPrice int64 = 10_000_000

type PriceRange struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

type ProductGroup struct {
	Category string   `yaml:"category"`
	Names    []string `yaml:"names"`
}

// Seed is the static table the catalog is generated from.
type Seed struct {
	RandomSeed              int64             `yaml:"random_seed"`
	PriceRange              PriceRange        `yaml:"price_range"`
	MRPRange                PriceRange        `yaml:"mrp_range"`
	PieceCategories         []string          `yaml:"piece_categories"`
	NonVegetarianCategories []string          `yaml:"non_vegetarian_categories"`
	CategoryAliases         map[string]string `yaml:"category_aliases"`
	Categories              []domain.Category `yaml:"categories"`
	Marts                   []domain.Mart     `yaml:"marts"`
	Products                []ProductGroup    `yaml:"products"`
}

// DefaultSeed returns the embedded storefront seed table.
func DefaultSeed() (Seed, error) {
	return LoadSeed(bytes.NewReader(defaultSeed))
}

func LoadSeedFile(path string) (Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return Seed{}, fmt.Errorf("open catalog seed: %w", err)
	}
	defer f.Close()
	return LoadSeed(f)
}

func LoadSeed(r io.Reader) (Seed, error) {
	var s Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return Seed{}, fmt.Errorf("decode catalog seed: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Seed{}, err
	}
	return s, nil
}

// Validate rejects seeds that would produce negative or oversized prices, or
// products without a mart to belong to.
func (s Seed) Validate() error {
	for _, r := range []PriceRange{s.PriceRange, s.MRPRange} {
		if r.Min < 0 || r.Max < r.Min || r.Max > MaxPrice {
			return fmt.Errorf("%w: price range [%d, %d]", ErrInvalidSeed, r.Min, r.Max)
		}
	}
	if len(s.Marts) == 0 && len(s.Products) > 0 {
		return fmt.Errorf("%w: products without marts", ErrInvalidSeed)
	}
	seen := make(map[string]bool, len(s.Marts))
	for _, m := range s.Marts {
		if m.ID == "" {
			return fmt.Errorf("%w: mart without id", ErrInvalidSeed)
		}
		if seen[m.ID] {
			return fmt.Errorf("%w: duplicate mart %q", ErrInvalidSeed, m.ID)
		}
		if m.Rating < 0 || m.Rating > 5 {
			return fmt.Errorf("%w: mart %q rating %.1f", ErrInvalidSeed, m.ID, m.Rating)
		}
		seen[m.ID] = true
	}
	return nil
}

// Generate expands the seed into products. The same seed always yields the
// same ids, prices and mart assignments.
func (s Seed) Generate() []domain.Product {
	rng := rand.New(rand.NewSource(s.RandomSeed))
	pieces := toSet(s.PieceCategories)
	nonVeg := toSet(s.NonVegetarianCategories)
	images := make(map[string]string, len(s.Categories))
	for _, c := range s.Categories {
		images[c.ID] = c.Image
	}

	var products []domain.Product
	for _, group := range s.Products {
		for _, name := range group.Names {
			id, err := uuid.NewRandomFromReader(rng)
			if err != nil {
				// math/rand never fails to fill a buffer
				panic(err)
			}
			weight := "1 kg"
			if pieces[group.Category] {
				weight = "1 pc"
			}
			products = append(products, domain.Product{
				ID:           id.String(),
				Name:         name,
				Price:        between(rng, s.PriceRange),
				MRP:          between(rng, s.MRPRange),
				Image:        images[group.Category],
				CategoryID:   group.Category,
				MartID:       s.Marts[rng.Intn(len(s.Marts))].ID,
				Weight:       weight,
				IsVegetarian: !nonVeg[group.Category],
			})
		}
	}
	return products
}

func between(rng *rand.Rand, r PriceRange) int64 {
	return r.Min + rng.Int63n(r.Max-r.Min+1)
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
