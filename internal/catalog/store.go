// Package catalog holds the read-only storefront catalog: categories, marts
// and products generated once from a seed table.
package catalog

import (
	"strings"

	"github.com/tanzeelaayaz69/kashcart/internal/domain"
)

// Store is safe for concurrent use because nothing mutates it after New.
type Store struct {
	categories []domain.Category
	marts      []domain.Mart
	products   []domain.Product
	productIdx map[string]int
	martIdx    map[string]int
	aliases    map[string]string
}

func New(seed Seed) (*Store, error) {
	if err := seed.Validate(); err != nil {
		return nil, err
	}
	return NewFromProducts(seed.Categories, seed.Marts, seed.Generate(), seed.CategoryAliases), nil
}

// NewFromProducts builds a store from an explicit product table.
func NewFromProducts(categories []domain.Category, marts []domain.Mart, products []domain.Product, aliases map[string]string) *Store {
	s := &Store{
		categories: append([]domain.Category(nil), categories...),
		marts:      make([]domain.Mart, len(marts)),
		products:   append([]domain.Product(nil), products...),
		productIdx: make(map[string]int, len(products)),
		martIdx:    make(map[string]int, len(marts)),
		aliases:    make(map[string]string, len(aliases)),
	}
	for i, m := range marts {
		s.marts[i] = copyMart(m)
		s.martIdx[m.ID] = i
	}
	for i, p := range s.products {
		s.productIdx[p.ID] = i
	}
	for k, v := range aliases {
		s.aliases[strings.ToLower(k)] = v
	}
	return s
}

func (s *Store) Categories() []domain.Category {
	return append([]domain.Category(nil), s.categories...)
}

func (s *Store) Marts() []domain.Mart {
	out := make([]domain.Mart, len(s.marts))
	for i, m := range s.marts {
		out[i] = copyMart(m)
	}
	return out
}

func (s *Store) Mart(id string) (domain.Mart, bool) {
	i, ok := s.martIdx[id]
	if !ok {
		return domain.Mart{}, false
	}
	return copyMart(s.marts[i]), true
}

// Product satisfies the cart engine's product lookup.
func (s *Store) Product(id string) (domain.Product, bool) {
	i, ok := s.productIdx[id]
	if !ok {
		return domain.Product{}, false
	}
	return s.products[i], true
}

func (s *Store) Products() []domain.Product {
	return append([]domain.Product(nil), s.products...)
}

// ProductsByMart lists a mart's products. An empty category or "All" means
// every category; otherwise categories match case-insensitively, through the
// seed's aliases as well.
func (s *Store) ProductsByMart(martID, category string) []domain.Product {
	out := []domain.Product{}
	for _, p := range s.products {
		if p.MartID != martID {
			continue
		}
		if category != "" && !strings.EqualFold(category, "All") && !s.categoryMatches(p.CategoryID, category) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (s *Store) ProductsByCategory(categoryID string) []domain.Product {
	out := []domain.Product{}
	for _, p := range s.products {
		if s.categoryMatches(p.CategoryID, categoryID) {
			out = append(out, p)
		}
	}
	return out
}

// Search matches product names and category ids by substring. An empty query
// returns nothing.
func (s *Store) Search(query string) []domain.Product {
	out := []domain.Product{}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return out
	}
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.CategoryID), q) {
			out = append(out, p)
		}
	}
	return out
}

// FilterMarts matches mart names and tags by substring.
func (s *Store) FilterMarts(query string) []domain.Mart {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return s.Marts()
	}
	out := []domain.Mart{}
	for _, m := range s.marts {
		if strings.Contains(strings.ToLower(m.Name), q) || containsTag(m.Tags, q) {
			out = append(out, copyMart(m))
		}
	}
	return out
}

// MartName returns the display name of a mart, or "Unknown Mart".
func (s *Store) MartName(id string) string {
	if m, ok := s.Mart(id); ok {
		return m.Name
	}
	return "Unknown Mart"
}

func (s *Store) categoryMatches(productCategory, wanted string) bool {
	if strings.EqualFold(productCategory, wanted) {
		return true
	}
	alias, ok := s.aliases[strings.ToLower(wanted)]
	return ok && strings.EqualFold(productCategory, alias)
}

func containsTag(tags []string, q string) bool {
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func copyMart(m domain.Mart) domain.Mart {
	m.Tags = append([]string(nil), m.Tags...)
	return m
}
