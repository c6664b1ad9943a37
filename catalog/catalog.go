package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"vitrina/models"
)

// Provider supplies the product collection. The store only requires a finite
// sequence of well-formed products; where they come from is not its concern.
type Provider interface {
	Products(ctx context.Context) ([]models.Product, error)
}

// Store owns the product collection, the active filter criteria, and the
// current selection. The filtered view is recomputed on every filter or load
// mutation, never patched incrementally.
//
// All mutations serialize under the store's own lock; no ordering is promised
// between operations on different stores started concurrently.
type Store struct {
	provider Provider

	mu       sync.RWMutex
	products []models.Product
	filtered []models.Product
	criteria models.FilterCriteria
	selected *models.Product
}

func NewStore(provider Provider) *Store {
	return &Store{provider: provider}
}

// Load replaces the full product collection from the provider. Idempotent and
// safe to call repeatedly; always a full overwrite, never a merge. The current
// filter criteria are re-applied to the new collection.
func (s *Store) Load(ctx context.Context) error {
	products, err := s.provider.Products(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
	s.applyLocked()
	return nil
}

// SetFilter merges the patch into the current criteria and recomputes the
// filtered view. Keys absent from the patch leave their criterion unchanged;
// a key set to null clears it.
func (s *Store) SetFilter(patch models.FilterPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, raw := range patch {
		clear := len(raw) == 0 || string(raw) == "null"
		switch key {
		case "search":
			if clear {
				s.criteria.Search = ""
				continue
			}
			if err := json.Unmarshal(raw, &s.criteria.Search); err != nil {
				return fmt.Errorf("search: expected string")
			}
		case "category":
			if clear {
				s.criteria.Category = ""
				continue
			}
			if err := json.Unmarshal(raw, &s.criteria.Category); err != nil {
				return fmt.Errorf("category: expected string")
			}
		case "minPrice":
			if clear {
				s.criteria.MinPrice = nil
				continue
			}
			var v float64
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("minPrice: expected number")
			}
			s.criteria.MinPrice = &v
		case "maxPrice":
			if clear {
				s.criteria.MaxPrice = nil
				continue
			}
			var v float64
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("maxPrice: expected number")
			}
			s.criteria.MaxPrice = &v
		case "minRating":
			if clear {
				s.criteria.MinRating = nil
				continue
			}
			var v float64
			if err := json.Unmarshal(raw, &v); err != nil {
				return fmt.Errorf("minRating: expected number")
			}
			s.criteria.MinRating = &v
		case "inStockOnly":
			if clear {
				s.criteria.InStockOnly = false
				continue
			}
			if err := json.Unmarshal(raw, &s.criteria.InStockOnly); err != nil {
				return fmt.Errorf("inStockOnly: expected boolean")
			}
		default:
			return fmt.Errorf("unknown filter field %q", key)
		}
	}

	s.applyLocked()
	return nil
}

// SelectProduct looks a product up by id in the FULL collection, not the
// filtered view, and makes it the active selection. An unknown id clears the
// selection and reports false; it is not an error.
func (s *Store) SelectProduct(id string) (models.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ProductID == id {
			p := s.products[i]
			s.selected = &p
			return p, true
		}
	}
	s.selected = nil
	return models.Product{}, false
}

// Selected returns the active selection, or false when none is set.
func (s *Store) Selected() (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return models.Product{}, false
	}
	return *s.selected, true
}

// Products returns the full collection.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.products...)
}

// Filtered returns the current filtered view. An empty view is a valid
// "no matches" state.
func (s *Store) Filtered() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product(nil), s.filtered...)
}

// Criteria returns the active filter criteria.
func (s *Store) Criteria() models.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// Product resolves a product by id from the full collection without touching
// the selection.
func (s *Store) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ProductID == id {
			return s.products[i], true
		}
	}
	return models.Product{}, false
}

// applyLocked recomputes the filtered view. Each pass narrows the surviving
// set; all criteria AND together, so order only matters for cost.
func (s *Store) applyLocked() {
	filtered := s.products
	c := s.criteria

	if c.Search != "" {
		q := strings.ToLower(c.Search)
		filtered = narrow(filtered, func(p models.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q) ||
				strings.Contains(strings.ToLower(p.Category), q)
		})
	}
	if c.Category != "" {
		filtered = narrow(filtered, func(p models.Product) bool {
			return p.Category == c.Category
		})
	}
	if c.MinPrice != nil {
		filtered = narrow(filtered, func(p models.Product) bool {
			return p.Price >= *c.MinPrice
		})
	}
	if c.MaxPrice != nil {
		filtered = narrow(filtered, func(p models.Product) bool {
			return p.Price <= *c.MaxPrice
		})
	}
	if c.MinRating != nil {
		filtered = narrow(filtered, func(p models.Product) bool {
			return p.Rating >= *c.MinRating
		})
	}
	if c.InStockOnly {
		filtered = narrow(filtered, func(p models.Product) bool {
			return p.InStock
		})
	}

	s.filtered = filtered
}

func narrow(in []models.Product, keep func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(in))
	for _, p := range in {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
