package models

import "encoding/json"

// Specification is one label/value pair of a product spec sheet. Kept as an
// ordered slice so the display order survives serialization.
type Specification struct {
	Label string `json:"label" bson:"label"`
	Value string `json:"value" bson:"value"`
}

// Product is a catalog entry. Products are seeded once per session and never
// mutated afterwards.
type Product struct {
	ProductID     string          `json:"id" bson:"productid"`
	Name          string          `json:"name" bson:"name"`
	Description   string          `json:"description" bson:"description"`
	Price         float64         `json:"price" bson:"price"`
	OriginalPrice float64         `json:"originalPrice,omitempty" bson:"originalPrice,omitempty"`
	Image         string          `json:"image,omitempty" bson:"image,omitempty"`
	Images        []string        `json:"images,omitempty" bson:"images,omitempty"`
	Category      string          `json:"category" bson:"category"`
	Rating        float64         `json:"rating" bson:"rating"`
	Reviews       int             `json:"reviews" bson:"reviews"`
	InStock       bool            `json:"inStock" bson:"inStock"`
	Features      []string        `json:"features,omitempty" bson:"features,omitempty"`
	Specs         []Specification `json:"specifications,omitempty" bson:"specifications,omitempty"`
}

// FilterCriteria is the active set of narrowing constraints on the catalog
// view. Zero/nil fields mean "no constraint on that dimension"; all present
// constraints combine with AND.
type FilterCriteria struct {
	Search      string   `json:"search,omitempty"`
	Category    string   `json:"category,omitempty"`
	MinPrice    *float64 `json:"minPrice,omitempty"`
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
	MinRating   *float64 `json:"minRating,omitempty"`
	InStockOnly bool     `json:"inStockOnly,omitempty"`
}

// FilterPatch is a partial update to FilterCriteria. A key present with a
// null value clears that criterion; an absent key leaves it unchanged.
type FilterPatch map[string]json.RawMessage
