package models

import "strings"

// MenuItem is one dish or drink in the catalog. Items are never edited in
// place: they are added, looked up and deleted as whole values.
type MenuItem struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	MainCategory string `json:"main_category"`
}

// Taxonomy maps subcategories to their main category. MainCategories keeps
// the display order; Fallback is used for subcategories the map does not know.
type Taxonomy struct {
	MainCategories []string
	Subcategories  map[string][]string
	Fallback       string
}

// MainFor returns the main category owning the given subcategory, or the
// fallback when the subcategory is unrecognized. Matching is
// case-insensitive, same as catalog lookups.
func (t Taxonomy) MainFor(category string) string {
	for _, main := range t.MainCategories {
		for _, sub := range t.Subcategories[main] {
			if strings.EqualFold(sub, category) {
				return main
			}
		}
	}
	return t.Fallback
}

// SubcategoriesOf returns the ordered subcategories of a main category,
// nil for an unknown main category.
func (t Taxonomy) SubcategoriesOf(main string) []string {
	return t.Subcategories[main]
}

// Contains reports whether main is one of the top-level categories.
func (t Taxonomy) Contains(main string) bool {
	for _, m := range t.MainCategories {
		if m == main {
			return true
		}
	}
	return false
}
