// Package catalog fournit le filtrage en mémoire du catalogue, tel qu'exposé
// à la boutique : recherche plein texte naïve, filtre catégorie et tris.
package catalog

import (
	"sort"
	"strings"

	"ndiougueshop_back_end/internal/models"
)

// Clés de tri acceptées
const (
	SortByName      = "name"
	SortByPriceLow  = "price-low"
	SortByPriceHigh = "price-high"
	SortByFeatured  = "featured"
)

// CategoryAll désactive le filtre catégorie
const CategoryAll = "all"

// Filter applique recherche, filtre catégorie et tri sur une collection déjà
// chargée. Pure : l'entrée n'est jamais modifiée.
func Filter(products []models.Product, searchTerm, categoryID, sortKey string) []models.Product {
	term := strings.ToLower(strings.TrimSpace(searchTerm))

	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		if categoryID != "" && categoryID != CategoryAll && p.CategoryID.String() != categoryID {
			continue
		}
		filtered = append(filtered, p)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		switch sortKey {
		case SortByPriceLow:
			return a.Price < b.Price
		case SortByPriceHigh:
			return a.Price > b.Price
		case SortByFeatured:
			return a.Featured && !b.Featured
		default:
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	})

	return filtered
}
