package catalog

import (
	"testing"

	"ndiougueshop_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	catTextile, _ = gocql.ParseUUID("11111111-1111-1111-1111-111111111111")
	catEpices, _  = gocql.ParseUUID("22222222-2222-2222-2222-222222222222")
)

func sampleProducts() []models.Product {
	return []models.Product{
		{Name: "Tissu Wax Traditionnel", Description: "Tissu wax aux motifs africains", Price: 15000, CategoryID: catTextile, Featured: true},
		{Name: "Boubou Brodé", Description: "Tenue de cérémonie", Price: 45000, CategoryID: catTextile},
		{Name: "Mélange d'Épices Thiéboudienne", Description: "Épices pour le plat national", Price: 3500, CategoryID: catEpices, Featured: true},
		{Name: "Bissap Séché", Description: "Fleurs d'hibiscus pour infusion", Price: 2000, CategoryID: catEpices},
	}
}

func names(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestFilter_SearchMatchesNameAndDescription(t *testing.T) {
	// "wax" n'apparaît que dans le nom, "cérémonie" que dans la description
	got := Filter(sampleProducts(), "wax", "", SortByName)
	assert.Equal(t, []string{"Tissu Wax Traditionnel"}, names(got))

	got = Filter(sampleProducts(), "cérémonie", "", SortByName)
	assert.Equal(t, []string{"Boubou Brodé"}, names(got))
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	got := Filter(sampleProducts(), "  BISSAP ", "", SortByName)
	assert.Equal(t, []string{"Bissap Séché"}, names(got))
}

func TestFilter_ByCategory(t *testing.T) {
	got := Filter(sampleProducts(), "", catEpices.String(), SortByName)
	assert.Equal(t, []string{"Bissap Séché", "Mélange d'Épices Thiéboudienne"}, names(got))
}

func TestFilter_CategoryAllKeepsEverything(t *testing.T) {
	assert.Len(t, Filter(sampleProducts(), "", CategoryAll, SortByName), 4)
	assert.Len(t, Filter(sampleProducts(), "", "", SortByName), 4)
}

func TestFilter_SortByPrice(t *testing.T) {
	low := Filter(sampleProducts(), "", "", SortByPriceLow)
	require.Len(t, low, 4)
	assert.Equal(t, int64(2000), low[0].Price)
	assert.Equal(t, int64(45000), low[3].Price)

	high := Filter(sampleProducts(), "", "", SortByPriceHigh)
	assert.Equal(t, int64(45000), high[0].Price)
	assert.Equal(t, int64(2000), high[3].Price)
}

func TestFilter_SortByFeaturedFirst(t *testing.T) {
	got := Filter(sampleProducts(), "", "", SortByFeatured)
	require.Len(t, got, 4)
	assert.True(t, got[0].Featured)
	assert.True(t, got[1].Featured)
	assert.False(t, got[2].Featured)
	assert.False(t, got[3].Featured)
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	products := sampleProducts()
	Filter(products, "", "", SortByPriceHigh)
	assert.Equal(t, "Tissu Wax Traditionnel", products[0].Name)
}
