package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/kvstore"
	"velora_back_end/internal/models"
)

func TestProductsSeedsDefaults(t *testing.T) {
	cat := New(kvstore.NewMemory())

	products, err := cat.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 4)
	assert.Equal(t, "Premium Wireless Headphones", products[0].Name)
	assert.Equal(t, 1, products[0].Stock)
}

func TestProductsRepairsLegacyStock(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()

	stale := []models.Product{
		{ID: 1, Name: "A", Stock: 10},
		{ID: 2, Name: "B", Stock: 0},
		{ID: 3, Name: "C", Stock: 4},
	}
	require.NoError(t, kvstore.SaveJSON(ctx, store, kvstore.KeyProducts, stale))

	cat := New(store)
	products, err := cat.Products(ctx)
	require.NoError(t, err)

	// seul le placeholder 10 est réparé ; 0 est un vrai stock épuisé
	assert.Equal(t, 1, products[0].Stock)
	assert.Equal(t, 0, products[1].Stock)
	assert.Equal(t, 4, products[2].Stock)

	// la réparation est persistée
	var persisted []models.Product
	_, err = kvstore.LoadJSON(ctx, store, kvstore.KeyProducts, &persisted)
	require.NoError(t, err)
	assert.Equal(t, 1, persisted[0].Stock)
}

func TestEmptiedCatalogStaysEmpty(t *testing.T) {
	cat := New(kvstore.NewMemory())
	ctx := context.Background()

	// semis initial, puis l'admin supprime tout le catalogue
	products, err := cat.Products(ctx)
	require.NoError(t, err)
	for _, p := range products {
		require.NoError(t, cat.DeleteProduct(ctx, p.ID))
	}

	// un catalogue vidé n'est pas re-semé : seule une clé absente l'est
	products, err = cat.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestStoredEmptyListNotReseeded(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()
	require.NoError(t, kvstore.SaveJSON(ctx, store, kvstore.KeyProducts, []models.Product{}))

	products, err := New(store).Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestAddProductAssignsNextID(t *testing.T) {
	cat := New(kvstore.NewMemory())
	ctx := context.Background()

	added, err := cat.AddProduct(ctx, models.Product{Name: "New Thing", Price: 19.99, Category: "Electronics"})
	require.NoError(t, err)
	assert.Equal(t, 5, added.ID)

	found, err := cat.FindProduct(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "New Thing", found.Name)
}

func TestFindProductUnknown(t *testing.T) {
	cat := New(kvstore.NewMemory())

	_, err := cat.FindProduct(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	cat := New(kvstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, cat.DeleteProduct(ctx, 1))
	_, err := cat.FindProduct(ctx, 1)
	assert.ErrorIs(t, err, ErrProductNotFound)

	assert.ErrorIs(t, cat.DeleteProduct(ctx, 1), ErrProductNotFound)
}

func TestSetStockFloorsAtZero(t *testing.T) {
	cat := New(kvstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, cat.SetStock(ctx, 1, -3))
	p, err := cat.FindProduct(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, p.Stock)
}

func TestCategoriesRecomputeCounts(t *testing.T) {
	cat := New(kvstore.NewMemory())
	ctx := context.Background()

	categories, err := cat.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 3)

	assert.Equal(t, "Electronics", categories[0].Name)
	assert.Equal(t, 2, categories[0].Count)
	assert.Equal(t, "Fashion", categories[1].Name)
	assert.Equal(t, 1, categories[1].Count)
	assert.NotEmpty(t, categories[0].Image)

	// l'ajout d'un produit dans une catégorie inédite crée l'agrégat
	_, err = cat.AddProduct(ctx, models.Product{Name: "Racket", Price: 30, Category: "Sports"})
	require.NoError(t, err)

	categories, err = cat.Categories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 4)
	assert.Equal(t, "Sports", categories[3].Name)
	assert.Equal(t, 1, categories[3].Count)
}

func TestBrowseFilters(t *testing.T) {
	cat := New(kvstore.NewMemory())
	ctx := context.Background()

	results, err := cat.Browse(ctx, BrowseOptions{Search: "laptop"})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Modern Laptop Stand", results[0].Name)

	results, err = cat.Browse(ctx, BrowseOptions{Category: "Electronics"})
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// "all" ne filtre pas
	results, err = cat.Browse(ctx, BrowseOptions{Category: "all"})
	require.NoError(t, err)
	assert.Len(t, results, 4)

	results, err = cat.Browse(ctx, BrowseOptions{MinPrice: 50, MaxPrice: 300})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestBrowseSorts(t *testing.T) {
	cat := New(kvstore.NewMemory())
	ctx := context.Background()

	results, err := cat.Browse(ctx, BrowseOptions{SortBy: "price-low"})
	require.NoError(t, err)
	assert.Equal(t, "Stylish Fashion Top", results[0].Name)
	assert.Equal(t, "Comfortable Lounge Chair", results[3].Name)

	results, err = cat.Browse(ctx, BrowseOptions{SortBy: "price-high"})
	require.NoError(t, err)
	assert.Equal(t, "Comfortable Lounge Chair", results[0].Name)

	results, err = cat.Browse(ctx, BrowseOptions{SortBy: "rating"})
	require.NoError(t, err)
	assert.InDelta(t, 4.9, results[0].Rating, 0.001)

	results, err = cat.Browse(ctx, BrowseOptions{SortBy: "newest"})
	require.NoError(t, err)
	assert.Equal(t, 4, results[0].ID)

	// "featured" : ordre du catalogue
	results, err = cat.Browse(ctx, BrowseOptions{SortBy: "featured"})
	require.NoError(t, err)
	assert.Equal(t, 1, results[0].ID)
}
