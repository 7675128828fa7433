package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/kvstore"
	"velora_back_end/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

var (
	headphones = models.Product{
		ID:            1,
		Name:          "Premium Wireless Headphones",
		Price:         299.99,
		OriginalPrice: floatPtr(399.99),
		Image:         "img1",
		Category:      "Electronics",
	}
	stand = models.Product{
		ID:       2,
		Name:     "Modern Laptop Stand",
		Price:    89.99,
		Image:    "img2",
		Category: "Electronics",
	}
)

func TestGetEmptyCart(t *testing.T) {
	eng := NewEngine(kvstore.NewMemory())

	cart, err := eng.Get(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, cart.Items)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.ItemCount)
	assert.Zero(t, cart.Total)
}

func TestAddItemMergesOnSecondAdd(t *testing.T) {
	eng := NewEngine(kvstore.NewMemory())
	ctx := context.Background()

	cart, err := eng.AddItem(ctx, headphones)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)

	// deuxième ajout du même produit : la ligne existante est incrémentée
	cart, err = eng.AddItem(ctx, headphones)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.ItemCount)
	assert.InDelta(t, 599.98, cart.Total, 0.001)
}

func TestAddItemCapturesSnapshot(t *testing.T) {
	eng := NewEngine(kvstore.NewMemory())

	cart, err := eng.AddItem(context.Background(), headphones)
	require.NoError(t, err)

	item := cart.Items[0]
	assert.Equal(t, headphones.Price, item.Price)
	require.NotNil(t, item.OriginalPrice)
	assert.Equal(t, 399.99, *item.OriginalPrice)
	assert.Equal(t, headphones.Image, item.Image)
	assert.Equal(t, headphones.Category, item.Category)
}

func TestUpdateQuantity(t *testing.T) {
	eng := NewEngine(kvstore.NewMemory())
	ctx := context.Background()

	_, err := eng.AddItem(ctx, headphones)
	require.NoError(t, err)
	_, err = eng.AddItem(ctx, stand)
	require.NoError(t, err)

	cart, err := eng.UpdateQuantity(ctx, headphones.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[cart.FindItem(headphones.ID)].Quantity)
	assert.Equal(t, 6, cart.ItemCount)

	// quantité ≤ 0 : la ligne est retirée
	cart, err = eng.UpdateQuantity(ctx, headphones.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, -1, cart.FindItem(headphones.ID))
	require.Len(t, cart.Items, 1)

	// produit absent : no-op
	cart, err = eng.UpdateQuantity(ctx, 999, 3)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
}

func TestRemoveItem(t *testing.T) {
	eng := NewEngine(kvstore.NewMemory())
	ctx := context.Background()

	_, err := eng.AddItem(ctx, headphones)
	require.NoError(t, err)

	cart, err := eng.RemoveItem(ctx, headphones.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total)

	// retrait idempotent
	cart, err = eng.RemoveItem(ctx, headphones.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestClear(t *testing.T) {
	eng := NewEngine(kvstore.NewMemory())
	ctx := context.Background()

	_, err := eng.AddItem(ctx, headphones)
	require.NoError(t, err)
	require.NoError(t, eng.Clear(ctx))

	cart, err := eng.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestTotalsInvariant(t *testing.T) {
	eng := NewEngine(kvstore.NewMemory())
	ctx := context.Background()

	_, err := eng.AddItem(ctx, headphones)
	require.NoError(t, err)
	_, err = eng.AddItem(ctx, stand)
	require.NoError(t, err)
	cart, err := eng.UpdateQuantity(ctx, stand.ID, 3)
	require.NoError(t, err)

	wantTotal := 0.0
	wantCount := 0
	for _, item := range cart.Items {
		wantTotal += item.Price * float64(item.Quantity)
		wantCount += item.Quantity
	}
	assert.InDelta(t, wantTotal, cart.Total, 0.001)
	assert.Equal(t, wantCount, cart.ItemCount)
}
