package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadJSONAbsentKey(t *testing.T) {
	store := NewMemory()

	var out []string
	found, err := LoadJSON(context.Background(), store, "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}

func TestLoadJSONCorruptValue(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "broken", "{not json"))

	// une valeur corrompue se comporte comme une valeur absente
	var out map[string]int
	found, err := LoadJSON(ctx, store, "broken", &out)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, out)
}

func TestLoadJSONStoredEmptyList(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "list", "[]"))

	// une liste vide stockée n'est PAS une clé absente
	var out []string
	found, err := LoadJSON(ctx, store, "list", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, out)
}

func TestSaveThenLoadJSON(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	type record struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, SaveJSON(ctx, store, "rec", record{Name: "velora", Count: 3}))

	var out record
	found, err := LoadJSON(ctx, store, "rec", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, record{Name: "velora", Count: 3}, out)
}

func TestMemoryDelete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "v"))
	require.NoError(t, store.Delete(ctx, "k"))

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
