package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velora_back_end/internal/kvstore"
	"velora_back_end/internal/models"
)

func TestCurrentUserGuest(t *testing.T) {
	sess := New("sid", kvstore.NewMemory())

	user, err := sess.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestCurrentUserRoundTrip(t *testing.T) {
	sess := New("sid", kvstore.NewMemory())
	ctx := context.Background()

	require.NoError(t, sess.SetCurrentUser(ctx, models.User{Email: "jane@example.com", Name: "Jane"}))

	user, err := sess.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "Jane", user.Name)
	// normalisation au chargement
	assert.NotNil(t, user.Orders)
	assert.NotNil(t, user.Wishlist)

	require.NoError(t, sess.ClearCurrentUser(ctx))
	user, err = sess.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestCurrentUserCorruptBlob(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, kvstore.KeyCurrentUser, "{broken"))

	// blob corrompu : la session dégrade en invité
	sess := New("sid", store)
	user, err := sess.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestAdminFlag(t *testing.T) {
	sess := New("sid", kvstore.NewMemory())
	ctx := context.Background()

	assert.False(t, sess.IsAdmin(ctx))
	require.NoError(t, sess.SetAdmin(ctx, true))
	assert.True(t, sess.IsAdmin(ctx))
	require.NoError(t, sess.SetAdmin(ctx, false))
	assert.False(t, sess.IsAdmin(ctx))
}
