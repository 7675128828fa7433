package session

import (
	"context"

	"velora_back_end/internal/kvstore"
	"velora_back_end/internal/models"
)

// Session remplace l'état global ambiant de l'ancien front : le compte actif
// et le flag admin vivent dans un objet explicite, adossé au scope session
// du store. Créée à l'arrivée de la requête, détruite avec la session.
type Session struct {
	ID    string
	store kvstore.Store
}

func New(id string, store kvstore.Store) *Session {
	return &Session{ID: id, store: store}
}

// Store expose le scope session (panier, compte actif, flag admin).
func (s *Session) Store() kvstore.Store {
	return s.store
}

// CurrentUser retourne le compte actif, ou nil pour un invité.
func (s *Session) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if _, err := kvstore.LoadJSON(ctx, s.store, kvstore.KeyCurrentUser, &user); err != nil {
		return nil, err
	}
	if user.Email == "" {
		// Clé absente ou blob corrompu : on dégrade en invité.
		return nil, nil
	}
	user.Normalize()
	return &user, nil
}

func (s *Session) SetCurrentUser(ctx context.Context, user models.User) error {
	return kvstore.SaveJSON(ctx, s.store, kvstore.KeyCurrentUser, user)
}

// ClearCurrentUser déconnecte la session sans toucher au registre durable.
func (s *Session) ClearCurrentUser(ctx context.Context) error {
	return s.store.Delete(ctx, kvstore.KeyCurrentUser)
}

// IsAdmin lit le flag admin de la session. Ce flag est indépendant du compte
// actif : c'est un bypass à identifiants fixes, pas un rôle de compte.
func (s *Session) IsAdmin(ctx context.Context) bool {
	raw, found, err := s.store.Get(ctx, kvstore.KeyAdminFlag)
	if err != nil || !found {
		return false
	}
	return raw == "true"
}

func (s *Session) SetAdmin(ctx context.Context, admin bool) error {
	if !admin {
		return s.store.Delete(ctx, kvstore.KeyAdminFlag)
	}
	return s.store.Set(ctx, kvstore.KeyAdminFlag, "true")
}
