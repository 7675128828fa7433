package kvstore

import (
	"context"
	"encoding/json"
	"log"
)

// Clés du scope durable (survivent aux redémarrages).
const (
	KeyProducts   = "products"
	KeyCategories = "categories"
	KeyUsers      = "ecommerce_users"
	KeyAllOrders  = "all_orders"
)

// Clés du scope session (détruites à l'expiration de la session).
const (
	KeyCurrentUser = "ecommerce_current_user"
	KeyAdminFlag   = "isAdminAuthenticated"
	KeyCart        = "cart"
)

// Store est le collaborateur de persistance : un key-value synchrone qui
// stocke des blobs JSON. Deux scopes en pratique : durable et session.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// LoadJSON décode le blob stocké sous key dans out. Une clé absente ou un
// blob corrompu laisse out à sa valeur zéro : plusieurs sites de lecture
// supposent que le parse réussit toujours, on dégrade donc en silence.
// Le booléen distingue une clé jamais écrite d'une valeur stockée : une
// liste vide persistée n'est pas une clé absente.
func LoadJSON(ctx context.Context, s Store, key string, out interface{}) (bool, error) {
	raw, found, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found || raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		log.Printf("⚠️ Blob corrompu sous %q, valeur par défaut utilisée: %v", key, err)
		return false, nil
	}
	return true, nil
}

// SaveJSON sérialise v et le stocke sous key.
func SaveJSON(ctx context.Context, s Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, string(data))
}
