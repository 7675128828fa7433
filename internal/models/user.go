package models

// User : un compte est identifié par son email (clé unique, sensible à la casse).
// Les commandes sont triées de la plus récente à la plus ancienne.
type User struct {
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"passwordHash,omitempty"`
	Orders       []Order   `json:"orders"`
	Wishlist     []Product `json:"wishlist"`
}

// Public retourne une copie sans le hash du mot de passe (jamais exposé à l'API).
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Normalize répare les champs manquants d'un compte chargé depuis le store
// (anciens enregistrements sans orders/wishlist).
func (u *User) Normalize() {
	if u.Orders == nil {
		u.Orders = []Order{}
	}
	if u.Wishlist == nil {
		u.Wishlist = []Product{}
	}
}
