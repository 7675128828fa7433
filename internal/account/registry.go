package account

import (
	"context"
	"errors"
	"log"

	"velora_back_end/internal/kvstore"
	"velora_back_end/internal/models"
	"velora_back_end/internal/session"
	"velora_back_end/internal/utils"
)

var (
	ErrMissingFields    = errors.New("nom, email et mot de passe requis")
	ErrDuplicateAccount = errors.New("un compte existe déjà avec cet email")
	ErrUnknownAccount   = errors.New("aucun compte pour cet email")
	ErrNoActiveAccount  = errors.New("vous devez être connecté")
)

// Registry gère le registre durable des comptes sous la clé ecommerce_users.
// L'email est la clé d'unicité, comparée en exact-match (sensible à la casse).
type Registry struct {
	durable kvstore.Store
}

func NewRegistry(durable kvstore.Store) *Registry {
	return &Registry{durable: durable}
}

// Users charge le registre complet, avec passe de normalisation sur chaque
// compte (anciens enregistrements sans orders/wishlist).
func (r *Registry) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := kvstore.LoadJSON(ctx, r.durable, kvstore.KeyUsers, &users); err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Normalize()
	}
	return users, nil
}

func (r *Registry) saveUsers(ctx context.Context, users []models.User) error {
	return kvstore.SaveJSON(ctx, r.durable, kvstore.KeyUsers, users)
}

// Register crée un compte et le rend actif dans la session. Échoue sans rien
// muter si l'email est déjà pris. Le mot de passe est hashé au repos, même
// si le login classique ne le vérifie pas.
func (r *Registry) Register(ctx context.Context, sess *session.Session, email, name, password string) (models.User, error) {
	if email == "" || name == "" || password == "" {
		return models.User{}, ErrMissingFields
	}

	users, err := r.Users(ctx)
	if err != nil {
		return models.User{}, err
	}
	for _, u := range users {
		if u.Email == email {
			return models.User{}, ErrDuplicateAccount
		}
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Orders:       []models.Order{},
		Wishlist:     []models.Product{},
	}

	users = append(users, user)
	if err := r.saveUsers(ctx, users); err != nil {
		return models.User{}, err
	}
	// La copie de session ne porte jamais le hash.
	if err := sess.SetCurrentUser(ctx, user.Public()); err != nil {
		return models.User{}, err
	}

	log.Printf("✅ Compte créé: %s", email)
	return user, nil
}

// Login recherche le compte par email et le rend actif. Le mot de passe
// n'est volontairement pas vérifié ici : seul le raccourci admin à
// identifiants fixes contrôle ses credentials.
func (r *Registry) Login(ctx context.Context, sess *session.Session, email string) (models.User, error) {
	users, err := r.Users(ctx)
	if err != nil {
		return models.User{}, err
	}

	for _, u := range users {
		if u.Email == email {
			if err := sess.SetCurrentUser(ctx, u.Public()); err != nil {
				return models.User{}, err
			}
			return u, nil
		}
	}
	return models.User{}, ErrUnknownAccount
}

// Logout efface la référence de compte actif. Le registre durable n'est pas
// touché.
func (r *Registry) Logout(ctx context.Context, sess *session.Session) error {
	return sess.ClearCurrentUser(ctx)
}

// ToggleWishlist ajoute ou retire le produit de la wishlist du compte actif.
// Deux appels successifs ramènent la wishlist à son état initial.
func (r *Registry) ToggleWishlist(ctx context.Context, sess *session.Session, product models.Product) (added bool, err error) {
	user, err := sess.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, ErrNoActiveAccount
	}

	exists := false
	kept := make([]models.Product, 0, len(user.Wishlist))
	for _, p := range user.Wishlist {
		if p.ID == product.ID {
			exists = true
			continue
		}
		kept = append(kept, p)
	}

	if exists {
		user.Wishlist = kept
	} else {
		user.Wishlist = append(user.Wishlist, product)
	}

	if err := r.persistUser(ctx, sess, *user); err != nil {
		return false, err
	}
	return !exists, nil
}

// IsInWishlist teste l'appartenance ; faux pour un invité.
func (r *Registry) IsInWishlist(ctx context.Context, sess *session.Session, productID int) bool {
	user, err := sess.CurrentUser(ctx)
	if err != nil || user == nil {
		return false
	}
	for _, p := range user.Wishlist {
		if p.ID == productID {
			return true
		}
	}
	return false
}

// AddOrder insère la commande en tête de l'historique du compte actif
// (la plus récente d'abord). No-op pour un invité.
func (r *Registry) AddOrder(ctx context.Context, sess *session.Session, order models.Order) error {
	user, err := sess.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNoActiveAccount
	}

	user.Orders = append([]models.Order{order}, user.Orders...)
	return r.persistUser(ctx, sess, *user)
}

// DeleteOrder retire la commande de l'historique du compte actif.
func (r *Registry) DeleteOrder(ctx context.Context, sess *session.Session, orderID string) error {
	user, err := sess.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNoActiveAccount
	}

	kept := make([]models.Order, 0, len(user.Orders))
	for _, o := range user.Orders {
		if o.ID != orderID {
			kept = append(kept, o)
		}
	}
	user.Orders = kept
	return r.persistUser(ctx, sess, *user)
}

// persistUser écrit le compte mis à jour aux deux endroits : la copie de
// session ET l'entrée correspondante du registre durable (lookup par email).
func (r *Registry) persistUser(ctx context.Context, sess *session.Session, user models.User) error {
	if err := sess.SetCurrentUser(ctx, user.Public()); err != nil {
		return err
	}

	users, err := r.Users(ctx)
	if err != nil {
		return err
	}
	matched := false
	for i := range users {
		if users[i].Email == user.Email {
			// La copie de session n'a pas de hash : on garde celui du registre.
			if user.PasswordHash == "" {
				user.PasswordHash = users[i].PasswordHash
			}
			users[i] = user
			matched = true
		}
	}
	if !matched {
		// Compte supprimé du registre entre-temps : la copie de session
		// continue de vivre seule, on le signale au lieu de l'ignorer.
		log.Printf("⚠️ Compte %s absent du registre durable, copie de session seule mise à jour", user.Email)
		return nil
	}
	return r.saveUsers(ctx, users)
}
