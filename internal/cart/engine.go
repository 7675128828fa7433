package cart

import (
	"context"

	"velora_back_end/internal/kvstore"
	"velora_back_end/internal/models"
)

// Engine maintient le panier de la session active. Chaque mutation recompte
// les champs dérivés puis persiste l'instantané dans le scope session,
// exactement comme l'ancien panier Redis sous cart:<id>.
type Engine struct {
	store kvstore.Store
}

func NewEngine(store kvstore.Store) *Engine {
	return &Engine{store: store}
}

// Get charge le panier courant. Panier absent ou corrompu = panier vide.
func (e *Engine) Get(ctx context.Context) (models.Cart, error) {
	var c models.Cart
	if _, err := kvstore.LoadJSON(ctx, e.store, kvstore.KeyCart, &c); err != nil {
		return models.Cart{Items: []models.CartItem{}}, err
	}
	if c.Items == nil {
		c.Items = []models.CartItem{}
	}
	c.Recompute()
	return c, nil
}

// AddItem ajoute une unité du produit. Au plus une ligne par produit : si la
// ligne existe déjà, sa quantité est incrémentée au lieu d'être dupliquée.
// Prix, image et catégorie sont capturés à cet instant.
func (e *Engine) AddItem(ctx context.Context, p models.Product) (models.Cart, error) {
	c, err := e.Get(ctx)
	if err != nil {
		return c, err
	}

	if i := c.FindItem(p.ID); i >= 0 {
		c.Items[i].Quantity++
	} else {
		c.Items = append(c.Items, models.CartItem{
			ProductID:     p.ID,
			Name:          p.Name,
			Price:         p.Price,
			OriginalPrice: p.OriginalPrice,
			Image:         p.Image,
			Category:      p.Category,
			Quantity:      1,
		})
	}

	return e.save(ctx, c)
}

// UpdateQuantity fixe la quantité d'une ligne. Une quantité ≤ 0 supprime la
// ligne. Idempotent : rappeler avec la même valeur ne change rien.
func (e *Engine) UpdateQuantity(ctx context.Context, productID, quantity int) (models.Cart, error) {
	if quantity <= 0 {
		return e.RemoveItem(ctx, productID)
	}

	c, err := e.Get(ctx)
	if err != nil {
		return c, err
	}
	if i := c.FindItem(productID); i >= 0 {
		c.Items[i].Quantity = quantity
	}
	return e.save(ctx, c)
}

// RemoveItem retire la ligne du produit ; no-op si elle est absente.
func (e *Engine) RemoveItem(ctx context.Context, productID int) (models.Cart, error) {
	c, err := e.Get(ctx)
	if err != nil {
		return c, err
	}

	kept := make([]models.CartItem, 0, len(c.Items))
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	return e.save(ctx, c)
}

// Clear vide le panier (après commande ou sur demande explicite).
func (e *Engine) Clear(ctx context.Context) error {
	return e.store.Delete(ctx, kvstore.KeyCart)
}

func (e *Engine) save(ctx context.Context, c models.Cart) (models.Cart, error) {
	c.Recompute()
	if err := kvstore.SaveJSON(ctx, e.store, kvstore.KeyCart, c); err != nil {
		return c, err
	}
	return c, nil
}
