package models

// CartItem dénormalise le prix, l'image et la catégorie au moment de l'ajout :
// le total du panier reste stable même si le catalogue change ensuite.
type CartItem struct {
	ProductID     int      `json:"productId"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"originalPrice,omitempty"`
	Image         string   `json:"image"`
	Category      string   `json:"category"`
	Quantity      int      `json:"quantity"`
}

type Cart struct {
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"itemCount"`
	Total     float64    `json:"total"`
}

// Recompute met à jour les champs dérivés. Invariant : Total = Σ prix × quantité
// (prix capturé sur la ligne, pas de lookup catalogue).
func (c *Cart) Recompute() {
	count := 0
	total := 0.0
	for _, item := range c.Items {
		count += item.Quantity
		total += item.Price * float64(item.Quantity)
	}
	c.ItemCount = count
	c.Total = total
}

// FindItem retourne l'index de la ligne correspondant au produit, ou -1.
func (c *Cart) FindItem(productID int) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return i
		}
	}
	return -1
}
