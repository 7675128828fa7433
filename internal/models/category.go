package models

// Category est un agrégat dérivé du catalogue : le compteur est recalculé
// à partir des produits, jamais édité à la main.
type Category struct {
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	Count int    `json:"count"`
}
