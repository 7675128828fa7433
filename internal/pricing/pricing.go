package pricing

import (
	"errors"
	"strings"

	"velora_back_end/internal/models"
)

const (
	// Livraison offerte au-dessus de 100, sinon forfait fixe.
	FreeShippingThreshold = 100.0
	FlatShippingFee       = 9.99

	// TVA forfaitaire de 8%, appliquée au sous-total uniquement (pas aux
	// frais de port, et avant remise promo).
	TaxRate = 0.08
)

var ErrInvalidPromoCode = errors.New("code promo invalide")

// Table fixe des codes promo → pourcentage de remise. Non configurable.
var promoCodes = map[string]float64{
	"SAVE10":    10,
	"WELCOME15": 15,
	"FIRST20":   20,
}

// LookupPromoCode résout un code promo (insensible à la casse). Un code vide
// vaut 0 sans erreur ; un code inconnu vaut 0 avec rejet.
func LookupPromoCode(code string) (float64, error) {
	if code == "" {
		return 0, nil
	}
	if percent, ok := promoCodes[strings.ToUpper(code)]; ok {
		return percent, nil
	}
	return 0, ErrInvalidPromoCode
}

// Totals est l'instantané de prix calculé au moment du checkout.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	Savings       float64 `json:"savings"`
	Shipping      float64 `json:"shipping"`
	Tax           float64 `json:"tax"`
	PromoPercent  float64 `json:"promoPercent"`
	PromoDiscount float64 `json:"promoDiscount"`
	Total         float64 `json:"total"`
}

// ComputeTotals est une fonction pure : aucun accès store, aucun état.
// L'ordre des opérations compte : la taxe est calculée sur le sous-total
// NON remisé, la remise promo est soustraite en dernier.
func ComputeTotals(cart models.Cart, promoPercent float64) Totals {
	t := Totals{
		Subtotal:     cart.Total,
		PromoPercent: promoPercent,
	}

	for _, item := range cart.Items {
		original := item.Price
		if item.OriginalPrice != nil {
			original = *item.OriginalPrice
		}
		t.Savings += (original - item.Price) * float64(item.Quantity)
	}

	if t.Subtotal > FreeShippingThreshold {
		t.Shipping = 0
	} else {
		t.Shipping = FlatShippingFee
	}

	t.Tax = t.Subtotal * TaxRate
	t.PromoDiscount = t.Subtotal * promoPercent / 100
	t.Total = t.Subtotal + t.Shipping + t.Tax - t.PromoDiscount

	return t
}
