package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/middleware"
	"velora_back_end/internal/models"
	"velora_back_end/internal/notify"
	"velora_back_end/internal/orders"
	"velora_back_end/internal/pricing"
	"velora_back_end/internal/utils"
)

// ShippingInfo porte les champs requis du formulaire de checkout.
type ShippingInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	City      string `json:"city"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
}

func (s ShippingInfo) validate() error {
	missing := []string{}
	if s.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if s.LastName == "" {
		missing = append(missing, "lastName")
	}
	if s.Email == "" {
		missing = append(missing, "email")
	}
	if s.Address == "" {
		missing = append(missing, "address")
	}
	if s.City == "" {
		missing = append(missing, "city")
	}
	if s.ZipCode == "" {
		missing = append(missing, "zipCode")
	}
	if len(missing) > 0 {
		return fmt.Errorf("champs requis manquants: %v", missing)
	}
	return nil
}

// ApplyPromoCode — POST /api/checkout/promo
// Valide un code et renvoie le pourcentage ; un code inconnu est rejeté.
func ApplyPromoCode(c *gin.Context) {
	var input struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	percent, err := pricing.LookupPromoCode(input.Code)
	if errors.Is(err, pricing.ErrInvalidPromoCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"code": input.Code, "percent": percent})
}

// GetCheckoutTotals — GET /api/checkout/totals?promo=SAVE10
// Totaux d'affichage, calculés sur le panier courant.
func GetCheckoutTotals(c *gin.Context) {
	percent, err := pricing.LookupPromoCode(c.Query("promo"))
	if errors.Is(err, pricing.ErrInvalidPromoCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := cartEngine(c).Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}

	c.JSON(http.StatusOK, pricing.ComputeTotals(current, percent))
}

// PlaceOrder — POST /api/checkout
// Valide, fige le panier en commande, puis tente l'email de confirmation.
// L'échec de l'email est un avertissement : la commande est déjà commise et
// n'est jamais annulée.
func PlaceOrder(c *gin.Context) {
	var input struct {
		Shipping  ShippingInfo `json:"shipping"`
		PromoCode string       `json:"promoCode"`
		// Un invité peut demander la création d'un compte dans la foulée.
		CreateAccount *struct {
			Name     string `json:"name"`
			Password string `json:"password"`
		} `json:"createAccount"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	sess := middleware.GetSession(c)
	ctx := c.Request.Context()

	// Un compte connecté fournit l'email de contact ; un invité doit le saisir.
	user, err := sess.CurrentUser(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur session"})
		return
	}
	contactEmail := input.Shipping.Email
	if user != nil {
		contactEmail = user.Email
	}

	if err := input.Shipping.validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	percent, err := pricing.LookupPromoCode(input.PromoCode)
	if errors.Is(err, pricing.ErrInvalidPromoCode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	eng := cartEngine(c)
	current, err := eng.Get(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	totals := pricing.ComputeTotals(current, percent)

	order, err := Orders.PlaceOrder(ctx, sess, eng, totals)
	if errors.Is(err, orders.ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur placement de la commande"})
		return
	}

	// Création de compte post-commande pour un invité qui l'a demandée.
	// Best-effort aussi : la commande est déjà dans l'index global.
	accountCreated := false
	if user == nil && input.CreateAccount != nil {
		_, err := Registry.Register(ctx, sess, contactEmail, input.CreateAccount.Name, input.CreateAccount.Password)
		if err != nil {
			log.Printf("⚠️ Création de compte post-commande refusée pour %s: %v", contactEmail, err)
		} else if err := Registry.AddOrder(ctx, sess, order); err != nil {
			log.Printf("⚠️ Commande %s non rattachée au nouveau compte: %v", order.ID, err)
		} else {
			accountCreated = true
		}
	}

	// Best-effort : timeout borné côté Sender, pas de rollback.
	emailSent := true
	notifyCtx := context.WithoutCancel(ctx)
	if err := Notifier.SendConfirmation(notifyCtx, notifyConfirmation(order, totals, contactEmail)); err != nil {
		log.Printf("⚠️ Commande %s placée mais email non envoyé: %v", order.ID, err)
		emailSent = false
	}

	resp := gin.H{
		"message":         "Commande placée avec succès",
		"order":           order,
		"totals":          totals,
		"email_sent":      emailSent,
		"account_created": accountCreated,
	}
	if !emailSent {
		resp["warning"] = "La commande est enregistrée mais l'email de confirmation n'a pas pu être envoyé"
	}
	c.JSON(http.StatusCreated, resp)
}

func notifyConfirmation(order models.Order, totals pricing.Totals, to string) notify.ConfirmationRequest {
	return notify.ConfirmationRequest{
		To:      to,
		Subject: fmt.Sprintf("Order Confirmation %s", order.ID),
		Text:    utils.GenerateOrderConfirmationText(order),
		HTML:    utils.GenerateOrderConfirmationHTML(order, totals),
	}
}
