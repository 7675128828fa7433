package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/account"
	"velora_back_end/internal/catalog"
	"velora_back_end/internal/middleware"
)

// GetWishlist — GET /api/wishlist
func GetWishlist(c *gin.Context) {
	sess := middleware.GetSession(c)
	user, err := sess.CurrentUser(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur session"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": account.ErrNoActiveAccount.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": user.Wishlist})
}

// ToggleWishlist — POST /api/wishlist/toggle
// Deux appels sur le même produit ramènent la wishlist à son état initial.
func ToggleWishlist(c *gin.Context) {
	var input struct {
		ProductID int `json:"productId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	ctx := c.Request.Context()
	product, err := Catalog.FindProduct(ctx, input.ProductID)
	if errors.Is(err, catalog.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}

	added, err := Registry.ToggleWishlist(ctx, middleware.GetSession(c), product)
	if errors.Is(err, account.ErrNoActiveAccount) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour wishlist"})
		return
	}

	message := "Produit retiré de la wishlist"
	if added {
		message = "Produit ajouté à la wishlist"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "added": added})
}

// IsInWishlist — GET /api/wishlist/contains/:productId
func IsInWishlist(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	inWishlist := Registry.IsInWishlist(c.Request.Context(), middleware.GetSession(c), productID)
	c.JSON(http.StatusOK, gin.H{"inWishlist": inWishlist})
}
