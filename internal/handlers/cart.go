package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/cart"
	"velora_back_end/internal/catalog"
	"velora_back_end/internal/middleware"
)

func cartEngine(c *gin.Context) *cart.Engine {
	return cart.NewEngine(middleware.GetSession(c).Store())
}

// GetCart — GET /api/cart
func GetCart(c *gin.Context) {
	current, err := cartEngine(c).Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture panier"})
		return
	}
	c.JSON(http.StatusOK, current)
}

// AddToCart — POST /api/cart/add
// Le produit est relu du catalogue : la ligne capture prix, image et
// catégorie à cet instant.
func AddToCart(c *gin.Context) {
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

	updated, err := cartEngine(c).AddItem(ctx, product)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"cart":    updated,
	})
}

// UpdateCartQuantity — PUT /api/cart/:productId
// Quantité ≤ 0 = suppression de la ligne. Idempotent.
func UpdateCartQuantity(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	updated, err := cartEngine(c).UpdateQuantity(c.Request.Context(), productID, input.Quantity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Quantité mise à jour",
		"cart":    updated,
	})
}

// RemoveFromCart — DELETE /api/cart/:productId
func RemoveFromCart(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	updated, err := cartEngine(c).RemoveItem(c.Request.Context(), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"cart":    updated,
	})
}

// ClearCart — DELETE /api/cart
func ClearCart(c *gin.Context) {
	if err := cartEngine(c).Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Panier vidé avec succès"})
}
