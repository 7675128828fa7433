package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/catalog"
)

// GetProducts — GET /api/products
// Filtres et tri en mémoire sur le catalogue complet, comme la page produits.
func GetProducts(c *gin.Context) {
	opts := catalog.BrowseOptions{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		SortBy:   c.DefaultQuery("sort", "featured"),
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		opts.MinPrice = v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		opts.MaxPrice = v
	}

	products, err := Catalog.Browse(c.Request.Context(), opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"total":    len(products),
	})
}

// GetProduct — GET /api/products/:id
func GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	product, err := Catalog.FindProduct(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catalogue"})
		return
	}

	c.JSON(http.StatusOK, product)
}

// GetCategories — GET /api/categories
// Les agrégats sont recalculés à la volée depuis le catalogue.
func GetCategories(c *gin.Context) {
	categories, err := Catalog.Categories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture catégories"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}
