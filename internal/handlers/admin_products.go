package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/catalog"
	"velora_back_end/internal/models"
	"velora_back_end/internal/services"
)

// CreateProduct — POST /api/admin/products
func CreateProduct(c *gin.Context) {
	var input struct {
		Name          string   `json:"name" binding:"required"`
		Price         float64  `json:"price" binding:"required"`
		OriginalPrice *float64 `json:"originalPrice"`
		Image         string   `json:"image"`
		Category      string   `json:"category" binding:"required"`
		Badge         string   `json:"badge"`
		Description   string   `json:"description"`
		Images        []string `json:"images"`
		Stock         int      `json:"stock"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides: " + err.Error()})
		return
	}
	if input.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix doit être positif"})
		return
	}
	if input.OriginalPrice != nil && *input.OriginalPrice < input.Price {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Le prix barré doit être supérieur ou égal au prix"})
		return
	}

	product, err := Catalog.AddProduct(c.Request.Context(), models.Product{
		Name:          input.Name,
		Price:         input.Price,
		OriginalPrice: input.OriginalPrice,
		Image:         input.Image,
		Category:      input.Category,
		Badge:         input.Badge,
		Description:   input.Description,
		Images:        input.Images,
		Stock:         input.Stock,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit"})
		return
	}

	log.Printf("✅ Produit créé: #%d %s", product.ID, product.Name)
	c.JSON(http.StatusCreated, gin.H{"message": "Produit créé avec succès", "product": product})
}

// UpdateProduct — PUT /api/admin/products/:id
func UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	product.ID = id

	err = Catalog.UpdateProduct(c.Request.Context(), product)
	if errors.Is(err, catalog.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Produit mis à jour", "product": product})
}

// DeleteProduct — DELETE /api/admin/products/:id
func DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	err = Catalog.DeleteProduct(c.Request.Context(), id)
	if errors.Is(err, catalog.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	log.Printf("🗑️ Produit supprimé: #%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Produit supprimé"})
}

// UpdateStock — PUT /api/admin/products/:id/stock
func UpdateStock(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var input struct {
		Stock int `json:"stock"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	err = Catalog.SetStock(c.Request.Context(), id, input.Stock)
	if errors.Is(err, catalog.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du stock"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stock mis à jour"})
}

// UploadProductImage — POST /api/admin/products/images
// Upload multipart vers MinIO ; renvoie l'URL publique à ranger dans le
// champ image du produit.
func UploadProductImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fichier image manquant"})
		return
	}

	url, err := services.UploadProductImage(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur upload image: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image uploadée", "url": url})
}
