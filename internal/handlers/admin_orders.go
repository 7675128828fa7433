package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/models"
	"velora_back_end/internal/orders"
)

// GetAllOrders — GET /api/admin/orders
// L'index global plat, toutes commandes confondues (comptes et invités).
func GetAllOrders(c *gin.Context) {
	all, err := Orders.All(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": all, "total": len(all)})
}

// AdvanceOrderStatus — PUT /api/admin/orders/:id/status
// Seule mutation autorisée sur une commande : la progression du statut,
// strictement en avant.
func AdvanceOrderStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	err := Orders.AdvanceStatus(c.Request.Context(), c.Param("id"), models.OrderStatus(input.Status))
	switch {
	case errors.Is(err, orders.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	case errors.Is(err, orders.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour du statut"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Statut mis à jour", "status": input.Status})
}
