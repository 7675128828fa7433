package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/account"
	"velora_back_end/internal/middleware"
	"velora_back_end/internal/orders"
)

// GetMyOrders — GET /api/orders
// Historique du compte actif, de la plus récente à la plus ancienne.
func GetMyOrders(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"orders": user.Orders})
}

// TrackOrder — GET /api/orders/track/:id
// Recherche : index global → compte de session → tous les comptes. Un
// identifiant au format ORD- inconnu obtient un placeholder Processing.
func TrackOrder(c *gin.Context) {
	order, err := Orders.FindOrder(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if errors.Is(err, orders.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable. Vérifiez votre identifiant"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche commande"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// DeleteOrder — DELETE /api/orders/:id
// Retire la commande de l'historique du compte ET de l'index global.
func DeleteOrder(c *gin.Context) {
	err := Orders.DeleteOrder(c.Request.Context(), middleware.GetSession(c), c.Param("id"))
	if errors.Is(err, account.ErrNoActiveAccount) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression commande"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Commande supprimée"})
}
