package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/notify"
)

// Contact — POST /api/contact
// Valide puis fait suivre au relais mail. Le relais est le seul à parler
// SMTP ; ici on ne fait que transmettre.
func Contact(c *gin.Context) {
	var input struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}
	if input.Name == "" || input.Email == "" || input.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom, email et message requis"})
		return
	}

	err := Notifier.SendContact(c.Request.Context(), notify.ContactRequest{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Le message n'a pas pu être envoyé, réessayez plus tard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message envoyé avec succès"})
}
