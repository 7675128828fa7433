package mailer

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/utils"
)

// SendConfirmation — POST /send-confirmation
// Corps déjà mis en forme par l'appelant : {to, subject, text, html}.
func SendConfirmation(c *gin.Context) {
	var req struct {
		To      string `json:"to" binding:"required"`
		Subject string `json:"subject" binding:"required"`
		Text    string `json:"text"`
		HTML    string `json:"html"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	if err := utils.SendMail(req.To, req.Subject, req.Text, req.HTML); err != nil {
		log.Printf("❌ Échec envoi email à %s: %v", req.To, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send email", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

// SendContact — POST /send-contact
// Relaye un message du formulaire de contact vers la boîte admin.
func SendContact(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required"`
		Message string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required fields"})
		return
	}

	subject := fmt.Sprintf("New Contact Message from %s", req.Name)
	text := fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", req.Name, req.Email, req.Message)
	html := utils.GenerateContactHTML(req.Name, req.Email, req.Message)

	if err := utils.SendContactMail(req.Name, req.Email, subject, text, html); err != nil {
		log.Printf("❌ Échec relais contact de %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully"})
}
