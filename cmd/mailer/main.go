package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"velora_back_end/internal/config"
	"velora_back_end/internal/mailer"
)

// Relais mail minimal : deux endpoints consommés en best-effort par le
// serveur boutique. Aucun état, pas de store.
func main() {
	config.Load()

	if os.Getenv("SMTP_USERNAME") == "" {
		log.Println("⚠️ SMTP_USERNAME manquant — les envois échoueront")
	}

	r := gin.Default()
	r.Use(cors.Default())

	r.POST("/send-confirmation", mailer.SendConfirmation)
	r.POST("/send-contact", mailer.SendContact)

	port := os.Getenv("MAILER_PORT")
	if port == "" {
		port = "5001"
	}
	log.Println("🚀 Relais mail lancé sur le port", port)
	r.Run(":" + port)
}
