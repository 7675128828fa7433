package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/config"
	"velora_back_end/internal/database"
	"velora_back_end/internal/handlers"
	"velora_back_end/internal/kvstore"
	"velora_back_end/internal/middleware"
	"velora_back_end/internal/routes"
	"velora_back_end/internal/services"
)

func main() {
	config.Load()

	database.Connect()
	services.ConnectMinio()

	middleware.InitSessionStore()
	handlers.Init(kvstore.NewDurable(database.Redis))

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Println("🚀 Serveur Velora lancé sur le port", port)
	r.Run(":" + port)
}
