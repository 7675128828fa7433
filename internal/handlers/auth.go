package handlers

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/account"
	"velora_back_end/internal/middleware"
	"velora_back_end/internal/utils"
)

func adminCredentials() (string, string) {
	user := os.Getenv("ADMIN_EMAIL")
	if user == "" {
		user = "admin123"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	return user, password
}

// Register — POST /api/auth/register
func Register(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	sess := middleware.GetSession(c)
	user, err := Registry.Register(c.Request.Context(), sess, input.Email, input.Name, input.Password)
	switch {
	case errors.Is(err, account.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, account.ErrDuplicateAccount):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création du compte"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Compte créé avec succès",
		"user":    user.Public(),
	})
}

// Login — POST /api/auth/login
// Deux chemins : le raccourci admin à identifiants fixes, qui vérifie
// réellement ses credentials et arme le flag de session, et le login
// classique, qui se contente de retrouver le compte par email.
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	sess := middleware.GetSession(c)
	ctx := c.Request.Context()

	adminUser, adminPassword := adminCredentials()
	if input.Email == adminUser {
		ok := input.Password == adminPassword
		if hash := os.Getenv("ADMIN_PASSWORD_HASH"); hash != "" {
			ok, _ = utils.VerifyPassword(input.Password, hash)
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Mot de passe incorrect"})
			return
		}

		if err := sess.SetAdmin(ctx, true); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur session"})
			return
		}
		token, err := utils.GenerateAdminJWT()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération du jeton"})
			return
		}

		log.Println("🔐 Session admin ouverte")
		c.JSON(http.StatusOK, gin.H{"message": "Connecté en administrateur", "admin": true, "token": token})
		return
	}

	user, err := Registry.Login(ctx, sess, input.Email)
	if errors.Is(err, account.ErrUnknownAccount) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connecté", "user": user.Public()})
}

// Logout — POST /api/auth/logout
// Efface la référence de session ; le registre durable n'est pas touché.
func Logout(c *gin.Context) {
	sess := middleware.GetSession(c)
	ctx := c.Request.Context()

	if err := Registry.Logout(ctx, sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur déconnexion"})
		return
	}
	_ = sess.SetAdmin(ctx, false)

	c.JSON(http.StatusOK, gin.H{"message": "Déconnecté"})
}

// Me — GET /api/auth/me
func Me(c *gin.Context) {
	sess := middleware.GetSession(c)
	user, err := sess.CurrentUser(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur session"})
		return
	}
	if user == nil {
		c.JSON(http.StatusOK, gin.H{"user": nil, "admin": sess.IsAdmin(c.Request.Context())})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Public(), "admin": sess.IsAdmin(c.Request.Context())})
}
