package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/utils"
)

// RequireAdmin protège le back-office. Deux portes équivalentes : le flag
// admin de la session, ou un jeton Bearer émis par le login admin.
func RequireAdmin(c *gin.Context) {
	sess := GetSession(c)
	if sess.IsAdmin(c.Request.Context()) {
		c.Next()
		return
	}

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		if err := utils.ParseAdminJWT(parts[1]); err == nil {
			c.Next()
			return
		}
	}

	c.JSON(http.StatusForbidden, gin.H{"error": "Accès réservé aux administrateurs"})
	c.Abort()
}
