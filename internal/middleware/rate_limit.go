package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/database"
)

const (
	// Limite du formulaire de contact, par IP
	ContactMaxRequests = 5
	ContactWindow      = 10 * time.Minute
)

// ContactRateLimit limite les envois du formulaire de contact par IP :
// fenêtre glissante simple via INCR + EXPIRE.
func ContactRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		key := "contact_attempts:" + c.ClientIP()

		pipe := database.Redis.Pipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ContactWindow)
		if _, err := pipe.Exec(ctx); err != nil {
			// Redis indisponible : on laisse passer plutôt que de bloquer
			c.Next()
			return
		}

		if incr.Val() > ContactMaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": fmt.Sprintf("Trop de messages envoyés. Réessayez dans %d minutes", int(ContactWindow.Minutes())),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
