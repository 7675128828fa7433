package middleware

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"velora_back_end/internal/database"
	"velora_back_end/internal/kvstore"
	"velora_back_end/internal/session"
)

const (
	sessionCookieName = "velora_session"
	sessionContextKey = "session"
)

var cookieStore *sessions.CookieStore

// InitSessionStore configure le cookie de session. Le cookie ne porte qu'un
// identifiant : tout l'état de session vit dans le scope session du store.
func InitSessionStore() {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "velora_dev_secret"
		log.Println("⚠️ SESSION_SECRET manquant — secret de développement utilisé")
	}

	cookieStore = sessions.NewCookieStore([]byte(secret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400,
		HttpOnly: true,
		Secure:   false, // false en dev, true en prod
		SameSite: http.SameSiteLaxMode,
	}
}

// WithSession attache l'objet session explicite à la requête : identifiant
// depuis le cookie (créé au besoin), scope session adossé à Redis.
func WithSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, _ := cookieStore.Get(c.Request, sessionCookieName)

		sid, _ := cookie.Values["sid"].(string)
		if sid == "" {
			sid = uuid.NewString()
			cookie.Values["sid"] = sid
			if err := cookie.Save(c.Request, c.Writer); err != nil {
				log.Printf("⚠️ Impossible d'écrire le cookie de session: %v", err)
			}
		}

		sess := session.New(sid, kvstore.NewSession(database.Redis, sid))
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

// GetSession récupère l'objet session injecté par WithSession.
func GetSession(c *gin.Context) *session.Session {
	return c.MustGet(sessionContextKey).(*session.Session)
}
