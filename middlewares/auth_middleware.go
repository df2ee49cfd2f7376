package middlewares

import (
	"net/http"
	"strings"

	"github.com/francosciascia/expert-giggle/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// AccessTokenParam is the query parameter that may carry the JWT on websocket
// handshakes.
const AccessTokenParam = "access_token"

// AuthMiddleware requires a bearer token signed with secret. An empty secret
// disables the check.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Se requiere el encabezado Authorization"})
			return
		}

		subject, err := utils.ParseJWT(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			Logger(c).Info("auth.rejected", "err", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Token inválido"})
			return
		}

		c.Set("subject", subject)
		c.Next()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer "), true
	}
	if websocket.IsWebSocketUpgrade(c.Request) {
		if t := c.Query(AccessTokenParam); t != "" {
			return t, true
		}
	}
	return "", false
}
