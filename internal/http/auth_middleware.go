package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"postboard/internal/domain"
	"postboard/internal/service"
)

const currentUserKey = "current_user"

const bearerPrefix = "Bearer "

// AuthMiddleware verifica el bearer token, re-resuelve la identidad
// persistida y la adjunta al contexto del request. Sin caché: una cuenta
// borrada falla aquí aunque el token siga vigente. Cualquier terminal de
// falla responde 401 con kind unauthenticated; el motivo exacto no se
// revela.
func AuthMiddleware(tokens *service.TokenService, users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			unauthenticated(c, "auth token is missing")
			return
		}

		// El prefijo es exacto y sensible a mayúsculas.
		if !strings.HasPrefix(header, bearerPrefix) {
			unauthenticated(c, "invalid token")
			return
		}
		token := strings.TrimSpace(header[len(bearerPrefix):])
		if token == "" {
			unauthenticated(c, "invalid token")
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			unauthenticated(c, "invalid token")
			return
		}

		user, err := resolveIdentity(c, users, claims)
		if err != nil {
			// Identidad desaparecida tras la emisión del token: terminal
			// duro, nunca se propaga una identidad vacía.
			unauthenticated(c, "invalid token")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func resolveIdentity(c *gin.Context, users *service.UserService, claims service.Claims) (domain.User, error) {
	ctx := c.Request.Context()
	if claims.UserID != "" {
		return users.ResolveByID(ctx, claims.UserID)
	}
	return users.ResolveByEmail(ctx, claims.Email)
}

func unauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{"kind": "unauthenticated", "message": message},
	})
}

// CurrentUser obtiene la identidad resuelta desde el contexto del request.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(currentUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}
