package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/linskybing/formflow/internal/config"
	"github.com/linskybing/formflow/internal/domain/user"
	"github.com/linskybing/formflow/pkg/response"
	"github.com/linskybing/formflow/pkg/utils"
)

// RequireRoles lets the request through only when the token role is one of roles.
func RequireRoles(roles ...user.Role) gin.HandlerFunc {
	allowed := make(map[user.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		claims, err := utils.GetClaimsFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Unauthorized"})
			return
		}
		if _, ok := allowed[user.Role(claims.Role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "Forbidden"})
			return
		}
		c.Next()
	}
}

// Privileged allows owners and salespeople.
func Privileged() gin.HandlerFunc {
	return RequireRoles(user.RoleOwner, user.RoleSalesperson)
}

// OwnerOnly allows owners.
func OwnerOnly() gin.HandlerFunc {
	return RequireRoles(user.RoleOwner)
}

// CORSMiddleware allows the configured origins and any localhost port.
func CORSMiddleware() gin.HandlerFunc {
	origins := make(map[string]struct{}, len(config.AllowedOrigins))
	for _, o := range config.AllowedOrigins {
		origins[o] = struct{}{}
	}

	corsConfig := cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if _, ok := origins[origin]; ok {
				return true
			}
			return strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "http://127.0.0.1:")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	corsHandler := cors.New(corsConfig)
	return func(c *gin.Context) {
		if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
			c.Next()
			return
		}
		corsHandler(c)
	}
}
