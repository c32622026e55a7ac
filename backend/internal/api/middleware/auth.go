package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/letierre/chamados-a-servir-final/backend/pkg/jwt"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/redis"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/response"
)

// JWTAuth middleware de autenticação JWT
// Extrai e valida o Access Token de Authorization: Bearer <token>.
// rdb pode ser nil: a checagem de blacklist é pulada.
func JWTAuth(jwtMgr *jwt.Manager, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, 10002, "cabeçalho de autenticação ausente")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(c, 10002, "cabeçalho de autenticação inválido")
			c.Abort()
			return
		}

		claims, err := jwtMgr.ParseToken(parts[1])
		if err != nil {
			response.Unauthorized(c, 10002, "token inválido ou expirado")
			c.Abort()
			return
		}

		if claims.TokenType != "access" {
			response.Unauthorized(c, 10002, "tipo de token inválido")
			c.Abort()
			return
		}

		// Token derrubado no logout não passa
		if rdb != nil {
			blacklisted, err := rdb.IsBlacklisted(c.Request.Context(), claims.ID)
			if err == nil && blacklisted {
				response.Unauthorized(c, 10002, "sessão encerrada, entre novamente")
				c.Abort()
				return
			}
		}

		// Injeta a identidade no contexto
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// RoleAuth middleware de autorização por papel
// Verifica se o usuário autenticado tem um dos papéis permitidos
func RoleAuth(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			response.Unauthorized(c, 10002, "não autenticado")
			c.Abort()
			return
		}

		userRole := role.(string)
		for _, r := range allowedRoles {
			if userRole == r {
				c.Next()
				return
			}
		}

		response.Forbidden(c, 10003, "sem permissão de acesso")
		c.Abort()
	}
}
