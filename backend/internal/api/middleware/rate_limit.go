package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/letierre/chamados-a-servir-final/backend/pkg/redis"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/response"
)

// RateLimit limitação de taxa por janela deslizante no Redis
// limit: máximo de requisições dentro da janela
// window: duração da janela
// rdb nil libera a passagem (mesma política degradada do JWTAuth)
func RateLimit(rdb *redis.Client, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("rate_limit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// Pane no Redis não derruba a API
			c.Next()
			return
		}

		if !allowed {
			response.Error(c, http.StatusTooManyRequests, 10004, "muitas requisições, tente novamente em instantes")
			c.Abort()
			return
		}

		c.Next()
	}
}
