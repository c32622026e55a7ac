package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/letierre/chamados-a-servir-final/backend/config"
	"github.com/letierre/chamados-a-servir-final/backend/internal/api/handler"
	"github.com/letierre/chamados-a-servir-final/backend/internal/api/middleware"
	"github.com/letierre/chamados-a-servir-final/backend/internal/model"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/jwt"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/redis"
)

// Setup inicializa e devolve o roteador Gin
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Middlewares globais ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── Health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// Autenticação (sem token)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// Rotas autenticadas
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// Catálogo de alas e indicadores
			authorized.GET("/wards", h.Catalog.ListWards)
			authorized.GET("/indicators", h.Catalog.ListIndicators)
			authorized.PUT("/wards/:id/membership", middleware.RoleAuth(model.RoleAdmin), h.Catalog.UpdateMembership)

			// Lançamento semanal e histórico
			observations := authorized.Group("/observations")
			{
				observations.POST("", h.Observation.Create)
				observations.GET("", h.Observation.List)
				observations.GET("/weeks", h.Observation.Weeks)
				observations.GET("/recent", h.Observation.Recent)
				observations.PUT("/:id", h.Observation.Update)
				observations.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Observation.Delete)
			}

			// Painel geral
			authorized.GET("/dashboard/cards", h.Dashboard.Cards)

			// Metas anuais
			targets := authorized.Group("/targets")
			{
				targets.GET("", h.Target.Matrix)
				targets.PUT("", middleware.RoleAuth(model.RoleAdmin), h.Target.Upsert)
				targets.GET("/progress", h.Target.Progress)
			}

			// Relatório da estaca
			report := authorized.Group("/report")
			{
				report.GET("", h.Report.Summary)
				report.GET("/export/csv", h.Report.ExportCSV)
				report.GET("/export/xlsx", h.Report.ExportXLSX)
				report.POST("/analysis", middleware.RateLimit(rdb, 5, time.Minute), h.Analysis.Analyze)
			}
		}
	}

	return r
}
