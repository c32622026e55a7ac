package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/letierre/chamados-a-servir-final/backend/config"
	"github.com/letierre/chamados-a-servir-final/backend/internal/api/handler"
	"github.com/letierre/chamados-a-servir-final/backend/internal/api/router"
	"github.com/letierre/chamados-a-servir-final/backend/internal/repository"
	"github.com/letierre/chamados-a-servir-final/backend/internal/service"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/database"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/jwt"
	applogger "github.com/letierre/chamados-a-servir-final/backend/pkg/logger"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/redis"
)

func main() {
	// 1. Configuração
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao carregar configuração: %v\n", err)
		os.Exit(1)
	}

	// 2. Logger
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "falha ao inicializar logs: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("iniciando aplicação",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. Banco de dados
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("falha ao conectar no banco", zap.Error(err))
	}
	logger.Info("banco de dados conectado")

	// 3.1 Migrações
	sqlDB, err := db.DB()
	if err != nil {
		logger.Fatal("falha ao obter sql.DB", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Fatal("falha ao migrar o banco", zap.Error(err))
	}

	// 4. Redis (opcional: sem Redis a aplicação roda sem cache nem blacklist)
	var rdb *redis.Client
	rdb, err = redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("Redis indisponível, seguindo em modo degradado", zap.Error(err))
		rdb = nil
	}

	// 5. JWT
	jwtMgr := jwt.NewManager(&cfg.Auth)

	// 6. Injeção de dependências: Repository → Service → Handler
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)

	// 7. Roteador
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger)

	// 8. Servidor HTTP com desligamento gracioso
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("servidor HTTP no ar", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("servidor HTTP caiu", zap.Error(err))
		}
	}()

	// 9. Sinais do sistema
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("sinal de desligamento recebido", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("falha no desligamento do servidor", zap.Error(err))
	}

	if closeDB, _ := db.DB(); closeDB != nil {
		closeDB.Close()
	}

	if rdb != nil {
		rdb.Close()
	}

	logger.Info("servidor encerrado")
}
