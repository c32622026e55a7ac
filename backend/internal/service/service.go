package service

import (
	"go.uber.org/zap"

	"github.com/letierre/chamados-a-servir-final/backend/config"
	"github.com/letierre/chamados-a-servir-final/backend/internal/repository"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/jwt"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/redis"
)

// Service agregado de todos os serviços
type Service struct {
	Auth        AuthService
	Catalog     CatalogService
	Observation ObservationService
	Dashboard   DashboardService
	Target      TargetService
	Report      ReportService
	Analysis    AnalysisService
}

// NewService cria o agregado de serviços
// rdb pode ser nil: a aplicação segue sem cache nem blacklist de tokens.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:        NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Catalog:     NewCatalogService(repo, logger),
		Observation: NewObservationService(cfg, repo, rdb, logger),
		Dashboard:   NewDashboardService(repo, logger),
		Target:      NewTargetService(repo, logger),
		Report:      NewReportService(cfg, repo, rdb, logger),
		Analysis:    NewAnalysisService(cfg, repo, logger),
	}
}
