package handler

import "github.com/letierre/chamados-a-servir-final/backend/internal/service"

// Handler agregado de todos os handlers HTTP
type Handler struct {
	Auth        *AuthHandler
	Catalog     *CatalogHandler
	Observation *ObservationHandler
	Dashboard   *DashboardHandler
	Target      *TargetHandler
	Report      *ReportHandler
	Analysis    *AnalysisHandler
}

// NewHandler cria o agregado de handlers
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(svc.Auth),
		Catalog:     NewCatalogHandler(svc.Catalog),
		Observation: NewObservationHandler(svc.Observation),
		Dashboard:   NewDashboardHandler(svc.Dashboard),
		Target:      NewTargetHandler(svc.Target),
		Report:      NewReportHandler(svc.Report),
		Analysis:    NewAnalysisHandler(svc.Analysis),
	}
}
