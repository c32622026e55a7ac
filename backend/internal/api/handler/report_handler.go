package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/letierre/chamados-a-servir-final/backend/internal/aggregate"
	"github.com/letierre/chamados-a-servir-final/backend/internal/service"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/response"
)

const (
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportHandler handlers HTTP do relatório da estaca
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler cria o ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// Summary resumo agregado do período
// GET /api/v1/report?period=
func (h *ReportHandler) Summary(c *gin.Context) {
	summary, err := h.reportSvc.Summary(c.Request.Context(), c.Query("period"))
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	response.OK(c, summary)
}

// ExportCSV baixa o relatório em CSV
// GET /api/v1/report/export/csv?period=
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	buf, filename, err := h.reportSvc.ExportCSV(c.Request.Context(), c.Query("period"))
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	writeDownload(c, csvContentType, filename, buf.Bytes())
}

// ExportXLSX baixa o relatório em planilha Excel
// GET /api/v1/report/export/xlsx?period=
func (h *ReportHandler) ExportXLSX(c *gin.Context) {
	buf, filename, err := h.reportSvc.ExportXLSX(c.Request.Context(), c.Query("period"))
	if err != nil {
		h.handleReportError(c, err)
		return
	}

	writeDownload(c, xlsxContentType, filename, buf.Bytes())
}

// writeDownload cabeçalhos de download de arquivo
func writeDownload(c *gin.Context, contentType, filename string, data []byte) {
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, contentType, data)
}

// handleReportError mapeia os erros de negócio do relatório
func (h *ReportHandler) handleReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, aggregate.ErrUnknownPeriod):
		response.BadRequest(c, 16101, "período desconhecido")
	case errors.Is(err, service.ErrReportNoData):
		response.NotFound(c, 16102, "nenhum lançamento no período")
	case errors.Is(err, service.ErrReportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
