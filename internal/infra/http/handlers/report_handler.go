package handlers

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/export"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/usecase"
)

type ReportHandler struct {
	UseCase *usecase.ReportUseCase
	Logger  *zap.Logger
}

func NewReportHandler(uc *usecase.ReportUseCase, logger *zap.Logger) *ReportHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportHandler{UseCase: uc, Logger: logger}
}

// Dashboard (GET /reports/dashboard)
func (h *ReportHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	out, err := h.UseCase.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// Summary (GET /reports/summary)
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	out, err := h.UseCase.Summary(r.Context())
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, export.FormatCSV)
}

func (h *ReportHandler) ExportExcel(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, export.FormatExcel)
}

func (h *ReportHandler) export(w http.ResponseWriter, r *http.Request, format string) {
	out, err := h.UseCase.Export(r.Context(), format)
	if err != nil {
		writeError(w, r, h.Logger, err)
		return
	}

	w.Header().Set("Content-Type", out.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(out.Body)
}
