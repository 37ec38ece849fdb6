package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/analytics"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
	"github.com/alexandremendes381/l0gic-admin-panel/internal/export"
)

// ReportUseCase serve o dashboard, a página de relatórios e as exportações.
type ReportUseCase struct {
	Repo    entity.LeadRepositoryInterface
	Encoder *export.Encoder
	Now     func() time.Time
}

func NewReportUseCase(repo entity.LeadRepositoryInterface, encoder *export.Encoder) *ReportUseCase {
	return &ReportUseCase{Repo: repo, Encoder: encoder, Now: time.Now}
}

func (uc *ReportUseCase) Dashboard(ctx context.Context) (analytics.Dashboard, error) {
	leads, err := uc.Repo.FindAll(ctx)
	if err != nil {
		return analytics.Dashboard{}, databaseError("erro ao buscar leads", err)
	}
	return analytics.BuildDashboard(leads, uc.Now()), nil
}

func (uc *ReportUseCase) Summary(ctx context.Context) (analytics.Report, error) {
	leads, err := uc.Repo.FindAll(ctx)
	if err != nil {
		return analytics.Report{}, databaseError("erro ao buscar leads", err)
	}
	return analytics.BuildReport(leads, uc.Now()), nil
}

// Export encodes the whole lead base as csv or xls.
func (uc *ReportUseCase) Export(ctx context.Context, format string) (*ExportOutput, error) {
	leads, err := uc.Repo.FindAll(ctx)
	if err != nil {
		return nil, databaseError("erro ao buscar leads", err)
	}

	var (
		body        string
		contentType string
	)
	switch format {
	case export.FormatCSV:
		body, err = uc.Encoder.ToCSV(leads)
		contentType = export.ContentTypeCSV
	case export.FormatExcel:
		body, err = uc.Encoder.ToHTMLTable(leads)
		contentType = export.ContentTypeExcel
	default:
		return nil, ValidationError{Field: "format", Reason: ReasonInvalidFormat, Message: "Formato de exportação inválido"}
	}
	if err != nil {
		return nil, &TechnicalError{Code: "EXPORT_ERROR", Message: fmt.Sprintf("Erro ao exportar %s", format), Err: err}
	}

	return &ExportOutput{
		Filename:    export.Filename(format, uc.Now()),
		ContentType: contentType,
		Body:        []byte(body),
	}, nil
}
