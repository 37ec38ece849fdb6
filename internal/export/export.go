// Package export serializes the lead base into the CSV and Excel (HTML table)
// files offered on the reports page.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"text/template"
	"time"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

// Format constants for export file format.
const (
	FormatCSV   = "csv"
	FormatExcel = "xls"
)

const (
	ContentTypeCSV   = "text/csv"
	ContentTypeExcel = "application/vnd.ms-excel"
)

const dateLayout = "02/01/2006"

// Header is the fixed column order of both formats.
var Header = []string{
	"ID",
	"Nome",
	"Email",
	"Telefone",
	"Cargo",
	"Data de Nascimento",
	"Mensagem",
	"Data de Cadastro",
	"Última Atualização",
	"Facebook Click ID",
	"Google Click ID",
	"UTM Source",
	"UTM Medium",
	"UTM Campaign",
	"UTM Term",
	"UTM Content",
}

// Os valores entram sem escape: o arquivo é um artefato offline de uso interno.
var tableTemplate = template.Must(template.New("leads").Parse(`<table>
  <thead>
    <tr>{{range .Header}}<th>{{.}}</th>{{end}}</tr>
  </thead>
  <tbody>
{{range .Rows}}    <tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}  </tbody>
</table>
`))

// Encoder renders dates in a fixed location (pt-BR dashboards use São Paulo).
type Encoder struct {
	Location *time.Location
}

func NewEncoder(loc *time.Location) *Encoder {
	if loc == nil {
		loc = time.UTC
	}
	return &Encoder{Location: loc}
}

// ToCSV writes the header plus one row per lead. Fields containing quotes,
// commas or line breaks are quoted with embedded quotes doubled.
func (e *Encoder) ToCSV(leads []entity.Lead) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return "", fmt.Errorf("erro ao escrever cabeçalho CSV: %w", err)
	}
	for _, l := range leads {
		if err := w.Write(e.Row(l)); err != nil {
			return "", fmt.Errorf("erro ao escrever lead %d: %w", l.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToHTMLTable renders the table consumed by Excel as a .xls file.
func (e *Encoder) ToHTMLTable(leads []entity.Lead) (string, error) {
	rows := make([][]string, 0, len(leads))
	for _, l := range leads {
		rows = append(rows, e.Row(l))
	}

	var buf bytes.Buffer
	err := tableTemplate.Execute(&buf, struct {
		Header []string
		Rows   [][]string
	}{Header, rows})
	if err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return buf.String(), nil
}

// Row returns the 16 column values of a lead.
func (e *Encoder) Row(l entity.Lead) []string {
	return []string{
		strconv.FormatInt(l.ID, 10),
		l.Name,
		l.Email,
		l.Phone,
		l.Position,
		e.FormatDateString(l.BirthDate),
		l.Message,
		e.FormatDate(l.CreatedAt),
		e.FormatDate(l.UpdatedAt),
		orEmpty(l.FBCLID),
		orEmpty(l.GCLID),
		orEmpty(l.UTMSource),
		orEmpty(l.UTMMedium),
		orEmpty(l.UTMCampaign),
		orEmpty(l.UTMTerm),
		orEmpty(l.UTMContent),
	}
}

// FormatDate renders DD/MM/YYYY in the encoder location.
func (e *Encoder) FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(e.Location).Format(dateLayout)
}

// FormatDateString parses the free-form birth date. Date-only values keep
// their calendar day; timestamps are converted to the encoder location.
// Anything unparseable is returned as typed.
func (e *Encoder) FormatDateString(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.Format(dateLayout)
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.In(e.Location).Format(dateLayout)
		}
	}
	return s
}

// Filename returns leads_<epoch-ms>.<format>.
func Filename(format string, now time.Time) string {
	return fmt.Sprintf("leads_%d.%s", now.UnixMilli(), format)
}

func orEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
