package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

func strPtr(s string) *string { return &s }

func sampleLead() entity.Lead {
	created := time.Date(2025, 10, 5, 17, 57, 40, 0, time.UTC)
	return entity.Lead{
		ID:        1759686000000,
		Name:      "João, o Silva",
		Email:     "joao@example.com",
		Phone:     "11999999999",
		Position:  "Gerente",
		BirthDate: "1990-05-15",
		Message:   `He said "hi"`,
		CreatedAt: created,
		UpdatedAt: created.Add(24 * time.Hour),
		Attribution: entity.Attribution{
			UTMSource:   strPtr("google"),
			UTMCampaign: strPtr("natal"),
		},
	}
}

func TestToCSVQuotesEmbeddedQuotes(t *testing.T) {
	enc := NewEncoder(time.UTC)

	out, err := enc.ToCSV([]entity.Lead{sampleLead()})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(Header, ","), lines[0])
	assert.Contains(t, lines[1], `"He said ""hi"""`)
	assert.Contains(t, lines[1], `"João, o Silva"`)
}

// TestToCSVRoundTrip - o parser CSV recupera os valores originais
func TestToCSVRoundTrip(t *testing.T) {
	enc := NewEncoder(time.UTC)
	lead := sampleLead()

	out, err := enc.ToCSV([]entity.Lead{lead})
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	row := records[1]
	require.Len(t, row, 16)
	assert.Equal(t, "1759686000000", row[0])
	assert.Equal(t, lead.Name, row[1])
	assert.Equal(t, lead.Message, row[6])
	assert.Equal(t, "15/05/1990", row[5])
	assert.Equal(t, "05/10/2025", row[7])
	assert.Equal(t, "06/10/2025", row[8])
	// nulos viram string vazia, nunca "null"
	assert.Equal(t, "", row[9])
	assert.Equal(t, "", row[10])
	assert.Equal(t, "google", row[11])
	assert.Equal(t, "natal", row[13])
}

func TestToCSVEmpty(t *testing.T) {
	out, err := NewEncoder(nil).ToCSV(nil)

	require.NoError(t, err)
	assert.Equal(t, strings.Join(Header, ",")+"\n", out)
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	enc := NewEncoder(loc)

	// 01:00 UTC ainda é o dia anterior em São Paulo
	ts := time.Date(2025, 10, 6, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, "05/10/2025", enc.FormatDate(ts))
	assert.Equal(t, "05/10/2025", enc.FormatDateString("2025-10-06T01:00:00Z"))
	assert.Equal(t, "06/10/2025", enc.FormatDateString("2025-10-06"))
	assert.Equal(t, "não sei", enc.FormatDateString("não sei"))
	assert.Equal(t, "", enc.FormatDate(time.Time{}))
}

func TestToHTMLTable(t *testing.T) {
	enc := NewEncoder(time.UTC)
	lead := sampleLead()
	lead.Message = "<b>oi</b>"

	out, err := enc.ToHTMLTable([]entity.Lead{lead})
	require.NoError(t, err)

	assert.Contains(t, out, "<th>ID</th><th>Nome</th>")
	assert.Contains(t, out, "<th>UTM Content</th></tr>")
	assert.Contains(t, out, "<td>1759686000000</td><td>João, o Silva</td>")
	// interpolado sem escape
	assert.Contains(t, out, "<td><b>oi</b></td>")
	assert.Equal(t, 1, strings.Count(out, "<tbody>"))
	assert.Equal(t, 2, strings.Count(out, "<tr>"))
}

func TestFilename(t *testing.T) {
	ts := time.UnixMilli(1759686000123)

	assert.Equal(t, "leads_1759686000123.csv", Filename(FormatCSV, ts))
	assert.Equal(t, "leads_1759686000123.xls", Filename(FormatExcel, ts))
}
