package analytics

import (
	"time"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

// Share is a bucket with its percentage of the total.
type Share struct {
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// PeriodCount is the number of leads inside a labelled time window.
type PeriodCount struct {
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Dashboard is the read model of the dashboard home.
type Dashboard struct {
	TotalLeads   int           `json:"totalLeads"`
	NewThisWeek  int           `json:"newThisWeek"`
	TopPositions []Share       `json:"topPositions"`
	RecentLeads  []entity.Lead `json:"recentLeads"`
}

// Report is the read model of the reports page.
type Report struct {
	TotalLeads        int           `json:"totalLeads"`
	NewThisWeek       int           `json:"newThisWeek"`
	TrackedLeads      int           `json:"trackedLeads"`
	TrackingCoverage  int           `json:"trackingCoverage"`
	ActiveSources     int           `json:"activeSources"`
	DistinctPositions int           `json:"distinctPositions"`
	Periods           []PeriodCount `json:"periods"`
	Windows           []PeriodCount `json:"windows"`
	TopSources        []Share       `json:"topSources"`
	SourceBreakdown   []Share       `json:"sourceBreakdown"`
	TopCampaigns      []Share       `json:"topCampaigns"`
	Completeness      Completeness  `json:"completeness"`
}

// BuildDashboard aggregates the dashboard cards.
func BuildDashboard(records []entity.Lead, now time.Time) Dashboard {
	total := len(records)
	return Dashboard{
		TotalLeads:   total,
		NewThisWeek:  len(WithinDays(records, 7, now)),
		TopPositions: shares(TopN(CountBy(records, ByPosition), 5), total, 0),
		RecentLeads:  MostRecent(records, 5),
	}
}

// BuildReport aggregates the executive summary and the breakdown panels.
func BuildReport(records []entity.Lead, now time.Time) Report {
	total := len(records)
	sources := CountBy(records, BySource)

	// "Últimas 24h" é medido em horas; as demais janelas em dias arredondados para cima.
	periods := []PeriodCount{
		period("Últimas 24h", len(WithinHours(records, 24, now)), total),
		period("Última semana", len(WithinDays(records, 7, now)), total),
		period("Último mês", len(WithinDays(records, 30, now)), total),
	}

	windows := make([]PeriodCount, 0, 4)
	for _, w := range []struct {
		label string
		days  int
	}{
		{"Hoje", 1},
		{"Últimos 7 dias", 7},
		{"Últimos 30 dias", 30},
		{"Últimos 90 dias", 90},
	} {
		windows = append(windows, period(w.label, len(WithinDays(records, w.days, now)), total))
	}

	return Report{
		TotalLeads:        total,
		NewThisWeek:       len(WithinDays(records, 7, now)),
		TrackedLeads:      TrackedCount(records),
		TrackingCoverage:  TrackingCoverage(records),
		ActiveSources:     DistinctSources(records),
		DistinctPositions: DistinctPositions(records),
		Periods:           periods,
		Windows:           windows,
		TopSources:        shares(TopN(sources, 3), total, 1),
		SourceBreakdown:   shares(TopN(sources, 5), total, 1),
		TopCampaigns:      shares(TopN(CountBy(records, ByCampaign), 5), total, 1),
		Completeness:      CompletenessOf(records),
	}
}

func period(label string, count, total int) PeriodCount {
	return PeriodCount{Label: label, Count: count, Percent: Percent(count, total, 1)}
}

func shares(counts []Count, total, decimals int) []Share {
	out := make([]Share, 0, len(counts))
	for _, c := range counts {
		out = append(out, Share{Key: c.Key, Count: c.Count, Percent: Percent(c.Count, total, decimals)})
	}
	return out
}
