package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

func reportFixture() []entity.Lead {
	return []entity.Lead{
		{ID: 1, Position: "Dev", Phone: "1", CreatedAt: now.Add(-2 * time.Hour),
			Attribution: entity.Attribution{UTMSource: strPtr("google"), UTMCampaign: strPtr("natal")}},
		{ID: 2, Position: "Dev", Message: "oi", CreatedAt: now.Add(-3 * 24 * time.Hour),
			Attribution: entity.Attribution{GCLID: strPtr("g")}},
		{ID: 3, Position: "CEO", BirthDate: "1990-01-01", CreatedAt: now.Add(-20 * 24 * time.Hour),
			Attribution: entity.Attribution{UTMSource: strPtr("google")}},
		{ID: 4, Position: "Gerente", CreatedAt: now.Add(-60 * 24 * time.Hour)},
	}
}

func TestBuildDashboard(t *testing.T) {
	d := BuildDashboard(reportFixture(), now)

	assert.Equal(t, 4, d.TotalLeads)
	assert.Equal(t, 2, d.NewThisWeek)
	require.Len(t, d.TopPositions, 3)
	assert.Equal(t, Share{Key: "Dev", Count: 2, Percent: 50}, d.TopPositions[0])
	require.Len(t, d.RecentLeads, 4)
	assert.Equal(t, int64(1), d.RecentLeads[0].ID)
	assert.Equal(t, int64(4), d.RecentLeads[3].ID)
}

func TestBuildReport(t *testing.T) {
	r := BuildReport(reportFixture(), now)

	assert.Equal(t, 4, r.TotalLeads)
	assert.Equal(t, 3, r.TrackedLeads)
	assert.Equal(t, 75, r.TrackingCoverage)
	assert.Equal(t, 1, r.ActiveSources)
	assert.Equal(t, 3, r.DistinctPositions)

	require.Len(t, r.Periods, 3)
	assert.Equal(t, "Últimas 24h", r.Periods[0].Label)
	assert.Equal(t, 1, r.Periods[0].Count)
	assert.Equal(t, 2, r.Periods[1].Count)
	assert.Equal(t, 3, r.Periods[2].Count)

	require.Len(t, r.Windows, 4)
	assert.Equal(t, []int{1, 2, 3, 4}, []int{r.Windows[0].Count, r.Windows[1].Count, r.Windows[2].Count, r.Windows[3].Count})
	assert.Equal(t, 100.0, r.Windows[3].Percent)

	require.Len(t, r.TopSources, 2)
	assert.Equal(t, Share{Key: "google", Count: 2, Percent: 50}, r.TopSources[0])
	assert.Equal(t, DirectSource, r.TopSources[1].Key)

	assert.Equal(t, []Share{{Key: "natal", Count: 1, Percent: 25}}, r.TopCampaigns)
	assert.Equal(t, Completeness{WithPhone: 1, WithMessage: 1, WithBirthDate: 1}, r.Completeness)
}

func TestBuildReportEmpty(t *testing.T) {
	r := BuildReport(nil, now)

	assert.Equal(t, 0, r.TotalLeads)
	assert.Equal(t, 0, r.TrackingCoverage)
	assert.Empty(t, r.TopSources)
	assert.Equal(t, 0.0, r.Periods[0].Percent)
}
