// Package analytics derives paginated views, time-windowed counts and grouped
// statistics from a lead sequence. Every function is pure: inputs are never
// mutated and results depend only on the arguments.
package analytics

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/alexandremendes381/l0gic-admin-panel/internal/entity"
)

// DirectSource é o rótulo usado quando o lead não tem utm_source.
const DirectSource = "Direto"

// DefaultPageSize matches the leads table of the dashboard.
const DefaultPageSize = 10

const day = 24 * time.Hour

// PageInfo carries pagination metadata.
type PageInfo struct {
	Page       int `json:"page"`
	PerPage    int `json:"perPage"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPageInfo clamps page to [1, ceil(total/perPage)].
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPageSize
	}
	totalPages := total / perPage
	if total%perPage != 0 {
		totalPages++
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the index of the first record of the page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Paginate returns the records in [(page-1)*pageSize, page*pageSize).
func Paginate(records []entity.Lead, pageSize, page int) ([]entity.Lead, PageInfo) {
	info := NewPageInfo(page, pageSize, len(records))
	start := info.Offset()
	if start >= len(records) {
		return []entity.Lead{}, info
	}
	end := start + info.PerPage
	if end > len(records) {
		end = len(records)
	}
	out := make([]entity.Lead, end-start)
	copy(out, records[start:end])
	return out, info
}

// DaysSince is ceil(|now - t| / 24h).
func DaysSince(now, t time.Time) int {
	return int(math.Ceil(float64(absDuration(now.Sub(t))) / float64(day)))
}

// HoursSince is |now - t| in fractional hours.
func HoursSince(now, t time.Time) float64 {
	return absDuration(now.Sub(t)).Hours()
}

// WithinDays keeps the leads whose day distance (rounded up) is <= days.
func WithinDays(records []entity.Lead, days int, now time.Time) []entity.Lead {
	return filter(records, func(l entity.Lead) bool {
		return DaysSince(now, l.CreatedAt) <= days
	})
}

// WithinHours keeps the leads created at most hours ago, measured in absolute
// hours. The 24h report window uses this instead of WithinDays.
func WithinHours(records []entity.Lead, hours int, now time.Time) []entity.Lead {
	return filter(records, func(l entity.Lead) bool {
		return HoursSince(now, l.CreatedAt) <= float64(hours)
	})
}

// Count is one bucket of a group-by.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// KeyFunc extracts the grouping key; ok=false skips the lead.
type KeyFunc func(l entity.Lead) (key string, ok bool)

// ByPosition groups by cargo.
func ByPosition(l entity.Lead) (string, bool) {
	return l.Position, true
}

// BySource groups by utm_source, bucketing leads without one as "Direto".
func BySource(l entity.Lead) (string, bool) {
	return SourceLabel(l.UTMSource), true
}

// ByCampaign groups by utm_campaign; leads without a campaign are skipped.
func ByCampaign(l entity.Lead) (string, bool) {
	if !entity.Present(l.UTMCampaign) {
		return "", false
	}
	return *l.UTMCampaign, true
}

// SourceLabel resolves a nullable utm_source to its display bucket.
func SourceLabel(source *string) string {
	if !entity.Present(source) {
		return DirectSource
	}
	return *source
}

// CountBy returns one bucket per key in first-encountered order.
func CountBy(records []entity.Lead, key KeyFunc) []Count {
	index := map[string]int{}
	var counts []Count
	for _, l := range records {
		k, ok := key(l)
		if !ok {
			continue
		}
		if i, seen := index[k]; seen {
			counts[i].Count++
			continue
		}
		index[k] = len(counts)
		counts = append(counts, Count{Key: k, Count: 1})
	}
	return counts
}

// TopN sorts a copy of counts by descending count and keeps the first n.
// Ties keep their first-encountered order.
func TopN(counts []Count, n int) []Count {
	sorted := make([]Count, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// TrackedCount counts leads with utm_source, gclid or fbclid.
func TrackedCount(records []entity.Lead) int {
	return len(filter(records, entity.Lead.HasTracking))
}

// TrackingCoverage is the tracked share rounded to the nearest percent; 0 for
// an empty sequence.
func TrackingCoverage(records []entity.Lead) int {
	if len(records) == 0 {
		return 0
	}
	return int(math.Round(float64(TrackedCount(records)) / float64(len(records)) * 100))
}

// DistinctSources is the number of different non-null utm_source values.
func DistinctSources(records []entity.Lead) int {
	seen := map[string]struct{}{}
	for _, l := range records {
		if entity.Present(l.UTMSource) {
			seen[*l.UTMSource] = struct{}{}
		}
	}
	return len(seen)
}

// DistinctPositions is the number of different cargos.
func DistinctPositions(records []entity.Lead) int {
	return len(CountBy(records, ByPosition))
}

// MostRecent returns the n newest leads, newest first.
func MostRecent(records []entity.Lead, n int) []entity.Lead {
	sorted := make([]entity.Lead, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// Completeness counts how many leads filled the optional form fields.
type Completeness struct {
	WithPhone     int `json:"withPhone"`
	WithMessage   int `json:"withMessage"`
	WithBirthDate int `json:"withBirthDate"`
}

func CompletenessOf(records []entity.Lead) Completeness {
	var c Completeness
	for _, l := range records {
		if strings.TrimSpace(l.Phone) != "" {
			c.WithPhone++
		}
		if strings.TrimSpace(l.Message) != "" {
			c.WithMessage++
		}
		if l.BirthDate != "" {
			c.WithBirthDate++
		}
	}
	return c
}

// Percent returns count/total*100 rounded to the given number of decimals.
func Percent(count, total, decimals int) float64 {
	if total == 0 {
		return 0
	}
	scale := math.Pow(10, float64(decimals))
	return math.Round(float64(count)/float64(total)*100*scale) / scale
}

func filter(records []entity.Lead, keep func(entity.Lead) bool) []entity.Lead {
	out := []entity.Lead{}
	for _, l := range records {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
