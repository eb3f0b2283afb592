// Package score turns raw check results into the weighted report
// consumers render. Aggregation is point-weighted: earned points over
// available points, with skipped checks excluded from both sides at
// every level.
package score

import (
	"time"

	"pipeaudit/internal/checks"
)

type CategoryScore struct {
	Category checks.Category `json:"category"`
	Earned   int             `json:"earned"`
	Max      int             `json:"max"`
	Results  []checks.Result `json:"results"`
}

// Percentage returns earned/max as 0..100. A category whose checks all
// skipped has Max 0 and reports 0.
func (s CategoryScore) Percentage() float64 {
	if s.Max == 0 {
		return 0
	}
	return float64(s.Earned) / float64(s.Max) * 100
}

type Report struct {
	Repository string          `json:"repository"`
	TotalScore int             `json:"total_score"`
	MaxScore   int             `json:"max_score"`
	Categories []CategoryScore `json:"categories"`
	AnalyzedAt time.Time       `json:"analyzed_at"`
}

func (r *Report) Percentage() float64 {
	if r.MaxScore == 0 {
		return 0
	}
	return float64(r.TotalScore) / float64(r.MaxScore) * 100
}

// Grade maps the overall percentage to a human label.
func (r *Report) Grade() string {
	switch pct := r.Percentage(); {
	case pct >= 90:
		return "Excellent"
	case pct >= 70:
		return "Good"
	case pct >= 50:
		return "Needs improvement"
	default:
		return "Insufficient"
	}
}

// Flagged returns the failed and warned results in report order, the
// ones carrying remediation suggestions.
func (r *Report) Flagged() []checks.Result {
	var out []checks.Result
	for _, cat := range r.Categories {
		for _, res := range cat.Results {
			if res.Status == checks.StatusFail || res.Status == checks.StatusWarn {
				out = append(out, res)
			}
		}
	}
	return out
}

// Build groups results into category scores following the catalog's
// category order and sums the totals. Results keep their input order
// within each category.
func Build(repository string, results []checks.Result, analyzedAt time.Time) *Report {
	byCategory := make(map[checks.Category][]checks.Result)
	for _, res := range results {
		byCategory[res.Check.Category] = append(byCategory[res.Check.Category], res)
	}

	report := &Report{
		Repository: repository,
		AnalyzedAt: analyzedAt,
	}
	for _, cat := range checks.Categories() {
		grouped, ok := byCategory[cat]
		if !ok {
			continue
		}
		cs := CategoryScore{Category: cat, Results: grouped}
		for _, res := range grouped {
			if !res.Counted() {
				continue
			}
			cs.Earned += res.Points
			cs.Max += res.Check.Weight
		}
		report.TotalScore += cs.Earned
		report.MaxScore += cs.Max
		report.Categories = append(report.Categories, cs)
	}
	return report
}
