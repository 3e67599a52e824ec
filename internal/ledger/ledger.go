// ABOUTME: MacroLedger aggregates logged meals into daily totals and remaining budget.
// ABOUTME: Pure functions over meal records; recomputed on demand, never persisted.
package ledger

import (
	"sort"
	"time"

	"github.com/itstoasti/ketomate/internal/models"
)

// DailySummary is the derived macro picture for one calendar day.
type DailySummary struct {
	Date      string         `json:"date"`
	Total     models.Macro   `json:"total"`
	Limit     models.Macro   `json:"limit"`
	Remaining models.Macro   `json:"remaining"`
	Meals     []*models.Meal `json:"meals"`
	Skipped   []*models.Meal `json:"-"` // meals excluded for malformed dates
}

// OverBudget reports which macros exceed the limit. Remaining is
// floored at zero, so over-budget is only visible by comparing the
// total against the limit directly.
func (s *DailySummary) OverBudget() []string {
	var over []string
	if s.Total.Carbs > s.Limit.Carbs {
		over = append(over, "carbs")
	}
	if s.Total.Protein > s.Limit.Protein {
		over = append(over, "protein")
	}
	if s.Total.Fat > s.Limit.Fat {
		over = append(over, "fat")
	}
	if s.Total.Calories > s.Limit.Calories {
		over = append(over, "calories")
	}
	return over
}

// SameDay reports whether two times fall on the same calendar day,
// ignoring time of day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ComputeDaily filters meals to the given calendar day, sums their
// macros elementwise, and computes the non-negative remaining budget
// against the limit. Meals with unparseable dates are excluded rather
// than failing; they are reported on Skipped so callers can log them.
func ComputeDaily(meals []*models.Meal, date time.Time, limit models.Macro) *DailySummary {
	summary := &DailySummary{
		Date:  date.Format("2006-01-02"),
		Limit: limit,
	}

	for _, m := range meals {
		day, ok := m.Day()
		if !ok {
			summary.Skipped = append(summary.Skipped, m)
			continue
		}
		if !SameDay(day, date) {
			continue
		}
		summary.Total = summary.Total.Add(m.Macros)
		summary.Meals = append(summary.Meals, m)
	}

	sort.Slice(summary.Meals, func(i, j int) bool {
		return summary.Meals[i].Time < summary.Meals[j].Time
	})

	summary.Remaining = limit.Remaining(summary.Total)
	return summary
}

// ComputeRange produces one summary per day over [from, to] inclusive,
// oldest first. Used for trend output.
func ComputeRange(meals []*models.Meal, from, to time.Time, limit models.Macro) []*DailySummary {
	var summaries []*DailySummary
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		summaries = append(summaries, ComputeDaily(meals, d, limit))
	}
	return summaries
}
