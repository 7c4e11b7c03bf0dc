package report

import (
	"sort"
	"time"

	"github.com/frahmantamala/financeflow/internal/core/datamodel"
)

// CategorySpending is an aggregated spend figure for one category.
type CategorySpending struct {
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Total      float64 `json:"total"`
}

// Totals is the headline overview: everything earned counts as budget,
// everything spent counts against it.
type Totals struct {
	TotalSpending  float64 `json:"totalSpending"`
	TotalBudget    float64 `json:"totalBudget"`
	Remaining      float64 `json:"remaining"`
	TotalAllocated float64 `json:"totalAllocated"`
}

// DailyBucket holds spend per category for a single calendar day.
type DailyBucket struct {
	Day        int                `json:"day"`
	ByCategory map[string]float64 `json:"byCategory"`
	Total      float64            `json:"total"`
}

// DayGroup is a calendar day with its expenses, used by the
// recent-expenses view.
type DayGroup struct {
	Date     string              `json:"date"`
	Total    float64             `json:"total"`
	Expenses []datamodel.Expense `json:"expenses"`
}

// SpendingByCategory totals expenses per category, highest spend first.
// Expenses whose category no longer exists are skipped.
func SpendingByCategory(expenses []datamodel.Expense, categories []datamodel.Category) []CategorySpending {
	byID := make(map[string]datamodel.Category, len(categories))
	for _, cat := range categories {
		byID[cat.ID] = cat
	}

	totals := make(map[string]float64)
	for _, exp := range expenses {
		if _, ok := byID[exp.CategoryID]; !ok {
			continue
		}
		totals[exp.CategoryID] += exp.Amount
	}

	out := make([]CategorySpending, 0, len(totals))
	for id, total := range totals {
		cat := byID[id]
		out = append(out, CategorySpending{
			CategoryID: id,
			Name:       cat.Name,
			Color:      cat.Color,
			Total:      total,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ComputeTotals derives the overview figures from the current state.
func ComputeTotals(expenses []datamodel.Expense, earnings []datamodel.Earning, budgets datamodel.Budgets) Totals {
	var t Totals
	for _, exp := range expenses {
		t.TotalSpending += exp.Amount
	}
	for _, earn := range earnings {
		t.TotalBudget += earn.Amount
	}
	for _, limit := range budgets {
		t.TotalAllocated += limit
	}
	t.Remaining = t.TotalBudget - t.TotalSpending
	return t
}

// DailySeries buckets spending per day and per category for the given
// month. Every day of the month gets a bucket, spent or not.
func DailySeries(expenses []datamodel.Expense, year int, month time.Month) []DailyBucket {
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	buckets := make([]DailyBucket, days)
	for i := range buckets {
		buckets[i] = DailyBucket{
			Day:        i + 1,
			ByCategory: make(map[string]float64),
		}
	}

	for _, exp := range expenses {
		d := exp.Date.Time
		if d.Year() != year || d.Month() != month {
			continue
		}
		b := &buckets[d.Day()-1]
		b.ByCategory[exp.CategoryID] += exp.Amount
		b.Total += exp.Amount
	}
	return buckets
}

// GroupByDay groups expenses by calendar day, newest day first. Within
// a day the incoming order is preserved.
func GroupByDay(expenses []datamodel.Expense) []DayGroup {
	byDate := make(map[string]*DayGroup)
	order := make([]string, 0)

	for _, exp := range expenses {
		key := exp.Date.Format("2006-01-02")
		grp, ok := byDate[key]
		if !ok {
			grp = &DayGroup{Date: key}
			byDate[key] = grp
			order = append(order, key)
		}
		grp.Total += exp.Amount
		grp.Expenses = append(grp.Expenses, exp)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(order)))

	out := make([]DayGroup, 0, len(order))
	for _, key := range order {
		out = append(out, *byDate[key])
	}
	return out
}
