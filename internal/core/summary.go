package core

import "sort"

// topCategoryCount is how many ranked categories survive before the rest
// collapse into the "Other" bucket.
const topCategoryCount = 3

// OtherCategoryName labels the synthetic overflow bucket.
const OtherCategoryName = "Other"

type (
	// Totals holds the three aggregate figures for a window. Expenses are
	// kept negative; Net is the plain sum of all amounts.
	Totals struct {
		Income   Money `json:"income"`
		Expenses Money `json:"expenses"`
		Net      Money `json:"net"`
	}

	// CategoryTotal is one ranked breakdown entry: a category name and the
	// absolute expense total accumulated under it.
	CategoryTotal struct {
		Name  string `json:"name"`
		Value Money  `json:"value"`
	}

	// DailyTotal is one day of the chart series. Income and Expenses are
	// both non-negative; expenses are stored as a positive magnitude.
	DailyTotal struct {
		Date     Date  `json:"date"`
		Income   Money `json:"income"`
		Expenses Money `json:"expenses"`
	}

	// Summary is the assembled engine output, created fresh per call and
	// never persisted. Field names follow the public wire format.
	Summary struct {
		RemainingAmount Money           `json:"remainingAmount"`
		RemainingChange float64         `json:"remainingChange"`
		IncomeAmount    Money           `json:"incomeAmount"`
		IncomeChange    float64         `json:"incomeChange"`
		ExpensesAmount  Money           `json:"expensesAmount"`
		ExpensesChange  float64         `json:"expensesChange"`
		Categories      []CategoryTotal `json:"categories"`
		Days            []DailyTotal    `json:"days"`
	}
)

// Aggregate partitions a transaction set into income (amount >= 0) and
// expenses (amount < 0, kept negative) and sums each side plus the net.
// An empty set yields explicit zero totals, never an absent value, so
// downstream ratio math is always defined.
func Aggregate(txs []Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		if tx.Amount.Miliunits >= 0 {
			t.Income = t.Income.Add(tx.Amount)
		} else {
			t.Expenses = t.Expenses.Add(tx.Amount)
		}
		t.Net = t.Net.Add(tx.Amount)
	}
	return t
}

// PercentChange returns the percent change from previous to current. When
// the previous value is zero there is no ratio to take: the result is 0 if
// current is also zero and an unsigned 100 otherwise. This is the only
// place a float touches monetary inputs, and the result is a metric, not
// money.
func PercentChange(current, previous Money) float64 {
	if previous.IsZero() {
		if current.IsZero() {
			return 0
		}
		return 100
	}
	cur := float64(current.Miliunits)
	prev := float64(previous.Miliunits)
	abs := prev
	if abs < 0 {
		abs = -abs
	}
	return (cur - prev) / abs * 100
}

// GroupExpensesByCategory sums the absolute value of categorized expense
// transactions per category name. Uncategorized rows never enter the
// breakdown. The result is sorted by total descending with name ascending
// as the tie-break, so ordering is deterministic regardless of input order.
func GroupExpensesByCategory(txs []Transaction) []CategoryTotal {
	byName := make(map[string]int64)
	for _, tx := range txs {
		if !tx.IsExpense() || !tx.IsCategorized() {
			continue
		}
		byName[tx.Category] += tx.Amount.Abs().Miliunits
	}

	totals := make([]CategoryTotal, 0, len(byName))
	for name, value := range byName {
		totals = append(totals, CategoryTotal{Name: name, Value: Money{Miliunits: value}})
	}
	SortCategoryTotals(totals)
	return totals
}

// SortCategoryTotals orders totals by value descending, then name ascending.
func SortCategoryTotals(totals []CategoryTotal) {
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Value.Miliunits != totals[j].Value.Miliunits {
			return totals[i].Value.Miliunits > totals[j].Value.Miliunits
		}
		return totals[i].Name < totals[j].Name
	})
}

// RankCategories keeps the top ranked entries and folds everything beyond
// them into a single trailing "Other" bucket. The bucket is omitted when
// there is no remainder, and the output values always sum to the same
// total as the input. Input must already be sorted; callers that build
// their own slices can use SortCategoryTotals first.
func RankCategories(totals []CategoryTotal) []CategoryTotal {
	if len(totals) <= topCategoryCount {
		ranked := make([]CategoryTotal, len(totals))
		copy(ranked, totals)
		return ranked
	}

	ranked := make([]CategoryTotal, topCategoryCount, topCategoryCount+1)
	copy(ranked, totals[:topCategoryCount])

	var other int64
	for _, ct := range totals[topCategoryCount:] {
		other += ct.Value.Miliunits
	}
	return append(ranked, CategoryTotal{Name: OtherCategoryName, Value: Money{Miliunits: other}})
}

// GroupByDay buckets transactions by calendar day, summing income and the
// absolute value of expenses separately. Days are returned ascending.
// Only days with activity appear; FillMissingDays densifies the series.
func GroupByDay(txs []Transaction) []DailyTotal {
	type daySums struct {
		income   int64
		expenses int64
	}
	byDay := make(map[Date]*daySums)
	for _, tx := range txs {
		sums, ok := byDay[tx.Date]
		if !ok {
			sums = &daySums{}
			byDay[tx.Date] = sums
		}
		if tx.Amount.Miliunits >= 0 {
			sums.income += tx.Amount.Miliunits
		} else {
			sums.expenses += tx.Amount.Abs().Miliunits
		}
	}

	days := make([]DailyTotal, 0, len(byDay))
	for date, sums := range byDay {
		days = append(days, DailyTotal{
			Date:     date,
			Income:   Money{Miliunits: sums.income},
			Expenses: Money{Miliunits: sums.expenses},
		})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date.Before(days[j].Date.Time) })
	return days
}

// FillMissingDays expands the active days into one entry per calendar day
// of the range, substituting zero income and expenses for absent days. A
// range with no activity at all yields an empty series rather than a dense
// all-zero one, matching the dashboard's established behavior.
func FillMissingDays(active []DailyTotal, r DateRange) []DailyTotal {
	if len(active) == 0 {
		return []DailyTotal{}
	}

	byDay := make(map[Date]DailyTotal, len(active))
	for _, dt := range active {
		byDay[dt.Date] = dt
	}

	series := make([]DailyTotal, 0, r.Days())
	for d := r.Start; !d.After(r.End.Time); d = d.AddDays(1) {
		if dt, ok := byDay[d]; ok {
			series = append(series, dt)
			continue
		}
		series = append(series, DailyTotal{Date: d})
	}
	return series
}
