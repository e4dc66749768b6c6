// Package report derives the financial report from the movement set: overall
// balance and totals plus a month-keyed income/expense breakdown. The
// aggregation is a pure reduction recomputed from the full set on every
// request; nothing here is persisted or cached.
package report

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"finmov/internal/model"
)

// MonthTotals holds the income and expense sums for one calendar month.
type MonthTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Report is the derived, non-persisted aggregate view over all movements.
// Balance always equals TotalIncome minus TotalExpense, and each total
// equals the sum of the corresponding field across MonthlyData.
type Report struct {
	Balance      decimal.Decimal        `json:"balance"`
	TotalIncome  decimal.Decimal        `json:"totalIncome"`
	TotalExpense decimal.Decimal        `json:"totalExpense"`
	MonthlyData  map[string]MonthTotals `json:"monthlyData"`
}

// rawNumber renders a decimal as an unquoted JSON number with its exact
// text. Report totals serialize as numbers, unlike movement amounts, which
// keep decimal's default quoted-string form.
func rawNumber(d decimal.Decimal) json.RawMessage {
	return json.RawMessage(d.String())
}

// MarshalJSON emits the month's sums as JSON numbers.
func (t MonthTotals) MarshalJSON() ([]byte, error) {
	type monthTotalsJSON struct {
		Income  json.RawMessage `json:"income"`
		Expense json.RawMessage `json:"expense"`
	}
	return json.Marshal(monthTotalsJSON{
		Income:  rawNumber(t.Income),
		Expense: rawNumber(t.Expense),
	})
}

// MarshalJSON emits balance and totals as JSON numbers.
func (r Report) MarshalJSON() ([]byte, error) {
	type reportJSON struct {
		Balance      json.RawMessage        `json:"balance"`
		TotalIncome  json.RawMessage        `json:"totalIncome"`
		TotalExpense json.RawMessage        `json:"totalExpense"`
		MonthlyData  map[string]MonthTotals `json:"monthlyData"`
	}
	return json.Marshal(reportJSON{
		Balance:      rawNumber(r.Balance),
		TotalIncome:  rawNumber(r.TotalIncome),
		TotalExpense: rawNumber(r.TotalExpense),
		MonthlyData:  r.MonthlyData,
	})
}

// MonthKey truncates a movement's date to its calendar month in UTC,
// formatted as zero-padded "YYYY-MM".
func MonthKey(m model.Movement) string {
	return m.Date.UTC().Format("2006-01")
}

// Aggregate reduces the movement set into a Report. Amount arithmetic stays
// in decimal so totals are exact to the cent regardless of how many
// movements sum into them. Empty input yields zero totals and an empty map.
func Aggregate(movements []model.Movement) Report {
	r := Report{
		Balance:      decimal.Zero,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		MonthlyData:  make(map[string]MonthTotals, len(movements)),
	}

	for _, m := range movements {
		switch m.Type {
		case model.MovementIncome:
			r.TotalIncome = r.TotalIncome.Add(m.Amount)
		case model.MovementExpense:
			r.TotalExpense = r.TotalExpense.Add(m.Amount)
		}
	}
	r.Balance = r.TotalIncome.Sub(r.TotalExpense)

	for _, m := range movements {
		key := MonthKey(m)
		totals, ok := r.MonthlyData[key]
		if !ok {
			totals = MonthTotals{Income: decimal.Zero, Expense: decimal.Zero}
		}
		switch m.Type {
		case model.MovementIncome:
			totals.Income = totals.Income.Add(m.Amount)
		case model.MovementExpense:
			totals.Expense = totals.Expense.Add(m.Amount)
		}
		r.MonthlyData[key] = totals
	}

	return r
}
