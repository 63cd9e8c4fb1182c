package accounting

import (
	"time"

	"academy-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

type DashboardInput struct {
	ActiveStudents     int
	Settings           domain.Settings
	Payments           []domain.Payment
	Expenses           []domain.Expense
	InstructorPayments []domain.InstructorPayment
}

type DashboardSnapshot struct {
	ActiveStudents     int             `json:"activeStudents"`
	MonthlyIncome      decimal.Decimal `json:"monthlyIncome"`
	MonthlyExpenses    decimal.Decimal `json:"monthlyExpenses"`
	NetIncome          decimal.Decimal `json:"netIncome"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	Settings           domain.Settings `json:"settings"`
}

// Summarize builds the snapshot for the calendar month now falls in.
// Instructor pay counts as an operating expense. OutstandingBalance is the
// academy-wide monthly fee shortfall only; it ignores league and game fees
// and earlier months, unlike the per-student balance.
func Summarize(in DashboardInput, now time.Time) DashboardSnapshot {
	current := domain.DateOf(now).MonthKey()

	income := decimal.Zero
	monthlyFeesPaid := decimal.Zero
	for _, p := range in.Payments {
		if p.PaymentDate.MonthKey() != current {
			continue
		}
		income = income.Add(p.AmountUSD)
		if p.PaymentType == domain.PaymentTypeMonthlyFee {
			monthlyFeesPaid = monthlyFeesPaid.Add(p.AmountUSD)
		}
	}

	expenses := decimal.Zero
	for _, e := range in.Expenses {
		if e.Date.MonthKey() == current {
			expenses = expenses.Add(e.AmountUSD)
		}
	}
	for _, p := range in.InstructorPayments {
		if p.PaymentDate.MonthKey() == current {
			expenses = expenses.Add(p.AmountUSD)
		}
	}

	expectedFees := in.Settings.MonthlyFeeUSD.Mul(decimal.NewFromInt(int64(in.ActiveStudents)))

	return DashboardSnapshot{
		ActiveStudents:     in.ActiveStudents,
		MonthlyIncome:      income,
		MonthlyExpenses:    expenses,
		NetIncome:          income.Sub(expenses),
		OutstandingBalance: expectedFees.Sub(monthlyFeesPaid),
		Settings:           in.Settings,
	}
}

// CurrentMonth returns the inclusive date range of the month now falls in.
func CurrentMonth(now time.Time) domain.DateRange {
	first := domain.NewDate(now.Year(), now.Month(), 1)
	last := domain.DateOf(first.AddDate(0, 1, -1))
	return domain.DateRange{From: first, To: last}
}
