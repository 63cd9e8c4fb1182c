package accounting

import (
	"academy-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

// PaymentMonth is the income bucket for one YYYY-MM key.
type PaymentMonth struct {
	Total  decimal.Decimal                        `json:"total"`
	ByType map[domain.PaymentType]decimal.Decimal `json:"byType"`
}

// ExpenseMonth is the outflow bucket for one YYYY-MM key.
type ExpenseMonth struct {
	Expenses      decimal.Decimal `json:"expenses"`
	InstructorPay decimal.Decimal `json:"instructorPay"`
	Total         decimal.Decimal `json:"total"`
}

// SummarizePayments buckets payments by the month of their payment date and
// by payment type. Months without payments are absent.
func SummarizePayments(payments []domain.Payment) map[string]PaymentMonth {
	summary := make(map[string]PaymentMonth)
	for _, p := range payments {
		key := p.PaymentDate.MonthKey()
		month, ok := summary[key]
		if !ok {
			month = PaymentMonth{Total: decimal.Zero, ByType: make(map[domain.PaymentType]decimal.Decimal)}
		}
		month.Total = month.Total.Add(p.AmountUSD)
		month.ByType[p.PaymentType] = month.ByType[p.PaymentType].Add(p.AmountUSD)
		summary[key] = month
	}
	return summary
}

// SummarizeExpenses buckets operating expenses by expense date and instructor
// pay by payment date into one map keyed by month.
func SummarizeExpenses(expenses []domain.Expense, instructorPay []domain.InstructorPayment) map[string]ExpenseMonth {
	summary := make(map[string]ExpenseMonth)
	for _, e := range expenses {
		key := e.Date.MonthKey()
		month := summary[key]
		month.Expenses = month.Expenses.Add(e.AmountUSD)
		month.Total = month.Total.Add(e.AmountUSD)
		summary[key] = month
	}
	for _, p := range instructorPay {
		key := p.PaymentDate.MonthKey()
		month := summary[key]
		month.InstructorPay = month.InstructorPay.Add(p.AmountUSD)
		month.Total = month.Total.Add(p.AmountUSD)
		summary[key] = month
	}
	return summary
}
