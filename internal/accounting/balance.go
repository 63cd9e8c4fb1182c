package accounting

import (
	"time"

	"academy-ledger/internal/domain"

	"github.com/shopspring/decimal"
)

type BalanceInput struct {
	Student       domain.Student
	MonthlyFeeUSD decimal.Decimal
	Enrollments   []domain.EnrollmentWithLeague
	Attendances   []domain.AttendanceWithGame
	Payments      []domain.Payment
}

type StudentBalance struct {
	StudentID       string          `json:"studentId"`
	StudentName     string          `json:"studentName"`
	MonthsEnrolled  int             `json:"monthsEnrolled"`
	ExpectedMonthly decimal.Decimal `json:"expectedMonthly"`
	ExpectedLeagues decimal.Decimal `json:"expectedLeagues"`
	ExpectedGames   decimal.Decimal `json:"expectedGames"`
	TotalExpected   decimal.Decimal `json:"totalExpected"`
	TotalPaid       decimal.Decimal `json:"totalPaid"`
	Balance         decimal.Decimal `json:"balance"` // negative = owes money
}

// MonthsEnrolled counts calendar months from enrollment to now, both ends
// included, and never less than one.
func MonthsEnrolled(enrolledAt domain.Date, now time.Time) int {
	months := (now.Year()-enrolledAt.Year())*12 + int(now.Month()-enrolledAt.Month()) + 1
	return max(1, months)
}

// CalculateBalance compares what the student owes as of now against every
// payment on record. Payments are not allocated to specific obligations: a
// league fee payment also offsets monthly fee debt.
func CalculateBalance(in BalanceInput, now time.Time) StudentBalance {
	months := MonthsEnrolled(in.Student.EnrolledAt, now)
	expectedMonthly := in.MonthlyFeeUSD.Mul(decimal.NewFromInt(int64(months)))

	expectedLeagues := decimal.Zero
	for _, e := range in.Enrollments {
		expectedLeagues = expectedLeagues.Add(e.League.FeeAmountUSD)
	}

	expectedGames := decimal.Zero
	for _, a := range in.Attendances {
		if !a.Attended {
			continue
		}
		expectedGames = expectedGames.Add(a.Game.ArbitrageFeeUSD)
	}

	totalPaid := decimal.Zero
	for _, p := range in.Payments {
		totalPaid = totalPaid.Add(p.AmountUSD)
	}

	totalExpected := expectedMonthly.Add(expectedLeagues).Add(expectedGames)

	return StudentBalance{
		StudentID:       in.Student.ID,
		StudentName:     in.Student.FullName(),
		MonthsEnrolled:  months,
		ExpectedMonthly: expectedMonthly,
		ExpectedLeagues: expectedLeagues,
		ExpectedGames:   expectedGames,
		TotalExpected:   totalExpected,
		TotalPaid:       totalPaid,
		Balance:         totalPaid.Sub(totalExpected),
	}
}
