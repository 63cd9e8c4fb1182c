package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         UserRole  `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"` // "Sub-10", "Sub-12"...
	MinAge int    `json:"minAge"`
	MaxAge int    `json:"maxAge"`
}

type Student struct {
	ID            string        `json:"id"`
	FirstName     string        `json:"firstName"`
	LastName      string        `json:"lastName"`
	Birthdate     Date          `json:"birthdate"`
	GuardianName  string        `json:"guardianName"`
	GuardianPhone string        `json:"guardianPhone"`
	GuardianEmail string        `json:"guardianEmail"`
	CategoryID    string        `json:"categoryId"`
	CategoryName  string        `json:"categoryName,omitempty"`
	EnrolledAt    Date          `json:"enrolledAt"`
	Status        StudentStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

type League struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Year         int             `json:"year"`
	CategoryID   string          `json:"categoryId"`
	FeeAmountUSD decimal.Decimal `json:"feeAmountUsd"`
}

type LeagueEnrollment struct {
	ID         string `json:"id"`
	StudentID  string `json:"studentId"`
	LeagueID   string `json:"leagueId"`
	EnrolledAt Date   `json:"enrolledAt"`
}

type Goal struct {
	ID          string `json:"id"`
	GameID      string `json:"gameId"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName,omitempty"`
	Minute      int    `json:"minute"`
}

type Game struct {
	ID              string          `json:"id"`
	LeagueID        *string         `json:"leagueId"` // nil for friendlies
	Date            Date            `json:"date"`
	Opponent        string          `json:"opponent"`
	Location        string          `json:"location"`
	GameType        GameType        `json:"gameType"`
	ArbitrageFeeUSD decimal.Decimal `json:"arbitrageFeeUsd"`
	GoalsFor        *int            `json:"goalsFor"`
	GoalsAgainst    *int            `json:"goalsAgainst"`
	Goals           []Goal          `json:"goals"`
}

type GameAttendance struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"studentId"`
	GameID     string    `json:"gameId"`
	Attended   bool      `json:"attended"`
	RecordedBy string    `json:"recordedBy"`
	RecordedAt time.Time `json:"recordedAt"`
}

type Payment struct {
	ID              string          `json:"id"`
	StudentID       string          `json:"studentId"`
	AmountUSD       decimal.Decimal `json:"amountUsd"`
	AmountOriginal  decimal.Decimal `json:"amountOriginal"`
	Currency        Currency        `json:"currency"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"` // LOCAL units per USD, 1 for USD
	RateSource      string          `json:"rateSource"`
	PaymentDate     Date            `json:"paymentDate"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentType     PaymentType     `json:"paymentType"`
	ReferenceID     *string         `json:"referenceId"` // league or game it settles
	ReferenceNumber string          `json:"referenceNumber"`
	RecordedBy      string          `json:"recordedBy"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type ExpenseCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Expense struct {
	ID             string          `json:"id"`
	CategoryID     string          `json:"categoryId"`
	Description    string          `json:"description"`
	AmountUSD      decimal.Decimal `json:"amountUsd"`
	AmountOriginal decimal.Decimal `json:"amountOriginal"`
	Currency       Currency        `json:"currency"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	Date           Date            `json:"date"`
	Payee          string          `json:"payee"`
	RecordedBy     string          `json:"recordedBy"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type InstructorPayment struct {
	ID             string          `json:"id"`
	InstructorID   string          `json:"instructorId"`
	AmountUSD      decimal.Decimal `json:"amountUsd"`
	AmountOriginal decimal.Decimal `json:"amountOriginal"`
	Currency       Currency        `json:"currency"`
	ExchangeRate   decimal.Decimal `json:"exchangeRate"`
	PeriodStart    Date            `json:"periodStart"`
	PeriodEnd      Date            `json:"periodEnd"`
	PaymentDate    Date            `json:"paymentDate"`
	RecordedBy     string          `json:"recordedBy"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"createdAt"`
}

type Settings struct {
	MonthlyFeeUSD     decimal.Decimal `json:"monthlyFeeUsd"`
	DefaultCurrency   Currency        `json:"defaultCurrency"`
	LocalCurrencyCode string          `json:"localCurrencyCode"` // "VES", "ARS"...
	UpdatedAt         time.Time       `json:"updatedAt,omitzero"`
}

func DefaultSettings() Settings {
	return Settings{
		MonthlyFeeUSD:     decimal.NewFromInt(50),
		DefaultCurrency:   CurrencyLocal,
		LocalCurrencyCode: "VES",
	}
}

// ExchangeRate is how many units of the local currency buy one USD.
type ExchangeRate struct {
	Base      string          `json:"base"`
	Currency  string          `json:"currency"`
	Rate      decimal.Decimal `json:"rate"`
	Source    string          `json:"source"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
