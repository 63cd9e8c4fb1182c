package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
)

func TestDateJSON(t *testing.T) {
	var v struct {
		Day  Date `json:"day"`
		Open Date `json:"open"`
	}
	err := json.Unmarshal([]byte(`{"day":"2025-03-10","open":null}`), &v)
	assert.NoError(t, err)
	assert.Equal(t, "2025-03-10", v.Day.String())
	assert.Equal(t, "2025-03", v.Day.MonthKey())
	assert.True(t, v.Open.IsZero())

	out, err := json.Marshal(v)
	assert.NoError(t, err)
	assert.Equal(t, `{"day":"2025-03-10","open":null}`, string(out))
}

func TestParseDateAcceptsTimestamps(t *testing.T) {
	d, err := ParseDate("2025-01-10T15:04:05.000Z")
	assert.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.January, 10), d)

	d, err = ParseDate("2025-01-10 08:30:00")
	assert.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.January, 10), d)

	for _, bad := range []string{"10/01/2025", "2025-01-10garbage", "2025-01-1012"} {
		_, err = ParseDate(bad)
		assert.True(t, errors.Is(err, ErrValidation), "%q should be rejected", bad)
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	assert.NoError(t, d.Scan("2024-12-31"))
	assert.Equal(t, "2024-12-31", d.String())

	assert.NoError(t, d.Scan(time.Date(2024, 5, 6, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2024-05-06", d.String())

	assert.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())

	assert.Error(t, d.Scan(42))
}

func TestDateOfKeepsLocalDay(t *testing.T) {
	caracas := time.FixedZone("VET", -4*60*60)
	// 02:00 UTC on the 1st is still the last day of the previous month in Caracas
	now := time.Date(2025, 4, 1, 2, 0, 0, 0, time.UTC).In(caracas)
	assert.Equal(t, "2025-03", DateOf(now).MonthKey())
}

func TestEnumsRejectUnknownValues(t *testing.T) {
	var p struct {
		Currency    Currency      `json:"currency"`
		PaymentType PaymentType   `json:"paymentType"`
		Method      PaymentMethod `json:"paymentMethod"`
	}
	err := json.Unmarshal([]byte(`{"currency":"usd","paymentType":"monthly_fee","paymentMethod":"cash_usd"}`), &p)
	assert.NoError(t, err)
	assert.Equal(t, CurrencyUSD, p.Currency)

	err = json.Unmarshal([]byte(`{"currency":"EUR"}`), &p)
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, "currency", verr.Field)

	err = json.Unmarshal([]byte(`{"paymentType":"donation"}`), &p)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestParseGameTypeLegacyNames(t *testing.T) {
	cases := map[string]GameType{
		"amistoso": GameTypeFriendly,
		"Liga":     GameTypeLeague,
		"copa":     GameTypeCup,
		"cup":      GameTypeCup,
	}
	for in, want := range cases {
		got, err := ParseGameType(in)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseGameType("exhibition")
	assert.Error(t, err)
}

func TestErrorsUnwrapToSentinels(t *testing.T) {
	assert.True(t, errors.Is(NewNotFound("student", "s1"), ErrNotFound))
	assert.Equal(t, "student s1 not found", NewNotFound("student", "s1").Error())
	assert.True(t, errors.Is(&DuplicateEnrollmentError{StudentID: "s", LeagueID: "l"}, ErrDuplicateEnrollment))
	assert.True(t, errors.Is(&InvalidRateError{Rate: "0"}, ErrInvalidRate))
	assert.Equal(t, "firstName: is required", NewValidationError("firstName", "is required").Error())
}

func TestDateRangeOpenBounds(t *testing.T) {
	r := DateRange{From: NewDate(2025, 1, 1)}
	assert.True(t, r.Contains(NewDate(2030, 1, 1)))
	assert.False(t, r.Contains(NewDate(2024, 12, 31)))
	assert.True(t, DateRange{}.Contains(NewDate(1990, 1, 1)))
}
