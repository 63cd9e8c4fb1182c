package domain

import "strings"

type (
	Currency      string
	PaymentType   string
	PaymentMethod string
	GameType      string
	StudentStatus string
	UserRole      string
)

const (
	CurrencyUSD   Currency = "USD"
	CurrencyLocal Currency = "LOCAL"
)

const (
	PaymentTypeMonthlyFee    PaymentType = "monthly_fee"
	PaymentTypeLeagueFee     PaymentType = "league_fee"
	PaymentTypeGameArbitrage PaymentType = "game_arbitrage"
)

const (
	PaymentMethodCashUSD       PaymentMethod = "cash_usd"
	PaymentMethodCashLocal     PaymentMethod = "cash_local"
	PaymentMethodTransferLocal PaymentMethod = "transfer_local"
	PaymentMethodTransferUSD   PaymentMethod = "transfer_usd"
)

const (
	GameTypeFriendly GameType = "friendly"
	GameTypeLeague   GameType = "league"
	GameTypeCup      GameType = "cup"
)

const (
	StudentActive   StudentStatus = "active"
	StudentInactive StudentStatus = "inactive"
)

const (
	RoleAdmin      UserRole = "admin"
	RoleSecretary  UserRole = "secretary"
	RoleInstructor UserRole = "instructor"
)

func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", NewValidationError("currency", "must be one of USD, LOCAL")
	}
	return c, nil
}

func (c Currency) Valid() bool {
	return c == CurrencyUSD || c == CurrencyLocal
}

func (c *Currency) UnmarshalText(b []byte) error {
	v, err := ParseCurrency(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func ParsePaymentType(s string) (PaymentType, error) {
	t := PaymentType(strings.TrimSpace(s))
	if !t.Valid() {
		return "", NewValidationError("paymentType", "must be one of monthly_fee, league_fee, game_arbitrage")
	}
	return t, nil
}

func (t PaymentType) Valid() bool {
	switch t {
	case PaymentTypeMonthlyFee, PaymentTypeLeagueFee, PaymentTypeGameArbitrage:
		return true
	}
	return false
}

func (t *PaymentType) UnmarshalText(b []byte) error {
	v, err := ParsePaymentType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.TrimSpace(s))
	if !m.Valid() {
		return "", NewValidationError("paymentMethod", "must be one of cash_usd, cash_local, transfer_local, transfer_usd")
	}
	return m, nil
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCashUSD, PaymentMethodCashLocal, PaymentMethodTransferLocal, PaymentMethodTransferUSD:
		return true
	}
	return false
}

func (m *PaymentMethod) UnmarshalText(b []byte) error {
	v, err := ParsePaymentMethod(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// legacy Spanish names still sent by older dashboard builds
var legacyGameTypes = map[string]GameType{
	"amistoso": GameTypeFriendly,
	"liga":     GameTypeLeague,
	"copa":     GameTypeCup,
}

func ParseGameType(s string) (GameType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if t, ok := legacyGameTypes[s]; ok {
		return t, nil
	}
	t := GameType(s)
	if !t.Valid() {
		return "", NewValidationError("gameType", "must be one of friendly, league, cup")
	}
	return t, nil
}

func (t GameType) Valid() bool {
	switch t {
	case GameTypeFriendly, GameTypeLeague, GameTypeCup:
		return true
	}
	return false
}

func (t *GameType) UnmarshalText(b []byte) error {
	v, err := ParseGameType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func ParseStudentStatus(s string) (StudentStatus, error) {
	st := StudentStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", NewValidationError("status", "must be one of active, inactive")
	}
	return st, nil
}

func (s StudentStatus) Valid() bool {
	return s == StudentActive || s == StudentInactive
}

func (s *StudentStatus) UnmarshalText(b []byte) error {
	v, err := ParseStudentStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseUserRole(s string) (UserRole, error) {
	r := UserRole(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", NewValidationError("role", "must be one of admin, secretary, instructor")
	}
	return r, nil
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleSecretary, RoleInstructor:
		return true
	}
	return false
}

func (r *UserRole) UnmarshalText(b []byte) error {
	v, err := ParseUserRole(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}
