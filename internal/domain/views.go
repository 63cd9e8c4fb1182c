package domain

// Joined read models returned to the dashboard.

type CategoryWithCount struct {
	Category
	StudentCount int `json:"studentCount"`
}

type CategoryDetail struct {
	Category
	Students []Student `json:"students"`
}

type LeagueSummary struct {
	League
	CategoryName    string `json:"categoryName"`
	EnrollmentCount int    `json:"enrollmentCount"`
}

type LeagueDetail struct {
	LeagueSummary
	Enrollments []EnrollmentDetail `json:"enrollments"`
}

type EnrollmentDetail struct {
	LeagueEnrollment
	StudentName string `json:"studentName"`
}

// EnrollmentWithLeague resolves an enrollment to the league whose fee it owes.
type EnrollmentWithLeague struct {
	LeagueEnrollment
	League League `json:"league"`
}

type GameSummary struct {
	Game
	LeagueName   string `json:"leagueName"`
	CategoryName string `json:"categoryName"`
}

type GameDetail struct {
	GameSummary
	Attendances []AttendanceDetail `json:"attendances"`
}

type AttendanceDetail struct {
	GameAttendance
	StudentName string `json:"studentName"`
}

// AttendanceWithGame resolves an attendance record to the game whose
// arbitrage fee it may owe.
type AttendanceWithGame struct {
	GameAttendance
	Game Game `json:"game"`
}

type EligibleStudent struct {
	Student
	Attended           bool `json:"attended"`
	AttendanceRecorded bool `json:"attendanceRecorded"`
}

type PaymentDetail struct {
	Payment
	StudentName string `json:"studentName"`
}

type ExpenseDetail struct {
	Expense
	CategoryName string `json:"categoryName"`
}

type InstructorPaymentDetail struct {
	InstructorPayment
	InstructorName string `json:"instructorName"`
}

type StudentFilter struct {
	Status     *StudentStatus
	CategoryID string
}

// DateRange bounds are inclusive; zero bounds are open.
type DateRange struct {
	From Date
	To   Date
}

func (r DateRange) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From.Time) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To.Time) {
		return false
	}
	return true
}

type PaymentFilter struct {
	StudentID string
	Range     DateRange
}

type ExpenseFilter struct {
	CategoryID string
	Range      DateRange
}

type InstructorPaymentFilter struct {
	InstructorID string
	Range        DateRange
}
