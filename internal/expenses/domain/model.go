package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/apperr"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/money"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store"
)

const CollectionName = "expenses"

// Document field names.
const (
	FieldAmountCents = "amountCents"
	FieldDescription = "description"
	FieldCategoryID  = "categoryId"
	FieldDate        = "date"
)

const MaxDescriptionLength = 200

var (
	ErrInvalidAmount       = apperr.Validation("amount must be a positive number")
	ErrDescriptionRequired = apperr.Validation("description is required")
	ErrDescriptionTooLong  = apperr.Validation("description is too long (max 200 characters)")
	ErrCategoryRequired    = apperr.Validation("categoryId is required")
	ErrInvalidDate         = apperr.Validation("date must be RFC 3339 or YYYY-MM-DD")
	ErrInvalidMonth        = apperr.Validation("month must be between 1 and 12")
	ErrInvalidYear         = apperr.Validation("year must be between 1970 and 9999")
	ErrMonthWithoutYear    = apperr.Validation("month filter requires a year; add ?year=YYYY")
	ErrInvalidLimit        = apperr.Validation("limit must be a positive integer")
	ErrInvalidDateRange    = apperr.Validation("startDate must not be after endDate")
	ErrNothingToSave       = apperr.Validation("no fields to update")
)

// Expense is a single spending record.
type Expense struct {
	ID          string       `json:"id"`
	Amount      money.Amount `json:"amount"`
	Description string       `json:"description"`
	CategoryID  string       `json:"categoryId"`
	UserID      string       `json:"userId"`
	Date        time.Time    `json:"date"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// CreateExpenseRequest carries a new expense. A nil Date means now.
type CreateExpenseRequest struct {
	Amount      money.Amount
	Description string
	CategoryID  string
	Date        *time.Time
}

// UpdateExpenseRequest is a partial update; nil fields are left unchanged.
type UpdateExpenseRequest struct {
	Amount      *money.Amount
	Description *string
	CategoryID  *string
	Date        *time.Time
}

func (r UpdateExpenseRequest) IsEmpty() bool {
	return r.Amount == nil && r.Description == nil && r.CategoryID == nil && r.Date == nil
}

// ListFilter narrows an expense listing. Zero values mean "no filter".
type ListFilter struct {
	CategoryID string
	Start      *time.Time
	End        *time.Time
	Limit      int
}

// ListResult is a page of expenses plus the total of the whole filtered set.
type ListResult struct {
	Expenses []Expense
	Total    money.Amount
	Count    int
}

// StatsPeriod selects the calendar window for Stats. Month is only valid
// together with Year.
type StatsPeriod struct {
	Month *int
	Year  *int
}

type CategoryStats struct {
	Total    money.Amount `json:"total"`
	Count    int          `json:"count"`
	Expenses []string     `json:"expenses"`
}

// ExpenseRef identifies the highest or lowest expense of a period.
type ExpenseRef struct {
	ID          string       `json:"id"`
	Amount      money.Amount `json:"amount"`
	Description string       `json:"description"`
}

type Period struct {
	Month *int `json:"month"`
	Year  *int `json:"year"`
}

type Stats struct {
	Total      money.Amount             `json:"total"`
	Count      int                      `json:"count"`
	Average    money.Amount             `json:"average"`
	ByCategory map[string]CategoryStats `json:"byCategory"`
	Highest    *ExpenseRef              `json:"highest"`
	Lowest     *ExpenseRef              `json:"lowest"`
	Period     Period                   `json:"period"`
}

func ValidateAmount(a money.Amount) error {
	if !a.IsPositive() {
		return ErrInvalidAmount
	}
	return nil
}

// CleanDescription trims d and checks its length.
func CleanDescription(d string) (string, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return "", ErrDescriptionRequired
	}
	if utf8.RuneCountInString(d) > MaxDescriptionLength {
		return "", ErrDescriptionTooLong
	}
	return d, nil
}

// DateOnly reports whether s is a bare calendar date.
func DateOnly(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

// ParseDate accepts an RFC 3339 timestamp or a YYYY-MM-DD date, the latter
// interpreted as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, loc); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}

// ParseEndDate is ParseDate for the upper bound of a range: a bare date
// covers the whole day.
func ParseEndDate(s string, loc *time.Location) (time.Time, error) {
	t, err := ParseDate(s, loc)
	if err != nil {
		return t, err
	}
	if DateOnly(strings.TrimSpace(s)) {
		t = t.In(loc).AddDate(0, 0, 1).Add(-time.Nanosecond).UTC()
	}
	return t, nil
}

// FromDocument maps a stored expense document.
func FromDocument(d store.Document) Expense {
	return Expense{
		ID:          d.ID,
		Amount:      money.FromCents(d.Int64(FieldAmountCents)),
		Description: d.String(FieldDescription),
		CategoryID:  d.String(FieldCategoryID),
		UserID:      d.String("userId"),
		Date:        d.Time(FieldDate),
		CreatedAt:   d.Time("createdAt"),
		UpdatedAt:   d.Time("updatedAt"),
	}
}
