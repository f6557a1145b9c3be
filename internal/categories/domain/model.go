package domain

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/apperr"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store"
)

const CollectionName = "categories"

// Document field names.
const (
	FieldName           = "name"
	FieldNameNormalized = "nameNormalized"
	FieldColor          = "color"
	FieldIcon           = "icon"
)

const (
	MaxNameLength = 50
	MaxIconLength = 16

	DefaultColor = "#666666"
	DefaultIcon  = "📁"
)

var (
	ErrNameRequired  = apperr.Validation("category name is required")
	ErrNameTooLong   = apperr.Validation("category name is too long (max 50 characters)")
	ErrInvalidColor  = apperr.Validation("color must be a hex value such as #666666")
	ErrInvalidIcon   = apperr.Validation("icon must be 1 to 16 characters")
	ErrNothingToSave = apperr.Validation("no fields to update")
	ErrDuplicateName = apperr.Conflict("a category with this name already exists")
	ErrHasExpenses   = apperr.InUse("category has associated expenses")
)

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Category is a user's spending category.
type Category struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	NameNormalized string    `json:"nameNormalized"`
	Color          string    `json:"color"`
	Icon           string    `json:"icon"`
	UserID         string    `json:"userId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CreateCategoryRequest carries the fields of a new category. Empty Color and
// Icon take the defaults.
type CreateCategoryRequest struct {
	Name  string
	Color string
	Icon  string
}

// UpdateCategoryRequest is a partial update; nil fields are left unchanged.
type UpdateCategoryRequest struct {
	Name  *string
	Color *string
	Icon  *string
}

func (r UpdateCategoryRequest) IsEmpty() bool {
	return r.Name == nil && r.Color == nil && r.Icon == nil
}

// NormalizeName is the key used for per-user name uniqueness.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// CleanName trims name and checks its length.
func CleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", ErrNameTooLong
	}
	return name, nil
}

func ValidateColor(color string) error {
	if !hexColor.MatchString(color) {
		return ErrInvalidColor
	}
	return nil
}

func ValidateIcon(icon string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(icon))
	if n == 0 || n > MaxIconLength {
		return ErrInvalidIcon
	}
	return nil
}

// FromDocument maps a stored category document.
func FromDocument(d store.Document) Category {
	return Category{
		ID:             d.ID,
		Name:           d.String(FieldName),
		NameNormalized: d.String(FieldNameNormalized),
		Color:          d.String(FieldColor),
		Icon:           d.String(FieldIcon),
		UserID:         d.String("userId"),
		CreatedAt:      d.Time("createdAt"),
		UpdatedAt:      d.Time("updatedAt"),
	}
}
