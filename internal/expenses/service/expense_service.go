package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	catdomain "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/categories/domain"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/expenses/domain"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/money"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/repository"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store"
)

var expenses = repository.Collection{Name: domain.CollectionName, Entity: "expense"}

// CategoryResolver resolves a category id on behalf of a user, failing with
// NotFound or Forbidden.
type CategoryResolver interface {
	Get(ctx context.Context, id, userID string) (*catdomain.Category, error)
}

// ExpenseService handles expense business logic
type ExpenseService struct {
	repo       *repository.Owned
	categories CategoryResolver
	loc        *time.Location
	log        *zap.Logger
}

// NewExpenseService creates a new expense service. Calendar filters (bare
// dates, stats months) are evaluated in loc.
func NewExpenseService(repo *repository.Owned, categories CategoryResolver, loc *time.Location, log *zap.Logger) *ExpenseService {
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExpenseService{repo: repo, categories: categories, loc: loc, log: log.Named("expenses")}
}

// Location is the time zone calendar filters are evaluated in.
func (s *ExpenseService) Location() *time.Location {
	return s.loc
}

// Create records an expense against one of the user's categories.
func (s *ExpenseService) Create(ctx context.Context, userID string, req domain.CreateExpenseRequest) (*domain.Expense, error) {
	if err := domain.ValidateAmount(req.Amount); err != nil {
		return nil, err
	}
	description, err := domain.CleanDescription(req.Description)
	if err != nil {
		return nil, err
	}
	categoryID := strings.TrimSpace(req.CategoryID)
	if categoryID == "" {
		return nil, domain.ErrCategoryRequired
	}
	if _, err := s.categories.Get(ctx, categoryID, userID); err != nil {
		return nil, err
	}

	date := s.repo.Now()
	if req.Date != nil {
		date = req.Date.UTC()
	}

	doc, err := s.repo.CreateOwned(ctx, expenses, userID, map[string]any{
		domain.FieldAmountCents: req.Amount.Cents(),
		domain.FieldDescription: description,
		domain.FieldCategoryID:  categoryID,
		domain.FieldDate:        date,
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("expense created",
		zap.String("user_id", userID),
		zap.String("expense_id", doc.ID),
		zap.Stringer("amount", req.Amount),
	)
	e := domain.FromDocument(*doc)
	return &e, nil
}

// Get returns one of the user's expenses.
func (s *ExpenseService) Get(ctx context.Context, id, userID string) (*domain.Expense, error) {
	doc, err := s.repo.GetOwned(ctx, expenses, id, userID)
	if err != nil {
		return nil, err
	}
	e := domain.FromDocument(*doc)
	return &e, nil
}

// List returns the user's expenses, newest first. Total covers every matching
// expense, including those cut off by the limit.
func (s *ExpenseService) List(ctx context.Context, userID string, f domain.ListFilter) (*domain.ListResult, error) {
	if f.Limit < 0 {
		return nil, domain.ErrInvalidLimit
	}
	if f.Start != nil && f.End != nil && f.Start.After(*f.End) {
		return nil, domain.ErrInvalidDateRange
	}

	var filters []store.Filter
	if f.CategoryID != "" {
		filters = append(filters, store.Eq(domain.FieldCategoryID, f.CategoryID))
	}
	all, err := s.fetch(ctx, userID, filters...)
	if err != nil {
		return nil, err
	}

	// Date bounds are applied here rather than in the store query; the
	// document stores only support equality filters.
	matched := make([]domain.Expense, 0, len(all))
	var total money.Amount
	for _, e := range all {
		if f.Start != nil && e.Date.Before(*f.Start) {
			continue
		}
		if f.End != nil && e.Date.After(*f.End) {
			continue
		}
		matched = append(matched, e)
		total = total.Add(e.Amount)
	}

	if f.Limit > 0 && len(matched) > f.Limit {
		matched = matched[:f.Limit]
	}
	return &domain.ListResult{Expenses: matched, Total: total, Count: len(matched)}, nil
}

// Update applies a partial update. Ownership of the expense is checked first;
// a new category must also belong to the user.
func (s *ExpenseService) Update(ctx context.Context, id, userID string, req domain.UpdateExpenseRequest) (*domain.Expense, error) {
	if req.IsEmpty() {
		return nil, domain.ErrNothingToSave
	}

	existing, err := s.repo.GetOwned(ctx, expenses, id, userID)
	if err != nil {
		return nil, err
	}

	patch := make(map[string]any, 4)
	if req.Amount != nil {
		if err := domain.ValidateAmount(*req.Amount); err != nil {
			return nil, err
		}
		patch[domain.FieldAmountCents] = req.Amount.Cents()
	}
	if req.Description != nil {
		description, err := domain.CleanDescription(*req.Description)
		if err != nil {
			return nil, err
		}
		patch[domain.FieldDescription] = description
	}
	if req.CategoryID != nil {
		categoryID := strings.TrimSpace(*req.CategoryID)
		if categoryID == "" {
			return nil, domain.ErrCategoryRequired
		}
		if _, err := s.categories.Get(ctx, categoryID, userID); err != nil {
			return nil, err
		}
		patch[domain.FieldCategoryID] = categoryID
	}
	if req.Date != nil {
		patch[domain.FieldDate] = req.Date.UTC()
	}

	doc, err := s.repo.Merge(ctx, expenses, existing, patch)
	if err != nil {
		return nil, err
	}

	s.log.Debug("expense updated", zap.String("user_id", userID), zap.String("expense_id", id))
	e := domain.FromDocument(*doc)
	return &e, nil
}

// Delete removes one of the user's expenses and returns its id.
func (s *ExpenseService) Delete(ctx context.Context, id, userID string) (string, error) {
	deleted, err := s.repo.DeleteOwned(ctx, expenses, id, userID)
	if err != nil {
		return "", err
	}
	s.log.Debug("expense deleted", zap.String("user_id", userID), zap.String("expense_id", id))
	return deleted, nil
}

// Stats aggregates the user's expenses over a calendar year or month. With no
// period every expense is included.
func (s *ExpenseService) Stats(ctx context.Context, userID string, p domain.StatsPeriod) (*domain.Stats, error) {
	if err := validatePeriod(p); err != nil {
		return nil, err
	}

	all, err := s.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &domain.Stats{
		ByCategory: make(map[string]domain.CategoryStats),
		Period:     domain.Period{Month: p.Month, Year: p.Year},
	}

	// all is ordered newest first (ties by id), so on equal amounts the
	// first of that order wins highest and lowest.
	var highest, lowest *domain.Expense
	for i := range all {
		e := &all[i]
		if !s.inPeriod(e.Date, p) {
			continue
		}

		stats.Total = stats.Total.Add(e.Amount)
		stats.Count++

		cs := stats.ByCategory[e.CategoryID]
		cs.Total = cs.Total.Add(e.Amount)
		cs.Count++
		cs.Expenses = append(cs.Expenses, e.ID)
		stats.ByCategory[e.CategoryID] = cs

		if highest == nil || e.Amount > highest.Amount {
			highest = e
		}
		if lowest == nil || e.Amount < lowest.Amount {
			lowest = e
		}
	}

	stats.Average = stats.Total.Average(stats.Count)
	stats.Highest = ref(highest)
	stats.Lowest = ref(lowest)
	return stats, nil
}

func (s *ExpenseService) inPeriod(date time.Time, p domain.StatsPeriod) bool {
	if p.Year == nil {
		return true
	}
	local := date.In(s.loc)
	if local.Year() != *p.Year {
		return false
	}
	return p.Month == nil || int(local.Month()) == *p.Month
}

// fetch loads the user's expenses ordered by date descending, then id.
func (s *ExpenseService) fetch(ctx context.Context, userID string, filters ...store.Filter) ([]domain.Expense, error) {
	docs, err := s.repo.ListByOwner(ctx, expenses, userID, filters...)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Expense, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.FromDocument(d))
	}
	slices.SortFunc(out, func(a, b domain.Expense) int {
		if c := b.Date.Compare(a.Date); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

func validatePeriod(p domain.StatsPeriod) error {
	if p.Month != nil && p.Year == nil {
		return domain.ErrMonthWithoutYear
	}
	if p.Month != nil && (*p.Month < 1 || *p.Month > 12) {
		return domain.ErrInvalidMonth
	}
	if p.Year != nil && (*p.Year < 1970 || *p.Year > 9999) {
		return domain.ErrInvalidYear
	}
	return nil
}

func ref(e *domain.Expense) *domain.ExpenseRef {
	if e == nil {
		return nil
	}
	return &domain.ExpenseRef{ID: e.ID, Amount: e.Amount, Description: e.Description}
}
