package service

import (
	"context"
	"slices"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/categories/domain"
	expensedomain "github.com/GoSim-25-26J-441/expense-tracker-backend/internal/expenses/domain"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/repository"
	"github.com/GoSim-25-26J-441/expense-tracker-backend/internal/store"
)

var (
	categories = repository.Collection{Name: domain.CollectionName, Entity: "category"}
	expenses   = repository.Collection{Name: expensedomain.CollectionName, Entity: "expense"}
)

// CategoryService handles category business logic
type CategoryService struct {
	repo *repository.Owned
	log  *zap.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(repo *repository.Owned, log *zap.Logger) *CategoryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &CategoryService{repo: repo, log: log.Named("categories")}
}

// Create creates a category, rejecting names that collide with another of the
// user's categories after normalization.
func (s *CategoryService) Create(ctx context.Context, userID string, req domain.CreateCategoryRequest) (*domain.Category, error) {
	name, err := domain.CleanName(req.Name)
	if err != nil {
		return nil, err
	}

	color := strings.TrimSpace(req.Color)
	if color == "" {
		color = domain.DefaultColor
	}
	if err := domain.ValidateColor(color); err != nil {
		return nil, err
	}

	icon := strings.TrimSpace(req.Icon)
	if icon == "" {
		icon = domain.DefaultIcon
	}
	if err := domain.ValidateIcon(icon); err != nil {
		return nil, err
	}

	normalized := domain.NormalizeName(name)
	if err := s.ensureUniqueName(ctx, userID, normalized, ""); err != nil {
		return nil, err
	}

	doc, err := s.repo.CreateOwned(ctx, categories, userID, map[string]any{
		domain.FieldName:           name,
		domain.FieldNameNormalized: normalized,
		domain.FieldColor:          color,
		domain.FieldIcon:           icon,
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("category created", zap.String("user_id", userID), zap.String("category_id", doc.ID))
	c := domain.FromDocument(*doc)
	return &c, nil
}

// List returns the user's categories sorted by name, case-insensitively.
func (s *CategoryService) List(ctx context.Context, userID string) ([]domain.Category, error) {
	docs, err := s.repo.ListByOwner(ctx, categories, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.FromDocument(d))
	}

	// Collators are not safe for concurrent use.
	col := collate.New(language.Und, collate.IgnoreCase)
	slices.SortFunc(out, func(a, b domain.Category) int {
		if c := col.CompareString(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

// Get returns one of the user's categories.
func (s *CategoryService) Get(ctx context.Context, id, userID string) (*domain.Category, error) {
	doc, err := s.repo.GetOwned(ctx, categories, id, userID)
	if err != nil {
		return nil, err
	}
	c := domain.FromDocument(*doc)
	return &c, nil
}

// Update applies a partial update. Ownership is checked before any other
// rule, so a foreign category always yields Forbidden.
func (s *CategoryService) Update(ctx context.Context, id, userID string, req domain.UpdateCategoryRequest) (*domain.Category, error) {
	if req.IsEmpty() {
		return nil, domain.ErrNothingToSave
	}

	existing, err := s.repo.GetOwned(ctx, categories, id, userID)
	if err != nil {
		return nil, err
	}

	patch := make(map[string]any, 4)
	if req.Name != nil {
		name, err := domain.CleanName(*req.Name)
		if err != nil {
			return nil, err
		}
		normalized := domain.NormalizeName(name)
		if normalized != existing.String(domain.FieldNameNormalized) {
			if err := s.ensureUniqueName(ctx, userID, normalized, id); err != nil {
				return nil, err
			}
		}
		patch[domain.FieldName] = name
		patch[domain.FieldNameNormalized] = normalized
	}
	if req.Color != nil {
		if err := domain.ValidateColor(*req.Color); err != nil {
			return nil, err
		}
		patch[domain.FieldColor] = *req.Color
	}
	if req.Icon != nil {
		if err := domain.ValidateIcon(*req.Icon); err != nil {
			return nil, err
		}
		patch[domain.FieldIcon] = strings.TrimSpace(*req.Icon)
	}

	doc, err := s.repo.Merge(ctx, categories, existing, patch)
	if err != nil {
		return nil, err
	}

	s.log.Debug("category updated", zap.String("user_id", userID), zap.String("category_id", id))
	c := domain.FromDocument(*doc)
	return &c, nil
}

// Delete removes a category. It is refused while any expense references it.
func (s *CategoryService) Delete(ctx context.Context, id, userID string) (string, error) {
	existing, err := s.repo.GetOwned(ctx, categories, id, userID)
	if err != nil {
		return "", err
	}

	inUse, err := s.repo.Exists(ctx, expenses,
		store.Eq(repository.FieldUserID, userID),
		store.Eq(expensedomain.FieldCategoryID, id),
	)
	if err != nil {
		return "", err
	}
	if inUse {
		return "", domain.ErrHasExpenses
	}

	if err := s.repo.Remove(ctx, categories, existing); err != nil {
		return "", err
	}

	s.log.Debug("category deleted", zap.String("user_id", userID), zap.String("category_id", id))
	return existing.ID, nil
}

func (s *CategoryService) ensureUniqueName(ctx context.Context, userID, normalized, exceptID string) error {
	docs, err := s.repo.ListByOwner(ctx, categories, userID, store.Eq(domain.FieldNameNormalized, normalized))
	if err != nil {
		return err
	}
	for _, d := range docs {
		if d.ID != exceptID {
			return domain.ErrDuplicateName
		}
	}
	return nil
}
