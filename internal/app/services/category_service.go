package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dowadream/errand-service/internal/app/models"
	"github.com/dowadream/errand-service/internal/app/repositories"
	"github.com/dowadream/errand-service/internal/pkg/apperrors"
	"github.com/dowadream/errand-service/internal/pkg/logger"
	"github.com/dowadream/errand-service/internal/pkg/validation"
)

// categoryRepository is the persistence surface the category service needs
type categoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
	HasChildren(ctx context.Context, id int64) (bool, error)
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int64) error
}

type categoryImageReader interface {
	GetByCategory(ctx context.Context, categoryID int64) ([]models.Image, error)
}

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo categoryRepository
	imageRepo    categoryImageReader
}

// NewCategoryService creates a new category service instance
func NewCategoryService(categoryRepo categoryRepository, imageRepo categoryImageReader) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
	}
}

// validateCategory validates category data before database operations
func (s *CategoryService) validateCategory(category *models.Category) error {
	if category == nil {
		return apperrors.NewValidationError("category is nil")
	}
	if err := validation.RequireText("name", category.Name, validation.CategoryNameMax); err != nil {
		return err
	}
	if err := validation.OptionalText("description", category.Description, validation.CategoryDescMax); err != nil {
		return err
	}
	return nil
}

func (s *CategoryService) checkParentExists(ctx context.Context, parentID int64) error {
	_, err := s.categoryRepo.GetByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return apperrors.NewCustomError(apperrors.ErrCategoryNotFound, "parent category not found")
		}
		return fmt.Errorf("error checking parent category: %w", err)
	}
	return nil
}

// CreateCategory creates a new category, optionally under a parent
func (s *CategoryService) CreateCategory(ctx context.Context, category *models.Category) error {
	if err := s.validateCategory(category); err != nil {
		return err
	}
	if category.ParentCategoryID != nil {
		if err := s.checkParentExists(ctx, *category.ParentCategoryID); err != nil {
			return err
		}
	}

	err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryParentNotFound) {
			return apperrors.NewCustomError(apperrors.ErrCategoryNotFound, "parent category not found")
		}
		return fmt.Errorf("error creating category: %w", err)
	}
	return nil
}

// GetCategoryByID retrieves a category with its image attached
func (s *CategoryService) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid category ID")
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error retrieving category: %w", err)
	}

	if images, err := s.imageRepo.GetByCategory(ctx, id); err == nil && len(images) > 0 {
		category.Image = &images[0]
	}

	return category, nil
}

// GetAllCategories retrieves every category as a flat list
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving categories: %w", err)
	}
	return categories, nil
}

// GetCategoryTree retrieves all categories assembled into parent/child
// trees. Roots are categories without a parent; children appear under
// Subcategories in ascending ID order. A category whose ancestry never
// reaches a root is unreachable from the result, so a corrupted cycle in
// the data cannot make tree assembly loop.
func (s *CategoryService) GetCategoryTree(ctx context.Context) ([]models.Category, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving categories: %w", err)
	}

	// GetAll returns ascending IDs, so children attach in ID order
	children := make(map[int64][]*models.Category, len(categories))
	for i := range categories {
		node := &categories[i]
		if node.ParentCategoryID != nil {
			children[*node.ParentCategoryID] = append(children[*node.ParentCategoryID], node)
		}
	}

	// Each node has a single parent, so anything reachable from a root
	// cannot sit on a cycle and the recursion terminates.
	var build func(node *models.Category) models.Category
	build = func(node *models.Category) models.Category {
		out := *node
		out.Subcategories = nil
		for _, child := range children[node.CategoryID] {
			out.Subcategories = append(out.Subcategories, build(child))
		}
		return out
	}

	roots := []models.Category{}
	for i := range categories {
		if categories[i].ParentCategoryID == nil {
			roots = append(roots, build(&categories[i]))
		}
	}

	return roots, nil
}

// UpdateCategory rewrites a category's fields. Reparenting onto itself or
// onto one of its own descendants is rejected; either would cut the subtree
// loose from every root.
func (s *CategoryService) UpdateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category == nil || category.CategoryID <= 0 {
		return nil, apperrors.NewBadRequestError("invalid category ID")
	}
	if err := s.validateCategory(category); err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.GetByID(ctx, category.CategoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error retrieving category for update: %w", err)
	}

	if category.ParentCategoryID != nil {
		if *category.ParentCategoryID == category.CategoryID {
			return nil, apperrors.NewCustomError(apperrors.ErrCategoryCycle, "category cannot be its own parent")
		}
		if err := s.checkParentExists(ctx, *category.ParentCategoryID); err != nil {
			return nil, err
		}
		descendant, err := s.isDescendant(ctx, category.CategoryID, *category.ParentCategoryID)
		if err != nil {
			return nil, err
		}
		if descendant {
			return nil, apperrors.NewCustomError(apperrors.ErrCategoryCycle, "category cannot be moved under its own descendant")
		}
	}

	existing.Name = category.Name
	existing.Description = category.Description
	existing.ParentCategoryID = category.ParentCategoryID

	if err := s.categoryRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		if errors.Is(err, repositories.ErrCategoryParentNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrCategoryNotFound, "parent category not found")
		}
		return nil, fmt.Errorf("error updating category: %w", err)
	}

	return existing, nil
}

// isDescendant reports whether candidate sits in the subtree rooted at
// ancestorID, by walking parent links from the candidate upward
func (s *CategoryService) isDescendant(ctx context.Context, ancestorID, candidateID int64) (bool, error) {
	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return false, fmt.Errorf("error retrieving categories: %w", err)
	}

	parents := make(map[int64]*int64, len(categories))
	for i := range categories {
		parents[categories[i].CategoryID] = categories[i].ParentCategoryID
	}

	current := candidateID
	for range categories { // bounded walk, survives corrupted parent cycles
		parent, ok := parents[current]
		if !ok || parent == nil {
			return false, nil
		}
		if *parent == ancestorID {
			return true, nil
		}
		current = *parent
	}
	return false, nil
}

// DeleteCategory deletes a leaf category. Categories with subcategories or
// with errands or offerings still attached are kept.
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid category ID")
	}

	hasChildren, err := s.categoryRepo.HasChildren(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking subcategories: %w", err)
	}
	if hasChildren {
		return apperrors.ErrCategoryHasChildren
	}

	err = s.categoryRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		if errors.Is(err, repositories.ErrCategoryInUse) {
			return apperrors.NewCustomError(apperrors.ErrConflict, "category is still referenced by errands or service offerings")
		}
		return fmt.Errorf("error deleting category: %w", err)
	}

	logger.Info().Int64("categoryID", id).Msg("Category removed")
	return nil
}
