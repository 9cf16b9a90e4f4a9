package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dowadream/errand-service/internal/app/models"
	"github.com/dowadream/errand-service/internal/pkg/dberrors"
	"github.com/dowadream/errand-service/internal/pkg/helpers"
	"github.com/dowadream/errand-service/internal/pkg/logger"
)

// Category error types
var (
	ErrCategoryNotFound       = errors.New("category not found")
	ErrCategoryParentNotFound = errors.New("parent category not found")
	ErrCategoryInUse          = errors.New("category is referenced by existing records")
)

const categoryColumns = "c.category_id, c.name, c.description, c.parent_category_id"

// CategoryRepository handles category database operations
type CategoryRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanCategory(row rowScanner) (*models.Category, error) {
	var category models.Category
	var parentID sql.NullInt64

	err := row.Scan(&category.CategoryID, &category.Name, &category.Description, &parentID)
	if err != nil {
		return nil, err
	}

	category.ParentCategoryID = helpers.Int64Ptr(parentID)
	return &category, nil
}

// Create inserts a new category and fills in its generated ID
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	query, args, err := r.sb.Insert("categories").
		Columns("name", "description", "parent_category_id").
		Values(category.Name, category.Description, helpers.GetNullInt64(category.ParentCategoryID)).
		Suffix("RETURNING category_id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create category query: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&category.CategoryID)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "categories_parent_category_id_fkey") {
			return ErrCategoryParentNotFound
		}
		return fmt.Errorf("error inserting category: %w", err)
	}

	logger.Info().Int64("categoryID", category.CategoryID).Str("name", category.Name).Msg("Category created")
	return nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*models.Category, error) {
	query, args, err := r.sb.Select(categoryColumns).
		From("categories c").
		Where(squirrel.Eq{"c.category_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get category query: %w", err)
	}

	category, err := scanCategory(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("error querying category ID=%d: %w", id, err)
	}

	return category, nil
}

// GetAll retrieves every category as a flat list ordered by ID. Tree
// assembly is left to the caller.
func (r *CategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	query, args, err := r.sb.Select(categoryColumns).
		From("categories c").
		OrderBy("c.category_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list categories query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, *category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return categories, nil
}

// HasChildren reports whether any category names the given one as parent
func (r *CategoryRepository) HasChildren(ctx context.Context, id int64) (bool, error) {
	query, args, err := r.sb.Select("COUNT(*)").
		From("categories").
		Where(squirrel.Eq{"parent_category_id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build child count query: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to count child categories: %w", err)
	}

	return count > 0, nil
}

// Update rewrites a category's fields, reparenting included
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	query, args, err := r.sb.Update("categories").
		SetMap(map[string]interface{}{
			"name":               category.Name,
			"description":        category.Description,
			"parent_category_id": helpers.GetNullInt64(category.ParentCategoryID),
		}).
		Where(squirrel.Eq{"category_id": category.CategoryID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update category query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "categories_parent_category_id_fkey") {
			return ErrCategoryParentNotFound
		}
		return fmt.Errorf("error updating category ID=%d: %w", category.CategoryID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}

	logger.Info().Int64("categoryID", category.CategoryID).Msg("Category updated")
	return nil
}

// Delete removes a category. Errands and offerings keep their category rows
// alive through restrictive foreign keys, which surfaces as ErrCategoryInUse.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("categories").Where(squirrel.Eq{"category_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete category query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "") {
			return ErrCategoryInUse
		}
		return fmt.Errorf("error deleting category ID=%d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}

	logger.Info().Int64("categoryID", id).Msg("Category deleted")
	return nil
}
