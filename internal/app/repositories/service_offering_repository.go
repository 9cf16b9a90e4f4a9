package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dowadream/errand-service/internal/app/models"
	"github.com/dowadream/errand-service/internal/pkg/helpers"
	"github.com/dowadream/errand-service/internal/pkg/logger"
)

// Service offering error types
var (
	ErrServiceOfferingNotFound = errors.New("service offering not found")
)

// OfferingFilter carries the optional filters and ordering for listing
// service offerings. Nil filter fields mean pass-through.
type OfferingFilter struct {
	Location   *string
	CategoryID *int64
	SortBy     string
	Page       int
	PageSize   int
}

// OfferingSortColumn maps an offering sort key to its ORDER BY clause.
// The predefined map doubles as the allow-list for sort inputs.
func OfferingSortColumn(sortBy string) (string, bool) {
	switch sortBy {
	case "latest":
		return "so.created_date DESC", true
	case "highestRating":
		return "average_rating DESC", true
	case "mostTasks":
		return "so.completed_tasks DESC", true
	}
	return "", false
}

// average_rating is computed per row so listings can sort by it. Offerings
// with no reviews rate as zero rather than NULL.
const offeringColumns = "so.id, so.title, so.description, so.price_range, so.location, " +
	"so.category_id, so.provider_id, so.completed_tasks, so.created_date, " +
	"COALESCE((SELECT AVG(r.rating) FROM reviews r WHERE r.service_offering_id = so.id), 0) AS average_rating"

// ServiceOfferingRepository handles service offering database operations
type ServiceOfferingRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewServiceOfferingRepository creates a new ServiceOfferingRepository
func NewServiceOfferingRepository(db *pgxpool.Pool) *ServiceOfferingRepository {
	return &ServiceOfferingRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanServiceOffering(row rowScanner) (*models.ServiceOffering, error) {
	var offering models.ServiceOffering

	err := row.Scan(
		&offering.ID, &offering.Title, &offering.Description, &offering.PriceRange,
		&offering.Location, &offering.CategoryID, &offering.ProviderID,
		&offering.CompletedTasks, &offering.CreatedDate, &offering.AverageRating,
	)
	if err != nil {
		return nil, err
	}

	return &offering, nil
}

// Create inserts a new service offering and fills in its generated fields
func (r *ServiceOfferingRepository) Create(ctx context.Context, offering *models.ServiceOffering) error {
	query, args, err := r.sb.Insert("service_offerings").
		Columns("title", "description", "price_range", "location", "category_id", "provider_id").
		Values(
			offering.Title, offering.Description, offering.PriceRange,
			offering.Location, offering.CategoryID, offering.ProviderID,
		).
		Suffix("RETURNING id, completed_tasks, created_date").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create offering query: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&offering.ID, &offering.CompletedTasks, &offering.CreatedDate)
	if err != nil {
		return fmt.Errorf("error inserting service offering: %w", err)
	}

	logger.Info().Int64("offeringID", offering.ID).Msg("Service offering created")
	return nil
}

// GetByID retrieves a service offering by ID, average rating included
func (r *ServiceOfferingRepository) GetByID(ctx context.Context, id int64) (*models.ServiceOffering, error) {
	query, args, err := r.sb.Select(offeringColumns).
		From("service_offerings so").
		Where(squirrel.Eq{"so.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get offering query: %w", err)
	}

	offering, err := scanServiceOffering(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceOfferingNotFound
		}
		return nil, fmt.Errorf("error querying service offering ID=%d: %w", id, err)
	}

	return offering, nil
}

// GetAll retrieves a page of service offerings ordered by primary key ascending
func (r *ServiceOfferingRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.ServiceOffering, int64, error) {
	return r.list(ctx, OfferingFilter{Page: page, PageSize: pageSize}, "so.id ASC")
}

// GetByCategory retrieves a page of service offerings in a category. The
// category id is matched exactly; offerings of subcategories are not included.
func (r *ServiceOfferingRepository) GetByCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]models.ServiceOffering, int64, error) {
	return r.list(ctx, OfferingFilter{CategoryID: &categoryID, Page: page, PageSize: pageSize}, "so.id ASC")
}

// GetFiltered retrieves a page of service offerings matching the filter.
// Callers must pass a SortBy already validated against OfferingSortColumn,
// or empty.
func (r *ServiceOfferingRepository) GetFiltered(ctx context.Context, filter OfferingFilter) ([]models.ServiceOffering, int64, error) {
	orderBy := ""
	if filter.SortBy != "" {
		clause, ok := OfferingSortColumn(filter.SortBy)
		if !ok {
			return nil, 0, fmt.Errorf("unknown offering sort key %q", filter.SortBy)
		}
		orderBy = clause
	}
	return r.list(ctx, filter, orderBy)
}

// offeringListQueries builds the count and page-select queries for a filter.
// Both share the same WHERE condition so totals always agree with the rows.
func offeringListQueries(sb squirrel.StatementBuilderType, filter OfferingFilter, orderBy string) (squirrel.SelectBuilder, squirrel.SelectBuilder) {
	whereCondition := squirrel.And{}
	if filter.Location != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"so.location": *filter.Location})
	}
	if filter.CategoryID != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"so.category_id": *filter.CategoryID})
	}

	countQuery := sb.Select("COUNT(*)").From("service_offerings so").Where(whereCondition)

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	selectQuery := sb.Select(offeringColumns).
		From("service_offerings so").
		Where(whereCondition).
		Limit(limit).
		Offset(offset)
	if orderBy != "" {
		selectQuery = selectQuery.OrderBy(orderBy)
	}

	return countQuery, selectQuery
}

func (r *ServiceOfferingRepository) list(ctx context.Context, filter OfferingFilter, orderBy string) ([]models.ServiceOffering, int64, error) {
	countQuery, selectQuery := offeringListQueries(r.sb, filter, orderBy)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count offerings query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count service offerings: %w", err)
	}

	if totalItems == 0 {
		return []models.ServiceOffering{}, 0, nil
	}

	querySQL, queryArgs, err := selectQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list offerings query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query service offerings: %w", err)
	}
	defer rows.Close()

	offerings := []models.ServiceOffering{}
	for rows.Next() {
		offering, err := scanServiceOffering(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan offering row: %w", err)
		}
		offerings = append(offerings, *offering)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating offering rows: %w", err)
	}

	return offerings, totalItems, nil
}

// Update rewrites a service offering's mutable fields
func (r *ServiceOfferingRepository) Update(ctx context.Context, offering *models.ServiceOffering) error {
	query, args, err := r.sb.Update("service_offerings").
		SetMap(map[string]interface{}{
			"title":       offering.Title,
			"description": offering.Description,
			"price_range": offering.PriceRange,
			"location":    offering.Location,
			"category_id": offering.CategoryID,
		}).
		Where(squirrel.Eq{"id": offering.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update offering query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating service offering ID=%d: %w", offering.ID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrServiceOfferingNotFound
	}

	logger.Info().Int64("offeringID", offering.ID).Msg("Service offering updated")
	return nil
}

// Delete removes a service offering; its images and reviews cascade with it
func (r *ServiceOfferingRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("service_offerings").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete offering query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error deleting service offering ID=%d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrServiceOfferingNotFound
	}

	logger.Info().Int64("offeringID", id).Msg("Service offering deleted")
	return nil
}

// IncrementCompletedTasks bumps the completed task counter atomically and
// returns the new count. The increment happens in the database so concurrent
// completions never lose an update.
func (r *ServiceOfferingRepository) IncrementCompletedTasks(ctx context.Context, id int64) (int, error) {
	query, args, err := r.sb.Update("service_offerings").
		Set("completed_tasks", squirrel.Expr("completed_tasks + 1")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING completed_tasks").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build increment query: %w", err)
	}

	var completed int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&completed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrServiceOfferingNotFound
		}
		return 0, fmt.Errorf("error incrementing completed tasks ID=%d: %w", id, err)
	}

	logger.Info().Int64("offeringID", id).Int("completedTasks", completed).Msg("Completed task recorded")
	return completed, nil
}
