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
	"github.com/dowadream/errand-service/internal/db"
	"github.com/dowadream/errand-service/internal/pkg/helpers"
	"github.com/dowadream/errand-service/internal/pkg/logger"
)

// Errand error types
var (
	ErrErrandNotFound = errors.New("errand not found")
)

// ErrandFilter carries the optional filters and ordering for listing errands.
// Nil filter fields mean pass-through; an empty SortBy keeps datastore order.
type ErrandFilter struct {
	Location   *string
	CategoryID *int64
	SortBy     string
	Page       int
	PageSize   int
}

// ErrandSortColumn maps an errand sort key to its ORDER BY clause.
// The predefined map doubles as the allow-list for sort inputs.
func ErrandSortColumn(sortBy string) (string, bool) {
	switch sortBy {
	case "latest":
		return "e.created_date DESC", true
	case "highestPrice":
		return "e.price DESC", true
	case "highestHourlyRate":
		// estimated_time is constrained positive, so the division is safe
		return "e.price / e.estimated_time DESC", true
	case "closestDeadline":
		return "e.deadline ASC", true
	}
	return "", false
}

const errandColumns = "e.errand_seq, e.title, e.description, e.requester_seq, e.runner_seq, " +
	"e.requester_nickname, e.runner_nickname, e.status, e.category_id, e.location, " +
	"e.price, e.estimated_time, e.deadline, e.created_date, e.updated_date"

// ErrandRepository handles errand database operations
type ErrandRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewErrandRepository creates a new ErrandRepository
func NewErrandRepository(db *pgxpool.Pool) *ErrandRepository {
	return &ErrandRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanErrand(row rowScanner) (*models.Errand, error) {
	var errand models.Errand
	var runnerSeq sql.NullInt64
	var runnerNickname sql.NullString
	var status string

	err := row.Scan(
		&errand.ErrandSeq, &errand.Title, &errand.Description, &errand.RequesterSeq,
		&runnerSeq, &errand.RequesterNickname, &runnerNickname, &status,
		&errand.CategoryID, &errand.Location, &errand.Price, &errand.EstimatedTime,
		&errand.Deadline, &errand.CreatedDate, &errand.UpdatedDate,
	)
	if err != nil {
		return nil, err
	}

	errand.RunnerSeq = helpers.Int64Ptr(runnerSeq)
	errand.RunnerNickname = helpers.StringPtr(runnerNickname)
	errand.Status = models.ErrandStatus(status)
	return &errand, nil
}

// Create inserts a new errand and fills in its generated fields
func (r *ErrandRepository) Create(ctx context.Context, errand *models.Errand) error {
	query, args, err := r.sb.Insert("errands").
		Columns(
			"title", "description", "requester_seq", "runner_seq",
			"requester_nickname", "runner_nickname", "status", "category_id",
			"location", "price", "estimated_time", "deadline",
		).
		Values(
			errand.Title, errand.Description, errand.RequesterSeq, helpers.GetNullInt64(errand.RunnerSeq),
			errand.RequesterNickname, helpers.GetNullString(errand.RunnerNickname), string(errand.Status), errand.CategoryID,
			errand.Location, errand.Price, errand.EstimatedTime, errand.Deadline,
		).
		Suffix("RETURNING errand_seq, created_date, updated_date").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create errand query: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&errand.ErrandSeq, &errand.CreatedDate, &errand.UpdatedDate)
	if err != nil {
		return fmt.Errorf("error inserting errand: %w", err)
	}

	logger.Info().Int64("errandSeq", errand.ErrandSeq).Msg("Errand created")
	return nil
}

// GetByID retrieves an errand by its sequence number
func (r *ErrandRepository) GetByID(ctx context.Context, id int64) (*models.Errand, error) {
	query, args, err := r.sb.Select(errandColumns).
		From("errands e").
		Where(squirrel.Eq{"e.errand_seq": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get errand query: %w", err)
	}

	errand, err := scanErrand(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrErrandNotFound
		}
		return nil, fmt.Errorf("error querying errand ID=%d: %w", id, err)
	}

	return errand, nil
}

// GetAll retrieves a page of errands ordered by primary key ascending
func (r *ErrandRepository) GetAll(ctx context.Context, page, pageSize int) ([]models.Errand, int64, error) {
	return r.list(ctx, ErrandFilter{Page: page, PageSize: pageSize}, "e.errand_seq ASC")
}

// GetByCategory retrieves a page of errands in a category. The category id is
// matched exactly; errands of subcategories are not included.
func (r *ErrandRepository) GetByCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]models.Errand, int64, error) {
	return r.list(ctx, ErrandFilter{CategoryID: &categoryID, Page: page, PageSize: pageSize}, "e.errand_seq ASC")
}

// GetFiltered retrieves a page of errands matching the filter. Callers must
// pass a SortBy already validated against ErrandSortColumn, or empty.
func (r *ErrandRepository) GetFiltered(ctx context.Context, filter ErrandFilter) ([]models.Errand, int64, error) {
	orderBy := ""
	if filter.SortBy != "" {
		clause, ok := ErrandSortColumn(filter.SortBy)
		if !ok {
			return nil, 0, fmt.Errorf("unknown errand sort key %q", filter.SortBy)
		}
		orderBy = clause
	}
	return r.list(ctx, filter, orderBy)
}

// errandListQueries builds the count and page-select queries for a filter.
// Both share the same WHERE condition so totals always agree with the rows.
func errandListQueries(sb squirrel.StatementBuilderType, filter ErrandFilter, orderBy string) (squirrel.SelectBuilder, squirrel.SelectBuilder) {
	whereCondition := squirrel.And{}
	if filter.Location != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"e.location": *filter.Location})
	}
	if filter.CategoryID != nil {
		whereCondition = append(whereCondition, squirrel.Eq{"e.category_id": *filter.CategoryID})
	}

	countQuery := sb.Select("COUNT(*)").From("errands e").Where(whereCondition)

	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.PageSize)
	selectQuery := sb.Select(errandColumns).
		From("errands e").
		Where(whereCondition).
		Limit(limit).
		Offset(offset)
	if orderBy != "" {
		selectQuery = selectQuery.OrderBy(orderBy)
	}

	return countQuery, selectQuery
}

func (r *ErrandRepository) list(ctx context.Context, filter ErrandFilter, orderBy string) ([]models.Errand, int64, error) {
	countQuery, selectQuery := errandListQueries(r.sb, filter, orderBy)

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count errands query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count errands: %w", err)
	}

	if totalItems == 0 {
		return []models.Errand{}, 0, nil
	}

	querySQL, queryArgs, err := selectQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list errands query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query errands: %w", err)
	}
	defer rows.Close()

	errands := []models.Errand{}
	for rows.Next() {
		errand, err := scanErrand(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan errand row: %w", err)
		}
		errands = append(errands, *errand)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating errand rows: %w", err)
	}

	return errands, totalItems, nil
}

// Update rewrites an errand's mutable fields
func (r *ErrandRepository) Update(ctx context.Context, errand *models.Errand) error {
	query, args, err := r.sb.Update("errands").
		SetMap(map[string]interface{}{
			"title":           errand.Title,
			"description":     errand.Description,
			"runner_seq":      helpers.GetNullInt64(errand.RunnerSeq),
			"runner_nickname": helpers.GetNullString(errand.RunnerNickname),
			"status":          string(errand.Status),
			"category_id":     errand.CategoryID,
			"location":        errand.Location,
			"price":           errand.Price,
			"estimated_time":  errand.EstimatedTime,
			"deadline":        errand.Deadline,
			"updated_date":    squirrel.Expr("now()"),
		}).
		Where(squirrel.Eq{"errand_seq": errand.ErrandSeq}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update errand query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating errand ID=%d: %w", errand.ErrandSeq, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrErrandNotFound
	}

	logger.Info().Int64("errandSeq", errand.ErrandSeq).Msg("Errand updated")
	return nil
}

// Delete removes an errand; its images and reviews cascade with it
func (r *ErrandRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("errands").Where(squirrel.Eq{"errand_seq": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete errand query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error deleting errand ID=%d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrErrandNotFound
	}

	logger.Info().Int64("errandSeq", id).Msg("Errand deleted")
	return nil
}

// Mutate loads an errand under a row lock, applies fn, and persists the
// result, all within one transaction. Errors from fn abort the transaction
// and surface unchanged, so state-machine preconditions checked inside fn
// are race-free: two concurrent accepts serialize on the row lock and the
// second sees the first one's write.
func (r *ErrandRepository) Mutate(ctx context.Context, id int64, fn func(*models.Errand) error) (*models.Errand, error) {
	var mutated *models.Errand

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query, args, err := r.sb.Select(errandColumns).
			From("errands e").
			Where(squirrel.Eq{"e.errand_seq": id}).
			Suffix("FOR UPDATE").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build locked errand query: %w", err)
		}

		errand, err := scanErrand(tx.QueryRow(ctx, query, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrErrandNotFound
			}
			return fmt.Errorf("error locking errand ID=%d: %w", id, err)
		}

		if err := fn(errand); err != nil {
			return err
		}

		updateSQL, updateArgs, err := r.sb.Update("errands").
			SetMap(map[string]interface{}{
				"runner_seq":      helpers.GetNullInt64(errand.RunnerSeq),
				"runner_nickname": helpers.GetNullString(errand.RunnerNickname),
				"status":          string(errand.Status),
				"updated_date":    squirrel.Expr("now()"),
			}).
			Where(squirrel.Eq{"errand_seq": id}).
			Suffix("RETURNING updated_date").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build errand mutation query: %w", err)
		}

		if err := tx.QueryRow(ctx, updateSQL, updateArgs...).Scan(&errand.UpdatedDate); err != nil {
			return fmt.Errorf("error writing errand mutation ID=%d: %w", id, err)
		}

		mutated = errand
		return nil
	})
	if err != nil {
		return nil, err
	}

	return mutated, nil
}
