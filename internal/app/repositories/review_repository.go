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

// Review error types
var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewTargetMissing = errors.New("review target not found")
	ErrReviewTargetInvalid = errors.New("review must target exactly one of an errand or a service offering")
)

const reviewColumns = "r.id, r.reviewer_id, r.rating, r.comments, r.errand_seq, r.service_offering_id, r.created_date"

// ReviewRepository handles review database operations
type ReviewRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewReviewRepository creates a new ReviewRepository
func NewReviewRepository(db *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanReview(row rowScanner) (*models.Review, error) {
	var review models.Review
	var errandSeq, offeringID sql.NullInt64

	err := row.Scan(
		&review.ID, &review.ReviewerID, &review.Rating, &review.Comments,
		&errandSeq, &offeringID, &review.CreatedDate,
	)
	if err != nil {
		return nil, err
	}

	review.ErrandSeq = helpers.Int64Ptr(errandSeq)
	review.ServiceOfferingID = helpers.Int64Ptr(offeringID)
	return &review, nil
}

// Create inserts a new review and fills in its generated fields. The reviews
// table enforces the single-target rule with a check constraint, and both
// target columns carry foreign keys, so a vanished target or a malformed
// target pair surfaces here as a typed error.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query, args, err := r.sb.Insert("reviews").
		Columns("reviewer_id", "rating", "comments", "errand_seq", "service_offering_id").
		Values(
			review.ReviewerID, review.Rating, review.Comments,
			helpers.GetNullInt64(review.ErrandSeq), helpers.GetNullInt64(review.ServiceOfferingID),
		).
		Suffix("RETURNING id, created_date").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create review query: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&review.ID, &review.CreatedDate)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "") {
			return ErrReviewTargetMissing
		}
		if dberrors.IsCheckViolation(err, "") {
			return ErrReviewTargetInvalid
		}
		return fmt.Errorf("error inserting review: %w", err)
	}

	logger.Info().Int64("reviewID", review.ID).Msg("Review created")
	return nil
}

// GetByID retrieves a review by ID
func (r *ReviewRepository) GetByID(ctx context.Context, id int64) (*models.Review, error) {
	query, args, err := r.sb.Select(reviewColumns).
		From("reviews r").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get review query: %w", err)
	}

	review, err := scanReview(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("error querying review ID=%d: %w", id, err)
	}

	return review, nil
}

// GetByErrand retrieves a page of reviews targeting an errand, newest first
func (r *ReviewRepository) GetByErrand(ctx context.Context, errandSeq int64, page, pageSize int) ([]models.Review, int64, error) {
	return r.list(ctx, squirrel.Eq{"r.errand_seq": errandSeq}, page, pageSize)
}

// GetByServiceOffering retrieves a page of reviews targeting a service
// offering, newest first
func (r *ReviewRepository) GetByServiceOffering(ctx context.Context, offeringID int64, page, pageSize int) ([]models.Review, int64, error) {
	return r.list(ctx, squirrel.Eq{"r.service_offering_id": offeringID}, page, pageSize)
}

func (r *ReviewRepository) list(ctx context.Context, whereCondition squirrel.Eq, page, pageSize int) ([]models.Review, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("reviews r").Where(whereCondition).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count reviews query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&totalItems); err != nil {
		return nil, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	if totalItems == 0 {
		return []models.Review{}, 0, nil
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	querySQL, queryArgs, err := r.sb.Select(reviewColumns).
		From("reviews r").
		Where(whereCondition).
		OrderBy("r.created_date DESC").
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list reviews query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySQL, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan review row: %w", err)
		}
		reviews = append(reviews, *review)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating review rows: %w", err)
	}

	return reviews, totalItems, nil
}

// Update rewrites a review's rating and comments. The target pair is
// immutable after creation and stays untouched.
func (r *ReviewRepository) Update(ctx context.Context, review *models.Review) error {
	query, args, err := r.sb.Update("reviews").
		SetMap(map[string]interface{}{
			"rating":   review.Rating,
			"comments": review.Comments,
		}).
		Where(squirrel.Eq{"id": review.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update review query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error updating review ID=%d: %w", review.ID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	logger.Info().Int64("reviewID", review.ID).Msg("Review updated")
	return nil
}

// Delete removes a review
func (r *ReviewRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("reviews").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete review query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error deleting review ID=%d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrReviewNotFound
	}

	logger.Info().Int64("reviewID", id).Msg("Review deleted")
	return nil
}

// AverageForErrand computes the mean rating across an errand's reviews.
// An errand with no reviews averages zero.
func (r *ReviewRepository) AverageForErrand(ctx context.Context, errandSeq int64) (float64, error) {
	return r.average(ctx, squirrel.Eq{"errand_seq": errandSeq})
}

// AverageForServiceOffering computes the mean rating across a service
// offering's reviews. An offering with no reviews averages zero.
func (r *ReviewRepository) AverageForServiceOffering(ctx context.Context, offeringID int64) (float64, error) {
	return r.average(ctx, squirrel.Eq{"service_offering_id": offeringID})
}

func (r *ReviewRepository) average(ctx context.Context, whereCondition squirrel.Eq) (float64, error) {
	query, args, err := r.sb.Select("COALESCE(AVG(rating), 0)").
		From("reviews").
		Where(whereCondition).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build average rating query: %w", err)
	}

	var avg float64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&avg); err != nil {
		return 0, fmt.Errorf("failed to compute average rating: %w", err)
	}

	return avg, nil
}
