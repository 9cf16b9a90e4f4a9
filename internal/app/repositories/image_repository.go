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

// Image error types
var (
	ErrImageNotFound     = errors.New("image not found")
	ErrImageOwnerMissing = errors.New("image owner not found")
)

const imageColumns = "i.image_id, i.file_name, i.file_path, i.file_type, i.file_size, " +
	"i.image_type, i.errand_seq, i.service_offering_id, i.category_id, i.upload_date"

// ImageRepository handles image metadata database operations
type ImageRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewImageRepository creates a new ImageRepository
func NewImageRepository(db *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanImage(row rowScanner) (*models.Image, error) {
	var image models.Image
	var imageType string
	var errandSeq, offeringID, categoryID sql.NullInt64

	err := row.Scan(
		&image.ImageID, &image.FileName, &image.FilePath, &image.FileType,
		&image.FileSize, &imageType, &errandSeq, &offeringID, &categoryID,
		&image.UploadDate,
	)
	if err != nil {
		return nil, err
	}

	image.ImageType = models.ImageType(imageType)
	image.ErrandSeq = helpers.Int64Ptr(errandSeq)
	image.ServiceOfferingID = helpers.Int64Ptr(offeringID)
	image.CategoryID = helpers.Int64Ptr(categoryID)
	return &image, nil
}

// Create inserts image metadata and fills in its generated fields
func (r *ImageRepository) Create(ctx context.Context, image *models.Image) error {
	query, args, err := r.sb.Insert("images").
		Columns("file_name", "file_path", "file_type", "file_size", "image_type",
			"errand_seq", "service_offering_id", "category_id").
		Values(
			image.FileName, image.FilePath, image.FileType, image.FileSize, string(image.ImageType),
			helpers.GetNullInt64(image.ErrandSeq), helpers.GetNullInt64(image.ServiceOfferingID),
			helpers.GetNullInt64(image.CategoryID),
		).
		Suffix("RETURNING image_id, upload_date").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create image query: %w", err)
	}

	err = r.db.QueryRow(ctx, query, args...).Scan(&image.ImageID, &image.UploadDate)
	if err != nil {
		if dberrors.IsForeignKeyViolation(err, "") {
			return ErrImageOwnerMissing
		}
		return fmt.Errorf("error inserting image: %w", err)
	}

	logger.Info().Int64("imageID", image.ImageID).Str("fileName", image.FileName).Msg("Image saved")
	return nil
}

// GetByID retrieves image metadata by ID
func (r *ImageRepository) GetByID(ctx context.Context, id int64) (*models.Image, error) {
	query, args, err := r.sb.Select(imageColumns).
		From("images i").
		Where(squirrel.Eq{"i.image_id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get image query: %w", err)
	}

	image, err := scanImage(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("error querying image ID=%d: %w", id, err)
	}

	return image, nil
}

// GetByErrand retrieves all images attached to an errand
func (r *ImageRepository) GetByErrand(ctx context.Context, errandSeq int64) ([]models.Image, error) {
	return r.list(ctx, squirrel.Eq{"i.errand_seq": errandSeq})
}

// GetByServiceOffering retrieves all images attached to a service offering
func (r *ImageRepository) GetByServiceOffering(ctx context.Context, offeringID int64) ([]models.Image, error) {
	return r.list(ctx, squirrel.Eq{"i.service_offering_id": offeringID})
}

// GetByCategory retrieves all images attached to a category
func (r *ImageRepository) GetByCategory(ctx context.Context, categoryID int64) ([]models.Image, error) {
	return r.list(ctx, squirrel.Eq{"i.category_id": categoryID})
}

func (r *ImageRepository) list(ctx context.Context, whereCondition squirrel.Eq) ([]models.Image, error) {
	query, args, err := r.sb.Select(imageColumns).
		From("images i").
		Where(whereCondition).
		OrderBy("i.image_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list images query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query images: %w", err)
	}
	defer rows.Close()

	images := []models.Image{}
	for rows.Next() {
		image, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan image row: %w", err)
		}
		images = append(images, *image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating image rows: %w", err)
	}

	return images, nil
}

// Delete removes image metadata. Removing the stored file is the caller's job.
func (r *ImageRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("images").Where(squirrel.Eq{"image_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete image query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("error deleting image ID=%d: %w", id, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrImageNotFound
	}

	logger.Info().Int64("imageID", id).Msg("Image deleted")
	return nil
}
