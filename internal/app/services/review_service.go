package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dowadream/errand-service/internal/app/models"
	"github.com/dowadream/errand-service/internal/app/models/dto"
	"github.com/dowadream/errand-service/internal/app/repositories"
	"github.com/dowadream/errand-service/internal/pkg/apperrors"
	"github.com/dowadream/errand-service/internal/pkg/helpers"
	"github.com/dowadream/errand-service/internal/pkg/logger"
	"github.com/dowadream/errand-service/internal/pkg/validation"
)

// reviewRepository is the persistence surface the review service needs
type reviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id int64) (*models.Review, error)
	GetByErrand(ctx context.Context, errandSeq int64, page, pageSize int) ([]models.Review, int64, error)
	GetByServiceOffering(ctx context.Context, offeringID int64, page, pageSize int) ([]models.Review, int64, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	AverageForErrand(ctx context.Context, errandSeq int64) (float64, error)
	AverageForServiceOffering(ctx context.Context, offeringID int64) (float64, error)
}

type errandReader interface {
	GetByID(ctx context.Context, id int64) (*models.Errand, error)
}

type offeringReader interface {
	GetByID(ctx context.Context, id int64) (*models.ServiceOffering, error)
}

// ReviewService handles review-related operations
type ReviewService struct {
	reviewRepo   reviewRepository
	errandRepo   errandReader
	offeringRepo offeringReader
}

// NewReviewService creates a new review service instance
func NewReviewService(reviewRepo reviewRepository, errandRepo errandReader, offeringRepo offeringReader) *ReviewService {
	return &ReviewService{
		reviewRepo:   reviewRepo,
		errandRepo:   errandRepo,
		offeringRepo: offeringRepo,
	}
}

// validateReview validates review content fields
func (s *ReviewService) validateReview(review *models.Review) error {
	if review == nil {
		return apperrors.NewValidationError("review is nil")
	}
	if err := validation.ForeignID("reviewerId", review.ReviewerID); err != nil {
		return err
	}
	if err := validation.Rating(review.Rating); err != nil {
		return err
	}
	if err := validation.OptionalText("comments", review.Comments, validation.CommentsMaxLength); err != nil {
		return err
	}
	return nil
}

// CreateReview creates a review for exactly one target. A review naming
// both targets, or neither, is rejected before touching the database.
func (s *ReviewService) CreateReview(ctx context.Context, review *models.Review) error {
	if err := s.validateReview(review); err != nil {
		return err
	}

	if review.IsErrandReview() == review.IsServiceOfferingReview() {
		return apperrors.NewCustomError(apperrors.ErrReviewTargetAmbiguous,
			"exactly one of errandSeq and serviceOfferingId must be provided")
	}

	if review.IsErrandReview() {
		if _, err := s.errandRepo.GetByID(ctx, *review.ErrandSeq); err != nil {
			if errors.Is(err, repositories.ErrErrandNotFound) {
				return apperrors.ErrErrandNotFound
			}
			return fmt.Errorf("error checking reviewed errand: %w", err)
		}
	} else {
		if _, err := s.offeringRepo.GetByID(ctx, *review.ServiceOfferingID); err != nil {
			if errors.Is(err, repositories.ErrServiceOfferingNotFound) {
				return apperrors.ErrServiceOfferingNotFound
			}
			return fmt.Errorf("error checking reviewed service offering: %w", err)
		}
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		// The target can vanish between the existence check and the insert;
		// the foreign keys catch that window.
		if errors.Is(err, repositories.ErrReviewTargetMissing) {
			return apperrors.ErrResourceNotFound
		}
		if errors.Is(err, repositories.ErrReviewTargetInvalid) {
			return apperrors.ErrReviewTargetAmbiguous
		}
		return fmt.Errorf("error creating review: %w", err)
	}
	return nil
}

// GetReviewByID retrieves a review by ID
func (s *ReviewService) GetReviewByID(ctx context.Context, id int64) (*models.Review, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid review ID")
	}

	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("error retrieving review: %w", err)
	}

	return review, nil
}

// GetReviewsByErrand retrieves a page of an errand's reviews together with
// the errand's average rating
func (s *ReviewService) GetReviewsByErrand(ctx context.Context, errandSeq int64, page, pageSize int) ([]models.Review, float64, dto.PaginationInfo, error) {
	if err := helpers.ValidatePageRequest(page, pageSize); err != nil {
		return nil, 0, dto.PaginationInfo{}, err
	}
	if _, err := s.errandRepo.GetByID(ctx, errandSeq); err != nil {
		if errors.Is(err, repositories.ErrErrandNotFound) {
			return nil, 0, dto.PaginationInfo{}, apperrors.ErrErrandNotFound
		}
		return nil, 0, dto.PaginationInfo{}, fmt.Errorf("error checking errand: %w", err)
	}

	reviews, totalItems, err := s.reviewRepo.GetByErrand(ctx, errandSeq, page, pageSize)
	if err != nil {
		return nil, 0, dto.PaginationInfo{}, fmt.Errorf("error retrieving errand reviews: %w", err)
	}

	average, err := s.reviewRepo.AverageForErrand(ctx, errandSeq)
	if err != nil {
		return nil, 0, dto.PaginationInfo{}, fmt.Errorf("error computing errand rating: %w", err)
	}

	return reviews, average, helpers.NewPaginationInfo(totalItems, page, pageSize), nil
}

// GetReviewsByServiceOffering retrieves a page of an offering's reviews
// together with the offering's average rating
func (s *ReviewService) GetReviewsByServiceOffering(ctx context.Context, offeringID int64, page, pageSize int) ([]models.Review, float64, dto.PaginationInfo, error) {
	if err := helpers.ValidatePageRequest(page, pageSize); err != nil {
		return nil, 0, dto.PaginationInfo{}, err
	}
	if _, err := s.offeringRepo.GetByID(ctx, offeringID); err != nil {
		if errors.Is(err, repositories.ErrServiceOfferingNotFound) {
			return nil, 0, dto.PaginationInfo{}, apperrors.ErrServiceOfferingNotFound
		}
		return nil, 0, dto.PaginationInfo{}, fmt.Errorf("error checking service offering: %w", err)
	}

	reviews, totalItems, err := s.reviewRepo.GetByServiceOffering(ctx, offeringID, page, pageSize)
	if err != nil {
		return nil, 0, dto.PaginationInfo{}, fmt.Errorf("error retrieving offering reviews: %w", err)
	}

	average, err := s.reviewRepo.AverageForServiceOffering(ctx, offeringID)
	if err != nil {
		return nil, 0, dto.PaginationInfo{}, fmt.Errorf("error computing offering rating: %w", err)
	}

	return reviews, average, helpers.NewPaginationInfo(totalItems, page, pageSize), nil
}

// UpdateReview rewrites a review's rating and comments. The review's target
// is fixed at creation and cannot be repointed.
func (s *ReviewService) UpdateReview(ctx context.Context, id int64, rating int, comments string) (*models.Review, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid review ID")
	}
	if err := validation.Rating(rating); err != nil {
		return nil, err
	}
	if err := validation.OptionalText("comments", comments, validation.CommentsMaxLength); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("error retrieving review for update: %w", err)
	}

	review.Rating = rating
	review.Comments = comments

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrReviewNotFound
		}
		return nil, fmt.Errorf("error updating review: %w", err)
	}

	return review, nil
}

// DeleteReview deletes a review by ID
func (s *ReviewService) DeleteReview(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid review ID")
	}

	err := s.reviewRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return apperrors.ErrReviewNotFound
		}
		return fmt.Errorf("error deleting review: %w", err)
	}

	logger.Info().Int64("reviewID", id).Msg("Review removed")
	return nil
}
