package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dowadream/errand-service/internal/app/models"
	"github.com/dowadream/errand-service/internal/app/models/dto"
	"github.com/dowadream/errand-service/internal/app/repositories"
	"github.com/dowadream/errand-service/internal/pkg/apperrors"
	"github.com/dowadream/errand-service/internal/pkg/helpers"
	"github.com/dowadream/errand-service/internal/pkg/logger"
	"github.com/dowadream/errand-service/internal/pkg/validation"
)

// errandRepository is the persistence surface the errand service needs
type errandRepository interface {
	Create(ctx context.Context, errand *models.Errand) error
	GetByID(ctx context.Context, id int64) (*models.Errand, error)
	GetAll(ctx context.Context, page, pageSize int) ([]models.Errand, int64, error)
	GetByCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]models.Errand, int64, error)
	GetFiltered(ctx context.Context, filter repositories.ErrandFilter) ([]models.Errand, int64, error)
	Update(ctx context.Context, errand *models.Errand) error
	Delete(ctx context.Context, id int64) error
	Mutate(ctx context.Context, id int64, fn func(*models.Errand) error) (*models.Errand, error)
}

type categoryReader interface {
	GetByID(ctx context.Context, id int64) (*models.Category, error)
}

type errandImageReader interface {
	GetByErrand(ctx context.Context, errandSeq int64) ([]models.Image, error)
}

// ErrandService handles errand-related operations
type ErrandService struct {
	errandRepo   errandRepository
	categoryRepo categoryReader
	imageRepo    errandImageReader
	now          func() time.Time
}

// NewErrandService creates a new errand service instance
func NewErrandService(errandRepo errandRepository, categoryRepo categoryReader, imageRepo errandImageReader) *ErrandService {
	return &ErrandService{
		errandRepo:   errandRepo,
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
		now:          time.Now,
	}
}

// validateErrand validates errand data before database operations
func (s *ErrandService) validateErrand(errand *models.Errand) error {
	if errand == nil {
		return apperrors.NewValidationError("errand is nil")
	}
	if err := validation.RequireText("title", errand.Title, validation.TitleMaxLength); err != nil {
		return err
	}
	if err := validation.OptionalText("description", errand.Description, validation.DescriptionMaxLength); err != nil {
		return err
	}
	if err := validation.RequireText("location", errand.Location, validation.LocationMaxLength); err != nil {
		return err
	}
	if err := validation.RequireText("requesterNickname", errand.RequesterNickname, validation.NicknameMaxLength); err != nil {
		return err
	}
	if err := validation.ForeignID("requesterSeq", errand.RequesterSeq); err != nil {
		return err
	}
	if err := validation.ForeignID("categoryId", errand.CategoryID); err != nil {
		return err
	}
	if err := validation.Price(errand.Price); err != nil {
		return err
	}
	if err := validation.EstimatedTime(errand.EstimatedTime); err != nil {
		return err
	}
	return nil
}

func (s *ErrandService) checkCategoryExists(ctx context.Context, categoryID int64) error {
	_, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("error checking category: %w", err)
	}
	return nil
}

// CreateErrand creates a new errand. An empty or unrecognized requested
// status silently becomes REQUESTED; clients that never send a status get
// the natural initial state.
func (s *ErrandService) CreateErrand(ctx context.Context, errand *models.Errand, requestedStatus string) error {
	if err := s.validateErrand(errand); err != nil {
		return err
	}
	if err := validation.Deadline(errand.Deadline, s.now()); err != nil {
		return err
	}
	if err := s.checkCategoryExists(ctx, errand.CategoryID); err != nil {
		return err
	}

	if _, known := models.ParseErrandStatus(requestedStatus); !known && requestedStatus != "" {
		logger.Warn().Str("status", requestedStatus).Msg("Unknown errand status requested, defaulting to REQUESTED")
	}
	errand.Status = models.ErrandStatusOrDefault(requestedStatus)
	errand.RunnerSeq = nil
	errand.RunnerNickname = nil

	if err := s.errandRepo.Create(ctx, errand); err != nil {
		return fmt.Errorf("error creating errand: %w", err)
	}
	return nil
}

// GetErrandByID retrieves an errand with its category and images attached
func (s *ErrandService) GetErrandByID(ctx context.Context, id int64) (*models.Errand, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid errand ID")
	}

	errand, err := s.errandRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrErrandNotFound) {
			return nil, apperrors.ErrErrandNotFound
		}
		return nil, fmt.Errorf("error retrieving errand: %w", err)
	}

	// Relations are enrichment; the errand itself is the answer
	if category, err := s.categoryRepo.GetByID(ctx, errand.CategoryID); err == nil {
		errand.Category = category
	}
	if images, err := s.imageRepo.GetByErrand(ctx, errand.ErrandSeq); err == nil {
		errand.Images = images
	}

	return errand, nil
}

// GetAllErrands retrieves a page of errands
func (s *ErrandService) GetAllErrands(ctx context.Context, page, pageSize int) ([]models.Errand, dto.PaginationInfo, error) {
	if err := helpers.ValidatePageRequest(page, pageSize); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	errands, totalItems, err := s.errandRepo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error retrieving errands: %w", err)
	}

	return errands, helpers.NewPaginationInfo(totalItems, page, pageSize), nil
}

// GetErrandsByCategory retrieves a page of errands in a category. An
// unknown category is not an error; it just matches nothing.
func (s *ErrandService) GetErrandsByCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]models.Errand, dto.PaginationInfo, error) {
	if err := helpers.ValidatePageRequest(page, pageSize); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	errands, totalItems, err := s.errandRepo.GetByCategory(ctx, categoryID, page, pageSize)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error retrieving errands by category: %w", err)
	}

	return errands, helpers.NewPaginationInfo(totalItems, page, pageSize), nil
}

// GetFilteredErrands retrieves a page of errands matching the filter.
// An unknown sort key is rejected rather than ignored so clients notice
// typos instead of silently getting unordered results.
func (s *ErrandService) GetFilteredErrands(ctx context.Context, filter repositories.ErrandFilter) ([]models.Errand, dto.PaginationInfo, error) {
	if err := helpers.ValidatePageRequest(filter.Page, filter.PageSize); err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	if filter.SortBy != "" {
		if _, ok := repositories.ErrandSortColumn(filter.SortBy); !ok {
			return nil, dto.PaginationInfo{}, apperrors.NewBadRequestError(fmt.Sprintf("unknown sort key %q", filter.SortBy))
		}
	}

	errands, totalItems, err := s.errandRepo.GetFiltered(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error retrieving filtered errands: %w", err)
	}

	return errands, helpers.NewPaginationInfo(totalItems, filter.Page, filter.PageSize), nil
}

// UpdateErrand rewrites an errand's requester-editable fields. Lifecycle
// fields stay untouched; AcceptErrand and UpdateErrandStatus own those.
func (s *ErrandService) UpdateErrand(ctx context.Context, errand *models.Errand) (*models.Errand, error) {
	if errand == nil || errand.ErrandSeq <= 0 {
		return nil, apperrors.NewBadRequestError("invalid errand ID")
	}

	existing, err := s.errandRepo.GetByID(ctx, errand.ErrandSeq)
	if err != nil {
		if errors.Is(err, repositories.ErrErrandNotFound) {
			return nil, apperrors.ErrErrandNotFound
		}
		return nil, fmt.Errorf("error retrieving errand for update: %w", err)
	}

	existing.Title = errand.Title
	existing.Description = errand.Description
	existing.CategoryID = errand.CategoryID
	existing.Location = errand.Location
	existing.Price = errand.Price
	existing.EstimatedTime = errand.EstimatedTime
	existing.Deadline = errand.Deadline

	if err := s.validateErrand(existing); err != nil {
		return nil, err
	}
	if err := s.checkCategoryExists(ctx, existing.CategoryID); err != nil {
		return nil, err
	}

	if err := s.errandRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repositories.ErrErrandNotFound) {
			return nil, apperrors.ErrErrandNotFound
		}
		return nil, fmt.Errorf("error updating errand: %w", err)
	}

	return existing, nil
}

// DeleteErrand deletes an errand by ID
func (s *ErrandService) DeleteErrand(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid errand ID")
	}

	err := s.errandRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrErrandNotFound) {
			return apperrors.ErrErrandNotFound
		}
		return fmt.Errorf("error deleting errand: %w", err)
	}
	return nil
}

// AcceptErrand assigns a runner to a REQUESTED errand and moves it to
// IN_PROGRESS. The check and the write happen under one row lock, so of two
// concurrent accepts exactly one wins and the other gets
// apperrors.ErrErrandNotAvailable.
func (s *ErrandService) AcceptErrand(ctx context.Context, id, runnerSeq int64, runnerNickname string) (*models.Errand, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid errand ID")
	}
	if err := validation.ForeignID("runnerSeq", runnerSeq); err != nil {
		return nil, err
	}
	if err := validation.RequireText("runnerNickname", runnerNickname, validation.NicknameMaxLength); err != nil {
		return nil, err
	}

	errand, err := s.errandRepo.Mutate(ctx, id, func(errand *models.Errand) error {
		if errand.Status != models.ErrandStatusRequested {
			return apperrors.NewCustomError(apperrors.ErrErrandNotAvailable,
				fmt.Sprintf("errand is %s and cannot be accepted", errand.Status))
		}
		errand.RunnerSeq = &runnerSeq
		errand.RunnerNickname = &runnerNickname
		errand.Status = models.ErrandStatusInProgress
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrErrandNotFound) {
			return nil, apperrors.ErrErrandNotFound
		}
		if errors.Is(err, apperrors.ErrErrandNotAvailable) {
			return nil, err
		}
		return nil, fmt.Errorf("error accepting errand: %w", err)
	}

	logger.Info().Int64("errandSeq", id).Int64("runnerSeq", runnerSeq).Msg("Errand accepted")
	return errand, nil
}

// UpdateErrandStatus moves an errand through its lifecycle. The target
// status must name a known state and the move must be legal per the
// transition table; terminal states accept no further moves.
func (s *ErrandService) UpdateErrandStatus(ctx context.Context, id int64, statusInput string) (*models.Errand, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid errand ID")
	}

	target, known := models.ParseErrandStatus(statusInput)
	if !known {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("unknown errand status %q", statusInput))
	}

	errand, err := s.errandRepo.Mutate(ctx, id, func(errand *models.Errand) error {
		if errand.Status.IsTerminal() {
			return apperrors.NewCustomError(apperrors.ErrInvalidStatusTransition,
				fmt.Sprintf("errand is %s and accepts no further status changes", errand.Status))
		}
		if !errand.Status.CanTransition(target) {
			return apperrors.NewCustomError(apperrors.ErrInvalidStatusTransition,
				fmt.Sprintf("cannot transition errand from %s to %s", errand.Status, target))
		}
		errand.Status = target
		return nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrErrandNotFound) {
			return nil, apperrors.ErrErrandNotFound
		}
		if errors.Is(err, apperrors.ErrInvalidStatusTransition) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating errand status: %w", err)
	}

	logger.Info().Int64("errandSeq", id).Str("status", string(errand.Status)).Msg("Errand status updated")
	return errand, nil
}
