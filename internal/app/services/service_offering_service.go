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

// offeringRepository is the persistence surface the offering service needs
type offeringRepository interface {
	Create(ctx context.Context, offering *models.ServiceOffering) error
	GetByID(ctx context.Context, id int64) (*models.ServiceOffering, error)
	GetAll(ctx context.Context, page, pageSize int) ([]models.ServiceOffering, int64, error)
	GetByCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]models.ServiceOffering, int64, error)
	GetFiltered(ctx context.Context, filter repositories.OfferingFilter) ([]models.ServiceOffering, int64, error)
	Update(ctx context.Context, offering *models.ServiceOffering) error
	Delete(ctx context.Context, id int64) error
	IncrementCompletedTasks(ctx context.Context, id int64) (int, error)
}

type offeringImageReader interface {
	GetByServiceOffering(ctx context.Context, offeringID int64) ([]models.Image, error)
}

// ServiceOfferingService handles service offering operations
type ServiceOfferingService struct {
	offeringRepo offeringRepository
	categoryRepo categoryReader
	imageRepo    offeringImageReader
}

// NewServiceOfferingService creates a new service offering service instance
func NewServiceOfferingService(offeringRepo offeringRepository, categoryRepo categoryReader, imageRepo offeringImageReader) *ServiceOfferingService {
	return &ServiceOfferingService{
		offeringRepo: offeringRepo,
		categoryRepo: categoryRepo,
		imageRepo:    imageRepo,
	}
}

// validateOffering validates offering data before database operations
func (s *ServiceOfferingService) validateOffering(offering *models.ServiceOffering) error {
	if offering == nil {
		return apperrors.NewValidationError("service offering is nil")
	}
	if err := validation.RequireText("title", offering.Title, validation.TitleMaxLength); err != nil {
		return err
	}
	if err := validation.OptionalText("description", offering.Description, validation.DescriptionMaxLength); err != nil {
		return err
	}
	if err := validation.RequireText("location", offering.Location, validation.LocationMaxLength); err != nil {
		return err
	}
	if err := validation.ForeignID("providerId", offering.ProviderID); err != nil {
		return err
	}
	if err := validation.ForeignID("categoryId", offering.CategoryID); err != nil {
		return err
	}
	if err := validation.Price(offering.PriceRange); err != nil {
		return err
	}
	return nil
}

func (s *ServiceOfferingService) checkCategoryExists(ctx context.Context, categoryID int64) error {
	_, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return fmt.Errorf("error checking category: %w", err)
	}
	return nil
}

// CreateOffering creates a new service offering
func (s *ServiceOfferingService) CreateOffering(ctx context.Context, offering *models.ServiceOffering) error {
	if err := s.validateOffering(offering); err != nil {
		return err
	}
	if err := s.checkCategoryExists(ctx, offering.CategoryID); err != nil {
		return err
	}

	if err := s.offeringRepo.Create(ctx, offering); err != nil {
		return fmt.Errorf("error creating service offering: %w", err)
	}
	return nil
}

// GetOfferingByID retrieves a service offering with its category and images
func (s *ServiceOfferingService) GetOfferingByID(ctx context.Context, id int64) (*models.ServiceOffering, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid service offering ID")
	}

	offering, err := s.offeringRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrServiceOfferingNotFound) {
			return nil, apperrors.ErrServiceOfferingNotFound
		}
		return nil, fmt.Errorf("error retrieving service offering: %w", err)
	}

	if category, err := s.categoryRepo.GetByID(ctx, offering.CategoryID); err == nil {
		offering.Category = category
	}
	if images, err := s.imageRepo.GetByServiceOffering(ctx, offering.ID); err == nil {
		offering.Images = images
	}

	return offering, nil
}

// GetAllOfferings retrieves a page of service offerings
func (s *ServiceOfferingService) GetAllOfferings(ctx context.Context, page, pageSize int) ([]models.ServiceOffering, dto.PaginationInfo, error) {
	if err := helpers.ValidatePageRequest(page, pageSize); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	offerings, totalItems, err := s.offeringRepo.GetAll(ctx, page, pageSize)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error retrieving service offerings: %w", err)
	}

	return offerings, helpers.NewPaginationInfo(totalItems, page, pageSize), nil
}

// GetOfferingsByCategory retrieves a page of service offerings in a
// category. An unknown category is not an error; it just matches nothing.
func (s *ServiceOfferingService) GetOfferingsByCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]models.ServiceOffering, dto.PaginationInfo, error) {
	if err := helpers.ValidatePageRequest(page, pageSize); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	offerings, totalItems, err := s.offeringRepo.GetByCategory(ctx, categoryID, page, pageSize)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error retrieving service offerings by category: %w", err)
	}

	return offerings, helpers.NewPaginationInfo(totalItems, page, pageSize), nil
}

// GetFilteredOfferings retrieves a page of service offerings matching the
// filter. Unknown sort keys are rejected, matching errand listing behavior.
func (s *ServiceOfferingService) GetFilteredOfferings(ctx context.Context, filter repositories.OfferingFilter) ([]models.ServiceOffering, dto.PaginationInfo, error) {
	if err := helpers.ValidatePageRequest(filter.Page, filter.PageSize); err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	if filter.SortBy != "" {
		if _, ok := repositories.OfferingSortColumn(filter.SortBy); !ok {
			return nil, dto.PaginationInfo{}, apperrors.NewBadRequestError(fmt.Sprintf("unknown sort key %q", filter.SortBy))
		}
	}

	offerings, totalItems, err := s.offeringRepo.GetFiltered(ctx, filter)
	if err != nil {
		return nil, dto.PaginationInfo{}, fmt.Errorf("error retrieving filtered service offerings: %w", err)
	}

	return offerings, helpers.NewPaginationInfo(totalItems, filter.Page, filter.PageSize), nil
}

// UpdateOffering rewrites an offering's provider-editable fields. The
// completed task counter and ratings are derived state and never written here.
func (s *ServiceOfferingService) UpdateOffering(ctx context.Context, offering *models.ServiceOffering) (*models.ServiceOffering, error) {
	if offering == nil || offering.ID <= 0 {
		return nil, apperrors.NewBadRequestError("invalid service offering ID")
	}

	existing, err := s.offeringRepo.GetByID(ctx, offering.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrServiceOfferingNotFound) {
			return nil, apperrors.ErrServiceOfferingNotFound
		}
		return nil, fmt.Errorf("error retrieving service offering for update: %w", err)
	}

	existing.Title = offering.Title
	existing.Description = offering.Description
	existing.PriceRange = offering.PriceRange
	existing.Location = offering.Location
	existing.CategoryID = offering.CategoryID

	if err := s.validateOffering(existing); err != nil {
		return nil, err
	}
	if err := s.checkCategoryExists(ctx, existing.CategoryID); err != nil {
		return nil, err
	}

	if err := s.offeringRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repositories.ErrServiceOfferingNotFound) {
			return nil, apperrors.ErrServiceOfferingNotFound
		}
		return nil, fmt.Errorf("error updating service offering: %w", err)
	}

	return existing, nil
}

// DeleteOffering deletes a service offering by ID
func (s *ServiceOfferingService) DeleteOffering(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid service offering ID")
	}

	err := s.offeringRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrServiceOfferingNotFound) {
			return apperrors.ErrServiceOfferingNotFound
		}
		return fmt.Errorf("error deleting service offering: %w", err)
	}
	return nil
}

// CompleteTask records one more completed task for an offering and returns
// the new count
func (s *ServiceOfferingService) CompleteTask(ctx context.Context, id int64) (int, error) {
	if id <= 0 {
		return 0, apperrors.NewBadRequestError("invalid service offering ID")
	}

	completed, err := s.offeringRepo.IncrementCompletedTasks(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrServiceOfferingNotFound) {
			return 0, apperrors.ErrServiceOfferingNotFound
		}
		return 0, fmt.Errorf("error recording completed task: %w", err)
	}

	logger.Info().Int64("offeringID", id).Int("completedTasks", completed).Msg("Task completion recorded")
	return completed, nil
}
