package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/dowadream/errand-service/internal/app/models"
	"github.com/dowadream/errand-service/internal/app/repositories"
	"github.com/dowadream/errand-service/internal/pkg/apperrors"
	"github.com/dowadream/errand-service/internal/pkg/filestorage"
	"github.com/dowadream/errand-service/internal/pkg/logger"
)

// imageRepository is the persistence surface the image service needs
type imageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, id int64) (*models.Image, error)
	GetByErrand(ctx context.Context, errandSeq int64) ([]models.Image, error)
	GetByServiceOffering(ctx context.Context, offeringID int64) ([]models.Image, error)
	GetByCategory(ctx context.Context, categoryID int64) ([]models.Image, error)
	Delete(ctx context.Context, id int64) error
}

// storageSubdirs maps an image type to its directory under the upload root
var storageSubdirs = map[models.ImageType]string{
	models.ImageTypeErrandRequest:   "errands",
	models.ImageTypeServiceOffering: "offerings",
	models.ImageTypeCategory:        "categories",
}

// ImageService handles image upload and metadata operations
type ImageService struct {
	imageRepo    imageRepository
	errandRepo   errandReader
	offeringRepo offeringReader
	categoryRepo categoryReader
	storage      filestorage.FileStorage
}

// NewImageService creates a new image service instance
func NewImageService(
	imageRepo imageRepository,
	errandRepo errandReader,
	offeringRepo offeringReader,
	categoryRepo categoryReader,
	storage filestorage.FileStorage,
) *ImageService {
	return &ImageService{
		imageRepo:    imageRepo,
		errandRepo:   errandRepo,
		offeringRepo: offeringRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
	}
}

func validateImageUpload(fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return apperrors.NewValidationError("image file is required")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return apperrors.NewValidationError("uploaded file must be an image")
	}
	return nil
}

func (s *ImageService) checkOwnerExists(ctx context.Context, imageType models.ImageType, ownerID int64) error {
	switch imageType {
	case models.ImageTypeErrandRequest:
		if _, err := s.errandRepo.GetByID(ctx, ownerID); err != nil {
			if errors.Is(err, repositories.ErrErrandNotFound) {
				return apperrors.ErrErrandNotFound
			}
			return fmt.Errorf("error checking errand: %w", err)
		}
	case models.ImageTypeServiceOffering:
		if _, err := s.offeringRepo.GetByID(ctx, ownerID); err != nil {
			if errors.Is(err, repositories.ErrServiceOfferingNotFound) {
				return apperrors.ErrServiceOfferingNotFound
			}
			return fmt.Errorf("error checking service offering: %w", err)
		}
	case models.ImageTypeCategory:
		if _, err := s.categoryRepo.GetByID(ctx, ownerID); err != nil {
			if errors.Is(err, repositories.ErrCategoryNotFound) {
				return apperrors.ErrCategoryNotFound
			}
			return fmt.Errorf("error checking category: %w", err)
		}
	default:
		return apperrors.NewBadRequestError(fmt.Sprintf("unknown image type %q", imageType))
	}
	return nil
}

// UploadImage stores an uploaded file and records its metadata against the
// owning errand, service offering or category
func (s *ImageService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader, imageType models.ImageType, ownerID int64) (*models.Image, error) {
	if ownerID <= 0 {
		return nil, apperrors.NewBadRequestError("invalid owner ID")
	}
	if err := validateImageUpload(fileHeader); err != nil {
		return nil, err
	}
	if err := s.checkOwnerExists(ctx, imageType, ownerID); err != nil {
		return nil, err
	}

	stored, err := s.storage.SaveFileWithPath(fileHeader, storageSubdirs[imageType])
	if err != nil {
		return nil, fmt.Errorf("error storing image file: %w", err)
	}

	image := &models.Image{
		FileName:  fileHeader.Filename,
		FilePath:  stored.Path,
		FileType:  stored.MimeType,
		FileSize:  stored.FileSize,
		ImageType: imageType,
	}
	switch imageType {
	case models.ImageTypeErrandRequest:
		image.ErrandSeq = &ownerID
	case models.ImageTypeServiceOffering:
		image.ServiceOfferingID = &ownerID
	case models.ImageTypeCategory:
		image.CategoryID = &ownerID
	}

	if err := s.imageRepo.Create(ctx, image); err != nil {
		// The metadata row failed, so the stored file is an orphan
		if cleanupErr := s.storage.DeleteFile(stored.Path); cleanupErr != nil {
			logger.Warn().Err(cleanupErr).Str("path", stored.Path).Msg("Failed to remove orphaned image file")
		}
		if errors.Is(err, repositories.ErrImageOwnerMissing) {
			return nil, apperrors.ErrResourceNotFound
		}
		return nil, fmt.Errorf("error recording image: %w", err)
	}

	return image, nil
}

// GetImageByID retrieves image metadata by ID
func (s *ImageService) GetImageByID(ctx context.Context, id int64) (*models.Image, error) {
	if id <= 0 {
		return nil, apperrors.NewBadRequestError("invalid image ID")
	}

	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrImageNotFound) {
			return nil, apperrors.ErrImageNotFound
		}
		return nil, fmt.Errorf("error retrieving image: %w", err)
	}

	return image, nil
}

// DeleteImage removes an image's metadata and its stored file
func (s *ImageService) DeleteImage(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewBadRequestError("invalid image ID")
	}

	image, err := s.imageRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrImageNotFound) {
			return apperrors.ErrImageNotFound
		}
		return fmt.Errorf("error retrieving image for deletion: %w", err)
	}

	if err := s.imageRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrImageNotFound) {
			return apperrors.ErrImageNotFound
		}
		return fmt.Errorf("error deleting image: %w", err)
	}

	// Metadata is gone; a leftover file is only disk noise
	if err := s.storage.DeleteFile(image.FilePath); err != nil {
		logger.Warn().Err(err).Str("path", image.FilePath).Msg("Failed to remove stored image file")
	}

	return nil
}
