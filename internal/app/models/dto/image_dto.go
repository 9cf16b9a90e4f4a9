package dto

import (
	"time"

	"github.com/dowadream/errand-service/internal/app/models"
)

// ImageResponse represents uploaded image metadata in API responses
type ImageResponse struct {
	ImageID           int64     `json:"imageId"`
	FileName          string    `json:"fileName"`
	FilePath          string    `json:"filePath"`
	FileType          string    `json:"fileType"`
	FileSize          int64     `json:"fileSize"`
	ImageType         string    `json:"imageType"`
	ErrandSeq         *int64    `json:"errandSeq,omitempty"`
	ServiceOfferingID *int64    `json:"serviceOfferingId,omitempty"`
	CategoryID        *int64    `json:"categoryId,omitempty"`
	UploadDate        time.Time `json:"uploadDate"`
}

// FromImage converts an image model to its response form
func FromImage(image *models.Image) ImageResponse {
	if image == nil {
		return ImageResponse{}
	}
	return ImageResponse{
		ImageID:           image.ImageID,
		FileName:          image.FileName,
		FilePath:          image.FilePath,
		FileType:          image.FileType,
		FileSize:          image.FileSize,
		ImageType:         string(image.ImageType),
		ErrandSeq:         image.ErrandSeq,
		ServiceOfferingID: image.ServiceOfferingID,
		CategoryID:        image.CategoryID,
		UploadDate:        image.UploadDate,
	}
}
