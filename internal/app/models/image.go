package models

import "time"

// ImageType discriminates which entity owns an image
type ImageType string

const (
	ImageTypeErrandRequest   ImageType = "ERRAND_REQUEST"
	ImageTypeServiceOffering ImageType = "SERVICE_OFFERING"
	ImageTypeCategory        ImageType = "CATEGORY"
)

// Image is an uploaded file attached to exactly one errand, service offering
// or category, matching its ImageType. Images are deleted with their owner.
type Image struct {
	ImageID           int64     `json:"imageId"`
	FileName          string    `json:"fileName"`
	FilePath          string    `json:"filePath"`
	FileType          string    `json:"fileType"` // MIME type
	FileSize          int64     `json:"fileSize"` // bytes
	UploadDate        time.Time `json:"uploadDate"`
	ImageType         ImageType `json:"imageType"`
	ErrandSeq         *int64    `json:"errandSeq,omitempty"`
	ServiceOfferingID *int64    `json:"serviceOfferingId,omitempty"`
	CategoryID        *int64    `json:"categoryId,omitempty"`
}
