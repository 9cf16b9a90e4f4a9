package dto

import (
	"time"

	"github.com/dowadream/errand-service/internal/app/models"
)

// CreateServiceOfferingRequest represents the request to advertise a service
type CreateServiceOfferingRequest struct {
	Title       string  `json:"title" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=500"`
	PriceRange  float64 `json:"priceRange" binding:"gte=0"`
	Location    string  `json:"location" binding:"required,max=100"`
	CategoryID  int64   `json:"categoryId" binding:"required,min=1"`
	ProviderID  int64   `json:"providerId" binding:"required,min=1"`
}

// ToModel converts the request into a service offering model
func (r *CreateServiceOfferingRequest) ToModel() *models.ServiceOffering {
	return &models.ServiceOffering{
		Title:       r.Title,
		Description: r.Description,
		PriceRange:  r.PriceRange,
		Location:    r.Location,
		CategoryID:  r.CategoryID,
		ProviderID:  r.ProviderID,
	}
}

// UpdateServiceOfferingRequest represents the request to edit an offering
type UpdateServiceOfferingRequest struct {
	Title       string  `json:"title" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=500"`
	PriceRange  float64 `json:"priceRange" binding:"gte=0"`
	Location    string  `json:"location" binding:"required,max=100"`
	CategoryID  int64   `json:"categoryId" binding:"required,min=1"`
}

// OfferingFilterRequest carries the query parameters of a filtered listing
type OfferingFilterRequest struct {
	Location   string `form:"location"`
	CategoryID int64  `form:"categoryId"`
	SortBy     string `form:"sortBy"`
}

// ServiceOfferingResponse represents a service offering in API responses
type ServiceOfferingResponse struct {
	ID             int64             `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	PriceRange     float64           `json:"priceRange"`
	Location       string            `json:"location"`
	CategoryID     int64             `json:"categoryId"`
	Category       *CategoryResponse `json:"category,omitempty"`
	ProviderID     int64             `json:"providerId"`
	CompletedTasks int               `json:"completedTasks"`
	AverageRating  float64           `json:"averageRating"`
	CreatedDate    time.Time         `json:"createdDate"`
	Images         []ImageResponse   `json:"images,omitempty"`
}

// CompletedTasksResponse reports the counter after a completion is recorded
type CompletedTasksResponse struct {
	ID             int64 `json:"id"`
	CompletedTasks int   `json:"completedTasks"`
}

// FromServiceOffering converts an offering model to its response form
func FromServiceOffering(offering *models.ServiceOffering) ServiceOfferingResponse {
	if offering == nil {
		return ServiceOfferingResponse{}
	}

	response := ServiceOfferingResponse{
		ID:             offering.ID,
		Title:          offering.Title,
		Description:    offering.Description,
		PriceRange:     offering.PriceRange,
		Location:       offering.Location,
		CategoryID:     offering.CategoryID,
		ProviderID:     offering.ProviderID,
		CompletedTasks: offering.CompletedTasks,
		AverageRating:  offering.AverageRating,
		CreatedDate:    offering.CreatedDate,
	}

	if offering.Category != nil {
		category := FromCategory(offering.Category)
		response.Category = &category
	}
	for i := range offering.Images {
		response.Images = append(response.Images, FromImage(&offering.Images[i]))
	}

	return response
}

// FromServiceOfferings converts a slice of offering models to response form
func FromServiceOfferings(offerings []models.ServiceOffering) []ServiceOfferingResponse {
	responses := make([]ServiceOfferingResponse, 0, len(offerings))
	for i := range offerings {
		responses = append(responses, FromServiceOffering(&offerings[i]))
	}
	return responses
}
