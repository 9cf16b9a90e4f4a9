package dto

import (
	"time"

	"github.com/dowadream/errand-service/internal/app/models"
)

// CreateErrandRequest represents the request to post a new errand
type CreateErrandRequest struct {
	Title             string    `json:"title" binding:"required,max=100"`
	Description       string    `json:"description" binding:"max=500"`
	RequesterSeq      int64     `json:"requesterSeq" binding:"required,min=1"`
	RequesterNickname string    `json:"requesterNickname" binding:"required,max=50"`
	CategoryID        int64     `json:"categoryId" binding:"required,min=1"`
	Location          string    `json:"location" binding:"required,max=100"`
	Price             float64   `json:"price" binding:"gte=0"`
	EstimatedTime     int       `json:"estimatedTime" binding:"required,gt=0"`
	Deadline          time.Time `json:"deadline" binding:"required"`
	// Status is optional; anything unrecognized becomes REQUESTED
	Status string `json:"status"`
}

// ToModel converts the request into an errand model
func (r *CreateErrandRequest) ToModel() *models.Errand {
	return &models.Errand{
		Title:             r.Title,
		Description:       r.Description,
		RequesterSeq:      r.RequesterSeq,
		RequesterNickname: r.RequesterNickname,
		CategoryID:        r.CategoryID,
		Location:          r.Location,
		Price:             r.Price,
		EstimatedTime:     r.EstimatedTime,
		Deadline:          r.Deadline,
	}
}

// UpdateErrandRequest represents the request to edit an errand's details.
// Lifecycle fields are managed through the accept and status endpoints.
type UpdateErrandRequest struct {
	Title         string    `json:"title" binding:"required,max=100"`
	Description   string    `json:"description" binding:"max=500"`
	CategoryID    int64     `json:"categoryId" binding:"required,min=1"`
	Location      string    `json:"location" binding:"required,max=100"`
	Price         float64   `json:"price" binding:"gte=0"`
	EstimatedTime int       `json:"estimatedTime" binding:"required,gt=0"`
	Deadline      time.Time `json:"deadline" binding:"required"`
}

// AcceptErrandRequest represents a runner's request to take an errand
type AcceptErrandRequest struct {
	RunnerSeq      int64  `json:"runnerSeq" binding:"required,min=1"`
	RunnerNickname string `json:"runnerNickname" binding:"required,max=50"`
}

// UpdateErrandStatusRequest represents a lifecycle transition request
type UpdateErrandStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ErrandFilterRequest carries the query parameters of a filtered listing
type ErrandFilterRequest struct {
	Location   string `form:"location"`
	CategoryID int64  `form:"categoryId"`
	SortBy     string `form:"sortBy"`
}

// ErrandResponse represents an errand in API responses
type ErrandResponse struct {
	ErrandSeq         int64             `json:"errandSeq"`
	Title             string            `json:"title"`
	Description       string            `json:"description"`
	RequesterSeq      int64             `json:"requesterSeq"`
	RequesterNickname string            `json:"requesterNickname"`
	RunnerSeq         *int64            `json:"runnerSeq,omitempty"`
	RunnerNickname    *string           `json:"runnerNickname,omitempty"`
	Status            string            `json:"status"`
	CategoryID        int64             `json:"categoryId"`
	Category          *CategoryResponse `json:"category,omitempty"`
	Location          string            `json:"location"`
	Price             float64           `json:"price"`
	EstimatedTime     int               `json:"estimatedTime"`
	Deadline          time.Time         `json:"deadline"`
	CreatedDate       time.Time         `json:"createdDate"`
	UpdatedDate       time.Time         `json:"updatedDate"`
	Images            []ImageResponse   `json:"images,omitempty"`
}

// FromErrand converts an errand model to its response form
func FromErrand(errand *models.Errand) ErrandResponse {
	if errand == nil {
		return ErrandResponse{}
	}

	response := ErrandResponse{
		ErrandSeq:         errand.ErrandSeq,
		Title:             errand.Title,
		Description:       errand.Description,
		RequesterSeq:      errand.RequesterSeq,
		RequesterNickname: errand.RequesterNickname,
		RunnerSeq:         errand.RunnerSeq,
		RunnerNickname:    errand.RunnerNickname,
		Status:            string(errand.Status),
		CategoryID:        errand.CategoryID,
		Location:          errand.Location,
		Price:             errand.Price,
		EstimatedTime:     errand.EstimatedTime,
		Deadline:          errand.Deadline,
		CreatedDate:       errand.CreatedDate,
		UpdatedDate:       errand.UpdatedDate,
	}

	if errand.Category != nil {
		category := FromCategory(errand.Category)
		response.Category = &category
	}
	for i := range errand.Images {
		response.Images = append(response.Images, FromImage(&errand.Images[i]))
	}

	return response
}

// FromErrands converts a slice of errand models to response form
func FromErrands(errands []models.Errand) []ErrandResponse {
	responses := make([]ErrandResponse, 0, len(errands))
	for i := range errands {
		responses = append(responses, FromErrand(&errands[i]))
	}
	return responses
}
