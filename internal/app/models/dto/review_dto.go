package dto

import (
	"time"

	"github.com/dowadream/errand-service/internal/app/models"
)

// CreateReviewRequest represents the request to leave a review. Exactly one
// of ErrandSeq and ServiceOfferingID must be set.
type CreateReviewRequest struct {
	ReviewerID        int64  `json:"reviewerId" binding:"required,min=1"`
	Rating            int    `json:"rating" binding:"required,min=1,max=5"`
	Comments          string `json:"comments" binding:"max=500"`
	ErrandSeq         *int64 `json:"errandSeq" binding:"omitempty,min=1"`
	ServiceOfferingID *int64 `json:"serviceOfferingId" binding:"omitempty,min=1"`
}

// ToModel converts the request into a review model
func (r *CreateReviewRequest) ToModel() *models.Review {
	return &models.Review{
		ReviewerID:        r.ReviewerID,
		Rating:            r.Rating,
		Comments:          r.Comments,
		ErrandSeq:         r.ErrandSeq,
		ServiceOfferingID: r.ServiceOfferingID,
	}
}

// UpdateReviewRequest represents the request to revise a review
type UpdateReviewRequest struct {
	Rating   int    `json:"rating" binding:"required,min=1,max=5"`
	Comments string `json:"comments" binding:"max=500"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID                int64     `json:"id"`
	ReviewerID        int64     `json:"reviewerId"`
	Rating            int       `json:"rating"`
	Comments          string    `json:"comments"`
	ErrandSeq         *int64    `json:"errandSeq,omitempty"`
	ServiceOfferingID *int64    `json:"serviceOfferingId,omitempty"`
	CreatedDate       time.Time `json:"createdDate"`
}

// ReviewListResponse is a page of reviews plus the target's average rating
type ReviewListResponse struct {
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"averageRating"`
	Pagination    PaginationInfo   `json:"pagination"`
}

// FromReview converts a review model to its response form
func FromReview(review *models.Review) ReviewResponse {
	if review == nil {
		return ReviewResponse{}
	}
	return ReviewResponse{
		ID:                review.ID,
		ReviewerID:        review.ReviewerID,
		Rating:            review.Rating,
		Comments:          review.Comments,
		ErrandSeq:         review.ErrandSeq,
		ServiceOfferingID: review.ServiceOfferingID,
		CreatedDate:       review.CreatedDate,
	}
}

// FromReviews converts a slice of review models to response form
func FromReviews(reviews []models.Review) []ReviewResponse {
	responses := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		responses = append(responses, FromReview(&reviews[i]))
	}
	return responses
}
