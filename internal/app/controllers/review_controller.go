package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dowadream/errand-service/internal/app/models/dto"
	"github.com/dowadream/errand-service/internal/app/services"
	"github.com/dowadream/errand-service/internal/middleware"
	"github.com/dowadream/errand-service/internal/pkg/helpers"
)

// ReviewController handles review-related endpoints
type ReviewController struct {
	reviewService *services.ReviewService
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviewService *services.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// CreateReview handles leaving a review
// @Summary Create a review
// @Description Leaves a review against exactly one of an errand or a service offering
// @Tags reviews
// @Accept json
// @Produce json
// @Param request body dto.CreateReviewRequest true "Review information"
// @Success 201 {object} dto.APIResponse{data=dto.ReviewResponse} "Review created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or ambiguous target"
// @Failure 404 {object} dto.ErrorResponse "Review target not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews [post]
func (c *ReviewController) CreateReview(ctx *gin.Context) {
	var req dto.CreateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	review := req.ToModel()
	if err := c.reviewService.CreateReview(ctx, review); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromReview(review)))
}

// GetReviewByID retrieves a review by ID
// @Summary Get review by ID
// @Description Retrieves a single review
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewResponse} "Review retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid review ID"
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews/{id} [get]
func (c *ReviewController) GetReviewByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	review, err := c.reviewService.GetReviewByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromReview(review)))
}

// GetReviewsByErrand retrieves an errand's reviews
// @Summary List reviews for an errand
// @Description Retrieves a page of the errand's reviews, newest first, plus its average rating
// @Tags reviews
// @Produce json
// @Param errandId path int true "Errand sequence number"
// @Param page query int false "0-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ReviewListResponse} "Reviews retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "Errand not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews/errand/{errandId} [get]
func (c *ReviewController) GetReviewsByErrand(ctx *gin.Context) {
	errandSeq, ok := parseIDParam(ctx, "errandId")
	if !ok {
		return
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	reviews, average, pagination, err := c.reviewService.GetReviewsByErrand(ctx, errandSeq, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ReviewListResponse{
		Reviews:       dto.FromReviews(reviews),
		AverageRating: average,
		Pagination:    pagination,
	}))
}

// GetReviewsByServiceOffering retrieves an offering's reviews
// @Summary List reviews for a service offering
// @Description Retrieves a page of the offering's reviews, newest first, plus its average rating
// @Tags reviews
// @Produce json
// @Param serviceOfferingId path int true "Service offering ID"
// @Param page query int false "0-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ReviewListResponse} "Reviews retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 404 {object} dto.ErrorResponse "Service offering not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews/service-offering/{serviceOfferingId} [get]
func (c *ReviewController) GetReviewsByServiceOffering(ctx *gin.Context) {
	offeringID, ok := parseIDParam(ctx, "serviceOfferingId")
	if !ok {
		return
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	reviews, average, pagination, err := c.reviewService.GetReviewsByServiceOffering(ctx, offeringID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ReviewListResponse{
		Reviews:       dto.FromReviews(reviews),
		AverageRating: average,
		Pagination:    pagination,
	}))
}

// UpdateReview revises a review's rating and comments
// @Summary Update a review
// @Description Rewrites a review's rating and comments. The review target cannot be changed.
// @Tags reviews
// @Accept json
// @Produce json
// @Param id path int true "Review ID"
// @Param request body dto.UpdateReviewRequest true "Revised review"
// @Success 200 {object} dto.APIResponse{data=dto.ReviewResponse} "Review updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews/{id} [put]
func (c *ReviewController) UpdateReview(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	review, err := c.reviewService.UpdateReview(ctx, id, req.Rating, req.Comments)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromReview(review)))
}

// DeleteReview removes a review
// @Summary Delete a review
// @Description Deletes a review; the target's average rating reflects the removal immediately
// @Tags reviews
// @Produce json
// @Param id path int true "Review ID"
// @Success 204 "Review deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid review ID"
// @Failure 404 {object} dto.ErrorResponse "Review not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reviews/{id} [delete]
func (c *ReviewController) DeleteReview(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.reviewService.DeleteReview(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
