package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dowadream/errand-service/internal/app/models/dto"
	"github.com/dowadream/errand-service/internal/app/repositories"
	"github.com/dowadream/errand-service/internal/app/services"
	"github.com/dowadream/errand-service/internal/middleware"
	"github.com/dowadream/errand-service/internal/pkg/helpers"
)

// ServiceOfferingController handles service offering endpoints
type ServiceOfferingController struct {
	offeringService *services.ServiceOfferingService
}

// NewServiceOfferingController creates a new ServiceOfferingController
func NewServiceOfferingController(offeringService *services.ServiceOfferingService) *ServiceOfferingController {
	return &ServiceOfferingController{
		offeringService: offeringService,
	}
}

// CreateOffering handles advertising a new service
// @Summary Create a service offering
// @Description Advertises a new standing service with a zero completed task counter
// @Tags service-offerings
// @Accept json
// @Produce json
// @Param request body dto.CreateServiceOfferingRequest true "Service offering information"
// @Success 201 {object} dto.APIResponse{data=dto.ServiceOfferingResponse} "Service offering created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /service-offerings [post]
func (c *ServiceOfferingController) CreateOffering(ctx *gin.Context) {
	var req dto.CreateServiceOfferingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	offering := req.ToModel()
	if err := c.offeringService.CreateOffering(ctx, offering); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromServiceOffering(offering)))
}

// GetOfferingByID retrieves a service offering by ID
// @Summary Get service offering by ID
// @Description Retrieves a single service offering with its derived average rating
// @Tags service-offerings
// @Produce json
// @Param id path int true "Service offering ID"
// @Success 200 {object} dto.APIResponse{data=dto.ServiceOfferingResponse} "Service offering retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid service offering ID"
// @Failure 404 {object} dto.ErrorResponse "Service offering not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /service-offerings/{id} [get]
func (c *ServiceOfferingController) GetOfferingByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	offering, err := c.offeringService.GetOfferingByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromServiceOffering(offering)))
}

// GetAllOfferings retrieves a page of service offerings
// @Summary List service offerings
// @Description Retrieves a page of service offerings in insertion order
// @Tags service-offerings
// @Produce json
// @Param page query int false "0-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Service offerings retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /service-offerings [get]
func (c *ServiceOfferingController) GetAllOfferings(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	offerings, pagination, err := c.offeringService.GetAllOfferings(ctx, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      dto.FromServiceOfferings(offerings),
		Pagination: pagination,
	}))
}

// GetOfferingsByCategory retrieves offerings in one category
// @Summary List service offerings by category
// @Description Retrieves a page of service offerings belonging to the given category. An unknown category yields an empty page.
// @Tags service-offerings
// @Produce json
// @Param categoryId path int true "Category ID"
// @Param page query int false "0-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Service offerings retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /service-offerings/category/{categoryId} [get]
func (c *ServiceOfferingController) GetOfferingsByCategory(ctx *gin.Context) {
	categoryID, ok := parseIDParam(ctx, "categoryId")
	if !ok {
		return
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	offerings, pagination, err := c.offeringService.GetOfferingsByCategory(ctx, categoryID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      dto.FromServiceOfferings(offerings),
		Pagination: pagination,
	}))
}

// GetFilteredOfferings retrieves offerings matching optional filters
// @Summary List service offerings with filters
// @Description Retrieves a page of service offerings filtered by location and category and ordered by a sort key
// @Tags service-offerings
// @Produce json
// @Param location query string false "Exact location match"
// @Param categoryId query int false "Category ID"
// @Param sortBy query string false "Sort key" Enums(latest, highestRating, mostTasks)
// @Param page query int false "0-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Service offerings retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter or sort parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /service-offerings/filter [get]
func (c *ServiceOfferingController) GetFilteredOfferings(ctx *gin.Context) {
	var req dto.OfferingFilterRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	filter := repositories.OfferingFilter{
		SortBy:   req.SortBy,
		Page:     page,
		PageSize: pageSize,
	}
	if req.Location != "" {
		filter.Location = &req.Location
	}
	if req.CategoryID > 0 {
		filter.CategoryID = &req.CategoryID
	}

	offerings, pagination, err := c.offeringService.GetFilteredOfferings(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      dto.FromServiceOfferings(offerings),
		Pagination: pagination,
	}))
}

// UpdateOffering edits a service offering's details
// @Summary Update a service offering
// @Description Rewrites an offering's provider-editable fields. Counters and ratings are derived and stay untouched.
// @Tags service-offerings
// @Accept json
// @Produce json
// @Param id path int true "Service offering ID"
// @Param request body dto.UpdateServiceOfferingRequest true "Updated offering information"
// @Success 200 {object} dto.APIResponse{data=dto.ServiceOfferingResponse} "Service offering updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Service offering or category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /service-offerings/{id} [put]
func (c *ServiceOfferingController) UpdateOffering(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateServiceOfferingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	offering := (&dto.CreateServiceOfferingRequest{
		Title:       req.Title,
		Description: req.Description,
		PriceRange:  req.PriceRange,
		Location:    req.Location,
		CategoryID:  req.CategoryID,
	}).ToModel()
	offering.ID = id

	updated, err := c.offeringService.UpdateOffering(ctx, offering)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromServiceOffering(updated)))
}

// DeleteOffering removes a service offering
// @Summary Delete a service offering
// @Description Deletes a service offering along with its images and reviews
// @Tags service-offerings
// @Produce json
// @Param id path int true "Service offering ID"
// @Success 204 "Service offering deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid service offering ID"
// @Failure 404 {object} dto.ErrorResponse "Service offering not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /service-offerings/{id} [delete]
func (c *ServiceOfferingController) DeleteOffering(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.offeringService.DeleteOffering(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CompleteTask records a completed task against an offering
// @Summary Record a completed task
// @Description Increments the offering's completed task counter atomically and returns the new count
// @Tags service-offerings
// @Produce json
// @Param id path int true "Service offering ID"
// @Success 200 {object} dto.APIResponse{data=dto.CompletedTasksResponse} "Counter incremented successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid service offering ID"
// @Failure 404 {object} dto.ErrorResponse "Service offering not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /service-offerings/{id}/complete-task [post]
func (c *ServiceOfferingController) CompleteTask(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	completed, err := c.offeringService.CompleteTask(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.CompletedTasksResponse{
		ID:             id,
		CompletedTasks: completed,
	}))
}
