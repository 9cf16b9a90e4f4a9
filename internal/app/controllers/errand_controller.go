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

// ErrandController handles errand-related endpoints
type ErrandController struct {
	errandService *services.ErrandService
}

// NewErrandController creates a new ErrandController
func NewErrandController(errandService *services.ErrandService) *ErrandController {
	return &ErrandController{
		errandService: errandService,
	}
}

// CreateErrand handles posting a new errand
// @Summary Create a new errand
// @Description Posts a new errand request. Unknown or missing status defaults to REQUESTED.
// @Tags errands
// @Accept json
// @Produce json
// @Param request body dto.CreateErrandRequest true "Errand information"
// @Success 201 {object} dto.APIResponse{data=dto.ErrandResponse} "Errand created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /errands [post]
func (c *ErrandController) CreateErrand(ctx *gin.Context) {
	var req dto.CreateErrandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	errand := req.ToModel()
	if err := c.errandService.CreateErrand(ctx, errand, req.Status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromErrand(errand)))
}

// GetErrandByID retrieves an errand by its sequence number
// @Summary Get errand by ID
// @Description Retrieves a single errand with its category and images
// @Tags errands
// @Produce json
// @Param id path int true "Errand sequence number"
// @Success 200 {object} dto.APIResponse{data=dto.ErrandResponse} "Errand retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid errand ID"
// @Failure 404 {object} dto.ErrorResponse "Errand not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /errands/{id} [get]
func (c *ErrandController) GetErrandByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	errand, err := c.errandService.GetErrandByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromErrand(errand)))
}

// GetAllErrands retrieves a page of errands
// @Summary List errands
// @Description Retrieves a page of errands in insertion order
// @Tags errands
// @Produce json
// @Param page query int false "0-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Errands retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid pagination parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /errands [get]
func (c *ErrandController) GetAllErrands(ctx *gin.Context) {
	page, pageSize := helpers.ParsePaginationParams(ctx)

	errands, pagination, err := c.errandService.GetAllErrands(ctx, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      dto.FromErrands(errands),
		Pagination: pagination,
	}))
}

// GetErrandsByCategory retrieves errands in one category
// @Summary List errands by category
// @Description Retrieves a page of errands belonging to the given category. An unknown category yields an empty page.
// @Tags errands
// @Produce json
// @Param categoryId path int true "Category ID"
// @Param page query int false "0-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Errands retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /errands/category/{categoryId} [get]
func (c *ErrandController) GetErrandsByCategory(ctx *gin.Context) {
	categoryID, ok := parseIDParam(ctx, "categoryId")
	if !ok {
		return
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	errands, pagination, err := c.errandService.GetErrandsByCategory(ctx, categoryID, page, pageSize)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      dto.FromErrands(errands),
		Pagination: pagination,
	}))
}

// GetFilteredErrands retrieves errands matching optional filters
// @Summary List errands with filters
// @Description Retrieves a page of errands filtered by location and category and ordered by a sort key
// @Tags errands
// @Produce json
// @Param location query string false "Exact location match"
// @Param categoryId query int false "Category ID"
// @Param sortBy query string false "Sort key" Enums(latest, highestPrice, highestHourlyRate, closestDeadline)
// @Param page query int false "0-based page index" default(0)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Errands retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter or sort parameters"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /errands/filter [get]
func (c *ErrandController) GetFilteredErrands(ctx *gin.Context) {
	var req dto.ErrandFilterRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}
	page, pageSize := helpers.ParsePaginationParams(ctx)

	filter := repositories.ErrandFilter{
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

	errands, pagination, err := c.errandService.GetFilteredErrands(ctx, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      dto.FromErrands(errands),
		Pagination: pagination,
	}))
}

// UpdateErrand edits an errand's details
// @Summary Update an errand
// @Description Rewrites an errand's requester-editable fields. Lifecycle fields are not touched.
// @Tags errands
// @Accept json
// @Produce json
// @Param id path int true "Errand sequence number"
// @Param request body dto.UpdateErrandRequest true "Updated errand information"
// @Success 200 {object} dto.APIResponse{data=dto.ErrandResponse} "Errand updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Errand or category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /errands/{id} [put]
func (c *ErrandController) UpdateErrand(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateErrandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	errand := (&dto.CreateErrandRequest{
		Title:         req.Title,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
		Location:      req.Location,
		Price:         req.Price,
		EstimatedTime: req.EstimatedTime,
		Deadline:      req.Deadline,
	}).ToModel()
	errand.ErrandSeq = id

	updated, err := c.errandService.UpdateErrand(ctx, errand)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromErrand(updated)))
}

// DeleteErrand removes an errand
// @Summary Delete an errand
// @Description Deletes an errand along with its images and reviews
// @Tags errands
// @Produce json
// @Param id path int true "Errand sequence number"
// @Success 204 "Errand deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid errand ID"
// @Failure 404 {object} dto.ErrorResponse "Errand not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /errands/{id} [delete]
func (c *ErrandController) DeleteErrand(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.errandService.DeleteErrand(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// AcceptErrand assigns a runner to an errand
// @Summary Accept an errand
// @Description Assigns the calling runner to a REQUESTED errand and moves it to IN_PROGRESS. Of two concurrent accepts, exactly one succeeds.
// @Tags errands
// @Accept json
// @Produce json
// @Param id path int true "Errand sequence number"
// @Param request body dto.AcceptErrandRequest true "Runner information"
// @Success 200 {object} dto.APIResponse{data=dto.ErrandResponse} "Errand accepted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Errand not found"
// @Failure 409 {object} dto.ErrorResponse "Errand is no longer available"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /errands/{id}/accept [post]
func (c *ErrandController) AcceptErrand(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.AcceptErrandRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	errand, err := c.errandService.AcceptErrand(ctx, id, req.RunnerSeq, req.RunnerNickname)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromErrand(errand)))
}

// UpdateErrandStatus moves an errand through its lifecycle
// @Summary Update errand status
// @Description Applies a lifecycle transition. Illegal transitions and moves out of terminal states are rejected.
// @Tags errands
// @Accept json
// @Produce json
// @Param id path int true "Errand sequence number"
// @Param request body dto.UpdateErrandStatusRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.ErrandResponse} "Status updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Unknown status value"
// @Failure 404 {object} dto.ErrorResponse "Errand not found"
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /errands/{id}/status [patch]
func (c *ErrandController) UpdateErrandStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateErrandStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	errand, err := c.errandService.UpdateErrandStatus(ctx, id, req.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromErrand(errand)))
}
