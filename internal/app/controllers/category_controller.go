package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dowadream/errand-service/internal/app/models"
	"github.com/dowadream/errand-service/internal/app/models/dto"
	"github.com/dowadream/errand-service/internal/app/services"
	"github.com/dowadream/errand-service/internal/middleware"
)

// CategoryController handles category-related endpoints
type CategoryController struct {
	categoryService *services.CategoryService
}

// NewCategoryController creates a new CategoryController
func NewCategoryController(categoryService *services.CategoryService) *CategoryController {
	return &CategoryController{
		categoryService: categoryService,
	}
}

// CreateCategory creates a category
// @Summary Create a category
// @Description Creates a new category, optionally under a parent category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "Category information"
// @Success 201 {object} dto.APIResponse{data=dto.CategoryResponse} "Category created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Parent category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	category := req.ToModel()
	if err := c.categoryService.CreateCategory(ctx, category); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.FromCategory(category)))
}

// GetCategoryByID retrieves a category by ID
// @Summary Get category by ID
// @Description Retrieves a single category with its image
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse} "Category retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid category ID"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/{id} [get]
func (c *CategoryController) GetCategoryByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	category, err := c.categoryService.GetCategoryByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromCategory(category)))
}

// GetAllCategories retrieves all categories as a flat list
// @Summary List categories
// @Description Retrieves every category without hierarchy
// @Tags categories
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryResponse} "Categories retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories [get]
func (c *CategoryController) GetAllCategories(ctx *gin.Context) {
	categories, err := c.categoryService.GetAllCategories(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromCategories(categories)))
}

// GetCategoryTree retrieves the category hierarchy
// @Summary Get category tree
// @Description Retrieves all categories assembled into parent/child trees rooted at parentless categories
// @Tags categories
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CategoryResponse} "Category tree retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/tree [get]
func (c *CategoryController) GetCategoryTree(ctx *gin.Context) {
	tree, err := c.categoryService.GetCategoryTree(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromCategories(tree)))
}

// UpdateCategory edits a category
// @Summary Update a category
// @Description Rewrites a category's fields. Moving a category under itself or one of its descendants is rejected.
// @Tags categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param request body dto.UpdateCategoryRequest true "Updated category information"
// @Success 200 {object} dto.APIResponse{data=dto.CategoryResponse} "Category updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or cyclic parent assignment"
// @Failure 404 {object} dto.ErrorResponse "Category or parent category not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.RespondBindingError(ctx, err)
		return
	}

	updated, err := c.categoryService.UpdateCategory(ctx, &models.Category{
		CategoryID:       id,
		Name:             req.Name,
		Description:      req.Description,
		ParentCategoryID: req.ParentCategoryID,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FromCategory(updated)))
}

// DeleteCategory removes a leaf category
// @Summary Delete a category
// @Description Deletes a category with no subcategories and no attached errands or offerings
// @Tags categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 204 "Category deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid category ID"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Failure 409 {object} dto.ErrorResponse "Category still has subcategories or references"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.categoryService.DeleteCategory(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
