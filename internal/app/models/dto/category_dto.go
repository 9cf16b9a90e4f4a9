package dto

import "github.com/dowadream/errand-service/internal/app/models"

// CreateCategoryRequest represents the request to create a category
type CreateCategoryRequest struct {
	Name             string `json:"name" binding:"required,max=50"`
	Description      string `json:"description" binding:"max=255"`
	ParentCategoryID *int64 `json:"parentCategoryId" binding:"omitempty,min=1"`
}

// ToModel converts the request into a category model
func (r *CreateCategoryRequest) ToModel() *models.Category {
	return &models.Category{
		Name:             r.Name,
		Description:      r.Description,
		ParentCategoryID: r.ParentCategoryID,
	}
}

// UpdateCategoryRequest represents the request to update a category
type UpdateCategoryRequest struct {
	Name             string `json:"name" binding:"required,max=50"`
	Description      string `json:"description" binding:"max=255"`
	ParentCategoryID *int64 `json:"parentCategoryId" binding:"omitempty,min=1"`
}

// CategoryResponse represents a category in API responses. Subcategories
// are populated only by the tree endpoint.
type CategoryResponse struct {
	CategoryID       int64              `json:"categoryId"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	ParentCategoryID *int64             `json:"parentCategoryId,omitempty"`
	Image            *ImageResponse     `json:"image,omitempty"`
	Subcategories    []CategoryResponse `json:"subcategories,omitempty"`
}

// FromCategory converts a category model to its response form
func FromCategory(category *models.Category) CategoryResponse {
	if category == nil {
		return CategoryResponse{}
	}

	response := CategoryResponse{
		CategoryID:       category.CategoryID,
		Name:             category.Name,
		Description:      category.Description,
		ParentCategoryID: category.ParentCategoryID,
	}

	if category.Image != nil {
		image := FromImage(category.Image)
		response.Image = &image
	}
	for i := range category.Subcategories {
		response.Subcategories = append(response.Subcategories, FromCategory(&category.Subcategories[i]))
	}

	return response
}

// FromCategories converts a slice of category models to response form
func FromCategories(categories []models.Category) []CategoryResponse {
	responses := make([]CategoryResponse, 0, len(categories))
	for i := range categories {
		responses = append(responses, FromCategory(&categories[i]))
	}
	return responses
}
