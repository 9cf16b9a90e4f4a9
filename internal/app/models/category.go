package models

// Category classifies errands and service offerings. Categories may form a
// tree via ParentCategoryID; root categories have no parent.
type Category struct {
	CategoryID       int64  `json:"categoryId"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ParentCategoryID *int64 `json:"parentCategoryId,omitempty"`

	// Relations
	Image         *Image     `json:"image,omitempty"`
	Subcategories []Category `json:"subcategories,omitempty"`
}
