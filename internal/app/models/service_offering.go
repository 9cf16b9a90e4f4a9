package models

import "time"

// ServiceOffering represents a standing service a provider advertises
type ServiceOffering struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	PriceRange     float64   `json:"priceRange"`
	Location       string    `json:"location"`
	CategoryID     int64     `json:"categoryId"`
	ProviderID     int64     `json:"providerId"`
	CreatedDate    time.Time `json:"createdDate"`
	CompletedTasks int       `json:"completedTasks"`

	// AverageRating is derived from the offering's reviews, never stored.
	AverageRating float64 `json:"averageRating"`

	// Relations
	Category *Category `json:"category,omitempty"`
	Images   []Image   `json:"images,omitempty"`
}
