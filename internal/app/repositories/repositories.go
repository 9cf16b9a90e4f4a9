package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	CategoryRepository        *CategoryRepository
	ErrandRepository          *ErrandRepository
	ServiceOfferingRepository *ServiceOfferingRepository
	ReviewRepository          *ReviewRepository
	ImageRepository           *ImageRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		CategoryRepository:        NewCategoryRepository(db),
		ErrandRepository:          NewErrandRepository(db),
		ServiceOfferingRepository: NewServiceOfferingRepository(db),
		ReviewRepository:          NewReviewRepository(db),
		ImageRepository:           NewImageRepository(db),
	}
}
