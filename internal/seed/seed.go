package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/dowadream/errand-service/internal/app/models"
	appRepos "github.com/dowadream/errand-service/internal/app/repositories"
)

// defaultCategories are the root categories plus their subcategories,
// created on first startup so listings have something to hang off
var defaultCategories = map[string][]string{
	"Delivery": {"Food Delivery", "Parcel Delivery", "Grocery Shopping"},
	"Cleaning": {"Home Cleaning", "Office Cleaning"},
	"Moving":   {"Small Moves", "Furniture Assembly"},
	"Pet Care": {"Dog Walking", "Pet Sitting"},
	"Repairs":  {},
}

// CreateDefaultData seeds the default category tree when the table is empty.
// An already populated database is left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	categoryRepo := appRepos.NewCategoryRepository(dbPool)

	existing, err := categoryRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing categories: %w", err)
	}
	if len(existing) > 0 {
		lgr.Debug().Int("count", len(existing)).Msg("Categories already present, skipping seed")
		return nil
	}

	lgr.Info().Msg("Seeding default categories...")
	for rootName, childNames := range defaultCategories {
		root := &appModels.Category{Name: rootName}
		if err := categoryRepo.Create(ctx, root); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", rootName, err)
		}

		for _, childName := range childNames {
			child := &appModels.Category{Name: childName, ParentCategoryID: &root.CategoryID}
			if err := categoryRepo.Create(ctx, child); err != nil {
				return fmt.Errorf("failed to seed category %q: %w", childName, err)
			}
		}
	}

	lgr.Info().Msg("Default categories created")
	return nil
}
