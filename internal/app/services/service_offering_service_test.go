package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dowadream/errand-service/internal/app/models"
	"github.com/dowadream/errand-service/internal/app/repositories"
	"github.com/dowadream/errand-service/internal/pkg/apperrors"
)

// fakeOfferingRepo is an in-memory offeringRepository
type fakeOfferingRepo struct {
	offerings map[int64]*models.ServiceOffering
	nextID    int64
}

func newFakeOfferingRepo() *fakeOfferingRepo {
	return &fakeOfferingRepo{offerings: map[int64]*models.ServiceOffering{}, nextID: 1}
}

func (f *fakeOfferingRepo) Create(_ context.Context, offering *models.ServiceOffering) error {
	offering.ID = f.nextID
	offering.CreatedDate = time.Now()
	f.nextID++
	stored := *offering
	f.offerings[offering.ID] = &stored
	return nil
}

func (f *fakeOfferingRepo) GetByID(_ context.Context, id int64) (*models.ServiceOffering, error) {
	offering, ok := f.offerings[id]
	if !ok {
		return nil, repositories.ErrServiceOfferingNotFound
	}
	copied := *offering
	return &copied, nil
}

func (f *fakeOfferingRepo) GetAll(_ context.Context, page, pageSize int) ([]models.ServiceOffering, int64, error) {
	all := []models.ServiceOffering{}
	for _, offering := range f.offerings {
		all = append(all, *offering)
	}
	return all, int64(len(all)), nil
}

func (f *fakeOfferingRepo) GetByCategory(_ context.Context, categoryID int64, page, pageSize int) ([]models.ServiceOffering, int64, error) {
	matched := []models.ServiceOffering{}
	for _, offering := range f.offerings {
		if offering.CategoryID == categoryID {
			matched = append(matched, *offering)
		}
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeOfferingRepo) GetFiltered(ctx context.Context, filter repositories.OfferingFilter) ([]models.ServiceOffering, int64, error) {
	return f.GetAll(ctx, filter.Page, filter.PageSize)
}

func (f *fakeOfferingRepo) Update(_ context.Context, offering *models.ServiceOffering) error {
	if _, ok := f.offerings[offering.ID]; !ok {
		return repositories.ErrServiceOfferingNotFound
	}
	stored := *offering
	f.offerings[offering.ID] = &stored
	return nil
}

func (f *fakeOfferingRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.offerings[id]; !ok {
		return repositories.ErrServiceOfferingNotFound
	}
	delete(f.offerings, id)
	return nil
}

func (f *fakeOfferingRepo) IncrementCompletedTasks(_ context.Context, id int64) (int, error) {
	offering, ok := f.offerings[id]
	if !ok {
		return 0, repositories.ErrServiceOfferingNotFound
	}
	offering.CompletedTasks++
	return offering.CompletedTasks, nil
}

type fakeOfferingImageReader struct{}

func (f *fakeOfferingImageReader) GetByServiceOffering(context.Context, int64) ([]models.Image, error) {
	return nil, nil
}

func newOfferingService(repo *fakeOfferingRepo, categoryIDs ...int64) *ServiceOfferingService {
	ids := map[int64]bool{}
	for _, id := range categoryIDs {
		ids[id] = true
	}
	return NewServiceOfferingService(repo, &fakeCategoryReader{ids: ids}, &fakeOfferingImageReader{})
}

func validOffering() *models.ServiceOffering {
	return &models.ServiceOffering{
		Title:       "Apartment deep clean",
		Description: "Full clean including windows",
		PriceRange:  80000,
		Location:    "Busan",
		CategoryID:  1,
		ProviderID:  9,
	}
}

func TestCreateOffering(t *testing.T) {
	repo := newFakeOfferingRepo()
	svc := newOfferingService(repo, 1)

	offering := validOffering()
	require.NoError(t, svc.CreateOffering(context.Background(), offering))
	assert.NotZero(t, offering.ID)
	assert.Zero(t, offering.CompletedTasks)
}

func TestCreateOffering_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.ServiceOffering)
	}{
		{"empty title", func(o *models.ServiceOffering) { o.Title = "" }},
		{"negative price", func(o *models.ServiceOffering) { o.PriceRange = -5 }},
		{"missing provider", func(o *models.ServiceOffering) { o.ProviderID = 0 }},
		{"empty location", func(o *models.ServiceOffering) { o.Location = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeOfferingRepo()
			svc := newOfferingService(repo, 1)

			offering := validOffering()
			tt.mutate(offering)

			err := svc.CreateOffering(context.Background(), offering)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Empty(t, repo.offerings)
		})
	}
}

func TestCreateOffering_UnknownCategory(t *testing.T) {
	svc := newOfferingService(newFakeOfferingRepo(), 1)

	offering := validOffering()
	offering.CategoryID = 99

	err := svc.CreateOffering(context.Background(), offering)
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
}

func TestCompleteTask_Increments(t *testing.T) {
	repo := newFakeOfferingRepo()
	svc := newOfferingService(repo, 1)

	offering := validOffering()
	require.NoError(t, svc.CreateOffering(context.Background(), offering))

	for want := 1; want <= 3; want++ {
		completed, err := svc.CompleteTask(context.Background(), offering.ID)
		require.NoError(t, err)
		assert.Equal(t, want, completed)
	}
}

func TestCompleteTask_NotFound(t *testing.T) {
	svc := newOfferingService(newFakeOfferingRepo(), 1)

	_, err := svc.CompleteTask(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrServiceOfferingNotFound)
}

func TestGetFilteredOfferings_UnknownSortKey(t *testing.T) {
	svc := newOfferingService(newFakeOfferingRepo(), 1)

	_, _, err := svc.GetFilteredOfferings(context.Background(), repositories.OfferingFilter{
		SortBy:   "newest",
		PageSize: 10,
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestUpdateOffering_KeepsDerivedFields(t *testing.T) {
	repo := newFakeOfferingRepo()
	svc := newOfferingService(repo, 1, 2)

	offering := validOffering()
	require.NoError(t, svc.CreateOffering(context.Background(), offering))
	_, err := svc.CompleteTask(context.Background(), offering.ID)
	require.NoError(t, err)

	patch := validOffering()
	patch.ID = offering.ID
	patch.Title = "Office deep clean"
	patch.CategoryID = 2

	updated, err := svc.UpdateOffering(context.Background(), patch)
	require.NoError(t, err)
	assert.Equal(t, "Office deep clean", updated.Title)
	assert.Equal(t, int64(2), updated.CategoryID)
	assert.Equal(t, 1, updated.CompletedTasks)
}

func TestDeleteOffering_NotFound(t *testing.T) {
	svc := newOfferingService(newFakeOfferingRepo(), 1)

	err := svc.DeleteOffering(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrServiceOfferingNotFound)
}

func TestGetOfferingsByCategory_UnknownCategoryIsEmpty(t *testing.T) {
	repo := newFakeOfferingRepo()
	svc := newOfferingService(repo, 1)
	require.NoError(t, svc.CreateOffering(context.Background(), validOffering()))

	offerings, pagination, err := svc.GetOfferingsByCategory(context.Background(), 999, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, offerings)
	assert.Equal(t, int64(0), pagination.TotalItems)
}
