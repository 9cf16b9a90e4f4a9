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

// fakeErrandRepo is an in-memory errandRepository
type fakeErrandRepo struct {
	errands map[int64]*models.Errand
	nextID  int64
}

func newFakeErrandRepo() *fakeErrandRepo {
	return &fakeErrandRepo{errands: map[int64]*models.Errand{}, nextID: 1}
}

func (f *fakeErrandRepo) Create(_ context.Context, errand *models.Errand) error {
	errand.ErrandSeq = f.nextID
	errand.CreatedDate = time.Now()
	errand.UpdatedDate = errand.CreatedDate
	f.nextID++
	stored := *errand
	f.errands[errand.ErrandSeq] = &stored
	return nil
}

func (f *fakeErrandRepo) GetByID(_ context.Context, id int64) (*models.Errand, error) {
	errand, ok := f.errands[id]
	if !ok {
		return nil, repositories.ErrErrandNotFound
	}
	copied := *errand
	return &copied, nil
}

func (f *fakeErrandRepo) GetAll(_ context.Context, page, pageSize int) ([]models.Errand, int64, error) {
	all := []models.Errand{}
	for _, errand := range f.errands {
		all = append(all, *errand)
	}
	total := int64(len(all))
	start := page * pageSize
	if start >= len(all) {
		return []models.Errand{}, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeErrandRepo) GetByCategory(ctx context.Context, categoryID int64, page, pageSize int) ([]models.Errand, int64, error) {
	matched := []models.Errand{}
	for _, errand := range f.errands {
		if errand.CategoryID == categoryID {
			matched = append(matched, *errand)
		}
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeErrandRepo) GetFiltered(ctx context.Context, filter repositories.ErrandFilter) ([]models.Errand, int64, error) {
	return f.GetAll(ctx, filter.Page, filter.PageSize)
}

func (f *fakeErrandRepo) Update(_ context.Context, errand *models.Errand) error {
	if _, ok := f.errands[errand.ErrandSeq]; !ok {
		return repositories.ErrErrandNotFound
	}
	stored := *errand
	f.errands[errand.ErrandSeq] = &stored
	return nil
}

func (f *fakeErrandRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.errands[id]; !ok {
		return repositories.ErrErrandNotFound
	}
	delete(f.errands, id)
	return nil
}

func (f *fakeErrandRepo) Mutate(_ context.Context, id int64, fn func(*models.Errand) error) (*models.Errand, error) {
	errand, ok := f.errands[id]
	if !ok {
		return nil, repositories.ErrErrandNotFound
	}
	copied := *errand
	if err := fn(&copied); err != nil {
		return nil, err
	}
	copied.UpdatedDate = time.Now()
	stored := copied
	f.errands[id] = &stored
	return &copied, nil
}

// fakeCategoryReader answers existence checks from a fixed set of IDs
type fakeCategoryReader struct {
	ids map[int64]bool
}

func (f *fakeCategoryReader) GetByID(_ context.Context, id int64) (*models.Category, error) {
	if !f.ids[id] {
		return nil, repositories.ErrCategoryNotFound
	}
	return &models.Category{CategoryID: id, Name: "category"}, nil
}

type fakeErrandImageReader struct{}

func (f *fakeErrandImageReader) GetByErrand(context.Context, int64) ([]models.Image, error) {
	return nil, nil
}

func newErrandService(repo *fakeErrandRepo, categoryIDs ...int64) *ErrandService {
	ids := map[int64]bool{}
	for _, id := range categoryIDs {
		ids[id] = true
	}
	svc := NewErrandService(repo, &fakeCategoryReader{ids: ids}, &fakeErrandImageReader{})
	svc.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func validErrand() *models.Errand {
	return &models.Errand{
		Title:             "Grocery run",
		Description:       "Weekly groceries from the corner market",
		RequesterSeq:      42,
		RequesterNickname: "minji",
		CategoryID:        1,
		Location:          "Seoul",
		Price:             15000,
		EstimatedTime:     45,
		Deadline:          time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
	}
}

func TestCreateErrand_DefaultsStatus(t *testing.T) {
	tests := []struct {
		name            string
		requestedStatus string
		want            models.ErrandStatus
	}{
		{"empty status", "", models.ErrandStatusRequested},
		{"unknown status", "SHIPPED", models.ErrandStatusRequested},
		{"lowercase known status", "in_progress", models.ErrandStatusInProgress},
		{"explicit requested", "REQUESTED", models.ErrandStatusRequested},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeErrandRepo()
			svc := newErrandService(repo, 1)

			errand := validErrand()
			err := svc.CreateErrand(context.Background(), errand, tt.requestedStatus)

			require.NoError(t, err)
			assert.Equal(t, tt.want, errand.Status)
			assert.Nil(t, errand.RunnerSeq)
		})
	}
}

func TestCreateErrand_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Errand)
	}{
		{"empty title", func(e *models.Errand) { e.Title = "" }},
		{"negative price", func(e *models.Errand) { e.Price = -1 }},
		{"zero estimated time", func(e *models.Errand) { e.EstimatedTime = 0 }},
		{"past deadline", func(e *models.Errand) { e.Deadline = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC) }},
		{"missing requester", func(e *models.Errand) { e.RequesterSeq = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeErrandRepo()
			svc := newErrandService(repo, 1)

			errand := validErrand()
			tt.mutate(errand)

			err := svc.CreateErrand(context.Background(), errand, "")
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Empty(t, repo.errands)
		})
	}
}

func TestCreateErrand_UnknownCategory(t *testing.T) {
	svc := newErrandService(newFakeErrandRepo(), 1)

	errand := validErrand()
	errand.CategoryID = 99

	err := svc.CreateErrand(context.Background(), errand, "")
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
}

func TestAcceptErrand(t *testing.T) {
	repo := newFakeErrandRepo()
	svc := newErrandService(repo, 1)

	errand := validErrand()
	require.NoError(t, svc.CreateErrand(context.Background(), errand, ""))

	accepted, err := svc.AcceptErrand(context.Background(), errand.ErrandSeq, 7, "runnerbee")
	require.NoError(t, err)
	assert.Equal(t, models.ErrandStatusInProgress, accepted.Status)
	require.NotNil(t, accepted.RunnerSeq)
	assert.Equal(t, int64(7), *accepted.RunnerSeq)
	require.NotNil(t, accepted.RunnerNickname)
	assert.Equal(t, "runnerbee", *accepted.RunnerNickname)
}

func TestAcceptErrand_OnlyOneWinner(t *testing.T) {
	repo := newFakeErrandRepo()
	svc := newErrandService(repo, 1)

	errand := validErrand()
	require.NoError(t, svc.CreateErrand(context.Background(), errand, ""))

	_, err := svc.AcceptErrand(context.Background(), errand.ErrandSeq, 7, "first")
	require.NoError(t, err)

	_, err = svc.AcceptErrand(context.Background(), errand.ErrandSeq, 8, "second")
	assert.ErrorIs(t, err, apperrors.ErrErrandNotAvailable)

	// The winner's assignment survives the losing attempt
	current, err := svc.GetErrandByID(context.Background(), errand.ErrandSeq)
	require.NoError(t, err)
	assert.Equal(t, "first", *current.RunnerNickname)
}

func TestAcceptErrand_NotFound(t *testing.T) {
	svc := newErrandService(newFakeErrandRepo(), 1)

	_, err := svc.AcceptErrand(context.Background(), 404, 7, "runner")
	assert.ErrorIs(t, err, apperrors.ErrErrandNotFound)
}

func TestUpdateErrandStatus_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		from    models.ErrandStatus
		to      string
		wantErr error
	}{
		{"requested to in progress", models.ErrandStatusRequested, "IN_PROGRESS", nil},
		{"requested to cancelled", models.ErrandStatusRequested, "CANCELLED", nil},
		{"in progress to completed", models.ErrandStatusInProgress, "COMPLETED", nil},
		{"in progress to cancelled", models.ErrandStatusInProgress, "CANCELLED", nil},
		{"requested to completed", models.ErrandStatusRequested, "COMPLETED", apperrors.ErrInvalidStatusTransition},
		{"completed is terminal", models.ErrandStatusCompleted, "IN_PROGRESS", apperrors.ErrInvalidStatusTransition},
		{"cancelled is terminal", models.ErrandStatusCancelled, "REQUESTED", apperrors.ErrInvalidStatusTransition},
		{"no self transition", models.ErrandStatusRequested, "REQUESTED", apperrors.ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeErrandRepo()
			svc := newErrandService(repo, 1)

			errand := validErrand()
			require.NoError(t, svc.CreateErrand(context.Background(), errand, ""))
			repo.errands[errand.ErrandSeq].Status = tt.from

			updated, err := svc.UpdateErrandStatus(context.Background(), errand.ErrandSeq, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, repo.errands[errand.ErrandSeq].Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, models.ErrandStatus(tt.to), updated.Status)
		})
	}
}

func TestUpdateErrandStatus_UnknownStatus(t *testing.T) {
	repo := newFakeErrandRepo()
	svc := newErrandService(repo, 1)

	errand := validErrand()
	require.NoError(t, svc.CreateErrand(context.Background(), errand, ""))

	_, err := svc.UpdateErrandStatus(context.Background(), errand.ErrandSeq, "DONE")
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGetFilteredErrands_UnknownSortKey(t *testing.T) {
	svc := newErrandService(newFakeErrandRepo(), 1)

	_, _, err := svc.GetFilteredErrands(context.Background(), repositories.ErrandFilter{
		SortBy:   "cheapest",
		PageSize: 10,
	})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGetAllErrands_PageValidation(t *testing.T) {
	svc := newErrandService(newFakeErrandRepo(), 1)

	_, _, err := svc.GetAllErrands(context.Background(), 0, 0)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)

	_, _, err = svc.GetAllErrands(context.Background(), -1, 10)
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}

func TestGetAllErrands_PastEndReturnsEmptyPage(t *testing.T) {
	repo := newFakeErrandRepo()
	svc := newErrandService(repo, 1)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.CreateErrand(context.Background(), validErrand(), ""))
	}

	errands, pagination, err := svc.GetAllErrands(context.Background(), 5, 10)
	require.NoError(t, err)
	assert.Empty(t, errands)
	assert.Equal(t, int64(3), pagination.TotalItems)
	assert.Equal(t, 1, pagination.TotalPages)
}

func TestUpdateErrand_KeepsLifecycleFields(t *testing.T) {
	repo := newFakeErrandRepo()
	svc := newErrandService(repo, 1, 2)

	errand := validErrand()
	require.NoError(t, svc.CreateErrand(context.Background(), errand, ""))
	_, err := svc.AcceptErrand(context.Background(), errand.ErrandSeq, 7, "runnerbee")
	require.NoError(t, err)

	patch := validErrand()
	patch.ErrandSeq = errand.ErrandSeq
	patch.Title = "Pharmacy run"
	patch.CategoryID = 2

	updated, err := svc.UpdateErrand(context.Background(), patch)
	require.NoError(t, err)
	assert.Equal(t, "Pharmacy run", updated.Title)
	assert.Equal(t, int64(2), updated.CategoryID)
	assert.Equal(t, models.ErrandStatusInProgress, updated.Status)
	require.NotNil(t, updated.RunnerSeq)
	assert.Equal(t, int64(7), *updated.RunnerSeq)
}

func TestDeleteErrand_NotFound(t *testing.T) {
	svc := newErrandService(newFakeErrandRepo(), 1)

	err := svc.DeleteErrand(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrErrandNotFound)
}

func TestErrandLifecycle(t *testing.T) {
	repo := newFakeErrandRepo()
	svc := newErrandService(repo, 1)

	errand := validErrand()
	require.NoError(t, svc.CreateErrand(context.Background(), errand, ""))
	assert.Equal(t, models.ErrandStatusRequested, errand.Status)

	accepted, err := svc.AcceptErrand(context.Background(), errand.ErrandSeq, 42, "bob")
	require.NoError(t, err)
	assert.Equal(t, models.ErrandStatusInProgress, accepted.Status)
	assert.Equal(t, int64(42), *accepted.RunnerSeq)

	_, err = svc.AcceptErrand(context.Background(), errand.ErrandSeq, 43, "alice")
	assert.ErrorIs(t, err, apperrors.ErrErrandNotAvailable)

	done, err := svc.UpdateErrandStatus(context.Background(), errand.ErrandSeq, "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, models.ErrandStatusCompleted, done.Status)
	assert.Equal(t, "bob", *done.RunnerNickname)

	_, err = svc.UpdateErrandStatus(context.Background(), errand.ErrandSeq, "IN_PROGRESS")
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)
}

func TestGetErrandsByCategory_UnknownCategoryIsEmpty(t *testing.T) {
	repo := newFakeErrandRepo()
	svc := newErrandService(repo, 1)
	require.NoError(t, svc.CreateErrand(context.Background(), validErrand(), ""))

	errands, pagination, err := svc.GetErrandsByCategory(context.Background(), 999, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, errands)
	assert.Equal(t, int64(0), pagination.TotalItems)
}
