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

// fakeReviewRepo is an in-memory reviewRepository
type fakeReviewRepo struct {
	reviews map[int64]*models.Review
	nextID  int64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[int64]*models.Review{}, nextID: 1}
}

func (f *fakeReviewRepo) Create(_ context.Context, review *models.Review) error {
	review.ID = f.nextID
	review.CreatedDate = time.Now()
	f.nextID++
	stored := *review
	f.reviews[review.ID] = &stored
	return nil
}

func (f *fakeReviewRepo) GetByID(_ context.Context, id int64) (*models.Review, error) {
	review, ok := f.reviews[id]
	if !ok {
		return nil, repositories.ErrReviewNotFound
	}
	copied := *review
	return &copied, nil
}

func (f *fakeReviewRepo) GetByErrand(_ context.Context, errandSeq int64, page, pageSize int) ([]models.Review, int64, error) {
	matched := []models.Review{}
	for _, review := range f.reviews {
		if review.ErrandSeq != nil && *review.ErrandSeq == errandSeq {
			matched = append(matched, *review)
		}
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeReviewRepo) GetByServiceOffering(_ context.Context, offeringID int64, page, pageSize int) ([]models.Review, int64, error) {
	matched := []models.Review{}
	for _, review := range f.reviews {
		if review.ServiceOfferingID != nil && *review.ServiceOfferingID == offeringID {
			matched = append(matched, *review)
		}
	}
	return matched, int64(len(matched)), nil
}

func (f *fakeReviewRepo) Update(_ context.Context, review *models.Review) error {
	stored, ok := f.reviews[review.ID]
	if !ok {
		return repositories.ErrReviewNotFound
	}
	stored.Rating = review.Rating
	stored.Comments = review.Comments
	return nil
}

func (f *fakeReviewRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.reviews[id]; !ok {
		return repositories.ErrReviewNotFound
	}
	delete(f.reviews, id)
	return nil
}

func (f *fakeReviewRepo) AverageForErrand(ctx context.Context, errandSeq int64) (float64, error) {
	reviews, _, _ := f.GetByErrand(ctx, errandSeq, 0, 0)
	return averageRating(reviews), nil
}

func (f *fakeReviewRepo) AverageForServiceOffering(ctx context.Context, offeringID int64) (float64, error) {
	reviews, _, _ := f.GetByServiceOffering(ctx, offeringID, 0, 0)
	return averageRating(reviews), nil
}

func averageRating(reviews []models.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// fakeErrandReader answers existence checks from a fixed set of IDs
type fakeErrandReader struct {
	ids map[int64]bool
}

func (f *fakeErrandReader) GetByID(_ context.Context, id int64) (*models.Errand, error) {
	if !f.ids[id] {
		return nil, repositories.ErrErrandNotFound
	}
	return &models.Errand{ErrandSeq: id}, nil
}

// fakeOfferingReader answers existence checks from a fixed set of IDs
type fakeOfferingReader struct {
	ids map[int64]bool
}

func (f *fakeOfferingReader) GetByID(_ context.Context, id int64) (*models.ServiceOffering, error) {
	if !f.ids[id] {
		return nil, repositories.ErrServiceOfferingNotFound
	}
	return &models.ServiceOffering{ID: id}, nil
}

func newReviewService(repo *fakeReviewRepo, errandIDs, offeringIDs []int64) *ReviewService {
	errands := map[int64]bool{}
	for _, id := range errandIDs {
		errands[id] = true
	}
	offerings := map[int64]bool{}
	for _, id := range offeringIDs {
		offerings[id] = true
	}
	return NewReviewService(repo, &fakeErrandReader{ids: errands}, &fakeOfferingReader{ids: offerings})
}

func int64Ref(v int64) *int64 { return &v }

func TestCreateReview_RequiresExactlyOneTarget(t *testing.T) {
	tests := []struct {
		name       string
		errandSeq  *int64
		offeringID *int64
		wantErr    error
	}{
		{"errand target", int64Ref(1), nil, nil},
		{"offering target", nil, int64Ref(1), nil},
		{"both targets", int64Ref(1), int64Ref(1), apperrors.ErrReviewTargetAmbiguous},
		{"no target", nil, nil, apperrors.ErrReviewTargetAmbiguous},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeReviewRepo()
			svc := newReviewService(repo, []int64{1}, []int64{1})

			review := &models.Review{
				ReviewerID:        5,
				Rating:            4,
				Comments:          "quick and careful",
				ErrandSeq:         tt.errandSeq,
				ServiceOfferingID: tt.offeringID,
			}

			err := svc.CreateReview(context.Background(), review)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.reviews)
				return
			}
			require.NoError(t, err)
			assert.NotZero(t, review.ID)
		})
	}
}

func TestCreateReview_RatingBounds(t *testing.T) {
	for _, rating := range []int{0, -1, 6} {
		repo := newFakeReviewRepo()
		svc := newReviewService(repo, []int64{1}, nil)

		err := svc.CreateReview(context.Background(), &models.Review{
			ReviewerID: 5,
			Rating:     rating,
			ErrandSeq:  int64Ref(1),
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "rating %d", rating)
	}
}

func TestCreateReview_MissingTarget(t *testing.T) {
	svc := newReviewService(newFakeReviewRepo(), []int64{1}, []int64{1})

	err := svc.CreateReview(context.Background(), &models.Review{
		ReviewerID: 5,
		Rating:     4,
		ErrandSeq:  int64Ref(404),
	})
	assert.ErrorIs(t, err, apperrors.ErrErrandNotFound)

	err = svc.CreateReview(context.Background(), &models.Review{
		ReviewerID:        5,
		Rating:            4,
		ServiceOfferingID: int64Ref(404),
	})
	assert.ErrorIs(t, err, apperrors.ErrServiceOfferingNotFound)
}

func TestGetReviewsByErrand_AverageRating(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := newReviewService(repo, []int64{1}, nil)

	for _, rating := range []int{5, 4, 4} {
		require.NoError(t, svc.CreateReview(context.Background(), &models.Review{
			ReviewerID: 5,
			Rating:     rating,
			ErrandSeq:  int64Ref(1),
		}))
	}

	reviews, average, pagination, err := svc.GetReviewsByErrand(context.Background(), 1, 0, 10)
	require.NoError(t, err)
	assert.Len(t, reviews, 3)
	assert.InDelta(t, 13.0/3.0, average, 1e-9)
	assert.Equal(t, int64(3), pagination.TotalItems)
}

func TestGetReviewsByErrand_NoReviewsAveragesZero(t *testing.T) {
	svc := newReviewService(newFakeReviewRepo(), []int64{1}, nil)

	reviews, average, pagination, err := svc.GetReviewsByErrand(context.Background(), 1, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, reviews)
	assert.Zero(t, average)
	assert.Zero(t, pagination.TotalItems)
}

func TestUpdateReview(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := newReviewService(repo, []int64{1}, nil)

	review := &models.Review{ReviewerID: 5, Rating: 2, Comments: "late", ErrandSeq: int64Ref(1)}
	require.NoError(t, svc.CreateReview(context.Background(), review))

	updated, err := svc.UpdateReview(context.Background(), review.ID, 4, "made up for it")
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "made up for it", updated.Comments)

	// The target stays pinned to the original errand
	require.NotNil(t, updated.ErrandSeq)
	assert.Equal(t, int64(1), *updated.ErrandSeq)
}

func TestUpdateReview_RatingBounds(t *testing.T) {
	repo := newFakeReviewRepo()
	svc := newReviewService(repo, []int64{1}, nil)

	review := &models.Review{ReviewerID: 5, Rating: 3, ErrandSeq: int64Ref(1)}
	require.NoError(t, svc.CreateReview(context.Background(), review))

	_, err := svc.UpdateReview(context.Background(), review.ID, 6, "")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestDeleteReview_NotFound(t *testing.T) {
	svc := newReviewService(newFakeReviewRepo(), nil, nil)

	err := svc.DeleteReview(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrReviewNotFound)
}
