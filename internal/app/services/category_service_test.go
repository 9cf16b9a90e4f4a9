package services

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dowadream/errand-service/internal/app/models"
	"github.com/dowadream/errand-service/internal/app/repositories"
	"github.com/dowadream/errand-service/internal/pkg/apperrors"
)

// fakeCategoryRepo is an in-memory categoryRepository
type fakeCategoryRepo struct {
	categories map[int64]*models.Category
	nextID     int64
	inUse      map[int64]bool // categories referenced by errands or offerings
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{
		categories: map[int64]*models.Category{},
		nextID:     1,
		inUse:      map[int64]bool{},
	}
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *models.Category) error {
	category.CategoryID = f.nextID
	f.nextID++
	stored := *category
	f.categories[category.CategoryID] = &stored
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*models.Category, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, repositories.ErrCategoryNotFound
	}
	copied := *category
	return &copied, nil
}

func (f *fakeCategoryRepo) GetAll(_ context.Context) ([]models.Category, error) {
	all := []models.Category{}
	for _, category := range f.categories {
		all = append(all, *category)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CategoryID < all[j].CategoryID })
	return all, nil
}

func (f *fakeCategoryRepo) HasChildren(_ context.Context, id int64) (bool, error) {
	for _, category := range f.categories {
		if category.ParentCategoryID != nil && *category.ParentCategoryID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *models.Category) error {
	if _, ok := f.categories[category.CategoryID]; !ok {
		return repositories.ErrCategoryNotFound
	}
	stored := *category
	f.categories[category.CategoryID] = &stored
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.categories[id]; !ok {
		return repositories.ErrCategoryNotFound
	}
	if f.inUse[id] {
		return repositories.ErrCategoryInUse
	}
	delete(f.categories, id)
	return nil
}

type fakeCategoryImageReader struct{}

func (f *fakeCategoryImageReader) GetByCategory(context.Context, int64) ([]models.Image, error) {
	return nil, nil
}

func newCategoryService(repo *fakeCategoryRepo) *CategoryService {
	return NewCategoryService(repo, &fakeCategoryImageReader{})
}

// seedCategory inserts a category directly into the fake
func seedCategory(t *testing.T, repo *fakeCategoryRepo, name string, parentID *int64) int64 {
	t.Helper()
	category := &models.Category{Name: name, ParentCategoryID: parentID}
	require.NoError(t, repo.Create(context.Background(), category))
	return category.CategoryID
}

func TestCreateCategory(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newCategoryService(repo)

	root := &models.Category{Name: "Delivery", Description: "Pickups and dropoffs"}
	require.NoError(t, svc.CreateCategory(context.Background(), root))
	assert.NotZero(t, root.CategoryID)

	child := &models.Category{Name: "Food Delivery", ParentCategoryID: &root.CategoryID}
	require.NoError(t, svc.CreateCategory(context.Background(), child))
}

func TestCreateCategory_MissingParent(t *testing.T) {
	svc := newCategoryService(newFakeCategoryRepo())

	missing := int64(99)
	err := svc.CreateCategory(context.Background(), &models.Category{Name: "Orphan", ParentCategoryID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
}

func TestCreateCategory_Validation(t *testing.T) {
	svc := newCategoryService(newFakeCategoryRepo())

	err := svc.CreateCategory(context.Background(), &models.Category{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGetCategoryTree(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newCategoryService(repo)

	delivery := seedCategory(t, repo, "Delivery", nil)
	cleaning := seedCategory(t, repo, "Cleaning", nil)
	food := seedCategory(t, repo, "Food Delivery", &delivery)
	seedCategory(t, repo, "Late Night Food", &food)
	seedCategory(t, repo, "Parcel Delivery", &delivery)

	tree, err := svc.GetCategoryTree(context.Background())
	require.NoError(t, err)
	require.Len(t, tree, 2)

	assert.Equal(t, delivery, tree[0].CategoryID)
	assert.Equal(t, cleaning, tree[1].CategoryID)
	require.Len(t, tree[0].Subcategories, 2)
	assert.Equal(t, "Food Delivery", tree[0].Subcategories[0].Name)
	assert.Equal(t, "Parcel Delivery", tree[0].Subcategories[1].Name)

	// Grandchildren come along with their parent
	require.Len(t, tree[0].Subcategories[0].Subcategories, 1)
	assert.Equal(t, "Late Night Food", tree[0].Subcategories[0].Subcategories[0].Name)
	assert.Empty(t, tree[1].Subcategories)
}

func TestUpdateCategory_Reparent(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newCategoryService(repo)

	delivery := seedCategory(t, repo, "Delivery", nil)
	cleaning := seedCategory(t, repo, "Cleaning", nil)
	food := seedCategory(t, repo, "Food Delivery", &delivery)

	updated, err := svc.UpdateCategory(context.Background(), &models.Category{
		CategoryID:       food,
		Name:             "Food Delivery",
		ParentCategoryID: &cleaning,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ParentCategoryID)
	assert.Equal(t, cleaning, *updated.ParentCategoryID)
}

func TestUpdateCategory_RejectsSelfParent(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newCategoryService(repo)

	delivery := seedCategory(t, repo, "Delivery", nil)

	_, err := svc.UpdateCategory(context.Background(), &models.Category{
		CategoryID:       delivery,
		Name:             "Delivery",
		ParentCategoryID: &delivery,
	})
	assert.ErrorIs(t, err, apperrors.ErrCategoryCycle)
}

func TestUpdateCategory_RejectsDescendantParent(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newCategoryService(repo)

	delivery := seedCategory(t, repo, "Delivery", nil)
	food := seedCategory(t, repo, "Food Delivery", &delivery)
	lateNight := seedCategory(t, repo, "Late Night Food", &food)

	_, err := svc.UpdateCategory(context.Background(), &models.Category{
		CategoryID:       delivery,
		Name:             "Delivery",
		ParentCategoryID: &lateNight,
	})
	assert.ErrorIs(t, err, apperrors.ErrCategoryCycle)
}

func TestUpdateCategory_MissingParent(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newCategoryService(repo)

	delivery := seedCategory(t, repo, "Delivery", nil)
	missing := int64(99)

	_, err := svc.UpdateCategory(context.Background(), &models.Category{
		CategoryID:       delivery,
		Name:             "Delivery",
		ParentCategoryID: &missing,
	})
	assert.ErrorIs(t, err, apperrors.ErrCategoryNotFound)
}

func TestDeleteCategory_RejectsNonLeaf(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newCategoryService(repo)

	delivery := seedCategory(t, repo, "Delivery", nil)
	seedCategory(t, repo, "Food Delivery", &delivery)

	err := svc.DeleteCategory(context.Background(), delivery)
	assert.ErrorIs(t, err, apperrors.ErrCategoryHasChildren)
	_, getErr := repo.GetByID(context.Background(), delivery)
	assert.NoError(t, getErr)
}

func TestDeleteCategory_RejectsReferenced(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newCategoryService(repo)

	delivery := seedCategory(t, repo, "Delivery", nil)
	repo.inUse[delivery] = true

	err := svc.DeleteCategory(context.Background(), delivery)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestDeleteCategory_Leaf(t *testing.T) {
	repo := newFakeCategoryRepo()
	svc := newCategoryService(repo)

	delivery := seedCategory(t, repo, "Delivery", nil)
	food := seedCategory(t, repo, "Food Delivery", &delivery)

	require.NoError(t, svc.DeleteCategory(context.Background(), food))
	_, err := repo.GetByID(context.Background(), food)
	assert.ErrorIs(t, err, repositories.ErrCategoryNotFound)
}
