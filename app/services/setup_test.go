package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rakhulsr/general-equipments/app/db/testdb"
	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type repos struct {
	db         *gorm.DB
	categories repositories.CategoryRepositoryImpl
	products   repositories.ProductRepositoryImpl
	posts      repositories.BlogRepositoryImpl
	leads      repositories.LeadRepositoryImpl
	bookings   repositories.BookingRepositoryImpl
	settings   repositories.SettingRepositoryImpl
	users      repositories.UserRepositoryImpl
}

func newRepos(t *testing.T) *repos {
	t.Helper()
	db := testdb.New(t)
	return &repos{
		db:         db,
		categories: repositories.NewCategoryRepository(db),
		products:   repositories.NewProductRepository(db),
		posts:      repositories.NewBlogRepository(db),
		leads:      repositories.NewLeadRepository(db),
		bookings:   repositories.NewBookingRepository(db),
		settings:   repositories.NewSettingRepository(db),
		users:      repositories.NewUserRepository(db),
	}
}

func strPtr(s string) *string { return &s }

func seedCategory(t *testing.T, r *repos, name string, parentID *string) *models.ProductCategory {
	t.Helper()
	c := &models.ProductCategory{
		Name:     name,
		Slug:     helpers.GenerateSlug(name),
		ParentID: parentID,
		IsActive: true,
	}
	require.NoError(t, r.categories.Create(context.Background(), c))
	return c
}

func seedProduct(t *testing.T, r *repos, name string, categoryID *string, active bool) *models.Product {
	t.Helper()
	p := &models.Product{
		Name:       name,
		Slug:       helpers.GenerateSlug(name),
		CategoryID: categoryID,
		IsActive:   true,
	}
	require.NoError(t, r.products.Create(context.Background(), p))
	if !active {
		require.NoError(t, r.db.Model(p).Update("is_active", false).Error)
	}
	return p
}

func seedPost(t *testing.T, r *repos, title string, publishedAt time.Time, published bool) *models.BlogPost {
	t.Helper()
	p := &models.BlogPost{
		Title:       title,
		Slug:        helpers.GenerateSlug(title),
		PublishDate: publishedAt,
		IsPublished: true,
	}
	require.NoError(t, r.posts.Create(context.Background(), p))
	if !published {
		require.NoError(t, r.db.Model(p).Update("is_published", false).Error)
	}
	return p
}

// -- Mocks --

type mirrorMock struct {
	mock.Mock
}

func (m *mirrorMock) Forward(ctx context.Context, record map[string]string) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

var errStorageDown = errors.New("storage unavailable")

type failingLeadRepo struct {
	repositories.LeadRepositoryImpl
}

func (failingLeadRepo) Create(context.Context, *models.Lead) error { return errStorageDown }

type failingBookingRepo struct {
	repositories.BookingRepositoryImpl
}

func (failingBookingRepo) Create(context.Context, *models.BookingRequest) error {
	return errStorageDown
}

func nopLogger() *zap.Logger { return zap.NewNop() }
