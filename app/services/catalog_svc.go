package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"go.uber.org/zap"
)

const (
	relatedProductsLimit = 3
	relatedPostsLimit    = 3
)

type ProductListing struct {
	Products   []models.Product
	Categories []models.ProductCategory
	// Current is nil when the listing is unscoped, including when the
	// requested slug matched no active category.
	Current *models.ProductCategory
}

type BlogListing struct {
	Featured *models.BlogPost
	Recent   []models.BlogPost
}

// CatalogService answers every public content query. Nothing is cached; each
// call goes to the database.
type CatalogService struct {
	categories repositories.CategoryRepositoryImpl
	products   repositories.ProductRepositoryImpl
	posts      repositories.BlogRepositoryImpl
	settings   repositories.SettingRepositoryImpl
	log        *zap.Logger
	now        func() time.Time
}

func NewCatalogService(
	categories repositories.CategoryRepositoryImpl,
	products repositories.ProductRepositoryImpl,
	posts repositories.BlogRepositoryImpl,
	settings repositories.SettingRepositoryImpl,
	log *zap.Logger,
) *CatalogService {
	return &CatalogService{
		categories: categories,
		products:   products,
		posts:      posts,
		settings:   settings,
		log:        log,
		now:        time.Now,
	}
}

// WithClock replaces the clock used for publish date checks.
func (s *CatalogService) WithClock(now func() time.Time) *CatalogService {
	s.now = now
	return s
}

func (s *CatalogService) Categories(ctx context.Context) ([]models.ProductCategory, error) {
	return s.categories.GetActive(ctx)
}

func (s *CatalogService) Products(ctx context.Context, categorySlug string) (*ProductListing, error) {
	categories, err := s.categories.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	listing := &ProductListing{Categories: categories}

	var categoryID *string
	if categorySlug != "" {
		category, err := s.categories.GetActiveBySlug(ctx, categorySlug)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve category %q: %w", categorySlug, err)
		}
		if category != nil {
			listing.Current = category
			categoryID = &category.ID
		} else {
			s.log.Debug("unknown category slug, listing all products", zap.String("slug", categorySlug))
		}
	}

	products, err := s.products.GetActive(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	listing.Products = products
	return listing, nil
}

func (s *CatalogService) ProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	product, err := s.products.GetActiveBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

func (s *CatalogService) RelatedProducts(ctx context.Context, product *models.Product) ([]models.Product, error) {
	if product.CategoryID == nil || *product.CategoryID == "" {
		return nil, nil
	}
	return s.products.GetRelated(ctx, *product.CategoryID, product.ID, relatedProductsLimit)
}

func (s *CatalogService) FeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	return s.products.GetFeatured(ctx, limit)
}

func (s *CatalogService) BlogListing(ctx context.Context) (*BlogListing, error) {
	posts, err := s.posts.GetPublished(ctx, s.now())
	if err != nil {
		return nil, err
	}
	listing := &BlogListing{Recent: []models.BlogPost{}}
	if len(posts) > 0 {
		listing.Featured = &posts[0]
		listing.Recent = posts[1:]
	}
	return listing, nil
}

func (s *CatalogService) PostBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.posts.GetPublishedBySlug(ctx, slug, s.now())
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *CatalogService) RelatedPosts(ctx context.Context, post *models.BlogPost) ([]models.BlogPost, error) {
	return s.posts.GetRelated(ctx, post.ID, s.now(), relatedPostsLimit)
}

// SiteSettings returns every stored setting with a value.
func (s *CatalogService) SiteSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.settings.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.Value != nil {
			out[row.Key] = *row.Value
		}
	}
	return out, nil
}
