package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/Rakhulsr/general-equipments/app/models"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	GetActive(ctx context.Context, categoryID *string) ([]models.Product, error)
	GetActiveBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetRelated(ctx context.Context, categoryID, excludeID string, limit int) ([]models.Product, error)
	GetFeatured(ctx context.Context, limit int) ([]models.Product, error)
	Search(ctx context.Context, keyword string) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) GetActive(ctx context.Context, categoryID *string) ([]models.Product, error) {
	var products []models.Product
	q := p.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ?", true)
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if err := q.Order("name ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) GetActiveBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetRelated(ctx context.Context, categoryID, excludeID string, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		Where("category_id = ? AND is_active = ? AND id <> ?", categoryID, true, excludeID).
		Order("name ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) GetFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Preload("Category").
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("name ASC").
		Limit(limit).
		Find(&products).Error
	return products, err
}

// Search lists every product, active or not, newest first. A keyword matches
// the product name or its category name.
func (p *productRepository) Search(ctx context.Context, keyword string) ([]models.Product, error) {
	var products []models.Product
	q := p.db.WithContext(ctx).Preload("Category")
	if strings.TrimSpace(keyword) != "" {
		pattern := likePattern(keyword)
		q = q.Where(
			"LOWER(products.name) LIKE ? OR products.category_id IN (?)",
			pattern,
			p.db.Model(&models.ProductCategory{}).Select("id").Where("LOWER(name) LIKE ?", pattern),
		)
	}
	if err := q.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit("Category").Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit("Category").Save(product).Error
}

func (p *productRepository) Delete(ctx context.Context, id string) error {
	res := p.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (p *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (p *productRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
