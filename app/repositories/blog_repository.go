package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Rakhulsr/general-equipments/app/models"
	"gorm.io/gorm"
)

type BlogRepositoryImpl interface {
	GetPublished(ctx context.Context, now time.Time) ([]models.BlogPost, error)
	GetPublishedBySlug(ctx context.Context, slug string, now time.Time) (*models.BlogPost, error)
	GetRelated(ctx context.Context, excludeID string, now time.Time, limit int) ([]models.BlogPost, error)
	Search(ctx context.Context, keyword string) ([]models.BlogPost, error)
	GetByID(ctx context.Context, id string) (*models.BlogPost, error)
	Create(ctx context.Context, post *models.BlogPost) error
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

func NewBlogRepository(db *gorm.DB) BlogRepositoryImpl {
	return &blogRepository{db: db}
}

func (r *blogRepository) published(ctx context.Context, now time.Time) *gorm.DB {
	return r.db.WithContext(ctx).
		Where("is_published = ? AND publish_date <= ?", true, now.UTC())
}

func (r *blogRepository) GetPublished(ctx context.Context, now time.Time) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	if err := r.published(ctx, now).Order("publish_date DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *blogRepository) GetPublishedBySlug(ctx context.Context, slug string, now time.Time) (*models.BlogPost, error) {
	var post models.BlogPost
	err := r.published(ctx, now).Where("slug = ?", slug).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) GetRelated(ctx context.Context, excludeID string, now time.Time, limit int) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	err := r.published(ctx, now).
		Where("id <> ?", excludeID).
		Order("publish_date DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// Search lists every post, published or not, newest first. A keyword matches
// the title or the author.
func (r *blogRepository) Search(ctx context.Context, keyword string) ([]models.BlogPost, error) {
	var posts []models.BlogPost
	q := r.db.WithContext(ctx)
	if strings.TrimSpace(keyword) != "" {
		pattern := likePattern(keyword)
		q = q.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ?", pattern, pattern)
	}
	if err := q.Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *blogRepository) GetByID(ctx context.Context, id string) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (r *blogRepository) Create(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *blogRepository) Update(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *blogRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.BlogPost{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *blogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BlogPost{}).Count(&count).Error
	return count, err
}
