package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrInUse is returned when deleting a category that still has children or
// products.
var ErrInUse = errors.New("record is still referenced")

// PublishDateLayouts are accepted for blog publish dates, most specific first.
var PublishDateLayouts = []string{"2006-01-02T15:04", "2006-01-02 15:04", "2006-01-02"}

type ProductInput struct {
	Name             string `form:"name" validate:"required,notblank,max=255"`
	Slug             string `form:"slug" validate:"omitempty,max=255,urlslug"`
	CategoryID       string `form:"category_id"`
	ShortDescription string `form:"short_description"`
	FullDescription  string `form:"full_description"`
	Specifications   string `form:"specifications"`
	FeaturedImage    string `form:"featured_image" validate:"omitempty,url"`
	GalleryImages    string `form:"gallery_images"`
	IsFeatured       bool   `form:"is_featured"`
	IsActive         bool   `form:"is_active"`
}

type CategoryInput struct {
	Name         string `form:"name" validate:"required,notblank,max=150"`
	Slug         string `form:"slug" validate:"omitempty,max=150,urlslug"`
	Description  string `form:"description"`
	ImageURL     string `form:"image_url" validate:"omitempty,url"`
	DisplayOrder string `form:"display_order" validate:"omitempty,number"`
	ParentID     string `form:"parent_id"`
	IsActive     bool   `form:"is_active"`
}

type PostInput struct {
	Title           string `form:"title" validate:"required,notblank,max=255"`
	Slug            string `form:"slug" validate:"omitempty,max=255,urlslug"`
	Excerpt         string `form:"excerpt"`
	Content         string `form:"content"`
	FeaturedImage   string `form:"featured_image" validate:"omitempty,url"`
	Author          string `form:"author" validate:"max=150"`
	PublishDate     string `form:"publish_date"`
	IsPublished     bool   `form:"is_published"`
	MetaTitle       string `form:"meta_title" validate:"max=255"`
	MetaDescription string `form:"meta_description" validate:"max=500"`
}

// ContentService owns back office edits of products, categories and posts.
type ContentService struct {
	products   repositories.ProductRepositoryImpl
	categories repositories.CategoryRepositoryImpl
	posts      repositories.BlogRepositoryImpl
	validate   *validator.Validate
	log        *zap.Logger
	now        func() time.Time
}

func NewContentService(
	products repositories.ProductRepositoryImpl,
	categories repositories.CategoryRepositoryImpl,
	posts repositories.BlogRepositoryImpl,
	validate *validator.Validate,
	log *zap.Logger,
) *ContentService {
	return &ContentService{
		products:   products,
		categories: categories,
		posts:      posts,
		validate:   validate,
		log:        log,
		now:        time.Now,
	}
}

func (s *ContentService) validateInput(in interface{}) (map[string]string, error) {
	fields, err := helpers.ValidateStruct(s.validate, in)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]string{}
	}
	return fields, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Products

func (s *ContentService) SearchProducts(ctx context.Context, keyword string) ([]models.Product, error) {
	return s.products.Search(ctx, keyword)
}

func (s *ContentService) Product(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// ProductInputFrom prefills the edit form from a stored product.
func ProductInputFrom(p *models.Product) ProductInput {
	specs := "{}"
	if len(p.Specifications) > 0 {
		specs = string(p.Specifications)
	}
	return ProductInput{
		Name:             p.Name,
		Slug:             p.Slug,
		CategoryID:       helpers.Deref(p.CategoryID),
		ShortDescription: helpers.Deref(p.ShortDescription),
		FullDescription:  helpers.Deref(p.FullDescription),
		Specifications:   specs,
		FeaturedImage:    helpers.Deref(p.FeaturedImage),
		GalleryImages:    strings.Join(p.GalleryImages, "\n"),
		IsFeatured:       p.IsFeatured,
		IsActive:         p.IsActive,
	}
}

func (s *ContentService) applyProductInput(ctx context.Context, product *models.Product, in ProductInput) error {
	in.Slug = strings.TrimSpace(in.Slug)
	fields, err := s.validateInput(&in)
	if err != nil {
		return err
	}
	if _, bad := fields["slug"]; !bad {
		in.Slug = deriveSlug(fields, in.Slug, in.Name)
	}

	specs := datatypes.JSON("{}")
	if raw := strings.TrimSpace(in.Specifications); raw != "" {
		entries, err := models.ParseSpecifications([]byte(raw))
		if err != nil {
			fields["specifications"] = "Specifications must be a JSON object whose values are text, numbers or lists."
		} else if specs, err = models.EncodeSpecifications(entries); err != nil {
			fields["specifications"] = "Specifications could not be encoded."
		}
	}

	var categoryID *string
	if id := strings.TrimSpace(in.CategoryID); id != "" {
		category, err := s.categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			fields["category_id"] = "Selected category does not exist."
		} else {
			categoryID = &category.ID
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	product.Name = strings.TrimSpace(in.Name)
	product.Slug = in.Slug
	product.CategoryID = categoryID
	product.Category = nil
	product.ShortDescription = helpers.OptionalString(in.ShortDescription)
	product.FullDescription = helpers.OptionalString(in.FullDescription)
	product.Specifications = specs
	product.FeaturedImage = helpers.OptionalString(strings.TrimSpace(in.FeaturedImage))
	product.GalleryImages = splitLines(in.GalleryImages)
	product.IsFeatured = in.IsFeatured
	product.IsActive = in.IsActive
	return nil
}

func (s *ContentService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	product := &models.Product{}
	if err := s.applyProductInput(ctx, product, in); err != nil {
		return nil, err
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, slugConflict(err)
	}
	s.log.Info("product created", zap.String("id", product.ID), zap.String("slug", product.Slug))
	return product, nil
}

func (s *ContentService) UpdateProduct(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	product, err := s.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyProductInput(ctx, product, in); err != nil {
		return nil, err
	}
	if err := s.products.Update(ctx, product); err != nil {
		return nil, slugConflict(err)
	}
	s.log.Info("product updated", zap.String("id", product.ID))
	return product, nil
}

func (s *ContentService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.log.Info("product deleted", zap.String("id", id))
	return nil
}

// Categories

func (s *ContentService) AllCategories(ctx context.Context) ([]models.ProductCategory, error) {
	return s.categories.GetAll(ctx)
}

// ParentCandidates lists the categories that may be chosen as parent of the
// category with excludeID (empty for a new category).
func (s *ContentService) ParentCandidates(ctx context.Context, excludeID string) ([]models.ProductCategory, error) {
	all, err := s.categories.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.ProductCategory, 0, len(all))
	for _, c := range all {
		if c.IsTopLevel() && c.ID != excludeID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *ContentService) Category(ctx context.Context, id string) (*models.ProductCategory, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

func CategoryInputFrom(c *models.ProductCategory) CategoryInput {
	return CategoryInput{
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  helpers.Deref(c.Description),
		ImageURL:     helpers.Deref(c.ImageURL),
		DisplayOrder: strconv.Itoa(c.DisplayOrder),
		ParentID:     helpers.Deref(c.ParentID),
		IsActive:     c.IsActive,
	}
}

func (s *ContentService) applyCategoryInput(ctx context.Context, category *models.ProductCategory, in CategoryInput) error {
	in.Slug = strings.TrimSpace(in.Slug)
	fields, err := s.validateInput(&in)
	if err != nil {
		return err
	}
	if _, bad := fields["slug"]; !bad {
		in.Slug = deriveSlug(fields, in.Slug, in.Name)
	}

	displayOrder := 0
	if raw := strings.TrimSpace(in.DisplayOrder); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			displayOrder = n
		} else {
			fields["display_order"] = "Display Order must be a whole number."
		}
	}

	var parentID *string
	if id := strings.TrimSpace(in.ParentID); id != "" {
		switch {
		case category.ID != "" && id == category.ID:
			fields["parent_id"] = "A category cannot be its own parent."
		default:
			parent, err := s.categories.GetByID(ctx, id)
			if err != nil {
				return err
			}
			switch {
			case parent == nil:
				fields["parent_id"] = "Selected parent category does not exist."
			case !parent.IsTopLevel():
				fields["parent_id"] = "Parent must be a top-level category."
			default:
				parentID = &parent.ID
			}
		}
		if parentID != nil && category.ID != "" {
			children, err := s.categories.CountChildren(ctx, category.ID)
			if err != nil {
				return err
			}
			if children > 0 {
				fields["parent_id"] = "A category with subcategories cannot itself have a parent."
				parentID = nil
			}
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	category.Name = strings.TrimSpace(in.Name)
	category.Slug = in.Slug
	category.Description = helpers.OptionalString(in.Description)
	category.ImageURL = helpers.OptionalString(strings.TrimSpace(in.ImageURL))
	category.DisplayOrder = displayOrder
	category.ParentID = parentID
	category.Parent = nil
	category.IsActive = in.IsActive
	return nil
}

func (s *ContentService) CreateCategory(ctx context.Context, in CategoryInput) (*models.ProductCategory, error) {
	category := &models.ProductCategory{}
	if err := s.applyCategoryInput(ctx, category, in); err != nil {
		return nil, err
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, slugConflict(err)
	}
	s.log.Info("category created", zap.String("id", category.ID), zap.String("slug", category.Slug))
	return category, nil
}

func (s *ContentService) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*models.ProductCategory, error) {
	category, err := s.Category(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyCategoryInput(ctx, category, in); err != nil {
		return nil, err
	}
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, slugConflict(err)
	}
	s.log.Info("category updated", zap.String("id", category.ID))
	return category, nil
}

// DeleteCategory refuses to remove a category that still has subcategories
// or products assigned.
func (s *ContentService) DeleteCategory(ctx context.Context, id string) error {
	if _, err := s.Category(ctx, id); err != nil {
		return err
	}

	children, err := s.categories.CountChildren(ctx, id)
	if err != nil {
		return err
	}
	products, err := s.products.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if children > 0 || products > 0 {
		return fmt.Errorf("category has %d subcategories and %d products: %w", children, products, ErrInUse)
	}

	if err := s.categories.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.log.Info("category deleted", zap.String("id", id))
	return nil
}

// Blog posts

func (s *ContentService) SearchPosts(ctx context.Context, keyword string) ([]models.BlogPost, error) {
	return s.posts.Search(ctx, keyword)
}

func (s *ContentService) Post(ctx context.Context, id string) (*models.BlogPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

func PostInputFrom(p *models.BlogPost) PostInput {
	return PostInput{
		Title:           p.Title,
		Slug:            p.Slug,
		Excerpt:         helpers.Deref(p.Excerpt),
		Content:         helpers.Deref(p.Content),
		FeaturedImage:   helpers.Deref(p.FeaturedImage),
		Author:          p.Author,
		PublishDate:     p.PublishDate.UTC().Format(PublishDateLayouts[0]),
		IsPublished:     p.IsPublished,
		MetaTitle:       helpers.Deref(p.MetaTitle),
		MetaDescription: helpers.Deref(p.MetaDescription),
	}
}

func (s *ContentService) applyPostInput(post *models.BlogPost, in PostInput) error {
	in.Slug = strings.TrimSpace(in.Slug)
	fields, err := s.validateInput(&in)
	if err != nil {
		return err
	}
	if _, bad := fields["slug"]; !bad {
		in.Slug = deriveSlug(fields, in.Slug, in.Title)
	}

	publishDate := s.now().UTC()
	if raw := strings.TrimSpace(in.PublishDate); raw != "" {
		parsed, ok := parsePublishDate(raw)
		if !ok {
			fields["publish_date"] = "Publish Date must look like 2024-01-31 or 2024-01-31T09:00."
		} else {
			publishDate = parsed
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Slug = in.Slug
	post.Excerpt = helpers.OptionalString(in.Excerpt)
	post.Content = helpers.OptionalString(in.Content)
	post.FeaturedImage = helpers.OptionalString(strings.TrimSpace(in.FeaturedImage))
	post.Author = strings.TrimSpace(in.Author)
	if post.Author == "" {
		post.Author = models.DefaultAuthor
	}
	post.PublishDate = publishDate
	post.IsPublished = in.IsPublished
	post.MetaTitle = helpers.OptionalString(in.MetaTitle)
	post.MetaDescription = helpers.OptionalString(in.MetaDescription)
	return nil
}

func (s *ContentService) CreatePost(ctx context.Context, in PostInput) (*models.BlogPost, error) {
	post := &models.BlogPost{}
	if err := s.applyPostInput(post, in); err != nil {
		return nil, err
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, slugConflict(err)
	}
	s.log.Info("blog post created", zap.String("id", post.ID), zap.String("slug", post.Slug))
	return post, nil
}

func (s *ContentService) UpdatePost(ctx context.Context, id string, in PostInput) (*models.BlogPost, error) {
	post, err := s.Post(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyPostInput(post, in); err != nil {
		return nil, err
	}
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, slugConflict(err)
	}
	s.log.Info("blog post updated", zap.String("id", post.ID))
	return post, nil
}

func (s *ContentService) DeletePost(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return notFound(err)
	}
	s.log.Info("blog post deleted", zap.String("id", id))
	return nil
}

// Publish dates entered in the back office are taken as UTC.
func parsePublishDate(raw string) (time.Time, bool) {
	for _, layout := range PublishDateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// deriveSlug falls back to a slug of fallback when none was typed and
// records a field error when nothing URL-safe is left.
func deriveSlug(fields map[string]string, given, fallback string) string {
	if given != "" {
		return given
	}
	generated := helpers.GenerateSlug(fallback)
	if generated == "" && strings.TrimSpace(fallback) != "" {
		fields["slug"] = "Slug could not be derived from the name, please enter one."
	}
	return generated
}

func slugConflict(err error) error {
	if repositories.IsDuplicateKeyErr(err) {
		return &ValidationError{Fields: map[string]string{"slug": "Slug is already in use."}}
	}
	return err
}
