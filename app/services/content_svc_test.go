package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Rakhulsr/general-equipments/app/helpers"
	"github.com/Rakhulsr/general-equipments/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContent(r *repos) *ContentService {
	return NewContentService(r.products, r.categories, r.posts, helpers.NewValidator(), nopLogger())
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr), "expected a validation error, got %v", err)
	return validationErr.Fields
}

func TestContent_CategoryParentRules(t *testing.T) {
	r := newRepos(t)
	svc := newContent(r)
	ctx := context.Background()

	top, err := svc.CreateCategory(ctx, CategoryInput{Name: "Pumps", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "pumps", top.Slug)

	child, err := svc.CreateCategory(ctx, CategoryInput{Name: "Dosing Pumps", ParentID: top.ID, IsActive: true})
	require.NoError(t, err)
	require.NotNil(t, child.ParentID)
	assert.Equal(t, top.ID, *child.ParentID)

	_, err = svc.CreateCategory(ctx, CategoryInput{Name: "Grandchild", ParentID: child.ID})
	assert.Contains(t, fieldErrors(t, err), "parent_id")

	_, err = svc.UpdateCategory(ctx, top.ID, CategoryInput{Name: "Pumps", ParentID: top.ID})
	assert.Contains(t, fieldErrors(t, err), "parent_id")

	other, err := svc.CreateCategory(ctx, CategoryInput{Name: "Valves"})
	require.NoError(t, err)
	_, err = svc.UpdateCategory(ctx, top.ID, CategoryInput{Name: "Pumps", ParentID: other.ID})
	assert.Contains(t, fieldErrors(t, err), "parent_id")

	_, err = svc.CreateCategory(ctx, CategoryInput{Name: "Orphan", ParentID: "missing"})
	assert.Contains(t, fieldErrors(t, err), "parent_id")

	parents, err := svc.ParentCandidates(ctx, top.ID)
	require.NoError(t, err)
	for _, p := range parents {
		assert.NotEqual(t, top.ID, p.ID)
		assert.True(t, p.IsTopLevel())
	}
}

func TestContent_CategoryValidation(t *testing.T) {
	r := newRepos(t)
	svc := newContent(r)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CategoryInput{Name: " ", DisplayOrder: "first"})
	fields := fieldErrors(t, err)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "display_order")

	_, err = svc.CreateCategory(ctx, CategoryInput{Name: "Pumps"})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, CategoryInput{Name: "Other Pumps", Slug: "pumps"})
	assert.Contains(t, fieldErrors(t, err), "slug")
}

func TestContent_SlugsAreURLSafe(t *testing.T) {
	r := newRepos(t)
	svc := newContent(r)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, CategoryInput{Name: "Pumps & Valves", Slug: "Pumps & Valves/2024 ?x"})
	assert.Contains(t, fieldErrors(t, err), "slug")

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Widget", Slug: "wid get#1"})
	assert.Contains(t, fieldErrors(t, err), "slug")

	_, err = svc.CreatePost(ctx, PostInput{Title: "Spring service", Slug: "spring--service-"})
	assert.Contains(t, fieldErrors(t, err), "slug")

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "???"})
	assert.Contains(t, fieldErrors(t, err), "slug")

	category, err := svc.CreateCategory(ctx, CategoryInput{Name: "Pumps & Valves", Slug: "  pumps-valves-2024 "})
	require.NoError(t, err)
	assert.Equal(t, "pumps-valves-2024", category.Slug)

	product, err := svc.CreateProduct(ctx, ProductInput{Name: "Widget / Mk II"})
	require.NoError(t, err)
	assert.Equal(t, "widget-mk-ii", product.Slug)

	_, err = svc.UpdateProduct(ctx, product.ID, ProductInput{Name: "Widget", Slug: "widget/mk-ii"})
	assert.Contains(t, fieldErrors(t, err), "slug")
	stored, err := svc.Product(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "widget-mk-ii", stored.Slug)
}

func TestContent_DeleteCategoryInUse(t *testing.T) {
	r := newRepos(t)
	svc := newContent(r)
	ctx := context.Background()

	top := seedCategory(t, r, "Pumps", nil)
	child := seedCategory(t, r, "Dosing", &top.ID)
	assert.ErrorIs(t, svc.DeleteCategory(ctx, top.ID), ErrInUse)

	seedProduct(t, r, "Dosing Pump", &child.ID, true)
	assert.ErrorIs(t, svc.DeleteCategory(ctx, child.ID), ErrInUse)

	empty := seedCategory(t, r, "Valves", nil)
	require.NoError(t, svc.DeleteCategory(ctx, empty.ID))
	assert.ErrorIs(t, svc.DeleteCategory(ctx, empty.ID), ErrNotFound)
}

func TestContent_ProductSpecifications(t *testing.T) {
	r := newRepos(t)
	svc := newContent(r)
	ctx := context.Background()
	pumps := seedCategory(t, r, "Pumps", nil)

	product, err := svc.CreateProduct(ctx, ProductInput{
		Name:           "Centrifugal Pump CP-50",
		CategoryID:     pumps.ID,
		Specifications: `{"flow_rate": "50 m3/h", "power": 7.5, "materials": ["cast iron", "bronze"]}`,
		GalleryImages:  "https://example.com/a.jpg\n\n https://example.com/b.jpg ",
		IsActive:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "centrifugal-pump-cp-50", product.Slug)
	assert.Equal(t, []string{"https://example.com/a.jpg", "https://example.com/b.jpg"}, []string(product.GalleryImages))

	stored, err := svc.Product(ctx, product.ID)
	require.NoError(t, err)
	specs, err := stored.SpecEntries()
	require.NoError(t, err)
	require.Len(t, specs, 3)
	assert.Equal(t, "flow_rate", specs[0].Key)
	assert.Equal(t, "power", specs[1].Key)
	assert.Equal(t, []string{"cast iron", "bronze"}, specs[2].List())

	_, err = svc.UpdateProduct(ctx, product.ID, ProductInput{Name: "Pump", Specifications: `["not", "an", "object"]`})
	assert.Contains(t, fieldErrors(t, err), "specifications")

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Pump", CategoryID: "missing"})
	assert.Contains(t, fieldErrors(t, err), "category_id")

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Another", Slug: product.Slug})
	assert.Contains(t, fieldErrors(t, err), "slug")

	require.NoError(t, svc.DeleteProduct(ctx, product.ID))
	_, err = svc.Product(ctx, product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteProduct(ctx, product.ID), ErrNotFound)
}

func TestContent_Posts(t *testing.T) {
	r := newRepos(t)
	svc := newContent(r)
	fixed := time.Date(2025, 1, 2, 3, 4, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, PostInput{Title: "Choosing a Compressor", IsPublished: true})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultAuthor, post.Author)
	assert.True(t, post.PublishDate.Equal(fixed))
	assert.Equal(t, "choosing-a-compressor", post.Slug)

	updated, err := svc.UpdatePost(ctx, post.ID, PostInput{
		Title:       "Choosing a Compressor",
		Author:      "Dana",
		PublishDate: "2025-02-01T09:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dana", updated.Author)
	assert.False(t, updated.IsPublished)
	assert.True(t, updated.PublishDate.Equal(time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2025-02-01T09:30", PostInputFrom(updated).PublishDate)

	_, err = svc.UpdatePost(ctx, post.ID, PostInput{Title: "x", PublishDate: "next week"})
	assert.Contains(t, fieldErrors(t, err), "publish_date")

	found, err := svc.SearchPosts(ctx, "dana")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	require.NoError(t, svc.DeletePost(ctx, post.ID))
	_, err = svc.Post(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
