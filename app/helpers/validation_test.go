package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLeadEmail(t *testing.T) {
	valid := []string{"ana@example.com", "A.B+tag@sub.Example.CO", "x_y%z@a-b.io"}
	invalid := []string{"", "ana", "ana@", "ana@example", "ana@example.c", "ana @example.com", "ana@exa mple.com"}

	for _, s := range valid {
		assert.True(t, IsLeadEmail(s), s)
	}
	for _, s := range invalid {
		assert.False(t, IsLeadEmail(s), s)
	}
}

type sample struct {
	Name    string `json:"name" validate:"required,notblank"`
	Email   string `json:"email" validate:"required,leademail"`
	Website string `form:"website" validate:"omitempty,url"`
	Code    string `validate:"max=3"`
	Slug    string `form:"slug" validate:"omitempty,urlslug"`
}

func TestValidateStruct(t *testing.T) {
	v := NewValidator()

	fields, err := ValidateStruct(v, &sample{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Nil(t, fields)

	fields, err = ValidateStruct(v, &sample{Name: "  ", Email: "bad", Website: "not a url", Code: "toolong", Slug: "a/b c"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"name":    "Name is required.",
		"email":   "Please enter a valid email address.",
		"website": "Website must be a valid URL.",
		"Code":    "Code must be at most 3 characters.",
		"slug":    "Slug may only contain lowercase letters, numbers and single hyphens.",
	}, fields)

	fields, err = ValidateStruct(v, &sample{Name: "Ana", Email: "ana@example.com", Slug: "cp-50-pump"})
	require.NoError(t, err)
	assert.Nil(t, fields)

	_, err = ValidateStruct(v, "not a struct")
	assert.Error(t, err)
}

func TestOptionalHelpers(t *testing.T) {
	assert.Nil(t, OptionalString(""))
	assert.Nil(t, OptionalString(" \t"))
	require.NotNil(t, OptionalString(" x "))
	assert.Equal(t, " x ", *OptionalString(" x "))

	blank := "  "
	assert.Nil(t, NormalizeOptional(nil))
	assert.Nil(t, NormalizeOptional(&blank))
	assert.Equal(t, "", Deref(nil))

	assert.True(t, FormBool("on"))
	assert.True(t, FormBool("TRUE"))
	assert.False(t, FormBool(""))
	assert.False(t, FormBool("off"))
}

func TestGenerateSlugAndHumanize(t *testing.T) {
	assert.Equal(t, "air-compressor-500-l", GenerateSlug("Air Compressor 500 L"))
	assert.Equal(t, "Flow Rate", Humanize("flow_rate"))
	assert.Equal(t, "Product Inquiry", Humanize("product_inquiry"))
	assert.Equal(t, "", Humanize(""))
}
