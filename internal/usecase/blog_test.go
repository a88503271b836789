package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
	"github.com/sellmypostoffice/valuation-api/internal/infra/database"
)

func newBlogFixture() *BlogUseCase {
	return NewBlogUseCase(database.NewBlogPostRepository(database.NewMemoryKV()))
}

func validPostInput(slug string) BlogPostInput {
	return BlogPostInput{
		Slug:     slug,
		Title:    "Why Postal Leases Hold Value",
		Excerpt:  "A look at lease structures.",
		Category: "USPS Leases",
		Date:     "March 1, 2026",
		ReadTime: "4 min read",
		Content: entity.BlogContent{
			Intro: "Postal leases are unusual assets.",
			Sections: []entity.BlogSection{
				{Heading: "Lease terms", Content: "Most run five years."},
			},
			Conclusion: "Know your renewal dates.",
		},
	}
}

func TestBlogCreateAndFetch(t *testing.T) {
	uc := newBlogFixture()
	ctx := context.Background()

	post, err := uc.Create(ctx, validPostInput("postal-leases"))
	require.NoError(t, err)
	assert.Contains(t, post.ID, "post_")
	assert.Equal(t, "postal-leases", post.Slug)

	byID, err := uc.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, byID.Title)

	bySlug, err := uc.GetBySlug(ctx, "postal-leases")
	require.NoError(t, err)
	assert.Equal(t, post.ID, bySlug.ID)

	_, err = uc.GetBySlug(ctx, "nope")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestBlogCreateRejectsDuplicateSlug(t *testing.T) {
	uc := newBlogFixture()
	ctx := context.Background()

	_, err := uc.Create(ctx, validPostInput("dup"))
	require.NoError(t, err)

	_, err = uc.Create(ctx, validPostInput("dup"))
	assert.ErrorIs(t, err, entity.ErrSlugTaken)
}

func TestBlogCreateRejectsUnknownCategory(t *testing.T) {
	uc := newBlogFixture()

	input := validPostInput("bad-category")
	input.Category = "Hot Takes"
	_, err := uc.Create(context.Background(), input)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestBlogCreateDefaultsDateAndReadTime(t *testing.T) {
	uc := newBlogFixture()

	input := validPostInput("defaults")
	input.Date = ""
	input.ReadTime = ""
	post, err := uc.Create(context.Background(), input)
	require.NoError(t, err)
	assert.NotEmpty(t, post.Date)
	assert.Equal(t, "5 min read", post.ReadTime)
}

func TestBlogUpdate(t *testing.T) {
	uc := newBlogFixture()
	ctx := context.Background()

	post, err := uc.Create(ctx, validPostInput("original"))
	require.NoError(t, err)
	other, err := uc.Create(ctx, validPostInput("taken"))
	require.NoError(t, err)

	input := validPostInput("renamed")
	input.Title = "Updated Title"
	updated, err := uc.Update(ctx, post.ID, input)
	require.NoError(t, err)
	assert.Equal(t, "Updated Title", updated.Title)
	assert.Equal(t, "renamed", updated.Slug)

	_, err = uc.GetBySlug(ctx, "original")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// Renaming onto another post's slug is rejected.
	input.Slug = "taken"
	_, err = uc.Update(ctx, post.ID, input)
	assert.ErrorIs(t, err, entity.ErrSlugTaken)

	// Keeping your own slug is fine.
	input = validPostInput("taken")
	_, err = uc.Update(ctx, other.ID, input)
	assert.NoError(t, err)
}

func TestBlogListOrdersByDisplayDate(t *testing.T) {
	uc := newBlogFixture()
	ctx := context.Background()

	older := validPostInput("older")
	older.Date = "January 5, 2026"
	newer := validPostInput("newer")
	newer.Date = "June 10, 2026"

	_, err := uc.Create(ctx, older)
	require.NoError(t, err)
	_, err = uc.Create(ctx, newer)
	require.NoError(t, err)

	posts, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Slug)
	assert.Equal(t, "older", posts[1].Slug)
}

func TestBlogDeleteTwice(t *testing.T) {
	uc := newBlogFixture()
	ctx := context.Background()

	post, err := uc.Create(ctx, validPostInput("to-delete"))
	require.NoError(t, err)

	removed, err := uc.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = uc.Delete(ctx, post.ID)
	require.NoError(t, err)
	assert.False(t, removed)

	posts, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, posts)
}
