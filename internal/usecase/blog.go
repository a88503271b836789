package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
)

const displayDateLayout = "January 2, 2006"

type BlogUseCase struct {
	Posts entity.BlogPostRepositoryInterface
}

func NewBlogUseCase(posts entity.BlogPostRepositoryInterface) *BlogUseCase {
	return &BlogUseCase{Posts: posts}
}

func (uc *BlogUseCase) Create(ctx context.Context, input BlogPostInput) (*entity.BlogPost, error) {
	if errs := ValidateBlogPost(input); len(errs) > 0 {
		return nil, errs
	}

	slug := strings.TrimSpace(input.Slug)
	if _, err := uc.Posts.FindBySlug(ctx, slug); err == nil {
		return nil, entity.ErrSlugTaken
	} else if !errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	post := &entity.BlogPost{
		ID:        "post_" + uuid.New().String(),
		Slug:      slug,
		Title:     strings.TrimSpace(input.Title),
		Excerpt:   strings.TrimSpace(input.Excerpt),
		Category:  input.Category,
		Date:      input.Date,
		ReadTime:  input.ReadTime,
		Featured:  input.Featured,
		Content:   input.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if post.Date == "" {
		post.Date = now.Format(displayDateLayout)
	}
	if post.ReadTime == "" {
		post.ReadTime = "5 min read"
	}

	if err := uc.Posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (uc *BlogUseCase) Update(ctx context.Context, id string, input BlogPostInput) (*entity.BlogPost, error) {
	if errs := ValidateBlogPost(input); len(errs) > 0 {
		return nil, errs
	}

	post, err := uc.Posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slug := strings.TrimSpace(input.Slug)
	if slug != post.Slug {
		if _, err := uc.Posts.FindBySlug(ctx, slug); err == nil {
			return nil, entity.ErrSlugTaken
		} else if !errors.Is(err, entity.ErrNotFound) {
			return nil, err
		}
	}

	post.Slug = slug
	post.Title = strings.TrimSpace(input.Title)
	post.Excerpt = strings.TrimSpace(input.Excerpt)
	post.Category = input.Category
	post.Date = input.Date
	post.ReadTime = input.ReadTime
	post.Featured = input.Featured
	post.Content = input.Content
	post.UpdatedAt = time.Now().UTC()

	if err := uc.Posts.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (uc *BlogUseCase) Delete(ctx context.Context, id string) (bool, error) {
	return uc.Posts.Delete(ctx, id)
}

func (uc *BlogUseCase) GetByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	return uc.Posts.FindByID(ctx, id)
}

func (uc *BlogUseCase) GetBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	return uc.Posts.FindBySlug(ctx, slug)
}

// List returns all posts ordered by display date descending. Display
// dates are human-readable strings; ones that do not parse fall back to
// the record's creation time for ordering.
func (uc *BlogUseCase) List(ctx context.Context) ([]*entity.BlogPost, error) {
	posts, err := uc.Posts.List(ctx)
	if err != nil {
		return nil, err
	}

	sortKey := func(p *entity.BlogPost) time.Time {
		if t, err := time.Parse(displayDateLayout, p.Date); err == nil {
			return t
		}
		return p.CreatedAt
	}
	sort.Slice(posts, func(i, j int) bool {
		return sortKey(posts[i]).After(sortKey(posts[j]))
	})
	return posts, nil
}
