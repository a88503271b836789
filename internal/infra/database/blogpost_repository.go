package database

import (
	"context"
	"errors"
	"log"

	"github.com/sellmypostoffice/valuation-api/internal/entity"
)

type BlogPostRepository struct {
	kv KV
}

func NewBlogPostRepository(kv KV) *BlogPostRepository {
	return &BlogPostRepository{kv: kv}
}

func (r *BlogPostRepository) Create(ctx context.Context, post *entity.BlogPost) error {
	if err := setJSON(ctx, r.kv, BucketBlogPosts, post.ID, post); err != nil {
		return err
	}

	ids, err := r.index(ctx)
	if err != nil {
		return err
	}
	ids = append(ids, post.ID)
	return setJSON(ctx, r.kv, BucketBlogPosts, PostsIndexKey, ids)
}

func (r *BlogPostRepository) FindByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	var post entity.BlogPost
	if err := getJSON(ctx, r.kv, BucketBlogPosts, id, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *BlogPostRepository) FindBySlug(ctx context.Context, slug string) (*entity.BlogPost, error) {
	posts, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return nil, entity.ErrNotFound
}

func (r *BlogPostRepository) Update(ctx context.Context, post *entity.BlogPost) error {
	return setJSON(ctx, r.kv, BucketBlogPosts, post.ID, post)
}

func (r *BlogPostRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := r.kv.Delete(ctx, BucketBlogPosts, id)
	if err != nil {
		return false, err
	}

	ids, err := r.index(ctx)
	if err != nil {
		return removed, err
	}
	filtered := ids[:0]
	for _, existing := range ids {
		if existing != id {
			filtered = append(filtered, existing)
		}
	}
	if err := setJSON(ctx, r.kv, BucketBlogPosts, PostsIndexKey, filtered); err != nil {
		return removed, err
	}
	return removed, nil
}

// List resolves every indexed id to its full post. Ids whose blob is
// gone (partial delete) are skipped, not fatal.
func (r *BlogPostRepository) List(ctx context.Context) ([]*entity.BlogPost, error) {
	ids, err := r.index(ctx)
	if err != nil {
		return nil, err
	}

	posts := make([]*entity.BlogPost, 0, len(ids))
	for _, id := range ids {
		post, err := r.FindByID(ctx, id)
		if errors.Is(err, entity.ErrNotFound) {
			log.Printf("blog index points at missing post %s, skipping", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *BlogPostRepository) index(ctx context.Context) ([]string, error) {
	var ids []string
	err := getJSON(ctx, r.kv, BucketBlogPosts, PostsIndexKey, &ids)
	if errors.Is(err, entity.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return ids, nil
}
