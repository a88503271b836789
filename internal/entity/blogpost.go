package entity

import (
	"context"
	"time"
)

// Fixed category set for blog posts. Anything else is rejected at
// validation time.
var BlogCategories = []string{
	"Market Insights",
	"Selling Guide",
	"USPS Leases",
	"Case Studies",
	"Company News",
}

func IsValidBlogCategory(category string) bool {
	for _, c := range BlogCategories {
		if c == category {
			return true
		}
	}
	return false
}

type BlogSection struct {
	Heading string `json:"heading"`
	Content string `json:"content"`
}

type BlogContent struct {
	Intro      string        `json:"intro"`
	Sections   []BlogSection `json:"sections"`
	Conclusion string        `json:"conclusion"`
}

// BlogPost is an admin-managed article. Slug is the unique public URL
// key, distinct from the opaque id.
type BlogPost struct {
	ID       string      `json:"id"`
	Slug     string      `json:"slug"`
	Title    string      `json:"title"`
	Excerpt  string      `json:"excerpt"`
	Category string      `json:"category"`
	Date     string      `json:"date"`     // display date, e.g. "January 2, 2026"
	ReadTime string      `json:"readTime"` // display label, e.g. "5 min read"
	Featured bool        `json:"featured"`
	Content  BlogContent `json:"content"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BlogPostRepositoryInterface interface {
	Create(ctx context.Context, post *BlogPost) error
	FindByID(ctx context.Context, id string) (*BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*BlogPost, error)
	Update(ctx context.Context, post *BlogPost) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context) ([]*BlogPost, error)
}
