package entity

import "errors"

// ErrNotFound is returned by repositories when an id does not resolve
// to a live record. Callers decide whether absence is an error.
var ErrNotFound = errors.New("record not found")

// ErrSlugTaken is returned when a blog post slug collides with an
// existing post.
var ErrSlugTaken = errors.New("slug already in use")
