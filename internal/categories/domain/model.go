package domain

import "errors"

// Category is one entry of the service-category catalogue. Draft submissions
// reference categories by display name and are resolved to the ID.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

var ErrUnknownCategory = errors.New("unknown category")
