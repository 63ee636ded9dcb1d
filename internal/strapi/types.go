package strapi

import "time"

// Post is the canonical blog post record. Both CMS response shapes are
// normalized into it before anything else sees the data.
type Post struct {
	ID          int
	Slug        string `validate:"required"`
	Title       string `validate:"required"`
	Content     string
	Description string
	Keyword     string
	// Date is the publication time, falling back to creation time.
	Date        time.Time
	PublishedAt *time.Time
	CreatedAt   *time.Time
	UpdatedAt   *time.Time
	ImageURL    string
	Tags        []string
	Excerpt     string
	Locale      string
}

// Published reports whether the post has left draft state.
func (p Post) Published() bool {
	return p.PublishedAt != nil
}

// Page is a standalone site page.
type Page struct {
	ID           int
	Slug         string `validate:"required"`
	Title        string `validate:"required"`
	Description  string
	ImageURL     string
	HTML         string
	LastModified *time.Time
	Locale       string
}

// Project is a portfolio entry.
type Project struct {
	ID            int
	Slug          string `validate:"required"`
	Title         string `validate:"required"`
	Description   string
	Date          time.Time
	ImageURL      string
	Categories    []string
	RepositoryURL string
	DemoURL       string
	Status        string
	HTML          string
	Featured      bool
	Locale        string
}

// Doc is a documentation page.
type Doc struct {
	ID           int
	Slug         string `validate:"required"`
	Title        string `validate:"required"`
	Description  string
	Category     string
	Order        int
	Version      string
	ImageURL     string
	HTML         string
	LastModified *time.Time
	ShowTOC      bool
	Featured     bool
	Locale       string
}

// Pagination mirrors the CMS pagination block.
type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

// PostPage is one page of posts plus its pagination metadata.
type PostPage struct {
	Items []Post
	Meta  Pagination
}

// PostQuery filters a post listing. Zero values fall back to page 1 and
// the client's default page size.
type PostQuery struct {
	Page     int
	PageSize int
	Tag      string
	Locale   string
}

// ProjectQuery filters a project listing.
type ProjectQuery struct {
	Category string
	Locale   string
}

// DocQuery filters a documentation listing.
type DocQuery struct {
	Category string
	Locale   string
}
