package strapi

import (
	"context"
)

const (
	pagesPath    = "/pages"
	projectsPath = "/projects"
	docsPath     = "/docs"
)

// FetchPages lists site pages sorted by title.
func (c *Client) FetchPages(ctx context.Context, locale string) ([]Page, error) {
	entries, err := c.list(ctx, pagesPath, map[string]string{
		"populate": "*",
		"sort":     "title:asc",
		"locale":   locale,
	})
	if err != nil {
		return nil, err
	}
	return normalizeAll(c, "page", entries, c.norm.page), nil
}

func (c *Client) FetchPageBySlug(ctx context.Context, slug, locale string) (*Page, error) {
	it, err := c.bySlug(ctx, pagesPath, slug, locale)
	if err != nil || it == nil {
		return nil, err
	}
	p, err := c.norm.page(*it)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchProjects lists projects, newest first.
func (c *Client) FetchProjects(ctx context.Context, q ProjectQuery) ([]Project, error) {
	entries, err := c.list(ctx, projectsPath, map[string]string{
		"populate":                       "*",
		"sort":                           "date:desc",
		"locale":                         q.Locale,
		"filters[categories][name][$eq]": q.Category,
	})
	if err != nil {
		return nil, err
	}
	return normalizeAll(c, "project", entries, c.norm.project), nil
}

func (c *Client) FetchProjectBySlug(ctx context.Context, slug, locale string) (*Project, error) {
	it, err := c.bySlug(ctx, projectsPath, slug, locale)
	if err != nil || it == nil {
		return nil, err
	}
	p, err := c.norm.project(*it)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchDocs lists documentation pages in their configured order.
func (c *Client) FetchDocs(ctx context.Context, q DocQuery) ([]Doc, error) {
	entries, err := c.list(ctx, docsPath, map[string]string{
		"populate":               "*",
		"sort":                   "order:asc",
		"locale":                 q.Locale,
		"filters[category][$eq]": q.Category,
	})
	if err != nil {
		return nil, err
	}
	return normalizeAll(c, "doc", entries, c.norm.doc), nil
}

func (c *Client) FetchDocBySlug(ctx context.Context, slug, locale string) (*Doc, error) {
	it, err := c.bySlug(ctx, docsPath, slug, locale)
	if err != nil || it == nil {
		return nil, err
	}
	d, err := c.norm.doc(*it)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) list(ctx context.Context, path string, params map[string]string) ([]item, error) {
	env, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	return items(env)
}

func (c *Client) bySlug(ctx context.Context, path, slug, locale string) (*item, error) {
	entries, err := c.list(ctx, path, map[string]string{
		"filters[slug][$eq]": slug,
		"populate":           "*",
		"locale":             locale,
	})
	if err != nil || len(entries) == 0 {
		return nil, err
	}
	return &entries[0], nil
}
