package strapi

import (
	"context"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/Paintersrp/modular/internal/logger"
)

const postsPath = "/posts"

// FetchPosts returns one page of posts, newest first.
func (c *Client) FetchPosts(ctx context.Context, q PostQuery) (PostPage, error) {
	page := q.Page
	if page <= 0 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	params := map[string]string{
		"populate":                       "*",
		"sort":                           "publishedAt:desc",
		"pagination[page]":               strconv.Itoa(page),
		"pagination[pageSize]":           strconv.Itoa(pageSize),
		"locale":                         q.Locale,
		"filters[categories][name][$eq]": q.Tag,
	}

	env, err := c.get(ctx, postsPath, params)
	if err != nil {
		return PostPage{}, err
	}
	entries, err := items(env)
	if err != nil {
		return PostPage{}, err
	}

	posts := normalizeAll(c, "post", entries, c.norm.post)
	meta := Pagination{Page: 1, PageSize: pageSize, PageCount: 1, Total: len(posts)}
	if env.Meta.Pagination != nil {
		meta = *env.Meta.Pagination
	}
	return PostPage{Items: posts, Meta: meta}, nil
}

// FetchAllPosts walks every page of the post collection. Any failed page
// fails the whole call; no partial result is returned.
func (c *Client) FetchAllPosts(ctx context.Context, locale string) ([]Post, error) {
	var all []Post
	for page := 1; ; page++ {
		res, err := c.FetchPosts(ctx, PostQuery{Page: page, PageSize: c.pageSize, Locale: locale})
		if err != nil {
			return nil, errors.Wrapf(err, "fetch posts page %d", page)
		}
		all = append(all, res.Items...)

		if page >= res.Meta.PageCount {
			break
		}
	}

	c.log.Debugw("fetched all posts", logger.FieldCount, len(all))
	if all == nil {
		all = []Post{}
	}
	return all, nil
}

// FetchPostBySlug returns the post with slug, or nil when none exists.
func (c *Client) FetchPostBySlug(ctx context.Context, slug, locale string) (*Post, error) {
	env, err := c.get(ctx, postsPath, map[string]string{
		"filters[slug][$eq]": slug,
		"populate":           "*",
		"locale":             locale,
	})
	if err != nil {
		return nil, err
	}
	entries, err := items(env)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	p, err := c.norm.post(entries[0])
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchSlugs lists every post slug, newest first.
func (c *Client) FetchSlugs(ctx context.Context, locale string) ([]string, error) {
	env, err := c.get(ctx, postsPath, map[string]string{
		"fields":               "slug",
		"sort":                 "publishedAt:desc",
		"pagination[pageSize]": strconv.Itoa(MaxPageSize),
		"locale":               locale,
	})
	if err != nil {
		return nil, err
	}
	entries, err := items(env)
	if err != nil {
		return nil, err
	}

	slugs := make([]string, 0, len(entries))
	for _, it := range entries {
		f, err := decodeFields(it)
		if err != nil {
			continue
		}
		if f.Slug != "" {
			slugs = append(slugs, string(f.Slug))
		}
	}
	return slugs, nil
}
