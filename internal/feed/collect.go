package feed

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/Paintersrp/modular/internal/strapi"
)

// Source is the subset of the CMS client the documents are built from.
type Source interface {
	FetchAllPosts(ctx context.Context, locale string) ([]strapi.Post, error)
	FetchPages(ctx context.Context, locale string) ([]strapi.Page, error)
	FetchProjects(ctx context.Context, q strapi.ProjectQuery) ([]strapi.Project, error)
	FetchDocs(ctx context.Context, q strapi.DocQuery) ([]strapi.Doc, error)
}

// CollectOptions choose which optional collections are fetched.
type CollectOptions struct {
	Locale       string
	Projects     bool
	Docs         bool
	PostsPerPage int
}

// Collect fetches everything the sitemap and feeds need. Optional
// collections are only requested when enabled. Any failure aborts.
func Collect(ctx context.Context, src Source, opts CollectOptions) (Content, error) {
	content := Content{
		ProjectsEnabled: opts.Projects,
		DocsEnabled:     opts.Docs,
		PostsPerPage:    opts.PostsPerPage,
	}

	var err error
	if content.Posts, err = src.FetchAllPosts(ctx, opts.Locale); err != nil {
		return Content{}, errors.Wrap(err, "fetch posts")
	}
	if content.Pages, err = src.FetchPages(ctx, opts.Locale); err != nil {
		return Content{}, errors.Wrap(err, "fetch pages")
	}
	if opts.Projects {
		if content.Projects, err = src.FetchProjects(ctx, strapi.ProjectQuery{Locale: opts.Locale}); err != nil {
			return Content{}, errors.Wrap(err, "fetch projects")
		}
	}
	if opts.Docs {
		if content.Docs, err = src.FetchDocs(ctx, strapi.DocQuery{Locale: opts.Locale}); err != nil {
			return Content{}, errors.Wrap(err, "fetch docs")
		}
	}

	return content, nil
}
