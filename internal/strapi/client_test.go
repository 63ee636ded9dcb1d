package strapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nestedPosts = `{
  "data": [
    {
      "id": 1,
      "attributes": {
        "title": "Nested Post",
        "slug": "nested-post",
        "content": "Links to [[flat-post]].",
        "publishedAt": "2024-03-02T10:00:00.000Z",
        "createdAt": "2024-03-01T10:00:00.000Z",
        "banner": {"data": {"id": 9, "attributes": {"url": "/uploads/banner.png"}}},
        "categories": {"data": [{"id": 1, "attributes": {"name": "go"}}, {"id": 2, "attributes": {"name": ""}}]},
        "locale": "en"
      }
    }
  ],
  "meta": {"pagination": {"page": 1, "pageSize": 10, "pageCount": 1, "total": 1}}
}`

const flatPosts = `{
  "data": [
    {
      "id": 2,
      "documentId": "abc",
      "title": "Flat Post",
      "slug": "flat-post",
      "content": "<p>Hello</p>",
      "publishedAt": null,
      "createdAt": "2024-02-01T08:00:00.000Z",
      "banner": {"url": "https://cdn.example.com/flat.jpg"},
      "categories": [{"name": "cms"}]
    },
    {
      "id": 3,
      "title": "",
      "slug": "missing-title"
    }
  ],
  "meta": {}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, mutate ...func(*Options)) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts := Options{
		BaseURL: srv.URL,
		Now:     func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) },
	}
	for _, m := range mutate {
		m(&opts)
	}

	c, err := New(opts)
	require.NoError(t, err)
	return c
}

func TestFetchPostsNormalizesNestedShape(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts", r.URL.Path)
		assert.Equal(t, "publishedAt:desc", r.URL.Query().Get("sort"))
		assert.Equal(t, "*", r.URL.Query().Get("populate"))
		assert.Equal(t, "en", r.URL.Query().Get("locale"))
		fmt.Fprint(w, nestedPosts)
	})

	res, err := c.FetchPosts(context.Background(), PostQuery{Locale: "en"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	p := res.Items[0]
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "nested-post", p.Slug)
	assert.Equal(t, "Nested Post", p.Title)
	assert.True(t, p.Published())
	assert.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), p.Date)
	assert.Equal(t, c.BaseURL()+"/uploads/banner.png", p.ImageURL)
	assert.Equal(t, []string{"go"}, p.Tags)
	assert.Equal(t, "Links to [[flat-post]].", p.Content)
	assert.Equal(t, "en", p.Locale)
	assert.Equal(t, Pagination{Page: 1, PageSize: 10, PageCount: 1, Total: 1}, res.Meta)
}

func TestFetchPostsNormalizesFlatShapeAndDropsMalformed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, flatPosts)
	})

	res, err := c.FetchPosts(context.Background(), PostQuery{PageSize: 25})
	require.NoError(t, err)
	require.Len(t, res.Items, 1, "record without a title must be dropped")

	p := res.Items[0]
	assert.Equal(t, "flat-post", p.Slug)
	assert.False(t, p.Published())
	assert.Equal(t, time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC), p.Date)
	assert.Equal(t, "https://cdn.example.com/flat.jpg", p.ImageURL)
	assert.Equal(t, []string{"cms"}, p.Tags)
	assert.Equal(t, "Hello", p.Excerpt)
	assert.Equal(t, Pagination{Page: 1, PageSize: 25, PageCount: 1, Total: 1}, res.Meta)
}

func TestFetchAllPostsWalksPages(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		page, _ := strconv.Atoi(r.URL.Query().Get("pagination[page]"))
		assert.Equal(t, "2", r.URL.Query().Get("pagination[pageSize]"))
		fmt.Fprintf(w, `{"data":[{"id":%d,"title":"P%d","slug":"p%d","publishedAt":"2024-01-0%dT00:00:00Z"}],
			"meta":{"pagination":{"page":%d,"pageSize":2,"pageCount":3,"total":3}}}`, page, page, page, page, page)
	}, func(o *Options) { o.PageSize = 2 })

	posts, err := c.FetchAllPosts(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, posts, 3)
	assert.Equal(t, []string{"p1", "p2", "p3"}, []string{posts[0].Slug, posts[1].Slug, posts[2].Slug})
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestFetchAllPostsFailsOnAnyPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pagination[page]") == "2" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"data":[{"id":1,"title":"A","slug":"a","publishedAt":"2024-01-01"}],
			"meta":{"pagination":{"page":1,"pageSize":1,"pageCount":2,"total":2}}}`)
	})

	posts, err := c.FetchAllPosts(context.Background(), "")
	require.Error(t, err)
	assert.Nil(t, posts)

	var reqErr *RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
	assert.Equal(t, "Internal Server Error", reqErr.StatusText)
	assert.Contains(t, err.Error(), "/api/posts")
}

func TestRequestsCarryBearerToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"data":[]}`)
	}, func(o *Options) { o.Token = " secret " })

	_, err := c.FetchPages(context.Background(), "")
	require.NoError(t, err)
}

func TestResponsesAreCached(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, nestedPosts)
	}, func(o *Options) { o.CacheSize = 8 })

	for i := 0; i < 3; i++ {
		_, err := c.FetchPosts(context.Background(), PostQuery{})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingBaseURL))
	assert.NotEmpty(t, errors.GetAllHints(err))

	_, err = New(Options{BaseURL: "cms.example.com"})
	require.Error(t, err)
}

func TestEndpointKeepsBasePathAndDropsEmptyParams(t *testing.T) {
	c, err := New(Options{BaseURL: "https://cms.example.com/strapi/"})
	require.NoError(t, err)

	got := c.endpoint("/posts", map[string]string{"populate": "*", "locale": ""})

	assert.Equal(t, "https://cms.example.com/strapi/api/posts?populate=%2A", got)
}

func TestFetchPostBySlug(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("filters[slug][$eq]") == "nested-post" {
			fmt.Fprint(w, nestedPosts)
			return
		}
		fmt.Fprint(w, `{"data":[]}`)
	})

	p, err := c.FetchPostBySlug(context.Background(), "nested-post", "")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Nested Post", p.Title)

	missing, err := c.FetchPostBySlug(context.Background(), "nope", "")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFetchSlugs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "slug", r.URL.Query().Get("fields"))
		assert.Equal(t, "1000", r.URL.Query().Get("pagination[pageSize]"))
		fmt.Fprint(w, `{"data":[{"id":1,"attributes":{"slug":"a"}},{"id":2,"slug":"b"},{"id":3}]}`)
	})

	slugs, err := c.FetchSlugs(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, slugs)
}

func TestFetchProjectsAndDocsDefaults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/projects":
			assert.Equal(t, "date:desc", r.URL.Query().Get("sort"))
			assert.Equal(t, "tools", r.URL.Query().Get("filters[categories][name][$eq]"))
			fmt.Fprint(w, `{"data":[{"id":1,"title":"Tool","slug":"tool","date":"2023-05-06",
				"coverImage":{"url":"/uploads/tool.png"},"categories":[{"name":"tools"}]}]}`)
		case "/api/docs":
			assert.Equal(t, "order:asc", r.URL.Query().Get("sort"))
			fmt.Fprint(w, `{"data":[{"id":1,"attributes":{"title":"Intro","slug":"intro","order":2,
				"lastModified":"2024-04-01T00:00:00Z","featured":true}}]}`)
		default:
			http.NotFound(w, r)
		}
	})

	projects, err := c.FetchProjects(context.Background(), ProjectQuery{Category: "tools"})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, time.Date(2023, 5, 6, 0, 0, 0, 0, time.UTC), projects[0].Date)
	assert.Equal(t, c.BaseURL()+"/uploads/tool.png", projects[0].ImageURL)
	assert.False(t, projects[0].Featured)

	docs, err := c.FetchDocs(context.Background(), DocQuery{})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 2, docs[0].Order)
	assert.True(t, docs[0].ShowTOC, "showTOC defaults to true")
	assert.True(t, docs[0].Featured)
	require.NotNil(t, docs[0].LastModified)
}

func TestFetchPageBySlugMissing(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	})

	p, err := c.FetchPageBySlug(context.Background(), "about", "en")
	require.NoError(t, err)
	assert.Nil(t, p)
}
