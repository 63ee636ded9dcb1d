package feed

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/Paintersrp/modular/internal/pathutil"
)

// DefaultPostsPerPage matches the listing page size of the site.
const DefaultPostsPerPage = 10

// excludedPages never appear in the sitemap.
var excludedPages = map[string]struct{}{
	"404":            {},
	"sitemap":        {},
	"rss":            {},
	"home":           {},
	"not-found-page": {},
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	ImageNS string       `xml:"xmlns:image,attr"`
	NewsNS  string       `xml:"xmlns:news,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Sitemap lists the home page, section indexes, every published post,
// visible page, project and doc, and the post listing pages past the first.
func Sitemap(site Site, content Content, now time.Time) ([]byte, error) {
	var urls []sitemapURL
	add := func(loc string, lastmod time.Time, freq, priority string) {
		urls = append(urls, sitemapURL{Loc: loc, LastMod: iso(lastmod), ChangeFreq: freq, Priority: priority})
	}

	add(pathutil.SiteURL(site.URL), now, "daily", "1.0")
	add(pathutil.SiteURL(site.URL, "posts"), now, "daily", "0.8")
	if content.ProjectsEnabled {
		add(pathutil.SiteURL(site.URL, "projects"), now, "weekly", "0.7")
	}
	if content.DocsEnabled {
		add(pathutil.SiteURL(site.URL, "docs"), now, "weekly", "0.7")
	}

	posts := published(content.Posts)
	for _, p := range posts {
		add(pathutil.SiteURL(site.URL, "post", p.Slug), *p.PublishedAt, "monthly", "0.7")
	}

	for _, page := range content.Pages {
		if _, skip := excludedPages[page.Slug]; skip {
			continue
		}
		add(pathutil.SiteURL(site.URL, page.Slug), orNow(page.LastModified, now), "monthly", "0.6")
	}

	if content.ProjectsEnabled {
		for _, project := range content.Projects {
			lastmod := project.Date
			if lastmod.IsZero() {
				lastmod = now
			}
			add(pathutil.SiteURL(site.URL, "project", project.Slug), lastmod, "monthly", "0.6")
		}
	}
	if content.DocsEnabled {
		for _, doc := range content.Docs {
			add(pathutil.SiteURL(site.URL, "doc", doc.Slug), orNow(doc.LastModified, now), "monthly", "0.6")
		}
	}

	perPage := content.PostsPerPage
	if perPage <= 0 {
		perPage = DefaultPostsPerPage
	}
	pages := (len(posts) + perPage - 1) / perPage
	for page := 2; page <= pages; page++ {
		add(pathutil.SiteURL(site.URL, "posts", "page", strconv.Itoa(page)), now, "weekly", "0.5")
	}

	return marshal(urlSet{
		NS:      "http://www.sitemaps.org/schemas/sitemap/0.9",
		ImageNS: "http://www.google.com/schemas/sitemap-image/1.1",
		NewsNS:  "http://www.google.com/schemas/sitemap-news/0.9",
		URLs:    urls,
	}, "sitemap")
}

func orNow(t *time.Time, now time.Time) time.Time {
	if t == nil || t.IsZero() {
		return now
	}
	return *t
}
