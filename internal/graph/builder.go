package graph

import (
	"strings"

	"go.uber.org/zap"

	"github.com/Paintersrp/modular/internal/links"
	"github.com/Paintersrp/modular/internal/logger"
	"github.com/Paintersrp/modular/internal/strapi"
)

// Options tune graph generation.
type Options struct {
	// MaxNodes caps the number of emitted nodes. Zero or less disables the cap.
	MaxNodes int
	// ResolveForward lets a post link to posts that appear later in the
	// input. By default only posts already visited are link targets.
	ResolveForward bool
	// Locale is passed through to the content source.
	Locale string
}

// Result is the unfiltered output of Build.
type Result struct {
	Nodes       []Node
	Connections []Connection
	// Skipped counts posts dropped as malformed or duplicate.
	Skipped int
}

// Builder turns posts into nodes and connections.
type Builder struct {
	opts Options
	log  *zap.SugaredLogger
}

func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts, log: logger.Named("graph")}
}

type edgeKey struct {
	source, target string
}

// Build creates one node per published post, in input order, and one
// connection per distinct (source, target) pair found in post bodies.
//
// Link targets resolve against the nodes accumulated so far, so a link to
// a post that appears later in the input produces no connection unless
// ResolveForward is set. Self links are ignored. Each accepted connection
// bumps the counter of both endpoints.
func (b *Builder) Build(posts []strapi.Post) Result {
	type entry struct {
		slug string
		body string
	}

	res := Result{Nodes: []Node{}, Connections: []Connection{}}
	index := make(map[string]int, len(posts))
	entries := make([]entry, 0, len(posts))

	for _, p := range posts {
		if !p.Published() {
			b.log.Debugw("skipping draft", logger.FieldSlug, p.Slug)
			continue
		}

		slug := strings.TrimSpace(p.Slug)
		title := strings.TrimSpace(p.Title)
		if slug == "" || title == "" {
			b.log.Warnw("skipping malformed post", "id", p.ID, logger.FieldSlug, slug, "title", title)
			res.Skipped++
			continue
		}
		if _, dup := index[slug]; dup {
			b.log.Warnw("skipping duplicate slug", "id", p.ID, logger.FieldSlug, slug)
			res.Skipped++
			continue
		}

		index[slug] = len(res.Nodes)
		res.Nodes = append(res.Nodes, newNode(slug, title, *p.PublishedAt))
		entries = append(entries, entry{slug: slug, body: p.Content})
	}

	seen := make(map[edgeKey]struct{})
	for pos, e := range entries {
		for _, link := range links.Extract(e.body) {
			target, ok := index[link.Slug]
			if !ok || (!b.opts.ResolveForward && target > pos) {
				continue
			}
			if link.Slug == e.slug {
				continue
			}

			key := edgeKey{source: e.slug, target: link.Slug}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			res.Connections = append(res.Connections, Connection{
				Source: e.slug,
				Target: link.Slug,
				Type:   ConnectionTypeLink,
			})
			res.Nodes[pos].Connections++
			res.Nodes[target].Connections++
		}
	}

	return res
}
