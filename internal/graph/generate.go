package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/Paintersrp/modular/internal/logger"
	"github.com/Paintersrp/modular/internal/strapi"
)

// PostSource supplies every post in the order they should be visited.
type PostSource interface {
	FetchAllPosts(ctx context.Context, locale string) ([]strapi.Post, error)
}

// Generate fetches all posts from src and returns the graph snapshot. A
// fetch failure aborts the run without producing a document.
func Generate(ctx context.Context, src PostSource, opts Options, now time.Time) (*Document, error) {
	log := logger.Named("graph")

	posts, err := src.FetchAllPosts(ctx, opts.Locale)
	if err != nil {
		return nil, errors.Wrap(err, "fetch posts")
	}
	log.Infow("found posts", logger.FieldCount, len(posts))

	return Assemble(posts, opts, now), nil
}

// Assemble builds, filters and stamps a document from already fetched
// posts.
func Assemble(posts []strapi.Post, opts Options, now time.Time) *Document {
	built := NewBuilder(opts).Build(posts)
	filtered := Filter(built.Nodes, built.Connections, opts.MaxNodes)

	return &Document{
		Nodes:       filtered.Nodes,
		Connections: filtered.Connections,
		Metadata: Metadata{
			Generated:         formatTime(now),
			TotalPosts:        len(filtered.Nodes),
			TotalConnections:  len(filtered.Connections),
			MaxNodesApplied:   filtered.Applied,
			OriginalNodeCount: filtered.OriginalCount,
		},
	}
}

// Encode renders doc as two-space indented JSON.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, "encode graph document")
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Write encodes doc to path, creating parent directories as needed.
func Write(doc *Document, path string) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create output directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "write graph data to %s", path)
	}
	return nil
}
