package cmd

import (
	"context"

	"github.com/Paintersrp/modular/internal/feed"
	"github.com/Paintersrp/modular/internal/graph"
	"github.com/Paintersrp/modular/internal/logger"
	"github.com/Paintersrp/modular/internal/state"
)

// GraphArtifactName is where the graph lands below the output directory
// when the configured output path lies elsewhere.
const GraphArtifactName = "graph/graph-data.json"

// StateLoader lazily builds the shared state once flags are parsed.
type StateLoader func() (*state.State, error)

// GenerateGraph fetches posts and builds the graph document.
func GenerateGraph(ctx context.Context, s *state.State, opts graph.Options) (*graph.Document, error) {
	doc, err := graph.Generate(ctx, s.Client, opts, s.Now())
	if err != nil {
		return nil, err
	}

	logger.Named("graph").Infow("generated graph",
		"nodes", doc.Metadata.TotalPosts,
		"connections", doc.Metadata.TotalConnections,
		"filtered", doc.Metadata.MaxNodesApplied,
	)
	return doc, nil
}

// RenderFeeds fetches site content and renders every feed document.
func RenderFeeds(ctx context.Context, s *state.State) ([]feed.Artifact, error) {
	if err := s.Config.RequireSite(); err != nil {
		return nil, err
	}

	content, err := feed.Collect(ctx, s.Client, s.CollectOptions())
	if err != nil {
		return nil, err
	}

	artifacts, err := feed.All(s.Site(), content, s.Now())
	if err != nil {
		return nil, err
	}

	logger.Named("feed").Infow("rendered feeds",
		logger.FieldCount, len(artifacts),
		"posts", len(content.Posts),
		"pages", len(content.Pages),
	)
	return artifacts, nil
}
