package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Paintersrp/modular/internal/graph"
)

func TestGraphSummary(t *testing.T) {
	doc := &graph.Document{Metadata: graph.Metadata{TotalPosts: 3, TotalConnections: 2, OriginalNodeCount: 3}}
	assert.Equal(t, "Stats: 3 nodes, 2 connections", GraphSummary(doc, false))

	doc.Metadata = graph.Metadata{TotalPosts: 100, TotalConnections: 40, MaxNodesApplied: true, OriginalNodeCount: 150}
	assert.Equal(t, "Stats: 100 nodes, 40 connections (filtered from 150 total nodes)", GraphSummary(doc, false))
}

func TestPrintGraphSummaryIsPlainOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	PrintGraphSummary(&buf, &graph.Document{Metadata: graph.Metadata{TotalPosts: 1}})

	assert.Equal(t, "Stats: 1 nodes, 0 connections\n", buf.String())
}

func TestPrintWritten(t *testing.T) {
	var buf bytes.Buffer
	PrintWritten(&buf, "graph", "public/graph/graph-data.json")

	assert.Equal(t, "Wrote graph: public/graph/graph-data.json\n", buf.String())
}
