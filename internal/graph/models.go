// Package graph builds the post link graph rendered by the site's graph
// view.
//
// The JSON produced by Document is consumed by the front end as is: field
// names and the "post"/"link" literals must not change.
package graph

import "time"

const (
	// NodeTypePost is the only node type emitted.
	NodeTypePost = "post"
	// ConnectionTypeLink is the only connection type emitted.
	ConnectionTypeLink = "link"
)

// TimeLayout is the ISO-8601 UTC millisecond form used for every timestamp
// in the output document.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// Node is one published post.
type Node struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Date        string `json:"date"`
	Connections int    `json:"connections"`

	published time.Time
}

// Published returns the node's publication time.
func (n Node) Published() time.Time {
	return n.published
}

// Connection is a directed link from one post to another.
type Connection struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

// Metadata summarises a generation run.
type Metadata struct {
	Generated         string `json:"generated"`
	TotalPosts        int    `json:"totalPosts"`
	TotalConnections  int    `json:"totalConnections"`
	MaxNodesApplied   bool   `json:"maxNodesApplied"`
	OriginalNodeCount int    `json:"originalNodeCount"`
}

// Document is the serialized graph snapshot.
type Document struct {
	Nodes       []Node       `json:"nodes"`
	Connections []Connection `json:"connections"`
	Metadata    Metadata     `json:"metadata"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func newNode(slug, title string, published time.Time) Node {
	return Node{
		ID:        slug,
		Type:      NodeTypePost,
		Title:     title,
		Slug:      slug,
		Date:      formatTime(published),
		published: published,
	}
}
