package graph

import "sort"

// FilterResult is the outcome of Filter.
type FilterResult struct {
	Nodes         []Node
	Connections   []Connection
	Applied       bool
	OriginalCount int
}

// Filter keeps the maxNodes best connected nodes, newest first among
// equals, and drops connections that lose an endpoint. When maxNodes is
// not positive or already satisfied the inputs come back unchanged.
//
// The input slices are never modified.
func Filter(nodes []Node, connections []Connection, maxNodes int) FilterResult {
	res := FilterResult{
		Nodes:         nodes,
		Connections:   connections,
		OriginalCount: len(nodes),
	}
	if maxNodes <= 0 || len(nodes) <= maxNodes {
		return res
	}

	ranked := make([]Node, len(nodes))
	copy(ranked, nodes)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Connections != ranked[j].Connections {
			return ranked[i].Connections > ranked[j].Connections
		}
		return ranked[i].published.After(ranked[j].published)
	})
	ranked = ranked[:maxNodes]

	kept := make(map[string]struct{}, len(ranked))
	for _, n := range ranked {
		kept[n.ID] = struct{}{}
	}

	edges := make([]Connection, 0, len(connections))
	for _, c := range connections {
		_, src := kept[c.Source]
		_, dst := kept[c.Target]
		if src && dst {
			edges = append(edges, c)
		}
	}

	res.Nodes = ranked
	res.Connections = edges
	res.Applied = true
	return res
}
