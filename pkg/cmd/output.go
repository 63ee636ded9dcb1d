package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/Paintersrp/modular/internal/graph"
)

var (
	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0AF"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#224", Dark: "#FFF"})

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#778899")).
			Italic(true)
)

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// GraphSummary formats the one line report printed after generation.
func GraphSummary(doc *graph.Document, styled bool) string {
	label, count, note := fmt.Sprint, fmt.Sprint, fmt.Sprint
	if styled {
		label = func(a ...any) string { return labelStyle.Render(fmt.Sprint(a...)) }
		count = func(a ...any) string { return countStyle.Render(fmt.Sprint(a...)) }
		note = func(a ...any) string { return noteStyle.Render(fmt.Sprint(a...)) }
	}

	line := fmt.Sprintf("%s %s nodes, %s connections",
		label("Stats:"),
		count(doc.Metadata.TotalPosts),
		count(doc.Metadata.TotalConnections),
	)
	if doc.Metadata.MaxNodesApplied {
		line += " " + note(fmt.Sprintf("(filtered from %d total nodes)", doc.Metadata.OriginalNodeCount))
	}
	return line
}

// PrintGraphSummary writes GraphSummary to w, styled on terminals.
func PrintGraphSummary(w io.Writer, doc *graph.Document) {
	fmt.Fprintln(w, GraphSummary(doc, isTerminal(w)))
}

// PrintWritten reports a written artifact.
func PrintWritten(w io.Writer, what, path string) {
	if isTerminal(w) {
		fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Wrote "+what+":"), path)
		return
	}
	fmt.Fprintf(w, "Wrote %s: %s\n", what, path)
}
