package flags

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/Paintersrp/modular/internal/graph"
)

func newCmd(args ...string) *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	AddMaxNodes(cmd)
	AddResolveForward(cmd)
	AddOutput(cmd)
	AddOutputDir(cmd)
	cmd.SetArgs(args)
	return cmd
}

func TestHandleGraphOptionsKeepsConfigWhenUnset(t *testing.T) {
	cmd := newCmd()
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	base := graph.Options{MaxNodes: 100, ResolveForward: true, Locale: "en"}
	got, err := HandleGraphOptions(cmd, base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != base {
		t.Fatalf("expected %+v, got %+v", base, got)
	}

	out, err := HandleOutput(cmd, "public/graph/graph-data.json")
	if err != nil || out != "public/graph/graph-data.json" {
		t.Fatalf("expected fallback output, got %q (%v)", out, err)
	}
}

func TestHandleGraphOptionsOverrides(t *testing.T) {
	cmd := newCmd("--max-nodes", "0", "--resolve-forward=false", "-o", "x.json", "-d", "dist")
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := HandleGraphOptions(cmd, graph.Options{MaxNodes: 100, ResolveForward: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.MaxNodes != 0 || got.ResolveForward {
		t.Fatalf("expected flags to win, got %+v", got)
	}

	if out, _ := HandleOutput(cmd, "fallback"); out != "x.json" {
		t.Fatalf("expected x.json, got %q", out)
	}
	if dir, _ := HandleOutputDir(cmd, "public"); dir != "dist" {
		t.Fatalf("expected dist, got %q", dir)
	}
}
