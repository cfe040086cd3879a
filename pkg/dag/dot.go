package dag

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-graphviz"
)

// DOTOptions configures prerequisite graph rendering.
type DOTOptions struct {
	// Alternates draws a dashed edge from each base star to its 100 coin
	// alternate.
	Alternates map[string]string

	// Selected stars are filled; others are drawn with a white fill.
	Selected Set
}

// ToDOT converts a prerequisite graph to Graphviz DOT format. Edges point from
// a prerequisite to the stars depending on it. The output can be rendered
// with [RenderSVG].
func ToDOT(g Adjacency, opts DOTOptions) string {
	nodes := make(Set)
	for k, deps := range g {
		nodes.Add(k)
		nodes.Add(deps...)
	}
	for base, alt := range opts.Alternates {
		nodes.Add(base, alt)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, id := range nodes.Sorted() {
		fill := "white"
		if opts.Selected.Has(id) {
			fill = "palegreen"
		}
		fmt.Fprintf(&buf, "  %q [fillcolor=%s];\n", id, fill)
	}

	buf.WriteString("\n")
	for _, k := range slices.Sorted(maps.Keys(g)) {
		for _, d := range g[k] {
			fmt.Fprintf(&buf, "  %q -> %q;\n", k, d)
		}
	}
	for _, base := range slices.Sorted(maps.Keys(opts.Alternates)) {
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=none];\n", base, opts.Alternates[base])
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
