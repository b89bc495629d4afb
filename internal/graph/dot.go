package graph

import (
	"fmt"
	"io"
	"strings"
)

// Export writes the subgraph as a DOT directed-graph description. Output is
// deterministic: the center node statement first, then one edge statement per
// neighbor in edge order.
//
// Node and edge identifiers are the display names, quoted and byte-exact.
// Embedded double quotes in a name are not escaped and would corrupt the
// artifact; known limitation.
func Export(w io.Writer, subgraph *Subgraph) error {
	if _, err := fmt.Fprintln(w, "digraph {"); err != nil {
		return fmt.Errorf("failed to write graph declaration: %w", err)
	}

	center := subgraph.Center
	if _, err := fmt.Fprintf(w, "    \"%s\" [label=\"%s\"];\n", center.Label, center.Features.Label()); err != nil {
		return fmt.Errorf("failed to write center node: %w", err)
	}

	for _, edge := range subgraph.Edges {
		target := edge.Target
		if _, err := fmt.Fprintf(w, "    \"%s\" -> \"%s\" [label=\"%s\"];\n", center.Label, target.Label, target.Features.Label()); err != nil {
			return fmt.Errorf("failed to write edge to %q: %w", target.Label, err)
		}
	}

	if _, err := fmt.Fprintln(w, "}"); err != nil {
		return fmt.Errorf("failed to write graph closing: %w", err)
	}

	return nil
}

// ExportString renders the subgraph as a DOT document in memory.
func ExportString(subgraph *Subgraph) string {
	var sb strings.Builder
	// strings.Builder never returns a write error.
	_ = Export(&sb, subgraph)
	return sb.String()
}
