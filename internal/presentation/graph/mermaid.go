// Package graph renders a pipeline as a Mermaid flowchart.
package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/cadence/internal/config"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	// Fired lists observer names that already received a hook.
	Fired []string
	// Loader is the loader being iterated, if any.
	Loader string
}

// GenerateMermaid produces a Mermaid flowchart of a pipeline. Loaders feed the
// dispatcher, which fans out to observers in declaration order.
// Shapes:
// - Loader: [/Parallelogram/]
// - Dispatcher: ((Circle))
// - Metric observers: [[Subroutine]]
// - Sinks: [(Cylinder)]
// - Default: [Rectangle]
func GenerateMermaid(p config.Pipeline, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, l := range p.Run.Loaders {
		id := "loader_" + sanitizeMermaidID(l.Name)
		fmt.Fprintf(&sb, "    %s[/\"%s <br/> %d x %d\"/]\n", id, escape(l.Name), l.Batches, l.BatchSize)
		fmt.Fprintf(&sb, "    %s --> dispatcher\n", id)
	}
	fmt.Fprintf(&sb, "    dispatcher((\"%s\"))\n", escape(p.Run.Mode))

	prev := "dispatcher"
	for i, o := range p.Observers {
		id := observerID(o.Name)
		opener, closer := "[", "]"
		switch o.Type {
		case config.TypeMetric, config.TypeMultiMetric:
			opener, closer = "[[", "]]"
		case config.TypeRedis, config.TypeSQLite, config.TypePrometheus:
			opener, closer = "[(", ")]"
		}

		label := fmt.Sprintf("%s <br/> %s", escape(o.Name), o.Type)
		if o.Metric != "" {
			label = fmt.Sprintf("%s <br/> %s: %s", escape(o.Name), o.Type, escape(o.Metric))
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", id, opener, label, closer)

		// Dispatch order is shown as a numbered chain.
		fmt.Fprintf(&sb, "    %s -- \"%d\" --> %s\n", prev, i+1, id)
		prev = id
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef fired fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, name := range overlay.Fired {
			id := observerID(name)
			if name == "" || seen[id] {
				continue
			}
			seen[id] = true
			fmt.Fprintf(&sb, "    class %s fired;\n", id)
		}
		if overlay.Loader != "" {
			fmt.Fprintf(&sb, "    class loader_%s current;\n", sanitizeMermaidID(overlay.Loader))
		}
	}

	return sb.String()
}

func observerID(name string) string {
	return "obs_" + sanitizeMermaidID(name)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	r := strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_")
	return r.Replace(id)
}
