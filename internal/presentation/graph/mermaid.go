package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/tabula/pkg/tabulated"
)

// GraphOverlay contains state data to highlight on the graph.
type GraphOverlay struct {
	Seeds []int
}

// GenerateMermaid produces a Mermaid flowchart of a tabulated model.
// labels[i], when present, is appended to the node of state i.
// It applies semantic styling:
// - Absorbing (no applicable action): (((Double Circle)))
// - Default: [Rectangle]
// Deterministic edges are labelled with the action name only.
func GenerateMermaid(m *tabulated.Model, labels []string, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for id := 0; id < m.NumStates; id++ {
		opener, closer := "[", "]"
		if len(m.Applicable(id)) == 0 {
			opener, closer = "(((", ")))"
		}

		text := strconv.Itoa(id)
		if id < len(labels) && labels[id] != "" {
			text = fmt.Sprintf("%d: %s", id, sanitizeLabel(labels[id]))
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", nodeID(id), opener, text, closer))

		for ai, action := range m.Actions {
			for _, o := range m.Transitions[id][ai] {
				label := sanitizeLabel(action)
				if o.P != 1 {
					label = fmt.Sprintf("%s %s", label, strconv.FormatFloat(o.P, 'g', 4, 64))
				}
				sb.WriteString(fmt.Sprintf("    %s -- \"%s\" --> %s\n", nodeID(id), label, nodeID(o.Next)))
			}
		}
	}

	if overlay != nil && len(overlay.Seeds) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef seed fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[int]bool)
		for _, id := range overlay.Seeds {
			if seen[id] || id < 0 || id >= m.NumStates {
				continue
			}
			seen[id] = true
			sb.WriteString(fmt.Sprintf("    class %s seed;\n", nodeID(id)))
		}
	}

	return sb.String()
}

func nodeID(id int) string {
	return "s" + strconv.Itoa(id)
}

func sanitizeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
