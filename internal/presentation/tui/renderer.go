package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/tabulated"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() (func(string) (string, error), error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}, nil
}

// StateTable builds a markdown table with one row per enumerated state.
// When m is non-nil a column lists the actions applicable in each state.
func StateTable(states []*domain.State, m *tabulated.Model) string {
	var sb strings.Builder
	if m != nil {
		sb.WriteString("| id | state | actions |\n|---:|---|---|\n")
	} else {
		sb.WriteString("| id | state |\n|---:|---|\n")
	}

	for id, s := range states {
		cell := escapeCell(s.String())
		if m == nil {
			sb.WriteString(fmt.Sprintf("| %d | `%s` |\n", id, cell))
			continue
		}
		actions := strings.Join(m.Applicable(id), ", ")
		if actions == "" {
			actions = "_absorbing_"
		}
		sb.WriteString(fmt.Sprintf("| %d | `%s` | %s |\n", id, cell, actions))
	}
	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
