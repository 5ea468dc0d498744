// Package widgets holds small reusable view fragments.
package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"notefield/engine"
)

// CommandHelp renders the registered command listing grouped by category, in
// registration order within each group.
type CommandHelp struct {
	titleStyle lipgloss.Style
	itemStyle  lipgloss.Style
}

func NewCommandHelp(title, item lipgloss.Color) *CommandHelp {
	return &CommandHelp{
		titleStyle: lipgloss.NewStyle().Foreground(title).Bold(true),
		itemStyle:  lipgloss.NewStyle().Foreground(item),
	}
}

// View renders the listing. Hidden commands never reach it - the runner
// filters them out.
func (h *CommandHelp) View(listing []engine.CommandInfo) string {
	byCategory := make(map[string][]engine.CommandInfo)
	var order []string
	for _, info := range listing {
		if _, ok := byCategory[info.Category]; !ok {
			order = append(order, info.Category)
		}
		byCategory[info.Category] = append(byCategory[info.Category], info)
	}

	var lines []string
	for _, cat := range order {
		lines = append(lines, h.titleStyle.Render(cat))
		for _, info := range byCategory[cat] {
			lines = append(lines, h.itemStyle.Render(fmt.Sprintf("  %s", info.Description)))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
