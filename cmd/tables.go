/*
Copyright © 2025 Mathias Djärv <mathias.djarv@allbinary.se>
*/
package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"

	"github.com/allbin/go-board/internal/tui/colors"
	"github.com/allbin/go-board/internal/tui/styles"
)

// printTable renders a static bubble-table with the shared styling.
func printTable(title string, columns []table.Column, rows []table.Row) {
	t := table.New(columns).
		WithRows(rows).
		HeaderStyle(styles.HeaderStyle).
		WithBaseStyle(lipgloss.NewStyle().
			BorderForeground(colors.Surface2).
			Foreground(colors.Text).
			Align(lipgloss.Left)).
		BorderRounded()

	if title != "" {
		fmt.Println(styles.TitleStyle.Render(title))
	}
	fmt.Println(t.View())
}

// mark is a table cell holding a check or a cross.
func mark(ok bool) table.StyledCell {
	s := lipgloss.NewStyle().Foreground(colors.Accepted(ok)).Align(lipgloss.Center)
	if ok {
		return table.NewStyledCell("✓", s)
	}
	return table.NewStyledCell("✗", s)
}

// dash replaces an empty cell value.
func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
