package gallery

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// RenderTable draws the items as a bordered table.
func RenderTable(items []Item) string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		year := ""
		if it.Year > 0 {
			year = strconv.Itoa(it.Year)
		}
		target := it.Path
		if target == "" && it.YouTubeID != "" {
			target = WatchURL(it.YouTubeID)
		}
		rows = append(rows, []string{
			it.SkinName,
			string(it.Type),
			it.Title,
			year,
			strings.Join(it.Tags, ","),
			target,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#6C757D"))).
		Headers("SKIN", "TYPE", "TITLE", "YEAR", "TAGS", "SOURCE").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Rows(rows...)
	return t.String()
}
