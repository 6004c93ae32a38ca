package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/tracker/pkg/app/styles"
	"github.com/kerbaras/tracker/pkg/render"
)

// ResultCards draws a results pane. selected < 0 highlights nothing.
func ResultCards(pane render.ResultsPane, selected, width int) string {
	switch pane.State {
	case render.StateIdle:
		return ""
	case render.StateLoading:
		return styles.StatusAiring.Render(pane.Message)
	case render.StateInvalid, render.StateError:
		return styles.StatusError.Render(pane.Message)
	case render.StateEmpty:
		return styles.MutedStyle.Render(pane.Message)
	}

	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Found %d results:", len(pane.Items))))
	b.WriteString("\n\n")

	for i, item := range pane.Items {
		cardStyle := styles.CardStyle
		if i == selected {
			cardStyle = styles.ActiveCardStyle
		}

		lines := []string{
			styles.TitleStyle.UnsetMarginBottom().Render(item.Title),
			styles.StatusStyle(item.Status).Render("Status: " + item.Status),
		}
		if item.CountLabel != "" {
			lines = append(lines, styles.MutedStyle.Render(fmt.Sprintf("%s: %s", item.CountLabel, item.Count)))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			styles.Button("p: + To Be Read", item.CanAddPending),
			" ",
			styles.Button("c: + Read", item.CanAddCompleted),
		))

		b.WriteString(cardStyle.Width(width - 6).Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
		b.WriteString("\n")
	}
	return b.String()
}
