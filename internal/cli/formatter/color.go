package formatter

import (
	"fmt"
	"strings"

	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// EntryStatusPill returns a colored indicator for a ledger entry status.
func EntryStatusPill(status domain.EntryStatus) string {
	switch status {
	case domain.EntryPlanned:
		return StyleBlue.Render("○ Planned")
	case domain.EntryInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.EntryCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.EntryPostponed:
		return StyleYellow.Render("→ Postponed")
	default:
		return StyleDim.Render(string(status))
	}
}

// ComponentStatusPill returns a colored indicator for a component's
// lifecycle status.
func ComponentStatusPill(status domain.ComponentStatus) string {
	switch status {
	case domain.ComponentNew:
		return StyleDim.Render("○ New")
	case domain.ComponentInWarehouse:
		return StyleBlue.Render("◆ Warehouse")
	case domain.ComponentAtSite:
		return StylePurple.Render("◆ At Site")
	case domain.ComponentInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.ComponentCompleted:
		return StyleDim.Render("✔ Completed")
	default:
		return StyleDim.Render(string(status))
	}
}

// ProblemPill marks an entry carrying an unresolved problem.
func ProblemPill(open bool) string {
	if open {
		return StyleRed.Render("▲ PROBLEM")
	}
	return ""
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
