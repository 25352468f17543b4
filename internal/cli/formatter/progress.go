package formatter

import (
	"fmt"
	"strings"

	"github.com/Kiterion83/cantiere-scheduler/internal/progress"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBar renders a progress bar like [████░░░░]  45% from a raw
// ratio in [0, 1]. The bar is colored by ratio: green >66%,
// yellow 33-66%, red <33%. Rounding happens here and nowhere earlier.
func RenderBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if ratio < 0.33 {
		style = StyleRed
	} else if ratio < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), progress.Percent(ratio))
}

// Percent renders a ratio as a whole percentage string.
func Percent(ratio float64) string {
	return fmt.Sprintf("%d%%", progress.Percent(ratio))
}
