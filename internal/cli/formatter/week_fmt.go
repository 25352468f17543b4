package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
	"github.com/Kiterion83/cantiere-scheduler/internal/service"
)

// FormatWeekBoard renders everything scheduled for one week: the direct
// ledger entries first, then each work package's planned component list
// with completion ticks.
func FormatWeekBoard(board *service.WeekBoard, componentCodes map[string]string) string {
	var b strings.Builder

	title := fmt.Sprintf("Week %s (%s)", WeekLabel(board.Year, board.Week), WeekRange(board.Year, board.Week))
	b.WriteString(Header(title))
	b.WriteString("\n\n")

	if len(board.Entries) == 0 && len(board.Plans) == 0 {
		b.WriteString(Dim("Nothing scheduled."))
		b.WriteString("\n")
		return b.String()
	}

	if len(board.Entries) > 0 {
		b.WriteString(FormatLedgerEntries(board.Entries))
		b.WriteString("\n")
	}

	for _, plan := range board.Plans {
		done := 0
		for _, pc := range plan.Components {
			if pc.Completed {
				done++
			}
		}
		b.WriteString(fmt.Sprintf("%s %s  %s\n",
			StylePurple.Render("WP"),
			TruncID(plan.WorkPackageID),
			Dim(fmt.Sprintf("phase %s — %d/%d done", plan.PhaseID[:min(8, len(plan.PhaseID))], done, len(plan.Components)))))
		for _, pc := range plan.Components {
			tick := StyleDim.Render("○")
			if pc.Completed {
				tick = StyleGreen.Render("✔")
			}
			code := componentCodes[pc.ComponentID]
			if code == "" {
				code = pc.ComponentID
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", tick, code))
		}
	}

	return b.String()
}

// FormatProblems renders open problem reports with reporter and age.
func FormatProblems(entries []*domain.LedgerEntry, now time.Time) string {
	headers := []string{"ID", "WEEK", "UNIT", "REPORTER", "AGE", "DESCRIPTION"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			TruncID(e.ID),
			WeekLabel(e.Year, e.Week),
			unitLabel(e),
			e.ProblemReporter,
			Age(e.UpdatedAt, now),
			StyleRed.Render(e.ProblemDescription),
		})
	}
	return RenderTable(headers, rows)
}
