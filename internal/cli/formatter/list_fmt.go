package formatter

import (
	"fmt"
	"strconv"

	"github.com/Kiterion83/cantiere-scheduler/internal/domain"
)

// FormatComponentList renders components as an aligned table.
func FormatComponentList(components []*domain.Component) string {
	headers := []string{"ID", "CODE", "CATEGORY", "DISCIPLINE", "STATUS", "WORK PACKAGE"}
	rows := make([][]string, 0, len(components))
	for _, c := range components {
		wp := Dim("--")
		if c.InWorkPackage() {
			wp = TruncID(*c.WorkPackageID)
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			Bold(c.Code),
			c.CategoryID,
			c.DisciplineID,
			ComponentStatusPill(c.Status),
			wp,
		})
	}
	return RenderTable(headers, rows)
}

// FormatWorkPackageList renders work packages as an aligned table.
func FormatWorkPackageList(wps []*domain.WorkPackage) string {
	headers := []string{"ID", "CODE", "NAME", "FOREMAN", "PRIORITY", "PLANNED"}
	rows := make([][]string, 0, len(wps))
	for _, w := range wps {
		window := Dim("--")
		if w.PlannedStart != nil && w.PlannedEnd != nil {
			window = fmt.Sprintf("%s → %s", w.PlannedStart.Format("2006-01-02"), w.PlannedEnd.Format("2006-01-02"))
		}
		rows = append(rows, []string{
			TruncID(w.ID),
			Bold(w.Code),
			w.Name,
			w.Foreman,
			strconv.Itoa(w.Priority),
			window,
		})
	}
	return RenderTable(headers, rows)
}

// FormatPhaseList renders a discipline's phase catalog in ordinal order.
func FormatPhaseList(phases []*domain.Phase) string {
	headers := []string{"ORD", "ID", "NAME", "FLAGS"}
	rows := make([][]string, 0, len(phases))
	for _, p := range phases {
		var flags string
		if p.Mandatory {
			flags += StyleYellow.Render("mandatory ")
		}
		if p.IsInitial {
			flags += StyleBlue.Render("initial ")
		}
		if p.IsFinal {
			flags += StyleGreen.Render("final")
		}
		rows = append(rows, []string{
			strconv.Itoa(p.Ordinal),
			TruncID(p.ID),
			Bold(p.Name),
			flags,
		})
	}
	return RenderTable(headers, rows)
}

// FormatSquadList renders squads as an aligned table.
func FormatSquadList(squads []*domain.Squad) string {
	headers := []string{"ID", "NAME", "FOREMAN"}
	rows := make([][]string, 0, len(squads))
	for _, s := range squads {
		rows = append(rows, []string{TruncID(s.ID), Bold(s.Name), s.Foreman})
	}
	return RenderTable(headers, rows)
}

// FormatLedgerEntries renders ledger entries as an aligned table.
func FormatLedgerEntries(entries []*domain.LedgerEntry) string {
	headers := []string{"ID", "WEEK", "UNIT", "STATUS", "PRI", "FLAGS"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			TruncID(e.ID),
			WeekLabel(e.Year, e.Week),
			unitLabel(e),
			EntryStatusPill(e.Status),
			strconv.Itoa(e.Priority),
			ProblemPill(e.HasOpenProblem()),
		})
	}
	return RenderTable(headers, rows)
}

func unitLabel(e *domain.LedgerEntry) string {
	if e.WorkPackageID != nil {
		return StylePurple.Render("WP ") + TruncID(*e.WorkPackageID)
	}
	if e.ComponentID != nil {
		return StyleBlue.Render("C  ") + TruncID(*e.ComponentID)
	}
	return Dim("--")
}
