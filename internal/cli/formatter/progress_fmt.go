package formatter

import (
	"fmt"
	"strings"

	"github.com/Kiterion83/cantiere-scheduler/internal/service"
)

const barWidth = 20

// FormatWorkPackageReport renders one work package's overall and
// per-phase completion.
func FormatWorkPackageReport(r *service.WorkPackageReport, code string) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Work package %s", code)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Overall  %s  %s\n",
		RenderBar(r.Ratio, barWidth),
		Dim(fmt.Sprintf("%d/%d components", r.CompletedDistinct, r.Members))))

	if len(r.Phases) > 0 {
		b.WriteString("\n")
		for _, row := range r.Phases {
			b.WriteString(fmt.Sprintf("%-20s %s\n", row.Phase.Name, RenderBar(row.Ratio, barWidth)))
		}
	}
	return b.String()
}

// FormatSquadReport renders a squad's pooled completion and its work
// packages.
func FormatSquadReport(r *service.SquadReport, name string, codes map[string]string) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Squad %s", name)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Overall  %s\n\n", RenderBar(r.Ratio, barWidth)))
	for _, wp := range r.WorkPackages {
		code := codes[wp.WorkPackageID]
		if code == "" {
			code = wp.WorkPackageID
		}
		b.WriteString(fmt.Sprintf("%-12s %s  %s\n", code,
			RenderBar(wp.Ratio, barWidth),
			Dim(fmt.Sprintf("%d/%d", wp.CompletedDistinct, wp.Members))))
	}
	return b.String()
}

// FormatProjectReport renders the project-wide weighted KPI and its
// inputs.
func FormatProjectReport(r *service.ProjectReport, codes map[string]string) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Project %s", r.ProjectID)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Weighted KPI  %s\n", RenderBar(r.Weighted, barWidth)))
	b.WriteString(Dim(fmt.Sprintf("Actions: %d/%d completed\n", r.CompletedActions, r.TotalActions)))
	if len(r.WorkPackages) > 0 {
		b.WriteString("\n")
		for _, wp := range r.WorkPackages {
			code := codes[wp.WorkPackageID]
			if code == "" {
				code = wp.WorkPackageID
			}
			b.WriteString(fmt.Sprintf("%-12s %s  %s\n", code,
				RenderBar(wp.Ratio, barWidth),
				Dim(fmt.Sprintf("%d/%d", wp.CompletedDistinct, wp.Members))))
		}
	}
	return b.String()
}
