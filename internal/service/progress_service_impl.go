package service

import (
	"context"

	"github.com/Kiterion83/cantiere-scheduler/internal/progress"
	"github.com/Kiterion83/cantiere-scheduler/internal/repository"
)

type progressService struct {
	plans        repository.PlanRepo
	ledger       repository.LedgerRepo
	workPackages repository.WorkPackageRepo
	policy       progress.CountPolicy
}

// NewProgressService creates a ProgressService. policy selects how
// phase-level ratios count a component scheduled in multiple weeks.
func NewProgressService(plans repository.PlanRepo, ledger repository.LedgerRepo, workPackages repository.WorkPackageRepo, policy progress.CountPolicy) ProgressService {
	return &progressService{plans: plans, ledger: ledger, workPackages: workPackages, policy: policy}
}

func (s *progressService) WorkPackage(ctx context.Context, wpID string) (*WorkPackageReport, error) {
	summary, err := s.plans.WorkPackageSummary(ctx, wpID)
	if err != nil {
		return nil, err
	}
	report := reportFromSummary(*summary)

	phases, err := s.workPackages.ListPhases(ctx, wpID)
	if err != nil {
		return nil, err
	}
	for _, phase := range phases {
		ps, err := s.plans.PhaseSummary(ctx, wpID, phase.ID)
		if err != nil {
			return nil, err
		}
		report.Phases = append(report.Phases, PhaseProgressRow{
			Phase: phase,
			Ratio: progress.PhaseProgress(progress.PhaseCounts{
				CompletedInstances: ps.CompletedInstances,
				TotalInstances:     ps.TotalInstances,
				CompletedDistinct:  ps.CompletedDistinct,
				TotalDistinct:      ps.TotalDistinct,
			}, s.policy),
		})
	}
	return &report, nil
}

func (s *progressService) Squad(ctx context.Context, squadID string) (*SquadReport, error) {
	summaries, err := s.plans.SquadSummaries(ctx, squadID)
	if err != nil {
		return nil, err
	}
	report := &SquadReport{SquadID: squadID}
	counts := make([]progress.WorkPackageCounts, 0, len(summaries))
	for _, summary := range summaries {
		report.WorkPackages = append(report.WorkPackages, reportFromSummary(summary))
		counts = append(counts, progress.WorkPackageCounts{
			CompletedDistinct: summary.CompletedDistinct,
			Members:           summary.Members,
		})
	}
	report.Ratio = progress.SquadProgress(counts)
	return report, nil
}

func (s *progressService) Project(ctx context.Context, projectID string) (*ProjectReport, error) {
	summaries, err := s.plans.ProjectSummaries(ctx, projectID)
	if err != nil {
		return nil, err
	}
	report := &ProjectReport{ProjectID: projectID}
	ratios := make([]float64, 0, len(summaries))
	for _, summary := range summaries {
		wpReport := reportFromSummary(summary)
		report.WorkPackages = append(report.WorkPackages, wpReport)
		ratios = append(ratios, wpReport.Ratio)
	}

	completed, total, err := s.ledger.StatusCounts(ctx, projectID)
	if err != nil {
		return nil, err
	}
	report.CompletedActions = completed
	report.TotalActions = total

	// Test packages are tracked by an external collaborator system; their
	// contribution enters as zero until that feed is wired.
	report.Weighted = progress.ProjectWeightedProgress(ratios, nil, completed, total)
	return report, nil
}

func reportFromSummary(s repository.WorkPackageSummary) WorkPackageReport {
	return WorkPackageReport{
		WorkPackageID:     s.WorkPackageID,
		CompletedDistinct: s.CompletedDistinct,
		Members:           s.Members,
		Ratio:             progress.WorkPackageProgress(s.CompletedDistinct, s.Members),
	}
}
