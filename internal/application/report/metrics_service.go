package report

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shelterhq/backend/internal/domain/adoption"
	"github.com/shelterhq/backend/internal/domain/animal"
	"github.com/shelterhq/backend/internal/domain/medical"
)

// MetricsService computes read-side aggregations over current entity state.
// Nothing here holds independent invariants; every figure is recomputed on
// demand from the stores.
type MetricsService struct {
	animalRepo  animal.Repository
	intakeRepo  animal.IntakeRepository
	outcomeRepo animal.OutcomeRepository
	taskRepo    medical.TaskRepository
	appRepo     adoption.ApplicationRepository
	fosterRepo  adoption.FosterAssignmentRepository
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(
	animalRepo animal.Repository,
	intakeRepo animal.IntakeRepository,
	outcomeRepo animal.OutcomeRepository,
	taskRepo medical.TaskRepository,
	appRepo adoption.ApplicationRepository,
	fosterRepo adoption.FosterAssignmentRepository,
) *MetricsService {
	return &MetricsService{
		animalRepo:  animalRepo,
		intakeRepo:  intakeRepo,
		outcomeRepo: outcomeRepo,
		taskRepo:    taskRepo,
		appRepo:     appRepo,
		fosterRepo:  fosterRepo,
	}
}

// Dashboard assembles the headline counts evaluated against the caller's
// clock
func (s *MetricsService) Dashboard(ctx context.Context, organizationID uuid.UUID) (*DashboardResponse, error) {
	now := time.Now().UTC()

	statusCounts, err := s.animalRepo.CountByStatus(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	inCare := int64(0)
	for status, count := range statusCounts {
		if !status.IsTerminal() {
			inCare += count
		}
	}

	appCounts, err := s.appRepo.CountByStatus(ctx, organizationID)
	if err != nil {
		return nil, err
	}
	openApplications := appCounts[adoption.ApplicationStatusReceived] + appCounts[adoption.ApplicationStatusReview]

	dueTasks, err := s.taskRepo.FindOpenDueBy(ctx, organizationID, now)
	if err != nil {
		return nil, err
	}
	overdue, dueToday := int64(0), int64(0)
	for i := range dueTasks {
		switch medical.Classify(&dueTasks[i], now) {
		case medical.ClassificationOverdue:
			overdue++
		case medical.ClassificationDueToday:
			dueToday++
		}
	}

	activeFosters, err := s.fosterRepo.CountActive(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		AnimalsInCare:    inCare,
		AnimalsFostered:  statusCounts[animal.StatusFostered],
		AnimalsOnHold:    statusCounts[animal.StatusHold],
		OpenApplications: openApplications,
		OverdueTasks:     overdue,
		TasksDueToday:    dueToday,
		ActiveFosters:    activeFosters,
		GeneratedAt:      now,
	}, nil
}

// SpeciesDistribution returns in-care animal counts per species
func (s *MetricsService) SpeciesDistribution(ctx context.Context, organizationID uuid.UUID) ([]SpeciesCount, error) {
	counts, err := s.animalRepo.CountBySpecies(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	distribution := make([]SpeciesCount, 0, len(counts))
	for species, count := range counts {
		distribution = append(distribution, SpeciesCount{Species: string(species), Count: count})
	}
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].Count != distribution[j].Count {
			return distribution[i].Count > distribution[j].Count
		}
		return distribution[i].Species < distribution[j].Species
	})
	return distribution, nil
}

// IntakeTrend returns intake counts bucketed by calendar month over the
// window, including empty months
func (s *MetricsService) IntakeTrend(ctx context.Context, organizationID uuid.UUID, from, to time.Time) ([]MonthlyCount, error) {
	counts, err := s.intakeRepo.CountByMonth(ctx, organizationID, from, to)
	if err != nil {
		return nil, err
	}

	trend := make([]MonthlyCount, 0)
	for month := monthStart(from); !month.After(to); month = month.AddDate(0, 1, 0) {
		trend = append(trend, MonthlyCount{
			Month: month.Format("2006-01"),
			Count: counts[month],
		})
	}
	return trend, nil
}

// PipelineStages returns application counts per pipeline stage, in stage
// order
func (s *MetricsService) PipelineStages(ctx context.Context, organizationID uuid.UUID) ([]StageCount, error) {
	counts, err := s.appRepo.CountByStatus(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	order := []adoption.ApplicationStatus{
		adoption.ApplicationStatusReceived,
		adoption.ApplicationStatusReview,
		adoption.ApplicationStatusApproved,
		adoption.ApplicationStatusDenied,
		adoption.ApplicationStatusWithdrawn,
	}

	stages := make([]StageCount, 0, len(order))
	for _, status := range order {
		stages = append(stages, StageCount{Stage: status.String(), Count: counts[status]})
	}
	return stages, nil
}

// LiveReleaseRate returns the share of outcomes in the window where the
// animal left alive. A window with no outcomes yields a zero rate.
func (s *MetricsService) LiveReleaseRate(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (*RateResponse, error) {
	counts, err := s.outcomeRepo.CountByType(ctx, organizationID, from, to)
	if err != nil {
		return nil, err
	}

	var live, total int64
	for outcomeType, count := range counts {
		total += count
		if outcomeType.IsLiveRelease() {
			live += count
		}
	}

	return &RateResponse{
		Numerator:   live,
		Denominator: total,
		Rate:        ratio(live, total),
		From:        from,
		To:          to,
	}, nil
}

// ComplianceRate returns completed / (completed + missed) over tasks due in
// the window, evaluated against the caller's clock. Missed means the task
// became overdue and was never completed; cancelled tasks and open tasks not
// yet overdue count neither way.
func (s *MetricsService) ComplianceRate(ctx context.Context, organizationID uuid.UUID, from, to time.Time) (*RateResponse, error) {
	now := time.Now().UTC()

	tasks, err := s.taskRepo.FindInWindow(ctx, organizationID, from, to)
	if err != nil {
		return nil, err
	}

	var completed, total int64
	for i := range tasks {
		switch {
		case tasks[i].Status == medical.TaskStatusCompleted:
			completed++
			total++
		case tasks[i].IsMissed(now):
			total++
		}
	}

	return &RateResponse{
		Numerator:   completed,
		Denominator: total,
		Rate:        ratio(completed, total),
		From:        from,
		To:          to,
	}, nil
}

func ratio(numerator, denominator int64) decimal.Decimal {
	if denominator == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(numerator).DivRound(decimal.NewFromInt(denominator), 4)
}

func monthStart(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}
