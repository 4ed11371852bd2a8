// Package driver is the top-level orchestration spec.md §4.G describes:
// seed a Schedule, reduce it, run the two-stage solver, validate the
// result, and compute transparency reasons.
package driver

import (
	stderrors "errors"

	"coursesched/internal/catalog"
	"coursesched/internal/closure"
	"coursesched/internal/schedule"
	"coursesched/internal/solverpipeline"
	"coursesched/internal/transparency"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Limits bundles the configuration knobs the solver stages need.
type Limits struct {
	MaxCreditsPerSemester int
	TimeLimitSeconds      float64
}

// Output is the final product of a driver run: the validated schedule,
// its per-course justifications, and the stage-1/stage-2 objective values
// for observability.
type Output struct {
	RunID         string
	Schedule      schedule.Schedule
	Reasons       map[catalog.CourseCode][]transparency.CourseReasons
	TotalCredits  int64
	LoadDeviation int64
}

// GenerateSchedule runs spec.md §4.G's five steps: parse declared
// programs, seed, reduce, validate (which invokes the two-stage solver),
// and emit. Every program name must resolve in cat or a CatalogLookup
// error is returned.
func GenerateSchedule(cat catalog.Catalog, programNames []string, incoming catalog.Semester, limits Limits, log *zap.Logger) (*Output, error) {
	if log == nil {
		log = zap.NewNop()
	}
	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))

	for _, name := range programNames {
		if _, ok := cat.ProgramByName(name); !ok {
			return nil, newErr(KindCatalogLookup, "declared program not found: "+name, nil)
		}
	}
	for _, code := range incoming {
		if _, ok := cat.Courses[code]; !ok {
			return nil, newErr(KindCatalogLookup, "incoming course not found in catalog: "+code.String(), nil)
		}
	}

	s := schedule.Seed(cat, programNames, incoming)
	s.Reduce()
	log.Info("schedule seeded", zap.Int("programs", len(s.Programs)), zap.Int("semesters", len(s.Courses)))

	candidates := closure.Compute(&s, log)

	result, err := solverpipeline.Run(&s, candidates, solverpipeline.Limits{
		MaxCreditsPerSemester: limits.MaxCreditsPerSemester,
		TimeLimitSeconds:      limits.TimeLimitSeconds,
	}, log)
	if err != nil {
		switch {
		case stderrors.Is(err, solverpipeline.ErrInfeasible):
			return nil, newErr(KindInfeasible, "stage 1 produced no feasible schedule", err)
		default:
			return nil, newErr(KindSolverBackend, "solver backend failure", err)
		}
	}

	if !s.IsValid() {
		return nil, newErr(KindValidation, "solved schedule failed post-hoc validation", nil)
	}

	reasons := transparency.Derive(&s, result.Stage2Model)

	log.Info("schedule generated",
		zap.Int64("total_credits", result.TotalCredits),
		zap.Int64("load_deviation", result.LoadDeviation))

	return &Output{
		RunID:         runID,
		Schedule:      s,
		Reasons:       reasons,
		TotalCredits:  result.TotalCredits,
		LoadDeviation: result.LoadDeviation,
	}, nil
}
