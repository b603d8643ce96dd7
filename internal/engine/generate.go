package engine

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"schoolsched/internal/catalog"
	"schoolsched/internal/config"
	"schoolsched/internal/model"
	"schoolsched/internal/sched"
	"schoolsched/internal/schedule"
	"schoolsched/internal/solve"
)

// GenerateResult is the full outcome of one generation run. Schedule and
// Quality are only meaningful when Status.Solved(); Diagnostics accumulate
// every recovered data- and extraction-level issue.
type GenerateResult struct {
	Status      solve.Status
	Schedule    []sched.Entry
	Quality     schedule.Report
	Diagnostics []string
}

// Engine wires the pipeline: normalize, build, solve, extract, analyze.
// One Engine may serve concurrent runs; every run builds its own model and
// occupancy state.
type Engine struct {
	cfg        config.Config
	normalizer catalog.Normalizer
	solver     solve.Solver
	logger     *zap.Logger
}

func New(cfg config.Config, solver solve.Solver, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if solver == nil {
		solver = solve.NewGophersatSolver(logger)
	}
	return &Engine{
		cfg:        cfg,
		normalizer: catalog.NewNormalizer(catalog.Bounds{MinHours: cfg.Hours.Min, MaxHours: cfg.Hours.Max}),
		solver:     solver,
		logger:     logger,
	}
}

// Generate runs the whole pipeline under the given wall-clock budget.
// Malformed course rows and extraction conflicts are recovered with
// diagnostics; an unbuildable model or solver failure aborts with a typed
// error or status.
func (engine *Engine) Generate(
	raw []sched.RawCourse,
	slots []sched.Slot,
	records []sched.ConstraintRecord,
	limit time.Duration,
	weights model.Weights,
) (GenerateResult, error) {

	logger := engine.logger.With(zap.String("run_id", uuid.NewString()))
	days := schoolDays(slots)

	courses, diagnostics := engine.normalizer.Normalize(raw)
	if len(courses) == 0 {
		if len(raw) > 0 {
			diagnostics = append(diagnostics, "no schedulable course survived normalization")
		}
		return GenerateResult{
			Status:      solve.Optimal,
			Schedule:    []sched.Entry{},
			Quality:     schedule.Analyze(nil, days, engine.cfg.Blocks.Min, engine.cfg.Blocks.Max),
			Diagnostics: diagnostics,
		}, nil
	}

	m, err := model.Build(courses, slots, records, weights, model.Config{
		PriorityCutoff: engine.cfg.PriorityCutoff,
		BlockMin:       engine.cfg.Blocks.Min,
		BlockMax:       engine.cfg.Blocks.Max,
	})
	if err != nil {
		logger.Error("model construction failed", zap.Error(err))
		return GenerateResult{Diagnostics: diagnostics}, err
	}
	logger.Info("model built",
		zap.Int("courses", len(courses)),
		zap.Int("classes", len(sched.ClassUniverse(courses))),
		zap.Int("teachers", len(sched.TeacherUniverse(courses))),
		zap.Int("slots", len(slots)),
		zap.Int("variables", m.Variables),
		zap.Int("constraints", len(m.Constrs)),
	)

	result := engine.solver.Solve(m, limit)
	if !result.Status.Solved() {
		logger.Warn("no schedule produced", zap.Stringer("status", result.Status))
		return GenerateResult{Status: result.Status, Diagnostics: diagnostics}, nil
	}

	entries, extractionDiagnostics := schedule.Extract(courses, slots, result.Assignment, m.Indexer)
	diagnostics = append(diagnostics, extractionDiagnostics...)

	quality := schedule.Analyze(entries, days, engine.cfg.Blocks.Min, engine.cfg.Blocks.Max)
	logger.Info("schedule generated",
		zap.Stringer("status", result.Status),
		zap.Int("entries", len(entries)),
		zap.Int("cost", result.Cost),
		zap.Int("gaps", quality.GapCount),
		zap.Int("conflicts", quality.ConflictCount),
	)

	return GenerateResult{
		Status:      result.Status,
		Schedule:    entries,
		Quality:     quality,
		Diagnostics: diagnostics,
	}, nil
}

func schoolDays(slots []sched.Slot) []int {
	days := lo.Uniq(lo.Map(slots, func(slot sched.Slot, _ int) int { return slot.Day }))
	slices.Sort(days)
	return days
}
