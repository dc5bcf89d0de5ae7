// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fitplanner/internal/domain"
	"fitplanner/internal/metrics"

	log "github.com/sirupsen/logrus"
)

var (
	// ErrPlanNotFound indicates that no plan exists at the requested history position.
	ErrPlanNotFound = errors.New("plan not found")
)

// EmptyHistoryMessage is shown when a session has no plans yet.
const EmptyHistoryMessage = "No plans generated yet."

// PlanService assembles plans and exposes the session history.
type PlanService struct {
	history domain.HistoryRepository
	rng     domain.Rand
	now     func() time.Time
	metrics *metrics.Manager
}

// NewPlanService creates a PlanService backed by the given history store and
// randomness source.
func NewPlanService(history domain.HistoryRepository, rng domain.Rand) *PlanService {
	return &PlanService{history: history, rng: rng, now: time.Now}
}

// WithClock replaces the time source used to stamp plans.
func (s *PlanService) WithClock(now func() time.Time) *PlanService {
	s.now = now
	return s
}

// WithMetrics makes the service count generated plans.
func (s *PlanService) WithMetrics(m *metrics.Manager) *PlanService {
	s.metrics = m
	return s
}

// Generate classifies BMI, selects workout and meals, stamps the current
// date and appends the resulting plan to the session history. Inputs are
// expected to be validated by the caller.
func (s *PlanService) Generate(ctx context.Context, sessionID string, in domain.PlanInput) (*domain.Plan, int, error) {
	bmi, status := domain.ClassifyBMI(in.Weight, in.Height)
	now := s.now()
	plan := domain.Plan{
		Name:      in.Name,
		Age:       in.Age,
		Weight:    in.Weight,
		Height:    in.Height,
		Goal:      in.Goal,
		DietType:  in.DietType,
		Region:    in.Region,
		Budget:    in.Budget,
		Equipment: in.Equipment,
		BMI:       bmi,
		BMIStatus: status,
		Workout:   domain.SelectWorkout(s.rng, in.Goal, in.Equipment),
		Meals:     domain.SelectMeals(s.rng, in.Region, in.DietType, in.Budget),
		Date:      now.In(time.Local).Format("2006-01-02"),
		CreatedAt: now.UTC(),
	}

	pos, err := s.history.AppendPlan(ctx, sessionID, plan.Clone())
	if err != nil {
		return nil, 0, fmt.Errorf("append plan: %w", err)
	}

	if s.metrics != nil {
		s.metrics.CounterPlansGenerated.WithLabelValues(string(plan.Goal)).Inc()
		s.metrics.CounterBMIStatus.WithLabelValues(string(plan.BMIStatus)).Inc()
	}
	log.WithFields(log.Fields{
		"session":  sessionID,
		"position": pos,
		"goal":     plan.Goal,
		"bmi":      plan.BMI,
		"status":   plan.BMIStatus,
		"workout":  len(plan.Workout),
		"meals":    len(plan.Meals),
	}).Debug("plan generated")

	return &plan, pos, nil
}

// Get returns the plan at the 1-based history position.
func (s *PlanService) Get(ctx context.Context, sessionID string, pos int) (*domain.Plan, error) {
	plans, err := s.history.ListPlans(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if pos < 1 || pos > len(plans) {
		return nil, ErrPlanNotFound
	}
	p := plans[pos-1]
	return &p, nil
}

// HistoryEntry is one collapsible item of the history view.
type HistoryEntry struct {
	Position  int              `json:"position"`
	Title     string           `json:"title"`
	Date      string           `json:"date"`
	Name      string           `json:"name"`
	Goal      domain.Goal      `json:"goal"`
	BMI       float64          `json:"bmi"`
	BMIStatus domain.BMIStatus `json:"bmiStatus"`
	Workout   []string         `json:"workout"`
	Meals     []string         `json:"meals"`
}

// History returns the session history most recent first.
func (s *PlanService) History(ctx context.Context, sessionID string) ([]HistoryEntry, error) {
	plans, err := s.history.ListPlans(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	entries := make([]HistoryEntry, 0, len(plans))
	for i, p := range domain.Reverse(plans) {
		entries = append(entries, HistoryEntry{
			Position:  len(plans) - i,
			Title:     fmt.Sprintf("%s — %s (%s)", p.Date, p.Name, p.Goal),
			Date:      p.Date,
			Name:      p.Name,
			Goal:      p.Goal,
			BMI:       p.BMI,
			BMIStatus: p.BMIStatus,
			Workout:   slices.Clone(p.Workout),
			Meals:     slices.Clone(p.Meals),
		})
	}
	return entries, nil
}

// EndSession discards the session and its history.
func (s *PlanService) EndSession(ctx context.Context, sessionID string) error {
	return s.history.EndSession(ctx, sessionID)
}

// Summary is the on-screen result of a submission.
type Summary struct {
	BMI     string `json:"bmi"`
	Workout string `json:"workout"`
	Meals   string `json:"meals"`
}

// Summarize renders the result lines shown right after a submission.
func Summarize(p domain.Plan) Summary {
	return Summary{
		BMI:     fmt.Sprintf("Your BMI is %s (%s)", domain.FormatBMI(p.BMI), p.BMIStatus),
		Workout: strings.Join(p.Workout, ", "),
		Meals:   strings.Join(p.Meals, ", "),
	}
}
