// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// ErrInvalidInput wraps every form parsing and range error.
var ErrInvalidInput = errors.New("invalid input")

// Goal is the training goal selected on the form.
type Goal string

const (
	GoalWeightLoss Goal = "Weight Loss"
	GoalMuscleGain Goal = "Muscle Gain"
	GoalStayFit    Goal = "Stay Fit"
)

// DietType is the eating preference selected on the form.
type DietType string

const (
	DietVegetarian    DietType = "Vegetarian"
	DietNonVegetarian DietType = "Non-Vegetarian"
	DietVegan         DietType = "Vegan"
)

// Region selects the regional base menu.
type Region string

const (
	RegionNorth Region = "North"
	RegionSouth Region = "South"
	RegionEast  Region = "East"
	RegionWest  Region = "West"
)

// Budget is carried through to the plan but does not affect selection.
type Budget string

const (
	BudgetLow    Budget = "Low"
	BudgetMedium Budget = "Medium"
	BudgetHigh   Budget = "High"
)

// Equipment describes what the user can train with.
type Equipment string

const (
	EquipmentNone    Equipment = "None"
	EquipmentBasic   Equipment = "Basic (Dumbbells)"
	EquipmentFullGym Equipment = "Full Gym Access"
)

// Option lists, in the order the form shows them.
var (
	Goals      = []Goal{GoalWeightLoss, GoalMuscleGain, GoalStayFit}
	DietTypes  = []DietType{DietVegetarian, DietNonVegetarian, DietVegan}
	Regions    = []Region{RegionNorth, RegionSouth, RegionEast, RegionWest}
	Budgets    = []Budget{BudgetLow, BudgetMedium, BudgetHigh}
	Equipments = []Equipment{EquipmentNone, EquipmentBasic, EquipmentFullGym}
)

// Form input ranges enforced by the presentation layer.
const (
	MinAge    = 10
	MaxAge    = 80
	MinWeight = 20.0
	MaxWeight = 200.0
	MinHeight = 100.0
	MaxHeight = 220.0
)

// Plan is one generated workout and diet plan. It is never mutated once
// assembled.
type Plan struct {
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Weight    float64   `json:"weight"`
	Height    float64   `json:"height"`
	Goal      Goal      `json:"goal"`
	DietType  DietType  `json:"diet"`
	Region    Region    `json:"region"`
	Budget    Budget    `json:"budget"`
	Equipment Equipment `json:"equipment"`
	BMI       float64   `json:"bmi"`
	BMIStatus BMIStatus `json:"bmiStatus"`
	Workout   []string  `json:"workout"`
	Meals     []string  `json:"meals"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a copy of p that shares no slices with it.
func (p Plan) Clone() Plan {
	p.Workout = slices.Clone(p.Workout)
	p.Meals = slices.Clone(p.Meals)
	return p
}

// PlanInput holds the raw form fields of one submission.
type PlanInput struct {
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	Weight    float64   `json:"weight"`
	Height    float64   `json:"height"`
	Goal      Goal      `json:"goal"`
	DietType  DietType  `json:"diet"`
	Region    Region    `json:"region"`
	Budget    Budget    `json:"budget"`
	Equipment Equipment `json:"equipment"`
}

// Validate checks numeric ranges and enum membership the way the form
// widgets constrain them. NaN fails every range check.
func (in PlanInput) Validate() error {
	if in.Age < MinAge || in.Age > MaxAge {
		return fmt.Errorf("%w: age must be within [%d, %d]", ErrInvalidInput, MinAge, MaxAge)
	}
	if !(in.Weight >= MinWeight && in.Weight <= MaxWeight) {
		return fmt.Errorf("%w: weight must be within [%g, %g]", ErrInvalidInput, MinWeight, MaxWeight)
	}
	if !(in.Height >= MinHeight && in.Height <= MaxHeight) {
		return fmt.Errorf("%w: height must be within [%g, %g]", ErrInvalidInput, MinHeight, MaxHeight)
	}
	if !contains(Goals, in.Goal) {
		return fmt.Errorf("%w: unknown goal %q", ErrInvalidInput, in.Goal)
	}
	if !contains(DietTypes, in.DietType) {
		return fmt.Errorf("%w: unknown diet type %q", ErrInvalidInput, in.DietType)
	}
	if !contains(Regions, in.Region) {
		return fmt.Errorf("%w: unknown region %q", ErrInvalidInput, in.Region)
	}
	if !contains(Budgets, in.Budget) {
		return fmt.Errorf("%w: unknown budget %q", ErrInvalidInput, in.Budget)
	}
	if !contains(Equipments, in.Equipment) {
		return fmt.Errorf("%w: unknown equipment %q", ErrInvalidInput, in.Equipment)
	}
	return nil
}

// Normalize maps compact identifiers ("WeightLoss", "full_gym", "basic")
// onto the canonical labels. Unrecognised values are left untouched so
// Validate can report them.
func (in PlanInput) Normalize() PlanInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Goal = lookup(Goals, in.Goal, nil)
	in.DietType = lookup(DietTypes, in.DietType, nil)
	in.Region = lookup(Regions, in.Region, nil)
	in.Budget = lookup(Budgets, in.Budget, nil)
	in.Equipment = lookup(Equipments, in.Equipment, map[string]Equipment{
		"basic":   EquipmentBasic,
		"fullgym": EquipmentFullGym,
		"gym":     EquipmentFullGym,
	})
	return in
}

func lookup[T ~string](options []T, v T, aliases map[string]T) T {
	key := compact(string(v))
	for _, o := range options {
		if compact(string(o)) == key {
			return o
		}
	}
	if a, ok := aliases[key]; ok {
		return a
	}
	return v
}

func compact(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func contains[T comparable](options []T, v T) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

// HistoryRepository is the port for session-scoped plan history.
type HistoryRepository interface {
	// AppendPlan stores p at the end of the session history and returns its
	// 1-based position.
	AppendPlan(ctx context.Context, sessionID string, p Plan) (int, error)
	// ListPlans returns the session history in insertion order.
	ListPlans(ctx context.Context, sessionID string) ([]Plan, error)
	// EndSession discards the session history.
	EndSession(ctx context.Context, sessionID string) error
}

// ReportRenderer turns report lines into a binary document. The first line
// is the document heading.
type ReportRenderer interface {
	Render(lines []string) ([]byte, error)
	ContentType() string
	Extension() string
}
