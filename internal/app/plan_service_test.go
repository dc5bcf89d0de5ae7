package app_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"fitplanner/internal/adapter/memory"
	"fitplanner/internal/app"
	"fitplanner/internal/domain"
	"fitplanner/internal/metrics"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockHistoryRepo struct {
	appendFn func(ctx context.Context, sessionID string, p domain.Plan) (int, error)
	listFn   func(ctx context.Context, sessionID string) ([]domain.Plan, error)
	endFn    func(ctx context.Context, sessionID string) error
}

func (m *mockHistoryRepo) AppendPlan(ctx context.Context, sessionID string, p domain.Plan) (int, error) {
	if m.appendFn != nil {
		return m.appendFn(ctx, sessionID, p)
	}
	return 1, nil
}

func (m *mockHistoryRepo) ListPlans(ctx context.Context, sessionID string) ([]domain.Plan, error) {
	if m.listFn != nil {
		return m.listFn(ctx, sessionID)
	}
	return nil, nil
}

func (m *mockHistoryRepo) EndSession(ctx context.Context, sessionID string) error {
	if m.endFn != nil {
		return m.endFn(ctx, sessionID)
	}
	return nil
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func alexInput() domain.PlanInput {
	return domain.PlanInput{
		Name:      "Alex",
		Age:       30,
		Weight:    70,
		Height:    175,
		Goal:      domain.GoalMuscleGain,
		DietType:  domain.DietVegetarian,
		Region:    domain.RegionSouth,
		Budget:    domain.BudgetMedium,
		Equipment: domain.EquipmentFullGym,
	}
}

func TestGenerate_EndToEnd(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)
	m := metrics.NewTestManager()
	svc := app.NewPlanService(memory.New(time.Hour), seeded(1)).
		WithClock(func() time.Time { return fixed }).
		WithMetrics(m)

	plan, pos, err := svc.Generate(context.Background(), "s1", alexInput())
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	assert.Equal(t, "Alex", plan.Name)
	assert.Equal(t, 30, plan.Age)
	assert.Equal(t, domain.BudgetMedium, plan.Budget)
	assert.Equal(t, 22.86, plan.BMI)
	assert.Equal(t, domain.BMINormal, plan.BMIStatus)
	assert.Equal(t, "2026-03-14", plan.Date)

	require.Len(t, plan.Workout, 3)
	assert.Subset(t, []string{"Pushups", "Squats", "Bench Press", "Deadlifts", "Lunges"}, plan.Workout)
	assert.NotEqual(t, plan.Workout[0], plan.Workout[1])
	assert.NotEqual(t, plan.Workout[1], plan.Workout[2])
	assert.NotEqual(t, plan.Workout[0], plan.Workout[2])

	require.Len(t, plan.Meals, 2)
	assert.Subset(t, []string{"Idli Sambar", "Curd Rice", "Vegetable Upma"}, plan.Meals)
	assert.NotEqual(t, plan.Meals[0], plan.Meals[1])

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterPlansGenerated.WithLabelValues("Muscle Gain")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterBMIStatus.WithLabelValues("Normal")))
}

func TestGenerate_AppendsOncePerCall(t *testing.T) {
	var appended []domain.Plan
	repo := &mockHistoryRepo{
		appendFn: func(_ context.Context, sessionID string, p domain.Plan) (int, error) {
			assert.Equal(t, "s1", sessionID)
			appended = append(appended, p)
			return len(appended), nil
		},
	}
	svc := app.NewPlanService(repo, seeded(2))

	for i := 1; i <= 3; i++ {
		_, pos, err := svc.Generate(context.Background(), "s1", alexInput())
		require.NoError(t, err)
		assert.Equal(t, i, pos)
		assert.Len(t, appended, i)
	}
}

func TestGenerate_RepoError(t *testing.T) {
	repoErr := errors.New("boom")
	svc := app.NewPlanService(&mockHistoryRepo{
		appendFn: func(context.Context, string, domain.Plan) (int, error) { return 0, repoErr },
	}, seeded(3))

	plan, _, err := svc.Generate(context.Background(), "s1", alexInput())
	assert.Nil(t, plan)
	assert.ErrorIs(t, err, repoErr)
}

func TestGenerate_RandomInputsAreStructurallyValid(t *testing.T) {
	faker := gofakeit.New(42)
	svc := app.NewPlanService(memory.New(0), seeded(4))
	ctx := context.Background()

	for i := 0; i < 300; i++ {
		in := domain.PlanInput{
			Name:      faker.Name(),
			Age:       faker.IntRange(domain.MinAge, domain.MaxAge),
			Weight:    faker.Float64Range(domain.MinWeight, domain.MaxWeight),
			Height:    faker.Float64Range(domain.MinHeight, domain.MaxHeight),
			Goal:      domain.Goals[faker.IntRange(0, len(domain.Goals)-1)],
			DietType:  domain.DietTypes[faker.IntRange(0, len(domain.DietTypes)-1)],
			Region:    domain.Regions[faker.IntRange(0, len(domain.Regions)-1)],
			Budget:    domain.Budgets[faker.IntRange(0, len(domain.Budgets)-1)],
			Equipment: domain.Equipments[faker.IntRange(0, len(domain.Equipments)-1)],
		}
		require.NoError(t, in.Validate())

		plan, pos, err := svc.Generate(ctx, "fuzz", in)
		require.NoError(t, err)
		assert.Equal(t, i+1, pos)
		assert.NotEmpty(t, plan.Workout)
		assert.LessOrEqual(t, len(plan.Workout), 3)
		assert.NotEmpty(t, plan.Meals)
		if in.DietType == domain.DietVegetarian {
			assert.Len(t, plan.Meals, 2)
		} else {
			assert.Len(t, plan.Meals, 3)
		}
		assert.Positive(t, plan.BMI)
		assert.Equal(t, domain.BMIStatusFor(plan.BMI), plan.BMIStatus)
	}
}

func TestHistory_ReverseOrder(t *testing.T) {
	svc := app.NewPlanService(memory.New(time.Hour), seeded(5))
	ctx := context.Background()

	entries, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, entries)

	p1 := alexInput()
	p1.Name = "P1"
	p2 := alexInput()
	p2.Name = "P2"
	p2.Goal = domain.GoalStayFit

	first, _, err := svc.Generate(ctx, "s1", p1)
	require.NoError(t, err)
	_, _, err = svc.Generate(ctx, "s1", p2)
	require.NoError(t, err)

	entries, err = svc.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "P2", entries[0].Name)
	assert.Equal(t, 2, entries[0].Position)
	assert.Equal(t, "P1", entries[1].Name)
	assert.Equal(t, 1, entries[1].Position)
	assert.Equal(t, first.Date+" — P1 (Muscle Gain)", entries[1].Title)
	assert.Equal(t, first.Workout, entries[1].Workout)

	// Earlier entries are unchanged by later submissions.
	again, err := svc.Get(ctx, "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, *first, *again)

	// Sessions are independent.
	other, err := svc.History(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGenerate_StoredPlanIsImmutable(t *testing.T) {
	svc := app.NewPlanService(memory.New(time.Hour), seeded(8))
	ctx := context.Background()

	plan, _, err := svc.Generate(ctx, "s1", alexInput())
	require.NoError(t, err)
	wantWorkout := append([]string(nil), plan.Workout...)
	wantMeals := append([]string(nil), plan.Meals...)

	plan.Workout[0] = "MUTATED"
	plan.Meals[0] = "MUTATED"

	entries, err := svc.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, wantWorkout, entries[0].Workout)
	entries[0].Workout[0] = "MUTATED"
	entries[0].Meals[0] = "MUTATED"

	got, err := svc.Get(ctx, "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, wantWorkout, got.Workout)
	assert.Equal(t, wantMeals, got.Meals)
	got.Workout[0] = "MUTATED"

	again, err := svc.Get(ctx, "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, wantWorkout, again.Workout)
}

func TestGet_OutOfRange(t *testing.T) {
	svc := app.NewPlanService(&mockHistoryRepo{
		listFn: func(context.Context, string) ([]domain.Plan, error) {
			return []domain.Plan{{Name: "only"}}, nil
		},
	}, seeded(6))

	for _, pos := range []int{0, -1, 2} {
		_, err := svc.Get(context.Background(), "s1", pos)
		assert.ErrorIs(t, err, app.ErrPlanNotFound, "pos %d", pos)
	}
	p, err := svc.Get(context.Background(), "s1", 1)
	require.NoError(t, err)
	assert.Equal(t, "only", p.Name)
}

func TestEndSession(t *testing.T) {
	ended := ""
	svc := app.NewPlanService(&mockHistoryRepo{
		endFn: func(_ context.Context, sessionID string) error {
			ended = sessionID
			return nil
		},
	}, seeded(7))
	require.NoError(t, svc.EndSession(context.Background(), "s9"))
	assert.Equal(t, "s9", ended)
}

func TestSummarize(t *testing.T) {
	s := app.Summarize(domain.Plan{
		BMI:       22.86,
		BMIStatus: domain.BMINormal,
		Workout:   []string{"Pushups", "Squats", "Lunges"},
		Meals:     []string{"Curd Rice", "Idli Sambar"},
	})
	assert.Equal(t, "Your BMI is 22.86 (Normal)", s.BMI)
	assert.Equal(t, "Pushups, Squats, Lunges", s.Workout)
	assert.Equal(t, "Curd Rice, Idli Sambar", s.Meals)
}
