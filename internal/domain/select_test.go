package domain_test

import (
	"math/rand/v2"
	"testing"

	"fitplanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const iterations = 500

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestSelectMeals(t *testing.T) {
	rng := newRand(1)
	nonVeg := domain.DietAddons(domain.DietNonVegetarian)
	vegan := domain.DietAddons(domain.DietVegan)
	require.Len(t, vegan, 2)

	for _, region := range domain.Regions {
		base := domain.BaseMenu(region)
		require.Len(t, base, 3)

		t.Run(string(region), func(t *testing.T) {
			for i := 0; i < iterations; i++ {
				veg := domain.SelectMeals(rng, region, domain.DietVegetarian, domain.BudgetLow)
				require.Len(t, veg, 2)
				assert.NotEqual(t, veg[0], veg[1])
				assert.Subset(t, base, veg)

				nv := domain.SelectMeals(rng, region, domain.DietNonVegetarian, domain.BudgetMedium)
				require.Len(t, nv, 3)
				assert.NotEqual(t, nv[0], nv[1])
				assert.Subset(t, base, nv[:2])
				assert.Contains(t, nonVeg, nv[2])

				vg := domain.SelectMeals(rng, region, domain.DietVegan, domain.BudgetHigh)
				require.Len(t, vg, 3)
				assert.Subset(t, base, vg[:2])
				assert.Contains(t, vegan, vg[2])
			}
		})
	}
}

func TestSelectMeals_UnknownRegionUsesNorth(t *testing.T) {
	rng := newRand(2)
	north := domain.BaseMenu(domain.RegionNorth)
	assert.Equal(t, north, domain.BaseMenu(domain.Region("Central")))

	for i := 0; i < iterations; i++ {
		meals := domain.SelectMeals(rng, domain.Region("Central"), domain.DietVegetarian, domain.BudgetLow)
		require.Len(t, meals, 2)
		assert.Subset(t, north, meals)
	}
}

func TestSelectMeals_OrderIsRandomised(t *testing.T) {
	rng := newRand(3)
	seen := map[[2]string]bool{}
	for i := 0; i < iterations; i++ {
		meals := domain.SelectMeals(rng, domain.RegionSouth, domain.DietVegetarian, domain.BudgetLow)
		seen[[2]string{meals[0], meals[1]}] = true
	}
	// 3 dishes taken 2 at a time in order.
	assert.Len(t, seen, 6)
}

func TestSelectMeals_BudgetIsIgnored(t *testing.T) {
	for _, b := range domain.Budgets {
		got := domain.SelectMeals(newRand(4), domain.RegionEast, domain.DietVegan, b)
		want := domain.SelectMeals(newRand(4), domain.RegionEast, domain.DietVegan, domain.BudgetLow)
		assert.Equal(t, want, got, "budget %s", b)
	}
}

func TestSelectWorkout_WithEquipment(t *testing.T) {
	rng := newRand(5)
	for _, goal := range domain.Goals {
		pool := domain.GoalWorkouts(goal)
		require.Len(t, pool, 5)
		for _, eq := range []domain.Equipment{domain.EquipmentBasic, domain.EquipmentFullGym} {
			for i := 0; i < iterations; i++ {
				w := domain.SelectWorkout(rng, goal, eq)
				require.Len(t, w, 3)
				assert.Subset(t, pool, w)
				assert.NotEqual(t, w[0], w[1])
				assert.NotEqual(t, w[0], w[2])
				assert.NotEqual(t, w[1], w[2])
			}
		}
	}
}

func TestSelectWorkout_NoEquipmentFiltersAfterSampling(t *testing.T) {
	rng := newRand(6)
	require.ElementsMatch(t, []string{"Bench Press", "Deadlifts"}, domain.ExcludedExercises(domain.EquipmentNone))
	assert.Empty(t, domain.ExcludedExercises(domain.EquipmentFullGym))
	lengths := map[int]int{}
	for i := 0; i < 5*iterations; i++ {
		w := domain.SelectWorkout(rng, domain.GoalMuscleGain, domain.EquipmentNone)
		require.NotEmpty(t, w)
		require.LessOrEqual(t, len(w), 3)
		for _, ex := range domain.ExcludedExercises(domain.EquipmentNone) {
			assert.NotContains(t, w, ex)
		}
		lengths[len(w)]++
	}
	// Post-filtering yields every length from 1 to 3 over enough draws.
	assert.Positive(t, lengths[1])
	assert.Positive(t, lengths[2])
	assert.Positive(t, lengths[3])
}

func TestSelectWorkout_NoEquipmentOtherGoalsKeepThree(t *testing.T) {
	rng := newRand(7)
	for _, goal := range []domain.Goal{domain.GoalWeightLoss, domain.GoalStayFit} {
		for i := 0; i < iterations; i++ {
			assert.Len(t, domain.SelectWorkout(rng, goal, domain.EquipmentNone), 3)
		}
	}
}

func TestSelectWorkout_DoesNotMutateCatalog(t *testing.T) {
	before := domain.GoalWorkouts(domain.GoalStayFit)
	for i := 0; i < 20; i++ {
		_ = domain.SelectWorkout(newRand(uint64(i)), domain.GoalStayFit, domain.EquipmentNone)
	}
	assert.Equal(t, before, domain.GoalWorkouts(domain.GoalStayFit))
}

func TestSelectWorkout_UnknownGoal(t *testing.T) {
	assert.Empty(t, domain.SelectWorkout(newRand(8), domain.Goal("Marathon"), domain.EquipmentFullGym))
}
