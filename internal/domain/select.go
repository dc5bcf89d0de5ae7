package domain

import "math/rand/v2"

// Rand is the randomness source used for sampling. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// GlobalRand draws from the goroutine-safe top-level math/rand/v2 source.
type GlobalRand struct{}

func (GlobalRand) IntN(n int) int                     { return rand.IntN(n) }
func (GlobalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// SelectMeals picks two distinct base dishes for region in random order and
// appends one diet addon when the diet has any. Budget is accepted but does
// not influence the selection.
func SelectMeals(rng Rand, region Region, diet DietType, _ Budget) []string {
	meals := sample(rng, BaseMenu(region), baseMealCount)
	if addons := dietAddons[diet]; len(addons) > 0 {
		meals = append(meals, addons[rng.IntN(len(addons))])
	}
	return meals
}

// SelectWorkout picks three distinct exercises for goal, then drops the ones
// the equipment level excludes. Filtering happens after sampling, so the
// result may hold fewer than three entries.
func SelectWorkout(rng Rand, goal Goal, equipment Equipment) []string {
	chosen := sample(rng, GoalWorkouts(goal), workoutCount)
	if excluded := ExcludedExercises(equipment); len(excluded) > 0 {
		kept := chosen[:0]
		for _, w := range chosen {
			if !contains(excluded, w) {
				kept = append(kept, w)
			}
		}
		chosen = kept
	}
	if len(chosen) > workoutCount {
		chosen = chosen[:workoutCount]
	}
	return chosen
}

// sample shuffles pool in place and returns its first n entries.
func sample(rng Rand, pool []string, n int) []string {
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if n > len(pool) {
		n = len(pool)
	}
	out := make([]string, n)
	copy(out, pool[:n])
	return out
}
