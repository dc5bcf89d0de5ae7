package domain

// regionMenus holds the three base dishes for each region.
var regionMenus = map[Region][]string{
	RegionNorth: {"Rajma Chawal", "Paneer Bhurji", "Paratha with Curd"},
	RegionSouth: {"Idli Sambar", "Curd Rice", "Vegetable Upma"},
	RegionEast:  {"Poha", "Dal Khichdi", "Veg Thali"},
	RegionWest:  {"Thepla", "Sprout Salad", "Bajra Khichdi"},
}

// dietAddons lists the extra dish candidates per diet type. Diets without
// an entry get no addon.
var dietAddons = map[DietType][]string{
	DietNonVegetarian: {"Grilled Chicken", "Fish Curry", "Egg Bhurji"},
	DietVegan:         {"Tofu Stir Fry", "Soybean Curry"},
}

// goalWorkouts holds the five exercise candidates for each goal.
var goalWorkouts = map[Goal][]string{
	GoalWeightLoss: {"Cardio", "Jump Rope", "HIIT", "Burpees", "Mountain Climbers"},
	GoalMuscleGain: {"Pushups", "Squats", "Bench Press", "Deadlifts", "Lunges"},
	GoalStayFit:    {"Yoga", "Cycling", "Stretching", "Jogging", "Planks"},
}

// equipmentExclusions names exercises dropped for each equipment level.
var equipmentExclusions = map[Equipment][]string{
	EquipmentNone: {"Bench Press", "Deadlifts"},
}

const (
	baseMealCount = 2
	workoutCount  = 3
)

// BaseMenu returns a copy of the base dishes for region, falling back to
// the North menu for unknown regions.
func BaseMenu(region Region) []string {
	menu, ok := regionMenus[region]
	if !ok {
		menu = regionMenus[RegionNorth]
	}
	return clone(menu)
}

// DietAddons returns a copy of the addon candidates for diet.
func DietAddons(diet DietType) []string {
	return clone(dietAddons[diet])
}

// GoalWorkouts returns a copy of the exercise candidates for goal.
func GoalWorkouts(goal Goal) []string {
	return clone(goalWorkouts[goal])
}

// ExcludedExercises returns a copy of the exercises filtered out for equipment.
func ExcludedExercises(equipment Equipment) []string {
	return clone(equipmentExclusions[equipment])
}

func clone(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
