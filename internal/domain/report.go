package domain

import "fmt"

// ReportTitle heads every exported report.
const ReportTitle = "AI Workout & Diet Planner Report"

// ReportFileName is the download name without extension.
const ReportFileName = "fitness_plan"

// ReportLines formats p as the ordered lines of the report, title first.
func ReportLines(p Plan) []string {
	lines := make([]string, 0, 8+len(p.Workout)+len(p.Meals))
	lines = append(lines,
		ReportTitle,
		"Name: "+p.Name,
		"Goal: "+string(p.Goal),
		"Diet: "+string(p.DietType),
		"Region: "+string(p.Region),
		fmt.Sprintf("BMI: %s (%s)", FormatBMI(p.BMI), p.BMIStatus),
		"Workout Plan:",
	)
	for _, w := range p.Workout {
		lines = append(lines, "  - "+w)
	}
	lines = append(lines, "Diet Plan:")
	for _, m := range p.Meals {
		lines = append(lines, "  - "+m)
	}
	return lines
}

// FormatBMI renders a BMI value with two decimals.
func FormatBMI(bmi float64) string {
	return fmt.Sprintf("%.2f", bmi)
}
