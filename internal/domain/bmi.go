package domain

import "math"

// BMIStatus is the classification bucket for a BMI value.
type BMIStatus string

const (
	BMIUnderweight BMIStatus = "Underweight"
	BMINormal      BMIStatus = "Normal"
	BMIOverweight  BMIStatus = "Overweight"
	BMIObese       BMIStatus = "Obese"
)

// ClassifyBMI computes weight (kg) / height (m)^2 rounded to two decimals
// and its status. A zero height yields a BMI of 0, which falls into the
// Underweight bucket like any other value below 18.5.
func ClassifyBMI(weightKg, heightCm float64) (float64, BMIStatus) {
	var bmi float64
	if heightCm != 0 {
		h := heightCm / 100
		bmi = math.Round(weightKg/(h*h)*100) / 100
	}
	return bmi, BMIStatusFor(bmi)
}

// BMIStatusFor maps a BMI value onto its bucket. Upper bounds are exclusive.
func BMIStatusFor(bmi float64) BMIStatus {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}
