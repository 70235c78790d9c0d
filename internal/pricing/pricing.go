// Package pricing estimates what automating manual work saves.
package pricing

import "math"

// Defaults used when the caller leaves a rate out.
const (
	DefaultHourlyRate     = 50.0
	DefaultAutomationRate = 0.7
	WeeksPerMonth         = 4.33
	MonthsPerYear         = 12
)

// Plans.
const (
	PlanStarter = "starter"
	PlanGrowth  = "growth"
	PlanScale   = "scale"
)

// plan thresholds in hours saved per week
const (
	growthFrom = 10.0
	scaleFrom  = 30.0
)

// Plan describes a plan on the pricing section.
type Plan struct {
	Name        string
	Title       string
	Description string
	// MinHoursSaved is the hours saved per week from which the plan is recommended.
	MinHoursSaved float64
}

// Plans returns the plans from smallest to largest.
func Plans() []Plan {
	return []Plan{
		{Name: PlanStarter, Title: "Starter", Description: "One or two automations for the tasks that hurt most."},
		{
			Name: PlanGrowth, Title: "Growth", MinHoursSaved: growthFrom,
			Description: "Connected workflows across sales, billing and onboarding.",
		},
		{
			Name: PlanScale, Title: "Scale", MinHoursSaved: scaleFrom,
			Description: "A dedicated automation partner for the whole operation.",
		},
	}
}

// Input of an estimate. Zero rates take the defaults.
type Input struct {
	HoursPerWeek   float64
	HourlyRate     float64
	AutomationRate float64
}

// Estimate is the result of Calculate.
type Estimate struct {
	WeeklyHoursSaved  float64 `json:"weeklyHoursSaved"`
	MonthlyHoursSaved float64 `json:"monthlyHoursSaved"`
	MonthlySavings    float64 `json:"monthlySavings"`
	YearlySavings     float64 `json:"yearlySavings"`
	RecommendedPlan   string  `json:"recommendedPlan"`
}

// Calculate returns the savings estimate for in. Negative hours count as zero.
func Calculate(in Input) Estimate {
	hourly := in.HourlyRate
	if hourly <= 0 {
		hourly = DefaultHourlyRate
	}

	rate := in.AutomationRate
	if rate <= 0 {
		rate = DefaultAutomationRate
	}

	hours := math.Max(in.HoursPerWeek, 0)

	weekly := hours * rate
	monthlyHours := weekly * WeeksPerMonth
	monthlySavings := monthlyHours * hourly

	return Estimate{
		WeeklyHoursSaved:  round2(weekly),
		MonthlyHoursSaved: round2(monthlyHours),
		MonthlySavings:    round2(monthlySavings),
		YearlySavings:     round2(monthlySavings * MonthsPerYear),
		RecommendedPlan:   Recommend(weekly),
	}
}

// Recommend picks the plan for the hours saved per week.
func Recommend(weeklyHoursSaved float64) string {
	switch {
	case weeklyHoursSaved >= scaleFrom:
		return PlanScale
	case weeklyHoursSaved >= growthFrom:
		return PlanGrowth
	default:
		return PlanStarter
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100 //nolint:mnd
}
