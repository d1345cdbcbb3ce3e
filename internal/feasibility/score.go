package feasibility

import (
	"math"

	"feasibility-workers/internal/models"
)

const (
	fundingCap     = 20
	fundingDivisor = 5000
	maxScore       = 100
)

// Tier buckets a score for the recommendation text.
type Tier string

const (
	TierPositive Tier = "positive"
	TierAdjust   Tier = "adjust"
	TierRevise   Tier = "revise"
)

// Breakdown holds the five sub-scores and their clamped, rounded total.
type Breakdown struct {
	Funding      float64 `json:"funding"`
	Coverage     int     `json:"coverage"`
	Team         int     `json:"team"`
	ModelClarity int     `json:"modelClarity"`
	Regulatory   int     `json:"regulatory"`
	Total        int     `json:"total"`
}

// ComputeFeasibilityScore returns the 0-100 feasibility score.
func ComputeFeasibilityScore(set models.AnswerSet) int {
	return ScoreBreakdown(set).Total
}

// ScoreBreakdown scores each category independently. Missing values fall
// into the lowest band of their category.
func ScoreBreakdown(set models.AnswerSet) Breakdown {
	b := Breakdown{
		Funding:      fundingScore(set),
		Coverage:     coverageScore(set),
		Team:         teamScore(set),
		ModelClarity: modelClarityScore(set),
		Regulatory:   regulatoryScore(set),
	}

	sum := b.Funding + float64(b.Coverage+b.Team+b.ModelClarity+b.Regulatory)
	b.Total = int(math.Min(maxScore, math.Round(sum)))
	if b.Total < 0 {
		b.Total = 0
	}
	return b
}

// TierFor maps a score to its recommendation tier.
func TierFor(score int) Tier {
	switch {
	case score >= 70:
		return TierPositive
	case score >= 40:
		return TierAdjust
	default:
		return TierRevise
	}
}

func fundingScore(set models.AnswerSet) float64 {
	total := set.PersonalContribution + set.FinancialNeedAtLaunch
	if total <= 0 {
		return 0
	}
	return math.Min(fundingCap, total/fundingDivisor)
}

func coverageScore(set models.AnswerSet) int {
	if set.RevenueToUse <= 0 || set.MonthlyCharges <= 0 {
		return 0
	}
	ratio := set.RevenueToUse / set.MonthlyCharges
	switch {
	case ratio >= 2:
		return 25
	case ratio >= 1.5:
		return 18
	case ratio >= 1.2:
		return 12
	default:
		return 5
	}
}

func teamScore(set models.AnswerSet) int {
	headcount := set.NumberOfPartners + set.NumberOfEmployees
	if set.WorkingAlone {
		headcount++
	}
	switch {
	case headcount >= 5:
		return 20
	case headcount >= 3:
		return 15
	case headcount >= 2:
		return 10
	default:
		return 5
	}
}

func modelClarityScore(set models.AnswerSet) int {
	switch {
	case set.AverageBasket > 0 && set.CustomersPerMonth > 0:
		return 20
	case set.RevenueToUse > 0:
		return 10
	default:
		return 0
	}
}

func regulatoryScore(set models.AnswerSet) int {
	switch {
	case !set.NeedsAuthorizations:
		return 15
	case set.HasAuthorizations:
		return 15
	case set.AuthorizationCost > 0 && set.AuthorizationDelay > 0:
		return 8
	default:
		return 0
	}
}
