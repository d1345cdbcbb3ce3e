package computefeasibilityscore

import (
	"encoding/json"

	"feasibility-workers/internal/feasibility"
)

type Input struct {
	AnswerSet json.RawMessage `json:"answerSet"`
}

type Output struct {
	FeasibilityScore int                   `json:"feasibilityScore"`
	ScoreTier        feasibility.Tier      `json:"scoreTier"`
	ScoreBreakdown   feasibility.Breakdown `json:"scoreBreakdown"`
	Recommendations  []string              `json:"recommendations"`
}
