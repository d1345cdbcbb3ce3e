package applyfieldupdate

import (
	"encoding/json"

	"feasibility-workers/internal/models"
)

type Input struct {
	AnswerSet json.RawMessage `json:"answerSet"`
	Field     string          `json:"field"`
	Value     interface{}     `json:"value"`
}

type Output struct {
	AnswerSet    models.AnswerSet `json:"answerSet"`
	UpdatedField string           `json:"updatedField"`
}
