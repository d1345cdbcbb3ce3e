package applyfieldupdate

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feasibility-workers/internal/common/config"
	"feasibility-workers/internal/common/errors"
	"feasibility-workers/internal/common/logger"
	"feasibility-workers/internal/models"
)

func createTestHandler(t *testing.T) *Handler {
	t.Helper()
	h, err := NewHandler(LoadConfig(config.WorkerConfig{}), logger.NewTestLogger(t))
	require.NoError(t, err)
	return h
}

func createTestInput(field string, value interface{}) *Input {
	return &Input{
		AnswerSet: json.RawMessage(`{"businessName":"Chez Léa","businessType":"service","targetRevenueService":4000}`),
		Field:     field,
		Value:     value,
	}
}

func TestLoadConfig(t *testing.T) {
	assert.Equal(t, 5e9, float64(LoadConfig(config.WorkerConfig{}).Timeout))
	assert.Equal(t, 2e9, float64(LoadConfig(config.WorkerConfig{Timeout: 2000}).Timeout))
}

func TestHandler_Execute_Success(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name  string
		field string
		value interface{}
		check func(t *testing.T, s models.AnswerSet)
	}{
		{
			name:  "service target without basket",
			field: "customersPerMonth",
			value: float64(0),
			check: func(t *testing.T, s models.AnswerSet) {
				assert.Equal(t, 4000.0, s.RevenueToUse)
				assert.Equal(t, 200.0, s.RevenuePerDay)
				assert.Equal(t, 25.0, s.HourlyRate)
			},
		},
		{
			name:  "time split complement",
			field: "productionPercentage",
			value: float64(30),
			check: func(t *testing.T, s models.AnswerSet) {
				assert.Equal(t, 30.0, s.ProductionPercentage)
				assert.Equal(t, 70.0, s.SalesPercentage)
			},
		},
		{
			name:  "realistic months",
			field: "monthsToReachSalary",
			value: float64(6),
			check: func(t *testing.T, s models.AnswerSet) {
				assert.Equal(t, 18, s.RealisticMonths)
			},
		},
		{
			name:  "month list capped",
			field: "highMonths",
			value: []interface{}{"Juin", "Juillet", "Août", "Décembre"},
			check: func(t *testing.T, s models.AnswerSet) {
				assert.Equal(t, []string{"Juin", "Juillet", "Août"}, s.HighMonths)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), createTestInput(tt.field, tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.field, out.UpdatedField)
			assert.Equal(t, "Chez Léa", out.AnswerSet.BusinessName)
			tt.check(t, out.AnswerSet)
		})
	}
}

func TestHandler_Execute_Errors(t *testing.T) {
	h := createTestHandler(t)

	tests := []struct {
		name  string
		input *Input
		code  errors.ErrorCode
	}{
		{name: "unknown field", input: createTestInput("favouriteColour", "blue"), code: errors.ErrCodeUnknownField},
		{name: "derived field", input: createTestInput("hourlyRate", float64(12)), code: errors.ErrCodeDerivedField},
		{name: "type mismatch", input: createTestInput("desiredSalary", "beaucoup"), code: errors.ErrCodeFieldTypeMismatch},
		{name: "fractional integer", input: createTestInput("numberOfEmployees", 1.5), code: errors.ErrCodeFieldTypeMismatch},
		{
			name:  "broken answer-set",
			input: &Input{AnswerSet: json.RawMessage(`{"desiredSalary":"x"}`), Field: "businessName", Value: "x"},
			code:  errors.ErrCodeInputValidationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.Execute(context.Background(), tt.input)
			require.Error(t, err)

			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, tt.code, stdErr.Code)
			assert.False(t, stdErr.Retryable)
		})
	}
}

func TestHandler_Execute_LegacyAnswerSet(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		AnswerSet: json.RawMessage(`{"businessName":"Atelier","hasTeam":"solo"}`),
		Field:     "desiredSalary",
		Value:     float64(2500),
	})
	require.NoError(t, err)
	assert.Equal(t, "Atelier", out.AnswerSet.BusinessName)
	assert.Equal(t, 2500.0, out.AnswerSet.DesiredSalary)
	assert.True(t, out.AnswerSet.WorkingAlone)
}
