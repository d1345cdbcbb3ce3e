package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feasibility-workers/internal/document"
	"feasibility-workers/internal/feasibility"
	"feasibility-workers/internal/models"
	"feasibility-workers/pkg/registry"
)

func writeAnswers(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadAnswerSet(t *testing.T) {
	path := writeAnswers(t, `{"businessName":"Chez Léa","businessType":"product","targetRevenueProduct":3000}`)

	set, err := readAnswerSet(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "Chez Léa", set.BusinessName)
	assert.Equal(t, 3000.0, set.RevenueToUse)

	set, err = readAnswerSet(strings.NewReader(`{"businessName":"Stdin"}`), "-")
	require.NoError(t, err)
	assert.Equal(t, "Stdin", set.BusinessName)

	_, err = readAnswerSet(nil, filepath.Join(t.TempDir(), "missing.json"))
	assert.True(t, os.IsNotExist(err))

	_, err = readAnswerSet(nil, writeAnswers(t, `[1,2]`))
	assert.Error(t, err)
}

func TestWriteScore(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeScore(&buf, models.NewAnswerSet()))

	var report scoreReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &report))
	assert.Equal(t, 20, report.Score)
	assert.Equal(t, feasibility.TierRevise, report.Tier)
	assert.Equal(t, report.Score, report.Breakdown.Total)
	require.Len(t, report.Recommendations, 2)
	assert.True(t, strings.HasPrefix(report.Recommendations[0], "! "))
}

func TestSetField(t *testing.T) {
	set := models.NewAnswerSet()

	set, err := setField(set, "businessType", "product")
	require.NoError(t, err)
	set, err = setField(set, "targetRevenueProduct", "3000")
	require.NoError(t, err)
	assert.Equal(t, 3000.0, set.RevenueToUse)

	set, err = setField(set, "productionPercentage", "30")
	require.NoError(t, err)
	assert.Equal(t, 70.0, set.SalesPercentage)

	set, err = setField(set, "where", `["Paris","Lyon"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "Lyon"}, set.Where)

	set, err = setField(set, "businessName", "123")
	require.NoError(t, err)
	assert.Equal(t, "123", set.BusinessName)
}

func TestSetField_Errors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value string
		want  error
	}{
		{name: "unknown field", field: "favouriteColour", value: "blue", want: feasibility.ErrUnknownField},
		{name: "derived field", field: "revenueToUse", value: "10", want: feasibility.ErrDerivedField},
		{name: "not a boolean", field: "workingAlone", value: "yes", want: feasibility.ErrFieldTypeMismatch},
		{name: "fractional integer", field: "numberOfEmployees", value: "1.5", want: feasibility.ErrFieldTypeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := setField(models.NewAnswerSet(), tt.field, tt.value)
			require.Error(t, err)
			assert.True(t, stderrors.Is(err, tt.want), err.Error())
		})
	}
}

func TestRenderToDir(t *testing.T) {
	set := models.NewAnswerSet()
	set.BusinessName = "Chez Léa"
	dir := filepath.Join(t.TempDir(), "out")

	for _, typ := range []string{"feasibility", "summary"} {
		t.Run(typ, func(t *testing.T) {
			res, path, err := renderToDir(set, typ, dir, document.Config{BrandName: "Acme"})
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, res.Filename), path)
			assert.GreaterOrEqual(t, res.Pages, 1)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		})
	}

	_, _, err := renderToDir(set, "invoice", dir, document.Config{})
	assert.Error(t, err)
}

func TestShareCommand(t *testing.T) {
	var buf bytes.Buffer
	RootCmd.SetOut(&buf)
	RootCmd.SetArgs([]string{"share", "Chez Léa", "--url", "https://example.fr/etude"})
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetArgs(nil)
	})

	require.NoError(t, RootCmd.Execute())

	var links map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &links))
	assert.Contains(t, links["message"], "Chez Léa")
	assert.True(t, strings.HasPrefix(links["whatsapp"], "https://wa.me/?text="))
	assert.True(t, strings.HasPrefix(links["sms"], "sms:?&body="))
	assert.True(t, strings.HasPrefix(links["email"], "mailto:?subject="))
}

func TestUpdateRegistryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.json")
	require.NoError(t, os.WriteFile(path, registry.Embedded(), 0o600))

	now := time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)
	require.NoError(t, updateRegistryFile(path, "share-result", "retries", "5", now))
	assert.Error(t, updateRegistryFile(path, "share-result", "timeout", "soon", now))
	assert.Error(t, updateRegistryFile(path, "unknown", "status", "planned", now))

	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	activity, ok := reg.Find("share-result")
	require.True(t, ok)
	assert.Equal(t, 5, activity.Retries)
	assert.Equal(t, "15s", activity.Timeout)

	var buf bytes.Buffer
	require.NoError(t, listActivities(&buf, reg))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[0], "TASK TYPE")
	assert.Contains(t, buf.String(), "share-result")
}
