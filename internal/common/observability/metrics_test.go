package observability

import (
	"context"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservability_ExportsJobMetrics(t *testing.T) {
	reg := promclient.NewRegistry()
	obs := NewWithRegisterer("test-service", reg)
	defer obs.Shutdown()

	ctx := context.Background()
	obs.RecordJobProcessed(ctx, "render-document", "completed")
	obs.RecordJobDuration(ctx, "render-document", 120*time.Millisecond, "completed")

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	// gathered names keep the dotted form; only text exposition escapes them
	joined := strings.ReplaceAll(strings.Join(names, ","), ".", "_")
	assert.Contains(t, joined, "jobs_processed")
	assert.Contains(t, joined, "jobs_duration")
}

func TestObservability_NilSafe(t *testing.T) {
	var obs *Observability
	obs.RecordJobProcessed(context.Background(), "x", "completed")
	obs.RecordJobDuration(context.Background(), "x", time.Second, "completed")
	obs.Shutdown()

	(&Observability{}).RecordJobProcessed(context.Background(), "x", "failed")
}
