package metrics_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/remoteness/metrics"
)

func TestObserveSolve(t *testing.T) {
	before := testutil.ToFloat64(metrics.CellsSettled.WithLabelValues("test"))
	metrics.ObserveSolve("test", 20*time.Millisecond, 42)
	assert.Equal(t, before+42, testutil.ToFloat64(metrics.CellsSettled.WithLabelValues("test")))

	var buf bytes.Buffer
	require.NoError(t, metrics.WriteText(&buf))
	assert.Contains(t, buf.String(), `remoteness_solve_seconds_count{mode="test"}`)
	assert.Contains(t, buf.String(), `remoteness_cells_settled_total{mode="test"}`)
}
