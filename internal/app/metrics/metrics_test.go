package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegisterAndCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.JobsProcessed.WithLabelValues("azure", "succeeded").Inc()
	m.JobsProcessed.WithLabelValues("azure", "succeeded").Inc()
	m.QuotaRejections.Inc()
	m.SpeakersResolved.WithLabelValues("identified").Inc()
	m.SpeakersResolved.WithLabelValues("unknown").Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.JobsProcessed.WithLabelValues("azure", "succeeded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuotaRejections))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
