package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSummary(t *testing.T) {
	reg := prometheus.NewRegistry()
	source := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "source_total",
	}, []string{"source"})
	other := prometheus.NewCounter(prometheus.CounterOpts{Name: "unrelated_total"})
	reg.MustRegister(source, other)

	source.WithLabelValues("html").Add(2)
	source.WithLabelValues("text")
	other.Inc()

	buf := bytes.NewBuffer(nil)
	require.NoError(t, WriteSummary(buf, reg))
	assert.Equal(t, "anytype_paste_source_total{source=html} 2\n", buf.String())
}
