package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveUpstream(t *testing.T) {
	reg := prometheus.NewRegistry()
	require.NotPanics(t, func() { Register(reg) })

	before := testutil.ToFloat64(upstreamRequests.WithLabelValues("board", "network_failure"))
	ObserveUpstream("board", "network_failure", 20*time.Millisecond)
	ObserveUpstream("board", "ok", time.Second)
	assert.Equal(t, before+1, testutil.ToFloat64(upstreamRequests.WithLabelValues("board", "network_failure")))

	n, err := testutil.GatherAndCount(reg, "busrelay_upstream_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
