package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsOutcomes(t *testing.T) {
	r := NewRecorder()

	r.ObserveAnalysis(OutcomeSuccess, time.Second)
	r.ObserveAnalysis(OutcomeSuccess, 2*time.Second)
	r.ObserveAnalysis(OutcomeRejectedInput, 10*time.Millisecond)
	r.ObserveModelCall(3 * time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.analyses.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.analyses.WithLabelValues(OutcomeRejectedInput)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.analyses.WithLabelValues(OutcomeUpstreamError)))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.ObserveAnalysis(OutcomeSuccess, time.Second)
		r.ObserveModelCall(time.Second)
	})
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRecorder()
	r.ObserveAnalysis(OutcomeMalformedResponse, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `color_season_analyses_total{outcome="malformed_response"} 1`)
	assert.Contains(t, string(body), "color_season_model_call_duration_seconds")
	assert.Contains(t, string(body), "go_goroutines")
}
