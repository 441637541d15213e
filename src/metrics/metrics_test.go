package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttemptsCounter(t *testing.T) {
	c := AttemptsTotal.WithLabelValues("TestAttemptsCounter", OutcomeRetry)
	before := testutil.ToFloat64(c)
	c.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}

func TestHandler(t *testing.T) {
	AttemptsTotal.WithLabelValues("TestHandler", OutcomeSuccess).Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "hashgraph_sdk_attempts_total"))
	assert.True(t, strings.Contains(body, `operation="TestHandler"`))
}
