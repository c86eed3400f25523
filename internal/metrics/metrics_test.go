package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTurn(t *testing.T) {
	m := New()
	m.ObserveTurn("mock", OutcomeOK, 120*time.Millisecond)
	m.ObserveTurn("mock", OutcomeFallback, time.Second)
	m.ObserveTurn("mock", OutcomeOK, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.turns.WithLabelValues("mock", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.turns.WithLabelValues("mock", OutcomeFallback)))
}

func TestGauges(t *testing.T) {
	m := New()
	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.ConnectionOpened()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.activeSessions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.wsConnections))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveTurn("mock", OutcomeOK, time.Second)
	m.AddSuggestions(3)
	m.BusyRejected()
	m.SessionOpened()
	m.ConsultationEvent("submitted")
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New()
	m.AddSuggestions(2)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(string(body), "alitaram_assistant_product_suggestions_total 2"))
}
