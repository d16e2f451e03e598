package metric

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestLoginOutcomes(t *testing.T) {
	r := NewRegistry()

	r.Logins.WithLabelValues(OutcomeSuccess).Inc()
	r.Logins.WithLabelValues(OutcomeSuccess).Inc()
	r.Logins.WithLabelValues(OutcomeTransport).Inc()

	if got := testutil.ToFloat64(r.Logins.WithLabelValues(OutcomeSuccess)); got != 2 {
		t.Errorf("logins{success} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.Logins.WithLabelValues(OutcomeTransport)); got != 1 {
		t.Errorf("logins{transport} = %v, want 1", got)
	}
}

func TestSessionActiveGauge(t *testing.T) {
	r := NewRegistry()

	r.SessionActive.Set(1)
	if got := testutil.ToFloat64(r.SessionActive); got != 1 {
		t.Errorf("session_active = %v, want 1", got)
	}
	r.SessionActive.Set(0)
	if got := testutil.ToFloat64(r.SessionActive); got != 0 {
		t.Errorf("session_active = %v, want 0", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := NewRegistry()
	r.FilterDecisions.WithLabelValues("authc", DecisionDeny).Inc()
	r.Navigations.Inc()

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	if err != nil {
		t.Fatalf("scrape error = %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	body := string(raw)

	if !strings.Contains(body, "routeguard_filter_decisions_total") {
		t.Errorf("scrape missing filter decisions:\n%s", body)
	}
	if !strings.Contains(body, "routeguard_navigations_total 1") {
		t.Errorf("scrape missing navigations counter:\n%s", body)
	}
}
