package metrics

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_Counters(t *testing.T) {
	r := NewRecorder()

	r.Discovered("grid")
	r.Discovered("grid")
	r.Expanded("grid")
	r.PassComplete("grid", 10*time.Millisecond, 2)
	r.ActionCall("grid", "north", "perform", "ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.discovered.WithLabelValues("grid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.expansions.WithLabelValues("grid")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.tableSize.WithLabelValues("grid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.translations.WithLabelValues("grid", "north", "perform", "ok")))
}

func TestRecorder_Handler(t *testing.T) {
	r := NewRecorder()
	r.Discovered("chain")

	srv := httptest.NewServer(r.Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tabula_states_discovered_total{domain="chain"} 1`)
}
