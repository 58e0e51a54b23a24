package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordRender(t *testing.T) {
	ok := testutil.ToFloat64(renders.WithLabelValues(ResultOK))
	invalid := testutil.ToFloat64(renders.WithLabelValues(ResultInvalidMapping))

	RecordRender(ResultOK, 20*time.Millisecond)
	RecordRender(ResultInvalidMapping, time.Millisecond)

	assert.Equal(t, ok+1, testutil.ToFloat64(renders.WithLabelValues(ResultOK)))
	assert.Equal(t, invalid+1, testutil.ToFloat64(renders.WithLabelValues(ResultInvalidMapping)))
	assert.Equal(t, 1, testutil.CollectAndCount(renderDuration))
}

func TestRecordCounters(t *testing.T) {
	received := testutil.ToFloat64(requestsReceived)
	coalesced := testutil.ToFloat64(requestsCoalesced)
	evicted := testutil.ToFloat64(requestsEvicted)
	dropped := testutil.ToFloat64(repliesDropped)

	RecordRequestReceived()
	RecordRequestsCoalesced(3)
	RecordRequestEvicted()
	RecordReplyDropped()

	assert.Equal(t, received+1, testutil.ToFloat64(requestsReceived))
	assert.Equal(t, coalesced+3, testutil.ToFloat64(requestsCoalesced))
	assert.Equal(t, evicted+1, testutil.ToFloat64(requestsEvicted))
	assert.Equal(t, dropped+1, testutil.ToFloat64(repliesDropped))
}

func TestSessions(t *testing.T) {
	open := testutil.ToFloat64(explorerSessions)
	SessionOpened()
	SessionOpened()
	SessionClosed()
	assert.Equal(t, open+1, testutil.ToFloat64(explorerSessions))
	SessionClosed()
}

func TestHandler(t *testing.T) {
	Register()
	Register()
	RecordRequestReceived()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "mandelview_requests_received_total"))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
