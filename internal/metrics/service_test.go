package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCountersIncrement(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := NewService(reg)

	s.IncSearchRuns()
	s.IncSearchRuns()
	s.IncSearchCacheHits()
	s.IncBookingsCreated()
	s.IncBookingsFailed()
	s.IncNotifSent()
	s.IncNotifFailed()
	s.SetStartupTime(1.5)

	assert.Equal(t, 2.0, testutil.ToFloat64(s.SearchRuns))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.SearchCacheHits))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.BookingsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.BookingsFailed))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.NotifSent))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.NotifFailed))
	assert.Equal(t, 1.5, testutil.ToFloat64(s.StartupTimeSeconds))
}

func TestObserveSearchDurationDoesNotPanic(t *testing.T) {
	s := NewService(prometheus.NewRegistry())
	s.ObserveSearchDuration(0.005)
}
