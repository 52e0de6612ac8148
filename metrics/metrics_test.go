package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/rony4d/go-honey-hive/economy"
)

func TestObserveRefresh(t *testing.T) {
	okBefore := testutil.ToFloat64(RefreshesTotal.WithLabelValues(ResultOK))
	errBefore := testutil.ToFloat64(RefreshesTotal.WithLabelValues(ResultError))

	ObserveRefresh(0.1, nil)
	ObserveRefresh(0.2, errors.New("boom"))
	ObserveRefresh(0.3, nil)

	assert.Equal(t, okBefore+2, testutil.ToFloat64(RefreshesTotal.WithLabelValues(ResultOK)))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(RefreshesTotal.WithLabelValues(ResultError)))
}

func TestObserveStats(t *testing.T) {
	st := economy.Stats{
		PlayerShare:  12.5,
		EmissionRate: 2.3,
		HourlyRate:   1035,
		PendingHoney: 4,
		Halving:      economy.Halving{BlocksUntilHalving: 100},
	}
	ObserveStats(42, st)

	assert.Equal(t, 42.0, testutil.ToFloat64(CurrentBlock))
	assert.Equal(t, 12.5, testutil.ToFloat64(PlayerShare))
	assert.Equal(t, 2.3, testutil.ToFloat64(EmissionRate))
	assert.Equal(t, 1035.0, testutil.ToFloat64(HourlyRate))
	assert.Equal(t, 4.0, testutil.ToFloat64(PendingHoney))
	assert.Equal(t, 100.0, testutil.ToFloat64(BlocksUntilHalving))
}
