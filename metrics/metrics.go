// Package metrics holds the Prometheus instruments of the client. They are
// registered with the default registry on import and served by the
// launcher when --metrics is set.
package metrics

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/rony4d/go-honey-hive/economy"
)

// Sync metrics
var (
	RefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRefreshesTotal,
			Help: HelpTextRefreshesTotal,
		},
		[]string{LabelResult},
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameRefreshDuration,
			Help:    HelpTextRefreshDuration,
			Buckets: RefreshLatencyBuckets,
		},
	)

	CurrentBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameCurrentBlock,
			Help: HelpTextCurrentBlock,
		},
	)
)

// Action metrics
var (
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameActionsTotal,
			Help: HelpTextActionsTotal,
		},
		[]string{LabelAction, LabelStatus},
	)

	ActionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameActionDuration,
			Help:    HelpTextActionDuration,
			Buckets: ActionLatencyBuckets,
		},
		[]string{LabelAction},
	)

	AdmissionRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameAdmissionRejections,
			Help: HelpTextAdmissionRejections,
		},
		[]string{LabelAction, LabelReason},
	)

	ApprovalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameApprovalsTotal,
			Help: HelpTextApprovalsTotal,
		},
	)
)

// Economy metrics
var (
	PlayerShare = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePlayerShare,
			Help: HelpTextPlayerShare,
		},
	)

	EmissionRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameEmissionRate,
			Help: HelpTextEmissionRate,
		},
	)

	HourlyRate = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHourlyRate,
			Help: HelpTextHourlyRate,
		},
	)

	PendingHoney = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePendingHoney,
			Help: HelpTextPendingHoney,
		},
	)

	BlocksUntilHalving = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameBlocksUntilHalving,
			Help: HelpTextBlocksUntilHalving,
		},
	)
)

// ObserveRefresh records one refresh attempt.
func ObserveRefresh(seconds float64, err error) {
	RefreshDuration.Observe(seconds)
	if err != nil {
		RefreshesTotal.WithLabelValues(ResultError).Inc()
		return
	}
	RefreshesTotal.WithLabelValues(ResultOK).Inc()
}

// ObserveStats publishes the derived figures of the latest snapshot.
func ObserveStats(block idx.Block, st economy.Stats) {
	CurrentBlock.Set(float64(block))
	PlayerShare.Set(st.PlayerShare)
	EmissionRate.Set(st.EmissionRate)
	HourlyRate.Set(st.HourlyRate)
	PendingHoney.Set(st.PendingHoney)
	BlocksUntilHalving.Set(float64(st.Halving.BlocksUntilHalving))
}
