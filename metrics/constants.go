package metrics

// Metric names
const (
	MetricNameRefreshesTotal      = "honey_refreshes_total"
	MetricNameRefreshDuration     = "honey_refresh_duration_seconds"
	MetricNameActionsTotal        = "honey_actions_total"
	MetricNameActionDuration      = "honey_action_duration_seconds"
	MetricNameAdmissionRejections = "honey_admission_rejections_total"
	MetricNameApprovalsTotal      = "honey_approvals_total"
	MetricNameCurrentBlock        = "honey_current_block"
	MetricNamePlayerShare         = "honey_player_share_percent"
	MetricNameEmissionRate        = "honey_emission_rate_per_block"
	MetricNameHourlyRate          = "honey_player_hourly_rate"
	MetricNamePendingHoney        = "honey_player_pending"
	MetricNameBlocksUntilHalving  = "honey_blocks_until_halving"
)

// Metric help text
const (
	HelpTextRefreshesTotal      = "Total number of snapshot refreshes by result"
	HelpTextRefreshDuration     = "Snapshot refresh latency in seconds"
	HelpTextActionsTotal        = "Total number of player actions by action and status"
	HelpTextActionDuration      = "Player action latency in seconds, submission to refresh"
	HelpTextAdmissionRejections = "Total number of actions refused locally, by reason"
	HelpTextApprovalsTotal      = "Total number of HONEY approve transactions sent"
	HelpTextCurrentBlock        = "Latest block number seen"
	HelpTextPlayerShare         = "Player share of total honey power, percent"
	HelpTextEmissionRate        = "Network HONEY emission per block"
	HelpTextHourlyRate          = "Player HONEY production per hour"
	HelpTextPendingHoney        = "Player unclaimed HONEY"
	HelpTextBlocksUntilHalving  = "Blocks left until the next emission halving"
)

// Label names
const (
	LabelResult = "result"
	LabelAction = "action"
	LabelStatus = "status"
	LabelReason = "reason"
)

// Label values
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// RefreshLatencyBuckets covers a few RPC round trips.
var RefreshLatencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// ActionLatencyBuckets covers block inclusion times.
var ActionLatencyBuckets = []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120}
