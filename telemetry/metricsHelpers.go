package telemetry

import "time"

// IncPixGenerated counts a code returned to a customer.
func IncPixGenerated(provider string) {
	pixGeneratedTotal.WithLabelValues(provider).Inc()
}

// Reasons: "validation", "not_found", "invalid_amount", "db".
func IncPixGenerateFailed(reason string) {
	if reason == "" {
		reason = "unknown"
	}
	pixGenerateFailedTotal.WithLabelValues(reason).Inc()
}

// Stages: "auth", "charge", "qrcode", "verify".
func IncPixProviderFailure(stage string) {
	if stage == "" {
		stage = "unknown"
	}
	pixProviderFailuresTotal.WithLabelValues(stage).Inc()
}

func ObserveProviderDuration(d time.Duration) {
	pixProviderDurationSeconds.Observe(d.Seconds())
}

func IncEventsPublished() {
	eventsPublishedTotal.Inc()
}

// Reasons: "schema", "kafka", "queue_full".
func IncEventsFailed(reason string) {
	eventsFailedTotal.WithLabelValues(reason).Inc()
}

// Sets the current queue size gauge.
func SetWorkerQueueCurrent(n int) {
	workerQueueCurrent.Set(float64(n))
}

func IncStoreStatusChecks(open bool) {
	lbl := "false"
	if open {
		lbl = "true"
	}
	storeStatusChecksTotal.WithLabelValues(lbl).Inc()
}

// Results: "ok", "invalid", "error".
func IncStaffLogins(result string) {
	staffLoginsTotal.WithLabelValues(result).Inc()
}
