package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	activityLoggedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ecotracker",
		Subsystem: "records",
		Name:      "last_activity_logged_timestamp_seconds",
		Help:      "Unix timestamp of the most recent activity appended to the store.",
	})
	photoLoggedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ecotracker",
		Subsystem: "records",
		Name:      "last_photo_logged_timestamp_seconds",
		Help:      "Unix timestamp of the most recent photo appended to the store.",
	})
	activitiesRecordedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ecotracker",
		Subsystem: "records",
		Name:      "activities_recorded_total",
		Help:      "Number of activity records appended since process start.",
	})
	photosRecordedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ecotracker",
		Subsystem: "records",
		Name:      "photos_recorded_total",
		Help:      "Number of photo records appended since process start.",
	})
	snapshotsComputedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ecotracker",
		Subsystem: "analytics",
		Name:      "snapshots_computed_total",
		Help:      "Number of analytics snapshots computed since process start.",
	})
	storeFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecotracker",
		Subsystem: "store",
		Name:      "failures_total",
		Help:      "Record store failures by operation.",
	}, []string{"operation"})
)

func init() {
	prometheus.MustRegister(
		activityLoggedGauge,
		photoLoggedGauge,
		activitiesRecordedTotal,
		photosRecordedTotal,
		snapshotsComputedTotal,
		storeFailuresTotal,
	)
}

// RecordActivityLogged updates the activity watermark gauge and counter.
func RecordActivityLogged(ts time.Time) {
	activitiesRecordedTotal.Inc()
	if ts.IsZero() {
		return
	}
	activityLoggedGauge.Set(float64(ts.Unix()))
}

// RecordPhotoLogged updates the photo watermark gauge and counter.
func RecordPhotoLogged(ts time.Time) {
	photosRecordedTotal.Inc()
	if ts.IsZero() {
		return
	}
	photoLoggedGauge.Set(float64(ts.Unix()))
}

// RecordSnapshotComputed counts a completed analytics computation.
func RecordSnapshotComputed() {
	snapshotsComputedTotal.Inc()
}

// RecordStoreFailure counts a failed store operation.
func RecordStoreFailure(operation string) {
	storeFailuresTotal.WithLabelValues(operation).Inc()
}
