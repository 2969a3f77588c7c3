package domain

import (
	"fmt"
	"time"
)

// LocationUnavailable is the display fallback when no coordinates were
// provided by the geolocation collaborator.
const LocationUnavailable = "Location unavailable"

// ExportSummary is the read-only report object assembled for display. It
// composes both collections with the derived stats; building one has no
// side effects and touches no storage.
type ExportSummary struct {
	GeneratedAt time.Time
	Location    string
	Stats       Snapshot
	Activities  []ActivityRecord
	Photos      []PhotoRecord
}

// BuildExportSummary assembles an ExportSummary from already-loaded
// collections and a computed snapshot. A blank location tag falls back to
// LocationUnavailable.
func BuildExportSummary(activities []ActivityRecord, photos []PhotoRecord, snapshot Snapshot, locationTag string, now time.Time) ExportSummary {
	if locationTag == "" {
		locationTag = LocationUnavailable
	}
	return ExportSummary{
		GeneratedAt: now,
		Location:    locationTag,
		Stats:       snapshot,
		Activities:  activities,
		Photos:      photos,
	}
}

// LocationTag renders coordinates from the geolocation collaborator as the
// display string attached to an export. The pair is never parsed further.
func LocationTag(latitude, longitude float64) string {
	return fmt.Sprintf("%.4f, %.4f", latitude, longitude)
}
