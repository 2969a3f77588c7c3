package domain

import (
	"math"
	"sort"
	"time"
)

// NoBestCategory is the bestCategory sentinel for an empty collection.
const NoBestCategory = "None"

// streakLookbackDays bounds the backward walk of the streak scan.
const streakLookbackDays = 30

// averageWindowDays is the fixed divisor for the rolling daily average.
const averageWindowDays = 7

// Snapshot holds every derived analytics value. It is never persisted;
// each one is recomputed in full from the activity collection.
type Snapshot struct {
	TotalPoints           int
	TotalActivities       int
	TodayPoints           int
	AverageDailyLast7Days int
	BestCategory          string
	CurrentStreakDays     int
	PointsByCategory      map[string]int
}

// ComputeSnapshot reduces an activity collection to a Snapshot. It is a
// pure function of its arguments: no I/O, no mutation of the input, and
// identical results for identical inputs. Calendar days are resolved in
// now's location.
func ComputeSnapshot(activities []ActivityRecord, table CategoryTable, now time.Time) Snapshot {
	snapshot := Snapshot{
		BestCategory:     NoBestCategory,
		PointsByCategory: map[string]int{},
	}

	loc := now.Location()
	today := dayKey(now, loc)
	windowStart := startOfDay(now, loc).AddDate(0, 0, -(averageWindowDays - 1))

	windowPoints := 0
	activeDays := make(map[string]struct{})
	for _, a := range activities {
		snapshot.TotalPoints += a.Points
		snapshot.TotalActivities++
		snapshot.PointsByCategory[a.Category] += a.Points

		day := dayKey(a.CreatedAt, loc)
		activeDays[day] = struct{}{}
		if day == today {
			snapshot.TodayPoints += a.Points
		}
		created := a.CreatedAt.In(loc)
		if !created.Before(windowStart) && !created.After(now) {
			windowPoints += a.Points
		}
	}

	snapshot.AverageDailyLast7Days = int(math.Round(float64(windowPoints) / averageWindowDays))
	snapshot.BestCategory = bestCategory(snapshot.PointsByCategory, table)
	snapshot.CurrentStreakDays = streak(activeDays, now, loc)
	return snapshot
}

// bestCategory picks the category with the maximum summed points. Ties go
// to the category declared earlier in the table; categories missing from
// the table rank after all declared ones, alphabetically, so the result
// never depends on map iteration order.
func bestCategory(totals map[string]int, table CategoryTable) string {
	if len(totals) == 0 {
		return NoBestCategory
	}
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := table.index(names[i]), table.index(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})

	best := names[0]
	for _, name := range names[1:] {
		if totals[name] > totals[best] {
			best = name
		}
	}
	return best
}

// streak counts consecutive active calendar days walking backward from
// today. An empty today does not break the streak, it simply has not
// extended it yet; any other gap terminates the scan. The walk never looks
// further back than streakLookbackDays.
func streak(activeDays map[string]struct{}, now time.Time, loc *time.Location) int {
	if len(activeDays) == 0 {
		return 0
	}
	count := 0
	if _, ok := activeDays[dayKey(now, loc)]; ok {
		count = 1
	}
	for i := 1; i <= streakLookbackDays; i++ {
		day := dayKey(now.AddDate(0, 0, -i), loc)
		if _, ok := activeDays[day]; !ok {
			break
		}
		count++
	}
	return count
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("2006-01-02")
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
