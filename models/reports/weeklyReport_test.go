package reports

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWeeklyWindowsMondayAnchored(t *testing.T) {
	// Wednesday 2024-03-13.
	windows := weeklyWindows(6, 5, day(2024, time.March, 13))
	if len(windows) != 5 {
		t.Fatalf("expected 5 windows, got %d", len(windows))
	}
	if !windows[0].Start.Equal(day(2024, time.March, 11)) {
		t.Fatalf("week 1 start = %s, want 2024-03-11", windows[0].Start.Format("2006-01-02"))
	}
	if windows[0].Start.Weekday() != time.Monday {
		t.Fatalf("week 1 start is %s, want Monday", windows[0].Start.Weekday())
	}
	if !windows[0].End.Equal(day(2024, time.March, 16)) {
		t.Fatalf("week 1 end = %s, want 2024-03-16", windows[0].End.Format("2006-01-02"))
	}
}

func TestWeeklyWindowsSpanFollowsWorkingDays(t *testing.T) {
	sixDay := weeklyWindows(6, 1, day(2024, time.March, 11))
	if got := sixDay[0].End.Sub(sixDay[0].Start).Hours() / 24; got != 5 {
		t.Fatalf("6-working-day span = %v days, want 5", got)
	}
	sevenDay := weeklyWindows(7, 1, day(2024, time.March, 11))
	if got := sevenDay[0].End.Sub(sevenDay[0].Start).Hours() / 24; got != 6 {
		t.Fatalf("7-working-day span = %v days, want 6", got)
	}
}

func TestWeeklyWindowsWalkBackwards(t *testing.T) {
	windows := weeklyWindows(6, 5, day(2024, time.March, 13))
	for i := 1; i < len(windows); i++ {
		if !windows[i].Start.Equal(windows[i-1].Start.AddDate(0, 0, -7)) {
			t.Fatalf("week %d start = %s, want one week before %s",
				windows[i].Week,
				windows[i].Start.Format("2006-01-02"),
				windows[i-1].Start.Format("2006-01-02"))
		}
		if windows[i].Start.Weekday() != time.Monday {
			t.Fatalf("week %d start is %s, want Monday", windows[i].Week, windows[i].Start.Weekday())
		}
	}
}

func TestWeeklyWindowsStartingOnSunday(t *testing.T) {
	// Sunday belongs to the week that began the previous Monday.
	windows := weeklyWindows(6, 1, day(2024, time.March, 17))
	if !windows[0].Start.Equal(day(2024, time.March, 11)) {
		t.Fatalf("start = %s, want 2024-03-11", windows[0].Start.Format("2006-01-02"))
	}
}
