package store

import "time"

// DayTotal is the number of minutes studied on one calendar day.
type DayTotal struct {
	Day     time.Time
	Minutes int
}

func TotalStudyMinutes(sessions []StudySession) int {
	total := 0
	for _, s := range sessions {
		total += s.Duration
	}
	return total
}

// StudyStreak counts the distinct calendar days with at least one session
// during the seven days before now.
func StudyStreak(sessions []StudySession, now time.Time) int {
	since := now.Add(-7 * 24 * time.Hour)
	days := make(map[time.Time]bool)
	for _, s := range sessions {
		if s.Date.Before(since) || s.Date.After(now) {
			continue
		}
		days[startOfDay(s.Date.In(now.Location()))] = true
	}
	return len(days)
}

// MinutesOn sums the sessions that fall on the calendar day of day.
func MinutesOn(sessions []StudySession, day time.Time) int {
	start := startOfDay(day)
	end := start.AddDate(0, 0, 1)
	total := 0
	for _, s := range sessions {
		d := s.Date.In(day.Location())
		if !d.Before(start) && d.Before(end) {
			total += s.Duration
		}
	}
	return total
}

// DailyMinutes returns per-day totals for the last days days, oldest
// first, ending with the day of now.
func DailyMinutes(sessions []StudySession, now time.Time, days int) []DayTotal {
	if days <= 0 {
		return nil
	}
	today := startOfDay(now)
	out := make([]DayTotal, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		out = append(out, DayTotal{Day: day, Minutes: MinutesOn(sessions, day)})
	}
	return out
}

// GoalProgress is today's study time as a fraction of the profile's daily
// goal, capped at 1. A zero goal counts as met.
func GoalProgress(p UserProfile, sessions []StudySession, now time.Time) float64 {
	if p.StudyGoal <= 0 {
		return 1
	}
	f := float64(MinutesOn(sessions, now)) / float64(p.StudyGoal)
	if f > 1 {
		return 1
	}
	return f
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
