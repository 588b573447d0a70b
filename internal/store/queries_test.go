package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleNotes() []Note {
	return []Note{
		{ID: "1", Title: "Intro to Go", Content: "Goroutines and channels", Subject: "Computer Science"},
		{ID: "2", Title: "Photosynthesis", Content: "Light reactions", Subject: "Biology"},
		{ID: "3", Title: "Cell biology", Content: "Mitochondria", Subject: "Biology"},
	}
}

func TestFilterNotes(t *testing.T) {
	notes := sampleNotes()
	tests := []struct {
		name    string
		subject string
		search  string
		want    []string
	}{
		{"no filter", AllSubjects, "", []string{"1", "2", "3"}},
		{"empty subject", "", "", []string{"1", "2", "3"}},
		{"subject only", "Biology", "", []string{"2", "3"}},
		{"title match ignores case", AllSubjects, "INTRO", []string{"1"}},
		{"content match", AllSubjects, "mito", []string{"3"}},
		{"subject and search", "Biology", "light", []string{"2"}},
		{"subject excludes match", "Computer Science", "light", nil},
		{"unknown subject", "History", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, n := range FilterNotes(notes, tt.subject, tt.search) {
				got = append(got, n.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVisibleNotesUsesCurrentSubject(t *testing.T) {
	s := DefaultState()
	s.Notes = sampleNotes()
	s.CurrentSubject = "Computer Science"
	got := s.VisibleNotes("")
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestNoteSubjects(t *testing.T) {
	assert.Equal(t, []string{"Computer Science", "Biology"}, NoteSubjects(sampleNotes()))
	assert.Nil(t, NoteSubjects(nil))
}

func TestFindNote(t *testing.T) {
	s := State{Notes: sampleNotes()}
	n, ok := s.FindNote("2")
	require.True(t, ok)
	assert.Equal(t, "Photosynthesis", n.Title)
	_, ok = s.FindNote("9")
	assert.False(t, ok)
}

func TestPartitionTasks(t *testing.T) {
	tasks := []Task{
		{ID: "1", Completed: false},
		{ID: "2", Completed: true},
		{ID: "3", Completed: false},
	}
	pending, completed := PartitionTasks(tasks)
	require.Len(t, pending, 2)
	require.Len(t, completed, 1)
	assert.Equal(t, "1", pending[0].ID)
	assert.Equal(t, "3", pending[1].ID)
	assert.Equal(t, "2", completed[0].ID)
}

// ============================================================
// Stats
// ============================================================

func TestTotalStudyMinutes(t *testing.T) {
	sessions := []StudySession{{Duration: 25}, {Duration: 25}, {Duration: 50}}
	assert.Equal(t, 100, TotalStudyMinutes(sessions))
	assert.Equal(t, 0, TotalStudyMinutes(nil))
}

func TestStudyStreak(t *testing.T) {
	now := time.Date(2024, 5, 12, 18, 0, 0, 0, time.UTC)
	sessions := []StudySession{
		{Date: now.Add(-1 * time.Hour)},
		{Date: now.Add(-2 * time.Hour)}, // same day
		{Date: now.Add(-26 * time.Hour)},
		{Date: now.Add(-6 * 24 * time.Hour)},
		{Date: now.Add(-8 * 24 * time.Hour)}, // too old
	}
	assert.Equal(t, 3, StudyStreak(sessions, now))
	assert.Equal(t, 0, StudyStreak(nil, now))
}

func TestMinutesOnAndDailyMinutes(t *testing.T) {
	now := time.Date(2024, 5, 12, 18, 0, 0, 0, time.UTC)
	sessions := []StudySession{
		{Duration: 25, Date: now.Add(-1 * time.Hour)},
		{Duration: 25, Date: now.Add(-3 * time.Hour)},
		{Duration: 15, Date: now.AddDate(0, 0, -2)},
	}
	assert.Equal(t, 50, MinutesOn(sessions, now))

	days := DailyMinutes(sessions, now, 3)
	require.Len(t, days, 3)
	assert.Equal(t, 15, days[0].Minutes)
	assert.Equal(t, 0, days[1].Minutes)
	assert.Equal(t, 50, days[2].Minutes)
	assert.Equal(t, time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC), days[2].Day)

	assert.Nil(t, DailyMinutes(sessions, now, 0))
}

func TestGoalProgress(t *testing.T) {
	now := time.Date(2024, 5, 12, 18, 0, 0, 0, time.UTC)
	sessions := []StudySession{{Duration: 30, Date: now}}

	assert.InDelta(t, 0.25, GoalProgress(UserProfile{StudyGoal: 120}, sessions, now), 1e-9)
	assert.Equal(t, 1.0, GoalProgress(UserProfile{StudyGoal: 20}, sessions, now))
	assert.Equal(t, 1.0, GoalProgress(UserProfile{}, nil, now))
}

func TestDemoState(t *testing.T) {
	now := time.Now()
	s := DemoState(now)
	assert.Len(t, s.Notes, 2)
	assert.Len(t, s.Tasks, 2)
	assert.Empty(t, s.Sessions)
	assert.Equal(t, AllSubjects, s.CurrentSubject)
	assert.Equal(t, ThemeLight, s.Theme)
	assert.NoError(t, s.Profile.Validate())
	assert.NoError(t, s.Pomodoro.Validate())
}
