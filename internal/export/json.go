package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/studysync/internal/store"
)

type jsonExport struct {
	ExportedAt string        `json:"exported_at"`
	Profile    jsonProfile   `json:"profile"`
	Notes      []jsonNote    `json:"notes"`
	Tasks      []jsonTask    `json:"tasks"`
	Sessions   []jsonSession `json:"sessions"`
	Counts     jsonCounts    `json:"counts"`
}

type jsonProfile struct {
	Name             string   `json:"name"`
	Email            string   `json:"email"`
	StudyGoal        int      `json:"study_goal_minutes"`
	FavoriteSubjects []string `json:"favorite_subjects"`
	HasAvatar        bool     `json:"has_avatar"`
}

type jsonNote struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Subject   string `json:"subject"`
	CreatedAt string `json:"created_at"`
	Summary   string `json:"summary,omitempty"`
}

type jsonTask struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
	Subject   string `json:"subject,omitempty"`
	DueDate   string `json:"due_date,omitempty"`
}

type jsonSession struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Date        string `json:"date"`
	DurationMin int    `json:"duration_minutes"`
	Duration    string `json:"duration"`
}

type jsonCounts struct {
	Notes          int `json:"notes"`
	Tasks          int `json:"tasks"`
	CompletedTasks int `json:"completed_tasks"`
	Sessions       int `json:"sessions"`
	StudyMinutes   int `json:"study_minutes"`
}

// ToJSON writes a snapshot of st. The avatar itself is left out.
func ToJSON(st store.State, path string) error {
	_, completed := store.PartitionTasks(st.Tasks)
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Profile: jsonProfile{
			Name:             st.Profile.Name,
			Email:            st.Profile.Email,
			StudyGoal:        st.Profile.StudyGoal,
			FavoriteSubjects: st.Profile.FavoriteSubjects,
			HasAvatar:        st.Profile.Avatar != "",
		},
		Counts: jsonCounts{
			Notes:          len(st.Notes),
			Tasks:          len(st.Tasks),
			CompletedTasks: len(completed),
			Sessions:       len(st.Sessions),
			StudyMinutes:   store.TotalStudyMinutes(st.Sessions),
		},
	}

	for _, n := range st.Notes {
		export.Notes = append(export.Notes, jsonNote{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			Subject:   n.Subject,
			CreatedAt: n.CreatedAt.Local().Format(time.RFC3339),
			Summary:   n.Summary,
		})
	}

	for _, t := range st.Tasks {
		due := ""
		if t.DueDate != nil {
			due = t.DueDate.Local().Format(time.RFC3339)
		}
		export.Tasks = append(export.Tasks, jsonTask{
			ID:        t.ID,
			Title:     t.Title,
			Completed: t.Completed,
			Priority:  t.Priority.String(),
			Subject:   t.Subject,
			DueDate:   due,
		})
	}

	for _, s := range st.Sessions {
		export.Sessions = append(export.Sessions, jsonSession{
			ID:          s.ID,
			Subject:     s.Subject,
			Date:        s.Date.Local().Format(time.RFC3339),
			DurationMin: s.Duration,
			Duration:    formatMinutes(s.Duration),
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// Filename builds a timestamped export file name such as
// studysync-20240512-093000.csv.
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("studysync-%s.%s", now.Format("20060102-150405"), ext)
}
