package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/studysync/internal/store"
)

func sampleState() store.State {
	now := time.Now().UTC()
	due := now.Add(24 * time.Hour)

	st := store.DefaultState()
	st.Notes = []store.Note{
		{ID: "n1", Title: "Cells", Content: "Mitochondria", Subject: "Biology", CreatedAt: now},
	}
	st.Tasks = []store.Task{
		{ID: "t1", Title: "Read chapter 3", Priority: store.PriorityHigh, DueDate: &due},
		{ID: "t2", Title: "Flashcards", Priority: store.PriorityLow, Completed: true},
	}
	st.Sessions = []store.StudySession{
		{ID: "s1", Duration: 25, Subject: "Biology", Date: now.Add(-2 * time.Hour)},
		{ID: "s2", Duration: 90, Subject: "Calculus", Date: now.Add(-1 * time.Hour)},
	}
	return st
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	st := sampleState()
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(st.Sessions, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}

	records := readCSV(t, path)
	if len(records) != 3 {
		t.Fatalf("expected 3 rows (1 header + 2 data), got %d", len(records))
	}

	expectedHeader := []string{"ID", "Subject", "Date", "Duration (min)", "Duration"}
	for i, h := range expectedHeader {
		if records[0][i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, records[0][i], h)
		}
	}

	row := records[1]
	if row[0] != "s1" {
		t.Fatalf("ID = %q, want s1", row[0])
	}
	if row[1] != "Biology" {
		t.Fatalf("Subject = %q, want Biology", row[1])
	}
	if row[3] != "25" {
		t.Fatalf("Duration (min) = %q, want 25", row[3])
	}
	if row[4] != "00:25" {
		t.Fatalf("Duration = %q, want 00:25", row[4])
	}
	if records[2][4] != "01:30" {
		t.Fatalf("Duration = %q, want 01:30", records[2][4])
	}
	if _, err := time.Parse(time.RFC3339, row[2]); err != nil {
		t.Fatalf("date is not RFC3339: %q", row[2])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")

	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	if len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	err := ToCSV(nil, "/nonexistent/dir/file.csv")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	sessions := []store.StudySession{
		{ID: "1", Duration: 5, Subject: `History "Ancient", Rome`, Date: time.Now()},
	}
	path := filepath.Join(t.TempDir(), "special.csv")

	if err := ToCSV(sessions, path); err != nil {
		t.Fatal(err)
	}

	records := readCSV(t, path)
	if records[1][1] != `History "Ancient", Rome` {
		t.Fatalf("subject mangled: %q", records[1][1])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(sampleState(), path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if result.ExportedAt == "" {
		t.Fatal("exported_at should not be empty")
	}
	if result.Profile.Name != "Student User" {
		t.Fatalf("profile name = %q", result.Profile.Name)
	}
	if result.Profile.HasAvatar {
		t.Fatal("default profile has no avatar")
	}

	want := jsonCounts{Notes: 1, Tasks: 2, CompletedTasks: 1, Sessions: 2, StudyMinutes: 115}
	if result.Counts != want {
		t.Fatalf("counts = %+v, want %+v", result.Counts, want)
	}

	if len(result.Tasks) != 2 {
		t.Fatalf("tasks = %d, want 2", len(result.Tasks))
	}
	if result.Tasks[0].Priority != "high" || result.Tasks[0].DueDate == "" {
		t.Fatalf("first task = %+v", result.Tasks[0])
	}
	if result.Tasks[1].DueDate != "" {
		t.Fatalf("task without due date should omit it, got %q", result.Tasks[1].DueDate)
	}

	s := result.Sessions[1]
	if s.ID != "s2" || s.DurationMin != 90 || s.Duration != "01:30" {
		t.Fatalf("session = %+v", s)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ToJSON(store.DefaultState(), path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if result.Counts.Sessions != 0 {
		t.Fatalf("sessions = %d, want 0", result.Counts.Sessions)
	}
	if result.Notes != nil {
		t.Fatal("notes should be nil/null for empty export")
	}
}

func TestToJSONAvatarOmitted(t *testing.T) {
	st := store.DefaultState()
	st.Profile.Avatar = "data:image/png;base64,AAAA"
	path := filepath.Join(t.TempDir(), "avatar.json")

	if err := ToJSON(st, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "base64") {
		t.Fatal("avatar payload should not be exported")
	}
	var result jsonExport
	json.Unmarshal(data, &result)
	if !result.Profile.HasAvatar {
		t.Fatal("has_avatar should be true")
	}
}

func TestToJSONBadPath(t *testing.T) {
	err := ToJSON(store.DefaultState(), "/nonexistent/dir/file.json")
	if err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToJSONPrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pretty.json")
	ToJSON(store.DefaultState(), path)

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "\n") {
		t.Fatal("JSON should be pretty-printed with newlines")
	}
	if !strings.Contains(string(data), "  ") {
		t.Fatal("JSON should be indented with spaces")
	}
}

func TestToJSONValidTimestamps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ts.json")
	ToJSON(sampleState(), path)

	data, _ := os.ReadFile(path)
	var result jsonExport
	json.Unmarshal(data, &result)

	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
	for _, s := range result.Sessions {
		if _, err := time.Parse(time.RFC3339, s.Date); err != nil {
			t.Fatalf("session date is not valid RFC3339: %q", s.Date)
		}
	}
	for _, n := range result.Notes {
		if _, err := time.Parse(time.RFC3339, n.CreatedAt); err != nil {
			t.Fatalf("created_at is not valid RFC3339: %q", n.CreatedAt)
		}
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 5, 12, 9, 30, 0, 0, time.UTC)
	if got := Filename("csv", now); got != "studysync-20240512-093000.csv" {
		t.Fatalf("Filename = %q", got)
	}
}

// ============================================================
// formatMinutes (internal helper)
// ============================================================

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		mins int
		want string
	}{
		{0, "00:00"},
		{1, "00:01"},
		{25, "00:25"},
		{60, "01:00"},
		{135, "02:15"},
		{1500, "25:00"},
		{-3, "00:00"},
	}

	for _, tt := range tests {
		got := formatMinutes(tt.mins)
		if got != tt.want {
			t.Errorf("formatMinutes(%d) = %q, want %q", tt.mins, got, tt.want)
		}
	}
}
