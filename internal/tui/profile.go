package tui

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studysync/internal/store"
)

const maxAvatarBytes = 1 << 20

type profileModel struct {
	store  *store.Store
	now    func() time.Time
	width  int
	height int

	goalBar progress.Model

	formActive bool
	form       *huh.Form

	// Form field pointers (survive value copies)
	formName      *string
	formEmail     *string
	formGoal      *string
	formFavorites *string
	formAvatar    *string
}

func newProfileModel(s *store.Store, now func() time.Time) profileModel {
	name, email, goal, favs, avatar := "", "", "", "", ""
	return profileModel{
		store:         s,
		now:           now,
		goalBar:       progress.New(progress.WithDefaultGradient()),
		formName:      &name,
		formEmail:     &email,
		formGoal:      &goal,
		formFavorites: &favs,
		formAvatar:    &avatar,
	}
}

func (p *profileModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.goalBar.Width = max(10, w/2-12)
}

func (p profileModel) update(msg tea.Msg) (profileModel, tea.Cmd) {
	if p.formActive && p.form != nil {
		return p.updateForm(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(km, keys.Edit) || key.Matches(km, keys.Enter) {
			return p.showForm()
		}
	}
	return p, nil
}

func (p profileModel) showForm() (profileModel, tea.Cmd) {
	prof := p.store.State().Profile
	*p.formName = prof.Name
	*p.formEmail = prof.Email
	*p.formGoal = strconv.Itoa(prof.StudyGoal)
	*p.formFavorites = strings.Join(prof.FavoriteSubjects, ", ")
	*p.formAvatar = ""

	p.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(p.formName).Validate(required("name")),
			huh.NewInput().Title("Email").Value(p.formEmail),
			huh.NewInput().Title("Daily study goal (min)").Value(p.formGoal).Validate(validGoal),
		).Title("Profile"),
		huh.NewGroup(
			huh.NewInput().Title("Favorite subjects (comma-separated)").Value(p.formFavorites),
			huh.NewInput().Title("Avatar image").
				Description("Path to an image file. Leave blank to keep the current one.").
				Value(p.formAvatar),
		).Title("Extras"),
	).WithTheme(formTheme()).WithShowHelp(true).WithShowErrors(true)

	p.formActive = true
	return p, p.form.Init()
}

func (p profileModel) updateForm(msg tea.Msg) (profileModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			p.formActive = false
			p.form = nil
			return p, nil
		}
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		p.formActive = false
		p.form = nil
		return p, p.save()
	}
	return p, cmd
}

func (p profileModel) save() tea.Cmd {
	prof := p.store.State().Profile

	goal, err := strconv.Atoi(strings.TrimSpace(*p.formGoal))
	if err != nil {
		return errorCmd("Profile not saved: study goal must be a number")
	}
	next := store.UserProfile{
		Name:             strings.TrimSpace(*p.formName),
		Email:            strings.TrimSpace(*p.formEmail),
		StudyGoal:        goal,
		FavoriteSubjects: splitList(*p.formFavorites),
		Avatar:           prof.Avatar,
	}
	if path := strings.TrimSpace(*p.formAvatar); path != "" {
		uri, err := encodeAvatar(path)
		if err != nil {
			return errorCmd("Profile not saved: %v", err)
		}
		next.Avatar = uri
	}
	if err := next.Validate(); err != nil {
		return errorCmd("Profile not saved: %v", err)
	}

	p.store.Dispatch(store.UpdateProfile{Profile: next})
	return statusCmd("Profile updated")
}

func validGoal(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter minutes as a whole number")
	}
	if n < 0 {
		return fmt.Errorf("goal cannot be negative")
	}
	return nil
}

// encodeAvatar reads an image file and returns it as a base64 data URI.
func encodeAvatar(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("avatar: %w", err)
	}
	if info.Size() > maxAvatarBytes {
		return "", fmt.Errorf("avatar: %s is larger than 1 MiB", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("avatar: %w", err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("avatar: %s is not an image (%s)", path, mime)
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// avatarKind describes a stored avatar without printing the payload.
func avatarKind(uri string) string {
	if uri == "" {
		return "none"
	}
	if rest, ok := strings.CutPrefix(uri, "data:"); ok {
		if mime, _, ok := strings.Cut(rest, ";"); ok {
			return mime
		}
	}
	return "set"
}

func (p profileModel) view() string {
	w := p.width - 4

	if p.formActive && p.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Edit Profile"), "", p.form.View()),
		)
	}

	st := p.store.State()
	now := p.now()

	card := p.renderCard(st.Profile)
	stats := p.renderStats(st, now)

	colW := max(30, w/2-4)
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(colW).Render(card),
		"  ",
		lipgloss.NewStyle().Width(colW).Render(stats),
	)

	chartHeight := 10
	if p.height > 36 {
		chartHeight = 14
	}
	chart := buildStudyChart(st.Sessions, now, w-8, chartHeight)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			top,
			"",
			subtitleStyle.Render("Study minutes, last 7 days"),
			chart.View(),
			"",
			renderDailyTable(st.Sessions, now, st.Profile.StudyGoal),
			"",
			mutedStyle.Render("  e: edit profile"),
		),
	)
}

func (p profileModel) renderCard(prof store.UserProfile) string {
	favs := "none"
	if len(prof.FavoriteSubjects) > 0 {
		favs = strings.Join(prof.FavoriteSubjects, ", ")
	}
	rows := []string{
		titleStyle.Render(prof.Name),
		mutedStyle.Render(prof.Email),
		"",
		fmt.Sprintf("%s %s", mutedStyle.Render("Daily goal: "), highlightStyle.Render(formatStudyMinutes(prof.StudyGoal))),
		fmt.Sprintf("%s %s", mutedStyle.Render("Favorites:  "), favs),
		fmt.Sprintf("%s %s", mutedStyle.Render("Avatar:     "), avatarKind(prof.Avatar)),
	}
	return strings.Join(rows, "\n")
}

func (p profileModel) renderStats(st store.State, now time.Time) string {
	_, completed := store.PartitionTasks(st.Tasks)
	today := store.MinutesOn(st.Sessions, now)
	goal := store.GoalProgress(st.Profile, st.Sessions, now)

	line := func(label, value string) string {
		return lipgloss.NewStyle().Width(18).Foreground(colorMuted).Render(label) + value
	}
	rows := []string{
		titleStyle.Render("Stats"),
		"",
		line("Notes", strconv.Itoa(len(st.Notes))),
		line("Tasks done", fmt.Sprintf("%d/%d", len(completed), len(st.Tasks))),
		line("Sessions", strconv.Itoa(len(st.Sessions))),
		line("Total studied", formatStudyMinutes(store.TotalStudyMinutes(st.Sessions))),
		line("Streak", fmt.Sprintf("%d/7 days", store.StudyStreak(st.Sessions, now))),
		line("Today", fmt.Sprintf("%s of %s", formatStudyMinutes(today), formatStudyMinutes(st.Profile.StudyGoal))),
		p.goalBar.ViewAs(goal),
	}
	return strings.Join(rows, "\n")
}
