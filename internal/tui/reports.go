package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/studysync/internal/store"
)

const chartDays = 7

// buildStudyChart charts study minutes per day for the week ending now.
func buildStudyChart(sessions []store.StudySession, now time.Time, width, height int) barchart.Model {
	chart := barchart.New(max(20, width), max(6, height))

	barStyle := lipgloss.NewStyle().Foreground(colorPrimary)
	todayStyle := lipgloss.NewStyle().Foreground(colorSuccess)
	emptyStyle := lipgloss.NewStyle().Foreground(colorSubtle)

	days := store.DailyMinutes(sessions, now, chartDays)
	bars := make([]barchart.BarData, 0, len(days))
	for i, d := range days {
		style := barStyle
		switch {
		case d.Minutes == 0:
			style = emptyStyle
		case i == len(days)-1:
			style = todayStyle
		}
		bars = append(bars, barchart.BarData{
			Label: d.Day.Format("Mon"),
			Values: []barchart.BarValue{{
				Name:  d.Day.Format("2006-01-02"),
				Value: float64(d.Minutes),
				Style: style,
			}},
		})
	}

	chart.PushAll(bars)
	chart.Draw()
	return chart
}

// renderDailyTable lists the same days as the chart with exact minutes.
func renderDailyTable(sessions []store.StudySession, now time.Time, goal int) string {
	var rows []string
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %-12s %8s", "Day", "Studied")))
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", 22)))
	for _, d := range store.DailyMinutes(sessions, now, chartDays) {
		mins := fmt.Sprintf("%8s", formatStudyMinutes(d.Minutes))
		switch {
		case goal > 0 && d.Minutes >= goal:
			mins = successStyle.Render(mins)
		case d.Minutes == 0:
			mins = mutedStyle.Render(mins)
		}
		rows = append(rows, fmt.Sprintf("  %-12s %s", d.Day.Format("Mon Jan 02"), mins))
	}
	return strings.Join(rows, "\n")
}
