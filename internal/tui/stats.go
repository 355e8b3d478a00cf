package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/quietloop/praktika/internal/program"
	"github.com/quietloop/praktika/internal/store"
)

// dayStat is the per-day completion summary the stats view charts.
type dayStat struct {
	day           program.Day
	dp            store.DayProgress
	bonusDone     int
	bonusTotal    int
	hasReplaced   bool
	totalDoneMins int
}

type statsModel struct {
	days     []program.Day
	progress *store.ProgressStore
	extras   *store.ExtrasStore
	width    int
	height   int

	stats []dayStat
	chart barchart.Model
}

func newStatsModel(days []program.Day, progress *store.ProgressStore, extras *store.ExtrasStore) statsModel {
	return statsModel{
		days:     days,
		progress: progress,
		extras:   extras,
		chart:    barchart.New(60, 10),
	}
}

func (m statsModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *statsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type statsDataMsg struct {
	stats []dayStat
}

func (m statsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		stats := make([]dayStat, 0, len(m.days))
		for _, d := range m.days {
			dayID := d.ID()
			st := dayStat{
				day: d,
				dp:  m.progress.DayProgress(dayID, len(d.Practices)),
			}
			st.bonusDone, st.bonusTotal = m.extras.BonusProgress(dayID)

			for _, p := range d.Practices {
				display := p
				if r, ok := m.extras.ReplacementFor(dayID, p.ID); ok {
					display = r
					st.hasReplaced = true
				}
				if m.progress.IsCompleted(dayID, display.ID) {
					st.totalDoneMins += display.Duration
				}
			}
			for _, p := range m.extras.BonusPractices(dayID) {
				if m.extras.IsBonusCompleted(dayID, p.ID) {
					st.totalDoneMins += p.Duration
				}
			}

			stats = append(stats, st)
		}
		return statsDataMsg{stats: stats}
	}
}

func (m statsModel) update(msg tea.Msg) (statsModel, tea.Cmd) {
	if msg, ok := msg.(statsDataMsg); ok {
		m.stats = msg.stats
		m.rebuildChart()
	}
	return m, nil
}

func (m *statsModel) rebuildChart() {
	chartWidth := m.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if m.height > 30 {
		chartHeight = 14
	}

	m.chart = barchart.New(chartWidth, chartHeight)

	var bars []barchart.BarData
	for _, st := range m.stats {
		values := []barchart.BarValue{
			{Name: "program", Value: float64(st.dp.Completed), Style: lipgloss.NewStyle().Foreground(colorPrimary)},
		}
		if st.bonusDone > 0 {
			values = append(values, barchart.BarValue{
				Name: "bonus", Value: float64(st.bonusDone), Style: lipgloss.NewStyle().Foreground(colorBonus),
			})
		}
		if st.dp.Completed == 0 && st.bonusDone == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}
		bars = append(bars, barchart.BarData{
			Label:  fmt.Sprintf("D%d", st.day.Number),
			Values: values,
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m statsModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}
	w := m.width - 4

	header := titleStyle.Render("Stats")
	if start, ok := m.progress.StartDate(); ok {
		header += "  " + mutedStyle.Render("started "+start.Format("Jan 02, 2006"))
	}

	legend := fmt.Sprintf("%s program  %s bonus",
		lipgloss.NewStyle().Foreground(colorPrimary).Render("●"),
		lipgloss.NewStyle().Foreground(colorBonus).Render("●"),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", m.chart.View(), "", legend, "", m.renderSummary(w),
		),
	)
}

func (m statsModel) renderSummary(w int) string {
	var daysComplete, practicesDone, bonusDone, minutes int
	for _, st := range m.stats {
		if st.dp.Complete {
			daysComplete++
		}
		practicesDone += st.dp.Completed
		bonusDone += st.bonusDone
		minutes += st.totalDoneMins
	}

	var rows []string
	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 40))))
	rows = append(rows, fmt.Sprintf("  Days complete      %s", successStyle.Render(fmt.Sprintf("%d/%d", daysComplete, len(m.stats)))))
	rows = append(rows, fmt.Sprintf("  Practices done     %s", highlightStyle.Render(fmt.Sprintf("%d", practicesDone))))
	rows = append(rows, fmt.Sprintf("  Bonus done         %s", bonusStyle.Render(fmt.Sprintf("%d", bonusDone))))
	rows = append(rows, fmt.Sprintf("  Minutes practiced  %s", titleStyle.Render(fmt.Sprintf("%d", minutes))))
	return strings.Join(rows, "\n")
}
