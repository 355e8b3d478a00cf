package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/quietloop/praktika/internal/pool"
	"github.com/quietloop/praktika/internal/program"
	"github.com/quietloop/praktika/internal/store"
)

const startDateFormat = "2006-01-02"

type settingsFormData struct {
	startDate string
}

type settingsModel struct {
	days     []program.Day
	pool     *pool.Pool
	progress *store.ProgressStore
	dbPath   string
	width    int
	height   int

	form     *huh.Form
	formData *settingsFormData
}

func newSettingsModel(days []program.Day, pl *pool.Pool, progress *store.ProgressStore, dbPath string) settingsModel {
	return settingsModel{
		days:     days,
		pool:     pl,
		progress: progress,
		dbPath:   dbPath,
	}
}

func (m settingsModel) Init() tea.Cmd {
	return nil
}

func (m *settingsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m settingsModel) isFormActive() bool {
	return m.form != nil
}

func (m settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(msg, keys.Enter) || key.Matches(msg, keys.New) {
			return m.openForm()
		}
	}
	return m, nil
}

func (m settingsModel) openForm() (settingsModel, tea.Cmd) {
	initial := time.Now().Format(startDateFormat)
	if start, ok := m.progress.StartDate(); ok {
		initial = start.Format(startDateFormat)
	}

	m.formData = &settingsFormData{startDate: initial}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Description("When you began the program (YYYY-MM-DD)").
				Value(&m.formData.startDate).
				Validate(func(s string) error {
					_, err := time.Parse(startDateFormat, strings.TrimSpace(s))
					if err != nil {
						return fmt.Errorf("use YYYY-MM-DD")
					}
					return nil
				}),
		),
	).WithShowHelp(false)

	return m, m.form.Init()
}

func (m settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, keys.Back) {
		m.form = nil
		m.formData = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		raw := strings.TrimSpace(m.formData.startDate)
		m.form = nil
		m.formData = nil

		date, err := time.Parse(startDateFormat, raw)
		if err != nil {
			return m, func() tea.Msg {
				return statusMsg{text: "Invalid date: " + raw, isError: true}
			}
		}
		m.progress.SetStartDate(date)
		return m, func() tea.Msg {
			return statusMsg{text: "Start date set to " + date.Format("Jan 02, 2006")}
		}
	}

	return m, cmd
}

func (m settingsModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}
	w := m.width - 4

	if m.form != nil {
		return activePanelStyle.Width(w).Render(m.form.View())
	}

	startDate := mutedStyle.Render("not set")
	if start, ok := m.progress.StartDate(); ok {
		startDate = highlightStyle.Render(start.Format("Jan 02, 2006"))
	}

	poolSize := 0
	for _, d := range m.pool.AvailableDurations() {
		poolSize += m.pool.CountForDuration(d)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Settings"))
	rows = append(rows, "")
	rows = append(rows, fmt.Sprintf("  %-16s %s", "Start date", startDate))
	rows = append(rows, fmt.Sprintf("  %-16s %s", "Program", mutedStyle.Render(fmt.Sprintf("%d days", len(m.days)))))
	rows = append(rows, fmt.Sprintf("  %-16s %s", "Pool", mutedStyle.Render(fmt.Sprintf("%d practices", poolSize))))
	rows = append(rows, fmt.Sprintf("  %-16s %s", "Database", mutedStyle.Render(m.dbPath)))
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: edit start date"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
