package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/quietloop/praktika/internal/pool"
	"github.com/quietloop/praktika/internal/program"
	"github.com/quietloop/praktika/internal/store"
)

type bonusItem struct {
	practice program.Practice
	done     bool
}

// bonusFormData backs the add-bonus form. Pointer so the fields survive
// the value copies bubbletea makes of the model.
type bonusFormData struct {
	duration int
}

type bonusModel struct {
	days     []program.Day
	pool     *pool.Pool
	progress *store.ProgressStore
	extras   *store.ExtrasStore
	width    int
	height   int

	dayNum int
	items  []bonusItem
	cursor int

	form     *huh.Form
	formData *bonusFormData
}

func newBonusModel(days []program.Day, pl *pool.Pool, progress *store.ProgressStore, extras *store.ExtrasStore) bonusModel {
	return bonusModel{
		days:     days,
		pool:     pl,
		progress: progress,
		extras:   extras,
	}
}

func (m bonusModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *bonusModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m bonusModel) isFormActive() bool {
	return m.form != nil
}

type bonusDataMsg struct {
	dayNum int
	items  []bonusItem
}

func (m bonusModel) refresh() tea.Cmd {
	return func() tea.Msg {
		num := m.progress.MaxAvailableDay(m.days)
		dayID := program.DayID(num)

		practices := m.extras.BonusPractices(dayID)
		items := make([]bonusItem, 0, len(practices))
		for _, p := range practices {
			items = append(items, bonusItem{
				practice: p,
				done:     m.extras.IsBonusCompleted(dayID, p.ID),
			})
		}

		return bonusDataMsg{dayNum: num, items: items}
	}
}

func (m bonusModel) update(msg tea.Msg) (bonusModel, tea.Cmd) {
	if m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case bonusDataMsg:
		m.dayNum = msg.dayNum
		m.items = msg.items
		if m.cursor >= len(m.items) {
			m.cursor = max(0, len(m.items)-1)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.New):
			return m.openForm()
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			return m.toggleCurrent()
		case key.Matches(msg, keys.Replace):
			return m.replaceCurrent()
		case key.Matches(msg, keys.Remove):
			return m.removeCurrent()
		}
	}
	return m, nil
}

func (m bonusModel) openForm() (bonusModel, tea.Cmd) {
	dayID := program.DayID(m.dayNum)
	if !m.extras.CanAddMore(dayID) {
		return m, func() tea.Msg {
			return statusMsg{text: fmt.Sprintf("Day limit reached (%d bonus practices)", store.MaxBonusPerDay), isError: true}
		}
	}

	options := []huh.Option[int]{huh.NewOption("Any duration", 0)}
	for _, d := range m.pool.AvailableDurations() {
		options = append(options, huh.NewOption(fmt.Sprintf("%d min (%d available)", d, m.pool.CountForDuration(d)), d))
	}

	m.formData = &bonusFormData{}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Add bonus practice").
				Description("Pick a duration, or let any length through").
				Options(options...).
				Value(&m.formData.duration),
		),
	).WithShowHelp(false)

	return m, m.form.Init()
}

func (m bonusModel) updateForm(msg tea.Msg) (bonusModel, tea.Cmd) {
	// Esc cancels the form.
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
		duration := m.formData.duration
		m.form = nil
		m.formData = nil

		dayID := program.DayID(m.dayNum)
		p, ok := m.extras.AddBonus(dayID, duration)
		if !ok {
			return m, func() tea.Msg {
				return statusMsg{text: "No unseen practice left for that duration", isError: true}
			}
		}
		return m, tea.Batch(
			m.refresh(),
			func() tea.Msg { return bonusAddedMsg{practice: p} },
		)
	}

	return m, cmd
}

func (m bonusModel) toggleCurrent() (bonusModel, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	item := m.items[m.cursor]
	m.extras.ToggleBonus(program.DayID(m.dayNum), item.practice.ID)
	return m, m.refresh()
}

func (m bonusModel) replaceCurrent() (bonusModel, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	item := m.items[m.cursor]
	if item.done {
		return m, func() tea.Msg {
			return statusMsg{text: "Completed practices cannot be replaced", isError: true}
		}
	}

	replacement, ok := m.extras.ReplaceBonus(program.DayID(m.dayNum), item.practice.ID)
	if !ok {
		return m, func() tea.Msg {
			return statusMsg{text: "Nothing left to draw for this duration", isError: true}
		}
	}
	return m, tea.Batch(
		m.refresh(),
		func() tea.Msg { return statusMsg{text: "Swapped in: " + replacement.Title} },
	)
}

func (m bonusModel) removeCurrent() (bonusModel, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	item := m.items[m.cursor]
	m.extras.RemoveBonus(program.DayID(m.dayNum), item.practice.ID)
	return m, tea.Batch(
		m.refresh(),
		func() tea.Msg { return statusMsg{text: "Removed: " + item.practice.Title} },
	)
}

func (m bonusModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}
	w := m.width - 4

	if m.form != nil {
		return activePanelStyle.Width(w).Render(m.form.View())
	}

	var rows []string
	header := titleStyle.Render(fmt.Sprintf("Bonus — Day %d", m.dayNum))
	count := bonusStyle.Render(fmt.Sprintf("%d/%d slots", len(m.items), store.MaxBonusPerDay))
	rows = append(rows, fmt.Sprintf("%s  %s", header, count))
	rows = append(rows, "")

	if len(m.items) == 0 {
		rows = append(rows, mutedStyle.Render("No bonus practices yet — press n to draw one"))
	}

	for i, item := range m.items {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		dur := ""
		if d := formatMinutes(item.practice.Duration); d != "" {
			dur = mutedStyle.Render("  " + d)
		}
		cat := bonusStyle.Render("  " + string(item.practice.Category))
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, checkbox(item.done), style.Render(item.practice.Title))+dur+cat)
		if i == m.cursor && item.practice.Purpose != "" {
			rows = append(rows, mutedStyle.Render("       "+item.practice.Purpose))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: add  space: toggle  r: replace  d: remove"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
