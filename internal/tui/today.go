package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/quietloop/praktika/internal/program"
	"github.com/quietloop/praktika/internal/store"
)

// todayItem is one practice row: the program practice, or its stored
// replacement standing in for it.
type todayItem struct {
	practice program.Practice
	original program.Practice
	replaced bool
	done     bool
}

type todayModel struct {
	days     []program.Day
	progress *store.ProgressStore
	extras   *store.ExtrasStore
	width    int
	height   int

	day    program.Day
	items  []todayItem
	dp     store.DayProgress
	cursor int
}

func newTodayModel(days []program.Day, progress *store.ProgressStore, extras *store.ExtrasStore) todayModel {
	return todayModel{
		days:     days,
		progress: progress,
		extras:   extras,
	}
}

func (m todayModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *todayModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type todayDataMsg struct {
	day   program.Day
	items []todayItem
	dp    store.DayProgress
}

func (m todayModel) refresh() tea.Cmd {
	return func() tea.Msg {
		num := m.progress.MaxAvailableDay(m.days)
		var day program.Day
		for _, d := range m.days {
			if d.Number == num {
				day = d
				break
			}
		}

		dayID := day.ID()
		items := make([]todayItem, 0, len(day.Practices))
		for _, p := range day.Practices {
			item := todayItem{practice: p, original: p}
			if r, ok := m.extras.ReplacementFor(dayID, p.ID); ok {
				item.practice = r
				item.replaced = true
			}
			item.done = m.progress.IsCompleted(dayID, item.practice.ID)
			items = append(items, item)
		}

		return todayDataMsg{
			day:   day,
			items: items,
			dp:    m.progress.DayProgress(dayID, len(day.Practices)),
		}
	}
}

func (m todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todayDataMsg:
		m.day = msg.day
		m.items = msg.items
		m.dp = msg.dp
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
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			return m.toggleCurrent()
		case key.Matches(msg, keys.Replace):
			return m.replaceCurrent()
		case key.Matches(msg, keys.Remove):
			return m.restoreCurrent()
		}
	}
	return m, nil
}

func (m todayModel) toggleCurrent() (todayModel, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	item := m.items[m.cursor]
	done := m.progress.Toggle(m.day.ID(), item.practice.ID)
	return m, tea.Batch(
		m.refresh(),
		func() tea.Msg { return practiceToggledMsg{practiceID: item.practice.ID, completed: done} },
	)
}

func (m todayModel) replaceCurrent() (todayModel, tea.Cmd) {
	if len(m.items) == 0 {
		return m, nil
	}
	item := m.items[m.cursor]
	if item.done {
		return m, func() tea.Msg {
			return statusMsg{text: "Completed practices cannot be replaced", isError: true}
		}
	}

	replacement, ok := m.extras.SetReplacementFor(m.day.ID(), item.original)
	if !ok {
		return m, func() tea.Msg {
			return statusMsg{text: "Nothing left to draw for this duration", isError: true}
		}
	}
	return m, tea.Batch(
		m.refresh(),
		func() tea.Msg { return statusMsg{text: "Replaced with: " + replacement.Title} },
	)
}

func (m todayModel) restoreCurrent() (todayModel, tea.Cmd) {
	if len(m.items) == 0 || !m.items[m.cursor].replaced {
		return m, nil
	}
	item := m.items[m.cursor]
	m.extras.RemoveReplacement(m.day.ID(), item.original.ID)
	return m, tea.Batch(
		m.refresh(),
		func() tea.Msg { return statusMsg{text: "Restored: " + item.original.Title} },
	)
}

func (m todayModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}
	w := m.width - 4

	if m.day.Number == 0 {
		return panelStyle.Width(w).Render(mutedStyle.Render("No program loaded"))
	}

	counter := fmt.Sprintf("%d/%d", m.dp.Completed, m.dp.Total)
	if m.dp.Complete {
		counter = successStyle.Render(counter + " ✓")
	} else {
		counter = highlightStyle.Render(counter)
	}
	title := titleStyle.Render(fmt.Sprintf("Day %d: %s", m.day.Number, m.day.Title))
	header := fmt.Sprintf("%s  %s", title, counter)

	var rows []string
	rows = append(rows, header)
	if m.day.Goal != "" {
		rows = append(rows, goalStyle.Render(m.day.Goal))
	}
	rows = append(rows, "")

	for i, item := range m.items {
		rows = append(rows, m.renderItem(i, item)...)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  r: replace  d: restore original"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m todayModel) renderItem(i int, item todayItem) []string {
	cursor := "  "
	style := normalItemStyle
	if i == m.cursor {
		cursor = "> "
		style = selectedItemStyle
	}

	title := item.practice.Title
	if item.practice.Main {
		title += " ★"
	}

	dur := ""
	if d := formatMinutes(item.practice.Duration); d != "" {
		dur = mutedStyle.Render("  " + d)
	}

	row := fmt.Sprintf("%s%s %s", cursor, checkbox(item.done), style.Render(title)) + dur
	rows := []string{row}

	if item.replaced {
		rows = append(rows, mutedStyle.Render("       ↺ replaces: "+item.original.Title))
	}
	return rows
}

func (m todayModel) dayProgress() (int, store.DayProgress) {
	return m.day.Number, m.dp
}
