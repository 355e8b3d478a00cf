package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/quietloop/praktika/internal/program"
	"github.com/quietloop/praktika/internal/store"
)

// programModel is the full-program browser: a list of all days with
// their lock state, and a drill-down checklist for unlocked days.
type programModel struct {
	days     []program.Day
	progress *store.ProgressStore
	extras   *store.ExtrasStore
	width    int
	height   int

	rows      []dayRow
	maxDay    int
	cursor    int
	openDay   int // 0 = list view
	items     []todayItem
	itemIndex int
}

type dayRow struct {
	day program.Day
	dp  store.DayProgress
}

func newProgramModel(days []program.Day, progress *store.ProgressStore, extras *store.ExtrasStore) programModel {
	return programModel{
		days:     days,
		progress: progress,
		extras:   extras,
	}
}

func (m programModel) Init() tea.Cmd {
	return m.refresh()
}

func (m *programModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type programDataMsg struct {
	rows   []dayRow
	maxDay int
	items  []todayItem
}

func (m programModel) refresh() tea.Cmd {
	openDay := m.openDay
	return func() tea.Msg {
		rows := make([]dayRow, 0, len(m.days))
		for _, d := range m.days {
			rows = append(rows, dayRow{
				day: d,
				dp:  m.progress.DayProgress(d.ID(), len(d.Practices)),
			})
		}

		msg := programDataMsg{
			rows:   rows,
			maxDay: m.progress.MaxAvailableDay(m.days),
		}
		if openDay > 0 {
			for _, d := range m.days {
				if d.Number == openDay {
					msg.items = m.buildItems(d)
					break
				}
			}
		}
		return msg
	}
}

func (m programModel) buildItems(day program.Day) []todayItem {
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
	return items
}

func (m programModel) update(msg tea.Msg) (programModel, tea.Cmd) {
	switch msg := msg.(type) {
	case programDataMsg:
		m.rows = msg.rows
		m.maxDay = msg.maxDay
		m.items = msg.items
		if m.cursor >= len(m.rows) {
			m.cursor = max(0, len(m.rows)-1)
		}
		if m.itemIndex >= len(m.items) {
			m.itemIndex = max(0, len(m.items)-1)
		}
		return m, nil

	case tea.KeyMsg:
		if m.openDay > 0 {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m programModel) updateList(msg tea.KeyMsg) (programModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(m.rows) == 0 {
			return m, nil
		}
		row := m.rows[m.cursor]
		if row.day.Number > m.maxDay {
			return m, func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Day %d is locked — finish day %d first", row.day.Number, m.maxDay), isError: true}
			}
		}
		m.openDay = row.day.Number
		m.itemIndex = 0
		return m, m.refresh()
	}
	return m, nil
}

func (m programModel) updateDetail(msg tea.KeyMsg) (programModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		m.openDay = 0
		return m, m.refresh()
	case key.Matches(msg, keys.Up):
		if m.itemIndex > 0 {
			m.itemIndex--
		}
	case key.Matches(msg, keys.Down):
		if m.itemIndex < len(m.items)-1 {
			m.itemIndex++
		}
	case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
		if len(m.items) == 0 {
			return m, nil
		}
		item := m.items[m.itemIndex]
		done := m.progress.Toggle(program.DayID(m.openDay), item.practice.ID)
		return m, tea.Batch(
			m.refresh(),
			func() tea.Msg { return practiceToggledMsg{practiceID: item.practice.ID, completed: done} },
		)
	}
	return m, nil
}

func (m programModel) view() string {
	if m.width < 20 {
		return "Terminal too small"
	}
	if m.openDay > 0 {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m programModel) viewList() string {
	w := m.width - 4

	var rows []string
	rows = append(rows, titleStyle.Render("Program"))
	rows = append(rows, "")

	for i, row := range m.rows {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		var state string
		switch {
		case row.dp.Complete:
			state = doneMarkStyle.Render("✓")
		case row.day.Number == m.maxDay:
			state = highlightStyle.Render("▸")
		case row.day.Number > m.maxDay:
			state = lockedStyle.Render("🔒")
		default:
			state = " "
		}

		label := fmt.Sprintf("Day %d: %s", row.day.Number, row.day.Title)
		if row.day.Number > m.maxDay {
			label = lockedStyle.Render(label)
		} else {
			label = style.Render(label)
		}
		count := mutedStyle.Render(fmt.Sprintf("%d/%d", row.dp.Completed, row.dp.Total))
		rows = append(rows, fmt.Sprintf("%s%s %s  %s", cursor, state, label, count))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  enter: open day"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (m programModel) viewDetail() string {
	w := m.width - 4

	var day program.Day
	for _, d := range m.days {
		if d.Number == m.openDay {
			day = d
			break
		}
	}

	var rows []string
	rows = append(rows, titleStyle.Render(fmt.Sprintf("Day %d: %s", day.Number, day.Title)))
	if day.Goal != "" {
		rows = append(rows, goalStyle.Render(day.Goal))
	}
	rows = append(rows, "")

	for i, item := range m.items {
		cursor := "  "
		style := normalItemStyle
		if i == m.itemIndex {
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
		rows = append(rows, fmt.Sprintf("%s%s %s", cursor, checkbox(item.done), style.Render(title))+dur)
		if item.replaced {
			rows = append(rows, mutedStyle.Render("       ↺ replaces: "+item.original.Title))
		}
		if i == m.itemIndex && item.practice.Purpose != "" {
			rows = append(rows, mutedStyle.Render("       "+item.practice.Purpose))
		}
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  esc: back"))

	return activePanelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
