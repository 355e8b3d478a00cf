package program

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	dayHeadingRe      = regexp.MustCompile(`(?m)^## Day (\d+):\s*(.+)$`)
	goalRe            = regexp.MustCompile(`(?s)\*\*Goal:\*\*\s*(.+?)(?:\n\n|###)`)
	practiceHeadingRe = regexp.MustCompile(`(?m)^### Practice (\d+):\s*(.+)$`)
	durationRe        = regexp.MustCompile(`\((\d+)(?:\s*[x×]\s*(\d+))?\s*minutes?\)`)
	whatToDoRe        = regexp.MustCompile(`(?s)\*\*What to do:\*\*\s*(.*?)(?:\*\*Focus on:|$)`)
	focusOnRe         = regexp.MustCompile(`(?s)\*\*Focus on:\*\*\s*(.*?)(?:\*\*Don't focus on:|$)`)
	dontFocusOnRe     = regexp.MustCompile(`(?s)\*\*Don't focus on:\*\*\s*(.*?)(?:\*\*\*|###|$)`)
	sourceRefRe       = regexp.MustCompile(`\[\d+\]`)
	blankRunRe        = regexp.MustCompile(`\n{3,}`)
)

// Parse reads a program document and returns its days sorted ascending
// by number. Days without any parseable practice are dropped.
func Parse(markdown string) []Day {
	var days []Day

	for _, section := range splitOn(markdown, dayHeadingRe) {
		m := dayHeadingRe.FindStringSubmatch(section)
		if m == nil {
			continue
		}
		number, _ := strconv.Atoi(m[1])
		title := strings.TrimSpace(m[2])

		goal := ""
		if g := goalRe.FindStringSubmatch(section); g != nil {
			goal = cleanText(g[1])
		}

		var practices []Practice
		for _, ps := range splitOn(section, practiceHeadingRe) {
			pm := practiceHeadingRe.FindStringSubmatch(ps)
			if pm == nil {
				continue
			}
			practices = append(practices, parsePractice(number, pm[1], pm[2], ps))
		}

		if len(practices) > 0 {
			days = append(days, Day{
				Number:    number,
				Title:     title,
				Goal:      goal,
				Practices: practices,
			})
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Number < days[j].Number })
	return days
}

func parsePractice(dayNumber int, ordinal, heading, section string) Practice {
	main := strings.Contains(heading, "— main practice")

	duration := 0
	if dm := durationRe.FindStringSubmatch(heading); dm != nil {
		duration, _ = strconv.Atoi(dm[1])
		// "A x B minutes" means A repetitions of B minutes; store the total.
		if dm[2] != "" {
			reps := duration
			per, _ := strconv.Atoi(dm[2])
			duration = reps * per
		}
	}

	title := heading
	title = durationRe.ReplaceAllString(title, "")
	if i := strings.Index(title, "—"); i >= 0 {
		title = title[:i]
	}
	title = strings.TrimSpace(title)

	instructions := Instructions{}
	if m := whatToDoRe.FindStringSubmatch(section); m != nil {
		instructions.WhatToDo = cleanText(m[1])
	}
	if m := focusOnRe.FindStringSubmatch(section); m != nil {
		instructions.FocusOn = cleanText(m[1])
	}
	if m := dontFocusOnRe.FindStringSubmatch(section); m != nil {
		instructions.DontFocusOn = cleanText(m[1])
	}

	return Practice{
		ID:           DayID(dayNumber) + "-practice-" + ordinal,
		Title:        title,
		Duration:     duration,
		Category:     CategoryProgram,
		Instructions: instructions,
		Main:         main,
		FromProgram:  true,
	}
}

// splitOn cuts text into chunks each starting at a heading match.
func splitOn(text string, re *regexp.Regexp) []string {
	locs := re.FindAllStringIndex(text, -1)
	if locs == nil {
		return nil
	}
	chunks := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		chunks = append(chunks, text[loc[0]:end])
	}
	return chunks
}

func cleanText(text string) string {
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = strings.ReplaceAll(text, "***", "")
	text = sourceRefRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}
