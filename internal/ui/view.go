package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/fpick/internal/picker"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	promptText       = "» "
	placeholderText  = "type to search"
	itemIndicator    = "▌"
	emptySetNotice   = "(no files)"
	noMatchesNotice  = "No matches for %q"
	bottomBarRows    = 2 // counter + prompt
	separatedRowCost = 2 // blank line + content
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.session.Done() {
		return ""
	}
	snap := m.session.Engine().Snapshot()
	lines := make([]styledLine, 0, 16)

	switch {
	case snap.Total == 0:
		lines = append(lines, styledLine{text: emptySetNotice, style: styles.Info})
	case len(snap.Entries) == 0:
		lines = append(lines, styledLine{text: fmt.Sprintf(noMatchesNotice, snap.Query), style: styles.Info})
	default:
		maxItems := m.maxVisibleItems()
		m.offset = followCursor(m.offset, snap.Cursor, len(snap.Entries), maxItems)
		visible := snap.Entries[m.offset:]
		if maxItems > 0 && len(visible) > maxItems {
			visible = visible[:maxItems]
		}
		for i, entry := range visible {
			lines = append(lines, m.buildItemLine(entry, m.offset+i == snap.Cursor))
		}
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: keys.footer(), style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-bottomBarRows, m.width)
	lines = applyWidth(lines, m.width)

	bottom := []styledLine{
		{text: fmt.Sprintf("%d/%d", len(snap.Entries), snap.Total), style: styles.Counter},
		{text: m.queryPrompt(snap.Query), raw: true},
	}
	bottom = applyWidth(bottom, m.width)
	lines = append(lines, bottom...)
	return renderLines(lines)
}

// buildItemLine renders one candidate with the indicator bar and matched
// positions emphasised. The result is pre-styled, so it is marked raw.
func (m *Model) buildItemLine(entry picker.Entry, selected bool) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	matchStyle := styles.MatchHighlight
	if selected {
		lineStyle = styles.SelectedItem
		indicatorStyle = styles.SelectedItemIndicator
		matchStyle = styles.SelectedMatch
	}
	text := entry.Candidate
	if m.width > 0 {
		if pad := m.width - lipgloss.Width(itemIndicator+" "+text); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	var b strings.Builder
	b.WriteString(render(indicatorStyle, itemIndicator))
	b.WriteString(render(lineStyle, " "))
	b.WriteString(highlight(text, entry.Positions, lineStyle, matchStyle))
	return styledLine{text: b.String(), raw: true}
}

// highlight styles the bytes of text at positions with match and the rest
// with base, grouping consecutive runs.
func highlight(text string, positions []int, base, match *lipgloss.Style) string {
	if len(positions) == 0 {
		return render(base, text)
	}
	marked := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		marked[p] = struct{}{}
	}
	var out, run strings.Builder
	runMatched := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runMatched {
			out.WriteString(render(match, run.String()))
		} else {
			out.WriteString(render(base, run.String()))
		}
		run.Reset()
	}
	for i, r := range text {
		_, hit := marked[i]
		if hit != runMatched {
			flush()
			runMatched = hit
		}
		run.WriteRune(r)
	}
	flush()
	return out.String()
}

func (m *Model) queryPrompt(query string) string {
	prompt := render(styles.Prompt, promptText)
	if query == "" {
		runes := []rune(placeholderText)
		m.caret.TextStyle = styleOrZero(styles.QueryPlaceholder)
		m.caret.SetChar(string(runes[0]))
		return prompt + m.caret.View() + render(styles.QueryPlaceholder, string(runes[1:]))
	}
	m.caret.TextStyle = styleOrZero(styles.Query)
	m.caret.SetChar(" ")
	return prompt + render(styles.Query, query) + m.caret.View()
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := bottomBarRows
	if m.currentInfo() != "" {
		used += separatedRowCost
	}
	if m.showFooter {
		used += separatedRowCost
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func styleOrZero(style *lipgloss.Style) lipgloss.Style {
	if style == nil {
		return lipgloss.Style{}
	}
	return style.Copy()
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width), style: styles.Info}}
	}
	trimmed := append([]styledLine(nil), lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width), style: styles.Info})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.raw {
			out[i] = line.text
			continue
		}
		out[i] = render(line.style, line.text)
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
