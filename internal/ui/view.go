package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/workshell/workshell/internal/statusbar"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// entrySpan records the horizontal extent a rendered status bar element
// occupies so mouse events can be resolved back to an entry. x1 is
// exclusive.
type entrySpan struct {
	x0, x1 int
	el     *statusbar.Element
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: appTitle, style: styles.Header})

	if m.menuOpen() {
		lines = append(lines, m.menuLines()...)
	} else if m.verbose && m.backendLastErr != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: "backend: " + m.backendLastErr, style: styles.Error})
	}

	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.errMsg != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.footerText(), style: styles.Footer})
	}

	// The last row always belongs to the status bar.
	bodyHeight := m.height - 1
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	lines = limitHeight(lines, bodyHeight, m.width)
	for len(lines) < bodyHeight {
		lines = append(lines, styledLine{})
	}
	lines = applyWidth(lines, m.width)

	bar := m.renderStatusBar()
	lines = append(lines, styledLine{text: bar, raw: true})
	return renderLines(lines)
}

// menuLines builds the context menu overlay rows: title, items limited to
// the viewport, and the filter prompt.
func (m *Model) menuLines() []styledLine {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	lines := make([]styledLine, 0, len(current.Items)+4)
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: current.Title, style: styles.Header})

	m.syncViewport(current)
	start := 0
	displayItems := current.Items
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(displayItems) > maxItems {
		start = current.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(displayItems) {
			start = len(displayItems) - maxItems
			if start < 0 {
				start = 0
			}
			current.ViewportOffset = start
		}
		displayItems = displayItems[start : start+maxItems]
	}
	if len(current.Items) == 0 {
		msg := "(no entries)"
		if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		for i, item := range displayItems {
			idx := start + i
			lines = append(lines, m.buildItemLine(item.Label, idx, current, m.width))
		}
	}
	lines = append(lines, styledLine{text: m.filterPrompt(), raw: true})
	return lines
}

// buildItemLine constructs a single styledLine for a menu item. width is
// the target column width; when > 0 the text is padded so the selected
// item's background spans the full container.
func (m *Model) buildItemLine(label string, idx int, current *level, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == current.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + label
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

// renderStatusBar draws the bottom bar row and records the span of every
// visible element for mouse hit-testing. Left entries flow from the left
// edge; right entries are laid out in reversed container order so the
// highest-priority right entry hugs the right edge.
func (m *Model) renderStatusBar() string {
	m.barSpans = m.barSpans[:0]
	if m.width <= 0 {
		return ""
	}

	leftCells := m.barCells(statusbar.AlignLeft)
	rightCells := m.barCells(statusbar.AlignRight)
	// Reverse the right column for display.
	for i, j := 0, len(rightCells)-1; i < j; i, j = i+1, j-1 {
		rightCells[i], rightCells[j] = rightCells[j], rightCells[i]
	}

	leftPlain, leftStyled := m.layoutCells(leftCells, 0)
	wRight := cellsWidth(rightCells)
	rightStart := m.width - wRight
	wLeft := lipgloss.Width(leftPlain)
	if rightStart < wLeft+1 {
		rightStart = wLeft + 1
	}
	_, rightStyled := m.layoutCells(rightCells, rightStart)

	gap := rightStart - wLeft
	if gap < 0 {
		gap = 0
	}
	line := leftStyled + strings.Repeat(" ", gap) + rightStyled
	if w := lipgloss.Width(line); w > m.width {
		line = truncate.String(line, uint(m.width))
	} else if w < m.width {
		line += strings.Repeat(" ", m.width-w)
	}
	return line
}

// barCell is one visible entry prepared for layout: its plain-text
// segments and the elements they came from.
type barCell struct {
	entry    *statusbar.ViewEntry
	segments []barSegment
}

type barSegment struct {
	text string
	el   *statusbar.Element
}

func (m *Model) barCells(alignment statusbar.Alignment) []barCell {
	entries := m.vm.Entries(alignment)
	cells := make([]barCell, 0, len(entries))
	for _, entry := range entries {
		if m.vm.IsHidden(entry.ID) {
			continue
		}
		if entry.Label == nil {
			continue
		}
		cell := barCell{entry: entry}
		for _, child := range entry.Label.Children() {
			text := child.Text()
			if text == "" {
				continue
			}
			cell.segments = append(cell.segments, barSegment{text: text, el: child})
		}
		if len(cell.segments) == 0 {
			continue
		}
		cells = append(cells, cell)
	}
	return cells
}

// layoutCells renders cells starting at column x, recording spans as it
// goes. It returns the plain text (for width math) and the styled text.
func (m *Model) layoutCells(cells []barCell, x int) (string, string) {
	var plain strings.Builder
	var styled strings.Builder
	for i, cell := range cells {
		if i > 0 {
			plain.WriteString(" ")
			styled.WriteString(" ")
			x++
		}
		cellStyle := m.entryStyle(cell.entry)
		var cellPlain strings.Builder
		for j, seg := range cell.segments {
			if j > 0 {
				cellPlain.WriteString(" ")
				x++
			}
			w := lipgloss.Width(seg.text)
			m.barSpans = append(m.barSpans, entrySpan{x0: x, x1: x + w, el: seg.el})
			cellPlain.WriteString(seg.text)
			x += w
		}
		plain.WriteString(cellPlain.String())
		text := cellPlain.String()
		if cellStyle != nil {
			text = cellStyle.Render(text)
		}
		styled.WriteString(text)
	}
	return plain.String(), styled.String()
}

func (m *Model) entryStyle(entry *statusbar.ViewEntry) *lipgloss.Style {
	if entry.Wrapper != nil && entry.Wrapper.Focused() {
		return styles.BarEntryFocused
	}
	if m.hovered != nil && m.vm.FindEntry(m.hovered) == entry {
		return styles.BarEntryHovered
	}
	return styles.BarEntry
}

func cellsWidth(cells []barCell) int {
	w := 0
	for i, cell := range cells {
		if i > 0 {
			w++
		}
		for j, seg := range cell.segments {
			if j > 0 {
				w++
			}
			w += lipgloss.Width(seg.text)
		}
	}
	return w
}

// elementAt resolves a column on the bar row to the rendered element.
func (m *Model) elementAt(x int) *statusbar.Element {
	for _, span := range m.barSpans {
		if x >= span.x0 && x < span.x1 {
			return span.el
		}
	}
	return nil
}

func (m *Model) barRow() int {
	return m.height - 1
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if m.menuOpen() {
		switch ev.Button {
		case tea.MouseButtonWheelUp:
			m.moveCursorUp()
		case tea.MouseButtonWheelDown:
			m.moveCursorDown()
		}
		return nil
	}
	if ev.Y == m.barRow() {
		m.hovered = m.elementAt(ev.X)
	} else {
		m.hovered = nil
	}
	if ev.Action != tea.MouseActionPress {
		return nil
	}
	switch ev.Button {
	case tea.MouseButtonLeft:
		if entry := m.vm.FindEntry(m.hovered); entry != nil {
			m.vm.FocusEntry(entry)
		}
	case tea.MouseButtonRight:
		m.openMenu(m.vm.FindEntry(m.hovered))
	}
	return nil
}

func (m *Model) footerText() string {
	if m.menuOpen() {
		return "↑/↓ move  enter toggle  esc close  ctrl+c quit"
	}
	return "←/→ focus entries  m menu  b bar  esc blur  q quit"
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	// The first size report is the signal that a surface exists to draw
	// on, so staged entries are promoted here.
	m.ensureContainer()
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 5 // title, blank, menu title, filter prompt, status bar
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.errMsg != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
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
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			// Text already contains ANSI escapes; pass through as-is.
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
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
