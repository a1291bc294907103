package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/llamabar/internal/format/table"
	"github.com/atomicstack/llamabar/internal/menu"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

const (
	progressWidth    = 16
	separatorWidth   = 32
	itemIndicator    = "▌"
	statusGlyphIdle  = "◇"
	statusGlyphReady = "◆"
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	if !m.ctrl.IsOpen() {
		return m.viewClosed()
	}
	return m.viewOpen()
}

// viewClosed renders the status item on its own.
func (m *Model) viewClosed() string {
	lines := []styledLine{m.statusItemLine()}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.errMsg != "" {
		lines = append(lines, styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, m.helpLine(m.keys.closedHelp()))
	}
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines)
}

func (m *Model) statusItemLine() styledLine {
	if m.status != nil && m.status.Running() {
		model := m.status.ActiveModel()
		if model == "" {
			model = "model"
		}
		return styledLine{
			text:  fmt.Sprintf("%s llamabar  %s on %s", statusGlyphReady, model, m.status.Address()),
			style: styles.StatusRunning,
		}
	}
	return styledLine{text: statusGlyphIdle + " llamabar  idle", style: styles.Status}
}

// viewOpen renders the visible window of the menu followed by the bottom bar.
func (m *Model) viewOpen() string {
	lines := make([]styledLine, 0, 24)
	items := m.level.Items
	start := 0
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(items) > maxItems {
		start = m.level.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(items) {
			start = len(items) - maxItems
			if start < 0 {
				start = 0
			}
			m.level.ViewportOffset = start
		}
		items = items[start : start+maxItems]
	}
	lines = append(lines, m.itemLines(items, m.width)...)
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, m.helpLine(m.keys.ShortHelp()))
	}
	lines = limitHeight(lines, m.height-1, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	lines = append(lines, applyWidth([]styledLine{statusLine}, m.width)...)
	return renderLines(lines)
}

func (m *Model) helpLine(bindings []key.Binding) styledLine {
	return styledLine{text: m.help.ShortHelpView(bindings), raw: true}
}

// itemLines renders the visible items. Rows that carry a detail (sizes,
// memory) are laid out as two columns so the details line up.
func (m *Model) itemLines(items []*menu.Item, width int) []styledLine {
	cells := make([][]string, 0, len(items))
	columned := make([]int, 0, len(items))
	for i, item := range items {
		if body, detail, ok := rowColumns(item); ok {
			cells = append(cells, []string{body, detail})
			columned = append(columned, i)
		}
	}
	texts := make(map[int]string, len(columned))
	for j, text := range table.Format(cells, []table.Alignment{table.AlignLeft, table.AlignRight}) {
		texts[columned[j]] = text
	}
	lines := make([]styledLine, 0, len(items))
	for i, item := range items {
		lines = append(lines, m.buildItemLine(item, texts[i], width))
	}
	return lines
}

// rowColumns splits model rows into a label and a detail cell. Downloading
// rows render their own progress bar and are excluded.
func rowColumns(item *menu.Item) (string, string, bool) {
	if item.Separator {
		return "", "", false
	}
	switch row := item.Row.(type) {
	case *menu.InstalledRow:
		if row.Downloading {
			return "", "", false
		}
		mark := "  "
		if row.Active {
			mark = "● "
		}
		detail := ""
		switch {
		case row.Active && row.MemoryBytes > 0:
			detail = humanize.IBytes(row.MemoryBytes)
		case row.Entry.FileSize > 0:
			detail = humanize.Bytes(uint64(row.Entry.FileSize))
		}
		return mark + row.Label(), detail, true
	case *menu.FamilyHeaderRow:
		mark := "▾ "
		if row.Collapsed {
			mark = "▸ "
		}
		return mark + row.Family, row.SizeSummary(), true
	case *menu.CatalogRow:
		detail := ""
		if row.Entry.FileSize > 0 {
			detail = humanize.Bytes(uint64(row.Entry.FileSize))
		}
		return "    " + row.Label(), detail, true
	}
	return "", "", false
}

// buildItemLine constructs a single styledLine for a menu item. text, when
// set, is the pre-aligned body from itemLines. width is the target column
// width; when > 0 the text is padded so that the highlighted item's
// background spans the full container.
func (m *Model) buildItemLine(item *menu.Item, text string, width int) styledLine {
	if item.Separator {
		w := width
		if w <= 0 {
			w = separatorWidth
		}
		return styledLine{text: strings.Repeat("─", w), style: styles.Separator}
	}

	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if !item.Row.Enabled() {
		lineStyle = styles.Disabled
	}
	body := text
	switch row := item.Row.(type) {
	case *menu.HeaderRow:
		lineStyle = styles.Title
		if row.Running {
			lineStyle = styles.StatusRunning
		}
		body = row.Title + "  " + row.Status
	case *menu.SectionHeaderRow:
		lineStyle = styles.Section
		body = row.Title
	case *menu.InstalledRow:
		if row.Downloading {
			mark := "  "
			if row.Active {
				mark = "● "
			}
			return m.downloadLine(item, mark+row.Label(), row.Progress, width)
		}
	case *menu.FooterRow:
		lineStyle = styles.Footer
		body = row.Version + "  ⚙"
	case *menu.SettingRow:
		mark := "[ ] "
		if row.On {
			mark = "[x] "
		}
		body = mark + row.Title
	}
	if body == "" {
		body = item.Row.Label()
	}
	if item.Row.Highlighted() {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := itemIndicator + " " + body
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

// downloadLine renders an installed row with its progress bar. The bar carries
// its own escapes, so the line is assembled pre-styled.
func (m *Model) downloadLine(item *menu.Item, body string, pct float64, width int) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if item.Row.Highlighted() {
		lineStyle = styles.SelectedItem
		indicatorStyle = styles.SelectedItemIndicator
	}
	text := indicatorStyle.Render(itemIndicator) +
		lineStyle.Render(" "+body+"  ") +
		m.progress.ViewAs(pct) +
		lineStyle.Render(fmt.Sprintf(" %3.0f%%", pct*100))
	if width > 0 {
		if pad := width - lipgloss.Width(text); pad > 0 {
			text += lineStyle.Render(strings.Repeat(" ", pad))
		}
	}
	return styledLine{text: text, raw: true}
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
	m.help.Width = m.width
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 1 // bottom bar: error/status
	if info := m.currentInfo(); info != "" {
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

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
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
			if w := lipgloss.Width(text); w > width {
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
