package cli

import (
	"strings"
)

// Table lays out rows of text in aligned columns. Cells may contain ANSI
// colour codes; widths are measured on visible text.
type Table struct {
	headers    []string
	rows       [][]string
	padding    int
	maxWidths  map[int]int  // Column index -> wrap width (0 = no limit)
	rightAlign map[int]bool // Columns padded on the left, for numbers
}

// NewTable creates a new table with the given headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:    headers,
		padding:    2,
		maxWidths:  make(map[int]int),
		rightAlign: make(map[int]bool),
	}
}

// SetColumnMaxWidth wraps the text of a column at word boundaries once it is
// wider than maxWidth.
func (t *Table) SetColumnMaxWidth(col, maxWidth int) {
	t.maxWidths[col] = maxWidth
}

// AlignRight right-aligns the given columns.
func (t *Table) AlignRight(cols ...int) {
	for _, c := range cols {
		t.rightAlign[c] = true
	}
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Render formats the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	cells := t.wrapCells()
	widths := t.columnWidths(cells)
	gap := strings.Repeat(" ", t.padding)

	var b strings.Builder
	line := func(parts []string) {
		b.WriteString(strings.Join(parts, gap))
		b.WriteByte('\n')
	}

	header := make([]string, len(t.headers))
	rule := make([]string, len(t.headers))
	for i, h := range t.headers {
		header[i] = t.pad(i, h, widths[i])
		rule[i] = strings.Repeat("-", widths[i])
	}
	line(header)
	line(rule)

	for _, row := range cells {
		height := 1
		for _, cell := range row {
			height = max(height, len(cell))
		}
		for l := range height {
			parts := make([]string, len(row))
			for i, cell := range row {
				text := ""
				if l < len(cell) {
					text = cell[l]
				}
				parts[i] = t.pad(i, text, widths[i])
			}
			line(parts)
		}
	}

	return b.String()
}

// wrapCells splits every cell into its display lines.
func (t *Table) wrapCells() [][][]string {
	out := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		out[r] = make([][]string, len(row))
		for c, cell := range row {
			out[r][c] = wrapText(cell, t.maxWidths[c])
		}
	}
	return out
}

// columnWidths returns the visible width of each column. A wrapped column is
// never narrower than its header.
func (t *Table) columnWidths(cells [][][]string) []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = visibleWidth(h)
	}
	for _, row := range cells {
		for i, cell := range row {
			for _, text := range cell {
				widths[i] = max(widths[i], visibleWidth(text))
			}
		}
	}
	return widths
}

func (t *Table) pad(col int, s string, width int) string {
	if t.rightAlign[col] {
		return padLeft(s, width)
	}
	return padRight(s, width)
}

// padRight pads s with trailing spaces up to the visible width.
func padRight(s string, width int) string {
	if w := visibleWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// padLeft pads s with leading spaces up to the visible width.
func padLeft(s string, width int) string {
	if w := visibleWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

// wrapText breaks text into lines of at most width runes at word boundaries,
// splitting words that are longer than a line. Coloured text is never wrapped.
func wrapText(text string, width int) []string {
	if width <= 0 || visibleWidth(text) <= width || ansiPattern.MatchString(text) {
		return []string{text}
	}

	var lines []string
	var current []rune
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		switch {
		case len(current) == 0:
		case len(current)+1+len(w) <= width:
			current = append(current, ' ')
		default:
			lines = append(lines, string(current))
			current = nil
		}
		for len(current)+len(w) > width {
			n := width - len(current)
			lines = append(lines, string(append(current, w[:n]...)))
			current, w = nil, w[n:]
		}
		current = append(current, w...)
	}
	if len(current) > 0 {
		lines = append(lines, string(current))
	}
	if len(lines) == 0 {
		return []string{text}
	}
	return lines
}
