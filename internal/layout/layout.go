package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Cell is one grapheme cluster placed on a line.
type Cell struct {
	// Index is the rune offset of the cluster, -1 for the ellipsis.
	Index int
	// Runes is the number of runes in the cluster.
	Runes int
	// Width is the number of terminal columns the cluster covers.
	Width int
	Text  string
}

// Line is a laid-out row of cells starting at column X.
type Line struct {
	X     int
	Width int
	Cells []Cell
}

// Layout is the result of laying text out in a box.
type Layout struct {
	Params Params
	Lines  []Line
	// Top is the row of the first line; blocks shorter than the box are
	// vertically centred.
	Top int
}

// Bounds returns the size of the host box.
func (l *Layout) Bounds() (w, h int) {
	h = l.Params.Height
	if h <= 0 {
		h = len(l.Lines)
	}
	return l.Params.Width, h
}

// Contains reports whether p lies inside the host box.
func (l *Layout) Contains(p Point) bool {
	w, h := l.Bounds()
	return p.X >= 0 && p.Y >= 0 && p.X < w && p.Y < h
}

// UsedSize returns the size of the block the text actually occupies.
func (l *Layout) UsedSize() (w, h int) {
	for _, line := range l.Lines {
		w = max(w, line.Width)
	}
	return w, len(l.Lines)
}

// IndexAt returns the rune offset of the glyph under p. Points on padding,
// on the ellipsis, or outside the laid-out block report no hit.
func (l *Layout) IndexAt(p Point) (int, bool) {
	c, ok := l.CellAt(p)
	if !ok || c.Index < 0 {
		return 0, false
	}
	return c.Index, true
}

// CellAt returns the cell under p, including the ellipsis.
func (l *Layout) CellAt(p Point) (Cell, bool) {
	if !l.Contains(p) {
		return Cell{}, false
	}
	row := p.Y - l.Top
	if row < 0 || row >= len(l.Lines) {
		return Cell{}, false
	}
	line := l.Lines[row]
	x := line.X
	for _, c := range line.Cells {
		if p.X >= x && p.X < x+c.Width {
			return c, true
		}
		x += c.Width
	}
	return Cell{}, false
}

// Compute lays text out according to p.
func Compute(text string, p Params) *Layout {
	l := &Layout{Params: p}
	if p.Width <= 0 {
		return l
	}
	paragraphs := splitParagraphs(segment(text))
	limit := p.lineCap()

	var lines [][]Cell
	if limit == 1 && p.Mode != WordWrap && p.Mode != CharWrap {
		lines = [][]Cell{singleLine(paragraphs, p.Width, p.Mode)}
	} else {
		// Clipping and truncation modes wrap by word when more than one
		// line is available; only the last visible line is cut.
		for _, para := range paragraphs {
			if p.Mode == CharWrap {
				lines = append(lines, wrapChars(para, p.Width)...)
			} else {
				lines = append(lines, wrapWords(para, p.Width)...)
			}
		}
		if limit > 0 && len(lines) > limit {
			lines = lines[:limit]
			if p.Mode.Truncates() {
				last := lines[limit-1]
				lines[limit-1] = append(fitHead(last, p.Width-ellipsisWidth()), ellipsisCell())
			}
		}
	}

	for _, cells := range lines {
		w := width(cells)
		line := Line{Width: w, Cells: cells}
		switch p.Align {
		case AlignCenter:
			line.X = max(0, (p.Width-w)/2)
		case AlignRight:
			line.X = max(0, p.Width-w)
		}
		l.Lines = append(l.Lines, line)
	}
	if p.Height > len(l.Lines) {
		l.Top = (p.Height - len(l.Lines)) / 2
	}
	return l
}

// segment splits text into grapheme clusters carrying rune offsets.
func segment(text string) []Cell {
	cells := make([]Cell, 0, len(text))
	state := -1
	idx := 0
	rest := text
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		n := utf8.RuneCountInString(cluster)
		if cluster == "\t" {
			cluster, w = " ", 1
		}
		cells = append(cells, Cell{Index: idx, Runes: n, Width: w, Text: cluster})
		idx += n
	}
	return cells
}

func isNewline(c Cell) bool {
	return c.Text == "\n" || c.Text == "\r\n" || c.Text == "\r"
}

func splitParagraphs(cells []Cell) [][]Cell {
	paragraphs := [][]Cell{nil}
	for _, c := range cells {
		if isNewline(c) {
			paragraphs = append(paragraphs, nil)
			continue
		}
		paragraphs[len(paragraphs)-1] = append(paragraphs[len(paragraphs)-1], c)
	}
	return paragraphs
}

func width(cells []Cell) int {
	w := 0
	for _, c := range cells {
		w += c.Width
	}
	return w
}

func ellipsisWidth() int {
	return runewidth.StringWidth(Ellipsis)
}

func ellipsisCell() Cell {
	return Cell{Index: -1, Width: ellipsisWidth(), Text: Ellipsis}
}

// fitHead returns the longest prefix of cells within budget columns.
func fitHead(cells []Cell, budget int) []Cell {
	w := 0
	for i, c := range cells {
		if w+c.Width > budget {
			return cells[:i:i]
		}
		w += c.Width
	}
	return cells[:len(cells):len(cells)]
}

// fitTail returns the longest suffix of cells within budget columns.
func fitTail(cells []Cell, budget int) []Cell {
	w := 0
	for i := len(cells) - 1; i >= 0; i-- {
		if w+cells[i].Width > budget {
			return cells[i+1:]
		}
		w += cells[i].Width
	}
	return cells
}

func singleLine(paragraphs [][]Cell, w int, mode BreakMode) []Cell {
	first := paragraphs[0]
	overflow := width(first) > w || len(paragraphs) > 1
	if !overflow {
		return first
	}
	if mode == Clip {
		return fitHead(first, w)
	}
	budget := w - ellipsisWidth()
	if budget < 0 {
		return nil
	}
	if width(first) <= w {
		// Only later paragraphs are hidden.
		mode = TruncateTail
	}
	switch mode {
	case TruncateHead:
		return append([]Cell{ellipsisCell()}, fitTail(first, budget)...)
	case TruncateMiddle:
		head := fitHead(first, budget-budget/2)
		tail := fitTail(first[len(head):], budget-width(head))
		out := append(head, ellipsisCell())
		return append(out, tail...)
	default:
		return append(fitHead(first, budget), ellipsisCell())
	}
}

func wrapChars(cells []Cell, w int) [][]Cell {
	var lines [][]Cell
	var line []Cell
	lineW := 0
	for _, c := range cells {
		if lineW+c.Width > w && len(line) > 0 {
			lines = append(lines, line)
			line, lineW = nil, 0
		}
		line = append(line, c)
		lineW += c.Width
	}
	return append(lines, line)
}

// wrapWords breaks a paragraph at Unicode line-break opportunities. Words
// wider than the line are broken between grapheme clusters; spaces that do
// not fit at the end of a line hang and take no cells.
func wrapWords(cells []Cell, w int) [][]Cell {
	var lines [][]Cell
	var line []Cell
	lineW := 0

	for _, word := range lineSegments(cells) {
		body, spaces := splitTrailingSpace(word)
		bodyW := width(body)
		if lineW+bodyW > w && len(line) > 0 {
			lines = append(lines, line)
			line, lineW = nil, 0
		}
		if bodyW > w {
			for _, c := range body {
				if lineW+c.Width > w && len(line) > 0 {
					lines = append(lines, line)
					line, lineW = nil, 0
				}
				line = append(line, c)
				lineW += c.Width
			}
		} else {
			line = append(line, body...)
			lineW += bodyW
		}
		for _, s := range spaces {
			if lineW+s.Width > w {
				break
			}
			line = append(line, s)
			lineW += s.Width
		}
	}
	return append(lines, line)
}

// lineSegments groups cells into the segments between break opportunities.
func lineSegments(cells []Cell) [][]Cell {
	if len(cells) == 0 {
		return nil
	}
	var b strings.Builder
	for _, c := range cells {
		b.WriteString(c.Text)
	}
	var segments [][]Cell
	rest := b.String()
	state := -1
	i := 0
	for len(rest) > 0 && i < len(cells) {
		var seg string
		seg, rest, _, state = uniseg.FirstLineSegmentInString(rest, state)
		start := i
		for consumed := 0; consumed < len(seg) && i < len(cells); i++ {
			consumed += len(cells[i].Text)
		}
		segments = append(segments, cells[start:i])
	}
	if i < len(cells) {
		segments = append(segments, cells[i:])
	}
	return segments
}

func splitTrailingSpace(cells []Cell) (body, spaces []Cell) {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1].Text) == "" {
		end--
	}
	return cells[:end], cells[end:]
}
