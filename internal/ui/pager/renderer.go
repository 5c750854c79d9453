package pager

import (
	"bufio"
	"fmt"
	"strings"

	"miniless/internal/textutil"
)

// reservedRows is the number of screen rows kept below the content area:
// the status line and the search prompt line.
const reservedRows = 2

// Renderer is the drawing surface the handlers paint through. Coordinates
// are screen-relative and 0-based; rows 0..Rows()-1 are content, the status
// line sits directly below them and the search prompt below that.
//
// The cursor position is tracked in software: CursorPos reports the last
// MoveCursor target, and paints are expected to be followed by a MoveCursor
// before Flush.
type Renderer interface {
	Rows() int
	Cols() int
	PromptRow() int

	PaintLine(row int, text string)
	ClearRow(row int)
	// Scroll shifts the screen by delta rows: positive reveals content
	// below (text moves up), negative reveals content above.
	Scroll(delta int)

	MoveCursor(row, col int)
	CursorPos() (row, col int)
	SaveCursor()
	RestoreCursor()

	Status(text string)
	ClearStatus()
	Prompt(text string)
	ClearPrompt()

	Flush() error
}

// ansiRenderer paints through raw CSI sequences on a buffered tty writer.
// Individual writes are best-effort; only Flush reports failures.
type ansiRenderer struct {
	w      *bufio.Writer
	width  int
	height int

	row, col           int
	savedRow, savedCol int
}

func newANSIRenderer(w *bufio.Writer, width, height int) *ansiRenderer {
	r := &ansiRenderer{w: w}
	r.setSize(width, height)
	return r
}

func (r *ansiRenderer) setSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	r.width = width
	r.height = height
}

func (r *ansiRenderer) Rows() int {
	rows := r.height - reservedRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (r *ansiRenderer) Cols() int { return r.width }

func (r *ansiRenderer) statusRow() int { return r.height - reservedRows }
func (r *ansiRenderer) PromptRow() int { return r.height - 1 }

func (r *ansiRenderer) PaintLine(row int, text string) {
	if row < 0 || row >= r.Rows() {
		return
	}
	r.printf("\x1b[%d;1H\x1b[2K", row+1)
	// Content must never carry its own escape sequences onto the wire.
	text = textutil.SanitizeTerminalText(text)
	r.print(textutil.TruncateToWidth(text, r.width))
}

func (r *ansiRenderer) ClearRow(row int) {
	if row < 0 || row >= r.Rows() {
		return
	}
	r.printf("\x1b[%d;1H\x1b[2K", row+1)
}

func (r *ansiRenderer) Scroll(delta int) {
	switch {
	case delta > 0:
		r.printf("\x1b[%dS", delta)
	case delta < 0:
		r.printf("\x1b[%dT", -delta)
	}
}

func (r *ansiRenderer) MoveCursor(row, col int) {
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	r.printf("\x1b[%d;%dH", row+1, col+1)
	r.row, r.col = row, col
}

func (r *ansiRenderer) CursorPos() (int, int) { return r.row, r.col }

func (r *ansiRenderer) SaveCursor() {
	r.savedRow, r.savedCol = r.row, r.col
}

func (r *ansiRenderer) RestoreCursor() {
	r.MoveCursor(r.savedRow, r.savedCol)
}

func (r *ansiRenderer) Status(text string) {
	r.printf("\x1b[%d;1H\x1b[2K", r.statusRow()+1)
	text = textutil.TruncateToWidth(text, r.width)
	if pad := r.width - textutil.DisplayWidth(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	r.printf("\x1b[7m%s\x1b[0m", text)
}

func (r *ansiRenderer) ClearStatus() {
	r.printf("\x1b[%d;1H\x1b[2K", r.statusRow()+1)
}

func (r *ansiRenderer) Prompt(text string) {
	r.printf("\x1b[%d;1H\x1b[2K", r.PromptRow()+1)
	r.print(textutil.TruncateToWidth(text, r.width))
}

func (r *ansiRenderer) ClearPrompt() {
	r.printf("\x1b[%d;1H\x1b[2K", r.PromptRow()+1)
}

func (r *ansiRenderer) Flush() error { return r.w.Flush() }

func (r *ansiRenderer) print(s string) {
	_, _ = r.w.WriteString(s)
}

func (r *ansiRenderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}
