package pager

import (
	"miniless/internal/applog"
	"miniless/internal/search"
)

// lineCount reports the number of addressable lines, treating an empty file
// as one blank line so the cursor always has somewhere to stand.
func (p *Pager) lineCount() int {
	if n := p.src.LineCount(); n > 0 {
		return n
	}
	return 1
}

func (p *Pager) lastLine() int {
	return p.lineCount() - 1
}

func (p *Pager) lineText(idx int) string {
	return p.src.Line(idx)
}

func (p *Pager) lineWidth(idx int) int {
	return p.src.TrimmedWidth(idx)
}

// settleColumn re-clamps the cursor column against the line it just landed
// on, springing back to the shadow column when it fits.
func (p *Pager) settleColumn() {
	width := p.lineWidth(p.vp.CurrentLine())
	p.vp.cursorCol = correctColumn(p.vp.cursorCol, p.vp.shadowCol, width)
}

// moveDown advances one line: scroll when the cursor rides the last content
// row, otherwise just step the cursor row. At the last file line it is a
// no-op.
func (p *Pager) moveDown() {
	if p.vp.CurrentLine() >= p.lastLine() {
		return
	}
	if p.vp.cursorRow == p.vp.rows-1 {
		p.vp.top++
		p.vp.clampBottom(p.lastLine())
		p.r.Scroll(1)
		p.r.PaintLine(p.vp.rows-1, p.lineText(p.vp.bottom))
	} else {
		p.vp.cursorRow++
	}
	p.settleColumn()
}

// moveUp is the mirror of moveDown; at the very top of the file every state
// field stays untouched.
func (p *Pager) moveUp() {
	if p.vp.cursorRow == 0 {
		if p.vp.top == 0 {
			return
		}
		p.vp.top--
		p.vp.clampBottom(p.lastLine())
		p.r.Scroll(-1)
		p.r.PaintLine(0, p.lineText(p.vp.top))
	} else {
		p.vp.cursorRow--
	}
	p.settleColumn()
}

// moveLeft is a deliberate horizontal move and therefore rewrites the
// shadow column.
func (p *Pager) moveLeft() {
	if p.vp.cursorCol == 0 {
		return
	}
	p.vp.cursorCol--
	p.vp.shadowCol = p.vp.cursorCol
}

func (p *Pager) moveRight() {
	width := p.lineWidth(p.vp.CurrentLine())
	if p.vp.cursorCol+1 >= width {
		return
	}
	p.vp.cursorCol++
	p.vp.shadowCol = p.vp.cursorCol
}

// halfPageUp scrolls the viewport by the jump budget; whatever the top of
// the file refuses to absorb moves the cursor instead, never above screen
// row 0. Leftover budget past the boundary is discarded.
func (p *Pager) halfPageUp() {
	jump := p.jumpSize
	scrolled := jump
	if p.vp.top < jump {
		scrolled = p.vp.top
	}
	if scrolled > 0 {
		p.vp.top -= scrolled
		p.vp.clampBottom(p.lastLine())
		p.repaintAll()
	}
	if remaining := jump - scrolled; remaining > 0 {
		if remaining > p.vp.cursorRow {
			remaining = p.vp.cursorRow
		}
		p.vp.cursorRow -= remaining
	}
	p.settleColumn()
	applog.Debugf("half-page up: jump=%d scrolled=%d top=%d row=%d",
		jump, scrolled, p.vp.top, p.vp.cursorRow)
}

// halfPageDown mirrors halfPageUp, bounded by the last file line: the
// scroll amount shrinks so the viewport never runs past the end, and the
// cursor consumes the rest only as far as the file allows.
func (p *Pager) halfPageDown() {
	jump := p.jumpSize
	last := p.lastLine()
	scrolled := jump
	if room := last - p.vp.bottom; scrolled > room {
		scrolled = room
	}
	if scrolled < 0 {
		scrolled = 0
	}
	if scrolled > 0 {
		p.vp.top += scrolled
		p.vp.clampBottom(last)
		p.repaintAll()
	}
	if remaining := jump - scrolled; remaining > 0 {
		if room := p.vp.bottom - p.vp.top - p.vp.cursorRow; remaining > room {
			remaining = room
		}
		if remaining > 0 {
			p.vp.cursorRow += remaining
		}
	}
	p.settleColumn()
	applog.Debugf("half-page down: jump=%d scrolled=%d top=%d bottom=%d row=%d",
		jump, scrolled, p.vp.top, p.vp.bottom, p.vp.cursorRow)
}

// jumpToMatch re-anchors the viewport with the matched line on top and the
// cursor on the match column. The match column becomes the new shadow
// column: jumping is a deliberate horizontal placement.
func (p *Pager) jumpToMatch(m search.Match) {
	top := m.Line - 1
	if top > p.lastLine() {
		top = p.lastLine()
	}
	if top < 0 {
		top = 0
	}
	p.vp.top = top
	p.vp.clampBottom(p.lastLine())
	p.vp.cursorRow = 0

	col := m.Col
	if maxCol := p.lineWidth(top) - 1; col > maxCol {
		col = maxCol
	}
	if col < 0 {
		col = 0
	}
	p.vp.cursorCol = col
	p.vp.shadowCol = col
	p.repaintAll()
}

// repaintAll redraws every content row from the current top line.
func (p *Pager) repaintAll() {
	for row := 0; row < p.vp.rows; row++ {
		idx := p.vp.top + row
		if idx < p.src.LineCount() {
			p.r.PaintLine(row, p.lineText(idx))
		} else {
			p.r.ClearRow(row)
		}
	}
}
