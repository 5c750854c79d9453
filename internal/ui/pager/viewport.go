package pager

// Viewport tracks which file lines are on screen and where the cursor sits
// inside them. top and bottom are 0-based file line indices; cursorRow and
// cursorCol are screen-relative. The line under the cursor is always
// top+cursorRow, so top/bottom and cursorRow must move in lock-step.
type Viewport struct {
	top    int
	bottom int

	cursorRow int
	cursorCol int

	// shadowCol is the column the user last chose deliberately. Vertical
	// moves across short lines clamp cursorCol but leave shadowCol alone,
	// so the cursor springs back once a long enough line comes along.
	shadowCol int

	// anchorRow/anchorCol capture the cursor at the moment search entry
	// starts, restored when the search is cancelled or yields nothing.
	anchorRow int
	anchorCol int

	rows int
}

// CurrentLine is the 0-based file line under the cursor.
func (v *Viewport) CurrentLine() int {
	return v.top + v.cursorRow
}

// clampBottom re-derives bottom from top, keeping it inside the file.
func (v *Viewport) clampBottom(lastLine int) {
	bottom := v.top + v.rows - 1
	if bottom > lastLine {
		bottom = lastLine
	}
	if bottom < v.top {
		bottom = v.top
	}
	v.bottom = bottom
}

// setAnchor remembers the cursor position for search entry.
func (v *Viewport) setAnchor() {
	v.anchorRow = v.cursorRow
	v.anchorCol = v.cursorCol
}

// correctColumn decides where the cursor lands horizontally after a
// vertical move: it aims for the shadow column (or the current column if
// that is somehow further right) and clamps to the line's last occupied
// cell, or column 0 on an empty line.
func correctColumn(col, shadow, lineLen int) int {
	maxCol := lineLen - 1
	if maxCol < 0 {
		maxCol = 0
	}
	target := shadow
	if col > target {
		target = col
	}
	if target > maxCol {
		target = maxCol
	}
	return target
}
