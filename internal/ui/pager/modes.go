package pager

import (
	"miniless/internal/applog"
	"miniless/internal/textutil"
)

// Mode is the input mode the next keystroke is routed through.
type Mode int

const (
	// ModeNormal handles movement and search navigation.
	ModeNormal Mode = iota
	// ModeSearchEntry collects the pattern typed after '/'.
	ModeSearchEntry
)

// handleNormal processes one Normal-mode key. It reports whether the pager
// should exit.
func (p *Pager) handleNormal(ev keyEvent) bool {
	switch ev.kind {
	case keyEscape, keyCtrlC:
		return true
	case keyDown:
		p.moveDown()
	case keyUp:
		p.moveUp()
	case keyLeft:
		p.moveLeft()
	case keyRight:
		p.moveRight()
	case keyCtrlU:
		p.halfPageUp()
	case keyCtrlD:
		p.halfPageDown()
	case keyRune:
		switch ev.ch {
		case 'j':
			p.moveDown()
		case 'k':
			p.moveUp()
		case 'h':
			p.moveLeft()
		case 'l':
			p.moveRight()
		case '/':
			p.enterSearchMode()
		case 'n':
			p.nextMatch()
		case 'N':
			p.previousMatch()
		}
	}
	return false
}

// handleSearchEntry processes one SearchEntry-mode key and decides the mode
// for the next loop iteration.
func (p *Pager) handleSearchEntry(ev keyEvent) {
	switch ev.kind {
	case keyEscape:
		p.cancelSearchEntry()
	case keyBackspace:
		if p.state.PopPending() {
			p.r.Prompt("/" + p.state.Pending())
		}
	case keyEnter:
		p.commitSearch()
	case keyRune:
		p.state.AppendPending(ev.ch)
		p.r.Prompt("/" + p.state.Pending())
	}
}

func (p *Pager) enterSearchMode() {
	p.vp.setAnchor()
	p.mode = ModeSearchEntry
	p.r.SaveCursor()
	p.r.Prompt("/")
}

func (p *Pager) cancelSearchEntry() {
	p.state.ClearPending()
	p.mode = ModeNormal
	p.r.ClearPrompt()
	p.r.RestoreCursor()
}

// commitSearch finalizes the typed pattern: run the matcher, jump to the
// nearest match at or below the anchored cursor line, or restore the anchor
// when there is no query, no hit, or a pattern error.
func (p *Pager) commitSearch() {
	p.mode = ModeNormal
	committed, err := p.state.Commit(p.matcher.FindAll)
	if err != nil {
		applog.Debugf("search commit failed: %v", err)
		p.notice = "invalid pattern"
		p.r.ClearPrompt()
		p.r.RestoreCursor()
		return
	}
	if !committed {
		p.r.ClearPrompt()
		p.r.RestoreCursor()
		return
	}

	anchorLine := p.vp.top + p.vp.anchorRow + 1
	if m, ok := p.state.NearLine(anchorLine); ok {
		applog.Debugf("search %q: %d hits, first at %d:%d",
			p.state.Query(), len(p.state.Matches()), m.Line, m.Col)
		p.jumpToMatch(m)
		return
	}
	if len(p.state.Matches()) == 0 {
		p.notice = "pattern not found: " + p.state.Query()
	}
	p.r.RestoreCursor()
}

func (p *Pager) nextMatch() {
	if !p.state.HasSelection() {
		return
	}
	if m, ok := p.state.Next(); ok {
		p.jumpToMatch(m)
	}
}

func (p *Pager) previousMatch() {
	if !p.state.HasSelection() {
		return
	}
	if m, ok := p.state.Previous(p.vp.CurrentLine() + 1); ok {
		p.jumpToMatch(m)
	}
}

// positionCursor parks the hardware cursor where the active mode expects
// it: inside the prompt during search entry, on the viewport cursor
// otherwise.
func (p *Pager) positionCursor() {
	if p.mode == ModeSearchEntry {
		p.r.MoveCursor(p.r.PromptRow(), 1+textutil.DisplayWidth(p.state.Pending()))
		return
	}
	p.r.MoveCursor(p.vp.cursorRow, p.vp.cursorCol)
}
