// Package pager implements the interactive viewport/cursor/search state
// machine: a fixed-height window over one file, vi-style cursor movement
// with a sticky column, half-page jumps and incremental regex search.
package pager

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"miniless/internal/applog"
	"miniless/internal/config"
	"miniless/internal/search"
	"miniless/internal/textsource"
	"miniless/internal/textutil"
)

// Pager wires the viewport, the search state and the renderer into one
// synchronous event loop.
type Pager struct {
	src     *textsource.Source
	state   *search.State
	matcher *search.Matcher

	vp   Viewport
	mode Mode
	r    Renderer

	jumpSize    int
	statusDebug bool
	// notice is a transient status-line message, shown once.
	notice string

	input       *os.File
	reader      *bufio.Reader
	writer      *bufio.Writer
	restoreTerm *term.State
	width       int
	height      int
}

// New opens path and prepares a pager for it. The terminal is not touched
// until Run.
func New(path string, cfg config.Config) (*Pager, error) {
	src, err := textsource.Open(path, cfg.TabWidth)
	if err != nil {
		return nil, err
	}
	applog.Debugf("opened %s: %d lines", src.Path(), src.LineCount())
	return &Pager{
		src:         src,
		state:       search.NewState(path),
		matcher:     search.NewMatcher(src),
		jumpSize:    cfg.JumpSize,
		statusDebug: cfg.Status.Debug,
	}, nil
}

// Run enters raw mode and processes key events until Escape or an I/O
// failure. The terminal is always restored to cooked mode on the way out.
func (p *Pager) Run() error {
	if err := p.initTerminal(); err != nil {
		return err
	}
	defer p.cleanupTerminal()

	p.updateSize()
	p.layout()
	p.writeString("\x1b[2J\x1b[H")
	p.repaintAll()
	p.positionCursor()
	if err := p.r.Flush(); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	events, errCh, stop := p.startKeyReader(done)
	if stop != nil {
		defer stop()
	}
	resize := notifyResize()
	defer stopResize(resize)

	for {
		p.renderStatusLine()
		p.renderPromptLine()
		p.positionCursor()
		if err := p.r.Flush(); err != nil {
			return err
		}

		select {
		case ev := <-events:
			p.r.ClearStatus()
			switch p.mode {
			case ModeNormal:
				if quit := p.handleNormal(ev); quit {
					return nil
				}
			case ModeSearchEntry:
				p.handleSearchEntry(ev)
			}
		case <-resize:
			p.updateSize()
			p.layout()
			p.writeString("\x1b[2J\x1b[H")
			p.repaintAll()
		case err := <-errCh:
			return err
		}
	}
}

// Close releases the line source.
func (p *Pager) Close() error {
	return p.src.Close()
}

func (p *Pager) initTerminal() error {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	p.input = tty
	p.reader = bufio.NewReader(tty)
	p.writer = bufio.NewWriter(tty)

	rawState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		_ = tty.Close()
		return fmt.Errorf("enter raw mode: %w", err)
	}
	p.restoreTerm = rawState
	return nil
}

func (p *Pager) cleanupTerminal() {
	if p.input != nil && p.restoreTerm != nil {
		_ = term.Restore(int(p.input.Fd()), p.restoreTerm)
	}
	if p.writer != nil {
		p.writeString("\x1b[?25h\x1b[0m")
		p.writeString(fmt.Sprintf("\x1b[%d;1H\r\n", p.height))
		_ = p.writer.Flush()
	}
	if p.input != nil {
		_ = p.input.Close()
	}
}

func (p *Pager) writeString(s string) {
	if p.writer != nil {
		_, _ = p.writer.WriteString(s)
	}
}

func (p *Pager) updateSize() {
	if p.input == nil {
		return
	}
	if width, height, err := term.GetSize(int(p.input.Fd())); err == nil {
		p.width = width
		p.height = height
	}
}

// layout installs a renderer for the current terminal size and clamps the
// viewport into it, keeping the cursor on a valid line and column.
func (p *Pager) layout() {
	if ansi, ok := p.r.(*ansiRenderer); ok {
		ansi.setSize(p.width, p.height)
	} else if p.r == nil {
		p.r = newANSIRenderer(p.writer, p.width, p.height)
	}

	p.vp.rows = p.r.Rows()
	if p.vp.cursorRow > p.vp.rows-1 {
		p.vp.cursorRow = p.vp.rows - 1
	}
	if p.vp.top > p.lastLine() {
		p.vp.top = p.lastLine()
	}
	p.vp.clampBottom(p.lastLine())
	if p.vp.CurrentLine() > p.lastLine() {
		p.vp.cursorRow = p.lastLine() - p.vp.top
	}
	p.settleColumn()
	applog.Debugf("layout: %dx%d rows=%d top=%d", p.width, p.height, p.vp.rows, p.vp.top)
}

// renderStatusLine paints "line/total(pct%)" on the left and "line:col" on
// the right, or a pending one-shot notice.
func (p *Pager) renderStatusLine() {
	lineNum := p.vp.CurrentLine() + 1
	total := p.lineCount()
	pct := lineNum * 100 / total

	left := fmt.Sprintf("%d/%d(%3d%%)", lineNum, total, pct)
	if p.notice != "" {
		left = p.notice
		p.notice = ""
	}
	if p.statusDebug {
		left += fmt.Sprintf(" file=%s top=%d bottom=%d cur=(%d,%d) shadow=%d query=%q hits=%d",
			p.state.Filename(), p.vp.top, p.vp.bottom, p.vp.cursorRow, p.vp.cursorCol,
			p.vp.shadowCol, p.state.Query(), len(p.state.Matches()))
		if m, ok := p.state.Selection(); ok {
			left += fmt.Sprintf(" sel=%d:%d", m.Line, m.Col)
		}
	}

	right := fmt.Sprintf("%d:%d", lineNum, p.vp.cursorCol+1)
	gap := p.r.Cols() - textutil.DisplayWidth(left) - textutil.DisplayWidth(right)
	status := left
	if gap > 0 {
		for i := 0; i < gap; i++ {
			status += " "
		}
		status += right
	}
	p.r.Status(status)
}

// renderPromptLine keeps the prompt row in sync outside of search entry:
// the committed query stays visible, everything else is cleared. During
// entry the prompt is painted by the SearchEntry handlers.
func (p *Pager) renderPromptLine() {
	if p.mode == ModeSearchEntry {
		p.r.Prompt("/" + p.state.Pending())
		return
	}
	if q := p.state.Query(); q != "" {
		p.r.Prompt("/" + q)
		return
	}
	p.r.ClearPrompt()
}
