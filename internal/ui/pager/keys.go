package pager

import (
	"bufio"
	"unicode"
)

type keyKind int

const (
	keyUnknown keyKind = iota
	keyRune
	keyUp
	keyDown
	keyLeft
	keyRight
	keyEnter
	keyBackspace
	keyEscape
	keyCtrlU
	keyCtrlD
	keyCtrlC
)

type keyEvent struct {
	kind keyKind
	ch   rune
}

// readKeyEvent decodes one key press from the tty. Escape sequences are
// only consumed when bytes are already buffered, so a lone Escape press is
// reported immediately.
func readKeyEvent(reader *bufio.Reader) (keyEvent, error) {
	r, _, err := reader.ReadRune()
	if err != nil {
		return keyEvent{}, err
	}

	switch r {
	case 0x1b:
		return parseEscapeSequence(reader), nil
	case '\r', '\n':
		return keyEvent{kind: keyEnter}, nil
	case 0x7f, 0x08:
		return keyEvent{kind: keyBackspace}, nil
	case 0x15:
		return keyEvent{kind: keyCtrlU}, nil
	case 0x04:
		return keyEvent{kind: keyCtrlD}, nil
	case 0x03:
		return keyEvent{kind: keyCtrlC}, nil
	}

	if unicode.IsPrint(r) {
		return keyEvent{kind: keyRune, ch: r}, nil
	}
	return keyEvent{kind: keyUnknown}, nil
}

func parseEscapeSequence(reader *bufio.Reader) keyEvent {
	if reader.Buffered() == 0 {
		return keyEvent{kind: keyEscape}
	}
	next, err := reader.ReadByte()
	if err != nil {
		return keyEvent{kind: keyEscape}
	}

	switch next {
	case '[':
		return parseCSI(reader)
	case 'O':
		final, err := reader.ReadByte()
		if err != nil {
			return keyEvent{kind: keyEscape}
		}
		switch final {
		case 'A':
			return keyEvent{kind: keyUp}
		case 'B':
			return keyEvent{kind: keyDown}
		case 'C':
			return keyEvent{kind: keyRight}
		case 'D':
			return keyEvent{kind: keyLeft}
		}
		return keyEvent{kind: keyUnknown}
	default:
		return keyEvent{kind: keyEscape}
	}
}

func parseCSI(reader *bufio.Reader) keyEvent {
	seq := []byte{}
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return keyEvent{kind: keyEscape}
		}
		seq = append(seq, b)
		if (b >= 'A' && b <= 'Z') || b == '~' {
			break
		}
		if len(seq) > 5 {
			break
		}
	}

	switch seq[len(seq)-1] {
	case 'A':
		return keyEvent{kind: keyUp}
	case 'B':
		return keyEvent{kind: keyDown}
	case 'C':
		return keyEvent{kind: keyRight}
	case 'D':
		return keyEvent{kind: keyLeft}
	case '~':
		// Delete behaves like Backspace in the search prompt.
		if string(seq[:len(seq)-1]) == "3" {
			return keyEvent{kind: keyBackspace}
		}
	}
	return keyEvent{kind: keyUnknown}
}
