package search

// noSelection is the cursor value meaning no match is selected.
const noSelection = -1

// FindFunc runs a committed pattern and returns its matches in ascending
// line order.
type FindFunc func(pattern string) ([]Match, error)

// State owns the committed query, the characters typed so far in the search
// prompt, the ordered match list and a cursor into it.
type State struct {
	filename string
	query    string
	pending  []rune
	matches  []Match
	cursor   int
}

func NewState(filename string) *State {
	return &State{filename: filename, cursor: noSelection}
}

func (s *State) Filename() string { return s.filename }
func (s *State) Query() string    { return s.query }
func (s *State) Matches() []Match { return s.matches }

// HasSelection reports whether a match is currently selected.
func (s *State) HasSelection() bool {
	return s.cursor != noSelection
}

// Selection returns the selected match, if any.
func (s *State) Selection() (Match, bool) {
	if s.cursor == noSelection {
		return Match{}, false
	}
	return s.matches[s.cursor], true
}

func (s *State) AppendPending(ch rune) {
	s.pending = append(s.pending, ch)
}

// PopPending removes the last typed character; it reports false when there
// was nothing to remove.
func (s *State) PopPending() bool {
	if len(s.pending) == 0 {
		return false
	}
	s.pending = s.pending[:len(s.pending)-1]
	return true
}

func (s *State) ClearPending() {
	s.pending = nil
}

func (s *State) Pending() string {
	return string(s.pending)
}

// Reset clears the query, the pending input, the match list and the
// selection.
func (s *State) Reset() {
	s.query = ""
	s.pending = nil
	s.matches = nil
	s.cursor = noSelection
}

// Commit finalizes the pending input into the active query and runs find.
// An empty pending input is a no-op that leaves the prior match set
// untouched. A pattern error also leaves the prior matches intact so a typo
// does not wipe an active search. A committed query always replaces the
// previous results, even when it yields zero hits.
func (s *State) Commit(find FindFunc) (bool, error) {
	pending := s.pending
	s.pending = nil
	if len(pending) == 0 {
		return false, nil
	}

	query := string(pending)
	matches, err := find(query)
	if err != nil {
		return false, err
	}

	s.Reset()
	s.query = query
	s.matches = matches
	return true, nil
}

// NearLine selects the first match at or after the 1-based line number.
// It deliberately does not wrap: a cursor past the last match leaves the
// selection unset. Next is the one that wraps.
func (s *State) NearLine(lineNum int) (Match, bool) {
	for idx, m := range s.matches {
		if m.Line >= lineNum {
			s.cursor = idx
			return m, true
		}
	}
	return Match{}, false
}

// Next advances the selection to the following match, wrapping to the first
// one past the end. It requires an existing selection.
func (s *State) Next() (Match, bool) {
	if s.cursor == noSelection || len(s.matches) == 0 {
		return Match{}, false
	}
	s.cursor = (s.cursor + 1) % len(s.matches)
	return s.matches[s.cursor], true
}

// Previous selects the nearest match strictly above the line immediately
// before lineNum, skipping a match sitting right on top of the cursor. It
// does not wrap.
func (s *State) Previous(lineNum int) (Match, bool) {
	for idx := len(s.matches) - 1; idx >= 0; idx-- {
		if s.matches[idx].Line < lineNum-1 {
			s.cursor = idx
			return s.matches[idx], true
		}
	}
	return Match{}, false
}
