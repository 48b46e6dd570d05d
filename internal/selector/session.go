package selector

import (
	"comicbot/internal/models"
	"fmt"
	"strconv"
	"strings"
)

type State int

const (
	StateSearching State = iota
	StatePaging
	StateSelected
	StateCancelled
	StateTimedOut
)

func (s State) String() string {
	switch s {
	case StateSearching:
		return "searching"
	case StatePaging:
		return "paging"
	case StateSelected:
		return "selected"
	case StateCancelled:
		return "cancelled"
	case StateTimedOut:
		return "timed_out"
	}
	return "unknown"
}

func (s State) Terminal() bool {
	return s == StateSelected || s == StateCancelled || s == StateTimedOut
}

// Session is one user's selection dialog in one channel. Page is zero based.
type Session struct {
	ID        string
	UserID    string
	ChannelID string
	Query     string
	Results   []models.VolumeSearchResult
	Page      int
	PageSize  int
	State     State

	stopTimer func() bool
	// generation identifies the live timer; an expiry carrying an older one is stale.
	generation uint64
}

func (s *Session) PageCount() int {
	if len(s.Results) == 0 {
		return 0
	}
	return (len(s.Results) + s.PageSize - 1) / s.PageSize
}

func (s *Session) PageItems() []models.VolumeSearchResult {
	start := s.Page * s.PageSize
	if start >= len(s.Results) {
		return nil
	}
	end := min(start+s.PageSize, len(s.Results))
	return s.Results[start:end]
}

// Next advances one page. It reports false and stays put on the last page.
func (s *Session) Next() bool {
	if s.Page+1 >= s.PageCount() {
		return false
	}
	s.Page++
	return true
}

// Prev goes back one page. It reports false and stays put on the first page.
func (s *Session) Prev() bool {
	if s.Page == 0 {
		return false
	}
	s.Page--
	return true
}

// Resolve maps a 1-based position on the current page to a result.
func (s *Session) Resolve(local int) (models.VolumeSearchResult, error) {
	if local < 1 || local > s.PageSize {
		return models.VolumeSearchResult{}, fmt.Errorf("%w: %d is not on this page", models.ErrInvalidInput, local)
	}
	abs := s.Page*s.PageSize + (local - 1)
	if abs >= len(s.Results) {
		return models.VolumeSearchResult{}, fmt.Errorf("%w: %d is not on this page", models.ErrInvalidInput, local)
	}
	return s.Results[abs], nil
}

type action int

const (
	actionInvalid action = iota
	actionSelect
	actionNext
	actionPrev
	actionStop
)

func parseReply(text string) (action, int) {
	reply := strings.ToLower(strings.TrimSpace(text))
	switch reply {
	case "next":
		return actionNext, 0
	case "prev":
		return actionPrev, 0
	case "stop":
		return actionStop, 0
	}
	n, err := strconv.Atoi(reply)
	if err != nil {
		return actionInvalid, 0
	}
	return actionSelect, n
}
