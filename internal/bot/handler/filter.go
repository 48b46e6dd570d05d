package handler

import (
	"comicbot/internal/models"
	"strings"
)

// WordFilter flags messages that contain a forbidden word anywhere, ignoring case.
type WordFilter struct {
	words []string
}

func NewWordFilter(words []string) *WordFilter {
	folded := make([]string, 0, len(words))
	for _, w := range words {
		if w = models.FoldName(w); w != "" {
			folded = append(folded, w)
		}
	}
	return &WordFilter{words: folded}
}

func (f *WordFilter) Match(content string) bool {
	text := models.FoldName(content)
	for _, w := range f.words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
