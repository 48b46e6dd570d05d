package selector

import (
	"fmt"
	"strings"
)

func renderPage(s *Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 Results for \"%s\" (page %d/%d):\n", s.Query, s.Page+1, s.PageCount())
	for i, v := range s.PageItems() {
		fmt.Fprintf(&b, "%d. %s\n", i+1, v.Label())
	}
	b.WriteString(replyHint(s))
	return b.String()
}

func replyHint(s *Session) string {
	return fmt.Sprintf("Reply with a number (1-%d) to follow, `next`, `prev` or `stop`.", len(s.PageItems()))
}
