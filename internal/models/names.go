package models

import (
	"golang.org/x/text/cases"
	"strings"
)

// FoldName normalises a series name for case-insensitive comparison.
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

func SameName(a, b string) bool {
	return FoldName(a) == FoldName(b)
}

func Mention(userID string) string {
	return "<@" + userID + ">"
}
