// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sanitize strips structural noise from fetched article text so it
// can be segmented on punctuation alone.
package sanitize

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(` {2,}`)

// Sanitize removes blank lines and "=" section-marker lines, joins what is
// left into a single line, drops every parenthetical span at any nesting
// depth, and collapses the doubled spaces that leaves behind. Returns "" if
// no line survives.
//
// Removing a span can expose a leading "=" (as in "(note)= Rome"), so the
// passes repeat until the text stops changing. Each pass never grows the
// text, which bounds the loop.
func Sanitize(raw string) string {
	text := sanitizeOnce(raw)
	for {
		next := sanitizeOnce(text)
		if next == text {
			return text
		}
		text = next
	}
}

func sanitizeOnce(text string) string {
	text = RemoveBlankLinesAndMarkdown(text)
	text = RemoveParentheticals(text)
	return strings.TrimSpace(multiSpace.ReplaceAllString(text, " "))
}

// RemoveBlankLinesAndMarkdown drops lines that are empty after trimming or
// start with "=" and joins the rest with a single space. Line breaks are not
// preserved.
func RemoveBlankLinesAndMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "=") {
			continue
		}
		kept = append(kept, trimmed)
	}
	return strings.Join(kept, " ")
}

// RemoveParentheticals deletes balanced "(...)" spans including everything
// nested inside them. An unmatched ")" is kept as text, as is an "(" that
// never closes together with what follows it.
func RemoveParentheticals(text string) string {
	out := make([]rune, 0, len(text))
	var open []int
	for _, r := range text {
		switch r {
		case '(':
			open = append(open, len(out))
			out = append(out, r)
		case ')':
			if len(open) == 0 {
				out = append(out, r)
				continue
			}
			out = out[:open[len(open)-1]]
			open = open[:len(open)-1]
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
