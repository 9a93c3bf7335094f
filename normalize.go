package biweekly

import "strings"

// cleanText collapses newlines and runs of whitespace in extracted cell text
// into single spaces. Empty input stays empty.
func cleanText(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(strings.Fields(strings.ReplaceAll(text, "\n", " ")), " ")
}
