package insights

import (
	"regexp"
	"strings"
)

var listMarkerRe = regexp.MustCompile(`^[\-\*\d\.\)\s]+`)

// CleanLines splits model output into a de-bulleted, de-duplicated list:
// blank lines are dropped, leading list markers stripped, and exact
// duplicates removed while preserving first-seen order.
func CleanLines(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = strings.TrimSpace(listMarkerRe.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
