package profiled

import "strings"

// NormalizeText splits raw text into lines, trims each line, and drops empty
// lines and lines identical to the previous kept line. Repeats that are not
// adjacent survive. Returns "" when nothing is left.
func NormalizeText(raw string) string {
	if raw == "" {
		return ""
	}

	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	prev := ""

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || line == prev {
			continue
		}
		kept = append(kept, line)
		prev = line
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}
