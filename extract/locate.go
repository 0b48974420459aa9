package extract

import (
	"strings"

	"github.com/fwojciec/profiled"
)

// LocateSection returns the 1-based index of the section matching rule.
//
// Section ids are checked across every section first; heading text is only
// consulted when no id matches. Sections whose id or heading cannot be read
// are skipped. Returns false when neither pass matches, which means the
// subject has no such section.
func LocateSection(sections []profiled.Node, rule SectionRule, heading string) (int, bool) {
	for i, s := range sections {
		id, err := s.Attr("id")
		if err != nil {
			continue
		}
		if containsAny(id, rule.IDKeywords) {
			return i + 1, true
		}
	}

	for i, s := range sections {
		h, err := first(s, heading)
		if err != nil {
			continue
		}
		text, err := nodeText(h)
		if err != nil {
			continue
		}
		if containsAny(text, rule.HeadingKeywords) {
			return i + 1, true
		}
	}

	return 0, false
}

// containsAny reports whether s contains any keyword, ignoring case.
func containsAny(s string, keywords []string) bool {
	s = strings.ToLower(s)
	for _, k := range keywords {
		if k != "" && strings.Contains(s, strings.ToLower(k)) {
			return true
		}
	}
	return false
}
