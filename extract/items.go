package extract

import (
	"strings"

	"github.com/fwojciec/profiled"
)

// Minimum fragment counts for an item to map onto an entry.
const (
	MinExperienceFragments = 3
	MinEducationFragments  = 3
)

// companySeparator splits a company name from its employment type,
// as in "Acme Corp · Full-time".
const companySeparator = "·"

// Fragments returns the normalized text of every descendant of item that
// carries the display marker, in document order. Empty values and values
// already collected for the item are skipped.
func Fragments(item profiled.Node, marker string) []string {
	nodes, err := item.Find(marker)
	if err != nil {
		return nil
	}

	fragments := make([]string, 0, len(nodes))
	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		text, err := nodeText(n)
		if err != nil || text == "" || seen[text] {
			continue
		}
		seen[text] = true
		fragments = append(fragments, text)
	}
	return fragments
}

// ParseExperience maps fragments onto an experience entry:
// title, company, date range and an optional location.
// Returns false when there are too few fragments or the title equals the
// company, which signals an item that does not belong to the experience list.
func ParseExperience(fragments []string) (profiled.Experience, bool) {
	if len(fragments) < MinExperienceFragments {
		return profiled.Experience{}, false
	}

	exp := profiled.Experience{
		Title:     fragments[0],
		Company:   companyName(fragments[1]),
		DateRange: fragments[2],
	}
	if len(fragments) > 3 {
		exp.Location = profiled.String(fragments[3])
	}

	if exp.Title == exp.Company {
		return profiled.Experience{}, false
	}
	return exp, true
}

// ParseEducation maps fragments onto an education entry:
// school, degree and date range.
// Returns false when there are too few fragments or the school equals the degree.
func ParseEducation(fragments []string) (profiled.Education, bool) {
	if len(fragments) < MinEducationFragments {
		return profiled.Education{}, false
	}

	edu := profiled.Education{
		School:    fragments[0],
		Degree:    fragments[1],
		DateRange: fragments[2],
	}

	if edu.School == edu.Degree {
		return profiled.Education{}, false
	}
	return edu, true
}

// ParseCertification reads certification fields from fixed paths under item.
// The name falls back to the first marked text in the item. Every other field
// is resolved independently and left nil when it cannot be read.
// Returns false when no name is found.
func ParseCertification(item profiled.Node, paths CertificationPaths, marker string) (profiled.Certification, bool) {
	name, err := lookup(item, paths.Name, marker)
	if err != nil {
		name, _ = lookup(item, marker, marker)
	}
	if name == "" {
		return profiled.Certification{}, false
	}

	return profiled.Certification{
		Name:         name,
		Authority:    optional(item, paths.Authority, marker),
		Issued:       optional(item, paths.Issued, marker),
		CredentialID: optional(item, paths.CredentialID, marker),
	}, true
}

func optional(f finder, selector, marker string) *string {
	if selector == "" {
		return nil
	}
	text, err := lookup(f, selector, marker)
	if err != nil {
		return nil
	}
	return &text
}

func companyName(raw string) string {
	if before, _, ok := strings.Cut(raw, companySeparator); ok {
		return strings.TrimSpace(before)
	}
	return raw
}
