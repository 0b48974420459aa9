package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/profiled"
	"gopkg.in/yaml.v3"
)

// Category names a list section of the profile page.
type Category int

const (
	Experience Category = iota
	Education
	Certification
)

// String returns the lowercase name of the category.
func (c Category) String() string {
	switch c {
	case Experience:
		return "experience"
	case Education:
		return "education"
	case Certification:
		return "certification"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// SectionRule holds the keywords used to recognize a category's section.
// Matching is case-insensitive substring matching.
type SectionRule struct {
	// IDKeywords are matched against the section's id attribute.
	IDKeywords []string `yaml:"id_keywords"`

	// HeadingKeywords are matched against the section's heading text,
	// and include localized variants.
	HeadingKeywords []string `yaml:"heading_keywords"`
}

// CertificationPaths locate certification fields relative to a list item.
type CertificationPaths struct {
	Name         string `yaml:"name"`
	Authority    string `yaml:"authority"`
	Issued       string `yaml:"issued"`
	CredentialID string `yaml:"credential_id"`
}

// Layout is the lookup table of every selector the engine depends on.
// Section-relative selectors are joined to a section selector with a child
// combinator, so they must start at a direct child of the section.
type Layout struct {
	// ProfileContent marks that the profile page has rendered.
	ProfileContent string `yaml:"profile_content"`

	// Main selects the element whose section children are the top-level sections.
	Main string `yaml:"main"`

	// TopCardSection is the 1-based index of the section holding name,
	// headline and location.
	TopCardSection int    `yaml:"top_card_section"`
	Name           string `yaml:"name"`
	Headline       string `yaml:"headline"`
	Location       string `yaml:"location"`

	// AboutSections lists the 1-based sections tried, in order, for about text.
	AboutSections []int    `yaml:"about_sections"`
	AboutText     string   `yaml:"about_text"`
	AboutExpand   string   `yaml:"about_expand"`
	ExpandLabels  []string `yaml:"expand_labels"`

	// Heading selects a section's heading, searched among descendants.
	Heading string `yaml:"heading"`

	// Items selects the list items of a section.
	Items string `yaml:"items"`

	// Visible marks the display copy of text that is also rendered for screen readers.
	Visible string `yaml:"visible"`

	Certification CertificationPaths `yaml:"certification"`

	// SkillsPath is appended to the profile URL to reach the skills sub-view.
	SkillsPath      string `yaml:"skills_path"`
	SkillsContainer string `yaml:"skills_container"`

	Rules map[string]SectionRule `yaml:"rules"`
}

// DefaultLayout returns the layout of the profile page as currently rendered.
func DefaultLayout() Layout {
	return Layout{
		ProfileContent: "#profile-content",
		Main:           "#profile-content > div > div:nth-of-type(2) > div > div > main",
		TopCardSection: 1,
		Name:           "div:nth-of-type(2) > div:nth-of-type(2) > div:nth-of-type(1) > div:nth-of-type(1) > span:nth-of-type(1) > a > h1",
		Headline:       "div:nth-of-type(2) > div:nth-of-type(2) > div:nth-of-type(1) > div:nth-of-type(2)",
		Location:       "div:nth-of-type(2) > div:nth-of-type(2) > div:nth-of-type(2) > span:nth-of-type(1)",
		AboutSections:  []int{3, 2},
		AboutText:      "div:nth-of-type(3) > div > div > div > span:nth-of-type(1)",
		AboutExpand:    "div:nth-of-type(3) button",
		ExpandLabels:   []string{"see more", "lihat lebih banyak"},
		Heading:        "h2",
		Items:          "div:nth-of-type(3) > ul > li",
		Visible:        "span[aria-hidden='true']",
		Certification: CertificationPaths{
			Name:         "div > div:nth-of-type(2) > div:nth-of-type(1) > a > div > div > div > div > span:nth-of-type(1)",
			Authority:    "div > div:nth-of-type(2) > div:nth-of-type(1) > a > span:nth-of-type(1) > span:nth-of-type(1)",
			Issued:       "div > div:nth-of-type(2) > div:nth-of-type(1) > a > span:nth-of-type(2) > span:nth-of-type(1)",
			CredentialID: "div > div:nth-of-type(2) > div:nth-of-type(1) > a > span:nth-of-type(3) > span:nth-of-type(1)",
		},
		SkillsPath:      "details/skills/",
		SkillsContainer: "div[class*='pvs-list__container']",
		Rules: map[string]SectionRule{
			Experience.String(): {
				IDKeywords:      []string{"experience"},
				HeadingKeywords: []string{"experience", "pengalaman"},
			},
			Education.String(): {
				IDKeywords:      []string{"education"},
				HeadingKeywords: []string{"education", "pendidikan"},
			},
			Certification.String(): {
				IDKeywords:      []string{"certification", "license"},
				HeadingKeywords: []string{"certification", "license", "sertifikat"},
			},
		},
	}
}

// ParseLayout overlays YAML onto the default layout.
// Keys absent from the YAML keep their default values, including the
// keyword lists of a partially overridden section rule.
func ParseLayout(data []byte) (Layout, error) {
	l := DefaultLayout()
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, profiled.Errorf(profiled.EINVALID, "invalid layout: %v", err)
	}
	l.Rules = mergeRules(DefaultLayout().Rules, l.Rules)
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// mergeRules fills keyword lists left nil by the YAML decoder from defaults.
// An explicit empty list is kept and disables that matching tier.
func mergeRules(defaults, rules map[string]SectionRule) map[string]SectionRule {
	for name, r := range rules {
		d := defaults[name]
		if r.IDKeywords == nil {
			r.IDKeywords = d.IDKeywords
		}
		if r.HeadingKeywords == nil {
			r.HeadingKeywords = d.HeadingKeywords
		}
		rules[name] = r
	}
	return rules
}

// LoadLayout reads a YAML layout file and overlays it onto the default layout.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading layout: %w", err)
	}
	return ParseLayout(data)
}

// Validate returns an error if a selector the engine cannot work without is empty.
func (l Layout) Validate() error {
	required := map[string]string{
		"main":    l.Main,
		"items":   l.Items,
		"visible": l.Visible,
		"heading": l.Heading,
	}
	for name, v := range required {
		if strings.TrimSpace(v) == "" {
			return profiled.Errorf(profiled.EINVALID, "layout %s selector required", name)
		}
	}
	if l.TopCardSection < 1 {
		return profiled.Errorf(profiled.EINVALID, "layout top card section must be 1 or greater")
	}
	for _, idx := range l.AboutSections {
		if idx < 1 {
			return profiled.Errorf(profiled.EINVALID, "layout about sections must be 1 or greater")
		}
	}
	return nil
}

// Rule returns the section rule for a category.
func (l Layout) Rule(c Category) SectionRule {
	return l.Rules[c.String()]
}

// Sections selects every top-level section, in document order.
func (l Layout) Sections() string {
	return l.Main + " > section"
}

// Section selects the top-level section at a 1-based index.
func (l Layout) Section(idx int) string {
	return fmt.Sprintf("%s > section:nth-of-type(%d)", l.Main, idx)
}

// InSection joins a section-relative selector to the section at idx.
func (l Layout) InSection(idx int, rel string) string {
	return l.Section(idx) + " > " + rel
}

// SkillItems selects the display text of every skill in the skills sub-view.
func (l Layout) SkillItems() string {
	return l.SkillsContainer + " li " + l.Visible
}
