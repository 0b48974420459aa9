package extract

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/profiled"
)

// SkillSeparator joins skill names in Profile.Skills.
const SkillSeparator = "|"

// MaxSkillLength is the rune count at which a skills-view value is treated
// as endorsement or annotation text rather than a skill name.
const MaxSkillLength = 50

// Inference limits.
const (
	MaxPromptExperiences = 5
	MaxInferredSkills    = 10
)

// SkillsURL returns the address of the skills sub-view of the profile at
// profileURL. Query and fragment are dropped.
func SkillsURL(profileURL, skillsPath string) (string, error) {
	u, err := url.Parse(profileURL)
	if err != nil {
		return "", profiled.Errorf(profiled.EINVALID, "invalid profile URL: %v", err)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(skillsPath, "/")
	return u.String(), nil
}

// FilterSkills normalizes values, drops empty values and values of
// MaxSkillLength runes or more, and removes exact duplicates keeping the
// first occurrence.
func FilterSkills(values []string) []string {
	skills := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = profiled.NormalizeText(v)
		if v == "" || utf8.RuneCountInString(v) >= MaxSkillLength || seen[v] {
			continue
		}
		seen[v] = true
		skills = append(skills, v)
	}
	return skills
}

// SkillInferrer guesses skills from already-extracted profile fields when
// the skills sub-view yields nothing.
type SkillInferrer struct {
	// Generator is the generative-text service. A nil Generator means
	// inference is unavailable and InferSkills returns "".
	Generator profiled.TextGenerator
	Logger    *slog.Logger
}

// InferSkills asks the generator for a pipe-delimited skill list and returns
// its reply verbatim apart from surrounding whitespace. Any failure yields "".
// The call is made once, without retry.
func (s *SkillInferrer) InferSkills(ctx context.Context, headline, about string, experiences []profiled.Experience) string {
	logger := s.logger()
	if s.Generator == nil {
		logger.Warn("skill inference unavailable", "reason", "no generator configured")
		return ""
	}

	reply, err := s.Generator.Generate(ctx, BuildSkillsPrompt(headline, about, experiences))
	if err != nil {
		logger.Warn("skill inference failed", "err", err)
		return ""
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		logger.Warn("skill inference returned nothing")
	}
	return reply
}

func (s *SkillInferrer) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

// BuildSkillsPrompt builds the inference prompt from the headline, the about
// text and the first MaxPromptExperiences experiences.
func BuildSkillsPrompt(headline, about string, experiences []profiled.Experience) string {
	var exp strings.Builder
	for i, e := range experiences {
		if i == MaxPromptExperiences {
			break
		}
		exp.WriteString("- " + e.Title)
		if e.Company != "" {
			exp.WriteString(" at " + e.Company)
		}
		exp.WriteString("\n")
	}

	var sb strings.Builder
	sb.WriteString("Based on the following LinkedIn profile information, generate a list of relevant skills.\n\n")
	fmt.Fprintf(&sb, "Headline: %s\n\n", headline)
	fmt.Fprintf(&sb, "About: %s\n\n", about)
	fmt.Fprintf(&sb, "Experience:\n%s\n", exp.String())
	sb.WriteString("Provide the response in the format: skill1|skill2|skill3|skill4|skill5\n\n")
	fmt.Fprintf(&sb, "Only include relevant and specific skills, with no additional explanation. Maximum %d skills.", MaxInferredSkills)
	return sb.String()
}
