// Package extract implements the profile extraction engine: it locates the
// page's sections heuristically, resolves text rendered twice for
// accessibility, maps list items onto typed entries, and falls back to
// skill inference when the skills sub-view yields nothing.
package extract

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/profiled"
)

// Default bounds on waits for client-rendered content.
const (
	DefaultSectionTimeout = 10 * time.Second
	DefaultSkillsTimeout  = 10 * time.Second
	DefaultSettleTimeout  = 2 * time.Second
)

// Extractor reads a profile from a document that has already been loaded
// and warmed up. An Extractor holds no per-run state and may be shared, but
// each Document it is given must be owned by one call.
type Extractor struct {
	Layout   Layout
	Inferrer *SkillInferrer
	Logger   *slog.Logger

	SectionTimeout time.Duration
	SkillsTimeout  time.Duration
	SettleTimeout  time.Duration
}

// NewExtractor returns an Extractor using the default layout and timeouts.
func NewExtractor(inferrer *SkillInferrer, logger *slog.Logger) *Extractor {
	return &Extractor{
		Layout:   DefaultLayout(),
		Inferrer: inferrer,
		Logger:   logger,
	}
}

// Extract reads every profile field from doc. It never fails: a field that
// cannot be resolved is left empty, and a panic during extraction yields the
// fields resolved up to that point.
//
// Skill extraction navigates doc to the skills sub-view, so doc is no longer
// on the profile page when Extract returns.
func (e *Extractor) Extract(ctx context.Context, doc profiled.Document) (p *profiled.Profile) {
	p = profiled.NewProfile()
	logger := e.logger()

	defer func() {
		if r := recover(); r != nil {
			logger.Error("extraction aborted", "panic", r)
		}
	}()

	l := e.Layout
	p.FullName = e.scalar(doc, "full_name", l.InSection(l.TopCardSection, l.Name))
	p.Headline = e.scalar(doc, "headline", l.InSection(l.TopCardSection, l.Headline))
	p.Location = e.scalar(doc, "location", l.InSection(l.TopCardSection, l.Location))
	p.About = e.about(ctx, doc)

	p.Experiences = e.experiences(ctx, doc)
	p.Educations = e.educations(ctx, doc)
	p.Certifications = e.certifications(ctx, doc)

	p.Skills = e.ExtractSkills(ctx, doc)
	if p.Skills == "" && e.Inferrer != nil {
		logger.Info("no skills found, inferring from profile")
		p.Skills = e.Inferrer.InferSkills(ctx, profiled.Deref(p.Headline), profiled.Deref(p.About), p.Experiences)
	}

	return p
}

// scalar resolves a single optional field.
func (e *Extractor) scalar(doc profiled.Document, field, selector string) *string {
	text, err := lookup(doc, selector, e.Layout.Visible)
	if err != nil {
		if profiled.IsNotFound(err) {
			e.logger().Debug("field not found", "field", field, "err", err)
		} else {
			e.logger().Warn("field lookup failed", "field", field, "err", err)
		}
		return nil
	}
	return &text
}

// about tries each candidate section in turn, expanding truncated text first.
func (e *Extractor) about(ctx context.Context, doc profiled.Document) *string {
	l := e.Layout
	for _, idx := range l.AboutSections {
		e.expand(ctx, doc, l.InSection(idx, l.AboutExpand))
		if text, err := lookup(doc, l.InSection(idx, l.AboutText), l.Visible); err == nil {
			return &text
		}
	}
	e.logger().Debug("field not found", "field", "about")
	return nil
}

// expand clicks the first control under selector whose label matches one of
// the layout's expand labels, then waits for the page to settle.
func (e *Extractor) expand(ctx context.Context, doc profiled.Document, selector string) {
	buttons, err := doc.Find(selector)
	if err != nil {
		return
	}
	for _, b := range buttons {
		label, err := nodeText(b)
		if err != nil || !containsAny(label, e.Layout.ExpandLabels) {
			continue
		}
		if err := b.Click(ctx); err != nil {
			e.logger().Debug("expand control click failed", "err", err)
			return
		}
		e.settle(ctx, doc)
		return
	}
}

// sectionItems locates the category's section, brings it into view and
// returns its list items. Returns nil when the section is absent.
func (e *Extractor) sectionItems(ctx context.Context, doc profiled.Document, c Category) []profiled.Node {
	l := e.Layout
	logger := e.logger().With("section", c.String())

	if err := wait(ctx, e.sectionTimeout(), func(ctx context.Context) error {
		return doc.WaitFor(ctx, l.Sections())
	}); err != nil {
		logger.Warn("timeout waiting for sections, continuing", "err", err)
	}

	sections, err := doc.Find(l.Sections())
	if err != nil {
		logger.Warn("listing sections failed", "err", err)
		return nil
	}

	idx, ok := LocateSection(sections, l.Rule(c), l.Heading)
	if !ok {
		logger.Info("section not found", "sections", len(sections))
		return nil
	}
	logger.Debug("section located", "index", idx)

	if err := sections[idx-1].ScrollIntoView(ctx); err != nil {
		logger.Debug("scroll into view failed", "err", err)
	}
	itemSelector := l.InSection(idx, l.Items)
	if err := wait(ctx, e.sectionTimeout(), func(ctx context.Context) error {
		return doc.WaitFor(ctx, itemSelector)
	}); err != nil {
		logger.Debug("timeout waiting for section items, continuing", "err", err)
	}

	items, err := doc.Find(itemSelector)
	if err != nil {
		logger.Warn("listing section items failed", "err", err)
		return nil
	}
	logger.Debug("section items found", "count", len(items))
	return items
}

func (e *Extractor) experiences(ctx context.Context, doc profiled.Document) []profiled.Experience {
	items := e.sectionItems(ctx, doc, Experience)
	entries := make([]profiled.Experience, 0, len(items))
	for i, item := range items {
		fragments := Fragments(item, e.Layout.Visible)
		exp, ok := ParseExperience(fragments)
		if !ok {
			e.logger().Debug("experience item skipped", "index", i, "fragments", fragments)
			continue
		}
		entries = append(entries, exp)
	}
	return entries
}

func (e *Extractor) educations(ctx context.Context, doc profiled.Document) []profiled.Education {
	items := e.sectionItems(ctx, doc, Education)
	entries := make([]profiled.Education, 0, len(items))
	for i, item := range items {
		fragments := Fragments(item, e.Layout.Visible)
		edu, ok := ParseEducation(fragments)
		if !ok {
			e.logger().Debug("education item skipped", "index", i, "fragments", fragments)
			continue
		}
		entries = append(entries, edu)
	}
	return entries
}

func (e *Extractor) certifications(ctx context.Context, doc profiled.Document) []profiled.Certification {
	items := e.sectionItems(ctx, doc, Certification)
	entries := make([]profiled.Certification, 0, len(items))
	for i, item := range items {
		cert, ok := ParseCertification(item, e.Layout.Certification, e.Layout.Visible)
		if !ok {
			e.logger().Debug("certification item skipped", "index", i, "reason", "no name")
			continue
		}
		entries = append(entries, cert)
	}
	return entries
}

// ExtractSkills navigates doc to the skills sub-view of the current profile
// and returns the skill names joined with SkillSeparator. Returns "" when the
// view cannot be loaded or lists no qualifying skills.
func (e *Extractor) ExtractSkills(ctx context.Context, doc profiled.Document) string {
	l := e.Layout
	logger := e.logger()

	profileURL, err := doc.URL()
	if err != nil {
		logger.Warn("skills view unavailable", "err", err)
		return ""
	}
	skillsURL, err := SkillsURL(profileURL, l.SkillsPath)
	if err != nil {
		logger.Warn("skills view unavailable", "err", err)
		return ""
	}
	if err := doc.Navigate(ctx, skillsURL); err != nil {
		logger.Warn("skills view unavailable", "url", skillsURL, "err", err)
		return ""
	}

	if err := wait(ctx, e.skillsTimeout(), func(ctx context.Context) error {
		return doc.WaitFor(ctx, l.SkillsContainer)
	}); err != nil {
		logger.Warn("timeout waiting for skills list, continuing", "err", err)
	}

	nodes, err := doc.Find(l.SkillItems())
	if err != nil {
		logger.Warn("listing skills failed", "err", err)
		return ""
	}

	values := make([]string, 0, len(nodes))
	for _, n := range nodes {
		text, err := n.Text()
		if err != nil {
			continue
		}
		values = append(values, text)
	}

	skills := FilterSkills(values)
	logger.Info("skills extracted", "count", len(skills))
	return strings.Join(skills, SkillSeparator)
}

// settle waits, bounded by SettleTimeout, for the DOM to stop changing.
func (e *Extractor) settle(ctx context.Context, doc profiled.Document) {
	if err := wait(ctx, e.settleTimeout(), doc.Settle); err != nil {
		e.logger().Debug("page did not settle, continuing", "err", err)
	}
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

func (e *Extractor) sectionTimeout() time.Duration {
	return orDefault(e.SectionTimeout, DefaultSectionTimeout)
}

func (e *Extractor) skillsTimeout() time.Duration {
	return orDefault(e.SkillsTimeout, DefaultSkillsTimeout)
}

func (e *Extractor) settleTimeout() time.Duration {
	return orDefault(e.SettleTimeout, DefaultSettleTimeout)
}

// wait runs fn with a context bounded by d.
func wait(ctx context.Context, d time.Duration, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	return fn(ctx)
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
