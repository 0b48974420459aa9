package extract_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/profiled"
	"github.com/fwojciec/profiled/extract"
	"github.com/fwojciec/profiled/mock"
	"github.com/stretchr/testify/assert"
)

func TestLocateSection(t *testing.T) {
	t.Parallel()

	rules := extract.DefaultLayout()

	t.Run("identifier match wins over an earlier heading match", func(t *testing.T) {
		t.Parallel()

		sections := htmlNodes(t, `
<section><h2>Experience</h2></section>
<section id="work-EXPERIENCE-card"><h2>Jobs</h2></section>`, "section")

		idx, ok := extract.LocateSection(sections, rules.Rule(extract.Experience), "h2")

		assert.True(t, ok)
		assert.Equal(t, 2, idx)
	})

	t.Run("falls back to heading text ignoring case", func(t *testing.T) {
		t.Parallel()

		sections := htmlNodes(t, `
<section><h2>About</h2></section>
<section><h2>PENGALAMAN</h2></section>
<section><h2>Pendidikan</h2></section>`, "section")

		idx, ok := extract.LocateSection(sections, rules.Rule(extract.Experience), "h2")
		assert.True(t, ok)
		assert.Equal(t, 2, idx)

		idx, ok = extract.LocateSection(sections, rules.Rule(extract.Education), "h2")
		assert.True(t, ok)
		assert.Equal(t, 3, idx)
	})

	t.Run("matches certification by license keyword", func(t *testing.T) {
		t.Parallel()

		sections := htmlNodes(t, `
<section><h2>Experience</h2></section>
<section><h2>Licenses &amp; certifications</h2></section>`, "section")

		idx, ok := extract.LocateSection(sections, rules.Rule(extract.Certification), "h2")

		assert.True(t, ok)
		assert.Equal(t, 2, idx)
	})

	t.Run("first matching section wins within a tier", func(t *testing.T) {
		t.Parallel()

		sections := htmlNodes(t, `
<section><h2>Volunteer experience</h2></section>
<section><h2>Experience</h2></section>`, "section")

		idx, ok := extract.LocateSection(sections, rules.Rule(extract.Experience), "h2")

		assert.True(t, ok)
		assert.Equal(t, 1, idx)
	})

	t.Run("reports absence when nothing matches", func(t *testing.T) {
		t.Parallel()

		sections := htmlNodes(t, `<section><h2>About</h2></section><section></section>`, "section")

		idx, ok := extract.LocateSection(sections, rules.Rule(extract.Certification), "h2")

		assert.False(t, ok)
		assert.Zero(t, idx)
	})

	t.Run("reports absence for no sections", func(t *testing.T) {
		t.Parallel()

		_, ok := extract.LocateSection(nil, rules.Rule(extract.Experience), "h2")

		assert.False(t, ok)
	})

	t.Run("skips sections whose lookups fail", func(t *testing.T) {
		t.Parallel()

		broken := &mock.Node{
			AttrFn: func(string) (string, error) { return "", errors.New("stale element") },
			FindFn: func(string) ([]profiled.Node, error) { return nil, errors.New("stale element") },
		}
		sections := append([]profiled.Node{broken}, htmlNodes(t, `<section><h2>Education</h2></section>`, "section")...)

		idx, ok := extract.LocateSection(sections, rules.Rule(extract.Education), "h2")

		assert.True(t, ok)
		assert.Equal(t, 2, idx)
	})
}
