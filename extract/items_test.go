package extract_test

import (
	"testing"

	"github.com/fwojciec/profiled"
	"github.com/fwojciec/profiled/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragments(t *testing.T) {
	t.Parallel()

	t.Run("collects marked text in document order skipping duplicates", func(t *testing.T) {
		t.Parallel()

		item := htmlNode(t, `<ul><li>
	<div><span aria-hidden="true">Engineer</span><span class="visually-hidden">Engineer</span></div>
	<span><span aria-hidden="true">Acme Corp</span></span>
	<span><span aria-hidden="true">  </span></span>
	<span><span aria-hidden="true">Engineer</span></span>
	<span><span aria-hidden="true">2020 - 2021</span></span>
</li></ul>`, "li")

		assert.Equal(t, []string{"Engineer", "Acme Corp", "2020 - 2021"}, extract.Fragments(item, marker))
	})

	t.Run("returns nothing for an item without marked text", func(t *testing.T) {
		t.Parallel()

		item := htmlNode(t, `<ul><li><span>plain</span></li></ul>`, "li")

		assert.Empty(t, extract.Fragments(item, marker))
	})
}

func TestParseExperience(t *testing.T) {
	t.Parallel()

	t.Run("maps fragments by position", func(t *testing.T) {
		t.Parallel()

		exp, ok := extract.ParseExperience([]string{"Engineer", "Acme Corp · Full-time", "Jan 2022 - Present", "Remote"})

		require.True(t, ok)
		assert.Equal(t, profiled.Experience{
			Title:     "Engineer",
			Company:   "Acme Corp",
			DateRange: "Jan 2022 - Present",
			Location:  profiled.String("Remote"),
		}, exp)
	})

	t.Run("strips employment type after the middle dot", func(t *testing.T) {
		t.Parallel()

		exp, ok := extract.ParseExperience([]string{"Designer", "Acme Corp · Internship", "2021"})

		require.True(t, ok)
		assert.Equal(t, "Acme Corp", exp.Company)
	})

	t.Run("leaves location nil with three fragments", func(t *testing.T) {
		t.Parallel()

		exp, ok := extract.ParseExperience([]string{"Engineer", "Acme Corp", "2020 - 2021"})

		require.True(t, ok)
		assert.Equal(t, "Acme Corp", exp.Company)
		assert.Nil(t, exp.Location)
	})

	t.Run("rejects title equal to company", func(t *testing.T) {
		t.Parallel()

		_, ok := extract.ParseExperience([]string{"X", "X", "2020-2021"})

		assert.False(t, ok)
	})

	t.Run("rejects title equal to company after suffix stripping", func(t *testing.T) {
		t.Parallel()

		_, ok := extract.ParseExperience([]string{"Universitas Indonesia", "Universitas Indonesia · Bachelor", "2016 - 2020"})

		assert.False(t, ok)
	})

	t.Run("rejects fewer than three fragments", func(t *testing.T) {
		t.Parallel()

		_, ok := extract.ParseExperience([]string{"X", "Y"})

		assert.False(t, ok)
	})
}

func TestParseEducation(t *testing.T) {
	t.Parallel()

	t.Run("maps fragments by position", func(t *testing.T) {
		t.Parallel()

		edu, ok := extract.ParseEducation([]string{"Universitas Indonesia", "Bachelor of Computer Science", "2016 - 2020", "Grade: 3.8"})

		require.True(t, ok)
		assert.Equal(t, profiled.Education{
			School:    "Universitas Indonesia",
			Degree:    "Bachelor of Computer Science",
			DateRange: "2016 - 2020",
		}, edu)
	})

	t.Run("rejects school equal to degree", func(t *testing.T) {
		t.Parallel()

		_, ok := extract.ParseEducation([]string{"X", "X", "2020"})

		assert.False(t, ok)
	})

	t.Run("rejects fewer than three fragments", func(t *testing.T) {
		t.Parallel()

		_, ok := extract.ParseEducation([]string{"X", "Y"})

		assert.False(t, ok)
	})
}

func TestParseCertification(t *testing.T) {
	t.Parallel()

	paths := extract.DefaultLayout().Certification

	t.Run("reads every field from its path", func(t *testing.T) {
		t.Parallel()

		item := htmlNode(t, `<ul><li><div>
	<div><img alt="logo"></div>
	<div><div><a href="#">
		<div><div><div><div><span aria-hidden="true">CKA</span><span class="visually-hidden">CKA</span></div></div></div></div>
		<span><span aria-hidden="true">The Linux Foundation</span></span>
		<span><span aria-hidden="true">Issued Mar 2024</span></span>
		<span><span aria-hidden="true">Credential ID LF-42</span></span>
	</a></div></div>
</div></li></ul>`, "li")

		cert, ok := extract.ParseCertification(item, paths, marker)

		require.True(t, ok)
		assert.Equal(t, profiled.Certification{
			Name:         "CKA",
			Authority:    profiled.String("The Linux Foundation"),
			Issued:       profiled.String("Issued Mar 2024"),
			CredentialID: profiled.String("Credential ID LF-42"),
		}, cert)
	})

	t.Run("keeps a name-only item with other fields nil", func(t *testing.T) {
		t.Parallel()

		item := htmlNode(t, `<ul><li><div><span aria-hidden="true">Scrum Fundamentals</span></div></li></ul>`, "li")

		cert, ok := extract.ParseCertification(item, paths, marker)

		require.True(t, ok)
		assert.Equal(t, "Scrum Fundamentals", cert.Name)
		assert.Nil(t, cert.Authority)
		assert.Nil(t, cert.Issued)
		assert.Nil(t, cert.CredentialID)
	})

	t.Run("keeps partial fields independently", func(t *testing.T) {
		t.Parallel()

		item := htmlNode(t, `<ul><li><div>
	<div></div>
	<div><div><a href="#">
		<div><div><div><div><span aria-hidden="true">CKAD</span></div></div></div></div>
		<span><span aria-hidden="true">The Linux Foundation</span></span>
	</a></div></div>
</div></li></ul>`, "li")

		cert, ok := extract.ParseCertification(item, paths, marker)

		require.True(t, ok)
		assert.Equal(t, "CKAD", cert.Name)
		assert.Equal(t, "The Linux Foundation", profiled.Deref(cert.Authority))
		assert.Nil(t, cert.Issued)
		assert.Nil(t, cert.CredentialID)
	})

	t.Run("drops an item without a name", func(t *testing.T) {
		t.Parallel()

		item := htmlNode(t, `<ul><li><div><img alt=""></div></li></ul>`, "li")

		_, ok := extract.ParseCertification(item, paths, marker)

		assert.False(t, ok)
	})
}
