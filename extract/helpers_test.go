package extract_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/profiled"
	"github.com/fwojciec/profiled/goquery"
	"github.com/stretchr/testify/require"
)

const profileURL = "https://www.linkedin.com/in/jane-doe/"

func fixture(t *testing.T, name string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return string(b)
}

// profilePages returns the profile snapshot and, optionally, its skills sub-view.
func profilePages(t *testing.T, withSkills bool) map[string]string {
	t.Helper()
	pages := map[string]string{profileURL: fixture(t, "profile.html")}
	if withSkills {
		pages[profileURL+"details/skills/"] = fixture(t, "skills.html")
	}
	return pages
}

// loadedDocument returns a document already navigated to the profile page.
func loadedDocument(t *testing.T, withSkills bool) *goquery.Document {
	t.Helper()
	doc := goquery.NewDocument(profilePages(t, withSkills))
	require.NoError(t, doc.Navigate(context.Background(), profileURL))
	return doc
}

// htmlNode parses a fragment and returns the first element matching selector.
func htmlNode(t *testing.T, html, selector string) profiled.Node {
	t.Helper()
	doc, err := goquery.NewDocumentFromHTML("https://example.com/", "<html><body>"+html+"</body></html>")
	require.NoError(t, err)
	nodes, err := doc.Find(selector)
	require.NoError(t, err)
	require.NotEmpty(t, nodes)
	return nodes[0]
}

// htmlNodes parses a fragment and returns every element matching selector.
func htmlNodes(t *testing.T, html, selector string) []profiled.Node {
	t.Helper()
	doc, err := goquery.NewDocumentFromHTML("https://example.com/", "<html><body>"+html+"</body></html>")
	require.NoError(t, err)
	nodes, err := doc.Find(selector)
	require.NoError(t, err)
	return nodes
}
