package goquery_test

import (
	"context"
	"testing"

	"github.com/fwojciec/profiled"
	"github.com/fwojciec/profiled/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html>
<body>
<main id="main">
	<section id="about-section">
		<h2><span aria-hidden="true">About</span><span class="visually-hidden">About</span></h2>
		<p>First   line<br>second line</p>
		<script>var ignored = true;</script>
	</section>
	<section>
		<ul>
			<li>One</li>
			<li>Two</li>
		</ul>
	</section>
</main>
</body>
</html>`

func TestDocument_Navigate(t *testing.T) {
	t.Parallel()

	t.Run("loads registered snapshot", func(t *testing.T) {
		t.Parallel()

		doc := goquery.NewDocument(map[string]string{"https://example.com/in/jane/": page})

		err := doc.Navigate(context.Background(), "https://example.com/in/jane/")

		require.NoError(t, err)
		u, err := doc.URL()
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/in/jane/", u)
	})

	t.Run("tolerates trailing slash difference", func(t *testing.T) {
		t.Parallel()

		doc := goquery.NewDocument(map[string]string{"https://example.com/in/jane/": page})

		err := doc.Navigate(context.Background(), "https://example.com/in/jane")

		require.NoError(t, err)
	})

	t.Run("returns ENOTFOUND for unknown URL", func(t *testing.T) {
		t.Parallel()

		doc := goquery.NewDocument(nil)

		err := doc.Navigate(context.Background(), "https://example.com/missing")

		require.Error(t, err)
		assert.Equal(t, profiled.ENOTFOUND, profiled.ErrorCode(err))
	})

	t.Run("fails after close", func(t *testing.T) {
		t.Parallel()

		doc, err := goquery.NewDocumentFromHTML("https://example.com/", page)
		require.NoError(t, err)
		require.NoError(t, doc.Close())

		err = doc.Navigate(context.Background(), "https://example.com/")

		assert.Equal(t, profiled.EINVALID, profiled.ErrorCode(err))
		assert.True(t, doc.Closed())
	})
}

func TestDocument_Find(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromHTML("https://example.com/", page)
	require.NoError(t, err)

	t.Run("returns matches in document order", func(t *testing.T) {
		t.Parallel()

		nodes, err := doc.Find("#main > section:nth-of-type(2) li")

		require.NoError(t, err)
		require.Len(t, nodes, 2)
		text, err := nodes[1].Text()
		require.NoError(t, err)
		assert.Equal(t, "Two", profiled.NormalizeText(text))
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		t.Parallel()

		nodes, err := doc.Find("table")

		require.NoError(t, err)
		assert.Empty(t, nodes)
	})

	t.Run("reads attributes", func(t *testing.T) {
		t.Parallel()

		nodes, err := doc.Find("section")
		require.NoError(t, err)
		require.Len(t, nodes, 2)

		id, err := nodes[0].Attr("id")
		require.NoError(t, err)
		assert.Equal(t, "about-section", id)

		_, err = nodes[1].Attr("id")
		assert.True(t, profiled.IsNotFound(err))
	})

	t.Run("node find excludes the node itself", func(t *testing.T) {
		t.Parallel()

		sections, err := doc.Find("section")
		require.NoError(t, err)

		nested, err := sections[0].Find("section")

		require.NoError(t, err)
		assert.Empty(t, nested)
	})
}

func TestDocument_WaitFor(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromHTML("https://example.com/", page)
	require.NoError(t, err)

	require.NoError(t, doc.WaitFor(context.Background(), "#main"))

	err = doc.WaitFor(context.Background(), "#missing")
	assert.Equal(t, profiled.ENOTFOUND, profiled.ErrorCode(err))
}

func TestDocument_ScrollBy(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromHTML("https://example.com/", page)
	require.NoError(t, err)

	require.NoError(t, doc.ScrollBy(context.Background(), 600))
	require.NoError(t, doc.ScrollBy(context.Background(), 600))

	assert.Equal(t, 2, doc.Scrolls())
}
