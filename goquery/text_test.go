package goquery_test

import (
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/profiled/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "collapses whitespace inside text",
			html: "<span>Acme\n\t  Corp</span>",
			want: "Acme Corp",
		},
		{
			name: "breaks lines at block elements",
			html: "<div><div>Engineer</div><div>Acme Corp</div></div>",
			want: "\n\nEngineer\n\nAcme Corp\n\n",
		},
		{
			name: "breaks lines at br",
			html: "<span>one<br>two</span>",
			want: "one\ntwo",
		},
		{
			name: "keeps inline siblings on one line",
			html: "<span><span>Jan 2022</span> - <span>Present</span></span>",
			want: "Jan 2022 - Present",
		},
		{
			name: "skips script and style",
			html: "<div>visible<script>hidden()</script><style>.x{}</style></div>",
			want: "\nvisible\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := gq.NewDocumentFromReader(strings.NewReader("<html><body>" + tt.html + "</body></html>"))
			require.NoError(t, err)

			got := goquery.RenderText(doc.Find("body").Children().First())

			assert.Equal(t, tt.want, got)
		})
	}
}
