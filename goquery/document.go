// Package goquery provides a static implementation of profiled.Document over
// saved HTML snapshots. Scrolling, settling and clicking are no-ops because a
// snapshot never changes after it is parsed.
package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/profiled"
)

// Ensure Document implements profiled.Document at compile time.
var _ profiled.Document = (*Document)(nil)

// Document serves pages from an in-memory set of HTML snapshots keyed by URL.
type Document struct {
	pages   map[string]string
	url     string
	doc     *goquery.Document
	scrolls int
	closed  bool
}

// NewDocument creates a Document that can navigate between the given pages.
// Nothing is loaded until Navigate is called.
func NewDocument(pages map[string]string) *Document {
	p := make(map[string]string, len(pages))
	for u, html := range pages {
		p[u] = html
	}
	return &Document{pages: p}
}

// NewDocumentFromHTML creates a Document with html already loaded at url.
func NewDocumentFromHTML(url, html string) (*Document, error) {
	d := NewDocument(map[string]string{url: html})
	if err := d.load(url); err != nil {
		return nil, err
	}
	return d, nil
}

// Navigate loads the snapshot registered for url.
// Returns ENOTFOUND if no snapshot is registered.
func (d *Document) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.closed {
		return profiled.Errorf(profiled.EINVALID, "document closed")
	}
	return d.load(url)
}

func (d *Document) load(url string) error {
	html, ok := d.pages[url]
	if !ok {
		// Tolerate a missing or extra trailing slash.
		alt := strings.TrimSuffix(url, "/")
		if alt == url {
			alt = url + "/"
		}
		if html, ok = d.pages[alt]; !ok {
			return profiled.Errorf(profiled.ENOTFOUND, "no snapshot for %q", url)
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return profiled.Errorf(profiled.EINVALID, "failed to parse HTML: %v", err)
	}

	d.doc = doc
	d.url = url
	return nil
}

// URL returns the address of the loaded snapshot.
func (d *Document) URL() (string, error) {
	if d.doc == nil {
		return "", profiled.Errorf(profiled.ENOTFOUND, "no page loaded")
	}
	return d.url, nil
}

// Find returns the elements matching selector in the loaded snapshot.
func (d *Document) Find(selector string) ([]profiled.Node, error) {
	if d.doc == nil {
		return nil, profiled.Errorf(profiled.ENOTFOUND, "no page loaded")
	}
	return wrap(d.doc.Find(selector)), nil
}

// WaitFor returns immediately: ENOTFOUND if nothing matches, nil otherwise.
func (d *Document) WaitFor(ctx context.Context, selector string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.doc == nil || d.doc.Find(selector).Length() == 0 {
		return profiled.Errorf(profiled.ENOTFOUND, "no element matches %q", selector)
	}
	return nil
}

// ScrollBy records the scroll and returns.
func (d *Document) ScrollBy(ctx context.Context, dy int) error {
	d.scrolls++
	return ctx.Err()
}

// ScrollToTop returns immediately.
func (d *Document) ScrollToTop(ctx context.Context) error {
	return ctx.Err()
}

// Settle returns immediately.
func (d *Document) Settle(ctx context.Context) error {
	return ctx.Err()
}

// Scrolls returns how many times ScrollBy was called.
func (d *Document) Scrolls() int {
	return d.scrolls
}

// Close marks the document closed. Close is safe to call multiple times.
func (d *Document) Close() error {
	d.closed = true
	d.doc = nil
	return nil
}

// Closed reports whether Close has been called.
func (d *Document) Closed() bool {
	return d.closed
}

// Node wraps a single-element goquery selection.
type Node struct {
	sel *goquery.Selection
}

func wrap(sel *goquery.Selection) []profiled.Node {
	nodes := make([]profiled.Node, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		nodes = append(nodes, &Node{sel: s})
	})
	return nodes
}

// Find returns the descendants matching selector.
func (n *Node) Find(selector string) ([]profiled.Node, error) {
	return wrap(n.sel.Find(selector)), nil
}

// Text returns the rendered text of the node.
func (n *Node) Text() (string, error) {
	return RenderText(n.sel), nil
}

// Attr returns the attribute value, or ENOTFOUND if it is not set.
func (n *Node) Attr(name string) (string, error) {
	v, ok := n.sel.Attr(name)
	if !ok {
		return "", profiled.Errorf(profiled.ENOTFOUND, "attribute %q not set", name)
	}
	return v, nil
}

// ScrollIntoView returns immediately.
func (n *Node) ScrollIntoView(ctx context.Context) error {
	return ctx.Err()
}

// Click returns immediately. Snapshots already contain expanded content.
func (n *Node) Click(ctx context.Context) error {
	return ctx.Err()
}
