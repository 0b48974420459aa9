// Package rod provides a live implementation of profiled.Document backed by
// a Chrome page driven through go-rod.
package rod

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/profiled"
	"github.com/go-rod/rod"
)

// DefaultLoadTimeout bounds the wait for the load event after navigation.
const DefaultLoadTimeout = 20 * time.Second

// DefaultStableWindow is how long the DOM must stay unchanged to count as settled.
const DefaultStableWindow = 300 * time.Millisecond

// Ensure Document implements profiled.Document at compile time.
var _ profiled.Document = (*Document)(nil)

// Document drives one page inside its own browser context.
// A Document must not be used by more than one extraction at a time.
type Document struct {
	page      *rod.Page
	incognito *rod.Browser

	loadTimeout  time.Duration
	stableWindow time.Duration

	release   func()
	closeOnce sync.Once
	closeErr  error
}

// Navigate loads url and waits, bounded by the load timeout, for the load
// event. A page that has not finished loading when the bound expires is
// left as is and considered navigated.
func (d *Document) Navigate(ctx context.Context, url string) error {
	if err := d.page.Context(ctx).Navigate(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}

	loadCtx, cancel := context.WithTimeout(ctx, d.loadTimeout)
	defer cancel()
	if err := d.page.Context(loadCtx).WaitLoad(); err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return nil
		}
		return fmt.Errorf("waiting for %s to load: %w", url, err)
	}
	return nil
}

// URL returns the address of the current page.
func (d *Document) URL() (string, error) {
	info, err := d.page.Info()
	if err != nil {
		return "", fmt.Errorf("reading page info: %w", err)
	}
	return info.URL, nil
}

// Find returns the elements currently matching selector without waiting.
func (d *Document) Find(selector string) ([]profiled.Node, error) {
	els, err := d.page.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", selector, err)
	}
	return wrap(els), nil
}

// WaitFor blocks until selector matches or ctx ends.
func (d *Document) WaitFor(ctx context.Context, selector string) error {
	_, err := d.page.Context(ctx).Element(selector)
	return err
}

// ScrollBy scrolls the window down by dy pixels.
func (d *Document) ScrollBy(ctx context.Context, dy int) error {
	_, err := d.page.Context(ctx).Eval(`(dy) => window.scrollBy(0, dy)`, dy)
	return err
}

// ScrollToTop scrolls the window back to the top of the page.
func (d *Document) ScrollToTop(ctx context.Context) error {
	_, err := d.page.Context(ctx).Eval(`() => window.scrollTo(0, 0)`)
	return err
}

// Settle blocks until the DOM has been unchanged for the stable window or
// ctx ends.
func (d *Document) Settle(ctx context.Context) error {
	return d.page.Context(ctx).WaitDOMStable(d.stableWindow, 0)
}

// Close closes the page, disposes its browser context and releases the
// browser lease. Close is safe to call multiple times.
func (d *Document) Close() error {
	d.closeOnce.Do(func() {
		d.closeErr = errors.Join(d.page.Close(), d.incognito.Close())
		if d.release != nil {
			d.release()
		}
	})
	return d.closeErr
}

// Node wraps a live page element.
type Node struct {
	el *rod.Element
}

func wrap(els rod.Elements) []profiled.Node {
	nodes := make([]profiled.Node, 0, len(els))
	for _, el := range els {
		nodes = append(nodes, &Node{el: el})
	}
	return nodes
}

// Find returns the descendants currently matching selector without waiting.
func (n *Node) Find(selector string) ([]profiled.Node, error) {
	els, err := n.el.Elements(selector)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", selector, err)
	}
	return wrap(els), nil
}

// Text returns the rendered text of the element.
func (n *Node) Text() (string, error) {
	return n.el.Text()
}

// Attr returns the attribute value, or ENOTFOUND if it is not set.
func (n *Node) Attr(name string) (string, error) {
	v, err := n.el.Attribute(name)
	if err != nil {
		return "", err
	}
	if v == nil {
		return "", profiled.Errorf(profiled.ENOTFOUND, "attribute %q not set", name)
	}
	return *v, nil
}

// ScrollIntoView scrolls the element into the viewport.
func (n *Node) ScrollIntoView(ctx context.Context) error {
	return n.el.Context(ctx).ScrollIntoView()
}

// Click activates the element through the DOM, which works for controls
// that are covered or outside the viewport.
func (n *Node) Click(ctx context.Context) error {
	_, err := n.el.Context(ctx).Eval(`() => this.click()`)
	return err
}
