package mock

import (
	"context"

	"github.com/fwojciec/profiled"
)

var (
	_ profiled.Document = (*Document)(nil)
	_ profiled.Node     = (*Node)(nil)
)

// Document is a mock implementation of profiled.Document.
type Document struct {
	NavigateFn    func(ctx context.Context, url string) error
	URLFn         func() (string, error)
	FindFn        func(selector string) ([]profiled.Node, error)
	WaitForFn     func(ctx context.Context, selector string) error
	ScrollByFn    func(ctx context.Context, dy int) error
	ScrollToTopFn func(ctx context.Context) error
	SettleFn      func(ctx context.Context) error
	CloseFn       func() error
}

func (d *Document) Navigate(ctx context.Context, url string) error {
	return d.NavigateFn(ctx, url)
}

func (d *Document) URL() (string, error) {
	return d.URLFn()
}

func (d *Document) Find(selector string) ([]profiled.Node, error) {
	return d.FindFn(selector)
}

func (d *Document) WaitFor(ctx context.Context, selector string) error {
	return d.WaitForFn(ctx, selector)
}

func (d *Document) ScrollBy(ctx context.Context, dy int) error {
	return d.ScrollByFn(ctx, dy)
}

func (d *Document) ScrollToTop(ctx context.Context) error {
	return d.ScrollToTopFn(ctx)
}

func (d *Document) Settle(ctx context.Context) error {
	return d.SettleFn(ctx)
}

func (d *Document) Close() error {
	return d.CloseFn()
}

// Node is a mock implementation of profiled.Node.
type Node struct {
	FindFn           func(selector string) ([]profiled.Node, error)
	TextFn           func() (string, error)
	AttrFn           func(name string) (string, error)
	ScrollIntoViewFn func(ctx context.Context) error
	ClickFn          func(ctx context.Context) error
}

func (n *Node) Find(selector string) ([]profiled.Node, error) {
	return n.FindFn(selector)
}

func (n *Node) Text() (string, error) {
	return n.TextFn()
}

func (n *Node) Attr(name string) (string, error) {
	return n.AttrFn(name)
}

func (n *Node) ScrollIntoView(ctx context.Context) error {
	return n.ScrollIntoViewFn(ctx)
}

func (n *Node) Click(ctx context.Context) error {
	return n.ClickFn(ctx)
}
