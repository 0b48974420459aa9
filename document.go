package profiled

import "context"

// Node is one element of a rendered document.
// Lookups that find nothing return an ENOTFOUND error rather than a nil Node.
type Node interface {
	// Find returns the descendants matching a CSS selector, in document order.
	// The node itself is never included.
	Find(selector string) ([]Node, error)

	// Text returns the rendered text of the node, with line breaks between
	// block-level descendants.
	Text() (string, error)

	// Attr returns the value of an attribute.
	// Returns ENOTFOUND if the attribute is not set.
	Attr(name string) (string, error)

	// ScrollIntoView scrolls the node into the viewport.
	ScrollIntoView(ctx context.Context) error

	// Click activates the node as a script-initiated click.
	Click(ctx context.Context) error
}

// Document is an exclusively-owned, navigable view of a rendered page.
// A Document is not safe for concurrent use.
type Document interface {
	// Navigate loads the URL and waits for the load event.
	Navigate(ctx context.Context, url string) error

	// URL returns the address of the currently loaded page.
	URL() (string, error)

	// Find returns the elements matching a CSS selector, in document order.
	Find(selector string) ([]Node, error)

	// WaitFor blocks until an element matches the selector or ctx is done.
	WaitFor(ctx context.Context, selector string) error

	// ScrollBy scrolls the viewport vertically by dy pixels.
	ScrollBy(ctx context.Context, dy int) error

	// ScrollToTop scrolls the viewport back to the top of the page.
	ScrollToTop(ctx context.Context) error

	// Settle blocks until the DOM stops changing or ctx is done.
	Settle(ctx context.Context) error

	// Close releases the document and any session state behind it.
	Close() error
}

// SessionProvider supplies authenticated document contexts.
type SessionProvider interface {
	// Open returns a fresh document context owned by the caller, who must Close it.
	// Returns EUNAUTHORIZED when no session credential is configured.
	Open(ctx context.Context) (Document, error)
}

// TextGenerator is a generative-text service with a text-in, text-out contract.
type TextGenerator interface {
	// Generate returns the model's reply to prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}
