package extract

import "github.com/fwojciec/profiled"

// finder is satisfied by both profiled.Document and profiled.Node.
type finder interface {
	Find(selector string) ([]profiled.Node, error)
}

// first returns the first match of selector, or ENOTFOUND.
func first(f finder, selector string) (profiled.Node, error) {
	nodes, err := f.Find(selector)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, profiled.Errorf(profiled.ENOTFOUND, "no element matches %q", selector)
	}
	return nodes[0], nil
}

// nodeText returns the normalized rendered text of n.
func nodeText(n profiled.Node) (string, error) {
	raw, err := n.Text()
	if err != nil {
		return "", err
	}
	return profiled.NormalizeText(raw), nil
}

// VisibleText returns the normalized text of the first descendant of n that
// matches the display marker. When no such descendant can be read, it falls
// back to the text of n itself, which may still carry the screen-reader copy.
// Returns "" when nothing readable is found.
func VisibleText(n profiled.Node, marker string) string {
	if m, err := first(n, marker); err == nil {
		if text, err := nodeText(m); err == nil {
			return text
		}
	}
	text, err := nodeText(n)
	if err != nil {
		return ""
	}
	return text
}

// lookup resolves a selector against f and returns the visible text of the
// first match. Returns ENOTFOUND when nothing matches or the text is empty.
func lookup(f finder, selector, marker string) (string, error) {
	n, err := first(f, selector)
	if err != nil {
		return "", err
	}
	text := VisibleText(n, marker)
	if text == "" {
		return "", profiled.Errorf(profiled.ENOTFOUND, "no text at %q", selector)
	}
	return text, nil
}
