package locator

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Find exactly one descendant element by tag and attribute predicates
- Enumerate every matching descendant in document order
- Read text and attributes of located nodes

Search is depth-first in document order and the first match wins.
The node passed in is never a candidate itself, only its descendants.
A failed Locate is always explicit: it returns *LocateError, never nil.
*/

// Locate returns the first descendant of node with the given tag whose
// attributes satisfy every predicate.
func Locate(node *html.Node, tag string, predicates ...Predicate) (*html.Node, error) {
	var found *html.Node
	walk(node, func(n *html.Node) bool {
		if matches(n, tag, predicates) {
			found = n
			return false
		}
		return true
	})
	if found == nil {
		return nil, &LocateError{
			Message:   fmt.Sprintf("no <%s> matching %q", tag, describe(predicates)),
			Retryable: false,
			Cause:     ErrCauseTagNotFound,
			Tag:       tag,
			Predicate: describe(predicates),
		}
	}
	return found, nil
}

// FindAll returns every descendant of node matching tag and predicates,
// in document order. An empty result is not an error.
func FindAll(node *html.Node, tag string, predicates ...Predicate) []*html.Node {
	var out []*html.Node
	walk(node, func(n *html.Node) bool {
		if matches(n, tag, predicates) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Text returns the concatenated text of node and its descendants.
func Text(node *html.Node) string {
	if node == nil {
		return ""
	}
	return goquery.NewDocumentFromNode(node).Text()
}

// Attr returns the value of attribute key on node.
func Attr(node *html.Node, key string) (string, bool) {
	if node == nil {
		return "", false
	}
	for _, a := range node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func matches(n *html.Node, tag string, predicates []Predicate) bool {
	if n.Type != html.ElementNode || n.Data != tag {
		return false
	}
	for _, p := range predicates {
		if !p.Match(n) {
			return false
		}
	}
	return true
}

// walk visits the descendants of root in document order until visit
// returns false.
func walk(root *html.Node, visit func(*html.Node) bool) {
	if root == nil {
		return
	}
	var rec func(*html.Node) bool
	rec = func(n *html.Node) bool {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if !visit(c) {
				return false
			}
			if !rec(c) {
				return false
			}
		}
		return true
	}
	rec(root)
}
