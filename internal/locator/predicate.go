package locator

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Predicate constrains the attributes of a candidate element.
// The set is closed: use AttrEquals, AttrMatches or HasClass.
type Predicate interface {
	Match(n *html.Node) bool
	String() string
}

type attrEquals struct {
	key   string
	value string
}

// AttrEquals matches elements whose attribute key equals value exactly.
func AttrEquals(key, value string) Predicate {
	return attrEquals{key: key, value: value}
}

func (p attrEquals) Match(n *html.Node) bool {
	v, ok := Attr(n, p.key)
	return ok && v == p.value
}

func (p attrEquals) String() string {
	return fmt.Sprintf("[%s=%q]", p.key, p.value)
}

type attrMatches struct {
	key string
	re  *regexp.Regexp
}

// AttrMatches matches elements whose attribute key contains a match of re.
func AttrMatches(key string, re *regexp.Regexp) Predicate {
	return attrMatches{key: key, re: re}
}

func (p attrMatches) Match(n *html.Node) bool {
	v, ok := Attr(n, p.key)
	return ok && p.re.MatchString(v)
}

func (p attrMatches) String() string {
	return fmt.Sprintf("[%s~/%s/]", p.key, p.re.String())
}

type hasClass struct {
	tokens []string
}

// HasClass matches elements whose class list contains every token.
func HasClass(tokens ...string) Predicate {
	return hasClass{tokens: tokens}
}

func (p hasClass) Match(n *html.Node) bool {
	v, ok := Attr(n, "class")
	if !ok {
		return len(p.tokens) == 0
	}
	classes := make(map[string]struct{})
	for _, c := range strings.Fields(v) {
		classes[c] = struct{}{}
	}
	for _, t := range p.tokens {
		if _, ok := classes[t]; !ok {
			return false
		}
	}
	return true
}

func (p hasClass) String() string {
	return "." + strings.Join(p.tokens, ".")
}

func describe(predicates []Predicate) string {
	parts := make([]string, 0, len(predicates))
	for _, p := range predicates {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, "")
}
