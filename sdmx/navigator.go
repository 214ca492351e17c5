// sdmx/navigator.go
package sdmx

import (
	"strings"

	"github.com/beevik/etree"
)

// QueryStrategy resolves one step of a logical path: all descendants of scope
// whose element name matches localName under this strategy's rules.
type QueryStrategy func(scope *etree.Element, localName string) []*etree.Element

// Navigator resolves logical paths like "ConceptIdentity/Ref" against a
// parsed SDMX-ML tree. Strategies are tried in order until one yields a
// non-empty result, so provider quirks (different namespace prefixes, no
// prefix at all) are handled by adding strategies, not by touching the
// extractors. Absence is never an error here; empty results are returned
// as-is and the caller decides whether that is fatal.
type Navigator struct {
	strategies []QueryStrategy
}

// Standard SDMX-ML structure namespace prefixes, plus the short variants some
// agencies declare instead.
var defaultStructurePrefixes = []string{"structure", "str", "common", "com"}

// NewNavigator builds a navigator that first matches elements under the given
// namespace prefixes and then falls back to a namespace-agnostic local-name
// match. With no prefixes given the standard SDMX set is used.
func NewNavigator(prefixes ...string) *Navigator {
	if len(prefixes) == 0 {
		prefixes = defaultStructurePrefixes
	}
	return &Navigator{
		strategies: []QueryStrategy{
			prefixedStrategy(prefixes),
			localNameStrategy,
		},
	}
}

// defaultNavigator serves the package-level extraction functions. Overridden
// at startup via SetStructurePrefixes when config carries a custom list.
var defaultNavigator = NewNavigator()

// SetStructurePrefixes replaces the namespace prefixes the package-level
// extraction functions use. Call once during startup, before extraction.
func SetStructurePrefixes(prefixes []string) {
	defaultNavigator = NewNavigator(prefixes...)
}

// prefixedStrategy matches descendants whose namespace prefix is one of the
// configured prefixes and whose local name matches exactly.
func prefixedStrategy(prefixes []string) QueryStrategy {
	allowed := make(map[string]bool, len(prefixes))
	for _, p := range prefixes {
		allowed[p] = true
	}
	return func(scope *etree.Element, localName string) []*etree.Element {
		return findDescendants(scope, func(el *etree.Element) bool {
			return el.Tag == localName && allowed[el.Space]
		})
	}
}

// localNameStrategy matches on local name alone, regardless of how (or
// whether) the provider declared the namespace.
func localNameStrategy(scope *etree.Element, localName string) []*etree.Element {
	return findDescendants(scope, func(el *etree.Element) bool {
		return el.Tag == localName
	})
}

func findDescendants(scope *etree.Element, match func(*etree.Element) bool) []*etree.Element {
	var found []*etree.Element
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if match(child) {
				found = append(found, child)
			}
			walk(child)
		}
	}
	walk(scope)
	return found
}

// FindAll returns every descendant of scope matching the logical path.
// Each path segment is a local element name; segments are resolved in order,
// each scoped to the matches of the previous one.
func (n *Navigator) FindAll(scope *etree.Element, path string) []*etree.Element {
	if scope == nil {
		return nil
	}
	segments := strings.Split(path, "/")
	for _, strategy := range n.strategies {
		matches := resolvePath(scope, segments, strategy)
		if len(matches) > 0 {
			return matches
		}
	}
	return nil
}

// FindFirst returns the first match for the logical path, or nil.
func (n *Navigator) FindFirst(scope *etree.Element, path string) *etree.Element {
	matches := n.FindAll(scope, path)
	if len(matches) == 0 {
		return nil
	}
	return matches[0]
}

func resolvePath(scope *etree.Element, segments []string, strategy QueryStrategy) []*etree.Element {
	current := []*etree.Element{scope}
	for _, segment := range segments {
		var next []*etree.Element
		for _, el := range current {
			next = append(next, strategy(el, segment)...)
		}
		if len(next) == 0 {
			return nil
		}
		current = next
	}
	return current
}

// Attr looks up an attribute by local name. The bool reports presence, so
// absence never has to be spelled as a thrown error or a magic empty string.
func Attr(el *etree.Element, name string) (string, bool) {
	if el == nil {
		return "", false
	}
	for _, a := range el.Attr {
		if a.Key == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrDefault returns the attribute value or fallback when absent.
func AttrDefault(el *etree.Element, name, fallback string) string {
	if v, ok := Attr(el, name); ok {
		return v
	}
	return fallback
}

// ChildText returns the trimmed text of the first match for path under scope,
// or "" when there is no match.
func (n *Navigator) ChildText(scope *etree.Element, path string) string {
	el := n.FindFirst(scope, path)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}
