// Package dedupe collapses repeated inline styles into shared classes.
//
// A Deduper rewrites a copy of a content subtree: every element carrying a
// style attribute loses it and gains a generated class, and elements whose
// styles normalize to the same key share one class. The matching stylesheet
// is available from CSS once the traversal is done.
package dedupe

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/stylepipe/core"
	"golang.org/x/net/html"
)

// DefaultPrefix is used when New is given an empty prefix.
const DefaultPrefix = "s"

// keySeparator joins normalized declarations.
const keySeparator = "; "

// Normalize returns the order-independent key for an inline style value:
// declarations are split on `;`, trimmed, empties dropped, sorted and
// rejoined. Whitespace around the property colon is collapsed and property
// names are lower-cased. Normalize(Normalize(s)) == Normalize(s).
func Normalize(style string) string {
	parts := strings.Split(style, ";")
	decls := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))

	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if prop, val, ok := strings.Cut(p, ":"); ok {
			p = strings.ToLower(strings.TrimSpace(prop)) + ": " + strings.TrimSpace(val)
		}
		if seen[p] {
			continue
		}
		seen[p] = true
		decls = append(decls, p)
	}

	sort.Strings(decls)
	return strings.Join(decls, keySeparator)
}

// Deduper is the accumulator for one pipeline run. It is not safe for
// concurrent use.
type Deduper struct {
	prefix  string
	counter int
	byKey   map[string]string
	byName  map[string]string
	classes []core.StyleClass
}

// New creates a Deduper minting class names as "<prefix>-<n>".
func New(prefix string) *Deduper {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Deduper{
		prefix: prefix,
		byKey:  make(map[string]string),
		byName: make(map[string]string),
	}
}

// Result is the outcome of rewriting one subtree.
type Result struct {
	// Root is the rewritten copy; the input selection is left untouched.
	Root *goquery.Selection
	// Processed counts elements that received a generated class.
	Processed int
}

// Rewrite copies sel and rewrites the copy, walking each root depth-first in
// pre-order (parent before children, siblings in document order).
func (d *Deduper) Rewrite(sel *goquery.Selection) *Result {
	clone := sel.Clone()
	res := &Result{Root: clone}

	for _, root := range clone.Nodes {
		d.walk(root, res)
	}
	return res
}

func (d *Deduper) walk(n *html.Node, res *Result) {
	if n.Type == html.ElementNode {
		if style, ok := attr(n, "style"); ok {
			removeAttr(n, "style")
			if name := d.classFor(style); name != "" {
				addClass(n, name)
				res.Processed++
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.walk(c, res)
	}
}

// classFor returns the class for style, minting one when the key is new.
// Empty keys return "" but still advance the counter.
func (d *Deduper) classFor(style string) string {
	key := Normalize(style)
	if key == "" {
		d.counter++
		return ""
	}
	if name, ok := d.byKey[key]; ok {
		return name
	}

	d.counter++
	name := fmt.Sprintf("%s-%d", d.prefix, d.counter)
	d.byKey[key] = name
	d.byName[name] = key
	d.classes = append(d.classes, core.StyleClass{Name: name, Key: key})
	return name
}

// Lookup returns the normalized declarations behind a generated class.
func (d *Deduper) Lookup(name string) (string, bool) {
	key, ok := d.byName[name]
	return key, ok
}

// Classes returns the generated classes in minting order.
func (d *Deduper) Classes() []core.StyleClass {
	out := make([]core.StyleClass, len(d.classes))
	copy(out, d.classes)
	return out
}

// CSS renders one rule per generated class. Every declaration block ends
// with a semicolon.
func (d *Deduper) CSS() string {
	var b strings.Builder
	for i, c := range d.classes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, ".%s { %s; }", c.Name, c.Key)
	}
	return b.String()
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

func removeAttr(n *html.Node, key string) {
	kept := make([]html.Attribute, 0, len(n.Attr))
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, key) {
			continue
		}
		kept = append(kept, a)
	}
	n.Attr = kept
}

// addClass appends name to the class attribute unless it is already present.
func addClass(n *html.Node, name string) {
	for i, a := range n.Attr {
		if a.Namespace != "" || !strings.EqualFold(a.Key, "class") {
			continue
		}
		fields := strings.Fields(a.Val)
		for _, f := range fields {
			if f == name {
				return
			}
		}
		n.Attr[i].Val = strings.Join(append(fields, name), " ")
		return
	}
	n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: name})
}
