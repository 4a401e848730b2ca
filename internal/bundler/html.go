package bundler

import (
	"bytes"
	"fmt"
	"path"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLOptions controls [TransformHTML].
type HTMLOptions struct {
	// Base is the public URL path the app is served from.
	Base string
	// Replacements maps %KEY% placeholders to their values.
	Replacements map[string]string
	// ClientScript, when set, is injected as a module script into <head>.
	ClientScript string
}

// TransformHTML rewrites index.html for a build result: %KEY% placeholders
// are replaced, entry script sources point at their outputs, the CSS of each
// entry is linked from <head>, and the optional client script is added.
func TransformHTML(src []byte, res *Result, opts HTMLOptions) ([]byte, error) {
	src = ReplacePlaceholders(src, opts.Replacements)

	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	head := findElement(doc, atom.Head)
	var styles []string

	walk(doc, func(n *html.Node) {
		src, ok := moduleScriptSrc(n)
		if !ok {
			return
		}
		entry, ok := localEntry(src)
		if !ok {
			return
		}
		out, ok := res.Entries[entry]
		if !ok {
			return
		}
		setAttr(n, "src", URLPath(opts.Base, out.Script))
		if out.CSS != "" {
			styles = append(styles, URLPath(opts.Base, out.CSS))
		}
	})

	if head != nil {
		for _, href := range styles {
			head.AppendChild(&html.Node{
				Type:     html.ElementNode,
				Data:     "link",
				DataAtom: atom.Link,
				Attr: []html.Attribute{
					{Key: "rel", Val: "stylesheet"},
					{Key: "href", Val: href},
				},
			})
		}
		if opts.ClientScript != "" {
			head.AppendChild(&html.Node{
				Type:     html.ElementNode,
				Data:     "script",
				DataAtom: atom.Script,
				Attr: []html.Attribute{
					{Key: "type", Val: "module"},
					{Key: "src", Val: opts.ClientScript},
				},
			})
		}
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

// ReplacePlaceholders substitutes %KEY% placeholders. Unknown placeholders
// are left as they are.
func ReplacePlaceholders(src []byte, replacements map[string]string) []byte {
	if len(replacements) == 0 {
		return src
	}
	keys := make([]string, 0, len(replacements))
	for k := range replacements {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, replacements[k])
	}
	return []byte(strings.NewReplacer(pairs...).Replace(string(src)))
}

// URLPath joins the public base and an output path.
func URLPath(base, rel string) string {
	if base == "" {
		base = "/"
	}
	return path.Join(base, rel)
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) {
		if found == nil && c.Type == html.ElementNode && c.DataAtom == a {
			found = c
		}
	})
	return found
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
