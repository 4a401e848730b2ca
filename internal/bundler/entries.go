package bundler

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// IndexHTML is the HTML entry of the project, relative to the root.
const IndexHTML = "index.html"

// ReadIndex reads the project's index.html.
func ReadIndex(root string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(root, IndexHTML))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", IndexHTML, err)
	}
	return data, nil
}

// EntryPoints returns the local module scripts of an HTML document as
// root-relative slash paths, in document order, without duplicates.
// Remote scripts are ignored.
func EntryPoints(src []byte) ([]string, error) {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var (
		entries []string
		seen    = map[string]struct{}{}
	)
	walk(doc, func(n *html.Node) {
		src, ok := moduleScriptSrc(n)
		if !ok {
			return
		}
		entry, ok := localEntry(src)
		if !ok {
			return
		}
		if _, dup := seen[entry]; dup {
			return
		}
		seen[entry] = struct{}{}
		entries = append(entries, entry)
	})

	if len(entries) == 0 {
		return nil, ErrNoEntryPoints
	}
	return entries, nil
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func moduleScriptSrc(n *html.Node) (string, bool) {
	if n.Type != html.ElementNode || n.DataAtom != atom.Script {
		return "", false
	}
	if typ, _ := attr(n, "type"); typ != "module" {
		return "", false
	}
	return attr(n, "src")
}

// localEntry turns a script src into a root-relative path. Absolute URLs
// with a host are not local.
func localEntry(src string) (string, bool) {
	u, err := url.Parse(src)
	if err != nil || u.Scheme != "" || u.Host != "" || u.Path == "" {
		return "", false
	}
	clean := path.Clean("/" + u.Path)
	return strings.TrimPrefix(clean, "/"), true
}
