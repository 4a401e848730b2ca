package bundler

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var classSelector = regexp.MustCompile(`\.(-?[_a-zA-Z][_a-zA-Z0-9-]*)`)

// CamelCase converts a CSS class name to camelCase: "nav-bar_item" becomes
// "navBarItem". Separators are dashes and underscores; the first letter is
// lowercased.
func CamelCase(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(parts) == 0 {
		return name
	}

	var b strings.Builder
	b.Grow(len(name))
	for i, part := range parts {
		r, size := utf8.DecodeRuneInString(part)
		if i == 0 {
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(unicode.ToUpper(r))
		}
		b.WriteString(part[size:])
	}
	return b.String()
}

// CamelCaseSelectors rewrites the class names in the selectors of a
// stylesheet to camelCase. Declarations, at-rule preludes and comments are
// left untouched.
func CamelCaseSelectors(css string) string {
	var (
		out       strings.Builder
		prelude   strings.Builder
		inComment bool
		quote     byte
	)
	out.Grow(len(css))

	flushAs := func(selector bool) {
		p := prelude.String()
		if selector && !strings.HasPrefix(strings.TrimSpace(p), "@") {
			p = classSelector.ReplaceAllStringFunc(p, func(m string) string {
				return "." + CamelCase(m[1:])
			})
		}
		out.WriteString(p)
		prelude.Reset()
	}

	for i := 0; i < len(css); i++ {
		c := css[i]

		switch {
		case inComment:
			prelude.WriteByte(c)
			if c == '/' && i > 0 && css[i-1] == '*' {
				inComment = false
			}
			continue
		case quote != 0:
			prelude.WriteByte(c)
			if c == '\\' && i+1 < len(css) {
				i++
				prelude.WriteByte(css[i])
			} else if c == quote {
				quote = 0
			}
			continue
		}

		switch c {
		case '/':
			if i+1 < len(css) && css[i+1] == '*' {
				inComment = true
				prelude.WriteByte(c)
				i++
				c = css[i]
			}
			prelude.WriteByte(c)
		case '"', '\'':
			quote = c
			prelude.WriteByte(c)
		case '{':
			flushAs(true)
			out.WriteByte(c)
		case '}', ';':
			flushAs(false)
			out.WriteByte(c)
		default:
			prelude.WriteByte(c)
		}
	}
	flushAs(false)

	return out.String()
}
