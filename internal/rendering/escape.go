package rendering

import (
	"strings"
	"unicode"
)

var latexReplacements = map[rune]string{
	'\\': `\textbackslash{}`,
	'{':  `\{`,
	'}':  `\}`,
	'$':  `\$`,
	'&':  `\&`,
	'%':  `\%`,
	'#':  `\#`,
	'^':  `\textasciicircum{}`,
	'_':  `\_`,
	'~':  `\textasciitilde{}`,
	'<':  `\textless{}`,
	'>':  `\textgreater{}`,
	'|':  `\textbar{}`,
	'§':  `\S{}`,
	'¶':  `\P{}`,
}

// EscapeLaTeX makes extracted document text safe inside a single \item or
// heading. Special characters are escaped and every run of whitespace,
// line breaks included, becomes one space, since a blank line would end
// the list item early.
func EscapeLaTeX(text string) string {
	var b strings.Builder
	b.Grow(len(text) * 2)

	space := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		if repl, ok := latexReplacements[r]; ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
