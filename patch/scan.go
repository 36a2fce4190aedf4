package patch

import (
	"iter"
	"regexp"
)

// tokenPattern matches a flat placeholder: an opening brace and a space, a
// selector free of braces and line breaks, then a space and a closing brace.
var tokenPattern = regexp.MustCompile(`\{ ([^{}\r\n]*?) \}`)

// Token is a placeholder found in template text.
type Token struct {
	// Match is the literal text of the placeholder, braces included.
	Match string
	// Selector is the raw, unparsed text between the braces.
	Selector string
}

// Scan returns an iterator over the placeholders in text, left to right.
// Matches never overlap and never nest.
func Scan(text string) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		rest := text

		for {
			loc := tokenPattern.FindStringSubmatchIndex(rest)
			if loc == nil {
				return
			}

			tok := Token{
				Match:    rest[loc[0]:loc[1]],
				Selector: rest[loc[2]:loc[3]],
			}

			if !yield(tok) {
				return
			}

			rest = rest[loc[1]:]
		}
	}
}
