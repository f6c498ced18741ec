package layout

import (
	"strconv"
	"strings"
)

// tokenKind tags the variants a mobile layer token can take.
type tokenKind uint8

const (
	tokenLiteral tokenKind = iota
	tokenSpecial
	tokenSpacer
)

// token is one parsed cell of a mobile layer row. Literal tokens carry
// text; special and spacer tokens carry a name and an optional width in
// key units (0 means the default unit width).
type token struct {
	kind  tokenKind
	text  string
	name  string
	width float64
}

// tokenizeRow splits one mobile layer line into tagged tokens. Escape
// tokens take the form \s{name} or \s{name:width}. Anything that does
// not parse as an escape is treated as a literal, so a malformed escape
// degrades to visible text rather than failing the transform.
func tokenizeRow(line string) []token {
	fields := strings.Fields(line)
	toks := make([]token, 0, len(fields))
	for _, f := range fields {
		if inner, ok := cutEscape(f); ok {
			name, width := inner, 0.0
			if i := strings.IndexByte(inner, ':'); i >= 0 {
				name = inner[:i]
				if w, err := strconv.ParseFloat(inner[i+1:], 64); err == nil && w > 0 {
					width = w
				}
			}
			if name == "spacer" {
				toks = append(toks, token{kind: tokenSpacer, name: name, width: width})
			} else {
				toks = append(toks, token{kind: tokenSpecial, name: name, width: width})
			}
			continue
		}
		toks = append(toks, token{kind: tokenLiteral, text: decodeToken(f)})
	}
	return toks
}

// cutEscape strips the \s{...} wrapper, returning the inner text.
func cutEscape(f string) (string, bool) {
	if strings.HasPrefix(f, `\s{`) && strings.HasSuffix(f, "}") && len(f) > 4 {
		return f[3 : len(f)-1], true
	}
	return "", false
}

// decodeToken resolves \u{XXXX} escapes in a layer cell. \u{0} denotes
// an intentionally empty cell. Unrecognized escapes pass through
// verbatim.
func decodeToken(tok string) string {
	if !strings.Contains(tok, `\u{`) {
		return tok
	}
	var b strings.Builder
	for {
		i := strings.Index(tok, `\u{`)
		if i < 0 {
			b.WriteString(tok)
			break
		}
		b.WriteString(tok[:i])
		rest := tok[i+3:]
		j := strings.IndexByte(rest, '}')
		if j < 0 {
			b.WriteString(tok[i:])
			break
		}
		cp, err := strconv.ParseUint(rest[:j], 16, 32)
		if err != nil {
			b.WriteString(tok[i : i+3+j+1])
		} else if cp != 0 {
			b.WriteRune(rune(cp))
		}
		tok = rest[j+1:]
	}
	return b.String()
}
