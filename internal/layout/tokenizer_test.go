package layout

import "testing"

func TestTokenizeRow(t *testing.T) {
	toks := tokenizeRow(`q w \s{shift:1.5} \s{spacer} \s{backspace} é`)
	want := []token{
		{kind: tokenLiteral, text: "q"},
		{kind: tokenLiteral, text: "w"},
		{kind: tokenSpecial, name: "shift", width: 1.5},
		{kind: tokenSpacer, name: "spacer"},
		{kind: tokenSpecial, name: "backspace"},
		{kind: tokenLiteral, text: "é"},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i := range want {
		if toks[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, toks[i], want[i])
		}
	}
}

func TestTokenizeRowMalformedEscape(t *testing.T) {
	toks := tokenizeRow(`\s{shift \s{}`)
	for _, tok := range toks {
		if tok.kind != tokenLiteral {
			t.Fatalf("malformed escape should degrade to literal, got %+v", tok)
		}
	}
}

func TestTokenizeRowSpacerWidth(t *testing.T) {
	toks := tokenizeRow(`\s{spacer:0.5}`)
	if len(toks) != 1 || toks[0].kind != tokenSpacer || toks[0].width != 0.5 {
		t.Fatalf("got %+v", toks)
	}
}

func TestDecodeToken(t *testing.T) {
	cases := []struct{ in, want string }{
		{"a", "a"},
		{`\u{0}`, ""},
		{`\u{2019}`, "’"},
		{`x\u{301}y`, "x́y"},
		{`\u{zz}`, `\u{zz}`},
		{`\u{30`, `\u{30`},
	}
	for _, tc := range cases {
		if got := decodeToken(tc.in); got != tc.want {
			t.Errorf("decodeToken(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
