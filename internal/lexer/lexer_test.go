package lexer_test

import (
	"testing"

	"redux/internal/diag"
	"redux/internal/lexer"
	"redux/internal/source"
	"redux/internal/token"
)

func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.redux", []byte(input))
	bag := diag.NewBag(100)
	lx := lexer.New(fs.Get(fileID), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, t := range toks {
		if t.Kind != token.EOF {
			out = append(out, t.Kind)
		}
	}
	return out
}

func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, bag := makeTestLexer(input)
	toks := lx.All()
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %v", input, bag.Items())
	}
	got := kinds(toks)
	if len(got) != len(expected) {
		t.Fatalf("input %q: expected %d tokens %v, got %v", input, len(expected), expected, got)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Fatalf("input %q token %d: expected %v, got %v", input, i, expected[i], got[i])
		}
	}
	return toks
}

func TestKeywordsAndIdents(t *testing.T) {
	expectTokens(t, "if elif else end while for def return break",
		token.KwIf, token.KwElif, token.KwElse, token.KwEnd, token.KwWhile,
		token.KwFor, token.KwDef, token.KwReturn, token.KwBreak)
	toks := expectTokens(t, "endx _tmp x1", token.Ident, token.Ident, token.Ident)
	if toks[0].Text != "endx" {
		t.Fatalf("unexpected text %q", toks[0].Text)
	}
}

func TestOperators(t *testing.T) {
	expectTokens(t, "** * << < <= >> > >= == = != -> - :: : ~ | ^ & %",
		token.StarStar, token.Star, token.Shl, token.Lt, token.LtEq, token.Shr,
		token.Gt, token.GtEq, token.EqEq, token.Assign, token.BangEq, token.Arrow,
		token.Minus, token.ColonColon, token.Colon, token.Tilde, token.Pipe,
		token.Caret, token.Amp, token.Percent)
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		in   string
		kind token.Kind
	}{
		{"42", token.IntLit},
		{"0x1F", token.IntLit},
		{"1.5", token.FloatLit},
		{"1e3", token.FloatLit},
		{"2.5E-2", token.FloatLit},
	}
	for _, tc := range cases {
		toks := expectTokens(t, tc.in, tc.kind)
		if toks[0].Text != tc.in {
			t.Fatalf("%q: text %q", tc.in, toks[0].Text)
		}
	}
	// member access on a number-like prefix keeps the dot
	expectTokens(t, "a.x", token.Ident, token.Dot, token.Ident)
	expectTokens(t, "1.x", token.IntLit, token.Dot, token.Ident)
}

func TestBadNumber(t *testing.T) {
	lx, bag := makeTestLexer("12ab 1e+")
	lx.All()
	if bag.Len() != 2 {
		t.Fatalf("expected 2 diagnostics, got %v", bag.Items())
	}
	for _, d := range bag.Items() {
		if d.Code != diag.LexBadNumber {
			t.Fatalf("unexpected code %s", d.Code.ID())
		}
	}
}

func TestStringEscapes(t *testing.T) {
	toks := expectTokens(t, `"a\tb\n\"q\" \x41" 'x'`, token.StringLit, token.StringLit)
	if toks[0].Text != "a\tb\n\"q\" A" {
		t.Fatalf("unexpected decoded text %q", toks[0].Text)
	}
	if toks[1].Text != "x" {
		t.Fatalf("single quotes: got %q", toks[1].Text)
	}
}

func TestStringNFC(t *testing.T) {
	// "e" + combining acute accent composes into U+00E9
	toks := expectTokens(t, "\"e\u0301\"", token.StringLit)
	if toks[0].Text != "\u00e9" {
		t.Fatalf("expected NFC composed text, got %q", toks[0].Text)
	}
}

func TestUnterminated(t *testing.T) {
	cases := map[string]diag.Code{
		`"abc`:      diag.LexUnterminatedString,
		"\"ab\ncd\"": diag.LexUnterminatedString,
		"`PERFORM":  diag.LexUnterminatedCode,
		`"\q"`:      diag.LexBadEscape,
		"a ! b":     diag.LexUnknownChar,
	}
	for in, code := range cases {
		lx, bag := makeTestLexer(in)
		lx.All()
		if bag.Len() == 0 || bag.Items()[0].Code != code {
			t.Fatalf("%q: expected %s, got %v", in, code.ID(), bag.Items())
		}
	}
}

func TestCodeLiteralAndComments(t *testing.T) {
	toks := expectTokens(t, "# leading comment\n`PERFORM GET_ACHRONAL_FIELD num;` # trailing\nbreak",
		token.CodeLit, token.KwBreak)
	if toks[0].Text != "PERFORM GET_ACHRONAL_FIELD num;" {
		t.Fatalf("unexpected code text %q", toks[0].Text)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek: %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next after peek: %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second: %q", n.Text)
	}
	if lx.Next().Kind != token.EOF || lx.Next().Kind != token.EOF {
		t.Fatalf("EOF must be sticky")
	}
}

func TestSpans(t *testing.T) {
	toks := expectTokens(t, "ab  <=", token.Ident, token.LtEq)
	if toks[1].Span.Start != 4 || toks[1].Span.End != 6 {
		t.Fatalf("unexpected span %v", toks[1].Span)
	}
}
