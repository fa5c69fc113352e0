package token_test

import (
	"testing"

	"redux/internal/token"
)

func TestKeywordsRoundTrip(t *testing.T) {
	words := []string{"if", "elif", "else", "while", "for", "end", "and", "or", "not",
		"def", "return", "break", "bitfield", "enum", "require", "query", "where"}
	for _, w := range words {
		k, ok := token.LookupKeyword(w)
		if !ok {
			t.Fatalf("%q should be a keyword", w)
		}
		if !(token.Token{Kind: k}).IsKeyword() {
			t.Fatalf("%v must report IsKeyword", k)
		}
	}
	if _, ok := token.LookupKeyword("End"); ok {
		t.Fatalf("keywords are case sensitive")
	}
}

func TestClassification(t *testing.T) {
	if !(token.Token{Kind: token.CodeLit}).IsLiteral() {
		t.Fatalf("code literal is a literal")
	}
	if (token.Token{Kind: token.Ident}).IsLiteral() {
		t.Fatalf("ident is not a literal")
	}
	for _, k := range []token.Kind{token.Plus, token.Arrow, token.ColonColon, token.RBracket} {
		if !(token.Token{Kind: k}).IsPunctOrOp() {
			t.Fatalf("%v should be punct", k)
		}
	}
	if (token.Token{Kind: token.KwWhere}).IsPunctOrOp() {
		t.Fatalf("keyword is not punct")
	}
}

func TestKindString(t *testing.T) {
	if token.StarStar.String() != "StarStar" {
		t.Fatalf("unexpected name %q", token.StarStar.String())
	}
	if token.Kind(250).String() != "Kind(?)" {
		t.Fatalf("out of range kind must not panic")
	}
}
