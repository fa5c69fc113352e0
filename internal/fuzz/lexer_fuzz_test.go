package fuzztests

import (
	"testing"

	"redux/internal/diag"
	"redux/internal/lexer"
	"redux/internal/source"
	"redux/internal/token"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clip(input)
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.redux", input))

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		// каждый токен продвигает курсор, поэтому цикл конечен
		for i := 0; i <= len(input)+1; i++ {
			if lx.Next().Kind == token.EOF {
				return
			}
		}
		t.Fatalf("lexer did not reach EOF for %q", input)
	})
}
