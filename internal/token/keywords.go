package token

var keywords = map[string]Kind{
	"if":       KwIf,
	"elif":     KwElif,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"end":      KwEnd,
	"and":      KwAnd,
	"or":       KwOr,
	"not":      KwNot,
	"def":      KwDef,
	"return":   KwReturn,
	"break":    KwBreak,
	"bitfield": KwBitfield,
	"enum":     KwEnum,
	"require":  KwRequire,
	"query":    KwQuery,
	"where":    KwWhere,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
