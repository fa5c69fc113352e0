package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	IntLit
	FloatLit
	StringLit
	// CodeLit is a `backtick` passthrough literal.
	CodeLit

	KwIf
	KwElif
	KwElse
	KwWhile
	KwFor
	KwEnd
	KwAnd
	KwOr
	KwNot
	KwDef
	KwReturn
	KwBreak
	KwBitfield
	KwEnum
	KwRequire
	KwQuery
	KwWhere

	Plus       // +
	Minus      // -
	Star       // *
	StarStar   // **
	Slash      // /
	Percent    // %
	Pipe       // |
	Caret      // ^
	Amp        // &
	Tilde      // ~
	Shl        // <<
	Shr        // >>
	Lt         // <
	LtEq       // <=
	Gt         // >
	GtEq       // >=
	EqEq       // ==
	BangEq     // !=
	Assign     // =
	Comma      // ,
	Semicolon  // ;
	Colon      // :
	ColonColon // ::
	Dot        // .
	Arrow      // ->
	LParen     // (
	RParen     // )
	LBracket   // [
	RBracket   // ]
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	StringLit:  "StringLit",
	CodeLit:    "CodeLit",
	KwIf:       "KwIf",
	KwElif:     "KwElif",
	KwElse:     "KwElse",
	KwWhile:    "KwWhile",
	KwFor:      "KwFor",
	KwEnd:      "KwEnd",
	KwAnd:      "KwAnd",
	KwOr:       "KwOr",
	KwNot:      "KwNot",
	KwDef:      "KwDef",
	KwReturn:   "KwReturn",
	KwBreak:    "KwBreak",
	KwBitfield: "KwBitfield",
	KwEnum:     "KwEnum",
	KwRequire:  "KwRequire",
	KwQuery:    "KwQuery",
	KwWhere:    "KwWhere",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	StarStar:   "StarStar",
	Slash:      "Slash",
	Percent:    "Percent",
	Pipe:       "Pipe",
	Caret:      "Caret",
	Amp:        "Amp",
	Tilde:      "Tilde",
	Shl:        "Shl",
	Shr:        "Shr",
	Lt:         "Lt",
	LtEq:       "LtEq",
	Gt:         "Gt",
	GtEq:       "GtEq",
	EqEq:       "EqEq",
	BangEq:     "BangEq",
	Assign:     "Assign",
	Comma:      "Comma",
	Semicolon:  "Semicolon",
	Colon:      "Colon",
	ColonColon: "ColonColon",
	Dot:        "Dot",
	Arrow:      "Arrow",
	LParen:     "LParen",
	RParen:     "RParen",
	LBracket:   "LBracket",
	RBracket:   "RBracket",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
