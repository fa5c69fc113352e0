package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexUnterminatedCode   Code = 1003
	LexBadNumber          Code = 1004
	LexBadEscape          Code = 1005

	// Парсерные
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectExpression Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectEnd        Code = 2004
	SynUnclosedParen    Code = 2005
	SynUnclosedBracket  Code = 2006
	SynExpectNumber     Code = 2007
	SynReturnNotLast    Code = 2008
	SynEnumOrder        Code = 2009
	SynBitfieldWidth    Code = 2010
	SynExpectString     Code = 2011
	SynBadAssignTarget  Code = 2012

	// Семантические; one code per error kind of the type annotator
	SemaInfo              Code = 3000
	SemaUndefinedVariable Code = 3001
	SemaUndefinedType     Code = 3002
	SemaIncompatibleType  Code = 3003
	SemaNotCallable       Code = 3004
	SemaInvalidExpression Code = 3005
	SemaImmutability      Code = 3006
	SemaLookupFailure     Code = 3007
	SemaInternal          Code = 3099

	// Ошибки I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002

	// Project / require
	ProjInfo            Code = 5000
	ProjRequireNotFound Code = 5001
	ProjRequireTopLevel Code = 5002
	ProjBadManifest     Code = 5003

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string",
	LexUnterminatedCode:   "Unterminated code literal",
	LexBadNumber:          "Bad number",
	LexBadEscape:          "Bad escape sequence",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectExpression:   "Expect expression",
	SynExpectIdentifier:   "Expect identifier",
	SynExpectEnd:          "Expect 'end'",
	SynUnclosedParen:      "Unclosed parenthesis",
	SynUnclosedBracket:    "Unclosed bracket",
	SynExpectNumber:       "Expect integer",
	SynReturnNotLast:      "Misplaced return",
	SynEnumOrder:          "Enum values must increase",
	SynBitfieldWidth:      "Invalid bitfield width",
	SynExpectString:       "Expect string",
	SynBadAssignTarget:    "Invalid assignment target",
	SemaInfo:              "Semantic information",
	SemaUndefinedVariable: "Undefined variable",
	SemaUndefinedType:     "Undefined type",
	SemaIncompatibleType:  "Incompatible type",
	SemaNotCallable:       "Not callable",
	SemaInvalidExpression: "Invalid expression",
	SemaImmutability:      "Immutability violation",
	SemaLookupFailure:     "Lookup failure",
	SemaInternal:          "Internal compiler error",
	IOLoadFileError:       "Failed to load file",
	IOWriteFileError:      "Failed to write file",
	ProjInfo:              "Project information",
	ProjRequireNotFound:   "Required file not found",
	ProjRequireTopLevel:   "Top-level code in required file",
	ProjBadManifest:       "Invalid project manifest",
	ObsInfo:               "Observability information",
	ObsTimings:            "Pipeline timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
