package ast

import (
	"redux/internal/source"
	"redux/internal/types"
)

// StmtKind enumerates statement kinds.
type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtExpr
	StmtAssign
	StmtBitfieldAssign
	StmtIf
	StmtWhile
	StmtFor
	StmtReturn
	StmtBreak
	// StmtCode is an opaque passthrough literal.
	StmtCode
	StmtFuncDef
	StmtBitfieldDef
	StmtEnumDef
	// StmtRequire only exists between parsing and require resolution.
	StmtRequire
)

func (k StmtKind) String() string {
	switch k {
	case StmtBlock:
		return "Block"
	case StmtExpr:
		return "Expr"
	case StmtAssign:
		return "Assign"
	case StmtBitfieldAssign:
		return "BitfieldAssign"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtFor:
		return "For"
	case StmtReturn:
		return "Return"
	case StmtBreak:
		return "Break"
	case StmtCode:
		return "Code"
	case StmtFuncDef:
		return "FuncDef"
	case StmtBitfieldDef:
		return "BitfieldDef"
	case StmtEnumDef:
		return "EnumDef"
	case StmtRequire:
		return "Require"
	default:
		return "Unknown"
	}
}

// Stmt represents a statement.
type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData
}

// StmtData is the interface for statement-specific data.
type StmtData interface {
	stmtData()
}

// Block is an ordered statement list plus scope overrides: assignments
// emitted right after the opening brace, used to bind inlined call arguments.
type Block struct {
	Overrides []Stmt
	Stmts     []Stmt
	Span      source.Span
}

func (*Block) stmtData() {}

func (b *Block) IsEmpty() bool {
	return len(b.Stmts) == 0 && len(b.Overrides) == 0
}

// TrailingReturn returns the final return statement of the block, if any.
func (b *Block) TrailingReturn() (*ReturnData, bool) {
	if len(b.Stmts) == 0 {
		return nil, false
	}
	ret, ok := b.Stmts[len(b.Stmts)-1].Data.(*ReturnData)
	return ret, ok
}

type ExprStmtData struct {
	X *Expr
}

func (*ExprStmtData) stmtData() {}

// AssignData is `name = value`. Declare is decided by the declaration
// analyzer. Bind marks parameter bindings prepended to a call's private body:
// their values were annotated at the call site. Entry is the binding the
// annotator declared or resolved.
type AssignData struct {
	Name     string
	NameSpan source.Span
	Value    *Expr
	Declare  bool
	Bind     bool
	Entry    *Entry
}

func (*AssignData) stmtData() {}

// BitfieldAssignData is `a.m = value`; Target is an ExprDotted.
type BitfieldAssignData struct {
	Target *Expr
	Value  *Expr
}

func (*BitfieldAssignData) stmtData() {}

type IfData struct {
	Cond *Expr
	Then *Block
	Else *Block // nil when absent
}

func (*IfData) stmtData() {}

type WhileData struct {
	Cond *Expr
	Body *Block
}

func (*WhileData) stmtData() {}

// ForData is `for init; cond; step ... end`. Init and Step are assignment
// statements; any clause may be nil.
type ForData struct {
	Init *Stmt
	Cond *Expr
	Step *Stmt
	Body *Block
}

func (*ForData) stmtData() {}

type ReturnData struct {
	Value *Expr
}

func (*ReturnData) stmtData() {}

type BreakData struct{}

func (*BreakData) stmtData() {}

type CodeData struct {
	Text string
}

func (*CodeData) stmtData() {}

type Param struct {
	Name string
	Span source.Span
}

// FuncDef is a user function. In the tree it is a template; each call site
// gets its own instance (see Instantiate). Captured is the definition-site
// scope, recorded by the type annotator.
type FuncDef struct {
	Name       string
	NameSpan   source.Span
	Params     []Param
	Body       *Block
	Nontrivial bool
	Captured   *Scope
}

func (*FuncDef) stmtData() {}

// BitfieldDef binds a name to a bitfield layout.
type BitfieldDef struct {
	Name     string
	NameSpan source.Span
	Shape    *types.Bitfield
}

func (*BitfieldDef) stmtData() {}

// MemberLimits returns (offset, length) of member or a *types.LookupError.
func (b *BitfieldDef) MemberLimits(member string) (offset, length uint, err error) {
	return b.Shape.MemberLimits(member)
}

// EnumDef binds a name and its members to computed constants.
type EnumDef struct {
	Name     string
	NameSpan source.Span
	Enum     *types.Enum
}

func (*EnumDef) stmtData() {}

// NewEnumDef computes member values; see types.NewEnum for the ordering rule.
func NewEnumDef(name string, nameSpan source.Span, specs []types.EnumSpec) (*EnumDef, error) {
	e, err := types.NewEnum(name, specs)
	return &EnumDef{Name: name, NameSpan: nameSpan, Enum: e}, err
}

type RequireData struct {
	Path string
}

func (*RequireData) stmtData() {}

// NewAssign builds an assignment statement.
func NewAssign(name string, value *Expr, declare bool, sp source.Span) Stmt {
	return Stmt{Kind: StmtAssign, Span: sp, Data: &AssignData{Name: name, NameSpan: sp, Value: value, Declare: declare}}
}

// NewBlockStmt wraps a block as a statement.
func NewBlockStmt(b *Block) Stmt {
	return Stmt{Kind: StmtBlock, Span: b.Span, Data: b}
}

func NewIf(cond *Expr, then, els *Block, sp source.Span) Stmt {
	return Stmt{Kind: StmtIf, Span: sp, Data: &IfData{Cond: cond, Then: then, Else: els}}
}

func NewBreak(sp source.Span) Stmt {
	return Stmt{Kind: StmtBreak, Span: sp, Data: &BreakData{}}
}
