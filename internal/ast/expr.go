package ast

import (
	"fmt"

	"redux/internal/intrinsics"
	"redux/internal/source"
	"redux/internal/types"
)

// ExprKind enumerates expression kinds.
type ExprKind uint8

const (
	ExprConst ExprKind = iota
	ExprVarRef
	ExprBinary
	ExprUnary
	ExprCall
	// ExprDotted is e.m: a bitfield member or an object attribute.
	ExprDotted
	// ExprChronal is e->m on a runtime object.
	ExprChronal
	// ExprClass is e::m on a static/class value.
	ExprClass
	ExprQuery
)

func (k ExprKind) String() string {
	switch k {
	case ExprConst:
		return "Const"
	case ExprVarRef:
		return "VarRef"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprCall:
		return "Call"
	case ExprDotted:
		return "Dotted"
	case ExprChronal:
		return "Chronal"
	case ExprClass:
		return "Class"
	case ExprQuery:
		return "Query"
	default:
		return "Unknown"
	}
}

// Expr is an expression node. Its type is filled by the type annotator and
// must not be read before that.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Data ExprData

	typ   types.Type
	typed bool
}

// ExprData is the interface for expression-specific data.
type ExprData interface {
	exprData()
}

// Type returns the annotated type. Reading it from an unannotated node is a
// bug in pass ordering.
func (e *Expr) Type() types.Type {
	if !e.typed {
		panic(fmt.Sprintf("ast: type of %s expression at %s read before annotation", e.Kind, e.Span))
	}
	return e.typ
}

func (e *Expr) SetType(t types.Type) {
	e.typ = t
	e.typed = true
}

func (e *Expr) Typed() bool { return e.typed }

// ConstData holds a literal value. Kind is int, float or string.
type ConstData struct {
	Kind  types.Kind
	Int   int64
	Float float64
	Str   string
}

func (*ConstData) exprData() {}

// VarRefData names a variable. Entry is the binding the annotator resolved
// the name to; passes that move code between scopes compare entries, not
// names.
type VarRefData struct {
	Name  string
	Entry *Entry
}

func (*VarRefData) exprData() {}

type BinaryData struct {
	Op    BinaryOp
	Left  *Expr
	Right *Expr
}

func (*BinaryData) exprData() {}

type UnaryData struct {
	Op      UnaryOp
	Operand *Expr
}

func (*UnaryData) exprData() {}

// CallTarget says what a call resolved to.
type CallTarget uint8

const (
	TargetUnresolved CallTarget = iota
	TargetIntrinsic
	// TargetBitfield is the bitfield constructor A(x), a typed cast.
	TargetBitfield
	// TargetFunction is a user function; Func is the private instance for
	// this call site.
	TargetFunction
)

type CallData struct {
	Name     string
	NameSpan source.Span
	Args     []*Expr

	Target    CallTarget
	Intrinsic *intrinsics.Intrinsic
	Bitfield  *BitfieldDef
	Func      *FuncDef
}

func (*CallData) exprData() {}

// Nontrivial reports a call that the call inliner must expand.
func (c *CallData) Nontrivial() bool {
	return c.Target == TargetFunction && c.Func != nil && c.Func.Nontrivial
}

// MemberData is shared by dotted, chronal and class access.
type MemberData struct {
	Base       *Expr
	Member     string
	MemberSpan source.Span
}

func (*MemberData) exprData() {}

// QueryData is `query KIND [unit] OP [op_expr] where [cond]`. Unit, OpExpr
// and Where may be nil.
type QueryData struct {
	Kind   string
	Unit   *Expr
	Op     string
	OpExpr *Expr
	Where  *Expr
}

func (*QueryData) exprData() {}

func constExpr(sp source.Span, d *ConstData, t types.Type) *Expr {
	e := &Expr{Kind: ExprConst, Span: sp, Data: d}
	e.SetType(t)
	return e
}

// NewInt builds an int constant; constants carry their type from birth.
func NewInt(v int64, sp source.Span) *Expr {
	return constExpr(sp, &ConstData{Kind: types.KindInt, Int: v}, types.Int)
}

func NewFloat(v float64, sp source.Span) *Expr {
	return constExpr(sp, &ConstData{Kind: types.KindFloat, Float: v}, types.Float)
}

func NewString(v string, sp source.Span) *Expr {
	return constExpr(sp, &ConstData{Kind: types.KindString, Str: v}, types.String)
}

func NewVarRef(name string, sp source.Span) *Expr {
	return &Expr{Kind: ExprVarRef, Span: sp, Data: &VarRefData{Name: name}}
}

func NewBinary(op BinaryOp, l, r *Expr) *Expr {
	return &Expr{Kind: ExprBinary, Span: l.Span.Cover(r.Span), Data: &BinaryData{Op: op, Left: l, Right: r}}
}

func NewUnary(op UnaryOp, x *Expr, sp source.Span) *Expr {
	return &Expr{Kind: ExprUnary, Span: sp.Cover(x.Span), Data: &UnaryData{Op: op, Operand: x}}
}

func NewCall(name string, nameSpan source.Span, args []*Expr, sp source.Span) *Expr {
	return &Expr{Kind: ExprCall, Span: sp, Data: &CallData{Name: name, NameSpan: nameSpan, Args: args}}
}

func NewMember(kind ExprKind, base *Expr, member string, memberSpan source.Span) *Expr {
	switch kind {
	case ExprDotted, ExprChronal, ExprClass:
	default:
		panic(fmt.Sprintf("ast: %s is not a member access kind", kind))
	}
	return &Expr{Kind: kind, Span: base.Span.Cover(memberSpan), Data: &MemberData{Base: base, Member: member, MemberSpan: memberSpan}}
}

func NewQuery(d *QueryData, sp source.Span) *Expr {
	return &Expr{Kind: ExprQuery, Span: sp, Data: d}
}

// Name returns the referenced name of a VarRef, or "".
func (e *Expr) Name() string {
	if d, ok := e.Data.(*VarRefData); ok {
		return d.Name
	}
	return ""
}
