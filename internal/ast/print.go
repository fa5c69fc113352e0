package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"redux/internal/types"
)

// Printer dumps a tree in an indented, one-node-per-line form. Types are
// shown for annotated expressions only.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Dump writes the tree rooted at b to w.
func Dump(w io.Writer, b *Block) error {
	p := NewPrinter(w)
	p.Block("Program", b)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s"+format+"\n", append([]any{strings.Repeat("  ", p.indent)}, args...)...)
}

func (p *Printer) nested(f func()) {
	p.indent++
	f()
	p.indent--
}

func (p *Printer) Block(label string, b *Block) {
	if b == nil {
		return
	}
	p.printf("%s", label)
	p.nested(func() {
		for i := range b.Overrides {
			p.printf("override")
			p.nested(func() { p.Stmt(&b.Overrides[i]) })
		}
		for i := range b.Stmts {
			p.Stmt(&b.Stmts[i])
		}
	})
}

func (p *Printer) Stmt(s *Stmt) {
	switch d := s.Data.(type) {
	case *Block:
		p.Block("Block", d)
	case *ExprStmtData:
		p.printf("ExprStmt")
		p.nested(func() { p.Expr(d.X) })
	case *AssignData:
		flags := ""
		if d.Declare {
			flags += " declare"
		}
		if d.Bind {
			flags += " bind"
		}
		p.printf("Assign %s%s", d.Name, flags)
		p.nested(func() { p.Expr(d.Value) })
	case *BitfieldAssignData:
		p.printf("BitfieldAssign")
		p.nested(func() {
			p.Expr(d.Target)
			p.Expr(d.Value)
		})
	case *IfData:
		p.printf("If")
		p.nested(func() {
			p.Expr(d.Cond)
			p.Block("Then", d.Then)
			p.Block("Else", d.Else)
		})
	case *WhileData:
		p.printf("While")
		p.nested(func() {
			p.Expr(d.Cond)
			p.Block("Body", d.Body)
		})
	case *ForData:
		p.printf("For")
		p.nested(func() {
			if d.Init != nil {
				p.Stmt(d.Init)
			}
			if d.Cond != nil {
				p.Expr(d.Cond)
			}
			if d.Step != nil {
				p.Stmt(d.Step)
			}
			p.Block("Body", d.Body)
		})
	case *ReturnData:
		p.printf("Return")
		p.nested(func() { p.Expr(d.Value) })
	case *BreakData:
		p.printf("Break")
	case *CodeData:
		p.printf("Code %s", strconv.Quote(d.Text))
	case *FuncDef:
		names := make([]string, len(d.Params))
		for i, prm := range d.Params {
			names[i] = prm.Name
		}
		p.printf("FuncDef %s(%s)", d.Name, strings.Join(names, ", "))
		p.nested(func() { p.Block("Body", d.Body) })
	case *BitfieldDef:
		parts := make([]string, len(d.Shape.Members))
		for i, m := range d.Shape.Members {
			parts[i] = fmt.Sprintf("%s:%d", m.Name, m.Length)
		}
		p.printf("BitfieldDef %s %s", d.Name, strings.Join(parts, " "))
	case *EnumDef:
		parts := make([]string, len(d.Enum.Members))
		for i, m := range d.Enum.Members {
			parts[i] = fmt.Sprintf("%s=%d", m.Name, m.Value)
		}
		p.printf("EnumDef %s %s", d.Name, strings.Join(parts, " "))
	case *RequireData:
		p.printf("Require %s", strconv.Quote(d.Path))
	default:
		p.printf("<%s>", s.Kind)
	}
}

func (p *Printer) Expr(e *Expr) {
	if e == nil {
		p.printf("<nil>")
		return
	}
	suffix := ""
	if e.Typed() {
		suffix = " : " + e.Type().String()
	}
	switch d := e.Data.(type) {
	case *ConstData:
		p.printf("Const %s%s", ConstText(d), suffix)
	case *VarRefData:
		p.printf("VarRef %s%s", d.Name, suffix)
	case *BinaryData:
		p.printf("Binary %s%s", d.Op.Symbol(), suffix)
		p.nested(func() {
			p.Expr(d.Left)
			p.Expr(d.Right)
		})
	case *UnaryData:
		p.printf("Unary %s%s", d.Op.Symbol(), suffix)
		p.nested(func() { p.Expr(d.Operand) })
	case *CallData:
		p.printf("Call %s%s", d.Name, suffix)
		p.nested(func() {
			for _, a := range d.Args {
				p.Expr(a)
			}
		})
	case *MemberData:
		p.printf("%s .%s%s", e.Kind, d.Member, suffix)
		p.nested(func() { p.Expr(d.Base) })
	case *QueryData:
		p.printf("Query %s %s%s", d.Kind, d.Op, suffix)
		p.nested(func() {
			for _, x := range []*Expr{d.Unit, d.OpExpr, d.Where} {
				if x != nil {
					p.Expr(x)
				}
			}
		})
	default:
		p.printf("<%s>", e.Kind)
	}
}

// ConstText renders a constant in source form.
func ConstText(d *ConstData) string {
	switch d.Kind {
	case types.KindInt:
		return strconv.FormatInt(d.Int, 10)
	case types.KindFloat:
		return strconv.FormatFloat(d.Float, 'g', -1, 64)
	case types.KindString:
		return strconv.Quote(d.Str)
	default:
		return "?"
	}
}
