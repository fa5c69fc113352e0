package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"redux/internal/ast"
	"redux/internal/types"
)

func (g *generator) expr(e *ast.Expr) string {
	switch d := e.Data.(type) {
	case *ast.ConstData:
		return constant(d)
	case *ast.VarRefData:
		return d.Name
	case *ast.BinaryData:
		return "(" + g.expr(d.Left) + d.Op.Symbol() + g.expr(d.Right) + ")"
	case *ast.UnaryData:
		return "(" + d.Op.Symbol() + g.expr(d.Operand) + ")"
	case *ast.CallData:
		return g.call(d)
	case *ast.MemberData:
		return g.member(e, d)
	case *ast.QueryData:
		return "(QUERY " + d.Kind + " [" + g.optExpr(d.Unit) + "] " + d.Op +
			" [" + g.optExpr(d.OpExpr) + "] WHERE [" + g.optExpr(d.Where) + "])"
	default:
		panic(fmt.Sprintf("codegen: unhandled expression %s", e.Kind))
	}
}

func (g *generator) optExpr(e *ast.Expr) string {
	if e == nil {
		return ""
	}
	return g.expr(e)
}

func (g *generator) call(d *ast.CallData) string {
	args := make([]string, len(d.Args))
	for i, a := range d.Args {
		args[i] = g.expr(a)
	}
	switch d.Target {
	case ast.TargetIntrinsic:
		return d.Intrinsic.Emit(args)
	case ast.TargetBitfield:
		// конструктор битового поля: значение как есть
		return args[0]
	default:
		panic("codegen: call of " + d.Name + " was not inlined")
	}
}

func (g *generator) member(e *ast.Expr, d *ast.MemberData) string {
	base := g.expr(d.Base)
	switch e.Kind {
	case ast.ExprDotted:
		if bt := d.Base.Type(); bt.Kind == types.KindBitfield {
			off, length, err := bt.Bitfield.MemberLimits(d.Member)
			if err != nil {
				panic("codegen: " + err.Error())
			}
			return base + "[" + strconv.FormatUint(uint64(off), 10) + ", " + strconv.FormatUint(uint64(length), 10) + "]"
		}
		return "(" + base + "." + d.Member + ")"
	case ast.ExprChronal:
		return "(" + base + "->" + d.Member + ")"
	case ast.ExprClass:
		return "(" + base + "::" + d.Member + ")"
	default:
		panic(fmt.Sprintf("codegen: %s is not a member access", e.Kind))
	}
}

func constant(d *ast.ConstData) string {
	switch d.Kind {
	case types.KindInt:
		return strconv.FormatInt(d.Int, 10)
	case types.KindFloat:
		return formatFloat(d.Float)
	case types.KindString:
		return quote(d.Str)
	default:
		panic(fmt.Sprintf("codegen: constant of kind %s", d.Kind))
	}
}

// formatFloat always keeps a fractional part so the value stays a float.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// quote writes s as a C string literal. Bytes outside printable ASCII use
// three-digit octal escapes, which cannot swallow a following digit.
func quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		default:
			if c < 0x20 || c >= 0x7f {
				fmt.Fprintf(&sb, `\%03o`, c)
				continue
			}
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
