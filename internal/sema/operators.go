package sema

import (
	"redux/internal/ast"
	"redux/internal/types"
)

// binaryRule describes which operand families an operator accepts and how
// its result type is derived.
type binaryRule struct {
	accept types.FamilyMask
	result types.BinaryResult
}

var (
	ruleNumeric = binaryRule{accept: types.FamilyNumeric, result: types.BinaryResultNumeric}
	ruleBitwise = binaryRule{accept: types.FamilyInt | types.FamilyBitfield, result: types.BinaryResultInt}
	ruleTruth   = binaryRule{accept: types.FamilyNumeric, result: types.BinaryResultInt}
)

func ruleFor(op ast.BinaryOp) binaryRule {
	switch {
	case op.IsNumericOp():
		return ruleNumeric
	case op.IsBitwiseOp():
		return ruleBitwise
	case op.IsRelationalOp():
		return ruleTruth
	default:
		panic("sema: no rule for operator " + op.String())
	}
}

// equalityOperands reports whether l and r may be compared with == or !=:
// two numeric operands, or two operands of the same value type.
func equalityOperands(l, r types.Type) bool {
	if l.IsNumeric() && r.IsNumeric() {
		return true
	}
	return l == r && l.IsValue()
}

func (a *annotator) binary(e *ast.Expr, d *ast.BinaryData) (types.Type, error) {
	l, err := a.value(d.Left)
	if err != nil {
		return types.Invalid, err
	}
	r, err := a.value(d.Right)
	if err != nil {
		return types.Invalid, err
	}
	if d.Op.IsEqualityOp() {
		if !equalityOperands(l, r) {
			return types.Invalid, errorf(ErrIncompatibleType, e.Span, "cannot compare %s with %s", l, r)
		}
		return types.Int, nil
	}
	rule := ruleFor(d.Op)
	if !l.In(rule.accept) || !r.In(rule.accept) {
		return types.Invalid, errorf(ErrInvalidExpression, e.Span, "operator %s is not defined for %s and %s", d.Op, l, r)
	}
	return rule.result.Apply(l, r), nil
}

func (a *annotator) unary(e *ast.Expr, d *ast.UnaryData) (types.Type, error) {
	t, err := a.value(d.Operand)
	if err != nil {
		return types.Invalid, err
	}
	switch d.Op {
	case ast.OpNot:
		if t.IsNumeric() {
			return types.Int, nil
		}
	case ast.OpNeg:
		if t.IsNumeric() {
			return t, nil
		}
	case ast.OpBitNot:
		if t.In(types.FamilyInt | types.FamilyBitfield) {
			return types.Int, nil
		}
	default:
		panic("sema: unhandled unary operator " + d.Op.String())
	}
	return types.Invalid, errorf(ErrInvalidExpression, e.Span, "operator %s is not defined for %s", d.Op, t)
}
