// Package testkit holds checks shared by parser, fuzz and pipeline tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"redux/internal/ast"
	"redux/internal/source"
)

// CheckSpanInvariants verifies that every statement and expression span
// of a freshly parsed program points into sf and is well ordered.
// Required files are spliced in with their own spans, so only programs
// without require statements are expected to pass.
func CheckSpanInvariants(prog *ast.Block, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	limit, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	check := func(what string, sp source.Span) error {
		switch {
		case sp.File != sf.ID:
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		case sp.End < sp.Start:
			return fmt.Errorf("%s span is reversed: %v", what, sp)
		case sp.End > limit:
			return fmt.Errorf("%s span end beyond content: %d > %d", what, sp.End, limit)
		}
		return nil
	}

	var firstErr error
	ast.WalkBlock(prog, func(s *ast.Stmt) bool {
		if firstErr == nil {
			firstErr = check(s.Kind.String(), s.Span)
		}
		return firstErr == nil
	}, func(e *ast.Expr) bool {
		if firstErr == nil {
			firstErr = check(e.Kind.String(), e.Span)
		}
		return firstErr == nil
	})
	return firstErr
}
