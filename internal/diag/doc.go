// Package diag defines the diagnostic model shared by the front end and the
// compiler driver.
//
// Front-end phases (lexer, parser, require resolution) emit through a
// Reporter and keep going; the semantic passes stop at their first error,
// which the driver converts into a single Diagnostic. Every Diagnostic carries
// a stable Code whose ID prefix (LEX, SYN, SEM, IO, PRJ) tells which phase
// produced it.
//
// Rendering lives in internal/diagfmt.
package diag
