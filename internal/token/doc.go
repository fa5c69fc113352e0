// Package token defines lexical token kinds for redux sources.
// Invariants:
//   - Token.Span covers the token text exactly.
//   - Token.Text is the raw source slice, except for StringLit and CodeLit
//     where it holds the decoded payload (escapes resolved, quotes and
//     backticks stripped).
//   - Keywords are lowercase and case sensitive.
package token
