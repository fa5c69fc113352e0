// Package codegen renders a fully inlined program as AIS text.
//
// The input must have gone through every earlier pass: no user calls,
// function definitions, returns or string variables remain, and every
// expression carries its type. Anything else reaching the generator is a
// programming error and panics.
package codegen
