// Package inline holds the tree rewrites that run between type annotation
// and code generation:
//
//   - Calls expands every user function call in place and normalizes loops;
//   - Enums replaces enum member references with their values;
//   - Strings replaces string variables with their literal values and drops
//     their assignments.
//
// All three mutate the tree they are given and keep no state between runs
// except the temporary counter in Context.
package inline
