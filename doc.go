// Package calcexpr implements an exact-decimal calculator for single-line
// arithmetic expressions.
//
// Expressions mix decimal, hexadecimal (0x), and binary (0b) literals, the
// constants pi and e, unary and binary arithmetic including exponentiation,
// a small catalog of math functions, and bitwise & and | over unsigned
// 64-bit integer values. Arithmetic is performed on arbitrary-precision
// decimals, never on binary floats, so "0.1 + 0.2" is exactly 0.3.
//
// Bitwise operators bind less tightly than arithmetic, so "3 + 4 & 5" is
// "(3+4) & 5", and & binds tighter than |. Exponentiation is
// right-associative: "2^3^2" is 2^(3^2).
//
// Results format as a decimal string always, plus hexadecimal and binary
// renderings whenever the value is a non-negative integer that fits in 64
// bits.
package calcexpr
