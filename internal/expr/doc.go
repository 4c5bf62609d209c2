// Package expr parses and evaluates arithmetic equations in one free
// variable, t.
//
// The accepted language is deliberately small:
//
//   - numbers: 12, 0.5, .5, 1e-3
//   - the variable t and the constants pi and e
//   - binary + - * / and exponentiation written ^ or ** (right associative)
//   - unary + and -, binding looser than exponentiation (-t^2 is -(t^2))
//   - parentheses and calls to the functions listed by [FunctionNames]
//
// # Example
//
//	e, err := expr.Compile("10*t-55")
//	v, err := e.Eval(8) // 25
//
// Every failure, including a result that is not a finite real number, is
// returned as a *curve.EvaluationError.
package expr
