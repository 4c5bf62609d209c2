package expr

import (
	"math"
	"sort"
)

type Function struct {
	Arity int
	Call  func(args []float64) float64
}

func unary(f func(float64) float64) Function {
	return Function{Arity: 1, Call: func(a []float64) float64 { return f(a[0]) }}
}

func binary(f func(float64, float64) float64) Function {
	return Function{Arity: 2, Call: func(a []float64) float64 { return f(a[0], a[1]) }}
}

var functions = map[string]Function{
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"asin":  unary(math.Asin),
	"acos":  unary(math.Acos),
	"atan":  unary(math.Atan),
	"sinh":  unary(math.Sinh),
	"cosh":  unary(math.Cosh),
	"tanh":  unary(math.Tanh),
	"exp":   unary(math.Exp),
	"log":   unary(math.Log),
	"ln":    unary(math.Log),
	"log10": unary(math.Log10),
	"log2":  unary(math.Log2),
	"sqrt":  unary(math.Sqrt),
	"abs":   unary(math.Abs),
	"floor": unary(math.Floor),
	"ceil":  unary(math.Ceil),
	"pow":   binary(math.Pow),
	"min":   binary(math.Min),
	"max":   binary(math.Max),
	"atan2": binary(math.Atan2),
}

var constants = map[string]float64{
	"pi": math.Pi,
	"e":  math.E,
	"E":  math.E,
}

// LookupFunction returns the function an equation may call by name.
func LookupFunction(name string) (Function, bool) {
	fn, ok := functions[name]
	return fn, ok
}

// FunctionNames lists the callable functions in sorted order.
func FunctionNames() []string {
	names := make([]string, 0, len(functions))
	for name := range functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Variable is the only free variable an equation may reference.
const Variable = "t"
