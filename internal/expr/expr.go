package expr

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/tempsynth/internal/curve"
)

// Expr is a compiled equation. It holds no state between evaluations.
type Expr struct {
	src  string
	root node
}

func Compile(equation string) (*Expr, error) {
	root, err := parse(equation)
	if err != nil {
		return nil, wrapParseError(equation, err)
	}
	return &Expr{src: equation, root: root}, nil
}

func (e *Expr) String() string { return e.src }

// Eval substitutes t and reduces the equation to a finite real number.
func (e *Expr) Eval(t float64) (float64, error) {
	v, err := e.root.eval(t)
	switch {
	case err != nil:
		err = fmt.Errorf("%w: %v", curve.ErrNonFinite, err)
	case math.IsNaN(v) || math.IsInf(v, 0):
		err = curve.ErrNonFinite
	}
	if err != nil {
		return 0, &curve.EvaluationError{
			Equation: e.src,
			Pos:      -1,
			Time:     curve.TimeValue(t),
			HasTime:  true,
			Err:      err,
		}
	}
	return v, nil
}

// Evaluate compiles equation and evaluates it at t.
func Evaluate(equation string, t float64) (float64, error) {
	e, err := Compile(equation)
	if err != nil {
		return 0, err
	}
	return e.Eval(t)
}

func wrapParseError(equation string, err error) error {
	evalErr := &curve.EvaluationError{Equation: equation, Pos: -1, Err: err}

	var se *syntaxError
	var ie *identError
	switch {
	case errors.As(err, &se):
		evalErr.Pos = se.pos
		evalErr.Err = fmt.Errorf("%w: %s", curve.ErrSyntax, se.msg)
	case errors.As(err, &ie):
		evalErr.Pos = ie.pos
	}
	return evalErr
}
