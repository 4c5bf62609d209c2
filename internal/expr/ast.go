package expr

import (
	"fmt"
	"math"
)

type node interface {
	eval(t float64) (float64, error)
}

type numberNode float64

func (n numberNode) eval(float64) (float64, error) { return float64(n), nil }

type varNode struct{}

func (varNode) eval(t float64) (float64, error) { return t, nil }

type unaryNode struct {
	neg     bool
	operand node
}

func (n *unaryNode) eval(t float64) (float64, error) {
	v, err := n.operand.eval(t)
	if err != nil {
		return 0, err
	}
	if n.neg {
		return -v, nil
	}
	return v, nil
}

type binaryNode struct {
	op          tokenKind
	left, right node
}

func (n *binaryNode) eval(t float64) (float64, error) {
	l, err := n.left.eval(t)
	if err != nil {
		return 0, err
	}
	r, err := n.right.eval(t)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case tokPlus:
		return l + r, nil
	case tokMinus:
		return l - r, nil
	case tokStar:
		return l * r, nil
	case tokSlash:
		if r == 0 {
			return 0, fmt.Errorf("division by zero")
		}
		return l / r, nil
	case tokPow:
		return math.Pow(l, r), nil
	}
	return 0, fmt.Errorf("unsupported operator %s", n.op)
}

type callNode struct {
	fn   Function
	args []node
}

func (n *callNode) eval(t float64) (float64, error) {
	vals := make([]float64, len(n.args))
	for i, a := range n.args {
		v, err := a.eval(t)
		if err != nil {
			return 0, err
		}
		vals[i] = v
	}
	return n.fn.Call(vals), nil
}
