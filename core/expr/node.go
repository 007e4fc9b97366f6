package expr

import "math"

// value is either a number or a list of numbers.
type value struct {
	num    float64
	list   []float64
	isList bool
}

func number(v float64) value {
	return value{num: v}
}

// node is an element of the compiled syntax tree.
type node interface {
	eval(src string) (value, error)
	position() int
}

type numberNode struct {
	value float64
	pos   int
}

func (n *numberNode) eval(string) (value, error) { return number(n.value), nil }
func (n *numberNode) position() int              { return n.pos }

type binaryNode struct {
	op          tokenKind
	left, right node
	pos         int
}

func (n *binaryNode) position() int { return n.pos }

func (n *binaryNode) eval(src string) (value, error) {
	l, err := n.left.eval(src)
	if err != nil {
		return value{}, err
	}
	r, err := n.right.eval(src)
	if err != nil {
		return value{}, err
	}
	if l.isList || r.isList {
		return value{}, newError(src, n.pos, "arithmetic is not defined on lists")
	}

	var v float64
	switch n.op {
	case tokPlus:
		v = l.num + r.num
	case tokMinus:
		v = l.num - r.num
	case tokStar:
		v = l.num * r.num
	default: // tokSlash
		if r.num == 0 {
			return value{}, newError(src, n.pos, "division by zero")
		}
		v = l.num / r.num
	}
	if !isFinite(v) {
		return value{}, newError(src, n.pos, "result is not a finite number")
	}
	return number(v), nil
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

type listNode struct {
	items []node
	pos   int
}

func (n *listNode) position() int { return n.pos }

func (n *listNode) eval(src string) (value, error) {
	out := make([]float64, 0, len(n.items))
	for _, item := range n.items {
		v, err := item.eval(src)
		if err != nil {
			return value{}, err
		}
		if v.isList {
			return value{}, newError(src, item.position(), "lists cannot be nested")
		}
		out = append(out, v.num)
	}
	return value{list: out, isList: true}, nil
}

type argument struct {
	name  string // Empty for positional arguments
	value node
	pos   int
}

type callNode struct {
	name string
	fn   builtin
	args []argument
	pos  int
}

func (n *callNode) position() int { return n.pos }

func (n *callNode) eval(src string) (value, error) {
	bound, err := n.fn.bind(src, n)
	if err != nil {
		return value{}, err
	}
	v, err := n.fn.call(bound)
	if err != nil {
		return value{}, newError(src, n.pos, "%s: %s", n.name, err.Error())
	}
	return number(v), nil
}
