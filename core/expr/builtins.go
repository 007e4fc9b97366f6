package expr

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var errDivisionByZero = errors.New("division by zero")

// param describes one formal parameter of a builtin.
type param struct {
	name     string
	list     bool // Expects a list instead of a number
	optional bool
}

// builtin is a function callable from an expression.
type builtin struct {
	params   []param
	variadic bool // Every argument is positional and matches params[0]
	call     func(args boundArgs) (float64, error)
}

// boundArgs holds evaluated arguments matched to their parameters.
type boundArgs struct {
	named map[string]value
	rest  []value
}

func (b boundArgs) has(name string) bool {
	_, ok := b.named[name]
	return ok
}

var builtins = map[string]builtin{
	"grade_multiple": {
		params: []param{
			{name: "scores", list: true},
			{name: "out_of"},
			{name: "drop_worst", optional: true},
			{name: "use_best", optional: true},
		},
		call: gradeMultiple,
	},
	"grade_parts": {
		params:   []param{{name: "part", list: true}},
		variadic: true,
		call:     gradeParts,
	},
	"percent": {
		params: []param{{name: "n"}},
		call: func(args boundArgs) (float64, error) {
			return args.named["n"].num / 100, nil
		},
	},
}

// bind evaluates the call's arguments and matches them to parameters.
func (b builtin) bind(src string, call *callNode) (boundArgs, error) {
	out := boundArgs{named: make(map[string]value, len(b.params))}
	sawKeyword := false

	for i, a := range call.args {
		var p param
		switch {
		case b.variadic:
			if a.name != "" {
				return out, newError(src, a.pos, "%s does not accept keyword arguments", call.name)
			}
			p = b.params[0]
		case a.name != "":
			sawKeyword = true
			found := false
			for _, candidate := range b.params {
				if candidate.name == a.name {
					p, found = candidate, true
					break
				}
			}
			if !found {
				return out, newError(src, a.pos, "%s got an unexpected keyword argument %q", call.name, a.name)
			}
		default:
			if sawKeyword {
				return out, newError(src, a.pos, "positional argument follows keyword argument")
			}
			if i >= len(b.params) {
				return out, newError(src, a.pos, "%s takes at most %d arguments", call.name, len(b.params))
			}
			p = b.params[i]
		}

		v, err := a.value.eval(src)
		if err != nil {
			return out, err
		}
		if v.isList != p.list {
			want := "a number"
			if p.list {
				want = "a list"
			}
			return out, newError(src, a.pos, "argument %q of %s must be %s", p.name, call.name, want)
		}

		if b.variadic {
			out.rest = append(out.rest, v)
			continue
		}
		if out.has(p.name) {
			return out, newError(src, a.pos, "%s got multiple values for argument %q", call.name, p.name)
		}
		out.named[p.name] = v
	}

	if !b.variadic {
		for _, p := range b.params {
			if !p.optional && !out.has(p.name) {
				return out, newError(src, call.pos, "%s is missing required argument %q", call.name, p.name)
			}
		}
	}
	return out, nil
}

// count converts a numeric argument into a non-negative whole number.
func count(name string, v float64) (int, error) {
	if v < 0 || v != math.Trunc(v) || v > math.MaxInt32 {
		return 0, fmt.Errorf("%s must be a non-negative whole number, got %g", name, v)
	}
	return int(v), nil
}

// gradeMultiple averages scores out of out_of after keeping the use_best highest
// scores and then dropping the drop_worst lowest ones.
func gradeMultiple(args boundArgs) (float64, error) {
	scores := append([]float64(nil), args.named["scores"].list...)
	outOf := args.named["out_of"].num
	if len(scores) == 0 {
		return 0, errors.New("scores must not be empty")
	}

	if args.has("use_best") {
		best, err := count("use_best", args.named["use_best"].num)
		if err != nil {
			return 0, err
		}
		if best == 0 {
			return 0, errors.New("use_best must keep at least one score")
		}
		if best < len(scores) {
			scores = keepHighest(scores, best)
		}
	}

	dropWorst := 0
	if args.has("drop_worst") {
		n, err := count("drop_worst", args.named["drop_worst"].num)
		if err != nil {
			return 0, err
		}
		dropWorst = n
	}
	if dropWorst >= len(scores) {
		return 0, fmt.Errorf("cannot drop %d of %d scores, nothing would be left to average", dropWorst, len(scores))
	}
	scores = dropLowest(scores, dropWorst)

	if outOf == 0 {
		return 0, errDivisionByZero
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / (float64(len(scores)) * outOf), nil
}

// dropLowest removes the n lowest scores; among equal scores the earliest goes first.
// The remaining scores keep their original order.
func dropLowest(scores []float64, n int) []float64 {
	return removeRanked(scores, n, func(a, b float64) bool { return a < b })
}

// keepHighest keeps the n highest scores in their original order.
func keepHighest(scores []float64, n int) []float64 {
	return removeRanked(scores, len(scores)-n, func(a, b float64) bool { return a < b })
}

// removeRanked drops the first n entries of scores when ordered by less, stably.
func removeRanked(scores []float64, n int, less func(a, b float64) bool) []float64 {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool { return less(scores[idx[i]], scores[idx[j]]) })

	removed := make(map[int]bool, n)
	for _, i := range idx[:n] {
		removed[i] = true
	}
	kept := make([]float64, 0, len(scores)-n)
	for i, s := range scores {
		if !removed[i] {
			kept = append(kept, s)
		}
	}
	return kept
}

// gradeParts returns the points earned over the points available across (earned, total) pairs.
func gradeParts(args boundArgs) (float64, error) {
	if len(args.rest) == 0 {
		return 0, errors.New("expects at least one (earned, total) pair")
	}
	earned, total := 0.0, 0.0
	for i, part := range args.rest {
		if len(part.list) != 2 {
			return 0, fmt.Errorf("part %d must be an (earned, total) pair, got %d values", i+1, len(part.list))
		}
		earned += part.list[0]
		total += part.list[1]
	}
	if total == 0 {
		return 0, errDivisionByZero
	}
	return earned / total, nil
}
