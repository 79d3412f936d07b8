// Package size parses and evaluates textual size constraints such as
// ">=10MB" used by zip rules.
//
// The operator semantics are kept compatible with rule sheets written for
// earlier versions of the tool: ">" and ">=" both parse to GT, and the
// ordering operators compare the threshold against the byte count (so GT
// holds when threshold < n).
package size

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/arthur-debert/foldermgr/pkg/errors"
)

// Operator is a comparison operator of a Predicate.
type Operator int

// The zero Operator is GTE so that the zero Predicate holds for every size.
const (
	GTE Operator = iota
	EQ
	GT
	LTE
	LT
)

func (o Operator) String() string {
	switch o {
	case EQ:
		return "="
	case GT:
		return ">"
	case LTE:
		return "<="
	case LT:
		return "<"
	default:
		return ">="
	}
}

const (
	B  int64 = 1
	KB       = 1024 * B
	MB       = 1024 * KB
	GB       = 1024 * MB
	TB       = 1024 * GB
)

var units = map[string]int64{
	"B":  B,
	"KB": KB,
	"MB": MB,
	"GB": GB,
	"TB": TB,
}

var expression = regexp.MustCompile(`^\s*(>=|<=|=|>|<)?\s*(\d+)\s*(KB|MB|GB|TB|B)\s*$`)

// Predicate is an immutable size constraint with a threshold in bytes.
type Predicate struct {
	threshold int64
	op        Operator
}

// Any returns the predicate used when a rule declares no size constraint.
// It holds for every byte count and equals the zero Predicate.
func Any() Predicate {
	return Predicate{threshold: 0, op: GTE}
}

// Parse parses text of the form [operator] digits unit.
func Parse(text string) (Predicate, error) {
	m := expression.FindStringSubmatch(text)
	if m == nil {
		return Predicate{}, errors.Newf(errors.ErrSizeFormat,
			"invalid size %q: expected operator (>=,<=,>,<,=), a whole number and a unit (B,KB,MB,GB,TB)", text).
			WithDetail("value", text)
	}

	n, err := strconv.ParseInt(m[2], 10, 64)
	if err != nil {
		return Predicate{}, errors.Wrapf(err, errors.ErrSizeFormat, "invalid size %q", text)
	}
	factor := units[m[3]]
	if n > math.MaxInt64/factor {
		return Predicate{}, errors.Newf(errors.ErrSizeFormat, "size %q is too large", text)
	}

	return Predicate{threshold: n * factor, op: parseOperator(m[1])}, nil
}

func parseOperator(s string) Operator {
	switch s {
	case ">=", ">":
		return GT
	case "<":
		return LT
	case "<=":
		return LTE
	default:
		return EQ
	}
}

// Threshold returns the threshold in bytes.
func (p Predicate) Threshold() int64 { return p.threshold }

// Operator returns the comparison operator.
func (p Predicate) Operator() Operator { return p.op }

// Compare evaluates the predicate against a byte count.
func (p Predicate) Compare(n int64) bool {
	switch p.op {
	case EQ:
		return n == p.threshold
	case GT:
		return p.threshold < n
	case LTE:
		return p.threshold >= n
	case LT:
		return p.threshold > n
	default:
		return p.threshold <= n
	}
}

func (p Predicate) String() string {
	return fmt.Sprintf("%s%dB", p.op, p.threshold)
}

// Humanize renders the threshold with the largest unit that divides it.
func (p Predicate) Humanize() string {
	for _, u := range []string{"TB", "GB", "MB", "KB"} {
		f := units[u]
		if p.threshold >= f && p.threshold%f == 0 {
			return p.op.String() + strconv.FormatInt(p.threshold/f, 10) + u
		}
	}
	return p.String()
}
