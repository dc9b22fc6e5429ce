package grid

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// CompareFunc is a three-way comparison of two cell values.
type CompareFunc func(a, b any) int

// value classes, in sort order
const (
	classNil = iota
	classNumber
	classTime
	classString
	classOther
)

func classOf(v any) (int, float64) {
	switch v := v.(type) {
	case nil:
		return classNil, 0
	case string:
		return classString, 0
	case time.Time:
		return classTime, 0
	default:
		if f, err := cast.ToFloat64E(v); err == nil {
			return classNumber, f
		}
		return classOther, 0
	}
}

// CompareValues is the default comparator used for sorting.
//
// Values are ranked by class first: nil, then numbers (anything that coerces
// to float64, bools included), then times, then strings, then everything
// else. Within a class numbers compare numerically, times chronologically,
// strings bytewise and the rest by formatted text. Ranking by class keeps the
// order total on columns that mix types.
func CompareValues(a, b any) int {
	ac, af := classOf(a)
	bc, bf := classOf(b)
	if ac != bc {
		return cmp.Compare(ac, bc)
	}

	switch ac {
	case classNil:
		return 0
	case classNumber:
		return cmp.Compare(af, bf)
	case classTime:
		return a.(time.Time).Compare(b.(time.Time))
	case classString:
		return strings.Compare(a.(string), b.(string))
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
