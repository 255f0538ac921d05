// Package handicap computes game handicaps and per-hole stroke allocation.
// Everything here is pure; persistence belongs to the ledger.
package handicap

import (
	"fmt"
	"math"
)

// Raw is an exact rational raw handicap. Player indexes carry one fractional
// digit, so slope*index/113 is representable as (slope * tenths) / 1130
// without any floating rounding before the final half-away round.
type Raw struct {
	Num int64
	Den int64
}

// Zero is the raw handicap of a player with no index.
var Zero = Raw{Num: 0, Den: 1}

// FromIndex derives the raw handicap from a course handicap index and a tee
// slope rating. A zero index means no handicap.
func FromIndex(index float64, slope int) Raw {
	if index == 0 || slope == 0 {
		return Zero
	}
	tenths := int64(math.Round(index * 10))
	return Raw{Num: int64(slope) * tenths, Den: 1130}
}

// Sub returns r - o as an exact rational.
func (r Raw) Sub(o Raw) Raw {
	return Raw{Num: r.Num*o.Den - o.Num*r.Den, Den: r.Den * o.Den}
}

// Less reports whether r < o.
func (r Raw) Less(o Raw) bool {
	return r.Num*o.Den < o.Num*r.Den
}

// Float is for display only; rounding decisions never go through it.
func (r Raw) Float() float64 {
	return float64(r.Num) / float64(r.Den)
}

func (r Raw) String() string {
	return fmt.Sprintf("%.2f", r.Float())
}

// Round rounds to the nearest integer with .5 rounding away from zero,
// so 10.5 -> 11 and -10.5 -> -11.
func (r Raw) Round() int {
	num, den := r.Num, r.Den
	if den < 0 {
		num, den = -num, -den
	}
	if num >= 0 {
		return int((2*num + den) / (2 * den))
	}
	return -int((2*(-num) + den) / (2 * den))
}

// Net computes the full-handicap net: the raw handicap rounded half-away.
func Net(raw Raw) int {
	return raw.Round()
}

// NetLowMan computes the low-man net: each player's raw handicap relative to
// the lowest raw in the game, rounded half-away. The low man nets to zero.
func NetLowMan(raw Raw, lowest Raw) int {
	return raw.Sub(lowest).Round()
}

// Lowest returns the minimum raw handicap of the group.
func Lowest(raws []Raw) Raw {
	if len(raws) == 0 {
		return Zero
	}
	min := raws[0]
	for _, r := range raws[1:] {
		if r.Less(min) {
			min = r
		}
	}
	return min
}
