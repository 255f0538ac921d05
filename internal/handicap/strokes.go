package handicap

// StrokesForHole returns the bonus strokes a player receives on a hole,
// given their net handicap for the game and the hole's stroke-allocation
// rank (1 = hardest).
//
// Every hole gets netHandicap/18 base strokes; the netHandicap%18 hardest
// holes get one more. Division is floored, so a plus-handicap player gives
// strokes back on the easiest-ranked holes: net -3 plays level on ranks
// 1-15 and loses a stroke on ranks 16-18.
func StrokesForHole(netHandicap, strokeIndex int) int {
	base := floorDiv(netHandicap, 18)
	extra := floorMod(netHandicap, 18)
	if strokeIndex <= extra {
		base++
	}
	return base
}

// NetScore applies the hole's stroke allocation to a raw score.
func NetScore(rawScore, netHandicap, strokeIndex int) int {
	return rawScore - StrokesForHole(netHandicap, strokeIndex)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
