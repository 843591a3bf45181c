package sat

import "math"

// luby returns y^seq of the Luby restart sequence, where seq is computed by
// repeatedly halving the smallest 2^(k+1)-1 window containing x. See MiniSat's
// luby() helper for the derivation.
func luby(y float64, x int) float64 {
	size := 1
	seq := 0
	for size < x+1 {
		size = 2*size + 1
		seq++
	}
	for size-1 != x {
		size = (size - 1) / 2
		seq--
		x = x % size
	}
	return math.Pow(y, float64(seq))
}
