package region

import "math"

// toLinear converts a decibel value to a linear amplitude multiplier.
func toLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// velocityToDB is the velocity-to-dB curve used for amplitude tracking: 0dB
// at v=127, diverging toward -inf as v approaches 0 (spec.md §4.3.1 step 6).
func velocityToDB(v int) float64 {
	if v <= 0 {
		return 0
	}
	return -20 * math.Log10(127*127/float64(v*v))
}
