package indicator

import "math"

// Shared numeric primitives for all indicator families. Both operate over any
// float series, not just closing prices: MACD feeds its own output back
// through the EWMA.

// nanSlice returns a slice of length n filled with NaN, the undefined marker.
func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}

	return out
}

// rollingMean computes a windowed arithmetic mean with a minimum of one
// period: for the first window-1 points the mean covers however many points
// exist so far, so charts draw a line from the first bar. out[i] is the mean
// of values[max(0, i-window+1) .. i]. Each window is summed directly rather
// than kept as a running sum, so a width-1 window reproduces its input
// bit-for-bit instead of accumulating add-then-subtract drift.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))

	for i := range values {
		first := i - window + 1
		if first < 0 {
			first = 0
		}

		sum := 0.0
		for _, v := range values[first : i+1] {
			sum += v
		}

		out[i] = sum / float64(i+1-first)
	}

	return out
}

// ewma computes a recursive exponential moving average with smoothing factor
// alpha = 2/(span+1), seeded with the first defined value (the no-adjustment
// variant, matching pandas ewm(span=s, adjust=False)). Leading NaN values stay
// NaN and the seed moves to the first defined point; a NaN after the seed
// poisons the rest of the series, which is intended since the normalizer only
// emits finite closes.
func ewma(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	alpha := 2.0 / float64(span+1)
	seeded := false
	prev := 0.0

	for i, v := range values {
		if !seeded {
			out[i] = v

			if !math.IsNaN(v) {
				seeded = true
				prev = v
			}

			continue
		}

		prev = alpha*v + (1-alpha)*prev
		out[i] = prev
	}

	return out
}
