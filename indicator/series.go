package indicator

import "math"

// Series primitives shared by the indicator recurrences. Undefined
// values (warm-up) are represented as NaN until backfill resolves them.

// ewm applies an exponential recurrence with the given alpha. Leading
// NaNs are preserved; the first defined value seeds the average.
func ewm(vals []float64, alpha float64) []float64 {
	out := make([]float64, len(vals))
	seeded := false
	var prev float64
	for i, v := range vals {
		if !seeded {
			if math.IsNaN(v) {
				out[i] = math.NaN()
				continue
			}
			prev = v
			seeded = true
			out[i] = v
			continue
		}
		prev = alpha*v + (1-alpha)*prev
		out[i] = prev
	}
	return out
}

// ewmSpan is ewm with the span parameterization alpha = 2/(span+1).
func ewmSpan(vals []float64, span int) []float64 {
	return ewm(vals, 2/(float64(span)+1))
}

// wilder is ewm with alpha = 1/period (Wilder smoothing).
func wilder(vals []float64, period int) []float64 {
	return ewm(vals, 1/float64(period))
}

// rollingMean is a trailing arithmetic mean, NaN until the window is
// full or while the window still contains an undefined value.
func rollingMean(vals []float64, window int) []float64 {
	out := make([]float64, len(vals))
	for i := range vals {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		sum := 0.0
		ok := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(vals[j]) {
				ok = false
				break
			}
			sum += vals[j]
		}
		if !ok {
			out[i] = math.NaN()
			continue
		}
		out[i] = sum / float64(window)
	}
	return out
}

func rollingMin(vals []float64, window int) []float64 {
	return rollingExtreme(vals, window, math.Min)
}

func rollingMax(vals []float64, window int) []float64 {
	return rollingExtreme(vals, window, math.Max)
}

func rollingExtreme(vals []float64, window int, pick func(a, b float64) float64) []float64 {
	out := make([]float64, len(vals))
	for i := range vals {
		if i < window-1 {
			out[i] = math.NaN()
			continue
		}
		ext := vals[i]
		for j := i - window + 1; j < i; j++ {
			ext = pick(ext, vals[j])
		}
		out[i] = ext
	}
	return out
}

// backfill replaces leading NaNs with the first defined value, so the
// trend engine never observes an undefined input mid-stream. A series
// that never becomes defined collapses to zero.
func backfill(vals []float64) {
	first := 0.0
	idx := -1
	for i, v := range vals {
		if !math.IsNaN(v) {
			first = v
			idx = i
			break
		}
	}
	if idx == -1 {
		for i := range vals {
			vals[i] = 0
		}
		return
	}
	for i := 0; i < idx; i++ {
		vals[i] = first
	}
}
