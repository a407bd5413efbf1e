package utils

// POW is an integer power speedup for the common small exponents that appear
// in the collapsed coordinate recurrences.
func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if p < 0 {
		p = -pp
		flipped = true
	}
	y = 1
	for i := 0; i < p; i++ {
		y *= x
	}
	if flipped {
		y = 1 / y
	}
	return
}

// Choose is the binomial coefficient for the small arguments used in
// derivative multi-index counting.
func Choose(n, k int) (c int) {
	if k < 0 || k > n {
		return 0
	}
	c = 1
	for i := 0; i < k; i++ {
		c = c * (n - i) / (i + 1)
	}
	return
}
