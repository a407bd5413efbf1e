package quadrature

import (
	"github.com/notargets/gotab/utils"
)

type scheme struct {
	pts utils.Matrix
	wts []float64
}

// triangleScheme returns a minimal symmetric rule on the unit triangle exact
// for total degree m, when one is tabulated. Rules are from Dunavant,
// "High degree efficient symmetrical Gaussian quadrature rules for the
// triangle", IJNME 21 (1985), with weights rescaled to the unit triangle
// area of 1/2. Built fresh per call so callers can own the arrays.
func triangleScheme(m int) (s scheme, ok bool) {
	switch {
	case m <= 1:
		s = schemeFromOrbits(nil, [][2]float64{{1. / 3., 0.5}})
	case m == 2:
		s = schemeFromOrbits([][2]float64{{1. / 6., 1. / 6.}}, nil)
	case m <= 4:
		s = schemeFromOrbits([][2]float64{
			{0.445948490915965, 0.111690794839005},
			{0.091576213509771, 0.054975871827661},
		}, nil)
	case m == 5:
		s = schemeFromOrbits([][2]float64{
			{0.470142064105115, 0.066197076394253},
			{0.101286507323456, 0.062969590272413},
		}, [][2]float64{{1. / 3., 0.1125}})
	default:
		return
	}
	ok = true
	return
}

// schemeFromOrbits expands symmetry orbits into explicit points. A three
// point orbit with barycentric parameter a contributes (a,a), (1-2a,a) and
// (a,1-2a), each with the orbit weight; a centroid orbit contributes one
// point.
func schemeFromOrbits(threefold [][2]float64, centroid [][2]float64) (s scheme) {
	n := 3*len(threefold) + len(centroid)
	s.pts = utils.NewMatrix(n, 2)
	s.wts = make([]float64, n)
	var c int
	add := func(x, y, w float64) {
		s.pts.Set(c, 0, x)
		s.pts.Set(c, 1, y)
		s.wts[c] = w
		c++
	}
	for _, o := range centroid {
		add(o[0], o[0], o[1])
	}
	for _, o := range threefold {
		a, w := o[0], o[1]
		add(a, a, w)
		add(1-2*a, a, w)
		add(a, 1-2*a, w)
	}
	return
}
