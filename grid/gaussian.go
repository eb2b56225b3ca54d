package grid

import (
	"math"

	"github.com/sdifrance/grib2/section"
)

// GaussianIterator decodes Grid Definition Template 3.40, a regular
// Gaussian lat/lon grid: longitude is uniform in i exactly as in 3.0, but
// latitude rows sit at the roots of the Legendre polynomial of degree Nj
// (twice the number of parallels between a pole and the equator) rather
// than at a linear step. The template's own N field (the shared DjOrN
// slot) is not read.
//
// Grounded on original_source/src/grid/gaussian.rs's
// compute_gaussian_latitudes/legendre_roots_iterator: Newton–Raphson root
// finding on the Legendre polynomial, seeded with the Tricomi/Lether-Wenston
// minimax initial guess, called with the grid's full Nj (not Nj/2).
type GaussianIterator struct {
	lats  []float64
	lon0  float64
	dLon  float64
	order *scanOrder
}

// NewGaussianIterator builds an iterator over tmpl's Ni x Nj Gaussian grid.
func NewGaussianIterator(tmpl *section.GridDefinitionTemplate0) (*GaussianIterator, error) {
	mode := ScanningMode(tmpl.ScanningMode)
	if tmpl.Ni == 0 || tmpl.Nj == 0 {
		return nil, &UnsupportedGridError{TemplateNumber: 40, Detail: "quasi-regular or zero-sized grid is not supported"}
	}

	lats := gaussianLatitudes(int(tmpl.Nj))
	if mode.JScansPositive() {
		for i, j := 0, len(lats)-1; i < j; i, j = i+1, j-1 {
			lats[i], lats[j] = lats[j], lats[i]
		}
	}

	lon0 := float64(tmpl.Lo1) * scaledDegree
	dLon := float64(tmpl.Di) * scaledDegree
	if mode.IScansNegative() {
		dLon = -dLon
	}

	return &GaussianIterator{
		lats: lats,
		lon0: lon0, dLon: dLon,
		order: newScanOrder(int(tmpl.Ni), int(tmpl.Nj), mode),
	}, nil
}

// Next implements Iterator.
func (it *GaussianIterator) Next() (Point, bool, error) {
	i, j, ok := it.order.next()
	if !ok {
		return Point{}, false, nil
	}
	return Point{
		Lat: it.lats[j],
		Lon: normalizeLon(it.lon0 + float64(i)*it.dLon),
	}, true, nil
}

// gaussianLatitudes computes the n latitude rows of a Gaussian grid with n
// rows from pole to pole (n == nj, not nj/2): the roots of the degree-n
// Legendre polynomial,
// mapped through asin to degrees, ordered from the north pole side to the
// south (row 0 nearest +90) before any scanning-mode reversal.
func gaussianLatitudes(n int) []float64 {
	lats := make([]float64, n)
	for i, root := range legendreRoots(n) {
		lats[i] = radiansToDegrees(math.Asin(root))
	}
	return lats
}

func radiansToDegrees(r float64) float64 {
	return r * 180 / math.Pi
}

// legendreRoots finds the n roots of the degree-n Legendre polynomial via
// Newton-Raphson, seeded with the Tricomi/Lether-Wenston minimax initial
// guess, per gaussian.rs's legendre_roots_iterator.
func legendreRoots(n int) []float64 {
	nf := float64(n)
	coeff := 1.0 - 1.0/(8*nf*nf) + 1.0/(8*nf*nf*nf)
	roots := make([]float64, n)
	for i := 0; i < n; i++ {
		guess := coeff * math.Cos(float64(4*i+3)*math.Pi/float64(4*n+2))
		roots[i] = findLegendreRoot(n, guess)
	}
	return roots
}

func findLegendreRoot(n int, x float64) float64 {
	for {
		pPrev, p := legendrePolynomial(n, x)
		fpx := legendrePolynomialDerivative(n, x, pPrev, p)
		dx := p / fpx
		x -= dx
		if math.Abs(dx) < epsilon64 {
			break
		}
	}
	return x
}

// epsilon64 mirrors f32::EPSILON from the original Newton-Raphson loop;
// this package works in float64 throughout, so the convergence threshold
// is loosened to the nearest float32 granularity to match its iteration
// count instead of spinning far past the precision the reference
// coefficients actually carry.
const epsilon64 = 1.1920929e-7

// legendrePolynomial evaluates the degree-n Legendre polynomial at x via
// the standard three-term recurrence, returning both P_n(x) and P_(n-1)(x)
// (the latter needed by the derivative formula below). n must be >= 2.
func legendrePolynomial(n int, x float64) (pPrev, p float64) {
	p0, p1 := 1.0, x
	for k := 2; k <= n; k++ {
		pk := (float64(2*k-1)*x*p1 - float64(k-1)*p0) / float64(k)
		p0, p1 = p1, pk
	}
	return p0, p1
}

func legendrePolynomialDerivative(n int, x, pPrev, p float64) float64 {
	return (float64(n) * (pPrev - x*p)) / (1 - x*x)
}
