package stats

import (
	"errors"
	"math"

	"github.com/de-tools/factory-atlas/pkg/models/domain"
)

var (
	// ErrInsufficientData means fewer than two paired samples were supplied,
	// or the two series differ in length.
	ErrInsufficientData = errors.New("stats: insufficient data")

	// ErrZeroVariance means a series is constant, so the correlation or
	// regression denominator is zero. Callers must branch on this instead
	// of treating the result as "no relationship".
	ErrZeroVariance = errors.New("stats: zero variance")
)

func Sum(xs []float64) float64 {
	var total float64
	for _, x := range xs {
		total += x
	}
	return total
}

func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return Sum(xs) / float64(len(xs))
}

// Correlation returns the Pearson product-moment coefficient over paired
// samples. It requires n >= 2 and variance in both series.
func Correlation(x, y []float64) (float64, error) {
	if len(x) != len(y) || len(x) < 2 {
		return 0, ErrInsufficientData
	}

	mx, my := Mean(x), Mean(y)
	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - mx
		dy := y[i] - my
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, ErrZeroVariance
	}
	return cov / math.Sqrt(varX*varY), nil
}

// LinearRegression fits y = slope*x + intercept by ordinary least squares.
// The slope is undefined when x is constant, reported as ErrZeroVariance.
func LinearRegression(x, y []float64) (domain.Regression, error) {
	if len(x) != len(y) || len(x) < 2 {
		return domain.Regression{}, ErrInsufficientData
	}

	mx, my := Mean(x), Mean(y)
	var cov, varX float64
	for i := range x {
		dx := x[i] - mx
		cov += dx * (y[i] - my)
		varX += dx * dx
	}

	if varX == 0 {
		return domain.Regression{}, ErrZeroVariance
	}

	slope := cov / varX
	return domain.Regression{
		Slope:     slope,
		Intercept: my - slope*mx,
	}, nil
}
