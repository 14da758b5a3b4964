// Package forecast fits a straight line through an evenly spaced series
// and projects it forward.
package forecast

import (
	"math"

	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
)

// MinPoints is the shortest history a line can be fitted to
const MinPoints = 3

// neutralConfidence is reported when the series mean is not positive
const neutralConfidence = 50.0

// Line is an ordinary least squares fit of value = Slope*index + Intercept,
// where index runs 0..n-1 over the observed points.
type Line struct {
	Slope     float64
	Intercept float64
	// N is the number of observed points
	N int
	// Mean of the observed values
	Mean float64
	// ResidualVariance is the mean squared distance of the points from the line
	ResidualVariance float64
}

// Fit fits a line to values. It fails with an insufficient data error when there
// are fewer than MinPoints values, when every value is identical or when
// the index variance degenerates.
func Fit(values []float64) (*Line, error) {
	n := len(values)
	if n < MinPoints {
		return nil, ierr.NewErrorf("need at least %d data points, got %d", MinPoints, n).
			WithHintf("At least %d periods of history are required to forecast", MinPoints).
			WithReportableDetails(map[string]any{
				"points":     n,
				"min_points": MinPoints,
			}).
			Mark(ierr.ErrInsufficientData)
	}

	if allEqual(values) {
		return nil, ierr.NewError("historical values have zero variance").
			WithHint("History has no variation, no trend can be fitted").
			Mark(ierr.ErrInsufficientData)
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	nf := float64(n)
	denominator := nf*sumXX - sumX*sumX
	if denominator == 0 {
		return nil, ierr.NewError("degenerate regression denominator").
			WithHint("History is not suitable for a linear trend").
			Mark(ierr.ErrInsufficientData)
	}

	slope := (nf*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / nf

	line := &Line{
		Slope:     slope,
		Intercept: intercept,
		N:         n,
		Mean:      sumY / nf,
	}

	var sq float64
	for i, y := range values {
		d := y - line.At(float64(i))
		sq += d * d
	}
	line.ResidualVariance = sq / nf

	return line, nil
}

// At evaluates the line at an index
func (l *Line) At(index float64) float64 {
	return l.Slope*index + l.Intercept
}

// Predict projects the line steps points past the last observation.
// Projections are never negative.
func (l *Line) Predict(steps int) []float64 {
	if steps <= 0 {
		return nil
	}

	out := make([]float64, steps)
	for i := 1; i <= steps; i++ {
		out[i-1] = math.Max(0, l.At(float64(l.N-1+i)))
	}
	return out
}

// Confidence is a 0..100 goodness score derived from the residual variance
// relative to the mean. It is a heuristic, not a statistical interval.
func (l *Line) Confidence() float64 {
	if l.Mean <= 0 {
		return neutralConfidence
	}
	score := 100 - (l.ResidualVariance/l.Mean)*100
	score = math.Max(0, math.Min(100, score))
	return math.Round(score*100) / 100
}

func allEqual(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
