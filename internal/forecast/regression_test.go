package forecast

import (
	"testing"

	ierr "github.com/biznesassistant/biznesassistant/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitRejectsShortOrFlatHistory(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"empty", nil},
		{"two points", []float64{1, 2}},
		{"flat", []float64{100, 100, 100}},
		{"flat zeros", []float64{0, 0, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.values)
			require.Error(t, err)
			assert.True(t, ierr.IsInsufficientData(err))
		})
	}
}

func TestFitPerfectLine(t *testing.T) {
	line, err := Fit([]float64{100, 200, 300})
	require.NoError(t, err)

	assert.InDelta(t, 100, line.Slope, 1e-9)
	assert.InDelta(t, 100, line.Intercept, 1e-9)
	assert.InDelta(t, 200, line.Mean, 1e-9)
	assert.InDelta(t, 0, line.ResidualVariance, 1e-9)

	next := line.Predict(3)
	require.Len(t, next, 3)
	assert.InDelta(t, 400, next[0], 1e-9)
	assert.InDelta(t, 500, next[1], 1e-9)
	assert.InDelta(t, 600, next[2], 1e-9)

	assert.Equal(t, 100.0, line.Confidence())
}

func TestPredictClampsAtZero(t *testing.T) {
	line, err := Fit([]float64{300, 200, 100})
	require.NoError(t, err)

	next := line.Predict(4)
	assert.InDelta(t, 0, next[0], 1e-9)
	for _, v := range next {
		assert.GreaterOrEqual(t, v, 0.0)
	}
}

func TestConfidence(t *testing.T) {
	t.Run("noisy series is penalised", func(t *testing.T) {
		line, err := Fit([]float64{10, 30, 10, 30})
		require.NoError(t, err)
		// residual variance 80 over mean 20
		assert.Equal(t, 0.0, line.Confidence())
	})

	t.Run("non positive mean is neutral", func(t *testing.T) {
		line, err := Fit([]float64{-10, 0, 10})
		require.NoError(t, err)
		assert.Equal(t, 50.0, line.Confidence())
	})

	t.Run("small noise keeps a high score", func(t *testing.T) {
		line, err := Fit([]float64{1000, 1100, 1190, 1310})
		require.NoError(t, err)
		assert.Greater(t, line.Confidence(), 90.0)
		assert.LessOrEqual(t, line.Confidence(), 100.0)
	})
}

func TestPredictNonPositiveSteps(t *testing.T) {
	line, err := Fit([]float64{1, 2, 4})
	require.NoError(t, err)
	assert.Nil(t, line.Predict(0))
}
