package sweep

import (
	"context"
	"testing"

	"github.com/san-kum/cylsum/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerturbations_ErrorGrowsWithAngle(t *testing.T) {
	cfg := validate.DefaultConfig()
	cfg.Systems = 1000

	points, err := NewGrid(cfg).Perturbations(context.Background(), []float64{0.01, 0.1, 1, 5})
	require.NoError(t, err)
	require.Len(t, points, 4)

	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].MaxAbs, points[i-1].MaxAbs)
		assert.Equal(t, points[0].Trials, points[i].Trials)
	}

	at, ok := Breakpoint(points, 1e-3)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, at, 0.1)
	assert.Less(t, at, 5.0)
}

func TestPerturbations_InvalidConfig(t *testing.T) {
	_, err := NewGrid(validate.DefaultConfig()).Perturbations(context.Background(), []float64{0})
	assert.ErrorIs(t, err, validate.ErrInvalidConfig)
}

func TestMisalignments(t *testing.T) {
	points := NewGrid(validate.DefaultConfig()).Misalignments(-4, Linspace(0.5, 20, 40))
	require.Len(t, points, 40)

	for i := 1; i < len(points); i++ {
		assert.Greater(t, points[i].MaxRelative, points[i-1].MaxRelative)
	}
	assert.Less(t, points[0].MaxAbs, 1e-4)

	// 2|C|(φ - sin φ) first passes 1e-3 between 5° and 5.5° for |C| = 4.
	at, ok := Breakpoint(points, 1e-3)
	assert.True(t, ok)
	assert.InDelta(t, 5.0, at, 1e-9)
}

func TestBreakpoint_NoneWithin(t *testing.T) {
	_, ok := Breakpoint([]Point{{X: 1, MaxAbs: 1}}, 1e-3)
	assert.False(t, ok)
}

func TestSpacing(t *testing.T) {
	assert.Equal(t, []float64{0, 0.5, 1}, Linspace(0, 1, 3))
	assert.Equal(t, []float64{2}, Linspace(2, 3, 1))
	assert.Nil(t, Linspace(0, 1, 0))

	ls := Logspace(0.01, 10, 4)
	require.Len(t, ls, 4)
	assert.Equal(t, 0.01, ls[0])
	assert.InDelta(t, 0.1, ls[1], 1e-12)
	assert.InDelta(t, 1, ls[2], 1e-12)
	assert.Equal(t, 10.0, ls[3])
	assert.Nil(t, Logspace(0, 1, 3))
}
