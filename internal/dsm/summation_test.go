package dsm

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomSet(rng *rand.Rand) Set {
	n := 2 + rng.Intn(4)
	set := make(Set, n)
	for i := range set {
		set[i] = Cylinder{
			Power: -6 * rng.Float64(),
			Axis:  180 * rng.Float64(),
		}
	}
	return set
}

func TestSummation_ConcreteExample(t *testing.T) {
	r, err := Summation([]float64{10, 5, 7}, []float64{30, 60, 120})
	require.NoError(t, err)

	assert.InDelta(t, 7.0, r.Magnitude, 1e-12)
	assert.InDelta(t, 49.1066053508691, r.Angle, 1e-9)
	assert.InDelta(t, -1.0, r.X, 1e-12)
	assert.InDelta(t, 4*math.Sqrt(3), r.Y, 1e-12)
	assert.InDelta(t, 49.1066053508691, r.Axis(), 1e-9)
}

func TestSum_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 100; i++ {
		set := randomSet(rng)
		assert.Equal(t, Sum(set), Sum(set))
	}
}

func TestSum_RotationInvariance(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	offsets := []float64{0.5, 17.5, 90, 133, -42, 400}

	for i := 0; i < 200; i++ {
		set := randomSet(rng)
		base := Sum(set)
		if base.Magnitude < 1e-3 {
			continue
		}
		for _, off := range offsets {
			rot := Sum(set.Rotate(off))
			assert.InDelta(t, base.Magnitude, rot.Magnitude, 1e-9)
			assert.InDelta(t, 0, AxisDistance(rot.Axis(), base.Axis()+off), 1e-7,
				"offset %v: base %v rotated %v", off, base.Axis(), rot.Axis())
		}
	}
}

func TestSum_ScaleLinearity(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	for i := 0; i < 200; i++ {
		set := randomSet(rng)
		base := Sum(set)
		if base.Magnitude < 1e-3 {
			continue
		}
		for _, s := range []float64{0.25, 1, 2.5, 40} {
			scaled := Sum(set.Scale(s))
			assert.InDelta(t, s*base.Magnitude, scaled.Magnitude, 1e-9*s)
			assert.InDelta(t, 0, AxisDistance(base.Angle, scaled.Angle), 1e-9)
		}
	}
}

func TestSum_SingleComponent(t *testing.T) {
	tests := []struct {
		name  string
		power float64
		axis  float64
		mag   float64
		want  float64
	}{
		{"plus on axis", 2.5, 30, 2.5, 30},
		{"plus wrapped", 1.0, 200, 1.0, 20},
		{"plus negative axis", 3.0, -15, 3.0, 165},
		{"plus zero axis", 4.0, 0, 4.0, 0},
		{"plus vertical", 1.5, 90, 1.5, 90},
		{"minus transposed", -2.0, 30, 2.0, 120},
		{"minus horizontal", -1.25, 0, 1.25, 90},
		{"minus vertical", -0.75, 90, 0.75, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Summation([]float64{tt.power}, []float64{tt.axis})
			require.NoError(t, err)
			assert.InDelta(t, tt.mag, r.Magnitude, 1e-12)
			assert.InDelta(t, 0, AxisDistance(r.Axis(), tt.want), 1e-9, "axis %v", r.Axis())

			if tt.power < 0 {
				mc := r.MinusCylinder()
				assert.InDelta(t, tt.power, mc.Power, 1e-12)
				assert.InDelta(t, 0, AxisDistance(mc.Axis, tt.axis), 1e-9)
			}
		})
	}
}

func TestSum_AngleRange(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for i := 0; i < 1000; i++ {
		r := Sum(randomSet(rng))
		assert.Greater(t, r.Angle, -90.0)
		assert.LessOrEqual(t, r.Angle, 90.0)
		assert.GreaterOrEqual(t, r.Axis(), 0.0)
		assert.Less(t, r.Axis(), 180.0)
	}

	// y == -0 with x < 0 is the atan2 branch cut.
	r := resultantOf(-2, math.Copysign(0, -1))
	assert.Equal(t, 90.0, r.Angle)
}

func TestSum_Cancellation(t *testing.T) {
	r := Sum(Set{{Power: -2, Axis: 45}, {Power: 2, Axis: 45}})
	assert.Zero(t, r.Magnitude)
	assert.Zero(t, r.Angle)
	assert.Equal(t, Cylinder{}, r.MinusCylinder())

	assert.Equal(t, Resultant{}, Sum(nil))
}

func TestSummation_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		powers []float64
		axes   []float64
	}{
		{"length mismatch", []float64{1, 2}, []float64{10}},
		{"empty", nil, nil},
		{"nan power", []float64{math.NaN()}, []float64{10}},
		{"inf axis", []float64{1}, []float64{math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Summation(tt.powers, tt.axes)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestNormalizeAxis(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{30, 30},
		{180, 0},
		{190, 10},
		{360, 0},
		{-30, 150},
		{-180, 0},
		{-1e-17, 0},
		{179.5, 179.5},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeAxis(tt.in), 1e-12, "NormalizeAxis(%v)", tt.in)
	}
}

func TestAxisDistance(t *testing.T) {
	assert.InDelta(t, 10, AxisDistance(5, 175), 1e-12)
	assert.InDelta(t, 90, AxisDistance(0, 90), 1e-12)
	assert.InDelta(t, 0, AxisDistance(0, 180), 1e-12)
	assert.InDelta(t, 20, AxisDistance(100, 80), 1e-12)
}
