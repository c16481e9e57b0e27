package dsm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearSphericalApproximation(t *testing.T) {
	assert.InDelta(t, 2*2*math.Pi/180, NearSphericalApproximation(-2, 1), 1e-15)
	assert.InDelta(t, 2*2*math.Pi/180, NearSphericalApproximation(2, -1), 1e-15)
	assert.Zero(t, NearSphericalApproximation(-4, 0))
	assert.Zero(t, NearSphericalApproximation(0, 3))
}

func TestNearSphericalApproximation_AgainstSummation(t *testing.T) {
	for _, power := range []float64{-0.5, -1.75, -6} {
		for _, phi := range []float64{0.1, 0.5, 1, 2, 3} {
			exact := Sum(Set{{Power: power, Axis: 0}, {Power: -power, Axis: phi}}).Magnitude
			assert.InDelta(t, 2*math.Abs(power)*math.Sin(deg2rad(phi)), exact, 1e-12)

			approx := NearSphericalApproximation(power, phi)
			assert.GreaterOrEqual(t, approx, exact)
			assert.Less(t, approx-exact, 1e-3, "power %v phi %v", power, phi)
		}
	}
}

func TestNearSphericalApproximation_DegradesWithAngle(t *testing.T) {
	power := -3.0
	prev := 0.0
	for _, phi := range []float64{1, 5, 10, 20, 40} {
		exact := Sum(Set{{Power: power, Axis: 0}, {Power: -power, Axis: phi}}).Magnitude
		rel := (NearSphericalApproximation(power, phi) - exact) / exact
		assert.Greater(t, rel, prev)
		prev = rel
	}
	assert.Greater(t, prev, 0.05)
}

func TestEstimateRotation(t *testing.T) {
	t.Run("derivative", func(t *testing.T) {
		set := fixtureSet(t)
		est, err := EstimateRotation(set, 0, 0.1)
		require.NoError(t, err)
		assert.Equal(t, MethodDerivative, est.Method)

		want, _ := RotationalSensitivity(set, 0, 0.1)
		assert.Equal(t, want, est.Delta)
	})

	t.Run("near spherical fallback", func(t *testing.T) {
		sets := []Set{
			{{Power: -2, Axis: 10}, {Power: 2, Axis: 10}},
			{{Power: 1, Axis: 0}, {Power: 1, Axis: 60}, {Power: 1, Axis: 120}},
		}
		for _, set := range sets {
			for i := range set {
				est, err := EstimateRotation(set, i, 0.5)
				require.NoError(t, err)
				assert.Equal(t, MethodNearSpherical, est.Method)

				rotated, _ := set.RotateComponent(i, 0.5)
				assert.InDelta(t, Sum(rotated).Magnitude, est.Delta, 1e-6)
			}
		}
	})

	t.Run("bad index", func(t *testing.T) {
		_, err := EstimateRotation(fixtureSet(t), 9, 0.1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})
}
