// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package geodesy measures distances on the WGS84 reference ellipsoid.
package geodesy

import (
	"math"

	"github.com/golang/geo/s2"
)

// Ellipsoid describes a reference ellipsoid by its semi-major axis in
// meters and its flattening.
type Ellipsoid struct {
	A float64
	F float64
}

// WGS84 is the World Geodetic System 1984 ellipsoid.
var WGS84 = Ellipsoid{A: 6378137.0, F: 1 / 298.257223563}

const (
	maxIterations = 200
	convergence   = 1e-12
)

// B returns the semi-minor axis in meters.
func (e Ellipsoid) B() float64 { return e.A * (1 - e.F) }

// Distance returns the ellipsoidal distance in meters between a and b at
// zero elevation, using Vincenty's inverse formula.
func (e Ellipsoid) Distance(a, b s2.LatLng) float64 {
	f := e.F
	semiMinor := e.B()

	l := b.Lng.Radians() - a.Lng.Radians()
	u1 := math.Atan((1 - f) * math.Tan(a.Lat.Radians()))
	u2 := math.Atan((1 - f) * math.Tan(b.Lat.Radians()))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	var (
		sinSigma, cosSigma, sigma float64
		cos2Alpha, cos2SigmaM     float64
	)

	lambda := l
	for i := 0; i < maxIterations; i++ {
		sinLambda, cosLambda := math.Sincos(lambda)

		sinSigma = math.Sqrt(sq(cosU2*sinLambda) + sq(cosU1*sinU2-sinU1*cosU2*cosLambda))
		if sinSigma == 0 {
			// coincident points
			return 0
		}

		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cos2Alpha = 1 - sinAlpha*sinAlpha

		// both points on the equator
		cos2SigmaM = 0
		if cos2Alpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cos2Alpha
		}

		c := f / 16 * cos2Alpha * (4 + f*(4-3*cos2Alpha))
		previous := lambda
		lambda = l + (1-c)*f*sinAlpha*(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda-previous) < convergence {
			break
		}
	}

	uSq := cos2Alpha * (e.A*e.A - semiMinor*semiMinor) / (semiMinor * semiMinor)
	bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
	bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
	deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
		bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return semiMinor * bigA * (sigma - deltaSigma)
}

// CumulativeDistances returns, for every point, the distance along the
// polyline from the first point. The first element is always 0.
func (e Ellipsoid) CumulativeDistances(points []s2.LatLng) []float64 {
	if len(points) == 0 {
		return nil
	}

	distances := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		distances[i] = distances[i-1] + e.Distance(points[i-1], points[i])
	}

	return distances
}

// TrackLength returns the length of the polyline in meters. It is the last
// cumulative distance, so both always agree exactly.
func (e Ellipsoid) TrackLength(points []s2.LatLng) float64 {
	distances := e.CumulativeDistances(points)
	if len(distances) == 0 {
		return 0
	}

	return distances[len(distances)-1]
}

// Distance measures between a and b on WGS84.
func Distance(a, b s2.LatLng) float64 { return WGS84.Distance(a, b) }

// CumulativeDistances measures the points on WGS84.
func CumulativeDistances(points []s2.LatLng) []float64 { return WGS84.CumulativeDistances(points) }

// TrackLength measures the points on WGS84.
func TrackLength(points []s2.LatLng) float64 { return WGS84.TrackLength(points) }

func sq(x float64) float64 { return x * x }
