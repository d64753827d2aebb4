package msdf

import "math"

const solveEpsilon = 1e-14

// solveQuadratic returns the real roots of a*x^2 + b*x + c = 0.
func solveQuadratic(a, b, c float64) []float64 {
	if math.Abs(a) < solveEpsilon {
		if math.Abs(b) < solveEpsilon {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	switch {
	case disc > 0:
		sq := math.Sqrt(disc)
		return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
	case disc == 0:
		return []float64{-b / (2 * a)}
	default:
		return nil
	}
}

// solveCubic returns the real roots of a*x^3 + b*x^2 + c*x + d = 0.
func solveCubic(a, b, c, d float64) []float64 {
	if math.Abs(a) < solveEpsilon {
		return solveQuadratic(b, c, d)
	}
	b, c, d = b/a, c/a, d/a

	// Depressed cubic t^3 + p*t + q with x = t - b/3.
	shift := b / 3
	p := c - b*b/3
	q := 2*b*b*b/27 - b*c/3 + d
	disc := q*q/4 + p*p*p/27

	switch {
	case disc > solveEpsilon:
		sq := math.Sqrt(disc)
		return []float64{math.Cbrt(-q/2+sq) + math.Cbrt(-q/2-sq) - shift}
	case disc < -solveEpsilon:
		r := 2 * math.Sqrt(-p/3)
		phi := math.Acos(math.Max(-1, math.Min(1, 3*q/(p*r))))
		return []float64{
			r*math.Cos(phi/3) - shift,
			r*math.Cos((phi+2*math.Pi)/3) - shift,
			r*math.Cos((phi+4*math.Pi)/3) - shift,
		}
	default:
		u := math.Cbrt(-q / 2)
		return []float64{2*u - shift, -u - shift}
	}
}
