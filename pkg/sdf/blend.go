package sdf

import "math"

// Hard CSG operators. Min and max preserve the lower-bound property of
// their inputs exactly, so composites built from them remain safe to march.

// Union returns the hard union of two distances.
func Union(d1, d2 float64) float64 {
	return math.Min(d1, d2)
}

// Subtraction carves the second solid out of the first.
func Subtraction(d1, d2 float64) float64 {
	return math.Max(d1, -d2)
}

// Intersection keeps only the overlap of the two solids.
func Intersection(d1, d2 float64) float64 {
	return math.Max(d1, d2)
}

// SmoothUnion blends two distances with the quadratic polynomial smooth
// minimum. k is the blend radius in scene units; k == 0 degenerates to the
// hard union.
func SmoothUnion(d1, d2, k float64) float64 {
	if k <= 0 {
		return Union(d1, d2)
	}
	h := clamp01(0.5 + 0.5*(d2-d1)/k)
	return mix(d2, d1, h) - k*h*(1-h)
}

// SmoothSubtraction is the sign-flipped variant of SmoothUnion that carves
// the second solid out of the first with a rounded seam.
func SmoothSubtraction(d1, d2, k float64) float64 {
	if k <= 0 {
		return Subtraction(d1, d2)
	}
	h := clamp01(0.5 - 0.5*(d1+d2)/k)
	return mix(d1, -d2, h) + k*h*(1-h)
}

// SmoothIntersection blends the overlap of two solids with a rounded seam.
func SmoothIntersection(d1, d2, k float64) float64 {
	if k <= 0 {
		return Intersection(d1, d2)
	}
	h := clamp01(0.5 - 0.5*(d2-d1)/k)
	return mix(d2, d1, h) + k*h*(1-h)
}

// ExponentialSmoothUnion blends with the exponential smooth minimum. Larger
// k gives a tighter blend. k == 0 degenerates to the hard union.
func ExponentialSmoothUnion(d1, d2, k float64) float64 {
	if k == 0 {
		return Union(d1, d2)
	}
	res := math.Exp2(-k*d1) + math.Exp2(-k*d2)
	return -math.Log2(res) / k
}

// PowerSmoothUnion blends with the power smooth minimum. The formula's
// exponent domain requires strictly positive bases; non-positive inputs
// fall back to the hard union.
func PowerSmoothUnion(d1, d2, k float64) float64 {
	if k == 0 || d1 <= 0 || d2 <= 0 {
		return Union(d1, d2)
	}
	a := math.Pow(d1, k)
	b := math.Pow(d2, k)
	return math.Pow(a*b/(a+b), 1/k)
}

// CubicSmoothUnion blends with the cubic polynomial smooth minimum, which
// has continuous second derivatives across the seam. k == 0 degenerates to
// the hard union.
func CubicSmoothUnion(d1, d2, k float64) float64 {
	if k <= 0 {
		return Union(d1, d2)
	}
	h := math.Max(k-math.Abs(d1-d2), 0) / k
	s := h * h * h / 2 * k / 3
	if d1 < d2 {
		return d1 - s
	}
	return d2 - s
}

// DistanceAwareSmoothUnion applies the quadratic smooth union only while the
// two surfaces are within minDist of each other. Beyond that separation it
// returns the hard union exactly, which keeps geometrically distant parts
// (fingers, limbs mid-animation) from visually merging. As the separation
// shrinks the blend coefficient ramps up linearly to k.
func DistanceAwareSmoothUnion(d1, d2, k, minDist float64) float64 {
	if k == 0 || minDist <= 0 {
		return Union(d1, d2)
	}
	sep := math.Abs(d1 - d2)
	if sep > minDist {
		return Union(d1, d2)
	}
	return SmoothUnion(d1, d2, k*(1-sep/minDist))
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}
