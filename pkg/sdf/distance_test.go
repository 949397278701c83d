package sdf

import (
	"math"
	"testing"

	"github.com/mtarnawa/sdfray/pkg/geom"
)

const tol = 1e-9

func TestSphereSurface(t *testing.T) {
	// Points at Euclidean distance r from the origin must evaluate to ~0.
	r := 0.5
	dirs := []geom.Vec3{
		{X: 1}, {Y: 1}, {Z: 1},
		{X: -1}, {Y: -1}, {Z: -1},
		{X: 1, Y: 1, Z: 1},
		{X: -0.3, Y: 0.8, Z: 0.5},
	}
	for _, d := range dirs {
		p := d.Normalize().Scale(r)
		if got := Sphere(p, r); math.Abs(got) > tol {
			t.Errorf("Sphere(%v, %v) = %v, expected ~0", p, r, got)
		}
	}
}

func TestSphereSign(t *testing.T) {
	if d := Sphere(geom.V(0, 0, 0), 1); math.Abs(d+1) > tol {
		t.Errorf("center distance = %v, expected -1", d)
	}
	if d := Sphere(geom.V(2, 0, 0), 1); math.Abs(d-1) > tol {
		t.Errorf("outside distance = %v, expected 1", d)
	}
}

func TestBox(t *testing.T) {
	he := geom.V(1, 2, 3)
	cases := []struct {
		name string
		p    geom.Vec3
		want float64
	}{
		{"face +x", geom.V(3, 0, 0), 2},
		{"face -y", geom.V(0, -5, 0), 3},
		{"corner", geom.V(2, 3, 4), math.Sqrt(3)},
		{"surface", geom.V(1, 0, 0), 0},
		{"inside", geom.V(0, 0, 0), -1}, // nearest face is x at distance 1
	}
	for _, tc := range cases {
		if got := Box(tc.p, he); math.Abs(got-tc.want) > tol {
			t.Errorf("%s: Box(%v) = %v, expected %v", tc.name, tc.p, got, tc.want)
		}
	}
}

func TestRoundedBox(t *testing.T) {
	he := geom.V(1, 1, 1)
	// Rounding uniformly shrinks the distance by the rounding radius.
	plain := Box(geom.V(3, 0, 0), he)
	rounded := RoundedBox(geom.V(3, 0, 0), he, 0.25)
	if math.Abs(plain-rounded-0.25) > tol {
		t.Errorf("rounding offset = %v, expected 0.25", plain-rounded)
	}
}

func TestEllipsoid(t *testing.T) {
	radii := geom.V(1, 2, 3)
	// On-axis surface points are exact for the bound approximation.
	surf := []geom.Vec3{{X: 1}, {Y: 2}, {Z: 3}, {X: -1}, {Y: -2}, {Z: -3}}
	for _, p := range surf {
		if got := Ellipsoid(p, radii); math.Abs(got) > 1e-6 {
			t.Errorf("Ellipsoid(%v) = %v, expected ~0", p, got)
		}
	}
	if d := Ellipsoid(geom.V(0.1, 0.1, 0.1), radii); d >= 0 {
		t.Errorf("interior distance = %v, expected negative", d)
	}
}

func TestEllipsoidDegenerate(t *testing.T) {
	// A zero denominator must produce the far sentinel, never NaN or Inf.
	cases := []struct {
		p, radii geom.Vec3
	}{
		{geom.V(0, 0, 0), geom.V(1, 1, 1)}, // point at origin: k1 == 0
		{geom.V(1, 1, 1), geom.V(0, 1, 1)}, // degenerate radius
	}
	for _, tc := range cases {
		got := Ellipsoid(tc.p, tc.radii)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Fatalf("Ellipsoid(%v, %v) = %v, expected finite sentinel", tc.p, tc.radii, got)
		}
		if got != Far {
			t.Errorf("Ellipsoid(%v, %v) = %v, expected Far", tc.p, tc.radii, got)
		}
	}
}

func TestCapsule(t *testing.T) {
	// Radius 0.5, height 2: cap centers at y = -1 and y = +1.
	cases := []struct {
		name string
		p    geom.Vec3
		want float64
	}{
		{"equator", geom.V(1, 0, 0), 0.5},
		{"axis center", geom.V(0, 0, 0), -0.5},
		{"above top cap", geom.V(0, 2, 0), 0.5},
		{"top cap surface", geom.V(0, 1.5, 0), 0},
		{"side surface", geom.V(0.5, 0.7, 0), 0},
	}
	for _, tc := range cases {
		if got := Capsule(tc.p, 0.5, 2); math.Abs(got-tc.want) > tol {
			t.Errorf("%s: Capsule(%v) = %v, expected %v", tc.name, tc.p, got, tc.want)
		}
	}
}

func TestTorus(t *testing.T) {
	major, minor := 2.0, 0.5
	cases := []struct {
		name string
		p    geom.Vec3
		want float64
	}{
		{"outer equator", geom.V(2.5, 0, 0), 0},
		{"inner equator", geom.V(1.5, 0, 0), 0},
		{"ring center", geom.V(2, 0, 0), -0.5},
		{"world origin", geom.V(0, 0, 0), 1.5},
		{"above ring", geom.V(2, 0.5, 0), 0},
		{"on z axis ring", geom.V(0, 0, 2), -0.5},
	}
	for _, tc := range cases {
		if got := Torus(tc.p, major, minor); math.Abs(got-tc.want) > tol {
			t.Errorf("%s: Torus(%v) = %v, expected %v", tc.name, tc.p, got, tc.want)
		}
	}
}

func TestCylinder(t *testing.T) {
	// Radius 1, height 2.
	cases := []struct {
		name string
		p    geom.Vec3
		want float64
	}{
		{"side", geom.V(2, 0, 0), 1},
		{"top", geom.V(0, 2, 0), 1},
		{"inside center", geom.V(0, 0, 0), -1},
		{"rim corner", geom.V(2, 2, 0), math.Sqrt2},
		{"side surface", geom.V(1, 0.5, 0), 0},
	}
	for _, tc := range cases {
		if got := Cylinder(tc.p, 1, 2); math.Abs(got-tc.want) > tol {
			t.Errorf("%s: Cylinder(%v) = %v, expected %v", tc.name, tc.p, got, tc.want)
		}
	}
}

// Lower-bound property spot check: stepping by the reported distance must
// converge onto the surface without ever landing inside the solid.
func TestLowerBoundProperty(t *testing.T) {
	// Each ray aims at an interior point of its solid so the surface is
	// always crossed. The torus aim sits on the ring itself; a ray through
	// the origin can pass the hole without touching the surface.
	shapes := []struct {
		name string
		eval func(geom.Vec3) float64
		aim  geom.Vec3
	}{
		{"sphere", func(p geom.Vec3) float64 { return Sphere(p, 0.7) }, geom.Vec3{}},
		{"box", func(p geom.Vec3) float64 { return Box(p, geom.V(0.5, 0.6, 0.7)) }, geom.Vec3{}},
		{"torus", func(p geom.Vec3) float64 { return Torus(p, 1, 0.3) }, geom.V(1, 0, 0)},
		{"cylinder", func(p geom.Vec3) float64 { return Cylinder(p, 0.5, 1.2) }, geom.Vec3{}},
		{"capsule", func(p geom.Vec3) float64 { return Capsule(p, 0.4, 1) }, geom.Vec3{}},
		{"ellipsoid", func(p geom.Vec3) float64 { return Ellipsoid(p, geom.V(0.5, 0.9, 1.3)) }, geom.Vec3{}},
	}
	origins := []geom.Vec3{
		geom.V(3, 0, 0), geom.V(0, 3, 0), geom.V(0, 0, 3),
		geom.V(2, 2, 2), geom.V(-3, 1, -1),
	}
	for _, s := range shapes {
		for _, o := range origins {
			dir := s.aim.Sub(o).Normalize()
			p := o
			converged := false
			for i := 0; i < 64; i++ {
				d := s.eval(p)
				if d < -1e-6 {
					t.Errorf("%s: ray from %v stepped inside the solid, distance %v", s.name, o, d)
					break
				}
				if d < 1e-4 {
					converged = true
					break
				}
				p = p.Add(dir.Scale(d))
			}
			if !converged {
				t.Errorf("%s: march from %v stalled at distance %v", s.name, o, s.eval(p))
			}
		}
	}
}
