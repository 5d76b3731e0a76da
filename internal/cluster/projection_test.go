package cluster

import (
	"math"
	"testing"
)

func TestFitProjectionErrors(t *testing.T) {
	if _, err := FitProjection([][]float64{{1, 2}}); err == nil {
		t.Error("expected error for fewer than 2 sessions")
	}
	if _, err := FitProjection([][]float64{{1}, {2}}); err == nil {
		t.Error("expected error for fewer than 2 columns")
	}
}

func TestProjectIsAffine(t *testing.T) {
	x := blobs([][]float64{{0, 0, 0}, {5, 5, 5}}, 10, 2.0, 17)

	proj, err := FitProjection(x)
	if err != nil {
		t.Fatalf("FitProjection: %v", err)
	}

	// Projecting the midpoint of two vectors lands on the midpoint of
	// their projections
	a, b := x[0], x[10]
	mid := make([]float64, len(a))
	for i := range a {
		mid[i] = (a[i] + b[i]) / 2
	}
	ax, ay := proj.Project(a)
	bx, by := proj.Project(b)
	mx, my := proj.Project(mid)

	if math.Abs(mx-(ax+bx)/2) > 1e-9 || math.Abs(my-(ay+by)/2) > 1e-9 {
		t.Errorf("midpoint projected to (%v, %v), want (%v, %v)", mx, my, (ax+bx)/2, (ay+by)/2)
	}
}

func TestProjectionCapturesDominantDirection(t *testing.T) {
	// Variance concentrated along the first axis: a 2D projection of 3D
	// data with one near-flat dimension explains nearly everything
	x := [][]float64{
		{0, 0, 0.01},
		{1, 0.1, 0},
		{2, 0.2, 0.01},
		{3, 0.3, 0},
		{4, 0.4, 0.01},
		{5, 0.5, 0},
	}

	proj, err := FitProjection(x)
	if err != nil {
		t.Fatalf("FitProjection: %v", err)
	}
	if share := proj.ExplainedVariance(); share < 0.99 {
		t.Errorf("explained variance = %v, want > 0.99", share)
	}

	// Points further along the dominant axis project further from the
	// start in the plane
	ox, oy := proj.Project(x[0])
	fx, fy := proj.Project(x[5])
	nx, ny := proj.Project(x[1])
	far := math.Hypot(fx-ox, fy-oy)
	near := math.Hypot(nx-ox, ny-oy)
	if far <= near {
		t.Errorf("distance along dominant axis not preserved: far %v <= near %v", far, near)
	}
}

func TestProjectAllMatchesProject(t *testing.T) {
	x := blobs([][]float64{{0, 0}, {10, 10}}, 5, 1.0, 19)

	proj, err := FitProjection(x)
	if err != nil {
		t.Fatalf("FitProjection: %v", err)
	}
	coords := proj.ProjectAll(x)
	if len(coords) != len(x) {
		t.Fatalf("got %d coordinates for %d rows", len(coords), len(x))
	}
	for i, row := range x {
		px, py := proj.Project(row)
		if coords[i][0] != px || coords[i][1] != py {
			t.Fatalf("row %d: ProjectAll gave (%v, %v), Project gave (%v, %v)",
				i, coords[i][0], coords[i][1], px, py)
		}
	}
}
