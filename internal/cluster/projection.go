package cluster

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Projection is a fixed 2-component principal-component embedding of the
// normalized metric space. It is fit once over all sessions and the same
// basis projects sessions and centroids, so scatter points and centroid
// markers share a coordinate system.
type Projection struct {
	mean       []float64
	components *mat.Dense // dims x 2
	varShare   float64    // fraction of variance explained by the 2 components
}

// FitProjection fits the projection on the row-per-session matrix.
func FitProjection(x [][]float64) (*Projection, error) {
	n := len(x)
	if n < 2 {
		return nil, errors.New("projection requires at least 2 sessions")
	}
	dims := len(x[0])
	if dims < 2 {
		return nil, fmt.Errorf("projection requires at least 2 metric columns, got %d", dims)
	}

	data := mat.NewDense(n, dims, nil)
	mean := make([]float64, dims)
	for r := range x {
		data.SetRow(r, x[r])
		for c, v := range x[r] {
			mean[c] += v
		}
	}
	for c := range mean {
		mean[c] /= float64(n)
	}

	var pc stat.PC
	if ok := pc.PrincipalComponents(data, nil); !ok {
		return nil, errors.New("principal component decomposition failed")
	}

	var vectors mat.Dense
	pc.VectorsTo(&vectors)
	components := mat.DenseCopyOf(vectors.Slice(0, dims, 0, 2))

	vars := pc.VarsTo(nil)
	totalVar := 0.0
	for _, v := range vars {
		totalVar += v
	}
	varShare := 0.0
	if totalVar > 0 {
		varShare = (vars[0] + vars[1]) / totalVar
	}

	return &Projection{mean: mean, components: components, varShare: varShare}, nil
}

// Project maps a vector onto the fitted 2D basis.
func (p *Projection) Project(v []float64) (x, y float64) {
	for c := range p.mean {
		centered := v[c] - p.mean[c]
		x += centered * p.components.At(c, 0)
		y += centered * p.components.At(c, 1)
	}
	return x, y
}

// ProjectAll maps every row onto the fitted basis.
func (p *Projection) ProjectAll(rows [][]float64) [][2]float64 {
	coords := make([][2]float64, len(rows))
	for i, row := range rows {
		x, y := p.Project(row)
		coords[i] = [2]float64{x, y}
	}
	return coords
}

// ExplainedVariance returns the fraction of total variance captured by the
// two retained components.
func (p *Projection) ExplainedVariance() float64 {
	return p.varShare
}
