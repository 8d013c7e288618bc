package tfidf

import "math"

// Entry is one non-zero cell of a sparse vector.
type Entry struct {
	Column int
	Weight float64
}

// Vector is a sparse row with entries sorted by column.
type Vector []Entry

// Matrix is a document-term matrix, one row per document in corpus order.
type Matrix []Vector

// Dot computes the dot product of two sparse vectors.
func (v Vector) Dot(o Vector) float64 {
	sum := 0.0
	i, j := 0, 0
	for i < len(v) && j < len(o) {
		switch {
		case v[i].Column == o[j].Column:
			sum += v[i].Weight * o[j].Weight
			i++
			j++
		case v[i].Column < o[j].Column:
			i++
		default:
			j++
		}
	}
	return sum
}

// Norm returns the Euclidean norm.
func (v Vector) Norm() float64 {
	n := 0.0
	for _, e := range v {
		n += e.Weight * e.Weight
	}
	return math.Sqrt(n)
}

// Dense expands the vector to dim columns.
func (v Vector) Dense(dim int) []float64 {
	out := make([]float64, dim)
	for _, e := range v {
		if e.Column < dim {
			out[e.Column] = e.Weight
		}
	}
	return out
}

// normalize divides every weight by the L2 norm in place. A zero vector is left untouched.
func (v Vector) normalize() {
	norm := v.Norm()
	if norm == 0 {
		return
	}
	for i := range v {
		v[i].Weight /= norm
	}
}
