// Package sparse implements a minimal compressed-sparse-row matrix, the
// feature-vector representation static_analysis.py builds with
// scipy.sparse.csr_matrix and merges with scipy.sparse.vstack. No pack
// example repo imports a sparse-matrix library (gonum's sparse support is
// experimental and not used anywhere in the corpus), so this is a
// deliberately small stdlib-only type covering exactly what the
// classification pipeline needs: build one row from a dense probability
// vector, then stack many rows into the matrix a classifier consumes.
package sparse

import "fmt"

// Matrix is a row-major compressed-sparse-row matrix. IndPtr has Rows+1
// entries; row i's nonzero entries are Indices[IndPtr[i]:IndPtr[i+1]] with
// values Data[IndPtr[i]:IndPtr[i+1]], mirroring scipy's csr_matrix layout.
type Matrix struct {
	Rows, Cols int
	IndPtr     []int
	Indices    []int
	Data       []float64
}

// NewRowFromDense builds a single-row matrix from a dense vector,
// mirroring csr_matrix(features_vect): zero entries are dropped.
func NewRowFromDense(vec []float64) *Matrix {
	m := &Matrix{Rows: 1, Cols: len(vec), IndPtr: []int{0}}
	for i, v := range vec {
		if v != 0 {
			m.Indices = append(m.Indices, i)
			m.Data = append(m.Data, v)
		}
	}
	m.IndPtr = append(m.IndPtr, len(m.Data))
	return m
}

// NNZ returns the number of stored (nonzero) entries, mirroring csr.nnz.
func (m *Matrix) NNZ() int { return len(m.Data) }

// Row materializes row i as a dense []float64, used by the classifier
// adapter to hand the external random-forest process a plain feature row.
func (m *Matrix) Row(i int) []float64 {
	row := make([]float64, m.Cols)
	for k := m.IndPtr[i]; k < m.IndPtr[i+1]; k++ {
		row[m.Indices[k]] = m.Data[k]
	}
	return row
}

// VStack concatenates rows row-wise into one matrix, mirroring
// sparse.vstack((concat_features, features), format='csr')'s accumulation
// loop in worker_features_representation/get_features_representation. A
// nil matrix in mats is skipped (the None-initial-accumulator case).
func VStack(mats ...*Matrix) (*Matrix, error) {
	var cols = -1
	for _, m := range mats {
		if m == nil {
			continue
		}
		if cols == -1 {
			cols = m.Cols
		} else if m.Cols != cols {
			return nil, fmt.Errorf("sparse: cannot vstack matrices with different column counts (%d vs %d)", cols, m.Cols)
		}
	}
	if cols == -1 {
		cols = 0
	}
	out := &Matrix{Cols: cols, IndPtr: []int{0}}
	for _, m := range mats {
		if m == nil {
			continue
		}
		out.Indices = append(out.Indices, m.Indices...)
		out.Data = append(out.Data, m.Data...)
		for r := 0; r < m.Rows; r++ {
			rowNNZ := m.IndPtr[r+1] - m.IndPtr[r]
			out.IndPtr = append(out.IndPtr, out.IndPtr[len(out.IndPtr)-1]+rowNNZ)
		}
		out.Rows += m.Rows
	}
	return out, nil
}
