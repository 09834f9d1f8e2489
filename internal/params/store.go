// Package params holds the shared weight matrices trained by
// asynchronous, lock-free SGD ("Hogwild!"), per spec.md §5 and §9.
// Matrices are flat row-major []float32 buffers rather than [][]float32
// so that every element write is a single independent memory location
// — exactly the "raw aligned buffer accessed through a shared handle"
// spec.md §9 asks for, and the natural Go shape for
// alexandres-lexvec's own mVec/mCtx flat slices (main.go, sgd.go).
//
// Deliberately racy: Row, AddScaled and Dot perform ordinary,
// unsynchronized slice reads/writes. Multiple goroutines call AddScaled
// (or write through Row) on overlapping rows
// concurrently during training; torn reads and lost updates are
// accepted by design (spec.md §5) and MUST NOT be fixed with a mutex or
// atomics here, as that would defeat the throughput Hogwild exists for.
package params

// Matrix is a flat, row-major store of Rows x Dim float32 values.
type Matrix struct {
	Rows, Dim int
	Data      []float32
}

// NewMatrix allocates a zero-filled matrix.
func NewMatrix(rows, dim int) *Matrix {
	return &Matrix{Rows: rows, Dim: dim, Data: make([]float32, rows*dim)}
}

// NewMatrixUniform allocates a matrix with every element drawn
// uniformly from [-0.5/dim, +0.5/dim], the initialization spec.md §3
// gives W_in and W_sent.
func NewMatrixUniform(rows, dim int, draw func() float32) *Matrix {
	m := NewMatrix(rows, dim)
	for i := range m.Data {
		m.Data[i] = draw()
	}
	return m
}

// Row returns the backing slice for row i — a direct, unsynchronized
// view into shared memory. Callers read/write through it freely;
// see the package doc for why that is intentional here.
func (m *Matrix) Row(i int32) []float32 {
	off := int(i) * m.Dim
	return m.Data[off : off+m.Dim]
}

// AddScaled performs row[j] += scale*delta[j] for every j, the
// elementwise update every output-layer routine in spec.md §4.5
// performs on W_in/W_out_ns/W_out_hs/W_sent. No locking: see package
// doc.
func (m *Matrix) AddScaled(i int32, delta []float32, scale float32) {
	row := m.Row(i)
	for j := range row {
		row[j] += scale * delta[j]
	}
}

// Dot computes the inner product of row i with vector h.
func (m *Matrix) Dot(i int32, h []float32) float32 {
	row := m.Row(i)
	var dot float32
	for j := range row {
		dot += row[j] * h[j]
	}
	return dot
}
