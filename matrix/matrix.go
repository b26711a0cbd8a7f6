// Package matrix implements the dense GF(2^8) matrix operations the
// Reed-Solomon codec is built on: Vandermonde and Cauchy generator
// construction, submatrix extraction, multiplication and Gauss-Jordan
// inversion. Grounded on the matrix math embedded in kcptun's vendored
// github.com/klauspost/reedsolomon (reedsolomon.go's buildMatrix /
// buildMatrixCauchy), generalized into a standalone, reusable type.
package matrix

import (
	"errors"

	"github.com/kelpfs/benthic/gf"
)

// ErrSingular is returned by Invert when the matrix has no inverse.
var ErrSingular = errors.New("matrix: singular, cannot invert")

// ErrDimension is returned when an operation is given incompatible shapes.
var ErrDimension = errors.New("matrix: incompatible dimensions")

// Matrix is a dense, row-major matrix over GF(2^8).
type Matrix struct {
	rows, cols int
	data       [][]byte
}

// New allocates a zeroed r x c matrix.
func New(r, c int) *Matrix {
	if r <= 0 || c <= 0 {
		panic("matrix: non-positive dimension")
	}
	data := make([][]byte, r)
	for i := range data {
		data[i] = make([]byte, c)
	}
	return &Matrix{rows: r, cols: c, data: data}
}

// Identity returns the n x n identity matrix.
func Identity(n int) *Matrix {
	m := New(n, n)
	for i := 0; i < n; i++ {
		m.data[i][i] = 1
	}
	return m
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// Row returns the backing slice for row i. Callers may read it but must
// not retain it across further mutation of m.
func (m *Matrix) Row(i int) []byte { return m.data[i] }

func (m *Matrix) At(r, c int) byte     { return m.data[r][c] }
func (m *Matrix) Set(r, c int, v byte) { m.data[r][c] = v }

// Vandermonde builds an r x c matrix with entry (i,j) = g^(i*j mod 255).
// The first row and first column are all ones.
func Vandermonde(r, c int) *Matrix {
	m := New(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if i == 0 || j == 0 {
				m.data[i][j] = 1
				continue
			}
			m.data[i][j] = gf.Exp((i * j) % 255)
		}
	}
	return m
}

// Cauchy builds an r x c Cauchy matrix with entry (i,j) = 1 / (i XOR (r+j)).
// Rows are indexed 0..r-1 and columns contribute r..r+c-1; while r+c <= 256
// both sets fit in a byte and are disjoint, so i < r <= r+j guarantees the
// XOR is never zero and the division never fails. For r+c > 256 the column
// values wrap modulo 256 and DivByte panics on the resulting zero divisor.
// A division by zero here is a programming error, not an expected
// failure (see Invert for the latter).
func Cauchy(r, c int) *Matrix {
	m := New(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.data[i][j] = gf.DivByte(1, byte(i^(r+j)))
		}
	}
	return m
}

// SubMatrix extracts the dense rectangle [r0,r1) x [c0,c1).
func (m *Matrix) SubMatrix(r0, c0, r1, c1 int) (*Matrix, error) {
	if r0 < 0 || c0 < 0 || r1 > m.rows || c1 > m.cols || r0 >= r1 || c0 >= c1 {
		return nil, ErrDimension
	}
	out := New(r1-r0, c1-c0)
	for i := r0; i < r1; i++ {
		copy(out.data[i-r0], m.data[i][c0:c1])
	}
	return out, nil
}

// Multiply computes the standard matrix product m x other using the gf
// arithmetic kernel to accumulate each output row, matching how
// reedsolomon.Matrix.Multiply is implemented over the same field.
func (m *Matrix) Multiply(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, ErrDimension
	}
	out := New(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		for k := 0; k < m.cols; k++ {
			c := m.data[i][k]
			if c == 0 {
				continue
			}
			gf.MulAdd(out.data[i], other.data[k], c)
		}
	}
	return out, nil
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := New(m.rows, m.cols)
	for i := range m.data {
		copy(out.data[i], m.data[i])
	}
	return out
}

// Equal reports whether m and other have the same shape and contents.
func (m *Matrix) Equal(other *Matrix) bool {
	if m.rows != other.rows || m.cols != other.cols {
		return false
	}
	for i := range m.data {
		for j := range m.data[i] {
			if m.data[i][j] != other.data[i][j] {
				return false
			}
		}
	}
	return true
}

// IsIdentity reports whether m is the n x n identity matrix.
func (m *Matrix) IsIdentity() bool {
	if m.rows != m.cols {
		return false
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			want := byte(0)
			if i == j {
				want = 1
			}
			if m.data[i][j] != want {
				return false
			}
		}
	}
	return true
}

// Invert performs in-place-equivalent Gauss-Jordan inversion of a square
// matrix and returns the inverse as a new matrix, or ErrSingular if m has
// no inverse. Inverting the identity is a cheap, observable no-op: the
// identity check below short-circuits before any row operation, since the
// common "nothing lost" decode path should stay free.
func (m *Matrix) Invert() (*Matrix, error) {
	if m.rows != m.cols {
		return nil, ErrDimension
	}
	if m.IsIdentity() {
		return Identity(m.rows), nil
	}

	n := m.rows
	work := m.Clone()
	result := Identity(n)

	for col := 0; col < n; col++ {
		if work.data[col][col] == 0 {
			swapped := false
			for row := col + 1; row < n; row++ {
				if work.data[row][col] != 0 {
					work.data[row], work.data[col] = work.data[col], work.data[row]
					result.data[row], result.data[col] = result.data[col], result.data[row]
					swapped = true
					break
				}
			}
			if !swapped {
				return nil, ErrSingular
			}
		}

		pivot := work.data[col][col]
		if pivot != 1 {
			inv := gf.DivByte(1, pivot)
			scaleRow(work.data[col], inv)
			scaleRow(result.data[col], inv)
		}

		for row := 0; row < n; row++ {
			if row == col {
				continue
			}
			factor := work.data[row][col]
			if factor == 0 {
				continue
			}
			gf.MulAdd(work.data[row], work.data[col], factor)
			gf.MulAdd(result.data[row], result.data[col], factor)
		}
	}
	return result, nil
}

func scaleRow(row []byte, c byte) {
	for i, v := range row {
		row[i] = gf.MulByte(v, c)
	}
}
