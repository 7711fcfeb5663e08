package zmod

import "fmt"

// Matrix is an immutable rectangular array of integers modulo a fixed
// modulus. Elements are always stored reduced into [0, modulus). It
// has just enough methods to support block ciphers built on modular
// linear maps. The modulus must stay below 2^31 so that products of
// reduced elements fit in an int64.
type Matrix struct {
	modulus       int64
	rows, columns int
	// Elements are stored in row-major order.
	elements []int64
}

func checkRowColumnCount(rows, columns int) {
	if rows <= 0 {
		panic("invalid row count")
	}
	if columns <= 0 {
		panic("invalid column count")
	}
}

// NewZeroMatrix returns a rows x columns matrix over Z/m with every
// element being zero.
func NewZeroMatrix(m int64, rows, columns int) Matrix {
	checkModulus(m)
	checkRowColumnCount(rows, columns)
	return Matrix{m, rows, columns, make([]int64, rows*columns)}
}

// NewMatrixFromSlice returns a rows x columns matrix over Z/m with
// elements taken from the given array in row-major order, each
// reduced mod m.
func NewMatrixFromSlice(m int64, rows, columns int, elements []int64) Matrix {
	checkModulus(m)
	checkRowColumnCount(rows, columns)
	if len(elements) != rows*columns {
		panic("element count is not rows*columns")
	}
	elementsCopy := make([]int64, len(elements))
	for i, e := range elements {
		elementsCopy[i] = Mod(e, m)
	}
	return Matrix{m, rows, columns, elementsCopy}
}

// NewMatrixFromFunction returns a rows x columns matrix over Z/m with
// elements filled in from the given function, which is passed the row
// index and the column index, and shouldn't rely on any particular
// call ordering.
func NewMatrixFromFunction(m int64, rows, columns int, fn func(int, int) int64) Matrix {
	checkModulus(m)
	checkRowColumnCount(rows, columns)
	elements := make([]int64, rows*columns)
	for i := 0; i < rows; i++ {
		for j := 0; j < columns; j++ {
			elements[i*columns+j] = fn(i, j)
		}
	}
	return NewMatrixFromSlice(m, rows, columns, elements)
}

// NewIdentityMatrix returns the n x n identity matrix over Z/m.
func NewIdentityMatrix(m int64, n int) Matrix {
	return NewMatrixFromFunction(m, n, n, func(i, j int) int64 {
		if i == j {
			return 1
		}
		return 0
	})
}

// Modulus returns the modulus the matrix elements live in.
func (m Matrix) Modulus() int64 {
	return m.modulus
}

// Rows returns the row count.
func (m Matrix) Rows() int {
	return m.rows
}

// Columns returns the column count.
func (m Matrix) Columns() int {
	return m.columns
}

func (m Matrix) checkRowIndex(i int) {
	if i < 0 || i >= m.rows {
		panic("row index out of bounds")
	}
}

func (m Matrix) checkColumnIndex(i int) {
	if i < 0 || i >= m.columns {
		panic("column index out of bounds")
	}
}

func (m Matrix) checkSameModulus(n Matrix) {
	if m.modulus != n.modulus {
		panic("mismatched moduli")
	}
}

// At returns the element at row index i and column index j, which is
// always in [0, modulus).
func (m Matrix) At(i, j int) int64 {
	m.checkRowIndex(i)
	m.checkColumnIndex(j)
	return m.elements[i*m.columns+j]
}

// Times returns the matrix product of m with n, which must have the
// same modulus and compatible dimensions.
func (m Matrix) Times(n Matrix) Matrix {
	m.checkSameModulus(n)
	if m.columns != n.rows {
		panic("mismatched dimensions")
	}

	return NewMatrixFromFunction(m.modulus, m.rows, n.columns, func(i, j int) int64 {
		var t int64
		for k := 0; k < m.columns; k++ {
			t = (t + m.At(i, k)*n.At(k, j)) % m.modulus
		}
		return t
	})
}

// Plus returns the elementwise sum of m and n, which must have the
// same modulus and dimensions.
func (m Matrix) Plus(n Matrix) Matrix {
	m.checkSameModulus(n)
	if m.rows != n.rows || m.columns != n.columns {
		panic("mismatched dimensions")
	}

	return NewMatrixFromFunction(m.modulus, m.rows, m.columns, func(i, j int) int64 {
		return (m.At(i, j) + n.At(i, j)) % m.modulus
	})
}

// ScalarTimes returns m with every element multiplied by c mod the
// modulus.
func (m Matrix) ScalarTimes(c int64) Matrix {
	c = Mod(c, m.modulus)
	return NewMatrixFromFunction(m.modulus, m.rows, m.columns, func(i, j int) int64 {
		return m.At(i, j) * c % m.modulus
	})
}

// TimesVector returns the matrix-vector product m*v as a new slice,
// treating v as a column vector whose entries are reduced mod the
// modulus first. v must have exactly Columns() entries.
func (m Matrix) TimesVector(v []int64) []int64 {
	if len(v) != m.columns {
		panic("mismatched dimensions")
	}

	out := make([]int64, m.rows)
	for i := 0; i < m.rows; i++ {
		var t int64
		for j := 0; j < m.columns; j++ {
			t = (t + m.At(i, j)*Mod(v[j], m.modulus)) % m.modulus
		}
		out[i] = t
	}
	return out
}

// Transpose returns the transpose of m.
func (m Matrix) Transpose() Matrix {
	return NewMatrixFromFunction(m.modulus, m.columns, m.rows, func(i, j int) int64 {
		return m.At(j, i)
	})
}

// minor returns m with row i and column j removed. m must be at
// least 2x2.
func (m Matrix) minor(i, j int) Matrix {
	return NewMatrixFromFunction(m.modulus, m.rows-1, m.columns-1, func(r, c int) int64 {
		if r >= i {
			r++
		}
		if c >= j {
			c++
		}
		return m.At(r, c)
	})
}

// Determinant returns det(m) mod the modulus, computed by cofactor
// expansion along the first row with exact integer arithmetic.
// Intermediate values are reduced mod the modulus at every step,
// which is sound since reduction commutes with addition and
// multiplication. m must be square.
func (m Matrix) Determinant() int64 {
	if m.rows != m.columns {
		panic("cannot take determinant of non-square matrix")
	}
	return m.determinant()
}

func (m Matrix) determinant() int64 {
	if m.rows == 1 {
		return m.elements[0]
	}

	var det int64
	for j := 0; j < m.columns; j++ {
		c := m.At(0, j)
		if c == 0 {
			continue
		}
		term := c * m.minor(0, j).determinant() % m.modulus
		if j%2 == 0 {
			det = Mod(det+term, m.modulus)
		} else {
			det = Mod(det-term, m.modulus)
		}
	}
	return det
}

// adjugate returns the transpose of the cofactor matrix of m, so that
// m.Times(m.adjugate()) is det(m) times the identity.
func (m Matrix) adjugate() Matrix {
	if m.rows == 1 {
		return NewMatrixFromSlice(m.modulus, 1, 1, []int64{1})
	}

	return NewMatrixFromFunction(m.modulus, m.rows, m.columns, func(i, j int) int64 {
		cofactor := m.minor(j, i).determinant()
		if (i+j)%2 == 1 {
			return Mod(-cofactor, m.modulus)
		}
		return cofactor
	})
}

// Inverse returns the modular inverse of m, which must be square, or
// an error wrapping ErrNotInvertible if det(m) has no inverse mod the
// modulus. The inverse is the scalar inverse of det(m) times the
// adjugate. Gauss-Jordan elimination does not work here: over a ring
// with zero divisors, an invertible matrix need not have a unit pivot
// in every column.
func (m Matrix) Inverse() (Matrix, error) {
	if m.rows != m.columns {
		panic("cannot invert non-square matrix")
	}

	detInv, err := Inverse(m.Determinant(), m.modulus)
	if err != nil {
		return Matrix{}, fmt.Errorf("singular matrix mod %d: %w", m.modulus, err)
	}

	return m.adjugate().ScalarTimes(detInv), nil
}
