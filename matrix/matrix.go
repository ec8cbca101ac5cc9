// Package matrix provides 3x3 linear maps, as used by
// color space conversions.
package matrix

import (
	"errors"

	"github.com/benoitkugler/cssom/utils"
)

type fl = utils.Fl

// Mat3 is a row major 3x3 matrix, mapping a column vector X
// to M * X.
type Mat3 [3][3]fl

// Vec3 is a column vector.
type Vec3 [3]fl

// Identity returns the identity matrix.
func Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Diagonal returns the scaling by (sx, sy, sz).
func Diagonal(sx, sy, sz fl) Mat3 {
	return Mat3{{sx, 0, 0}, {0, sy, 0}, {0, 0, sz}}
}

// Determinant returns the determinant of the matrix, which is
// non zero if and only if the map is reversible.
func (M Mat3) Determinant() fl {
	return M[0][0]*(M[1][1]*M[2][2]-M[1][2]*M[2][1]) -
		M[0][1]*(M[1][0]*M[2][2]-M[1][2]*M[2][0]) +
		M[0][2]*(M[1][0]*M[2][1]-M[1][1]*M[2][0])
}

// write t1 * t2 in out
func mult(t1, t2 Mat3, out *Mat3) {
	var tmp Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			tmp[i][j] = t1[i][0]*t2[0][j] + t1[i][1]*t2[1][j] + t1[i][2]*t2[2][j]
		}
	}
	*out = tmp
}

// Mul returns the matrix T * U,
// which apply U then T.
func Mul(T, U Mat3) Mat3 {
	out := Mat3{}
	mult(T, U, &out)
	return out
}

// Mul3 returns the matrix R * S * T,
// which applies T, then S, then R.
func Mul3(R, S, T Mat3) Mat3 {
	out := Mat3{}
	mult(S, T, &out)
	mult(R, out, &out)
	return out
}

// LeftMultBy update T in place with the result of U * T
// The resulting map apply T first, then U.
func (T *Mat3) LeftMultBy(U Mat3) { mult(U, *T, T) }

// Invert modify the matrix in place. Return an error
// if the map is not bijective.
func (T *Mat3) Invert() error {
	det := T.Determinant()
	if det == 0 {
		return errors.New("matrix is not invertible")
	}
	M := *T
	// transpose of the cofactor matrix
	T[0][0] = (M[1][1]*M[2][2] - M[1][2]*M[2][1]) / det
	T[0][1] = (M[0][2]*M[2][1] - M[0][1]*M[2][2]) / det
	T[0][2] = (M[0][1]*M[1][2] - M[0][2]*M[1][1]) / det
	T[1][0] = (M[1][2]*M[2][0] - M[1][0]*M[2][2]) / det
	T[1][1] = (M[0][0]*M[2][2] - M[0][2]*M[2][0]) / det
	T[1][2] = (M[0][2]*M[1][0] - M[0][0]*M[1][2]) / det
	T[2][0] = (M[1][0]*M[2][1] - M[1][1]*M[2][0]) / det
	T[2][1] = (M[0][1]*M[2][0] - M[0][0]*M[2][1]) / det
	T[2][2] = (M[0][0]*M[1][1] - M[0][1]*M[1][0]) / det
	return nil
}

// Inverse returns the inverse of M, which must be invertible.
func (M Mat3) Inverse() Mat3 {
	if err := M.Invert(); err != nil {
		panic(err)
	}
	return M
}

// Apply returns M * X.
func (M Mat3) Apply(X Vec3) Vec3 {
	return Vec3{
		M[0][0]*X[0] + M[0][1]*X[1] + M[0][2]*X[2],
		M[1][0]*X[0] + M[1][1]*X[1] + M[1][2]*X[2],
		M[2][0]*X[0] + M[2][1]*X[1] + M[2][2]*X[2],
	}
}
