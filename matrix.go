package layer2d

import "github.com/chewxy/math32"

// Mat4 is a 4x4 float32 matrix in column-major order, the layout shader
// uniforms expect. Element (row r, column c) is m[c*4+r].
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Translation returns a translation matrix.
func Translation(x, y, z float32) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = x, y, z
	return m
}

// Scaling returns a scaling matrix.
func Scaling(x, y, z float32) Mat4 {
	m := Identity()
	m[0], m[5], m[10] = x, y, z
	return m
}

// RotationZ returns a rotation around the z axis (angle in radians).
func RotationZ(angle float32) Mat4 {
	c, s := math32.Cos(angle), math32.Sin(angle)
	m := Identity()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

// Mul returns m * n: n is applied first.
func (m Mat4) Mul(n Mat4) Mat4 {
	var out Mat4
	for c := 0; c < 4; c++ {
		for r := 0; r < 4; r++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+r] * n[c*4+k]
			}
			out[c*4+r] = sum
		}
	}
	return out
}

// Translate returns m * Translation(x, y, z).
func (m Mat4) Translate(x, y, z float32) Mat4 {
	return m.Mul(Translation(x, y, z))
}

// Scale returns m * Scaling(x, y, z).
func (m Mat4) Scale(x, y, z float32) Mat4 {
	return m.Mul(Scaling(x, y, z))
}

// Rotate returns m * RotationZ(angle).
func (m Mat4) Rotate(angle float32) Mat4 {
	return m.Mul(RotationZ(angle))
}

// TransformPoint applies m to the point (x, y, 0, 1).
func (m Mat4) TransformPoint(x, y float32) (float32, float32) {
	w := m[3]*x + m[7]*y + m[15]
	tx := m[0]*x + m[4]*y + m[12]
	ty := m[1]*x + m[5]*y + m[13]
	if w != 0 && w != 1 {
		tx /= w
		ty /= w
	}
	return tx, ty
}

// PixelToClip returns the matrix mapping a width x height pixel space with
// the origin at the top-left to clip space.
func PixelToClip(width, height float32) Mat4 {
	return Identity().Translate(-1, 1, 0).Scale(2/width, -2/height, 1)
}
