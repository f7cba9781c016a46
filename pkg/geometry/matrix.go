package geometry

// Matrix4 is a row-major 4x4 transformation matrix
type Matrix4 [16]float64

// IdentityMatrix returns the identity transform
func IdentityMatrix() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// TranslationMatrix returns a matrix translating by the given offset
func TranslationMatrix(offset Vector3) Matrix4 {
	m := IdentityMatrix()
	m[3] = offset.X
	m[7] = offset.Y
	m[11] = offset.Z
	return m
}

// ScaleMatrix returns a matrix scaling uniformly by the given factor
func ScaleMatrix(factor float64) Matrix4 {
	m := IdentityMatrix()
	m[0] = factor
	m[5] = factor
	m[10] = factor
	return m
}

// IsIdentity reports whether the matrix is exactly the identity
func (m Matrix4) IsIdentity() bool {
	return m == IdentityMatrix()
}

// TransformPoint applies the matrix to a point (w = 1)
func (m Matrix4) TransformPoint(p Vector3) Vector3 {
	return Vector3{
		X: m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		Y: m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		Z: m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// TransformDirection applies the matrix to a direction (w = 0)
func (m Matrix4) TransformDirection(d Vector3) Vector3 {
	return Vector3{
		X: m[0]*d.X + m[1]*d.Y + m[2]*d.Z,
		Y: m[4]*d.X + m[5]*d.Y + m[6]*d.Z,
		Z: m[8]*d.X + m[9]*d.Y + m[10]*d.Z,
	}
}

// Mul returns the matrix product m * other
func (m Matrix4) Mul(other Matrix4) Matrix4 {
	var out Matrix4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += m[row*4+k] * other[k*4+col]
			}
			out[row*4+col] = sum
		}
	}
	return out
}
