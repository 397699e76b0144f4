package scene

import "math"

// affine is a 2D affine matrix laid out as [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type affine [6]float64

var identityAffine = affine{1, 0, 0, 1, 0, 0}

// mul returns m * o: o is applied first.
func (m affine) mul(o affine) affine {
	return affine{
		m[0]*o[0] + m[2]*o[1],
		m[1]*o[0] + m[3]*o[1],
		m[0]*o[2] + m[2]*o[3],
		m[1]*o[2] + m[3]*o[3],
		m[0]*o[4] + m[2]*o[5] + m[4],
		m[1]*o[4] + m[3]*o[5] + m[5],
	}
}

// invert returns the inverse of m, or the identity when m is singular.
func (m affine) invert() affine {
	det := m[0]*m[3] - m[2]*m[1]
	if math.Abs(det) < 1e-12 {
		return identityAffine
	}
	a, b := m[3]/det, -m[1]/det
	c, d := -m[2]/det, m[0]/det
	return affine{a, b, c, d, -(a*m[4] + c*m[5]), -(b*m[4] + d*m[5])}
}

// apply maps (x, y) through m.
func (m affine) apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// localAffine is Translate(X, Y) * Rotate * Scale * Translate(-Pivot).
func localAffine(n *Node) affine {
	sin, cos := math.Sincos(n.Rotation)
	a, b := cos*n.ScaleX, sin*n.ScaleX
	c, d := -sin*n.ScaleY, cos*n.ScaleY
	return affine{a, b, c, d,
		n.X - a*n.PivotX - c*n.PivotY,
		n.Y - b*n.PivotX - d*n.PivotY,
	}
}

// refreshWorld recomputes world transforms below n. Only dirty nodes and the
// subtrees under them are recomputed; force marks the parent as recomputed.
func refreshWorld(n *Node, parent affine, force bool) {
	force = force || n.transformDirty
	if force {
		n.worldTransform = parent.mul(localAffine(n))
		n.transformDirty = false
	}
	for _, child := range n.children {
		refreshWorld(child, n.worldTransform, force)
	}
}

// SetPosition moves the node in its parent's space.
func (n *Node) SetPosition(x, y float64) {
	n.X, n.Y = x, y
	n.transformDirty = true
}

// SetScale sets the node's scale around its pivot.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX, n.ScaleY = sx, sy
	n.transformDirty = true
}

// SetRotation sets the rotation in radians around the pivot.
func (n *Node) SetRotation(r float64) {
	n.Rotation = r
	n.transformDirty = true
}

// WorldToLocal maps a world-space point into the node's local space, using
// the world transform from the last refresh.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	return n.worldTransform.invert().apply(wx, wy)
}
