package scene

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Draw fills the screen-space bounding box of every visible sprite, in
// painter order, once per camera viewport. Without cameras the whole screen
// is drawn with the identity view.
func (s *Scene) Draw(screen *ebiten.Image) {
	s.refreshTransforms()
	if len(s.cameras) == 0 {
		s.drawNode(screen, s.root, identityAffine, 1)
		return
	}
	for _, cam := range s.cameras {
		vp := cam.Viewport
		target := screen.SubImage(image.Rect(
			int(vp.X), int(vp.Y),
			int(vp.X+vp.Width), int(vp.Y+vp.Height),
		)).(*ebiten.Image)
		s.drawNode(target, s.root, cam.computeViewMatrix(), 1)
	}
}

// drawNode draws n and its children. alpha is the product of the ancestors'
// Alpha.
func (s *Scene) drawNode(target *ebiten.Image, n *Node, view affine, alpha float64) {
	if !n.Visible {
		return
	}
	alpha *= n.Alpha
	if n.Type == NodeTypeSprite && n.Width > 0 && n.Height > 0 {
		aabb := worldAABB(view.mul(n.worldTransform), n.Width, n.Height)
		r := image.Rect(
			int(math.Floor(aabb.X)), int(math.Floor(aabb.Y)),
			int(math.Ceil(aabb.X+aabb.Width)), int(math.Ceil(aabb.Y+aabb.Height)),
		).Intersect(target.Bounds())
		if !r.Empty() {
			c := n.Color
			c.A *= alpha
			target.SubImage(r).(*ebiten.Image).Fill(c.RGBA())
		}
	}
	for _, child := range sortedChildrenOf(n) {
		s.drawNode(target, child, view, alpha)
	}
}
