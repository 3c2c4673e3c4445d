package geom

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestCubeCenteredBoundingBox(t *testing.T) {
	k := NewReferenceKernel()
	m := k.Cube(10, 20, 30, true)
	bb := m.BoundingBox()
	if !almostEqual(bb.Min.X, -5) || !almostEqual(bb.Max.X, 5) {
		t.Errorf("got min.x=%v max.x=%v, want -5/5", bb.Min.X, bb.Max.X)
	}
	size := bb.Size()
	if !almostEqual(size.X, 10) || !almostEqual(size.Y, 20) || !almostEqual(size.Z, 30) {
		t.Errorf("got size %+v, want {10 20 30}", size)
	}
}

func TestCubeUncenteredBoundingBox(t *testing.T) {
	k := NewReferenceKernel()
	m := k.Cube(4, 4, 4, false)
	bb := m.BoundingBox()
	if bb.Min != (Vec3{0, 0, 0}) {
		t.Errorf("got min %+v, want origin", bb.Min)
	}
}

func TestTranslateShiftsBoundingBox(t *testing.T) {
	k := NewReferenceKernel()
	m := k.Cube(2, 2, 2, true).Translate(10, 0, 0)
	bb := m.BoundingBox()
	if !almostEqual(bb.Min.X, 9) || !almostEqual(bb.Max.X, 11) {
		t.Errorf("got min.x=%v max.x=%v, want 9/11", bb.Min.X, bb.Max.X)
	}
}

func TestRotateZQuarterTurnSwapsExtents(t *testing.T) {
	k := NewReferenceKernel()
	m := k.Cube(10, 2, 2, true).Rotate(0, 0, 90)
	bb := m.BoundingBox()
	if !almostEqual(bb.Size().X, 2) || !almostEqual(bb.Size().Y, 10) {
		t.Errorf("got size %+v, want x=2 y=10 after a 90deg Z rotation", bb.Size())
	}
}

func TestCylinderBoundingBox(t *testing.T) {
	k := NewReferenceKernel()
	m := k.Cylinder(5, 10, 20, false)
	bb := m.BoundingBox()
	if !almostEqual(bb.Min.X, -5) || !almostEqual(bb.Max.X, 5) {
		t.Errorf("got min.x=%v max.x=%v, want -5/5", bb.Min.X, bb.Max.X)
	}
	if !almostEqual(bb.Min.Z, 0) || !almostEqual(bb.Max.Z, 10) {
		t.Errorf("got min.z=%v max.z=%v, want 0/10", bb.Min.Z, bb.Max.Z)
	}
}

func TestUnionBoundingBoxCoversBoth(t *testing.T) {
	k := NewReferenceKernel()
	a := k.Cube(2, 2, 2, true)
	b := k.Cube(2, 2, 2, true).Translate(10, 0, 0)
	u := a.Union(b)
	bb := u.BoundingBox()
	if !almostEqual(bb.Min.X, -1) || !almostEqual(bb.Max.X, 11) {
		t.Errorf("got min.x=%v max.x=%v, want -1/11", bb.Min.X, bb.Max.X)
	}
}

func TestCircleBoundingRectangle(t *testing.T) {
	k := NewReferenceKernel()
	c := k.Circle(3, 20)
	r := c.BoundingRectangle()
	if !almostEqual(r.Size().X, 6) || !almostEqual(r.Size().Y, 6) {
		t.Errorf("got size %+v, want 6x6", r.Size())
	}
}

func TestSquareCenteredBoundingRectangle(t *testing.T) {
	k := NewReferenceKernel()
	s := k.Square(4, 8, true)
	r := s.BoundingRectangle()
	if !almostEqual(r.Min.X, -2) || !almostEqual(r.Max.Y, 4) {
		t.Errorf("got rect %+v, want min.x=-2 max.y=4", r)
	}
}

func TestExtrudeLiftsToThreeDimensions(t *testing.T) {
	k := NewReferenceKernel()
	sq := k.Square(4, 4, true)
	m := sq.Extrude(2)
	bb := m.BoundingBox()
	if !almostEqual(bb.Min.Z, 0) || !almostEqual(bb.Max.Z, 2) {
		t.Errorf("got min.z=%v max.z=%v, want 0/2", bb.Min.Z, bb.Max.Z)
	}
	if !almostEqual(bb.Size().X, 4) || !almostEqual(bb.Size().Y, 4) {
		t.Errorf("got size %+v, want 4x4 cross-section preserved", bb.Size())
	}
}

func TestMeshExportHasVerticesAndTriangles(t *testing.T) {
	k := NewReferenceKernel()
	m := k.Cube(1, 1, 1, true)
	mesh := m.Mesh()
	if len(mesh.Vertices) != 8*3 {
		t.Errorf("got %d vertex floats, want 24", len(mesh.Vertices))
	}
	if len(mesh.Triangles)%3 != 0 || len(mesh.Triangles) == 0 {
		t.Errorf("got %d triangle indices, want a positive multiple of 3", len(mesh.Triangles))
	}
}

func TestMirrorReflectsAcrossPlane(t *testing.T) {
	k := NewReferenceKernel()
	m := k.Cube(2, 2, 2, false).Mirror(1, 0, 0)
	bb := m.BoundingBox()
	if !almostEqual(bb.Min.X, -2) || !almostEqual(bb.Max.X, 0) {
		t.Errorf("got min.x=%v max.x=%v, want -2/0 after mirroring through the yz-plane", bb.Min.X, bb.Max.X)
	}
}
