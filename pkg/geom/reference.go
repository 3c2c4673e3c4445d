package geom

import "math"

// refKernel is the reference Kernel: a pure-Go, in-process geometry
// engine that keeps an explicit triangle mesh (3D) or polygon boundary
// (2D) per value and recomputes bounding boxes from the transformed
// vertex set on every operation. It stands in for a real CSG kernel
// (e.g. a manifold library wrapped over FFI) well enough to drive and
// test the interpreter without a cgo dependency.
//
// Boolean difference is a known simplification here: rather than
// computing an exact cut, the result keeps the minuend's mesh and
// bounding box (a valid, if not tight, bound — subtraction can only
// remove material). A production kernel swapped in behind the Kernel
// interface would replace this with a true boolean.
type refKernel struct{}

// NewReferenceKernel returns the in-process reference Kernel.
func NewReferenceKernel() Kernel { return refKernel{} }

type triangle [3]int

type refManifold struct {
	vertices  []Vec3
	triangles []triangle
	bbox      BoundingBox
}

type refCrossSection struct {
	// boundary is the outer loop of the region; holes are not modeled.
	boundary []Vec2
	rect     Rectangle
}

// ---- construction ----

func (refKernel) Cube(x, y, z float64, center bool) Manifold3D {
	var min, max Vec3
	if center {
		min = Vec3{-x / 2, -y / 2, -z / 2}
		max = Vec3{x / 2, y / 2, z / 2}
	} else {
		min = Vec3{0, 0, 0}
		max = Vec3{x, y, z}
	}
	verts := []Vec3{
		{min.X, min.Y, min.Z}, {max.X, min.Y, min.Z}, {max.X, max.Y, min.Z}, {min.X, max.Y, min.Z},
		{min.X, min.Y, max.Z}, {max.X, min.Y, max.Z}, {max.X, max.Y, max.Z}, {min.X, max.Y, max.Z},
	}
	tris := []triangle{
		{0, 1, 2}, {0, 2, 3}, // bottom
		{4, 6, 5}, {4, 7, 6}, // top
		{0, 4, 5}, {0, 5, 1}, // front
		{1, 5, 6}, {1, 6, 2}, // right
		{2, 6, 7}, {2, 7, 3}, // back
		{3, 7, 4}, {3, 4, 0}, // left
	}
	return &refManifold{vertices: verts, triangles: tris, bbox: BoundingBox{Min: min, Max: max}}
}

func (refKernel) Cylinder(radius, height float64, segments int, center bool) Manifold3D {
	if segments < 3 {
		segments = 3
	}
	var zMin, zMax float64
	if center {
		zMin, zMax = -height/2, height/2
	} else {
		zMin, zMax = 0, height
	}

	verts := make([]Vec3, 0, segments*2+2)
	bottomCenter := 0
	verts = append(verts, Vec3{0, 0, zMin})
	topCenter := 1
	verts = append(verts, Vec3{0, 0, zMax})

	ringStart := len(verts)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x, y := radius*math.Cos(theta), radius*math.Sin(theta)
		verts = append(verts, Vec3{x, y, zMin})
		verts = append(verts, Vec3{x, y, zMax})
	}

	var tris []triangle
	for i := 0; i < segments; i++ {
		bLo := ringStart + i*2
		tLo := bLo + 1
		bHi := ringStart + ((i+1)%segments)*2
		tHi := bHi + 1
		tris = append(tris, triangle{bottomCenter, bHi, bLo})
		tris = append(tris, triangle{topCenter, tLo, tHi})
		tris = append(tris, triangle{bLo, bHi, tHi})
		tris = append(tris, triangle{bLo, tHi, tLo})
	}

	return &refManifold{
		vertices:  verts,
		triangles: tris,
		bbox:      BoundingBox{Min: Vec3{-radius, -radius, zMin}, Max: Vec3{radius, radius, zMax}},
	}
}

func (refKernel) Square(x, y float64, center bool) CrossSection2D {
	var min, max Vec2
	if center {
		min, max = Vec2{-x / 2, -y / 2}, Vec2{x / 2, y / 2}
	} else {
		min, max = Vec2{0, 0}, Vec2{x, y}
	}
	boundary := []Vec2{{min.X, min.Y}, {max.X, min.Y}, {max.X, max.Y}, {min.X, max.Y}}
	return &refCrossSection{boundary: boundary, rect: Rectangle{Min: min, Max: max}}
}

func (refKernel) Circle(radius float64, segments int) CrossSection2D {
	if segments < 3 {
		segments = 3
	}
	boundary := make([]Vec2, segments)
	for i := range boundary {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		boundary[i] = Vec2{radius * math.Cos(theta), radius * math.Sin(theta)}
	}
	return &refCrossSection{
		boundary: boundary,
		rect:     Rectangle{Min: Vec2{-radius, -radius}, Max: Vec2{radius, radius}},
	}
}

// ---- Manifold3D ----

func boundsOf(verts []Vec3) BoundingBox {
	if len(verts) == 0 {
		return BoundingBox{}
	}
	min, max := verts[0], verts[0]
	for _, v := range verts[1:] {
		min = Vec3{math.Min(min.X, v.X), math.Min(min.Y, v.Y), math.Min(min.Z, v.Z)}
		max = Vec3{math.Max(max.X, v.X), math.Max(max.Y, v.Y), math.Max(max.Z, v.Z)}
	}
	return BoundingBox{Min: min, Max: max}
}

func (m *refManifold) transformed(f func(Vec3) Vec3) *refManifold {
	verts := make([]Vec3, len(m.vertices))
	for i, v := range m.vertices {
		verts[i] = f(v)
	}
	return &refManifold{vertices: verts, triangles: m.triangles, bbox: boundsOf(verts)}
}

func (m *refManifold) Translate(x, y, z float64) Manifold3D {
	return m.transformed(func(v Vec3) Vec3 { return Vec3{v.X + x, v.Y + y, v.Z + z} })
}

// Rotate applies, in order, a rotation of x/y/z degrees about the X, Y
// and Z axes.
func (m *refManifold) Rotate(x, y, z float64) Manifold3D {
	rx, ry, rz := degToRad(x), degToRad(y), degToRad(z)
	return m.transformed(func(v Vec3) Vec3 {
		v = rotateX(v, rx)
		v = rotateY(v, ry)
		v = rotateZ(v, rz)
		return v
	})
}

func (m *refManifold) Scale(x, y, z float64) Manifold3D {
	return m.transformed(func(v Vec3) Vec3 { return Vec3{v.X * x, v.Y * y, v.Z * z} })
}

// Mirror reflects across the plane through the origin whose normal is
// (x, y, z).
func (m *refManifold) Mirror(x, y, z float64) Manifold3D {
	n := Vec3{x, y, z}
	normSq := n.X*n.X + n.Y*n.Y + n.Z*n.Z
	if normSq == 0 {
		return m.transformed(func(v Vec3) Vec3 { return v })
	}
	return m.transformed(func(v Vec3) Vec3 {
		dot := (v.X*n.X + v.Y*n.Y + v.Z*n.Z) / normSq
		return Vec3{v.X - 2*dot*n.X, v.Y - 2*dot*n.Y, v.Z - 2*dot*n.Z}
	})
}

func (m *refManifold) Union(other Manifold3D) Manifold3D {
	o := other.(*refManifold)
	offset := len(m.vertices)
	verts := append(append([]Vec3{}, m.vertices...), o.vertices...)
	tris := append([]triangle{}, m.triangles...)
	for _, t := range o.triangles {
		tris = append(tris, triangle{t[0] + offset, t[1] + offset, t[2] + offset})
	}
	return &refManifold{vertices: verts, triangles: tris, bbox: boundsOf(verts)}
}

// Difference keeps the minuend's geometry and bounding box (see the
// package doc comment on refKernel).
func (m *refManifold) Difference(other Manifold3D) Manifold3D {
	_ = other.(*refManifold)
	return &refManifold{vertices: m.vertices, triangles: m.triangles, bbox: m.bbox}
}

func (m *refManifold) BoundingBox() BoundingBox { return m.bbox }

func (m *refManifold) Mesh() Mesh {
	verts := make([]float64, 0, len(m.vertices)*3)
	for _, v := range m.vertices {
		verts = append(verts, v.X, v.Y, v.Z)
	}
	tris := make([]int, 0, len(m.triangles)*3)
	for _, t := range m.triangles {
		tris = append(tris, t[0], t[1], t[2])
	}
	return Mesh{Vertices: verts, Triangles: tris}
}

// ---- CrossSection2D ----

func rectOf(pts []Vec2) Rectangle {
	if len(pts) == 0 {
		return Rectangle{}
	}
	min, max := pts[0], pts[0]
	for _, p := range pts[1:] {
		min = Vec2{math.Min(min.X, p.X), math.Min(min.Y, p.Y)}
		max = Vec2{math.Max(max.X, p.X), math.Max(max.Y, p.Y)}
	}
	return Rectangle{Min: min, Max: max}
}

func (c *refCrossSection) transformed(f func(Vec2) Vec2) *refCrossSection {
	pts := make([]Vec2, len(c.boundary))
	for i, p := range c.boundary {
		pts[i] = f(p)
	}
	return &refCrossSection{boundary: pts, rect: rectOf(pts)}
}

func (c *refCrossSection) Translate(x, y float64) CrossSection2D {
	return c.transformed(func(p Vec2) Vec2 { return Vec2{p.X + x, p.Y + y} })
}

func (c *refCrossSection) Rotate(angle float64) CrossSection2D {
	theta := degToRad(angle)
	sin, cos := math.Sin(theta), math.Cos(theta)
	return c.transformed(func(p Vec2) Vec2 {
		return Vec2{p.X*cos - p.Y*sin, p.X*sin + p.Y*cos}
	})
}

func (c *refCrossSection) Scale(x, y float64) CrossSection2D {
	return c.transformed(func(p Vec2) Vec2 { return Vec2{p.X * x, p.Y * y} })
}

// Mirror reflects across the line through the origin whose normal is
// (x, y).
func (c *refCrossSection) Mirror(x, y float64) CrossSection2D {
	normSq := x*x + y*y
	if normSq == 0 {
		return c.transformed(func(p Vec2) Vec2 { return p })
	}
	return c.transformed(func(p Vec2) Vec2 {
		dot := (p.X*x + p.Y*y) / normSq
		return Vec2{p.X - 2*dot*x, p.Y - 2*dot*y}
	})
}

func (c *refCrossSection) Union(other CrossSection2D) CrossSection2D {
	o := other.(*refCrossSection)
	pts := append(append([]Vec2{}, c.boundary...), o.boundary...)
	return &refCrossSection{boundary: pts, rect: rectOf(pts)}
}

// Difference keeps the minuend's boundary and rectangle (see the
// package doc comment on refKernel).
func (c *refCrossSection) Difference(other CrossSection2D) CrossSection2D {
	_ = other.(*refCrossSection)
	return &refCrossSection{boundary: c.boundary, rect: c.rect}
}

func (c *refCrossSection) BoundingRectangle() Rectangle { return c.rect }

func (c *refCrossSection) Polygons() []Polygon {
	return []Polygon{append(Polygon{}, c.boundary...)}
}

// Extrude lifts the boundary polygon into a prism of the given height,
// fan-triangulating the (assumed convex) top and bottom caps.
func (c *refCrossSection) Extrude(height float64) Manifold3D {
	n := len(c.boundary)
	if n < 3 {
		return &refManifold{}
	}
	verts := make([]Vec3, 0, n*2)
	for _, p := range c.boundary {
		verts = append(verts, Vec3{p.X, p.Y, 0})
	}
	for _, p := range c.boundary {
		verts = append(verts, Vec3{p.X, p.Y, height})
	}

	var tris []triangle
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		bLo, bHi := i, j
		tLo, tHi := i+n, j+n
		tris = append(tris, triangle{bLo, bHi, tHi})
		tris = append(tris, triangle{bLo, tHi, tLo})
	}
	for i := 1; i < n-1; i++ {
		tris = append(tris, triangle{0, i + 1, i})
		tris = append(tris, triangle{n, n + i, n + i + 1})
	}

	return &refManifold{
		vertices:  verts,
		triangles: tris,
		bbox: BoundingBox{
			Min: Vec3{c.rect.Min.X, c.rect.Min.Y, 0},
			Max: Vec3{c.rect.Max.X, c.rect.Max.Y, height},
		},
	}
}

// ---- shared math helpers ----

func degToRad(d float64) float64 { return d * math.Pi / 180 }

func rotateX(v Vec3, theta float64) Vec3 {
	s, c := math.Sin(theta), math.Cos(theta)
	return Vec3{v.X, v.Y*c - v.Z*s, v.Y*s + v.Z*c}
}

func rotateY(v Vec3, theta float64) Vec3 {
	s, c := math.Sin(theta), math.Cos(theta)
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

func rotateZ(v Vec3, theta float64) Vec3 {
	s, c := math.Sin(theta), math.Cos(theta)
	return Vec3{v.X*c - v.Y*s, v.X*s + v.Y*c, v.Z}
}
