// Package geom defines the external geometry kernel interface: the
// abstract surface the interpreter drives to construct and combine solids
// (Manifold3D) and planar regions (CrossSection2D), plus one in-process
// reference implementation (reference.go) that satisfies it without any
// cgo or FFI dependency — one Go method per kernel operation, each
// returning a fresh value rather than mutating its receiver.
package geom

// Vec3 is a point or displacement in 3-space.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 is a point or displacement in the plane.
type Vec2 struct {
	X, Y float64
}

// BoundingBox is the axis-aligned bounding box of a Manifold3D.
type BoundingBox struct {
	Min, Max Vec3
}

// Size is Max - Min, the box's dimensions along each axis.
func (b BoundingBox) Size() Vec3 {
	return Vec3{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z}
}

// Rectangle is the axis-aligned bounding rectangle of a CrossSection2D.
type Rectangle struct {
	Min, Max Vec2
}

// Size is Max - Min, the rectangle's dimensions along each axis.
func (r Rectangle) Size() Vec2 {
	return Vec2{r.Max.X - r.Min.X, r.Max.Y - r.Min.Y}
}

// Polygon is a single closed loop of points in the plane, as produced by
// flattening a CrossSection2D (§6).
type Polygon []Vec2

// Mesh is the triangle mesh exported from a final, assembled Manifold3D
// (§6). Downstream STL conversion is out of scope; Mesh is the hand-off
// point for a caller that wants to do that itself.
type Mesh struct {
	// Vertices is a flat x,y,z triple per vertex.
	Vertices []float64
	// Triangles is a flat vertex-index triple per triangle.
	Triangles []int
}

// Manifold3D is an orientable closed solid (GLOSSARY: Manifold). Every
// operation returns a new value; none mutate the receiver, mirroring the
// kernel's own copy-on-write construction style.
type Manifold3D interface {
	Translate(x, y, z float64) Manifold3D
	Rotate(x, y, z float64) Manifold3D
	Scale(x, y, z float64) Manifold3D
	Mirror(x, y, z float64) Manifold3D
	Union(other Manifold3D) Manifold3D
	Difference(other Manifold3D) Manifold3D
	BoundingBox() BoundingBox
	Mesh() Mesh
}

// CrossSection2D is a planar region (GLOSSARY: Cross-section).
type CrossSection2D interface {
	Translate(x, y float64) CrossSection2D
	Rotate(angle float64) CrossSection2D
	Scale(x, y float64) CrossSection2D
	Mirror(x, y float64) CrossSection2D
	Union(other CrossSection2D) CrossSection2D
	Difference(other CrossSection2D) CrossSection2D
	BoundingRectangle() Rectangle
	Polygons() []Polygon
	// Extrude lifts this cross-section into a solid of the given height
	// (§4.5 linear_extrude, §6 final-assembly extrusion of residual 2D
	// geometry).
	Extrude(height float64) Manifold3D
}

// Kernel constructs the primitive solids and regions the built-in
// catalog (§4.5) is defined in terms of. segments controls circular
// tessellation (§6 default: 20).
type Kernel interface {
	Cube(x, y, z float64, center bool) Manifold3D
	Cylinder(radius, height float64, segments int, center bool) Manifold3D
	Square(x, y float64, center bool) CrossSection2D
	Circle(radius float64, segments int) CrossSection2D
}
