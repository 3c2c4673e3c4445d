package runtime

import (
	"fmt"
	"strings"

	"github.com/aaronc81/yascad-go/pkg/geom"
	"github.com/aaronc81/yascad-go/pkg/source"
)

// ObjectKind tags the variant held by an Object (§3).
type ObjectKind int

const (
	ObjNull ObjectKind = iota
	ObjNumber
	ObjBoolean
	ObjVector
	ObjManifold
	ObjCrossSection
)

func (k ObjectKind) String() string {
	switch k {
	case ObjNull:
		return "null"
	case ObjNumber:
		return "number"
	case ObjBoolean:
		return "boolean"
	case ObjVector:
		return "vector"
	case ObjManifold:
		return "manifold"
	case ObjCrossSection:
		return "cross-section"
	default:
		return "?"
	}
}

// Object is the runtime value type (§3): a tagged union of null,
// number, boolean, vector-of-Object, and the two geometry handle
// kinds. Extended from original_source/lang/backend/src/object.rs's
// Object (which predates the boolean variant, the cross-section
// variant, and the geometry-table naming switch from
// ManifoldTableIndex to GeometryTableIndex that geometry_table.rs later
// adopted).
type Object struct {
	Kind    ObjectKind
	Number  float64
	Boolean bool
	Vector  []Object
	Handle  GeometryHandle
}

func NullObject() Object                  { return Object{Kind: ObjNull} }
func NumberObject(n float64) Object       { return Object{Kind: ObjNumber, Number: n} }
func BooleanObject(b bool) Object         { return Object{Kind: ObjBoolean, Boolean: b} }
func VectorObject(elems []Object) Object  { return Object{Kind: ObjVector, Vector: elems} }
func ManifoldObject(h GeometryHandle) Object {
	return Object{Kind: ObjManifold, Handle: h}
}
func CrossSectionObject(h GeometryHandle) Object {
	return Object{Kind: ObjCrossSection, Handle: h}
}

// DescribeType names this value's runtime type, for error messages.
func (o Object) DescribeType() string { return o.Kind.String() }

// Equal implements the structural equality of §3: numbers, booleans,
// null and vectors compare structurally; geometry handles are never
// equal, even to themselves (§3, §9 — a handle is an ownership token,
// not a value to compare).
func (o Object) Equal(other Object) bool {
	if o.Kind == ObjManifold || o.Kind == ObjCrossSection ||
		other.Kind == ObjManifold || other.Kind == ObjCrossSection {
		return false
	}
	if o.Kind != other.Kind {
		return false
	}
	switch o.Kind {
	case ObjNull:
		return true
	case ObjNumber:
		return o.Number == other.Number
	case ObjBoolean:
		return o.Boolean == other.Boolean
	case ObjVector:
		if len(o.Vector) != len(other.Vector) {
			return false
		}
		for i := range o.Vector {
			if !o.Vector[i].Equal(other.Vector[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// AsNumber returns this value as a float64, failing IncorrectType if it
// is not a number.
func (o Object) AsNumber(span source.Span) (float64, error) {
	if o.Kind != ObjNumber {
		return 0, &RuntimeError{Kind: IncorrectType, Span: span, Expected: "number", Actual: o.DescribeType()}
	}
	return o.Number, nil
}

// AsBoolean returns this value as a bool, failing IncorrectType if it
// is not a boolean.
func (o Object) AsBoolean(span source.Span) (bool, error) {
	if o.Kind != ObjBoolean {
		return false, &RuntimeError{Kind: IncorrectType, Span: span, Expected: "boolean", Actual: o.DescribeType()}
	}
	return o.Boolean, nil
}

// AsVector returns this value's elements, failing IncorrectType if it
// is not a vector.
func (o Object) AsVector(span source.Span) ([]Object, error) {
	if o.Kind != ObjVector {
		return nil, &RuntimeError{Kind: IncorrectType, Span: span, Expected: "vector", Actual: o.DescribeType()}
	}
	return o.Vector, nil
}

// AsManifoldHandle returns this value's geometry handle, failing
// IncorrectType if it is not a manifold.
func (o Object) AsManifoldHandle(span source.Span) (GeometryHandle, error) {
	if o.Kind != ObjManifold {
		return 0, &RuntimeError{Kind: IncorrectType, Span: span, Expected: "manifold", Actual: o.DescribeType()}
	}
	return o.Handle, nil
}

// AsCrossSectionHandle returns this value's geometry handle, failing
// IncorrectType if it is not a cross-section.
func (o Object) AsCrossSectionHandle(span source.Span) (GeometryHandle, error) {
	if o.Kind != ObjCrossSection {
		return 0, &RuntimeError{Kind: IncorrectType, Span: span, Expected: "cross-section", Actual: o.DescribeType()}
	}
	return o.Handle, nil
}

// Vec3FromObject converts a 3-element number vector (or fails
// IncorrectVectorLength) into a geom.Vec3.
func Vec3FromObject(o Object, span source.Span) (geom.Vec3, error) {
	elems, err := o.AsVector(span)
	if err != nil {
		return geom.Vec3{}, err
	}
	if len(elems) != 3 {
		return geom.Vec3{}, &RuntimeError{Kind: IncorrectVectorLength, Span: span, Expected: "3", Actual: fmt.Sprint(len(elems))}
	}
	x, err := elems[0].AsNumber(span)
	if err != nil {
		return geom.Vec3{}, err
	}
	y, err := elems[1].AsNumber(span)
	if err != nil {
		return geom.Vec3{}, err
	}
	z, err := elems[2].AsNumber(span)
	if err != nil {
		return geom.Vec3{}, err
	}
	return geom.Vec3{X: x, Y: y, Z: z}, nil
}

// Vec2FromObject converts a 2-element number vector (or fails
// IncorrectVectorLength) into a geom.Vec2.
func Vec2FromObject(o Object, span source.Span) (geom.Vec2, error) {
	elems, err := o.AsVector(span)
	if err != nil {
		return geom.Vec2{}, err
	}
	if len(elems) != 2 {
		return geom.Vec2{}, &RuntimeError{Kind: IncorrectVectorLength, Span: span, Expected: "2", Actual: fmt.Sprint(len(elems))}
	}
	x, err := elems[0].AsNumber(span)
	if err != nil {
		return geom.Vec2{}, err
	}
	y, err := elems[1].AsNumber(span)
	if err != nil {
		return geom.Vec2{}, err
	}
	return geom.Vec2{X: x, Y: y}, nil
}

// ObjectFromVec3 flattens a geom.Vec3 to a 3-element number vector
// Object (used for .origin/.min_point/.max_point/.size field access).
func ObjectFromVec3(v geom.Vec3) Object {
	return VectorObject([]Object{NumberObject(v.X), NumberObject(v.Y), NumberObject(v.Z)})
}

// ObjectFromVec2 flattens a geom.Vec2 to a 2-element number vector
// Object.
func ObjectFromVec2(v geom.Vec2) Object {
	return VectorObject([]Object{NumberObject(v.X), NumberObject(v.Y)})
}

// DescribeObject renders o for the __debug built-in (§4.5): a compact,
// human-readable dump, not a parseable format.
func DescribeObject(o Object, table *GeometryTable) string {
	switch o.Kind {
	case ObjNull:
		return "null"
	case ObjNumber:
		return fmt.Sprintf("%g", o.Number)
	case ObjBoolean:
		return fmt.Sprintf("%t", o.Boolean)
	case ObjVector:
		parts := make([]string, len(o.Vector))
		for i, e := range o.Vector {
			parts[i] = DescribeObject(e, table)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ObjManifold:
		m, _ := table.Get(o.Handle)
		bb := m.BoundingBox()
		return fmt.Sprintf("manifold(bbox min=%+v max=%+v)", bb.Min, bb.Max)
	case ObjCrossSection:
		_, c := table.Get(o.Handle)
		rect := c.BoundingRectangle()
		return fmt.Sprintf("cross-section(bbox min=%+v max=%+v)", rect.Min, rect.Max)
	default:
		return "?"
	}
}

// GetField implements §4.6 field access dispatch: vectors index by
// .x/.y/.z (out-of-range yields null); manifolds and cross-sections
// expose their bounding box/rectangle via .origin/.min_point/
// .max_point/.size. Any other field, or any other receiver kind, fails
// UndefinedField.
func (o Object) GetField(name string, table *GeometryTable, span source.Span) (Object, error) {
	switch o.Kind {
	case ObjVector:
		idx, ok := map[string]int{"x": 0, "y": 1, "z": 2}[name]
		if !ok {
			return Object{}, &RuntimeError{Kind: UndefinedField, Span: span, FieldOwnerType: o.DescribeType(), Name: name}
		}
		if idx >= len(o.Vector) {
			return NullObject(), nil
		}
		return o.Vector[idx], nil
	case ObjManifold:
		m, _ := table.Get(o.Handle)
		bb := m.BoundingBox()
		switch name {
		case "origin", "min_point":
			return ObjectFromVec3(bb.Min), nil
		case "max_point":
			return ObjectFromVec3(bb.Max), nil
		case "size":
			return ObjectFromVec3(bb.Size()), nil
		default:
			return Object{}, &RuntimeError{Kind: UndefinedField, Span: span, FieldOwnerType: o.DescribeType(), Name: name}
		}
	case ObjCrossSection:
		_, c := table.Get(o.Handle)
		rect := c.BoundingRectangle()
		switch name {
		case "origin", "min_point":
			return ObjectFromVec2(rect.Min), nil
		case "max_point":
			return ObjectFromVec2(rect.Max), nil
		case "size":
			return ObjectFromVec2(rect.Size()), nil
		default:
			return Object{}, &RuntimeError{Kind: UndefinedField, Span: span, FieldOwnerType: o.DescribeType(), Name: name}
		}
	default:
		return Object{}, &RuntimeError{Kind: UndefinedField, Span: span, FieldOwnerType: o.DescribeType(), Name: name}
	}
}
