package runtime

import (
	"testing"

	"github.com/aaronc81/yascad-go/pkg/geom"
)

func TestObjectEqualStructural(t *testing.T) {
	a := VectorObject([]Object{NumberObject(1), NumberObject(2)})
	b := VectorObject([]Object{NumberObject(1), NumberObject(2)})
	if !a.Equal(b) {
		t.Fatalf("expected structurally equal vectors to compare equal")
	}
}

func TestObjectEqualGeometryHandlesNeverEqual(t *testing.T) {
	table := NewGeometryTable()
	h := table.AddManifold(geom.NewReferenceKernel().Cube(1, 1, 1, true), Physical)
	a := ManifoldObject(h)
	if a.Equal(a) {
		t.Fatalf("a geometry handle must never be equal, even to itself (§3)")
	}
}

func TestObjectAsNumberWrongKindFails(t *testing.T) {
	_, err := BooleanObject(true).AsNumber(testSpan)
	if err == nil {
		t.Fatalf("expected IncorrectType error")
	}
	if err.(*RuntimeError).Kind != IncorrectType {
		t.Fatalf("expected IncorrectType, got %v", err)
	}
}

func TestVec3FromObjectWrongLengthFails(t *testing.T) {
	v := VectorObject([]Object{NumberObject(1), NumberObject(2)})
	_, err := Vec3FromObject(v, testSpan)
	if err == nil || err.(*RuntimeError).Kind != IncorrectVectorLength {
		t.Fatalf("expected IncorrectVectorLength, got %v", err)
	}
}

func TestGetFieldVectorOutOfRangeIsNull(t *testing.T) {
	v := VectorObject([]Object{NumberObject(1), NumberObject(2)})
	field, err := v.GetField("z", nil, testSpan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if field.Kind != ObjNull {
		t.Fatalf("expected null for out-of-range vector field, got %v", field.Kind)
	}
}

func TestGetFieldUndefinedFieldFails(t *testing.T) {
	v := NumberObject(5)
	_, err := v.GetField("bogus", nil, testSpan)
	if err == nil || err.(*RuntimeError).Kind != UndefinedField {
		t.Fatalf("expected UndefinedField, got %v", err)
	}
}

func TestGetFieldManifoldBoundingBox(t *testing.T) {
	table := NewGeometryTable()
	h := table.AddManifold(geom.NewReferenceKernel().Cube(2, 4, 6, true), Physical)
	o := ManifoldObject(h)

	size, err := o.GetField("size", table, testSpan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	elems, _ := size.AsVector(testSpan)
	x, _ := elems[0].AsNumber(testSpan)
	if x != 2 {
		t.Fatalf("expected size.x == 2, got %v", x)
	}
}
