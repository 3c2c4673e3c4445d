package runtime

import (
	"testing"

	"github.com/aaronc81/yascad-go/pkg/geom"
	"github.com/aaronc81/yascad-go/pkg/source"
)

var testSpan = source.NewSpan(source.New("test", ""), 0, 0)

func TestGeometryTableAddAndGet(t *testing.T) {
	table := NewGeometryTable()
	cube := geom.NewReferenceKernel().Cube(1, 1, 1, true)
	h := table.AddManifold(cube, Physical)

	m, c := table.Get(h)
	if m == nil || c != nil {
		t.Fatalf("expected manifold, no cross-section")
	}
	if table.GetDisposition(h) != Physical {
		t.Fatalf("expected Physical disposition")
	}
}

func TestGeometryTableGetUnknownHandlePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on unknown handle")
		}
	}()
	table := NewGeometryTable()
	table.Get(GeometryHandle(99))
}

func TestGeometryTableRemoveUnknownHandlePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on unknown handle")
		}
	}()
	table := NewGeometryTable()
	table.Remove(GeometryHandle(99))
}

func TestUnionManyMixedDimensionsFails(t *testing.T) {
	table := NewGeometryTable()
	kernel := geom.NewReferenceKernel()
	h1 := table.AddManifold(kernel.Cube(1, 1, 1, true), Physical)
	h2 := table.AddCrossSection(kernel.Square(1, 1, true), Physical)

	_, _, err := table.UnionMany([]GeometryHandle{h1, h2}, testSpan)
	if err == nil {
		t.Fatalf("expected MixedGeometryDimensions error")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != MixedGeometryDimensions {
		t.Fatalf("expected MixedGeometryDimensions, got %v", err)
	}
}

func TestUnionManyMixedDispositionFails(t *testing.T) {
	table := NewGeometryTable()
	kernel := geom.NewReferenceKernel()
	h1 := table.AddManifold(kernel.Cube(1, 1, 1, true), Physical)
	h2 := table.AddManifold(kernel.Cube(1, 1, 1, true), Virtual)

	_, _, err := table.UnionMany([]GeometryHandle{h1, h2}, testSpan)
	if err == nil {
		t.Fatalf("expected MixedGeometryDisposition error")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok || rerr.Kind != MixedGeometryDisposition {
		t.Fatalf("expected MixedGeometryDisposition, got %v", err)
	}
}

func TestUnionManyConsumesHandles(t *testing.T) {
	table := NewGeometryTable()
	kernel := geom.NewReferenceKernel()
	h1 := table.AddManifold(kernel.Cube(1, 1, 1, true), Physical)
	h2 := table.AddManifold(kernel.Cube(1, 1, 1, true), Physical)

	entry, disposition, err := table.UnionMany([]GeometryHandle{h1, h2}, testSpan)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if entry.manifold == nil {
		t.Fatalf("expected a unioned manifold")
	}
	if disposition != Physical {
		t.Fatalf("expected Physical disposition")
	}

	remaining := 0
	table.Iter(func(h GeometryHandle, m geom.Manifold3D, c geom.CrossSection2D, d GeometryDisposition) {
		remaining++
	})
	if remaining != 0 {
		t.Fatalf("expected both handles consumed, %d remain", remaining)
	}
}

func TestMapManifoldPreservesDisposition(t *testing.T) {
	table := NewGeometryTable()
	kernel := geom.NewReferenceKernel()
	h := table.AddManifold(kernel.Cube(1, 1, 1, true), Virtual)

	moved := table.MapManifold(h, func(m geom.Manifold3D) geom.Manifold3D {
		return m.Translate(5, 0, 0)
	})
	if table.GetDisposition(moved) != Virtual {
		t.Fatalf("expected disposition preserved across MapManifold")
	}
}
