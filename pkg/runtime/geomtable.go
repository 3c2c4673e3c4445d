package runtime

import (
	"github.com/aaronc81/yascad-go/pkg/geom"
	"github.com/aaronc81/yascad-go/pkg/source"
)

// GeometryHandle indexes one live entry in a GeometryTable (§3, §4.3,
// §9: "geometry handles are integer indices into an arena owned by the
// interpreter"). The zero value never refers to a live entry.
type GeometryHandle int

// GeometryDisposition marks whether a geometry table entry is destined
// for final assembly (Physical) or is a transient value still being
// assembled inside an operator body (Virtual). See the GLOSSARY.
type GeometryDisposition int

const (
	Physical GeometryDisposition = iota
	Virtual
)

// FlattenDisposition combines the dispositions of a set of geometries
// being unioned: all-Physical yields Physical, all-Virtual yields
// Virtual, a mix is a MixedGeometryDisposition error (§4.3).
func FlattenDisposition(dispositions []GeometryDisposition, span source.Span) (GeometryDisposition, error) {
	if len(dispositions) == 0 {
		return Physical, nil
	}
	first := dispositions[0]
	for _, d := range dispositions[1:] {
		if d != first {
			return 0, &RuntimeError{Kind: MixedGeometryDisposition, Span: span}
		}
	}
	return first, nil
}

// geometryTableEntry is the Manifold3D/CrossSection2D tagged variant
// stored per handle (§4.3).
type geometryTableEntry struct {
	manifold     geom.Manifold3D
	crossSection geom.CrossSection2D
}

// GeometryTable is the interpreter's geometry arena (§4.3, §9):
// handle -> (entry, disposition), grown monotonically and shrunk only
// by explicit Remove. Grounded 1:1 structurally on
// original_source/lang/backend/src/geometry_table.rs's GeometryTable.
type GeometryTable struct {
	entries   map[GeometryHandle]geometryTableEntry
	disposals map[GeometryHandle]GeometryDisposition
	next      GeometryHandle
}

// NewGeometryTable returns an empty table.
func NewGeometryTable() *GeometryTable {
	return &GeometryTable{
		entries:   make(map[GeometryHandle]geometryTableEntry),
		disposals: make(map[GeometryHandle]GeometryDisposition),
		next:      1,
	}
}

func (t *GeometryTable) takeNextHandle() GeometryHandle {
	h := t.next
	t.next++
	return h
}

// AddManifold stores a 3D solid and returns its handle.
func (t *GeometryTable) AddManifold(m geom.Manifold3D, disposition GeometryDisposition) GeometryHandle {
	h := t.takeNextHandle()
	t.entries[h] = geometryTableEntry{manifold: m}
	t.disposals[h] = disposition
	return h
}

// AddCrossSection stores a 2D region and returns its handle.
func (t *GeometryTable) AddCrossSection(c geom.CrossSection2D, disposition GeometryDisposition) GeometryHandle {
	h := t.takeNextHandle()
	t.entries[h] = geometryTableEntry{crossSection: c}
	t.disposals[h] = disposition
	return h
}

// Get returns the manifold and cross-section for a handle; exactly one
// is non-nil. Panics if the handle is unknown — an internal invariant
// violation, never a user-facing error (mirrors geometry_table.rs's own
// treatment of a missing entry on remove/get).
func (t *GeometryTable) Get(h GeometryHandle) (geom.Manifold3D, geom.CrossSection2D) {
	e, ok := t.entries[h]
	if !ok {
		panic("runtime: unknown geometry handle")
	}
	return e.manifold, e.crossSection
}

// GetDisposition returns a handle's current disposition without
// consuming it.
func (t *GeometryTable) GetDisposition(h GeometryHandle) GeometryDisposition {
	d, ok := t.disposals[h]
	if !ok {
		panic("runtime: unknown geometry handle")
	}
	return d
}

// Remove takes a handle's entry and disposition out of the table.
// Panics if the handle is unknown.
func (t *GeometryTable) Remove(h GeometryHandle) (geom.Manifold3D, geom.CrossSection2D, GeometryDisposition) {
	e, ok := t.entries[h]
	if !ok {
		panic("runtime: unknown geometry handle")
	}
	d := t.disposals[h]
	delete(t.entries, h)
	delete(t.disposals, h)
	return e.manifold, e.crossSection, d
}

// MapManifold removes h, transforms its manifold with f, and re-adds
// it under a fresh handle with the same disposition. Panics if h does
// not hold a manifold.
func (t *GeometryTable) MapManifold(h GeometryHandle, f func(geom.Manifold3D) geom.Manifold3D) GeometryHandle {
	m, c, d := t.Remove(h)
	if c != nil {
		panic("runtime: MapManifold on a cross-section handle")
	}
	return t.AddManifold(f(m), d)
}

// MapCrossSection removes h, transforms its cross-section with f, and
// re-adds it under a fresh handle with the same disposition. Panics if
// h does not hold a cross-section.
func (t *GeometryTable) MapCrossSection(h GeometryHandle, f func(geom.CrossSection2D) geom.CrossSection2D) GeometryHandle {
	m, c, d := t.Remove(h)
	if m != nil {
		panic("runtime: MapCrossSection on a manifold handle")
	}
	return t.AddCrossSection(f(c), d)
}

// UnionMany consumes every handle in handles, unions the geometries
// (requiring they all be manifolds or all be cross-sections — a mix
// fails MixedGeometryDimensions) and combines their dispositions
// (MixedGeometryDisposition on a Physical/Virtual mix). It does not
// re-insert the result; the caller decides whether and how (§4.3).
func (t *GeometryTable) UnionMany(handles []GeometryHandle, span source.Span) (geometryTableEntry, GeometryDisposition, error) {
	if len(handles) == 0 {
		return geometryTableEntry{}, Physical, nil
	}

	dispositions := make([]GeometryDisposition, 0, len(handles))
	var manifolds []geom.Manifold3D
	var crossSections []geom.CrossSection2D

	for _, h := range handles {
		m, c, d := t.Remove(h)
		dispositions = append(dispositions, d)
		if m != nil {
			manifolds = append(manifolds, m)
		} else {
			crossSections = append(crossSections, c)
		}
	}

	if len(manifolds) > 0 && len(crossSections) > 0 {
		return geometryTableEntry{}, 0, &RuntimeError{Kind: MixedGeometryDimensions, Span: span}
	}

	disposition, err := FlattenDisposition(dispositions, span)
	if err != nil {
		return geometryTableEntry{}, 0, err
	}

	if len(manifolds) > 0 {
		result := manifolds[0]
		for _, m := range manifolds[1:] {
			result = result.Union(m)
		}
		return geometryTableEntry{manifold: result}, disposition, nil
	}

	result := crossSections[0]
	for _, c := range crossSections[1:] {
		result = result.Union(c)
	}
	return geometryTableEntry{crossSection: result}, disposition, nil
}

// geometryTableIterFunc is called once per live (handle, disposition)
// pair by Iter, in no particular order.
type geometryTableIterFunc func(h GeometryHandle, m geom.Manifold3D, c geom.CrossSection2D, d GeometryDisposition)

// Iter visits every entry currently in the table (§4.6 final assembly).
func (t *GeometryTable) Iter(f geometryTableIterFunc) {
	for h, e := range t.entries {
		f(h, e.manifold, e.crossSection, t.disposals[h])
	}
}
