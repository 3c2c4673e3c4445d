package runtime

import (
	"github.com/aaronc81/yascad-go/pkg/source"
)

// unionChildren unions every child handle, failing
// MixedGeometryDimensions/MixedGeometryDisposition per §4.3.
func unionChildren(interp *Interpreter, children []GeometryHandle, span source.Span) (geometryTableEntry, GeometryDisposition, error) {
	return interp.Table.UnionMany(children, span)
}

func translateDefinition() OperatorDefinition {
	return OperatorDefinition{
		Parameters: requiredParams("v"),
		Action: func(interp *Interpreter, args map[string]Object, children []GeometryHandle, span source.Span) (geometryTableEntry, GeometryDisposition, error) {
			entry, disposition, err := unionChildren(interp, children, span)
			if err != nil {
				return geometryTableEntry{}, 0, err
			}
			if entry.manifold != nil {
				v, err := Vec3FromObject(args["v"], span)
				if err != nil {
					return geometryTableEntry{}, 0, err
				}
				return geometryTableEntry{manifold: entry.manifold.Translate(v.X, v.Y, v.Z)}, disposition, nil
			}
			v, err := Vec2FromObject(args["v"], span)
			if err != nil {
				return geometryTableEntry{}, 0, err
			}
			return geometryTableEntry{crossSection: entry.crossSection.Translate(v.X, v.Y)}, disposition, nil
		},
	}
}

func rotateDefinition() OperatorDefinition {
	return OperatorDefinition{
		Parameters: requiredParams("v"),
		Action: func(interp *Interpreter, args map[string]Object, children []GeometryHandle, span source.Span) (geometryTableEntry, GeometryDisposition, error) {
			entry, disposition, err := unionChildren(interp, children, span)
			if err != nil {
				return geometryTableEntry{}, 0, err
			}
			if entry.manifold != nil {
				v, err := Vec3FromObject(args["v"], span)
				if err != nil {
					return geometryTableEntry{}, 0, err
				}
				return geometryTableEntry{manifold: entry.manifold.Rotate(v.X, v.Y, v.Z)}, disposition, nil
			}
			angle, err := args["v"].AsNumber(span)
			if err != nil {
				return geometryTableEntry{}, 0, err
			}
			return geometryTableEntry{crossSection: entry.crossSection.Rotate(angle)}, disposition, nil
		},
	}
}

func scaleDefinition() OperatorDefinition {
	return OperatorDefinition{
		Parameters: requiredParams("v"),
		Action: func(interp *Interpreter, args map[string]Object, children []GeometryHandle, span source.Span) (geometryTableEntry, GeometryDisposition, error) {
			entry, disposition, err := unionChildren(interp, children, span)
			if err != nil {
				return geometryTableEntry{}, 0, err
			}
			if entry.manifold != nil {
				v, err := Vec3FromObject(args["v"], span)
				if err != nil {
					return geometryTableEntry{}, 0, err
				}
				return geometryTableEntry{manifold: entry.manifold.Scale(v.X, v.Y, v.Z)}, disposition, nil
			}
			v, err := Vec2FromObject(args["v"], span)
			if err != nil {
				return geometryTableEntry{}, 0, err
			}
			return geometryTableEntry{crossSection: entry.crossSection.Scale(v.X, v.Y)}, disposition, nil
		},
	}
}

func mirrorDefinition() OperatorDefinition {
	return OperatorDefinition{
		Parameters: requiredParams("v"),
		Action: func(interp *Interpreter, args map[string]Object, children []GeometryHandle, span source.Span) (geometryTableEntry, GeometryDisposition, error) {
			entry, disposition, err := unionChildren(interp, children, span)
			if err != nil {
				return geometryTableEntry{}, 0, err
			}
			if entry.manifold != nil {
				v, err := Vec3FromObject(args["v"], span)
				if err != nil {
					return geometryTableEntry{}, 0, err
				}
				return geometryTableEntry{manifold: entry.manifold.Mirror(v.X, v.Y, v.Z)}, disposition, nil
			}
			v, err := Vec2FromObject(args["v"], span)
			if err != nil {
				return geometryTableEntry{}, 0, err
			}
			return geometryTableEntry{crossSection: entry.crossSection.Mirror(v.X, v.Y)}, disposition, nil
		},
	}
}

func unionDefinition() OperatorDefinition {
	return OperatorDefinition{
		Parameters: noParams(),
		Action: func(interp *Interpreter, args map[string]Object, children []GeometryHandle, span source.Span) (geometryTableEntry, GeometryDisposition, error) {
			return unionChildren(interp, children, span)
		},
	}
}

func differenceDefinition() OperatorDefinition {
	return OperatorDefinition{
		Parameters: noParams(),
		Action: func(interp *Interpreter, args map[string]Object, children []GeometryHandle, span source.Span) (geometryTableEntry, GeometryDisposition, error) {
			if len(children) == 0 {
				return geometryTableEntry{}, 0, &RuntimeError{Kind: ChildrenExpected, Span: span}
			}
			minuendM, minuendC, disposition := interp.Table.Remove(children[0])
			rest := children[1:]
			if len(rest) == 0 {
				if minuendM != nil {
					return geometryTableEntry{manifold: minuendM}, disposition, nil
				}
				return geometryTableEntry{crossSection: minuendC}, disposition, nil
			}

			subtrahend, subDisposition, err := interp.Table.UnionMany(rest, span)
			if err != nil {
				return geometryTableEntry{}, 0, err
			}
			combined, err := FlattenDisposition([]GeometryDisposition{disposition, subDisposition}, span)
			if err != nil {
				return geometryTableEntry{}, 0, err
			}

			if minuendM != nil {
				if subtrahend.manifold == nil {
					return geometryTableEntry{}, 0, &RuntimeError{Kind: MixedGeometryDimensions, Span: span}
				}
				return geometryTableEntry{manifold: minuendM.Difference(subtrahend.manifold)}, combined, nil
			}
			if subtrahend.crossSection == nil {
				return geometryTableEntry{}, 0, &RuntimeError{Kind: MixedGeometryDimensions, Span: span}
			}
			return geometryTableEntry{crossSection: minuendC.Difference(subtrahend.crossSection)}, combined, nil
		},
	}
}

func linearExtrudeDefinition() OperatorDefinition {
	return OperatorDefinition{
		Parameters: requiredParams("h"),
		Action: func(interp *Interpreter, args map[string]Object, children []GeometryHandle, span source.Span) (geometryTableEntry, GeometryDisposition, error) {
			entry, disposition, err := unionChildren(interp, children, span)
			if err != nil {
				return geometryTableEntry{}, 0, err
			}
			if entry.crossSection == nil {
				return geometryTableEntry{}, 0, &RuntimeError{Kind: Requires2DGeometry, Span: span}
			}
			h, err := args["h"].AsNumber(span)
			if err != nil {
				return geometryTableEntry{}, 0, err
			}
			return geometryTableEntry{manifold: entry.crossSection.Extrude(h)}, disposition, nil
		},
	}
}

func bufferDefinition() OperatorDefinition {
	return OperatorDefinition{
		Parameters: noParams(),
		Action: func(interp *Interpreter, args map[string]Object, children []GeometryHandle, span source.Span) (geometryTableEntry, GeometryDisposition, error) {
			entry, _, err := unionChildren(interp, children, span)
			if err != nil {
				return geometryTableEntry{}, 0, err
			}
			return entry, Virtual, nil
		},
	}
}
