package yascad

import (
	"testing"

	"github.com/aaronc81/yascad-go/pkg/source"
)

func TestCompileSingleCube(t *testing.T) {
	src := source.New("test", "cube(1, 2, 3);")
	result, errs := Compile(src, nil)
	if len(errs) > 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if result == nil {
		t.Fatalf("expected a solid result")
	}
	size := result.BoundingBox().Size()
	if size.X != 1 || size.Y != 2 || size.Z != 3 {
		t.Fatalf("unexpected size: %+v", size)
	}
}

func TestCompileReportsParseErrorsWithoutInterpreting(t *testing.T) {
	src := source.New("test", "cube(1, 2, 3")
	result, errs := Compile(src, nil)
	if result != nil {
		t.Fatalf("expected no result when parsing fails")
	}
	if len(errs) == 0 {
		t.Fatalf("expected at least one error")
	}
}

func TestCompileReportsRuntimeErrors(t *testing.T) {
	src := source.New("test", "cube(bogus, 1, 1);")
	result, errs := Compile(src, nil)
	if result != nil {
		t.Fatalf("expected no result when interpretation fails")
	}
	if len(errs) != 1 {
		t.Fatalf("expected exactly one runtime error, got %d", len(errs))
	}
}
