// Package yascad is the public entry point tying the lexer, parser, and
// interpreter into a single model-source-to-solid pipeline (§7).
package yascad

import (
	"github.com/aaronc81/yascad-go/pkg/geom"
	"github.com/aaronc81/yascad-go/pkg/parser"
	"github.com/aaronc81/yascad-go/pkg/runtime"
	"github.com/aaronc81/yascad-go/pkg/source"
)

// Compile lexes, parses, and interprets src against kernel, returning the
// one resulting solid. Pass a nil kernel to use geom's in-process reference
// implementation. Per §7, any lex or parse error aborts before
// interpretation ever starts — the returned errors are then every lex and
// parse error found, not just the first. A successful compile with no
// geometry emitted anywhere in the program returns a nil Manifold3D.
func Compile(src *source.Source, kernel geom.Kernel) (geom.Manifold3D, []error) {
	file, lexErrs, parseErrs := parser.ParseSource(src)
	if len(lexErrs) > 0 || len(parseErrs) > 0 {
		errs := make([]error, 0, len(lexErrs)+len(parseErrs))
		for _, e := range lexErrs {
			errs = append(errs, e)
		}
		for _, e := range parseErrs {
			errs = append(errs, e)
		}
		return nil, errs
	}

	interp := runtime.NewInterpreter(kernel)
	result, err := interp.Run(file)
	if err != nil {
		return nil, []error{err}
	}
	return result, nil
}
