package visitors

import (
	"strings"
	"testing"

	"github.com/aaronc81/yascad-go/pkg/ast"
	"github.com/aaronc81/yascad-go/pkg/parser"
	"github.com/aaronc81/yascad-go/pkg/source"
)

func parseOrFatal(t *testing.T, text string) *ast.File {
	t.Helper()
	src := source.New("test", text)
	file, lexErrs, parseErrs := parser.ParseSource(src)
	if len(lexErrs) > 0 || len(parseErrs) > 0 {
		t.Fatalf("unexpected lex/parse errors: %v %v", lexErrs, parseErrs)
	}
	return file
}

func TestDebugPrinterRendersModuleDefAndCall(t *testing.T) {
	file := parseOrFatal(t, "module m(a, b=2) { cube(a, b, 1); } m(1);")

	p := NewDebugPrinter()
	file.Accept(p)
	out := p.String()

	for _, want := range []string{"File", "ModuleDef m", "param a", "param b =", "Call cube", "Call m"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestDebugPrinterRendersOperatorApplicationAndChildren(t *testing.T) {
	file := parseOrFatal(t, "difference() { cube(5,5,5); cube(2,2,2); };")

	p := NewDebugPrinter()
	file.Accept(p)
	out := p.String()

	for _, want := range []string{"OperatorApplication difference", "children:", "Call cube"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestDebugPrinterRendersForAndIfWithElse(t *testing.T) {
	file := parseOrFatal(t, `
		for (i = [0:2]) {
			if (i == 1) {
				cube(1,1,1);
			} else {
				cube(2,2,2);
			}
		};
	`)

	p := NewDebugPrinter()
	file.Accept(p)
	out := p.String()

	for _, want := range []string{"ForStmt i in", "RangeLiteral", "IfStmt", "then:", "else:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestDebugPrinterRendersBinaryOpAndFieldAccess(t *testing.T) {
	file := parseOrFatal(t, "x = cube(1,1,1).size.x + 1;")

	p := NewDebugPrinter()
	file.Accept(p)
	out := p.String()

	for _, want := range []string{"Binding x =", "BinaryOp +", "FieldAccess .size", "FieldAccess .x"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
