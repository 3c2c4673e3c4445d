package runtime

import "github.com/aaronc81/yascad-go/pkg/ast"

// userDefinition is a captured user module/operator: its parameter list
// and body, plus the scope it closes over (so a definition can see
// bindings visible at its own definition site).
type userDefinition struct {
	Parameters *ast.Parameters
	Body       []ast.Stmt
	Closure    *Scope
}

// Scope is one lexical frame (§4.4): bindings, user modules and user
// operators are three separate namespaces, each consulted in its own
// place in the name-resolution order (§4.4), with an upward parent
// pointer per frame. Extended from
// original_source/lang/backend/src/lexical_scope.rs's single-namespace
// LexicalScope, which predates the user-module/user-operator split and
// the built-in-name collision check spec.md §4.4 requires.
type Scope struct {
	parent    *Scope
	bindings  map[string]Object
	modules   map[string]*userDefinition
	operators map[string]*userDefinition
}

// NewRootScope returns a parentless scope.
func NewRootScope() *Scope {
	return &Scope{
		bindings:  make(map[string]Object),
		modules:   make(map[string]*userDefinition),
		operators: make(map[string]*userDefinition),
	}
}

// NewChildScope returns a fresh frame whose parent is s.
func (s *Scope) NewChildScope() *Scope {
	c := NewRootScope()
	c.parent = s
	return c
}

// GetBinding walks this frame then its ancestors for name.
func (s *Scope) GetBinding(name string) (Object, bool) {
	for f := s; f != nil; f = f.parent {
		if v, ok := f.bindings[name]; ok {
			return v, true
		}
	}
	return Object{}, false
}

// GetModule walks this frame then its ancestors for a user module
// definition named name.
func (s *Scope) GetModule(name string) (*userDefinition, bool) {
	for f := s; f != nil; f = f.parent {
		if d, ok := f.modules[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// GetOperator walks this frame then its ancestors for a user operator
// definition named name.
func (s *Scope) GetOperator(name string) (*userDefinition, bool) {
	for f := s; f != nil; f = f.parent {
		if d, ok := f.operators[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// nameExists reports whether name is already taken in this frame or
// any ancestor, across all three namespaces plus the built-in module
// and operator catalogs — the full check §4.4 requires before adding
// any new name.
func (s *Scope) nameExists(name string) bool {
	if _, ok := GetBuiltinModule(name); ok {
		return true
	}
	if _, ok := GetBuiltinOperator(name); ok {
		return true
	}
	for f := s; f != nil; f = f.parent {
		if _, ok := f.bindings[name]; ok {
			return true
		}
		if _, ok := f.modules[name]; ok {
			return true
		}
		if _, ok := f.operators[name]; ok {
			return true
		}
	}
	return false
}

// AddBinding adds name to this frame's bindings, failing DuplicateName
// if it already exists anywhere in the chain or the built-in catalog
// (§4.4).
func (s *Scope) AddBinding(name string, value Object) bool {
	if s.nameExists(name) {
		return false
	}
	s.bindings[name] = value
	return true
}

// AddModule adds a user module definition to this frame.
func (s *Scope) AddModule(name string, def *userDefinition) bool {
	if s.nameExists(name) {
		return false
	}
	s.modules[name] = def
	return true
}

// AddOperator adds a user operator definition to this frame.
func (s *Scope) AddOperator(name string, def *userDefinition) bool {
	if s.nameExists(name) {
		return false
	}
	s.operators[name] = def
	return true
}
