package ir

// SymbolTable maps variable names to Variables with stable insertion order —
// the order that later determines tableau column order.
type SymbolTable struct {
	byName map[string]*Variable
	order  []*Variable
}

// NewSymbolTable returns an empty symbol table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{byName: make(map[string]*Variable)}
}

// Get returns the variable named name. If create is true and no such
// variable exists, one is created (with default bounds) and returned.
func (t *SymbolTable) Get(name string, create bool) *Variable {
	if v, ok := t.byName[name]; ok {
		return v
	}
	if !create {
		return nil
	}
	return t.New(name)
}

// New unconditionally creates a fresh variable named name (used for
// synthesized slack variables, which never collide with user names because
// of their "_s_" prefix convention, but New does not itself enforce that).
func (t *SymbolTable) New(name string) *Variable {
	v := NewVariable(name)
	t.byName[name] = v
	t.order = append(t.order, v)
	return v
}

// Variables returns all variables in insertion order.
func (t *SymbolTable) Variables() []*Variable {
	return t.order
}

// Len returns the number of variables in the table.
func (t *SymbolTable) Len() int {
	return len(t.order)
}
