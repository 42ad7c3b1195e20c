package main

// Symbol is one named binding. For functions, Type holds the declared return
// type and Params the parameter types.
type Symbol struct {
	Name   string
	Type   *Type
	Const  bool
	IsFunc bool
	Params []*Type
}

// SymbolTable is a stack of name→symbol frames mirroring lexical block
// nesting. Frame 0 is the global scope and is never popped. Lookup walks
// innermost to outermost, so inner frames shadow outer ones.
type SymbolTable struct {
	frames []map[string]*Symbol
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{frames: []map[string]*Symbol{{}}}
}

// EnterScope pushes a frame and returns the matching exit function. Callers
// defer the returned function so an early error return cannot leak a frame.
func (st *SymbolTable) EnterScope() func() {
	st.frames = append(st.frames, map[string]*Symbol{})
	depth := len(st.frames)
	return func() {
		if len(st.frames) != depth {
			panic("symbol table: unbalanced scope exit")
		}
		if len(st.frames) == 1 {
			panic("symbol table: cannot exit the global scope")
		}
		st.frames = st.frames[:len(st.frames)-1]
	}
}

// Define binds sym in the current frame. It returns false if the name is
// already bound in that frame; shadowing an outer frame is always permitted.
func (st *SymbolTable) Define(sym *Symbol) bool {
	top := st.frames[len(st.frames)-1]
	if _, exists := top[sym.Name]; exists {
		return false
	}
	top[sym.Name] = sym
	return true
}

// Lookup resolves name against every frame, innermost first.
func (st *SymbolTable) Lookup(name string) *Symbol {
	for i := len(st.frames) - 1; i >= 0; i-- {
		if sym, ok := st.frames[i][name]; ok {
			return sym
		}
	}
	return nil
}

// LookupCurrentScope resolves name against the innermost frame only. Used to
// detect same-scope redeclaration without forbidding shadowing.
func (st *SymbolTable) LookupCurrentScope(name string) *Symbol {
	if sym, ok := st.frames[len(st.frames)-1][name]; ok {
		return sym
	}
	return nil
}

// Depth returns the number of live frames, including the global frame.
func (st *SymbolTable) Depth() int {
	return len(st.frames)
}
