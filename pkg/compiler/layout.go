package compiler

// StorageLayout assigns every variable a frame-relative offset: globals
// get monotonically increasing offsets into the .data segment, and each
// function's parameters and locals get monotonically increasing offsets
// into its own activation record, computed independently per function
// (spec §4.4). Grounded on the teacher's layout.go pass and on
// original_source/P3's Offset-assignment visitor.
//
// Every scalar slot (int, bool, and a struct's own base slot) occupies
// one word; a struct-typed variable occupies as many words as its
// StructDef has fields, laid out contiguously in declaration order so a
// field access at offset i resolves to base+i.
const wordSize = 1

type StorageLayout struct {
	arena *StructDefArena
}

func NewStorageLayout(arena *StructDefArena) *StorageLayout {
	return &StorageLayout{arena: arena}
}

// sizeOf reports how many words a value of typ occupies in a frame.
func (l *StorageLayout) sizeOf(entry *Entry) int {
	if entry.Type.IsStruct() {
		rec := l.arena.get(entry.DefHandle)
		return len(rec.FieldOrder) * wordSize
	}
	return wordSize
}

// Layout assigns offsets to every struct's fields first (once, regardless
// of how many variables reference that struct type), then to every
// global, then to every function's parameters and locals in turn.
func (l *StorageLayout) Layout(prog *Program) {
	l.layoutStructFields()

	next := 0
	for _, d := range prog.Decls {
		if vd, ok := d.(*VarDecl); ok {
			entry := vd.Name.Entry
			if entry == nil {
				continue
			}
			entry.Offset = next
			next += l.sizeOf(entry)
		}
	}

	for _, d := range prog.Decls {
		if fn, ok := d.(*FnDecl); ok {
			l.layoutFn(fn)
		}
	}
}

// layoutStructFields assigns each struct definition's fields contiguous
// offsets in declaration order, once per struct regardless of how many
// variables use it.
func (l *StorageLayout) layoutStructFields() {
	for _, rec := range l.arena.defs {
		offset := 0
		for _, name := range rec.FieldOrder {
			entry, _ := rec.Fields.LookupLocal(name)
			if entry == nil {
				continue
			}
			entry.Offset = offset
			offset += wordSize
		}
	}
}

// layoutFn assigns parameter offsets (spec §4.4: growing from the frame's
// parameter area) and local-variable offsets (growing from the frame's
// local area) independently, then records the two frame sizes on the
// function's FnSym entry for CodeGenerator's prologue/epilogue.
func (l *StorageLayout) layoutFn(fn *FnDecl) {
	entry := fn.Name.Entry
	if entry == nil {
		return
	}

	paramNext := 0
	for _, f := range fn.Formals {
		if f.Name.Entry == nil {
			continue
		}
		f.Name.Entry.Offset = paramNext
		paramNext += l.sizeOf(f.Name.Entry)
	}
	entry.SizeParams = paramNext

	localNext := 0
	l.layoutBlockLocals(&fn.Body, &localNext)
	entry.SizeLocals = localNext
	entry.NextOffset = localNext
}

// layoutBlockLocals assigns offsets to a block's own declarations and
// recurses into every nested block, since C-- locals declared inside an
// if/while/repeat body still live in the enclosing function's single
// flat activation record (spec §4.4 Design Notes: no block-scoped
// storage reuse).
func (l *StorageLayout) layoutBlockLocals(b *Block, next *int) {
	for _, decl := range b.Decls {
		if decl.Name.Entry == nil {
			continue
		}
		decl.Name.Entry.Offset = *next
		*next += l.sizeOf(decl.Name.Entry)
	}
	for _, s := range b.Stmts {
		l.layoutStmtLocals(s, next)
	}
}

func (l *StorageLayout) layoutStmtLocals(s Stmt, next *int) {
	switch st := s.(type) {
	case *IfStmt:
		l.layoutBlockLocals(&st.Body, next)
	case *IfElseStmt:
		l.layoutBlockLocals(&st.Then, next)
		l.layoutBlockLocals(&st.Else, next)
	case *WhileStmt:
		l.layoutBlockLocals(&st.Body, next)
	case *RepeatStmt:
		l.layoutBlockLocals(&st.Body, next)
	}
}
