package compiler

// Resolver walks a Program once, binding every Id to its Entry and
// building the struct-definition arena. Grounded on the teacher's
// resolve.go visitor (a single struct holding a SymbolTable and an
// ErrorReporter, one method per AST node kind) and on
// original_source/P2's NameAnalyzer, whose scope-push/pop discipline and
// DotAccess chaining rule this mirrors (spec §4.2).
type Resolver struct {
	syms  *SymbolTable
	arena *StructDefArena
	errs  *ErrorReporter
}

// NewResolver returns a Resolver ready to run over a fresh Program.
func NewResolver(errs *ErrorReporter) *Resolver {
	return &Resolver{
		syms:  NewSymbolTable(),
		arena: &StructDefArena{},
		errs:  errs,
	}
}

// Resolve runs name resolution over prog in a single depth-first walk
// (spec §2/§4.2): each top-level decl is visited exactly once, in source
// order, and a function's own body is resolved immediately after its
// name is declared, before the next decl is even looked at. A name is
// visible to code that follows it, never to code that precedes it —
// there is no separate "collect all globals first" pass, so a call to a
// function declared later in the file reports "Undeclared identifier",
// matching original_source/P4's DeclListNode/FnDeclNode.nameAnalysis.
//
// Resolve never returns early on a semantic error (spec §4.2's rule that
// each phase visits the whole tree even after flagging errors); the
// arena it built is returned so StorageLayout and CodeGenerator can look
// up struct layouts by handle.
func (r *Resolver) Resolve(prog *Program) *StructDefArena {
	for _, d := range prog.Decls {
		switch decl := d.(type) {
		case *VarDecl:
			r.declareGlobalVar(decl)
		case *StructDecl:
			r.declareStruct(decl)
		case *FnDecl:
			r.declareFn(decl)
			r.resolveFnBody(decl)
		}
	}
	return r.arena
}

// declareGlobalVar implements the VarDecl rule of spec §4.2: void first,
// then (via resolveTypeNode) an unknown struct-type name, then a
// duplicate in the current (global) frame. Any rejection leaves the
// declaration out of the symbol table.
func (r *Resolver) declareGlobalVar(decl *VarDecl) {
	typ := r.resolveTypeNode(decl.Type)
	if typ.IsVoid() {
		r.errs.Report(decl.Name.P.Line, decl.Name.P.Col, "Non-function declared void")
		return
	}
	if typ.IsError() {
		return // invalid struct type name, already reported by resolveTypeNode
	}
	entry := &Entry{Kind: VarSym, Name: decl.Name.Name, Type: typ, IsGlobal: true}
	if typ.IsStruct() {
		entry.DefHandle = r.structHandle(typ.StructName)
	}
	if err := r.syms.AddDecl(decl.Name.Name, entry); err != nil {
		r.errs.Report(decl.Name.P.Line, decl.Name.P.Col, "Multiply declared identifier")
		return
	}
	decl.Name.Entry = entry
	decl.Name.Typ = typ
}

func (r *Resolver) declareStruct(decl *StructDecl) {
	handle := r.arena.New(decl.Name.Name)
	rec := r.arena.get(handle)
	for _, f := range decl.Fields {
		ftyp := r.resolveTypeNode(f.Type)
		if ftyp.IsVoid() {
			r.errs.Report(f.Name.P.Line, f.Name.P.Col, "Non-function declared void")
			continue
		}
		fentry := &Entry{Kind: VarSym, Name: f.Name.Name, Type: ftyp}
		if err := rec.Fields.AddDecl(f.Name.Name, fentry); err != nil {
			r.errs.Report(f.Name.P.Line, f.Name.P.Col, "Multiply declared identifier")
			continue
		}
		rec.FieldOrder = append(rec.FieldOrder, f.Name.Name)
		f.Name.Entry = fentry
		f.Name.Typ = ftyp
	}
	defEntry := &Entry{Kind: StructDefSym, Name: decl.Name.Name, Type: StructDefType, Handle: handle}
	if err := r.syms.AddDecl(decl.Name.Name, defEntry); err != nil {
		r.errs.Report(decl.Name.P.Line, decl.Name.P.Col, "Multiply declared identifier")
		return
	}
	decl.Name.Entry = defEntry
	decl.Name.Typ = StructDefType
}

// declareFn resolves the function's return type and, per spec §4.2's
// FormalDecl rule, each formal's declared type — reporting a void formal
// here (where its TypeNode is visited) and recording ErrorType in its
// place so the parameter list stays the right length for arity checks.
// resolveFnBody skips inserting a symtab entry for that formal, so it is
// "ignored for the symtab" as required.
func (r *Resolver) declareFn(decl *FnDecl) {
	retType := r.resolveTypeNode(decl.ReturnType)
	entry := &Entry{Kind: FnSym, Name: decl.Name.Name, Type: FnType, ReturnType: retType}
	for _, f := range decl.Formals {
		ftyp := r.resolveTypeNode(f.Type)
		if ftyp.IsVoid() {
			r.errs.Report(f.Name.P.Line, f.Name.P.Col, "Non-function declared void")
			ftyp = ErrorType
		}
		entry.ParamTypes = append(entry.ParamTypes, ftyp)
	}
	if err := r.syms.AddDecl(decl.Name.Name, entry); err != nil {
		r.errs.Report(decl.Name.P.Line, decl.Name.P.Col, "Multiply declared identifier")
		return
	}
	decl.Name.Entry = entry
	decl.Name.Typ = FnType
}

// resolveTypeNode looks up a struct name referenced in a type position and
// reports an error if it does not name a known struct; unresolved struct
// types are reported as ErrorType so downstream phases suppress
// cascading diagnostics (spec §3 Error absorbing sentinel).
func (r *Resolver) resolveTypeNode(tn TypeNode) Type {
	switch tn.Tag {
	case TypeNodeInt:
		return IntType
	case TypeNodeBool:
		return BoolType
	case TypeNodeVoid:
		return VoidType
	case TypeNodeStruct:
		entry, err := r.syms.LookupGlobal(tn.StructName.Name)
		if err != nil || entry == nil || entry.Kind != StructDefSym {
			r.errs.Report(tn.StructName.P.Line, tn.StructName.P.Col, "Invalid name of struct type")
			tn.StructName.Typ = ErrorType
			return ErrorType
		}
		tn.StructName.Entry = entry
		tn.StructName.Typ = StructDefType
		return StructType(tn.StructName.Name)
	default:
		return ErrorType
	}
}

// resolveFnBody opens the function's one scope (formals and locals share
// it, per spec §4.2's scope discipline), resolves the formals and body,
// then closes it.
func (r *Resolver) resolveFnBody(fn *FnDecl) {
	r.syms.AddScope()
	for i, f := range fn.Formals {
		if f.Type.Tag == TypeNodeVoid {
			continue // reported in declareFn, ignored for the symtab
		}
		entry := &Entry{Kind: VarSym, Name: f.Name.Name, Type: r.formalType(fn, i), IsParam: true}
		if entry.Type.IsStruct() {
			entry.DefHandle = r.structHandle(entry.Type.StructName)
		}
		if err := r.syms.AddDecl(f.Name.Name, entry); err != nil {
			r.errs.Report(f.Name.P.Line, f.Name.P.Col, "Multiply declared identifier")
		} else {
			f.Name.Entry = entry
			f.Name.Typ = entry.Type
		}
	}
	r.resolveBlock(&fn.Body)
	r.syms.RemoveScope()
}

func (r *Resolver) formalType(fn *FnDecl, i int) Type {
	if entry := fn.Name.Entry; entry != nil && i < len(entry.ParamTypes) {
		return entry.ParamTypes[i]
	}
	return ErrorType
}

// structHandle looks up the arena handle for a previously declared struct
// type by name. Callers only invoke it after resolveTypeNode has already
// confirmed the name resolves to a StructDefSym, so a miss here would be
// an internal inconsistency rather than a user error.
func (r *Resolver) structHandle(name string) StructDefHandle {
	entry, err := r.syms.LookupGlobal(name)
	if err != nil || entry == nil || entry.Kind != StructDefSym {
		return 0
	}
	return entry.Handle
}

// resolveBlock declares every local var of block then resolves its
// statements in source order, matching the C89-style
// declarations-before-statements shape (spec §3 Block).
func (r *Resolver) resolveBlock(b *Block) {
	for _, decl := range b.Decls {
		typ := r.resolveTypeNode(decl.Type)
		if typ.IsVoid() {
			r.errs.Report(decl.Name.P.Line, decl.Name.P.Col, "Non-function declared void")
			continue
		}
		entry := &Entry{Kind: VarSym, Name: decl.Name.Name, Type: typ}
		if typ.IsStruct() {
			entry.DefHandle = r.structHandle(typ.StructName)
		}
		if err := r.syms.AddDecl(decl.Name.Name, entry); err != nil {
			r.errs.Report(decl.Name.P.Line, decl.Name.P.Col, "Multiply declared identifier")
			continue
		}
		decl.Name.Entry = entry
		decl.Name.Typ = typ
	}
	for _, s := range b.Stmts {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s Stmt) {
	switch st := s.(type) {
	case *AssignStmt:
		r.resolveExpr(st.Lhs)
		r.resolveExpr(st.Rhs)
	case *PostIncStmt:
		r.resolveExpr(st.X)
	case *PostDecStmt:
		r.resolveExpr(st.X)
	case *ReadStmt:
		r.resolveExpr(st.X)
	case *WriteStmt:
		r.resolveExpr(st.X)
	case *IfStmt:
		r.resolveExpr(st.Cond)
		r.syms.AddScope()
		r.resolveBlock(&st.Body)
		r.syms.RemoveScope()
	case *IfElseStmt:
		r.resolveExpr(st.Cond)
		r.syms.AddScope()
		r.resolveBlock(&st.Then)
		r.syms.RemoveScope()
		r.syms.AddScope()
		r.resolveBlock(&st.Else)
		r.syms.RemoveScope()
	case *WhileStmt:
		r.resolveExpr(st.Cond)
		r.syms.AddScope()
		r.resolveBlock(&st.Body)
		r.syms.RemoveScope()
	case *RepeatStmt:
		r.resolveExpr(st.Count)
		r.syms.AddScope()
		r.resolveBlock(&st.Body)
		r.syms.RemoveScope()
	case *CallStmt:
		r.resolveCall(st.Call)
	case *ReturnStmt:
		if st.X != nil {
			r.resolveExpr(st.X)
		}
	case *AsmStmt:
		// untyped, not name-resolved: spliced verbatim by CodeGenerator.
	}
}

// resolveCall binds the callee identifier the same way any other Id
// occurrence is bound (spec §4.2's lookupGlobal rule); whether the
// resolved entry actually names a function is a TypeChecker concern
// (spec §4.3's "Attempt to call a non-function"), not a resolution one.
func (r *Resolver) resolveCall(c *Call) {
	entry, err := r.syms.LookupGlobal(c.Callee.Name)
	if err != nil || entry == nil {
		r.errs.Report(c.Callee.P.Line, c.Callee.P.Col, "Undeclared identifier")
		c.Callee.Typ = ErrorType
	} else {
		c.Callee.Entry = entry
		c.Callee.Typ = entry.Type
	}
	for _, a := range c.Args {
		r.resolveExpr(a)
	}
}

// resolveExpr binds every identifier occurrence via lookupGlobal (spec
// §4.2), regardless of what kind of entry it names — a use of a function
// or struct-type name is a perfectly resolvable Id occurrence; whether
// it is valid in the surrounding expression position is a TypeChecker
// concern.
func (r *Resolver) resolveExpr(e Expr) {
	switch ex := e.(type) {
	case *IntLit, *StringLit, *BoolLit:
		// no identifiers to resolve
	case *IdExpr:
		entry, err := r.syms.LookupGlobal(ex.Name)
		if err != nil || entry == nil {
			r.errs.Report(ex.P.Line, ex.P.Col, "Undeclared identifier")
			ex.Typ = ErrorType
			return
		}
		ex.Entry = entry
		ex.Typ = entry.Type
	case *DotAccess:
		r.resolveDotAccess(ex)
	case *Assign:
		r.resolveExpr(ex.Lhs)
		r.resolveExpr(ex.Rhs)
	case *Call:
		r.resolveCall(ex)
	case *Unary:
		r.resolveExpr(ex.X)
	case *Binary:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	case *Logical:
		r.resolveExpr(ex.Left)
		r.resolveExpr(ex.Right)
	}
}

// resolveDotAccess implements the chaining rule of spec §4.2: once a
// dot-access finds no such field, ChainOK becomes false for every
// dot-access built on top of it, and no further diagnostic is issued for
// the remainder of the chain (BadAccess absorbs, mirroring Type's Error
// sentinel but at the pre-type-check resolution stage). A base location
// that resolved cleanly but isn't struct-typed reports "Dot-access of
// non-struct type"; a base that is already erroneous (undeclared, or
// itself a broken chain) reports nothing further.
func (r *Resolver) resolveDotAccess(d *DotAccess) {
	r.resolveExpr(d.Loc)

	var baseHandle StructDefHandle
	baseOK := true
	reportNonStruct := false
	switch base := d.Loc.(type) {
	case *IdExpr:
		switch {
		case base.Entry == nil || base.Typ.IsError():
			baseOK = false
		case !base.Typ.IsStruct():
			baseOK = false
			reportNonStruct = true
		default:
			baseHandle = base.Entry.DefHandle
		}
	case *DotAccess:
		switch {
		case base.BadAccess:
			baseOK = false
		case !base.ChainOK:
			baseOK = false
			reportNonStruct = true
		default:
			baseHandle = base.ChainField
		}
	default:
		baseOK = false
		reportNonStruct = true
	}

	if !baseOK {
		if reportNonStruct {
			r.errs.Report(d.P.Line, d.P.Col, "Dot-access of non-struct type")
		}
		d.BadAccess = true
		d.ChainOK = false
		d.Typ = ErrorType
		return
	}

	rec := r.arena.get(baseHandle)
	fieldEntry, _ := rec.Fields.LookupLocal(d.Field.Name)
	if fieldEntry == nil {
		r.errs.Report(d.Field.P.Line, d.Field.P.Col, "Invalid struct field name")
		d.BadAccess = true
		d.ChainOK = false
		d.Typ = ErrorType
		return
	}
	d.Field.Entry = fieldEntry
	d.Field.Typ = fieldEntry.Type
	d.Typ = fieldEntry.Type
	d.BadAccess = false
	if fieldEntry.Type.IsStruct() {
		d.ChainOK = true
		d.ChainField = fieldEntry.DefHandle
	} else {
		d.ChainOK = false
	}
}
