package compiler

// TypeChecker walks a resolved Program and annotates every expression's
// Typ field, reporting a diagnostic for each rule violation in spec §4.3's
// table. Grounded on the teacher's typecheck.go visitor shape and on
// original_source/P3's TypeCheckVisitor, whose per-node-kind dispatch this
// mirrors. Every message text is the literal named by spec §4.3.
//
// Unlike the original Java implementation, whose FnBodyNode.typeCheck only
// validates a return statement's type at a function body's top level, this
// checker threads the enclosing function's declared return type through
// every statement in the body — including those nested inside if/while/
// repeat — so a `return` buried in a loop is held to the same three rules
// as one written directly in the body (SPEC_FULL.md, MODULE: TypeChecker).
type TypeChecker struct {
	arena *StructDefArena
	errs  *ErrorReporter
}

func NewTypeChecker(arena *StructDefArena, errs *ErrorReporter) *TypeChecker {
	return &TypeChecker{arena: arena, errs: errs}
}

// Check type-checks every function and every global initializer-free
// declaration in prog. Global VarDecls and StructDecls carry no
// expressions to check; only FnDecl bodies do.
func (c *TypeChecker) Check(prog *Program) {
	for _, d := range prog.Decls {
		if fn, ok := d.(*FnDecl); ok {
			c.checkFnBody(fn)
		}
	}
}

func (c *TypeChecker) checkFnBody(fn *FnDecl) {
	retType := fn.ReturnType.resolvedType()
	c.checkBlock(&fn.Body, retType)
}

// resolvedType recovers the Type a TypeNode denotes after resolution: for
// struct types it is StructType(name) when the resolver resolved the
// struct name, and ErrorType when the resolver marked StructName.Typ as
// ErrorType (an unresolved struct name); primitives are fixed.
func (tn TypeNode) resolvedType() Type {
	switch tn.Tag {
	case TypeNodeInt:
		return IntType
	case TypeNodeBool:
		return BoolType
	case TypeNodeVoid:
		return VoidType
	case TypeNodeStruct:
		if tn.StructName == nil || tn.StructName.Typ.IsError() {
			return ErrorType
		}
		return StructType(tn.StructName.Name)
	default:
		return ErrorType
	}
}

func (c *TypeChecker) checkBlock(b *Block, fnRetType Type) {
	for _, s := range b.Stmts {
		c.checkStmt(s, fnRetType)
	}
}

func (c *TypeChecker) checkStmt(s Stmt, fnRetType Type) {
	switch st := s.(type) {
	case *AssignStmt:
		c.checkAssignLike(st.P, st.Lhs, st.Rhs)
	case *PostIncStmt:
		c.checkIncDecOperand(st.X)
	case *PostDecStmt:
		c.checkIncDecOperand(st.X)
	case *ReadStmt:
		c.checkReadTarget(st)
	case *WriteStmt:
		c.checkWriteValue(st)
	case *IfStmt:
		c.checkCondition(st.P, st.Cond)
		c.checkBlock(&st.Body, fnRetType)
	case *IfElseStmt:
		c.checkCondition(st.P, st.Cond)
		c.checkBlock(&st.Then, fnRetType)
		c.checkBlock(&st.Else, fnRetType)
	case *WhileStmt:
		c.checkCondition(st.P, st.Cond)
		c.checkBlock(&st.Body, fnRetType)
	case *RepeatStmt:
		ct := c.checkExpr(st.Count)
		if !ct.IsError() && !ct.IsInt() {
			c.errs.Report(st.P.Line, st.P.Col, "Non-integer expression used as a repeat clause")
		}
		c.checkBlock(&st.Body, fnRetType)
	case *CallStmt:
		c.checkCall(st.Call)
	case *ReturnStmt:
		c.checkReturn(st, fnRetType)
	case *AsmStmt:
		// untyped, spliced verbatim.
	}
}

func (c *TypeChecker) checkCondition(p Pos, cond Expr) {
	ct := c.checkExpr(cond)
	if !ct.IsError() && !ct.IsBool() {
		c.errs.Report(p.Line, p.Col, "Non-bool expression used as an if / while condition")
	}
}

// checkReadTarget implements the `cin >> e` rule of spec §4.3: e must not
// be a function, a struct variable, or a struct name.
func (c *TypeChecker) checkReadTarget(st *ReadStmt) {
	xt := c.checkExpr(st.X)
	switch {
	case xt.IsError():
	case xt.IsFn():
		c.errs.Report(st.P.Line, st.P.Col, "Attempt to read a function")
	case xt.IsStruct():
		c.errs.Report(st.P.Line, st.P.Col, "Attempt to read a struct variable")
	case xt.IsStructDef():
		c.errs.Report(st.P.Line, st.P.Col, "Attempt to read a struct name")
	}
}

// checkWriteValue implements the `cout << e` rule of spec §4.3: e must
// not be a function, void, a struct variable, or a struct name.
func (c *TypeChecker) checkWriteValue(st *WriteStmt) {
	vt := c.checkExpr(st.X)
	switch {
	case vt.IsError():
	case vt.IsFn():
		c.errs.Report(st.P.Line, st.P.Col, "Attempt to write a function")
	case vt.IsVoid():
		c.errs.Report(st.P.Line, st.P.Col, "Attempt to write a void")
	case vt.IsStruct():
		c.errs.Report(st.P.Line, st.P.Col, "Attempt to write a struct variable")
	case vt.IsStructDef():
		c.errs.Report(st.P.Line, st.P.Col, "Attempt to write a struct name")
	}
}

// checkReturn applies the three return-statement rules of spec §4.3 to
// every return, regardless of nesting depth (see the type comment above).
func (c *TypeChecker) checkReturn(st *ReturnStmt, fnRetType Type) {
	if st.X == nil {
		if !fnRetType.IsError() && !fnRetType.IsVoid() {
			c.errs.Report(st.P.Line, st.P.Col, "Missing return value")
		}
		return
	}
	xt := c.checkExpr(st.X)
	if fnRetType.IsError() || xt.IsError() {
		return
	}
	if fnRetType.IsVoid() {
		c.errs.Report(st.P.Line, st.P.Col, "Return with a value in a void function")
		return
	}
	if !xt.Equal(fnRetType) {
		c.errs.Report(st.P.Line, st.P.Col, "Bad return value")
	}
}

func (c *TypeChecker) checkIncDecOperand(x Expr) {
	xt := c.checkExpr(x)
	if !xt.IsError() && !xt.IsInt() {
		c.errs.Report(x.Pos().Line, x.Pos().Col, "Arithmetic operator applied to non-numeric operand")
	}
}

// checkAssignLike implements the shared assignment rule used by both
// AssignStmt and the Assign expression (spec §4.3): both sides must
// type-check, and every applicable rule fires independently rather than
// short-circuiting on the first hit — the ground truth's AssignNode.
// typeCheck (original_source/P5/files/ast.java:1788) runs the mismatch
// check and each same-kind ban as separate, non-exclusive `if`s, so
// assigning a Point to a Line variable reports both "Type mismatch" and
// "Struct variable assignment".
func (c *TypeChecker) checkAssignLike(p Pos, lhs, rhs Expr) Type {
	lt := c.checkExpr(lhs)
	rt := c.checkExpr(rhs)
	if lt.IsError() || rt.IsError() {
		return ErrorType
	}
	ok := true
	if lt.IsFn() && rt.IsFn() {
		c.errs.Report(p.Line, p.Col, "Function assignment")
		ok = false
	}
	if lt.IsStructDef() && rt.IsStructDef() {
		c.errs.Report(p.Line, p.Col, "Struct name assignment")
		ok = false
	}
	if lt.IsStruct() && rt.IsStruct() {
		c.errs.Report(p.Line, p.Col, "Struct variable assignment")
		ok = false
	}
	if !lt.Equal(rt) {
		c.errs.Report(p.Line, p.Col, "Type mismatch")
		ok = false
	}
	if !ok {
		return ErrorType
	}
	return lt
}

// checkCall implements the `f(args)` rule of spec §4.3: f must resolve to
// a function, its arity must match, and each actual's type must equal
// the corresponding formal's.
func (c *TypeChecker) checkCall(call *Call) Type {
	argTypes := make([]Type, len(call.Args))
	for i, a := range call.Args {
		argTypes[i] = c.checkExpr(a)
	}
	entry := call.Callee.Entry
	if entry == nil || call.Callee.Typ.IsError() {
		call.Typ = ErrorType
		return ErrorType
	}
	if entry.Kind != FnSym {
		c.errs.Report(call.P.Line, call.P.Col, "Attempt to call a non-function")
		call.Typ = ErrorType
		return ErrorType
	}
	if len(call.Args) != len(entry.ParamTypes) {
		c.errs.Report(call.P.Line, call.P.Col, "Function call with wrong number of args")
		call.Typ = ErrorType
		return ErrorType
	}
	for i, at := range argTypes {
		want := entry.ParamTypes[i]
		if at.IsError() || want.IsError() {
			continue
		}
		if !at.Equal(want) {
			c.errs.Report(call.Args[i].Pos().Line, call.Args[i].Pos().Col, "Type of actual does not match type of formal")
		}
	}
	call.Typ = entry.ReturnType
	return entry.ReturnType
}

// checkExpr type-checks e bottom-up, annotates its Typ, and returns it.
func (c *TypeChecker) checkExpr(e Expr) Type {
	switch ex := e.(type) {
	case *IntLit:
		return IntType
	case *StringLit:
		return StringType
	case *BoolLit:
		return BoolType
	case *IdExpr:
		if ex.Entry == nil {
			ex.Typ = ErrorType
		}
		return ex.Typ
	case *DotAccess:
		if ex.BadAccess {
			ex.Typ = ErrorType
		}
		return ex.Typ
	case *Assign:
		ex.Typ = c.checkAssignLike(ex.P, ex.Lhs, ex.Rhs)
		return ex.Typ
	case *Call:
		return c.checkCall(ex)
	case *Unary:
		return c.checkUnary(ex)
	case *Binary:
		return c.checkBinary(ex)
	case *Logical:
		return c.checkLogical(ex)
	default:
		return ErrorType
	}
}

func (c *TypeChecker) checkUnary(u *Unary) Type {
	xt := c.checkExpr(u.X)
	if xt.IsError() {
		u.Typ = ErrorType
		return ErrorType
	}
	switch u.Op {
	case UnaryMinus:
		if !xt.IsInt() {
			c.errs.Report(u.P.Line, u.P.Col, "Arithmetic operator applied to non-numeric operand")
			u.Typ = ErrorType
			return ErrorType
		}
		u.Typ = IntType
	case UnaryNot:
		if !xt.IsBool() {
			c.errs.Report(u.P.Line, u.P.Col, "Logical operator applied to non-bool operand")
			u.Typ = ErrorType
			return ErrorType
		}
		u.Typ = BoolType
	}
	return u.Typ
}

// checkOperandKind reports msg at x's own position (not the operator's)
// when x's already-checked type xt fails pred, matching the ground
// truth's per-operand diagnostics (original_source/P5's PlusNode/
// AndNode/LessNode typeCheck: each operand is checked independently, so
// a binary expression with two bad operands produces two diagnostics).
func (c *TypeChecker) checkOperandKind(x Expr, xt Type, pred func(Type) bool, msg string) bool {
	if xt.IsError() {
		return true
	}
	if !pred(xt) {
		c.errs.Report(x.Pos().Line, x.Pos().Col, msg)
		return false
	}
	return true
}

func (c *TypeChecker) checkBinary(b *Binary) Type {
	lt := c.checkExpr(b.Left)
	rt := c.checkExpr(b.Right)
	switch b.Op {
	case OpPlus, OpMinus, OpTimes, OpDivide:
		lok := c.checkOperandKind(b.Left, lt, Type.IsInt, "Arithmetic operator applied to non-numeric operand")
		rok := c.checkOperandKind(b.Right, rt, Type.IsInt, "Arithmetic operator applied to non-numeric operand")
		if !lok || !rok || lt.IsError() || rt.IsError() {
			b.Typ = ErrorType
			return ErrorType
		}
		b.Typ = IntType
	case OpLess, OpGreater, OpLessEq, OpGreaterEq:
		lok := c.checkOperandKind(b.Left, lt, Type.IsInt, "Relational operator applied to non-numeric operand")
		rok := c.checkOperandKind(b.Right, rt, Type.IsInt, "Relational operator applied to non-numeric operand")
		if !lok || !rok || lt.IsError() || rt.IsError() {
			b.Typ = ErrorType
			return ErrorType
		}
		b.Typ = BoolType
	case OpEquals, OpNotEquals:
		if lt.IsError() || rt.IsError() {
			b.Typ = ErrorType
			return ErrorType
		}
		b.Typ = c.checkEquality(b.P, lt, rt)
		if b.Typ.IsError() {
			return ErrorType
		}
	}
	return b.Typ
}

// checkEquality implements the `==`/`!=` rule of spec §4.3: the banned
// same-kind pairings and the general type-equality check are independent,
// non-exclusive `if`s (original_source/P5/files/ast.java's
// NotEqualsNode.typeCheck), not a mutually-exclusive switch — comparing
// two different struct types reports both "Type mismatch" and "Equality
// operator applied to struct variables".
func (c *TypeChecker) checkEquality(p Pos, lt, rt Type) Type {
	ok := true
	if lt.IsFn() && rt.IsFn() {
		c.errs.Report(p.Line, p.Col, "Equality operator applied to functions")
		ok = false
	}
	if lt.IsVoid() && rt.IsVoid() {
		c.errs.Report(p.Line, p.Col, "Equality operator applied to void functions")
		ok = false
	}
	if lt.IsStruct() && rt.IsStruct() {
		c.errs.Report(p.Line, p.Col, "Equality operator applied to struct variables")
		ok = false
	}
	if lt.IsStructDef() && rt.IsStructDef() {
		c.errs.Report(p.Line, p.Col, "Equality operator applied to struct names")
		ok = false
	}
	if !lt.Equal(rt) {
		c.errs.Report(p.Line, p.Col, "Type mismatch")
		ok = false
	}
	if !ok {
		return ErrorType
	}
	return BoolType
}

func (c *TypeChecker) checkLogical(l *Logical) Type {
	lt := c.checkExpr(l.Left)
	rt := c.checkExpr(l.Right)
	lok := c.checkOperandKind(l.Left, lt, Type.IsBool, "Logical operator applied to non-bool operand")
	rok := c.checkOperandKind(l.Right, rt, Type.IsBool, "Logical operator applied to non-bool operand")
	if !lok || !rok || lt.IsError() || rt.IsError() {
		l.Typ = ErrorType
		return ErrorType
	}
	l.Typ = BoolType
	return l.Typ
}
