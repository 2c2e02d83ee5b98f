package compiler

import "fmt"

// Pos is a 1-based source position, attached to every literal and
// identifier node as required by spec §3/§6.
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Col) }

// Program is the root of the AST: an ordered sequence of global
// declarations (spec §3 ProgramNode/DeclList).
type Program struct {
	Decls []Decl
}

// Decl is implemented by every top-level declaration kind.
type Decl interface {
	declNode()
	Pos() Pos
}

// Id names a declaration or a use of an identifier. It carries the two
// mutable annotation slots described in spec §3. NameResolver fills both:
// Entry with the bound entry and Typ with that entry's type (ErrorType
// when the name is undeclared). TypeChecker reads Typ.
type Id struct {
	P     Pos
	Name  string
	Entry *Entry
	Typ   Type
}

func (id *Id) Pos() Pos { return id.P }

// TypeTag distinguishes the four TypeNode variants of spec §3.
type TypeTag int

const (
	TypeNodeInt TypeTag = iota
	TypeNodeBool
	TypeNodeVoid
	TypeNodeStruct
)

// TypeNode names a declared type as written in source: a primitive keyword
// or `struct <Id>`.
type TypeNode struct {
	P          Pos
	Tag        TypeTag
	StructName *Id // set iff Tag == TypeNodeStruct
}

func (t TypeNode) Pos() Pos { return t.P }

// VarDecl is `T id;` — a scalar, string-incapable, non-void variable
// declaration, or a struct-typed variable declaration.
type VarDecl struct {
	P    Pos
	Type TypeNode
	Name *Id
}

func (*VarDecl) declNode()   {}
func (d *VarDecl) Pos() Pos  { return d.P }

// FormalDecl is one parameter of a function declaration.
type FormalDecl struct {
	P    Pos
	Type TypeNode
	Name *Id
}

func (f *FormalDecl) Pos() Pos { return f.P }

// Block is a `{ decls; stmts; }` body: every construct that opens a scope
// (spec §4.2's "if, if/else, while, repeat, and function bodies") shares
// this shape.
type Block struct {
	Decls []*VarDecl
	Stmts []Stmt
}

// FnDecl declares a function: return type, name, formal parameters, body.
type FnDecl struct {
	P          Pos
	ReturnType TypeNode
	Name       *Id
	Formals    []*FormalDecl
	Body       Block
}

func (*FnDecl) declNode()  {}
func (f *FnDecl) Pos() Pos { return f.P }

// StructDecl declares a named record type and its fields.
type StructDecl struct {
	P      Pos
	Name   *Id
	Fields []*VarDecl
}

func (*StructDecl) declNode()  {}
func (s *StructDecl) Pos() Pos { return s.P }

// Stmt is implemented by every statement kind (spec §1, §3).
type Stmt interface {
	stmtNode()
	Pos() Pos
}

// AssignStmt is `lhs = rhs;`.
type AssignStmt struct {
	P   Pos
	Lhs Expr
	Rhs Expr
}

func (*AssignStmt) stmtNode() {}
func (s *AssignStmt) Pos() Pos { return s.P }

// PostIncStmt is `e++;`.
type PostIncStmt struct {
	P Pos
	X Expr
}

func (*PostIncStmt) stmtNode() {}
func (s *PostIncStmt) Pos() Pos { return s.P }

// PostDecStmt is `e--;`.
type PostDecStmt struct {
	P Pos
	X Expr
}

func (*PostDecStmt) stmtNode() {}
func (s *PostDecStmt) Pos() Pos { return s.P }

// ReadStmt is `cin >> e;`.
type ReadStmt struct {
	P Pos
	X Expr
}

func (*ReadStmt) stmtNode() {}
func (s *ReadStmt) Pos() Pos { return s.P }

// WriteStmt is `cout << e;`.
type WriteStmt struct {
	P Pos
	X Expr
}

func (*WriteStmt) stmtNode() {}
func (s *WriteStmt) Pos() Pos { return s.P }

// IfStmt is `if (cond) { body }`.
type IfStmt struct {
	P    Pos
	Cond Expr
	Body Block
}

func (*IfStmt) stmtNode() {}
func (s *IfStmt) Pos() Pos { return s.P }

// IfElseStmt is `if (cond) { then } else { else }`.
type IfElseStmt struct {
	P    Pos
	Cond Expr
	Then Block
	Else Block
}

func (*IfElseStmt) stmtNode() {}
func (s *IfElseStmt) Pos() Pos { return s.P }

// WhileStmt is `while (cond) { body }`.
type WhileStmt struct {
	P    Pos
	Cond Expr
	Body Block
}

func (*WhileStmt) stmtNode() {}
func (s *WhileStmt) Pos() Pos { return s.P }

// RepeatStmt is `repeat (count) { body }`.
type RepeatStmt struct {
	P     Pos
	Count Expr
	Body  Block
}

func (*RepeatStmt) stmtNode() {}
func (s *RepeatStmt) Pos() Pos { return s.P }

// CallStmt is a function call used for its side effect, not its value.
type CallStmt struct {
	P    Pos
	Call *Call
}

func (*CallStmt) stmtNode() {}
func (s *CallStmt) Pos() Pos { return s.P }

// ReturnStmt is `return;` or `return e;`; X is nil for the former.
type ReturnStmt struct {
	P Pos
	X Expr
}

func (*ReturnStmt) stmtNode() {}
func (s *ReturnStmt) Pos() Pos { return s.P }

// AsmStmt splices a single raw assembly line into codegen output verbatim.
// Supplemented feature (see SPEC_FULL.md); untyped, not name-resolved.
type AsmStmt struct {
	P           Pos
	Instruction string
}

func (*AsmStmt) stmtNode() {}
func (s *AsmStmt) Pos() Pos { return s.P }

// Expr is implemented by every node that produces a value (spec §3).
type Expr interface {
	exprNode()
	Pos() Pos
}

// IntLit is an integer literal.
type IntLit struct {
	P     Pos
	Value int32
}

func (*IntLit) exprNode()  {}
func (e *IntLit) Pos() Pos { return e.P }

// StringLit is a string literal; the language cannot name the String type
// in a declaration (spec §9 Open Questions) — it exists solely as the
// type of a string literal.
type StringLit struct {
	P     Pos
	Value string
}

func (*StringLit) exprNode()  {}
func (e *StringLit) Pos() Pos { return e.P }

// BoolLit is `true` or `false`.
type BoolLit struct {
	P     Pos
	Value bool
}

func (*BoolLit) exprNode()  {}
func (e *BoolLit) Pos() Pos { return e.P }

// IdExpr is a use of an identifier as a value.
type IdExpr struct {
	*Id
}

func (*IdExpr) exprNode() {}

// DotAccess is `loc.field`. ChainField/ChainOK let a further dot-access
// higher up the AST continue through this node's field, when the field
// itself has struct type (spec §4.2's DotAccess chaining rule).
type DotAccess struct {
	P          Pos
	Loc        Expr
	Field      *Id
	BadAccess  bool
	ChainOK    bool
	ChainField StructDefHandle
	Typ        Type
}

func (*DotAccess) exprNode()  {}
func (e *DotAccess) Pos() Pos { return e.P }

// Assign is assignment used as an expression (`(lhs = rhs)`), distinct
// from AssignStmt only in that it participates in a larger expression.
type Assign struct {
	P   Pos
	Lhs Expr
	Rhs Expr
	Typ Type
}

func (*Assign) exprNode()  {}
func (e *Assign) Pos() Pos { return e.P }

// Call is a function call used as an expression.
type Call struct {
	P      Pos
	Callee *Id
	Args   []Expr
	Typ    Type
}

func (*Call) exprNode()  {}
func (e *Call) Pos() Pos { return e.P }

// UnaryOp distinguishes the two unary expression forms.
type UnaryOp int

const (
	UnaryMinus UnaryOp = iota
	UnaryNot
)

// Unary is `-e` or `!e`.
type Unary struct {
	P   Pos
	Op  UnaryOp
	X   Expr
	Typ Type
}

func (*Unary) exprNode()  {}
func (e *Unary) Pos() Pos { return e.P }

// BinOp is the closed set of arithmetic and comparison binary operators.
// And/Or are handled by Logical instead, so their short-circuit codegen
// path is a distinct node kind (mirrors the teacher's BinaryExpr/
// LogicalExpr split in ast.go).
type BinOp int

const (
	OpPlus BinOp = iota
	OpMinus
	OpTimes
	OpDivide
	OpEquals
	OpNotEquals
	OpLess
	OpGreater
	OpLessEq
	OpGreaterEq
)

// Binary is an arithmetic or comparison binary expression.
type Binary struct {
	P     Pos
	Op    BinOp
	Left  Expr
	Right Expr
	Typ   Type
}

func (*Binary) exprNode()  {}
func (e *Binary) Pos() Pos { return e.P }

// LogicalOp is && or ||.
type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
)

// Logical is a short-circuiting `&&` or `||` expression.
type Logical struct {
	P     Pos
	Op    LogicalOp
	Left  Expr
	Right Expr
	Typ   Type
}

func (*Logical) exprNode()  {}
func (e *Logical) Pos() Pos { return e.P }
