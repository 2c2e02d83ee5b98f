package compiler

import (
	"fmt"
	"strings"
)

// Unparse renders prog back to C-- source text. A thin pretty-printer,
// kept only so the CLI's `--emit=ast` mode has something legible to show;
// spec §1 treats the unparser as an external collaborator, not a module
// with its own invariants. Grounded on the teacher's unparse.go, which
// takes the same "indent-tracking strings.Builder" approach.
type unparser struct {
	out    strings.Builder
	indent int
}

func Unparse(prog *Program) string {
	u := &unparser{}
	for _, d := range prog.Decls {
		u.decl(d)
		u.out.WriteString("\n")
	}
	return u.out.String()
}

func (u *unparser) writeIndent() {
	u.out.WriteString(strings.Repeat("    ", u.indent))
}

func (u *unparser) decl(d Decl) {
	switch v := d.(type) {
	case *VarDecl:
		u.writeIndent()
		fmt.Fprintf(&u.out, "%s %s;\n", u.typeNode(v.Type), v.Name.Name)
	case *StructDecl:
		u.writeIndent()
		fmt.Fprintf(&u.out, "struct %s {\n", v.Name.Name)
		u.indent++
		for _, f := range v.Fields {
			u.decl(f)
		}
		u.indent--
		u.writeIndent()
		u.out.WriteString("};\n")
	case *FnDecl:
		u.writeIndent()
		fmt.Fprintf(&u.out, "%s %s(", u.typeNode(v.ReturnType), v.Name.Name)
		for i, f := range v.Formals {
			if i > 0 {
				u.out.WriteString(", ")
			}
			fmt.Fprintf(&u.out, "%s %s", u.typeNode(f.Type), f.Name.Name)
		}
		u.out.WriteString(") ")
		u.block(v.Body)
		u.out.WriteString("\n")
	}
}

func (u *unparser) typeNode(t TypeNode) string {
	switch t.Tag {
	case TypeNodeInt:
		return "int"
	case TypeNodeBool:
		return "bool"
	case TypeNodeVoid:
		return "void"
	case TypeNodeStruct:
		return "struct " + t.StructName.Name
	default:
		return "?"
	}
}

func (u *unparser) block(b Block) {
	u.out.WriteString("{\n")
	u.indent++
	for _, d := range b.Decls {
		u.decl(d)
	}
	for _, s := range b.Stmts {
		u.stmt(s)
	}
	u.indent--
	u.writeIndent()
	u.out.WriteString("}\n")
}

func (u *unparser) stmt(s Stmt) {
	u.writeIndent()
	switch st := s.(type) {
	case *AssignStmt:
		fmt.Fprintf(&u.out, "%s = %s;\n", u.expr(st.Lhs), u.expr(st.Rhs))
	case *PostIncStmt:
		fmt.Fprintf(&u.out, "%s++;\n", u.expr(st.X))
	case *PostDecStmt:
		fmt.Fprintf(&u.out, "%s--;\n", u.expr(st.X))
	case *ReadStmt:
		fmt.Fprintf(&u.out, "cin >> %s;\n", u.expr(st.X))
	case *WriteStmt:
		fmt.Fprintf(&u.out, "cout << %s;\n", u.expr(st.X))
	case *IfStmt:
		fmt.Fprintf(&u.out, "if (%s) ", u.expr(st.Cond))
		u.block(st.Body)
	case *IfElseStmt:
		fmt.Fprintf(&u.out, "if (%s) ", u.expr(st.Cond))
		u.block(st.Then)
		u.writeIndent()
		u.out.WriteString("else ")
		u.block(st.Else)
	case *WhileStmt:
		fmt.Fprintf(&u.out, "while (%s) ", u.expr(st.Cond))
		u.block(st.Body)
	case *RepeatStmt:
		fmt.Fprintf(&u.out, "repeat (%s) ", u.expr(st.Count))
		u.block(st.Body)
	case *CallStmt:
		fmt.Fprintf(&u.out, "%s;\n", u.expr(st.Call))
	case *ReturnStmt:
		if st.X == nil {
			u.out.WriteString("return;\n")
		} else {
			fmt.Fprintf(&u.out, "return %s;\n", u.expr(st.X))
		}
	case *AsmStmt:
		fmt.Fprintf(&u.out, "asm(%q);\n", st.Instruction)
	}
}

func (u *unparser) expr(e Expr) string {
	switch ex := e.(type) {
	case *IntLit:
		return fmt.Sprintf("%d", ex.Value)
	case *StringLit:
		return fmt.Sprintf("%q", ex.Value)
	case *BoolLit:
		if ex.Value {
			return "true"
		}
		return "false"
	case *IdExpr:
		return ex.Name
	case *DotAccess:
		return u.expr(ex.Loc) + "." + ex.Field.Name
	case *Assign:
		return fmt.Sprintf("(%s = %s)", u.expr(ex.Lhs), u.expr(ex.Rhs))
	case *Call:
		var args []string
		for _, a := range ex.Args {
			args = append(args, u.expr(a))
		}
		return fmt.Sprintf("%s(%s)", ex.Callee.Name, strings.Join(args, ", "))
	case *Unary:
		op := "-"
		if ex.Op == UnaryNot {
			op = "!"
		}
		return op + u.expr(ex.X)
	case *Binary:
		return fmt.Sprintf("(%s %s %s)", u.expr(ex.Left), binOpText(ex.Op), u.expr(ex.Right))
	case *Logical:
		op := "&&"
		if ex.Op == OpOr {
			op = "||"
		}
		return fmt.Sprintf("(%s %s %s)", u.expr(ex.Left), op, u.expr(ex.Right))
	default:
		return "?"
	}
}

func binOpText(op BinOp) string {
	switch op {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpTimes:
		return "*"
	case OpDivide:
		return "/"
	case OpEquals:
		return "=="
	case OpNotEquals:
		return "!="
	case OpLess:
		return "<"
	case OpGreater:
		return ">"
	case OpLessEq:
		return "<="
	case OpGreaterEq:
		return ">="
	default:
		return "?"
	}
}
