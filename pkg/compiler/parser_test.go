package compiler

import "testing"

func mustParse(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): unexpected error %v", src, err)
	}
	return prog
}

func TestParseGlobalVarDecl(t *testing.T) {
	prog := mustParse(t, "int x;\nbool flag;\n")
	if len(prog.Decls) != 2 {
		t.Fatalf("expected 2 decls, got %d", len(prog.Decls))
	}
	v, ok := prog.Decls[0].(*VarDecl)
	if !ok || v.Name.Name != "x" || v.Type.Tag != TypeNodeInt {
		t.Errorf("decl 0: expected VarDecl(int, x), got %#v", prog.Decls[0])
	}
}

func TestParseStructDecl(t *testing.T) {
	prog := mustParse(t, "struct Point {\n  int x;\n  int y;\n};\n")
	s, ok := prog.Decls[0].(*StructDecl)
	if !ok || s.Name.Name != "Point" || len(s.Fields) != 2 {
		t.Fatalf("expected StructDecl(Point, 2 fields), got %#v", prog.Decls[0])
	}
}

func TestParseFnDeclWithFormalsAndBody(t *testing.T) {
	prog := mustParse(t, `
int add(int a, int b) {
    int total;
    total = a + b;
    return total;
}
`)
	fn, ok := prog.Decls[0].(*FnDecl)
	if !ok {
		t.Fatalf("expected FnDecl, got %#v", prog.Decls[0])
	}
	if fn.Name.Name != "add" || len(fn.Formals) != 2 {
		t.Fatalf("expected add/2 formals, got %s/%d", fn.Name.Name, len(fn.Formals))
	}
	if len(fn.Body.Decls) != 1 || len(fn.Body.Stmts) != 2 {
		t.Fatalf("expected 1 local decl and 2 statements, got %d/%d", len(fn.Body.Decls), len(fn.Body.Stmts))
	}
	if _, ok := fn.Body.Stmts[1].(*ReturnStmt); !ok {
		t.Errorf("expected last statement to be a return, got %#v", fn.Body.Stmts[1])
	}
}

func TestParseIfElseWhileRepeat(t *testing.T) {
	prog := mustParse(t, `
void run() {
    int i;
    if (i < 10) {
        i++;
    } else {
        i--;
    }
    while (i > 0) {
        i = i - 1;
    }
    repeat (3) {
        i++;
    }
}
`)
	fn := prog.Decls[0].(*FnDecl)
	if _, ok := fn.Body.Stmts[0].(*IfElseStmt); !ok {
		t.Errorf("expected IfElseStmt, got %#v", fn.Body.Stmts[0])
	}
	if _, ok := fn.Body.Stmts[1].(*WhileStmt); !ok {
		t.Errorf("expected WhileStmt, got %#v", fn.Body.Stmts[1])
	}
	if _, ok := fn.Body.Stmts[2].(*RepeatStmt); !ok {
		t.Errorf("expected RepeatStmt, got %#v", fn.Body.Stmts[2])
	}
}

func TestParseDotAccessChain(t *testing.T) {
	prog := mustParse(t, `
struct Inner { int v; };
struct Outer { struct Inner in; };
void run() {
    struct Outer o;
    o.in.v = 5;
}
`)
	fn := prog.Decls[2].(*FnDecl)
	assign := fn.Body.Stmts[0].(*AssignStmt)
	outer, ok := assign.Lhs.(*DotAccess)
	if !ok || outer.Field.Name != "v" {
		t.Fatalf("expected outer DotAccess on field v, got %#v", assign.Lhs)
	}
	if _, ok := outer.Loc.(*DotAccess); !ok {
		t.Errorf("expected chained DotAccess as base, got %#v", outer.Loc)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog := mustParse(t, `
int f() {
    return 1 + 2 * 3 == 7 && !false;
}
`)
	fn := prog.Decls[0].(*FnDecl)
	ret := fn.Body.Stmts[0].(*ReturnStmt)
	top, ok := ret.X.(*Logical)
	if !ok || top.Op != OpAnd {
		t.Fatalf("expected top-level && , got %#v", ret.X)
	}
	eq, ok := top.Left.(*Binary)
	if !ok || eq.Op != OpEquals {
		t.Fatalf("expected == on the left of &&, got %#v", top.Left)
	}
	add, ok := eq.Left.(*Binary)
	if !ok || add.Op != OpPlus {
		t.Fatalf("expected + inside ==, got %#v", eq.Left)
	}
	if _, ok := add.Right.(*Binary); !ok {
		t.Errorf("expected * to bind tighter than +, got %#v", add.Right)
	}
}

func TestParseAsmStmt(t *testing.T) {
	prog := mustParse(t, `
void f() {
    asm("nop");
}
`)
	fn := prog.Decls[0].(*FnDecl)
	asm, ok := fn.Body.Stmts[0].(*AsmStmt)
	if !ok || asm.Instruction != "nop" {
		t.Fatalf("expected AsmStmt(nop), got %#v", fn.Body.Stmts[0])
	}
}

func TestParseRejectsMalformedInput(t *testing.T) {
	if _, err := Parse("int x"); err == nil {
		t.Errorf("expected an error for a missing semicolon")
	}
}
