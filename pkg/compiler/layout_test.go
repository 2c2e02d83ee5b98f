package compiler

import "testing"

func layoutSrc(t *testing.T, src string) (*Program, *StructDefArena) {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: unexpected error %v", err)
	}
	errs := NewErrorReporter()
	arena := NewResolver(errs).Resolve(prog)
	NewTypeChecker(arena, errs).Check(prog)
	if errs.HasError() {
		t.Fatalf("unexpected errors: %v", errs.Lines())
	}
	NewStorageLayout(arena).Layout(prog)
	return prog, arena
}

func TestLayoutGlobalsGetIncreasingOffsets(t *testing.T) {
	prog, _ := layoutSrc(t, `
int a;
int b;
bool c;
`)
	off := func(i int) int { return prog.Decls[i].(*VarDecl).Name.Entry.Offset }
	if off(0) != 0 || off(1) != 1 || off(2) != 2 {
		t.Errorf("expected offsets 0,1,2 got %d,%d,%d", off(0), off(1), off(2))
	}
}

func TestLayoutParamsAndLocalsAreIndependent(t *testing.T) {
	prog, _ := layoutSrc(t, `
void f(int a, int b) {
    int x;
    int y;
}
`)
	fn := prog.Decls[0].(*FnDecl)
	if fn.Formals[0].Name.Entry.Offset != 0 || fn.Formals[1].Name.Entry.Offset != 1 {
		t.Errorf("expected formal offsets 0,1")
	}
	if fn.Body.Decls[0].Name.Entry.Offset != 0 || fn.Body.Decls[1].Name.Entry.Offset != 1 {
		t.Errorf("expected local offsets 0,1")
	}
	if fn.Name.Entry.SizeParams != 2 {
		t.Errorf("expected SizeParams 2, got %d", fn.Name.Entry.SizeParams)
	}
	if fn.Name.Entry.SizeLocals != 2 {
		t.Errorf("expected SizeLocals 2, got %d", fn.Name.Entry.SizeLocals)
	}
}

func TestLayoutLocalsInsideNestedBlocksShareFrame(t *testing.T) {
	prog, _ := layoutSrc(t, `
void f() {
    int a;
    if (true) {
        int b;
        if (true) {
            int c;
        }
    }
}
`)
	fn := prog.Decls[0].(*FnDecl)
	if fn.Name.Entry.SizeLocals != 3 {
		t.Errorf("expected 3 locals across all nested blocks, got %d", fn.Name.Entry.SizeLocals)
	}
}

func TestLayoutStructFieldsAreContiguous(t *testing.T) {
	_, arena := layoutSrc(t, `
struct Point { int x; int y; };
void f() {
    struct Point p;
}
`)
	rec := arena.get(0)
	xEntry, _ := rec.Fields.LookupLocal("x")
	yEntry, _ := rec.Fields.LookupLocal("y")
	if xEntry.Offset != 0 || yEntry.Offset != 1 {
		t.Errorf("expected field offsets 0,1, got %d,%d", xEntry.Offset, yEntry.Offset)
	}
}
