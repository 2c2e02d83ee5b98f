package compiler

import (
	"strings"
	"testing"
)

// End-to-end scenarios exercising the full pipeline, one per class of
// program behavior called out in spec §8.
func TestCompileScenarios(t *testing.T) {
	t.Run("NestedScopingRebindsInnerName", func(t *testing.T) {
		result, err := Compile(`
int x;
void f() {
    int x;
    if (true) {
        int x;
        x = 3;
    }
    x = 2;
}
`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Errors.HasError() {
			t.Fatalf("unexpected semantic errors: %v", result.Errors.Lines())
		}
	})

	t.Run("GlobalVsLocalSameName", func(t *testing.T) {
		result, err := Compile(`
int counter;
void bump() {
    int counter;
    counter = counter + 1;
}
`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Errors.HasError() {
			t.Fatalf("unexpected semantic errors: %v", result.Errors.Lines())
		}
	})

	t.Run("PostDecrementEmitsSubu", func(t *testing.T) {
		result, err := Compile(`
void f() {
    int x;
    x = 5;
    x--;
}
`)
		if err != nil || result.Errors.HasError() {
			t.Fatalf("unexpected error/errors: %v %v", err, result.Errors.Lines())
		}
		if !strings.Contains(result.Asm, "subu $t0, $t0, 1") {
			t.Errorf("expected a subu 1 for x--, got:\n%s", result.Asm)
		}
	})

	t.Run("FunctionCallAndReturnValue", func(t *testing.T) {
		result, err := Compile(`
int square(int n) {
    return n * n;
}
void main() {
    int r;
    r = square(4);
    cout << r;
}
`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Errors.HasError() {
			t.Fatalf("unexpected semantic errors: %v", result.Errors.Lines())
		}
		if !strings.Contains(result.Asm, "jal _square") {
			t.Errorf("expected a call to _square, got:\n%s", result.Asm)
		}
	})

	t.Run("TypeMismatchProducesLineColDiagnostic", func(t *testing.T) {
		result, err := Compile(`
void f() {
    int x;
    x = true;
}
`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Errors.HasError() {
			t.Fatalf("expected a type mismatch diagnostic")
		}
		line := result.Errors.Lines()[0]
		if !strings.Contains(line, "***ERROR***") {
			t.Errorf("expected the spec's diagnostic marker, got %q", line)
		}
		if !strings.Contains(line, "Type mismatch") {
			t.Errorf("expected the exact message 'Type mismatch', got %q", line)
		}
		if result.Asm != "" {
			t.Errorf("expected code generation to be skipped after a type error")
		}
	})

	t.Run("StructFieldDotAccess", func(t *testing.T) {
		result, err := Compile(`
struct Point { int x; int y; };
void main() {
    struct Point p;
    int sum;
    p.x = 3;
    p.y = 4;
    sum = p.x + p.y;
    cout << sum;
}
`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Errors.HasError() {
			t.Fatalf("unexpected semantic errors: %v", result.Errors.Lines())
		}
		if !strings.Contains(result.Asm, "addiu $t1, $fp") {
			t.Errorf("expected a frame-relative struct base address computation, got:\n%s", result.Asm)
		}
	})
}
