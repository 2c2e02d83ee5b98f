package compiler

import "fmt"

// Result holds everything a caller of Compile might want: the resolved
// AST, its struct-definition arena, the accumulated diagnostics, and (if
// compilation succeeded) the generated assembly text.
type Result struct {
	Program *Program
	Arena   *StructDefArena
	Errors  *ErrorReporter
	Asm     string
}

// Compile runs the full pipeline over src: lex, parse, resolve names,
// type-check, lay out storage, and generate code. Grounded on the
// teacher's compile.go orchestration, which runs each phase in turn and
// bails as soon as a structural (non-recoverable) error occurs, but keeps
// running semantic phases to their end so every diagnostic in the source
// is reported in one pass (spec §5, §6).
//
// Code generation is skipped once name resolution or type checking has
// flagged any error (spec §6): a program with semantic errors has no
// well-defined meaning to emit code for.
func Compile(src string) (*Result, error) {
	prog, err := Parse(src)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	errs := NewErrorReporter()

	resolver := NewResolver(errs)
	arena := resolver.Resolve(prog)

	checker := NewTypeChecker(arena, errs)
	checker.Check(prog)

	result := &Result{Program: prog, Arena: arena, Errors: errs}
	if errs.HasError() {
		return result, nil
	}

	layout := NewStorageLayout(arena)
	layout.Layout(prog)

	result.Asm = Generate(prog, arena)
	return result, nil
}
