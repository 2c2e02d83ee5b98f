package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// EntryKind tags the TSym family described in spec §3/§4.1: a common Var
// core, extended by Fn, Struct, and StructDef payloads.
type EntryKind int

const (
	VarSym EntryKind = iota
	FnSym
	StructSym
	StructDefSym
)

// StructDefHandle is an arena index into a StructDefArena, used instead of
// a live pointer so a struct-typed VarSym entry and the StructDefSym entry
// it names never form a reference cycle (see Design Notes in SPEC_FULL.md).
type StructDefHandle int

// Entry is one symbol-table binding. It carries the common Var core
// (Type, Offset, IsGlobal) plus whichever payload its Kind uses; unused
// payload fields are left at their zero value. Modeled as a tagged struct
// rather than an interface hierarchy per the Design Notes guidance, and
// grounded on the teacher's flat Symbol struct in symtable.go.
type Entry struct {
	Kind     EntryKind
	Name     string // the declared identifier this entry binds, used by CodeGenerator for asm labels
	Type     Type
	Offset   int
	IsGlobal bool
	IsParam  bool

	// FnSym payload.
	ReturnType Type
	ParamTypes []Type
	SizeParams int
	SizeLocals int
	NextOffset int // next unused local offset, used only during StorageLayout

	// Struct payload: DefHandle links a struct-typed VarSym entry to its
	// definition; the resolver does not set StructName (the struct's name
	// is carried in Type).
	StructName string
	DefHandle  StructDefHandle

	// StructDefSym payload: the handle to this definition's own arena
	// record (its field table and declaration-ordered field names).
	Handle StructDefHandle
}

// SymbolTable is a stack of named-scope frames, innermost at index 0. It
// is constructed with exactly one (global) frame already open, matching
// original_source/P1_Part_1/SymTable.java's constructor.
type SymbolTable struct {
	frames []map[string]*Entry
}

// NewSymbolTable returns a table with a single open frame.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{frames: []map[string]*Entry{make(map[string]*Entry)}}
}

// AddScope pushes a new empty frame at the head. Total: never fails.
func (s *SymbolTable) AddScope() {
	s.frames = append([]map[string]*Entry{make(map[string]*Entry)}, s.frames...)
}

// RemoveScope pops the head frame.
func (s *SymbolTable) RemoveScope() error {
	if len(s.frames) == 0 {
		return ErrEmptyScope
	}
	s.frames = s.frames[1:]
	return nil
}

// AddDecl records name -> entry in the head frame.
func (s *SymbolTable) AddDecl(name string, entry *Entry) error {
	if name == "" || entry == nil {
		return ErrIllegalArgument
	}
	if len(s.frames) == 0 {
		return ErrEmptyScope
	}
	head := s.frames[0]
	if _, ok := head[name]; ok {
		return ErrDuplicate
	}
	head[name] = entry
	return nil
}

// LookupLocal searches only the head frame.
func (s *SymbolTable) LookupLocal(name string) (*Entry, error) {
	if len(s.frames) == 0 {
		return nil, ErrEmptyScope
	}
	return s.frames[0][name], nil
}

// LookupGlobal searches frames from head outward; innermost binding wins.
func (s *SymbolTable) LookupGlobal(name string) (*Entry, error) {
	if len(s.frames) == 0 {
		return nil, ErrEmptyScope
	}
	for _, frame := range s.frames {
		if e, ok := frame[name]; ok {
			return e, nil
		}
	}
	return nil, nil
}

// Depth reports the number of open frames; used by callers that need to
// assert balanced AddScope/RemoveScope pairing (e.g. tests).
func (s *SymbolTable) Depth() int { return len(s.frames) }

// String renders a deterministic dump of every frame, innermost first, for
// diagnostics only (spec §4.1 "print"; SPEC_FULL.md's supplemented
// SymbolTable.print()).
func (s *SymbolTable) String() string {
	var sb strings.Builder
	sb.WriteString("Sym Table\n")
	for i, frame := range s.frames {
		names := make([]string, 0, len(frame))
		for n := range frame {
			names = append(names, n)
		}
		sort.Strings(names)
		fmt.Fprintf(&sb, "scope %d:", i)
		for _, n := range names {
			fmt.Fprintf(&sb, " %s=%s", n, frame[n].Type)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// structDefRecord is one arena-allocated struct definition: its field
// table (a single-frame SymbolTable of FieldSym-shaped Var entries) plus
// the declaration order needed to assign field offsets deterministically.
type structDefRecord struct {
	Name       string
	Fields     *SymbolTable
	FieldOrder []string
}

// StructDefArena owns every struct definition created during name
// resolution, addressed by StructDefHandle. See Design Notes in
// SPEC_FULL.md for why this replaces a direct pointer cycle.
type StructDefArena struct {
	defs []*structDefRecord
}

// New allocates a fresh struct definition record and returns its handle.
func (a *StructDefArena) New(name string) StructDefHandle {
	a.defs = append(a.defs, &structDefRecord{Name: name, Fields: NewSymbolTable()})
	return StructDefHandle(len(a.defs) - 1)
}

func (a *StructDefArena) get(h StructDefHandle) *structDefRecord {
	return a.defs[h]
}

// String renders every struct definition's fields in declaration order,
// for the CLI's `--emit=resolve` diagnostic mode (SPEC_FULL.md's
// supplemented print() feature, extended to the arena).
func (a *StructDefArena) String() string {
	var sb strings.Builder
	for i, rec := range a.defs {
		fmt.Fprintf(&sb, "struct %s (handle %d):\n", rec.Name, i)
		for _, name := range rec.FieldOrder {
			entry, _ := rec.Fields.LookupLocal(name)
			fmt.Fprintf(&sb, "  %s %s\n", entry.Type, name)
		}
	}
	return sb.String()
}
