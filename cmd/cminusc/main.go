package main

import (
	"fmt"
	"os"

	"cminus/pkg/compiler"
)

// usage: cminusc [--emit=ast|resolve|asm] <source-file>
//
// Grounded on the teacher's cmd/ccompiler/main.go: plain os.Args parsing,
// os.Exit on failure, no flag package (the corpus never reaches for one
// in a single-file CLI). Exit codes follow spec §6: 0 on a clean compile,
// 1 if any phase flagged an error, 2 on a malformed invocation or an
// unparseable source file.
func main() {
	emit := "asm"
	var path string
	for _, arg := range os.Args[1:] {
		switch {
		case len(arg) > len("--emit=") && arg[:len("--emit=")] == "--emit=":
			emit = arg[len("--emit="):]
		case path == "":
			path = arg
		default:
			fmt.Fprintln(os.Stderr, "usage: cminusc [--emit=ast|resolve|asm] <source-file>")
			os.Exit(2)
		}
	}
	if path == "" {
		fmt.Fprintln(os.Stderr, "usage: cminusc [--emit=ast|resolve|asm] <source-file>")
		os.Exit(2)
	}
	if emit != "ast" && emit != "resolve" && emit != "asm" {
		fmt.Fprintln(os.Stderr, "unknown --emit mode:", emit)
		os.Exit(2)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read error:", err)
		os.Exit(2)
	}

	result, err := compiler.Compile(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	switch emit {
	case "ast":
		fmt.Print(compiler.Unparse(result.Program))
	case "resolve":
		fmt.Print(result.Arena)
	case "asm":
		if !result.Errors.HasError() {
			fmt.Print(result.Asm)
		}
	}

	for _, line := range result.Errors.Lines() {
		fmt.Fprintln(os.Stderr, line)
	}
	if result.Errors.HasError() {
		os.Exit(1)
	}
}
