// Command maskgen writes the bit mask table used by internal/wire.
//
// Usage:
//
//	maskgen [-o masks.go] [-package wire]
//
// The generated file declares masks, an array whose element w has the low w
// bits set, for every w from 0 to 64.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"golang.org/x/tools/imports"
)

const maxBits = 64

func main() {
	out := flag.String("o", "", "Output file (default: stdout)")
	pkg := flag.String("package", "wire", "Package name of the generated file")
	flag.Parse()

	src, err := generate(*pkg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *out == "" {
		os.Stdout.Write(src)
		return
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", *out, err)
		os.Exit(1)
	}
}

// generate renders the mask table source for package pkg.
func generate(pkg string) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by maskgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkg)
	fmt.Fprintf(&buf, "// masks[w] has the low w bits set.\n")
	fmt.Fprintf(&buf, "var masks = [MaxBits + 1]uint64{\n")
	for w := 0; w <= maxBits; w++ {
		fmt.Fprintf(&buf, "%#x,\n", mask(w))
	}
	fmt.Fprintf(&buf, "}\n")

	formatted, err := imports.Process("masks.go", buf.Bytes(), &imports.Options{
		Comments:  true,
		TabIndent: true,
		TabWidth:  8,
	})
	if err != nil {
		return nil, fmt.Errorf("format generated source: %w", err)
	}
	return formatted, nil
}

func mask(w int) uint64 {
	if w >= maxBits {
		return ^uint64(0)
	}
	return 1<<uint(w) - 1
}
