package parser_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/programble/lispy/parser"
)

const fixtureDir = "testdata"

func BenchmarkParser(b *testing.B) {
	files, err := filepath.Glob(filepath.Join(fixtureDir, "*.lisp"))
	if err != nil {
		b.Fatalf("Failed to list test fixtures: %v", err)
	}
	sort.Strings(files) // should be redundant
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(filepath.Base(path), func(b *testing.B) {
			b.SetBytes(int64(len(src)))
			for i := 0; i < b.N; i++ {
				_, err := parser.ParseString(path, string(src))
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
