package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 4 << 10
	maxFuzzInput = 16 << 10
)

// languageSeeds cover every operator, precedence and associativity rule
// and each error code reachable from source text.
var languageSeeds = []string{
	"1",
	"1 + 2 * 3",
	"a + b * c * d + e",
	"f ^ g ^ h",
	" 1 + 2 + f ^ g ^ h * 3 * 4",
	"--1 * 2",
	"--f ^ g",
	"-9!",
	"(((0)))",
	"(1 + 2) * 3",
	"2 ^ -1",
	"12!",
	"13!",
	"2147483647 + 1",
	"-2147483647 - 2",
	"2147483648",
	"7 / 0",
	"0 ^ 0",
	"2 * (1 + 3",
	"1 2",
	")",
	"1 + ",
	"a_b",
	"1 % 2",
	"１＋２",
	"\t1\r\n+\f2",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".calc" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) > maxSeedBytes {
		return src[:maxSeedBytes]
	}
	return src
}
