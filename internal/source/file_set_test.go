package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.calc", []byte("1 + 2"), 0)
	id2 := fs.Add("test.calc", []byte("3 * 4"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}
	latest, ok := fs.GetLatest("test.calc")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "1 + 2" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestLoadNormalizesBOMAndCRLF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.calc")
	if err := os.WriteFile(path, []byte("\xEF\xBB\xBF1 +\r\n2\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "1 +\n2\n" {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF bits", f.Flags)
	}
	if f.Flags&FileVirtual != 0 {
		t.Error("loaded file must not be virtual")
	}
}

func TestLoadMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "nope.calc")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNormalizationNFKC(t *testing.T) {
	fs := NewFileSet()
	fs.SetNormalization(NormNFKC)
	id := fs.AddVirtual("wide", []byte("１＋２"))
	f := fs.Get(id)
	if string(f.Content) != "1+2" {
		t.Errorf("content = %q, want %q", f.Content, "1+2")
	}
	if f.Flags&FileNormalizedUnicode == 0 {
		t.Error("expected FileNormalizedUnicode flag")
	}

	plain := NewFileSet()
	id = plain.AddVirtual("wide", []byte("１＋２"))
	if string(plain.Get(id).Content) != "１＋２" {
		t.Error("default FileSet must not normalise")
	}
}

func TestParseNormalization(t *testing.T) {
	for in, want := range map[string]Normalization{"": NormNone, "none": NormNone, "nfc": NormNFC, "nfkc": NormNFKC} {
		got, ok := ParseNormalization(in)
		if !ok || got != want {
			t.Errorf("ParseNormalization(%q) = %v,%v", in, got, ok)
		}
	}
	if _, ok := ParseNormalization("nfd"); ok {
		t.Error("nfd must be rejected")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r", []byte("ab\ncd\n\nef"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{1, LineCol{1, 2}},
		{2, LineCol{1, 3}}, // the newline itself
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{9, LineCol{4, 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("g", []byte("one\ntwo\n\nfour")))
	want := map[uint32]string{0: "", 1: "one", 2: "two", 3: "", 4: "four", 5: ""}
	for n, w := range want {
		if got := f.GetLine(n); got != w {
			t.Errorf("GetLine(%d) = %q, want %q", n, got, w)
		}
	}
}

func TestFormatPath(t *testing.T) {
	f := &File{Path: "/very/long/absolute/path/that/goes/on/and/on/expr.calc"}
	if got := f.FormatPath("basename", ""); got != "expr.calc" {
		t.Errorf("basename = %q", got)
	}
	if got := f.FormatPath("auto", ""); got != "expr.calc" {
		t.Errorf("auto = %q", got)
	}
	rel := &File{Path: "dir/x.calc"}
	if got := rel.FormatPath("auto", ""); got != "dir/x.calc" {
		t.Errorf("auto relative = %q", got)
	}
	virt := &File{Path: "<expr>", Flags: FileVirtual}
	if got := virt.FormatPath("absolute", ""); got != "<expr>" {
		t.Errorf("virtual = %q", got)
	}
}
