package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddAssignsSequentialIDs(t *testing.T) {
	fs := NewFileSet()

	a := fs.AddVirtual("a.sysml", []byte("package A;"))
	b := fs.AddVirtual("b.sysml", []byte("package B;"))

	if a != 0 || b != 1 {
		t.Fatalf("expected ids 0 and 1, got %d and %d", a, b)
	}
	if fs.Len() != 2 {
		t.Fatalf("expected 2 files, got %d", fs.Len())
	}
	if fs.Get(a).Path != "a.sysml" {
		t.Fatalf("unexpected path %q", fs.Get(a).Path)
	}
}

func TestLoadIsIdempotentPerPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.sysml")
	if err := os.WriteFile(path, []byte("package Core;\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	first, err := fs.Load(path)
	if err != nil {
		t.Fatalf("first load: %v", err)
	}
	second, err := fs.Load(path)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if first != second {
		t.Fatalf("expected same id on reload, got %d and %d", first, second)
	}
	if fs.Len() != 1 {
		t.Fatalf("expected one file, got %d", fs.Len())
	}
}

func TestLoadNormalizesCRLFAndBOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.sysml")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("package A;\r\n")...)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "package A;\n" {
		t.Fatalf("unexpected content %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 || f.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("expected BOM and CRLF flags, got %v", f.Flags)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("m.sysml", []byte("abcde\nfg\nhij"))

	cases := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{4, LineCol{Line: 1, Col: 5}},
		{5, LineCol{Line: 1, Col: 6}}, // the newline itself
		{6, LineCol{Line: 2, Col: 1}},
		{7, LineCol{Line: 2, Col: 2}},
		{9, LineCol{Line: 3, Col: 1}},
	}
	for _, tc := range cases {
		got, _ := fs.Resolve(Span{File: id, Start: tc.off, End: tc.off})
		if got != tc.want {
			t.Errorf("offset %d: got %+v, want %+v", tc.off, got, tc.want)
		}
	}
}

func TestUnreadableFileRecorded(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddUnreadable("missing.sysml")

	f := fs.Get(id)
	if f.Flags&FileUnreadable == 0 {
		t.Fatalf("expected FileUnreadable flag")
	}
	if len(f.Content) != 0 {
		t.Fatalf("expected empty content")
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("m.sysml", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	if got := f.GetLine(2); got != "second" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := f.GetLine(3); got != "third" {
		t.Fatalf("line 3 = %q", got)
	}
	if got := f.GetLine(4); got != "" {
		t.Fatalf("line 4 = %q, want empty", got)
	}
}
