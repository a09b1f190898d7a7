package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lir/internal/driver"
	"lir/internal/ir"
	"lir/internal/snapshot"
	"lir/internal/types"
)

func writeValidSnapshot(t *testing.T, path string) {
	t.Helper()
	typesIn := types.NewInterner()
	bi := typesIn.Builtins()

	m := ir.NewModule()
	f := m.NewFunc("id", bi.Int32, ir.Param{Name: "x", Type: bi.Int32})
	entry := f.NewBlock("entry")
	b := ir.NewBuilder(f, typesIn)
	b.PositionAtEnd(entry)
	if err := b.Ret(f.ParamValue(0)); err != nil {
		t.Fatalf("ret failed: %v", err)
	}
	if err := snapshot.Write(path, m, typesIn); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func writeBrokenSnapshot(t *testing.T, path string) {
	t.Helper()
	typesIn := types.NewInterner()
	m := ir.NewModule()
	f := m.NewFunc("open", typesIn.Builtins().Void)
	f.NewBlock("entry") // left unterminated on purpose
	if err := snapshot.Write(path, m, typesIn); err != nil {
		t.Fatalf("write failed: %v", err)
	}
}

func TestCheckFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.mp")
	bad := filepath.Join(dir, "bad.mp")
	writeValidSnapshot(t, good)
	writeBrokenSnapshot(t, bad)

	results, err := driver.CheckFiles(context.Background(), []string{good, bad}, 2)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Path != good || results[0].Err != nil {
		t.Errorf("valid snapshot flagged: %+v", results[0])
	}
	if results[1].Path != bad || results[1].Err == nil {
		t.Errorf("broken snapshot passed: %+v", results[1])
	}
}

func TestCheckDirFindsNestedSnapshots(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	writeValidSnapshot(t, filepath.Join(dir, "sub", "a.mp"))
	writeValidSnapshot(t, filepath.Join(dir, "b.mp"))
	if err := os.WriteFile(filepath.Join(dir, "ignore.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	results, err := driver.CheckDir(context.Background(), dir, 0)
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: unexpected error: %v", r.Path, r.Err)
		}
	}
}
