package ir_test

import (
	"strings"
	"testing"

	"lir/internal/ir"
	"lir/internal/types"
)

func TestDumpModule(t *testing.T) {
	m, typesIn := buildAbsFunc(t)

	var sb strings.Builder
	if err := ir.DumpModule(&sb, m, typesIn, ir.DumpOptions{ShowTypes: true}); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"funcs=1",
		"fn abs(x: int32) -> int32:",
		"bb0 (entry):",
		"%0: bool = icmp slt %p0, 0 name=isneg",
		"br %0, bb1, bb2",
		"%1: int32 = sub 0, %p0 name=flipped",
		"ret %1",
		"ret %p0",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestDumpModuleWithoutTypes(t *testing.T) {
	m, typesIn := buildAbsFunc(t)

	var sb strings.Builder
	if err := ir.DumpModule(&sb, m, typesIn, ir.DumpOptions{}); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	out := sb.String()
	if !strings.Contains(out, "%1 = sub 0, %p0") {
		t.Errorf("typeless dump malformed:\n%s", out)
	}
	if strings.Contains(out, "%1: int32") {
		t.Errorf("types printed despite ShowTypes=false:\n%s", out)
	}
}

func TestDumpMemoryOps(t *testing.T) {
	typesIn := types.NewInterner()
	bi := typesIn.Builtins()
	m := ir.NewModule()
	f := m.NewFunc("mem", bi.Void)
	entry := f.NewBlock("")

	b := ir.NewBuilder(f, typesIn)
	b.PositionAtEnd(entry)
	slot, err := b.Alloca(bi.Int32, ir.LiteralCount(5), "slot")
	if err != nil {
		t.Fatalf("alloca failed: %v", err)
	}
	if _, err := b.Store(ir.IntConst(bi.Int32, 42), slot); err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if _, err := b.Load(slot, ""); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := b.RetVoid(); err != nil {
		t.Fatalf("ret failed: %v", err)
	}

	var sb strings.Builder
	if err := ir.DumpModule(&sb, m, typesIn, ir.DumpOptions{ShowTypes: true}); err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	out := sb.String()
	for _, want := range []string{
		"%0: *int32 = alloca int32, 5 name=slot",
		"store 42, %0",
		"%2: int32 = load %0",
		"ret void",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}
