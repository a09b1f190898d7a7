package ir_test

import (
	"strings"
	"testing"

	"lir/internal/ir"
	"lir/internal/types"
)

// buildAbsFunc emits |x| roughly: entry computes x < 0 and branches; the
// negative arm flips the sign, both arms return.
func buildAbsFunc(t *testing.T) (*ir.Module, *types.Interner) {
	t.Helper()
	typesIn := types.NewInterner()
	bi := typesIn.Builtins()

	m := ir.NewModule()
	f := m.NewFunc("abs", bi.Int32, ir.Param{Name: "x", Type: bi.Int32})
	entry := f.NewBlock("entry")
	neg := f.NewBlock("neg")
	pos := f.NewBlock("pos")

	b := ir.NewBuilder(f, typesIn)
	b.PositionAtEnd(entry)
	x := f.ParamValue(0)
	cond, err := b.ICmpSigned("<", x, ir.IntConst(bi.Int32, 0), "isneg")
	if err != nil {
		t.Fatalf("icmp failed: %v", err)
	}
	if err := b.Branch(cond, neg, pos); err != nil {
		t.Fatalf("branch failed: %v", err)
	}

	b.PositionAtEnd(neg)
	flipped, err := b.Sub(ir.IntConst(bi.Int32, 0), x, "flipped")
	if err != nil {
		t.Fatalf("sub failed: %v", err)
	}
	if err := b.Ret(flipped); err != nil {
		t.Fatalf("ret failed: %v", err)
	}

	b.PositionAtEnd(pos)
	if err := b.Ret(x); err != nil {
		t.Fatalf("ret failed: %v", err)
	}
	return m, typesIn
}

func TestValidateAcceptsBuilderOutput(t *testing.T) {
	m, typesIn := buildAbsFunc(t)
	if err := ir.Validate(m, typesIn); err != nil {
		t.Fatalf("validation failed for a well-formed module: %v", err)
	}
}

func TestValidateUnterminatedBlock(t *testing.T) {
	typesIn := types.NewInterner()
	m := ir.NewModule()
	f := m.NewFunc("open", typesIn.Builtins().Void)
	f.NewBlock("entry")

	err := ir.Validate(m, typesIn)
	if err == nil || !strings.Contains(err.Error(), "unterminated") {
		t.Fatalf("expected unterminated-block error, got %v", err)
	}
}

func TestValidateBranchTargets(t *testing.T) {
	typesIn := types.NewInterner()
	m := ir.NewModule()
	f := m.NewFunc("bad", typesIn.Builtins().Void)
	entry := f.NewBlock("entry")

	b := ir.NewBuilder(f, typesIn)
	b.PositionAtEnd(entry)
	// Target block never created.
	if err := b.Jump(ir.BlockID(7)); err != nil {
		t.Fatalf("jump failed: %v", err)
	}

	err := ir.Validate(m, typesIn)
	if err == nil || !strings.Contains(err.Error(), "bb7") {
		t.Fatalf("expected missing-target error, got %v", err)
	}
}

func TestValidateReportsNonPointerLoad(t *testing.T) {
	typesIn := types.NewInterner()
	bi := typesIn.Builtins()
	m := ir.NewModule()
	f := m.NewFunc("badload", bi.Void)
	entry := f.NewBlock("entry")

	b := ir.NewBuilder(f, typesIn)
	b.PositionAtEnd(entry)
	if _, err := b.Load(ir.IntConst(bi.Int32, 1), ""); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := b.RetVoid(); err != nil {
		t.Fatalf("ret failed: %v", err)
	}

	err := ir.Validate(m, typesIn)
	if err == nil || !strings.Contains(err.Error(), "not a pointer") {
		t.Fatalf("expected non-pointer load error, got %v", err)
	}
}

func TestValidateAllowsMixedCompareOperands(t *testing.T) {
	// Compares deliberately skip operand type agreement; the validator must
	// not reject them either.
	typesIn := types.NewInterner()
	bi := typesIn.Builtins()
	m := ir.NewModule()
	f := m.NewFunc("mixed", bi.Void)
	entry := f.NewBlock("entry")

	b := ir.NewBuilder(f, typesIn)
	b.PositionAtEnd(entry)
	if _, err := b.ICmpUnsigned("<", ir.IntConst(bi.Int32, 1), ir.IntConst(bi.Int64, 2), ""); err != nil {
		t.Fatalf("mixed-operand icmp failed to build: %v", err)
	}
	if err := b.RetVoid(); err != nil {
		t.Fatalf("ret failed: %v", err)
	}

	if err := ir.Validate(m, typesIn); err != nil {
		t.Fatalf("mixed-operand compare must validate, got %v", err)
	}
}

func TestValidateReturnTypeMismatch(t *testing.T) {
	typesIn := types.NewInterner()
	bi := typesIn.Builtins()
	m := ir.NewModule()
	f := m.NewFunc("wrongret", bi.Int64)
	entry := f.NewBlock("entry")

	b := ir.NewBuilder(f, typesIn)
	b.PositionAtEnd(entry)
	if err := b.Ret(ir.IntConst(bi.Int32, 1)); err != nil {
		t.Fatalf("ret failed: %v", err)
	}

	err := ir.Validate(m, typesIn)
	if err == nil || !strings.Contains(err.Error(), "result type") {
		t.Fatalf("expected return-type error, got %v", err)
	}
}

func TestValidateArenaRangeCheck(t *testing.T) {
	typesIn := types.NewInterner()
	m := ir.NewModule()
	f := m.NewFunc("dangling", typesIn.Builtins().Void)
	f.Entry = 0
	f.Blocks = []ir.Block{{
		ID:     0,
		Instrs: []ir.InstrID{5},
		Term:   ir.Terminator{Kind: ir.TermRet},
	}}

	err := ir.Validate(m, typesIn)
	if err == nil || !strings.Contains(err.Error(), "arena") {
		t.Fatalf("expected arena-range error, got %v", err)
	}
}
