package ir

import (
	"errors"
	"fmt"
	"slices"

	"lir/internal/types"
)

// Validate checks module invariants beyond builder-time preconditions.
// Returns a joined error listing every violation.
func Validate(m *Module, typesIn *types.Interner) error {
	if m == nil {
		return nil
	}
	ids := make([]FuncID, 0, len(m.Funcs))
	for id := range m.Funcs {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var errs []error
	for _, id := range ids {
		f := m.Funcs[id]
		if f == nil {
			continue
		}
		if err := validateFunc(f, typesIn); err != nil {
			errs = append(errs, fmt.Errorf("function %s: %w", f.Name, err))
		}
	}
	return errors.Join(errs...)
}

func validateFunc(f *Func, typesIn *types.Interner) error {
	var errs []error

	if err := validateBlocksTerminated(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateBlockTargets(f); err != nil {
		errs = append(errs, err)
	}
	if err := validateInstrs(f, typesIn); err != nil {
		errs = append(errs, err)
	}
	if err := validateReturn(f, typesIn); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// validateBlocksTerminated checks that every block ends with a terminator.
func validateBlocksTerminated(f *Func) error {
	var errs []error
	for i := range f.Blocks {
		if f.Blocks[i].Term.Kind == TermNone {
			errs = append(errs, fmt.Errorf("bb%d: unterminated block", i))
		}
	}
	return errors.Join(errs...)
}

// validateBlockTargets checks that all branch target IDs exist.
func validateBlockTargets(f *Func) error {
	var errs []error

	blockExists := func(id BlockID) bool {
		return id >= 0 && int(id) < len(f.Blocks)
	}

	if len(f.Blocks) > 0 && !blockExists(f.Entry) {
		errs = append(errs, fmt.Errorf("entry block bb%d does not exist", f.Entry))
	}

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		switch bb.Term.Kind {
		case TermGoto:
			if !blockExists(bb.Term.Goto.Target) {
				errs = append(errs, fmt.Errorf("bb%d: br target bb%d does not exist", i, bb.Term.Goto.Target))
			}
		case TermIf:
			if !blockExists(bb.Term.If.Then) {
				errs = append(errs, fmt.Errorf("bb%d: br then-target bb%d does not exist", i, bb.Term.If.Then))
			}
			if !blockExists(bb.Term.If.Else) {
				errs = append(errs, fmt.Errorf("bb%d: br else-target bb%d does not exist", i, bb.Term.If.Else))
			}
		}
	}
	return errors.Join(errs...)
}

// validateInstrs checks arena references, operand validity and per-opcode
// shape/type rules.
func validateInstrs(f *Func, typesIn *types.Interner) error {
	var errs []error

	for bi := range f.Blocks {
		bb := &f.Blocks[bi]
		for _, id := range bb.Instrs {
			in := f.Instr(id)
			if in == nil {
				errs = append(errs, fmt.Errorf("bb%d: instruction %%%d out of arena range", bi, id))
				continue
			}
			for ai := range in.Args {
				if err := validateValue(f, in.Args[ai]); err != nil {
					errs = append(errs, fmt.Errorf("bb%d: %%%d arg %d: %w", bi, id, ai, err))
				}
			}
			if err := validateInstrShape(in, typesIn); err != nil {
				errs = append(errs, fmt.Errorf("bb%d: %%%d: %w", bi, id, err))
			}
		}
		if bb.Term.Kind == TermIf {
			if err := validateValue(f, bb.Term.If.Cond); err != nil {
				errs = append(errs, fmt.Errorf("bb%d: br condition: %w", bi, err))
			}
		}
	}
	return errors.Join(errs...)
}

func validateValue(f *Func, v Value) error {
	switch v.Kind {
	case ValueConst:
		return nil
	case ValueInstr:
		if v.Instr < 0 || int(v.Instr) >= len(f.Instrs) {
			return fmt.Errorf("references %%%d outside the arena", v.Instr)
		}
		return nil
	case ValueParam:
		if v.Param < 0 || int(v.Param) >= len(f.Params) {
			return fmt.Errorf("references parameter %d of %d", v.Param, len(f.Params))
		}
		return nil
	default:
		return errors.New("invalid value")
	}
}

func validateInstrShape(in *Instr, typesIn *types.Interner) error {
	argCount := func(n int) error {
		if len(in.Args) != n {
			return fmt.Errorf("%s expects %d operands, has %d", in.Op, n, len(in.Args))
		}
		return nil
	}

	switch in.Op {
	case OpAdd, OpSub, OpMul, OpUDiv, OpSDiv:
		if err := argCount(2); err != nil {
			return err
		}
		if in.Args[0].Type != in.Args[1].Type {
			return fmt.Errorf("%s operand types disagree", in.Op)
		}
		if in.Type != in.Args[0].Type {
			return fmt.Errorf("%s result type differs from operand type", in.Op)
		}
	case OpICmp, OpFCmp:
		if err := argCount(2); err != nil {
			return err
		}
		if in.Pred == "" {
			return fmt.Errorf("%s has no predicate", in.Op)
		}
		if typesIn != nil && in.Type != typesIn.Builtins().Bool {
			return fmt.Errorf("%s result must be bool", in.Op)
		}
	case OpTrunc, OpZExt, OpSExt, OpFPTrunc, OpFPExt, OpBitcast, OpFPToUI, OpUIToFP, OpFPToSI, OpSIToFP:
		if err := argCount(1); err != nil {
			return err
		}
		if in.Type == types.NoTypeID {
			return fmt.Errorf("%s has no target type", in.Op)
		}
	case OpAlloca:
		if len(in.Args) > 1 {
			return fmt.Errorf("alloca expects at most one operand, has %d", len(in.Args))
		}
		if typesIn != nil && typesIn.Pointee(in.Type) == types.NoTypeID {
			return errors.New("alloca result is not a pointer")
		}
	case OpLoad:
		if err := argCount(1); err != nil {
			return err
		}
		if typesIn != nil {
			pointee := typesIn.Pointee(in.Args[0].Type)
			if pointee == types.NoTypeID {
				return errors.New("load operand is not a pointer")
			}
			if in.Type != pointee {
				return errors.New("load result type differs from pointee type")
			}
		}
	case OpStore:
		if err := argCount(2); err != nil {
			return err
		}
		if in.Type != types.NoTypeID {
			return errors.New("store must not produce a value")
		}
	default:
		return fmt.Errorf("unknown opcode %d", uint8(in.Op))
	}
	return nil
}

// validateReturn checks that return terminators agree with the function's
// result type.
func validateReturn(f *Func, typesIn *types.Interner) error {
	if typesIn == nil {
		return nil
	}
	void := typesIn.Builtins().Void

	var errs []error
	for i := range f.Blocks {
		term := &f.Blocks[i].Term
		if term.Kind != TermRet {
			continue
		}
		if term.Ret.HasValue {
			if f.Result == void || f.Result == types.NoTypeID {
				errs = append(errs, fmt.Errorf("bb%d: ret carries a value but the function returns void", i))
			} else if term.Ret.Value.Type != f.Result {
				errs = append(errs, fmt.Errorf("bb%d: ret value type differs from function result type", i))
			}
		} else if f.Result != void && f.Result != types.NoTypeID {
			errs = append(errs, fmt.Errorf("bb%d: ret void in a function returning a value", i))
		}
	}
	return errors.Join(errs...)
}
