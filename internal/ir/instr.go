package ir

import (
	"fmt"

	"lir/internal/types"
)

// Opcode enumerates instruction kinds.
type Opcode uint8

const (
	OpInvalid Opcode = iota

	// Arithmetic
	OpAdd
	OpSub
	OpMul
	OpUDiv
	OpSDiv

	// Comparison; the resolved predicate lives in Instr.Pred.
	OpICmp
	OpFCmp

	// Casts
	OpTrunc
	OpZExt
	OpSExt
	OpFPTrunc
	OpFPExt
	OpBitcast
	OpFPToUI
	OpUIToFP
	OpFPToSI
	OpSIToFP

	// Memory
	OpAlloca
	OpLoad
	OpStore
)

func (op Opcode) String() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpUDiv:
		return "udiv"
	case OpSDiv:
		return "sdiv"
	case OpICmp:
		return "icmp"
	case OpFCmp:
		return "fcmp"
	case OpTrunc:
		return "trunc"
	case OpZExt:
		return "zext"
	case OpSExt:
		return "sext"
	case OpFPTrunc:
		return "fptrunc"
	case OpFPExt:
		return "fpext"
	case OpBitcast:
		return "bitcast"
	case OpFPToUI:
		return "fptoui"
	case OpUIToFP:
		return "uitofp"
	case OpFPToSI:
		return "fptosi"
	case OpSIToFP:
		return "sitofp"
	case OpAlloca:
		return "alloca"
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	default:
		return fmt.Sprintf("Opcode(%d)", uint8(op))
	}
}

// Instr represents one IR instruction. Instructions are immutable after
// construction except for their position within a block's order.
type Instr struct {
	ID   InstrID
	Func FuncID

	Op Opcode
	// Pred is the resolved comparison predicate ("slt", "uge", "one", ...)
	// for OpICmp/OpFCmp; empty otherwise.
	Pred string
	// Type is the result type; NoTypeID when the instruction produces no
	// value (store).
	Type types.TypeID
	// Name is an optional user-supplied label, used for display only.
	Name string
	// Args holds the operands in the exact order they were passed.
	Args []Value
}

// Result returns the instruction's result as an operand Value.
func (in *Instr) Result() Value {
	return Value{Kind: ValueInstr, Type: in.Type, Func: in.Func, Instr: in.ID}
}
