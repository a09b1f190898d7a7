package ir

import "lir/internal/types"

type FuncID int32
type BlockID int32
type InstrID int32

const (
	NoFuncID  FuncID  = -1
	NoBlockID BlockID = -1
	NoInstrID InstrID = -1
)

// ValueKind distinguishes operand sources.
type ValueKind uint8

const (
	// ValueInvalid is the zero Value; it never names anything.
	ValueInvalid ValueKind = iota
	// ValueConst is a compile-time constant.
	ValueConst
	// ValueInstr is the result of an instruction, addressed through the
	// owning function's arena.
	ValueInstr
	// ValueParam is a function parameter.
	ValueParam
)

// ConstKind distinguishes constant payloads.
type ConstKind uint8

const (
	ConstInt ConstKind = iota
	ConstFloat
	ConstBool
)

// Const holds a constant's literal payload. Constants have no identity
// beyond value equality.
type Const struct {
	Kind  ConstKind
	Int   int64
	Float float64
	Bool  bool
}

// Value is anything usable as an operand: a constant, an instruction
// result, or a function parameter. Instruction results carry the owning
// function's ID plus an arena index rather than a pointer, so the graph
// stays cycle-free.
type Value struct {
	Kind ValueKind
	Type types.TypeID

	Const Const
	Func  FuncID
	Instr InstrID
	Param int32
}

// IsValid reports whether the value names an operand source.
func (v Value) IsValid() bool {
	return v.Kind != ValueInvalid
}

// IntConst builds an integer constant of the given type.
func IntConst(ty types.TypeID, v int64) Value {
	return Value{Kind: ValueConst, Type: ty, Const: Const{Kind: ConstInt, Int: v}}
}

// FloatConst builds a floating-point constant of the given type.
func FloatConst(ty types.TypeID, v float64) Value {
	return Value{Kind: ValueConst, Type: ty, Const: Const{Kind: ConstFloat, Float: v}}
}

// BoolConst builds a boolean constant of the given type.
func BoolConst(ty types.TypeID, v bool) Value {
	return Value{Kind: ValueConst, Type: ty, Const: Const{Kind: ConstBool, Bool: v}}
}
