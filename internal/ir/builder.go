package ir

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"lir/internal/types"
)

// cmpPredicates maps comparison symbols to base predicates. Signedness and
// orderedness prefixes are concatenated on top by the compare constructors.
var cmpPredicates = map[string]string{
	">":  "gt",
	"<":  "lt",
	"==": "eq",
	"!=": "ne",
	">=": "ge",
	"<=": "le",
}

// Builder is a cursor into one function: a current block plus an insertion
// index (anchor) into that block's instruction order. All mutation of block
// content goes through it. A Builder is transient and not synchronized; a
// function's graph belongs to one builder session at a time.
type Builder struct {
	fn     *Func
	types  *types.Interner
	block  BlockID
	anchor int
}

// NewBuilder returns an unpositioned cursor for fn. Position it with one of
// the PositionAt*/Position* methods before emitting.
func NewBuilder(fn *Func, typesIn *types.Interner) *Builder {
	return &Builder{fn: fn, types: typesIn, block: NoBlockID}
}

// Func returns the function the cursor emits into.
func (b *Builder) Func() *Func { return b.fn }

// Block returns the cursor's current block.
func (b *Builder) Block() BlockID { return b.block }

// PositionAtStart moves the cursor to the beginning of block.
func (b *Builder) PositionAtStart(block BlockID) {
	b.block = block
	b.anchor = 0
}

// PositionAtEnd moves the cursor past the last instruction of block.
func (b *Builder) PositionAtEnd(block BlockID) {
	b.block = block
	b.anchor = 0
	if blk := b.fn.Block(block); blk != nil {
		b.anchor = len(blk.Instrs)
	}
}

// PositionBefore moves the cursor to instr's parent block, anchored just
// ahead of instr's predecessor.
func (b *Builder) PositionBefore(instr InstrID) error {
	block, idx, ok := b.fn.locate(instr)
	if !ok {
		return fmt.Errorf("position before %%%d: %w", instr, ErrNotFound)
	}
	b.block = block
	b.anchor = max(idx-1, 0)
	return nil
}

// PositionAfter moves the cursor to instr's parent block, anchored just
// past instr.
func (b *Builder) PositionAfter(instr InstrID) error {
	block, idx, ok := b.fn.locate(instr)
	if !ok {
		return fmt.Errorf("position after %%%d: %w", instr, ErrNotFound)
	}
	blk := b.fn.Block(block)
	b.block = block
	b.anchor = min(idx+1, len(blk.Instrs))
	return nil
}

// insert is the single insertion path every constructor funnels through: it
// validates the cursor, allocates the arena slot, splices the instruction in
// at the anchor and advances the anchor past it, so sequential emission
// needs no repositioning.
func (b *Builder) insert(in Instr) (Value, error) {
	blk := b.fn.Block(b.block)
	if blk == nil {
		return Value{}, fmt.Errorf("%s: cursor has no current block: %w", in.Op, ErrInvalidArgument)
	}
	if blk.Terminated() {
		return Value{}, fmt.Errorf("%s: bb%d: %w", in.Op, blk.ID, ErrAlreadyTerminated)
	}
	raw, err := safecast.Conv[int32](len(b.fn.Instrs))
	if err != nil {
		panic(fmt.Errorf("len(instrs) overflow: %w", err))
	}
	in.ID = InstrID(raw)
	in.Func = b.fn.ID
	b.fn.Instrs = append(b.fn.Instrs, in)
	if b.anchor > len(blk.Instrs) {
		// Anchor can go stale if another cursor touched the block.
		b.anchor = len(blk.Instrs)
	}
	blk.Instrs = slices.Insert(blk.Instrs, b.anchor, in.ID)
	b.anchor++
	return Value{Kind: ValueInstr, Type: in.Type, Func: b.fn.ID, Instr: in.ID}, nil
}

// setTerminator closes the current block. The terminator occupies its own
// slot; the anchor does not move.
func (b *Builder) setTerminator(t Terminator) error {
	blk := b.fn.Block(b.block)
	if blk == nil {
		return fmt.Errorf("terminator: cursor has no current block: %w", ErrInvalidArgument)
	}
	if blk.Terminated() {
		return fmt.Errorf("bb%d: %w", blk.ID, ErrAlreadyTerminated)
	}
	blk.Term = t
	return nil
}

// Arithmetic -----------------------------------------------------------------

// binop validates operand type agreement and emits a two-operand
// instruction whose result type is the operand type. There is no implicit
// widening; insert an explicit cast first.
func (b *Builder) binop(op Opcode, lhs, rhs Value, name string) (Value, error) {
	if lhs.Type != rhs.Type {
		return Value{}, fmt.Errorf("%s: operands must have the same type: %w", op, ErrTypeMismatch)
	}
	return b.insert(Instr{Op: op, Type: lhs.Type, Name: name, Args: []Value{lhs, rhs}})
}

func (b *Builder) Add(lhs, rhs Value, name string) (Value, error) {
	return b.binop(OpAdd, lhs, rhs, name)
}

func (b *Builder) Sub(lhs, rhs Value, name string) (Value, error) {
	return b.binop(OpSub, lhs, rhs, name)
}

func (b *Builder) Mul(lhs, rhs Value, name string) (Value, error) {
	return b.binop(OpMul, lhs, rhs, name)
}

func (b *Builder) UDiv(lhs, rhs Value, name string) (Value, error) {
	return b.binop(OpUDiv, lhs, rhs, name)
}

func (b *Builder) SDiv(lhs, rhs Value, name string) (Value, error) {
	return b.binop(OpSDiv, lhs, rhs, name)
}

// Comparison -----------------------------------------------------------------
//
// Unlike binop, the compare constructors do not require operand type
// agreement; checking is left to the verifier.

func (b *Builder) icmp(sign byte, cmpop string, lhs, rhs Value, name string) (Value, error) {
	pred, ok := cmpPredicates[cmpop]
	if !ok {
		return Value{}, fmt.Errorf("icmp: unknown comparison %q: %w", cmpop, ErrInvalidArgument)
	}
	// eq/ne carry no signedness.
	if cmpop != "==" && cmpop != "!=" {
		pred = string(sign) + pred
	}
	return b.insert(Instr{Op: OpICmp, Pred: pred, Type: b.types.Builtins().Bool, Name: name, Args: []Value{lhs, rhs}})
}

// ICmpSigned emits a signed integer comparison ("<" becomes "slt").
func (b *Builder) ICmpSigned(cmpop string, lhs, rhs Value, name string) (Value, error) {
	return b.icmp('s', cmpop, lhs, rhs, name)
}

// ICmpUnsigned emits an unsigned integer comparison (">=" becomes "uge").
func (b *Builder) ICmpUnsigned(cmpop string, lhs, rhs Value, name string) (Value, error) {
	return b.icmp('u', cmpop, lhs, rhs, name)
}

func (b *Builder) fcmp(ord byte, cmpop string, lhs, rhs Value, name string) (Value, error) {
	// An unrecognized symbol passes through as a raw predicate, for
	// predicates without a symbolic shorthand ("uno", "ord", ...).
	pred := cmpop
	if base, ok := cmpPredicates[cmpop]; ok {
		pred = string(ord) + base
	}
	return b.insert(Instr{Op: OpFCmp, Pred: pred, Type: b.types.Builtins().Bool, Name: name, Args: []Value{lhs, rhs}})
}

// FCmpOrdered emits an ordered float comparison ("!=" becomes "one").
func (b *Builder) FCmpOrdered(cmpop string, lhs, rhs Value, name string) (Value, error) {
	return b.fcmp('o', cmpop, lhs, rhs, name)
}

// FCmpUnordered emits an unordered float comparison ("<=" becomes "ule").
func (b *Builder) FCmpUnordered(cmpop string, lhs, rhs Value, name string) (Value, error) {
	return b.fcmp('u', cmpop, lhs, rhs, name)
}

// Casts ----------------------------------------------------------------------
//
// Source/target compatibility is not checked here; it is left to the
// verifier.

func (b *Builder) cast(op Opcode, value Value, target types.TypeID, name string) (Value, error) {
	return b.insert(Instr{Op: op, Type: target, Name: name, Args: []Value{value}})
}

func (b *Builder) Trunc(value Value, target types.TypeID, name string) (Value, error) {
	return b.cast(OpTrunc, value, target, name)
}

func (b *Builder) ZExt(value Value, target types.TypeID, name string) (Value, error) {
	return b.cast(OpZExt, value, target, name)
}

func (b *Builder) SExt(value Value, target types.TypeID, name string) (Value, error) {
	return b.cast(OpSExt, value, target, name)
}

func (b *Builder) FPTrunc(value Value, target types.TypeID, name string) (Value, error) {
	return b.cast(OpFPTrunc, value, target, name)
}

func (b *Builder) FPExt(value Value, target types.TypeID, name string) (Value, error) {
	return b.cast(OpFPExt, value, target, name)
}

func (b *Builder) Bitcast(value Value, target types.TypeID, name string) (Value, error) {
	return b.cast(OpBitcast, value, target, name)
}

func (b *Builder) FPToUI(value Value, target types.TypeID, name string) (Value, error) {
	return b.cast(OpFPToUI, value, target, name)
}

func (b *Builder) UIToFP(value Value, target types.TypeID, name string) (Value, error) {
	return b.cast(OpUIToFP, value, target, name)
}

func (b *Builder) FPToSI(value Value, target types.TypeID, name string) (Value, error) {
	return b.cast(OpFPToSI, value, target, name)
}

func (b *Builder) SIToFP(value Value, target types.TypeID, name string) (Value, error) {
	return b.cast(OpSIToFP, value, target, name)
}

// Memory ---------------------------------------------------------------------

// CountKind distinguishes alloca element-count arguments.
type CountKind uint8

const (
	// CountNone allocates a single element.
	CountNone CountKind = iota
	// CountLiteral is a raw number, normalized to an i32 constant.
	CountLiteral
	// CountValue is an already-built operand, stored as-is.
	CountValue
)

// Count is the tagged element-count argument of Alloca.
type Count struct {
	Kind    CountKind
	Literal int64
	Value   Value
}

// NoCount allocates a single element.
func NoCount() Count { return Count{} }

// LiteralCount allocates n elements, n given as a raw number.
func LiteralCount(n int64) Count { return Count{Kind: CountLiteral, Literal: n} }

// ValueCount allocates a number of elements computed at runtime.
func ValueCount(v Value) Count { return Count{Kind: CountValue, Value: v} }

// Alloca emits a stack allocation of count elements of elem; the result is
// a pointer to elem. A literal count must be positive and fit in 32 bits.
func (b *Builder) Alloca(elem types.TypeID, count Count, name string) (Value, error) {
	var args []Value
	switch count.Kind {
	case CountNone:
	case CountLiteral:
		if count.Literal <= 0 {
			return Value{}, fmt.Errorf("alloca: count must be positive, got %d: %w", count.Literal, ErrInvalidArgument)
		}
		n, err := safecast.Conv[int32](count.Literal)
		if err != nil {
			return Value{}, fmt.Errorf("alloca: count %d does not fit in 32 bits: %w", count.Literal, ErrInvalidArgument)
		}
		args = []Value{IntConst(b.types.Builtins().Int32, int64(n))}
	case CountValue:
		if !count.Value.IsValid() {
			return Value{}, fmt.Errorf("alloca: count value is invalid: %w", ErrInvalidArgument)
		}
		args = []Value{count.Value}
	default:
		return Value{}, fmt.Errorf("alloca: unsupported count kind %d: %w", count.Kind, ErrInvalidArgument)
	}
	ptr := b.types.Intern(types.MakePointer(elem))
	return b.insert(Instr{Op: OpAlloca, Type: ptr, Name: name, Args: args})
}

// Load emits a load through pointer. The result type is the pointee of the
// pointer's type; when the operand is not a pointer the result type is
// NoTypeID, which the verifier reports.
func (b *Builder) Load(pointer Value, name string) (Value, error) {
	return b.insert(Instr{Op: OpLoad, Type: b.types.Pointee(pointer.Type), Name: name, Args: []Value{pointer}})
}

// Store emits a store of value through pointer. Store produces no value.
func (b *Builder) Store(value, pointer Value) (Value, error) {
	return b.insert(Instr{Op: OpStore, Type: types.NoTypeID, Args: []Value{value, pointer}})
}

// Terminators ----------------------------------------------------------------

// Jump closes the current block with an unconditional branch to target.
func (b *Builder) Jump(target BlockID) error {
	return b.setTerminator(Terminator{Kind: TermGoto, Goto: GotoTerm{Target: target}})
}

// Branch closes the current block with a conditional branch.
func (b *Builder) Branch(cond Value, thenTarget, elseTarget BlockID) error {
	return b.setTerminator(Terminator{Kind: TermIf, If: IfTerm{Cond: cond, Then: thenTarget, Else: elseTarget}})
}

// RetVoid closes the current block with a no-value return.
func (b *Builder) RetVoid() error {
	return b.setTerminator(Terminator{Kind: TermRet})
}

// Ret closes the current block with a return carrying value.
func (b *Builder) Ret(value Value) error {
	return b.setTerminator(Terminator{Kind: TermRet, Ret: RetTerm{HasValue: true, Value: value}})
}
