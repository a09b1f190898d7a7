package ir

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"lir/internal/types"
)

// Param is a typed function parameter.
type Param struct {
	Name string
	Type types.TypeID
}

// Func owns an ordered sequence of basic blocks plus the arena of all
// instructions created for it. Block order is emission order, not
// control-flow order.
type Func struct {
	ID     FuncID
	Name   string
	Result types.TypeID
	Params []Param

	Blocks []Block
	Instrs []Instr
	Entry  BlockID
}

// NewBlock appends an empty, open block and returns its ID. The first block
// becomes the entry block.
func (f *Func) NewBlock(name string) BlockID {
	raw, err := safecast.Conv[int32](len(f.Blocks))
	if err != nil {
		panic(fmt.Errorf("len(blocks) overflow: %w", err))
	}
	id := BlockID(raw)
	f.Blocks = append(f.Blocks, Block{ID: id, Name: name})
	if f.Entry == NoBlockID {
		f.Entry = id
	}
	return id
}

// Block returns the block for an ID, or nil when out of range.
func (f *Func) Block(id BlockID) *Block {
	if f == nil || id < 0 || int(id) >= len(f.Blocks) {
		return nil
	}
	return &f.Blocks[id]
}

// Instr returns the arena entry for an ID, or nil when out of range.
func (f *Func) Instr(id InstrID) *Instr {
	if f == nil || id < 0 || int(id) >= len(f.Instrs) {
		return nil
	}
	return &f.Instrs[id]
}

// ParamValue returns the i-th parameter as an operand Value.
func (f *Func) ParamValue(i int) Value {
	if f == nil || i < 0 || i >= len(f.Params) {
		return Value{}
	}
	raw, err := safecast.Conv[int32](i)
	if err != nil {
		return Value{}
	}
	return Value{Kind: ValueParam, Type: f.Params[i].Type, Func: f.ID, Param: raw}
}

// locate finds the block holding an instruction and its index within that
// block's order. O(total instruction count) in the worst case.
func (f *Func) locate(id InstrID) (BlockID, int, bool) {
	for bi := range f.Blocks {
		if j := slices.Index(f.Blocks[bi].Instrs, id); j >= 0 {
			return f.Blocks[bi].ID, j, true
		}
	}
	return NoBlockID, 0, false
}
