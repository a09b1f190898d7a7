package ir

// Block is an ordered sequence of non-terminator instructions plus at most
// one terminator. Instrs holds arena IDs in display order.
type Block struct {
	ID     BlockID
	Name   string
	Instrs []InstrID
	Term   Terminator
}

// Terminated reports whether the block has been closed by a terminator.
func (b *Block) Terminated() bool {
	if b == nil {
		return true
	}
	return b.Term.Kind != TermNone
}
