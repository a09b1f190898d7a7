package ir

type TermKind uint8

const (
	TermNone TermKind = iota
	TermRet
	TermGoto
	TermIf
)

// Terminator is the single control-flow-ending instruction of a block. It
// is stored in a slot distinct from the instruction sequence.
type Terminator struct {
	Kind TermKind

	Ret  RetTerm
	Goto GotoTerm
	If   IfTerm
}

type RetTerm struct {
	HasValue bool
	Value    Value
}

type GotoTerm struct {
	Target BlockID
}

type IfTerm struct {
	Cond Value
	Then BlockID
	Else BlockID
}
