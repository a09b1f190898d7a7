package ir

import "errors"

// Builder precondition failures. A failed constructor call never mutates
// the target block.
var (
	// ErrTypeMismatch reports binary arithmetic operands whose types differ
	// structurally.
	ErrTypeMismatch = errors.New("operand type mismatch")
	// ErrAlreadyTerminated reports an insertion or terminator targeting a
	// closed block.
	ErrAlreadyTerminated = errors.New("block already terminated")
	// ErrInvalidArgument reports an argument outside its contract, e.g. a
	// non-positive alloca count.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound reports a positioning request for an instruction that is
	// not part of the builder's function.
	ErrNotFound = errors.New("instruction not found")
)
