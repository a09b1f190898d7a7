package ir

import (
	"fmt"

	"fortio.org/safecast"

	"lir/internal/types"
)

// Module is a collection of functions. It is the unit snapshots and dumps
// operate on.
type Module struct {
	Funcs      map[FuncID]*Func
	FuncByName map[string]FuncID
}

func NewModule() *Module {
	return &Module{
		Funcs:      make(map[FuncID]*Func),
		FuncByName: make(map[string]FuncID),
	}
}

// NewFunc registers an empty function and returns it. A later function with
// the same name shadows the earlier one in FuncByName.
func (m *Module) NewFunc(name string, result types.TypeID, params ...Param) *Func {
	raw, err := safecast.Conv[int32](len(m.Funcs))
	if err != nil {
		panic(fmt.Errorf("len(funcs) overflow: %w", err))
	}
	id := FuncID(raw)
	f := &Func{
		ID:     id,
		Name:   name,
		Result: result,
		Params: params,
		Entry:  NoBlockID,
	}
	m.Funcs[id] = f
	m.FuncByName[name] = id
	return f
}

// Func returns the function for an ID, or nil.
func (m *Module) Func(id FuncID) *Func {
	if m == nil {
		return nil
	}
	return m.Funcs[id]
}

// FuncNamed returns the function registered under name, or nil.
func (m *Module) FuncNamed(name string) *Func {
	if m == nil {
		return nil
	}
	id, ok := m.FuncByName[name]
	if !ok {
		return nil
	}
	return m.Funcs[id]
}
