package ir

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"lir/internal/types"
)

// DumpOptions configures module dumping.
type DumpOptions struct {
	// ShowTypes prints the result type of every instruction definition.
	ShowTypes bool
}

// DumpModule writes a human-readable representation of a module. Functions
// are ordered by name for deterministic output.
func DumpModule(w io.Writer, m *Module, typesIn *types.Interner, opts DumpOptions) error {
	if w == nil || m == nil {
		return nil
	}

	funcs := make([]*Func, 0, len(m.Funcs))
	for _, f := range m.Funcs {
		if f != nil {
			funcs = append(funcs, f)
		}
	}
	slices.SortStableFunc(funcs, func(a, b *Func) int {
		if a.Name != b.Name {
			if a.Name < b.Name {
				return -1
			}
			return 1
		}
		if a.ID != b.ID {
			if a.ID < b.ID {
				return -1
			}
			return 1
		}
		return 0
	})

	fmt.Fprintf(w, "funcs=%d\n", len(funcs))
	for _, f := range funcs {
		if err := dumpFunc(w, f, typesIn, opts); err != nil {
			return err
		}
	}
	return nil
}

func dumpFunc(w io.Writer, f *Func, typesIn *types.Interner, opts DumpOptions) error {
	if w == nil || f == nil {
		return nil
	}

	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("p%d", i)
		}
		params[i] = fmt.Sprintf("%s: %s", name, typeStr(typesIn, p.Type))
	}
	fmt.Fprintf(w, "\nfn %s(%s) -> %s:\n", f.Name, strings.Join(params, ", "), typeStr(typesIn, f.Result))

	for i := range f.Blocks {
		bb := &f.Blocks[i]
		if bb.Name != "" {
			fmt.Fprintf(w, "  bb%d (%s):\n", bb.ID, bb.Name)
		} else {
			fmt.Fprintf(w, "  bb%d:\n", bb.ID)
		}
		for _, id := range bb.Instrs {
			fmt.Fprintf(w, "    %s\n", formatInstr(typesIn, f.Instr(id), opts))
		}
		fmt.Fprintf(w, "    %s\n", formatTerm(&bb.Term))
	}

	return nil
}

func formatInstr(typesIn *types.Interner, in *Instr, opts DumpOptions) string {
	if in == nil {
		return "<instr?>"
	}

	var rhs string
	switch in.Op {
	case OpICmp, OpFCmp:
		rhs = fmt.Sprintf("%s %s %s, %s", in.Op, in.Pred, formatArg(in, 0), formatArg(in, 1))
	case OpAlloca:
		elem := types.NoTypeID
		if typesIn != nil {
			elem = typesIn.Pointee(in.Type)
		}
		if len(in.Args) > 0 {
			rhs = fmt.Sprintf("%s %s, %s", in.Op, typeStr(typesIn, elem), formatArg(in, 0))
		} else {
			rhs = fmt.Sprintf("%s %s", in.Op, typeStr(typesIn, elem))
		}
	case OpTrunc, OpZExt, OpSExt, OpFPTrunc, OpFPExt, OpBitcast, OpFPToUI, OpUIToFP, OpFPToSI, OpSIToFP:
		rhs = fmt.Sprintf("%s %s to %s", in.Op, formatArg(in, 0), typeStr(typesIn, in.Type))
	default:
		parts := make([]string, len(in.Args))
		for i := range in.Args {
			parts[i] = formatArg(in, i)
		}
		rhs = strings.TrimRight(fmt.Sprintf("%s %s", in.Op, strings.Join(parts, ", ")), " ")
	}

	out := rhs
	if in.Type != types.NoTypeID {
		if opts.ShowTypes {
			out = fmt.Sprintf("%%%d: %s = %s", in.ID, typeStr(typesIn, in.Type), rhs)
		} else {
			out = fmt.Sprintf("%%%d = %s", in.ID, rhs)
		}
	}
	if in.Name != "" {
		out += " name=" + in.Name
	}
	return out
}

func formatArg(in *Instr, i int) string {
	if i < 0 || i >= len(in.Args) {
		return "<arg?>"
	}
	return formatValue(in.Args[i])
}

func formatValue(v Value) string {
	switch v.Kind {
	case ValueConst:
		switch v.Const.Kind {
		case ConstInt:
			return fmt.Sprintf("%d", v.Const.Int)
		case ConstFloat:
			return fmt.Sprintf("%g", v.Const.Float)
		case ConstBool:
			return fmt.Sprintf("%t", v.Const.Bool)
		default:
			return "<const?>"
		}
	case ValueInstr:
		return fmt.Sprintf("%%%d", v.Instr)
	case ValueParam:
		return fmt.Sprintf("%%p%d", v.Param)
	default:
		return "<value?>"
	}
}

func formatTerm(t *Terminator) string {
	if t == nil {
		return "<term?>"
	}
	switch t.Kind {
	case TermGoto:
		return fmt.Sprintf("br bb%d", t.Goto.Target)
	case TermIf:
		return fmt.Sprintf("br %s, bb%d, bb%d", formatValue(t.If.Cond), t.If.Then, t.If.Else)
	case TermRet:
		if t.Ret.HasValue {
			return fmt.Sprintf("ret %s", formatValue(t.Ret.Value))
		}
		return "ret void"
	case TermNone:
		return "<unterminated>"
	default:
		return "<term?>"
	}
}

func typeStr(typesIn *types.Interner, id types.TypeID) string {
	if id == types.NoTypeID {
		return "?"
	}
	if typesIn == nil {
		return fmt.Sprintf("type#%d", id)
	}
	t, ok := typesIn.Lookup(id)
	if !ok {
		return fmt.Sprintf("type#%d", id)
	}
	switch t.Kind {
	case types.KindVoid:
		return "void"
	case types.KindBool:
		return "bool"
	case types.KindInt:
		return fmt.Sprintf("int%d", t.Width)
	case types.KindFloat:
		return fmt.Sprintf("float%d", t.Width)
	case types.KindPointer:
		return fmt.Sprintf("*%s", typeStr(typesIn, t.Elem))
	case types.KindArray:
		return fmt.Sprintf("[%s; %d]", typeStr(typesIn, t.Elem), t.Count)
	default:
		return fmt.Sprintf("type#%d", id)
	}
}
