package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lir/internal/ir"
	"lir/internal/snapshot"
	"lir/internal/types"
)

var sampleCmd = &cobra.Command{
	Use:   "sample [flags]",
	Short: "Build and dump a demonstration module",
	Long:  `Sample constructs a small module through the builder API, validates it and dumps it`,
	Args:  cobra.NoArgs,
	RunE:  runSample,
}

func init() {
	sampleCmd.Flags().String("out", "", "also write the module to a snapshot file")
}

// buildSample emits clamp_add(x, y): the sum of two 32-bit ints, spilled
// through a stack slot, capped at 100 and widened to 64 bits.
func buildSample() (*ir.Module, *types.Interner, error) {
	typesIn := types.NewInterner()
	bi := typesIn.Builtins()

	m := ir.NewModule()
	f := m.NewFunc("clamp_add", bi.Int64,
		ir.Param{Name: "x", Type: bi.Int32},
		ir.Param{Name: "y", Type: bi.Int32},
	)
	entry := f.NewBlock("entry")
	under := f.NewBlock("under")
	over := f.NewBlock("over")

	b := ir.NewBuilder(f, typesIn)

	var err error
	emit := func(v ir.Value, e error) ir.Value {
		if err == nil {
			err = e
		}
		return v
	}

	b.PositionAtEnd(entry)
	sum := emit(b.Add(f.ParamValue(0), f.ParamValue(1), "sum"))
	slot := emit(b.Alloca(bi.Int32, ir.NoCount(), "slot"))
	emit(b.Store(sum, slot))
	limit := emit(b.ICmpSigned("<", sum, ir.IntConst(bi.Int32, 100), "inrange"))
	if err != nil {
		return nil, nil, err
	}
	if err := b.Branch(limit, under, over); err != nil {
		return nil, nil, err
	}

	b.PositionAtEnd(under)
	loaded := emit(b.Load(slot, "loaded"))
	wide := emit(b.SExt(loaded, bi.Int64, "wide"))
	if err != nil {
		return nil, nil, err
	}
	if err := b.Ret(wide); err != nil {
		return nil, nil, err
	}

	b.PositionAtEnd(over)
	if err := b.Ret(ir.IntConst(bi.Int64, 100)); err != nil {
		return nil, nil, err
	}

	return m, typesIn, nil
}

func runSample(cmd *cobra.Command, _ []string) error {
	out, err := cmd.Flags().GetString("out")
	if err != nil {
		return fmt.Errorf("failed to get out flag: %w", err)
	}

	m, typesIn, err := buildSample()
	if err != nil {
		return fmt.Errorf("failed to build sample module: %w", err)
	}
	if err := ir.Validate(m, typesIn); err != nil {
		return fmt.Errorf("sample module does not validate: %w", err)
	}

	opts, err := loadDumpOptions(".")
	if err != nil {
		return err
	}
	if err := ir.DumpModule(os.Stdout, m, typesIn, opts); err != nil {
		return err
	}

	if out != "" {
		if err := snapshot.Write(out, m, typesIn); err != nil {
			return fmt.Errorf("failed to write snapshot: %w", err)
		}
		quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
		if !quiet {
			fmt.Fprintf(os.Stderr, "snapshot written to %s\n", out)
		}
	}
	return nil
}
