package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lir/internal/ir"
	"lir/internal/snapshot"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot [flags] file.mp",
	Short: "Dump a snapshot file",
	Long:  `Snapshot reloads a module from a snapshot file and dumps it in textual form`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshot,
}

func init() {
	snapshotCmd.Flags().Bool("validate", true, "validate the module before dumping")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	validate, err := cmd.Flags().GetBool("validate")
	if err != nil {
		return fmt.Errorf("failed to get validate flag: %w", err)
	}

	m, typesIn, err := snapshot.Read(args[0])
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	if validate {
		if err := ir.Validate(m, typesIn); err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}
	}

	opts, err := loadDumpOptions(".")
	if err != nil {
		return err
	}
	return ir.DumpModule(os.Stdout, m, typesIn, opts)
}
