package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lir/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [file.mp...]",
	Short: "Validate snapshot files",
	Long:  `Check loads each snapshot, rebuilds its type table and validates the module invariants`,
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("dir", "", "check every *.mp snapshot under a directory")
	checkCmd.Flags().Int("jobs", 0, "maximum snapshots checked in parallel (0 = number of CPUs)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir, err := cmd.Flags().GetString("dir")
	if err != nil {
		return fmt.Errorf("failed to get dir flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if dir == "" && len(args) == 0 {
		return fmt.Errorf("nothing to check: pass snapshot files or --dir")
	}

	var results []driver.CheckResult
	if dir != "" {
		results, err = driver.CheckDir(cmd.Context(), dir, jobs)
		if err != nil {
			return err
		}
	}
	if len(args) > 0 {
		fileResults, err := driver.CheckFiles(cmd.Context(), args, jobs)
		if err != nil {
			return err
		}
		results = append(results, fileResults...)
	}

	okColor := color.New(color.FgGreen)
	failColor := color.New(color.FgRed, color.Bold)
	if !useColor(cmd, os.Stdout) {
		okColor.DisableColor()
		failColor.DisableColor()
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			failColor.Fprintf(os.Stdout, "FAIL %s\n", r.Path)
			fmt.Fprintf(os.Stdout, "     %v\n", r.Err)
			continue
		}
		okColor.Fprintf(os.Stdout, "OK   %s\n", r.Path)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d snapshots failed validation", failed, len(results))
	}
	return nil
}
