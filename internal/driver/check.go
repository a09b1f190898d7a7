// Package driver runs snapshot-level operations over many files at once.
package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lir/internal/ir"
	"lir/internal/snapshot"
	"lir/internal/types"
)

// CheckResult holds the outcome for one snapshot file.
type CheckResult struct {
	Path   string
	Module *ir.Module
	Types  *types.Interner
	Err    error
}

// ListSnapshotFiles returns the sorted list of *.mp files under dir.
func ListSnapshotFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".mp") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Sorted for deterministic result order.
	sort.Strings(files)
	return files, nil
}

// CheckFiles loads and validates each snapshot, at most jobs files at a
// time. Per-file failures land in the result's Err; only context
// cancellation aborts the whole run. Results keep the input order.
func CheckFiles(ctx context.Context, paths []string, jobs int) ([]CheckResult, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]CheckResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, typesIn, err := snapshot.Read(path)
			if err == nil {
				err = ir.Validate(m, typesIn)
			}
			results[i] = CheckResult{Path: path, Module: m, Types: typesIn, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// CheckDir validates every snapshot found under dir.
func CheckDir(ctx context.Context, dir string, jobs int) ([]CheckResult, error) {
	files, err := ListSnapshotFiles(dir)
	if err != nil {
		return nil, err
	}
	return CheckFiles(ctx, files, jobs)
}
