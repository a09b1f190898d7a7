// Package snapshot serializes a module together with its type table, so a
// consumer can reload both without rebuilding the interner.
package snapshot

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"lir/internal/ir"
	"lir/internal/types"
)

// Current schema version - increment when the payload format changes.
const schemaVersion uint16 = 1

// ErrSchema reports a snapshot written under a different payload format.
var ErrSchema = errors.New("snapshot: unsupported schema version")

type payload struct {
	Schema uint16
	Types  []types.Type
	Module *ir.Module
}

// Encode writes a module and its type table to w.
func Encode(w io.Writer, m *ir.Module, typesIn *types.Interner) error {
	p := payload{
		Schema: schemaVersion,
		Module: m,
	}
	if typesIn != nil {
		p.Types = typesIn.Table()
	}
	return msgpack.NewEncoder(w).Encode(&p)
}

// Decode reads a module and reconstructs its type interner from r.
func Decode(r io.Reader) (*ir.Module, *types.Interner, error) {
	var p payload
	if err := msgpack.NewDecoder(r).Decode(&p); err != nil {
		return nil, nil, err
	}
	if p.Schema != schemaVersion {
		return nil, nil, fmt.Errorf("%w: got %d, want %d", ErrSchema, p.Schema, schemaVersion)
	}
	return p.Module, types.FromTable(p.Types), nil
}

// Write encodes to a temp file and renames it into place, so readers never
// observe a partial snapshot.
func Write(path string, m *ir.Module, typesIn *types.Interner) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = os.Remove(f.Name())
	}()

	if err := Encode(f, m, typesIn); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}

// Read loads a snapshot file.
func Read(path string) (*ir.Module, *types.Interner, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return Decode(f)
}
