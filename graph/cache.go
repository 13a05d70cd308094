package graph

import (
	"context"
	"encoding/gob"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const snapshotFormat = 1

type snapshotFile struct {
	Format      int
	Description Description
}

// EncodeSnapshot writes a description to w using gob encoding.
//
// Thread safety: safe for concurrent use, descriptions are plain values.
func EncodeSnapshot(w io.Writer, d Description) error {
	if err := gob.NewEncoder(w).Encode(snapshotFile{Format: snapshotFormat, Description: d}); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// DecodeSnapshot reads a description previously written by EncodeSnapshot
func DecodeSnapshot(r io.Reader) (Description, error) {
	var f snapshotFile
	if err := gob.NewDecoder(r).Decode(&f); err != nil {
		return Description{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if f.Format != snapshotFormat {
		return Description{}, fmt.Errorf("unsupported snapshot format %d", f.Format)
	}
	return f.Description, nil
}

// WriteSnapshot writes a description to a file. The file is replaced
// atomically so a crashed write never leaves a truncated snapshot.
func WriteSnapshot(path string, d Description) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := EncodeSnapshot(tmp, d); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadSnapshot reads a description from a file written by WriteSnapshot
func ReadSnapshot(path string) (Description, error) {
	f, err := os.Open(path)
	if err != nil {
		return Description{}, fmt.Errorf("failed to read snapshot: %w", err)
	}
	defer f.Close()
	return DecodeSnapshot(f)
}

// SnapshotLoader loads a description from a snapshot file
func SnapshotLoader(path string) Loader {
	return LoaderFunc(func(ctx context.Context) (Description, error) {
		return ReadSnapshot(path)
	})
}

// CachingLoader loads from next and writes the result to a snapshot file.
// A failed write is logged and does not fail the load.
func CachingLoader(next Loader, path string) Loader {
	return LoaderFunc(func(ctx context.Context) (Description, error) {
		d, err := next.Load(ctx)
		if err != nil {
			return Description{}, err
		}
		if err := WriteSnapshot(path, d); err != nil {
			slog.Warn("could not write graph snapshot", "path", path, "err", err)
		}
		return d, nil
	})
}
