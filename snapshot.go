package foxplot

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/foxplot/foxplot/snapshot"
)

// SnapshotExtension is the file name suffix of snapshot archives.
const SnapshotExtension = ".fxs"

// WriteSnapshot stores every frozen series in a snapshot archive.
//
// Parameters:
//   - w: Destination of the archive
//   - opts: snapshot.WithCompression, snapshot.WithEncoding, snapshot.WithBigEndian
//
// Returns:
//   - error: ErrNotFrozen, or an encoding or write error
func (f *Fox) WriteSnapshot(w io.Writer, opts ...snapshot.Option) error {
	if !f.frozen {
		return fmt.Errorf("write snapshot: %w", ErrNotFrozen)
	}

	items := slices.Collect(f.root.AllSeries())
	if err := snapshot.Write(w, items, opts...); err != nil {
		return err
	}
	f.logger.Debug("snapshot written", slog.Int("series", len(items)), slog.Int("length", f.length))

	return nil
}

// LoadSnapshot rebuilds a frozen Fox from a snapshot archive. Numeric label
// segments become sequence indices, as they were at ingestion. WithTime
// re-times every series once loaded.
func LoadSnapshot(r io.Reader, opts ...Option) (*Fox, error) {
	snap, err := snapshot.Read(r)
	if err != nil {
		return nil, err
	}

	f, err := New(opts...)
	if err != nil {
		return nil, err
	}
	for _, s := range snap.Series() {
		if err := f.root.Insert(s.Label(), s); err != nil {
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
	}
	f.length = snap.Len()
	f.times = snap.Times()
	f.frozen = true

	if f.timeLabel != "" {
		if err := f.SetTime(f.timeLabel); err != nil {
			return nil, err
		}
	}
	f.logger.Debug("snapshot loaded", slog.Int("series", len(snap.Series())), slog.Int("length", f.length))

	return f, nil
}

// Open returns a frozen Fox holding the content of path: a snapshot archive,
// or a record file read with ReadFile and then frozen.
func Open(path string, opts ...Option) (*Fox, error) {
	if strings.HasSuffix(path, SnapshotExtension) {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		return LoadSnapshot(file, opts...)
	}

	f, err := New(opts...)
	if err != nil {
		return nil, err
	}
	if err := f.ReadFile(path); err != nil {
		return nil, err
	}
	if err := f.Freeze(); err != nil {
		return nil, err
	}

	return f, nil
}
