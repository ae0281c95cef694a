package foxplot

import (
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/foxplot/foxplot/decode"
	"github.com/foxplot/foxplot/internal/options"
	"github.com/foxplot/foxplot/series"
	"github.com/foxplot/foxplot/tree"
)

// Fox ingests records into a schema tree and serves the frozen series.
//
// A Fox is not safe for concurrent use while ingesting. After Freeze, the
// series it returns are immutable and may be shared freely.
type Fox struct {
	root      *tree.Branch
	length    int
	timeLabel string
	times     []float64
	frozen    bool
	logger    *slog.Logger
}

// New creates an empty Fox.
//
// Parameters:
//   - opts: WithTime, WithLogger
//
// Returns:
//   - *Fox: Empty ingestion engine
//   - error: An error if an option is invalid
func New(opts ...Option) (*Fox, error) {
	cfg := &config{logger: slog.Default()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Fox{
		root:      tree.NewBranch("/"),
		timeLabel: cfg.timeLabel,
		logger:    cfg.logger,
	}, nil
}

// Unpack ingests one record at the next step index.
//
// The record is checked against the tree before anything is written: on a
// schema conflict or a missing time value, the tree is left unchanged and the
// step index is not incremented.
func (f *Fox) Unpack(record map[string]any) error {
	if f.frozen {
		return ErrFrozen
	}
	if f.timeLabel != "" {
		if v, ok := valueAt(record, f.timeLabel); !ok || v == nil {
			return fmt.Errorf("%w: no %s in record %d", ErrMissingTime, f.timeLabel, f.length)
		}
	}
	if err := f.root.Update(f.length, record); err != nil {
		return fmt.Errorf("record %d: %w", f.length, err)
	}
	f.length++

	return nil
}

// ReadRecords ingests every record of seq. It stops at the first decoding or
// ingestion error; records read before it stay ingested.
func (f *Fox) ReadRecords(seq iter.Seq2[map[string]any, error]) error {
	start := f.length
	for record, err := range seq {
		if err != nil {
			return err
		}
		if err := f.Unpack(record); err != nil {
			return err
		}
	}

	f.logger.Debug("records ingested",
		slog.Int("records", f.length-start),
		slog.Int("length", f.length),
		slog.Int("fields", len(f.root.Labels())),
	)

	return nil
}

// ReadFile ingests every record of a JSON or MessagePack file, optionally
// compressed. The path "stdin" or "-" reads JSON from standard input.
func (f *Fox) ReadFile(path string, opts ...decode.Option) error {
	file, err := decode.Open(path, opts...)
	if err != nil {
		return err
	}
	defer file.Close()

	f.logger.Debug("reading records", slog.String("path", path), slog.String("kind", file.Kind().String()))
	if err := f.ReadRecords(file.Records()); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

// Len returns the number of ingested records.
func (f *Fox) Len() int {
	return f.length
}

// Data returns the root branch of the schema tree.
func (f *Fox) Data() *tree.Branch {
	return f.root
}

// Labels returns the label of every leaf, or series once frozen, in
// depth-first discovery order.
func (f *Fox) Labels() []string {
	return f.root.Labels()
}

// TimeLabel returns the designated time label, or "" if none.
func (f *Fox) TimeLabel() string {
	return f.timeLabel
}

// SetTime designates the time label. Before Freeze it only records the label:
// later records must carry it, and Freeze fails with ErrMissingTime if a record
// unpacked earlier did not. After Freeze every series is replaced by a
// copy carrying the new times; series obtained earlier keep their old times.
func (f *Fox) SetTime(label string) error {
	if !f.frozen {
		f.timeLabel = label
		return nil
	}

	s, err := f.root.Series(label)
	if err != nil {
		return err
	}
	times := s.Values()
	if err := f.root.Retime(times); err != nil {
		return err
	}
	f.timeLabel = label
	f.times = times
	f.logger.Debug("series retimed", slog.String("time", label))

	return nil
}

// Freeze materializes every leaf into a series of length Len. Calling it
// again is a no-op.
func (f *Fox) Freeze() error {
	if f.frozen {
		return nil
	}

	var times []float64
	if f.timeLabel != "" && f.length > 0 {
		node, err := f.root.Lookup(f.timeLabel)
		if err != nil {
			return err
		}
		leaf, ok := node.(*tree.Leaf)
		if !ok {
			return &tree.PathError{Op: "freeze", Label: f.timeLabel, Err: tree.ErrNotSeries}
		}
		if step := leaf.Missing(f.length); step >= 0 {
			return fmt.Errorf("%w: no %s in record %d", ErrMissingTime, f.timeLabel, step)
		}
		s, err := leaf.Materialize(f.length, nil)
		if err != nil {
			return err
		}
		times = s.Values()
	}

	if err := f.root.Freeze(f.length, times); err != nil {
		return err
	}
	f.times = times
	f.frozen = true
	f.logger.Debug("frozen",
		slog.Int("length", f.length),
		slog.String("time", f.timeLabel),
	)

	return nil
}

// Frozen reports whether Freeze has been called.
func (f *Fox) Frozen() bool {
	return f.frozen
}

// Series returns the frozen series at label.
func (f *Fox) Series(label string) (*series.Series, error) {
	if !f.frozen {
		return nil, &tree.PathError{Op: "series", Label: label, Err: ErrNotFrozen}
	}

	return f.root.Series(label)
}

// Node returns the node at label: a *tree.Branch, a *tree.Leaf before Freeze
// or a *series.Series after.
func (f *Fox) Node(label string) (tree.Node, error) {
	return f.root.Lookup(label)
}

// Times returns a copy of the time values attached at Freeze, or nil.
func (f *Fox) Times() []float64 {
	return slices.Clone(f.times)
}

// valueAt reads the raw value at label inside a decoded record.
func valueAt(record map[string]any, label string) (any, bool) {
	var value any = record
	for _, segment := range strings.Split(strings.Trim(label, "/"), "/") {
		switch v := value.(type) {
		case map[string]any:
			next, ok := v[segment]
			if !ok {
				return nil, false
			}
			value = next
		case []any:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(v) {
				return nil, false
			}
			value = v[i]
		default:
			return nil, false
		}
	}

	return value, true
}
