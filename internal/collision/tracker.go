// Package collision detects repeated series labels and label hash collisions
// while a snapshot index is built.
package collision

import (
	"errors"

	"github.com/foxplot/foxplot/internal/hash"
)

var (
	// ErrEmptyLabel is returned when tracking an empty label.
	ErrEmptyLabel = errors.New("empty label")
	// ErrDuplicateLabel is returned when the same label is tracked twice.
	ErrDuplicateLabel = errors.New("duplicate label")
	// ErrHashCollision is returned when two different labels share an ID.
	ErrHashCollision = errors.New("label hash collision")
)

// Tracker maps label IDs to labels and remembers the tracking order.
type Tracker struct {
	labels map[uint64]string // ID → label
	order  []string
}

// NewTracker creates a tracker sized for capacity labels.
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		labels: make(map[uint64]string, capacity),
		order:  make([]string, 0, capacity),
	}
}

// Track records label and returns its ID.
//
// Returns:
//   - uint64: hash.ID(label)
//   - error: ErrEmptyLabel, ErrDuplicateLabel, or ErrHashCollision when a
//     different label already has the same ID
func (t *Tracker) Track(label string) (uint64, error) {
	if label == "" {
		return 0, ErrEmptyLabel
	}

	id := hash.ID(label)
	return id, t.track(id, label)
}

func (t *Tracker) track(id uint64, label string) error {
	if existing, ok := t.labels[id]; ok {
		if existing == label {
			return ErrDuplicateLabel
		}
		return ErrHashCollision
	}

	t.labels[id] = label
	t.order = append(t.order, label)

	return nil
}

// Label returns the label tracked under id.
func (t *Tracker) Label(id uint64) (string, bool) {
	label, ok := t.labels[id]
	return label, ok
}

// Labels returns the tracked labels in tracking order.
func (t *Tracker) Labels() []string {
	return t.order
}

// Count returns the number of tracked labels.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset forgets every label and keeps the allocated capacity.
func (t *Tracker) Reset() {
	clear(t.labels)
	t.order = t.order[:0]
}
