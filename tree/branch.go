package tree

import (
	"fmt"
	"iter"
	"strings"

	"github.com/foxplot/foxplot/series"
)

// Branch is a namespace node. Children are kept in discovery order.
type Branch struct {
	label    string
	children map[Key]Node
	order    []Key
}

// NewBranch returns an empty branch. The root of a tree is labeled "/".
func NewBranch(label string) *Branch {
	return &Branch{
		label:    label,
		children: make(map[Key]Node),
	}
}

// Label returns the full path of the branch.
func (b *Branch) Label() string {
	return b.label
}

// Len returns the number of direct children.
func (b *Branch) Len() int {
	return len(b.order)
}

// Keys returns the child keys in discovery order.
func (b *Branch) Keys() []Key {
	return append([]Key(nil), b.order...)
}

// Child returns the direct child stored under key.
func (b *Branch) Child(key Key) (Node, bool) {
	n, ok := b.children[key]
	return n, ok
}

// Children iterates over direct children in discovery order.
func (b *Branch) Children() iter.Seq2[Key, Node] {
	return func(yield func(Key, Node) bool) {
		for _, k := range b.order {
			if !yield(k, b.children[k]) {
				return
			}
		}
	}
}

// Set stores node under key, replacing an existing child. A leaf and a series
// are interchangeable; replacing a branch with a scalar node or the reverse is
// a schema conflict.
func (b *Branch) Set(key Key, node Node) error {
	if existing, ok := b.children[key]; ok {
		if (KindOf(existing) == KindBranch) != (KindOf(node) == KindBranch) {
			return &SchemaConflictError{Label: existing.Label(), Existing: KindOf(existing), Incoming: KindOf(node)}
		}
		b.children[key] = node

		return nil
	}
	b.children[key] = node
	b.order = append(b.order, key)

	return nil
}

// String lists the direct child keys, e.g. "/observation: [imu, joints]".
func (b *Branch) String() string {
	keys := make([]string, len(b.order))
	for i, k := range b.order {
		keys[i] = k.String()
	}

	return fmt.Sprintf("%s: [%s]", b.label, strings.Join(keys, ", "))
}

// Update merges one record into the tree at the given step.
//
// The record is checked against the existing schema before anything is
// written, so a *SchemaConflictError leaves the tree unchanged. New paths
// create branches or leaves; scalar values are appended to their leaf; a null
// value at a branch position is skipped.
//
// Parameters:
//   - step: Zero-based index of the record in the stream
//   - record: Decoded mapping or sequence
//
// Returns:
//   - error: *SchemaConflictError, or ErrFrozen if the record writes into a frozen path
func (b *Branch) Update(step int, record any) error {
	if err := b.check(record); err != nil {
		return err
	}
	b.apply(step, record)

	return nil
}

func (b *Branch) check(value any) error {
	for key, sub := range items(value) {
		child, ok := b.children[key]
		if !ok {
			continue
		}

		switch c := child.(type) {
		case *Branch:
			if sub == nil {
				continue
			}
			if !isComposite(sub) {
				return &SchemaConflictError{Label: c.label, Existing: KindBranch, Incoming: KindLeaf}
			}
			if err := c.check(sub); err != nil {
				return err
			}
		case *Leaf:
			if isComposite(sub) {
				return &SchemaConflictError{Label: c.label, Existing: KindLeaf, Incoming: KindBranch}
			}
		case *series.Series:
			return &PathError{Op: "update", Label: c.Label(), Err: ErrFrozen}
		}
	}

	return nil
}

func (b *Branch) apply(step int, value any) {
	for key, sub := range items(value) {
		child, ok := b.children[key]
		if !ok {
			label := childLabel(b.label, key)
			if isComposite(sub) {
				child = NewBranch(label)
			} else {
				child = NewLeaf(label)
			}
			b.children[key] = child
			b.order = append(b.order, key)
		}

		switch c := child.(type) {
		case *Branch:
			if sub != nil {
				c.apply(step, sub)
			}
		case *Leaf:
			c.Write(step, sub)
		}
	}
}

// Freeze replaces every leaf below b with its materialized series. Series
// already frozen with the same length are kept, so freezing twice is a no-op.
//
// Parameters:
//   - length: Number of steps in the ingested stream
//   - times: Optional time values attached to every series, nil or of size length
//
// Returns:
//   - error: ErrFrozenLength or series.ErrLengthMismatch
func (b *Branch) Freeze(length int, times []float64) error {
	for _, key := range b.order {
		switch c := b.children[key].(type) {
		case *Branch:
			if err := c.Freeze(length, times); err != nil {
				return err
			}
		case *Leaf:
			s, err := c.Materialize(length, times)
			if err != nil {
				return &PathError{Op: "freeze", Label: c.label, Err: err}
			}
			b.children[key] = s
		case *series.Series:
			if c.Len() != length {
				return &PathError{Op: "freeze", Label: c.Label(), Err: ErrFrozenLength}
			}
		}
	}

	return nil
}

// Retime attaches times to every frozen series below b.
func (b *Branch) Retime(times []float64) error {
	for _, key := range b.order {
		switch c := b.children[key].(type) {
		case *Branch:
			if err := c.Retime(times); err != nil {
				return err
			}
		case *series.Series:
			s, err := c.WithTimes(times)
			if err != nil {
				return &PathError{Op: "retime", Label: c.Label(), Err: err}
			}
			b.children[key] = s
		case *Leaf:
			return &PathError{Op: "retime", Label: c.label, Err: ErrNotFrozen}
		}
	}

	return nil
}

// resolve finds the child addressed by one path segment.
func (b *Branch) resolve(segment string) (Node, bool) {
	n, ok := b.children[parseKey(segment)]

	return n, ok
}

func splitLabel(label string) []string {
	trimmed := strings.Trim(label, "/")
	if trimmed == "" {
		return nil
	}

	return strings.Split(trimmed, "/")
}

// Lookup returns the node addressed by label, relative to b. An empty label or
// "/" addresses b itself.
func (b *Branch) Lookup(label string) (Node, error) {
	var node Node = b
	for _, segment := range splitLabel(label) {
		branch, ok := node.(*Branch)
		if !ok {
			return nil, &PathError{Op: "lookup", Label: label, Err: ErrNotBranch}
		}
		child, ok := branch.resolve(segment)
		if !ok {
			return nil, &PathError{Op: "lookup", Label: label, Err: ErrNotFound}
		}
		node = child
	}

	return node, nil
}

// Series returns the frozen series addressed by label.
func (b *Branch) Series(label string) (*series.Series, error) {
	node, err := b.Lookup(label)
	if err != nil {
		return nil, err
	}

	switch n := node.(type) {
	case *series.Series:
		return n, nil
	case *Leaf:
		return nil, &PathError{Op: "series", Label: label, Err: ErrNotFrozen}
	default:
		return nil, &PathError{Op: "series", Label: label, Err: ErrNotSeries}
	}
}

// Branch returns the branch addressed by label.
func (b *Branch) Branch(label string) (*Branch, error) {
	node, err := b.Lookup(label)
	if err != nil {
		return nil, err
	}

	branch, ok := node.(*Branch)
	if !ok {
		return nil, &PathError{Op: "branch", Label: label, Err: ErrNotBranch}
	}

	return branch, nil
}

// Insert places node at label relative to b, creating intermediate branches.
// Numeric segments become sequence indices.
func (b *Branch) Insert(label string, node Node) error {
	segments := splitLabel(label)
	if len(segments) == 0 {
		return &PathError{Op: "insert", Label: label, Err: ErrNotFound}
	}

	parent := b
	for _, segment := range segments[:len(segments)-1] {
		key := parseKey(segment)
		child, ok := parent.children[key]
		if !ok {
			next := NewBranch(childLabel(parent.label, key))
			parent.children[key] = next
			parent.order = append(parent.order, key)
			parent = next

			continue
		}
		next, ok := child.(*Branch)
		if !ok {
			return &SchemaConflictError{Label: child.Label(), Existing: KindOf(child), Incoming: KindBranch}
		}
		parent = next
	}

	return parent.Set(parseKey(segments[len(segments)-1]), node)
}

// Walk visits every node below b depth-first in discovery order. Branches are
// visited before their children. Returning false stops the walk.
func (b *Branch) Walk(fn func(Node) bool) bool {
	for _, key := range b.order {
		child := b.children[key]
		if !fn(child) {
			return false
		}
		if c, ok := child.(*Branch); ok {
			if !c.Walk(fn) {
				return false
			}
		}
	}

	return true
}

// Labels returns the labels of every leaf or series below b in depth-first
// discovery order.
func (b *Branch) Labels() []string {
	var labels []string
	b.Walk(func(n Node) bool {
		if KindOf(n) != KindBranch {
			labels = append(labels, n.Label())
		}
		return true
	})

	return labels
}

// AllSeries iterates over every frozen series below b.
func (b *Branch) AllSeries() iter.Seq[*series.Series] {
	return func(yield func(*series.Series) bool) {
		b.Walk(func(n Node) bool {
			if s, ok := n.(*series.Series); ok {
				return yield(s)
			}
			return true
		})
	}
}
