package tree

import (
	"cmp"
	"encoding/json"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/foxplot/foxplot/series"
)

// Node is a tree node: *Branch, *Leaf or *series.Series.
type Node interface {
	Label() string
}

// Kind identifies the concrete type of a Node.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindBranch
	KindLeaf
	KindSeries
)

func (k Kind) String() string {
	switch k {
	case KindBranch:
		return "branch"
	case KindLeaf:
		return "leaf"
	case KindSeries:
		return "series"
	default:
		return "unknown"
	}
}

func (k Kind) valueName() string {
	if k == KindBranch {
		return "mapping or sequence"
	}

	return "scalar"
}

// KindOf returns the kind of n.
func KindOf(n Node) Kind {
	switch n.(type) {
	case *Branch:
		return KindBranch
	case *Leaf:
		return KindLeaf
	case *series.Series:
		return KindSeries
	default:
		return KindUnknown
	}
}

// Key addresses a child: an object key or a sequence index.
type Key struct {
	name    string
	index   int
	isIndex bool
}

// Name returns the key of an object field.
func Name(name string) Key {
	return Key{name: name}
}

// Index returns the key of a sequence element.
func Index(i int) Key {
	return Key{index: i, isIndex: true}
}

// IsIndex reports whether k addresses a sequence element.
func (k Key) IsIndex() bool {
	return k.isIndex
}

// String returns the path segment of k.
func (k Key) String() string {
	if k.isIndex {
		return strconv.Itoa(k.index)
	}

	return k.name
}

func compareKeys(a, b Key) int {
	switch {
	case a.isIndex && b.isIndex:
		return cmp.Compare(a.index, b.index)
	case a.isIndex:
		return -1
	case b.isIndex:
		return 1
	default:
		return strings.Compare(a.name, b.name)
	}
}

// parseKey returns the key addressed by a path segment. A segment in canonical
// decimal form, such as "3" but not "03" or "-1", is a sequence index, so an
// object key "3" and element 3 of a sequence share one child and one label.
func parseKey(segment string) Key {
	if i, err := strconv.Atoi(segment); err == nil && i >= 0 && strconv.Itoa(i) == segment {
		return Index(i)
	}

	return Name(segment)
}

// childLabel joins a parent label and a key without doubling the separator.
func childLabel(parent string, key Key) string {
	if strings.HasSuffix(parent, "/") {
		return parent + key.String()
	}

	return parent + "/" + key.String()
}

// isComposite reports whether a decoded value is a mapping or a sequence.
func isComposite(value any) bool {
	switch value.(type) {
	case map[string]any, []any, []float64:
		return true
	default:
		return false
	}
}

// items iterates over the children of a composite value. Object keys are
// visited in sorted order so that discovery order does not depend on map
// iteration.
func items(value any) iter.Seq2[Key, any] {
	return func(yield func(Key, any) bool) {
		switch v := value.(type) {
		case map[string]any:
			keys := make([]string, 0, len(v))
			for k := range v {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			for _, k := range keys {
				if !yield(parseKey(k), v[k]) {
					return
				}
			}
		case []any:
			for i, sub := range v {
				if !yield(Index(i), sub) {
					return
				}
			}
		case []float64:
			for i, sub := range v {
				if !yield(Index(i), sub) {
					return
				}
			}
		}
	}
}

// ToFloat coerces a raw scalar into a sample value. Booleans map to 1 and 0,
// numeric strings are parsed, and null or any other string becomes NaN.
func ToFloat(raw any) float64 {
	switch v := raw.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
