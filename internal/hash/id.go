// Package hash computes the 64-bit identifiers used to index series labels.
package hash

import "github.com/cespare/xxhash/v2"

// ID returns the xxHash64 of a series label.
func ID(label string) uint64 {
	return xxhash.Sum64String(label)
}

// IDs returns the identifiers of labels, in order.
func IDs(labels []string) []uint64 {
	ids := make([]uint64, len(labels))
	for i, label := range labels {
		ids[i] = ID(label)
	}

	return ids
}
