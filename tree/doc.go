// Package tree implements the schema tree that foxplot grows while ingesting
// semi-structured records.
//
// Every record is a nested map/sequence. The tree mirrors its nesting: a
// *Branch holds named or indexed children, and every scalar field ends up in a
// *Leaf that accumulates sparse (step, value) writes. Nothing about the schema
// is known in advance; branches and leaves are created the first time a record
// mentions their path.
//
// Once the stream is exhausted, Freeze walks the tree and replaces every *Leaf
// with a dense, forward-filled *series.Series. Branch identities and labels are
// preserved, so references to branches taken before freezing observe the frozen
// descendants.
//
// A tree node is therefore one of three concrete types:
//
//	*Branch         nested namespace
//	*Leaf           sparse accumulator, before Freeze
//	*series.Series  dense series, after Freeze
//
// # Schema conflicts
//
// A path keeps the kind it was created with. A scalar arriving where a branch
// exists, or a mapping arriving where a leaf exists, is a *SchemaConflictError.
// Update checks the whole record before writing anything, so a conflicting
// record leaves the tree untouched. A null arriving at a branch position is not
// a conflict: that subtree is skipped for the step.
//
// # Addressing
//
// Labels are slash-delimited paths such as "/observation/imu/orientation/0".
// Leading and trailing slashes are ignored and numeric segments address
// sequence indices.
package tree
