// Package tree defines the structural syntax-tree model used by the
// converter and pretty-printer.
//
// A [Node] is a kind tag plus an ordered list of named fields. Field order
// is significant: traversal and printing both visit fields in declaration
// order, and items within a list-valued field in sequence order. A field
// value is one of three closed variants:
//   - a nested *Node
//   - a List of nodes
//   - a Scalar (string, number, boolean, or other opaque value)
//
// Trees are produced either directly, or by flattening a parsed go/ast
// tree with [FromAST]. The two forms print identically; only the
// flattening step differs.
//
// # Serialization
//
// Nodes round-trip through JSON via [MarshalNode] and [UnmarshalNode].
// Round-tripping is lossless with respect to printing: a deserialized
// node prints exactly like the tree it was flattened from.
package tree
