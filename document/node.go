package document

import (
	"iter"
	"slices"
	"strconv"
)

// Kind is the shape of a [Node].
type Kind int

// Kinds of node.
const (
	Null     Kind = iota // null
	Scalar               // scalar
	Sequence             // sequence
	Mapping              // mapping
)

// Node is one value of a decoded document.
type Node struct {
	// Value holds a scalar: string, float64, int64, or bool.
	Value any
	// Text is the source text of a scalar.
	Text   string
	Keys   []string
	Values []*Node
	Items  []*Node
	Line   int
	Column int
	Kind   Kind
}

// NewMapping returns an empty mapping node at line and column.
func NewMapping(line, column int) *Node {
	return &Node{Kind: Mapping, Line: line, Column: column}
}

// NewScalar returns a scalar node holding v with source text.
func NewScalar(v any, text string, line, column int) *Node {
	return &Node{Kind: Scalar, Value: v, Text: text, Line: line, Column: column}
}

// Get returns the value of key in a mapping.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind != Mapping {
		return nil, false
	}

	if i := slices.Index(n.Keys, key); i >= 0 {
		return n.Values[i], true
	}

	return nil, false
}

// Set adds or replaces key in a mapping.
func (n *Node) Set(key string, v *Node) {
	if i := slices.Index(n.Keys, key); i >= 0 {
		n.Values[i] = v

		return
	}

	n.Keys = append(n.Keys, key)
	n.Values = append(n.Values, v)
}

// Entries iterates the key/value pairs of a mapping in document order.
func (n *Node) Entries() iter.Seq2[string, *Node] {
	return func(yield func(string, *Node) bool) {
		if n == nil {
			return
		}

		for i, k := range n.Keys {
			if !yield(k, n.Values[i]) {
				return
			}
		}
	}
}

// Len returns the number of entries of a mapping or items of a sequence.
func (n *Node) Len() int {
	switch {
	case n == nil:
		return 0
	case n.Kind == Mapping:
		return len(n.Keys)
	case n.Kind == Sequence:
		return len(n.Items)
	}

	return 0
}

// IsNull reports whether n is absent or null.
func (n *Node) IsNull() bool { return n == nil || n.Kind == Null }

// String returns the source text of a scalar, or the kind of n otherwise.
func (n *Node) String() string {
	switch {
	case n == nil:
		return Null.String()
	case n.Kind != Scalar:
		return n.Kind.String()
	case n.Text != "":
		return n.Text
	}

	switch v := n.Value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	}

	return ""
}

// Pos returns "line:column", or "" when the position is unknown.
func (n *Node) Pos() string {
	if n == nil || n.Line == 0 {
		return ""
	}

	return strconv.Itoa(n.Line) + ":" + strconv.Itoa(n.Column)
}
