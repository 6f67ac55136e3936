package tree

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// =============================================================================
// Node - Structural Tree Node
// =============================================================================

// Node is a single tree node: a structural kind tag plus ordered fields.
type Node struct {
	Kind   string
	Fields []Field
}

// Field is a named field value. Order within Node.Fields is significant.
type Field struct {
	Name  string
	Value Value
}

// Value is a field value: a nested *Node, a List, or a Scalar.
// The set of variants is closed.
type Value interface {
	isValue()
}

// List is an ordered sequence of child nodes.
type List []*Node

// Scalar is an opaque leaf value. Scalars are not visited by the
// converter and do not produce graph nodes.
type Scalar struct {
	Val any
}

func (*Node) isValue()  {}
func (List) isValue()   {}
func (Scalar) isValue() {}

// New creates a node with the given kind and fields.
func New(kind string, fields ...Field) *Node {
	return &Node{Kind: kind, Fields: fields}
}

// F creates a field.
func F(name string, v Value) Field {
	return Field{Name: name, Value: v}
}

// Field returns the value of the named field, or nil if absent.
func (n *Node) Field(name string) Value {
	for _, f := range n.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return nil
}

// Literal returns the textual representation of the scalar value.
// Strings are single-quoted; everything else uses its default formatting.
func (s Scalar) Literal() string {
	switch v := s.Val.(type) {
	case string:
		return "'" + v + "'"
	case nil:
		return "None"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// =============================================================================
// JSON Round-Trip
// =============================================================================

// jsonNode is the serialization form of a Node.
type jsonNode struct {
	Kind   string      `json:"kind"`
	Fields []jsonField `json:"fields,omitempty"`
}

// jsonField carries exactly one of the three value variants.
type jsonField struct {
	Name  string           `json:"name"`
	Node  *jsonNode        `json:"node,omitempty"`
	List  []*jsonNode      `json:"list,omitempty"`
	Empty bool             `json:"empty_list,omitempty"` // distinguishes [] from absent
	Value *json.RawMessage `json:"value,omitempty"`
}

// MarshalNode serializes a node to JSON, preserving field order.
func MarshalNode(n *Node) ([]byte, error) {
	return json.Marshal(toJSON(n))
}

// UnmarshalNode deserializes a node from JSON.
func UnmarshalNode(data []byte) (*Node, error) {
	var jn jsonNode
	if err := json.Unmarshal(data, &jn); err != nil {
		return nil, err
	}
	return fromJSON(&jn)
}

func toJSON(n *Node) *jsonNode {
	if n == nil {
		return nil
	}
	out := &jsonNode{Kind: n.Kind}
	for _, f := range n.Fields {
		jf := jsonField{Name: f.Name}
		switch v := f.Value.(type) {
		case *Node:
			jf.Node = toJSON(v)
		case List:
			if len(v) == 0 {
				jf.Empty = true
			}
			for _, item := range v {
				jf.List = append(jf.List, toJSON(item))
			}
		case Scalar:
			raw, err := json.Marshal(v.Val)
			if err != nil {
				raw = []byte(strconv.Quote(fmt.Sprintf("%v", v.Val)))
			}
			msg := json.RawMessage(raw)
			jf.Value = &msg
		}
		out.Fields = append(out.Fields, jf)
	}
	return out
}

func fromJSON(jn *jsonNode) (*Node, error) {
	if jn == nil {
		return nil, nil
	}
	n := &Node{Kind: jn.Kind}
	for _, jf := range jn.Fields {
		f := Field{Name: jf.Name}
		switch {
		case jf.Node != nil:
			child, err := fromJSON(jf.Node)
			if err != nil {
				return nil, err
			}
			f.Value = child
		case jf.List != nil || jf.Empty:
			list := List{}
			for _, item := range jf.List {
				child, err := fromJSON(item)
				if err != nil {
					return nil, err
				}
				list = append(list, child)
			}
			f.Value = list
		case jf.Value != nil:
			var val any
			if err := json.Unmarshal(*jf.Value, &val); err != nil {
				return nil, fmt.Errorf("field %s: %w", jf.Name, err)
			}
			// JSON numbers decode as float64; restore integral values.
			if fv, ok := val.(float64); ok && fv == float64(int64(fv)) {
				val = int(fv)
			}
			f.Value = Scalar{Val: val}
		default:
			return nil, fmt.Errorf("field %s: no value variant set", jf.Name)
		}
		n.Fields = append(n.Fields, f)
	}
	return n, nil
}
