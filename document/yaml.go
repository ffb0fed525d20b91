package document

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// mergeKey is the YAML merge key.
const mergeKey = "<<"

// DecodeYAML decodes the first document of a YAML stream.
//
// Anchors, aliases, and merge keys are resolved. An empty stream decodes to
// an empty mapping.
func DecodeYAML(src []byte, filename string) (*Node, error) {
	file, err := parser.ParseBytes(src, 0)
	if err != nil {
		return nil, ErrDecode.
			With(slog.String("file", filename)).
			Wrap(errors.New(yaml.FormatError(err, false, true)))
	}

	d := &yamlDecoder{file: filename, anchors: map[string]*Node{}}

	if len(file.Docs) == 0 || file.Docs[0].Body == nil {
		return NewMapping(1, 1), nil
	}

	root, err := d.decode(file.Docs[0].Body)
	if err != nil {
		return nil, err
	}

	if root.Kind == Null {
		return NewMapping(root.Line, root.Column), nil
	}

	return root, nil
}

type yamlDecoder struct {
	anchors map[string]*Node
	file    string
}

func (d *yamlDecoder) decode(n ast.Node) (*Node, error) {
	line, column := position(n)

	switch v := n.(type) {
	case *ast.DocumentNode:
		return d.decode(v.Body)

	case *ast.MappingNode:
		return d.mapping(v.Values, line, column)

	case *ast.MappingValueNode:
		return d.mapping([]*ast.MappingValueNode{v}, line, column)

	case *ast.SequenceNode:
		out := &Node{Kind: Sequence, Line: line, Column: column}

		for _, item := range v.Values {
			child, err := d.decode(item)
			if err != nil {
				return nil, err
			}

			out.Items = append(out.Items, child)
		}

		return out, nil

	case *ast.StringNode:
		return NewScalar(v.Value, v.Value, line, column), nil

	case *ast.LiteralNode:
		return NewScalar(v.Value.Value, v.Value.Value, line, column), nil

	case *ast.IntegerNode:
		text := v.GetToken().Value

		i, err := strconv.ParseInt(text, 0, 64)
		if err != nil {
			return NewScalar(toFloat(v.Value), text, line, column), nil
		}

		return NewScalar(i, text, line, column), nil

	case *ast.FloatNode:
		return NewScalar(v.Value, v.GetToken().Value, line, column), nil

	case *ast.InfinityNode:
		return NewScalar(v.Value, v.GetToken().Value, line, column), nil

	case *ast.BoolNode:
		return NewScalar(v.Value, v.GetToken().Value, line, column), nil

	case *ast.NullNode:
		return &Node{Kind: Null, Line: line, Column: column}, nil

	case *ast.TagNode:
		return d.decode(v.Value)

	case *ast.AnchorNode:
		out, err := d.decode(v.Value)
		if err != nil {
			return nil, err
		}

		d.anchors[v.Name.GetToken().Value] = out

		return out, nil

	case *ast.AliasNode:
		name := v.Value.GetToken().Value

		out, ok := d.anchors[name]
		if !ok {
			return nil, d.fail(n, fmt.Errorf("unknown alias %q", name))
		}

		return out, nil

	case *ast.CommentGroupNode:
		return &Node{Kind: Null, Line: line, Column: column}, nil
	}

	return nil, d.fail(n, fmt.Errorf("unsupported YAML node %s", n.Type()))
}

// mapping decodes entries into a new mapping. Merge keys are applied last
// and never override an explicit key.
func (d *yamlDecoder) mapping(
	entries []*ast.MappingValueNode, line, column int,
) (*Node, error) {
	out := NewMapping(line, column)

	var merges []*ast.MappingValueNode

	for _, mv := range entries {
		key := keyText(mv.Key)
		if key == mergeKey {
			merges = append(merges, mv)

			continue
		}

		if _, dup := out.Get(key); dup {
			return nil, d.fail(mv, fmt.Errorf("duplicate key %q", key))
		}

		value, err := d.decode(mv.Value)
		if err != nil {
			return nil, err
		}

		out.Set(key, value)
	}

	for _, mv := range merges {
		value, err := d.decode(mv.Value)
		if err != nil {
			return nil, err
		}

		if err := d.merge(out, mv, value); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// merge copies the entries of value into out without overriding keys out
// already holds.
func (d *yamlDecoder) merge(out *Node, at ast.Node, value *Node) error {
	sources := []*Node{value}
	if value.Kind == Sequence {
		sources = value.Items
	}

	for _, src := range sources {
		if src.Kind != Mapping {
			return d.fail(at, errors.New("merge key requires a mapping"))
		}

		for k, v := range src.Entries() {
			if _, ok := out.Get(k); !ok {
				out.Set(k, v)
			}
		}
	}

	return nil
}

func (d *yamlDecoder) fail(n ast.Node, err error) error {
	line, column := position(n)

	return ErrDecode.
		With(slog.String("file", d.file), slog.Int("line", line), slog.Int("column", column)).
		Wrap(err)
}

func keyText(k ast.MapKeyNode) string {
	switch v := k.(type) {
	case *ast.StringNode:
		return v.Value
	case *ast.MergeKeyNode:
		return mergeKey
	}

	if tok := k.GetToken(); tok != nil {
		return tok.Value
	}

	return k.String()
}

func position(n ast.Node) (line, column int) {
	if n == nil {
		return 0, 0
	}

	tok := n.GetToken()
	if tok == nil || tok.Position == nil {
		return 0, 0
	}

	return tok.Position.Line, tok.Position.Column
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case uint64:
		return float64(x)
	case int:
		return float64(x)
	case float64:
		return x
	}

	return 0
}
