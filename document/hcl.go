package document

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"math/big"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// DecodeHCL decodes an HCL native syntax document.
//
// Blocks become mappings keyed by block type and then by each label.
// Repeated blocks of the same type are merged. Attribute values that HCL can
// evaluate without variables become scalars, sequences, or mappings. Any
// other expression is kept as a string scalar holding its source text, so
// `a0 = 2 * pi` decodes to the expression "2 * pi".
func DecodeHCL(src []byte, filename string) (*Node, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, ErrDecode.
			With(slog.String("file", filename)).
			Wrap(errors.New(diags.Error()))
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, ErrUnsupported.
			With(slog.String("file", filename)).
			Wrap(fmt.Errorf("unexpected body type %T", file.Body))
	}

	d := &hclDecoder{src: src, file: filename}

	return d.body(body, NewMapping(1, 1))
}

type hclDecoder struct {
	file string
	src  []byte
}

// body decodes attributes and blocks into out in source order.
func (d *hclDecoder) body(b *hclsyntax.Body, out *Node) (*Node, error) {
	attrs := slices.SortedFunc(maps.Values(b.Attributes),
		func(a, b *hclsyntax.Attribute) int {
			return cmp.Compare(a.SrcRange.Start.Byte, b.SrcRange.Start.Byte)
		})

	for _, attr := range attrs {
		if _, dup := out.Get(attr.Name); dup {
			return nil, d.fail(attr.SrcRange, fmt.Errorf("duplicate key %q", attr.Name))
		}

		out.Set(attr.Name, d.expr(attr.Expr))
	}

	for _, blk := range b.Blocks {
		parent := out

		for _, key := range append([]string{blk.Type}, blk.Labels...) {
			child, ok := parent.Get(key)

			switch {
			case !ok:
				child = NewMapping(blk.TypeRange.Start.Line, blk.TypeRange.Start.Column)
				parent.Set(key, child)
			case child.Kind != Mapping:
				return nil, d.fail(blk.TypeRange,
					fmt.Errorf("block %q conflicts with attribute", key))
			}

			parent = child
		}

		if _, err := d.body(blk.Body, parent); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// expr converts one expression.
func (d *hclDecoder) expr(e hclsyntax.Expression) *Node {
	rng := e.Range()
	line, column := rng.Start.Line, rng.Start.Column

	switch v := e.(type) {
	case *hclsyntax.TupleConsExpr:
		out := &Node{Kind: Sequence, Line: line, Column: column}
		for _, item := range v.Exprs {
			out.Items = append(out.Items, d.expr(item))
		}

		return out

	case *hclsyntax.ObjectConsExpr:
		out := NewMapping(line, column)
		for _, item := range v.Items {
			out.Set(d.key(item.KeyExpr), d.expr(item.ValueExpr))
		}

		return out
	}

	text := string(rng.SliceBytes(d.src))

	val, diags := e.Value(nil)
	if diags.HasErrors() {
		return NewScalar(text, text, line, column)
	}

	return fromCty(val, text, line, column)
}

func (d *hclDecoder) key(e hclsyntax.Expression) string {
	if kw := hcl.ExprAsKeyword(e); kw != "" {
		return kw
	}

	if v, diags := e.Value(nil); !diags.HasErrors() &&
		v.IsKnown() && !v.IsNull() && v.Type().Equals(cty.String) {
		return v.AsString()
	}

	return string(e.Range().SliceBytes(d.src))
}

func (d *hclDecoder) fail(rng hcl.Range, err error) error {
	return ErrDecode.
		With(
			slog.String("file", d.file),
			slog.Int("line", rng.Start.Line),
			slog.Int("column", rng.Start.Column),
		).
		Wrap(err)
}

// fromCty converts a known cty value.
func fromCty(v cty.Value, text string, line, column int) *Node {
	if v.IsNull() || !v.IsKnown() {
		return &Node{Kind: Null, Line: line, Column: column}
	}

	ty := v.Type()

	switch {
	case ty.Equals(cty.String):
		s := v.AsString()

		return NewScalar(s, s, line, column)

	case ty.Equals(cty.Bool):
		return NewScalar(v.True(), text, line, column)

	case ty.Equals(cty.Number):
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return NewScalar(i, text, line, column)
			}
		}

		f, _ := bf.Float64()

		return NewScalar(f, text, line, column)

	case ty.IsListType(), ty.IsTupleType(), ty.IsSetType():
		out := &Node{Kind: Sequence, Line: line, Column: column}
		for _, item := range v.AsValueSlice() {
			out.Items = append(out.Items, fromCty(item, "", line, column))
		}

		return out

	case ty.IsMapType(), ty.IsObjectType():
		out := NewMapping(line, column)
		m := v.AsValueMap()

		for _, k := range slices.Sorted(maps.Keys(m)) {
			out.Set(k, fromCty(m[k], "", line, column))
		}

		return out
	}

	return NewScalar(text, text, line, column)
}
