package pathdef

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/zclconf/go-cty/cty"
)

type hclFile struct {
	Start    *hclPoint    `hcl:"start,block"`
	Elements []hclElement `hcl:"element,block"`
}

type hclPoint struct {
	X float64 `hcl:"x"`
	Y float64 `hcl:"y"`
}

type hclElement struct {
	Kind string   `hcl:"kind,label"`
	Body hcl.Body `hcl:",remain"`
}

// ParseHCL parses the HCL form of a definition. filename is used in
// diagnostics and must end in ".hcl".
func ParseHCL(filename string, src []byte) (Definition, error) {
	var f hclFile
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return Definition{}, err
	}

	var def Definition
	if f.Start != nil {
		def.StartX, def.StartY = f.Start.X, f.Start.Y
	}
	for i, block := range f.Elements {
		raw, err := attributes(block.Body)
		if err != nil {
			return Definition{}, fmt.Errorf("element %d (%s): %w", i, block.Kind, err)
		}
		e, err := element(i, block.Kind, raw)
		if err != nil {
			return Definition{}, err
		}
		def.Elements = append(def.Elements, e)
	}
	return def, nil
}

// attributes evaluates every attribute of body into a float64 or a string.
func attributes(body hcl.Body) (map[string]any, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	raw := make(map[string]any, len(attrs))
	for name, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		switch {
		case value.IsNull() || !value.IsKnown():
			return nil, fmt.Errorf("%q has no value", name)
		case value.Type() == cty.Number:
			f, _ := value.AsBigFloat().Float64()
			raw[name] = f
		case value.Type() == cty.String:
			raw[name] = value.AsString()
		default:
			return nil, fmt.Errorf("%q has unsupported type %s", name, value.Type().FriendlyName())
		}
	}
	return raw, nil
}
