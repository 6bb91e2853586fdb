package pathdef

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

var (
	startX   = jp.MustParseString("$.start.x")
	startY   = jp.MustParseString("$.start.y")
	elements = jp.MustParseString("$.elements[*]")
)

// ParseJSON parses the JSON form of a definition.
func ParseJSON(src []byte) (Definition, error) {
	root, err := oj.Parse(src)
	if err != nil {
		return Definition{}, fmt.Errorf("invalid json: %w", err)
	}
	if _, ok := root.(map[string]any); !ok {
		return Definition{}, fmt.Errorf("expected an object at the top level, got %T", root)
	}

	var def Definition
	if def.StartX, err = optionalNumber(startX, root); err != nil {
		return Definition{}, err
	}
	if def.StartY, err = optionalNumber(startY, root); err != nil {
		return Definition{}, err
	}

	for i, value := range elements.Get(root) {
		obj, ok := value.(map[string]any)
		if !ok {
			return Definition{}, fmt.Errorf("element %d: expected an object, got %T", i, value)
		}
		kind, _ := obj["kind"].(string)
		raw := make(map[string]any, len(obj))
		for k, v := range obj {
			raw[k] = normalize(v)
		}
		e, err := element(i, kind, raw)
		if err != nil {
			return Definition{}, err
		}
		def.Elements = append(def.Elements, e)
	}
	return def, nil
}

func optionalNumber(x jp.Expr, root any) (float64, error) {
	found := x.Get(root)
	if len(found) == 0 {
		return 0, nil
	}
	f, ok := normalize(found[0]).(float64)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", x)
	}
	return f, nil
}

// normalize turns the integer types oj produces into float64.
func normalize(v any) any {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return v
}
