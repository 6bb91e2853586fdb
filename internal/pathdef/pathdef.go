// Package pathdef loads path definitions from HCL or JSON files.
//
// A definition has a start point and a list of elements applied in order:
//
//	start {
//	  x = 2
//	  y = 6
//	}
//	element "attribute" {
//	  name  = "opacity"
//	  value = 0.3
//	}
//	element "quad" {
//	  cx = 30
//	  cy = -4
//	  x  = 58
//	  y  = 6
//	}
//
// The JSON form carries the same data:
//
//	{"start": {"x": 2, "y": 6}, "elements": [{"kind": "line", "x": 58, "y": 6}]}
package pathdef

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ayn2op/pathview/curve"
	"github.com/go-git/go-billy/v5"
)

// Element kinds.
const (
	KindLine      = "line"
	KindQuad      = "quad"
	KindCubic     = "cubic"
	KindEllipse   = "ellipse"
	KindClose     = "close"
	KindAttribute = "attribute"
	KindPercent   = "percent"
)

// fields lists the values each kind requires.
var fields = map[string][]string{
	KindLine:      {"x", "y"},
	KindQuad:      {"cx", "cy", "x", "y"},
	KindCubic:     {"c1x", "c1y", "c2x", "c2y", "x", "y"},
	KindEllipse:   {"rx", "ry"},
	KindClose:     nil,
	KindAttribute: {"name", "value"},
	KindPercent:   {"value"},
}

var ErrUnsupportedFormat = errors.New("unsupported path definition format")

// Element is one step of a definition. Values holds the numeric fields the
// kind needs; Name is only used by attributes.
type Element struct {
	Kind   string
	Name   string
	Values map[string]float64
}

// Definition describes a curve.Path.
type Definition struct {
	StartX, StartY float64
	Elements       []Element
}

// Build returns the path described by d.
func (d Definition) Build() *curve.Path {
	p := curve.NewPath(d.StartX, d.StartY)
	for _, e := range d.Elements {
		v := e.Values
		switch e.Kind {
		case KindLine:
			p.LineTo(v["x"], v["y"])
		case KindQuad:
			p.QuadTo(v["cx"], v["cy"], v["x"], v["y"])
		case KindCubic:
			p.CubicTo(v["c1x"], v["c1y"], v["c2x"], v["c2y"], v["x"], v["y"])
		case KindEllipse:
			p.EllipseLoop(v["rx"], v["ry"])
		case KindClose:
			p.Close()
		case KindAttribute:
			p.Attribute(e.Name, v["value"])
		case KindPercent:
			p.Percent(v["value"])
		}
	}
	return p
}

// Load reads the definition at name from fs and builds its path. The format
// follows the extension: ".hcl" or ".json".
func Load(fs billy.Filesystem, name string) (*curve.Path, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open path definition: %w", err)
	}
	defer f.Close()

	src, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	var def Definition
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".hcl":
		def, err = ParseHCL(name, src)
	case ".json":
		def, err = ParseJSON(src)
	default:
		return nil, fmt.Errorf("%s: %w %q", name, ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return def.Build(), nil
}

// element validates the raw fields of one element. raw holds numbers as
// float64 and the attribute name as a string.
func element(index int, kind string, raw map[string]any) (Element, error) {
	want, ok := fields[kind]
	if !ok {
		return Element{}, fmt.Errorf("element %d: unknown kind %q", index, kind)
	}

	e := Element{Kind: kind, Values: make(map[string]float64, len(want))}
	for _, key := range want {
		value, ok := raw[key]
		if !ok {
			return Element{}, fmt.Errorf("element %d (%s): missing %q", index, kind, key)
		}
		if key == "name" {
			name, ok := value.(string)
			if !ok || name == "" {
				return Element{}, fmt.Errorf("element %d (%s): name must be a non-empty string", index, kind)
			}
			e.Name = name
			continue
		}
		f, ok := value.(float64)
		if !ok {
			return Element{}, fmt.Errorf("element %d (%s): %q must be a number", index, kind, key)
		}
		e.Values[key] = f
	}
	for key := range raw {
		if key != "kind" && !slices.Contains(want, key) {
			return Element{}, fmt.Errorf("element %d (%s): unexpected %q", index, kind, key)
		}
	}

	if kind == KindPercent && (e.Values["value"] < 0 || e.Values["value"] > 1) {
		return Element{}, fmt.Errorf("element %d (percent): value %v outside [0, 1]", index, e.Values["value"])
	}
	return e, nil
}
