package pathdef

import (
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arcHCL = `
start {
  x = 0
  y = 0
}

element "attribute" {
  name  = "opacity"
  value = 1
}

element "line" {
  x = 10
  y = 0
}

element "percent" {
  value = 0.25
}

element "line" {
  x = 10
  y = 10
}

element "attribute" {
  name  = "opacity"
  value = 0
}
`

const arcJSON = `{
  "start": {"x": 0, "y": 0},
  "elements": [
    {"kind": "attribute", "name": "opacity", "value": 1},
    {"kind": "line", "x": 10, "y": 0},
    {"kind": "percent", "value": 0.25},
    {"kind": "line", "x": 10, "y": 10},
    {"kind": "attribute", "name": "opacity", "value": 0}
  ]
}`

func TestLoad(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "paths/arc.hcl", []byte(arcHCL), 0o644))
	require.NoError(t, util.WriteFile(fs, "paths/arc.json", []byte(arcJSON), 0o644))

	for _, name := range []string{"paths/arc.hcl", "paths/arc.json"} {
		t.Run(name, func(t *testing.T) {
			p, err := Load(fs, name)
			require.NoError(t, err)

			assert.InDelta(t, 20, p.Length(), 1e-9)
			assert.Equal(t, []string{"opacity"}, p.Attributes())

			// The first segment only takes a quarter of the parameter range.
			corner := p.PointAt(0.25)
			assert.InDelta(t, 10, corner.X, 1e-9)
			assert.InDelta(t, 0, corner.Y, 1e-9)

			assert.InDelta(t, 1, p.AttributeAt("opacity", 0), 1e-9)
			assert.InDelta(t, 0, p.AttributeAt("opacity", 1), 1e-9)
		})
	}
}

func TestLoadEllipse(t *testing.T) {
	fs := memfs.New()
	src := `{"start": {"x": 20, "y": 2}, "elements": [{"kind": "ellipse", "rx": 10, "ry": 4}]}`
	require.NoError(t, util.WriteFile(fs, "ring.json", []byte(src), 0o644))

	p, err := Load(fs, "ring.json")
	require.NoError(t, err)
	assert.True(t, p.Closed())

	bottom := p.PointAt(0.5)
	assert.InDelta(t, 20, bottom.X, 0.1)
	assert.InDelta(t, 10, bottom.Y, 0.1)
}

func TestLoadErrors(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "path.yaml", []byte("start: {}"), 0o644))

	_, err := Load(fs, "missing.hcl")
	assert.Error(t, err)

	_, err = Load(fs, "path.yaml")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `{"elements": [`, "invalid json"},
		{"top level", `[1, 2]`, "top level"},
		{"unknown kind", `{"elements": [{"kind": "spiral"}]}`, `unknown kind "spiral"`},
		{"missing field", `{"elements": [{"kind": "line", "x": 1}]}`, `missing "y"`},
		{"not a number", `{"elements": [{"kind": "line", "x": 1, "y": "2"}]}`, `"y" must be a number`},
		{"extra field", `{"elements": [{"kind": "close", "x": 1}]}`, `unexpected "x"`},
		{"bad percent", `{"elements": [{"kind": "percent", "value": 2}]}`, "outside [0, 1]"},
		{"empty name", `{"elements": [{"kind": "attribute", "name": "", "value": 1}]}`, "non-empty string"},
		{"start", `{"start": {"x": "left"}}`, "must be a number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseJSON([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseHCLErrors(t *testing.T) {
	_, err := ParseHCL("bad.hcl", []byte(`element "quad" {
  cx = 1
  cy = 2
  x  = 3
}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing "y"`)

	_, err = ParseHCL("bad.hcl", []byte(`element "line" {
  x = "left"
  y = 0
}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"x" must be a number`)

	_, err = ParseHCL("bad.hcl", []byte(`element {`))
	assert.Error(t, err)
}

func TestBuildWithoutStart(t *testing.T) {
	def, err := ParseHCL("line.hcl", []byte(`element "line" {
  x = 3
  y = 4
}`))
	require.NoError(t, err)
	require.Len(t, def.Elements, 1)
	assert.Equal(t, KindLine, def.Elements[0].Kind)
	assert.InDelta(t, 5, def.Build().Length(), 1e-9)
}
