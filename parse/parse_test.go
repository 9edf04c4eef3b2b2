package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/haarprep/ir"
)

func TestParseJSONOK(t *testing.T) {
	tests := []struct {
		in   string
		want *ir.Node
	}{
		{in: `null`, want: ir.Null()},
		{in: `true`, want: ir.FromBool(true)},
		{in: `22`, want: ir.FromInt(22)},
		{in: `-0.035`, want: ir.FromFloat(-0.035)},
		{in: `1e14`, want: ir.FromFloat(1e14)},
		{in: `"1 2 3"`, want: ir.FromString("1 2 3")},
		{in: `[]`, want: ir.FromSlice(nil)},
		{in: `{}`, want: ir.FromKeyVals(nil)},
		{
			in: `{"b": [1, "x"], "a": {"_": []}}`,
			want: ir.FromKeyVals([]ir.KeyVal{
				{Key: "b", Val: ir.FromSlice([]*ir.Node{ir.FromInt(1), ir.FromString("x")})},
				{Key: "a", Val: ir.FromKeyVals([]ir.KeyVal{{Key: "_", Val: ir.FromSlice(nil)}})},
			}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, tt.want) {
				t.Errorf("Parse(%s) mismatch", tt.in)
			}
		})
	}
}

func TestParseKeepsKeyOrder(t *testing.T) {
	node, err := Parse([]byte(`{"z": 1, "a": 2, "m": 3}`))
	if err != nil {
		t.Fatal(err)
	}
	var keys []string
	for _, f := range node.Fields {
		keys = append(keys, f.String)
	}
	if got := strings.Join(keys, ","); got != "z,a,m" {
		t.Errorf("got key order %s", got)
	}
	if p := node.Values[1].Path(); p != "$.a" {
		t.Errorf("path %q", p)
	}
}

func TestParseMalformed(t *testing.T) {
	for _, in := range []string{
		``,
		`   `,
		`{`,
		`{"a" 1}`,
		`[1,]`,
		`{"a": 1} {"b": 2}`,
		`[1] x`,
		`{1: 2}`,
	} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse([]byte(in))
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformedInput", in, err)
			}
		})
	}
}

func TestParseMaxDepth(t *testing.T) {
	deep := strings.Repeat("[", 20) + strings.Repeat("]", 20)
	if _, err := Parse([]byte(deep), MaxDepth(20)); err != nil {
		t.Fatalf("depth 20 with limit 20: %v", err)
	}
	_, err := Parse([]byte(deep), MaxDepth(19))
	if !errors.Is(err, ErrTooDeep) {
		t.Errorf("got %v, want ErrTooDeep", err)
	}
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("ErrTooDeep should be a malformed input error")
	}
}

func TestParseYAML(t *testing.T) {
	in := `
stages:
  - stageThreshold: "-0.75"
    maxWeakCount: 3
features: []
`
	node, err := Parse([]byte(in), ParseYAML())
	if err != nil {
		t.Fatal(err)
	}
	if node.Type != ir.ObjectType || node.Fields[0].String != "stages" {
		t.Fatalf("unexpected root %v", node.Type)
	}
	st := node.Values[0].Values[0]
	if v := ir.Get(st, "stageThreshold"); v == nil || v.Type != ir.StringType || v.String != "-0.75" {
		t.Errorf("stageThreshold = %+v", v)
	}
	if v := ir.Get(st, "maxWeakCount"); v == nil {
		t.Errorf("missing maxWeakCount")
	} else if i, ok := v.Int(); !ok || i != 3 {
		t.Errorf("maxWeakCount = %v", i)
	}
	if _, err := Parse([]byte("a: [1, 2"), ParseYAML()); !errors.Is(err, ErrMalformedInput) {
		t.Errorf("expected malformed yaml error, got %v", err)
	}
}

func TestParseDuplicateKeys(t *testing.T) {
	tests := []struct {
		name string
		in   string
		opts []ParseOption
	}{
		{name: "json", in: `{"_": [1], "k": "v", "_": [2]}`},
		{name: "yaml", in: "_: [1]\nk: v\n_: [2]\n", opts: []ParseOption{ParseYAML()}},
	}
	want := ir.FromKeyVals([]ir.KeyVal{
		{Key: "_", Val: ir.FromSlice([]*ir.Node{ir.FromInt(2)})},
		{Key: "k", Val: ir.FromString("v")},
	})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.in), tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if !ir.Equal(got, want) {
				t.Errorf("last value should win and keep the first position, got %d fields", len(got.Fields))
			}
			if p := got.Values[0].Path(); p != "$._" {
				t.Errorf("path %q", p)
			}
		})
	}
}
