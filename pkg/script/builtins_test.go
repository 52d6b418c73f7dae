package script

import (
	"testing"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/burl/pkg/revolve"
)

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			"keyword",
			"(box :width 10)",
			`(box "__kw_width" 10)`,
		},
		{
			"kebab keyword",
			"(solve sk :max-iterations 200)",
			`(solve sk "__kw_max-iterations" 200)`,
		},
		{
			"kebab identifier",
			"(def my-box (box))",
			"(def my_box (box))",
		},
		{
			"semicolon comment",
			"(box) ; a unit cube",
			"(box) // a unit cube",
		},
		{
			"double semicolon",
			";; header",
			"// header",
		},
		{
			"string untouched",
			`(emit "my-name :width" (box))`,
			`(emit "my-name :width" (box))`,
		},
		{
			"assignment preserved",
			"x := 10",
			"x := 10",
		},
		{
			"subtraction preserved",
			"(- 5 3)",
			"(- 5 3)",
		},
		{
			"escaped quote in string",
			`(emit "a \" b" (box))`,
			`(emit "a \" b" (box))`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.in); got != tt.want {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsKW(t *testing.T) {
	if name, ok := isKW(&zygo.SexpStr{S: "__kw_angle"}); !ok || name != "angle" {
		t.Errorf("got %q, %v", name, ok)
	}
	if _, ok := isKW(&zygo.SexpStr{S: "plain"}); ok {
		t.Error("plain string recognized as keyword")
	}
	if _, ok := isKW(&zygo.SexpInt{Val: 3}); ok {
		t.Error("integer recognized as keyword")
	}
}

func TestParseArgs(t *testing.T) {
	args := []zygo.Sexp{
		&zygo.SexpInt{Val: 1},
		&zygo.SexpStr{S: "__kw_width"},
		&zygo.SexpInt{Val: 10},
		&zygo.SexpStr{S: "plain"},
		&zygo.SexpStr{S: "__kw_tail"},
	}
	pa := parseArgs(args)

	if len(pa.positional) != 2 {
		t.Fatalf("got %d positional args, want 2", len(pa.positional))
	}
	if v, ok := pa.kw["width"]; !ok || v.(*zygo.SexpInt).Val != 10 {
		t.Errorf("width = %v", v)
	}
	// A trailing keyword with no value maps to null.
	if v, ok := pa.kw["tail"]; !ok || v != zygo.SexpNull {
		t.Errorf("tail = %v", v)
	}
}

func TestToAxis(t *testing.T) {
	tests := []struct {
		in      string
		want    revolve.Axis
		wantErr bool
	}{
		{"__kw_x", revolve.AxisX, false},
		{"__kw_y", revolve.AxisY, false},
		{"y", revolve.AxisY, false},
		{"__kw_z", 0, true},
	}
	for _, tt := range tests {
		got, err := toAxis(&zygo.SexpStr{S: tt.in})
		if (err != nil) != tt.wantErr {
			t.Errorf("toAxis(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("toAxis(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToFloat64(t *testing.T) {
	if v, err := toFloat64(&zygo.SexpInt{Val: 3}); err != nil || v != 3 {
		t.Errorf("got %v, %v", v, err)
	}
	if v, err := toFloat64(&zygo.SexpFloat{Val: 2.5}); err != nil || v != 2.5 {
		t.Errorf("got %v, %v", v, err)
	}
	if _, err := toFloat64(&zygo.SexpStr{S: "no"}); err == nil {
		t.Error("expected an error for a string")
	}
}
