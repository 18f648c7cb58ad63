package invocation

import (
	"testing"

	"github.com/allbin/ledlink"
)

func TestParseDefaults(t *testing.T) {
	inv := Parse(nil)
	if inv.SerialNumber != "" {
		t.Errorf("SerialNumber = %q, want empty", inv.SerialNumber)
	}
	want := ledlink.Command{Kind: ledlink.KindIdle}
	if inv.Command != want {
		t.Errorf("Command = %+v, want %+v", inv.Command, want)
	}
}

func TestParseSetPattern(t *testing.T) {
	inv := Parse([]string{"E66138528350A22B", "1", "3", "0.1", "0.2", "0.3", "0.4", "0.5", "0.6"})

	if inv.SerialNumber != "E66138528350A22B" {
		t.Errorf("SerialNumber = %q", inv.SerialNumber)
	}
	want := ledlink.Command{
		Kind:    ledlink.KindSetPattern,
		Pattern: 3,
		Colors: [2]ledlink.Color{
			{H: 0.1, S: 0.2, V: 0.3},
			{H: 0.4, S: 0.5, V: 0.6},
		},
	}
	if inv.Command != want {
		t.Errorf("Command = %+v, want %+v", inv.Command, want)
	}
}

func TestParseByteFields(t *testing.T) {
	tests := []struct {
		name    string
		kind    string
		pattern string
		want    ledlink.Command
	}{
		{"query", "2", "", ledlink.Command{Kind: ledlink.KindQueryState}},
		{"max pattern", "1", "255", ledlink.Command{Kind: ledlink.KindSetPattern, Pattern: 255}},
		{"pattern overflow", "1", "256", ledlink.Command{Kind: ledlink.KindSetPattern}},
		{"negative kind", "-1", "4", ledlink.Command{Pattern: 4}},
		{"plus sign", "+2", "+9", ledlink.Command{Kind: ledlink.KindQueryState, Pattern: 9}},
		{"hex rejected", "0x01", "7", ledlink.Command{Pattern: 7}},
		{"garbage", "set", "x", ledlink.Command{}},
		{"unknown kind kept", "9", "1", ledlink.Command{Kind: 9, Pattern: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse([]string{"SN", tt.kind, tt.pattern}).Command
			if got != tt.want {
				t.Errorf("Command = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseUnit(t *testing.T) {
	tests := []struct {
		in   string
		want float32
	}{
		{"0.5", 0.5},
		{"1", 1},
		{"0", 0},
		{"1.5", 1},
		{"-0.2", 0},
		{"abc", 0},
		{"", 0},
		{"NaN", 0},
		{"inf", 1},
		{"-inf", 0},
		{"1e400", 1},
		{" 0.5", 0},
	}

	for _, tt := range tests {
		if got := ParseUnit(tt.in); got != tt.want {
			t.Errorf("ParseUnit(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseColorsPartialAndExtra(t *testing.T) {
	partial := Parse([]string{"SN", "1", "0", "0.9", "bad", "2"}).Command.Colors
	want := [2]ledlink.Color{{H: 0.9, S: 0, V: 1}, {}}
	if partial != want {
		t.Errorf("partial colors = %+v, want %+v", partial, want)
	}

	extra := Parse([]string{"SN", "1", "0", "0.1", "0.1", "0.1", "0.1", "0.1", "0.1", "0.9", "0.9"}).Command.Colors
	for i, c := range extra {
		if c != (ledlink.Color{H: 0.1, S: 0.1, V: 0.1}) {
			t.Errorf("color %d = %+v, extra values leaked in", i, c)
		}
	}
}

func TestColorsFromValues(t *testing.T) {
	got := ColorsFromValues([]float32{0.25, 0.5})
	want := [2]ledlink.Color{{H: 0.25, S: 0.5}, {}}
	if got != want {
		t.Errorf("ColorsFromValues() = %+v, want %+v", got, want)
	}
}
