package ledlink

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"
)

func TestEncodeColor(t *testing.T) {
	got := EncodeColor(Color{H: 0.5, S: 1.0, V: 0})
	want := []byte{
		0x00, 0x00, 0x00, 0x3f,
		0x00, 0x00, 0x80, 0x3f,
		0x00, 0x00, 0x00, 0x00,
	}
	if !bytes.Equal(got[:], want) {
		t.Errorf("EncodeColor() = % x, want % x", got, want)
	}
}

func TestColorRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		color Color
	}{
		{"zero", Color{}},
		{"unit", Color{H: 1, S: 1, V: 1}},
		{"fractions", Color{H: 0.1, S: 0.2, V: 0.3}},
		{"out of range", Color{H: -4.5, S: 1e30, V: 12345.678}},
		{"extremes", Color{H: math.MaxFloat32, S: math.SmallestNonzeroFloat32, V: -math.MaxFloat32}},
		{"infinities", Color{H: float32(math.Inf(1)), S: float32(math.Inf(-1)), V: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc := EncodeColor(tt.color)
			got := DecodeColor(enc[:])
			if got != tt.color {
				t.Errorf("DecodeColor(EncodeColor(%v)) = %v", tt.color, got)
			}
		})
	}
}

func TestColorRoundTripPreservesBits(t *testing.T) {
	nan := math.Float32frombits(0x7fc00001)
	enc := EncodeColor(Color{H: nan, S: float32(math.Copysign(0, -1)), V: 0})
	got := DecodeColor(enc[:])

	if math.Float32bits(got.H) != 0x7fc00001 {
		t.Errorf("NaN payload lost: %#x", math.Float32bits(got.H))
	}
	if math.Float32bits(got.S) != 0x80000000 {
		t.Errorf("negative zero lost: %#x", math.Float32bits(got.S))
	}
}

func TestDecodeColorUsesFirstTwelveBytes(t *testing.T) {
	enc := EncodeColor(Color{H: 0.25, S: 0.5, V: 0.75})
	buf := append(enc[:], 0xff, 0xff, 0xff, 0xff)

	got := DecodeColor(buf)
	want := Color{H: 0.25, S: 0.5, V: 0.75}
	if got != want {
		t.Errorf("DecodeColor() = %v, want %v", got, want)
	}
}

func TestColorClamp(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		name  string
		input Color
		want  Color
	}{
		{"in range", Color{H: 0.1, S: 0.5, V: 1}, Color{H: 0.1, S: 0.5, V: 1}},
		{"below", Color{H: -1, S: -0.001, V: 0}, Color{H: 0, S: 0, V: 0}},
		{"above", Color{H: 1.5, S: 100, V: 1}, Color{H: 1, S: 1, V: 1}},
		{"nan", Color{H: nan, S: 0.3, V: nan}, Color{H: 0, S: 0.3, V: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.Clamp(); got != tt.want {
				t.Errorf("Clamp() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEncodeColorDoesNotClamp(t *testing.T) {
	enc := EncodeColor(Color{H: 2, S: -1, V: 0})
	got := DecodeColor(enc[:])
	if got.H != 2 || got.S != -1 {
		t.Errorf("codec altered out-of-range values: %v", got)
	}
}

func TestColorString(t *testing.T) {
	tests := []struct {
		c    Color
		want string
	}{
		{Color{H: 0.5, S: 1, V: 0.25}, "[0.5, 1, 0.25]"},
		{Color{H: 0.1, S: 0.2, V: 0.3}, "[0.1, 0.2, 0.3]"},
		{Color{}, "[0, 0, 0]"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestColorJSON(t *testing.T) {
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	tests := []struct {
		name  string
		color Color
		want  string
	}{
		{"finite", Color{H: 0.5, S: 1, V: 0.25}, `{"h":0.5,"s":1,"v":0.25}`},
		{"shortest float32", Color{H: 0.1}, `{"h":0.1,"s":0,"v":0}`},
		{"not finite", Color{H: nan, S: inf, V: -inf}, `{"h":"NaN","s":"+Inf","v":"-Inf"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.color)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}

			var back Color
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			// Compare encoded bits so NaN channels compare equal
			if EncodeColor(back) != EncodeColor(tt.color) {
				t.Errorf("Unmarshal() = %v, want %v", back, tt.color)
			}
		})
	}
}

func TestColorUnmarshalJSONRejectsUnknownString(t *testing.T) {
	var c Color
	if err := json.Unmarshal([]byte(`{"h":"red","s":0,"v":0}`), &c); err == nil {
		t.Errorf("Unmarshal accepted a non-numeric channel: %v", c)
	}
}
