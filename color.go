package ledlink

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ColorSize is the encoded size of a Color: three little-endian float32 channels.
const ColorSize = 12

// Channel offsets within an encoded Color
const (
	colorOffsetH = 0
	colorOffsetS = 4
	colorOffsetV = 8
)

// Color is a hue/saturation/value triple as understood by the device.
// Channels are expected in [0, 1] but the codec does not enforce it.
type Color struct {
	H float32 `json:"h" yaml:"h"`
	S float32 `json:"s" yaml:"s"`
	V float32 `json:"v" yaml:"v"`
}

// EncodeColor serializes c as three little-endian IEEE-754 float32 values in H, S, V order.
func EncodeColor(c Color) [ColorSize]byte {
	var out [ColorSize]byte
	binary.LittleEndian.PutUint32(out[colorOffsetH:], math.Float32bits(c.H))
	binary.LittleEndian.PutUint32(out[colorOffsetS:], math.Float32bits(c.S))
	binary.LittleEndian.PutUint32(out[colorOffsetV:], math.Float32bits(c.V))
	return out
}

// DecodeColor reassembles a Color from the first ColorSize bytes of b.
// Callers pass a fixed window of a frame; b must hold at least ColorSize bytes.
func DecodeColor(b []byte) Color {
	_ = b[ColorSize-1]
	return Color{
		H: math.Float32frombits(binary.LittleEndian.Uint32(b[colorOffsetH:])),
		S: math.Float32frombits(binary.LittleEndian.Uint32(b[colorOffsetS:])),
		V: math.Float32frombits(binary.LittleEndian.Uint32(b[colorOffsetV:])),
	}
}

// Clamp limits every channel to [0, 1]. NaN becomes 0.
func (c Color) Clamp() Color {
	return Color{H: clampUnit(c.H), S: clampUnit(c.S), V: clampUnit(c.V)}
}

func clampUnit(v float32) float32 {
	switch {
	case v != v:
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// String formats c as [h, s, v] using the shortest float32 representation
func (c Color) String() string {
	return "[" + formatChannel(c.H) + ", " + formatChannel(c.S) + ", " + formatChannel(c.V) + "]"
}

func formatChannel(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// Spellings used in JSON for channels that are not finite numbers
const (
	jsonNaN    = "NaN"
	jsonPosInf = "+Inf"
	jsonNegInf = "-Inf"
)

// MarshalJSON writes finite channels as numbers and NaN or infinities as
// the strings "NaN", "+Inf" and "-Inf". Reply bytes decode to arbitrary
// float32 bit patterns, so a device can report either.
func (c Color) MarshalJSON() ([]byte, error) {
	b := []byte(`{"h":`)
	b = appendChannelJSON(b, c.H)
	b = append(b, `,"s":`...)
	b = appendChannelJSON(b, c.S)
	b = append(b, `,"v":`...)
	b = appendChannelJSON(b, c.V)
	return append(b, '}'), nil
}

func appendChannelJSON(b []byte, v float32) []byte {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return strconv.AppendQuote(b, jsonNaN)
	case math.IsInf(f, 1):
		return strconv.AppendQuote(b, jsonPosInf)
	case math.IsInf(f, -1):
		return strconv.AppendQuote(b, jsonNegInf)
	default:
		return strconv.AppendFloat(b, f, 'g', -1, 32)
	}
}

// UnmarshalJSON accepts the output of MarshalJSON
func (c *Color) UnmarshalJSON(data []byte) error {
	var raw struct {
		H json.RawMessage `json:"h"`
		S json.RawMessage `json:"s"`
		V json.RawMessage `json:"v"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out Color
	for _, ch := range []struct {
		name string
		src  json.RawMessage
		dst  *float32
	}{
		{"h", raw.H, &out.H},
		{"s", raw.S, &out.S},
		{"v", raw.V, &out.V},
	} {
		v, err := parseChannelJSON(ch.src)
		if err != nil {
			return fmt.Errorf("color channel %s: %w", ch.name, err)
		}
		*ch.dst = v
	}
	*c = out
	return nil
}

func parseChannelJSON(raw json.RawMessage) (float32, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, err
		}
		switch s {
		case jsonNaN:
			return float32(math.NaN()), nil
		case jsonPosInf:
			return float32(math.Inf(1)), nil
		case jsonNegInf:
			return float32(math.Inf(-1)), nil
		default:
			return 0, fmt.Errorf("unexpected value %q", s)
		}
	}
	f, err := strconv.ParseFloat(string(raw), 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}
