// Package invocation parses the positional argument surface
// <serial> [kind] [pattern] [h1 s1 v1 h2 s2 v2] into a ledlink command.
//
// Parsing never fails: anything missing or malformed falls back to zero.
package invocation

import (
	"errors"
	"strconv"
	"strings"

	"github.com/allbin/ledlink"
)

// maxColorValues is the number of color channels the surface accepts; more are ignored
const maxColorValues = 6

// Invocation is one parsed command line
type Invocation struct {
	SerialNumber string
	Command      ledlink.Command
}

// Parse reads args without the program name
func Parse(args []string) Invocation {
	inv := Invocation{
		SerialNumber: arg(args, 0),
		Command: ledlink.Command{
			Kind:    ledlink.Kind(parseByte(arg(args, 1))),
			Pattern: parseByte(arg(args, 2)),
		},
	}

	var values [maxColorValues]float32
	if len(args) > 3 {
		for i, s := range args[3:] {
			if i >= maxColorValues {
				break
			}
			values[i] = ParseUnit(s)
		}
	}
	inv.Command.Colors = ColorsFromValues(values[:])
	return inv
}

// ColorsFromValues fills Color A then Color B from up to six channel values.
// Missing channels stay 0.
func ColorsFromValues(values []float32) [2]ledlink.Color {
	var v [maxColorValues]float32
	copy(v[:], values)
	return [2]ledlink.Color{
		{H: v[0], S: v[1], V: v[2]},
		{H: v[3], S: v[4], V: v[5]},
	}
}

// ParseUnit parses a channel value and clamps it to [0, 1].
// Malformed input and NaN become 0; out of range magnitudes saturate.
func ParseUnit(s string) float32 {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return ledlink.Color{H: float32(f)}.Clamp().H
}

// parseByte reads a base-10 u8 with an optional leading '+'; anything else is 0
func parseByte(s string) byte {
	n, err := strconv.ParseUint(strings.TrimPrefix(s, "+"), 10, 8)
	if err != nil {
		return 0
	}
	return byte(n)
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
