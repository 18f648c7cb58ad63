package ledlink

import "fmt"

// Kind is the leading command byte of an outbound frame
type Kind byte

const (
	KindIdle       Kind = 0 // No-op, nothing is sent
	KindSetPattern Kind = 1 // Pattern id plus two colors, no reply
	KindQueryState Kind = 2 // Single byte, device answers with a ReplySize frame
)

func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindSetPattern:
		return "set-pattern"
	case KindQueryState:
		return "query-state"
	default:
		return fmt.Sprintf("unknown(%d)", byte(k))
	}
}

// Frame sizes on the wire
const (
	SetPatternSize = 26 // kind + pattern + 2 colors
	QueryStateSize = 1  // kind only
	ReplySize      = 26 // pattern + 2 colors + reserved byte
)

// SetPattern frame layout
const (
	setOffsetKind    = 0
	setOffsetPattern = 1
	setOffsetColorA  = 2
	setOffsetColorB  = setOffsetColorA + ColorSize // 14
)

// Reply frame layout. The byte at replyOffsetReserved is never interpreted.
const (
	replyOffsetPattern  = 0
	replyOffsetColorA   = 1
	replyOffsetColorB   = replyOffsetColorA + ColorSize // 13
	replyOffsetReserved = replyOffsetColorB + ColorSize // 25
)

// Command is one request for the exchange
type Command struct {
	Kind    Kind
	Pattern byte
	Colors  [2]Color
}

// SetPatternFrame is the payload of a KindSetPattern command
type SetPatternFrame struct {
	Pattern byte
	A       Color
	B       Color
}

// MarshalBinary encodes the frame as kind, pattern, color A, color B.
func (f SetPatternFrame) MarshalBinary() ([]byte, error) {
	b := f.encode()
	return b[:], nil
}

func (f SetPatternFrame) encode() [SetPatternSize]byte {
	var out [SetPatternSize]byte
	out[setOffsetKind] = byte(KindSetPattern)
	out[setOffsetPattern] = f.Pattern
	a := EncodeColor(f.A)
	b := EncodeColor(f.B)
	copy(out[setOffsetColorA:setOffsetColorB], a[:])
	copy(out[setOffsetColorB:], b[:])
	return out
}

// State is the decoded device reply to a KindQueryState command
type State struct {
	Pattern byte  `json:"pattern" yaml:"pattern"`
	A       Color `json:"color_a" yaml:"color_a"`
	B       Color `json:"color_b" yaml:"color_b"`
}

// decodeReply interprets a reply frame; the reserved trailing byte is ignored.
func decodeReply(buf [ReplySize]byte) State {
	return State{
		Pattern: buf[replyOffsetPattern],
		A:       DecodeColor(buf[replyOffsetColorA:replyOffsetColorB]),
		B:       DecodeColor(buf[replyOffsetColorB:replyOffsetReserved]),
	}
}

// EncodeReply builds the frame a device sends back for s. The reserved byte is zero.
// Used by device simulators and tests.
func EncodeReply(s State) [ReplySize]byte {
	var out [ReplySize]byte
	out[replyOffsetPattern] = s.Pattern
	a := EncodeColor(s.A)
	b := EncodeColor(s.B)
	copy(out[replyOffsetColorA:replyOffsetColorB], a[:])
	copy(out[replyOffsetColorB:replyOffsetReserved], b[:])
	return out
}
