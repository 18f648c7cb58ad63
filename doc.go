// Package ledlink implements the host side of a small binary protocol for
// addressable lighting controllers attached over USB serial.
//
// The device accepts two commands. SetPattern carries a pattern id and two
// HSV colors and is fire-and-forget. QueryState asks the device for its
// current pattern and colors; the reply is a fixed 26-byte frame.
//
// # Wire Format
//
// Colors are three little-endian IEEE-754 float32 values (H, S, V):
//
//	SetPattern  [0x01][pattern][A.h A.s A.v][B.h B.s B.v]   26 bytes
//	QueryState  [0x02]                                      1 byte
//	Reply       [pattern][A.h A.s A.v][B.h B.s B.v][rsvd]   26 bytes
//
// # Basic Usage
//
//	port, err := serial.Open("/dev/ttyACM0", serial.WithFlowControl(serial.FlowControlRTSCTS))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer port.Close()
//
//	x, _ := ledlink.NewExchanger()
//	res, err := x.Execute(ledlink.Command{Kind: ledlink.KindQueryState}, port)
//	switch {
//	case errors.Is(err, ledlink.ErrTimeout):
//	    // no reply within the deadline
//	case errors.Is(err, ledlink.ErrReadFailed):
//	    // reply was pending but the read failed
//	case err == nil:
//	    fmt.Println(res.State.Pattern, res.State.A, res.State.B)
//	}
//
// # Query Handshake
//
// A query flushes stale input, drops RTS, writes the command byte, raises
// RTS and then polls the input queue every millisecond until a full reply
// is buffered or ten seconds have passed. Failures while preparing the
// handshake are ignored; only the final read and the deadline are reported.
//
// Colors are not range checked here. Use Color.Clamp at the point where user
// input enters the program.
package ledlink
