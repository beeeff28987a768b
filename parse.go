package tela

import "unicode/utf8"

// maxPendingSequence caps how many bytes the decoder holds while
// waiting for an escape sequence to complete. A prefix that hasn't
// resolved within this many bytes is not a sequence any terminal sends;
// it gets discarded as malformed rather than stalling input forever.
const maxPendingSequence = 16

// MalformedFunc receives byte sequences the decoder could not
// interpret. The sequence has already been discarded; the hook exists
// for diagnostics.
type MalformedFunc func(seq []byte)

// decodeStatus reports the outcome of decoding one input token.
type decodeStatus int

const (
	decodeOK decodeStatus = iota
	decodeNeedMore
	decodeMalformed
)

// Decoder converts raw terminal input bytes into events. It is
// stateful: a read may end mid-sequence, so unresolved prefix bytes are
// carried into the next Feed call.
//
// Handles printable runes (multi-byte UTF-8 included), control bytes,
// CSI and SS3 key sequences, Alt-prefixed keys, and both SGR (1006) and
// legacy X10 mouse reports.
type Decoder struct {
	pending     []byte
	onMalformed MalformedFunc
}

// NewDecoder creates an input decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// OnMalformed installs a hook called with each discarded byte sequence.
func (d *Decoder) OnMalformed(fn MalformedFunc) {
	d.onMalformed = fn
}

// Feed appends data to the decoder and returns all events that are now
// complete. Bytes forming an incomplete trailing sequence are retained
// for the next call.
func (d *Decoder) Feed(data []byte) []Event {
	d.pending = append(d.pending, data...)

	var events []Event
	for len(d.pending) > 0 {
		ev, consumed, status := d.decodeOne(d.pending)
		switch status {
		case decodeNeedMore:
			if len(d.pending) <= maxPendingSequence {
				return events
			}
			// Ambiguity cap exceeded: drop the leading escape byte and
			// let the rest re-decode on its own.
			d.reportMalformed(d.pending[:1])
			d.pending = d.pending[1:]
		case decodeMalformed:
			d.reportMalformed(d.pending[:consumed])
			d.pending = d.pending[consumed:]
		default:
			if ev != nil {
				events = append(events, ev)
			}
			d.pending = d.pending[consumed:]
		}
	}
	d.pending = nil
	return events
}

// Flush resolves any bytes still pending once the caller knows no more
// input is coming soon (read timeout). A lone escape becomes the Escape
// key; an unresolved sequence prefix is re-decoded without its escape
// so the trailing bytes aren't lost.
func (d *Decoder) Flush() []Event {
	if len(d.pending) == 0 {
		return nil
	}

	var events []Event
	if d.pending[0] == 0x1b {
		events = append(events, &KeyEvent{Key: KeyEscape})
		rest := d.pending[1:]
		d.pending = nil
		if len(rest) > 0 {
			events = append(events, d.Feed(rest)...)
			events = append(events, d.Flush()...)
		}
		return events
	}

	// Pending non-escape bytes can only be a truncated UTF-8 rune.
	d.reportMalformed(d.pending)
	d.pending = nil
	return events
}

func (d *Decoder) reportMalformed(seq []byte) {
	if d.onMalformed != nil {
		cp := make([]byte, len(seq))
		copy(cp, seq)
		d.onMalformed(cp)
	}
}

// decodeOne decodes a single token from the front of data.
func (d *Decoder) decodeOne(data []byte) (Event, int, decodeStatus) {
	b := data[0]

	if b == 0x1b {
		return d.decodeEscape(data)
	}

	// Control characters (0x00-0x1F).
	if b < 0x20 {
		return &KeyEvent{Key: controlToKey(b)}, 1, decodeOK
	}

	// DEL is backspace on most terminals.
	if b == 0x7f {
		return &KeyEvent{Key: KeyBackspace}, 1, decodeOK
	}

	// Printable characters, including multi-byte UTF-8.
	if !utf8.FullRune(data) && len(data) < utf8.UTFMax {
		return nil, 0, decodeNeedMore
	}
	r, size := utf8.DecodeRune(data)
	if r == utf8.RuneError && size == 1 {
		return nil, 1, decodeMalformed
	}
	return &KeyEvent{Key: KeyRune, Rune: r}, size, decodeOK
}

// decodeEscape decodes a token beginning with ESC.
func (d *Decoder) decodeEscape(data []byte) (Event, int, decodeStatus) {
	if len(data) < 2 {
		return nil, 0, decodeNeedMore
	}

	switch data[1] {
	case '[':
		if len(data) < 3 {
			return nil, 0, decodeNeedMore
		}
		if data[2] == '<' {
			return decodeMouseSGR(data)
		}
		if data[2] == 'M' {
			return decodeMouseX10(data)
		}
		return decodeCSIKey(data)

	case 'O':
		if len(data) < 3 {
			return nil, 0, decodeNeedMore
		}
		if key := parseSS3(data[2]); key != KeyNone {
			return &KeyEvent{Key: key}, 3, decodeOK
		}
		return &KeyEvent{Key: KeyEscape}, 1, decodeOK

	case 0x1b:
		return &KeyEvent{Key: KeyEscape}, 1, decodeOK

	default:
		// Alt+key combination.
		if data[1] >= 0x20 && data[1] < 0x7f {
			return &KeyEvent{Key: KeyRune, Rune: rune(data[1]), Mod: ModAlt}, 2, decodeOK
		}
		return &KeyEvent{Key: KeyEscape}, 1, decodeOK
	}
}

// controlToKey converts a control character (0x00-0x1F) to a Key.
// Ctrl+A through Ctrl+Z map directly off their byte values; the
// terminal-overloaded bytes (tab, enter, backspace) get their own keys.
func controlToKey(b byte) Key {
	switch b {
	case 0x00:
		return KeyCtrlSpace
	case 0x08: // Ctrl+H doubles as backspace on some terminals
		return KeyBackspace
	case 0x09:
		return KeyTab
	case 0x0d:
		return KeyEnter
	case 0x1b:
		return KeyEscape
	}
	if b >= 0x01 && b <= 0x1a {
		return KeyCtrlA + Key(b-0x01)
	}
	return KeyNone
}

// decodeCSIKey decodes a CSI key sequence starting at data[0] (ESC [).
func decodeCSIKey(data []byte) (Event, int, decodeStatus) {
	var params []int
	currentParam := 0
	hasParam := false
	i := 2

	for i < len(data) {
		b := data[i]

		if b >= '0' && b <= '9' {
			currentParam = currentParam*10 + int(b-'0')
			hasParam = true
			i++
			continue
		}
		if b == ';' {
			params = append(params, currentParam)
			currentParam = 0
			hasParam = false
			i++
			continue
		}
		if b >= 0x40 && b <= 0x7e {
			// Final byte.
			if hasParam {
				params = append(params, currentParam)
			}
			key, mod := lookupCSIKey(params, b)
			if key == KeyNone {
				return nil, i + 1, decodeMalformed
			}
			return &KeyEvent{Key: key, Mod: mod}, i + 1, decodeOK
		}
		return nil, i + 1, decodeMalformed
	}

	return nil, 0, decodeNeedMore
}

// csiTildeKeys maps the first parameter of a CSI ~ sequence to a key.
var csiTildeKeys = map[int]Key{
	1: KeyHome, 2: KeyInsert, 3: KeyDelete, 4: KeyEnd,
	5: KeyPageUp, 6: KeyPageDown,
	11: KeyF1, 12: KeyF2, 13: KeyF3, 14: KeyF4,
	15: KeyF5, 17: KeyF6, 18: KeyF7, 19: KeyF8,
	20: KeyF9, 21: KeyF10, 23: KeyF11, 24: KeyF12,
}

// lookupCSIKey resolves a complete CSI sequence given its parameters
// and final byte.
func lookupCSIKey(params []int, final byte) (Key, Modifier) {
	mod := ModNone
	// xterm encodes modifiers as a second parameter.
	if len(params) >= 2 {
		mod = decodeModifier(params[1])
	}

	switch final {
	case 'A':
		return KeyUp, mod
	case 'B':
		return KeyDown, mod
	case 'C':
		return KeyRight, mod
	case 'D':
		return KeyLeft, mod
	case 'H':
		return KeyHome, mod
	case 'F':
		return KeyEnd, mod
	case 'P':
		return KeyF1, mod
	case 'Q':
		return KeyF2, mod
	case 'R':
		return KeyF3, mod
	case 'S':
		return KeyF4, mod
	case 'Z':
		// Backtab.
		return KeyTab, ModShift
	case '~':
		if len(params) > 0 {
			if key, ok := csiTildeKeys[params[0]]; ok {
				return key, mod
			}
		}
	}
	return KeyNone, ModNone
}

// parseSS3 resolves an SS3 function key sequence by its final byte.
func parseSS3(b byte) Key {
	switch b {
	case 'P':
		return KeyF1
	case 'Q':
		return KeyF2
	case 'R':
		return KeyF3
	case 'S':
		return KeyF4
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'H':
		return KeyHome
	case 'F':
		return KeyEnd
	}
	return KeyNone
}

// decodeModifier decodes the xterm modifier parameter, encoded as
// 1 + (shift ? 1 : 0) + (alt ? 2 : 0) + (ctrl ? 4 : 0).
func decodeModifier(param int) Modifier {
	if param <= 1 {
		return ModNone
	}
	flags := param - 1
	var mod Modifier
	if flags&1 != 0 {
		mod |= ModShift
	}
	if flags&2 != 0 {
		mod |= ModAlt
	}
	if flags&4 != 0 {
		mod |= ModCtrl
	}
	return mod
}

// mouseEventFromBits builds a MouseEvent from the shared button-bit
// encoding used by both SGR and X10 mouse reports:
//
//	bits 0-1: button (0=left, 1=middle, 2=right, 3=release/none)
//	bit 2: shift, bit 3: alt, bit 4: ctrl
//	bit 5: motion
//	bit 6: wheel (low bit selects up/down)
//
// release selects between press and release for non-motion events;
// SGR encodes it in the final byte, X10 as button value 3.
func mouseEventFromBits(bits, x, y int, release bool) *MouseEvent {
	ev := &MouseEvent{X: x, Y: y}

	if bits&4 != 0 {
		ev.Mod |= ModShift
	}
	if bits&8 != 0 {
		ev.Mod |= ModAlt
	}
	if bits&16 != 0 {
		ev.Mod |= ModCtrl
	}

	if bits&64 != 0 {
		if bits&1 != 0 {
			ev.Button = MouseWheelDown
		} else {
			ev.Button = MouseWheelUp
		}
		ev.Action = MousePress // wheel events are instantaneous
		return ev
	}

	switch bits & 3 {
	case 0:
		ev.Button = MouseLeft
	case 1:
		ev.Button = MouseMiddle
	case 2:
		ev.Button = MouseRight
	case 3:
		ev.Button = MouseNone
	}

	switch {
	case bits&32 != 0 && ev.Button == MouseNone:
		ev.Action = MouseMotion
	case bits&32 != 0:
		ev.Action = MouseDrag
	case release || ev.Button == MouseNone:
		ev.Action = MouseRelease
	default:
		ev.Action = MousePress
	}
	return ev
}

// decodeMouseSGR decodes an SGR-1006 mouse report:
// ESC [ < button ; x ; y (M|m), coordinates 1-indexed.
func decodeMouseSGR(data []byte) (Event, int, decodeStatus) {
	i := 3
	var fields [3]int
	stage := 0

	for i < len(data) {
		b := data[i]

		if b >= '0' && b <= '9' {
			fields[stage] = fields[stage]*10 + int(b-'0')
			i++
			continue
		}
		if b == ';' {
			stage++
			if stage > 2 {
				return nil, i + 1, decodeMalformed
			}
			i++
			continue
		}
		if b == 'M' || b == 'm' {
			if stage != 2 {
				return nil, i + 1, decodeMalformed
			}
			ev := mouseEventFromBits(fields[0], fields[1]-1, fields[2]-1, b == 'm')
			return ev, i + 1, decodeOK
		}
		return nil, i + 1, decodeMalformed
	}

	return nil, 0, decodeNeedMore
}

// decodeMouseX10 decodes a legacy X10/1000-mode mouse report:
// ESC [ M b x y, where all three payload bytes are offset by 32 and
// coordinates additionally 1-indexed. Coordinates past 223 can't be
// represented in this encoding; SGR mode exists for that reason.
func decodeMouseX10(data []byte) (Event, int, decodeStatus) {
	if len(data) < 6 {
		return nil, 0, decodeNeedMore
	}

	bits := int(data[3]) - 32
	x := int(data[4]) - 33
	y := int(data[5]) - 33
	if bits < 0 || x < 0 || y < 0 {
		return nil, 6, decodeMalformed
	}

	ev := mouseEventFromBits(bits, x, y, bits&3 == 3)
	return ev, 6, decodeOK
}
