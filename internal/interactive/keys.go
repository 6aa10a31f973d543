package interactive

import "unicode/utf8"

// KeyType identifies a decoded key press.
type KeyType int

// Key types produced by DecodeKeys.
const (
	KeyRune KeyType = iota
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyCtrlC
	KeyCtrlD
	KeyCtrlU
)

// Key is one key press. Rune is only set for KeyRune.
type Key struct {
	Type KeyType
	Rune rune
}

// RuneKey is shorthand for a printable key press.
func RuneKey(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// DecodeKeys turns bytes read from a terminal in raw mode into key presses.
// Unknown control bytes and escape sequences are dropped.
func DecodeKeys(buf []byte) []Key {
	var keys []Key
	for len(buf) > 0 {
		b := buf[0]
		switch b {
		case '\r', '\n':
			keys = append(keys, Key{Type: KeyEnter})
		case 0x7f, 0x08:
			keys = append(keys, Key{Type: KeyBackspace})
		case '\t':
			keys = append(keys, Key{Type: KeyTab})
		case 0x03:
			keys = append(keys, Key{Type: KeyCtrlC})
		case 0x04:
			keys = append(keys, Key{Type: KeyCtrlD})
		case 0x15:
			keys = append(keys, Key{Type: KeyCtrlU})
		case 0x1b:
			key, n := decodeEscape(buf)
			if key != nil {
				keys = append(keys, *key)
			}
			buf = buf[n:]
			continue
		default:
			if b < 0x20 {
				break
			}
			r, size := utf8.DecodeRune(buf)
			if r != utf8.RuneError {
				keys = append(keys, RuneKey(r))
			}
			buf = buf[size:]
			continue
		}
		buf = buf[1:]
	}
	return keys
}

// decodeEscape decodes a sequence starting with ESC and returns the key (nil
// for an unsupported sequence) and the number of bytes consumed.
func decodeEscape(buf []byte) (*Key, int) {
	if len(buf) < 3 || (buf[1] != '[' && buf[1] != 'O') {
		return &Key{Type: KeyEscape}, 1
	}

	switch buf[2] {
	case 'A':
		return &Key{Type: KeyUp}, 3
	case 'B':
		return &Key{Type: KeyDown}, 3
	case 'C':
		return &Key{Type: KeyRight}, 3
	case 'D':
		return &Key{Type: KeyLeft}, 3
	}

	if len(buf) >= 4 && buf[3] == '~' {
		switch buf[2] {
		case '5':
			return &Key{Type: KeyPageUp}, 4
		case '6':
			return &Key{Type: KeyPageDown}, 4
		}
		return nil, 4
	}

	// Skip the rest of a CSI sequence up to its final byte.
	n := 2
	for n < len(buf) && (buf[n] < 0x40 || buf[n] > 0x7e) {
		n++
	}
	if n < len(buf) {
		n++
	}
	return nil, n
}
