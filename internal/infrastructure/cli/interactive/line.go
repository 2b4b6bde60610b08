package interactive

import "unicode/utf8"

// lineEditor mirrors what the user typed since the last Enter so the command
// can be checked before it reaches the shell. Keys whose effect on the
// shell's own line buffer cannot be known (arrows, tab completion, history
// recall) mark the line as unknown.
type lineEditor struct {
	buf     []byte
	unknown bool
	inEsc   bool
}

const (
	keyCtrlC     = 0x03
	keyCtrlG     = 0x07
	keyBackspace = 0x08
	keyTab       = 0x09
	keyCtrlU     = 0x15
	keyEscape    = 0x1b
	keyDelete    = 0x7f
)

func (l *lineEditor) feed(b byte) {
	if l.inEsc {
		// CSI and SS3 sequences end with a byte in 0x40..0x7e other than '[' or 'O'.
		if b >= 0x40 && b <= 0x7e && b != '[' && b != 'O' {
			l.inEsc = false
		}
		return
	}

	switch {
	case b == keyEscape:
		l.inEsc = true
		l.unknown = true
	case b == keyCtrlC || b == keyCtrlU:
		l.reset()
	case b == keyDelete || b == keyBackspace:
		l.backspace()
	case b == keyTab || b < 0x20:
		l.unknown = true
	default:
		l.buf = append(l.buf, b)
	}
}

func (l *lineEditor) insert(text string) {
	l.buf = append(l.buf, text...)
}

func (l *lineEditor) backspace() {
	if len(l.buf) == 0 {
		return
	}
	_, size := utf8.DecodeLastRune(l.buf)
	l.buf = l.buf[:len(l.buf)-size]
}

// text returns the tracked line and whether it is trustworthy.
func (l *lineEditor) text() (string, bool) {
	return string(l.buf), !l.unknown
}

func (l *lineEditor) reset() {
	l.buf = l.buf[:0]
	l.unknown = false
	l.inEsc = false
}
