package printer

import (
	"bytes"
	"strings"
)

// ESC/POS control bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

// Alignment values for SetAlign
const (
	AlignLeft   = 0
	AlignCenter = 1
	AlignRight  = 2
)

// Character sizes for SetSize
const (
	SizeNormal = 0x00
	SizeDouble = 0x11
)

// Document accumulates an ESC/POS byte stream.
// Width is the paper width in characters: 32 for 58mm, 48 for 80mm.
type Document struct {
	buf   bytes.Buffer
	width int
}

// NewDocument starts a document with the printer initialise command.
func NewDocument(width int) *Document {
	if width <= 0 {
		width = 32
	}
	d := &Document{width: width}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// Width returns the line width in characters.
func (d *Document) Width() int { return d.width }

func (d *Document) SetAlign(align int) *Document {
	d.buf.Write([]byte{ESC, 'a', byte(align)})
	return d
}

func (d *Document) SetBold(on bool) *Document {
	var b byte
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *Document) SetSize(size byte) *Document {
	d.buf.Write([]byte{GS, '!', size})
	return d
}

// Line writes s followed by a line feed.
func (d *Document) Line(s string) *Document {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

// Wrap writes s broken on spaces so no line exceeds the paper width.
func (d *Document) Wrap(s string) *Document {
	var line string
	for _, word := range strings.Fields(s) {
		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= d.width:
			line += " " + word
		default:
			d.Line(line)
			line = word
		}
	}
	if line != "" {
		d.Line(line)
	}
	return d
}

// Columns writes left and right on one line, right-aligned to the paper edge.
func (d *Document) Columns(left, right string) *Document {
	gap := d.width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return d.Line(left + strings.Repeat(" ", gap) + right)
}

// Rule writes a full-width line of ch.
func (d *Document) Rule(ch byte) *Document {
	return d.Line(strings.Repeat(string(ch), d.width))
}

func (d *Document) Feed(n int) *Document {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

// Cut feeds the paper and issues a partial cut.
func (d *Document) Cut() *Document {
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d
}

func (d *Document) Bytes() []byte {
	return d.buf.Bytes()
}
