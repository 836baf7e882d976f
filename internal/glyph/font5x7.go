package glyph

import "github.com/coreman2200/ledgrid/internal/bitmap"

const (
	CharWidth5x7  = 5
	CharHeight5x7 = 7
)

type tableFont struct {
	id   string
	w, h int
	data map[rune][CharHeight5x7]uint8
}

// Font5x7 is the built-in upper-case 5x7 font.
var Font5x7 Font = &tableFont{id: "5x7", w: CharWidth5x7, h: CharHeight5x7, data: font5x7Data}

func (f *tableFont) ID() string { return f.id }
func (f *tableFont) Height() int { return f.h }
func (f *tableFont) Advance() int { return f.w }

func (f *tableFont) Glyph(r rune) (*bitmap.Bitmap, bool) {
	rows, ok := f.data[r]
	if !ok {
		return nil, false
	}
	b := bitmap.New(f.w, f.h)
	for y, bits := range rows {
		for x := 0; x < f.w; x++ {
			if bits&(1<<(f.w-1-x)) != 0 {
				b.Set(x, y, true)
			}
		}
	}
	return b, true
}

var font5x7Data = map[rune][CharHeight5x7]uint8{
	'A': {0b01110, 0b10001, 0b10001, 0b11111, 0b10001, 0b10001, 0b10001},
	'B': {0b11110, 0b10001, 0b10001, 0b11110, 0b10001, 0b10001, 0b11110},
	'C': {0b01110, 0b10001, 0b10000, 0b10000, 0b10000, 0b10001, 0b01110},
	'D': {0b11110, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b11110},
	'E': {0b11111, 0b10000, 0b10000, 0b11110, 0b10000, 0b10000, 0b11111},
	'F': {0b11111, 0b10000, 0b10000, 0b11110, 0b10000, 0b10000, 0b10000},
	'G': {0b01110, 0b10001, 0b10000, 0b10111, 0b10001, 0b10001, 0b01111},
	'H': {0b10001, 0b10001, 0b10001, 0b11111, 0b10001, 0b10001, 0b10001},
	'I': {0b01110, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b01110},
	'J': {0b00111, 0b00010, 0b00010, 0b00010, 0b00010, 0b10010, 0b01100},
	'K': {0b10001, 0b10010, 0b10100, 0b11000, 0b10100, 0b10010, 0b10001},
	'L': {0b10000, 0b10000, 0b10000, 0b10000, 0b10000, 0b10000, 0b11111},
	'M': {0b10001, 0b11011, 0b10101, 0b10101, 0b10001, 0b10001, 0b10001},
	'N': {0b10001, 0b10001, 0b11001, 0b10101, 0b10011, 0b10001, 0b10001},
	'O': {0b01110, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b01110},
	'P': {0b11110, 0b10001, 0b10001, 0b11110, 0b10000, 0b10000, 0b10000},
	'Q': {0b01110, 0b10001, 0b10001, 0b10001, 0b10101, 0b10010, 0b01101},
	'R': {0b11110, 0b10001, 0b10001, 0b11110, 0b10100, 0b10010, 0b10001},
	'S': {0b01111, 0b10000, 0b10000, 0b01110, 0b00001, 0b00001, 0b11110},
	'T': {0b11111, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100},
	'U': {0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b01110},
	'V': {0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b01010, 0b00100},
	'W': {0b10001, 0b10001, 0b10001, 0b10101, 0b10101, 0b10101, 0b01010},
	'X': {0b10001, 0b10001, 0b01010, 0b00100, 0b01010, 0b10001, 0b10001},
	'Y': {0b10001, 0b10001, 0b01010, 0b00100, 0b00100, 0b00100, 0b00100},
	'Z': {0b11111, 0b00001, 0b00010, 0b00100, 0b01000, 0b10000, 0b11111},

	'0': {0b01110, 0b10001, 0b10011, 0b10101, 0b11001, 0b10001, 0b01110},
	'1': {0b00100, 0b01100, 0b00100, 0b00100, 0b00100, 0b00100, 0b01110},
	'2': {0b01110, 0b10001, 0b00001, 0b00010, 0b00100, 0b01000, 0b11111},
	'3': {0b11111, 0b00010, 0b00100, 0b00010, 0b00001, 0b10001, 0b01110},
	'4': {0b00010, 0b00110, 0b01010, 0b10010, 0b11111, 0b00010, 0b00010},
	'5': {0b11111, 0b10000, 0b11110, 0b00001, 0b00001, 0b10001, 0b01110},
	'6': {0b00110, 0b01000, 0b10000, 0b11110, 0b10001, 0b10001, 0b01110},
	'7': {0b11111, 0b00001, 0b00010, 0b00100, 0b01000, 0b01000, 0b01000},
	'8': {0b01110, 0b10001, 0b10001, 0b01110, 0b10001, 0b10001, 0b01110},
	'9': {0b01110, 0b10001, 0b10001, 0b01111, 0b00001, 0b00010, 0b01100},

	' ':  {0, 0, 0, 0, 0, 0, 0},
	'!':  {0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b00000, 0b00100},
	'?':  {0b01110, 0b10001, 0b00001, 0b00010, 0b00100, 0b00000, 0b00100},
	'.':  {0, 0, 0, 0, 0, 0b01100, 0b01100},
	',':  {0, 0, 0, 0, 0b01100, 0b00100, 0b01000},
	':':  {0, 0b01100, 0b01100, 0, 0b01100, 0b01100, 0},
	';':  {0, 0b01100, 0b01100, 0, 0b01100, 0b00100, 0b01000},
	'\'': {0b01100, 0b00100, 0b01000, 0, 0, 0, 0},
	'"':  {0b01010, 0b01010, 0b01010, 0, 0, 0, 0},
	'-':  {0, 0, 0, 0b11111, 0, 0, 0},
	'+':  {0, 0b00100, 0b00100, 0b11111, 0b00100, 0b00100, 0},
	'=':  {0, 0, 0b11111, 0, 0b11111, 0, 0},
	'*':  {0, 0b00100, 0b10101, 0b01110, 0b10101, 0b00100, 0},
	'/':  {0, 0b00001, 0b00010, 0b00100, 0b01000, 0b10000, 0},
	'_':  {0, 0, 0, 0, 0, 0, 0b11111},
	'#':  {0b01010, 0b01010, 0b11111, 0b01010, 0b11111, 0b01010, 0b01010},
	'%':  {0b11000, 0b11001, 0b00010, 0b00100, 0b01000, 0b10011, 0b00011},
	'(':  {0b00010, 0b00100, 0b01000, 0b01000, 0b01000, 0b00100, 0b00010},
	')':  {0b01000, 0b00100, 0b00010, 0b00010, 0b00010, 0b00100, 0b01000},
	'<':  {0b00010, 0b00100, 0b01000, 0b10000, 0b01000, 0b00100, 0b00010},
	'>':  {0b01000, 0b00100, 0b00010, 0b00001, 0b00010, 0b00100, 0b01000},
	'♥':  {0, 0b01010, 0b11111, 0b11111, 0b01110, 0b00100, 0},
}
