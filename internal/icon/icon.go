// Package icon is the built-in 8×8 icon catalog.
package icon

import (
	"sort"

	"github.com/coreman2200/ledgrid/internal/bitmap"
)

const Size = 8

type entry struct {
	name string
	rows [Size]uint8
}

var catalog = map[string]entry{
	"heart":      {"Heart", [Size]uint8{0b00000000, 0b01100110, 0b11111111, 0b11111111, 0b11111111, 0b01111110, 0b00111100, 0b00011000}},
	"smiley":     {"Smiley", [Size]uint8{0b00111100, 0b01000010, 0b10100101, 0b10000001, 0b10100101, 0b10011001, 0b01000010, 0b00111100}},
	"sad":        {"Sad", [Size]uint8{0b00111100, 0b01000010, 0b10100101, 0b10000001, 0b10011001, 0b10100101, 0b01000010, 0b00111100}},
	"arrowUp":    {"Arrow up", [Size]uint8{0b00011000, 0b00111100, 0b01111110, 0b11011011, 0b00011000, 0b00011000, 0b00011000, 0b00011000}},
	"arrowDown":  {"Arrow down", [Size]uint8{0b00011000, 0b00011000, 0b00011000, 0b00011000, 0b11011011, 0b01111110, 0b00111100, 0b00011000}},
	"arrowLeft":  {"Arrow left", [Size]uint8{0b00010000, 0b00110000, 0b01110000, 0b11111111, 0b11111111, 0b01110000, 0b00110000, 0b00010000}},
	"arrowRight": {"Arrow right", [Size]uint8{0b00001000, 0b00001100, 0b00001110, 0b11111111, 0b11111111, 0b00001110, 0b00001100, 0b00001000}},
	"check":      {"Check", [Size]uint8{0b00000000, 0b00000001, 0b00000011, 0b00000110, 0b10001100, 0b11011000, 0b01110000, 0b00100000}},
	"cross":      {"Cross", [Size]uint8{0b10000001, 0b01000010, 0b00100100, 0b00011000, 0b00011000, 0b00100100, 0b01000010, 0b10000001}},
	"star":       {"Star", [Size]uint8{0b00011000, 0b00011000, 0b11111111, 0b01111110, 0b00111100, 0b01111110, 0b01100110, 0b11000011}},
	"note":       {"Note", [Size]uint8{0b00011111, 0b00010001, 0b00010001, 0b00010001, 0b01110001, 0b11110111, 0b11100111, 0b00000110}},
	"bell":       {"Bell", [Size]uint8{0b00011000, 0b00111100, 0b01111110, 0b01111110, 0b01111110, 0b11111111, 0b00000000, 0b00011000}},
	"home":       {"Home", [Size]uint8{0b00011000, 0b00111100, 0b01111110, 0b11111111, 0b01000010, 0b01011010, 0b01011010, 0b01111110}},
	"sun":        {"Sun", [Size]uint8{0b10010001, 0b01000010, 0b00111100, 0b10111101, 0b10111101, 0b00111100, 0b01000010, 0b10001001}},
	"moon":       {"Moon", [Size]uint8{0b00111000, 0b01110000, 0b11100000, 0b11100000, 0b11100000, 0b11100001, 0b01110010, 0b00111100}},
	"rain":       {"Rain", [Size]uint8{0b00111100, 0b01111110, 0b11111111, 0b11111111, 0b00000000, 0b01001001, 0b10010010, 0b00100100}},
	"bolt":       {"Bolt", [Size]uint8{0b00001110, 0b00011100, 0b00111000, 0b01111110, 0b00011100, 0b00111000, 0b00110000, 0b01000000}},
	"wifi":       {"Wi-Fi", [Size]uint8{0b00000000, 0b01111110, 0b10000001, 0b00111100, 0b01000010, 0b00011000, 0b00011000, 0b00000000}},
	"battery":    {"Battery", [Size]uint8{0b00000000, 0b11111110, 0b10000010, 0b10111011, 0b10111011, 0b10000010, 0b11111110, 0b00000000}},
	"lock":       {"Lock", [Size]uint8{0b00111100, 0b01000010, 0b01000010, 0b11111111, 0b11100111, 0b11100111, 0b11111111, 0b00000000}},
}

// Lookup returns a fresh copy of the named icon.
func Lookup(id string) (*bitmap.Bitmap, bool) {
	e, ok := catalog[id]
	if !ok {
		return nil, false
	}
	b := bitmap.New(Size, Size)
	for y, bits := range e.rows {
		for x := 0; x < Size; x++ {
			if bits&(1<<(Size-1-x)) != 0 {
				b.Set(x, y, true)
			}
		}
	}
	return b, true
}

// Name is the display label; unknown ids return "".
func Name(id string) string { return catalog[id].name }

func IDs() []string {
	out := make([]string, 0, len(catalog))
	for k := range catalog {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
