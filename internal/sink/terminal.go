// Package sink contains frame outputs: a terminal display implementing the
// periph display.Drawer interface, an adapter driving any such drawer, and a
// log-only sink for headless runs.
package sink

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"periph.io/x/conn/v3/display"
)

var errHalted = errors.New("terminal: halted")

// Terminal prints an LED image as text, one character pair per LED. On a
// colour terminal lit LEDs are drawn in their RGB colour and each frame
// redraws in place; elsewhere it falls back to '#' and '.'.
type Terminal struct {
	mu     sync.Mutex
	out    io.Writer
	color  bool
	rect   image.Rectangle
	buf    *image.RGBA
	drawn  int
	halted bool
}

var _ display.Drawer = (*Terminal)(nil)

// NewTerminal writes to f, enabling colour when f is a terminal.
func NewTerminal(f *os.File, w, h int) *Terminal {
	tty := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	var out io.Writer
	if tty {
		out = colorable.NewColorable(f)
	} else {
		out = colorable.NewNonColorable(f)
	}
	return NewTerminalWriter(out, tty, w, h)
}

// NewTerminalWriter writes to out; color selects ANSI output.
func NewTerminalWriter(out io.Writer, color bool, w, h int) *Terminal {
	t := &Terminal{out: out, color: color}
	t.resize(w, h)
	return t
}

func (t *Terminal) resize(w, h int) {
	t.rect = image.Rect(0, 0, max(w, 0), max(h, 0))
	t.buf = image.NewRGBA(t.rect)
}

// Resize changes the drawable area, e.g. after the module count changed.
func (t *Terminal) Resize(w, h int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.rect.Dx() == w && t.rect.Dy() == h {
		return
	}
	t.resize(w, h)
	if t.color && t.drawn > 0 {
		// the old frame may be taller than the new one
		fmt.Fprint(t.out, "\x1b[2J")
	}
}

func (t *Terminal) String() string {
	return fmt.Sprintf("sink.Terminal{%dx%d}", t.rect.Dx(), t.rect.Dy())
}

// Halt stops drawing and restores the terminal colours.
func (t *Terminal) Halt() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.halted {
		return nil
	}
	t.halted = true
	if t.color {
		_, err := fmt.Fprint(t.out, "\x1b[0m\n")
		return err
	}
	return nil
}

func (t *Terminal) ColorModel() color.Model { return color.RGBAModel }

func (t *Terminal) Bounds() image.Rectangle {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rect
}

// Draw copies src into the frame buffer and prints the whole buffer.
func (t *Terminal) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.halted {
		return errHalted
	}
	dst = dst.Intersect(t.rect)
	if dst.Empty() {
		return nil
	}
	draw.Draw(t.buf, dst, src, sp, draw.Src)
	return t.flush()
}

func (t *Terminal) flush() error {
	w := bufio.NewWriter(t.out)
	if t.color {
		w.WriteString("\x1b[H")
	}
	for y := t.rect.Min.Y; y < t.rect.Max.Y; y++ {
		for x := t.rect.Min.X; x < t.rect.Max.X; x++ {
			c := t.buf.RGBAAt(x, y)
			lit := c.R|c.G|c.B != 0
			switch {
			case t.color && lit:
				fmt.Fprintf(w, "\x1b[38;2;%d;%d;%dm● ", c.R, c.G, c.B)
			case t.color:
				w.WriteString("\x1b[38;2;60;66;80m· ")
			case lit:
				w.WriteString("# ")
			default:
				w.WriteString(". ")
			}
		}
		if t.color {
			w.WriteString("\x1b[0m")
		}
		w.WriteByte('\n')
	}
	if !t.color {
		w.WriteByte('\n')
	}
	t.drawn++
	return w.Flush()
}
