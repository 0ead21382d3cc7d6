package tui

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/turtacn/molgen/pkg/errors"
)

const upperHalfBlock = "▀"

// RenderPreview draws a PNG into at most cols x rows terminal cells. Each
// cell shows two stacked pixels: the upper one as the foreground of "▀" and
// the lower one as its background. Aspect ratio is preserved.
func RenderPreview(data []byte, cols, rows int) (string, error) {
	if cols < 1 || rows < 1 {
		return "", errors.InvalidParam(fmt.Sprintf("preview size %dx%d is empty", cols, rows))
	}
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return "", errors.Wrap(err, errors.ErrCodeMoleculeRenderFailed, "failed to decode depiction")
	}
	b := src.Bounds()
	if b.Empty() {
		return "", nil
	}

	scale := min(float64(cols)/float64(b.Dx()), float64(rows*2)/float64(b.Dy()))
	w := max(1, int(float64(b.Dx())*scale))
	h := max(2, int(float64(b.Dy())*scale))
	h += h % 2

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			sb.WriteString(lipgloss.NewStyle().
				Foreground(hexColor(dst, x, y)).
				Background(hexColor(dst, x, y+1)).
				Render(upperHalfBlock))
		}
	}
	return sb.String(), nil
}

func hexColor(img *image.RGBA, x, y int) lipgloss.Color {
	c := img.RGBAAt(x, y)
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

//Personal.AI order the ending
