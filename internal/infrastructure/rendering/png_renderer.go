package rendering

import (
	"bytes"
	"math"
	"strconv"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/turtacn/molgen/internal/config"
	"github.com/turtacn/molgen/internal/domain/molecule"
	"github.com/turtacn/molgen/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molgen/pkg/errors"
)

// maxBondPixels caps the bond length so that small molecules are not blown
// up to fill the canvas.
const maxBondPixels = 48.0

type rgb struct{ r, g, b float64 }

var elementColors = map[int]rgb{
	7:  {0.19, 0.31, 0.97},
	8:  {0.90, 0.05, 0.05},
	9:  {0.20, 0.70, 0.20},
	15: {1.00, 0.50, 0.00},
	16: {0.75, 0.60, 0.10},
	17: {0.10, 0.70, 0.10},
	35: {0.65, 0.16, 0.16},
	53: {0.58, 0.00, 0.58},
}

var bondColor = rgb{0.1, 0.1, 0.1}

// PNGRenderer draws 2D depictions of molecules as PNG images.
// It is safe for concurrent use.
type PNGRenderer struct {
	width     int
	height    int
	fontSize  float64
	lineWidth float64
	font      *truetype.Font
	logger    logging.Logger
}

// NewPNGRenderer builds a renderer from the render configuration.
func NewPNGRenderer(cfg config.RenderConfig, logger logging.Logger) (*PNGRenderer, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMoleculeRenderFailed, "failed to load label font")
	}
	r := &PNGRenderer{
		width:     cfg.Width,
		height:    cfg.Height,
		fontSize:  cfg.FontSize,
		lineWidth: cfg.LineWidth,
		font:      f,
		logger:    logger,
	}
	if r.width <= 0 {
		r.width = config.DefaultRenderWidth
	}
	if r.height <= 0 {
		r.height = config.DefaultRenderHeight
	}
	if r.fontSize <= 0 {
		r.fontSize = config.DefaultRenderFontSize
	}
	if r.lineWidth <= 0 {
		r.lineWidth = config.DefaultRenderLineWidth
	}
	return r, nil
}

// Size returns the image dimensions in pixels.
func (r *PNGRenderer) Size() (int, int) {
	return r.width, r.height
}

// Render lays out m and returns the encoded PNG.
func (r *PNGRenderer) Render(m *molecule.Molecule) ([]byte, error) {
	if m == nil || m.NumAtoms() == 0 {
		return nil, errors.New(errors.ErrCodeMoleculeRenderFailed, "nothing to render")
	}
	start := time.Now()
	coords := molecule.Compute2DCoords(m)

	dc := gg.NewContext(r.width, r.height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetFontFace(truetype.NewFace(r.font, &truetype.Options{Size: r.fontSize}))

	px := r.project(coords)
	labels := make([]string, m.NumAtoms())
	for i := range labels {
		labels[i] = atomLabel(m, i)
	}

	dc.SetLineWidth(r.lineWidth)
	dc.SetLineCapRound()
	for bi := 0; bi < m.NumBonds(); bi++ {
		r.drawBond(dc, m, bi, px, labels)
	}
	for i, label := range labels {
		if label == "" {
			continue
		}
		r.drawLabel(dc, m.Atom(i).Number, label, px[i])
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeMoleculeRenderFailed, "failed to encode png")
	}
	r.logger.Debug("molecule rendered",
		logging.Int("atoms", m.NumAtoms()),
		logging.Int("bytes", buf.Len()),
		logging.Duration("elapsed", time.Since(start)))
	return buf.Bytes(), nil
}

// project maps layout coordinates to pixels, centred, with Y pointing up.
func (r *PNGRenderer) project(coords []molecule.Point) []molecule.Point {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range coords {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	margin := 2 * r.fontSize
	spanX, spanY := math.Max(maxX-minX, 1), math.Max(maxY-minY, 1)
	scale := math.Min((float64(r.width)-2*margin)/spanX, (float64(r.height)-2*margin)/spanY)
	scale = math.Min(scale, maxBondPixels)
	cx, cy := (minX+maxX)/2, (minY+maxY)/2

	out := make([]molecule.Point, len(coords))
	for i, p := range coords {
		out[i] = molecule.Point{
			X: float64(r.width)/2 + (p.X-cx)*scale,
			Y: float64(r.height)/2 - (p.Y-cy)*scale,
		}
	}
	return out
}

func (r *PNGRenderer) drawBond(dc *gg.Context, m *molecule.Molecule, bi int, px []molecule.Point, labels []string) {
	b := m.Bond(bi)
	p1, p2 := px[b.Begin], px[b.End]
	dx, dy := p2.X-p1.X, p2.Y-p1.Y
	length := math.Hypot(dx, dy)
	if length < 1e-6 {
		return
	}
	ux, uy := dx/length, dy/length
	// keep clear of atom labels
	trim := r.fontSize * 0.6
	if labels[b.Begin] != "" {
		p1 = molecule.Point{X: p1.X + ux*trim, Y: p1.Y + uy*trim}
	}
	if labels[b.End] != "" {
		p2 = molecule.Point{X: p2.X - ux*trim, Y: p2.Y - uy*trim}
	}
	nx, ny := -uy, ux
	gap := r.fontSize * 0.3

	order := int(b.Order)
	if b.Order == molecule.BondAromatic {
		order = b.Kekule
	}
	dc.SetRGB(bondColor.r, bondColor.g, bondColor.b)
	switch order {
	case 2:
		if side, ok := ringSide(m, b, px, nx, ny); ok && b.InRing {
			// ring double bond: full line plus a shortened inner line
			dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
			shrink := 0.15 * length
			ox, oy := nx*gap*side, ny*gap*side
			dc.DrawLine(p1.X+ox+ux*shrink, p1.Y+oy+uy*shrink, p2.X+ox-ux*shrink, p2.Y+oy-uy*shrink)
			break
		}
		ox, oy := nx*gap/2, ny*gap/2
		dc.DrawLine(p1.X+ox, p1.Y+oy, p2.X+ox, p2.Y+oy)
		dc.DrawLine(p1.X-ox, p1.Y-oy, p2.X-ox, p2.Y-oy)
	case 3:
		ox, oy := nx*gap, ny*gap
		dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
		dc.DrawLine(p1.X+ox, p1.Y+oy, p2.X+ox, p2.Y+oy)
		dc.DrawLine(p1.X-ox, p1.Y-oy, p2.X-ox, p2.Y-oy)
	default:
		dc.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
	}
	dc.Stroke()
}

// ringSide returns +1 or -1 for the side of the bond normal that faces the
// centre of a ring containing the bond.
func ringSide(m *molecule.Molecule, b *molecule.Bond, px []molecule.Point, nx, ny float64) (float64, bool) {
	for _, ring := range m.Rings() {
		hasBegin, hasEnd := false, false
		for _, a := range ring {
			hasBegin = hasBegin || a == b.Begin
			hasEnd = hasEnd || a == b.End
		}
		if !hasBegin || !hasEnd {
			continue
		}
		var cx, cy float64
		for _, a := range ring {
			cx += px[a].X
			cy += px[a].Y
		}
		cx /= float64(len(ring))
		cy /= float64(len(ring))
		mx, my := (px[b.Begin].X+px[b.End].X)/2, (px[b.Begin].Y+px[b.End].Y)/2
		if (cx-mx)*nx+(cy-my)*ny >= 0 {
			return 1, true
		}
		return -1, true
	}
	return 0, false
}

func (r *PNGRenderer) drawLabel(dc *gg.Context, z int, label string, p molecule.Point) {
	w, h := dc.MeasureString(label)
	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(p.X-w/2-1, p.Y-h/2-1, w+2, h+2)
	dc.Fill()
	c, ok := elementColors[z]
	if !ok {
		c = bondColor
	}
	dc.SetRGB(c.r, c.g, c.b)
	dc.DrawStringAnchored(label, p.X, p.Y, 0.5, 0.35)
}

// atomLabel returns the text drawn for atom i, or "" for a plain skeletal
// carbon.
func atomLabel(m *molecule.Molecule, i int) string {
	a := m.Atom(i)
	if a.Number == 6 && a.Charge == 0 && a.Isotope == 0 && m.Degree(i) > 0 {
		return ""
	}
	label := a.Element
	if a.Isotope > 0 {
		label = strconv.Itoa(a.Isotope) + label
	}
	switch h := a.TotalH(); {
	case h == 1:
		label += "H"
	case h > 1:
		label += "H" + strconv.Itoa(h)
	}
	switch {
	case a.Charge == 1:
		label += "+"
	case a.Charge == -1:
		label += "-"
	case a.Charge > 1:
		label += strconv.Itoa(a.Charge) + "+"
	case a.Charge < -1:
		label += strconv.Itoa(-a.Charge) + "-"
	}
	return label
}

//Personal.AI order the ending
