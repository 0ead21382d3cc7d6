package molecule

import (
	"math"
)

// Point is a 2D depiction coordinate in units of one bond length.
type Point struct {
	X float64
	Y float64
}

const (
	layoutSweeps    = 300
	layoutTolerance = 1e-4
	componentGap    = 1.5
)

// Compute2DCoords lays out a sanitized molecule in the plane. Bonds come out
// close to unit length, chains as 120 degree zigzags and rings as regular
// polygons. Disconnected fragments are placed left to right. The result is
// deterministic for a given atom order.
func Compute2DCoords(m *Molecule) []Point {
	coords := make([]Point, len(m.atoms))
	offset := 0.0
	for _, comp := range m.Components() {
		pts := layoutComponent(m, comp)
		minX, maxX, minY, maxY := bounds(pts)
		midY := (minY + maxY) / 2
		for k, a := range comp {
			coords[a] = Point{X: pts[k].X - minX + offset, Y: pts[k].Y - midY}
		}
		offset += maxX - minX + componentGap
	}
	return coords
}

func layoutComponent(m *Molecule, comp []int) []Point {
	n := len(comp)
	switch n {
	case 0:
		return nil
	case 1:
		return []Point{{}}
	}
	local := make(map[int]int, n)
	for k, a := range comp {
		local[a] = k
	}

	d := targetDistances(m, comp, local)
	pts := classicalScaling(d)
	stressMajorize(pts, d)
	alignPrincipalAxis(pts)
	return pts
}

// targetDistances builds the ideal pairwise distances: zigzag chain lengths
// from topological distance, overridden by polygon chords for atoms that
// share a ring.
func targetDistances(m *Molecule, comp []int, local map[int]int) [][]float64 {
	n := len(comp)
	d := make([][]float64, n)
	for k, src := range comp {
		hops := bfsHops(m, src)
		row := make([]float64, n)
		for l, dst := range comp {
			row[l] = zigzag(hops[dst])
		}
		d[k] = row
	}
	for _, ring := range m.rings {
		size := len(ring)
		if _, ok := local[ring[0]]; !ok {
			continue
		}
		radius := 1 / (2 * math.Sin(math.Pi/float64(size)))
		for p := 0; p < size; p++ {
			for q := p + 1; q < size; q++ {
				steps := q - p
				if size-steps < steps {
					steps = size - steps
				}
				chord := 2 * radius * math.Sin(math.Pi*float64(steps)/float64(size))
				i, j := local[ring[p]], local[ring[q]]
				if chord < d[i][j] {
					d[i][j], d[j][i] = chord, chord
				}
			}
		}
	}
	return d
}

func bfsHops(m *Molecule, src int) []int {
	hops := make([]int, len(m.atoms))
	for i := range hops {
		hops[i] = -1
	}
	hops[src] = 0
	queue := []int{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range m.Neighbors(cur) {
			if hops[nb] < 0 {
				hops[nb] = hops[cur] + 1
				queue = append(queue, nb)
			}
		}
	}
	return hops
}

// zigzag is the end-to-end length of an all-trans chain of k unit bonds.
func zigzag(k int) float64 {
	if k <= 0 {
		return 0
	}
	x := 0.866 * float64(k)
	y := 0.0
	if k%2 == 1 {
		y = 0.5
	}
	return math.Sqrt(x*x + y*y)
}

// classicalScaling seeds the layout with the two leading eigenvectors of the
// double-centred squared distance matrix.
func classicalScaling(d [][]float64) []Point {
	n := len(d)
	b := make([][]float64, n)
	rowMean := make([]float64, n)
	total := 0.0
	for i := 0; i < n; i++ {
		b[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			sq := d[i][j] * d[i][j]
			b[i][j] = sq
			rowMean[i] += sq
		}
		total += rowMean[i]
		rowMean[i] /= float64(n)
	}
	total /= float64(n * n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			b[i][j] = -0.5 * (b[i][j] - rowMean[i] - rowMean[j] + total)
		}
	}

	v1, l1 := powerIteration(b, nil)
	v2, l2 := powerIteration(b, v1)
	s1, s2 := math.Sqrt(math.Max(l1, 0)), math.Sqrt(math.Max(l2, 0))

	pts := make([]Point, n)
	for i := range pts {
		// small index-based offsets keep collinear seeds from staying flat
		pts[i] = Point{
			X: v1[i]*s1 + 0.01*math.Cos(float64(i)),
			Y: v2[i]*s2 + 0.01*math.Sin(float64(i)),
		}
	}
	return pts
}

// powerIteration returns the dominant eigenpair of the symmetric matrix b,
// restricted to the complement of deflate when it is non-nil.
func powerIteration(b [][]float64, deflate []float64) ([]float64, float64) {
	n := len(b)
	v := make([]float64, n)
	for i := range v {
		v[i] = 1 + float64(i%3) - float64(i%2)*0.5
	}
	orthogonalize(v, deflate)
	normalize(v)
	lambda := 0.0
	next := make([]float64, n)
	for iter := 0; iter < 200; iter++ {
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				sum += b[i][j] * v[j]
			}
			next[i] = sum
		}
		orthogonalize(next, deflate)
		norm := normalize(next)
		if norm == 0 {
			return v, 0
		}
		diff := 0.0
		for i := range v {
			diff += math.Abs(next[i] - v[i])
			v[i] = next[i]
		}
		lambda = norm
		if diff < 1e-9 {
			break
		}
	}
	return v, lambda
}

func orthogonalize(v, against []float64) {
	if against == nil {
		return
	}
	dot := 0.0
	for i := range v {
		dot += v[i] * against[i]
	}
	for i := range v {
		v[i] -= dot * against[i]
	}
}

func normalize(v []float64) float64 {
	norm := 0.0
	for _, x := range v {
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		return 0
	}
	for i := range v {
		v[i] /= norm
	}
	return norm
}

// stressMajorize minimises sum w_ij (|p_i - p_j| - d_ij)^2 with w = d^-2 by
// localized per-node updates.
func stressMajorize(pts []Point, d [][]float64) {
	n := len(pts)
	for sweep := 0; sweep < layoutSweeps; sweep++ {
		moved := 0.0
		for i := 0; i < n; i++ {
			var nx, ny, wsum float64
			for j := 0; j < n; j++ {
				if i == j || d[i][j] == 0 {
					continue
				}
				w := 1 / (d[i][j] * d[i][j])
				dx, dy := pts[i].X-pts[j].X, pts[i].Y-pts[j].Y
				dist := math.Hypot(dx, dy)
				if dist < 1e-9 {
					// coincident atoms: push apart along a fixed direction
					dx, dy, dist = 1e-3*float64(i-j), 1e-3, math.Hypot(1e-3*float64(i-j), 1e-3)
				}
				nx += w * (pts[j].X + d[i][j]*dx/dist)
				ny += w * (pts[j].Y + d[i][j]*dy/dist)
				wsum += w
			}
			if wsum == 0 {
				continue
			}
			nx, ny = nx/wsum, ny/wsum
			moved += math.Hypot(nx-pts[i].X, ny-pts[i].Y)
			pts[i] = Point{X: nx, Y: ny}
		}
		if moved/float64(n) < layoutTolerance {
			return
		}
	}
}

// alignPrincipalAxis centres pts and rotates the long axis onto X.
func alignPrincipalAxis(pts []Point) {
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(pts))
	cy /= float64(len(pts))
	var sxx, syy, sxy float64
	for i := range pts {
		pts[i].X -= cx
		pts[i].Y -= cy
		sxx += pts[i].X * pts[i].X
		syy += pts[i].Y * pts[i].Y
		sxy += pts[i].X * pts[i].Y
	}
	theta := 0.5 * math.Atan2(2*sxy, sxx-syy)
	c, s := math.Cos(-theta), math.Sin(-theta)
	for i := range pts {
		x, y := pts[i].X, pts[i].Y
		pts[i] = Point{X: x*c - y*s, Y: x*s + y*c}
	}
}

func bounds(pts []Point) (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return
}

//Personal.AI order the ending
