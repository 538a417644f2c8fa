package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// 径向网格的分段数范围
const (
	minRadialSegments = 12
	maxRadialSegments = 48
)

// RadialSegments 按物理半径选择圆周分段数
func RadialSegments(radiusPx float64) int {
	n := int(math.Ceil(radiusPx))
	if n < minRadialSegments {
		return minRadialSegments
	}
	if n > maxRadialSegments {
		return maxRadialSegments
	}
	return n
}

// Mesh 顶点与索引缓冲，可复用以避免每帧分配
type Mesh struct {
	Vertices []ebiten.Vertex
	Indices  []uint16
}

// Reset 清空缓冲（保留容量）
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
}

// vertex 生成一个顶点：坐标乘以 dpr，颜色为直通 alpha
// 源坐标指向 1x1 白色子图像的中心
func vertex(x, y, dpr float64, stops []ColorStop, offset, alpha float64) ebiten.Vertex {
	c, a := SampleStops(stops, offset)
	return ebiten.Vertex{
		DstX:   float32(x * dpr),
		DstY:   float32(y * dpr),
		SrcX:   1.5,
		SrcY:   1.5,
		ColorR: float32(c.R),
		ColorG: float32(c.G),
		ColorB: float32(c.B),
		ColorA: float32(a * alpha),
	}
}

// AppendLinearX 追加覆盖 [0,w]×[0,h] 的水平渐变网格
//
// 在每个色标位置切分竖条，GPU 在竖条内线性插值顶点颜色。
// x0 == x1 时退化为在 x0 处的硬边。
func (m *Mesh) AppendLinearX(w, h, x0, x1, dpr, alpha float64, stops []ColorStop) {
	if w <= 0 || h <= 0 || len(stops) == 0 {
		return
	}

	// 切分点：表面左边界、各色标位置、表面右边界
	xs := make([]float64, 0, len(stops)+2)
	offs := make([]float64, 0, len(stops)+2)
	toOffset := func(x float64) float64 {
		if x1 == x0 {
			if x < x0 {
				return 0
			}
			return 1
		}
		return (x - x0) / (x1 - x0)
	}
	push := func(x float64) {
		if x < 0 {
			x = 0
		}
		if x > w {
			x = w
		}
		if n := len(xs); n > 0 && x <= xs[n-1] {
			return
		}
		xs = append(xs, x)
		offs = append(offs, toOffset(x))
	}

	push(0)
	for _, s := range stops {
		push(x0 + s.Offset*(x1-x0))
	}
	push(w)

	for i := 0; i+1 < len(xs); i++ {
		base := uint16(len(m.Vertices))
		l, r := xs[i], xs[i+1]
		m.Vertices = append(m.Vertices,
			vertex(l, 0, dpr, stops, offs[i], alpha),
			vertex(r, 0, dpr, stops, offs[i+1], alpha),
			vertex(l, h, dpr, stops, offs[i], alpha),
			vertex(r, h, dpr, stops, offs[i+1], alpha),
		)
		m.Indices = append(m.Indices,
			base+0, base+1, base+2,
			base+1, base+3, base+2,
		)
	}
}

// AppendRadial 追加以 (cx, cy) 为圆心、半径 shapeR 的圆盘网格
//
// 颜色在半径 gradR 的径向渐变上取样：中心一个顶点，每个落在圆盘内的色标一圈，
// 最后在 shapeR 处收边（相当于按圆盘裁剪）。
func (m *Mesh) AppendRadial(cx, cy, shapeR, gradR, dpr, alpha float64, stops []ColorStop) {
	if shapeR <= 0 || gradR <= 0 || len(stops) == 0 {
		return
	}
	segments := RadialSegments(shapeR * dpr)

	radii := make([]float64, 0, len(stops)+1)
	for _, s := range stops {
		r := s.Offset * gradR
		if r <= 0 || r >= shapeR {
			continue
		}
		if n := len(radii); n > 0 && r <= radii[n-1] {
			continue
		}
		radii = append(radii, r)
	}
	radii = append(radii, shapeR)

	center := uint16(len(m.Vertices))
	m.Vertices = append(m.Vertices, vertex(cx, cy, dpr, stops, 0, alpha))

	prevRing := -1
	for _, r := range radii {
		ring := len(m.Vertices)
		off := r / gradR
		for k := 0; k < segments; k++ {
			a := 2 * math.Pi * float64(k) / float64(segments)
			m.Vertices = append(m.Vertices, vertex(cx+math.Cos(a)*r, cy+math.Sin(a)*r, dpr, stops, off, alpha))
		}
		for k := 0; k < segments; k++ {
			k1 := (k + 1) % segments
			cur0, cur1 := uint16(ring+k), uint16(ring+k1)
			if prevRing < 0 {
				m.Indices = append(m.Indices, center, cur0, cur1)
				continue
			}
			prev0, prev1 := uint16(prevRing+k), uint16(prevRing+k1)
			m.Indices = append(m.Indices,
				prev0, cur0, cur1,
				prev0, cur1, prev1,
			)
		}
		prevRing = ring
	}
}
