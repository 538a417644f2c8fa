package app

import (
	"math"

	"github.com/decker502/glassfx/pkg/config"
)

// headerHeight 标题栏高度（逻辑像素）
const headerHeight = 40.0

// LayoutGallery 按视图宽度排布按钮，返回内容总高度
//
// 按钮按注册顺序从左到右排列，放不下时换行，每行水平居中。
// 单个按钮比可用宽度还宽时独占一行。
func LayoutGallery(g *config.GalleryConfig, buttons []*Button, viewW float64) float64 {
	pad, gap := g.Padding, g.ButtonGap
	avail := math.Max(0, viewW-2*pad)
	y := pad + headerHeight

	for start := 0; start < len(buttons); {
		// 确定本行包含的按钮
		end := start + 1
		rowW := buttons[start].Config.Width
		rowH := buttons[start].Config.Height
		for end < len(buttons) {
			w := buttons[end].Config.Width
			if rowW+gap+w > avail {
				break
			}
			rowW += gap + w
			rowH = math.Max(rowH, buttons[end].Config.Height)
			end++
		}

		x := pad + math.Max(0, (avail-rowW)/2)
		for _, b := range buttons[start:end] {
			c := b.Config
			// 行内垂直居中
			b.Rect = Rect{X: x, Y: y + (rowH-c.Height)/2, W: c.Width, H: c.Height}
			x += c.Width + gap
		}
		y += rowH + gap
		start = end
	}

	if len(buttons) > 0 {
		y -= gap
	}
	return y + pad
}
