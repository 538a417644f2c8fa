package app

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/glassfx/pkg/fx"
)

// domKeys Ebitengine 按键 → DOM 按键名
var domKeys = map[ebiten.Key]string{
	ebiten.KeyEnter:       fx.KeyEnter,
	ebiten.KeyNumpadEnter: fx.KeyEnter,
	ebiten.KeySpace:       fx.KeySpace,
	ebiten.KeyTab:         KeyTab,
	ebiten.KeyPageDown:    KeyPageDown,
	ebiten.KeyPageUp:      KeyPageUp,
	ebiten.KeyArrowDown:   KeyArrowDown,
	ebiten.KeyArrowUp:     KeyArrowUp,
	ebiten.KeyHome:        KeyHome,
	ebiten.KeyEnd:         KeyEnd,
}

// DOMKey 返回按键对应的 DOM 名称，未映射的按键返回 false
func DOMKey(k ebiten.Key) (string, bool) {
	name, ok := domKeys[k]
	return name, ok
}
