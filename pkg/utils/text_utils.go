package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// MeasureFunc 返回单行文本的宽度
type MeasureFunc func(s string) float64

// FaceMeasure 使用字体测量文本宽度
func FaceMeasure(face text.Face) MeasureFunc {
	return func(s string) float64 {
		if s == "" || face == nil {
			return 0
		}
		w, _ := text.Measure(s, face, 0)
		return w
	}
}

// WrapText 将文本按指定宽度自动换行
//
// 换行规则:
//   - 优先在空白处断行，行首行尾的空白被去掉
//   - 单个单词超过最大宽度时按字符强制断行
//
// maxWidth <= 0 或 measure 为 nil 时原样返回一行。
func WrapText(s string, maxWidth float64, measure MeasureFunc) []string {
	if s == "" || measure == nil || maxWidth <= 0 || measure(s) <= maxWidth {
		return []string{s}
	}

	var lines []string
	line := ""
	for _, word := range strings.FieldsFunc(s, unicode.IsSpace) {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if measure(candidate) <= maxWidth {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
			line = ""
		}
		if measure(word) <= maxWidth {
			line = word
			continue
		}
		// 超长单词按字符断开
		for len(word) > 0 {
			_, size := utf8.DecodeRuneInString(word)
			next := line + word[:size]
			if line != "" && measure(next) > maxWidth {
				lines = append(lines, line)
				next = word[:size]
			}
			line = next
			word = word[size:]
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		return []string{s}
	}
	return lines
}
